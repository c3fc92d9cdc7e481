package models

// NotificationItem is one entry of the social-proof ticker, e.g.
// "Priya from Mumbai booked a Goa package 12 minutes ago".
type NotificationItem struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Destination string `json:"destination"`
	Time        string `json:"time"`
}
