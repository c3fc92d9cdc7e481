package leadcapture

import (
	"regexp"

	"backend/internal/utils"
)

// Loose shape check only; the CRM owns real address verification.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.\S+$`)

const minPhoneDigits = 10

// validate reports every broken field at once so the visitor can fix
// the whole form in one pass.
func validate(f *LeadForm, intent Intent) map[string]string {
	errs := make(map[string]string)

	if utils.TrimOrEmpty(f.Destination) == "" {
		errs["destination"] = "destination is required"
	}
	if utils.TrimOrEmpty(f.FullName) == "" {
		errs["full_name"] = "full name is required"
	}

	phone := utils.TrimOrEmpty(f.ContactNumber)
	switch {
	case phone == "":
		errs["contact_number"] = "contact number is required"
	case len(utils.DigitsOnly(phone)) < minPhoneDigits:
		errs["contact_number"] = "contact number must have at least 10 digits"
	}

	email := utils.TrimOrEmpty(f.Email)
	switch {
	case email == "":
		errs["email"] = "email is required"
	case !emailPattern.MatchString(email):
		errs["email"] = "email address looks invalid"
	}

	if f.Adults < 1 {
		errs["adults"] = "at least one adult traveler is required"
	}

	// empty travel date means "dates are flexible"
	if d := utils.TrimOrEmpty(f.TravelDate); d != "" {
		if _, err := utils.ParseDate(d); err != nil {
			errs["travel_date"] = "travel date must be YYYY-MM-DD"
		}
	}

	if intent == IntentBooking {
		switch d := utils.TrimOrEmpty(f.DepartureDate); {
		case d == "":
			errs["departure_date"] = "select a departure date"
		default:
			if _, err := utils.ParseDate(d); err != nil {
				errs["departure_date"] = "departure date must be YYYY-MM-DD"
			}
		}
		if utils.TrimOrEmpty(f.SharingOption) == "" {
			errs["sharing_option"] = "select a sharing option"
		}
	}

	return errs
}
