package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatINR renders an amount with Indian digit grouping, e.g. 150000 becomes
// "₹1,50,000". Fractions are dropped; display strings only.
func FormatINR(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s₹%s", sign, formatIndianGrouping(int64(amount)))
}

func formatIndianGrouping(n int64) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 {
		return str
	}
	head := str[:len(str)-3]
	tail := str[len(str)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
