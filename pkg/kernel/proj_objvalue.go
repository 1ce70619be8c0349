package kernel

import (
	"net/mail"
	"strings"
	"time"
)

type Email string

func (e Email) String() string { return string(e) }

// IsValid checks the address parses and its domain has a dot.
func (e Email) IsValid() bool {
	addr, err := mail.ParseAddress(string(e))
	if err != nil || addr.Address != string(e) {
		return false
	}
	_, domain, _ := strings.Cut(addr.Address, "@")
	return strings.Contains(domain, ".")
}

type FirstName string

type LastName string

type PositionName string

// DateLayout is the calendar date format used in posting details and in the
// simulated clock.
const DateLayout = "2006-01-02"

// DateOf truncates t to midnight UTC of its calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

func FormatDate(t time.Time) string {
	return DateOf(t).Format(DateLayout)
}
