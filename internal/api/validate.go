package api

import (
	"net/mail"
	"regexp"
	"time"
)

const dateLayout = "2006-01-02"

// Senegalese mobile numbers: optional +221/00221 prefix, nine digits
// starting with 7, 8 or 9. Example: +221770001122 or 770001122.
var phonePattern = regexp.MustCompile(`^(\+221|00221)?[7-9][0-9]{8}$`)

func validPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// parsedDateOrNil assumes s already passed validation; a nil or
// unparseable value maps to nil.
func parsedDateOrNil(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := parseDate(*s)
	if err != nil {
		return nil
	}
	return &t
}
