package bot

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidPhone  = errors.New("invalid phone number")
	ErrInvalidHandle = errors.New("invalid telegram handle")
)

var (
	phoneJunk    = regexp.MustCompile(`[^\d+]`)
	ukrainePhone = regexp.MustCompile(`^\+380\d{9}$`)
)

// NormalizePhone strips everything but digits and '+', prefixes '+' when
// missing and checks the result is a Ukrainian mobile number
func NormalizePhone(raw string) (string, error) {
	phone := phoneJunk.ReplaceAllString(raw, "")
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}
	if !ukrainePhone.MatchString(phone) {
		return phone, ErrInvalidPhone
	}
	return phone, nil
}

// ValidateHandle accepts any trimmed input starting with '@'
func ValidateHandle(raw string) (string, error) {
	handle := strings.TrimSpace(raw)
	if !strings.HasPrefix(handle, "@") {
		return handle, ErrInvalidHandle
	}
	return handle, nil
}

// isCancel matches the cancel keyword regardless of case
func isCancel(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), cancelWord)
}
