package agents

import (
	"errors"
	"strings"

	"github.com/ttacon/libphonenumber"
)

var ErrInvalidPhone = errors.New("invalid phone number")

// defaultRegion is used when a number arrives without a country code.
const defaultRegion = "IN"

// NormalizePhone parses a dialable number and returns it in E.164
// form. Numbers without an international prefix get one retried with
// a leading '+' before falling back to the default region.
func NormalizePhone(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidPhone
	}

	num, err := libphonenumber.Parse(trimmed, defaultRegion)
	if err == nil && libphonenumber.IsValidNumber(num) {
		return libphonenumber.Format(num, libphonenumber.E164), nil
	}

	// Numbers like "919876543210" carry a country code but no '+'.
	if !strings.HasPrefix(trimmed, "+") {
		num, err = libphonenumber.Parse("+"+trimmed, "")
		if err == nil && libphonenumber.IsValidNumber(num) {
			return libphonenumber.Format(num, libphonenumber.E164), nil
		}
	}

	return "", ErrInvalidPhone
}
