package validation

import (
	"errors"
	"regexp"
)

var ErrInvalidMonth = errors.New("invalid month format, use YYYY-MM")

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// ValidateMonth checks the "YYYY-MM" month key used by monthly recaps.
func ValidateMonth(month string) error {
	if !monthPattern.MatchString(month) {
		return ErrInvalidMonth
	}
	return nil
}
