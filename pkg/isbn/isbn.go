// Package isbn validates ISBN-13 identifiers using the EAN-13 check digit.
package isbn

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Length is the number of digits in a cleaned ISBN-13.
const Length = 13

var cleaner = strings.NewReplacer("-", "", " ", "")

// Clean removes hyphens and spaces.
func Clean(s string) string {
	return cleaner.Replace(s)
}

// CheckDigit computes the EAN-13 check digit for the first 12 digits of d.
// d must contain at least 12 ASCII digits.
func CheckDigit(d string) int {
	sum := 0
	for i := 0; i < Length-1; i++ {
		digit := int(d[i] - '0')
		if i%2 == 0 {
			sum += digit
		} else {
			sum += digit * 3
		}
	}
	return (10 - sum%10) % 10
}

// Valid reports whether s is a well-formed ISBN-13 once hyphens and spaces
// are stripped.
func Valid(s string) bool {
	d := Clean(s)
	if len(d) != Length {
		return false
	}
	for i := 0; i < len(d); i++ {
		if d[i] < '0' || d[i] > '9' {
			return false
		}
	}
	return CheckDigit(d) == int(d[Length-1]-'0')
}

// ErrInvalid is returned by Rule for a malformed ISBN.
var ErrInvalid = validation.NewError("validation_isbn13_invalid", "must be a valid ISBN-13")

// Rule is an ozzo-validation rule for ISBN-13 strings. Empty values pass so
// it can be combined with validation.Required.
var Rule = rule{err: ErrInvalid}

type rule struct {
	err validation.Error
}

func (r rule) Validate(value interface{}) error {
	value, isNil := validation.Indirect(value)
	if isNil || validation.IsEmpty(value) {
		return nil
	}
	s, ok := value.(string)
	if !ok || !Valid(s) {
		return r.err
	}
	return nil
}

// Error sets the message returned on failure.
func (r rule) Error(message string) rule {
	r.err = r.err.SetMessage(message)
	return r
}
