package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// phonePattern accepts international numbers (+ followed by 10-15 digits)
// or the US dashed form NNN-NNN-NNNN. Phone numbers are stored verbatim.
var phonePattern = regexp.MustCompile(`^(\+\d{10,15}|\d{3}-\d{3}-\d{4})$`)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidEmail reports whether email is a well-formed, non-empty address
func ValidEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// ValidPhone reports whether phone matches one of the accepted formats
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
