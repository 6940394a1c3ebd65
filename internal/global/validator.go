package global

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

// InitValidator initializes the shared validator and registers custom rules.
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("strong_password", validateStrongPassword)
}

// validateStrongPassword requires at least 8 characters with an upper case
// letter, a lower case letter and a digit.
func validateStrongPassword(fl validator.FieldLevel) bool {
	value := fl.Field().String()

	if len(value) < 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit bool
	for _, char := range value {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}

	return hasUpper && hasLower && hasDigit
}
