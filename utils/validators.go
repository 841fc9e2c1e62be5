package utils

import (
	"github.com/go-playground/validator/v10"
)

// Validate is the shared instance for field-level checks outside
// gin's request binding (which carries its own engine).
var Validate = validator.New()

// ValidDate checks the YYYY-MM-DD form used by experience dates.
func ValidDate(date string) bool {
	return Validate.Var(date, "datetime=2006-01-02") == nil
}
