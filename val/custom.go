package val

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Custom validation tags.
const (
	TagNotBlank      = "notblank"
	TagNonNegDecimal = "nonneg_decimal"
)

func registerCustomValidations(v *validator.Validate) {
	_ = v.RegisterValidation(TagNotBlank, func(fl validator.FieldLevel) bool {
		return IsNotBlank(fl.Field().String())
	})
	_ = v.RegisterValidation(TagNonNegDecimal, func(fl validator.FieldLevel) bool {
		return IsNonNegativeDecimal(fl.Field().String())
	})
}

// IsNotBlank reports whether s contains anything besides whitespace.
func IsNotBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsNonNegativeDecimal reports whether s parses as a finite number >= 0.
func IsNonNegativeDecimal(s string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return f >= 0
}
