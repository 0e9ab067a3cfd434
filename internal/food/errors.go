package food

import (
	"github.com/code19m/errx"
)

// Error codes.
const (
	CodeFoodNotFound     = "FOOD_NOT_FOUND"
	CodeStoreError       = "STORE_ERROR"
	CodeInvalidPrice     = "INVALID_PRICE"
	CodeInvalidAvailable = "INVALID_AVAILABLE"
	CodeInvalidField     = "INVALID_FIELD"
	CodeImageNotFound    = "IMAGE_NOT_FOUND"
)

// ErrNotFound returns the error reported for an unknown food id.
func ErrNotFound(id string) error {
	return errx.New("Food item not found",
		errx.WithCode(CodeFoodNotFound),
		errx.WithType(errx.T_NotFound),
		errx.WithDetails(errx.D{"id": id}),
	)
}

// ErrNoImage returns the error reported when a record has no usable image.
func ErrNoImage(id string) error {
	return errx.New("Food item has no image",
		errx.WithCode(CodeImageNotFound),
		errx.WithType(errx.T_NotFound),
		errx.WithDetails(errx.D{"id": id}),
	)
}

// IsNotFound reports whether err means the food record does not exist.
func IsNotFound(err error) bool {
	return errx.IsCodeIn(err, CodeFoodNotFound)
}

// IsValidation reports whether err was caused by invalid input.
func IsValidation(err error) bool {
	return err != nil && errx.GetType(err) == errx.T_Validation
}

func invalidField(code, field, msg string) error {
	return errx.New(msg,
		errx.WithCode(code),
		errx.WithType(errx.T_Validation),
		errx.WithFields(errx.M{field: msg}),
	)
}
