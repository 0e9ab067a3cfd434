package food

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/foodcatalog/val"
)

const (
	codeInvalidFieldType = "INVALID_FIELD_TYPE"

	// maxPrice is the largest value numeric(10,2) can hold.
	maxPrice = 99_999_999.99
)

// Field is a request value that distinguishes "absent" from "present".
// JSON strings, numbers and booleans are kept as their text; null sets Null.
type Field struct {
	Value string
	Set   bool
	Null  bool
}

// Present returns a present field holding v.
func Present(v string) Field {
	return Field{Value: v, Set: true}
}

// PresentNull returns a present field holding null.
func PresentNull() Field {
	return Field{Set: true, Null: true}
}

func (f *Field) UnmarshalJSON(b []byte) error {
	f.Set = true
	b = bytes.TrimSpace(b)

	switch {
	case bytes.Equal(b, []byte("null")):
		f.Null = true
		f.Value = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		return json.Unmarshal(b, &f.Value)
	case len(b) > 0 && (b[0] == '{' || b[0] == '['):
		return errx.New("value must be a string, number or boolean",
			errx.WithCode(codeInvalidFieldType),
			errx.WithType(errx.T_Validation),
		)
	default:
		f.Value = string(b)
		return nil
	}
}

// blank reports whether the field is absent, null, or whitespace only.
func (f Field) blank() bool {
	return !f.Set || f.Null || strings.TrimSpace(f.Value) == ""
}

// ptr returns nil for an absent or null field, otherwise a pointer to its value.
func (f Field) ptr() *string {
	if !f.Set || f.Null {
		return nil
	}
	v := f.Value
	return &v
}

// CreateInput is the payload of a create request.
type CreateInput struct {
	Name        Field `json:"name"`
	Description Field `json:"description"`
	Price       Field `json:"price"`
	Category    Field `json:"category"`
	Available   Field `json:"available"`
}

// UpdateInput is the payload of an update request. Only present fields are changed.
type UpdateInput struct {
	ID          string `json:"-"           params:"id" validate:"required"`
	Name        Field  `json:"name"`
	Description Field  `json:"description"`
	Price       Field  `json:"price"`
	Category    Field  `json:"category"`
	Available   Field  `json:"available"`
}

// requiredFields mirrors the create payload for tag based validation.
type requiredFields struct {
	Name     string `json:"name"     validate:"required,notblank"`
	Price    string `json:"price"    validate:"required,nonneg_decimal"`
	Category string `json:"category" validate:"required,notblank"`
}

// ToFood validates the input and converts it into a new record without image.
func (in CreateInput) ToFood() (*Food, error) {
	err := val.ValidateSchema(&requiredFields{
		Name:     valueOf(in.Name),
		Price:    valueOf(in.Price),
		Category: valueOf(in.Category),
	})
	if err != nil {
		return nil, errx.Wrap(err)
	}

	price, err := ParsePrice(in.Price.Value)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	available, err := ParseAvailable(in.Available)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return &Food{
		Name:        in.Name.Value,
		Description: in.Description.ptr(),
		Price:       price,
		Category:    in.Category.Value,
		Available:   available,
	}, nil
}

// ToPatch converts the present fields into a Patch.
func (in UpdateInput) ToPatch() (Patch, error) {
	var p Patch

	if in.Name.Set {
		if in.Name.blank() {
			return Patch{}, invalidField(CodeInvalidField, ColName, "Must not be blank")
		}
		p.SetName(in.Name.Value)
	}

	if in.Description.Set {
		p.SetDescription(in.Description.ptr())
	}

	if in.Price.Set {
		if in.Price.Null {
			return Patch{}, invalidField(CodeInvalidPrice, ColPrice, "Must be a valid non-negative number")
		}
		price, err := ParsePrice(in.Price.Value)
		if err != nil {
			return Patch{}, errx.Wrap(err)
		}
		p.SetPrice(price)
	}

	if in.Category.Set {
		if in.Category.blank() {
			return Patch{}, invalidField(CodeInvalidField, ColCategory, "Must not be blank")
		}
		p.SetCategory(in.Category.Value)
	}

	if in.Available.Set {
		available, err := ParseAvailable(in.Available)
		if err != nil {
			return Patch{}, errx.Wrap(err)
		}
		p.SetAvailable(available)
	}

	return p, nil
}

// ParsePrice parses a non-negative finite decimal that fits numeric(10,2).
func ParsePrice(s string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, invalidField(CodeInvalidPrice, ColPrice, "Must be a valid non-negative number")
	}
	if price > maxPrice {
		return 0, invalidField(CodeInvalidPrice, ColPrice, "Must not exceed 99999999.99")
	}
	return price, nil
}

// ParseBool accepts "true" and "false" in any letter case; anything else is an error.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, invalidField(CodeInvalidAvailable, ColAvailable, "Must be true or false")
}

// ParseAvailable coerces the availability flag. Absent means true; present but
// invalid, including null, is an error.
func ParseAvailable(f Field) (bool, error) {
	if !f.Set {
		return true, nil
	}
	if f.Null {
		return false, invalidField(CodeInvalidAvailable, ColAvailable, "Must be true or false")
	}
	return ParseBool(f.Value)
}

// ParseQueryBool coerces a list filter value: exactly "true" is true, any other
// value is false. Callers treat an empty value as no constraint.
func ParseQueryBool(s string) bool {
	return s == "true"
}

func valueOf(f Field) string {
	if f.Null {
		return ""
	}
	return f.Value
}
