package cms

import (
	"errors"
	"strings"

	catalogerrors "github.com/abgdnv/missil/internal/errors"
	"github.com/go-playground/validator/v10"
)

// Validation classes, in the order they are checked.
const (
	ClassRequiredFields = "name/category/price"
	ClassImages         = "images"
)

// ValidationError reports the first failing class of a draft along with every failing field.
type ValidationError struct {
	Class  string
	Fields validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Class + " required"
}

func (e *ValidationError) Is(target error) bool {
	return target == catalogerrors.ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Fields
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that d can be committed.
func Validate(d Draft) error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return err
	}
	class := ClassImages
	for _, f := range fields {
		if !strings.HasPrefix(f.StructField(), "Images") {
			class = ClassRequiredFields
			break
		}
	}
	return &ValidationError{Class: class, Fields: fields}
}
