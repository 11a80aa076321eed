// Package validator adapts go-playground/validator to echo.
package validator

import (
	"strings"

	domainerrors "aliascore/internal/domain/errors"
	"aliascore/internal/errors"
	"aliascore/internal/validation"

	govalidator "github.com/go-playground/validator/v10"
)

// Validator implements echo.Validator.
type Validator struct {
	validate *govalidator.Validate
}

// New returns a Validator with the project's custom tags.
func New() *Validator {
	return &Validator{validate: validation.New()}
}

// Validate checks i and reports failures as ErrValidationFailed with the
// offending fields in the details.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs govalidator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate request")
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(msgs, "; "))
}

func fieldMessage(fe govalidator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case validation.DisplayNameTag:
		name, _ := fe.Value().(string)
		var appErr domainerrors.AppError
		if errors.As(validation.ValidateDisplayName(name), &appErr) {
			return appErr.Details()
		}

		return fe.Field() + " is invalid"
	default:
		return fe.Field() + " failed " + fe.Tag()
	}
}
