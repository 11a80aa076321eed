// Package validation holds the input rules shared by the HTTP layer and the mock API.
package validation

import (
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"aliascore/internal/domain/entity"
	domainerrors "aliascore/internal/domain/errors"
	"aliascore/internal/errors"

	"github.com/go-playground/validator/v10"
)

const (
	MinDisplayNameLength = 3
	MaxDisplayNameLength = 30

	// DisplayNameTag is the struct tag enforcing ValidateDisplayName.
	DisplayNameTag = "displayname"
)

var displayNamePattern = regexp.MustCompile(`^[a-zA-Z0-9\s.\-']{3,30}$`)

var (
	defaultValidate *validator.Validate
	defaultOnce     sync.Once
)

// New returns a validator with the project's custom tags registered.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, DisplayNameTag, func(fl validator.FieldLevel) bool {
		return ValidateDisplayName(fl.Field().String()) == nil
	})

	return v
}

// mustRegister panics when tag cannot be registered; tags are constants, so
// a failure is a programming error.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(errors.Wrapf(err, "register %q validation", tag))
	}
}

func shared() *validator.Validate {
	defaultOnce.Do(func() {
		defaultValidate = New()
	})

	return defaultValidate
}

// ValidateDisplayName checks a display name: required, 3-30 characters,
// letters, digits, whitespace and . - ' only.
func ValidateDisplayName(name string) error {
	switch n := utf8.RuneCountInString(name); {
	case strings.TrimSpace(name) == "":
		return domainerrors.ErrValidationFailed.WithDetails("Display name is required")
	case n < MinDisplayNameLength:
		return domainerrors.ErrValidationFailed.WithDetails("Display name must be at least 3 characters")
	case n > MaxDisplayNameLength:
		return domainerrors.ErrValidationFailed.WithDetails("Display name must be no more than 30 characters")
	case !displayNamePattern.MatchString(name):
		return domainerrors.ErrValidationFailed.WithDetails("Display name can only contain letters, numbers, spaces, and . - ' characters")
	}

	return nil
}

// ValidateEmail performs basic email syntax validation.
func ValidateEmail(email string) error {
	if err := shared().Var(email, "required,email"); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("Please enter a valid email address")
	}

	return nil
}

// ValidateURL checks that raw is an absolute URL.
func ValidateURL(raw string) error {
	if err := shared().Var(raw, "required,url"); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("Please enter a valid URL")
	}

	return nil
}

// IsWithinDomainLimit reports whether one more domain can be linked.
func IsWithinDomainLimit(currentCount int) bool {
	return currentCount < entity.MaxDomainsPerUser
}
