package validation

import (
	"strings"
	"testing"

	domainerrors "aliascore/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		details string
	}{
		{name: "simple", input: "Test User"},
		{name: "punctuation", input: "J.R. O'Neil-Smith"},
		{name: "minimum length", input: "abc"},
		{name: "maximum length", input: strings.Repeat("a", 30)},
		{name: "empty", input: "", details: "Display name is required"},
		{name: "only spaces", input: "    ", details: "Display name is required"},
		{name: "too short", input: "ab", details: "Display name must be at least 3 characters"},
		{name: "too long", input: strings.Repeat("a", 31), details: "Display name must be no more than 30 characters"},
		{name: "symbols", input: "bad@name!", details: "Display name can only contain letters, numbers, spaces, and . - ' characters"},
		{name: "non ascii", input: "Jürgen", details: "Display name can only contain letters, numbers, spaces, and . - ' characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDisplayName(tt.input)
			if tt.details == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.details, appErr.Details())
		})
	}
}

func TestDisplayNameTag(t *testing.T) {
	type input struct {
		DisplayName string `validate:"displayname"`
	}

	v := New()

	assert.NoError(t, v.Struct(input{DisplayName: "Test User"}))
	assert.Error(t, v.Struct(input{DisplayName: "x"}))
}

func TestMustRegister_PanicsOnInvalidTag(t *testing.T) {
	v := validator.New()
	accept := func(validator.FieldLevel) bool { return true }

	assert.NotPanics(t, func() { mustRegister(v, DisplayNameTag, accept) })
	assert.Panics(t, func() { mustRegister(v, "", accept) })
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("testuser@example.com"))
	assert.ErrorIs(t, ValidateEmail(""), domainerrors.ErrValidationFailed)
	assert.ErrorIs(t, ValidateEmail("not-an-email"), domainerrors.ErrValidationFailed)
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("https://example.com/avatar.png"))
	assert.ErrorIs(t, ValidateURL("not a url"), domainerrors.ErrValidationFailed)
	assert.ErrorIs(t, ValidateURL(""), domainerrors.ErrValidationFailed)
}

func TestIsWithinDomainLimit(t *testing.T) {
	assert.True(t, IsWithinDomainLimit(0))
	assert.True(t, IsWithinDomainLimit(9))
	assert.False(t, IsWithinDomainLimit(10))
}
