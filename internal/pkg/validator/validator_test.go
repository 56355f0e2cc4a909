package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type profileForm struct {
	Name  string `validate:"required,min=2"`
	Email string `validate:"required,email"`
	Role  string `validate:"omitempty,oneof=user provider"`
}

func TestValidate_Passes(t *testing.T) {
	assert.Nil(t, Validate(profileForm{Name: "Aizhan", Email: "aizhan@example.com"}))
}

func TestValidate_TranslatesMessages(t *testing.T) {
	fields := Validate(profileForm{Name: "A", Email: "not-an-email", Role: "admin"})

	assert.Equal(t, map[string]string{
		"name":  "must be at least 2 characters",
		"email": "must be a valid email address",
		"role":  "must be one of: user, provider",
	}, fields)
}

func TestValidate_RequiredFields(t *testing.T) {
	fields := Validate(profileForm{})

	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "is required", fields["email"])
}
