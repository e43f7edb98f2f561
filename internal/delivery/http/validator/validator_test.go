package validator

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Kind     string `json:"kind" validate:"oneof=owner walker"`
}

func TestValidator_FieldErrorsUseJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(&signupRequest{Email: "nope", Password: "abc", Kind: "cat"})
	require.Error(t, err)

	fields, ok := FieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{
		"email":    "email",
		"password": "min=6",
		"kind":     "oneof=owner walker",
	}, fields)

	assert.NoError(t, v.Validate(&signupRequest{Email: "kate@email.com", Password: "secret1", Kind: "owner"}))
}

func TestFieldErrors_OtherErrors(t *testing.T) {
	_, ok := FieldErrors(errors.New("boom"))
	assert.False(t, ok)
}
