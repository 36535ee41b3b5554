package validate_test

import (
	"testing"

	"github.com/Astemirdum/smart-library/pkg/validate"
	"github.com/stretchr/testify/require"
)

func TestCustomValidator_Validate(t *testing.T) {
	type req struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=6"`
	}
	v := validate.NewCustomValidator()

	require.NoError(t, v.Validate(req{Email: "john@example.com", Password: "secret1"}))
	require.Error(t, v.Validate(req{Email: "john", Password: "secret1"}))
	require.Error(t, v.Validate(req{Email: "john@example.com", Password: "123"}))
}
