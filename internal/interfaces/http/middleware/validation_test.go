package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusPayload struct {
	Status string `json:"status" binding:"required,orderstatus"`
}

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	t.Run("accepts known statuses", func(t *testing.T) {
		for _, status := range []string{"pending", "paid", "shipped", "delivered", "undelivered"} {
			assert.NoError(t, v.Struct(statusPayload{Status: status}), status)
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		err := v.Struct(statusPayload{Status: "cancelled"})
		require.Error(t, err)

		validationErrors, ok := err.(validator.ValidationErrors)
		require.True(t, ok)
		assert.Equal(t, "status", validationErrors[0].Field())
	})
}
