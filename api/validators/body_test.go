package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/juanfvasquez/pedidos-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required"`
	Price int    `json:"price" validate:"required,gt=0"`
}

func request(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeJSONBody(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		var dest samplePayload
		require.NoError(t, DecodeJSONBody(request(`{"name":"Arepa","price":3000}`), &dest))
		assert.Equal(t, "Arepa", dest.Name)
		assert.Equal(t, 3000, dest.Price)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		var dest samplePayload
		err := DecodeJSONBody(request(`{"name":"Arepa","price":1,"sneaky":true}`), &dest)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	})

	t.Run("empty body", func(t *testing.T) {
		var dest samplePayload
		err := DecodeJSONBody(request(""), &dest)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	})

	t.Run("malformed json", func(t *testing.T) {
		var dest samplePayload
		err := DecodeJSONBody(request(`{"name":`), &dest)
		require.NotNil(t, pkgerrors.As(err))
	})

	t.Run("wrong field type", func(t *testing.T) {
		var dest samplePayload
		err := DecodeJSONBody(request(`{"name":"Arepa","price":"expensive"}`), &dest)
		require.NotNil(t, pkgerrors.As(err))
	})

	t.Run("trailing content is rejected", func(t *testing.T) {
		var dest samplePayload
		err := DecodeJSONBody(request(`{"name":"Arepa","price":1}{"again":true}`), &dest)
		require.NotNil(t, pkgerrors.As(err))
	})

	t.Run("validation failures carry field details", func(t *testing.T) {
		var dest samplePayload
		err := DecodeJSONBody(request(`{"name":"","price":-1}`), &dest)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)

		details, ok := typed.Details().([]string)
		require.True(t, ok)
		assert.Contains(t, details, "name is required")
		assert.Contains(t, details, "price must be greater than 0")
	})
}
