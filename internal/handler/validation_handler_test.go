package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstsim/internal/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postJSON(t *testing.T, h gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/validate-field", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h(c)
	return w
}

func TestValidateField(t *testing.T) {
	h := handler.NewValidationHandler()

	t.Run("valid gstin", func(t *testing.T) {
		w := postJSON(t, h.ValidateField, `{"field":"gstin","value":"22AAAAA0000A1Z5"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp handler.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		data := resp.Data.(map[string]any)
		assert.Equal(t, true, data["is_valid"])
	})

	t.Run("invalid gstin carries message", func(t *testing.T) {
		w := postJSON(t, h.ValidateField, `{"field":"gstin","value":"BOGUS"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp handler.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		data := resp.Data.(map[string]any)
		assert.Equal(t, false, data["is_valid"])
		assert.Contains(t, data["error_message"], "15 characters")
	})

	t.Run("unknown field is valid", func(t *testing.T) {
		w := postJSON(t, h.ValidateField, `{"field":"placeOfSupply","value":"anything"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp handler.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]any)
		assert.Equal(t, true, data["is_valid"])
	})

	t.Run("missing field is a bad request", func(t *testing.T) {
		w := postJSON(t, h.ValidateField, `{"value":"x"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
