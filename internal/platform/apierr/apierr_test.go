package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aais-kitchen-backend/internal/platform/logger"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Invalid("x"), http.StatusBadRequest},
		{Unauthenticated("x"), http.StatusUnauthorized},
		{Forbidden("x"), http.StatusForbidden},
		{NotFound("x"), http.StatusNotFound},
		{Conflict("x"), http.StatusConflict},
		{TooManyRequests("x"), http.StatusTooManyRequests},
		{Internal("x"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", Conflict("dup")), http.StatusConflict},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Status(tt.err), tt.err.Error())
	}
}

func TestFromHidesInfrastructureErrors(t *testing.T) {
	dto := From(errors.New("dial tcp 10.0.0.1:3306: connection refused"))
	assert.Equal(t, CodeInternal, dto.Error.Code)
	assert.Equal(t, "internal error", dto.Error.Message)

	dto = From(NotFound("mess member not found"))
	assert.Equal(t, CodeNotFound, dto.Error.Code)
	assert.Equal(t, "mess member not found", dto.Error.Message)
}

func TestWriteRendersEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	Write(c, logger.Discard(), Forbidden("franchise mismatch"))

	require.Equal(t, http.StatusForbidden, w.Code)
	var body ErrorDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, CodeForbidden, body.Error.Code)
	assert.Equal(t, "franchise mismatch", body.Error.Message)
}
