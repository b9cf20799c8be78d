package holidays

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aais-kitchen-backend/internal/platform/auth/authtest"
	"aais-kitchen-backend/internal/platform/httpx"
	"aais-kitchen-backend/internal/platform/logger"
	"aais-kitchen-backend/internal/platform/validation"
)

func init() {
	if err := validation.Register(); err != nil {
		panic(err)
	}
}

func send(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHolidayHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	member := r.Group("", authtest.Member("u1", "fr-1"))
	admin := r.Group("/admin", authtest.Admin("a1", "fr-1"))
	RegisterRoutes(httpx.NewRoutes(r, member, member, admin), newTestService(newFakeRepo()), logger.Discard())

	w := send(r, http.MethodPost, "/holidays", `{"start_date":"2025-03-12"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(r, http.MethodPost, "/holidays", `{"start_date":"2025-03-12","end_date":"2025-03-15"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"pending"`)
	assert.Contains(t, w.Body.String(), `"end_date":"2025-03-15"`)

	w = send(r, http.MethodPatch, "/admin/holidays/hol-1", `{"status":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(r, http.MethodPatch, "/admin/holidays/hol-1", `{"status":"approved"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = send(r, http.MethodGet, "/holidays", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"approved":1`)

	w = send(r, http.MethodGet, "/admin/holidays?status=approved", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}
