package franchises

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
)

func TestHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := newFakeRepo()
	svc := newTestService(repo)

	r := gin.New()
	authed := r.Group("", authtest.Admin("admin-1", ""))
	admin := r.Group("/admin", authtest.Admin("admin-1", "fr-1"))
	RegisterRoutes(httpx.NewRoutes(r, authed, authed, admin), svc, logger.Discard())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/franchises", strings.NewReader(`{"name":"Kothrud","latitude":18.52,"longitude":73.85}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "/api/v1/franchises/fr-1", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/franchises", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Kothrud"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/franchises/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/franchise", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"fr-1"`)
}
