package reports

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aais-kitchen-backend/internal/platform/auth/authtest"
	"aais-kitchen-backend/internal/platform/httpx"
	"aais-kitchen-backend/internal/platform/logger"
)

func TestAttendanceCSVHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	admin := r.Group("/admin", authtest.Admin("a1", "fr-1"))
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	repo := &fakeRepo{attendance: []AttendanceRow{
		{Date: day, MealType: "breakfast", MemberID: "m1", MemberName: "Ravi", ScannedAt: day.Add(8 * time.Hour)},
	}}
	RegisterRoutes(httpx.NewRoutes(r, r, r, admin), newTestService(repo), logger.Discard())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/reports/attendance.csv?bom=false", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attendance_20250310_20250310.csv")
	assert.True(t, strings.HasPrefix(w.Body.String(), "date,meal_type"))
	assert.Contains(t, w.Body.String(), "2025-03-10,breakfast,m1,Ravi,")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/reports/attendance.csv?from=2024-01-01", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ARGUMENT")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/reports/guest-meals.csv?bom=maybe", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
