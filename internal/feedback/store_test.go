package feedback

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aais-kitchen-backend/internal/platform/mealtype"
)

func TestStore_ListByFranchise(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("WHERE f.franchise_id = \\? AND f.meal_type = \\? ORDER BY f.date DESC").
		WithArgs("fr-1", "dinner").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "mess_member_id", "franchise_id", "meal_type", "rating", "comments", "date", "created_at", "name",
		}).AddRow("fb-1", "m1", "fr-1", "dinner", 3, "salty", day, day, "Ravi"))

	items, err := NewStore(conn).ListByFranchise(context.Background(), "fr-1", mealtype.Dinner)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Ravi", items[0].MemberName)
	assert.Equal(t, 3, items[0].Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}
