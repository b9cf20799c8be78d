package menu

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aais-kitchen-backend/internal/platform/mealtype"
)

func TestStore_UpdateFoodItem_OnlyGivenColumns(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	name := "Kanda Poha"
	mock.ExpectExec("UPDATE food_items SET name = \\?, updated_at = \\? WHERE id = \\?").
		WithArgs(name, now, "f1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM food_items WHERE id = \\?").
		WithArgs("f1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category", "veg_type", "price", "image_url", "created_at", "updated_at"}).
			AddRow("f1", name, "main", "veg", []byte("40.00"), "", now, now))

	f, err := NewStore(conn).UpdateFoodItem(context.Background(), "f1", UpdateFoodItemRequest{Name: &name}, now)
	require.NoError(t, err)
	assert.Equal(t, name, f.Name)
	assert.Equal(t, CategoryMain, f.Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_UpdateFoodItem_Missing(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	name := "x"
	mock.ExpectExec("UPDATE food_items SET").WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = NewStore(conn).UpdateFoodItem(context.Background(), "f9", UpdateFoodItemRequest{Name: &name}, time.Now())
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStore_UpsertMealAndRead(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	m := &Meal{
		ID:          "meal-1",
		FranchiseID: "fr-1",
		Date:        day,
		MealType:    mealtype.Lunch,
		Menu:        Menu{Items: []MenuItem{{ID: "f1", Name: "Thali", VegType: Veg}}},
		UpdatedAt:   day,
	}
	body := []byte(`{"items":[{"id":"f1","name":"Thali","image_url":"","veg_type":"veg"}]}`)

	mock.ExpectExec("INSERT INTO meals .* ON DUPLICATE KEY UPDATE menu = VALUES\\(menu\\)").
		WithArgs("meal-1", "fr-1", "2025-03-10", "lunch", body, day).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM meals\\s+WHERE franchise_id = \\? AND date = \\?").
		WithArgs("fr-1", "2025-03-10").
		WillReturnRows(sqlmock.NewRows([]string{"id", "franchise_id", "date", "meal_type", "menu", "updated_at"}).
			AddRow("meal-1", "fr-1", day, "lunch", body, day))

	s := NewStore(conn)
	require.NoError(t, s.UpsertMeal(context.Background(), m))

	meals, err := s.MealsOn(context.Background(), "fr-1", day)
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, "Thali", meals[0].Menu.Items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListFoodItems_Filters(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("FROM food_items WHERE 1=1 AND category = \\? AND name LIKE \\?").
		WithArgs("snack", "%50\\%%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category", "veg_type", "price", "image_url", "created_at", "updated_at"}))

	items, err := NewStore(conn).ListFoodItems(context.Background(), CategorySnack, "50%")
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}
