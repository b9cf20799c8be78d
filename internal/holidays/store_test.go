package holidays

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetStatus(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM holidays WHERE id = \\? AND franchise_id = \\?").
		WithArgs("hol-1", "fr-2").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM holidays WHERE id = \\? AND franchise_id = \\?").
		WithArgs("hol-1", "fr-1").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectExec("UPDATE holidays SET status = \\?").
		WithArgs("approved", "hol-1", "fr-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewStore(conn)
	ok, err := s.SetStatus(context.Background(), "fr-2", "hol-1", StatusApproved)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.SetStatus(context.Background(), "fr-1", "hol-1", StatusApproved)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CountApproved(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("FROM holidays WHERE member_id = \\? AND status = 'approved'").
		WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(8))

	n, err := NewStore(conn).CountApproved(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
