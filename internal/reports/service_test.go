package reports

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aais-kitchen-backend/internal/platform/apierr"
	"aais-kitchen-backend/internal/platform/clock"
)

type fakeRepo struct {
	attendance []AttendanceRow
	guests     []GuestRow

	from, to time.Time
}

func (f *fakeRepo) AttendanceBetween(_ context.Context, _ string, from, to time.Time) ([]AttendanceRow, error) {
	f.from, f.to = from, to
	return f.attendance, nil
}

func (f *fakeRepo) GuestMealsBetween(_ context.Context, _ string, from, to time.Time) ([]GuestRow, error) {
	f.from, f.to = from, to
	return f.guests, nil
}

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestService(repo Repository) *Service {
	return newService(repo, clock.NewFixed(testNow), time.UTC)
}

func TestAttendance_Table(t *testing.T) {
	day := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	repo := &fakeRepo{attendance: []AttendanceRow{
		{Date: day, MealType: "lunch", MemberID: "m1", MemberName: "Ravi, Jr.", ScannedAt: day.Add(13 * time.Hour)},
	}}
	svc := newTestService(repo)

	tbl, err := svc.Attendance(context.Background(), "fr-1", "2025-03-01", "")
	require.NoError(t, err)
	assert.Equal(t, "attendance_20250301_20250310.csv", tbl.Filename)
	assert.Equal(t, "2025-03-10", repo.to.Format("2006-01-02"))
	require.Len(t, tbl.Records, 1)
	assert.Equal(t, []string{"2025-03-09", "lunch", "m1", "Ravi, Jr.", "2025-03-09T13:00:00Z"}, tbl.Records[0])

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl, true))
	assert.Equal(t,
		"\xef\xbb\xbfdate,meal_type,mess_member_id,member_name,scanned_at\n"+
			"2025-03-09,lunch,m1,\"Ravi, Jr.\",2025-03-09T13:00:00Z\n",
		buf.String())

	buf.Reset()
	require.NoError(t, WriteCSV(&buf, tbl, false))
	assert.Equal(t, byte('d'), buf.Bytes()[0])
}

func TestGuestMeals_HalfOpenRange(t *testing.T) {
	repo := &fakeRepo{guests: []GuestRow{
		{Date: time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC), MealType: "dinner", GuestName: "Asha",
			NoOfPerson: 2, Price: decimal.NewFromInt(100), MemberName: "Ravi"},
	}}
	svc := newTestService(repo)

	tbl, err := svc.GuestMeals(context.Background(), "fr-1", "2025-03-10", "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-11", repo.to.Format("2006-01-02"))
	assert.Equal(t, []string{"2025-03-10T20:00:00Z", "dinner", "Asha", "2", "100.00", "Ravi"}, tbl.Records[0])
}

func TestParseRange(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	ctx := context.Background()

	_, err := svc.Attendance(ctx, "fr-1", "2025-03-10", "2025-03-01")
	assert.True(t, apierr.Is(err, apierr.CodeInvalidArgument))

	_, err = svc.Attendance(ctx, "fr-1", "2025/03/01", "")
	assert.True(t, apierr.Is(err, apierr.CodeInvalidArgument))

	// 92日ちょうどは可、93日は不可
	_, err = svc.Attendance(ctx, "fr-1", "2025-01-01", "2025-04-02")
	assert.NoError(t, err)
	_, err = svc.Attendance(ctx, "fr-1", "2025-01-01", "2025-04-03")
	assert.True(t, apierr.Is(err, apierr.CodeInvalidArgument))
}
