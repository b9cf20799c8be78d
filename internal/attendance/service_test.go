package attendance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aais-kitchen-backend/internal/mealqr"
	"aais-kitchen-backend/internal/platform/apierr"
	"aais-kitchen-backend/internal/platform/clock"
	"aais-kitchen-backend/internal/platform/idgen"
	"aais-kitchen-backend/internal/platform/logger"
	"aais-kitchen-backend/internal/platform/mealtype"
)

type fakeRepo struct {
	mu        sync.Mutex
	codes     map[string]bool // qr|meal|date|fid
	members   map[string]*Member
	records   []Record
	insertErr error
	lookups   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{codes: map[string]bool{}, members: map[string]*Member{}}
}

func codeKey(qr string, m mealtype.MealType, d time.Time, fid string) string {
	return qr + "|" + string(m) + "|" + d.Format("2006-01-02") + "|" + fid
}

// issue: 管理者が発行した状態を作る
func (f *fakeRepo) issue(fid string, d time.Time) {
	for _, m := range mealtype.All() {
		f.codes[codeKey(mealqr.NewToken(m, d, fid).String(), m, d, fid)] = true
	}
}

func (f *fakeRepo) CodeExists(_ context.Context, qr string, m mealtype.MealType, d time.Time, fid string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	return f.codes[codeKey(qr, m, d, fid)], nil
}

func (f *fakeRepo) MemberByUser(_ context.Context, userID string) (*Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[userID]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeRepo) Insert(_ context.Context, r Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, x := range f.records {
		if x.MessMemberID == r.MessMemberID && x.Date.Equal(r.Date) && x.MealType == r.MealType {
			return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
		}
	}
	f.records = append(f.records, r)
	return nil
}

func (f *fakeRepo) List(_ context.Context, q ListQuery) ([]Record, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Record
	for _, r := range f.records {
		if q.MessMemberID != "" && r.MessMemberID != q.MessMemberID {
			continue
		}
		if q.FranchiseID != "" && r.FranchiseID != q.FranchiseID {
			continue
		}
		if q.On != nil && r.Date.Format("2006-01-02") != *q.On {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) CountByMeal(_ context.Context, fid string, d time.Time) (map[mealtype.MealType]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := mealtype.Counts()
	for _, r := range f.records {
		if r.FranchiseID == fid && r.Date.Equal(d) && r.Attended {
			out[r.MealType]++
		}
	}
	return out, nil
}

func (f *fakeRepo) Stats(_ context.Context, fid string, from, to time.Time, limit int) ([]StatsRow, error) {
	return []StatsRow{{MessMemberID: "m1", Count: 2}}, nil
}

var (
	testNow   = time.Date(2025, 3, 10, 12, 15, 0, 0, time.UTC)
	testToday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
)

func newTestService(repo Repository) (*Service, *clock.Fixed) {
	c := clock.NewFixed(testNow)
	svc := newService(repo, c, idgen.NewSequence("att"), Options{Location: time.UTC, ScanCooldown: 3 * time.Second}, logger.Discard())
	return svc, c
}

// fixture: fr-1 に u1 (m1)、fr-2 に u2 (m2)。今日の QR を両方発行済み
func fixture() *fakeRepo {
	repo := newFakeRepo()
	repo.members["u1"] = &Member{ID: "m1", FranchiseID: "fr-1"}
	repo.members["u2"] = &Member{ID: "m2", FranchiseID: "fr-2"}
	repo.issue("fr-1", testToday)
	repo.issue("fr-2", testToday)
	return repo
}

func lunchToken(fid string, d time.Time) string {
	return mealqr.NewToken(mealtype.Lunch, d, fid).String()
}

func TestScan_Success(t *testing.T) {
	repo := fixture()
	svc, _ := newTestService(repo)

	rec, err := svc.Scan(context.Background(), "u1", lunchToken("fr-1", testToday), mealtype.Lunch)
	require.NoError(t, err)

	require.Len(t, repo.records, 1)
	got := repo.records[0]
	assert.Equal(t, "m1", got.MessMemberID)
	assert.Equal(t, "fr-1", got.FranchiseID)
	assert.Equal(t, mealtype.Lunch, got.MealType)
	assert.True(t, got.Attended)
	assert.True(t, testToday.Equal(got.Date))
	assert.Equal(t, rec.ID, got.ID)
}

func TestScan_FranchiseMismatchNeverInserts(t *testing.T) {
	repo := fixture()
	svc, _ := newTestService(repo)

	// u2 は fr-2 の会員。fr-1 の有効な QR を読んでも記録しない
	_, err := svc.Scan(context.Background(), "u2", lunchToken("fr-1", testToday), mealtype.Lunch)
	assert.True(t, apierr.Is(err, apierr.CodeForbidden))
	assert.Empty(t, repo.records)
}

func TestScan_WrongMealOrDateNeverInserts(t *testing.T) {
	repo := fixture()
	yesterday := testToday.AddDate(0, 0, -1)
	repo.issue("fr-1", yesterday)

	cases := []struct {
		name     string
		token    string
		expected mealtype.MealType
	}{
		{"wrong meal", lunchToken("fr-1", testToday), mealtype.Dinner},
		{"yesterday", lunchToken("fr-1", yesterday), mealtype.Lunch},
		{"tomorrow", lunchToken("fr-1", testToday.AddDate(0, 0, 1)), mealtype.Lunch},
		{"never issued", lunchToken("fr-9", testToday), mealtype.Lunch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newTestService(repo)
			_, err := svc.Scan(context.Background(), "u1", tc.token, tc.expected)
			require.Error(t, err)
			assert.True(t, apierr.Is(err, apierr.CodeInvalidArgument))
			var api *apierr.APIError
			require.True(t, errors.As(err, &api))
			assert.Equal(t, "invalid QR code", api.Message)
			assert.Empty(t, repo.records)
		})
	}
}

func TestScan_MalformedToken(t *testing.T) {
	repo := fixture()
	svc, _ := newTestService(repo)

	_, err := svc.Scan(context.Background(), "u1", "QR_LUNCH_fr-1", mealtype.Lunch)
	var api *apierr.APIError
	require.True(t, errors.As(err, &api))
	assert.Equal(t, apierr.CodeInvalidArgument, api.Code)
	assert.Equal(t, "invalid QR code format", api.Message)
	assert.Zero(t, repo.lookups, "format errors are rejected before any query")
}

func TestScan_NotAMember(t *testing.T) {
	repo := fixture()
	svc, _ := newTestService(repo)

	_, err := svc.Scan(context.Background(), "stranger", lunchToken("fr-1", testToday), mealtype.Lunch)
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))
	assert.Empty(t, repo.records)
}

func TestScan_TwiceIsNotDoubleCounted(t *testing.T) {
	repo := fixture()
	svc, clk := newTestService(repo)
	tok := lunchToken("fr-1", testToday)

	_, err := svc.Scan(context.Background(), "u1", tok, mealtype.Lunch)
	require.NoError(t, err)

	clk.Advance(4 * time.Second)
	_, err = svc.Scan(context.Background(), "u1", tok, mealtype.Lunch)
	assert.True(t, apierr.Is(err, apierr.CodeConflict))
	assert.Len(t, repo.records, 1)

	sum, err := svc.Summary(context.Background(), "fr-1", "today")
	require.NoError(t, err)
	assert.Equal(t, int64(1), sum.Counts[mealtype.Lunch])
	assert.Equal(t, int64(0), sum.Counts[mealtype.Breakfast])
	assert.Equal(t, int64(1), sum.Total)
}

func TestScan_CooldownGate(t *testing.T) {
	repo := fixture()
	svc, clk := newTestService(repo)
	tok := mealqr.NewToken(mealtype.Breakfast, testToday, "fr-1").String()

	// 失敗したスキャンでも cooldown に入る
	_, err := svc.Scan(context.Background(), "u1", "garbage", mealtype.Breakfast)
	assert.True(t, apierr.Is(err, apierr.CodeInvalidArgument))

	_, err = svc.Scan(context.Background(), "u1", tok, mealtype.Breakfast)
	assert.True(t, apierr.Is(err, apierr.CodeTooManyRequests))
	assert.Empty(t, repo.records)

	clk.Advance(4 * time.Second)
	_, err = svc.Scan(context.Background(), "u1", tok, mealtype.Breakfast)
	require.NoError(t, err)
	assert.Len(t, repo.records, 1)
}

func TestScan_InsertErrorIsInternal(t *testing.T) {
	repo := fixture()
	repo.insertErr = errors.New("deadlock")
	svc, _ := newTestService(repo)

	_, err := svc.Scan(context.Background(), "u1", lunchToken("fr-1", testToday), mealtype.Lunch)
	require.Error(t, err)
	var api *apierr.APIError
	assert.False(t, errors.As(err, &api))
	assert.Equal(t, 500, apierr.Status(err))
}

func TestScan_TimeZoneDecidesToday(t *testing.T) {
	// UTC 20:00 = IST 翌日 01:30
	ist := time.FixedZone("IST", 5*3600+1800)
	repo := fixture()
	istTomorrow := time.Date(2025, 3, 11, 0, 0, 0, 0, ist)
	repo.issue("fr-1", istTomorrow)

	c := clock.NewFixed(time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC))
	svc := newService(repo, c, idgen.NewSequence("att"), Options{Location: ist, ScanCooldown: 3 * time.Second}, logger.Discard())

	_, err := svc.Scan(context.Background(), "u1", lunchToken("fr-1", istTomorrow), mealtype.Lunch)
	require.NoError(t, err)
}

func TestHistoryAndList(t *testing.T) {
	repo := fixture()
	svc, _ := newTestService(repo)
	_, err := svc.Scan(context.Background(), "u1", lunchToken("fr-1", testToday), mealtype.Lunch)
	require.NoError(t, err)
	_, err = svc.Scan(context.Background(), "u2", lunchToken("fr-2", testToday), mealtype.Lunch)
	require.NoError(t, err)

	items, total, err := svc.History(context.Background(), "u1", ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "m1", items[0].MessMemberID)
	assert.Equal(t, "2025-03-10", items[0].Date)

	_, _, err = svc.History(context.Background(), "stranger", ListQuery{})
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))

	on := "today"
	items, _, err = svc.List(context.Background(), "fr-2", ListQuery{On: &on})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "m2", items[0].MessMemberID)

	bad := "yesterday"
	_, _, err = svc.List(context.Background(), "fr-2", ListQuery{On: &bad})
	assert.True(t, apierr.Is(err, apierr.CodeInvalidArgument))
}

func TestStats_Validation(t *testing.T) {
	svc, _ := newTestService(fixture())

	_, err := svc.Stats(context.Background(), "fr-1", StatsRequest{From: "2025-03-10", To: "2025-03-01"})
	assert.True(t, apierr.Is(err, apierr.CodeInvalidArgument))

	_, err = svc.Stats(context.Background(), "fr-1", StatsRequest{From: "2023-01-01", To: "2025-03-01"})
	assert.True(t, apierr.Is(err, apierr.CodeInvalidArgument))

	rows, err := svc.Stats(context.Background(), "fr-1", StatsRequest{From: "2025-03-01", To: "2025-03-10"})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
