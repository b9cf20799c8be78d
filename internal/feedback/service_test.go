package feedback

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aais-kitchen-backend/internal/platform/apierr"
	"aais-kitchen-backend/internal/platform/clock"
	"aais-kitchen-backend/internal/platform/idgen"
	"aais-kitchen-backend/internal/platform/mealtype"
)

type fakeRepo struct {
	members map[string]*Member
	names   map[string]string // member -> name
	rows    []Feedback
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		members: map[string]*Member{"u1": {ID: "m1", FranchiseID: "fr-1"}},
		names:   map[string]string{"m1": "Ravi"},
	}
}

func (f *fakeRepo) MemberByUser(_ context.Context, userID string) (*Member, error) {
	return f.members[userID], nil
}

func (f *fakeRepo) Create(_ context.Context, fb *Feedback) error {
	f.rows = append(f.rows, *fb)
	return nil
}

func (f *fakeRepo) ListByFranchise(_ context.Context, franchiseID string, meal mealtype.MealType) ([]FeedbackWithMember, error) {
	var out []FeedbackWithMember
	for i := len(f.rows) - 1; i >= 0; i-- {
		r := f.rows[i]
		if r.FranchiseID == franchiseID && (meal == "" || r.MealType == meal) {
			out = append(out, FeedbackWithMember{Feedback: r, MemberName: f.names[r.MessMemberID]})
		}
	}
	return out, nil
}

var testNow = time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

func newTestService(repo Repository) *Service {
	return newService(repo, clock.NewFixed(testNow), idgen.NewSequence("fb"), time.UTC)
}

func TestSubmit(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	f, err := svc.Submit(ctx, "u1", SubmitRequest{MealType: "LUNCH", Rating: 4, Comments: " tasty "})
	require.NoError(t, err)
	assert.Equal(t, mealtype.Lunch, f.MealType)
	assert.Equal(t, "tasty", f.Comments)
	assert.Equal(t, "2025-03-10", f.Date.Format("2006-01-02"))
	assert.Equal(t, "fr-1", f.FranchiseID)

	_, err = svc.Submit(ctx, "u1", SubmitRequest{MealType: "lunch", Rating: 6})
	assert.True(t, apierr.Is(err, apierr.CodeInvalidArgument))

	_, err = svc.Submit(ctx, "u1", SubmitRequest{MealType: "supper", Rating: 3})
	assert.True(t, apierr.Is(err, apierr.CodeInvalidArgument))

	_, err = svc.Submit(ctx, "u9", SubmitRequest{MealType: "lunch", Rating: 3})
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))
}

func TestList(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Submit(ctx, "u1", SubmitRequest{MealType: "lunch", Rating: 4})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, "u1", SubmitRequest{MealType: "dinner", Rating: 5})
	require.NoError(t, err)

	items, err := svc.List(ctx, "fr-1", "")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "fb-2", items[0].ID)
	assert.Equal(t, "Ravi", items[0].MemberName)

	res := toListResponse(items)
	assert.InDelta(t, 4.5, res.AverageRating, 0.001)

	items, err = svc.List(ctx, "fr-1", "lunch")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = svc.List(ctx, "fr-1", "tea")
	assert.True(t, apierr.Is(err, apierr.CodeInvalidArgument))
}
