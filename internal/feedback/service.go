package feedback

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"aais-kitchen-backend/internal/platform/apierr"
	"aais-kitchen-backend/internal/platform/clock"
	"aais-kitchen-backend/internal/platform/idgen"
	"aais-kitchen-backend/internal/platform/mealtype"
)

type Service struct {
	repo  Repository
	clock clock.Clock
	id    idgen.IDGen
	loc   *time.Location
}

func NewService(conn *sql.DB, loc *time.Location) *Service {
	return newService(NewStore(conn), clock.Real(), idgen.UUID(), loc)
}

func newService(repo Repository, c clock.Clock, id idgen.IDGen, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, clock: c, id: id, loc: loc}
}

// Submit: 日付は今日で固定
func (s *Service) Submit(ctx context.Context, userID string, req SubmitRequest) (*Feedback, error) {
	meal, err := mealtype.Parse(req.MealType)
	if err != nil {
		return nil, apierr.Invalid("meal_type must be breakfast, lunch or dinner")
	}
	if req.Rating < MinRating || req.Rating > MaxRating {
		return nil, apierr.Invalid("rating must be between 1 and 5")
	}

	m, err := s.repo.MemberByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apierr.NotFound("mess member not found")
	}

	id, err := s.id.New()
	if err != nil {
		return nil, err
	}
	f := &Feedback{
		ID:           id,
		MessMemberID: m.ID,
		FranchiseID:  m.FranchiseID,
		MealType:     meal,
		Rating:       req.Rating,
		Comments:     strings.TrimSpace(req.Comments),
		Date:         clock.Today(s.clock, s.loc),
		CreatedAt:    s.clock.Now().UTC(),
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) List(ctx context.Context, franchiseID, meal string) ([]FeedbackWithMember, error) {
	var mt mealtype.MealType
	if meal != "" {
		var err error
		if mt, err = mealtype.Parse(meal); err != nil {
			return nil, apierr.Invalid("meal_type must be breakfast, lunch or dinner")
		}
	}
	return s.repo.ListByFranchise(ctx, franchiseID, mt)
}
