package holidays

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"aais-kitchen-backend/internal/platform/apierr"
	"aais-kitchen-backend/internal/platform/clock"
	"aais-kitchen-backend/internal/platform/idgen"
	"aais-kitchen-backend/internal/platform/logger"
	"aais-kitchen-backend/internal/platform/validation"
)

type Options struct {
	MaxApproved int
	Location    *time.Location
}

type Service struct {
	repo  Repository
	clock clock.Clock
	id    idgen.IDGen
	opts  Options
	log   logger.Logger
}

func NewService(conn *sql.DB, opts Options, log logger.Logger) *Service {
	return newService(NewStore(conn), clock.Real(), idgen.UUID(), opts, log)
}

func newService(repo Repository, c clock.Clock, id idgen.IDGen, opts Options, log logger.Logger) *Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.MaxApproved <= 0 {
		opts.MaxApproved = 8
	}
	return &Service{repo: repo, clock: c, id: id, opts: opts, log: log}
}

// Request: 承認済みが上限に達していたら受け付けない。新規は pending
func (s *Service) Request(ctx context.Context, userID string, req CreateHolidayRequest) (*Holiday, error) {
	start, err := time.ParseInLocation(validation.DateLayout, req.StartDate, s.opts.Location)
	if err != nil {
		return nil, apierr.Invalid("start_date must be YYYY-MM-DD")
	}
	end, err := time.ParseInLocation(validation.DateLayout, req.EndDate, s.opts.Location)
	if err != nil {
		return nil, apierr.Invalid("end_date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, apierr.Invalid("end_date must not be before start_date")
	}

	m, err := s.repo.MemberByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apierr.NotFound("mess member not found")
	}

	approved, err := s.repo.CountApproved(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	if approved >= s.opts.MaxApproved {
		return nil, apierr.Conflict(fmt.Sprintf("you have already taken %d holidays in this plan", s.opts.MaxApproved))
	}

	id, err := s.id.New()
	if err != nil {
		return nil, err
	}
	h := &Holiday{
		ID:          id,
		MemberID:    m.ID,
		FranchiseID: m.FranchiseID,
		StartDate:   start,
		EndDate:     end,
		Status:      StatusPending,
		RequestedAt: s.clock.Now().UTC(),
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) Mine(ctx context.Context, userID string) ([]HolidayWithMember, error) {
	m, err := s.repo.MemberByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apierr.NotFound("mess member not found")
	}
	return s.repo.ListByMember(ctx, m.ID)
}

func (s *Service) List(ctx context.Context, franchiseID, status string) ([]HolidayWithMember, error) {
	st := Status(status)
	if st != "" && !st.Valid() {
		return nil, apierr.Invalid("status must be pending, approved or rejected")
	}
	return s.repo.ListByFranchise(ctx, franchiseID, st)
}

func (s *Service) SetStatus(ctx context.Context, franchiseID, id, status string) error {
	st := Status(status)
	if !st.Valid() {
		return apierr.Invalid("status must be pending, approved or rejected")
	}
	found, err := s.repo.SetStatus(ctx, franchiseID, id, st)
	if err != nil {
		return err
	}
	if !found {
		return apierr.NotFound("holiday request not found in this franchise")
	}
	s.log.Info("holiday status updated", "holiday_id", id, "status", string(st))
	return nil
}
