package franchises

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shopspring/decimal"

	"aais-kitchen-backend/internal/platform/apierr"
	"aais-kitchen-backend/internal/platform/clock"
	"aais-kitchen-backend/internal/platform/db"
	"aais-kitchen-backend/internal/platform/idgen"
)

var (
	maxLatitude  = decimal.NewFromInt(90)
	maxLongitude = decimal.NewFromInt(180)
)

type Service struct {
	repo  Repository
	clock clock.Clock
	id    idgen.IDGen
}

func NewService(conn *sql.DB) *Service {
	return newService(NewStore(conn), clock.Real(), idgen.UUID())
}

func newService(repo Repository, c clock.Clock, id idgen.IDGen) *Service {
	return &Service{repo: repo, clock: c, id: id}
}

// Create: admin 1人につき1フランチャイズ
func (s *Service) Create(ctx context.Context, adminUserID string, req CreateFranchiseRequest) (*Franchise, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apierr.Invalid("name is required")
	}
	if req.Latitude != nil && req.Latitude.Abs().GreaterThan(maxLatitude) {
		return nil, apierr.Invalid("latitude out of range")
	}
	if req.Longitude != nil && req.Longitude.Abs().GreaterThan(maxLongitude) {
		return nil, apierr.Invalid("longitude out of range")
	}

	existing, err := s.repo.GetByAdmin(ctx, adminUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apierr.Conflict("admin already manages a franchise")
	}

	id, err := s.id.New()
	if err != nil {
		return nil, err
	}
	f := &Franchise{
		ID:        id,
		Name:      name,
		Address:   strings.TrimSpace(req.Address),
		Contact:   strings.TrimSpace(req.Contact),
		Latitude:  nullable(req.Latitude),
		Longitude: nullable(req.Longitude),
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.repo.CreateWithAdmin(ctx, f, adminUserID); err != nil {
		if db.IsDuplicateKey(err) {
			return nil, apierr.Conflict("admin already manages a franchise")
		}
		return nil, err
	}
	return f, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Franchise, error) {
	f, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, apierr.NotFound("franchise not found")
	}
	return f, nil
}

func (s *Service) List(ctx context.Context) ([]Franchise, error) {
	return s.repo.List(ctx)
}

func (s *Service) Mine(ctx context.Context, adminUserID string) (*Franchise, error) {
	f, err := s.repo.GetByAdmin(ctx, adminUserID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, apierr.NotFound("no franchise assigned to this admin")
	}
	return f, nil
}

func nullable(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}
