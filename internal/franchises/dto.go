package franchises

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateFranchiseRequest struct {
	Name      string           `json:"name" binding:"required,max=100"`
	Address   string           `json:"address" binding:"max=255"`
	Contact   string           `json:"contact" binding:"max=32"`
	Latitude  *decimal.Decimal `json:"latitude,omitempty"`
	Longitude *decimal.Decimal `json:"longitude,omitempty"`
}

type FranchiseResponse struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Address   string              `json:"address"`
	Contact   string              `json:"contact"`
	Latitude  decimal.NullDecimal `json:"latitude" swaggertype:"number"`
	Longitude decimal.NullDecimal `json:"longitude" swaggertype:"number"`
	CreatedAt time.Time           `json:"created_at"`
}

func toResponse(f *Franchise) FranchiseResponse {
	return FranchiseResponse{
		ID:        f.ID,
		Name:      f.Name,
		Address:   f.Address,
		Contact:   f.Contact,
		Latitude:  f.Latitude,
		Longitude: f.Longitude,
		CreatedAt: f.CreatedAt,
	}
}
