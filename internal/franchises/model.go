package franchises

import (
	"time"

	"github.com/shopspring/decimal"
)

type Franchise struct {
	ID        string
	Name      string
	Address   string
	Contact   string
	Latitude  decimal.NullDecimal
	Longitude decimal.NullDecimal
	CreatedAt time.Time
}
