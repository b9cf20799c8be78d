package billing

import "github.com/shopspring/decimal"

type Member struct {
	ID          string
	FranchiseID string
}

type AddonCharge struct {
	ItemName string
	Price    decimal.Decimal
	Quantity int
}

// Subtotal: 数量未設定（0以下）は1個として扱う
func (a AddonCharge) Subtotal() decimal.Decimal {
	q := a.Quantity
	if q <= 0 {
		q = 1
	}
	return a.Price.Mul(decimal.NewFromInt(int64(q)))
}

type Bill struct {
	MemberID     string
	BaseFee      decimal.Decimal
	GuestTotal   decimal.Decimal
	SnackTotal   decimal.Decimal
	AddonTotal   decimal.Decimal
	Total        decimal.Decimal
	GuestMeals   int
	Snacks       int
	AddonCharges []AddonCharge
}

// Compute: base + Σguest + Σsnack + Σ(price × qty)
func Compute(base decimal.Decimal, guests, snacks []decimal.Decimal, addons []AddonCharge) Bill {
	b := Bill{
		BaseFee:      base,
		GuestTotal:   sum(guests),
		SnackTotal:   sum(snacks),
		AddonTotal:   decimal.Zero,
		GuestMeals:   len(guests),
		Snacks:       len(snacks),
		AddonCharges: addons,
	}
	for _, a := range addons {
		b.AddonTotal = b.AddonTotal.Add(a.Subtotal())
	}
	b.Total = decimal.Sum(b.BaseFee, b.GuestTotal, b.SnackTotal, b.AddonTotal)
	return b
}

func sum(xs []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, x := range xs {
		total = total.Add(x)
	}
	return total
}
