package billing

import "github.com/shopspring/decimal"

type AddonLine struct {
	ItemName string          `json:"item_name"`
	Price    decimal.Decimal `json:"price" swaggertype:"string"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal" swaggertype:"string"`
}

type BillResponse struct {
	MemberID   string          `json:"mess_member_id"`
	BaseFee    decimal.Decimal `json:"base_fee" swaggertype:"string"`
	GuestTotal decimal.Decimal `json:"guest_total" swaggertype:"string"`
	GuestMeals int             `json:"guest_meals"`
	SnackTotal decimal.Decimal `json:"snack_total" swaggertype:"string"`
	Snacks     int             `json:"snacks"`
	AddonTotal decimal.Decimal `json:"addon_total" swaggertype:"string"`
	Addons     []AddonLine     `json:"addons"`
	Total      decimal.Decimal `json:"total" swaggertype:"string"`
	Currency   string          `json:"currency"`
}

// PaymentLinkResponse: 支払いアプリへのディープリンク。支払い完了は確認できない
type PaymentLinkResponse struct {
	URL      string          `json:"url"`
	Amount   decimal.Decimal `json:"amount" swaggertype:"string"`
	Currency string          `json:"currency"`
	Verified bool            `json:"verified"`
}

func toResponse(b Bill) BillResponse {
	lines := make([]AddonLine, 0, len(b.AddonCharges))
	for _, a := range b.AddonCharges {
		lines = append(lines, AddonLine{
			ItemName: a.ItemName,
			Price:    a.Price,
			Quantity: a.Quantity,
			Subtotal: a.Subtotal(),
		})
	}
	return BillResponse{
		MemberID:   b.MemberID,
		BaseFee:    b.BaseFee,
		GuestTotal: b.GuestTotal,
		GuestMeals: b.GuestMeals,
		SnackTotal: b.SnackTotal,
		Snacks:     b.Snacks,
		AddonTotal: b.AddonTotal,
		Addons:     lines,
		Total:      b.Total,
		Currency:   currency,
	}
}
