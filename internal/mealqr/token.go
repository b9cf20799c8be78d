package mealqr

import (
	"errors"
	"strings"
	"time"

	"aais-kitchen-backend/internal/platform/mealtype"
	"aais-kitchen-backend/internal/platform/validation"
)

const (
	tokenPrefix = "QR"
	tokenSep    = "_"
)

var ErrMalformedToken = errors.New("malformed qr token")

// Token: QR_<MEAL_UPPER>_<YYYY-MM-DD>_<franchiseID>
type Token struct {
	MealType    mealtype.MealType
	Date        time.Time
	FranchiseID string
}

func NewToken(m mealtype.MealType, date time.Time, franchiseID string) Token {
	return Token{MealType: m, Date: date, FranchiseID: franchiseID}
}

func (t Token) String() string {
	return strings.Join([]string{
		tokenPrefix,
		t.MealType.Upper(),
		t.Date.Format(validation.DateLayout),
		t.FranchiseID,
	}, tokenSep)
}

// ParseToken: 先頭3フィールドは固定長なので、4つ目以降はまるごと franchise ID として扱う。
// franchise ID に "_" が含まれていても往復できる
func ParseToken(s string) (Token, error) {
	parts := strings.SplitN(strings.TrimSpace(s), tokenSep, 4)
	if len(parts) != 4 {
		return Token{}, ErrMalformedToken
	}
	if parts[0] != tokenPrefix {
		return Token{}, ErrMalformedToken
	}
	// 大文字以外は生成側が出さない
	if parts[1] != strings.ToUpper(parts[1]) {
		return Token{}, ErrMalformedToken
	}
	m, err := mealtype.Parse(parts[1])
	if err != nil {
		return Token{}, ErrMalformedToken
	}
	if len(parts[2]) != len(validation.DateLayout) {
		return Token{}, ErrMalformedToken
	}
	d, err := time.Parse(validation.DateLayout, parts[2])
	if err != nil {
		return Token{}, ErrMalformedToken
	}
	if parts[3] == "" {
		return Token{}, ErrMalformedToken
	}
	return Token{MealType: m, Date: d, FranchiseID: parts[3]}, nil
}
