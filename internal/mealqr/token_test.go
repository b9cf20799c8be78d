package mealqr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aais-kitchen-backend/internal/platform/mealtype"
)

func TestTokenString(t *testing.T) {
	d := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	tok := NewToken(mealtype.Lunch, d, "3f2a9c1e-0000-4000-8000-000000000001")
	assert.Equal(t, "QR_LUNCH_2025-03-10_3f2a9c1e-0000-4000-8000-000000000001", tok.String())
}

func TestParseToken_RoundTrip(t *testing.T) {
	d := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	for _, fid := range []string{"fr-1", "north_wing", "a_b_c_", "x"} {
		for _, m := range mealtype.All() {
			tok := NewToken(m, d, fid)
			got, err := ParseToken(tok.String())
			require.NoError(t, err, tok.String())
			assert.Equal(t, tok.MealType, got.MealType)
			assert.Equal(t, fid, got.FranchiseID)
			assert.True(t, d.Equal(got.Date))
		}
	}
}

func TestParseToken_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"too few":       "QR_LUNCH_2025-03-10",
		"wrong prefix":  "XR_LUNCH_2025-03-10_fr",
		"unknown meal":  "QR_BRUNCH_2025-03-10_fr",
		"lower meal":    "QR_lunch_2025-03-10_fr",
		"bad date":      "QR_LUNCH_2025-13-10_fr",
		"short date":    "QR_LUNCH_2025-3-10_fr",
		"no franchise":  "QR_LUNCH_2025-03-10_",
		"random string": "hello world",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseToken(in)
			assert.ErrorIs(t, err, ErrMalformedToken)
		})
	}
}
