package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aais-kitchen-backend/internal/platform/apierr"
	"aais-kitchen-backend/internal/platform/logger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakeRepo struct {
	members  map[string]*Member
	guests   map[string][]decimal.Decimal
	snacks   map[string][]decimal.Decimal
	addons   map[string][]AddonCharge
	snackErr error
}

func (f *fakeRepo) ActiveMemberByUser(_ context.Context, userID string) (*Member, error) {
	return f.members[userID], nil
}

func (f *fakeRepo) GuestMealPrices(_ context.Context, id string) ([]decimal.Decimal, error) {
	return f.guests[id], nil
}

func (f *fakeRepo) SnackPrices(_ context.Context, id string) ([]decimal.Decimal, error) {
	if f.snackErr != nil {
		return nil, f.snackErr
	}
	return f.snacks[id], nil
}

func (f *fakeRepo) Addons(_ context.Context, id string) ([]AddonCharge, error) {
	return f.addons[id], nil
}

func sampleRepo() *fakeRepo {
	return &fakeRepo{
		members: map[string]*Member{"u1": {ID: "m1", FranchiseID: "fr-1"}},
		guests:  map[string][]decimal.Decimal{"m1": {d("50"), d("100")}},
		snacks:  map[string][]decimal.Decimal{"m1": {d("20")}},
		addons:  map[string][]AddonCharge{"m1": {{ItemName: "Gulab Jamun", Price: d("30"), Quantity: 2}}},
	}
}

func newTestService(repo Repository) *Service {
	return newService(repo, Options{BaseFee: d("2500"), UPIID: "aaiskitchen@upi", PayeeName: "Aai's Kitchen"}, logger.Discard())
}

func TestCompute(t *testing.T) {
	b := Compute(d("2500"),
		[]decimal.Decimal{d("50"), d("100")},
		[]decimal.Decimal{d("20")},
		[]AddonCharge{{Price: d("30"), Quantity: 2}},
	)
	assert.True(t, d("2730").Equal(b.Total), b.Total.String())
	assert.True(t, d("150").Equal(b.GuestTotal))
	assert.True(t, d("20").Equal(b.SnackTotal))
	assert.True(t, d("60").Equal(b.AddonTotal))
}

func TestCompute_QuantityDefaultsToOne(t *testing.T) {
	b := Compute(decimal.Zero, nil, nil, []AddonCharge{
		{Price: d("25.50"), Quantity: 0},
		{Price: d("10"), Quantity: -3},
	})
	assert.True(t, d("35.50").Equal(b.Total), b.Total.String())
}

func TestCompute_NoChargesIsBaseFee(t *testing.T) {
	b := Compute(d("2500"), nil, nil, nil)
	assert.True(t, d("2500").Equal(b.Total))
}

func TestBill(t *testing.T) {
	svc := newTestService(sampleRepo())

	b, err := svc.Bill(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "m1", b.MemberID)
	assert.Equal(t, "2730", b.Total.String())
	assert.Equal(t, 2, b.GuestMeals)
}

func TestBill_InactiveOrMissingMember(t *testing.T) {
	svc := newTestService(sampleRepo())
	_, err := svc.Bill(context.Background(), "u-inactive")
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))
}

func TestBill_FetchErrorPropagates(t *testing.T) {
	repo := sampleRepo()
	repo.snackErr = errors.New("timeout")
	svc := newTestService(repo)

	_, err := svc.Bill(context.Background(), "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, repo.snackErr)
	assert.Contains(t, err.Error(), "evening snacks")
}

func TestPaymentLink(t *testing.T) {
	svc := newTestService(sampleRepo())

	res, err := svc.PaymentLink(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "upi://pay?pa=aaiskitchen%40upi&pn=Aai%27s%20Kitchen&am=2730.00&cu=INR", res.URL)
	assert.False(t, res.Verified)
	assert.Equal(t, "INR", res.Currency)
}

func TestPaymentLink_NotConfigured(t *testing.T) {
	svc := newService(sampleRepo(), Options{BaseFee: d("2500")}, logger.Discard())
	_, err := svc.PaymentLink(context.Background(), "u1")
	assert.True(t, apierr.Is(err, apierr.CodeInternal))
}
