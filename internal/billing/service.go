package billing

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"aais-kitchen-backend/internal/platform/apierr"
	"aais-kitchen-backend/internal/platform/logger"
)

const currency = "INR"

type Options struct {
	BaseFee   decimal.Decimal
	UPIID     string
	PayeeName string
}

type Service struct {
	repo Repository
	opts Options
	log  logger.Logger
}

func NewService(conn *sql.DB, opts Options, log logger.Logger) *Service {
	return newService(NewStore(conn), opts, log)
}

func newService(repo Repository, opts Options, log logger.Logger) *Service {
	return &Service{repo: repo, opts: opts, log: log}
}

// Bill: 有効な会員の請求額。計算結果は保存しない
func (s *Service) Bill(ctx context.Context, userID string) (*Bill, error) {
	m, err := s.repo.ActiveMemberByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apierr.NotFound("no active membership")
	}

	var (
		guests, snacks []decimal.Decimal
		addons         []AddonCharge
	)
	// 3つの集計は互いに独立なので並行に取る
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		guests, err = s.repo.GuestMealPrices(gctx, m.ID)
		if err != nil {
			return fmt.Errorf("guest meals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snacks, err = s.repo.SnackPrices(gctx, m.ID)
		if err != nil {
			return fmt.Errorf("evening snacks: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		addons, err = s.repo.Addons(gctx, m.ID)
		if err != nil {
			return fmt.Errorf("extra addons: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b := Compute(s.opts.BaseFee, guests, snacks, addons)
	b.MemberID = m.ID
	return &b, nil
}

// PaymentLink: UPI ディープリンクを返すだけ。支払い結果の照合はしていない
func (s *Service) PaymentLink(ctx context.Context, userID string) (*PaymentLinkResponse, error) {
	if s.opts.UPIID == "" {
		return nil, apierr.Internal("payment is not configured")
	}
	b, err := s.Bill(ctx, userID)
	if err != nil {
		return nil, err
	}

	amount := b.Total.Round(2)
	link := "upi://pay?pa=" + url.QueryEscape(s.opts.UPIID) +
		"&pn=" + strings.ReplaceAll(url.QueryEscape(s.opts.PayeeName), "+", "%20") +
		"&am=" + amount.StringFixed(2) +
		"&cu=" + currency

	s.log.Info("payment link issued", "member_id", b.MemberID, "amount", amount.StringFixed(2))
	return &PaymentLinkResponse{
		URL:      link,
		Amount:   amount,
		Currency: currency,
		Verified: false,
	}, nil
}
