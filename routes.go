package main

import (
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"aais-kitchen-backend/internal/attendance"
	"aais-kitchen-backend/internal/billing"
	"aais-kitchen-backend/internal/extras"
	"aais-kitchen-backend/internal/feedback"
	"aais-kitchen-backend/internal/franchises"
	"aais-kitchen-backend/internal/guests"
	"aais-kitchen-backend/internal/holidays"
	"aais-kitchen-backend/internal/mealqr"
	"aais-kitchen-backend/internal/members"
	"aais-kitchen-backend/internal/menu"
	"aais-kitchen-backend/internal/platform/auth"
	"aais-kitchen-backend/internal/platform/config"
	"aais-kitchen-backend/internal/platform/httpx"
	"aais-kitchen-backend/internal/platform/logger"
	"aais-kitchen-backend/internal/reports"
)

type services struct {
	auth       *auth.Service
	franchises *franchises.Service
	members    *members.Service
	mealqr     *mealqr.Service
	attendance *attendance.Service
	billing    *billing.Service
	guests     *guests.Service
	holidays   *holidays.Service
	menu       *menu.Service
	extras     *extras.Service
	feedback   *feedback.Service
	reports    *reports.Service
}

func newServices(cfg *config.Config, conn *sql.DB, log logger.Logger) (*services, error) {
	baseFee, err := decimal.NewFromString(cfg.Billing.BaseFee)
	if err != nil {
		return nil, fmt.Errorf("billing.base_fee: %w", err)
	}
	guestPrice, err := decimal.NewFromString(cfg.Billing.GuestMealPrice)
	if err != nil {
		return nil, fmt.Errorf("billing.guest_meal_price: %w", err)
	}
	loc := cfg.Location()

	return &services{
		auth:       auth.NewService(conn, cfg.Auth),
		franchises: franchises.NewService(conn),
		members:    members.NewService(conn, loc),
		mealqr:     mealqr.NewService(conn, loc, log.With("component", "mealqr")),
		attendance: attendance.NewService(conn, attendance.Options{
			Location:     loc,
			ScanCooldown: cfg.Attendance.ScanCooldown,
		}, log.With("component", "attendance")),
		billing: billing.NewService(conn, billing.Options{
			BaseFee:   baseFee,
			UPIID:     cfg.Billing.UPIID,
			PayeeName: cfg.Billing.PayeeName,
		}, log.With("component", "billing")),
		guests: guests.NewService(conn, guests.Options{
			PricePerPerson: guestPrice,
			Location:       loc,
		}, log.With("component", "guests")),
		holidays: holidays.NewService(conn, holidays.Options{
			MaxApproved: cfg.Holidays.MaxApproved,
			Location:    loc,
		}, log.With("component", "holidays")),
		menu:     menu.NewService(conn, loc, log.With("component", "menu")),
		extras:   extras.NewService(conn, loc, log.With("component", "extras")),
		feedback: feedback.NewService(conn, loc),
		reports:  reports.NewService(conn, loc),
	}, nil
}

// registerRoutes: /api/v1 配下。Member / Admin は RequireAuth の後ろにロール確認を重ねる
func registerRoutes(api *gin.RouterGroup, s *services, log logger.Logger) {
	auth.RegisterRoutes(api, s.auth, log)

	authed := api.Group("", auth.RequireAuth(s.auth, log))
	rt := httpx.NewRoutes(
		api,
		authed,
		authed.Group("", auth.RequireRole(auth.RoleMessMember)),
		authed.Group("/admin", auth.RequireFranchiseAdmin()),
	)

	franchises.RegisterRoutes(rt, s.franchises, log)
	members.RegisterRoutes(rt, s.members, log)
	mealqr.RegisterRoutes(rt, s.mealqr, log)
	attendance.RegisterRoutes(rt, s.attendance, log)
	billing.RegisterRoutes(rt, s.billing, log)
	guests.RegisterRoutes(rt, s.guests, log)
	holidays.RegisterRoutes(rt, s.holidays, log)
	menu.RegisterRoutes(rt, s.menu, log)
	extras.RegisterRoutes(rt, s.extras, log)
	feedback.RegisterRoutes(rt, s.feedback, log)
	reports.RegisterRoutes(rt, s.reports, log)
}
