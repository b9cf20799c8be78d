package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "aais-kitchen-backend/docs"
	"aais-kitchen-backend/internal/platform/config"
	"aais-kitchen-backend/internal/platform/db"
	"aais-kitchen-backend/internal/platform/httpx"
	"aais-kitchen-backend/internal/platform/idgen"
	"aais-kitchen-backend/internal/platform/logger"
	"aais-kitchen-backend/internal/platform/validation"
	"aais-kitchen-backend/migrations"
)

// @title                      Aai's Kitchen API
// @version                    1.0
// @description                食事会員（mess）向けバックエンド。QR 出席・請求・各種申請
// @BasePath                   /api/v1
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	defPath := config.DefaultPath
	if v := strings.TrimSpace(os.Getenv("MESS_CONFIG")); v != "" {
		defPath = v
	}
	cfgPath := flag.String("config", defPath, "path to config.yaml")
	flag.Parse()

	// 設定読み込み
	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		panic(err)
	}
	log := logger.NewFromConfig(cfg.Log.Level, cfg.Log.Format, cfg.Mode)
	log.Info("starting", "mode", cfg.Mode, "version", cfg.Version, "config", *cfgPath)

	if err := validation.Register(); err != nil {
		log.Critical("register validators", "err", err)
		os.Exit(1)
	}

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		log.Critical("connect db", "err", err)
		os.Exit(1)
	}
	defer conn.Close()
	log.Info("connected to DB", "dbname", cfg.DB.DBName)

	mctx, mcancel := context.WithTimeout(context.Background(), 30*time.Second)
	applied, err := db.Migrate(mctx, conn, migrations.FS)
	mcancel()
	if err != nil {
		log.Critical("migrate", "err", err)
		os.Exit(1)
	}
	log.Info("schema ready", "applied", applied)

	svcs, err := newServices(cfg, conn, log)
	if err != nil {
		log.Critical("init services", "err", err)
		os.Exit(1)
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(httpx.RequestID(idgen.ULID()), httpx.AccessLog(log), httpx.Recovery(log))
	_ = r.SetTrustedProxies(nil)

	if cfg.Mode == config.ModeDev {
		// CORS（開発中のみ必要）
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Server.AllowOrigins,
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", httpx.HeaderRequestID},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition", httpx.HeaderRequestID},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// ヘルス
	r.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := conn.PingContext(ctx); err != nil {
			c.String(http.StatusServiceUnavailable, "db unavailable")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	registerRoutes(r.Group("/api/v1"), svcs, log)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		var err error
		if cfg.Server.CertFile != "" && cfg.Server.KeyFile != "" {
			log.Info("listening (TLS)", "addr", cfg.Server.Addr)
			err = srv.ListenAndServeTLS(cfg.Server.CertFile, cfg.Server.KeyFile)
		} else {
			log.Warn("tls cert not configured, serving plain HTTP", "addr", cfg.Server.Addr)
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Critical("listen", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Info("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error("shutdown", "err", err)
	}
}
