package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPath = "config/config.yaml"

	ModeDev     = "dev"
	ModeRelease = "release"

	// 開発用。release モードでは起動を拒否する
	DevJWTSecret = "dev-only-secret-change-me"
)

type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Username        string        `yaml:"user"`
	Password        string        `yaml:"password"`
	DBName          string        `yaml:"dbname"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

type ServerConfig struct {
	Addr         string   `yaml:"addr"`
	CertFile     string   `yaml:"cert"`
	KeyFile      string   `yaml:"key"`
	AllowOrigins []string `yaml:"allow_origins"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type AttendanceConfig struct {
	ScanCooldown time.Duration `yaml:"scan_cooldown"`
	TimeZone     string        `yaml:"timezone"`
}

type BillingConfig struct {
	BaseFee        string `yaml:"base_fee"`
	GuestMealPrice string `yaml:"guest_meal_price"`
	UPIID          string `yaml:"upi_id"`
	PayeeName      string `yaml:"payee_name"`
}

type HolidayConfig struct {
	MaxApproved int `yaml:"max_approved"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	Version    string           `yaml:"version"`
	Mode       string           `yaml:"mode"`
	Server     ServerConfig     `yaml:"server"`
	DB         DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Attendance AttendanceConfig `yaml:"attendance"`
	Billing    BillingConfig    `yaml:"billing"`
	Holidays   HolidayConfig    `yaml:"holidays"`
	Log        LogConfig        `yaml:"log"`
}

func LoadConfig(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(buf)
}

// Parse: YAML → Config。デフォルト補完と環境変数での秘密情報上書きもここで行う
func Parse(buf []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	c.DB.Password = getEnv("MESS_DB_PASSWORD", c.DB.Password)
	c.Auth.JWTSecret = getEnv("MESS_JWT_SECRET", c.Auth.JWTSecret)
	c.Mode = getEnv("MESS_MODE", c.Mode)
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeDev
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8443"
	}
	if c.DB.Port == 0 {
		c.DB.Port = 3306
	}
	if c.DB.MaxOpenConns == 0 {
		c.DB.MaxOpenConns = 40
	}
	if c.DB.MaxIdleConns == 0 {
		c.DB.MaxIdleConns = 10
	}
	if c.DB.ConnMaxLifetime == 0 {
		c.DB.ConnMaxLifetime = 30 * time.Minute
	}
	if c.Auth.JWTSecret == "" && c.Mode == ModeDev {
		c.Auth.JWTSecret = DevJWTSecret
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	if c.Attendance.ScanCooldown == 0 {
		c.Attendance.ScanCooldown = 3 * time.Second
	}
	if c.Attendance.TimeZone == "" {
		c.Attendance.TimeZone = "UTC"
	}
	if c.Billing.BaseFee == "" {
		c.Billing.BaseFee = "2500"
	}
	if c.Billing.GuestMealPrice == "" {
		c.Billing.GuestMealPrice = "50"
	}
	if c.Holidays.MaxApproved == 0 {
		c.Holidays.MaxApproved = 8
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

func (c *Config) Validate() error {
	if c.Mode != ModeDev && c.Mode != ModeRelease {
		return fmt.Errorf("mode must be %q or %q, got %q", ModeDev, ModeRelease, c.Mode)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if c.Mode == ModeRelease && c.Auth.JWTSecret == DevJWTSecret {
		return errors.New("auth.jwt_secret must be changed in release mode")
	}
	if _, err := time.LoadLocation(c.Attendance.TimeZone); err != nil {
		return fmt.Errorf("attendance.timezone: %w", err)
	}
	return nil
}

// Location: 「今日」を決めるタイムゾーン
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Attendance.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
