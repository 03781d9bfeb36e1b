package config

import (
	"fmt"
	"strings"
	"time"

	"chef-marketplace-api/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// JWTSecret used to sign tokens. Load overrides it from JWT_SECRET.
var JWTSecret = []byte("chef_platform_dev_secret")

// TokenTTL is the lifetime of issued bearer tokens.
var TokenTTL = time.Hour

type Config struct {
	Port            string
	Env             string
	GinMode         string
	DBPath          string
	JWTSecret       string
	JWTTTL          time.Duration
	StripeSecretKey string
	PaymentCurrency string
	CORSOrigins     []string
}

// Load reads configuration from an optional .env file, an optional CONFIG_FILE and the
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded .env file")
	}

	v := viper.New()
	v.SetDefault("PORT", "3000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("DB_PATH", "chef.db")
	v.SetDefault("JWT_SECRET", string(JWTSecret))
	v.SetDefault("JWT_TTL", "1h")
	v.SetDefault("PAYMENT_CURRENCY", "usd")
	v.SetDefault("CORS_ORIGINS", "*")
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		Port:            v.GetString("PORT"),
		Env:             v.GetString("APP_ENV"),
		GinMode:         v.GetString("GIN_MODE"),
		DBPath:          v.GetString("DB_PATH"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		JWTTTL:          v.GetDuration("JWT_TTL"),
		StripeSecretKey: v.GetString("STRIPE_SECRET_KEY"),
		PaymentCurrency: strings.ToLower(v.GetString("PAYMENT_CURRENCY")),
		CORSOrigins:     splitList(v.GetString("CORS_ORIGINS")),
	}
	if cfg.JWTTTL <= 0 {
		return nil, fmt.Errorf("JWT_TTL must be positive, got %q", v.GetString("JWT_TTL"))
	}

	JWTSecret = []byte(cfg.JWTSecret)
	TokenTTL = cfg.JWTTTL
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
