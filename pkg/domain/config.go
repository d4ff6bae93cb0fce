package common

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig points at the relational store backing every repository.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// AuthConfig drives OTP/session/credential lifetimes.
type AuthConfig struct {
	OTPTTLMinutes            int
	OTPRequestCooldownSec    int
	OTPPepper                string
	LoginKeyPepper           string
	LoginAttemptWindowMin    int
	LoginAttemptMaxFailures  int
	JWTSigningKey            string
	JWTAccessMinutes         int
	JWTRefreshDays           int
}

// MatchConfig drives the match/Elo invariants: confirmation window,
// proposal limits, and the provisional-rating grace period.
type MatchConfig struct {
	ConfirmWindowHours int
	MaxScoreProposals  int
	ProvisionalMatches int
	ProvisionalCap     int
}

// BillingConfig carries provider secrets and webhook verification policy.
type BillingConfig struct {
	WebhookMaxAgeSeconds      int
	RequireWebhookSignature   bool
	WebhookSigningSecret      string
	StripeSecretKey           string
	StripeWebhookSecret       string
	AppStoreSharedSecret      string
	AppStoreSandbox           bool
	GooglePlayServiceAccount  string
	GooglePlayPackageName     string
	CheckoutSuccessURL        string
	CheckoutCancelURL         string
}

// ServerConfig carries HTTP-transport level settings.
type ServerConfig struct {
	Addr          string
	Env           string
	TrustedHosts  []string
	RequestTimeout time.Duration
}

type Config struct {
	Server  ServerConfig
	Auth    AuthConfig
	Match   MatchConfig
	Billing BillingConfig
	DB      DatabaseConfig
}

// LoadConfig reads configuration from the process environment, applying
// defaults for anything unset. Callers load a .env file beforehand with
// godotenv (see cmd/rest-api/main.go).
func LoadConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:           getEnv("HTTP_ADDR", ":8080"),
			Env:            getEnv("ENV", "development"),
			TrustedHosts:   splitCSV(getEnv("TRUSTED_HOSTS", "")),
			RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Auth: AuthConfig{
			OTPTTLMinutes:           getEnvInt("OTP_TTL_MINUTES", 10),
			OTPRequestCooldownSec:   getEnvInt("OTP_REQUEST_COOLDOWN_SECONDS", 120),
			OTPPepper:               getEnv("OTP_PEPPER", ""),
			LoginKeyPepper:          getEnv("LOGIN_KEY_PEPPER", ""),
			LoginAttemptWindowMin:   getEnvInt("LOGIN_ATTEMPT_WINDOW_MINUTES", 15),
			LoginAttemptMaxFailures: getEnvInt("LOGIN_ATTEMPT_MAX_FAILURES", 8),
			JWTSigningKey:           getEnv("JWT_SIGNING_KEY", ""),
			JWTAccessMinutes:        getEnvInt("JWT_ACCESS_MINUTES", 60),
			JWTRefreshDays:          getEnvInt("JWT_REFRESH_DAYS", 30),
		},
		Match: MatchConfig{
			ConfirmWindowHours: getEnvInt("CONFIRM_WINDOW_HOURS", 48),
			MaxScoreProposals:  getEnvInt("MAX_SCORE_PROPOSALS", 2),
			ProvisionalMatches: getEnvInt("PROVISIONAL_MATCHES", 5),
			ProvisionalCap:     getEnvInt("PROVISIONAL_CAP", 30),
		},
		Billing: BillingConfig{
			WebhookMaxAgeSeconds:     getEnvInt("BILLING_WEBHOOK_MAX_AGE_SECONDS", 300),
			RequireWebhookSignature:  getEnvBool("BILLING_REQUIRE_WEBHOOK_SIGNATURE", false),
			WebhookSigningSecret:     getEnv("BILLING_WEBHOOK_SECRET", ""),
			StripeSecretKey:          getEnv("STRIPE_SECRET_KEY", ""),
			StripeWebhookSecret:      getEnv("STRIPE_WEBHOOK_SECRET", ""),
			AppStoreSharedSecret:     getEnv("APP_STORE_SHARED_SECRET", ""),
			AppStoreSandbox:          getEnvBool("APP_STORE_SANDBOX", false),
			GooglePlayServiceAccount: getEnv("GOOGLE_PLAY_SERVICE_ACCOUNT_JSON", ""),
			GooglePlayPackageName:    getEnv("GOOGLE_PLAY_PACKAGE_NAME", ""),
			CheckoutSuccessURL:       getEnv("BILLING_CHECKOUT_SUCCESS_URL", ""),
			CheckoutCancelURL:        getEnv("BILLING_CHECKOUT_CANCEL_URL", ""),
		},
		DB: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", "postgres://localhost:5432/rivio?sslmode=disable"),
			MaxOpenConns:    getEnvInt("DATABASE_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getEnvInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Duration(getEnvInt("DATABASE_CONN_MAX_LIFETIME_MINUTES", 30)) * time.Minute,
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func splitCSV(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(v); i++ {
		if i == len(v) || v[i] == ',' {
			if i > start {
				out = append(out, v[start:i])
			}
			start = i + 1
		}
	}
	return out
}
