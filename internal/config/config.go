// README: Config loader with env defaults for HTTP, Redis, Postgres, pricing, and ride stage timings.
package config

import (
	"os"
	"strconv"
	"time"
)

type PricingConfig struct {
	BaseFare      int64
	PeakSurcharge int64
	PeakHours     bool
}

type StageConfig struct {
	ApproachHop    time.Duration
	BoardingWait   time.Duration
	TripHop        time.Duration
	PaymentDelay   time.Duration
	PaymentTimeout time.Duration
}

type Config struct {
	HTTP struct {
		Addr string
	}
	Redis struct {
		Addr string
	}
	DB struct {
		// DSN is optional; when empty the ride journal is kept in memory only.
		DSN string
	}
	Firebase struct {
		ProjectID       string
		CredentialsFile string
	}
	Log struct {
		Development bool
	}
	Pricing PricingConfig
	Stages  StageConfig
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("RIDECORE_HTTP_ADDR", ":8080")
	cfg.Redis.Addr = envOrDefault("RIDECORE_REDIS_ADDR", "localhost:6379")
	cfg.DB.DSN = envOrDefault("RIDECORE_DB_DSN", "")
	cfg.Firebase.ProjectID = envOrDefault("RIDECORE_FIREBASE_PROJECT_ID", "")
	cfg.Firebase.CredentialsFile = envOrDefault("RIDECORE_FIREBASE_CREDENTIALS", "")
	cfg.Log.Development = envOrDefaultBool("RIDECORE_DEV_LOG", false)
	cfg.Pricing.BaseFare = envOrDefaultInt64("RIDECORE_BASE_FARE", 50)
	cfg.Pricing.PeakSurcharge = envOrDefaultInt64("RIDECORE_PEAK_SURCHARGE", 20)
	cfg.Pricing.PeakHours = envOrDefaultBool("RIDECORE_PEAK_HOURS", false)
	cfg.Stages.ApproachHop = envOrDefaultDuration("RIDECORE_STAGE_APPROACH_HOP", 2*time.Second)
	cfg.Stages.BoardingWait = envOrDefaultDuration("RIDECORE_STAGE_BOARDING_WAIT", 3*time.Second)
	cfg.Stages.TripHop = envOrDefaultDuration("RIDECORE_STAGE_TRIP_HOP", 2*time.Second)
	cfg.Stages.PaymentDelay = envOrDefaultDuration("RIDECORE_PAYMENT_DELAY", 3*time.Second)
	cfg.Stages.PaymentTimeout = envOrDefaultDuration("RIDECORE_PAYMENT_TIMEOUT", 30*time.Second)
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
