package main

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

type apiConfig struct {
	Port            uint16        `env:"APP_PORT"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT"`

	PostgresDSN string `env:"PG_DSN"`

	RedisAddr       string `env:"REDIS_ADDR"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	BroadcastKey    string `env:"BROADCAST_KEY"`
	BroadcastSecret string `env:"BROADCAST_SECRET"`

	// RainPool is split across eligible accounts on every distribution run.
	RainPool decimal.Decimal `env:"RAIN_POOL"`
	// RainInterval schedules in-process runs; 0 leaves triggering to
	// the /rain endpoint.
	RainInterval time.Duration `env:"RAIN_INTERVAL"`
	// RainActiveWindow bounds rain eligibility to accounts active within
	// the trailing window; 0 means every account is eligible, which is the
	// deployed behavior today.
	RainActiveWindow time.Duration `env:"RAIN_ACTIVE_WINDOW"`
}
