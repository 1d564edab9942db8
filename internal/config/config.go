package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	DBDSN          string        `env:"DB_DSN" envDefault:"shopdesk.db"` // sqlite file in project root
	LogFile        string        `env:"LOG_FILE" envDefault:"./shopdesk.log"`
	SessionTimeout time.Duration `env:"SESSION_TIMEOUT" envDefault:"30m"`
	RateLimitMax   int           `env:"RATE_LIMIT_MAX" envDefault:"120"`
	SeedDemo       bool          `env:"SEED_DEMO" envDefault:"true"`
}

func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Printf("[warn] config: %v; using defaults", err)
		cfg = Defaults()
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s SESSION_TIMEOUT=%s RATE_LIMIT_MAX=%d SEED_DEMO=%t",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.SessionTimeout, cfg.RateLimitMax, cfg.SeedDemo)
	return cfg
}

// Defaults is the configuration with every variable unset.
func Defaults() Config {
	var cfg Config
	_ = env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}})
	return cfg
}
