package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env           string
	Port          string
	SessionSecret string
	DatabaseURL   string
	RedisURL      string
	PriceAPIURL   string        // remote pricing endpoint; empty means simulated oracle
	CORSOrigins   []string      // exact origins allowed to send credentialed requests
	SimLatency    time.Duration // simulated backend round-trip for demo flows
	OpTimeout     time.Duration // bound on every latency-simulating operation
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Without DATABASE_URL the app would come up with only the health route
	// registered; a local SQLite file keeps the full API usable out of the box.
	dsn := viper.GetString("DATABASE_URL")
	if dsn == "" {
		dsn = "mandi.db"
	}

	var corsOrigins []string
	for _, o := range strings.Split(viper.GetString("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}

	simLatency := 1000
	if viper.IsSet("SIM_LATENCY_MS") {
		simLatency = viper.GetInt("SIM_LATENCY_MS")
	}
	opTimeout := viper.GetInt("OP_TIMEOUT_MS")
	if opTimeout <= 0 {
		opTimeout = 10000
	}

	return &Config{
		Env:           env,
		Port:          port,
		SessionSecret: viper.GetString("SESSION_SECRET"),
		DatabaseURL:   dsn,
		RedisURL:      viper.GetString("REDIS_URL"),
		PriceAPIURL:   viper.GetString("PRICE_API_URL"),
		CORSOrigins:   corsOrigins,
		SimLatency:    time.Duration(simLatency) * time.Millisecond,
		OpTimeout:     time.Duration(opTimeout) * time.Millisecond,
	}, nil
}
