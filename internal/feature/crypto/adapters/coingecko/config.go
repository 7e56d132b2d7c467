package coingecko

import (
	"os"
	"time"
)

// Config holds the CoinGecko endpoint and snapshot cadence.
type Config struct {
	URL      string
	Interval time.Duration
}

// LoadConfig loads CoinGecko configuration from environment variables. The
// snapshot cooldown defaults to 5 minutes (COINGECKO_INTERVAL accepts any
// Go duration string).
func LoadConfig() Config {
	cfg := Config{
		URL:      "https://api.coingecko.com/api/v3/coins/markets?vs_currency=usd",
		Interval: 5 * time.Minute,
	}
	if v := os.Getenv("COINGECKO_URL"); v != "" {
		cfg.URL = v
	}
	if v := os.Getenv("COINGECKO_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Interval = d
		}
	}
	return cfg
}
