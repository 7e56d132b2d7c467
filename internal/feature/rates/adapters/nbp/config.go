package nbp

import "os"

// Config holds the NBP table endpoints.
type Config struct {
	TableAURL string
	TableBURL string
}

// LoadConfig loads NBP configuration from environment variables, with the
// public API endpoints as defaults.
func LoadConfig() Config {
	cfg := Config{
		TableAURL: "https://api.nbp.pl/api/exchangerates/tables/A/",
		TableBURL: "https://api.nbp.pl/api/exchangerates/tables/B/",
	}
	if v := os.Getenv("NBP_TABLE_A_URL"); v != "" {
		cfg.TableAURL = v
	}
	if v := os.Getenv("NBP_TABLE_B_URL"); v != "" {
		cfg.TableBURL = v
	}
	return cfg
}
