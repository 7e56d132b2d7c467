package ecb

import "os"

// Config holds the ECB reference-rate endpoint.
type Config struct {
	URL string
}

// LoadConfig loads ECB configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		URL: "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml",
	}
	if v := os.Getenv("ECB_URL"); v != "" {
		cfg.URL = v
	}
	return cfg
}
