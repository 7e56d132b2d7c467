package fixer

import "os"

// Config holds the Fixer.io endpoint and credentials.
type Config struct {
	BaseURL   string
	AccessKey string
}

// LoadConfig loads Fixer.io configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		BaseURL: "http://data.fixer.io/api/latest",
	}
	if v := os.Getenv("FIXER_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	cfg.AccessKey = os.Getenv("FIXER_ACCESS_KEY")
	return cfg
}

// URL returns the latest-rates endpoint with the access key applied.
func (c Config) URL() string {
	if c.AccessKey == "" {
		return c.BaseURL
	}
	return c.BaseURL + "?access_key=" + c.AccessKey
}
