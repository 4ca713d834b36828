package config

import "time"

// Config holds runtime settings for the Linguo player CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the sync server, e.g. "http://localhost:8080".
//   - CatalogURL: URL of the published deck catalog JSON.
//   - DatabaseFile: path of the local sqlite database.
//   - RequestTimeout: per-request timeout for catalog and deck downloads.
type Config struct {
	ServerBaseURL  string
	CatalogURL     string
	DatabaseFile   string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8080"
	c.CatalogURL = "http://localhost:8080/api/catalog"
	c.DatabaseFile = "linguo.db"
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
