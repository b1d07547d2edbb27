// Package config loads application configuration from an optional YAML file,
// a .env file, and environment variables, and owns global logger setup.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"
)

// Config holds the full application configuration.
type Config struct {
	Identity IdentityConfig `yaml:"identity"`
	HTTP     HTTPConfig     `yaml:"http"`
	Cache    CacheConfig    `yaml:"cache"`
	Log      LogConfig      `yaml:"log"`
}

// IdentityConfig identifies the operator to the SEC. EDGAR rejects automated
// requests whose User-Agent does not name a person and a contact address.
type IdentityConfig struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// UserAgent renders the SEC-required User-Agent string.
func (c IdentityConfig) UserAgent() string {
	return c.Name + " " + c.Email
}

// HTTPConfig configures the EDGAR HTTP client.
type HTTPConfig struct {
	RateLimit   float64 `yaml:"rate_limit"` // requests per second
	Burst       int     `yaml:"burst"`
	TimeoutSecs int     `yaml:"timeout_secs"`
	MaxRetries  int     `yaml:"max_retries"`
}

// CacheConfig configures the on-disk document cache.
type CacheConfig struct {
	Dir string `yaml:"dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads configuration from the given YAML file (optional), a .env file
// (optional), and EDGAR_* environment variables. Environment wins over file.
func Load(path string) (*Config, error) {
	// .env is a convenience for local runs; missing is fine.
	_ = godotenv.Load()

	cfg := &Config{
		Identity: IdentityConfig{Name: "edgar_scraper", Email: "admin@example.com"},
		HTTP:     HTTPConfig{RateLimit: 10, Burst: 10, TimeoutSecs: 30, MaxRetries: 3},
		Cache:    CacheConfig{Dir: ".cache/edgar"},
		Log:      LogConfig{Level: "info", Format: "json"},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, eris.Wrapf(err, "config: read %s", path)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, eris.Wrapf(err, "config: parse %s", path)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("EDGAR_IDENTITY_NAME"); v != "" {
		cfg.Identity.Name = v
	}
	if v := os.Getenv("EDGAR_IDENTITY_EMAIL"); v != "" {
		cfg.Identity.Email = v
	}
	if v := os.Getenv("EDGAR_CACHE_DIR"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := os.Getenv("EDGAR_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("EDGAR_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("EDGAR_HTTP_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.HTTP.RateLimit = f
		}
	}
	if v := os.Getenv("EDGAR_HTTP_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Burst = n
		}
	}
	if v := os.Getenv("EDGAR_HTTP_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.TimeoutSecs = n
		}
	}
	if v := os.Getenv("EDGAR_HTTP_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.MaxRetries = n
		}
	}
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
