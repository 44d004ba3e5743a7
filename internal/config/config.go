// Package config loads the application configuration.
//
// Values come from three layers, later layers winning:
//  1. built-in defaults (Default)
//  2. an optional YAML file (CONFIG_FILE or the path given to Load)
//  3. environment variables
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"newsnotes/pkg/config"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	minSessionSecretLength = 32
)

// Config is the full application configuration.
type Config struct {
	HTTP struct {
		Addr            string        `yaml:"addr"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		RequestTimeout  time.Duration `yaml:"request_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		MaxBodyBytes    int64         `yaml:"max_body_bytes"`
		CSPReportOnly   bool          `yaml:"csp_report_only"`
	} `yaml:"http"`

	Storage struct {
		Driver         string `yaml:"driver"`
		DatabaseURL    string `yaml:"database_url"`
		CircuitBreaker bool   `yaml:"circuit_breaker"`
	} `yaml:"storage"`

	Session struct {
		Secret     string        `yaml:"secret"`
		TTL        time.Duration `yaml:"ttl"`
		CookieName string        `yaml:"cookie_name"`
		Secure     bool          `yaml:"secure"`
	} `yaml:"session"`

	News struct {
		CountOnHomePage   int      `yaml:"count_on_home_page"`
		BannedWords       []string `yaml:"banned_words"`
		BannedWordWarning string   `yaml:"banned_word_warning"`
	} `yaml:"news"`

	Notes struct {
		SlugWarning string `yaml:"slug_warning"`
	} `yaml:"notes"`

	Auth struct {
		// LoginRatePerMinute is the number of login POSTs allowed per client IP.
		LoginRatePerMinute int `yaml:"login_rate_per_minute"`
		LoginBurst         int `yaml:"login_burst"`
	} `yaml:"auth"`

	Worker struct {
		StatsSchedule string        `yaml:"stats_schedule"`
		Timezone      string        `yaml:"timezone"`
		JobTimeout    time.Duration `yaml:"job_timeout"`
		MetricsAddr   string        `yaml:"metrics_addr"`
	} `yaml:"worker"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = ":8080"
	cfg.HTTP.ReadTimeout = 10 * time.Second
	cfg.HTTP.RequestTimeout = 15 * time.Second
	cfg.HTTP.ShutdownTimeout = 5 * time.Second
	cfg.HTTP.MaxBodyBytes = 1 << 20

	cfg.Storage.Driver = StoragePostgres

	cfg.Session.TTL = 14 * 24 * time.Hour
	cfg.Session.CookieName = "sessionid"

	cfg.News.CountOnHomePage = 10
	cfg.News.BannedWords = []string{"редиска", "негодяй"}
	cfg.News.BannedWordWarning = "Не ругайтесь!"

	cfg.Notes.SlugWarning = " - такой slug уже существует, придумайте уникальное значение!"

	cfg.Auth.LoginRatePerMinute = 10
	cfg.Auth.LoginBurst = 5

	cfg.Worker.StatsSchedule = "*/5 * * * *"
	cfg.Worker.Timezone = "UTC"
	cfg.Worker.JobTimeout = time.Minute
	cfg.Worker.MetricsAddr = ":9091"

	return cfg
}

// Load builds the configuration from defaults, the YAML file at path (if
// non-empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		// #nosec G304 -- path comes from the operator, not from requests
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.HTTP.Addr = config.GetEnvString("HTTP_ADDR", c.HTTP.Addr)
	c.HTTP.CSPReportOnly = config.GetEnvBool("CSP_REPORT_ONLY", c.HTTP.CSPReportOnly)
	c.HTTP.RequestTimeout = config.GetEnvDuration("HTTP_REQUEST_TIMEOUT", c.HTTP.RequestTimeout)

	c.Storage.Driver = strings.ToLower(config.GetEnvString("STORAGE_DRIVER", c.Storage.Driver))
	c.Storage.DatabaseURL = config.GetEnvString("DATABASE_URL", c.Storage.DatabaseURL)
	c.Storage.CircuitBreaker = config.GetEnvBool("DB_CIRCUIT_BREAKER", c.Storage.CircuitBreaker)

	c.Session.Secret = config.GetEnvString("SESSION_SECRET", c.Session.Secret)
	c.Session.TTL = config.GetEnvDuration("SESSION_TTL", c.Session.TTL)
	c.Session.Secure = config.GetEnvBool("SESSION_COOKIE_SECURE", c.Session.Secure)

	c.News.CountOnHomePage = config.GetEnvInt("NEWS_COUNT_ON_HOME_PAGE", c.News.CountOnHomePage)
	c.News.BannedWords = config.GetEnvStringList("BANNED_WORDS", c.News.BannedWords)
	c.News.BannedWordWarning = config.GetEnvString("BANNED_WORD_WARNING", c.News.BannedWordWarning)

	c.Auth.LoginRatePerMinute = config.GetEnvInt("LOGIN_RATE_LIMIT", c.Auth.LoginRatePerMinute)

	c.Worker.StatsSchedule = config.GetEnvString("STATS_CRON_SCHEDULE", c.Worker.StatsSchedule)
	c.Worker.Timezone = config.GetEnvString("WORKER_TIMEZONE", c.Worker.Timezone)
	c.Worker.JobTimeout = config.GetEnvDuration("STATS_JOB_TIMEOUT", c.Worker.JobTimeout)
	c.Worker.MetricsAddr = config.GetEnvString("WORKER_METRICS_ADDR", c.Worker.MetricsAddr)
}

// Validate checks the fields that have no safe fallback.
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if c.Storage.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL must be set for the postgres storage driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}

	if len(c.Session.Secret) < minSessionSecretLength {
		errs = append(errs, fmt.Errorf("SESSION_SECRET must be at least %d characters", minSessionSecretLength))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("session ttl must be positive"))
	}
	if c.News.CountOnHomePage < 1 {
		errs = append(errs, errors.New("news count on home page must be positive"))
	}
	if c.Auth.LoginRatePerMinute < 1 {
		errs = append(errs, errors.New("login rate limit must be positive"))
	}
	if err := ValidateCronSchedule(c.Worker.StatsSchedule); err != nil {
		errs = append(errs, err)
	}
	if _, err := time.LoadLocation(c.Worker.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid worker timezone %q: %w", c.Worker.Timezone, err))
	}
	if c.Worker.JobTimeout <= 0 {
		errs = append(errs, errors.New("worker job timeout must be positive"))
	}

	return errors.Join(errs...)
}

// ValidateCronSchedule validates a five-field cron expression with the
// robfig/cron/v3 parser, e.g. "*/5 * * * *".
func ValidateCronSchedule(schedule string) error {
	if schedule == "" {
		return fmt.Errorf("invalid cron schedule: cannot be empty")
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	return nil
}
