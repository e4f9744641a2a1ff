package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	golobby "github.com/golobby/config/v3"
	"github.com/golobby/config/v3/pkg/feeder"
)

const (
	DefaultAPIURL                = "https://api.tvmaze.com"
	DefaultListenAddr            = ":8080"
	DefaultDbPath                = "showscout.db"
	DefaultRequestTimeoutSeconds = 10
	DefaultRetentionDays         = 30
)

type Config struct {
	Showscout ShowscoutConfig
	TVMaze    TVMazeConfig
	History   HistoryConfig
}

type ShowscoutConfig struct {
	AllowedOrigins string `env:"CORS_ALLOWED_ORIGINS"`
	ListenAddr     string `env:"LISTEN_ADDR"`
	LogFile        string `env:"LOG_FILE"`
	LogLevel       string `env:"LOG_LEVEL"`
}

type TVMazeConfig struct {
	APIURL                string `env:"TVMAZE_API_URL"`
	RequestTimeoutSeconds int    `env:"REQUEST_TIMEOUT_SECONDS"`
}

type HistoryConfig struct {
	DbPath        string `env:"DB_PATH"`
	Enabled       bool   `env:"HISTORY_ENABLED"`
	RetentionDays int    `env:"HISTORY_RETENTION_DAYS"`
}

// Default returns the configuration used when nothing is set in the environment.
func Default() Config {
	return Config{
		Showscout: ShowscoutConfig{
			AllowedOrigins: "http://localhost:8080",
			ListenAddr:     DefaultListenAddr,
			LogLevel:       "info",
		},
		TVMaze: TVMazeConfig{
			APIURL:                DefaultAPIURL,
			RequestTimeoutSeconds: DefaultRequestTimeoutSeconds,
		},
		History: HistoryConfig{
			DbPath:        DefaultDbPath,
			RetentionDays: DefaultRetentionDays,
		},
	}
}

// Load feeds the defaults with values from an optional dotenv file followed by
// the process environment. A missing dotenv file is not an error.
func Load(dotEnvPath string) (Config, error) {
	cfg := Default()

	c := golobby.New()
	if dotEnvPath != "" {
		if _, err := os.Stat(dotEnvPath); err == nil {
			c.AddFeeder(feeder.DotEnv{Path: dotEnvPath})
		} else if !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("failed to read %s: %w", dotEnvPath, err)
		}
	}
	c.AddFeeder(feeder.Env{})
	c.AddStruct(&cfg)

	if err := c.Feed(); err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.applyFallbacks()
	return cfg, nil
}

// Values explicitly set to something unusable fall back to the defaults
func (c *Config) applyFallbacks() {
	defaults := Default()
	if strings.TrimSpace(c.TVMaze.APIURL) == "" {
		c.TVMaze.APIURL = defaults.TVMaze.APIURL
	}
	c.TVMaze.APIURL = strings.TrimRight(c.TVMaze.APIURL, "/")
	if c.TVMaze.RequestTimeoutSeconds <= 0 {
		c.TVMaze.RequestTimeoutSeconds = defaults.TVMaze.RequestTimeoutSeconds
	}
	if c.Showscout.ListenAddr == "" {
		c.Showscout.ListenAddr = defaults.Showscout.ListenAddr
	}
	if c.History.DbPath == "" {
		c.History.DbPath = defaults.History.DbPath
	}
	if c.History.RetentionDays <= 0 {
		c.History.RetentionDays = defaults.History.RetentionDays
	}
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.TVMaze.RequestTimeoutSeconds) * time.Second
}

func (c *Config) Retention() time.Duration {
	return time.Duration(c.History.RetentionDays) * 24 * time.Hour
}

// Origins splits the comma separated CORS origin list, dropping blanks.
func (c *Config) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.Showscout.AllowedOrigins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (c *Config) GetLogLevel() slog.Leveler {
	logLevel := strings.ToLower(c.Showscout.LogLevel)
	if logLevel == "error" {
		return slog.LevelError
	}
	if logLevel == "warning" || logLevel == "warn" {
		return slog.LevelWarn
	}
	if logLevel == "info" {
		return slog.LevelInfo
	}
	if logLevel == "debug" {
		return slog.LevelDebug
	}
	// default to info if unknown
	slog.With(slog.String("log_level", logLevel)).Info("Received invalid log level. Defaulting to INFO.")
	return slog.LevelInfo
}
