// Package config carga la configuración del BFF y del CLI.
// Precedencia: flags > env > archivo YAML > defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"dog-match/internal/domain/catalog"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL         = "https://frontend-take-home-service.fetch.com"
	DefaultHTTPTimeout     = 10 * time.Second
	DefaultListenAddr      = ":8080"
	DefaultWorkspaceCookie = "dogmatch_ws"
	DefaultServiceName     = "dog-match"
	DefaultWorkspaceIdle   = 30 * time.Minute
)

var ErrInvalid = errors.New("invalid config")

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Tracing struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
}

type Config struct {
	BaseURL         string        `yaml:"base_url"`
	HTTPTimeout     time.Duration `yaml:"http_timeout"`
	ListenAddr      string        `yaml:"listen_addr"`
	PageSize        int           `yaml:"page_size"`
	DefaultSort     string        `yaml:"default_sort"`
	AppName         string        `yaml:"app_name"`
	WorkspaceCookie string        `yaml:"workspace_cookie"`
	WorkspaceIdle   time.Duration `yaml:"workspace_idle_ttl"`
	Log             Log           `yaml:"log"`
	Tracing         Tracing       `yaml:"tracing"`
}

// Default devuelve la configuración sin archivo ni env.
func Default() Config {
	return Config{
		BaseURL:         DefaultBaseURL,
		HTTPTimeout:     DefaultHTTPTimeout,
		ListenAddr:      DefaultListenAddr,
		PageSize:        catalog.DefaultPageSize,
		DefaultSort:     string(catalog.DefaultSort),
		WorkspaceCookie: DefaultWorkspaceCookie,
		WorkspaceIdle:   DefaultWorkspaceIdle,
		Log:             Log{Level: "info", Format: "text"},
		Tracing:         Tracing{ServiceName: DefaultServiceName},
	}
}

// Load lee path (si viene; si no, DOGMATCH_CONFIG) y aplica env encima.
// No valida: eso queda para Validate, después de los flags.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) == "" {
		path = os.Getenv("DOGMATCH_CONFIG")
	}
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
		}
	}

	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("FETCH_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: HTTP_TIMEOUT: %w", ErrInvalid, err)
		}
		cfg.HTTPTimeout = d
	}
	if v := getenv("WORKSPACE_IDLE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: WORKSPACE_IDLE_TTL: %w", ErrInvalid, err)
		}
		cfg.WorkspaceIdle = d
	}
	if v := getenv("PORT"); v != "" {
		cfg.ListenAddr = ":" + v
	}
	if v := getenv("PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: PAGE_SIZE: %w", ErrInvalid, err)
		}
		cfg.PageSize = n
	}
	if v := getenv("DEFAULT_SORT"); v != "" {
		cfg.DefaultSort = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := getenv("APP_NAME"); v != "" {
		cfg.AppName = v
	}
	if v := getenv("TRACING_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: TRACING_ENABLED: %w", ErrInvalid, err)
		}
		cfg.Tracing.Enabled = b
	}
	if v := getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.Tracing.Endpoint = v
	}
	return nil
}

func (c Config) Validate() error {
	u, err := url.Parse(strings.TrimSpace(c.BaseURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base_url %q", ErrInvalid, c.BaseURL)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("%w: page_size must be > 0", ErrInvalid)
	}
	if _, err := catalog.ParseSort(c.DefaultSort); err != nil {
		return fmt.Errorf("%w: default_sort: %w", ErrInvalid, err)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("%w: http_timeout must be >= 0", ErrInvalid)
	}
	if c.WorkspaceIdle <= 0 {
		return fmt.Errorf("%w: workspace_idle_ttl must be > 0", ErrInvalid)
	}
	return nil
}

// Sort ya validado; si no es válido cae al default.
func (c Config) Sort() catalog.Sort {
	s, err := catalog.ParseSort(c.DefaultSort)
	if err != nil {
		return catalog.DefaultSort
	}
	return s
}
