package fetchapi

import (
	"strings"
	"time"

	"dog-match/internal/platform/httpclient"
	"dog-match/internal/platform/logger"

	"go.opentelemetry.io/otel/trace"
)

const DefaultBaseURL = "https://frontend-take-home-service.fetch.com"

// Config del cliente hacia el servicio de perros.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// Opcionales.
	Tracer trace.Tracer
	Logger logger.Logger
}

// Clients agrupa los tres clientes sobre un mismo transporte, es decir, sobre
// una misma credencial de sesión.
type Clients struct {
	Transport *httpclient.Client
	Session   *SessionClient
	Catalog   *CatalogClient
	Match     *MatchClient
}

func New(cfg Config) (*Clients, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}

	opts := []httpclient.Option{}
	if cfg.Tracer != nil {
		opts = append(opts, httpclient.WithTracer(cfg.Tracer))
	}
	if cfg.Logger != nil {
		opts = append(opts, httpclient.WithLogger(cfg.Logger))
	}

	hc, err := httpclient.NewWithBaseURL(base, cfg.Timeout, opts...)
	if err != nil {
		return nil, err
	}

	return &Clients{
		Transport: hc,
		Session:   NewSessionClient(hc),
		Catalog:   NewCatalogClient(hc),
		Match:     NewMatchClient(hc),
	}, nil
}
