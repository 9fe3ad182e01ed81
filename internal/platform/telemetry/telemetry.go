// Package telemetry arma el TracerProvider de OpenTelemetry usado por el
// transporte hacia el servicio remoto.
package telemetry

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const InstrumentationName = "dog-match/fetchapi"

type Config struct {
	Enabled     bool
	ServiceName string
	// Endpoint OTLP/HTTP (p.ej. http://localhost:4318). Vacío => spans sin export.
	Endpoint string
}

// Provider envuelve el TracerProvider para poder hacer Shutdown al cerrar.
type Provider struct {
	tp     trace.TracerProvider
	tracer trace.Tracer
}

// Setup crea el provider. Con Enabled=false devuelve un provider noop.
func Setup(ctx context.Context, cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		tp := noop.NewTracerProvider()
		return &Provider{tp: tp, tracer: tp.Tracer(InstrumentationName)}, nil
	}

	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "dog-match"
	}
	res := resource.NewSchemaless(attribute.String("service.name", name))

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if ep := strings.TrimSpace(cfg.Endpoint); ep != "" {
		exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(ep))
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdktrace.WithBatcher(exp))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	return &Provider{tp: tp, tracer: tp.Tracer(InstrumentationName)}, nil
}

// FromTracerProvider permite inyectar un provider (tests con tracetest).
func FromTracerProvider(tp trace.TracerProvider) *Provider {
	if tp == nil {
		tp = noop.NewTracerProvider()
	}
	return &Provider{tp: tp, tracer: tp.Tracer(InstrumentationName)}
}

func (p *Provider) Tracer() trace.Tracer {
	if p == nil || p.tracer == nil {
		return noop.NewTracerProvider().Tracer(InstrumentationName)
	}
	return p.tracer
}

func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	if closer, ok := p.tp.(interface {
		Shutdown(context.Context) error
	}); ok {
		return closer.Shutdown(ctx)
	}
	return nil
}

// EndSpan cierra el span registrando el error si lo hay.
func EndSpan(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
