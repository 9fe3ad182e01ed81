package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"dog-match/internal/platform/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewWithBaseURL_RejectsInvalid(t *testing.T) {
	_, err := NewWithBaseURL("not a url", 0)
	require.Error(t, err)

	_, err = NewWithBaseURL("ftp://example.com", 0)
	require.Error(t, err)

	c, err := NewWithBaseURL("https://example.com/", 0)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", c.BaseURL)
	assert.Equal(t, DefaultTimeout, c.HTTP.Timeout)
}

func TestDoJSON_SendsBodyAndQuery_DecodesResponse(t *testing.T) {
	var gotQuery url.Values
	var gotBody []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"match":"d1"}`))
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL, 0)
	require.NoError(t, err)

	q := url.Values{}
	q.Add("breeds", "Pug")
	q.Add("breeds", "Akita")

	var out struct {
		Match string `json:"match"`
	}
	err = c.DoJSON(context.Background(), http.MethodPost, "dogs/match", q, []string{"a", "b"}, &out)
	require.NoError(t, err)

	assert.Equal(t, "d1", out.Match)
	assert.Equal(t, []string{"Pug", "Akita"}, gotQuery["breeds"])
	assert.Equal(t, []string{"a", "b"}, gotBody)
}

func TestDoJSON_Non2xx_ReturnsHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL, 0)
	require.NoError(t, err)

	err = c.DoJSON(context.Background(), http.MethodGet, "/dogs/breeds", nil, nil, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))

	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "Unauthorized", he.Body)
}

func TestDoJSON_RelativePathWithoutBaseURL(t *testing.T) {
	c := New(0)
	err := c.DoJSON(context.Background(), http.MethodGet, "/dogs", nil, nil, nil)
	require.Error(t, err)
	assert.Zero(t, StatusOf(err))
}

func TestCookieJar_CarriesSessionUntilReset(t *testing.T) {
	var seen []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "fetch-access-token", Value: "tok", Path: "/"})
		default:
			if ck, err := r.Cookie("fetch-access-token"); err == nil {
				seen = append(seen, ck.Value)
			} else {
				seen = append(seen, "")
			}
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL, 0)
	require.NoError(t, err)
	ctx := context.Background()

	assert.False(t, c.HasSession())
	require.NoError(t, c.DoJSON(ctx, http.MethodPost, "/auth/login", nil, map[string]string{"name": "a"}, nil))
	assert.True(t, c.HasSession())
	require.NoError(t, c.DoJSON(ctx, http.MethodGet, "/dogs/breeds", nil, nil, nil))

	c.ResetSession()
	assert.False(t, c.HasSession())
	require.NoError(t, c.DoJSON(ctx, http.MethodGet, "/dogs/breeds", nil, nil, nil))

	assert.Equal(t, []string{"tok", ""}, seen)
}

func TestDoJSON_RecordsSpan(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	c, err := NewWithBaseURL(ts.URL, 0, WithTracer(telemetry.FromTracerProvider(tp).Tracer()))
	require.NoError(t, err)

	err = c.DoJSON(context.Background(), http.MethodGet, "/dogs/search", nil, nil, nil)
	require.Error(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "fetchapi GET /dogs/search", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Contains(t, spans[0].Attributes, attribute.Int("http.response.status_code", http.StatusBadGateway))
}
