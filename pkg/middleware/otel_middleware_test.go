package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// recordingProvider records the spans started by its tracers.
type recordingProvider struct {
	noop.TracerProvider

	mu    sync.Mutex
	spans []*recordingSpan
}

func (p *recordingProvider) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return &recordingTracer{provider: p}
}

type recordingTracer struct {
	noop.Tracer
	provider *recordingProvider
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	span := &recordingSpan{name: name, kind: cfg.SpanKind(), attrs: cfg.Attributes()}
	t.provider.mu.Lock()
	t.provider.spans = append(t.provider.spans, span)
	t.provider.mu.Unlock()
	return trace.ContextWithSpan(ctx, span), span
}

type recordingSpan struct {
	noop.Span

	name   string
	kind   trace.SpanKind
	attrs  []attribute.KeyValue
	status codes.Code
	ended  bool
}

func (s *recordingSpan) SetName(name string) { s.name = name }
func (s *recordingSpan) SetAttributes(kv ...attribute.KeyValue) { s.attrs = append(s.attrs, kv...) }
func (s *recordingSpan) SetStatus(code codes.Code, _ string) { s.status = code }
func (s *recordingSpan) End(...trace.SpanEndOption) { s.ended = true }

func (s *recordingSpan) attr(key string) (attribute.Value, bool) {
	for _, kv := range s.attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestOpenTelemetryMiddleware_RecordsServerSpan(t *testing.T) {
	tp := &recordingProvider{}

	r := chi.NewRouter()
	r.Use(OpenTelemetry(
		WithTracerProvider(tp),
		WithAttributeExtractor(func(*http.Request) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	))
	r.Get("/api/panels/{id}", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := trace.SpanFromContext(r.Context()).(*recordingSpan); !ok {
			t.Error("expected the span in the request context")
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/panels/card", nil))

	if len(tp.spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(tp.spans))
	}
	span := tp.spans[0]
	if span.name != "GET /api/panels/{id}" {
		t.Errorf("name = %q", span.name)
	}
	if span.kind != trace.SpanKindServer {
		t.Errorf("kind = %v", span.kind)
	}
	if !span.ended || span.status != codes.Ok {
		t.Errorf("ended = %v, status = %v", span.ended, span.status)
	}
	if v, _ := span.attr("http.status_code"); v.AsInt64() != http.StatusNoContent {
		t.Errorf("http.status_code = %v", v.AsInt64())
	}
	if v, _ := span.attr("http.route"); v.AsString() != "/api/panels/{id}" {
		t.Errorf("http.route = %q", v.AsString())
	}
	if v, _ := span.attr("test.attr"); v.AsString() != "ok" {
		t.Errorf("test.attr = %q", v.AsString())
	}
}

func TestOpenTelemetryMiddleware_ServerErrorMarksSpan(t *testing.T) {
	tp := &recordingProvider{}
	h := OpenTelemetry(WithTracerProvider(tp), WithIncludeRoute(false))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/x", nil))

	span := tp.spans[0]
	if span.status != codes.Error {
		t.Errorf("status = %v, want Error", span.status)
	}
	if span.name != "POST /x" {
		t.Errorf("name = %q", span.name)
	}
	if _, ok := span.attr("http.route"); ok {
		t.Error("route should be omitted")
	}
}

func TestOpenTelemetryMiddleware_FilterSkipsTracing(t *testing.T) {
	tp := &recordingProvider{}
	nextCalled := false
	h := OpenTelemetry(
		WithTracerProvider(tp),
		WithRequestFilter(func(r *http.Request) bool { return r.URL.Path != "/healthz" }),
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if !nextCalled {
		t.Fatal("expected next to be called")
	}
	if len(tp.spans) != 0 {
		t.Fatalf("expected no span when filter skips tracing, got %d", len(tp.spans))
	}
}

func TestOpenTelemetryConfig(t *testing.T) {
	config := defaultOTelConfig()
	if config.TracerName != "dialkit" || !config.IncludeRoute || config.Filter != nil {
		t.Errorf("default config = %+v", config)
	}

	WithTracerName("custom")(&config)
	if config.TracerName != "custom" {
		t.Errorf("TracerName = %q", config.TracerName)
	}
}
