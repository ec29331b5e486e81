package exporter

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// MetricsPath is the path the scrape endpoint is served on.
	MetricsPath = "/metrics"

	readHeaderTimeout = 10 * time.Second
)

func newServer(handler http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(MetricsPath, handler)
	mux.Handle("/", handler)
	return &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

func (e *Exporter) serve(srv *http.Server, ln net.Listener, done chan<- struct{}) {
	defer close(done)
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		e.logger.Error("metrics endpoint stopped", err, map[string]interface{}{
			"addr": ln.Addr().String(),
		})
	}
}

// handler serves g. A collector failure fails the whole scrape with 500.
func (e *Exporter) handler(g prometheus.Gatherer) http.Handler {
	h := promhttp.HandlerFor(g, promhttp.HandlerOpts{
		ErrorHandling: promhttp.HTTPErrorOnError,
		ErrorLog:      errorLog{e.logger},
	})
	if e.tracer == nil {
		return h
	}
	return e.traced(h)
}

func (e *Exporter) traced(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := e.tracer.ExtractHTTP(r.Context(), r.Header)
		ctx, span := e.tracer.StartSpan(ctx, "exporter.scrape")
		defer span.End()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		e.tracer.SetAttributes(span, map[string]interface{}{
			"http.method":      r.Method,
			"http.target":      r.URL.Path,
			"http.status_code": rec.status,
		})
		if rec.status >= http.StatusInternalServerError {
			e.tracer.RecordErrorOnSpan(span, fmt.Errorf("scrape failed with status %d", rec.status))
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// errorLog adapts Logger to promhttp.Logger.
type errorLog struct {
	logger Logger
}

func (l errorLog) Println(v ...interface{}) {
	l.logger.Error("scrape failed", nil, map[string]interface{}{
		"detail": fmt.Sprint(v...),
	})
}
