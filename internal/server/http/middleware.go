package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/AuroraBackcountry/aurora-tts-service/internal/metrics"
)

// sharedTokenMiddleware gates an operation behind the X-TTS-Token header.
// An empty token disables the check entirely.
func sharedTokenMiddleware(api huma.API, token string) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if token != "" && ctx.Header("X-TTS-Token") != token {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid TTS token")
			return
		}
		next(ctx)
	}
}

// collapseSlashes rewrites duplicate slashes in the request path so that
// clients configured with a trailing-slash base URL (POST /tts//speech) reach
// the intended route instead of a redirect.
func collapseSlashes(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "//") {
			r = r.Clone(r.Context())
			for strings.Contains(r.URL.Path, "//") {
				r.URL.Path = strings.ReplaceAll(r.URL.Path, "//", "/")
			}
			r.URL.RawPath = ""
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs every request and feeds the request counter.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		metrics.RequestsTotal.WithLabelValues(routeLabel(r.URL.Path), strconv.Itoa(rec.status)).Inc()

		slog.Info("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"bytes", rec.bytes,
			"duration", time.Since(start),
		)
	})
}

// routeLabel collapses per-voice paths and unknown paths into fixed metric
// labels to keep the series cardinality bounded.
func routeLabel(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/text-to-speech/"):
		return "/v1/text-to-speech/{voice_id}"
	case strings.HasPrefix(path, "/text-to-speech/"):
		return "/text-to-speech/{voice_id}"
	}

	switch path {
	case "/speak", "/tts/speech", "/v1/audio/speech", "/healthz", "/metrics":
		return path
	default:
		return "other"
	}
}

// statusRecorder captures the response status and size while preserving
// streaming flushes.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += int64(n)
	return n, err
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
