package http

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AuroraBackcountry/aurora-tts-service/internal/config"
	"github.com/AuroraBackcountry/aurora-tts-service/internal/elevenlabs"
	"github.com/AuroraBackcountry/aurora-tts-service/internal/service"
)

func newTestServer(t *testing.T, upstream *fakeUpstream) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	client := elevenlabs.NewClient(elevenlabs.Config{
		APIKey:         "test-key",
		BaseURL:        upstream.srv.URL,
		MaxConns:       4,
		KeepAlive:      time.Second,
		RequestTimeout: 5 * time.Second,
	})
	t.Cleanup(client.Close)

	svc := service.NewTTS(client, "default-voice", cfg.Upstream.ModelID)

	srv := httptest.NewServer(New(cfg, svc, "test").Handler())
	t.Cleanup(srv.Close)

	return srv
}

func TestServer_DoubleSlashSpeechVariant(t *testing.T) {
	upstream := newFakeUpstream(t)
	srv := newTestServer(t, upstream)

	for _, path := range []string{"/tts/speech", "/tts//speech"} {
		resp, err := http.Post(srv.URL+path, "application/json",
			bytes.NewReader([]byte(`{"text": "hello"}`)))
		require.NoError(t, err)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode, "path %s", path)
		assert.Equal(t, "synthetic-audio-bytes", string(body), "path %s", path)
	}

	assert.Equal(t, 2, upstream.callCount())
}

func TestServer_HealthAndMetricsExposed(t *testing.T) {
	srv := newTestServer(t, newFakeUpstream(t))

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "aurora_tts_requests_total")
}

func TestServer_MalformedJSONReturns400(t *testing.T) {
	upstream := newFakeUpstream(t)
	srv := newTestServer(t, upstream)

	resp, err := http.Post(srv.URL+"/tts/speech", "application/json",
		bytes.NewReader([]byte(`{"text": `)))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, upstream.callCount())
}

func TestRouteLabel(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/speak", "/speak"},
		{"/tts/speech", "/tts/speech"},
		{"/v1/audio/speech", "/v1/audio/speech"},
		{"/healthz", "/healthz"},
		{"/metrics", "/metrics"},
		{"/v1/text-to-speech/george", "/v1/text-to-speech/{voice_id}"},
		{"/text-to-speech/george", "/text-to-speech/{voice_id}"},
		// Arbitrary probe paths share one label instead of minting series.
		{"/admin.php", "other"},
		{"/.env", "other"},
		{"/speak/extra", "other"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, routeLabel(tt.path), "path %s", tt.path)
	}
}

func TestCollapseSlashes(t *testing.T) {
	var gotPath string
	h := collapseSlashes(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))

	tests := []struct {
		in   string
		want string
	}{
		{"/tts/speech", "/tts/speech"},
		{"/tts//speech", "/tts/speech"},
		{"/tts///speech", "/tts/speech"},
		{"/v1//audio//speech", "/v1/audio/speech"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, tt.in, nil)
		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, tt.want, gotPath, "path %s", tt.in)
	}
}
