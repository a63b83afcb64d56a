package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/AuroraBackcountry/aurora-tts-service/internal/elevenlabs"
	"github.com/AuroraBackcountry/aurora-tts-service/internal/metrics"
	"github.com/AuroraBackcountry/aurora-tts-service/internal/service"
)

type (
	// SpeakRequestDTO is the legacy /speak request body.
	SpeakRequestDTO struct {
		_ struct{} `json:"-" additionalProperties:"true"`

		Text string `json:"text,omitempty" doc:"Text to synthesize"`
	}

	// BackendSpeechRequestDTO is the OpenWebUI backend-compatible request
	// body. The text and voice can each arrive under two field names.
	BackendSpeechRequestDTO struct {
		_ struct{} `json:"-" additionalProperties:"true"`

		Text    string `json:"text,omitempty"     doc:"Text to synthesize"`
		Input   string `json:"input,omitempty"    doc:"Alias for text"`
		Voice   string `json:"voice,omitempty"    doc:"Voice identifier"`
		VoiceID string `json:"voice_id,omitempty" doc:"Alias for voice"`
		Format  string `json:"format,omitempty"   doc:"Requested audio format"`
	}

	// ElevenSpeechRequestDTO is the ElevenLabs-compatible request body.
	ElevenSpeechRequestDTO struct {
		_ struct{} `json:"-" additionalProperties:"true"`

		Text                     string         `json:"text,omitempty"                       doc:"Text to synthesize"`
		ModelID                  string         `json:"model_id,omitempty"                   doc:"Upstream model identifier"`
		VoiceSettings            map[string]any `json:"voice_settings,omitempty"             doc:"Opaque voice settings, forwarded verbatim"`
		OptimizeStreamingLatency *int           `json:"optimize_streaming_latency,omitempty" doc:"Latency/quality hint (0-4)" minimum:"0" maximum:"4"`
	}

	// OpenAISpeechRequestDTO is the OpenAI-compatible request body.
	OpenAISpeechRequestDTO struct {
		_ struct{} `json:"-" additionalProperties:"true"`

		Model          string  `json:"model,omitempty"           doc:"Accepted for compatibility, not forwarded"`
		Voice          string  `json:"voice,omitempty"           doc:"Voice identifier"`
		Input          string  `json:"input,omitempty"           doc:"Text to synthesize"`
		ResponseFormat string  `json:"response_format,omitempty" doc:"Requested audio format"`
		Speed          float64 `json:"speed,omitempty"           doc:"Accepted for compatibility, not forwarded"`
	}
)

type (
	// SpeakInput is the huma input for the speak operation.
	SpeakInput struct {
		Body SpeakRequestDTO
	}

	// BackendSpeechInput is the huma input for the backend speech operation.
	BackendSpeechInput struct {
		Body BackendSpeechRequestDTO
	}

	// ElevenSpeechInput is the huma input for the ElevenLabs-compatible
	// operations.
	ElevenSpeechInput struct {
		VoiceID string `path:"voice_id"`
		Body    ElevenSpeechRequestDTO
	}

	// OpenAISpeechInput is the huma input for the OpenAI-compatible operation.
	OpenAISpeechInput struct {
		Body OpenAISpeechRequestDTO
	}
)

// TTSHandler handles HTTP requests for speech synthesis.
type TTSHandler struct {
	service *service.TTS
}

// NewTTSHandler creates a new TTSHandler instance and registers the synthesis
// routes. sharedToken gates the legacy and OpenAI-compatible routes when
// non-empty.
func NewTTSHandler(api huma.API, svc *service.TTS, sharedToken string) *TTSHandler {
	h := &TTSHandler{service: svc}

	auth := sharedTokenMiddleware(api, sharedToken)

	huma.Register(api, huma.Operation{
		OperationID: "speak",
		Method:      http.MethodPost,
		Path:        "/speak",
		Summary:     "Synthesize speech from text (legacy)",
		Tags:        []string{"tts"},
		Middlewares: huma.Middlewares{auth},
	}, h.handleSpeak)

	huma.Register(api, huma.Operation{
		OperationID: "backend-speech",
		Method:      http.MethodPost,
		Path:        "/tts/speech",
		Summary:     "Synthesize speech (OpenWebUI backend-compatible)",
		Tags:        []string{"tts"},
	}, h.handleBackendSpeech)

	huma.Register(api, huma.Operation{
		OperationID: "text-to-speech",
		Method:      http.MethodPost,
		Path:        "/v1/text-to-speech/{voice_id}",
		Summary:     "Synthesize speech (ElevenLabs-compatible)",
		Tags:        []string{"tts"},
	}, h.handleElevenSpeech)

	huma.Register(api, huma.Operation{
		OperationID: "text-to-speech-alias",
		Method:      http.MethodPost,
		Path:        "/text-to-speech/{voice_id}",
		Summary:     "Synthesize speech (ElevenLabs-compatible, non-versioned alias)",
		Tags:        []string{"tts"},
	}, h.handleElevenSpeech)

	huma.Register(api, huma.Operation{
		OperationID: "audio-speech",
		Method:      http.MethodPost,
		Path:        "/v1/audio/speech",
		Summary:     "Synthesize speech (OpenAI-compatible)",
		Tags:        []string{"tts"},
		Middlewares: huma.Middlewares{auth},
	}, h.handleOpenAISpeech)

	return h
}

// handleSpeak handles the legacy speak operation: text only, default voice,
// always MP3.
func (h *TTSHandler) handleSpeak(ctx context.Context, input *SpeakInput) (*huma.StreamResponse, error) {
	stream, err := h.service.Synthesize(ctx, &service.SynthesisRequest{
		Text: input.Body.Text,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyText) {
			return nil, huma.Error400BadRequest("empty text", err)
		}
		return nil, upstreamError(err)
	}

	return streamAudio(stream, "audio/mpeg"), nil
}

// handleBackendSpeech handles the backend speech operation. Text may arrive
// as "text" or "input", the voice as "voice" or "voice_id"; first non-empty
// wins.
func (h *TTSHandler) handleBackendSpeech(ctx context.Context, input *BackendSpeechInput) (*huma.StreamResponse, error) {
	accept := service.AcceptForFormat(input.Body.Format)

	stream, err := h.service.Synthesize(ctx, &service.SynthesisRequest{
		Text:    service.FirstNonEmpty(input.Body.Text, input.Body.Input),
		VoiceID: service.FirstNonEmpty(input.Body.Voice, input.Body.VoiceID),
		Accept:  accept,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyText) {
			return nil, huma.Error400BadRequest("missing 'text' or 'input' field", err)
		}
		return nil, upstreamError(err)
	}

	return streamAudio(stream, accept), nil
}

// handleElevenSpeech handles both ElevenLabs-compatible operations. The voice
// comes from the path; model, voice settings and the latency hint are
// forwarded when present.
func (h *TTSHandler) handleElevenSpeech(ctx context.Context, input *ElevenSpeechInput) (*huma.StreamResponse, error) {
	stream, err := h.service.Synthesize(ctx, &service.SynthesisRequest{
		Text:                     input.Body.Text,
		VoiceID:                  input.VoiceID,
		ModelID:                  input.Body.ModelID,
		VoiceSettings:            input.Body.VoiceSettings,
		OptimizeStreamingLatency: input.Body.OptimizeStreamingLatency,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyText) {
			return nil, huma.Error400BadRequest("missing text", err)
		}
		return nil, upstreamError(err)
	}

	return streamAudio(stream, "audio/mpeg"), nil
}

// handleOpenAISpeech handles the OpenAI-compatible operation. The voice must
// resolve to a non-empty value; model and speed are accepted but the upstream
// has no equivalent, so they are dropped.
func (h *TTSHandler) handleOpenAISpeech(ctx context.Context, input *OpenAISpeechInput) (*huma.StreamResponse, error) {
	if h.service.ResolveVoice(input.Body.Voice) == "" {
		return nil, huma.Error400BadRequest("missing voice ID", service.ErrMissingVoice)
	}

	mime := service.MIMEForResponseFormat(input.Body.ResponseFormat)

	stream, err := h.service.Synthesize(ctx, &service.SynthesisRequest{
		Text:    input.Body.Input,
		VoiceID: input.Body.Voice,
		Accept:  mime,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyText) {
			return nil, huma.Error400BadRequest("missing 'input' text", err)
		}
		return nil, upstreamError(err)
	}

	return streamAudio(stream, mime), nil
}

// upstreamError maps a failed synthesis call to a 502 carrying the upstream's
// error text where available.
func upstreamError(err error) error {
	metrics.UpstreamErrorsTotal.Inc()

	var apiErr *elevenlabs.APIError
	if errors.As(err, &apiErr) {
		return huma.Error502BadGateway(fmt.Sprintf("upstream synthesis failed: %s", apiErr.Message()))
	}
	return huma.Error502BadGateway("upstream synthesis failed", err)
}

// streamAudio relays the upstream chunk stream to the caller, flushing after
// every chunk so audio playback can start before synthesis finishes.
func streamAudio(stream *elevenlabs.Stream, contentType string) *huma.StreamResponse {
	return &huma.StreamResponse{
		Body: func(ctx huma.Context) {
			defer stream.Close()

			ctx.SetHeader("Content-Type", contentType)
			ctx.SetHeader("Cache-Control", "no-store")
			ctx.SetHeader("X-Accel-Buffering", "no")

			w := ctx.BodyWriter()
			flusher, _ := w.(http.Flusher)

			for {
				chunk, err := stream.Next()
				if err != nil {
					if !errors.Is(err, io.EOF) {
						// Headers are already out; all we can do is drop the
						// connection.
						slog.Debug("Audio stream interrupted", "error", err)
					}
					return
				}

				n, werr := w.Write(chunk)
				metrics.StreamedBytesTotal.Add(float64(n))
				if werr != nil {
					// Caller went away; the deferred Close aborts the
					// upstream read.
					return
				}
				if flusher != nil {
					flusher.Flush()
				}
			}
		},
	}
}
