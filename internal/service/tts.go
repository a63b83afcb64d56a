package service

import (
	"context"
	"strings"

	"github.com/AuroraBackcountry/aurora-tts-service/internal/elevenlabs"
)

// DefaultOptimizeStreamingLatency is the latency/quality hint sent upstream
// when the caller does not specify one.
const DefaultOptimizeStreamingLatency = 4

// defaultVoiceSentinel is the case-insensitive voice name that resolves to
// the configured default voice.
const defaultVoiceSentinel = "default"

// Synthesizer is the upstream streaming synthesis contract, abstracted so the
// service can be tested with a mock implementation.
type Synthesizer interface {
	SynthesizeStream(ctx context.Context, req *elevenlabs.SynthesizeRequest) (*elevenlabs.Stream, error)
}

// SynthesisRequest is the canonical call signature every inbound API shape is
// normalized to. Zero values fall back to configured defaults.
type SynthesisRequest struct {
	// Text is the content to synthesize. Required after trimming.
	Text string

	// VoiceID is the requested voice. Empty or the "default" sentinel
	// resolves to the configured default voice.
	VoiceID string

	// ModelID is the requested model. Empty resolves to the configured model.
	ModelID string

	// VoiceSettings is an opaque mapping forwarded verbatim when present.
	VoiceSettings map[string]any

	// OptimizeStreamingLatency is the 0-4 latency hint; nil means default.
	OptimizeStreamingLatency *int

	// Accept is the desired audio MIME type; empty means audio/mpeg.
	Accept string
}

// TTS normalizes inbound synthesis requests and relays them to the upstream.
type TTS struct {
	synth          Synthesizer
	defaultVoiceID string
	defaultModelID string
}

// NewTTS creates a new TTS service.
func NewTTS(synth Synthesizer, defaultVoiceID, defaultModelID string) *TTS {
	return &TTS{
		synth:          synth,
		defaultVoiceID: defaultVoiceID,
		defaultModelID: defaultModelID,
	}
}

// ResolveVoice maps a caller-supplied voice to the effective upstream voice:
// empty and the case-insensitive "default" sentinel fall back to the
// configured default. The result may still be empty when no default is
// configured.
func (s *TTS) ResolveVoice(voice string) string {
	voice = strings.TrimSpace(voice)
	if voice == "" || strings.EqualFold(voice, defaultVoiceSentinel) {
		return s.defaultVoiceID
	}
	return voice
}

// Synthesize validates and normalizes req, then opens the upstream audio
// stream. It returns ErrEmptyText without any outbound call when the text is
// blank. The caller must Close the returned stream.
func (s *TTS) Synthesize(ctx context.Context, req *SynthesisRequest) (*elevenlabs.Stream, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrEmptyText
	}

	modelID := req.ModelID
	if modelID == "" {
		modelID = s.defaultModelID
	}

	latency := DefaultOptimizeStreamingLatency
	if req.OptimizeStreamingLatency != nil {
		latency = *req.OptimizeStreamingLatency
	}

	return s.synth.SynthesizeStream(ctx, &elevenlabs.SynthesizeRequest{
		Text:                     text,
		VoiceID:                  s.ResolveVoice(req.VoiceID),
		ModelID:                  modelID,
		VoiceSettings:            req.VoiceSettings,
		OptimizeStreamingLatency: latency,
		Accept:                   req.Accept,
	})
}

// FirstNonEmpty returns the first non-empty candidate, or the empty string.
// Route handlers use it to pick a logical parameter out of an ordered list of
// accepted field names. A whitespace-only candidate counts as present and is
// selected; rejecting blank text is Synthesize's job.
func FirstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}
