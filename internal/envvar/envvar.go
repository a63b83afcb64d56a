package envvar

const (
	// Env is the environment variable used to determine the runtime environment.
	Env = "AURORA_TTS_ENV"

	// Addr is the environment variable used to determine the HTTP listen address.
	Addr = "AURORA_TTS_ADDR"

	// LogFile is the environment variable used to determine the log file path.
	LogFile = "AURORA_TTS_LOG_FILE"

	// UpstreamURL is the environment variable used to override the upstream base URL.
	UpstreamURL = "AURORA_TTS_UPSTREAM_URL"

	// MaxConns is the environment variable used to bound the upstream connection pool.
	MaxConns = "AURORA_TTS_MAX_CONNS"

	// KeepAliveSeconds is the environment variable used to determine the idle
	// keep-alive timeout of pooled upstream connections.
	KeepAliveSeconds = "AURORA_TTS_KEEPALIVE_SECONDS"

	// RequestTimeoutSeconds is the environment variable used to bound each
	// outbound synthesis call.
	RequestTimeoutSeconds = "AURORA_TTS_REQUEST_TIMEOUT_SECONDS"

	// APIKey is the environment variable carrying the ElevenLabs API key.
	APIKey = "ELEVEN_API_KEY"

	// VoiceID is the environment variable carrying the default ElevenLabs voice.
	VoiceID = "ELEVEN_VOICE_ID"

	// SharedToken is the environment variable carrying the optional shared
	// secret callers must present on protected routes.
	SharedToken = "TTS_SHARED_TOKEN"
)
