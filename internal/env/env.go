package env

import (
	"os"
	"strings"

	"github.com/AuroraBackcountry/aurora-tts-service/internal/envvar"
)

// Environment represents the runtime environment of the process.
type Environment string

const (
	// Development is the default environment.
	Development Environment = "development"

	// Production enables structured JSON logging.
	Production Environment = "production"
)

// FromEnv resolves the runtime environment from AURORA_TTS_ENV.
// Anything other than "production"/"prod" is treated as development.
func FromEnv() Environment {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(envvar.Env))) {
	case "production", "prod":
		return Production
	default:
		return Development
	}
}
