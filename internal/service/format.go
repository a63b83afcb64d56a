package service

import "strings"

// responseFormatMIME maps OpenAI-style response_format values to MIME types.
var responseFormatMIME = map[string]string{
	"mp3":  "audio/mpeg",
	"mpeg": "audio/mpeg",
	"ogg":  "audio/ogg",
	"opus": "audio/ogg",
	"wav":  "audio/wav",
	"aac":  "audio/aac",
	"flac": "audio/flac",
}

// AcceptForFormat maps a free-form format hint to an upstream Accept header.
// Anything mentioning ogg or opus gets audio/ogg, everything else audio/mpeg.
func AcceptForFormat(format string) string {
	f := strings.ToLower(format)
	if strings.Contains(f, "ogg") || strings.Contains(f, "opus") {
		return "audio/ogg"
	}
	return "audio/mpeg"
}

// MIMEForResponseFormat maps an OpenAI-compatible response_format to a MIME
// type. Unknown and empty values default to audio/mpeg.
func MIMEForResponseFormat(format string) string {
	if mime, ok := responseFormatMIME[strings.ToLower(format)]; ok {
		return mime
	}
	return "audio/mpeg"
}
