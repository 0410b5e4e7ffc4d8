package services

import "fmt"

// ValidationError reports a missing or empty required field in the inbound
// request. Handlers map it to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConfigError reports that the service cannot operate because the Gemini API
// key is not configured. Handlers map it to 500 with an operator-facing
// message; no upstream call is attempted.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

// UpstreamError is a non-2xx reply from the generation API. Handlers relay the
// same status code with a safe generic text.
type UpstreamError struct {
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("gemini API error: %d", e.StatusCode)
}

// MalformedOutputError reports that the model returned text that could not be
// parsed into the requested record shape. Never retried.
type MalformedOutputError struct {
	Detail string
}

func (e *MalformedOutputError) Error() string {
	return "AI generated malformed output"
}
