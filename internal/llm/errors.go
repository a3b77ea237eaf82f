package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// ErrNotConfigured indicates no provider is configured (offline mode).
var ErrNotConfigured = errors.New("no LLM provider configured")

// ErrInvalidCredential indicates the provider rejected the API key (401/403).
type ErrInvalidCredential struct {
	Err error
}

func (e *ErrInvalidCredential) Error() string {
	return fmt.Sprintf("invalid LLM credential: %v", e.Err)
}

func (e *ErrInvalidCredential) Unwrap() error { return e.Err }

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrNetwork indicates the request never reached the provider.
type ErrNetwork struct {
	Err error
}

func (e *ErrNetwork) Error() string {
	return fmt.Sprintf("network error reaching LLM provider: %v", e.Err)
}

func (e *ErrNetwork) Unwrap() error { return e.Err }

// ResponseStage names the point at which a provider answer was found
// unusable.
type ResponseStage string

const (
	StageEmpty    ResponseStage = "empty"
	StageRefused  ResponseStage = "refused"
	StageDecode   ResponseStage = "decode"
	StageSchema   ResponseStage = "schema"
	StageQuestion ResponseStage = "question"
)

// ErrInvalidResponse is a parse failure: the model answered, but not with
// a question we can use. Content is the raw answer as received.
type ErrInvalidResponse struct {
	Stage   ResponseStage
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	if e.Stage == "" {
		return fmt.Sprintf("invalid LLM response: %v", e.Err)
	}
	return fmt.Sprintf("invalid LLM response (%s): %v", e.Stage, e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means a structured answer was cut off at MaxTokens.
// Retrying with the same budget would only truncate it again.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// mapStatus converts an SDK error carrying an HTTP status into one of the
// typed errors above. Errors without a useful status are classified as
// network failures when they look like one, else as unavailability.
func mapStatus(status int, err error) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &ErrInvalidCredential{Err: err}
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case status >= 500:
		return &ErrProviderUnavailable{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &ErrNetwork{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// ErrorKind is a coarse classification of provider failures.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotConfigured
	KindInvalidCredential
	KindRateLimit
	KindNetwork
	KindInvalidResponse
	KindUnavailable
	KindCanceled
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotConfigured:
		return "not_configured"
	case KindInvalidCredential:
		return "invalid_credential"
	case KindRateLimit:
		return "rate_limit"
	case KindNetwork:
		return "network"
	case KindInvalidResponse:
		return "invalid_response"
	case KindUnavailable:
		return "unavailable"
	case KindCanceled:
		return "canceled"
	}
	return "unknown"
}

// Classify maps err to its ErrorKind.
func Classify(err error) ErrorKind {
	var (
		cred    *ErrInvalidCredential
		rl      *ErrRateLimit
		netErr  *ErrNetwork
		inv     *ErrInvalidResponse
		maxTok  *ErrMaxTokensExceeded
		unavail *ErrProviderUnavailable
	)
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrNotConfigured):
		return KindNotConfigured
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.As(err, &cred):
		return KindInvalidCredential
	case errors.As(err, &rl):
		return KindRateLimit
	case errors.As(err, &netErr):
		return KindNetwork
	case errors.As(err, &inv), errors.As(err, &maxTok):
		return KindInvalidResponse
	case errors.As(err, &unavail):
		return KindUnavailable
	}
	return KindUnknown
}
