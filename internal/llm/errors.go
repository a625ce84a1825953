package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorKind classifies provider failures so callers can react without
// inspecting provider specific error types.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotAvailable
	KindAuthentication
	KindRateLimit
	KindQuotaExceeded
	KindModelNotFound
	KindNetwork
)

// ProviderError represents a provider-specific error
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Msg      string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first ProviderError in err's chain, or
// KindUnknown.
func KindOf(err error) ErrorKind {
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return KindUnknown
}

// IsNetworkError reports whether err comes from the transport rather than
// from the provider answering. Cancellation by the caller is not a network
// error.
func IsNetworkError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var nerr net.Error
	return errors.As(err, &nerr)
}

// ErrProviderNotAvailable indicates the provider is not available (CLI not found, SDK init failed)
func ErrProviderNotAvailable(provider string, err error) error {
	return &ProviderError{
		Provider: provider,
		Kind:     KindNotAvailable,
		Msg:      fmt.Sprintf("provider '%s' not available", provider),
		Err:      err,
	}
}

// ErrAuthenticationFailed indicates authentication failure (invalid API key, etc.)
func ErrAuthenticationFailed(provider string, err error) error {
	return &ProviderError{
		Provider: provider,
		Kind:     KindAuthentication,
		Msg:      fmt.Sprintf("authentication failed for provider '%s'", provider),
		Err:      err,
	}
}

// ErrRateLimitExceeded indicates the provider's rate limit or quota was hit
func ErrRateLimitExceeded(provider string, err error) error {
	return &ProviderError{
		Provider: provider,
		Kind:     KindRateLimit,
		Msg:      fmt.Sprintf("rate limit exceeded for provider '%s'", provider),
		Err:      err,
	}
}

// ErrQuotaExceeded indicates the account has run out of credits or tokens
func ErrQuotaExceeded(provider string, err error) error {
	return &ProviderError{
		Provider: provider,
		Kind:     KindQuotaExceeded,
		Msg:      fmt.Sprintf("quota exhausted for provider '%s'", provider),
		Err:      err,
	}
}

// ErrModelNotFound indicates the specified model doesn't exist for the provider
func ErrModelNotFound(model, provider string, err error) error {
	return &ProviderError{
		Provider: provider,
		Kind:     KindModelNotFound,
		Msg:      fmt.Sprintf("model '%s' not found for provider '%s'", model, provider),
		Err:      err,
	}
}

// ErrNetwork indicates the provider could not be reached
func ErrNetwork(provider string, err error) error {
	return &ProviderError{
		Provider: provider,
		Kind:     KindNetwork,
		Msg:      fmt.Sprintf("could not reach provider '%s'", provider),
		Err:      err,
	}
}
