package weather

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a search failed.
type ErrorKind int

const (
	KindNetworkFailure ErrorKind = iota + 1
	KindInvalidCredential
	KindInvalidQuery
	KindRateLimited
	KindProviderError
	KindMalformedResponse
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetworkFailure:
		return "network_failure"
	case KindInvalidCredential:
		return "invalid_credential"
	case KindInvalidQuery:
		return "invalid_query"
	case KindRateLimited:
		return "rate_limited"
	case KindProviderError:
		return "provider_error"
	case KindMalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

const (
	msgInvalidCredential = "Invalid API key. Please check your WeatherAPI.com key."
	msgInvalidQuery      = "Invalid location. Please try a different city name."
	msgRateLimited       = "API rate limit exceeded. Please try again later."
	msgMalformed         = "Received an unreadable response from the weather service."
	msgNetworkFailure    = "Unable to reach the weather service. Please check your connection."
	msgUnknownProvider   = "Unknown error"
)

// Error is a classified search failure. Error() returns the message meant for
// the user; the underlying cause is available through errors.Unwrap.
type Error struct {
	Kind ErrorKind
	// Status is the provider's HTTP status, zero when no response was received.
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of a classified error, or zero if err is not one.
func KindOf(err error) ErrorKind {
	var we *Error
	if errors.As(err, &we) {
		return we.Kind
	}
	return 0
}

func networkFailure(endpoint string, err error) *Error {
	return &Error{
		Kind:    KindNetworkFailure,
		Message: msgNetworkFailure,
		Err:     fmt.Errorf("requesting %s: %w", endpoint, err),
	}
}

func malformedResponse(endpoint string, err error) *Error {
	return &Error{
		Kind:    KindMalformedResponse,
		Message: msgMalformed,
		Err:     fmt.Errorf("decoding %s: %w", endpoint, err),
	}
}

func providerError(status int, message string) *Error {
	if message == "" {
		message = msgUnknownProvider
	}
	return &Error{
		Kind:    KindProviderError,
		Status:  status,
		Message: fmt.Sprintf("API Error (%d): %s", status, message),
	}
}
