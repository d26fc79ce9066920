package weather

import (
	"errors"
	"fmt"
)

// Kind discriminates the failure classes the application can surface.
// Every fallible operation in the pipeline returns an *Error carrying
// exactly one of these kinds; nothing propagates raw transport errors.
type Kind uint8

const (
	// KindConfiguration means local setup is missing or invalid (e.g. no API key).
	KindConfiguration Kind = iota + 1
	// KindGeoCoding means the location lookup failed.
	KindGeoCoding
	// KindWeatherAPI means the provider rejected or failed the request.
	KindWeatherAPI
	// KindNetwork means a transport-level failure (refused, timeout, DNS).
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindGeoCoding:
		return "geocoding"
	case KindWeatherAPI:
		return "weather api"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Error is the application error type: a kind tag, a human-readable
// message, and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds an *Error with the given kind and formatted message.
func E(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error with the given kind and message around a cause.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
