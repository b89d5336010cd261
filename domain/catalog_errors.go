package domain

import (
	"errors"
	"fmt"
)

// FetchKind classifies why a catalog fetch failed.
type FetchKind int

const (
	FetchNetwork FetchKind = iota + 1
	FetchTimeout
	FetchCanceled
	FetchDecode
	// FetchUpstream4xx covers every non-2xx status below 500.
	FetchUpstream4xx
	FetchUpstream5xx
)

func (k FetchKind) String() string {
	switch k {
	case FetchNetwork:
		return "network"
	case FetchTimeout:
		return "timeout"
	case FetchCanceled:
		return "canceled"
	case FetchDecode:
		return "decode"
	case FetchUpstream4xx:
		return "upstream_4xx"
	case FetchUpstream5xx:
		return "upstream_5xx"
	default:
		return "unknown"
	}
}

type FetchError struct {
	Kind       FetchKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog fetch (%s, status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("catalog fetch (%s): %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// FetchKindOf returns the classified kind of err, or 0 if err is not a
// FetchError.
func FetchKindOf(err error) FetchKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
