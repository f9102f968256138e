package domain

import (
	"errors"
	"fmt"
)

// FetchKind classifies a failed fetch
type FetchKind int

const (
	KindNetwork FetchKind = iota // transport failure, timeout, open circuit
	KindParse                    // body is not the expected JSON shape
	KindStatus                   // server answered with a non-2xx status
)

// Sentinels matched by FetchError.Is
var (
	ErrNetwork = errors.New("network error")
	ErrParse   = errors.New("parse error")
	ErrStatus  = errors.New("unexpected status")
)

func (k FetchKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindParse:
		return "parse"
	case KindStatus:
		return "status"
	default:
		return "unknown"
	}
}

// FetchError is returned by every failed call to the search server
type FetchError struct {
	Kind       FetchKind
	Op         string // "search" or "history"
	StatusCode int    // set for KindStatus
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("%s: %s %d", e.Op, ErrStatus, e.StatusCode)
	case KindParse:
		return fmt.Sprintf("%s: %s: %v", e.Op, ErrParse, e.Err)
	default:
		return fmt.Sprintf("%s: %s: %v", e.Op, ErrNetwork, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is lets callers match a kind with errors.Is(err, domain.ErrParse)
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrParse:
		return e.Kind == KindParse
	case ErrStatus:
		return e.Kind == KindStatus
	}
	return false
}

// NewNetworkError wraps a transport failure
func NewNetworkError(op string, err error) *FetchError {
	return &FetchError{Kind: KindNetwork, Op: op, Err: err}
}

// NewParseError wraps a decoding failure
func NewParseError(op string, err error) *FetchError {
	return &FetchError{Kind: KindParse, Op: op, Err: err}
}

// NewStatusError records a non-2xx response
func NewStatusError(op string, code int) *FetchError {
	return &FetchError{Kind: KindStatus, Op: op, StatusCode: code}
}
