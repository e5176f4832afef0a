// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"errors"
	"fmt"
)

var (
	ErrNoSelection      = errors.New("no candidate selected")
	ErrUnknownCandidate = errors.New("unknown candidate")
	ErrUnknownPosition  = errors.New("unknown position")
	ErrSchedulerState   = errors.New("scheduler already started or stopped")
)

// ValidationError rejects a request without changing any state.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// TransientFetchError is returned when the candidate registry could not be
// read. Last-known tallies stay in place and the next pass retries.
type TransientFetchError struct {
	Err error
}

func (e *TransientFetchError) Error() string {
	return fmt.Sprintf("candidate registry unavailable: %v", e.Err)
}

func (e *TransientFetchError) Unwrap() error { return e.Err }
