package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNotInteger is returned when the input is not a base-10 int64.
	ErrNotInteger = errors.New("not an integer")
	// ErrNegative is returned for values below zero; digit-based
	// predicates are only defined for non-negative numbers.
	ErrNegative = errors.New("negative numbers are not supported")
)

// ValidationError describes rejected raw input. Raw is echoed back to clients
// verbatim.
type ValidationError struct {
	Raw string
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid number %q: %v", e.Raw, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ParseNumber parses raw query text into a non-negative int64. Surrounding
// whitespace is not trimmed; " 7" is rejected like any other malformed value.
func ParseNumber(raw string) (int64, error) {
	if raw == "" || strings.TrimSpace(raw) != raw {
		return 0, &ValidationError{Raw: raw, Err: ErrNotInteger}
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ValidationError{Raw: raw, Err: fmt.Errorf("%w: %v", ErrNotInteger, err)}
	}
	if n < 0 {
		return 0, &ValidationError{Raw: raw, Err: ErrNegative}
	}
	return n, nil
}
