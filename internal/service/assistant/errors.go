package assistant

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lyra-ai/lyra-backend/internal/domain"
)

var (
	ErrEntityMissing    = errors.New("required entity missing")
	ErrNoMatchFound     = errors.New("no matching record")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// EntityMissingError means the command lacks a slot its intent requires.
type EntityMissingError struct {
	Intent  domain.Intent
	Missing []domain.EntityType
}

func (e *EntityMissingError) Error() string {
	names := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		names[i] = string(m)
	}
	return fmt.Sprintf("%s: missing %s", e.Intent, strings.Join(names, ", "))
}

func (e *EntityMissingError) Is(target error) bool { return target == ErrEntityMissing }

// NoMatchError means the fuzzy title search came back empty.
type NoMatchError struct {
	Kind  string // task or goal
	Query string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no %s matching %q", e.Kind, e.Query)
}

func (e *NoMatchError) Is(target error) bool { return target == ErrNoMatchFound }

// StoreUnavailableError wraps any failure returned by a domain store.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

func (e *StoreUnavailableError) Is(target error) bool { return target == ErrStoreUnavailable }

func storeErr(op string, err error) error {
	return &StoreUnavailableError{Op: op, Err: err}
}
