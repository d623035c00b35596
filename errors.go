package llmrouter

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedIdentifier is returned when an identifier has no model segment.
	ErrMalformedIdentifier = errors.New("malformed model identifier")
	// ErrNoViableModel is returned when no candidate resolves to a
	// capability-satisfying catalog entry.
	ErrNoViableModel = errors.New("no viable model")
	// ErrAliasCycle is returned when an alias points at another alias.
	ErrAliasCycle = errors.New("alias cycle")
	// ErrInvalidAlias is returned for alias entries with an empty key or value.
	ErrInvalidAlias = errors.New("invalid alias")
	// ErrInvalidCatalog is returned when catalog entries fail validation.
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// MalformedIdentifierError reports the input that failed to parse.
type MalformedIdentifierError struct {
	Input string
	// Reason is empty when the model segment is missing.
	Reason string
}

func (e *MalformedIdentifierError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %q has an empty model segment", ErrMalformedIdentifier, e.Input)
	}
	return fmt.Sprintf("%s: %q: %s", ErrMalformedIdentifier, e.Input, e.Reason)
}

func (e *MalformedIdentifierError) Unwrap() error { return ErrMalformedIdentifier }

// NoViableModelError lists every candidate identifier that was tried.
type NoViableModelError struct {
	Attempted []string
	// Malformed holds the parse errors of candidates that were skipped.
	Malformed []error
}

func (e *NoViableModelError) Error() string {
	if len(e.Attempted) == 0 {
		return ErrNoViableModel.Error() + ": no candidates"
	}
	msg := fmt.Sprintf("%s: attempted %s", ErrNoViableModel, strings.Join(e.Attempted, ", "))
	if len(e.Malformed) > 0 {
		reasons := make([]string, len(e.Malformed))
		for i, err := range e.Malformed {
			reasons[i] = err.Error()
		}
		msg += " (" + strings.Join(reasons, "; ") + ")"
	}
	return msg
}

func (e *NoViableModelError) Unwrap() error { return ErrNoViableModel }

// AliasCycleError names the alias whose target is itself an alias.
type AliasCycleError struct {
	Alias  string
	Target string
}

func (e *AliasCycleError) Error() string {
	return fmt.Sprintf("%s: %q -> %q, which is also an alias", ErrAliasCycle, e.Alias, e.Target)
}

func (e *AliasCycleError) Unwrap() error { return ErrAliasCycle }
