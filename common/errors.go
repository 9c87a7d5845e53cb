// Package common holds the CommonError family (spec.md §7): the two
// non-recoverable, programming-mistake-signaling errors that any package
// in this module may raise when one of the hybrid-tree invariants is
// violated or an unexpected panic is recovered at a package boundary.
package common

import (
	"fmt"

	"github.com/cybersorcerer/pqcore/localization"
)

// InvariantError signals that one of the documented invariants (spec.md
// §3.6, §8) no longer holds. Details carries whatever structured context
// the caller attached for diagnosis; it is not localized, since invariant
// violations are a bug report, not a user-facing message.
type InvariantError struct {
	Msg     string
	Details map[string]any
}

func (e *InvariantError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("invariant violated: %s", e.Msg)
	}
	return fmt.Sprintf("invariant violated: %s (details: %v)", e.Msg, e.Details)
}

// NewInvariantError builds an InvariantError, rendering its headline
// through the catalog when the catalog knows the code, falling back to msg
// verbatim otherwise.
func NewInvariantError(catalog localization.Catalog, msg string, details map[string]any) *InvariantError {
	rendered := msg
	if tmpl, ok := catalog.Lookup("error_common_invariant"); ok {
		rendered = fmt.Sprintf(tmpl, msg)
	}
	return &InvariantError{Msg: rendered, Details: details}
}

// UnknownError wraps an unexpected error recovered at a package boundary
// (e.g. Inspection catching a panic, per spec.md §7's propagation policy
// for inspect).
type UnknownError struct {
	Inner error
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unexpected error: %v", e.Inner)
}

func (e *UnknownError) Unwrap() error {
	return e.Inner
}

// NewUnknownError wraps inner. The catalog is not consulted: Error() always
// renders the fixed headline "unexpected error: " followed by inner.
func NewUnknownError(catalog localization.Catalog, inner error) *UnknownError {
	return &UnknownError{Inner: inner}
}
