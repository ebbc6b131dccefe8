// Package hdperrors defines the error kinds the sampler core can raise.
//
// Only two kinds ever leave the package boundary: InvalidConfig at
// construction time, and InvariantViolation if the count bookkeeping
// is ever caught in a state the sampler cannot have produced itself.
// NumericalOverflow is handled internally by logRF's branch selection
// (see internal/sampler) and never surfaces.
package hdperrors

import "fmt"

// InvalidConfig reports a construction-time argument that fails the
// sampler's preconditions: V<1, D<1, a hyperparameter <=0, or a
// token outside [0,V). Construction fails cleanly; no partially
// initialized sampler is ever returned.
type InvalidConfig struct {
	Field  string
	Reason string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("hdplda: invalid config field %q: %s", e.Field, e.Reason)
}

// NewInvalidConfig constructs an InvalidConfig error.
func NewInvalidConfig(field, reason string) error {
	return &InvalidConfig{Field: field, Reason: reason}
}

// InvariantViolation reports a broken count invariant: a negative
// count, a table left with n==0, a topic left with m==0, or
// m != sum(m_k). It always indicates a bug in the sampler itself, not
// a runtime condition callers can retry past, and callers should treat
// it as fatal.
type InvariantViolation struct {
	Where string
	Msg   string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("hdplda: invariant violated in %s: %s", e.Where, e.Msg)
}

// NewInvariantViolation constructs an InvariantViolation error.
func NewInvariantViolation(where, msg string) error {
	return &InvariantViolation{Where: where, Msg: msg}
}
