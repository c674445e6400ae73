// Package cerrors defines the core's error taxonomy: a small, closed set
// of discriminated error types, each with a stable code, following an
// internal/errors convention of a per-phase code plus a human-readable
// message. The core returns these as structured values; it never
// prints.
package cerrors

import "fmt"

// Code is a stable, per-phase error code.
type Code string

const (
	// CodeUnboundVariable marks constraint-collection failures.
	CodeUnboundVariable Code = "TYP001"
	// CodeTypeMismatch marks unifier structural-mismatch failures.
	CodeTypeMismatch Code = "TYP002"
	// CodeOccursCheck marks unifier occurs-check failures.
	CodeOccursCheck Code = "TYP003"
	// CodeVerificationFailure marks codegen backend-verifier failures.
	CodeVerificationFailure Code = "GEN001"
	// CodeNotImplemented marks a deliberately unresolved corner case.
	CodeNotImplemented Code = "GEN002"
)

// UnboundVariable: constraint collection referenced a name absent from
// the type environment at the use site. User-facing.
type UnboundVariable struct {
	Name string
}

func (e UnboundVariable) Error() string {
	return fmt.Sprintf("[%s] unbound variable: %s", CodeUnboundVariable, e.Name)
}

// Code identifies the error's taxonomy slot.
func (UnboundVariable) Code() Code { return CodeUnboundVariable }

// TypeMismatch: the unifier found two structurally incompatible types
// (distinct primitives, primitive vs. function, or vice versa).
// User-facing.
type TypeMismatch struct {
	Left, Right fmt.Stringer
}

func (e TypeMismatch) Error() string {
	return fmt.Sprintf("[%s] cannot unify %s with %s", CodeTypeMismatch, e.Left, e.Right)
}

func (TypeMismatch) Code() Code { return CodeTypeMismatch }

// OccursCheck: a type variable would have to refer to a type containing
// itself. User-facing — this language has no recursive types.
type OccursCheck struct {
	Var int
	Ty  fmt.Stringer
}

func (e OccursCheck) Error() string {
	return fmt.Sprintf("[%s] occurs check failed: t%d occurs in %s", CodeOccursCheck, e.Var, e.Ty)
}

func (OccursCheck) Code() Code { return CodeOccursCheck }

// VerificationFailure: codegen emitted IR that failed the backend
// verifier. Treated as a compiler bug, not a user error.
type VerificationFailure struct {
	Detail string
}

func (e VerificationFailure) Error() string {
	return fmt.Sprintf("[%s] IR verification failed: %s", CodeVerificationFailure, e.Detail)
}

func (VerificationFailure) Code() Code { return CodeVerificationFailure }

// NotImplemented: a corner case the implementation deliberately leaves
// unresolved. Available for any stage that needs to flag one.
type NotImplemented struct {
	Feature string
}

func (e NotImplemented) Error() string {
	return fmt.Sprintf("[%s] not implemented: %s", CodeNotImplemented, e.Feature)
}

func (NotImplemented) Code() Code { return CodeNotImplemented }
