// Package unify implements the unifier: given an ordered list of
// constraints, produce the substitution that solves them all, or fail
// with cerrors.TypeMismatch / cerrors.OccursCheck.
package unify

import (
	"github.com/simpl-lang/simplc/internal/cerrors"
	"github.com/simpl-lang/simplc/internal/constraint"
	"github.com/simpl-lang/simplc/internal/types"
)

// Solve runs a structural, greedy algorithm: take the head constraint,
// solve it, apply the result to the tail, recursively solve the
// substituted tail, and compose.
func Solve(cons []constraint.Constraint) (types.Substitution, error) {
	if len(cons) == 0 {
		return types.NewSubstitution(), nil
	}
	head, tail := cons[0], cons[1:]

	sigma1, err := unify1(head.T, head.U)
	if err != nil {
		return nil, err
	}

	substTail := make([]constraint.Constraint, len(tail))
	for i, c := range tail {
		substTail[i] = constraint.Constraint{T: sigma1.Apply(c.T), U: sigma1.Apply(c.U)}
	}

	sigma2, err := Solve(substTail)
	if err != nil {
		return nil, err
	}
	return sigma1.Compose(sigma2), nil
}

// unify1 solves a single constraint.
func unify1(t, u *types.Monotype) (types.Substitution, error) {
	switch {
	case t.Kind() == types.KVar:
		return bind(t.VarID(), u)
	case u.Kind() == types.KVar:
		return bind(u.VarID(), t)
	case t.Kind() != u.Kind():
		return nil, cerrors.TypeMismatch{Left: t, Right: u}
	case t.Kind() == types.KFn:
		return unifyPair(t.Domain(), u.Domain(), t.Codomain(), u.Codomain())
	default: // both the same primitive kind (Int/Float/Bool)
		return types.NewSubstitution(), nil
	}
}

// unifyPair unifies the two-element list [(a1,a2), (r1,r2)].
func unifyPair(a1, a2, r1, r2 *types.Monotype) (types.Substitution, error) {
	return Solve([]constraint.Constraint{{T: a1, U: a2}, {T: r1, U: r2}})
}

// bind solves TypeVar(v) ≡ ty.
func bind(v int, ty *types.Monotype) (types.Substitution, error) {
	if ty.Kind() == types.KVar && ty.VarID() == v {
		return types.NewSubstitution(), nil
	}
	if occurs(v, ty) {
		return nil, cerrors.OccursCheck{Var: v, Ty: ty}
	}
	return types.Singleton(v, ty), nil
}

// occurs is the occurs check: does TypeVar(v) appear anywhere inside ty,
// recursing into Fn on both sides.
func occurs(v int, ty *types.Monotype) bool {
	switch ty.Kind() {
	case types.KVar:
		return ty.VarID() == v
	case types.KFn:
		return occurs(v, ty.Domain()) || occurs(v, ty.Codomain())
	default:
		return false
	}
}
