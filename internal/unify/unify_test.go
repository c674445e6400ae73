package unify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpl-lang/simplc/internal/cerrors"
	"github.com/simpl-lang/simplc/internal/constraint"
	"github.com/simpl-lang/simplc/internal/types"
)

func TestSolve_Empty(t *testing.T) {
	sub, err := Solve(nil)
	require.NoError(t, err)
	assert.Equal(t, types.Int, sub.Apply(types.Int))
}

func TestSolve_BindsTypeVar(t *testing.T) {
	tv := types.TypeVar(0)
	sub, err := Solve([]constraint.Constraint{{T: tv, U: types.Int}})
	require.NoError(t, err)
	assert.True(t, types.Int.Equals(sub.Apply(tv)))
}

func TestSolve_ChainedConstraintsCompose(t *testing.T) {
	a, b := types.TypeVar(0), types.TypeVar(1)
	cons := []constraint.Constraint{
		{T: a, U: b},
		{T: b, U: types.Bool},
	}
	sub, err := Solve(cons)
	require.NoError(t, err)
	assert.True(t, types.Bool.Equals(sub.Apply(a)))
	assert.True(t, types.Bool.Equals(sub.Apply(b)))
}

func TestSolve_FnUnifiesComponentwise(t *testing.T) {
	a, b := types.TypeVar(0), types.TypeVar(1)
	cons := []constraint.Constraint{
		{T: types.Fn(a, b), U: types.Fn(types.Int, types.Bool)},
	}
	sub, err := Solve(cons)
	require.NoError(t, err)
	assert.True(t, types.Int.Equals(sub.Apply(a)))
	assert.True(t, types.Bool.Equals(sub.Apply(b)))
}

func TestSolve_StructuralMismatch_TypeMismatch(t *testing.T) {
	_, err := Solve([]constraint.Constraint{{T: types.Int, U: types.Bool}})
	require.Error(t, err)
	var mismatch cerrors.TypeMismatch
	assert.ErrorAs(t, err, &mismatch)
}

func TestSolve_OccursCheck_RejectsSelfReferentialFn(t *testing.T) {
	// t0 ≡ t0 -> Int: t0 would have to contain itself.
	tv := types.TypeVar(0)
	_, err := Solve([]constraint.Constraint{{T: tv, U: types.Fn(tv, types.Int)}})
	require.Error(t, err)
	var occ cerrors.OccursCheck
	assert.ErrorAs(t, err, &occ)
}

func TestSolve_IdentityFunctionShape(t *testing.T) {
	// \x -> x with param t0, body t1, lambda t2: the collector emits
	// t2 ≡ t0 -> t1 and t1 ≡ t0, so t2 solves to t0 -> t0 — the domain and
	// codomain stay the same variable.
	t0, t1, t2 := types.TypeVar(0), types.TypeVar(1), types.TypeVar(2)
	sub, err := Solve([]constraint.Constraint{
		{T: t2, U: types.Fn(t0, t1)},
		{T: t1, U: t0},
	})
	require.NoError(t, err)
	applied := sub.Apply(t2)
	assert.Equal(t, types.KFn, applied.Kind())
	assert.True(t, applied.Domain().Equals(applied.Codomain()))
}
