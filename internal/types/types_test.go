package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpl-lang/simplc/internal/sym"
)

func TestMonotype_String_FnIsRightAssociative(t *testing.T) {
	// Int -> (Int -> Bool), displayed without the inner parens.
	got := Fn(Int, Fn(Int, Bool)).String()
	if diff := cmp.Diff("Int -> Int -> Bool", got); diff != "" {
		t.Errorf("Fn string representation mismatch (-want +got):\n%s", diff)
	}
}

func TestMonotype_String_FnAsDomainIsParenthesized(t *testing.T) {
	// (Int -> Int) -> Bool: a function-typed domain needs parens, since
	// display is otherwise ambiguous with the right-associative default.
	got := Fn(Fn(Int, Int), Bool).String()
	if diff := cmp.Diff("(Int -> Int) -> Bool", got); diff != "" {
		t.Errorf("Fn-as-domain string representation mismatch (-want +got):\n%s", diff)
	}
}

func TestMonotype_Equals_Structural(t *testing.T) {
	assert.True(t, Fn(Int, Bool).Equals(Fn(Int, Bool)))
	assert.False(t, Fn(Int, Bool).Equals(Fn(Int, Int)))
	assert.True(t, TypeVar(3).Equals(TypeVar(3)))
	assert.False(t, TypeVar(3).Equals(TypeVar(4)))
	assert.False(t, Int.Equals(Bool))
}

func TestTypeVarGen_FreshStartsAtZeroAndIncrements(t *testing.T) {
	g := NewTypeVarGen()
	first := g.Fresh()
	second := g.Fresh()
	assert.Equal(t, 0, first.VarID())
	assert.Equal(t, 1, second.VarID())
}

func TestTypeOfLit(t *testing.T) {
	assert.Same(t, Bool, TypeOfLit(LitBool))
	assert.Same(t, Int, TypeOfLit(LitInt))
	assert.Same(t, Float, TypeOfLit(LitFloat))
}

func TestEnv_ExtendDoesNotMutateParent(t *testing.T) {
	table := sym.NewTable()
	x := table.Intern("x")

	var base *Env
	extended := base.Extend(x, Int)

	_, okBase := base.Lookup(x)
	assert.False(t, okBase, "extending must not mutate the pre-extension environment")

	ty, okExt := extended.Lookup(x)
	require.True(t, okExt)
	assert.Same(t, Int, ty)
}

func TestEnv_InnerBindingShadowsOuter(t *testing.T) {
	table := sym.NewTable()
	x := table.Intern("x")

	env := (*Env)(nil).Extend(x, Int).Extend(x, Bool)
	ty, ok := env.Lookup(x)
	require.True(t, ok)
	assert.Same(t, Bool, ty, "the most recently extended binding for a name wins")
}

func TestDefaultEnv_SeedsBuiltins(t *testing.T) {
	table := sym.NewTable()
	env := DefaultEnv(table)

	cases := []struct {
		name string
		want *Monotype
	}{
		{"add", Fn(Int, Fn(Int, Int))},
		{"sub", Fn(Int, Fn(Int, Int))},
		{"mul", Fn(Int, Fn(Int, Int))},
		{"is_zero", Fn(Int, Bool)},
		{"not", Fn(Bool, Bool)},
	}
	for _, c := range cases {
		ty, ok := env.Lookup(table.Intern(c.name))
		require.True(t, ok, "DefaultEnv must bind %q", c.name)
		assert.True(t, c.want.Equals(ty), "%s: want %s, got %s", c.name, c.want, ty)
	}
}

func TestSubstitution_ApplyReplacesBoundVars(t *testing.T) {
	sub := Substitution{0: Int, 1: Bool}
	got := sub.Apply(Fn(TypeVar(0), TypeVar(1)))
	assert.True(t, Fn(Int, Bool).Equals(got))
}

func TestSubstitution_ApplyLeavesUnboundVarsAlone(t *testing.T) {
	sub := Substitution{0: Int}
	got := sub.Apply(TypeVar(1))
	assert.Equal(t, 1, got.VarID())
}

func TestSubstitution_Compose_AppliesRightThenOverlaysLeft(t *testing.T) {
	// sigma = {0 -> t1}, tau = {1 -> Int}
	// (sigma ∘ tau) should send 0 to Int (via tau applied to sigma's range)
	// and keep tau's own mapping 1 -> Int.
	sigma := Substitution{0: TypeVar(1)}
	tau := Substitution{1: Int}

	composed := sigma.Compose(tau)
	assert.True(t, Int.Equals(composed.Apply(TypeVar(0))))
	assert.True(t, Int.Equals(composed.Apply(TypeVar(1))))
}

func TestSubstitution_Compose_TauKeyWinsOnConflict(t *testing.T) {
	sigma := Substitution{0: Bool}
	tau := Substitution{0: Int}

	composed := sigma.Compose(tau)
	assert.True(t, Int.Equals(composed.Apply(TypeVar(0))), "tau's mapping must win over sigma's on the same key")
}
