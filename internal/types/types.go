// Package types implements the Language's monotype system: a closed,
// monomorphic set of types with no universal quantification. There is
// no Scheme/polytype here — let-generalization is an explicit non-goal.
package types

import (
	"fmt"

	"github.com/simpl-lang/simplc/internal/sym"
)

// Kind discriminates the Monotype variants.
type Kind int

const (
	KInt Kind = iota
	KFloat
	KBool
	KVar
	KFn
)

// Monotype is a discriminated sum with variants Int, Float, Bool,
// TypeVar(id), and Fn(domain, codomain). Equality is structural.
type Monotype struct {
	kind   Kind
	varID  int       // valid when kind == KVar
	domain *Monotype // valid when kind == KFn
	codom  *Monotype // valid when kind == KFn
}

var (
	Int   = &Monotype{kind: KInt}
	Float = &Monotype{kind: KFloat}
	Bool  = &Monotype{kind: KBool}
)

// TypeVar constructs Monotype variant TypeVar(id).
func TypeVar(id int) *Monotype { return &Monotype{kind: KVar, varID: id} }

// Fn constructs the binary function type domain -> codomain. Multi-argument
// functions are curried, never represented directly.
func Fn(domain, codomain *Monotype) *Monotype {
	return &Monotype{kind: KFn, domain: domain, codom: codomain}
}

// Kind reports which variant t is.
func (t *Monotype) Kind() Kind { return t.kind }

// VarID returns the type-variable id. Only valid when Kind() == KVar.
func (t *Monotype) VarID() int { return t.varID }

// Domain returns the argument type of a Fn. Only valid when Kind() == KFn.
func (t *Monotype) Domain() *Monotype { return t.domain }

// Codomain returns the result type of a Fn. Only valid when Kind() == KFn.
func (t *Monotype) Codomain() *Monotype { return t.codom }

// Equals reports structural equality.
func (t *Monotype) Equals(other *Monotype) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case KVar:
		return t.varID == other.varID
	case KFn:
		return t.domain.Equals(other.domain) && t.codom.Equals(other.codom)
	default:
		return true
	}
}

// String renders t; Fn is right-associative in display, e.g.
// "Int -> Int -> Bool" means "Int -> (Int -> Bool)".
func (t *Monotype) String() string {
	switch t.kind {
	case KInt:
		return "Int"
	case KFloat:
		return "Float"
	case KBool:
		return "Bool"
	case KVar:
		return fmt.Sprintf("t%d", t.varID)
	case KFn:
		dom := t.domain.String()
		if t.domain.kind == KFn {
			dom = "(" + dom + ")"
		}
		return fmt.Sprintf("%s -> %s", dom, t.codom.String())
	default:
		return "<invalid type>"
	}
}

// TypeVarGen produces fresh TypeVar(n) values, starting at 0. One
// generator is shared for the whole tree built by a single compilation.
type TypeVarGen struct {
	next int
}

// NewTypeVarGen constructs a counter starting at 0.
func NewTypeVarGen() *TypeVarGen { return &TypeVarGen{} }

// Fresh returns a new TypeVar(n) and advances the counter.
func (g *TypeVarGen) Fresh() *Monotype {
	t := TypeVar(g.next)
	g.next++
	return t
}

// LitKind discriminates literal values.
type LitKind int

const (
	LitBool LitKind = iota
	LitInt
	LitFloat
)

// TypeOfLit maps a literal kind to its monotype: Bool->Bool, Int->Int,
// Float->Float.
func TypeOfLit(k LitKind) *Monotype {
	switch k {
	case LitBool:
		return Bool
	case LitInt:
		return Int
	case LitFloat:
		return Float
	default:
		panic("types: unknown literal kind")
	}
}

// Env is a type environment: an immutable mapping from symbol to
// monotype. Updates clone-and-extend; existing Envs are never mutated
// in place, so a binding site can hold a reference to the
// pre-extension environment safely.
type Env struct {
	parent *Env
	name   sym.Symbol
	ty     *Monotype
}

// Extend returns a new Env identical to e but additionally binding name
// to ty; lookups on the result see name before anything in e.
func (e *Env) Extend(name sym.Symbol, ty *Monotype) *Env {
	return &Env{parent: e, name: name, ty: ty}
}

// Lookup returns the monotype bound to name, if any.
func (e *Env) Lookup(name sym.Symbol) (*Monotype, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if cur.name == name {
			return cur.ty, true
		}
	}
	return nil, false
}

// DefaultEnv seeds the built-in primitives: add, sub, mul, is_zero, not,
// each with its curried type.
func DefaultEnv(table *sym.Table) *Env {
	var env *Env
	bind := func(name string, ty *Monotype) {
		env = env.Extend(table.Intern(name), ty)
	}
	bind("add", Fn(Int, Fn(Int, Int)))
	bind("sub", Fn(Int, Fn(Int, Int)))
	bind("mul", Fn(Int, Fn(Int, Int)))
	bind("is_zero", Fn(Int, Bool))
	bind("not", Fn(Bool, Bool))
	return env
}
