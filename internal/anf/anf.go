// Package anf rewrites typed HIR into A-Normal Form using a
// continuation-passing traversal: normalize(e, k) returns a transformed
// expression by invoking k on the normalized form; normalizeName(e, k)
// additionally forces its argument atomic, naming it via a fresh Let if
// it isn't already. Output grammar:
//
//	e  ::= ae | ae ae | if ae then e else e | let x = e in e | binop ae ae
//	ae ::= literal | var | \x -> e
package anf

import (
	"github.com/simpl-lang/simplc/internal/hir"
	"github.com/simpl-lang/simplc/internal/sym"
)

// cont is a continuation: a pure function from an already-normalized
// expression to the expression surrounding it.
type cont func(hir.Node) hir.Node

// Normalize rewrites n to ANF. It resets gen, since ANF fresh names come
// from a gensym that restarts at the beginning of each normalization
// pass.
func Normalize(n hir.Node, gen *sym.Gensym) hir.Node {
	gen.Reset()
	return normalize(n, gen, identity)
}

func identity(n hir.Node) hir.Node { return n }

// normalize implements the grammar's `e` position: the result may be
// compound.
func normalize(n hir.Node, gen *sym.Gensym, k cont) hir.Node {
	switch n := n.(type) {
	case *hir.Lit, *hir.Var:
		return k(n)

	case *hir.Lambda:
		// Lambda is atomic (ae), but its body is itself normalized to ANF.
		return k(hir.NewLambda(n.Ty, n.Param, normalizeExpr(n.Body, gen)))

	case *hir.If:
		return normalizeName(n.Test, gen, func(test hir.Node) hir.Node {
			// Branches are normalized but not named — they remain compound
			// `e` positions.
			return k(hir.NewIf(n.Ty, test, normalizeExpr(n.Then, gen), normalizeExpr(n.Else, gen)))
		})

	case *hir.Let:
		return normalize(n.Binding.Val, gen, func(val hir.Node) hir.Node {
			binding := n.Binding
			binding.Val = val
			// The continuation may wrap further context inside the body, so
			// the rebuilt Let takes its type from the body it ends up with.
			body := normalize(n.Body, gen, k)
			return hir.NewLet(body.Type(), binding, body)
		})

	case *hir.Letrec:
		// Left alone beyond normalizing each binding's val in place: a
		// deliberately-chosen resolution, documented in DESIGN.md.
		bindings := make([]hir.Binding, len(n.Bindings))
		for i, b := range n.Bindings {
			b.Val = normalizeExpr(b.Val, gen)
			bindings[i] = b
		}
		return k(hir.NewLetrec(n.Ty, bindings, normalizeExpr(n.Body, gen)))

	case *hir.Binop:
		return normalizeName(n.Lhs, gen, func(lhs hir.Node) hir.Node {
			return normalizeName(n.Rhs, gen, func(rhs hir.Node) hir.Node {
				return k(hir.NewBinop(n.Ty, n.Op, lhs, rhs))
			})
		})

	case *hir.App:
		return normalizeName(n.Func, gen, func(fn hir.Node) hir.Node {
			return normalizeName(n.Arg, gen, func(arg hir.Node) hir.Node {
				return k(hir.NewApp(n.Ty, fn, arg))
			})
		})

	default:
		panic("anf: Normalize called on a node outside the pre-closure-conversion dialect")
	}
}

// normalizeExpr is normalize with the identity continuation, used at
// positions that must themselves be complete `e` expressions.
func normalizeExpr(n hir.Node, gen *sym.Gensym) hir.Node {
	return normalize(n, gen, identity)
}

// normalizeName implements the grammar's `ae` position: if the
// normalized subterm is not already atomic, bind it to a fresh variable
// via a surrounding Let and call k with a Var referring to it. The
// introduced Let binder inherits the subterm's type.
func normalizeName(n hir.Node, gen *sym.Gensym, k cont) hir.Node {
	return normalize(n, gen, func(n hir.Node) hir.Node {
		switch n.(type) {
		case *hir.Lit, *hir.Var, *hir.Lambda:
			return k(n)
		default:
			name := gen.Next()
			ty := n.Type()
			ref := hir.NewVar(ty, name)
			binding := hir.Binding{Ty: ty, Name: name, Val: n}
			// The binder inherits the subterm's type; the Let node itself is
			// typed by what the continuation builds around the reference.
			body := k(ref)
			return hir.NewLet(body.Type(), binding, body)
		}
	})
}
