// Package closure rewrites ANF-normalized, alpha-renamed typed HIR to
// make every captured environment explicit: Lambda becomes MkClosure
// (carrying its free-variable map) and App becomes AppClosure. It must
// run after alpha-renaming, which guarantees no captured name collides
// with any binder the converter introduces or passes through.
package closure

import (
	"github.com/simpl-lang/simplc/internal/freevars"
	"github.com/simpl-lang/simplc/internal/hir"
)

// Convert rewrites n, replacing every Lambda/App with MkClosure/AppClosure.
func Convert(n hir.Node) hir.Node {
	return convert(n)
}

func convert(n hir.Node) hir.Node {
	switch n := n.(type) {
	case *hir.Lit:
		return n

	case *hir.Var:
		return n

	case *hir.If:
		return hir.NewIf(n.Ty, convert(n.Test), convert(n.Then), convert(n.Else))

	case *hir.Let:
		binding := n.Binding
		binding.Val = convert(n.Binding.Val)
		return hir.NewLet(n.Ty, binding, convert(n.Body))

	case *hir.Letrec:
		bindings := make([]hir.Binding, len(n.Bindings))
		for i, b := range n.Bindings {
			b.Val = convert(b.Val)
			bindings[i] = b
		}
		return hir.NewLetrec(n.Ty, bindings, convert(n.Body))

	case *hir.Binop:
		return hir.NewBinop(n.Ty, n.Op, convert(n.Lhs), convert(n.Rhs))

	case *hir.App:
		return hir.NewAppClosure(n.Ty, convert(n.Func), convert(n.Arg))

	case *hir.Lambda:
		return convertLambda(n)

	default:
		panic("closure: Convert called on a node outside the pre-closure-conversion dialect")
	}
}

// convertLambda implements the rewrite: compute the lambda's free
// variables excluding its own parameter, convert the body, replace every
// reference to a captured name with an EnvRef, then package the result
// as a MkClosure.
func convertLambda(n *hir.Lambda) hir.Node {
	fv := freevars.Of(n)
	fv.Delete(n.Param.Name)

	body := convert(n.Body)
	body = envRefFreeVars(body, fv)

	return hir.NewMkClosure(n.Ty, n.Param, fv, body)
}

// envRefFreeVars replaces every Var{name} with name in fv by
// EnvRef{name}, stopping at nested MkClosure bodies: a nested lambda's
// converter already rewrote its own free-variable references against
// its own capture set, and its body may legitimately reuse a name this
// level no longer sees as free (it is read from the nested env instead).
func envRefFreeVars(n hir.Node, fv *hir.FreeVars) hir.Node {
	switch n := n.(type) {
	case *hir.Lit:
		return n

	case *hir.Var:
		if ty, ok := fv.Get(n.Name); ok {
			return hir.NewEnvRef(ty, n.Name)
		}
		return n

	case *hir.EnvRef:
		return n

	case *hir.If:
		return hir.NewIf(n.Ty,
			envRefFreeVars(n.Test, fv), envRefFreeVars(n.Then, fv), envRefFreeVars(n.Else, fv))

	case *hir.Let:
		binding := n.Binding
		binding.Val = envRefFreeVars(n.Binding.Val, fv)
		return hir.NewLet(n.Ty, binding, envRefFreeVars(n.Body, fv))

	case *hir.Letrec:
		bindings := make([]hir.Binding, len(n.Bindings))
		for i, b := range n.Bindings {
			b.Val = envRefFreeVars(b.Val, fv)
			bindings[i] = b
		}
		return hir.NewLetrec(n.Ty, bindings, envRefFreeVars(n.Body, fv))

	case *hir.Binop:
		return hir.NewBinop(n.Ty, n.Op, envRefFreeVars(n.Lhs, fv), envRefFreeVars(n.Rhs, fv))

	case *hir.AppClosure:
		return hir.NewAppClosure(n.Ty, envRefFreeVars(n.Func, fv), envRefFreeVars(n.Arg, fv))

	case *hir.MkClosure:
		// A nested lambda's own conversion already rewrote its body against
		// its own free-variable set; leave it untouched.
		return n

	default:
		panic("closure: envRefFreeVars called on an unexpected node variant")
	}
}
