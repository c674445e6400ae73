package codegen

import (
	"tinygo.org/x/go-llvm"

	"github.com/simpl-lang/simplc/internal/ast"
	"github.com/simpl-lang/simplc/internal/hir"
)

// compileBinop dispatches on the operator's class. Integer division
// truncates toward zero, matching Go's native int64 "/" — the source
// language leaves this choice to the implementer.
func (g *Generator) compileBinop(fn llvm.Value, n *hir.Binop) (llvm.Value, error) {
	lhs, err := g.compile(fn, n.Lhs)
	if err != nil {
		return llvm.Value{}, err
	}
	rhs, err := g.compile(fn, n.Rhs)
	if err != nil {
		return llvm.Value{}, err
	}

	switch n.Op {
	case ast.IntAdd:
		return g.b.CreateAdd(lhs, rhs, ""), nil
	case ast.IntSub:
		return g.b.CreateSub(lhs, rhs, ""), nil
	case ast.IntMul:
		return g.b.CreateMul(lhs, rhs, ""), nil
	case ast.IntDiv:
		return g.b.CreateSDiv(lhs, rhs, ""), nil
	case ast.IntLt:
		return g.b.CreateICmp(llvm.IntSLT, lhs, rhs, ""), nil
	case ast.IntLeq:
		return g.b.CreateICmp(llvm.IntSLE, lhs, rhs, ""), nil
	case ast.IntGt:
		return g.b.CreateICmp(llvm.IntSGT, lhs, rhs, ""), nil
	case ast.IntGeq:
		return g.b.CreateICmp(llvm.IntSGE, lhs, rhs, ""), nil

	case ast.FloatAdd:
		return g.b.CreateFAdd(lhs, rhs, ""), nil
	case ast.FloatSub:
		return g.b.CreateFSub(lhs, rhs, ""), nil
	case ast.FloatMul:
		return g.b.CreateFMul(lhs, rhs, ""), nil
	case ast.FloatDiv:
		return g.b.CreateFDiv(lhs, rhs, ""), nil
	case ast.FloatLt:
		return g.b.CreateFCmp(llvm.FloatOLT, lhs, rhs, ""), nil
	case ast.FloatLeq:
		return g.b.CreateFCmp(llvm.FloatOLE, lhs, rhs, ""), nil
	case ast.FloatGt:
		return g.b.CreateFCmp(llvm.FloatOGT, lhs, rhs, ""), nil
	case ast.FloatGeq:
		return g.b.CreateFCmp(llvm.FloatOGE, lhs, rhs, ""), nil

	case ast.Eq:
		return g.compileEquality(lhs, rhs, llvm.IntEQ, llvm.FloatOEQ), nil
	case ast.Neq:
		return g.compileEquality(lhs, rhs, llvm.IntNE, llvm.FloatONE), nil

	default:
		panic("codegen: compileBinop: unknown operator")
	}
}

// compileEquality dispatches Eq/Neq on the operands' IR type: both sides
// already unify to the same monotype by the time codegen runs, so
// checking lhs's type suffices.
func (g *Generator) compileEquality(lhs, rhs llvm.Value, iPred llvm.IntPredicate, fPred llvm.FloatPredicate) llvm.Value {
	if lhs.Type() == g.fltTy {
		return g.b.CreateFCmp(fPred, lhs, rhs, "")
	}
	return g.b.CreateICmp(iPred, lhs, rhs, "")
}
