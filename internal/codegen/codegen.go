// Package codegen lowers closure-converted typed HIR to an LLVM module,
// using tinygo.org/x/go-llvm's cgo bindings to the system LLVM
// toolchain. Closures are represented as a pair of opaque pointers
// (code, env); a lambda's captured environment is a heap-allocated,
// per-site named struct whose fields are its free variables in order.
package codegen

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"github.com/simpl-lang/simplc/internal/cerrors"
	"github.com/simpl-lang/simplc/internal/hir"
	"github.com/simpl-lang/simplc/internal/sym"
	"github.com/simpl-lang/simplc/internal/types"
)

// Options controls target-dependent codegen knobs.
type Options struct {
	// WordSize is the target integer width: 32 or 64. Anything else is
	// treated as 64. Float is always a 64-bit IEEE double regardless.
	WordSize int
}

// Generator emits a single LLVM module from one root HIR expression.
// It is not safe for concurrent use; the pipeline is single-threaded by
// design (see internal/pipeline).
type Generator struct {
	ctx    llvm.Context
	mod    llvm.Module
	b      llvm.Builder
	opts   Options
	table  *sym.Table
	intTy  llvm.Type
	fltTy  llvm.Type
	boolTy llvm.Type
	ptrTy  llvm.Type // opaque i8*
	cloTy  llvm.Type // named struct Closure{i8*, i8*}

	// scope is the flat name->stack-slot map for the function currently
	// being emitted. Every name that reaches codegen is already globally
	// unique (alpha-renaming has already run), so there is no shadowing
	// to model: a single map per function suffices where a source
	// language with block-scoped shadowing would need a stack of
	// per-block scopes.
	scope map[sym.Symbol]llvm.Value

	lambdaSeq int
	envSeq    int
}

// New constructs a Generator that will emit into a fresh module named
// moduleName. table must be the same interner used to build and type the
// tree Generate will receive: primitives (add, sub, mul, is_zero, not)
// are interned against it so that a free Var referencing one resolves
// to the same Symbol this Generator seeds into the top-level scope.
func New(moduleName string, table *sym.Table, opts Options) *Generator {
	ctx := llvm.NewContext()
	b := ctx.NewBuilder()
	mod := ctx.NewModule(moduleName)

	intTy := ctx.Int64Type()
	if opts.WordSize == 32 {
		intTy = ctx.Int32Type()
	}

	ptrTy := llvm.PointerType(ctx.Int8Type(), 0)
	cloTy := ctx.StructCreateNamed("Closure")
	cloTy.StructSetBody([]llvm.Type{ptrTy, ptrTy}, false)

	return &Generator{
		ctx:    ctx,
		mod:    mod,
		b:      b,
		opts:   opts,
		table:  table,
		intTy:  intTy,
		fltTy:  ctx.DoubleType(),
		boolTy: ctx.Int1Type(),
		ptrTy:  ptrTy,
		cloTy:  cloTy,
	}
}

// Dispose releases the underlying LLVM context and builder. Callers own
// the returned Module independently and must dispose it themselves once
// done (e.g. after printing or writing it out).
func (g *Generator) Dispose() {
	g.b.Dispose()
	g.ctx.Dispose()
}

// Generate emits root as the body of a niladic function named
// "toplevel" and verifies the resulting module. A verification failure
// is returned as cerrors.VerificationFailure; callers decide, per
// internal/config, whether that is fatal.
func (g *Generator) Generate(root hir.Node) (llvm.Module, error) {
	retTy := g.llvmType(root.Type())
	fnTy := llvm.FunctionType(retTy, nil, false)
	fn := llvm.AddFunction(g.mod, "toplevel", fnTy)

	entry := llvm.AddBasicBlock(fn, "entry")
	g.b.SetInsertPointAtEnd(entry)
	g.scope = make(map[sym.Symbol]llvm.Value)
	g.definePrimitives(fn)

	val, err := g.compile(fn, root)
	if err != nil {
		return g.mod, err
	}
	g.b.CreateRet(val)

	if verr := llvm.VerifyModule(g.mod, llvm.ReturnStatusAction); verr != nil {
		return g.mod, cerrors.VerificationFailure{Detail: verr.Error()}
	}
	return g.mod, nil
}

// llvmType maps a resolved monotype to its IR representation. Callers
// must only pass fully-substituted types; a stray KVar reaching codegen
// is a compiler bug, not a user error.
func (g *Generator) llvmType(t *types.Monotype) llvm.Type {
	switch t.Kind() {
	case types.KBool:
		return g.boolTy
	case types.KInt:
		return g.intTy
	case types.KFloat:
		return g.fltTy
	case types.KFn:
		return g.cloTy
	default:
		panic("codegen: llvmType: unresolved type reached codegen")
	}
}

func (g *Generator) define(name sym.Symbol, slot llvm.Value) {
	g.scope[name] = slot
}

func (g *Generator) slot(name sym.Symbol) llvm.Value {
	v, ok := g.scope[name]
	if !ok {
		panic(fmt.Sprintf("codegen: unbound name %q reached codegen", name.String()))
	}
	return v
}

func (g *Generator) load(name sym.Symbol) llvm.Value {
	return g.b.CreateLoad(g.slot(name), "")
}

// compile lowers n, which must belong to the closure-converted dialect
// (post internal/closure), within the function currently being built.
func (g *Generator) compile(fn llvm.Value, n hir.Node) (llvm.Value, error) {
	switch n := n.(type) {
	case *hir.Lit:
		return g.compileLit(n), nil

	case *hir.Var:
		return g.load(n.Name), nil

	case *hir.EnvRef:
		return g.load(n.Name), nil

	case *hir.If:
		return g.compileIf(fn, n)

	case *hir.Let:
		return g.compileLet(fn, n)

	case *hir.Letrec:
		return g.compileLetrec(fn, n)

	case *hir.Binop:
		return g.compileBinop(fn, n)

	case *hir.MkClosure:
		clo, envPtr, envTy, err := g.beginClosure(fn, n)
		if err != nil {
			return llvm.Value{}, err
		}
		g.fillClosureEnv(n, envPtr, envTy)
		return clo, nil

	case *hir.AppClosure:
		return g.compileAppClosure(fn, n)

	default:
		panic("codegen: compile called on a node outside the closure-converted dialect")
	}
}

func (g *Generator) compileLit(n *hir.Lit) llvm.Value {
	switch n.Val.Kind {
	case types.LitBool:
		v := uint64(0)
		if n.Val.Bool {
			v = 1
		}
		return llvm.ConstInt(g.boolTy, v, false)
	case types.LitInt:
		return llvm.ConstInt(g.intTy, uint64(n.Val.Int), true)
	case types.LitFloat:
		return llvm.ConstFloat(g.fltTy, n.Val.Float)
	default:
		panic("codegen: compileLit: unknown literal kind")
	}
}

func (g *Generator) compileIf(fn llvm.Value, n *hir.If) (llvm.Value, error) {
	testVal, err := g.compile(fn, n.Test)
	if err != nil {
		return llvm.Value{}, err
	}

	thenBB := llvm.AddBasicBlock(fn, "if.then")
	elseBB := llvm.AddBasicBlock(fn, "if.else")
	mergeBB := llvm.AddBasicBlock(fn, "if.merge")
	g.b.CreateCondBr(testVal, thenBB, elseBB)

	g.b.SetInsertPointAtEnd(thenBB)
	thenVal, err := g.compile(fn, n.Then)
	if err != nil {
		return llvm.Value{}, err
	}
	thenEnd := g.b.GetInsertBlock()
	g.b.CreateBr(mergeBB)

	g.b.SetInsertPointAtEnd(elseBB)
	elseVal, err := g.compile(fn, n.Else)
	if err != nil {
		return llvm.Value{}, err
	}
	elseEnd := g.b.GetInsertBlock()
	g.b.CreateBr(mergeBB)

	g.b.SetInsertPointAtEnd(mergeBB)
	phi := g.b.CreatePHI(g.llvmType(n.Ty), "")
	phi.AddIncoming([]llvm.Value{thenVal, elseVal}, []llvm.BasicBlock{thenEnd, elseEnd})
	return phi, nil
}

func (g *Generator) compileLet(fn llvm.Value, n *hir.Let) (llvm.Value, error) {
	val, err := g.compile(fn, n.Binding.Val)
	if err != nil {
		return llvm.Value{}, err
	}
	slot := g.b.CreateAlloca(g.llvmType(n.Binding.Ty), "")
	g.b.CreateStore(val, slot)
	g.define(n.Binding.Name, slot)
	return g.compile(fn, n.Body)
}

func (g *Generator) compileAppClosure(fn llvm.Value, n *hir.AppClosure) (llvm.Value, error) {
	cloVal, err := g.compile(fn, n.Func)
	if err != nil {
		return llvm.Value{}, err
	}
	argVal, err := g.compile(fn, n.Arg)
	if err != nil {
		return llvm.Value{}, err
	}

	code := g.b.CreateExtractValue(cloVal, 0, "")
	env := g.b.CreateExtractValue(cloVal, 1, "")

	fnTy := llvm.FunctionType(g.llvmType(n.Ty), []llvm.Type{g.ptrTy, g.llvmType(n.Arg.Type())}, false)
	castCode := g.b.CreateBitCast(code, llvm.PointerType(fnTy, 0), "")

	return g.b.CreateCall(castCode, []llvm.Value{env, argVal}, ""), nil
}
