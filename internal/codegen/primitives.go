package codegen

import (
	"tinygo.org/x/go-llvm"

	"github.com/simpl-lang/simplc/internal/sym"
)

// definePrimitives seeds fn's entry scope with a Closure value for each
// name types.DefaultEnv binds (add, sub, mul, is_zero, not): a free Var
// referencing one of these never passes through a Let, Lambda, or
// Letrec binder, so nothing else would ever populate a stack slot for
// it. None of them close over anything, so their env field is an unused
// null pointer.
func (g *Generator) definePrimitives(fn llvm.Value) {
	g.defineCurriedBinaryIntOp(fn, "add", func(x, y llvm.Value) llvm.Value { return g.b.CreateAdd(x, y, "") })
	g.defineCurriedBinaryIntOp(fn, "sub", func(x, y llvm.Value) llvm.Value { return g.b.CreateSub(x, y, "") })
	g.defineCurriedBinaryIntOp(fn, "mul", func(x, y llvm.Value) llvm.Value { return g.b.CreateMul(x, y, "") })

	g.defineUnaryOp(fn, "is_zero", g.intTy, g.boolTy, func(x llvm.Value) llvm.Value {
		return g.b.CreateICmp(llvm.IntEQ, x, llvm.ConstInt(g.intTy, 0, true), "")
	})
	g.defineUnaryOp(fn, "not", g.boolTy, g.boolTy, func(x llvm.Value) llvm.Value {
		return g.b.CreateXor(x, llvm.ConstInt(g.boolTy, 1, false), "")
	})
}

// defineCurriedBinaryIntOp builds the two functions a curried binary
// primitive needs — an outer function `x -> Closure` and an inner
// function `(env capturing x, y) -> result` — and stores the assembled
// outer Closure into name's slot in fn's top-level scope.
func (g *Generator) defineCurriedBinaryIntOp(fn llvm.Value, name string, op func(x, y llvm.Value) llvm.Value) {
	topBlock, topScope := g.b.GetInsertBlock(), g.scope
	defer func() { g.b.SetInsertPointAtEnd(topBlock); g.scope = topScope }()

	envTy := g.ctx.StructCreateNamed("Env_" + name)
	envTy.StructSetBody([]llvm.Type{g.intTy}, false)

	innerTy := llvm.FunctionType(g.intTy, []llvm.Type{g.ptrTy, g.intTy}, false)
	inner := llvm.AddFunction(g.mod, name+"$inner", innerTy)

	entry := llvm.AddBasicBlock(inner, "entry")
	g.b.SetInsertPointAtEnd(entry)
	g.scope = make(map[sym.Symbol]llvm.Value)

	envArg, y := inner.Params()[0], inner.Params()[1]
	typedEnv := g.b.CreateBitCast(envArg, llvm.PointerType(envTy, 0), "")
	field := g.b.CreateStructGEP(typedEnv, 0, "")
	x := g.b.CreateLoad(field, "")
	g.b.CreateRet(op(x, y))

	outerTy := llvm.FunctionType(g.cloTy, []llvm.Type{g.ptrTy, g.intTy}, false)
	outer := llvm.AddFunction(g.mod, name, outerTy)

	outerEntry := llvm.AddBasicBlock(outer, "entry")
	g.b.SetInsertPointAtEnd(outerEntry)
	g.scope = make(map[sym.Symbol]llvm.Value)

	outerX := outer.Params()[1]
	envPtr := g.b.CreateMalloc(envTy, "")
	outerField := g.b.CreateStructGEP(envPtr, 0, "")
	g.b.CreateStore(outerX, outerField)

	clo := llvm.Undef(g.cloTy)
	clo = g.b.CreateInsertValue(clo, g.b.CreateBitCast(inner, g.ptrTy, ""), 0, "")
	clo = g.b.CreateInsertValue(clo, g.b.CreateBitCast(envPtr, g.ptrTy, ""), 1, "")
	g.b.CreateRet(clo)

	g.storeTopLevelClosure(fn, topBlock, topScope, name, outer)
}

// defineUnaryOp builds a single non-capturing function for a unary
// primitive and stores its Closure into name's slot in fn's top-level
// scope.
func (g *Generator) defineUnaryOp(fn llvm.Value, name string, argTy, retTy llvm.Type, op func(x llvm.Value) llvm.Value) {
	topBlock, topScope := g.b.GetInsertBlock(), g.scope
	defer func() { g.b.SetInsertPointAtEnd(topBlock); g.scope = topScope }()

	fnTy := llvm.FunctionType(retTy, []llvm.Type{g.ptrTy, argTy}, false)
	impl := llvm.AddFunction(g.mod, name, fnTy)

	entry := llvm.AddBasicBlock(impl, "entry")
	g.b.SetInsertPointAtEnd(entry)
	g.scope = make(map[sym.Symbol]llvm.Value)

	x := impl.Params()[1]
	g.b.CreateRet(op(x))

	g.storeTopLevelClosure(fn, topBlock, topScope, name, impl)
}

// storeTopLevelClosure switches back to fn's top-level block and scope,
// assembles a non-capturing Closure wrapping impl, and registers it
// under name.
func (g *Generator) storeTopLevelClosure(fn llvm.Value, topBlock llvm.BasicBlock, topScope map[sym.Symbol]llvm.Value, name string, impl llvm.Value) {
	g.b.SetInsertPointAtEnd(topBlock)
	g.scope = topScope

	clo := llvm.Undef(g.cloTy)
	clo = g.b.CreateInsertValue(clo, g.b.CreateBitCast(impl, g.ptrTy, ""), 0, "")
	clo = g.b.CreateInsertValue(clo, llvm.ConstNull(g.ptrTy), 1, "")

	slot := g.b.CreateAlloca(g.cloTy, "")
	g.b.CreateStore(clo, slot)
	g.define(g.table.Intern(name), slot)
}
