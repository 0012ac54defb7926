// context.go
package braket

import (
	"fmt"
	"sort"

	"github.com/theapemachine/errnie"
)

/*
EvalContext is the evaluation environment Dirac strings run against: an
explicit, inspectable symbol table mapping names to scalars, states,
operators, and operator functions, plus a read-through cache of parsed
expression trees keyed by source string.

The context is the whole namespace; nothing is process-global. Rebinding an
existing name is legal and simply shadows the previous binding. Lifetime is
the caller's session: drop the context and every binding goes with it.
*/
type EvalContext struct {
	config   *Config
	bindings map[string]Value
	cache    map[string]node
}

// NewEvalContext returns an empty context with default configuration.
func NewEvalContext() *EvalContext {
	errnie.Info("NewEvalContext - fresh symbol table")
	return &EvalContext{
		config:   NewConfig(),
		bindings: map[string]Value{},
		cache:    map[string]node{},
	}
}

// Config exposes the context's configuration for adjustment.
func (ctx *EvalContext) Config() *Config { return ctx.config }

// Bind associates name with a value, shadowing any previous binding.
func (ctx *EvalContext) Bind(name string, v Value) {
	ctx.bindings[name] = v
}

// BindScalar binds name to a complex scalar.
func (ctx *EvalContext) BindScalar(name string, c complex128) {
	ctx.Bind(name, Scalar(c))
}

// BindOperator binds name to an operator function.
func (ctx *EvalContext) BindOperator(name string, fn OperatorFunc) {
	ctx.Bind(name, FnValue(fn))
}

// Lookup resolves name in the symbol table.
func (ctx *EvalContext) Lookup(name string) (Value, bool) {
	v, ok := ctx.bindings[name]
	return v, ok
}

// Unbind removes a binding. Removing an absent name is a no-op.
func (ctx *EvalContext) Unbind(name string) {
	delete(ctx.bindings, name)
}

// Names lists every bound name in sorted order.
func (ctx *EvalContext) Names() []string {
	names := make([]string, 0, len(ctx.bindings))
	for name := range ctx.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parse returns the expression tree for src, reusing a cached tree when the
// same literal has been parsed before. The cache never changes evaluation
// results; trees are immutable once built.
func (ctx *EvalContext) parse(src string) (node, error) {
	if n, ok := ctx.cache[src]; ok {
		return n, nil
	}
	n, err := parseDirac(src)
	if err != nil {
		return nil, err
	}
	ctx.cache[src] = n
	return n, nil
}

// Eval parses and evaluates a Dirac string against the context.
func (ctx *EvalContext) Eval(src string) (Value, error) {
	n, err := ctx.parse(src)
	if err != nil {
		return Value{}, err
	}
	return evalNode(ctx, nil, n)
}

// D is the string-literal entry point: parse and evaluate src against ctx
// in one call.
func D(ctx *EvalContext, src string) (Value, error) {
	return ctx.Eval(src)
}

// DKet evaluates src and requires the result to be a ket.
func DKet(ctx *EvalContext, src string) (*Ket, error) {
	v, err := ctx.Eval(src)
	if err != nil {
		return nil, err
	}
	if v.Kind != KindKet {
		return nil, fmt.Errorf("%w: expected ket, evaluated to %s", ErrIncompatibleOperand, v.Kind)
	}
	return v.Ket, nil
}
