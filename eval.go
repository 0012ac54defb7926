// eval.go
package braket

import (
	"fmt"
	"math"
	"math/cmplx"
)

/*
evalNode walks an expression tree bottom-up and produces a Value. env holds
local bindings (the label variables of an operator definition) and shadows
the context's symbol table, which in turn shadows the builtin constants.
*/
func evalNode(ctx *EvalContext, env map[string]Value, n node) (Value, error) {
	switch x := n.(type) {
	case numNode:
		return Scalar(complex(x.val, 0)), nil

	case symNode:
		return Value{Kind: KindSymbol, Sym: x.name}, nil

	case identNode:
		if v, ok := env[x.name]; ok {
			return v, nil
		}
		if v, ok := ctx.Lookup(x.name); ok {
			return v, nil
		}
		if v, ok := builtinConst(x.name); ok {
			return v, nil
		}
		return Value{}, fmt.Errorf("%w: %q at %d", ErrUnknownIdentifier, x.name, x.at)

	case unaryNode:
		v, err := evalNode(ctx, env, x.x)
		if err != nil {
			return Value{}, err
		}
		return Mul(Scalar(-1), v)

	case binaryNode:
		lhs, err := evalNode(ctx, env, x.lhs)
		if err != nil {
			return Value{}, err
		}
		rhs, err := evalNode(ctx, env, x.rhs)
		if err != nil {
			return Value{}, err
		}
		switch x.op {
		case tokPlus:
			return AddValues(lhs, rhs)
		case tokMinus:
			neg, err := Mul(Scalar(-1), rhs)
			if err != nil {
				return Value{}, err
			}
			return AddValues(lhs, neg)
		case tokStar:
			return Mul(lhs, rhs)
		case tokSlash:
			if rhs.Kind != KindScalar {
				return Value{}, fmt.Errorf("%w: division by %s", ErrIncompatibleOperand, rhs.Kind)
			}
			// A divisor below the context epsilon counts as zero.
			if cmplx.Abs(rhs.Scalar) <= ctx.config.Epsilon {
				return Value{}, fmt.Errorf("%w: division by zero at %d", ErrIncompatibleOperand, x.at)
			}
			return Mul(lhs, Scalar(1/rhs.Scalar))
		case tokCaret:
			if lhs.Kind != KindScalar || rhs.Kind != KindScalar {
				return Value{}, fmt.Errorf("%w: '^' needs scalar operands, have %s and %s", ErrIncompatibleOperand, lhs.Kind, rhs.Kind)
			}
			return Scalar(cmplx.Pow(lhs.Scalar, rhs.Scalar)), nil
		default:
			return Value{}, fmt.Errorf("%w: bad operator %s", ErrParse, x.op)
		}

	case callNode:
		return evalCall(ctx, env, x)

	case ketNode:
		label, err := evalLabel(ctx, env, x.labels)
		if err != nil {
			return Value{}, err
		}
		return KetValue(KetOf(1, label)), nil

	case braNode:
		label, err := evalLabel(ctx, env, x.labels)
		if err != nil {
			return Value{}, err
		}
		return BraValue(BraOf(1, label)), nil

	default:
		return Value{}, fmt.Errorf("%w: unknown node", ErrParse)
	}
}

func evalLabel(ctx *EvalContext, env map[string]Value, labels []node) (StateLabel, error) {
	parts := make([]any, len(labels))
	for i, l := range labels {
		v, err := evalNode(ctx, env, l)
		if err != nil {
			return StateLabel{}, err
		}
		switch v.Kind {
		case KindScalar:
			parts[i] = normalizeLabelValue(v.Scalar)
		case KindSymbol:
			parts[i] = v.Sym
		default:
			return StateLabel{}, fmt.Errorf("%w: %s in label position at %d", ErrIncompatibleOperand, v.Kind, l.pos())
		}
	}
	return NewStateLabel(parts...), nil
}

func evalCall(ctx *EvalContext, env map[string]Value, call callNode) (Value, error) {
	if fn, ok := builtinFunc(call.name); ok {
		if len(call.args) != 1 {
			return Value{}, fmt.Errorf("%w: %s takes 1 argument, got %d", ErrParse, call.name, len(call.args))
		}
		arg, err := evalNode(ctx, env, call.args[0])
		if err != nil {
			return Value{}, err
		}
		if arg.Kind != KindScalar {
			return Value{}, fmt.Errorf("%w: %s of %s", ErrIncompatibleOperand, call.name, arg.Kind)
		}
		return Scalar(fn(arg.Scalar)), nil
	}

	// A bound operator function may be called directly on a ket.
	if v, ok := ctx.Lookup(call.name); ok && v.Kind == KindOpFunc {
		if len(call.args) != 1 {
			return Value{}, fmt.Errorf("%w: operator %s takes 1 argument, got %d", ErrParse, call.name, len(call.args))
		}
		arg, err := evalNode(ctx, env, call.args[0])
		if err != nil {
			return Value{}, err
		}
		return Mul(v, arg)
	}
	return Value{}, fmt.Errorf("%w: function %q at %d", ErrUnknownIdentifier, call.name, call.at)
}

func builtinConst(name string) (Value, bool) {
	switch name {
	case "im":
		return Scalar(complex(0, 1)), true
	case "pi":
		return Scalar(complex(math.Pi, 0)), true
	case "e":
		return Scalar(complex(math.E, 0)), true
	default:
		return Value{}, false
	}
}

func builtinFunc(name string) (func(complex128) complex128, bool) {
	switch name {
	case "sqrt":
		return cmplx.Sqrt, true
	case "exp":
		return cmplx.Exp, true
	case "log":
		return cmplx.Log, true
	case "sin":
		return cmplx.Sin, true
	case "cos":
		return cmplx.Cos, true
	case "tan":
		return cmplx.Tan, true
	case "abs":
		return func(c complex128) complex128 { return complex(cmplx.Abs(c), 0) }, true
	case "conj":
		return cmplx.Conj, true
	case "real":
		return func(c complex128) complex128 { return complex(real(c), 0) }, true
	case "imag":
		return func(c complex128) complex128 { return complex(imag(c), 0) }, true
	default:
		return nil, false
	}
}
