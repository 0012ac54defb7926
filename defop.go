// defop.go
package braket

import (
	"fmt"

	"github.com/theapemachine/errnie"
)

/*
opDef is a parsed operator definition of the form

	name | labelvars > = rhs_expr

where rhs_expr may use the label variables, the context's bindings, and the
builtin functions. The same parsed form backs both DefOp (build a callable)
and RepresentOp (materialize an OpSum over a finite basis).
*/
type opDef struct {
	name string
	vars []string
	rhs  node
}

// parseOpDef parses a definition string using the Dirac lexer and parser.
func parseOpDef(def string) (*opDef, error) {
	toks, err := lex(def)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	name, err := p.expect(tokIdent)
	if err != nil {
		return nil, fmt.Errorf("%w: definition must start with an operator name", ErrParse)
	}
	if _, err := p.expect(tokPipe); err != nil {
		return nil, fmt.Errorf("%w: expected '|' after operator name %q", ErrParse, name.text)
	}
	var vars []string
	for {
		v, err := p.expect(tokIdent)
		if err != nil {
			return nil, fmt.Errorf("%w: label variables must be identifiers", ErrParse)
		}
		vars = append(vars, v.text)
		if p.peek().kind != tokComma {
			break
		}
		p.next()
	}
	if _, err := p.expect(tokRAngle); err != nil {
		return nil, fmt.Errorf("%w: unclosed label list in definition of %q", ErrParse, name.text)
	}
	if _, err := p.expect(tokEquals); err != nil {
		return nil, fmt.Errorf("%w: expected '=' in definition of %q", ErrParse, name.text)
	}
	rhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("%w: unexpected %s after definition of %q", ErrParse, p.peek().kind, name.text)
	}
	return &opDef{name: name.text, vars: vars, rhs: rhs}, nil
}

// fn builds the callable for the definition: bind the label variables to
// the argument's components, evaluate the right-hand side, require a ket.
func (d *opDef) fn(ctx *EvalContext) OperatorFunc {
	return func(label StateLabel) (*Ket, error) {
		if label.Len() != len(d.vars) {
			return nil, fmt.Errorf("%w: operator %q expects %d label values, got %d",
				ErrArityMismatch, d.name, len(d.vars), label.Len())
		}
		env := make(map[string]Value, len(d.vars))
		for i, v := range d.vars {
			switch x := label.At(i).(type) {
			case int64:
				env[v] = Scalar(complex(float64(x), 0))
			case float64:
				env[v] = Scalar(complex(x, 0))
			case string:
				env[v] = Value{Kind: KindSymbol, Sym: x}
			default:
				return nil, fmt.Errorf("%w: label value %v in operator %q", ErrIncompatibleOperand, x, d.name)
			}
		}
		out, err := evalNode(ctx, env, d.rhs)
		if err != nil {
			return nil, err
		}
		if out.Kind != KindKet {
			return nil, fmt.Errorf("%w: operator %q evaluated to %s, want ket", ErrIncompatibleOperand, d.name, out.Kind)
		}
		return out.Ket, nil
	}
}

/*
DefOp parses a definition string like

	a | n > = sqrt(n) * |n-1>

into an operator function, binds it to its name in the context, and returns
it. The callable acts on basis labels; multiplying it onto a ket via Mul
distributes over the ket's terms.
*/
func DefOp(ctx *EvalContext, def string) (OperatorFunc, error) {
	d, err := parseOpDef(def)
	if err != nil {
		return nil, err
	}
	fn := d.fn(ctx)
	ctx.BindOperator(d.name, fn)
	return fn, nil
}

/*
RepresentOp materializes the operator defined by def as an explicit OpSum
over the given basis: the sum of f(l) <l| over every candidate label l.

The right-hand side must not refer to the name being represented; a
definition cannot consume its own representation in one request.
*/
func RepresentOp(ctx *EvalContext, def string, basis []StateLabel) (*OpSum, error) {
	d, err := parseOpDef(def)
	if err != nil {
		return nil, err
	}
	if references(d.rhs, d.name) {
		return nil, fmt.Errorf("%w: %q appears on its own right-hand side", ErrRedefinition, d.name)
	}
	errnie.Info("RepresentOp - %s over %d basis labels", d.name, len(basis))

	fn := d.fn(ctx)
	out := NewOpSum()
	for _, label := range basis {
		k, err := fn(label)
		if err != nil {
			return nil, err
		}
		part, err := OuterProduct(k, BraOf(1, label))
		if err != nil {
			return nil, err
		}
		out, err = out.Add(part)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
