// mul.go
package braket

import "fmt"

// OperatorFunc is an operator given by its action on basis states: it maps
// one label to the ket the operator sends that basis state to. Applying an
// OperatorFunc to a ket distributes over the ket's terms.
type OperatorFunc func(StateLabel) (*Ket, error)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindScalar Kind = iota
	KindKet
	KindBra
	KindOp
	KindOpFunc
	KindSymbol
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindKet:
		return "ket"
	case KindBra:
		return "bra"
	case KindOp:
		return "operator"
	case KindOpFunc:
		return "operator function"
	case KindSymbol:
		return "symbol"
	default:
		return "unknown"
	}
}

/*
Value is the closed union the evaluator and the multiplication dispatch work
over: a complex scalar, a Ket, a Bra, an OpSum, an operator function, or a
quoted symbol (which only ever appears inside label positions).
*/
type Value struct {
	Kind   Kind
	Scalar complex128
	Ket    *Ket
	Bra    *Bra
	Op     *OpSum
	Fn     OperatorFunc
	Sym    string
}

func Scalar(c complex128) Value    { return Value{Kind: KindScalar, Scalar: c} }
func KetValue(k *Ket) Value        { return Value{Kind: KindKet, Ket: k} }
func BraValue(b *Bra) Value        { return Value{Kind: KindBra, Bra: b} }
func OpValue(o *OpSum) Value       { return Value{Kind: KindOp, Op: o} }
func FnValue(f OperatorFunc) Value { return Value{Kind: KindOpFunc, Fn: f} }

// InnerProduct computes <b|k> with Kronecker-delta label matching: only
// labels present in both contribute.
func InnerProduct(b *Bra, k *Ket) (complex128, error) {
	if b.arity != 0 && k.arity != 0 && b.arity != k.arity {
		return 0, fmt.Errorf("%w: bra arity %d, ket arity %d", ErrArityMismatch, b.arity, k.arity)
	}
	var sum complex128
	for key, bt := range b.terms {
		if kt, ok := k.terms[key]; ok {
			sum += bt.coeff * kt.coeff
		}
	}
	return sum, nil
}

// OuterProduct computes |k><b| as an OpSum over every label pair.
func OuterProduct(k *Ket, b *Bra) (*OpSum, error) {
	if k.arity != 0 && b.arity != 0 && k.arity != b.arity {
		return nil, fmt.Errorf("%w: ket arity %d, bra arity %d", ErrArityMismatch, k.arity, b.arity)
	}
	out := NewOpSum()
	for _, kt := range k.terms {
		for _, bt := range b.terms {
			out.accumulate(kt.label, bt.label, kt.coeff*bt.coeff)
		}
	}
	return out, nil
}

// ApplyOp computes O|k>: every (row, col) entry meets every ket label equal
// to col and contributes to the row label.
func ApplyOp(o *OpSum, k *Ket) (*Ket, error) {
	if o.arity != 0 && k.arity != 0 && o.arity != k.arity {
		return nil, fmt.Errorf("%w: operator arity %d, ket arity %d", ErrArityMismatch, o.arity, k.arity)
	}
	out := NewKet()
	out.arity = o.arity
	for _, t := range o.terms {
		if kt, ok := k.terms[t.col.key()]; ok {
			out.add(t.row, t.coeff*kt.coeff)
		}
	}
	return out, nil
}

// ApplyBra computes <b|O, the dual of ApplyOp.
func ApplyBra(b *Bra, o *OpSum) (*Bra, error) {
	if b.arity != 0 && o.arity != 0 && b.arity != o.arity {
		return nil, fmt.Errorf("%w: bra arity %d, operator arity %d", ErrArityMismatch, b.arity, o.arity)
	}
	out := NewBra()
	out.arity = o.arity
	for _, t := range o.terms {
		if bt, ok := b.terms[t.row.key()]; ok {
			out.add(t.col, bt.coeff*t.coeff)
		}
	}
	return out, nil
}

// Compose computes the operator product a*b with Kronecker-delta matching
// over the shared middle label.
func Compose(a, b *OpSum) (*OpSum, error) {
	if a.arity != 0 && b.arity != 0 && a.arity != b.arity {
		return nil, fmt.Errorf("%w: operator arities %d and %d", ErrArityMismatch, a.arity, b.arity)
	}
	// Index b's entries by row for the contraction.
	byRow := make(map[string][]opTerm, len(b.terms))
	for _, t := range b.terms {
		key := t.row.key()
		byRow[key] = append(byRow[key], t)
	}
	out := NewOpSum()
	out.arity = a.arity
	for _, at := range a.terms {
		for _, bt := range byRow[at.col.key()] {
			out.accumulate(at.row, bt.col, at.coeff*bt.coeff)
		}
	}
	return out, nil
}

// ApplyFn computes f|k> by applying the operator function to every label in
// the ket, scaling each resulting ket by the matching coefficient, and
// summing the results.
func ApplyFn(f OperatorFunc, k *Ket) (*Ket, error) {
	out := NewKet()
	for _, t := range k.terms {
		part, err := f(t.label)
		if err != nil {
			return nil, err
		}
		for _, pt := range part.terms {
			out.add(pt.label, t.coeff*pt.coeff)
		}
	}
	return out, nil
}

// Commutator returns [a, b] = a*b - b*a.
func Commutator(a, b *OpSum) (*OpSum, error) {
	ab, err := Compose(a, b)
	if err != nil {
		return nil, err
	}
	ba, err := Compose(b, a)
	if err != nil {
		return nil, err
	}
	return ab.Sub(ba)
}

/*
Mul is the polymorphic product over Values, dispatching on the pair of
operand kinds:

	scalar * anything   scales
	bra * ket           inner product
	ket * bra           outer product
	op * ket            operator application
	bra * op            dual application
	op * op             composition
	opfunc * ket        distributed function application

Every other pairing is structurally meaningless and fails.
*/
func Mul(a, b Value) (Value, error) {
	switch {
	case a.Kind == KindScalar && b.Kind == KindScalar:
		return Scalar(a.Scalar * b.Scalar), nil
	case a.Kind == KindScalar:
		return scaleValue(b, a.Scalar)
	case b.Kind == KindScalar:
		return scaleValue(a, b.Scalar)
	case a.Kind == KindBra && b.Kind == KindKet:
		c, err := InnerProduct(a.Bra, b.Ket)
		if err != nil {
			return Value{}, err
		}
		return Scalar(c), nil
	case a.Kind == KindKet && b.Kind == KindBra:
		op, err := OuterProduct(a.Ket, b.Bra)
		if err != nil {
			return Value{}, err
		}
		return OpValue(op), nil
	case a.Kind == KindOp && b.Kind == KindKet:
		k, err := ApplyOp(a.Op, b.Ket)
		if err != nil {
			return Value{}, err
		}
		return KetValue(k), nil
	case a.Kind == KindBra && b.Kind == KindOp:
		br, err := ApplyBra(a.Bra, b.Op)
		if err != nil {
			return Value{}, err
		}
		return BraValue(br), nil
	case a.Kind == KindOp && b.Kind == KindOp:
		op, err := Compose(a.Op, b.Op)
		if err != nil {
			return Value{}, err
		}
		return OpValue(op), nil
	case a.Kind == KindOpFunc && b.Kind == KindKet:
		k, err := ApplyFn(a.Fn, b.Ket)
		if err != nil {
			return Value{}, err
		}
		return KetValue(k), nil
	default:
		return Value{}, fmt.Errorf("%w: cannot multiply %s by %s", ErrIncompatibleOperand, a.Kind, b.Kind)
	}
}

func scaleValue(v Value, c complex128) (Value, error) {
	switch v.Kind {
	case KindKet:
		return KetValue(v.Ket.Scale(c)), nil
	case KindBra:
		return BraValue(v.Bra.Scale(c)), nil
	case KindOp:
		return OpValue(v.Op.Scale(c)), nil
	case KindOpFunc:
		fn := v.Fn
		return FnValue(func(label StateLabel) (*Ket, error) {
			k, err := fn(label)
			if err != nil {
				return nil, err
			}
			return k.Scale(c), nil
		}), nil
	default:
		return Value{}, fmt.Errorf("%w: cannot scale %s", ErrIncompatibleOperand, v.Kind)
	}
}

// AddValues is the polymorphic sum over Values of matching kind.
func AddValues(a, b Value) (Value, error) {
	if a.Kind != b.Kind {
		return Value{}, fmt.Errorf("%w: cannot add %s and %s", ErrIncompatibleOperand, a.Kind, b.Kind)
	}
	switch a.Kind {
	case KindScalar:
		return Scalar(a.Scalar + b.Scalar), nil
	case KindKet:
		k, err := a.Ket.Add(b.Ket)
		if err != nil {
			return Value{}, err
		}
		return KetValue(k), nil
	case KindBra:
		br, err := a.Bra.Add(b.Bra)
		if err != nil {
			return Value{}, err
		}
		return BraValue(br), nil
	case KindOp:
		op, err := a.Op.Add(b.Op)
		if err != nil {
			return Value{}, err
		}
		return OpValue(op), nil
	default:
		return Value{}, fmt.Errorf("%w: cannot add %s values", ErrIncompatibleOperand, a.Kind)
	}
}
