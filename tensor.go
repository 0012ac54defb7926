// tensor.go
package braket

import "fmt"

// TensorKets combines kets into one over the composite space: every
// combination of component labels concatenates, coefficients multiply.
func TensorKets(kets ...*Ket) (*Ket, error) {
	if len(kets) == 0 {
		return nil, fmt.Errorf("%w: tensor product of no kets", ErrIncompatibleOperand)
	}
	out := kets[0].clone()
	for _, k := range kets[1:] {
		next := NewKet()
		for _, a := range out.terms {
			for _, b := range k.terms {
				next.add(a.label.Concat(b.label), a.coeff*b.coeff)
			}
		}
		out = next
	}
	return out, nil
}

// TensorBras combines bras into one over the composite space.
func TensorBras(bras ...*Bra) (*Bra, error) {
	if len(bras) == 0 {
		return nil, fmt.Errorf("%w: tensor product of no bras", ErrIncompatibleOperand)
	}
	out := bras[0].clone()
	for _, b := range bras[1:] {
		next := NewBra()
		for _, x := range out.terms {
			for _, y := range b.terms {
				next.add(x.label.Concat(y.label), x.coeff*y.coeff)
			}
		}
		out = next
	}
	return out, nil
}

// TensorOps combines operators into one over the composite space: row
// labels concatenate with row labels, columns with columns.
func TensorOps(ops ...*OpSum) (*OpSum, error) {
	if len(ops) == 0 {
		return nil, fmt.Errorf("%w: tensor product of no operators", ErrIncompatibleOperand)
	}
	out := ops[0].clone()
	for _, o := range ops[1:] {
		next := NewOpSum()
		for _, a := range out.terms {
			for _, b := range o.terms {
				next.accumulate(a.row.Concat(b.row), a.col.Concat(b.col), a.coeff*b.coeff)
			}
		}
		out = next
	}
	return out, nil
}

// Tensor is the polymorphic tensor product over Values. All operands must
// share one kind; scalars and symbols have no tensor structure.
func Tensor(values ...Value) (Value, error) {
	if len(values) == 0 {
		return Value{}, fmt.Errorf("%w: empty tensor product", ErrIncompatibleOperand)
	}
	kind := values[0].Kind
	for _, v := range values[1:] {
		if v.Kind != kind {
			return Value{}, fmt.Errorf("%w: tensor of %s and %s", ErrIncompatibleOperand, kind, v.Kind)
		}
	}
	switch kind {
	case KindKet:
		kets := make([]*Ket, len(values))
		for i, v := range values {
			kets[i] = v.Ket
		}
		k, err := TensorKets(kets...)
		if err != nil {
			return Value{}, err
		}
		return KetValue(k), nil
	case KindBra:
		bras := make([]*Bra, len(values))
		for i, v := range values {
			bras[i] = v.Bra
		}
		b, err := TensorBras(bras...)
		if err != nil {
			return Value{}, err
		}
		return BraValue(b), nil
	case KindOp:
		ops := make([]*OpSum, len(values))
		for i, v := range values {
			ops[i] = v.Op
		}
		o, err := TensorOps(ops...)
		if err != nil {
			return Value{}, err
		}
		return OpValue(o), nil
	default:
		return Value{}, fmt.Errorf("%w: tensor product over %s values", ErrIncompatibleOperand, kind)
	}
}
