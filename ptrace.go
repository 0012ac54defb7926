// ptrace.go
package braket

import "fmt"

// PTrace traces out the tensor factor at position factor (0-based) from an
// operator over a composite space. An entry contributes only when its row
// and column values at that factor coincide; the surviving entries keep the
// remaining factors.
func PTrace(o *OpSum, factor int) (*OpSum, error) {
	if o.arity < 2 {
		return nil, fmt.Errorf("%w: partial trace needs at least 2 factors, have %d", ErrArityMismatch, o.arity)
	}
	if factor < 0 || factor >= o.arity {
		return nil, fmt.Errorf("%w: factor %d out of range for arity %d", ErrArityMismatch, factor, o.arity)
	}
	out := NewOpSum()
	out.arity = o.arity - 1
	for _, t := range o.terms {
		// MapLabels can leave entries whose labels disagree with the
		// operator arity; refuse them rather than index past the end.
		if t.row.Len() != o.arity || t.col.Len() != o.arity {
			return nil, fmt.Errorf("%w: entry |%s><%s| does not span %d factors", ErrArityMismatch, t.row, t.col, o.arity)
		}
		if t.row.At(factor) != t.col.At(factor) {
			continue
		}
		out.accumulate(t.row.Drop(factor), t.col.Drop(factor), t.coeff)
	}
	return out, nil
}
