// opsum.go
package braket

import (
	"fmt"
	"math/cmplx"
)

/*
OpSum is a sparse operator: a map from (row label, column label) pairs to
complex coefficients, representing sum_ij c_ij |i><j|. Like Ket and Bra it
is a value object; Set and FilterNZ are the only mutators.

Row and column labels each span the same number of tensor factors, fixed by
the first entry inserted.
*/
type OpSum struct {
	arity int
	terms map[string]opTerm
}

type opTerm struct {
	row, col StateLabel
	coeff    complex128
}

func opKey(row, col StateLabel) string {
	return row.key() + "><" + col.key()
}

// NewOpSum returns the empty (zero) operator.
func NewOpSum() *OpSum {
	return &OpSum{terms: map[string]opTerm{}}
}

// OpSumOf builds the single-term operator coeff|row><col|.
func OpSumOf(coeff complex128, row, col StateLabel) *OpSum {
	op := NewOpSum()
	op.accumulate(row, col, coeff)
	return op
}

// IdentityOp builds the identity over the given basis labels.
func IdentityOp(labels ...StateLabel) *OpSum {
	op := NewOpSum()
	for _, l := range labels {
		op.accumulate(l, l, 1)
	}
	return op
}

// Arity reports the number of tensor factors each of the row and column
// labels spans, or 0 for the empty operator.
func (o *OpSum) Arity() int { return o.arity }

// Size reports the number of stored entries.
func (o *OpSum) Size() int { return len(o.terms) }

// At reads the coefficient at (row, col). Missing entries read as 0.
func (o *OpSum) At(row, col StateLabel) complex128 {
	return o.terms[opKey(row, col)].coeff
}

// Set writes the coefficient at (row, col), inserting or overwriting. The
// row and column labels must agree with each other and with the arity of
// the entries already stored.
func (o *OpSum) Set(row, col StateLabel, coeff complex128) error {
	if row.Len() != col.Len() {
		return fmt.Errorf("%w: row |%s> spans %d factor(s), column <%s| spans %d", ErrArityMismatch, row, row.Len(), col, col.Len())
	}
	if o.arity != 0 && row.Len() != o.arity {
		return fmt.Errorf("%w: entry spans %d factor(s), operator has %d", ErrArityMismatch, row.Len(), o.arity)
	}
	if o.arity == 0 {
		o.arity = row.Len()
	}
	o.terms[opKey(row, col)] = opTerm{row: row, col: col, coeff: coeff}
	return nil
}

func (o *OpSum) accumulate(row, col StateLabel, coeff complex128) {
	if o.arity == 0 {
		o.arity = row.Len()
	}
	key := opKey(row, col)
	t := o.terms[key]
	o.terms[key] = opTerm{row: row, col: col, coeff: t.coeff + coeff}
}

// Add returns the sum of two operators.
func (o *OpSum) Add(other *OpSum) (*OpSum, error) {
	if o.arity != 0 && other.arity != 0 && o.arity != other.arity {
		return nil, fmt.Errorf("%w: operator arities %d and %d", ErrArityMismatch, o.arity, other.arity)
	}
	out := o.clone()
	for _, t := range other.terms {
		out.accumulate(t.row, t.col, t.coeff)
	}
	return out, nil
}

// Sub returns o - other.
func (o *OpSum) Sub(other *OpSum) (*OpSum, error) {
	return o.Add(other.Scale(-1))
}

// Scale returns the operator with every coefficient multiplied by c.
func (o *OpSum) Scale(c complex128) *OpSum {
	out := NewOpSum()
	out.arity = o.arity
	for key, t := range o.terms {
		out.terms[key] = opTerm{row: t.row, col: t.col, coeff: t.coeff * c}
	}
	return out
}

// Dagger returns the conjugate transpose: coefficients conjugated, row and
// column labels swapped.
func (o *OpSum) Dagger() *OpSum {
	out := NewOpSum()
	out.arity = o.arity
	for _, t := range o.terms {
		out.terms[opKey(t.col, t.row)] = opTerm{row: t.col, col: t.row, coeff: cmplx.Conj(t.coeff)}
	}
	return out
}

// MapLabels returns a new operator with fn applied to every row and column
// label. Entries that collide after the transform sum their coefficients.
func (o *OpSum) MapLabels(fn func(StateLabel) StateLabel) *OpSum {
	out := NewOpSum()
	for _, t := range o.terms {
		out.accumulate(fn(t.row), fn(t.col), t.coeff)
	}
	return out
}

// MapCoeffs returns a new operator with fn applied to every coefficient.
func (o *OpSum) MapCoeffs(fn func(complex128) complex128) *OpSum {
	out := NewOpSum()
	out.arity = o.arity
	for key, t := range o.terms {
		out.terms[key] = opTerm{row: t.row, col: t.col, coeff: fn(t.coeff)}
	}
	return out
}

// XSubspace returns the restriction to entries whose row and column labels
// both satisfy pred.
func (o *OpSum) XSubspace(pred func(StateLabel) bool) *OpSum {
	out := NewOpSum()
	out.arity = o.arity
	for key, t := range o.terms {
		if pred(t.row) && pred(t.col) {
			out.terms[key] = t
		}
	}
	return out
}

// FilterNZ removes entries with magnitude at most eps, in place.
func (o *OpSum) FilterNZ(eps float64) *OpSum {
	for key, t := range o.terms {
		if cmplx.Abs(t.coeff) <= eps {
			delete(o.terms, key)
		}
	}
	return o
}

// Trace returns the sum of the diagonal coefficients.
func (o *OpSum) Trace() complex128 {
	var sum complex128
	for _, t := range o.terms {
		if t.row.Equal(t.col) {
			sum += t.coeff
		}
	}
	return sum
}

// Equal reports entry-wise equality within tolerance eps.
func (o *OpSum) Equal(other *OpSum, eps float64) bool {
	for key, t := range o.terms {
		if !coeffEqual(t.coeff, other.terms[key].coeff, eps) {
			return false
		}
	}
	for key, t := range other.terms {
		if _, ok := o.terms[key]; !ok && !coeffEqual(t.coeff, 0, eps) {
			return false
		}
	}
	return true
}

func (o *OpSum) clone() *OpSum {
	out := NewOpSum()
	out.arity = o.arity
	for key, t := range o.terms {
		out.terms[key] = t
	}
	return out
}
