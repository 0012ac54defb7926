// dense.go
package braket

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

/*
Basis is an ordered, de-duplicated list of state labels. It fixes the row
and column ordering when the sparse algebra objects are bridged into
gonum's dense complex matrices for numeric follow-up work.
*/
type Basis struct {
	labels []StateLabel
	index  map[string]int
}

// NewBasis builds a basis from labels, keeping first occurrences.
func NewBasis(labels ...StateLabel) *Basis {
	b := &Basis{index: map[string]int{}}
	for _, l := range labels {
		key := l.key()
		if _, ok := b.index[key]; ok {
			continue
		}
		b.index[key] = len(b.labels)
		b.labels = append(b.labels, l)
	}
	return b
}

// RangeBasis builds the integer basis |lo>, |lo+1>, ..., |hi>.
func RangeBasis(lo, hi int) *Basis {
	labels := make([]StateLabel, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		labels = append(labels, IntLabel(n))
	}
	return NewBasis(labels...)
}

// Len reports the basis dimension.
func (b *Basis) Len() int { return len(b.labels) }

// At returns the label at position i.
func (b *Basis) At(i int) StateLabel { return b.labels[i] }

// IndexOf returns the position of a label in the basis.
func (b *Basis) IndexOf(l StateLabel) (int, bool) {
	i, ok := b.index[l.key()]
	return i, ok
}

// Labels returns the ordered labels.
func (b *Basis) Labels() []StateLabel {
	out := make([]StateLabel, len(b.labels))
	copy(out, b.labels)
	return out
}

// Dense renders the ket as an n-by-1 complex column over the basis. Every
// stored label must be a basis member.
func (k *Ket) Dense(basis *Basis) (*mat.CDense, error) {
	out := mat.NewCDense(basis.Len(), 1, nil)
	for _, t := range k.terms {
		i, ok := basis.IndexOf(t.label)
		if !ok {
			return nil, fmt.Errorf("%w: label |%s> not in basis", ErrIncompatibleOperand, t.label)
		}
		out.Set(i, 0, t.coeff)
	}
	return out, nil
}

// Dense renders the bra as a 1-by-n complex row over the basis.
func (b *Bra) Dense(basis *Basis) (*mat.CDense, error) {
	out := mat.NewCDense(1, basis.Len(), nil)
	for _, t := range b.terms {
		i, ok := basis.IndexOf(t.label)
		if !ok {
			return nil, fmt.Errorf("%w: label <%s| not in basis", ErrIncompatibleOperand, t.label)
		}
		out.Set(0, i, t.coeff)
	}
	return out, nil
}

// Dense renders the operator as an n-by-n complex matrix over the basis.
func (o *OpSum) Dense(basis *Basis) (*mat.CDense, error) {
	out := mat.NewCDense(basis.Len(), basis.Len(), nil)
	for _, t := range o.terms {
		i, ok := basis.IndexOf(t.row)
		if !ok {
			return nil, fmt.Errorf("%w: row label |%s> not in basis", ErrIncompatibleOperand, t.row)
		}
		j, ok := basis.IndexOf(t.col)
		if !ok {
			return nil, fmt.Errorf("%w: column label <%s| not in basis", ErrIncompatibleOperand, t.col)
		}
		out.Set(i, j, t.coeff)
	}
	return out, nil
}

// KetFromDense reads an n-by-1 column back into a sparse ket over the
// basis. Zero entries are kept; filter explicitly if unwanted.
func KetFromDense(m *mat.CDense, basis *Basis) (*Ket, error) {
	r, c := m.Dims()
	if r != basis.Len() || c != 1 {
		return nil, fmt.Errorf("%w: dense shape %dx%d against basis of %d", ErrArityMismatch, r, c, basis.Len())
	}
	out := NewKet()
	for i := 0; i < r; i++ {
		if err := out.Set(basis.At(i), m.At(i, 0)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// OpSumFromDense reads an n-by-n matrix back into a sparse operator over
// the basis.
func OpSumFromDense(m *mat.CDense, basis *Basis) (*OpSum, error) {
	r, c := m.Dims()
	if r != basis.Len() || c != basis.Len() {
		return nil, fmt.Errorf("%w: dense shape %dx%d against basis of %d", ErrArityMismatch, r, c, basis.Len())
	}
	out := NewOpSum()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if err := out.Set(basis.At(i), basis.At(j), m.At(i, j)); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
