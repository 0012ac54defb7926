// bra.go
package braket

import (
	"fmt"
	"math"
	"math/cmplx"
)

/*
Bra is the row-vector dual of a Ket: a sparse map from basis labels to
complex coefficients representing sum_i c_i <i|. Bras arise from taking the
conjugate transpose of a ket, or from algebra over bras; the coefficient
stored for <i| is already the conjugated value.
*/
type Bra struct {
	arity int
	terms map[string]ketTerm
}

// NewBra returns an empty bra.
func NewBra() *Bra {
	return &Bra{terms: map[string]ketTerm{}}
}

// BraOf builds a single-term bra coeff<label|.
func BraOf(coeff complex128, label StateLabel) *Bra {
	b := NewBra()
	b.add(label, coeff)
	return b
}

// BasisBra builds <label| with unit coefficient.
func BasisBra(values ...any) *Bra {
	return BraOf(1, NewStateLabel(values...))
}

// Arity reports the number of tensor factors the bra's labels span.
func (b *Bra) Arity() int { return b.arity }

// Size reports the number of stored terms.
func (b *Bra) Size() int { return len(b.terms) }

// At reads the coefficient at label. Missing labels read as 0.
func (b *Bra) At(label StateLabel) complex128 {
	return b.terms[label.key()].coeff
}

// Set writes the coefficient at label, inserting or overwriting. Labels
// must span the same number of factors as the entries already stored.
func (b *Bra) Set(label StateLabel, coeff complex128) error {
	if b.arity != 0 && label.Len() != b.arity {
		return fmt.Errorf("%w: label <%s| spans %d factor(s), bra has %d", ErrArityMismatch, label, label.Len(), b.arity)
	}
	if b.arity == 0 {
		b.arity = label.Len()
	}
	b.terms[label.key()] = ketTerm{label: label, coeff: coeff}
	return nil
}

func (b *Bra) add(label StateLabel, coeff complex128) {
	if b.arity == 0 {
		b.arity = label.Len()
	}
	key := label.key()
	t := b.terms[key]
	b.terms[key] = ketTerm{label: label, coeff: t.coeff + coeff}
}

// Add returns the sum of two bras.
func (b *Bra) Add(other *Bra) (*Bra, error) {
	if b.arity != 0 && other.arity != 0 && b.arity != other.arity {
		return nil, fmt.Errorf("%w: bra arities %d and %d", ErrArityMismatch, b.arity, other.arity)
	}
	out := b.clone()
	for _, t := range other.terms {
		out.add(t.label, t.coeff)
	}
	return out, nil
}

// Sub returns b - other.
func (b *Bra) Sub(other *Bra) (*Bra, error) {
	return b.Add(other.Scale(-1))
}

// Scale returns the bra with every coefficient multiplied by c.
func (b *Bra) Scale(c complex128) *Bra {
	out := NewBra()
	out.arity = b.arity
	for key, t := range b.terms {
		out.terms[key] = ketTerm{label: t.label, coeff: t.coeff * c}
	}
	return out
}

// Dagger returns the conjugate dual ket of the bra.
func (b *Bra) Dagger() *Ket {
	out := NewKet()
	out.arity = b.arity
	for key, t := range b.terms {
		out.terms[key] = ketTerm{label: t.label, coeff: cmplx.Conj(t.coeff)}
	}
	return out
}

// MapLabels returns a new bra with fn applied to every label.
func (b *Bra) MapLabels(fn func(StateLabel) StateLabel) *Bra {
	out := NewBra()
	for _, t := range b.terms {
		out.add(fn(t.label), t.coeff)
	}
	return out
}

// MapCoeffs returns a new bra with fn applied to every coefficient.
func (b *Bra) MapCoeffs(fn func(complex128) complex128) *Bra {
	out := NewBra()
	out.arity = b.arity
	for key, t := range b.terms {
		out.terms[key] = ketTerm{label: t.label, coeff: fn(t.coeff)}
	}
	return out
}

// XSubspace returns the restriction of the bra to labels satisfying pred.
func (b *Bra) XSubspace(pred func(StateLabel) bool) *Bra {
	out := NewBra()
	out.arity = b.arity
	for key, t := range b.terms {
		if pred(t.label) {
			out.terms[key] = t
		}
	}
	return out
}

// FilterNZ removes entries with magnitude at most eps, in place.
func (b *Bra) FilterNZ(eps float64) *Bra {
	for key, t := range b.terms {
		if cmplx.Abs(t.coeff) <= eps {
			delete(b.terms, key)
		}
	}
	return b
}

// Norm returns the Euclidean norm of the bra's coefficient vector.
func (b *Bra) Norm() float64 {
	var sum float64
	for _, t := range b.terms {
		sum += real(t.coeff)*real(t.coeff) + imag(t.coeff)*imag(t.coeff)
	}
	return math.Sqrt(sum)
}

// Normalize returns the unit-norm rescaling of the bra.
func (b *Bra) Normalize() (*Bra, error) {
	n := b.Norm()
	if n == 0 {
		return nil, fmt.Errorf("%w: cannot normalize zero bra", ErrZeroNorm)
	}
	return b.Scale(complex(1/n, 0)), nil
}

// Labels returns the stored labels in unspecified order.
func (b *Bra) Labels() []StateLabel {
	labels := make([]StateLabel, 0, len(b.terms))
	for _, t := range b.terms {
		labels = append(labels, t.label)
	}
	return labels
}

// Equal reports coefficient-wise equality within tolerance eps.
func (b *Bra) Equal(other *Bra, eps float64) bool {
	for key, t := range b.terms {
		if !coeffEqual(t.coeff, other.terms[key].coeff, eps) {
			return false
		}
	}
	for key, t := range other.terms {
		if _, ok := b.terms[key]; !ok && !coeffEqual(t.coeff, 0, eps) {
			return false
		}
	}
	return true
}

func (b *Bra) clone() *Bra {
	out := NewBra()
	out.arity = b.arity
	for key, t := range b.terms {
		out.terms[key] = t
	}
	return out
}
