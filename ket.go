// ket.go
package braket

import (
	"fmt"
	"math"
	"math/cmplx"
)

/*
Ket is a sparse column-vector-like state: a map from basis labels to complex
coefficients, representing sum_i c_i |i>. Every algebraic operation returns a
new Ket; the only mutating operations are Set and FilterNZ.

All labels within one Ket span the same number of tensor factors. The arity
is fixed by the first entry inserted and enforced afterwards.
*/
type Ket struct {
	arity int
	terms map[string]ketTerm
}

type ketTerm struct {
	label StateLabel
	coeff complex128
}

// NewKet returns an empty ket (the zero vector).
func NewKet() *Ket {
	return &Ket{terms: map[string]ketTerm{}}
}

// KetOf builds a single-term ket coeff|label>.
func KetOf(coeff complex128, label StateLabel) *Ket {
	k := NewKet()
	k.add(label, coeff)
	return k
}

// BasisKet builds |label> with unit coefficient.
func BasisKet(values ...any) *Ket {
	return KetOf(1, NewStateLabel(values...))
}

// Arity reports the number of tensor factors the ket's labels span, or 0
// for the empty ket.
func (k *Ket) Arity() int { return k.arity }

// Size reports the number of stored terms.
func (k *Ket) Size() int { return len(k.terms) }

// At reads the coefficient at label. Missing labels read as 0.
func (k *Ket) At(label StateLabel) complex128 {
	return k.terms[label.key()].coeff
}

// Set writes the coefficient at label, inserting or overwriting. This is
// one of the two mutating operations. Labels must span the same number of
// factors as the entries already stored.
func (k *Ket) Set(label StateLabel, coeff complex128) error {
	if k.arity != 0 && label.Len() != k.arity {
		return fmt.Errorf("%w: label |%s> spans %d factor(s), ket has %d", ErrArityMismatch, label, label.Len(), k.arity)
	}
	if k.arity == 0 {
		k.arity = label.Len()
	}
	k.terms[label.key()] = ketTerm{label: label, coeff: coeff}
	return nil
}

// add accumulates coeff into the entry at label.
func (k *Ket) add(label StateLabel, coeff complex128) {
	if k.arity == 0 {
		k.arity = label.Len()
	}
	key := label.key()
	t := k.terms[key]
	k.terms[key] = ketTerm{label: label, coeff: t.coeff + coeff}
}

// Add returns the sum of two kets. Labels shared by both sum their
// coefficients. Kets over different factor counts do not add.
func (k *Ket) Add(other *Ket) (*Ket, error) {
	if k.arity != 0 && other.arity != 0 && k.arity != other.arity {
		return nil, fmt.Errorf("%w: ket arities %d and %d", ErrArityMismatch, k.arity, other.arity)
	}
	out := k.clone()
	for _, t := range other.terms {
		out.add(t.label, t.coeff)
	}
	return out, nil
}

// Sub returns k - other.
func (k *Ket) Sub(other *Ket) (*Ket, error) {
	return k.Add(other.Scale(-1))
}

// Scale returns the ket with every coefficient multiplied by c. Scaling by
// zero keeps the entries; use FilterNZ to drop them.
func (k *Ket) Scale(c complex128) *Ket {
	out := NewKet()
	out.arity = k.arity
	for key, t := range k.terms {
		out.terms[key] = ketTerm{label: t.label, coeff: t.coeff * c}
	}
	return out
}

// Dagger returns the conjugate dual <psi| of the ket: same labels,
// conjugated coefficients.
func (k *Ket) Dagger() *Bra {
	out := NewBra()
	out.arity = k.arity
	for key, t := range k.terms {
		out.terms[key] = ketTerm{label: t.label, coeff: cmplx.Conj(t.coeff)}
	}
	return out
}

// MapLabels returns a new ket with fn applied to every label. Labels that
// collide after the transform sum their coefficients.
func (k *Ket) MapLabels(fn func(StateLabel) StateLabel) *Ket {
	out := NewKet()
	for _, t := range k.terms {
		out.add(fn(t.label), t.coeff)
	}
	return out
}

// MapCoeffs returns a new ket with fn applied to every coefficient.
func (k *Ket) MapCoeffs(fn func(complex128) complex128) *Ket {
	out := NewKet()
	out.arity = k.arity
	for key, t := range k.terms {
		out.terms[key] = ketTerm{label: t.label, coeff: fn(t.coeff)}
	}
	return out
}

// XSubspace returns the restriction of the ket to labels satisfying pred.
func (k *Ket) XSubspace(pred func(StateLabel) bool) *Ket {
	out := NewKet()
	out.arity = k.arity
	for key, t := range k.terms {
		if pred(t.label) {
			out.terms[key] = t
		}
	}
	return out
}

// FilterNZ removes entries whose coefficient magnitude is at most eps,
// in place, and returns the receiver. This is the other mutating operation.
func (k *Ket) FilterNZ(eps float64) *Ket {
	for key, t := range k.terms {
		if cmplx.Abs(t.coeff) <= eps {
			delete(k.terms, key)
		}
	}
	return k
}

// Norm returns the Euclidean norm sqrt(<psi|psi>).
func (k *Ket) Norm() float64 {
	var sum float64
	for _, t := range k.terms {
		sum += real(t.coeff)*real(t.coeff) + imag(t.coeff)*imag(t.coeff)
	}
	return math.Sqrt(sum)
}

// Normalize returns the unit-norm rescaling of the ket. The zero vector
// cannot be normalized.
func (k *Ket) Normalize() (*Ket, error) {
	n := k.Norm()
	if n == 0 {
		return nil, fmt.Errorf("%w: cannot normalize zero ket", ErrZeroNorm)
	}
	return k.Scale(complex(1/n, 0)), nil
}

// Labels returns the stored labels in unspecified order.
func (k *Ket) Labels() []StateLabel {
	labels := make([]StateLabel, 0, len(k.terms))
	for _, t := range k.terms {
		labels = append(labels, t.label)
	}
	return labels
}

// Equal reports coefficient-wise equality within tolerance eps, entries
// absent on either side counting as zero.
func (k *Ket) Equal(other *Ket, eps float64) bool {
	for key, t := range k.terms {
		if !coeffEqual(t.coeff, other.terms[key].coeff, eps) {
			return false
		}
	}
	for key, t := range other.terms {
		if _, ok := k.terms[key]; !ok && !coeffEqual(t.coeff, 0, eps) {
			return false
		}
	}
	return true
}

func (k *Ket) clone() *Ket {
	out := NewKet()
	out.arity = k.arity
	for key, t := range k.terms {
		out.terms[key] = t
	}
	return out
}
