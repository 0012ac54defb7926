// measure.go
package braket

import (
	"fmt"
	"math/cmplx"
	"math/rand/v2"
	"sort"
)

/*
Measure samples a basis label from the ket under the Born rule: each label
is drawn with probability |c|^2 / norm^2. It returns the sampled label and
the post-measurement state, the basis ket the superposition collapsed into.
The input ket is left untouched.

Passing a nil source uses the package-global generator.
*/
func Measure(k *Ket, rng *rand.Rand) (StateLabel, *Ket, error) {
	if len(k.terms) == 0 {
		return StateLabel{}, nil, fmt.Errorf("%w: cannot measure the zero ket", ErrZeroNorm)
	}

	// Cumulative probabilities over the stored terms, in sorted key order
	// so that a seeded source reproduces the same label sequence.
	keys := make([]string, 0, len(k.terms))
	for key := range k.terms {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	labels := make([]StateLabel, 0, len(keys))
	cum := make([]float64, 0, len(keys))
	var total float64
	for _, key := range keys {
		t := k.terms[key]
		p := cmplx.Abs(t.coeff)
		total += p * p
		labels = append(labels, t.label)
		cum = append(cum, total)
	}
	if total == 0 {
		return StateLabel{}, nil, fmt.Errorf("%w: cannot measure the zero ket", ErrZeroNorm)
	}
	for i := range cum {
		cum[i] /= total
	}

	var r float64
	if rng != nil {
		r = rng.Float64()
	} else {
		r = rand.Float64()
	}
	chosen := labels[len(labels)-1]
	for i, threshold := range cum {
		if r <= threshold {
			chosen = labels[i]
			break
		}
	}
	return chosen, KetOf(1, chosen), nil
}
