// display.go
package braket

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
)

// coeffEqual compares complex coefficients component-wise within eps.
func coeffEqual(a, b complex128, eps float64) bool {
	return scalar.EqualWithinAbs(real(a), real(b), eps) &&
		scalar.EqualWithinAbs(imag(a), imag(b), eps)
}

func formatCoeff(c complex128) string {
	if scalar.EqualWithinAbs(imag(c), 0, defaultConfig.Epsilon) {
		return strconv.FormatFloat(real(c), 'g', -1, 64)
	}
	return strconv.FormatComplex(c, 'g', -1, 128)
}

// String lists the ket's entries one per line as coeff | label ⟩, in
// deterministic label order, eliding past the configured maximum.
func (k *Ket) String() string {
	keys := sortedKeys(len(k.terms), func(out []string) {
		i := 0
		for key := range k.terms {
			out[i] = key
			i++
		}
	})
	var sb strings.Builder
	fmt.Fprintf(&sb, "Ket with %d state(s):\n", len(k.terms))
	for i, key := range keys {
		if i >= defaultConfig.MaxDisplayTerms {
			sb.WriteString("  ...\n")
			break
		}
		t := k.terms[key]
		fmt.Fprintf(&sb, "  %s | %s ⟩\n", formatCoeff(t.coeff), t.label)
	}
	return sb.String()
}

// String lists the bra's entries one per line as coeff ⟨ label |.
func (b *Bra) String() string {
	keys := sortedKeys(len(b.terms), func(out []string) {
		i := 0
		for key := range b.terms {
			out[i] = key
			i++
		}
	})
	var sb strings.Builder
	fmt.Fprintf(&sb, "Bra with %d state(s):\n", len(b.terms))
	for i, key := range keys {
		if i >= defaultConfig.MaxDisplayTerms {
			sb.WriteString("  ...\n")
			break
		}
		t := b.terms[key]
		fmt.Fprintf(&sb, "  %s ⟨ %s |\n", formatCoeff(t.coeff), t.label)
	}
	return sb.String()
}

// String lists the operator's entries one per line as
// coeff | row ⟩⟨ col |.
func (o *OpSum) String() string {
	keys := sortedKeys(len(o.terms), func(out []string) {
		i := 0
		for key := range o.terms {
			out[i] = key
			i++
		}
	})
	var sb strings.Builder
	fmt.Fprintf(&sb, "OpSum with %d entr(ies):\n", len(o.terms))
	for i, key := range keys {
		if i >= defaultConfig.MaxDisplayTerms {
			sb.WriteString("  ...\n")
			break
		}
		t := o.terms[key]
		fmt.Fprintf(&sb, "  %s | %s ⟩⟨ %s |\n", formatCoeff(t.coeff), t.row, t.col)
	}
	return sb.String()
}

func sortedKeys(n int, fill func([]string)) []string {
	keys := make([]string, n)
	fill(keys)
	sort.Strings(keys)
	return keys
}
