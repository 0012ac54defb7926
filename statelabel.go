// statelabel.go
package braket

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

/*
StateLabel identifies a single basis state as an immutable ordered tuple of
scalar values, one value per tensor factor. A label over a composite space is
simply the concatenation of the component labels.

Label values are normalized to one of three kinds at construction time:
int64 for integer-valued numbers, float64 for the rest, and string for
symbolic labels. Two labels are equal iff they have the same length and
equal values at every position.
*/
type StateLabel struct {
	parts []any
}

// NewStateLabel builds a label from scalar values. Integer types collapse to
// int64, floating-point values that are whole numbers collapse to int64 as
// well, so |1> and |1.0> name the same basis state.
func NewStateLabel(values ...any) StateLabel {
	parts := make([]any, len(values))
	for i, v := range values {
		parts[i] = normalizeLabelValue(v)
	}
	return StateLabel{parts: parts}
}

// IntLabel is shorthand for the common single-factor integer label |n>.
func IntLabel(n int) StateLabel {
	return StateLabel{parts: []any{int64(n)}}
}

func normalizeLabelValue(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		return int64(x)
	case float32:
		return normalizeLabelValue(float64(x))
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return int64(x)
		}
		return x
	case complex128:
		if imag(x) == 0 {
			return normalizeLabelValue(real(x))
		}
		return x
	case string:
		return x
	default:
		return fmt.Sprintf("%v", x)
	}
}

// Len reports the number of tensor factors the label spans.
func (s StateLabel) Len() int { return len(s.parts) }

// At returns the label value at position i.
func (s StateLabel) At(i int) any { return s.parts[i] }

// Int returns the label value at position i as an int64. The second return
// is false when the value is not integer-valued.
func (s StateLabel) Int(i int) (int64, bool) {
	n, ok := s.parts[i].(int64)
	return n, ok
}

// Equal reports whether two labels name the same basis state.
func (s StateLabel) Equal(other StateLabel) bool {
	if len(s.parts) != len(other.parts) {
		return false
	}
	for i := range s.parts {
		if s.parts[i] != other.parts[i] {
			return false
		}
	}
	return true
}

// Concat joins two labels into one composite label, as happens under the
// tensor product.
func (s StateLabel) Concat(other StateLabel) StateLabel {
	parts := make([]any, 0, len(s.parts)+len(other.parts))
	parts = append(parts, s.parts...)
	parts = append(parts, other.parts...)
	return StateLabel{parts: parts}
}

// Drop returns a copy of the label with the factor at position i removed.
// Used by the partial trace to reduce a composite label.
func (s StateLabel) Drop(i int) StateLabel {
	parts := make([]any, 0, len(s.parts)-1)
	parts = append(parts, s.parts[:i]...)
	parts = append(parts, s.parts[i+1:]...)
	return StateLabel{parts: parts}
}

// Sum adds up every numeric value in the label. Symbolic values count as
// zero. Handy for excitation-number subspace filters.
func (s StateLabel) Sum() float64 {
	var total float64
	for _, p := range s.parts {
		switch x := p.(type) {
		case int64:
			total += float64(x)
		case float64:
			total += x
		}
	}
	return total
}

// key produces the canonical map key for this label. The encoding is
// injective over normalized values, so key equality matches Equal.
func (s StateLabel) key() string {
	var sb strings.Builder
	for i, p := range s.parts {
		if i > 0 {
			sb.WriteByte(',')
		}
		switch x := p.(type) {
		case int64:
			sb.WriteByte('i')
			sb.WriteString(strconv.FormatInt(x, 10))
		case float64:
			sb.WriteByte('f')
			sb.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
		case string:
			// Length prefix keeps symbols containing separators injective.
			sb.WriteByte('s')
			sb.WriteString(strconv.Itoa(len(x)))
			sb.WriteByte(':')
			sb.WriteString(x)
		default:
			sb.WriteByte('v')
			fmt.Fprintf(&sb, "%v", x)
		}
	}
	return sb.String()
}

// String renders the label values comma-separated, as they appear between
// the delimiters of a ket or bra.
func (s StateLabel) String() string {
	vals := make([]string, len(s.parts))
	for i, p := range s.parts {
		vals[i] = fmt.Sprintf("%v", p)
	}
	return strings.Join(vals, ",")
}
