package braket

import "math"

// Qubit is a two-level state over the labels 0 and 1, kept as a ket.
type Qubit struct {
	state *Ket
}

func NewQubit(alpha, beta complex128) *Qubit {
	k := NewKet()
	k.add(IntLabel(0), alpha)
	k.add(IntLabel(1), beta)
	return &Qubit{state: k}
}

// State returns the underlying ket.
func (q *Qubit) State() *Ket { return q.state }

// Hadamard builds the Hadamard gate over the 0/1 basis.
func Hadamard() *OpSum {
	// H = 1/√2 * [1  1]
	//           [1 -1]
	s := complex(1/math.Sqrt(2), 0)
	op := NewOpSum()
	op.accumulate(IntLabel(0), IntLabel(0), s)
	op.accumulate(IntLabel(0), IntLabel(1), s)
	op.accumulate(IntLabel(1), IntLabel(0), s)
	op.accumulate(IntLabel(1), IntLabel(1), -s)
	return op
}

// PauliX builds the bit-flip gate over the 0/1 basis.
func PauliX() *OpSum {
	op := NewOpSum()
	op.accumulate(IntLabel(0), IntLabel(1), 1)
	op.accumulate(IntLabel(1), IntLabel(0), 1)
	return op
}

// PauliZ builds the phase-flip gate over the 0/1 basis.
func PauliZ() *OpSum {
	op := NewOpSum()
	op.accumulate(IntLabel(0), IntLabel(0), 1)
	op.accumulate(IntLabel(1), IntLabel(1), -1)
	return op
}

// ApplyHadamard sends the qubit through the Hadamard gate in place.
func (q *Qubit) ApplyHadamard() error {
	next, err := ApplyOp(Hadamard(), q.state)
	if err != nil {
		return err
	}
	q.state = next
	return nil
}
