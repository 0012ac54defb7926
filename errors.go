// errors.go
package braket

import "errors"

var (
	// ErrParse reports malformed Dirac-string input, such as unbalanced
	// ket or bra delimiters or an unexpected token.
	ErrParse = errors.New("braket: parse error")

	// ErrUnknownIdentifier reports a bare name used in an expression that
	// has no binding in the evaluation context.
	ErrUnknownIdentifier = errors.New("braket: unknown identifier")

	// ErrIncompatibleOperand reports an algebra operation applied to
	// structurally mismatched operands, like Ket * Ket.
	ErrIncompatibleOperand = errors.New("braket: incompatible operand")

	// ErrArityMismatch reports operands whose labels span a different
	// number of tensor factors.
	ErrArityMismatch = errors.New("braket: label arity mismatch")

	// ErrRedefinition reports an operator definition whose right-hand side
	// refers to the name being defined while it is being represented.
	ErrRedefinition = errors.New("braket: operator redefinition")

	// ErrZeroNorm reports a normalization request on a zero vector.
	ErrZeroNorm = errors.New("braket: zero norm")
)
