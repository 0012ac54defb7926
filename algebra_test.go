package braket

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const testEps = 1e-9

func TestKetAlgebra(t *testing.T) {
	Convey("Given a pair of kets", t, func() {
		a := NewKet()
		a.Set(IntLabel(1), 2)
		a.Set(IntLabel(2), complex(0, 1))

		b := NewKet()
		b.Set(IntLabel(2), 3)
		b.Set(IntLabel(5), -1)

		Convey("Scaling should distribute over addition", func() {
			c := complex(2, -1)
			sum, err := a.Add(b)
			So(err, ShouldBeNil)

			left := sum.Scale(c)
			ca := a.Scale(c)
			cb := b.Scale(c)
			right, err := ca.Add(cb)
			So(err, ShouldBeNil)
			So(left.Equal(right, testEps), ShouldBeTrue)
		})

		Convey("Subtracting a ket from itself should leave only zeros", func() {
			diff, err := a.Sub(a)
			So(err, ShouldBeNil)
			So(diff.FilterNZ(testEps).Size(), ShouldEqual, 0)
		})

		Convey("Indexed reads should see prior writes", func() {
			a.Set(IntLabel(7), complex(4, 4))
			So(a.At(IntLabel(7)), ShouldEqual, complex(4, 4))
			So(a.At(IntLabel(100)), ShouldEqual, complex(0, 0))
		})

		Convey("The conjugate transpose should be an involution", func() {
			So(a.Dagger().Dagger().Equal(a, testEps), ShouldBeTrue)
		})

		Convey("Writing a label of different arity should be refused", func() {
			err := a.Set(NewStateLabel(1, 2), 1)
			So(errors.Is(err, ErrArityMismatch), ShouldBeTrue)
			So(a.At(NewStateLabel(1, 2)), ShouldEqual, complex(0, 0))
			So(a.Size(), ShouldEqual, 2)
		})

		Convey("Adding kets of different arity should fail", func() {
			wide := NewKet()
			wide.Set(NewStateLabel(1, 2), 1)
			_, err := a.Add(wide)
			So(errors.Is(err, ErrArityMismatch), ShouldBeTrue)
		})

		Convey("Scaling by zero should keep entries until filtered", func() {
			zeroed := a.Scale(0)
			So(zeroed.Size(), ShouldEqual, a.Size())
			So(zeroed.FilterNZ(testEps).Size(), ShouldEqual, 0)
		})

		Convey("Normalization should produce a unit vector", func() {
			n, err := a.Normalize()
			So(err, ShouldBeNil)
			So(n.Norm(), ShouldAlmostEqual, 1.0, testEps)
		})

		Convey("Normalizing the zero ket should fail", func() {
			_, err := NewKet().Normalize()
			So(errors.Is(err, ErrZeroNorm), ShouldBeTrue)
		})

		Convey("MapCoeffs should transform every coefficient", func() {
			doubled := a.MapCoeffs(func(c complex128) complex128 { return 2 * c })
			So(doubled.Equal(a.Scale(2), testEps), ShouldBeTrue)

			conjBra := a.Dagger()
			back := conjBra.MapCoeffs(cmplx.Conj).Dagger().MapCoeffs(cmplx.Conj)
			So(back.Equal(a, testEps), ShouldBeTrue)

			op := OpSumOf(complex(0, 3), IntLabel(0), IntLabel(1))
			negated := op.MapCoeffs(func(c complex128) complex128 { return -c })
			So(negated.At(IntLabel(0), IntLabel(1)), ShouldEqual, complex(0, -3))
		})

		Convey("MapLabels should merge colliding labels", func() {
			collapsed := a.MapLabels(func(StateLabel) StateLabel { return IntLabel(0) })
			So(collapsed.Size(), ShouldEqual, 1)
			So(collapsed.At(IntLabel(0)), ShouldEqual, complex(2, 1))
		})

		Convey("XSubspace should keep only matching labels", func() {
			k := NewKet()
			k.Set(NewStateLabel(1, 1), 1)
			k.Set(NewStateLabel(2, 0), 1)
			k.Set(NewStateLabel(2, 1), 1)

			fixed := k.XSubspace(func(l StateLabel) bool { return l.Sum() == 2 })
			So(fixed.Size(), ShouldEqual, 2)
			So(fixed.At(NewStateLabel(2, 1)), ShouldEqual, complex(0, 0))
		})
	})
}

func TestProducts(t *testing.T) {
	Convey("Given kets and bras over a shared basis", t, func() {
		k := NewKet()
		k.Set(IntLabel(0), complex(1, 0))
		k.Set(IntLabel(1), complex(0, 1))

		Convey("The inner product should use delta matching", func() {
			ip, err := InnerProduct(k.Dagger(), k)
			So(err, ShouldBeNil)
			So(real(ip), ShouldAlmostEqual, 2.0, testEps)
			So(imag(ip), ShouldAlmostEqual, 0.0, testEps)

			other := KetOf(5, IntLabel(9))
			ip, err = InnerProduct(k.Dagger(), other)
			So(err, ShouldBeNil)
			So(ip, ShouldEqual, complex(0, 0))
		})

		Convey("The outer product should cover every label pair", func() {
			op, err := OuterProduct(k, k.Dagger())
			So(err, ShouldBeNil)
			So(op.Size(), ShouldEqual, 4)
			So(op.At(IntLabel(1), IntLabel(1)), ShouldEqual, complex(1, 0))
			So(op.At(IntLabel(1), IntLabel(0)), ShouldEqual, complex(0, 1))
		})

		Convey("Operator application should contract the column label", func() {
			low := NewOpSum()
			for n := 1; n <= 5; n++ {
				low.Set(IntLabel(n-1), IntLabel(n), complex(math.Sqrt(float64(n)), 0))
			}
			out, err := ApplyOp(low, KetOf(1, IntLabel(4)))
			So(err, ShouldBeNil)
			So(out.Size(), ShouldEqual, 1)
			So(real(out.At(IntLabel(3))), ShouldAlmostEqual, 2.0, testEps)
		})

		Convey("Transpose should reverse operator composition", func() {
			op, err := OuterProduct(k, k.Dagger())
			So(err, ShouldBeNil)

			sq, err := Compose(op, op)
			So(err, ShouldBeNil)
			rhs, err := Compose(op.Dagger(), op.Dagger())
			So(err, ShouldBeNil)
			So(sq.Dagger().Equal(rhs, testEps), ShouldBeTrue)
		})

		Convey("Structurally mismatched products should fail", func() {
			_, err := Mul(KetValue(k), KetValue(k))
			So(errors.Is(err, ErrIncompatibleOperand), ShouldBeTrue)

			_, err = Mul(BraValue(k.Dagger()), BraValue(k.Dagger()))
			So(errors.Is(err, ErrIncompatibleOperand), ShouldBeTrue)
		})
	})
}

func TestTensorProducts(t *testing.T) {
	Convey("Given single-factor kets and bras", t, func() {
		k := NewKet()
		k.Set(IntLabel(0), 1)
		k.Set(IntLabel(1), 2)
		b := k.Dagger()

		Convey("Tensoring kets should concatenate labels and multiply coefficients", func() {
			kk, err := TensorKets(k, k)
			So(err, ShouldBeNil)
			So(kk.Arity(), ShouldEqual, 2)
			So(kk.Size(), ShouldEqual, 4)
			So(kk.At(NewStateLabel(1, 1)), ShouldEqual, complex(4, 0))
		})

		Convey("Tensor should commute with the outer product", func() {
			op, err := OuterProduct(k, b)
			So(err, ShouldBeNil)
			lhs, err := TensorOps(op, op)
			So(err, ShouldBeNil)

			kk, err := TensorKets(k, k)
			So(err, ShouldBeNil)
			bb, err := TensorBras(b, b)
			So(err, ShouldBeNil)
			rhs, err := OuterProduct(kk, bb)
			So(err, ShouldBeNil)

			So(lhs.Equal(rhs, testEps), ShouldBeTrue)
		})

		Convey("Mixed-kind tensor products should fail", func() {
			_, err := Tensor(KetValue(k), BraValue(b))
			So(errors.Is(err, ErrIncompatibleOperand), ShouldBeTrue)
		})
	})
}

func TestOpSumAlgebra(t *testing.T) {
	Convey("Given small operators", t, func() {
		x := PauliX()
		z := PauliZ()

		Convey("The dagger should conjugate and swap label pairs", func() {
			op := OpSumOf(complex(0, 2), IntLabel(0), IntLabel(1))
			dag := op.Dagger()
			So(dag.At(IntLabel(1), IntLabel(0)), ShouldEqual, complex(0, -2))
			So(dag.Dagger().Equal(op, testEps), ShouldBeTrue)
		})

		Convey("Composition should match matrix multiplication", func() {
			xz, err := Compose(x, z)
			So(err, ShouldBeNil)
			So(xz.At(IntLabel(0), IntLabel(1)), ShouldEqual, complex(-1, 0))
			So(xz.At(IntLabel(1), IntLabel(0)), ShouldEqual, complex(1, 0))
		})

		Convey("The commutator of X and Z should be nonzero", func() {
			comm, err := Commutator(x, z)
			So(err, ShouldBeNil)
			So(comm.FilterNZ(testEps).Size(), ShouldEqual, 2)
			So(comm.At(IntLabel(0), IntLabel(1)), ShouldEqual, complex(-2, 0))
		})

		Convey("The trace should sum diagonal entries only", func() {
			So(z.Trace(), ShouldEqual, complex(0, 0))
			So(IdentityOp(IntLabel(0), IntLabel(1)).Trace(), ShouldEqual, complex(2, 0))
		})

		Convey("Bra application should be the dual of ket application", func() {
			br, err := ApplyBra(BasisBra(0), x)
			So(err, ShouldBeNil)
			So(br.At(IntLabel(1)), ShouldEqual, complex(1, 0))
		})
	})
}

func TestPartialTrace(t *testing.T) {
	Convey("Given a Bell-state density operator", t, func() {
		bell := NewKet()
		s := complex(1/math.Sqrt(2), 0)
		bell.Set(NewStateLabel(0, 0), s)
		bell.Set(NewStateLabel(1, 1), s)

		dens, err := OuterProduct(bell, bell.Dagger())
		So(err, ShouldBeNil)

		Convey("Tracing out either factor should give the same reduced operator", func() {
			r0, err := PTrace(dens, 0)
			So(err, ShouldBeNil)
			r1, err := PTrace(dens, 1)
			So(err, ShouldBeNil)

			So(r0.Equal(r1, testEps), ShouldBeTrue)
			So(real(r0.At(IntLabel(0), IntLabel(0))), ShouldAlmostEqual, 0.5, testEps)
			So(real(r0.At(IntLabel(1), IntLabel(1))), ShouldAlmostEqual, 0.5, testEps)
			So(r0.At(IntLabel(0), IntLabel(1)), ShouldEqual, complex(0, 0))
		})

		Convey("The reduced operator should keep the full trace", func() {
			r0, err := PTrace(dens, 0)
			So(err, ShouldBeNil)
			So(real(r0.Trace()), ShouldAlmostEqual, real(dens.Trace()), testEps)
		})

		Convey("Mixed-arity writes should be refused before they can corrupt a trace", func() {
			op := NewOpSum()
			So(op.Set(NewStateLabel(1, 2), NewStateLabel(1, 2), 1), ShouldBeNil)
			err := op.Set(IntLabel(3), IntLabel(3), 1)
			So(errors.Is(err, ErrArityMismatch), ShouldBeTrue)

			reduced, err := PTrace(op, 1)
			So(err, ShouldBeNil)
			So(reduced.Size(), ShouldEqual, 1)
		})

		Convey("Row and column labels of one entry must agree in arity", func() {
			op := NewOpSum()
			err := op.Set(NewStateLabel(1, 2), IntLabel(1), 1)
			So(errors.Is(err, ErrArityMismatch), ShouldBeTrue)
		})

		Convey("A label transform that unbalances arities should fail the trace, not panic", func() {
			op := IdentityOp(NewStateLabel(1, 1), NewStateLabel(2, 2))
			mangled := op.MapLabels(func(l StateLabel) StateLabel {
				if n, _ := l.Int(0); n == 2 {
					return l.Drop(1)
				}
				return l
			})
			_, err := PTrace(mangled, 1)
			So(errors.Is(err, ErrArityMismatch), ShouldBeTrue)
		})

		Convey("Tracing a single-factor operator should fail", func() {
			_, err := PTrace(PauliX(), 0)
			So(errors.Is(err, ErrArityMismatch), ShouldBeTrue)
		})

		Convey("An out-of-range factor should fail", func() {
			_, err := PTrace(dens, 5)
			So(errors.Is(err, ErrArityMismatch), ShouldBeTrue)
		})
	})
}
