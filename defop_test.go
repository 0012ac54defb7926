package braket

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDefOp(t *testing.T) {
	Convey("Given the lowering operator a | n > = sqrt(n)*|n-1>", t, func() {
		ctx := NewEvalContext()
		fn, err := DefOp(ctx, "a | n > = sqrt(n)*|n-1>")
		So(err, ShouldBeNil)

		Convey("Calling it on a basis label should lower and scale", func() {
			k, err := fn(IntLabel(4))
			So(err, ShouldBeNil)
			So(k.Size(), ShouldEqual, 1)
			So(real(k.At(IntLabel(3))), ShouldAlmostEqual, 2.0, testEps)
		})

		Convey("It should be bound in the context under its name", func() {
			v, ok := ctx.Lookup("a")
			So(ok, ShouldBeTrue)
			So(v.Kind, ShouldEqual, KindOpFunc)
			So(ctx.Names(), ShouldContain, "a")
		})

		Convey("Multiplying it onto a ket should distribute over terms", func() {
			v, err := ctx.Eval("a * (| 1 > + | 4 >)")
			So(err, ShouldBeNil)
			So(v.Kind, ShouldEqual, KindKet)
			So(real(v.Ket.At(IntLabel(0))), ShouldAlmostEqual, 1.0, testEps)
			So(real(v.Ket.At(IntLabel(3))), ShouldAlmostEqual, 2.0, testEps)
		})

		Convey("A scalar prefactor should distribute through the operator", func() {
			v, err := ctx.Eval("2 * a * | 4 >")
			So(err, ShouldBeNil)
			So(v.Kind, ShouldEqual, KindKet)
			So(real(v.Ket.At(IntLabel(3))), ShouldAlmostEqual, 4.0, testEps)

			// Left and right placement of the scalar agree.
			w, err := ctx.Eval("a * | 4 > * 2")
			So(err, ShouldBeNil)
			So(v.Ket.Equal(w.Ket, testEps), ShouldBeTrue)
		})

		Convey("Calling it with the wrong label arity should fail", func() {
			_, err := fn(NewStateLabel(1, 2))
			So(errors.Is(err, ErrArityMismatch), ShouldBeTrue)
		})
	})
}

func TestRepresentOp(t *testing.T) {
	Convey("Given the lowering operator represented over 1..10", t, func() {
		ctx := NewEvalContext()
		op, err := RepresentOp(ctx, "a | n > = sqrt(n)*|n-1>", RangeBasis(1, 10).Labels())
		So(err, ShouldBeNil)

		Convey("Every entry (n-1, n) should equal sqrt(n)", func() {
			for n := 1; n <= 10; n++ {
				got := op.At(IntLabel(n-1), IntLabel(n))
				So(real(got), ShouldAlmostEqual, math.Sqrt(float64(n)), testEps)
				So(imag(got), ShouldAlmostEqual, 0.0, testEps)
			}
			So(op.Size(), ShouldEqual, 10)
		})

		Convey("The represented operator should act like the callable", func() {
			out, err := ApplyOp(op, KetOf(1, IntLabel(9)))
			So(err, ShouldBeNil)
			So(real(out.At(IntLabel(8))), ShouldAlmostEqual, 3.0, testEps)
		})
	})

	Convey("Given a self-referential representation request", t, func() {
		ctx := NewEvalContext()
		_, err := DefOp(ctx, "a | n > = sqrt(n)*|n-1>")
		So(err, ShouldBeNil)

		Convey("Representing a name used on its own right-hand side should fail", func() {
			_, err := RepresentOp(ctx, "a | n > = a * |n>", RangeBasis(0, 3).Labels())
			So(errors.Is(err, ErrRedefinition), ShouldBeTrue)
		})
	})

	Convey("Given malformed definition strings", t, func() {
		ctx := NewEvalContext()
		for _, def := range []string{
			"| n > = |n>",
			"a | n = |n>",
			"a | n >",
			"a | 1 > = |1>",
		} {
			_, err := DefOp(ctx, def)
			So(errors.Is(err, ErrParse), ShouldBeTrue)
		}
	})
}
