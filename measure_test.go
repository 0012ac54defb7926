package braket

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMeasure(t *testing.T) {
	Convey("Given a superposition over two labels", t, func() {
		k := NewKet()
		s := complex(1/math.Sqrt(2), 0)
		k.Set(IntLabel(0), s)
		k.Set(IntLabel(1), s)

		rng := rand.New(rand.NewPCG(1, 2))

		Convey("Measurement should return a collapsed basis ket", func() {
			label, collapsed, err := Measure(k, rng)
			So(err, ShouldBeNil)
			So(collapsed.Size(), ShouldEqual, 1)
			So(collapsed.At(label), ShouldEqual, complex(1, 0))

			Convey("And leave the input ket untouched", func() {
				So(k.Size(), ShouldEqual, 2)
			})
		})

		Convey("Sampling frequencies should follow the Born rule", func() {
			biased := NewKet()
			biased.Set(IntLabel(0), complex(math.Sqrt(0.9), 0))
			biased.Set(IntLabel(1), complex(math.Sqrt(0.1), 0))

			zeros := 0
			const trials = 2000
			for i := 0; i < trials; i++ {
				label, _, err := Measure(biased, rng)
				So(err, ShouldBeNil)
				if n, _ := label.Int(0); n == 0 {
					zeros++
				}
			}
			So(float64(zeros)/trials, ShouldAlmostEqual, 0.9, 0.05)
		})

		Convey("A supplied source should fully determine the sampling", func() {
			first := rand.New(rand.NewPCG(7, 7))
			second := rand.New(rand.NewPCG(7, 7))
			for i := 0; i < 50; i++ {
				la, _, err := Measure(k, first)
				So(err, ShouldBeNil)
				lb, _, err := Measure(k, second)
				So(err, ShouldBeNil)
				So(la.Equal(lb), ShouldBeTrue)
			}
		})

		Convey("Measuring the zero ket should fail", func() {
			_, _, err := Measure(NewKet(), rng)
			So(errors.Is(err, ErrZeroNorm), ShouldBeTrue)

			flat := KetOf(0, IntLabel(3))
			_, _, err = Measure(flat, rng)
			So(errors.Is(err, ErrZeroNorm), ShouldBeTrue)
		})
	})
}

func TestQubit(t *testing.T) {
	Convey("Given a qubit prepared in |0>", t, func() {
		q := NewQubit(1, 0)

		Convey("The Hadamard gate should produce an equal superposition", func() {
			So(q.ApplyHadamard(), ShouldBeNil)
			st := q.State()
			So(real(st.At(IntLabel(0))), ShouldAlmostEqual, 1/math.Sqrt2, testEps)
			So(real(st.At(IntLabel(1))), ShouldAlmostEqual, 1/math.Sqrt2, testEps)

			Convey("And applying it twice should return to |0>", func() {
				So(q.ApplyHadamard(), ShouldBeNil)
				So(real(q.State().FilterNZ(testEps).At(IntLabel(0))), ShouldAlmostEqual, 1.0, testEps)
				So(q.State().Size(), ShouldEqual, 1)
			})
		})

		Convey("X then Z should anticommute", func() {
			comm, err := Commutator(PauliX(), PauliZ())
			So(err, ShouldBeNil)
			sum, err := Compose(PauliX(), PauliZ())
			So(err, ShouldBeNil)
			twice := sum.Scale(2)
			So(comm.Equal(twice, testEps), ShouldBeTrue)
		})
	})
}
