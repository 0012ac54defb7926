package braket

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStateLabel(t *testing.T) {
	Convey("Given state labels built from scalar values", t, func() {
		a := NewStateLabel(1, 2, 3)
		b := NewStateLabel(1, 2, 3)
		c := NewStateLabel(1, 2, 4)

		Convey("Equality should be positional", func() {
			So(a.Equal(b), ShouldBeTrue)
			So(a.Equal(c), ShouldBeFalse)
			So(a.Equal(NewStateLabel(1, 2)), ShouldBeFalse)
		})

		Convey("Keys should agree with equality", func() {
			So(a.key(), ShouldEqual, b.key())
			So(a.key(), ShouldNotEqual, c.key())
		})

		Convey("Whole floats should normalize to integers", func() {
			So(NewStateLabel(1.0).Equal(IntLabel(1)), ShouldBeTrue)
			So(NewStateLabel(0.5).Equal(IntLabel(0)), ShouldBeFalse)
		})

		Convey("Symbolic and numeric values should coexist", func() {
			s := NewStateLabel("up", 1)
			So(s.Len(), ShouldEqual, 2)
			So(s.At(0), ShouldEqual, "up")
			So(s.At(1), ShouldEqual, int64(1))
		})

		Convey("Concat should join factors in order", func() {
			joined := a.Concat(NewStateLabel(9))
			So(joined.Len(), ShouldEqual, 4)
			So(joined.At(3), ShouldEqual, int64(9))
		})

		Convey("Drop should remove one factor", func() {
			reduced := a.Drop(1)
			So(reduced.Equal(NewStateLabel(1, 3)), ShouldBeTrue)
		})

		Convey("Sum should total the numeric values", func() {
			So(a.Sum(), ShouldEqual, 6)
			So(NewStateLabel("up", 2).Sum(), ShouldEqual, 2)
		})
	})
}
