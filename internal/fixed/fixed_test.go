package fixed

import (
	"math"
	"testing"
)

func TestMulDivRoundTrip(t *testing.T) {
	cases := []struct {
		a float64
		b float64
	}{
		{1, 1},
		{2.5, 4},
		{-3.25, 2},
		{0.0625, 0.5},
		{1500, 1500},
	}
	for _, tc := range cases {
		a := FromFloat(tc.a)
		b := FromFloat(tc.b)
		got := ToFloat(Mul(a, b))
		want := tc.a * tc.b
		if math.Abs(got-want) > 1e-6 {
			t.Fatalf("Mul(%v, %v) = %v, want %v", tc.a, tc.b, got, want)
		}
		if tc.b != 0 {
			got := ToFloat(Div(a, b))
			want := tc.a / tc.b
			if math.Abs(got-want) > 1e-6 {
				t.Fatalf("Div(%v, %v) = %v, want %v", tc.a, tc.b, got, want)
			}
		}
	}
}

func TestDivByZero(t *testing.T) {
	if got := Div(FromInt(10), 0); got != 0 {
		t.Fatalf("Div by zero should yield 0, got %v", got)
	}
}

func TestSqrt(t *testing.T) {
	cases := []float64{0, 1, 2, 4, 20, 400, 1500, 250000}
	for _, c := range cases {
		got := ToFloat(Sqrt(FromFloat(c)))
		want := math.Sqrt(c)
		tolerance := math.Max(1e-4, want*1e-6)
		if math.Abs(got-want) > tolerance {
			t.Fatalf("Sqrt(%v) = %v, want %v", c, got, want)
		}
	}
	if Sqrt(-Scale) != 0 {
		t.Fatalf("Sqrt of negative should yield 0")
	}
}

func TestSqrtDeterministic(t *testing.T) {
	// Same input must produce the same bits, not merely a close value.
	for _, x := range []int64{1, Scale / 3, 7 * Scale, 123456789} {
		if Sqrt(x) != Sqrt(x) {
			t.Fatalf("Sqrt(%d) not stable", x)
		}
	}
}

func TestVecNorm(t *testing.T) {
	v := Vec{X: FromInt(3), Y: FromInt(4)}
	unit, length := v.Norm()
	if math.Abs(ToFloat(length)-5) > 1e-4 {
		t.Fatalf("length = %v, want 5", ToFloat(length))
	}
	if math.Abs(ToFloat(unit.LenSq())-1) > 1e-3 {
		t.Fatalf("unit length squared = %v, want 1", ToFloat(unit.LenSq()))
	}

	zero, zlen := (Vec{}).Norm()
	if !zero.IsZero() || zlen != 0 {
		t.Fatalf("zero vector should normalize to zero")
	}
}

func TestRandDeterministic(t *testing.T) {
	a := NewRand("seed", "world")
	b := NewRand("seed", "world")
	for i := 0; i < 64; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("same seed diverged at draw %d", i)
		}
	}

	c := NewRand("seed", "world")
	d := NewRand("other", "world")
	same := true
	for i := 0; i < 8; i++ {
		if c.Next() != d.Next() {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("different seeds produced identical draws")
	}
}

func TestRandLabelStreams(t *testing.T) {
	a := NewRand("seed", "food")
	b := NewRand("seed", "cells")
	if a.Next() == b.Next() {
		t.Fatalf("labelled streams should not alias")
	}
}

func TestRandStateRoundTrip(t *testing.T) {
	r := NewRand("seed", "world")
	for i := 0; i < 10; i++ {
		r.Next()
	}
	hi, lo := r.State()

	expected := make([]uint64, 16)
	for i := range expected {
		expected[i] = r.Next()
	}

	r.Restore(hi, lo)
	for i, want := range expected {
		if got := r.Next(); got != want {
			t.Fatalf("replay draw %d = %d, want %d", i, got, want)
		}
	}
}

func TestRandFixedRange(t *testing.T) {
	r := NewRand("seed", "range")
	for i := 0; i < 1000; i++ {
		f := r.Fixed()
		if f < 0 || f >= Scale {
			t.Fatalf("Fixed() out of [0,1): %v", ToFloat(f))
		}
		v := r.Range(FromInt(10), FromInt(20))
		if v < FromInt(10) || v >= FromInt(20) {
			t.Fatalf("Range out of bounds: %v", ToFloat(v))
		}
	}
}
