// Package fixed provides the Q32.32 arithmetic the simulation runs on.
// Every value that feeds simulation state goes through these primitives so
// that two hosts replaying the same inputs land on the same bit patterns;
// the platform float unit is only used at configuration-load and display
// boundaries.
package fixed

import "math/bits"

// Q32.32 layout constants.
const (
	Shift = 32
	Scale = int64(1) << Shift
	Half  = int64(1) << (Shift - 1)
)

func FromInt(i int) int64 { return int64(i) << Shift }

func ToInt(f int64) int { return int(f >> Shift) }

// FromFloat converts a tuning constant into fixed point. Only call it for
// values that are themselves deterministic (compile-time constants, parsed
// config), never for per-frame math.
func FromFloat(f float64) int64 { return int64(f * float64(Scale)) }

func ToFloat(f int64) float64 { return float64(f) / float64(Scale) }

// Mul multiplies two Q32.32 values through a 128-bit intermediate.
func Mul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	negative := (a < 0) != (b < 0)
	ua, ub := uint64(a), uint64(b)
	if a < 0 {
		ua = uint64(-a)
	}
	if b < 0 {
		ub = uint64(-b)
	}
	hi, lo := bits.Mul64(ua, ub)
	result := int64((hi << 32) | (lo >> 32))
	if negative {
		return -result
	}
	return result
}

// Div divides two Q32.32 values, saturating instead of overflowing.
func Div(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	negative := (a < 0) != (b < 0)
	ua, ub := uint64(a), uint64(b)
	if a < 0 {
		ua = uint64(-a)
	}
	if b < 0 {
		ub = uint64(-b)
	}
	hi := ua >> 32
	lo := ua << 32
	if hi >= ub {
		if negative {
			return -int64(^uint64(0) >> 1)
		}
		return int64(^uint64(0) >> 1)
	}
	quo, _ := bits.Div64(hi, lo, ub)
	if quo > uint64(^uint64(0)>>1) {
		quo = uint64(^uint64(0) >> 1)
	}
	if negative {
		return -int64(quo)
	}
	return int64(quo)
}

// Sqrt returns the Q32.32 square root via Newton-Raphson. Convergence is
// fixed-iteration so the cost and the rounding are identical on every host.
func Sqrt(x int64) int64 {
	if x <= 0 {
		return 0
	}
	guess := x
	if guess > Scale {
		guess = Scale
		for guess < x>>1 {
			guess <<= 1
		}
	} else {
		guess = x >> 1
		if guess == 0 {
			guess = 1
		}
	}
	for i := 0; i < 14; i++ {
		if guess == 0 {
			return 0
		}
		guess = (guess + Div(x, guess)) >> 1
	}
	return guess
}

func Abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp bounds x into [lo, hi].
func Clamp(x, lo, hi int64) int64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func Min(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func Max(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
