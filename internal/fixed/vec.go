package fixed

// Vec is a 2D vector in Q32.32.
type Vec struct {
	X int64
	Y int64
}

func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale multiplies both components by a Q32.32 factor.
func (v Vec) Scale(f int64) Vec { return Vec{X: Mul(v.X, f), Y: Mul(v.Y, f)} }

func (v Vec) IsZero() bool { return v.X == 0 && v.Y == 0 }

// LenSq returns the squared length. Prefer it over Len when comparing against
// a squared threshold; it avoids a Sqrt on the hot path.
func (v Vec) LenSq() int64 { return Mul(v.X, v.X) + Mul(v.Y, v.Y) }

func (v Vec) Len() int64 { return Sqrt(v.LenSq()) }

// Norm returns the unit vector and the length it divided by. A zero vector
// normalizes to zero with length zero; callers guard the degenerate case.
func (v Vec) Norm() (Vec, int64) {
	length := v.Len()
	if length == 0 {
		return Vec{}, 0
	}
	return Vec{X: Div(v.X, length), Y: Div(v.Y, length)}, length
}
