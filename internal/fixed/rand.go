package fixed

import "hash/fnv"

// Rand is the simulation PRNG: a 64-bit xorshift whose state round-trips
// through two 32-bit words so checkpoints can carry it alongside entity
// state. It is not concurrency safe; the frame step is single threaded.
type Rand struct {
	state uint64
}

// SeedValue hashes a root seed string and a subsystem label into a non-zero
// 64-bit seed. Labelling keeps independent draw streams from aliasing when
// one subsystem adds or removes draws.
func SeedValue(rootSeed, label string) uint64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(rootSeed))
	hasher.Write([]byte{0})
	hasher.Write([]byte(label))
	sum := hasher.Sum64()
	if sum == 0 {
		sum = 1
	}
	return sum
}

// NewRand seeds a PRNG for the given subsystem label.
func NewRand(rootSeed, label string) *Rand {
	return &Rand{state: SeedValue(rootSeed, label)}
}

// Next advances the xorshift state and returns the raw 64-bit word.
func (r *Rand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Fixed draws a Q32.32 fraction in [0, 1).
func (r *Rand) Fixed() int64 {
	return int64(r.Next() & uint64(Scale-1))
}

// Range draws a fixed-point value in [min, max).
func (r *Rand) Range(min, max int64) int64 {
	if max <= min {
		return min
	}
	return min + Mul(r.Fixed(), max-min)
}

// Intn draws an integer in [0, n).
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// State exposes the PRNG state as two 32-bit words for checkpointing.
func (r *Rand) State() (hi, lo uint32) {
	return uint32(r.state >> 32), uint32(r.state)
}

// Restore reloads a state captured by State. A zero state is coerced to a
// valid one; xorshift cannot leave zero.
func (r *Rand) Restore(hi, lo uint32) {
	state := uint64(hi)<<32 | uint64(lo)
	if state == 0 {
		state = 1
	}
	r.state = state
}
