package c25519

import "math/bits"

// uint128 represents a 128-bit unsigned accumulator for limb products
type uint128 struct {
	high, low uint64
}

// addMulU128 computes c + a*b and returns the result as uint128
func addMulU128(c uint128, a, b uint64) uint128 {
	hi, lo := bits.Mul64(a, b)

	newLo, carry := bits.Add64(c.low, lo, 0)
	newHi, _ := bits.Add64(c.high, hi, carry)

	return uint128{high: newHi, low: newLo}
}

// addU128 adds a uint64 to a uint128
func addU128(c uint128, a uint64) uint128 {
	newLo, carry := bits.Add64(c.low, a, 0)
	newHi, _ := bits.Add64(c.high, 0, carry)
	return uint128{high: newHi, low: newLo}
}

// rshift shifts the uint128 right by n bits, 0 < n < 64
func (u uint128) rshift(n uint) uint128 {
	return uint128{
		high: u.high >> n,
		low:  (u.low >> n) | (u.high << (64 - n)),
	}
}
