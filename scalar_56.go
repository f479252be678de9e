package c25519

// scalar56 is the wide-word limb layout: 5 uint64 limbs in base 2^56,
// least significant first. Values loaded from bytes use at most 32 bits of
// the top limb; reduced values are below l.
type scalar56 struct {
	d [5]uint64
}

const (
	mask56 = 1<<56 - 1
	mask40 = 1<<40 - 1
)

// l56 holds the limbs of the group order l
var l56 = [5]uint64{
	0x12631a5cf5d3ed,
	0xf9dea2f79cd658,
	0x000000000014de,
	0x00000000000000,
	0x00000010000000,
}

// mu56 holds floor(2^512 / l), the Barrett reciprocal of the group order
var mu56 = [5]uint64{
	0x9ce5a30a2c131b,
	0x215d086329a7ed,
	0xffffffffeb2106,
	0xffffffffffffff,
	0x00000fffffffff,
}

// load56 reads up to 7 little-endian bytes into a limb
func load56(b []byte) uint64 {
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

// store56 writes the low len(b) bytes of v in little-endian order
func store56(b []byte, v uint64) {
	for i := range b {
		b[i] = byte(v >> (8 * i))
	}
}

// setBytes loads a 32-byte little-endian value without reducing it
func (r *scalar56) setBytes(b *[32]byte) {
	r.d[0] = load56(b[0:7])
	r.d[1] = load56(b[7:14])
	r.d[2] = load56(b[14:21])
	r.d[3] = load56(b[21:28])
	r.d[4] = load56(b[28:32])
}

// bytes writes the limbs as 32 little-endian bytes
func (r *scalar56) bytes(out *[32]byte) {
	store56(out[0:7], r.d[0])
	store56(out[7:14], r.d[1])
	store56(out[14:21], r.d[2])
	store56(out[21:28], r.d[3])
	store56(out[28:32], r.d[4])
}

// mulAdd sets r = a*b + c mod l
func (r *scalar56) mulAdd(a, b, c *scalar56) {
	x := mulWide56(&a.d, &b.d, &c.d)
	r.barrettReduce(&x)
}

// mulWide56 computes a*b + c as ten normalized 56-bit limbs. The caller
// guarantees the result is below 2^560, which holds for any operands loaded
// from 32 bytes and for the Barrett quotient products.
func mulWide56(a, b, c *[5]uint64) (z [10]uint64) {
	var acc [10]uint128
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			acc[i+j] = addMulU128(acc[i+j], a[i], b[j])
		}
	}
	for i := 0; i < 5; i++ {
		acc[i] = addU128(acc[i], c[i])
	}

	var carry uint64
	for k := 0; k < 10; k++ {
		t := addU128(acc[k], carry)
		z[k] = t.low & mask56
		carry = t.rshift(56).low
	}
	return z
}

// mulLow56 computes a*b mod 2^264
func mulLow56(a, b *[5]uint64) (z [5]uint64) {
	var acc [5]uint128
	for i := 0; i < 5; i++ {
		for j := 0; i+j < 5; j++ {
			acc[i+j] = addMulU128(acc[i+j], a[i], b[j])
		}
	}

	var carry uint64
	for k := 0; k < 5; k++ {
		t := addU128(acc[k], carry)
		z[k] = t.low & mask56
		carry = t.rshift(56).low
	}
	z[4] &= mask40
	return z
}

// barrettReduce sets r = x mod l for x < 2^512 using Barrett reduction
// with b = 2^8 and k = 32:
//
//	q1 = floor(x / b^(k-1)),  q3 = floor(q1*mu / b^(k+1))
//	r  = (x - q3*l) mod b^(k+1)
//
// after which r < 3l and two masked subtractions of l finish the job.
func (r *scalar56) barrettReduce(x *[10]uint64) {
	// q1 = x >> 248
	var q1 [5]uint64
	for i := 0; i < 4; i++ {
		q1[i] = (x[4+i] >> 24) | ((x[5+i] << 32) & mask56)
	}
	q1[4] = (x[8] >> 24) | (x[9] << 32)

	// q3 = (q1 * mu) >> 264
	var zero [5]uint64
	q2 := mulWide56(&q1, &mu56, &zero)
	var q3 [5]uint64
	for i := 0; i < 4; i++ {
		q3[i] = (q2[4+i] >> 40) | ((q2[5+i] << 16) & mask56)
	}
	q3[4] = (q2[8] >> 40) | (q2[9] << 16)

	// r = (x mod 2^264) - (q3 * l mod 2^264), wrapped mod 2^264
	r2 := mulLow56(&q3, &l56)
	r1 := [5]uint64{x[0], x[1], x[2], x[3], x[4] & mask40}

	var borrow uint64
	for i := 0; i < 5; i++ {
		t := r1[i] - r2[i] - borrow
		borrow = t >> 63
		r.d[i] = t & mask56
	}
	r.d[4] &= mask40

	r.condSubL()
	r.condSubL()
}

// condSubL subtracts l from r when r >= l, selecting the result with a
// mask instead of a branch
func (r *scalar56) condSubL() {
	var d [5]uint64
	var borrow uint64
	for i := 0; i < 5; i++ {
		t := r.d[i] - l56[i] - borrow
		borrow = t >> 63
		d[i] = t & mask56
	}

	// borrow == 1 means r < l and r is kept
	mask := borrow - 1
	for i := 0; i < 5; i++ {
		r.d[i] = (d[i] & mask) | (r.d[i] &^ mask)
	}
}
