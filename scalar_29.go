package c25519

// scalar29 is the narrow-word limb layout: 9 uint32 limbs in base 2^29,
// least significant first. Products are accumulated in uint64, which leaves
// enough headroom for a full row of 29x29-bit products plus carries.
type scalar29 struct {
	d [9]uint32
}

const mask29 = 1<<29 - 1

// l29 holds the limbs of the group order l
var l29 = [9]uint32{
	0x1cf5d3ed, 0x009318d2, 0x1de73596, 0x1df3bd45,
	0x0000014d, 0x00000000, 0x00000000, 0x00000000,
	0x00100000,
}

// lFactor29 is -l^-1 mod 2^29
const lFactor29 = 0x12547e1b

// rr29 is R^2 mod l for the Montgomery radix R = 2^261
var rr29 = scalar29{d: [9]uint32{
	0x0b5f9d12, 0x1e141b17, 0x158d7f3d, 0x143f3757,
	0x1972d781, 0x042feb7c, 0x1ceec73d, 0x1e184d1e,
	0x0005046d,
}}

// setBytes loads a 32-byte little-endian value without reducing it
func (r *scalar29) setBytes(b *[32]byte) {
	var acc uint64
	var n, j int
	for i := 0; i < 9; i++ {
		for n < 29 && j < 32 {
			acc |= uint64(b[j]) << n
			n += 8
			j++
		}
		r.d[i] = uint32(acc) & mask29
		acc >>= 29
		n -= 29
	}
}

// bytes writes the limbs as 32 little-endian bytes
func (r *scalar29) bytes(out *[32]byte) {
	var acc uint64
	var n, j int
	for i := 0; i < 9; i++ {
		acc |= uint64(r.d[i]) << n
		n += 29
		for n >= 8 && j < 32 {
			out[j] = byte(acc)
			acc >>= 8
			n -= 8
			j++
		}
	}
}

// mulAdd sets r = a*b + c mod l.
//
// The first Montgomery reduction yields (a*b + c)/R, the second multiplies
// by R^2 and reduces again to leave (a*b + c) mod l.
func (r *scalar29) mulAdd(a, b, c *scalar29) {
	z := mulInternal29(a, b)
	for i := 0; i < 9; i++ {
		z[i] += uint64(c.d[i])
	}
	t := montgomeryReduce29(&z)

	z = mulInternal29(&t, &rr29)
	*r = montgomeryReduce29(&z)
}

// mulInternal29 computes the schoolbook product of a and b in 17 columns
func mulInternal29(a, b *scalar29) (z [17]uint64) {
	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			z[i+j] += uint64(a.d[i]) * uint64(b.d[j])
		}
	}
	return z
}

// montgomeryReduce29 computes z/R mod l for z < 2^261 * l.
func montgomeryReduce29(z *[17]uint64) scalar29 {
	var n [9]uint32
	var carry uint64

	// pick n so that the low 261 bits of z + n*l vanish
	for i := 0; i < 9; i++ {
		sum := carry + z[i]
		for j := 0; j < i; j++ {
			sum += uint64(n[j]) * uint64(l29[i-j])
		}
		p := (uint32(sum) * lFactor29) & mask29
		n[i] = p
		carry = (sum + uint64(p)*uint64(l29[0])) >> 29
	}

	// the remaining columns hold (z + n*l) / R, which is below 2l
	var r scalar29
	for i := 9; i < 17; i++ {
		sum := carry + z[i]
		for j := i - 8; j < 9; j++ {
			sum += uint64(n[j]) * uint64(l29[i-j])
		}
		r.d[i-9] = uint32(sum) & mask29
		carry = sum >> 29
	}
	r.d[8] = uint32(carry)

	r.subL()
	return r
}

// subL subtracts l from r and adds it back under a mask when the
// subtraction underflows, leaving r mod l for r < 2l
func (r *scalar29) subL() {
	var diff [9]uint32
	var borrow uint32
	for i := 0; i < 9; i++ {
		borrow = r.d[i] - (l29[i] + (borrow >> 31))
		diff[i] = borrow & mask29
	}

	underflow := ((borrow >> 31) ^ 1) - 1
	var carry uint32
	for i := 0; i < 9; i++ {
		carry = (carry >> 29) + diff[i] + (l29[i] & underflow)
		diff[i] = carry & mask29
	}
	r.d = diff
}
