package c25519

import (
	"crypto/subtle"
	"errors"
)

// Scalar represents an integer modulo the order of the curve25519 prime
// order subgroup, l = 2^252 + 27742317777372353535851937790883648493.
//
// Scalars are values: every operation returns a new Scalar and none mutates
// its arguments. A Scalar produced by FromBytes may hold any 256-bit value;
// everything returned by the arithmetic operations is reduced below l.
type Scalar struct {
	v limbs
}

// ErrNonCanonical is returned when a 32-byte encoding is not below l
var ErrNonCanonical = errors.New("scalar encoding is not canonical")

// orderBytes is l in little-endian order
var orderBytes = [32]byte{
	0xed, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
	0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10,
}

// orderMinusOneBytes is l - 1, the encoding of -1
var orderMinusOneBytes = [32]byte{
	0xec, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
	0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10,
}

// twoPow256Bytes is 2^256 mod l
var twoPow256Bytes = [32]byte{
	0x1d, 0x95, 0x98, 0x8d, 0x74, 0x31, 0xec, 0xd6,
	0x70, 0xcf, 0x7d, 0x73, 0xf4, 0x5b, 0xef, 0xc6,
	0xfe, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x0f,
}

// Scalar constants
var (
	// Zero represents the scalar 0
	Zero = Scalar{}

	// One represents the scalar 1
	One = FromBytes(&[32]byte{1})

	minusOne  = FromBytes(&orderMinusOneBytes)
	twoPow256 = FromBytes(&twoPow256Bytes)
)

// Backend reports the limb layout selected at build time, "56x5" for the
// 64-bit backend and "29x9" for the 32-bit one.
func Backend() string {
	return backendName
}

// FromBytes interprets b as a little-endian 256-bit integer. No reduction
// is performed, so the result may be non-canonical; the arithmetic
// operations accept such values and always return canonical ones.
func FromBytes(b *[32]byte) Scalar {
	var s Scalar
	s.v.setBytes(b)
	return s
}

// FromCanonicalBytes decodes b, returning ErrNonCanonical if the encoded
// integer is not below l. Use it for externally supplied scalars that must
// be trusted as canonical, such as the S half of a signature.
func FromCanonicalBytes(b *[32]byte) (Scalar, error) {
	if !IsCanonical(b) {
		return Scalar{}, ErrNonCanonical
	}
	return FromBytes(b), nil
}

// FromBytesWide reduces a 512-bit little-endian integer modulo l, as used
// for hashing a 64-byte digest to a scalar.
func FromBytesWide(b *[64]byte) Scalar {
	var lo, hi [32]byte
	copy(lo[:], b[:32])
	copy(hi[:], b[32:])
	return MulAdd(FromBytes(&hi), twoPow256, FromBytes(&lo))
}

// IsCanonical reports whether b encodes an integer below l. The comparison
// runs in constant time.
func IsCanonical(b *[32]byte) bool {
	// borrow out of b - l is set exactly when b < l
	var borrow uint32
	for i := 0; i < 32; i++ {
		borrow = (uint32(b[i]) - uint32(orderBytes[i]) - borrow) >> 31
	}
	return borrow == 1
}

// Bytes returns the 32-byte little-endian encoding of s. For canonical
// scalars this is the unique minimal encoding.
func (s Scalar) Bytes() [32]byte {
	var out [32]byte
	s.v.bytes(&out)
	return out
}

// MulAdd returns (a*b + c) mod l. The inputs may be non-canonical. The
// computation has no data-dependent branches or memory accesses.
func MulAdd(a, b, c Scalar) Scalar {
	var r Scalar
	r.v.mulAdd(&a.v, &b.v, &c.v)
	return r
}

// Mul returns a*b mod l
func Mul(a, b Scalar) Scalar {
	return MulAdd(a, b, Zero)
}

// Add returns a+b mod l
func Add(a, b Scalar) Scalar {
	return MulAdd(a, One, b)
}

// Negate returns -a mod l
func Negate(a Scalar) Scalar {
	return MulAdd(a, minusOne, Zero)
}

// Sub returns a-b mod l
func Sub(a, b Scalar) Scalar {
	return MulAdd(b, minusOne, a)
}

// Reduce returns the canonical representative of s
func (s Scalar) Reduce() Scalar {
	return MulAdd(s, One, Zero)
}

// Equal reports whether s and t are congruent modulo l, in constant time
func (s Scalar) Equal(t Scalar) bool {
	a := s.Reduce().Bytes()
	b := t.Reduce().Bytes()
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}

// IsZero reports whether s is congruent to zero modulo l
func (s Scalar) IsZero() bool {
	return s.Equal(Zero)
}

// IsCanonical reports whether s is already below l
func (s Scalar) IsCanonical() bool {
	b := s.Bytes()
	return IsCanonical(&b)
}
