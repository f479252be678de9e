package c25519

import (
	"hash"
	"unsafe"

	sha256simd "github.com/minio/sha256-simd"
)

// SHA256 represents a SHA-256 hash context
type SHA256 struct {
	hasher hash.Hash
}

// NewSHA256 creates a new SHA-256 hash context
func NewSHA256() *SHA256 {
	return &SHA256{hasher: sha256simd.New()}
}

// Write writes data to the hash
func (h *SHA256) Write(data []byte) {
	h.hasher.Write(data)
}

// Finalize finalizes the hash and writes the result to out32 (must be 32 bytes)
func (h *SHA256) Finalize(out32 []byte) {
	if len(out32) != 32 {
		panic("output buffer must be 32 bytes")
	}
	copy(out32, h.hasher.Sum(nil))
}

// HMACSHA256 represents an HMAC-SHA256 context
type HMACSHA256 struct {
	inner, outer SHA256
}

// NewHMACSHA256 creates a new HMAC-SHA256 context with the given key
func NewHMACSHA256(key []byte) *HMACSHA256 {
	h := &HMACSHA256{}

	// keys longer than the block size are hashed first
	var rkey [64]byte
	if len(key) <= 64 {
		copy(rkey[:], key)
	} else {
		sum := sha256simd.Sum256(key)
		copy(rkey[:32], sum[:])
	}

	h.outer = SHA256{hasher: sha256simd.New()}
	for i := range rkey {
		rkey[i] ^= 0x5c
	}
	h.outer.Write(rkey[:])

	h.inner = SHA256{hasher: sha256simd.New()}
	for i := range rkey {
		rkey[i] ^= 0x5c ^ 0x36
	}
	h.inner.Write(rkey[:])

	memclear(unsafe.Pointer(&rkey), unsafe.Sizeof(rkey))
	return h
}

// Write writes data to the inner hash
func (h *HMACSHA256) Write(data []byte) {
	h.inner.Write(data)
}

// Finalize finalizes the HMAC and writes the result to out32 (must be 32 bytes)
func (h *HMACSHA256) Finalize(out32 []byte) {
	if len(out32) != 32 {
		panic("output buffer must be 32 bytes")
	}

	var temp [32]byte
	h.inner.Finalize(temp[:])
	h.outer.Write(temp[:])
	h.outer.Finalize(out32)

	memclear(unsafe.Pointer(&temp), unsafe.Sizeof(temp))
}

// RFC6979HMACSHA256 is the HMAC-DRBG of RFC 6979 section 3.2, used to
// derive deterministic nonces
type RFC6979HMACSHA256 struct {
	v     [32]byte
	k     [32]byte
	retry bool
}

// hmacUpdate sets dst = HMAC_key(parts...)
func hmacUpdate(dst *[32]byte, key []byte, parts ...[]byte) {
	h := NewHMACSHA256(key)
	for _, p := range parts {
		h.Write(p)
	}
	h.Finalize(dst[:])
}

// NewRFC6979HMACSHA256 initializes a new RFC6979 HMAC-SHA256 context
func NewRFC6979HMACSHA256(key []byte) *RFC6979HMACSHA256 {
	rng := &RFC6979HMACSHA256{}
	for i := range rng.v {
		rng.v[i] = 0x01
	}

	// K = HMAC_K(V || 0x00 || key), V = HMAC_K(V)
	hmacUpdate(&rng.k, rng.k[:], rng.v[:], []byte{0x00}, key)
	hmacUpdate(&rng.v, rng.k[:], rng.v[:])

	// K = HMAC_K(V || 0x01 || key), V = HMAC_K(V)
	hmacUpdate(&rng.k, rng.k[:], rng.v[:], []byte{0x01}, key)
	hmacUpdate(&rng.v, rng.k[:], rng.v[:])

	return rng
}

// Generate fills out with generator output
func (rng *RFC6979HMACSHA256) Generate(out []byte) {
	if rng.retry {
		hmacUpdate(&rng.k, rng.k[:], rng.v[:], []byte{0x00})
		hmacUpdate(&rng.v, rng.k[:], rng.v[:])
	}

	for len(out) > 0 {
		hmacUpdate(&rng.v, rng.k[:], rng.v[:])
		n := copy(out, rng.v[:])
		out = out[n:]
	}

	rng.retry = true
}

// Clear clears the RFC6979 context
func (rng *RFC6979HMACSHA256) Clear() {
	memclear(unsafe.Pointer(rng), unsafe.Sizeof(*rng))
}

// TaggedHash computes SHA256(SHA256(tag) || SHA256(tag) || data)
func TaggedHash(tag []byte, data []byte) [32]byte {
	tagHash := sha256simd.Sum256(tag)

	h := sha256simd.New()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	h.Write(data)

	var result [32]byte
	copy(result[:], h.Sum(nil))
	return result
}

// HashToScalar hashes data under a domain separation tag to a scalar. Two
// tagged hashes, with a trailing 0x00 and 0x01 byte respectively, are
// concatenated and reduced modulo l, so the bias is below 2^-259.
func HashToScalar(tag []byte, data []byte) Scalar {
	buf := make([]byte, len(data)+1)
	copy(buf, data)

	var wide [64]byte
	lo := TaggedHash(tag, buf)
	buf[len(data)] = 0x01
	hi := TaggedHash(tag, buf)
	copy(wide[:32], lo[:])
	copy(wide[32:], hi[:])

	return FromBytesWide(&wide)
}

// NonceScalar derives a deterministic nonce from a secret key and a
// message with the RFC 6979 generator. 64 bytes of output are reduced
// modulo l, so no rejection loop is needed.
func NonceScalar(key, msg []byte) Scalar {
	seed := make([]byte, 0, len(key)+len(msg))
	seed = append(seed, key...)
	seed = append(seed, msg...)

	rng := NewRFC6979HMACSHA256(seed)
	var wide [64]byte
	rng.Generate(wide[:])
	rng.Clear()
	if len(seed) > 0 {
		memclear(unsafe.Pointer(&seed[0]), uintptr(len(seed)))
	}

	k := FromBytesWide(&wide)
	memclear(unsafe.Pointer(&wide), unsafe.Sizeof(wide))
	return k
}

// memclear clears memory to prevent leaking sensitive information
func memclear(ptr unsafe.Pointer, n uintptr) {
	for i := uintptr(0); i < n; i++ {
		*(*byte)(unsafe.Pointer(uintptr(ptr) + i)) = 0
	}
}
