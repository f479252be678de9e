package c25519

// Bits returns the binary digits of the stored value, least significant
// first, one digit per slot.
func (s Scalar) Bits() [256]int8 {
	var r [256]int8
	b := s.Bytes()
	for i := 0; i < 256; i++ {
		r[i] = int8((b[i>>3] >> (i & 7)) & 1)
	}
	return r
}

// Slide returns the sliding-window signed-digit expansion of s, used by
// windowed scalar multiplication with a table of odd multiples 1P..15P.
//
// Every digit is zero or odd with magnitude at most 15, and
// sum(r[i] * 2^i) equals the canonical value of s. Nonzero digits are at
// least 5 positions apart. Slide branches on the digits of s and must only
// be used with public scalars.
func (s Scalar) Slide() [256]int8 {
	r := s.Reduce().Bits()

	for i := 0; i < 256; i++ {
		if r[i] == 0 {
			continue
		}
		for b := 1; b < 7 && i+b < 256; b++ {
			if r[i+b] == 0 {
				continue
			}
			if r[i]+(r[i+b]<<b) <= 15 {
				r[i] += r[i+b] << b
				r[i+b] = 0
			} else if r[i]-(r[i+b]<<b) >= -15 {
				r[i] -= r[i+b] << b
				// carry into the first zero digit above i+b
				for k := i + b; k < 256; k++ {
					if r[k] == 0 {
						r[k] = 1
						break
					}
					r[k] = 0
				}
			} else {
				break
			}
		}
	}

	return r
}
