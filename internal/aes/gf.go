package aes

// poly is the low byte of the AES reduction polynomial x^8 + x^4 + x^3 + x + 1 (0x11B).
const poly = 0x1b

// xtime multiplies b by x in GF(2^8).
func xtime(b byte) byte {
	hi := b & 0x80
	b <<= 1
	if hi != 0 {
		b ^= poly
	}
	return b
}

// gfMul multiplies a and b in GF(2^8) using shift and conditional XOR.
func gfMul(a, b byte) byte {
	var p byte
	for b != 0 {
		if b&1 != 0 {
			p ^= a
		}
		a = xtime(a)
		b >>= 1
	}
	return p
}

func rotl8(b byte, n uint) byte {
	return b<<n | b>>(8-n)
}
