package aes

var (
	sbox    [256]byte
	invSbox [256]byte

	// rcon[i] is x^(i-1) in GF(2^8); index 0 is unused.
	rcon [11]byte

	// MixColumns multipliers, filled once from gfMul.
	mul2, mul3, mul9, mul11, mul13, mul14 [256]byte
)

func init() {
	initSbox()

	rcon[1] = 0x01
	for i := 2; i < len(rcon); i++ {
		rcon[i] = xtime(rcon[i-1])
	}

	for i := 0; i < 256; i++ {
		b := byte(i)
		mul2[i] = gfMul(b, 2)
		mul3[i] = gfMul(b, 3)
		mul9[i] = gfMul(b, 9)
		mul11[i] = gfMul(b, 11)
		mul13[i] = gfMul(b, 13)
		mul14[i] = gfMul(b, 14)
	}
}

// initSbox walks the multiplicative group with generator 3, keeping p and its
// inverse q in lockstep, and applies the affine transform to each inverse.
func initSbox() {
	p, q := byte(1), byte(1)
	for {
		p ^= xtime(p)

		q ^= q << 1
		q ^= q << 2
		q ^= q << 4
		if q&0x80 != 0 {
			q ^= 0x09
		}

		sbox[p] = q ^ rotl8(q, 1) ^ rotl8(q, 2) ^ rotl8(q, 3) ^ rotl8(q, 4) ^ 0x63
		if p == 1 {
			break
		}
	}
	// zero has no inverse; its image is the affine constant.
	sbox[0] = 0x63

	for i := 0; i < 256; i++ {
		invSbox[sbox[i]] = byte(i)
	}
}
