package aes

import "fmt"

// state is the 4x4 AES state in column-major order: byte r of column c sits at r+4c.
type state [BlockSize]byte

// EncryptBlock encrypts exactly one 16-byte block and returns a new slice.
func EncryptBlock(block []byte, ks *KeySchedule) ([]byte, error) {
	if len(block) != BlockSize {
		return nil, fmt.Errorf("%w: block is %d bytes", ErrInvalidBlockSize, len(block))
	}
	out := make([]byte, BlockSize)
	ks.encrypt(out, block)
	return out, nil
}

// DecryptBlock is the inverse of EncryptBlock.
func DecryptBlock(block []byte, ks *KeySchedule) ([]byte, error) {
	if len(block) != BlockSize {
		return nil, fmt.Errorf("%w: block is %d bytes", ErrInvalidBlockSize, len(block))
	}
	out := make([]byte, BlockSize)
	ks.decrypt(out, block)
	return out, nil
}

func (ks *KeySchedule) encrypt(dst, src []byte) {
	var s state
	copy(s[:], src)

	s.addRoundKey(&ks.keys[0])
	for r := 1; r < ks.rounds; r++ {
		s.subBytes()
		s.shiftRows()
		s.mixColumns()
		s.addRoundKey(&ks.keys[r])
	}
	s.subBytes()
	s.shiftRows()
	s.addRoundKey(&ks.keys[ks.rounds])

	copy(dst, s[:])
}

func (ks *KeySchedule) decrypt(dst, src []byte) {
	var s state
	copy(s[:], src)

	s.addRoundKey(&ks.keys[ks.rounds])
	for r := ks.rounds - 1; r >= 1; r-- {
		s.invShiftRows()
		s.invSubBytes()
		s.addRoundKey(&ks.keys[r])
		s.invMixColumns()
	}
	s.invShiftRows()
	s.invSubBytes()
	s.addRoundKey(&ks.keys[0])

	copy(dst, s[:])
}

func (s *state) addRoundKey(rk *[BlockSize]byte) {
	for i := range s {
		s[i] ^= rk[i]
	}
}

func (s *state) subBytes() {
	for i := range s {
		s[i] = sbox[s[i]]
	}
}

func (s *state) invSubBytes() {
	for i := range s {
		s[i] = invSbox[s[i]]
	}
}

// shiftRows rotates row r left by r positions.
func (s *state) shiftRows() {
	t := *s
	for r := 1; r < 4; r++ {
		for c := 0; c < 4; c++ {
			s[r+4*c] = t[r+4*((c+r)%4)]
		}
	}
}

func (s *state) invShiftRows() {
	t := *s
	for r := 1; r < 4; r++ {
		for c := 0; c < 4; c++ {
			s[r+4*((c+r)%4)] = t[r+4*c]
		}
	}
}

func (s *state) mixColumns() {
	for c := 0; c < 16; c += 4 {
		a0, a1, a2, a3 := s[c], s[c+1], s[c+2], s[c+3]
		s[c] = mul2[a0] ^ mul3[a1] ^ a2 ^ a3
		s[c+1] = a0 ^ mul2[a1] ^ mul3[a2] ^ a3
		s[c+2] = a0 ^ a1 ^ mul2[a2] ^ mul3[a3]
		s[c+3] = mul3[a0] ^ a1 ^ a2 ^ mul2[a3]
	}
}

func (s *state) invMixColumns() {
	for c := 0; c < 16; c += 4 {
		a0, a1, a2, a3 := s[c], s[c+1], s[c+2], s[c+3]
		s[c] = mul14[a0] ^ mul11[a1] ^ mul13[a2] ^ mul9[a3]
		s[c+1] = mul9[a0] ^ mul14[a1] ^ mul11[a2] ^ mul13[a3]
		s[c+2] = mul13[a0] ^ mul9[a1] ^ mul14[a2] ^ mul11[a3]
		s[c+3] = mul11[a0] ^ mul13[a1] ^ mul9[a2] ^ mul14[a3]
	}
}
