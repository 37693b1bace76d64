package aes

import (
	"encoding/binary"
	"fmt"
)

// BlockSize is the AES block size in bytes.
const BlockSize = 16

// KeySchedule is the expanded form of one AES key: rounds+1 round keys of
// BlockSize bytes each. It is never modified after Expand returns, so a single
// schedule may be shared by any number of goroutines.
type KeySchedule struct {
	rounds int
	keys   [][BlockSize]byte
}

// Expand runs the Rijndael key expansion over a 16, 24 or 32 byte key.
func Expand(key []byte) (*KeySchedule, error) {
	nk := len(key) / 4
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: got %d bytes, want 16, 24 or 32", ErrInvalidKeySize, len(key))
	}
	rounds := nk + 6
	total := 4 * (rounds + 1)

	w := make([]uint32, total)
	for i := 0; i < nk; i++ {
		w[i] = binary.BigEndian.Uint32(key[4*i:])
	}
	for i := nk; i < total; i++ {
		t := w[i-1]
		switch {
		case i%nk == 0:
			t = subWord(rotWord(t)) ^ uint32(rcon[i/nk])<<24
		case nk > 6 && i%nk == 4:
			t = subWord(t)
		}
		w[i] = w[i-nk] ^ t
	}

	ks := &KeySchedule{rounds: rounds, keys: make([][BlockSize]byte, rounds+1)}
	for r := range ks.keys {
		for j := 0; j < 4; j++ {
			binary.BigEndian.PutUint32(ks.keys[r][4*j:], w[4*r+j])
		}
	}
	return ks, nil
}

// Rounds reports the number of cipher rounds: 10, 12 or 14.
func (ks *KeySchedule) Rounds() int { return ks.rounds }

// RoundKeys returns a copy of the round keys in generation order.
func (ks *KeySchedule) RoundKeys() [][]byte {
	out := make([][]byte, len(ks.keys))
	for i := range ks.keys {
		rk := make([]byte, BlockSize)
		copy(rk, ks.keys[i][:])
		out[i] = rk
	}
	return out
}

func rotWord(w uint32) uint32 {
	return w<<8 | w>>24
}

func subWord(w uint32) uint32 {
	return uint32(sbox[w>>24])<<24 |
		uint32(sbox[w>>16&0xff])<<16 |
		uint32(sbox[w>>8&0xff])<<8 |
		uint32(sbox[w&0xff])
}
