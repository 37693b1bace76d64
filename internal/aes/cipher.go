package aes

import "crypto/cipher"

// NewCipher expands key and returns the schedule as a cipher.Block, so it can
// be driven by this module's mode layer or by crypto/cipher.
func NewCipher(key []byte) (cipher.Block, error) {
	ks, err := Expand(key)
	if err != nil {
		return nil, err
	}
	return ks, nil
}

// BlockSize implements cipher.Block.
func (ks *KeySchedule) BlockSize() int { return BlockSize }

// Encrypt implements cipher.Block. Like crypto/aes it panics on short buffers.
func (ks *KeySchedule) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("aes: input not full block")
	}
	if len(dst) < BlockSize {
		panic("aes: output not full block")
	}
	ks.encrypt(dst, src)
}

// Decrypt implements cipher.Block.
func (ks *KeySchedule) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("aes: input not full block")
	}
	if len(dst) < BlockSize {
		panic("aes: output not full block")
	}
	ks.decrypt(dst, src)
}
