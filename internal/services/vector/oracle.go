package vector

import (
	"bytes"
	stdaes "crypto/aes"
	"crypto/cipher"
	"fmt"

	"aeskit/internal/modes"
)

// CrossCheck encrypts pt with both this module and crypto/aes and reports
// whether the outputs agree. ECB and CBC inputs must be block-aligned.
func CrossCheck(m modes.Mode, key, iv, pt []byte) (bool, error) {
	if iv == nil {
		iv = make([]byte, modes.BlockSize)
	}
	ours, err := modes.Encrypt(m, key, pt, modes.Options{IV: iv, Counter: iv, NoPadding: true})
	if err != nil {
		return false, err
	}

	block, err := stdaes.NewCipher(key)
	if err != nil {
		return false, err
	}
	ref := make([]byte, len(pt))
	switch m {
	case modes.ECB:
		for off := 0; off < len(pt); off += block.BlockSize() {
			block.Encrypt(ref[off:], pt[off:])
		}
	case modes.CBC:
		cipher.NewCBCEncrypter(block, iv).CryptBlocks(ref, pt)
	case modes.CFB:
		cipher.NewCFBEncrypter(block, iv).XORKeyStream(ref, pt)
	case modes.OFB:
		cipher.NewOFB(block, iv).XORKeyStream(ref, pt)
	case modes.CTR:
		cipher.NewCTR(block, iv).XORKeyStream(ref, pt)
	default:
		return false, fmt.Errorf("%w: %v", modes.ErrUnknownMode, m)
	}
	return bytes.Equal(ours, ref), nil
}
