package modes

import (
	"fmt"

	"aeskit/internal/padding"
)

// prepare pads src for encryption or checks that it is already aligned.
func prepare(src []byte, pad bool) ([]byte, error) {
	if pad {
		return padding.Pad(src, BlockSize), nil
	}
	if len(src)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrMisalignedLength, len(src))
	}
	return src, nil
}

// finish strips padding from decrypted output when the call asked for it.
func finish(out []byte, pad bool) ([]byte, error) {
	if !pad {
		return out, nil
	}
	return padding.Unpad(out, BlockSize)
}

func checkAligned(src []byte) error {
	if len(src)%BlockSize != 0 {
		return fmt.Errorf("%w: got %d bytes", ErrMisalignedLength, len(src))
	}
	return nil
}

func (c *Crypter) encryptECB(src []byte, p params) ([]byte, error) {
	data, err := prepare(src, p.pad)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	forEachBlock(len(data)/BlockSize, p.parallel, func(i int) {
		in, dst := block(data, i), block(out, i)
		c.b.Encrypt(dst, in)
		p.trace.add("Block", i, field("Input", in), field("Cipher", dst))
	})
	return out, nil
}

func (c *Crypter) decryptECB(src []byte, p params) ([]byte, error) {
	if err := checkAligned(src); err != nil {
		return nil, err
	}
	out := make([]byte, len(src))
	forEachBlock(len(src)/BlockSize, p.parallel, func(i int) {
		in, dst := block(src, i), block(out, i)
		c.b.Decrypt(dst, in)
		p.trace.add("Block", i, field("Cipher", in), field("Plain", dst))
	})
	return finish(out, p.pad)
}

func (c *Crypter) encryptCBC(src []byte, p params) ([]byte, error) {
	data, err := prepare(src, p.pad)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	prev := p.iv[:]
	var mixed [BlockSize]byte
	for i := 0; i < len(data)/BlockSize; i++ {
		in, dst := block(data, i), block(out, i)
		xorBytes(mixed[:], in, prev)
		c.b.Encrypt(dst, mixed[:])
		p.trace.add("Block", i, field("Plain", in), field("Prev/IV", prev), field("XOR", mixed[:]), field("Cipher", dst))
		prev = dst
	}
	return out, nil
}

// decryptCBC only depends on ciphertext blocks, so every block can be
// decrypted independently.
func (c *Crypter) decryptCBC(src []byte, p params) ([]byte, error) {
	if err := checkAligned(src); err != nil {
		return nil, err
	}
	out := make([]byte, len(src))
	forEachBlock(len(src)/BlockSize, p.parallel, func(i int) {
		in, dst := block(src, i), block(out, i)
		prev := p.iv[:]
		if i > 0 {
			prev = block(src, i-1)
		}
		var dec [BlockSize]byte
		c.b.Decrypt(dec[:], in)
		xorBytes(dst, dec[:], prev)
		p.trace.add("Block", i, field("Cipher", in), field("Prev/IV", prev), field("Block Dec", dec[:]), field("Plain", dst))
	})
	return finish(out, p.pad)
}
