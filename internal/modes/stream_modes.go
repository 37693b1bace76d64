package modes

import "encoding/binary"

func (c *Crypter) encryptCFB(src []byte, p params) ([]byte, error) {
	out := make([]byte, len(src))
	prev := p.iv[:]
	var ks [BlockSize]byte
	for i := 0; i < numBlocks(len(src)); i++ {
		in, dst := block(src, i), block(out, i)
		c.b.Encrypt(ks[:], prev)
		xorBytes(dst, in, ks[:])
		p.trace.add("Chunk", i, field("Plain", in), field("Keystream", ks[:]), field("Cipher", dst))
		prev = dst
	}
	return out, nil
}

// decryptCFB feeds back ciphertext, which is all known upfront.
func (c *Crypter) decryptCFB(src []byte, p params) []byte {
	out := make([]byte, len(src))
	forEachBlock(numBlocks(len(src)), p.parallel, func(i int) {
		in, dst := block(src, i), block(out, i)
		prev := p.iv[:]
		if i > 0 {
			prev = block(src, i-1)
		}
		var ks [BlockSize]byte
		c.b.Encrypt(ks[:], prev)
		xorBytes(dst, in, ks[:])
		p.trace.add("Chunk", i, field("Cipher", in), field("Keystream", ks[:]), field("Plain", dst))
	})
	return out
}

// ofb is its own inverse; the keystream never depends on the data.
func (c *Crypter) ofb(src []byte, p params, inLabel, outLabel string) []byte {
	out := make([]byte, len(src))
	ks := p.iv
	for i := 0; i < numBlocks(len(src)); i++ {
		in, dst := block(src, i), block(out, i)
		c.b.Encrypt(ks[:], ks[:])
		xorBytes(dst, in, ks[:])
		p.trace.add("Chunk", i, field(inLabel, in), field("Keystream", ks[:]), field(outLabel, dst))
	}
	return out
}

// ctr is its own inverse. In parallel each block derives counter+i on its own.
func (c *Crypter) ctr(src []byte, p params) []byte {
	out := make([]byte, len(src))
	n := numBlocks(len(src))
	if p.parallel {
		forEachBlock(n, true, func(i int) {
			ctr := p.counter
			addCounter(&ctr, uint64(i))
			var ks [BlockSize]byte
			c.b.Encrypt(ks[:], ctr[:])
			xorBytes(block(out, i), block(src, i), ks[:])
		})
		return out
	}

	ctr := p.counter
	var ks [BlockSize]byte
	for i := 0; i < n; i++ {
		in, dst := block(src, i), block(out, i)
		c.b.Encrypt(ks[:], ctr[:])
		xorBytes(dst, in, ks[:])
		p.trace.add("Chunk", i, field("Counter", ctr[:]), field("Keystream", ks[:]), field("Output", dst))
		incrementCounter(&ctr)
	}
	return out
}

// addCounter adds n to the big-endian 128-bit counter, wrapping on overflow.
func addCounter(ctr *[BlockSize]byte, n uint64) {
	lo := binary.BigEndian.Uint64(ctr[8:])
	sum := lo + n
	binary.BigEndian.PutUint64(ctr[8:], sum)
	if sum < lo {
		hi := binary.BigEndian.Uint64(ctr[:8])
		binary.BigEndian.PutUint64(ctr[:8], hi+1)
	}
}

// incrementCounter adds one to the counter, carrying from the last byte leftward.
func incrementCounter(ctr *[BlockSize]byte) {
	for i := BlockSize - 1; i >= 0; i-- {
		ctr[i]++
		if ctr[i] != 0 {
			return
		}
	}
}
