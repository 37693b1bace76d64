package vector

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"aeskit/internal/blockcipher"
	"aeskit/internal/modes"
)

type TestMode string

const (
	KAT TestMode = "KAT"
	MMT TestMode = "MMT"
	MCT TestMode = "MCT"
)

// KAT variants, after the AESAVS known-answer tables.
const (
	GFSbox  = "GFSBOX"
	KeySbox = "KEYSBOX"
	VarKey  = "VARKEY"
	VarTxt  = "VARTXT"
)

// mctIterations is the inner loop length of a Monte Carlo record.
const mctIterations = 1000

type GenParams struct {
	KeyBits         int
	Count           int
	IncludeExpected bool
	// Only used for KAT. Allowed: GFSBOX | KEYSBOX | VARKEY | VARTXT (default GFSBOX)
	KatVariant string
}

type Record struct {
	Count      int    `json:"count"`
	KeyHex     string `json:"key"`
	IVHex      string `json:"iv,omitempty"` // empty for ECB
	Plaintext  string `json:"plaintext"`
	Ciphertext string `json:"ciphertext"`
}

type TestVector struct {
	Algorithm string   `json:"algorithm"`
	Mode      string   `json:"mode"`
	TestMode  string   `json:"test_mode"`
	KeyBits   int      `json:"key_bits"`
	Encrypt   []Record `json:"encrypt"`
	Decrypt   []Record `json:"decrypt"`
}

func randBytes(n int) []byte {
	b := make([]byte, n)
	_, _ = io.ReadFull(rand.Reader, b)
	return b
}

// leadingOnes returns an n-byte value whose first bits bits are set.
func leadingOnes(n, bits int) []byte {
	b := make([]byte, n)
	for i := 0; i < bits; i++ {
		b[i/8] |= 0x80 >> (i % 8)
	}
	return b
}

func ParseTestMode(s string) (TestMode, error) {
	switch TestMode(strings.ToUpper(strings.TrimSpace(s))) {
	case KAT:
		return KAT, nil
	case MMT:
		return MMT, nil
	case MCT:
		return MCT, nil
	}
	return "", fmt.Errorf("unsupported test_mode %q", s)
}

// Generate builds encrypt and decrypt records for alg under mode. Expected
// outputs are computed with this module's mode layer and are only included
// when p.IncludeExpected is set.
func Generate(alg, mode, test string, p GenParams) (TestVector, error) {
	if p.Count <= 0 {
		p.Count = 10
	}
	a, err := blockcipher.Lookup(alg)
	if err != nil {
		return TestVector{}, err
	}
	if !a.SupportsKeyBits(p.KeyBits) {
		return TestVector{}, fmt.Errorf("key_bits must be one of %v for %s", a.KeyBits, a.Name)
	}
	m, err := modes.ParseMode(mode)
	if err != nil {
		return TestVector{}, err
	}
	tmode, err := ParseTestMode(test)
	if err != nil {
		return TestVector{}, err
	}

	out := TestVector{Algorithm: a.Name, Mode: m.String(), TestMode: string(tmode), KeyBits: p.KeyBits}
	keyLen := p.KeyBits / 8

	for i := 0; i < p.Count; i++ {
		var key, iv, pt, ct []byte
		switch tmode {
		case KAT:
			key, iv, pt, err = katInputs(p.KatVariant, keyLen, i)
			if err != nil {
				return TestVector{}, err
			}
			ct = randBytes(modes.BlockSize)
		case MMT:
			// record i carries i+1 blocks
			key, iv = randBytes(keyLen), randBytes(modes.BlockSize)
			pt, ct = randBytes((i+1)*modes.BlockSize), randBytes((i+1)*modes.BlockSize)
		case MCT:
			key, iv = randBytes(keyLen), randBytes(modes.BlockSize)
			pt, ct = randBytes(modes.BlockSize), randBytes(modes.BlockSize)
		}

		c, err := newCrypter(a, key)
		if err != nil {
			return TestVector{}, err
		}
		encOut, err := run(c, m, true, tmode == MCT, iv, pt)
		if err != nil {
			return TestVector{}, err
		}
		decOut, err := run(c, m, false, tmode == MCT, iv, ct)
		if err != nil {
			return TestVector{}, err
		}

		ivHex := ""
		if m != modes.ECB {
			ivHex = hex.EncodeToString(iv)
		}
		enc := Record{Count: i, KeyHex: hex.EncodeToString(key), IVHex: ivHex, Plaintext: hex.EncodeToString(pt)}
		dec := Record{Count: i, KeyHex: enc.KeyHex, IVHex: ivHex, Ciphertext: hex.EncodeToString(ct)}
		if p.IncludeExpected {
			enc.Ciphertext = hex.EncodeToString(encOut)
			dec.Plaintext = hex.EncodeToString(decOut)
		}
		out.Encrypt = append(out.Encrypt, enc)
		out.Decrypt = append(out.Decrypt, dec)
	}
	return out, nil
}

func katInputs(variant string, keyLen, i int) (key, iv, pt []byte, err error) {
	iv = make([]byte, modes.BlockSize)
	switch strings.ToUpper(strings.TrimSpace(variant)) {
	case "", GFSbox:
		return make([]byte, keyLen), iv, randBytes(modes.BlockSize), nil
	case KeySbox:
		return randBytes(keyLen), iv, make([]byte, modes.BlockSize), nil
	case VarKey:
		return leadingOnes(keyLen, min(i+1, keyLen*8)), iv, make([]byte, modes.BlockSize), nil
	case VarTxt:
		return make([]byte, keyLen), iv, leadingOnes(modes.BlockSize, min(i+1, modes.BlockSize*8)), nil
	}
	return nil, nil, nil, errors.New("kat variant must be one of GFSBOX, KEYSBOX, VARKEY, VARTXT")
}

func newCrypter(a blockcipher.Algorithm, key []byte) (*modes.Crypter, error) {
	b, err := a.New(key)
	if err != nil {
		return nil, err
	}
	return modes.NewCrypter(b)
}

// run computes one record's expected output. A Monte Carlo record repeats
// the operation mctIterations times, feeding each output back as the next
// input and, for IV modes, the last ciphertext block as the next IV.
func run(c *modes.Crypter, m modes.Mode, encrypt, monte bool, iv, in []byte) ([]byte, error) {
	op := c.Decrypt
	if encrypt {
		op = c.Encrypt
	}
	n := 1
	if monte {
		n = mctIterations
	}

	x := append([]byte(nil), in...)
	curIV := append([]byte(nil), iv...)
	for j := 0; j < n; j++ {
		y, err := op(m, x, modes.Options{IV: curIV, Counter: curIV, NoPadding: true})
		if err != nil {
			return nil, err
		}
		if monte && m.UsesIV() {
			if len(x) < modes.BlockSize || len(y) < modes.BlockSize {
				return nil, fmt.Errorf("%w: Monte Carlo record needs at least one block", modes.ErrMisalignedLength)
			}
			if encrypt {
				curIV = y[len(y)-modes.BlockSize:]
			} else {
				curIV = x[len(x)-modes.BlockSize:]
			}
		}
		x = y
	}
	return x, nil
}
