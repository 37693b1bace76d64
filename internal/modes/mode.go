// Package modes implements the ECB, CBC, CFB, OFB and CTR modes of operation
// from NIST SP 800-38A over any cipher.Block with a 16-byte block, AES by default.
package modes

import (
	"crypto/cipher"
	"errors"
	"fmt"
	"strings"

	"aeskit/internal/aes"
)

// BlockSize is the only block size the mode layer accepts.
const BlockSize = aes.BlockSize

// ErrMisalignedLength is returned when ECB or CBC input is not a multiple of
// BlockSize and padding is disabled.
var ErrMisalignedLength = errors.New("modes: input length is not a multiple of the block size")

// ErrUnknownMode is returned by ParseMode and by a Mode outside the defined set.
var ErrUnknownMode = errors.New("modes: unknown mode")

// Mode selects one of the five supported modes of operation.
type Mode int

const (
	ECB Mode = iota
	CBC
	CFB
	OFB
	CTR
)

// All lists every mode in declaration order.
var All = []Mode{ECB, CBC, CFB, OFB, CTR}

func (m Mode) String() string {
	switch m {
	case ECB:
		return "ECB"
	case CBC:
		return "CBC"
	case CFB:
		return "CFB"
	case OFB:
		return "OFB"
	case CTR:
		return "CTR"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts a mode name in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ECB":
		return ECB, nil
	case "CBC":
		return CBC, nil
	case "CFB":
		return CFB, nil
	case "OFB":
		return OFB, nil
	case "CTR":
		return CTR, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownMode, s)
}

// Padded reports whether the mode works on whole blocks and so uses padding.
func (m Mode) Padded() bool { return m == ECB || m == CBC }

// UsesIV reports whether the mode is seeded by Options.IV.
func (m Mode) UsesIV() bool { return m == CBC || m == CFB || m == OFB }

// UsesCounter reports whether the mode is seeded by Options.Counter.
func (m Mode) UsesCounter() bool { return m == CTR }

// Crypter runs the modes over one block cipher. It holds no mutable state
// and is safe for concurrent use.
type Crypter struct {
	b cipher.Block
}

// NewCrypter wraps b. A *aes.KeySchedule can be passed directly to reuse one
// expanded key across calls.
func NewCrypter(b cipher.Block) (*Crypter, error) {
	if b == nil {
		return nil, errors.New("modes: nil block cipher")
	}
	if b.BlockSize() != BlockSize {
		return nil, fmt.Errorf("%w: cipher block size is %d", aes.ErrInvalidBlockSize, b.BlockSize())
	}
	return &Crypter{b: b}, nil
}

// Encrypt runs mode m forward over plaintext.
func (c *Crypter) Encrypt(m Mode, plaintext []byte, opts Options) ([]byte, error) {
	p, err := opts.resolve(m)
	if err != nil {
		return nil, err
	}
	switch m {
	case ECB:
		return c.encryptECB(plaintext, p)
	case CBC:
		return c.encryptCBC(plaintext, p)
	case CFB:
		return c.encryptCFB(plaintext, p)
	case OFB:
		return c.ofb(plaintext, p, "Plain", "Cipher"), nil
	case CTR:
		return c.ctr(plaintext, p), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownMode, m)
}

// Decrypt runs mode m backward over ciphertext.
func (c *Crypter) Decrypt(m Mode, ciphertext []byte, opts Options) ([]byte, error) {
	p, err := opts.resolve(m)
	if err != nil {
		return nil, err
	}
	switch m {
	case ECB:
		return c.decryptECB(ciphertext, p)
	case CBC:
		return c.decryptCBC(ciphertext, p)
	case CFB:
		return c.decryptCFB(ciphertext, p), nil
	case OFB:
		return c.ofb(ciphertext, p, "Cipher", "Plain"), nil
	case CTR:
		return c.ctr(ciphertext, p), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownMode, m)
}

// Encrypt expands key and encrypts plaintext under mode m.
func Encrypt(m Mode, key, plaintext []byte, opts Options) ([]byte, error) {
	c, err := forKey(key)
	if err != nil {
		return nil, err
	}
	return c.Encrypt(m, plaintext, opts)
}

// Decrypt expands key and decrypts ciphertext under mode m.
func Decrypt(m Mode, key, ciphertext []byte, opts Options) ([]byte, error) {
	c, err := forKey(key)
	if err != nil {
		return nil, err
	}
	return c.Decrypt(m, ciphertext, opts)
}

func EncryptECB(key, plaintext []byte, opts Options) ([]byte, error) {
	return Encrypt(ECB, key, plaintext, opts)
}

func DecryptECB(key, ciphertext []byte, opts Options) ([]byte, error) {
	return Decrypt(ECB, key, ciphertext, opts)
}

func EncryptCBC(key, plaintext []byte, opts Options) ([]byte, error) {
	return Encrypt(CBC, key, plaintext, opts)
}

func DecryptCBC(key, ciphertext []byte, opts Options) ([]byte, error) {
	return Decrypt(CBC, key, ciphertext, opts)
}

func EncryptCFB(key, plaintext []byte, opts Options) ([]byte, error) {
	return Encrypt(CFB, key, plaintext, opts)
}

func DecryptCFB(key, ciphertext []byte, opts Options) ([]byte, error) {
	return Decrypt(CFB, key, ciphertext, opts)
}

func EncryptOFB(key, plaintext []byte, opts Options) ([]byte, error) {
	return Encrypt(OFB, key, plaintext, opts)
}

func DecryptOFB(key, ciphertext []byte, opts Options) ([]byte, error) {
	return Decrypt(OFB, key, ciphertext, opts)
}

func EncryptCTR(key, plaintext []byte, opts Options) ([]byte, error) {
	return Encrypt(CTR, key, plaintext, opts)
}

func DecryptCTR(key, ciphertext []byte, opts Options) ([]byte, error) {
	return Decrypt(CTR, key, ciphertext, opts)
}

func forKey(key []byte) (*Crypter, error) {
	ks, err := aes.Expand(key)
	if err != nil {
		return nil, err
	}
	return &Crypter{b: ks}, nil
}
