// Package blockcipher maps algorithm names to 128-bit block ciphers that the
// mode layer can drive. AES is this module's own engine; the rest come from
// third-party implementations.
package blockcipher

import (
	"crypto/cipher"
	"errors"
	"fmt"
	"slices"
	"strings"

	"aeskit/internal/aes"

	"github.com/RyuaNerin/go-krypto/aria"
	"github.com/RyuaNerin/go-krypto/lea"
	goseed "github.com/RyuaNerin/go-krypto/seed"
	"github.com/aead/camellia"
)

var ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

// Algorithm describes one registered cipher.
type Algorithm struct {
	Name    string
	KeyBits []int
	new     func(key []byte) (cipher.Block, error)
}

var registry = []Algorithm{
	{Name: "AES", KeyBits: []int{128, 192, 256}, new: aes.NewCipher},
	{Name: "ARIA", KeyBits: []int{128, 192, 256}, new: aria.NewCipher},
	{Name: "CAMELLIA", KeyBits: []int{128, 192, 256}, new: camellia.NewCipher},
	{Name: "LEA", KeyBits: []int{128, 192, 256}, new: lea.NewCipher},
	{Name: "SEED", KeyBits: []int{128}, new: goseed.NewCipher},
}

// Lookup finds an algorithm by case-insensitive name.
func Lookup(name string) (Algorithm, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, a := range registry {
		if a.Name == name {
			return a, nil
		}
	}
	return Algorithm{}, fmt.Errorf("%w %q", ErrUnsupportedAlgorithm, name)
}

// Names lists the registered algorithms.
func Names() []string {
	out := make([]string, 0, len(registry))
	for _, a := range registry {
		out = append(out, a.Name)
	}
	return out
}

// SupportsKeyBits reports whether bits is a valid key length for a.
func (a Algorithm) SupportsKeyBits(bits int) bool {
	return slices.Contains(a.KeyBits, bits)
}

// New builds the cipher for key after checking its length.
func (a Algorithm) New(key []byte) (cipher.Block, error) {
	if !a.SupportsKeyBits(len(key) * 8) {
		return nil, fmt.Errorf("%w: %s key is %d bytes", aes.ErrInvalidKeySize, a.Name, len(key))
	}
	return a.new(key)
}

// New is shorthand for Lookup followed by Algorithm.New.
func New(name string, key []byte) (cipher.Block, error) {
	a, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return a.New(key)
}
