package blockcipher

import (
	"crypto/rand"
	"errors"
	"testing"

	"aeskit/internal/aes"
	"aeskit/internal/modes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	a, err := Lookup(" camellia ")
	require.NoError(t, err)
	assert.Equal(t, "CAMELLIA", a.Name)

	_, err = Lookup("HIGHT")
	assert.True(t, errors.Is(err, ErrUnsupportedAlgorithm))

	assert.Equal(t, []string{"AES", "ARIA", "CAMELLIA", "LEA", "SEED"}, Names())
}

func TestEveryEngineDrivesEveryMode(t *testing.T) {
	data := []byte("a message that spans more than two blocks of input")
	for _, name := range Names() {
		a, err := Lookup(name)
		require.NoError(t, err)
		for _, bits := range a.KeyBits {
			key := make([]byte, bits/8)
			_, _ = rand.Read(key)

			b, err := a.New(key)
			require.NoError(t, err)
			assert.Equal(t, 16, b.BlockSize())

			c, err := modes.NewCrypter(b)
			require.NoError(t, err)
			for _, m := range modes.All {
				ct, err := c.Encrypt(m, data, modes.Options{})
				require.NoError(t, err, "%s-%d %v", name, bits, m)
				pt, err := c.Decrypt(m, ct, modes.Options{})
				require.NoError(t, err, "%s-%d %v", name, bits, m)
				assert.Equal(t, data, pt)
			}
		}
	}
}

func TestKeySizeChecked(t *testing.T) {
	_, err := New("SEED", make([]byte, 32))
	assert.True(t, errors.Is(err, aes.ErrInvalidKeySize))

	_, err = New("AES", make([]byte, 10))
	assert.True(t, errors.Is(err, aes.ErrInvalidKeySize))
}
