package vector

import (
	"encoding/hex"
	"strings"
	"testing"

	"aeskit/internal/modes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelfTest(t *testing.T) {
	results := SelfTest()
	require.Len(t, results, 5)
	for _, r := range results {
		assert.True(t, r.OK, r.Mode)
		assert.True(t, r.RoundTrip, r.Mode)
		assert.True(t, r.Stdlib, r.Mode)
		assert.Equal(t, r.Expected, r.Got)
	}
}

func TestCrossCheck(t *testing.T) {
	key := randBytes(24)
	iv := randBytes(16)
	for _, m := range modes.All {
		n := 48
		if !m.Padded() {
			n = 45
		}
		ok, err := CrossCheck(m, key, iv, randBytes(n))
		require.NoError(t, err)
		assert.True(t, ok, m.String())
	}

	_, err := CrossCheck(modes.CBC, key, iv, randBytes(5))
	assert.ErrorIs(t, err, modes.ErrMisalignedLength)
}

func TestGenerateThenValidate(t *testing.T) {
	for _, alg := range []string{"AES", "CAMELLIA", "SEED"} {
		for _, m := range modes.All {
			for _, tm := range []string{"KAT", "MMT", "MCT"} {
				vec, err := Generate(alg, m.String(), tm, GenParams{KeyBits: 128, Count: 3, IncludeExpected: true})
				require.NoError(t, err)
				require.Len(t, vec.Encrypt, 3)
				require.Len(t, vec.Decrypt, 3)

				recs, err := ParseFile(strings.NewReader(vec.ToTXT(true)))
				require.NoError(t, err)
				require.Len(t, recs, 6)

				res, err := Validate(alg, m.String(), recs, tm == "MCT")
				require.NoError(t, err)
				assert.Equal(t, 6, res.Passed, "%s %v %s: %+v", alg, m, tm, res.Failures)
				assert.Zero(t, res.Failed)
			}
		}
	}
}

func TestGenerateShapes(t *testing.T) {
	vec, err := Generate("aes", "ecb", "kat", GenParams{KeyBits: 256, Count: 4, KatVariant: VarKey, IncludeExpected: true})
	require.NoError(t, err)
	assert.Equal(t, "AES", vec.Algorithm)
	assert.Equal(t, "ECB", vec.Mode)
	assert.Equal(t, "KAT", vec.TestMode)
	assert.Equal(t, "c0"+strings.Repeat("0", 62), vec.Encrypt[1].KeyHex)
	assert.Empty(t, vec.Encrypt[0].IVHex)
	assert.Equal(t, strings.Repeat("0", 32), vec.Encrypt[0].Plaintext)

	vec, err = Generate("AES", "CBC", "MMT", GenParams{KeyBits: 128, Count: 3})
	require.NoError(t, err)
	assert.Len(t, vec.Encrypt[2].Plaintext, 3*32)
	assert.Empty(t, vec.Encrypt[2].Ciphertext, "expected values are omitted by default")

	vec, err = Generate("AES", "ECB", "KAT", GenParams{KeyBits: 128})
	require.NoError(t, err)
	assert.Len(t, vec.Encrypt, 10)
}

func TestGenerateErrors(t *testing.T) {
	_, err := Generate("AES", "CBC", "KAT", GenParams{KeyBits: 100})
	assert.Error(t, err)
	_, err = Generate("AES", "GCM", "KAT", GenParams{KeyBits: 128})
	assert.ErrorIs(t, err, modes.ErrUnknownMode)
	_, err = Generate("AES", "CBC", "AFT", GenParams{KeyBits: 128})
	assert.Error(t, err)
	_, err = Generate("AES", "CBC", "KAT", GenParams{KeyBits: 128, KatVariant: "nope"})
	assert.Error(t, err)
	_, err = Generate("DES", "CBC", "KAT", GenParams{KeyBits: 64})
	assert.Error(t, err)
}

const sampleRSP = `# CBC vectors from SP 800-38A F.2.1 / F.2.2
[ENCRYPT]

COUNT = 0
KEY = 2b7e151628aed2a6abf7158809cf4f3c
IV = 000102030405060708090a0b0c0d0e0f
PLAINTEXT = 6bc1bee22e409f96e93d7e117393172a
CIPHERTEXT = 7649abac8119b246cee98e9b12e9197d

[DECRYPT]

COUNT = 0
KEY = 2b7e151628aed2a6abf7158809cf4f3c
IV = 000102030405060708090a0b0c0d0e0f
CIPHERTEXT = 7649abac8119b246cee98e9b12e9197d
PLAINTEXT = 6bc1bee22e409f96e93d7e117393172b
`

func TestValidateReportsMismatch(t *testing.T) {
	recs, err := ParseFile(strings.NewReader(sampleRSP))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "ENCRYPT", recs[0].Direction)
	assert.Equal(t, "DECRYPT", recs[1].Direction)

	res, err := Validate("AES", "CBC", recs, false)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Passed)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "DECRYPT", res.Failures[0].Direction)
	assert.Equal(t, "6bc1bee22e409f96e93d7e117393172a", res.Failures[0].Got)
}

func TestParseFileErrors(t *testing.T) {
	_, err := ParseFile(strings.NewReader("[ENCRYPT]\nCOUNT = 0\nKEY = zz\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")

	_, err = ParseFile(strings.NewReader("COUNT = x\n"))
	assert.Error(t, err)
}

func TestValidateUnknownSection(t *testing.T) {
	recs := []Entry{{Count: 0, Direction: "SIGN", Key: make([]byte, 16)}}
	_, err := Validate("AES", "ECB", recs, false)
	assert.Error(t, err)
}

func TestLeadingOnes(t *testing.T) {
	assert.Equal(t, "e000", hex.EncodeToString(leadingOnes(2, 3)))
	assert.Equal(t, "ffff", hex.EncodeToString(leadingOnes(2, 16)))
}

func TestValidateShortRecords(t *testing.T) {
	const short = `[ENCRYPT]
COUNT = 0
KEY = 2b7e151628aed2a6abf7158809cf4f3c
IV = 000102030405060708090a0b0c0d0e0f
PLAINTEXT = 6b
CIPHERTEXT = 3b

COUNT = 1
KEY = 2b7e151628aed2a6abf7158809cf4f3c
IV = 000102030405060708090a0b0c0d0e0f
CIPHERTEXT = 00
`
	recs, err := ParseFile(strings.NewReader(short))
	require.NoError(t, err)
	require.Len(t, recs, 2)

	for _, m := range []string{"CBC", "CFB", "OFB"} {
		t.Run(m, func(t *testing.T) {
			require.NotPanics(t, func() {
				res, err := Validate("AES", m, recs, false)
				require.NoError(t, err)
				assert.Equal(t, 2, res.Total)
			})
		})
	}

	res, err := Validate("AES", "CFB", recs, false)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Passed, "%+v", res.Failures)

	res, err = Validate("AES", "CFB", recs, true)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Failed)
	for _, f := range res.Failures {
		assert.Contains(t, f.Error, "Monte Carlo")
	}
}

func TestValidateKeepsGoingAfterBadRecord(t *testing.T) {
	const mixed = `[ENCRYPT]
COUNT = 0
KEY = 2b7e151628aed2a6abf7158809cf4f3c
PLAINTEXT = 6bc1bee22e
CIPHERTEXT = 00

COUNT = 1
KEY = 2b7e15
PLAINTEXT = 6bc1bee22e409f96e93d7e117393172a
CIPHERTEXT = 3ad77bb40d7a3660a89ecaf32466ef97

COUNT = 2
KEY = 2b7e151628aed2a6abf7158809cf4f3c
PLAINTEXT = 6bc1bee22e409f96e93d7e117393172a
CIPHERTEXT = 3ad77bb40d7a3660a89ecaf32466ef97
`
	recs, err := ParseFile(strings.NewReader(mixed))
	require.NoError(t, err)

	res, err := Validate("AES", "ECB", recs, false)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.Passed)
	assert.Equal(t, 2, res.Failed)
	require.Len(t, res.Failures, 2)
	assert.Equal(t, 0, res.Failures[0].Count)
	assert.NotEmpty(t, res.Failures[0].Error)
	assert.Equal(t, 1, res.Failures[1].Count)
	assert.NotEmpty(t, res.Failures[1].Error)
}
