package cipherapi

import (
	"errors"
	"testing"

	"aeskit/internal/aes"
	"aeskit/internal/encoding"
	"aeskit/internal/modes"
	"aeskit/internal/padding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const key = "2b7e151628aed2a6abf7158809cf4f3c"

func TestEncryptThenDecrypt(t *testing.T) {
	for _, m := range []string{"ECB", "CBC", "CFB", "OFB", "CTR"} {
		t.Run(m, func(t *testing.T) {
			enc, err := Run(Request{Operation: "encrypt", Mode: m, Text: "hello, block modes", KeyHex: key, Padding: true}, Options{})
			require.NoError(t, err)
			assert.Equal(t, encoding.UTF8, enc.EncodingUsed)
			assert.NotEmpty(t, enc.Steps)

			dec, err := Run(Request{Operation: "decrypt", Mode: m, Text: enc.Output.Hex, KeyHex: key, Padding: true}, Options{Parallel: true})
			require.NoError(t, err)
			assert.Equal(t, encoding.Hex, dec.EncodingUsed)
			assert.Equal(t, "hello, block modes", dec.Output.UTF8)

			dec64, err := Run(Request{Operation: "decrypt", Mode: m, Text: enc.Output.Base64, KeyHex: key, Padding: true}, Options{NoTrace: true})
			require.NoError(t, err)
			assert.Equal(t, dec.Output.Hex, dec64.Output.Hex)
			assert.Empty(t, dec64.Steps)
		})
	}
}

func TestAutoPadAndParametersUsed(t *testing.T) {
	res, err := Run(Request{Operation: "encrypt", Mode: "ECB", Text: "short", KeyHex: key}, Options{})
	require.NoError(t, err)
	assert.True(t, res.AutoPadded)
	assert.Len(t, res.Output.Hex, 32)
	assert.Nil(t, res.IVUsed)
	assert.Nil(t, res.CounterUsed)

	res, err = Run(Request{Operation: "encrypt", Mode: "CBC", InputEncoding: encoding.Hex, Text: "00112233445566778899aabbccddeeff", KeyHex: key}, Options{})
	require.NoError(t, err)
	assert.False(t, res.AutoPadded)
	assert.Len(t, res.Output.Hex, 64, "aligned input still gets a full padding block")
	require.NotNil(t, res.IVUsed)
	assert.Equal(t, "00000000000000000000000000000000", *res.IVUsed)

	res, err = Run(Request{Operation: "encrypt", Mode: "CTR", Text: "abc", KeyHex: key, CounterHex: "f0f1f2f3f4f5f6f7f8f9fafbfcfdfeff"}, Options{})
	require.NoError(t, err)
	require.NotNil(t, res.CounterUsed)
	assert.Equal(t, "f0f1f2f3f4f5f6f7f8f9fafbfcfdfeff", *res.CounterUsed)
	assert.Len(t, res.Output.Hex, 6)
}

func TestVectorThroughRequestLayer(t *testing.T) {
	res, err := Run(Request{
		Operation:     "encrypt",
		Mode:          "cbc",
		InputEncoding: encoding.Hex,
		Text:          "6bc1bee22e409f96e93d7e117393172a",
		KeyHex:        key,
		IVHex:         "000102030405060708090a0b0c0d0e0f",
	}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "7649abac8119b246cee98e9b12e9197d", res.Output.Hex[:32])
}

func TestRunErrors(t *testing.T) {
	cases := []struct {
		name string
		req  Request
		want error
	}{
		{"Operation", Request{Operation: "sign", Mode: "ECB", KeyHex: key}, ErrUnknownOperation},
		{"Mode", Request{Operation: "encrypt", Mode: "GCM", KeyHex: key}, modes.ErrUnknownMode},
		{"KeySize", Request{Operation: "encrypt", Mode: "ECB", KeyHex: "010203"}, aes.ErrInvalidKeySize},
		{"KeyHex", Request{Operation: "encrypt", Mode: "ECB", KeyHex: "xyz"}, encoding.ErrInvalidHex},
		{"IV", Request{Operation: "encrypt", Mode: "CBC", KeyHex: key, IVHex: "0001"}, aes.ErrInvalidBlockSize},
		{"Counter", Request{Operation: "encrypt", Mode: "CTR", KeyHex: key, CounterHex: "00"}, aes.ErrInvalidBlockSize},
		{"Misaligned", Request{Operation: "decrypt", Mode: "CBC", KeyHex: key, Text: "00112233"}, modes.ErrMisalignedLength},
		{"Encoding", Request{Operation: "encrypt", Mode: "ECB", KeyHex: key, InputEncoding: "rot13"}, encoding.ErrUnknownEncoding},
		{"Padding", Request{Operation: "decrypt", Mode: "ECB", KeyHex: key, Padding: true, Text: "3ad77bb40d7a3660a89ecaf32466ef97"}, padding.ErrInvalidPadding},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Run(tc.req, Options{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestDecryptWithoutPaddingKeepsRawBlocks(t *testing.T) {
	res, err := Run(Request{Operation: "decrypt", Mode: "ECB", KeyHex: key, Text: "3ad77bb40d7a3660a89ecaf32466ef97"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "6bc1bee22e409f96e93d7e117393172a", res.Output.Hex)
}

func TestUnusedFieldsIgnoreLength(t *testing.T) {
	base, err := Run(Request{Operation: "encrypt", Mode: "CTR", Text: "hi", KeyHex: key}, Options{})
	require.NoError(t, err)

	stale, err := Run(Request{Operation: "encrypt", Mode: "CTR", Text: "hi", KeyHex: key, IVHex: "0001"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, base.Output, stale.Output)
	assert.Nil(t, stale.IVUsed)
	require.NotNil(t, stale.CounterUsed)

	_, err = Run(Request{Operation: "encrypt", Mode: "CBC", Text: "hi", KeyHex: key, CounterHex: "00"}, Options{})
	assert.NoError(t, err)
	_, err = Run(Request{Operation: "encrypt", Mode: "ECB", Text: "hi", KeyHex: key, IVHex: "00", CounterHex: "ff"}, Options{})
	assert.NoError(t, err)

	_, err = Run(Request{Operation: "encrypt", Mode: "CTR", Text: "hi", KeyHex: key, IVHex: "zz"}, Options{})
	assert.ErrorIs(t, err, encoding.ErrInvalidHex)
}
