// Package padding implements zero-count block padding: between 1 and
// blockSize bytes are appended, all zero except the last, which holds the
// number of bytes appended.
//
// Unlike PKCS#7 the filler bytes must be zero, and Unpad rejects anything else.
package padding

import (
	"errors"
	"fmt"
)

// ErrInvalidPadding is returned by Unpad for malformed input.
var ErrInvalidPadding = errors.New("invalid padding")

// Pad returns a new slice holding data followed by its padding. The result
// length is always a positive multiple of blockSize. Pad panics if blockSize
// is outside 1..255, since the count must fit in one byte.
func Pad(data []byte, blockSize int) []byte {
	if blockSize < 1 || blockSize > 255 {
		panic(fmt.Sprintf("padding: block size %d out of range", blockSize))
	}
	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+n)
	copy(out, data)
	out[len(out)-1] = byte(n)
	return out
}

// Unpad strips zero-count padding. The returned slice shares storage with padded.
func Unpad(padded []byte, blockSize int) ([]byte, error) {
	if blockSize < 1 || blockSize > 255 {
		return nil, fmt.Errorf("%w: block size %d out of range", ErrInvalidPadding, blockSize)
	}
	if len(padded) == 0 || len(padded)%blockSize != 0 {
		return nil, fmt.Errorf("%w: length %d is not a positive multiple of %d", ErrInvalidPadding, len(padded), blockSize)
	}
	n := int(padded[len(padded)-1])
	if n == 0 || n > blockSize {
		return nil, fmt.Errorf("%w: length marker %d", ErrInvalidPadding, n)
	}
	for _, b := range padded[len(padded)-n : len(padded)-1] {
		if b != 0 {
			return nil, fmt.Errorf("%w: non-zero filler byte", ErrInvalidPadding)
		}
	}
	return padded[:len(padded)-n], nil
}
