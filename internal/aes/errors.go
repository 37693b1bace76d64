package aes

import "errors"

var (
	// ErrInvalidKeySize is returned for keys that are not 16, 24 or 32 bytes long.
	ErrInvalidKeySize = errors.New("aes: invalid key size")
	// ErrInvalidBlockSize is returned when a block, IV or counter is not exactly BlockSize bytes.
	ErrInvalidBlockSize = errors.New("aes: invalid block size")
)
