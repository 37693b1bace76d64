// Package cipherapi maps a text-level cipher request (hex key, encoded input,
// mode name) onto the mode layer and renders the result.
package cipherapi

import (
	"errors"
	"fmt"
	"strings"

	"aeskit/internal/aes"
	"aeskit/internal/encoding"
	"aeskit/internal/modes"
)

var ErrUnknownOperation = errors.New("unknown operation")

const (
	OpEncrypt = "encrypt"
	OpDecrypt = "decrypt"
)

// Request is the wire form of one cipher call.
type Request struct {
	Operation     string            `json:"operation"`
	Mode          string            `json:"mode"`
	InputEncoding encoding.Encoding `json:"inputEncoding"`
	Padding       bool              `json:"padding"`
	Text          string            `json:"text"`
	KeyHex        string            `json:"keyHex"`
	IVHex         string            `json:"ivHex"`
	CounterHex    string            `json:"counterHex"`
}

// Response carries the output in every encoding plus the parameters actually used.
type Response struct {
	Output       encoding.Rendered `json:"output"`
	EncodingUsed encoding.Encoding `json:"encodingUsed"`
	AutoPadded   bool              `json:"autoPadded"`
	IVUsed       *string           `json:"ivUsed,omitempty"`
	CounterUsed  *string           `json:"counterUsed,omitempty"`
	Steps        []modes.Step      `json:"steps"`
}

// Options tune Run without changing its results.
type Options struct {
	Parallel bool
	NoTrace  bool
}

// Run executes req.
//
// Encryption in ECB and CBC always pads, whatever req.Padding says, and
// AutoPadded reports whether the input was unaligned. Decryption honours
// req.Padding and fails if the padding is malformed. With the default utf8
// input encoding, decrypt input is sniffed for hex or base64 first.
func Run(req Request, o Options) (Response, error) {
	var res Response

	op := strings.ToLower(strings.TrimSpace(req.Operation))
	if op != OpEncrypt && op != OpDecrypt {
		return res, fmt.Errorf("%w %q", ErrUnknownOperation, req.Operation)
	}
	mode, err := modes.ParseMode(req.Mode)
	if err != nil {
		return res, err
	}

	key, err := encoding.FromHex(req.KeyHex)
	if err != nil {
		return res, fmt.Errorf("key: %w", err)
	}
	switch len(key) {
	case 16, 24, 32:
	default:
		return res, fmt.Errorf("%w: key must be 128, 192, or 256 bits (16/24/32 bytes hex)", aes.ErrInvalidKeySize)
	}

	iv, err := blockOrZero("IV", req.IVHex, mode.UsesIV())
	if err != nil {
		return res, err
	}
	counter, err := blockOrZero("counter", req.CounterHex, mode.UsesCounter())
	if err != nil {
		return res, err
	}

	enc := req.InputEncoding
	if enc == "" {
		enc = encoding.UTF8
	}
	if op == OpDecrypt && enc == encoding.UTF8 {
		if detected, ok := encoding.Detect(req.Text); ok {
			enc = detected
		}
	}
	data, err := encoding.Decode(req.Text, enc)
	if err != nil {
		return res, err
	}

	opts := modes.Options{IV: iv, Counter: counter, Parallel: o.Parallel}
	var trace modes.Trace
	if !o.NoTrace {
		opts.Trace = &trace
	}

	var out []byte
	if op == OpEncrypt {
		if mode.Padded() {
			res.AutoPadded = len(data)%modes.BlockSize != 0
		}
		out, err = modes.Encrypt(mode, key, data, opts)
	} else {
		if mode.Padded() && len(data)%modes.BlockSize != 0 {
			return res, fmt.Errorf("%w: ciphertext length must be a multiple of 16 bytes for this mode", modes.ErrMisalignedLength)
		}
		opts.NoPadding = !req.Padding
		out, err = modes.Decrypt(mode, key, data, opts)
	}
	if err != nil {
		return res, err
	}

	res.Output = encoding.Render(out)
	res.EncodingUsed = enc
	res.Steps = trace.Steps
	if res.Steps == nil {
		res.Steps = []modes.Step{}
	}
	switch {
	case mode.UsesIV():
		s := encoding.ToHex(iv)
		res.IVUsed = &s
	case mode.UsesCounter():
		s := encoding.ToHex(counter)
		res.CounterUsed = &s
	}
	return res, nil
}

// blockOrZero decodes h, which must be valid hex even when the mode ignores
// it. The length is only enforced when used is set; an unused field always
// yields a zero block.
func blockOrZero(label, h string, used bool) ([]byte, error) {
	if strings.TrimSpace(h) == "" {
		return make([]byte, modes.BlockSize), nil
	}
	b, err := encoding.FromHex(h)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	if !used {
		return make([]byte, modes.BlockSize), nil
	}
	if len(b) != modes.BlockSize {
		return nil, fmt.Errorf("%w: %s must be %d bytes", aes.ErrInvalidBlockSize, label, modes.BlockSize)
	}
	return b, nil
}
