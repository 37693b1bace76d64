// Package encoding converts between raw bytes and the text forms used at the
// edges of the service: UTF-8, hexadecimal and base64.
package encoding

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Encoding names a text representation of bytes.
type Encoding string

const (
	UTF8   Encoding = "utf8"
	Hex    Encoding = "hex"
	Base64 Encoding = "base64"
)

var (
	ErrInvalidHex      = errors.New("invalid hex string")
	ErrInvalidBase64   = errors.New("invalid base64 string")
	ErrUnknownEncoding = errors.New("unknown encoding")
)

var (
	hexRe    = regexp.MustCompile(`^[0-9a-fA-F\s]+$`)
	base64Re = regexp.MustCompile(`^(?:[A-Za-z0-9+/]{4})*(?:[A-Za-z0-9+/]{2}==|[A-Za-z0-9+/]{3}=)?$`)
)

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// IsLikelyHex reports whether s is an even number of hex digits once whitespace is removed.
func IsLikelyHex(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || !hexRe.MatchString(s) {
		return false
	}
	return len(stripSpace(s))%2 == 0
}

// FromHex decodes s, ignoring whitespace and case.
func FromHex(s string) ([]byte, error) {
	s = strings.ToLower(stripSpace(s))
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: length must be even", ErrInvalidHex)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return b, nil
}

func ToHex(b []byte) string { return hex.EncodeToString(b) }

// FromBase64 decodes standard padded base64.
func FromBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.Strict().DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}
	return b, nil
}

func ToBase64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

func FromUTF8(s string) []byte { return []byte(s) }

// ToUTF8 decodes b as UTF-8, replacing invalid sequences with U+FFFD.
func ToUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), "�")
}

// Detect guesses whether text is hex or base64. It returns false when neither
// fits, in which case callers fall back to UTF-8.
func Detect(text string) (Encoding, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return "", false
	}
	if IsLikelyHex(s) {
		return Hex, true
	}
	if len(s)%4 == 0 && base64Re.MatchString(s) {
		return Base64, true
	}
	return "", false
}

// Decode turns text into bytes according to enc.
func Decode(text string, enc Encoding) ([]byte, error) {
	switch enc {
	case UTF8:
		return FromUTF8(text), nil
	case Hex:
		return FromHex(text)
	case Base64:
		return FromBase64(text)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownEncoding, enc)
}

// Rendered holds every text form of one byte string.
type Rendered struct {
	Hex    string `json:"hex"`
	Base64 string `json:"base64"`
	UTF8   string `json:"utf8"`
}

// Render returns all three forms. Trailing NUL bytes are trimmed from the
// UTF-8 form only, so zero-filled output stays readable.
func Render(b []byte) Rendered {
	return Rendered{
		Hex:    ToHex(b),
		Base64: ToBase64(b),
		UTF8:   ToUTF8(bytes.TrimRight(b, "\x00")),
	}
}
