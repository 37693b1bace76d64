package vector

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"aeskit/internal/blockcipher"
	"aeskit/internal/modes"
)

// Entry is one parsed record from a .rsp file.
type Entry struct {
	Count     int
	Direction string // ENCRYPT or DECRYPT
	Key       []byte
	IV        []byte
	PT        []byte
	CT        []byte
}

type Mismatch struct {
	Count     int    `json:"count"`
	Direction string `json:"direction"`
	Expected  string `json:"expected"`
	Got       string `json:"got"`
	// Error is set when the record could not be computed at all.
	Error string `json:"error,omitempty"`
}

type ValidationResult struct {
	Total    int        `json:"total"`
	Passed   int        `json:"passed"`
	Failed   int        `json:"failed"`
	Failures []Mismatch `json:"failures,omitempty"`
}

// ParseFile reads NIST .rsp style records: [ENCRYPT]/[DECRYPT] sections of
// COUNT, KEY, IV, PLAINTEXT and CIPHERTEXT lines. Blank lines and # comments
// are skipped; malformed values fail with their line number.
func ParseFile(r io.Reader) ([]Entry, error) {
	var recs []Entry
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	section := ""
	var cur Entry
	started := false

	flush := func() {
		if started {
			cur.Direction = section
			recs = append(recs, cur)
		}
		cur = Entry{}
		started = false
	}

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
			flush()
			section = strings.ToUpper(strings.Trim(text, "[]"))
			continue
		}
		k, v, ok := strings.Cut(text, "=")
		if !ok {
			continue
		}
		k = strings.ToUpper(strings.TrimSpace(k))
		v = strings.TrimSpace(v)

		var err error
		switch k {
		case "COUNT":
			flush()
			cur.Count, err = strconv.Atoi(v)
		case "KEY":
			cur.Key, err = hex.DecodeString(v)
		case "IV":
			cur.IV, err = hex.DecodeString(v)
		case "PLAINTEXT":
			cur.PT, err = hex.DecodeString(v)
		case "CIPHERTEXT":
			cur.CT, err = hex.DecodeString(v)
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, k, err)
		}
		started = true
	}
	flush()
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

// Validate recomputes every entry with this module's mode layer over alg and
// compares against the expected value in the file. With monte set, entries
// are treated as Monte Carlo records as produced by Generate. Records that
// cannot be computed (bad key or IV length, misaligned input) are counted as
// failures with Mismatch.Error set; only an unknown algorithm, mode or
// section aborts the run.
func Validate(alg, mode string, recs []Entry, monte bool) (ValidationResult, error) {
	res := ValidationResult{Total: len(recs)}
	a, err := blockcipher.Lookup(alg)
	if err != nil {
		return res, err
	}
	m, err := modes.ParseMode(mode)
	if err != nil {
		return res, err
	}

	for _, r := range recs {
		iv := r.IV
		if iv == nil {
			iv = make([]byte, modes.BlockSize)
		}

		var in, want []byte
		var encrypt bool
		switch r.Direction {
		case "ENCRYPT":
			in, want, encrypt = r.PT, r.CT, true
		case "DECRYPT":
			in, want = r.CT, r.PT
		default:
			return res, fmt.Errorf("unknown section/mode at COUNT=%d", r.Count)
		}

		c, err := newCrypter(a, r.Key)
		var got []byte
		if err == nil {
			got, err = run(c, m, encrypt, monte, iv, in)
		}
		if err != nil {
			res.Failed++
			res.Failures = append(res.Failures, Mismatch{
				Count:     r.Count,
				Direction: r.Direction,
				Expected:  hex.EncodeToString(want),
				Error:     err.Error(),
			})
			continue
		}
		if bytes.Equal(got, want) {
			res.Passed++
			continue
		}
		res.Failed++
		res.Failures = append(res.Failures, Mismatch{
			Count:     r.Count,
			Direction: r.Direction,
			Expected:  hex.EncodeToString(want),
			Got:       hex.EncodeToString(got),
		})
	}
	return res, nil
}
