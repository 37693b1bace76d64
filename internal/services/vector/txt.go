package vector

import (
	"fmt"
	"strings"
)

// ToTXT formats the vector in the NIST .rsp style read back by ParseFile.
func (v TestVector) ToTXT(includeExpected bool) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("# %s %s %s %d\n\n", v.Algorithm, v.Mode, v.TestMode, v.KeyBits))

	b.WriteString("[ENCRYPT]\n\n")
	for _, r := range v.Encrypt {
		writeRecord(&b, r, "PLAINTEXT", r.Plaintext, "CIPHERTEXT", r.Ciphertext, includeExpected)
	}
	b.WriteString("[DECRYPT]\n\n")
	for _, r := range v.Decrypt {
		writeRecord(&b, r, "CIPHERTEXT", r.Ciphertext, "PLAINTEXT", r.Plaintext, includeExpected)
	}
	return b.String()
}

func writeRecord(b *strings.Builder, r Record, inLabel, in, outLabel, out string, includeExpected bool) {
	b.WriteString(fmt.Sprintf("COUNT = %d\n", r.Count))
	b.WriteString("KEY = " + strings.ToLower(r.KeyHex) + "\n")
	if strings.TrimSpace(r.IVHex) != "" {
		b.WriteString("IV = " + strings.ToLower(r.IVHex) + "\n")
	}
	b.WriteString(inLabel + " = " + strings.ToLower(in) + "\n")
	if includeExpected && strings.TrimSpace(out) != "" {
		b.WriteString(outLabel + " = " + strings.ToLower(out) + "\n")
	}
	b.WriteString("\n")
}
