package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

const key = "2b7e151628aed2a6abf7158809cf4f3c"

func TestEncryptDecrypt(t *testing.T) {
	out, err := run(t, "", "encrypt", "--mode", "ECB", "--key", key, "--in-encoding", "hex", "6bc1bee22e409f96e93d7e117393172a")
	require.NoError(t, err)
	assert.Contains(t, out, "hex:    3ad77bb40d7a3660a89ecaf32466ef97")

	out, err = run(t, "attack at dawn\n", "encrypt", "--mode", "CTR", "--key", key)
	require.NoError(t, err)
	var ct string
	for _, l := range strings.Split(out, "\n") {
		if strings.HasPrefix(l, "hex:") {
			ct = strings.TrimSpace(strings.TrimPrefix(l, "hex:"))
		}
	}
	require.Len(t, ct, 28)

	out, err = run(t, "", "decrypt", "--mode", "CTR", "--key", key, ct)
	require.NoError(t, err)
	assert.Contains(t, out, "utf8:   attack at dawn")
}

func TestEncryptTrace(t *testing.T) {
	out, err := run(t, "", "encrypt", "--mode", "CBC", "--key", key, "--trace", "hi")
	require.NoError(t, err)
	assert.Contains(t, out, "Block 1")
	assert.Contains(t, out, "Prev/IV")
	assert.Contains(t, out, "note: input was padded")
}

func TestEncryptErrors(t *testing.T) {
	_, err := run(t, "", "encrypt", "--mode", "CBC", "x")
	assert.Error(t, err, "key is required")

	_, err = run(t, "", "encrypt", "--mode", "XTS", "--key", key, "x")
	assert.Error(t, err)
}

func TestVectorsCheck(t *testing.T) {
	out, err := run(t, "", "vectors", "check")
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(out, "PASS"))
	assert.NotContains(t, out, "FAIL")
}

func TestVectorsGenerateValidate(t *testing.T) {
	out, err := run(t, "", "vectors", "generate", "--algorithm", "LEA", "--mode", "CFB", "--test-mode", "MCT", "--count", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "[ENCRYPT]")

	path := filepath.Join(t.TempDir(), "lea.rsp")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o600))

	res, err := run(t, "", "vectors", "validate", "--file", path, "--algorithm", "LEA", "--mode", "CFB", "--test-mode", "MCT")
	require.NoError(t, err)
	assert.Contains(t, res, "4/4 passed")

	res, err = run(t, "", "vectors", "validate", "--file", path, "--algorithm", "LEA", "--mode", "CBC", "--test-mode", "MCT")
	assert.Error(t, err)
	assert.Contains(t, res, "FAIL")
}
