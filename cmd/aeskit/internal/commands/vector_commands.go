package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"aeskit/internal/services/vector"

	"github.com/spf13/cobra"
)

func checkCmd(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range vector.SelfTest() {
		status := "PASS"
		if !(r.OK && r.RoundTrip && r.Stdlib) {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(out, "%-4s %s (known answer=%t round trip=%t crypto/aes=%t)\n", r.Mode, status, r.OK, r.RoundTrip, r.Stdlib)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d modes failed", failed, len(vector.SP80038A))
	}
	return nil
}

func generateCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	alg, _ := flags.GetString("algorithm")
	mode, _ := flags.GetString("mode")
	testMode, _ := flags.GetString("test-mode")
	variant, _ := flags.GetString("kat-variant")
	keyBits, _ := flags.GetInt("key-bits")
	count, _ := flags.GetInt("count")
	noExpected, _ := flags.GetBool("no-expected")

	vec, err := vector.Generate(alg, mode, testMode, vector.GenParams{
		KeyBits:         keyBits,
		Count:           count,
		IncludeExpected: !noExpected,
		KatVariant:      variant,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), vec.ToTXT(!noExpected))
	return err
}

func validateCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	path, _ := flags.GetString("file")
	alg, _ := flags.GetString("algorithm")
	mode, _ := flags.GetString("mode")
	testMode, _ := flags.GetString("test-mode")

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return err
	}
	defer f.Close()

	recs, err := vector.ParseFile(f)
	if err != nil {
		return err
	}
	tm, err := vector.ParseTestMode(testMode)
	if err != nil {
		return err
	}
	res, err := vector.Validate(alg, mode, recs, tm == vector.MCT)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, m := range res.Failures {
		if m.Error != "" {
			fmt.Fprintf(out, "FAIL %s COUNT=%d error=%s\n", m.Direction, m.Count, m.Error)
			continue
		}
		fmt.Fprintf(out, "FAIL %s COUNT=%d expected=%s got=%s\n", m.Direction, m.Count, m.Expected, m.Got)
	}
	fmt.Fprintf(out, "%d/%d passed\n", res.Passed, res.Total)
	if res.Failed > 0 {
		return errors.New("validation failed")
	}
	return nil
}

// InitVectorCommands registers the vectors command group.
func InitVectorCommands(rootCmd *cobra.Command) {
	vectorsCmd := &cobra.Command{
		Use:   "vectors",
		Short: "Generate, validate and self-check test vectors",
	}

	vectorsCmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Run the SP 800-38A known-answer self-test",
		Args:  cobra.NoArgs,
		RunE:  checkCmd,
	})

	gen := &cobra.Command{
		Use:   "generate",
		Short: "Print KAT, MMT or MCT records in .rsp format",
		Args:  cobra.NoArgs,
		RunE:  generateCmd,
	}
	gen.Flags().String("algorithm", "AES", "Block cipher: AES, ARIA, CAMELLIA, LEA or SEED")
	gen.Flags().String("mode", "CBC", "Block mode")
	gen.Flags().String("test-mode", "KAT", "KAT, MMT or MCT")
	gen.Flags().String("kat-variant", "", "GFSBOX, KEYSBOX, VARKEY or VARTXT")
	gen.Flags().Int("key-bits", 128, "Key size in bits")
	gen.Flags().Int("count", 10, "Records per direction")
	gen.Flags().Bool("no-expected", false, "Omit expected outputs")
	vectorsCmd.AddCommand(gen)

	val := &cobra.Command{
		Use:   "validate",
		Short: "Recompute every record of an .rsp file",
		Args:  cobra.NoArgs,
		RunE:  validateCmd,
	}
	val.Flags().String("file", "", "Path to the .rsp file")
	val.Flags().String("algorithm", "AES", "Block cipher")
	val.Flags().String("mode", "CBC", "Block mode")
	val.Flags().String("test-mode", "KAT", "KAT, MMT or MCT")
	_ = val.MarkFlagRequired("file")
	vectorsCmd.AddCommand(val)

	rootCmd.AddCommand(vectorsCmd)
}
