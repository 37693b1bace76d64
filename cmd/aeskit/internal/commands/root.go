package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the aeskit command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aeskit",
		Short: "AES block modes and test vectors",
		Long: `aeskit runs the AES engine from the command line.
It encrypts and decrypts text in ECB, CBC, CFB, OFB and CTR mode and
generates, validates and self-checks NIST style test vectors.`,
		SilenceUsage: true,
	}
	InitCipherCommands(rootCmd)
	InitVectorCommands(rootCmd)
	return rootCmd
}
