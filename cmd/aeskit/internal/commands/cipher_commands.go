package commands

import (
	"fmt"
	"io"
	"strings"

	"aeskit/internal/cipherapi"
	"aeskit/internal/encoding"

	"github.com/spf13/cobra"
)

// cipherCmd returns the RunE for one operation. Text comes from the
// arguments, or stdin when there are none.
func cipherCmd(op string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if len(args) == 0 {
			b, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			text = strings.TrimRight(string(b), "\r\n")
		}

		flags := cmd.Flags()
		mode, _ := flags.GetString("mode")
		key, _ := flags.GetString("key")
		iv, _ := flags.GetString("iv")
		counter, _ := flags.GetString("counter")
		pad, _ := flags.GetBool("pad")
		inEnc, _ := flags.GetString("in-encoding")
		parallel, _ := flags.GetBool("parallel")
		trace, _ := flags.GetBool("trace")

		res, err := cipherapi.Run(cipherapi.Request{
			Operation:     op,
			Mode:          mode,
			InputEncoding: encoding.Encoding(inEnc),
			Padding:       pad,
			Text:          text,
			KeyHex:        key,
			IVHex:         iv,
			CounterHex:    counter,
		}, cipherapi.Options{Parallel: parallel, NoTrace: !trace})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if trace {
			for _, s := range res.Steps {
				fmt.Fprintln(out, s.Title)
				for _, f := range s.Fields {
					fmt.Fprintf(out, "  %-10s %s\n", f.Label, f.Value)
				}
			}
		}
		fmt.Fprintf(out, "hex:    %s\n", res.Output.Hex)
		fmt.Fprintf(out, "base64: %s\n", res.Output.Base64)
		fmt.Fprintf(out, "utf8:   %s\n", res.Output.UTF8)
		if res.AutoPadded {
			fmt.Fprintln(cmd.ErrOrStderr(), "note: input was padded to a whole block")
		}
		return nil
	}
}

// InitCipherCommands registers encrypt and decrypt.
func InitCipherCommands(rootCmd *cobra.Command) {
	for _, op := range []string{cipherapi.OpEncrypt, cipherapi.OpDecrypt} {
		c := &cobra.Command{
			Use:   op + " [text]",
			Short: strings.ToUpper(op[:1]) + op[1:] + " text with AES",
			RunE:  cipherCmd(op),
		}
		c.Flags().String("mode", "CBC", "Block mode: ECB, CBC, CFB, OFB or CTR")
		c.Flags().String("key", "", "Key as hex (16, 24 or 32 bytes)")
		c.Flags().String("iv", "", "IV as hex (defaults to zero)")
		c.Flags().String("counter", "", "Initial CTR counter block as hex (defaults to zero)")
		c.Flags().Bool("pad", true, "Strip padding after ECB/CBC decryption")
		c.Flags().String("in-encoding", "utf8", "Input encoding: utf8, hex or base64")
		c.Flags().Bool("parallel", false, "Process independent blocks concurrently")
		c.Flags().Bool("trace", false, "Print the per-block trace")
		_ = c.MarkFlagRequired("key")
		rootCmd.AddCommand(c)
	}
}
