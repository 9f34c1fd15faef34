package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/picops/picocrypto/crypto/keccak"
)

var hashHexInput bool

// HashCmd prints the Keccak-256 digest of its argument.
var HashCmd = &cobra.Command{
	Use:   "hash <data>",
	Short: "Keccak-256 hash of the given data",
	Long:  "Keccak-256 hash of the given data. The argument is taken as UTF-8 text unless --hex is set.",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		data := []byte(args[0])
		if hashHexInput {
			var err error
			data, err = decodeHexArg(args[0])
			if err != nil {
				return err
			}
		}
		fmt.Printf("%x\n", keccak.Sum(data))
		return nil
	},
}

func init() {
	HashCmd.Flags().BoolVar(&hashHexInput, "hex", false, "treat the argument as hex-encoded bytes")
}
