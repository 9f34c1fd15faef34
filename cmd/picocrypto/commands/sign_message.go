package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/picops/picocrypto/crypto/bip137"
)

// SignMessageCmd signs a message in the signed-message format.
var SignMessageCmd = &cobra.Command{
	Use:   "sign-message <privkey-hex> <message>",
	Short: "Sign a message (base64 header||r||s signature)",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		privKey, err := decodeHexArg(args[0])
		if err != nil {
			return err
		}
		sig, err := bip137.SignMessage(privKey, []byte(args[1]))
		if err != nil {
			return err
		}
		fmt.Println(string(sig))
		return nil
	},
}
