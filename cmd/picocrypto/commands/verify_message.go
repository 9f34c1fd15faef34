package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/picops/picocrypto/crypto/bip137"
)

// VerifyMessageCmd checks a signed message against a public key.
var VerifyMessageCmd = &cobra.Command{
	Use:   "verify-message <pubkey-hex> <message> <signature-base64>",
	Short: "Verify a signed message",
	Args:  cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		pubKey, err := decodeHexArg(args[0])
		if err != nil {
			return err
		}
		if !bip137.VerifyMessage([]byte(args[1]), []byte(args[2]), pubKey) {
			logger.Error("signature rejected")
			return errors.New("invalid signature")
		}
		fmt.Println("signature OK")
		return nil
	},
}
