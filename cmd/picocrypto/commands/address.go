package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/picops/picocrypto/crypto/secp256k1"
)

// AddressCmd derives the Ethereum address for a secp256k1 private key.
var AddressCmd = &cobra.Command{
	Use:   "address <privkey-hex>",
	Short: "Derive the Ethereum address of a secp256k1 private key",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		privKey, err := decodeHexArg(args[0])
		if err != nil {
			return err
		}
		addr, err := secp256k1.PrivKeyToAddress(privKey)
		if err != nil {
			return err
		}
		fmt.Println(addr)
		return nil
	},
}
