package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/picops/picocrypto/crypto/ed25519"
	"github.com/picops/picocrypto/crypto/secp256k1"
)

var keyType string

// KeygenCmd generates a fresh keypair and prints it as hex.
var KeygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new private key",
	RunE: func(_ *cobra.Command, _ []string) error {
		switch keyType {
		case "secp256k1":
			privKey := secp256k1.GenPrivKey()
			addr, err := secp256k1.PrivKeyToAddress(privKey)
			if err != nil {
				return err
			}
			fmt.Printf("private: %x\n", privKey.Bytes())
			fmt.Printf("public:  %x\n", privKey.PubKey().Bytes())
			fmt.Printf("address: %s\n", addr)
		case "ed25519":
			privKey := ed25519.GenPrivKey()
			fmt.Printf("seed:   %x\n", privKey.Bytes())
			fmt.Printf("public: %x\n", privKey.PubKey().Bytes())
		default:
			return fmt.Errorf("unknown key type %q (want secp256k1 or ed25519)", keyType)
		}
		logger.Debug("generated key", "type", keyType)
		return nil
	},
}

func init() {
	KeygenCmd.Flags().StringVar(&keyType, "type", "secp256k1", "key type (secp256k1|ed25519)")
}

// decodeHexArg strips an optional 0x prefix and decodes the argument.
func decodeHexArg(arg string) ([]byte, error) {
	if len(arg) >= 2 && arg[:2] == "0x" {
		arg = arg[2:]
	}
	b, err := hex.DecodeString(arg)
	if err != nil {
		return nil, fmt.Errorf("bad hex argument: %w", err)
	}
	return b, nil
}
