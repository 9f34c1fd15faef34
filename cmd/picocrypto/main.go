package main

import (
	"os"

	cmd "github.com/picops/picocrypto/cmd/picocrypto/commands"
)

func main() {
	rootCmd := cmd.RootCmd
	rootCmd.AddCommand(
		cmd.VersionCmd,
		cmd.KeygenCmd,
		cmd.AddressCmd,
		cmd.HashCmd,
		cmd.SignMessageCmd,
		cmd.VerifyMessageCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
