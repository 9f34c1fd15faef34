package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/picops/picocrypto/libs/log"
)

var (
	logger    = log.NewNop()
	logFormat string
	logLevel  string
)

// RootCmd is the root command for the picocrypto CLI.
var RootCmd = &cobra.Command{
	Use:   "picocrypto",
	Short: "Keccak-256, secp256k1, Ed25519 and signed-message tooling",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logger, err = log.New(os.Stderr, log.Format(logFormat), level)
		return err
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&logFormat, "log_format", string(log.FormatPlain), "log format (plain|json)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log_level", "info", "log level (debug|info|error)")
}
