package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/picops/picocrypto/version"
)

// VersionCmd ...
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version info",
	Run: func(_ *cobra.Command, _ []string) {
		picoVersion := version.PicoSemVer
		if version.GitCommitHash != "" {
			picoVersion += "+" + version.GitCommitHash
		}
		fmt.Println(picoVersion)
	},
}
