package version

const (
	// PicoSemVer is the canonical semantic version of the picocrypto library.
	PicoSemVer = "0.3.0"
)

// GitCommitHash uses git rev-parse HEAD to find commit hash which is helpful
// for the engineering team when working with the CLI.
// It is set at build time via ldflags.
var GitCommitHash = ""
