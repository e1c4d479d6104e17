package version

import "fmt"

// These variables are populated by the Go linker (LDFLAGS) at build time.
var (
	Version    = "dev"     // Default value if not built with LDFLAGS
	CommitHash = "unknown" // Default value
	BuildDate  = "unknown" // Default value
)

// UserAgent is the User-Agent sent with every leaderboard request.
func UserAgent() string {
	return "podium/" + Version
}

// String is the --version banner.
func String() string {
	return fmt.Sprintf("podium %s (commit %s, built %s)", Version, CommitHash, BuildDate)
}
