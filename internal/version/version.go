package version

var (
	// Version is the semantic version (injected at build time).
	Version = "dev"
	// Commit is the git commit SHA (injected at build time).
	Commit = "unknown"
)

// Info returns formatted version information.
func Info() string {
	return "bucketsync " + Version + " (" + Commit + ")"
}
