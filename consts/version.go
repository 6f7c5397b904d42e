package consts

// Injected via -ldflags at build time.
var (
	gitSha string = "unknown"
	gitTag string = "unknown"
)

// GetBuildInfo reports the build revision and version for the index endpoint.
func GetBuildInfo() map[string]string {
	return map[string]string{
		"revision": gitSha,
		"version":  gitTag,
	}
}
