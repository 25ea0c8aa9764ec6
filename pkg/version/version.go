package version

// Version is overridden at build time with -ldflags "-X github.com/c9s/riskstat/pkg/version.Version=..."
var Version = "v0.3.0-dev"
