//go:build !amd64 && !arm64

package bench

func cpuFeatureFlags() []string { return nil }
