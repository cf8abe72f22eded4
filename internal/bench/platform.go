package bench

import "strings"

// CPUFeatures summarises the vector and bit-manipulation features of the
// host CPU as a comma-separated list, or "generic" when none are detected.
func CPUFeatures() string {
	flags := cpuFeatureFlags()
	if len(flags) == 0 {
		return "generic"
	}
	return strings.Join(flags, ",")
}
