package bench

import "golang.org/x/sys/cpu"

func cpuFeatureFlags() []string {
	var flags []string
	if cpu.X86.HasSSE42 {
		flags = append(flags, "sse4.2")
	}
	if cpu.X86.HasPOPCNT {
		flags = append(flags, "popcnt")
	}
	if cpu.X86.HasAVX {
		flags = append(flags, "avx")
	}
	if cpu.X86.HasAVX2 {
		flags = append(flags, "avx2")
	}
	if cpu.X86.HasBMI2 {
		flags = append(flags, "bmi2")
	}
	if cpu.X86.HasAVX512F {
		flags = append(flags, "avx512f")
	}
	return flags
}
