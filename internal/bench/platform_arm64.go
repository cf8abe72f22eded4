package bench

import "golang.org/x/sys/cpu"

func cpuFeatureFlags() []string {
	var flags []string
	if cpu.ARM64.HasASIMD {
		flags = append(flags, "asimd")
	}
	if cpu.ARM64.HasATOMICS {
		flags = append(flags, "atomics")
	}
	if cpu.ARM64.HasCRC32 {
		flags = append(flags, "crc32")
	}
	if cpu.ARM64.HasSVE {
		flags = append(flags, "sve")
	}
	return flags
}
