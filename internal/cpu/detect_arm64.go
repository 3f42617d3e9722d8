//go:build arm64

package cpu

import "golang.org/x/sys/cpu"

// NEON (ASIMD) is mandatory on ARMv8.
func detectFeatures() Features {
	return Features{
		HasNEON: cpu.ARM64.HasASIMD,
		HasFMA:  cpu.ARM64.HasASIMD,
	}
}
