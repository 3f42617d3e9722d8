// Package cpu reports the host capabilities that bear on convolution
// throughput: SIMD extensions used by the vector and FFT kernels, and the
// parallelism available to the parallel framed method.
//
// Detection runs once and is cached.
package cpu

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
)

// SIMDLevel is the widest SIMD extension the host offers.
// Levels are ordered within an architecture only.
type SIMDLevel int

const (
	SIMDNone SIMDLevel = iota
	SIMDSSE2
	SIMDAVX
	SIMDAVX2
	SIMDAVX512
	SIMDNEON
)

func (s SIMDLevel) String() string {
	switch s {
	case SIMDNone:
		return "none"
	case SIMDSSE2:
		return "sse2"
	case SIMDAVX:
		return "avx"
	case SIMDAVX2:
		return "avx2"
	case SIMDAVX512:
		return "avx512"
	case SIMDNEON:
		return "neon"
	default:
		return fmt.Sprintf("SIMDLevel(%d)", int(s))
	}
}

// Features holds the detected SIMD flags.
type Features struct {
	HasSSE2   bool
	HasAVX    bool
	HasAVX2   bool
	HasFMA    bool
	HasAVX512 bool
	HasNEON   bool
}

// Level returns the widest extension in f.
func (f Features) Level() SIMDLevel {
	switch {
	case f.HasAVX512:
		return SIMDAVX512
	case f.HasAVX2:
		return SIMDAVX2
	case f.HasAVX:
		return SIMDAVX
	case f.HasSSE2:
		return SIMDSSE2
	case f.HasNEON:
		return SIMDNEON
	default:
		return SIMDNone
	}
}

// Names lists the set flags in a fixed order.
func (f Features) Names() []string {
	var names []string
	for _, flag := range []struct {
		set  bool
		name string
	}{
		{f.HasSSE2, "sse2"},
		{f.HasAVX, "avx"},
		{f.HasAVX2, "avx2"},
		{f.HasFMA, "fma"},
		{f.HasAVX512, "avx512"},
		{f.HasNEON, "neon"},
	} {
		if flag.set {
			names = append(names, flag.name)
		}
	}
	return names
}

// Host describes the machine a benchmark runs on.
type Host struct {
	OS         string
	Arch       string
	NumCPU     int
	GOMAXPROCS int
	Features   Features
}

// String formats h as a single line, e.g.
// "linux/amd64 8 cpus (GOMAXPROCS 8) simd=avx2 [sse2 avx avx2 fma]".
func (h Host) String() string {
	return fmt.Sprintf("%s/%s %d cpus (GOMAXPROCS %d) simd=%s [%s]",
		h.OS, h.Arch, h.NumCPU, h.GOMAXPROCS, h.Features.Level(),
		strings.Join(h.Features.Names(), " "))
}

var (
	detectOnce sync.Once
	detected   Features
)

// DetectFeatures returns the SIMD features of the current processor.
func DetectFeatures() Features {
	detectOnce.Do(func() {
		detected = detectFeatures()
	})
	return detected
}

// Detect returns the current host description. GOMAXPROCS is read on each
// call since it may change at run time.
func Detect() Host {
	return Host{
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		NumCPU:     runtime.NumCPU(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
		Features:   DetectFeatures(),
	}
}
