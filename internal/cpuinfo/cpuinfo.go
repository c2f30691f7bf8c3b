// Package cpuinfo reports host CPU capabilities for benchmark reports.
package cpuinfo

import (
	"runtime"
)

// ISA represents the widest SIMD instruction set the host supports.
type ISA uint8

const (
	// Generic means no SIMD extension was detected.
	Generic ISA = iota
	// NEON represents ARM64 NEON (128-bit SIMD, ASIMD).
	NEON
	// SVE2 represents ARM64 SVE2 (scalable vectors, 128-2048 bit).
	SVE2
	// AVX2 represents x86-64 AVX2 (256-bit SIMD with FMA).
	AVX2
	// AVX512 represents x86-64 AVX-512 (512-bit SIMD).
	AVX512
)

// String returns the string representation of an ISA.
func (i ISA) String() string {
	switch i {
	case Generic:
		return "generic"
	case NEON:
		return "neon"
	case SVE2:
		return "sve2"
	case AVX2:
		return "avx2"
	case AVX512:
		return "avx512"
	default:
		return "unknown"
	}
}

// Set by platform-specific init.
var (
	hasASIMD    bool
	hasSVE2     bool
	hasAVX2     bool
	hasAVX512F  bool
	hasAVX512BW bool

	features []string
)

// Info describes the host a benchmark ran on.
type Info struct {
	GOOS       string   `json:"goos"`
	GOARCH     string   `json:"goarch"`
	NumCPU     int      `json:"num_cpu"`
	GOMAXPROCS int      `json:"gomaxprocs"`
	ISA        string   `json:"isa"`
	Features   []string `json:"features,omitempty"`
}

// Detect returns the capabilities of the running host.
func Detect() Info {
	return Info{
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
		NumCPU:     runtime.NumCPU(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
		ISA:        BestISA().String(),
		Features:   append([]string(nil), features...),
	}
}

// BestISA returns the widest SIMD extension available on this CPU.
func BestISA() ISA {
	switch runtime.GOARCH {
	case "arm64":
		if hasSVE2 {
			return SVE2
		}
		if hasASIMD {
			return NEON
		}
	case "amd64":
		if hasAVX512F && hasAVX512BW {
			return AVX512
		}
		if hasAVX2 {
			return AVX2
		}
	}
	return Generic
}
