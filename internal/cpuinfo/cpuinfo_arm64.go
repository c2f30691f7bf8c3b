//go:build arm64

package cpuinfo

import "golang.org/x/sys/cpu"

func init() {
	hasASIMD = cpu.ARM64.HasASIMD
	hasSVE2 = cpu.ARM64.HasSVE2

	for _, f := range []struct {
		name string
		ok   bool
	}{
		{"asimd", cpu.ARM64.HasASIMD},
		{"fp", cpu.ARM64.HasFP},
		{"atomics", cpu.ARM64.HasATOMICS},
		{"sve", cpu.ARM64.HasSVE},
		{"sve2", cpu.ARM64.HasSVE2},
	} {
		if f.ok {
			features = append(features, f.name)
		}
	}
}
