// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

//go:build arm64

package strops

import "golang.org/x/sys/cpu"

// detectArch maps AArch64 feature flags onto the tier bits. NEON (ASIMD) is
// part of the ARMv8-A base architecture, so it is effectively always present;
// we still consult the cpu package so sandboxed hosts that hide hwcaps
// degrade to serial instead of lying about what they can run.
func detectArch() CapabilitySet {
	var caps CapabilitySet

	if cpu.ARM64.HasASIMD {
		caps |= CapNeon
		if cpu.ARM64.HasAES {
			caps |= CapNeonAES
		}
	}
	if cpu.ARM64.HasSVE {
		caps |= CapSVE
		if cpu.ARM64.HasSVE2 {
			caps |= CapSVE2
		}
	}
	return caps
}
