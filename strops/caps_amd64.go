// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

//go:build amd64

package strops

import "github.com/klauspost/cpuid/v2"

// detectArch maps x86-64 feature flags onto the tier bits. The groupings
// follow the microarchitecture generations the kernels are written for:
// Haswell needs AVX2+FMA+F16C, Skylake-X the AVX-512 F/VL/BW baseline, and
// Ice Lake the wide integer extensions on top of that.
func detectArch() CapabilitySet {
	var caps CapabilitySet

	if cpuid.CPU.Supports(cpuid.AVX2, cpuid.FMA3, cpuid.F16C) {
		caps |= CapHaswell
	}
	if cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512VL, cpuid.AVX512BW) {
		caps |= CapSkylake
		if cpuid.CPU.Supports(cpuid.AVX512VBMI, cpuid.GFNI, cpuid.VAES) {
			caps |= CapIce
		}
	}
	return caps
}
