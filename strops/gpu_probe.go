// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

//go:build gpu

package strops

import "github.com/openfluke/webgpu/wgpu"

// detectGPU probes for a usable WebGPU adapter. A trapped or absent runtime
// leaves the bit unset rather than failing: the batch-similarity backend is
// the only consumer and reports unsupported-configuration on its own.
func detectGPU() CapabilitySet {
	inst := wgpu.CreateInstance(nil)
	if inst == nil {
		return 0
	}
	defer inst.Release()

	adapter, err := inst.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil || adapter == nil {
		return 0
	}
	adapter.Release()
	return CapGPU
}
