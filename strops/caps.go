// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

package strops

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// CapabilitySet is an immutable bit-set of hardware tiers recognized by the
// library. A tier may accelerate any subset of the primitive operations, so
// slot selection is always per-operation, never per-tier-as-a-whole.
type CapabilitySet uint32

const (
	// CapSerial is the portable baseline. It is present in every valid set:
	// there is always at least one correct implementation path.
	CapSerial CapabilitySet = 1 << iota

	// CapParallel indicates multi-core host execution is available for the
	// batched algorithms.
	CapParallel

	// CapHaswell covers x86-64 AVX2 with FMA and F16C extensions.
	CapHaswell

	// CapSkylake covers the x86-64 AVX-512 baseline (F, VL, BW).
	CapSkylake

	// CapIce adds the advanced AVX-512 integer extensions (VBMI, GFNI, VAES).
	CapIce

	// CapNeon is the Arm NEON baseline, present on every AArch64 core.
	CapNeon

	// CapNeonAES is NEON with the AES crypto extensions.
	CapNeonAES

	// CapSVE is the Arm Scalable Vector Extension baseline.
	CapSVE

	// CapSVE2 is the second-generation SVE.
	CapSVE2

	// CapGPU indicates a usable GPU adapter. Only ever set by builds with
	// the "gpu" tag; the batch-similarity backend is the sole consumer.
	CapGPU
)

// capNames is ordered from least to most specialized per origin, the same
// order overlays are applied in.
var capNames = []struct {
	bit  CapabilitySet
	name string
}{
	{CapSerial, "serial"},
	{CapParallel, "parallel"},
	{CapHaswell, "haswell"},
	{CapSkylake, "skylake"},
	{CapIce, "ice"},
	{CapNeon, "neon"},
	{CapNeonAES, "neon+aes"},
	{CapSVE, "sve"},
	{CapSVE2, "sve2"},
	{CapGPU, "gpu"},
}

// Has reports whether every bit in sub is present in c.
func (c CapabilitySet) Has(sub CapabilitySet) bool {
	return c&sub == sub
}

// String renders the set as a comma-separated tier list, e.g.
// "serial,parallel,haswell". Diagnostics only, not part of the hot path.
func (c CapabilitySet) String() string {
	if c == 0 {
		return "none"
	}
	parts := make([]string, 0, len(capNames))
	for _, cn := range capNames {
		if c.Has(cn.bit) {
			parts = append(parts, cn.name)
		}
	}
	if rest := c &^ allKnownCaps(); rest != 0 {
		parts = append(parts, "unknown(0x"+strconv.FormatUint(uint64(rest), 16)+")")
	}
	return strings.Join(parts, ",")
}

// Describe returns a one-tier-per-line rendering of the set.
func Describe(c CapabilitySet) string {
	var b strings.Builder
	for _, cn := range capNames {
		fmt.Fprintf(&b, "%-10s %v\n", cn.name, c.Has(cn.bit))
	}
	return b.String()
}

// ParseCapabilities parses a comma-separated tier list produced by String.
// Used to force a specific tier from tests or the environment.
func ParseCapabilities(s string) (CapabilitySet, error) {
	var c CapabilitySet
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		found := false
		for _, cn := range capNames {
			if cn.name == part {
				c |= cn.bit
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("strops: unknown capability %q", part)
		}
	}
	return c | CapSerial, nil
}

func allKnownCaps() CapabilitySet {
	var all CapabilitySet
	for _, cn := range capNames {
		all |= cn.bit
	}
	return all
}

// noSimdEnv reports whether the STROPS_NO_SIMD environment variable requests
// the baseline regardless of what the CPU supports. Useful for testing and
// debugging.
func noSimdEnv() bool {
	val := os.Getenv("STROPS_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// Detect queries the CPU (and the GPU runtime when built with the "gpu" tag)
// for the supported tiers. Detection never fails: hosts where hardware
// introspection is unavailable degrade to the serial baseline.
func Detect() CapabilitySet {
	if noSimdEnv() {
		return CapSerial | detectParallel()
	}
	return CapSerial | detectParallel() | detectArch() | detectGPU()
}
