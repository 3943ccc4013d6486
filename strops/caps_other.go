// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

//go:build !amd64 && !arm64

package strops

// Other architectures run the portable baseline for every slot.
func detectArch() CapabilitySet { return 0 }
