// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

//go:build !gpu

package strops

func detectGPU() CapabilitySet { return 0 }
