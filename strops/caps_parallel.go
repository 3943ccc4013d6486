// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

package strops

import "runtime"

func detectParallel() CapabilitySet {
	if runtime.GOMAXPROCS(0) > 1 {
		return CapParallel
	}
	return 0
}
