// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

// Package strops provides primitive string operations (comparison, ordering,
// copying, filling, table lookup, checksums, seeded hashing, searching,
// sorting, set intersection) behind a capability-gated dispatch table.
//
// At process start the package detects the hardware tiers available on the
// running machine and binds each operation to the fastest correct kernel for
// it; selection is per operation, not per tier, because a CPU generation may
// accelerate searching without accelerating sorting. Call sites pay one
// indirect call and no capability checks:
//
//	idx := strops.Find(haystack, needle)
//
// The table can be rebuilt on demand, e.g. to force the portable baseline
// in conformance tests:
//
//	strops.Update(strops.CapSerial)
//	defer strops.Init()
//
// Every operation returns byte-identical results regardless of which tier's
// kernel computed it. Batched pairwise algorithms over many strings live in
// the similarity package and do not go through this table.
package strops
