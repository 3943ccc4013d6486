// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

package strops

// Tier overlays. Each binds the subset of slots its tier accelerates and
// leaves the rest to the layers below it. Copy and move are never overridden:
// the runtime's copy is already the widest store sequence the hardware
// offers. Sorting, intersection, hashing and table lookup stay serial on
// every CPU tier in this port.

func overlayHaswell(t *Table) {
	t.fill = wordFill
	t.findByte = wordFindByte
	t.rfindByte = wordRFindByte
	t.find = wordFind
	t.rfind = wordRFind
	t.bytesum = wordBytesum
}

func overlaySkylake(t *Table) {
	t.equal = wordEqual
	t.order = wordOrder
}

func overlayIce(t *Table) {
	t.bytesum = unrolledBytesum
	t.fillRandom = unrolledFillRandom
}

func overlayNeon(t *Table) {
	t.equal = wordEqual
	t.order = wordOrder
	t.fill = wordFill
	t.findByte = wordFindByte
	t.rfindByte = wordRFindByte
	t.find = wordFind
	t.rfind = wordRFind
	t.bytesum = wordBytesum
}

func overlayNeonAES(t *Table) {
	t.fillRandom = unrolledFillRandom
}
