// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

package strops

import (
	"sync"
	"sync/atomic"
)

// Table binds every primitive operation to one concrete implementation. It
// is built once from a CapabilitySet by layering tier overlays over the
// serial baseline; after that it is read-only. Selection is per slot: a tier
// that accelerates searching but not sorting overrides exactly the search
// slots.
type Table struct {
	caps CapabilitySet

	equal     func(a, b []byte) bool
	order     func(a, b []byte) Ordering
	copyBytes func(dst, src []byte)
	moveBytes func(dst, src []byte)
	fill      func(dst []byte, v byte)
	lookup    func(dst, src []byte, lut *[256]byte)

	bytesum    func(data []byte) uint64
	hash       func(data []byte, seed uint64) uint64
	hashInit   func(s *hashState, seed uint64)
	hashUpdate func(s *hashState, block *[hashBlockLen]byte)
	hashDigest func(s *hashState) uint64
	fillRandom func(dst []byte, nonce uint64)

	findByte     func(h []byte, n byte) int
	rfindByte    func(h []byte, n byte) int
	find         func(h, n []byte) int
	rfind        func(h, n []byte) int
	findByteset  func(h []byte, set *Byteset) int
	rfindByteset func(h []byte, set *Byteset) int

	sequenceArgsort   func(seq Sequence, alloc Allocator, order []uint64) error
	pgramsSort        func(pgrams []uint64, alloc Allocator, order []uint64) error
	sequenceIntersect func(a, b Sequence, alloc Allocator, aPos, bPos []uint64) (int, error)
}

// Caps returns the capability set the table was built for.
func (t *Table) Caps() CapabilitySet { return t.caps }

// overlays lists the tier overrides in ascending specialization order per
// origin. Each overlay runs only when its bits are all present and touches
// only the slots its tier accelerates; everything it leaves alone keeps
// whatever the previous layer set.
var overlays = []struct {
	need  CapabilitySet
	apply func(*Table)
}{
	{CapHaswell, overlayHaswell},
	{CapSkylake, overlaySkylake},
	{CapSkylake | CapIce, overlayIce},
	{CapNeon, overlayNeon},
	{CapNeon | CapNeonAES, overlayNeonAES},
}

// NewTable builds a dispatch table for the given capability set. Every slot
// starts at the serial baseline, so the result is complete and correct even
// for an empty set.
func NewTable(caps CapabilitySet) *Table {
	t := &Table{
		caps: caps | CapSerial,

		equal:     serialEqual,
		order:     serialOrder,
		copyBytes: serialCopy,
		moveBytes: serialMove,
		fill:      serialFill,
		lookup:    serialLookup,

		bytesum:    serialBytesum,
		hash:       serialHash,
		hashInit:   serialHashInit,
		hashUpdate: serialHashUpdate,
		hashDigest: serialHashDigest,
		fillRandom: serialFillRandom,

		findByte:     serialFindByte,
		rfindByte:    serialRFindByte,
		find:         serialFind,
		rfind:        serialRFind,
		findByteset:  serialFindByteset,
		rfindByteset: serialRFindByteset,

		sequenceArgsort:   serialSequenceArgsort,
		pgramsSort:        serialPgramsSort,
		sequenceIntersect: serialSequenceIntersect,
	}
	for _, o := range overlays {
		if caps.Has(o.need) {
			o.apply(t)
		}
	}
	return t
}

var (
	table   atomic.Pointer[Table]
	tableMu sync.Mutex
)

// Init builds the dispatch table from Detect() and publishes it. It is
// idempotent and safe to call from multiple goroutines; every call performs
// a full build and a single atomic swap, so readers never observe a mix of
// old and new slots. The package calls it automatically, both from init()
// and defensively from every entry point.
func Init() {
	Update(Detect())
}

// Update rebuilds the table for a caller-chosen capability set, e.g. to
// force the baseline in conformance tests. The new table is constructed
// fresh and only then swapped in. In-flight calls finish on the snapshot
// they loaded; callers needing "all calls after Update use the new table"
// must order Update before those calls themselves.
func Update(caps CapabilitySet) {
	t := NewTable(caps)
	tableMu.Lock()
	table.Store(t)
	tableMu.Unlock()
}

// Current returns the active table snapshot. Tests use it to inspect
// per-slot selection; ordinary callers go through the entry points.
func Current() *Table {
	return current()
}

// Capabilities returns the capability set of the active table build.
func Capabilities() CapabilitySet {
	return current().caps
}

func current() *Table {
	if t := table.Load(); t != nil {
		return t
	}
	// Entry point reached before init() ran (e.g. from another package's
	// init). Build now; double initialization is harmless.
	Init()
	return table.Load()
}

func init() { Init() }
