// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

package strops

import (
	"errors"
	"sync"
	"unsafe"
)

// The closed set of recoverable statuses. Contract violations on raw buffer
// shapes (overlapping ranges where disallowed, out-of-bounds lengths) are not
// detected here; those follow the zero-overhead primitive contract.
var (
	// ErrBadAlloc reports a failed scratch allocation. No partial results
	// are written when it is returned.
	ErrBadAlloc = errors.New("strops: allocation failed")

	// ErrInvalidArgument reports a shape mismatch between inputs, such as
	// batch tapes of different counts or an undersized results buffer.
	ErrInvalidArgument = errors.New("strops: invalid argument")

	// ErrUnsupported reports a configuration the active backend cannot
	// serve, e.g. an operation the build was compiled without.
	ErrUnsupported = errors.New("strops: unsupported configuration")

	// ErrMissingGPU reports that a GPU backend was requested but no device
	// is present.
	ErrMissingGPU = errors.New("strops: no GPU device")
)

// Allocator provisions scratch buffers for the operations that need them
// (sorting, intersection, similarity matrices). A nil Allocator means the Go
// runtime allocator, which never reports failure. Implementations must
// return ErrBadAlloc (possibly wrapped) when they cannot serve a request.
type Allocator interface {
	Alloc(n int) ([]byte, error)
}

type runtimeAllocator struct{}

func (runtimeAllocator) Alloc(n int) ([]byte, error) { return make([]byte, n), nil }

func allocatorOrDefault(a Allocator) Allocator {
	if a == nil {
		return runtimeAllocator{}
	}
	return a
}

// LimitAllocator serves requests from the runtime allocator until the given
// byte budget is exhausted, then fails. Exists to exercise allocation-failure
// paths in tests. Safe for concurrent use, as batch backends allocate from
// multiple workers.
type LimitAllocator struct {
	Budget int

	mu   sync.Mutex
	used int
}

// Alloc implements Allocator.
func (l *LimitAllocator) Alloc(n int) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.used+n > l.Budget {
		return nil, ErrBadAlloc
	}
	l.used += n
	return make([]byte, n), nil
}

// allocUint64 carves an n-element uint64 scratch slice out of an Allocator.
// Allocators must hand back 8-byte aligned buffers (the Go runtime allocator
// always does for sizes this large); a misaligned buffer is rejected as a
// failed allocation rather than reinterpreted.
func allocUint64(a Allocator, n int) ([]uint64, error) {
	if n == 0 {
		return nil, nil
	}
	buf, err := a.Alloc(n * 8)
	if err != nil {
		return nil, err
	}
	if uintptr(unsafe.Pointer(&buf[0]))%8 != 0 {
		return nil, ErrBadAlloc
	}
	return unsafe.Slice((*uint64)(unsafe.Pointer(&buf[0])), n), nil
}
