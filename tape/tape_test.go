// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

package tape

import (
	"bytes"
	"errors"
	"testing"
)

func TestFromStringsRoundTrip(t *testing.T) {
	in := []string{"kitten", "", "sitting", "a", "何かのデータ"}
	tp := FromStrings(in)
	if tp.Count() != len(in) {
		t.Fatalf("Count = %d, want %d", tp.Count(), len(in))
	}
	for i, s := range in {
		if got := tp.At(i); !bytes.Equal(got, []byte(s)) {
			t.Errorf("At(%d) = %q, want %q", i, got, s)
		}
		if got := tp.Len(i); got != len(s) {
			t.Errorf("Len(%d) = %d, want %d", i, got, len(s))
		}
	}
	offs := tp.Offsets()
	if len(offs) != len(in)+1 || offs[0] != 0 || offs[len(offs)-1] != uint64(len(tp.Bytes())) {
		t.Errorf("offsets %v do not delimit %d data bytes", offs, len(tp.Bytes()))
	}
}

func TestFromBytes(t *testing.T) {
	src := [][]byte{[]byte("left"), []byte("right")}
	tp := FromBytes(src)
	// The tape owns a copy; mutating the source must not show through.
	src[0][0] = 'X'
	if got := tp.At(0); !bytes.Equal(got, []byte("left")) {
		t.Errorf("At(0) = %q after source mutation, want %q", got, "left")
	}
}

func TestNewValidation(t *testing.T) {
	data := []byte("abcdef")
	tests := []struct {
		name    string
		data    []byte
		offsets []uint64
		ok      bool
	}{
		{"valid", data, []uint64{0, 2, 2, 6}, true},
		{"empty", nil, nil, true},
		{"empty offsets nonempty data", data, nil, false},
		{"nonzero start", data, []uint64{1, 6}, false},
		{"short last entry", data, []uint64{0, 5}, false},
		{"decreasing", data, []uint64{0, 4, 2, 6}, false},
		{"single zero entry", nil, []uint64{0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp, err := New(tt.data, tt.offsets)
			if tt.ok {
				if err != nil {
					t.Fatalf("New: %v", err)
				}
				if want := len(tt.offsets) - 1; want > 0 && tp.Count() != want {
					t.Errorf("Count = %d, want %d", tp.Count(), want)
				}
			} else if !errors.Is(err, ErrInvalidShape) {
				t.Errorf("New: got %v, want ErrInvalidShape", err)
			}
		})
	}
}

func TestNewUint32(t *testing.T) {
	tp, err := New([]byte("aabbb"), []uint32{0, 2, 5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !bytes.Equal(tp.At(0), []byte("aa")) || !bytes.Equal(tp.At(1), []byte("bbb")) {
		t.Errorf("At = %q, %q", tp.At(0), tp.At(1))
	}
}

func TestZeroValue(t *testing.T) {
	var tp Tape[uint64]
	if tp.Count() != 0 {
		t.Errorf("zero tape Count = %d", tp.Count())
	}
}
