// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

package similarity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strops/go-strops/strops"
	"github.com/strops/go-strops/tape"
)

func TestLevenshteinDistances(t *testing.T) {
	a := tape.FromStrings([]string{"kitten", "flaw", "same", "", "abc", "saturday"})
	b := tape.FromStrings([]string{"sitting", "lawn", "same", "hello", "", "sunday"})
	want := []uint64{3, 2, 0, 5, 3, 3}

	results := make([]uint64, a.Count())
	require.NoError(t, LevenshteinDistances(a, b, 0, nil, results))
	assert.Equal(t, want, results)
}

func TestLevenshteinBound(t *testing.T) {
	a := tape.FromStrings([]string{"kitten", "kitten", "kitten", "kitten"})
	b := tape.FromStrings([]string{"sitting", "sitting", "sitting", "kitten"})
	// distance is 3; the bound is exclusive and results saturate at it.
	results := make([]uint64, 4)

	require.NoError(t, LevenshteinDistances(a, b, 2, nil, results))
	assert.Equal(t, []uint64{2, 2, 2, 0}, results)

	require.NoError(t, LevenshteinDistances(a, b, 3, nil, results))
	assert.Equal(t, []uint64{3, 3, 3, 0}, results)

	require.NoError(t, LevenshteinDistances(a, b, 4, nil, results))
	assert.Equal(t, []uint64{3, 3, 3, 0}, results)
}

func TestLevenshteinLargeBatch(t *testing.T) {
	// Enough pairs to fan out across workers; each distance is checkable by
	// construction: i edits between a run of 'x' and the same run with i
	// leading bytes replaced.
	const n = 500
	as := make([]string, n)
	bs := make([]string, n)
	want := make([]uint64, n)
	for i := 0; i < n; i++ {
		k := i % 20
		as[i] = strings.Repeat("x", 40)
		bs[i] = strings.Repeat("y", k) + strings.Repeat("x", 40-k)
		want[i] = uint64(k)
	}
	results := make([]uint64, n)
	require.NoError(t, LevenshteinDistances(tape.FromStrings(as), tape.FromStrings(bs), 0, nil, results))
	assert.Equal(t, want, results)
}

func TestLevenshteinShapeErrors(t *testing.T) {
	a := tape.FromStrings([]string{"one", "two"})
	b := tape.FromStrings([]string{"one"})
	err := LevenshteinDistances(a, b, 0, nil, make([]uint64, 2))
	assert.ErrorIs(t, err, strops.ErrInvalidArgument)

	err = LevenshteinDistances(a, a, 0, nil, make([]uint64, 1))
	assert.ErrorIs(t, err, strops.ErrInvalidArgument)
}

func TestLevenshteinZeroCount(t *testing.T) {
	empty := tape.FromStrings(nil)
	require.NoError(t, LevenshteinDistances(empty, empty, 0, nil, nil))
}

func TestLevenshteinAllocFailure(t *testing.T) {
	a := tape.FromStrings([]string{"abcdefghij", "klmnopqrst"})
	b := tape.FromStrings([]string{"jihgfedcba", "tsrqponmlk"})
	err := LevenshteinDistances(a, b, 0, &strops.LimitAllocator{Budget: 8}, make([]uint64, 2))
	assert.ErrorIs(t, err, strops.ErrBadAlloc)
}

// misalignedAllocator returns buffers starting one byte past an aligned
// base, violating the 8-byte alignment scratch rows require.
type misalignedAllocator struct{}

func (misalignedAllocator) Alloc(n int) ([]byte, error) {
	buf := make([]byte, n+1)
	return buf[1:], nil
}

func TestLevenshteinMisalignedAllocator(t *testing.T) {
	a := tape.FromStrings([]string{"abcdefghij"})
	b := tape.FromStrings([]string{"jihgfedcba"})
	err := LevenshteinDistances(a, b, 0, misalignedAllocator{}, make([]uint64, 1))
	assert.ErrorIs(t, err, strops.ErrBadAlloc)
}

func TestNeedlemanWunschScores(t *testing.T) {
	subs := UnitarySubstitutions(1, -1)
	a := tape.FromStrings([]string{"kitten", "same", "", "ac"})
	b := tape.FromStrings([]string{"sitting", "same", "abc", "abc"})
	// kitten/sitting: 4 matches, 2 mismatches, 1 gap.
	want := []int64{1, 4, -3, 1}

	results := make([]int64, a.Count())
	require.NoError(t, NeedlemanWunschScores(a, b, subs, -1, nil, results))
	assert.Equal(t, want, results)
}

func TestNeedlemanWunschAsymmetricMatrix(t *testing.T) {
	var subs SubstitutionMatrix
	subs['a']['b'] = 5
	subs['b']['a'] = -3

	one := tape.FromStrings([]string{"a"})
	other := tape.FromStrings([]string{"b"})
	results := make([]int64, 1)

	require.NoError(t, NeedlemanWunschScores(one, other, &subs, -4, nil, results))
	assert.Equal(t, int64(5), results[0])

	require.NoError(t, NeedlemanWunschScores(other, one, &subs, -4, nil, results))
	assert.Equal(t, int64(-3), results[0])
}

func TestNeedlemanWunschNilMatrix(t *testing.T) {
	a := tape.FromStrings([]string{"x"})
	err := NeedlemanWunschScores(a, a, nil, -1, nil, make([]int64, 1))
	assert.ErrorIs(t, err, strops.ErrInvalidArgument)
}

func TestPerPairKernels(t *testing.T) {
	tests := []struct {
		a, b  string
		bound uint
		want  uint64
	}{
		{"", "", 0, 0},
		{"abc", "abc", 0, 0},
		{"abc", "abd", 0, 1},
		{"intention", "execution", 0, 5},
		{"intention", "execution", 5, 5},
		{"intention", "execution", 4, 4},
		{"short", "a-much-longer-string", 3, 3},
	}
	for _, tt := range tests {
		got, err := levenshteinDistance([]byte(tt.a), []byte(tt.b), tt.bound, runtimeAllocator{})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "distance(%q, %q, bound=%d)", tt.a, tt.b, tt.bound)
	}
}
