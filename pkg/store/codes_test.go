package store

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/dt/pkg/types"
)

func TestEncodeShortCode(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{0, ""},
		{1, "a"},
		{26, "z"},
		{27, "A"},
		{52, "Z"},
		{53, "0"},
		{62, "9"},
		{63, "aa"},
		{64, "ab"},
		{124, "a9"},
		{125, "ba"},
		{3906, "99"},
		{3907, "aaa"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EncodeShortCode(tt.n), "n=%d", tt.n)
	}
}

func TestEncodeShortCode_Unique(t *testing.T) {
	seen := make(map[string]uint64)
	for n := uint64(1); n <= 20000; n++ {
		code := EncodeShortCode(n)
		require.True(t, IsShortCode(code), "n=%d produced %q", n, code)
		if prev, dup := seen[code]; dup {
			t.Fatalf("EncodeShortCode(%d) == EncodeShortCode(%d) == %q", n, prev, code)
		}
		seen[code] = n
	}
}

func TestIsShortCode(t *testing.T) {
	assert.True(t, IsShortCode("aZ9"))
	assert.False(t, IsShortCode(""))
	assert.False(t, IsShortCode("a-b"))
	assert.False(t, IsShortCode("é"))
}

func TestAssignShortCode_Sequence(t *testing.T) {
	s := newTestStore(t, defaultStorage())
	base := fixedNow.Add(-24 * time.Hour)

	var codes []string
	for i := 0; i < 63; i++ {
		exec := newExecution("seq 3", "/", base.Add(time.Duration(i)*time.Second), "")
		saveWithCode(t, s, exec)
		codes = append(codes, exec.Record.Code())
	}
	assert.Equal(t, "a", codes[0])
	assert.Equal(t, "9", codes[61])
	assert.Equal(t, "aa", codes[62])
}

func TestAssignShortCode_ReusesSmallestGap(t *testing.T) {
	s := newTestStore(t, defaultStorage())
	a := newExecution("whoami", "/", fixedNow.Add(-3*time.Minute), "")
	b := newExecution("whoami", "/", fixedNow.Add(-2*time.Minute), "")
	c := newExecution("whoami", "/", fixedNow.Add(-time.Minute), "")
	for _, e := range []*types.CommandExecution{a, b, c} {
		saveWithCode(t, s, e)
	}
	require.NoError(t, s.DeleteExecution(b.Record))

	next := newExecution("whoami", "/", fixedNow, "")
	require.NoError(t, s.AssignShortCode(&next.Record))
	assert.Equal(t, "b", next.Record.Code())
}

func TestAssignShortCode_KeepsCodesOnDisk(t *testing.T) {
	s := newTestStore(t, defaultStorage())
	first := newExecution("id", "/", fixedNow.Add(-time.Minute), "")
	first.Record.SetCode("c")
	require.NoError(t, s.Save(first))

	next := newExecution("id", "/", fixedNow, "")
	require.NoError(t, s.AssignShortCode(&next.Record))
	assert.Equal(t, "a", next.Record.Code())

	require.NoError(t, os.RemoveAll(s.recordsDir()))
	fresh := newExecution("id", "/", fixedNow, "")
	require.NoError(t, s.AssignShortCode(&fresh.Record))
	assert.Equal(t, "a", fresh.Record.Code(), "missing bucket starts at a")
}
