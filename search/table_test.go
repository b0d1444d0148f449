package search

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expectedSafe is the safety rule written out naively.
func expectedSafe(p Predicate) bool {
	leadAllMatch := true
	for b := 192; b < 248; b++ {
		if !p(byte(b)) {
			leadAllMatch = false
		}
	}
	contNoneMatch := true
	for b := 128; b < 192; b++ {
		if p(byte(b)) {
			contNoneMatch = false
		}
	}
	return leadAllMatch || contNoneMatch
}

func TestNewSafeTable(t *testing.T) {
	test := func(p Predicate, expected Condition) func(*testing.T) {
		return func(t *testing.T) {
			table, err := NewSafeTable(p)
			if expected == Unsafe {
				require.Error(t, err)
				assert.Nil(t, table)
				assert.Equal(t, Unsafe, Classify(p))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, expected, table.Condition())
			assert.Equal(t, expected, Classify(p))
		}
	}

	t.Run("non-ascii", test(NonASCII, LeadBytesMatch))
	t.Run("lead bytes", test(func(b byte) bool { return b >= 0xC0 }, LeadBytesMatch|ContinuationBytesNoMatch))
	t.Run("ascii", test(ASCII, ContinuationBytesNoMatch))
	t.Run("space or tab", test(Bytes(' ', '\t'), ContinuationBytesNoMatch))
	t.Run("not quote", test(Not(Bytes('"')), LeadBytesMatch))
	t.Run("ascii or lead", test(Or(ASCII, ByteRange(0xC0, 0xFF)), LeadBytesMatch|ContinuationBytesNoMatch))
	t.Run("nothing", test(func(byte) bool { return false }, ContinuationBytesNoMatch))
	t.Run("everything", test(func(byte) bool { return true }, LeadBytesMatch))
	t.Run("only 248-255", test(ByteRange(0xF8, 0xFF), ContinuationBytesNoMatch))
	t.Run("continuation bytes", test(ByteRange(0x80, 0xBF), Unsafe))
	t.Run("nul and a continuation byte", test(Bytes(0x00, 0x80), Unsafe))
	t.Run("all but one lead byte", test(Not(Bytes(0xE2)), Unsafe))
}

func TestNewSafeTable_nulOnly(t *testing.T) {
	// {0x00} alone never matches a continuation byte, so it is safe
	table, err := NewSafeTable(Bytes(0x00))
	require.NoError(t, err)
	assert.Equal(t, ContinuationBytesNoMatch, table.Condition())

	// ..but as soon as a continuation byte is in the set, with no lead bytes, it is not
	_, err = NewSafeTable(Bytes(0x00, 0xBF))
	require.Error(t, err)
}

func TestNewSafeTable_matchesNaiveRule(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		var entries [256]bool
		// bias towards tables that are almost safe, so that both outcomes
		// are common
		density := rng.Float64()
		for b := range entries {
			entries[b] = rng.Float64() < density
		}
		switch rng.Intn(4) {
		case 0:
			for b := 192; b < 248; b++ {
				entries[b] = true
			}
		case 1:
			for b := 128; b < 192; b++ {
				entries[b] = false
			}
		}
		p := func(b byte) bool { return entries[b] }

		table, err := NewSafeTable(p)
		if expectedSafe(p) {
			require.NoError(t, err)
			for b := 0; b < 256; b++ {
				require.Equal(t, entries[b], table.Matches(byte(b)))
			}
		} else {
			require.Error(t, err)
		}
	}
}

func TestUnsafePatternError(t *testing.T) {
	_, err := NewSafeTable(Or(ASCII, Bytes(0x85, 0x90), ByteRange(0xC0, 0xDF)))
	require.Error(t, err)
	var unsafe *UnsafePatternError
	require.ErrorAs(t, err, &unsafe)
	assert.Equal(t, byte(0xE0), unsafe.LeadByte)
	assert.Equal(t, byte(0x85), unsafe.ContinuationByte)
	assert.Equal(t,
		"cannot create a SafeByteMatchTable with an unsafe pattern: lead byte 0xE0 does not match and continuation byte 0x85 matches",
		err.Error())
}

func TestMustSafeTable(t *testing.T) {
	assert.NotPanics(t, func() { MustSafeTable(NonASCII) })
	assert.PanicsWithError(t,
		"cannot create a SafeByteMatchTable with an unsafe pattern: lead byte 0xC0 does not match and continuation byte 0x80 matches",
		func() { MustSafeTable(ByteRange(0x80, 0xBF)) })
}

func TestNewTable(t *testing.T) {
	// unconstrained tables accept any pattern
	table := NewTable(ByteRange(0x80, 0xBF))
	assert.True(t, table.Matches(0x80))
	assert.True(t, table.Matches(0xBF))
	assert.False(t, table.Matches(0xC0))
	assert.False(t, table.Matches('a'))

	safe := MustSafeTable(Bytes(' ', '\t'))
	unchecked := NewTable(Bytes(' ', '\t'))
	for b := 0; b < 256; b++ {
		assert.Equal(t, safe.Matches(byte(b)), unchecked.Matches(byte(b)))
	}
}

func TestMatchesIsPure(t *testing.T) {
	table := MustSafeTable(Bytes(' ', '\t'))
	var first [256]bool
	for b := 0; b < 256; b++ {
		first[b] = table.Matches(byte(b))
	}
	// searching does not change what the table answers
	src := newSource(t, "ab  c\td")
	Search(src, table, nil, matchAt, eofAt)
	for round := 0; round < 3; round++ {
		for b := 0; b < 256; b++ {
			assert.Equal(t, first[b], table.Matches(byte(b)))
		}
	}
}

func TestConditionString(t *testing.T) {
	assert.Equal(t, "unsafe", Unsafe.String())
	assert.Equal(t, "lead bytes match", LeadBytesMatch.String())
	assert.Equal(t, "continuation bytes never match", ContinuationBytesNoMatch.String())
	assert.Equal(t, "lead bytes match, continuation bytes never match", (LeadBytesMatch | ContinuationBytesNoMatch).String())
}
