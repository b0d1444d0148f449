// Package search finds the first byte in a source that matches a byte table.
//
// Tables are 256-entry lookups built once, typically as package-level
// variables, from a Predicate:
//
//	var notWhitespace = search.MustSafeTable(search.Not(search.Bytes(' ', '\t')))
//
// There are two kinds of table. A SafeByteMatchTable is validated when it is
// built so that a search using it stops on a UTF-8 character boundary, as long
// as its ContinueFunc never rejects a multi-byte lead byte under a table whose
// Condition is LeadBytesMatch alone (see ContinueFunc).
// A ByteMatchTable accepts any predicate; searching with one goes through the
// ...Unchecked functions and the caller must know by other means that every
// byte the search can stop on starts a character.
package search

import (
	"fmt"

	"golang.org/x/sys/cpu"
)

// Byte ranges of UTF-8 multi-byte sequences. Bytes 248-255 never occur in
// UTF-8 text.
const (
	continuationFirst = 0x80 // 128
	leadFirst         = 0xC0 // 192
	leadEnd           = 0xF8 // 248, exclusive
)

// Predicate classifies a single byte.
type Predicate func(b byte) bool

// ByteMatchTable is an unconstrained byte lookup table.
//
// If the pattern satisfies the constraints of SafeByteMatchTable, use that
// instead.
type ByteMatchTable struct {
	_       cpu.CacheLinePad
	entries [256]bool
}

// NewTable evaluates p for every byte value.
func NewTable(p Predicate) *ByteMatchTable {
	t := &ByteMatchTable{}
	fill(&t.entries, p)
	return t
}

func (t *ByteMatchTable) Matches(b byte) bool {
	return t.entries[b]
}

// SafeByteMatchTable is a byte lookup table that a search can use without
// any further reasoning about character boundaries. One of these holds:
//
//  1. every byte in 192..247 matches, i.e. the first byte of any multi-byte
//     character stops the search before it is entered;
//  2. no byte in 128..191 matches, i.e. a multi-byte character that is
//     entered is consumed in full.
//
// Examples of safe patterns: NonASCII, ASCII, Bytes(' ', '\t'), Not(Bytes('"')).
type SafeByteMatchTable struct {
	_         cpu.CacheLinePad
	entries   [256]bool
	condition Condition
}

// UnsafePatternError reports a predicate that satisfies neither condition of
// SafeByteMatchTable.
type UnsafePatternError struct {
	LeadByte         byte // first byte in 192..247 that does not match
	ContinuationByte byte // first byte in 128..191 that matches
}

func (e *UnsafePatternError) Error() string {
	return fmt.Sprintf("cannot create a SafeByteMatchTable with an unsafe pattern: "+
		"lead byte 0x%02X does not match and continuation byte 0x%02X matches",
		e.LeadByte, e.ContinuationByte)
}

// NewSafeTable evaluates p for every byte value and checks that the result
// is safe to search with.
func NewSafeTable(p Predicate) (*SafeByteMatchTable, error) {
	t := &SafeByteMatchTable{}
	fill(&t.entries, p)
	t.condition = classify(&t.entries)
	if t.condition == Unsafe {
		return nil, unsafePattern(&t.entries)
	}
	return t, nil
}

// MustSafeTable is like NewSafeTable but panics on an unsafe pattern. Meant
// for package-level tables, so a bad pattern stops the program at start-up.
func MustSafeTable(p Predicate) *SafeByteMatchTable {
	t, err := NewSafeTable(p)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *SafeByteMatchTable) Matches(b byte) bool {
	return t.entries[b]
}

// Condition reports which of the safety conditions the table satisfies.
func (t *SafeByteMatchTable) Condition() Condition {
	return t.condition
}

// Condition describes how a table avoids stopping inside a multi-byte
// character.
type Condition uint8

const (
	Unsafe Condition = 0
	// LeadBytesMatch: every byte in 192..247 matches.
	LeadBytesMatch Condition = 1
	// ContinuationBytesNoMatch: no byte in 128..191 matches.
	ContinuationBytesNoMatch Condition = 2
)

func (c Condition) String() string {
	switch c {
	case Unsafe:
		return "unsafe"
	case LeadBytesMatch:
		return "lead bytes match"
	case ContinuationBytesNoMatch:
		return "continuation bytes never match"
	case LeadBytesMatch | ContinuationBytesNoMatch:
		return "lead bytes match, continuation bytes never match"
	}
	return fmt.Sprintf("Condition(%d)", uint8(c))
}

// Classify reports the safety conditions p satisfies without building a table.
func Classify(p Predicate) Condition {
	var entries [256]bool
	fill(&entries, p)
	return classify(&entries)
}

func fill(entries *[256]bool, p Predicate) {
	for i := range entries {
		entries[i] = p(byte(i))
	}
}

func classify(entries *[256]bool) Condition {
	leadAllMatch := true
	contNoneMatch := true
	for i := continuationFirst; i < leadEnd; i++ {
		if entries[i] {
			if i < leadFirst {
				contNoneMatch = false
			}
		} else if i >= leadFirst {
			leadAllMatch = false
		}
	}

	var c Condition
	if leadAllMatch {
		c |= LeadBytesMatch
	}
	if contNoneMatch {
		c |= ContinuationBytesNoMatch
	}
	return c
}

func unsafePattern(entries *[256]bool) *UnsafePatternError {
	e := &UnsafePatternError{}
	for i := leadEnd - 1; i >= leadFirst; i-- {
		if !entries[i] {
			e.LeadByte = byte(i)
		}
	}
	for i := leadFirst - 1; i >= continuationFirst; i-- {
		if entries[i] {
			e.ContinuationByte = byte(i)
		}
	}
	return e
}
