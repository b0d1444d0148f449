// Package source holds the text being lexed together with the cursor that
// the byte searches in package search advance.
//
// A Source is owned by a single lexer. It is not safe for concurrent use.
package source

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"
)

// Position is a byte offset into a Source.
type Position uint32

// Source is an immutable UTF-8 text with a mutable cursor into it.
//
// The cursor always sits in [0, End()] and on a UTF-8 character boundary;
// SetPosition panics rather than let either invariant break.
type Source struct {
	text string
	file FileRef
	pos  Position
	end  Position

	lines []Position // lazily built by lineStarts
}

// NonUTF8Error is returned by New for text that is not valid UTF-8.
type NonUTF8Error struct {
	File   FileRef
	Offset int
}

func (e *NonUTF8Error) Error() string {
	return fmt.Sprintf("%s: invalid UTF-8 at byte offset %d", e.File, e.Offset)
}

// New validates text and returns a Source positioned at its start.
func New(file FileRef, text string) (*Source, error) {
	end, err := safecast.Conv[uint32](len(text))
	if err != nil {
		return nil, fmt.Errorf("%s: source too large: %w", file, err)
	}
	if !utf8.ValidString(text) {
		return nil, &NonUTF8Error{File: file, Offset: firstInvalid(text)}
	}
	return &Source{text: text, file: file, end: Position(end)}, nil
}

func firstInvalid(text string) int {
	for i := 0; i < len(text); {
		r, w := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && w == 1 {
			return i
		}
		i += w
	}
	return len(text)
}

// Clone returns an independent cursor over the same text.
func (s *Source) Clone() *Source {
	c := *s
	return &c
}

func (s *Source) File() FileRef {
	return s.file
}

func (s *Source) Text() string {
	return s.text
}

func (s *Source) Len() int {
	return len(s.text)
}

func (s *Source) Position() Position {
	return s.pos
}

func (s *Source) End() Position {
	return s.end
}

func (s *Source) EOF() bool {
	return s.pos >= s.end
}

// SetPosition moves the cursor. p must be within the text and on a UTF-8
// character boundary.
func (s *Source) SetPosition(p Position) {
	if p > s.end {
		panic(fmt.Sprintf("source: position %d out of bounds (len %d)", p, s.end))
	}
	if p < s.end && !utf8.RuneStart(s.text[p]) {
		panic(fmt.Sprintf("source: position %d is not on a UTF-8 character boundary", p))
	}
	s.pos = p
}

// Advance moves the cursor n bytes forward; see SetPosition.
func (s *Source) Advance(n int) {
	s.SetPosition(s.pos + Position(n))
}

// Peek returns the byte under the cursor.
func (s *Source) Peek() (byte, bool) {
	return s.ByteAt(s.pos)
}

// PeekRune decodes the character under the cursor; size is 0 at EOF.
func (s *Source) PeekRune() (r rune, size int) {
	if s.pos >= s.end {
		return utf8.RuneError, 0
	}
	b := s.text[s.pos]
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRuneInString(s.text[s.pos:])
}

func (s *Source) ByteAt(p Position) (byte, bool) {
	if p >= s.end {
		return 0, false
	}
	return s.text[p], true
}

func (s *Source) HasPrefixAt(p Position, prefix string) bool {
	if p > s.end {
		return false
	}
	return strings.HasPrefix(s.text[p:], prefix)
}

func (s *Source) Slice(from, to Position) string {
	return s.text[from:to]
}
