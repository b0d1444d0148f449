package source

import (
	"fmt"
	"sort"
)

// FileRef is a dedicated type for file references, allowing future refactoring
// of how files are identified without changing the API.
type FileRef string

// Pos represents a position in a source file with line and column numbers.
// Line and column are 1-indexed for human-readable error messages; the column
// counts bytes, not runes.
type Pos struct {
	File      FileRef
	Line, Col int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

type Error struct {
	Pos     Pos
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s:%d:%d %s", e.Pos.File, e.Pos.Line, e.Pos.Col, e.Message)
}

func (e Error) WithoutPos() Error {
	return Error{Message: e.Message}
}

// lineStarts returns the offsets at which each line begins; built on first use.
func (s *Source) lineStarts() []Position {
	if s.lines != nil {
		return s.lines
	}
	lines := []Position{0}
	for i := 0; i < len(s.text); i++ {
		if s.text[i] == '\n' {
			lines = append(lines, Position(i+1))
		}
	}
	s.lines = lines
	return lines
}

// Pos translates a byte offset into a line/column position.
func (s *Source) Pos(p Position) Pos {
	lines := s.lineStarts()
	// index of the last line start <= p
	line := sort.Search(len(lines), func(i int) bool { return lines[i] > p }) - 1
	return Pos{
		File: s.file,
		Line: line + 1,
		Col:  int(p-lines[line]) + 1,
	}
}

// Lines returns the number of lines in the source; a trailing newline does
// not start a new line.
func (s *Source) Lines() int {
	lines := s.lineStarts()
	n := len(lines)
	if n > 1 && int(lines[n-1]) == len(s.text) {
		n--
	}
	if len(s.text) == 0 {
		return 0
	}
	return n
}

func (s *Source) Errorf(p Position, format string, args ...any) Error {
	return Error{
		Pos:     s.Pos(p),
		Message: fmt.Sprintf(format, args...),
	}
}
