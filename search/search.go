package search

import (
	"fmt"

	"github.com/vippsas/bytesearch/source"
)

// BatchSize is the number of bytes tested per bounds check.
const BatchSize = 32

// ContinueFunc decides whether a byte that matched the table is not a match
// after all. It gets the matched byte and its position; the source has not
// been moved yet, so it may look ahead with src.ByteAt or src.HasPrefixAt.
// Returning true resumes the search at the following byte.
//
// Resuming at the following byte is only safe if that byte cannot stop the
// search inside a character. With a table that satisfies LeadBytesMatch but
// not ContinuationBytesNoMatch, a ContinueFunc must not reject a byte in
// 192..247: the search would then stop on the continuation byte after it, and
// positioning the source there panics.
type ContinueFunc func(b byte, pos source.Position) bool

// Search scans src from its current position for the first byte matching
// table.
//
// On a match, src is positioned on the matching byte and the result of
// onMatch(matchedByte, start) is returned. If no byte up to the end of src
// matches, src is positioned at its end and the result of onEOF(start) is
// returned. Exactly one of them is called. continueIf may be nil.
//
// A lexer method can hand its whole result to the search:
//
//	func (s *Scanner) scanWhitespace() TokenType {
//		return search.Search(s.src, notWhitespace, nil,
//			func(byte, source.Position) TokenType { return WhitespaceToken },
//			func(source.Position) TokenType { return WhitespaceToken })
//	}
func Search[R any](
	src *source.Source,
	table *SafeByteMatchTable,
	continueIf ContinueFunc,
	onMatch func(b byte, start source.Position) R,
	onEOF func(start source.Position) R,
) R {
	return byteSearch(src, &table.entries, src.Position(), continueIf, onMatch, onEOF)
}

// SearchFrom is Search starting at start instead of the current position.
// start must be a character boundary within src.
func SearchFrom[R any](
	src *source.Source,
	table *SafeByteMatchTable,
	start source.Position,
	continueIf ContinueFunc,
	onMatch func(b byte, start source.Position) R,
	onEOF func(start source.Position) R,
) R {
	return byteSearch(src, &table.entries, start, continueIf, onMatch, onEOF)
}

// SearchUnchecked is Search with an unconstrained table.
//
// The caller is responsible for every position the search can stop on being
// a UTF-8 character boundary; src.SetPosition panics when it is not.
func SearchUnchecked[R any](
	src *source.Source,
	table *ByteMatchTable,
	continueIf ContinueFunc,
	onMatch func(b byte, start source.Position) R,
	onEOF func(start source.Position) R,
) R {
	return byteSearch(src, &table.entries, src.Position(), continueIf, onMatch, onEOF)
}

// SearchFromUnchecked is SearchFrom with an unconstrained table; see
// SearchUnchecked.
func SearchFromUnchecked[R any](
	src *source.Source,
	table *ByteMatchTable,
	start source.Position,
	continueIf ContinueFunc,
	onMatch func(b byte, start source.Position) R,
	onEOF func(start source.Position) R,
) R {
	return byteSearch(src, &table.entries, start, continueIf, onMatch, onEOF)
}

func byteSearch[R any](
	src *source.Source,
	entries *[256]bool,
	start source.Position,
	continueIf ContinueFunc,
	onMatch func(b byte, start source.Position) R,
	onEOF func(start source.Position) R,
) R {
	text := src.Text()
	end := len(text)
	pos := int(start)
	if pos > end {
		panic(fmt.Sprintf("search: start %d beyond end of source (len %d)", start, end))
	}

	for end-pos >= BatchSize {
		// The loop body is kept minimal so the compiler can keep it tight;
		// match handling lives below.
		batch := text[pos : pos+BatchSize]
		i := 0
		for ; i < len(batch); i++ {
			if entries[batch[i]] {
				break
			}
		}
		pos += i
		if i == len(batch) {
			continue
		}

		b := batch[i]
		if continueIf != nil && continueIf(b, source.Position(pos)) {
			pos++
			continue
		}
		src.SetPosition(source.Position(pos))
		return onMatch(b, start)
	}

	return searchTail(src, entries, pos, start, continueIf, onMatch, onEOF)
}

// searchTail handles the last bytes of a source, fewer than BatchSize, one at
// a time. Only reached once per source in normal use.
//
//go:noinline
func searchTail[R any](
	src *source.Source,
	entries *[256]bool,
	pos int,
	start source.Position,
	continueIf ContinueFunc,
	onMatch func(b byte, start source.Position) R,
	onEOF func(start source.Position) R,
) R {
	text := src.Text()
	for pos < len(text) {
		b := text[pos]
		if entries[b] {
			if continueIf != nil && continueIf(b, source.Position(pos)) {
				pos++
				continue
			}
			src.SetPosition(source.Position(pos))
			return onMatch(b, start)
		}
		pos++
	}

	src.SetPosition(source.Position(pos))
	return onEOF(start)
}
