package bytesearch

import (
	"errors"

	"github.com/vippsas/bytesearch/search"
	"github.com/vippsas/bytesearch/source"
)

// Match is a byte found by FindBytes.
type Match struct {
	Offset source.Position
	Pos    source.Pos
	Byte   byte
}

var nonASCII = search.MustSafeTable(search.NonASCII)

// FindBytes returns the character-start offsets in input whose byte matches
// the byte set expr (see search.ParseByteSet). A multi-byte character is
// reported at most once, by its lead byte.
//
// A pattern that is not boundary-safe can still be used on ASCII-only
// input, where every byte is a character boundary; on other input its
// *search.UnsafePatternError is returned.
func FindBytes(file source.FileRef, input, expr string) ([]Match, error) {
	p, err := search.ParseByteSet(expr)
	if err != nil {
		return nil, err
	}
	src, err := source.New(file, input)
	if err != nil {
		return nil, err
	}

	table, err := search.NewSafeTable(p)
	if err == nil {
		return collect(src, func() bool {
			return search.Search(src, table, nil, found, notFound)
		}), nil
	}
	var unsafeErr *search.UnsafePatternError
	if !errors.As(err, &unsafeErr) || !isASCIIOnly(src) {
		return nil, err
	}
	unchecked := search.NewTable(p)
	return collect(src, func() bool {
		return search.SearchUnchecked(src, unchecked, nil, found, notFound)
	}), nil
}

func found(byte, source.Position) bool { return true }
func notFound(source.Position) bool    { return false }

// isASCIIOnly leaves src where it was.
func isASCIIOnly(src *source.Source) bool {
	return !search.SearchFrom(src.Clone(), nonASCII, 0, nil, found, notFound)
}

func collect(src *source.Source, next func() bool) []Match {
	var result []Match
	for next() {
		b, _ := src.Peek()
		result = append(result, Match{
			Offset: src.Position(),
			Pos:    src.Pos(src.Position()),
			Byte:   b,
		})
		_, w := src.PeekRune()
		src.Advance(w)
	}
	return result
}
