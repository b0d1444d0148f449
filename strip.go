package bytesearch

import (
	"strings"

	"github.com/vippsas/bytesearch/lexer"
	"github.com/vippsas/bytesearch/source"
)

type lineNumberCorrection struct {
	outputLineNumber, removedLines int
}

// Stripped is source text with the comments removed.
type Stripped struct {
	File source.FileRef
	Text string

	// lineNumberCorrections records, for each output line that a multi-line
	// block comment was collapsed into, how many input lines went missing.
	// See LineNumberInInput.
	lineNumberCorrections []lineNumberCorrection
}

// LineNumberInInput maps a 1-based line number in Text back to the line in
// the input. An output line that a block comment was collapsed into maps to
// the line the comment started on.
func (s Stripped) LineNumberInInput(outputline int) int {
	totalRemoved := 0
	for _, c := range s.lineNumberCorrections {
		if c.outputLineNumber >= outputline {
			break
		}
		totalRemoved += c.removedLines
	}
	return outputline + totalRemoved
}

// StripComments removes comments from input. Line comments and a hashbang
// line are dropped up to the line break; each block comment is replaced by
// a single space.
func StripComments(file source.FileRef, input string) (Stripped, error) {
	result := Stripped{File: file}
	var w strings.Builder
	w.Grow(len(input))

	outputLine := 1
	s := lexer.NewScanner(file, input)
	for {
		tt := s.NextToken()
		switch tt {
		case lexer.EOFToken:
			result.Text = w.String()
			return result, nil
		case lexer.NonUTF8ErrorToken, lexer.UnterminatedBlockCommentErrorToken:
			result.Text = w.String()
			return result, tokenError(s)
		case lexer.LineCommentToken, lexer.HashbangToken:
			// the line break is a token of its own and is kept
		case lexer.BlockCommentToken:
			if n := strings.Count(s.Token(), "\n"); n > 0 {
				result.lineNumberCorrections = append(result.lineNumberCorrections,
					lineNumberCorrection{outputLine, n})
			}
			w.WriteByte(' ')
		default:
			outputLine += strings.Count(s.Token(), "\n")
			w.WriteString(s.Token())
		}
	}
}
