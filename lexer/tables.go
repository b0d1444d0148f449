package lexer

import (
	"github.com/vippsas/bytesearch/search"
)

func isASCIIIdentStart(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isASCIIIdentContinue(b byte) bool {
	return isASCIIIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isNumberContinue(b byte) bool {
	return isASCIIIdentContinue(b) || b == '.'
}

var (
	// notWhitespace stops at anything but ASCII blanks; every non-ASCII byte
	// matches, so irregular whitespace is left to nextToken.
	notWhitespace = search.MustSafeTable(search.Not(search.Bytes(' ', '\t', '\v', '\f')))

	// lineBreak finds the end of a line comment. 0xE2 is the lead byte of
	// U+2028 and U+2029; the scanner rejects other characters with it.
	lineBreak = search.MustSafeTable(search.Bytes('\n', '\r', 0xE2))

	blockCommentStar = search.MustSafeTable(search.Bytes('*'))

	doubleQuoteSpecial = search.MustSafeTable(search.Bytes('"', '\\', '\n', '\r'))
	singleQuoteSpecial = search.MustSafeTable(search.Bytes('\'', '\\', '\n', '\r'))
	templateSpecial    = search.MustSafeTable(search.Bytes('`', '\\'))

	notASCIIIdentContinue = search.MustSafeTable(search.Not(isASCIIIdentContinue))
	notNumberContinue     = search.MustSafeTable(search.Not(isNumberContinue))
)

// NamedTable describes one of the tables the Scanner searches with.
type NamedTable struct {
	Name        string
	Description string
	Table       *search.SafeByteMatchTable
}

func Tables() []NamedTable {
	return []NamedTable{
		{"notWhitespace", "end of a run of spaces, tabs, VT and FF", notWhitespace},
		{"lineBreak", "end of a line comment or hashbang", lineBreak},
		{"blockCommentStar", "candidate end of a block comment", blockCommentStar},
		{"doubleQuoteSpecial", "quote, escape or line break in a \"string\"", doubleQuoteSpecial},
		{"singleQuoteSpecial", "quote, escape or line break in a 'string'", singleQuoteSpecial},
		{"templateSpecial", "backtick or escape in a template literal", templateSpecial},
		{"notASCIIIdentContinue", "end of the ASCII part of an identifier", notASCIIIdentContinue},
		{"notNumberContinue", "end of a numeric literal", notNumberContinue},
	}
}
