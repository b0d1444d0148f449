package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/smasher164/xid"
	"github.com/vippsas/bytesearch/internal/debug"
	"github.com/vippsas/bytesearch/search"
	"github.com/vippsas/bytesearch/source"
)

// Scanner splits source text into tokens. It knows enough about C-family
// syntax (comments, quoted strings, identifiers, numbers) to find token
// boundaries; it does not classify keywords or combine operators, so every
// other ASCII character becomes a PunctuatorToken of its own.
//
// The scanner is a cursor in the buffer with associated utility methods;
// tokens are not kept.
type Scanner struct {
	src *source.Source

	// err is set if the input is not UTF-8; src then only holds the valid
	// prefix and NonUTF8ErrorToken is returned where EOFToken would be.
	err error

	startIndex source.Position
	tokenType  TokenType
}

const (
	lineSeparator      = '\u2028'
	paragraphSeparator = '\u2029'
	byteOrderMark      = '\uFEFF'
)

// NewScanner creates a Scanner positioned before the first token; call
// NextToken() to advance.
func NewScanner(file source.FileRef, input string) *Scanner {
	s := &Scanner{}
	src, err := source.New(file, input)
	if err != nil {
		s.err = err
		valid := ""
		if nonUTF8, ok := err.(*source.NonUTF8Error); ok {
			valid = input[:nonUTF8.Offset]
		}
		debug.Printf("lexer: %s: lexing the %d valid bytes", err, len(valid))
		// the prefix is valid, so this cannot fail
		src, _ = source.New(file, valid)
	}
	s.src = src
	return s
}

func (s *Scanner) TokenType() TokenType {
	return s.tokenType
}

// Err returns the reason for a NonUTF8ErrorToken, nil otherwise.
func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) File() source.FileRef {
	return s.src.File()
}

// Source exposes the underlying cursor.
func (s *Scanner) Source() *source.Source {
	return s.src
}

// Clone returns a copy of the scanner at its current position; used for
// look-ahead.
func (s *Scanner) Clone() *Scanner {
	result := new(Scanner)
	*result = *s
	result.src = s.src.Clone()
	return result
}

func (s *Scanner) Token() string {
	return s.src.Slice(s.startIndex, s.src.Position())
}

// Offsets returns the byte offsets of the current token, end exclusive.
func (s *Scanner) Offsets() (start, end source.Position) {
	return s.startIndex, s.src.Position()
}

// Start returns the position where the current token begins.
func (s *Scanner) Start() source.Pos {
	return s.src.Pos(s.startIndex)
}

// Stop returns the position just after the current token.
func (s *Scanner) Stop() source.Pos {
	return s.src.Pos(s.src.Position())
}

// SkipTrivia advances past whitespace, newlines and comments.
func (s *Scanner) SkipTrivia() {
	for s.TokenType().IsTrivia() {
		s.NextToken()
	}
}

// NextNonTriviaToken advances to the next token and then past any trivia.
func (s *Scanner) NextNonTriviaToken() TokenType {
	s.NextToken()
	s.SkipTrivia()
	return s.TokenType()
}

// NextToken scans the next token and advances the scanner's position to
// after the token.
func (s *Scanner) NextToken() TokenType {
	s.tokenType = s.nextToken()
	if s.tokenType.IsError() && debug.Enabled() {
		debug.WithFields(logrus.Fields{
			"pos":   s.Start().String(),
			"token": s.Token(),
		}, "lexer: %s", s.tokenType)
	}
	return s.tokenType
}

func (s *Scanner) nextToken() TokenType {
	s.startIndex = s.src.Position()
	b, ok := s.src.Peek()
	if !ok {
		if s.err != nil {
			return NonUTF8ErrorToken
		}
		return EOFToken
	}

	switch {
	case b == ' ' || b == '\t' || b == '\v' || b == '\f':
		return s.scanWhitespace()
	case b == '\n' || b == '\r':
		return s.scanNewlines()
	case isASCIIIdentStart(b):
		s.src.Advance(1)
		return s.scanIdentifierTail()
	case isDigit(b):
		return s.scanNumber()
	case b == '"':
		return s.scanString(doubleQuoteSpecial)
	case b == '\'':
		return s.scanString(singleQuoteSpecial)
	case b == '`':
		return s.scanTemplate()
	case b >= utf8.RuneSelf:
		return s.scanNonASCII()
	}

	// OK, we need to peek 1 byte to make a decision
	b2, _ := s.src.ByteAt(s.startIndex + 1)
	switch {
	case b == '/' && b2 == '/':
		s.src.Advance(2)
		return s.scanLineComment(LineCommentToken)
	case b == '/' && b2 == '*':
		s.src.Advance(2)
		return s.scanBlockComment()
	case b == '#' && b2 == '!' && s.startIndex == 0:
		s.src.Advance(2)
		return s.scanLineComment(HashbangToken)
	case b == '.' && isDigit(b2):
		return s.scanNumber()
	}

	s.src.Advance(1)
	return PunctuatorToken
}

func (s *Scanner) scanWhitespace() TokenType {
	return search.Search(s.src, notWhitespace, nil,
		func(byte, source.Position) TokenType { return WhitespaceToken },
		func(source.Position) TokenType { return WhitespaceToken })
}

// scanNewlines consumes consecutive line terminators, treating \r\n as one.
func (s *Scanner) scanNewlines() TokenType {
	for {
		b, ok := s.src.Peek()
		switch {
		case !ok:
			return NewlineToken
		case b == '\n':
			s.src.Advance(1)
		case b == '\r':
			s.src.Advance(1)
			if next, _ := s.src.Peek(); next == '\n' {
				s.src.Advance(1)
			}
		case b == 0xE2 && s.isLineSeparatorAt(s.src.Position()):
			s.src.Advance(3)
		default:
			return NewlineToken
		}
	}
}

func (s *Scanner) isLineSeparatorAt(pos source.Position) bool {
	return s.src.HasPrefixAt(pos, "\u2028") || s.src.HasPrefixAt(pos, "\u2029")
}

// scanLineComment assumes one has advanced over `//` or `#!`. The line
// terminator is not part of the token.
func (s *Scanner) scanLineComment(tokenType TokenType) TokenType {
	return search.Search(s.src, lineBreak,
		func(b byte, pos source.Position) bool {
			// 0xE2 starts many characters; only U+2028 and U+2029 end the line
			return b == 0xE2 && !s.isLineSeparatorAt(pos)
		},
		func(byte, source.Position) TokenType { return tokenType },
		func(source.Position) TokenType { return tokenType })
}

// scanBlockComment assumes one has advanced over `/*`.
func (s *Scanner) scanBlockComment() TokenType {
	return search.Search(s.src, blockCommentStar,
		func(_ byte, pos source.Position) bool {
			next, _ := s.src.ByteAt(pos + 1)
			return next != '/'
		},
		func(byte, source.Position) TokenType {
			s.src.Advance(2)
			return BlockCommentToken
		},
		func(source.Position) TokenType { return UnterminatedBlockCommentErrorToken })
}

const eof = -1

func matchedByte(b byte, _ source.Position) int { return int(b) }
func reachedEOF(source.Position) int            { return eof }

// scanString scans a quoted string; table decides the quote character. A
// line break before the closing quote ends the token as unterminated,
// without consuming the line break.
func (s *Scanner) scanString(table *search.SafeByteMatchTable) TokenType {
	quote, _ := s.src.Peek()
	s.src.Advance(1)
	for {
		switch b := search.Search(s.src, table, nil, matchedByte, reachedEOF); {
		case b == eof:
			return UnterminatedStringErrorToken
		case b == int(quote):
			s.src.Advance(1)
			return StringLiteralToken
		case b == '\\':
			s.src.Advance(1)
			s.skipEscaped()
		default:
			return UnterminatedStringErrorToken
		}
	}
}

// scanTemplate scans a backtick string. Substitutions are not parsed, so a
// backtick nested inside `${...}` ends the literal.
func (s *Scanner) scanTemplate() TokenType {
	s.src.Advance(1)
	for {
		switch search.Search(s.src, templateSpecial, nil, matchedByte, reachedEOF) {
		case eof:
			return UnterminatedTemplateErrorToken
		case '`':
			s.src.Advance(1)
			return TemplateLiteralToken
		default:
			s.src.Advance(1)
			s.skipEscaped()
		}
	}
}

// skipEscaped consumes the character after a backslash; \r\n counts as one.
func (s *Scanner) skipEscaped() {
	r, w := s.src.PeekRune()
	if w == 0 {
		return
	}
	s.src.Advance(w)
	if r == '\r' {
		if next, _ := s.src.Peek(); next == '\n' {
			s.src.Advance(1)
		}
	}
}

// scanIdentifierTail assumes the first character of an identifier has been
// consumed, and scans to the end. ASCII is handled by the search; other
// characters are checked one at a time.
func (s *Scanner) scanIdentifierTail() TokenType {
	for {
		nonASCII := search.Search(s.src, notASCIIIdentContinue, nil,
			func(b byte, _ source.Position) bool { return b >= utf8.RuneSelf },
			func(source.Position) bool { return false })
		if !nonASCII {
			return IdentifierToken
		}
		r, w := s.src.PeekRune()
		if !isIdentContinueRune(r) {
			return IdentifierToken
		}
		s.src.Advance(w)
	}
}

func isIdentContinueRune(r rune) bool {
	// ZWNJ and ZWJ are allowed inside identifiers
	return xid.Continue(r) || r == '\u200C' || r == '\u200D'
}

// scanNumber scans a numeric literal loosely: digits, letters, `_` and `.`,
// plus a sign directly after a decimal exponent marker.
func (s *Scanner) scanNumber() TokenType {
	start := s.src.Position()
	isHex := s.src.HasPrefixAt(start, "0x") || s.src.HasPrefixAt(start, "0X")
	s.src.Advance(1)
	return search.Search(s.src, notNumberContinue,
		func(b byte, pos source.Position) bool {
			if b != '+' && b != '-' || isHex {
				return false
			}
			prev, _ := s.src.ByteAt(pos - 1)
			return prev == 'e' || prev == 'E'
		},
		func(byte, source.Position) TokenType { return NumberToken },
		func(source.Position) TokenType { return NumberToken })
}

func (s *Scanner) scanNonASCII() TokenType {
	r, w := s.src.PeekRune()
	switch {
	case r == lineSeparator || r == paragraphSeparator:
		return s.scanNewlines()
	case r == byteOrderMark || unicode.Is(unicode.Zs, r):
		// irregular whitespace, one character per token
		s.src.Advance(w)
		return WhitespaceToken
	case xid.Start(r):
		s.src.Advance(w)
		return s.scanIdentifierTail()
	}
	s.src.Advance(w)
	return UnexpectedCharacterToken
}
