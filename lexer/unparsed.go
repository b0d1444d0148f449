package lexer

import "github.com/vippsas/bytesearch/source"

// Unparsed is a token copied out of the Scanner.
type Unparsed struct {
	Type        TokenType
	Start, Stop source.Pos
	RawValue    string
}

func CreateUnparsed(s *Scanner) Unparsed {
	return Unparsed{
		Type:     s.TokenType(),
		Start:    s.Start(),
		Stop:     s.Stop(),
		RawValue: s.Token(),
	}
}

func (u Unparsed) WithoutPos() Unparsed {
	return Unparsed{
		Type:     u.Type,
		RawValue: u.RawValue,
	}
}

// Tokenize scans all of input. The final token is EOFToken, or
// NonUTF8ErrorToken when input is not valid UTF-8.
func Tokenize(file source.FileRef, input string) []Unparsed {
	s := NewScanner(file, input)
	var result []Unparsed
	for {
		tt := s.NextToken()
		result = append(result, CreateUnparsed(s))
		if tt == EOFToken || tt == NonUTF8ErrorToken {
			return result
		}
	}
}
