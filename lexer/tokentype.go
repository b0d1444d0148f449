package lexer

type TokenType int

const (
	WhitespaceToken TokenType = iota + 1

	// NewlineToken is a run of line terminators: \n, \r\n, \r, U+2028 and U+2029.
	NewlineToken

	LineCommentToken
	BlockCommentToken
	// HashbangToken is a `#!` line at the very start of the file.
	HashbangToken

	StringLiteralToken
	TemplateLiteralToken
	NumberToken
	IdentifierToken
	PunctuatorToken

	UnterminatedStringErrorToken
	UnterminatedTemplateErrorToken
	UnterminatedBlockCommentErrorToken
	UnexpectedCharacterToken
	NonUTF8ErrorToken

	EOFToken
)

func (tt TokenType) GoString() string {
	return tokenToDescription[tt]
}

func (tt TokenType) String() string {
	return tokenToDescription[tt]
}

// IsTrivia is true for tokens that carry no meaning for a parser.
func (tt TokenType) IsTrivia() bool {
	switch tt {
	case WhitespaceToken, NewlineToken, LineCommentToken, BlockCommentToken, HashbangToken:
		return true
	}
	return false
}

// IsComment is true for comments, including an unterminated block comment.
func (tt TokenType) IsComment() bool {
	switch tt {
	case LineCommentToken, BlockCommentToken, HashbangToken, UnterminatedBlockCommentErrorToken:
		return true
	}
	return false
}

func (tt TokenType) IsError() bool {
	return tt >= UnterminatedStringErrorToken && tt <= NonUTF8ErrorToken
}

func init() {
	// make sure we panic if a description isn't declared
	for tt := TokenType(1); tt <= EOFToken; tt++ {
		if tokenToDescription[tt] == "" {
			panic("you have not updated tokenToDescription")
		}
	}
}

// TokenTypeByName looks up a TokenType by its description.
func TokenTypeByName(name string) (TokenType, bool) {
	for tt, desc := range tokenToDescription {
		if desc == name {
			return tt, true
		}
	}
	return 0, false
}

var tokenToDescription = map[TokenType]string{
	WhitespaceToken: "WhitespaceToken",
	NewlineToken:    "NewlineToken",

	LineCommentToken:  "LineCommentToken",
	BlockCommentToken: "BlockCommentToken",
	HashbangToken:     "HashbangToken",

	StringLiteralToken:   "StringLiteralToken",
	TemplateLiteralToken: "TemplateLiteralToken",
	NumberToken:          "NumberToken",
	IdentifierToken:      "IdentifierToken",
	PunctuatorToken:      "PunctuatorToken",

	UnterminatedStringErrorToken:       "UnterminatedStringErrorToken",
	UnterminatedTemplateErrorToken:     "UnterminatedTemplateErrorToken",
	UnterminatedBlockCommentErrorToken: "UnterminatedBlockCommentErrorToken",
	UnexpectedCharacterToken:           "UnexpectedCharacterToken",
	NonUTF8ErrorToken:                  "NonUTF8ErrorToken",

	EOFToken: "EOFToken",
}
