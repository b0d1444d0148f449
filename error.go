package bytesearch

import (
	"fmt"
	"strings"

	"github.com/vippsas/bytesearch/lexer"
	"github.com/vippsas/bytesearch/source"
)

// LexErrors collects the error tokens found while lexing a corpus.
type LexErrors struct {
	Errors []source.Error
}

func (e LexErrors) Error() string {
	var msg strings.Builder
	msg.WriteString("lex error:\n\n")
	for _, e := range e.Errors {
		msg.WriteString(fmt.Sprintf("%s:%d:%d: %s\n", e.Pos.File, e.Pos.Line, e.Pos.Col, e.Message))
	}
	return msg.String()
}

// DuplicateFileError is returned by Include when two files have the same
// contents, typically because the same directory was passed twice.
type DuplicateFileError struct {
	Path, ExistingPath string
}

func (e DuplicateFileError) Error() string {
	return fmt.Sprintf("file %s has exact same contents as %s (possibly in different filesystems)",
		e.Path, e.ExistingPath)
}

var errorTokenMessages = map[lexer.TokenType]string{
	lexer.UnterminatedStringErrorToken:       "unterminated string literal",
	lexer.UnterminatedTemplateErrorToken:     "unterminated template literal",
	lexer.UnterminatedBlockCommentErrorToken: "unterminated block comment",
	lexer.UnexpectedCharacterToken:           "unexpected character",
	lexer.NonUTF8ErrorToken:                  "invalid UTF-8",
}

// tokenError describes the error token the scanner is positioned on.
func tokenError(s *lexer.Scanner) source.Error {
	msg := errorTokenMessages[s.TokenType()]
	if s.TokenType() == lexer.UnexpectedCharacterToken {
		msg = fmt.Sprintf("%s %q", msg, s.Token())
	}
	return source.Error{Pos: s.Start(), Message: msg}
}
