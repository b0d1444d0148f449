package bytesearch

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vippsas/bytesearch/lexer"
)

func TestInclude(t *testing.T) {
	fs := make(fstest.MapFS)
	fs["a.js"] = &fstest.MapFile{Data: []byte("let a = 1; // one\n")}
	fs["lib/b.ts"] = &fstest.MapFile{Data: []byte("const b: string = 'x'\n/* two\nlines */\n")}
	fs["README.md"] = &fstest.MapFile{Data: []byte("not code")}
	fs[".git/c.js"] = &fstest.MapFile{Data: []byte("hidden")}
	fs["lib/.d.js"] = &fstest.MapFile{Data: []byte("hidden too")}

	c, err := Include(Options{Concurrency: 2}, fs)
	require.NoError(t, err)

	require.Len(t, c.Files, 2)
	assert.Equal(t, "fs[0]:a.js", c.Files[0].Path)
	assert.Equal(t, "fs[0]:lib/b.ts", c.Files[1].Path)

	a := c.Files[0]
	assert.Equal(t, 18, a.Bytes)
	assert.Equal(t, 1, a.Lines)
	assert.Equal(t, 2, a.Tokens[lexer.IdentifierToken])
	assert.Equal(t, 1, a.Tokens[lexer.LineCommentToken])
	assert.Equal(t, 1, a.Tokens[lexer.NumberToken])
	assert.Empty(t, a.Errors)

	assert.Equal(t, 3, c.Files[1].Lines)
	assert.Equal(t, 1, c.Tokens()[lexer.BlockCommentToken])
	assert.Equal(t, 2, c.Tokens()[lexer.StringLiteralToken]+c.Tokens()[lexer.LineCommentToken])
	assert.Equal(t, a.Bytes+c.Files[1].Bytes, c.Bytes())
	assert.Len(t, c.Fingerprint, 12)

	// stable across runs and concurrency
	again, err := Include(Options{Concurrency: 1}, fs)
	require.NoError(t, err)
	assert.Equal(t, c.Fingerprint, again.Fingerprint)
}

func TestInclude_extensions(t *testing.T) {
	fs := fstest.MapFS{
		"a.js":  &fstest.MapFile{Data: []byte("a")},
		"b.css": &fstest.MapFile{Data: []byte("b")},
	}
	c, err := Include(Options{Extensions: []string{".css"}}, fs)
	require.NoError(t, err)
	require.Len(t, c.Files, 1)
	assert.Equal(t, "fs[0]:b.css", c.Files[0].Path)
}

func TestInclude_fingerprintChangesWithContent(t *testing.T) {
	c1 := MustInclude(Options{}, fstest.MapFS{"a.js": &fstest.MapFile{Data: []byte("a + b")}})
	c2 := MustInclude(Options{}, fstest.MapFS{"a.js": &fstest.MapFile{Data: []byte("a - b")}})
	assert.NotEqual(t, c1.Fingerprint, c2.Fingerprint)
}

func TestInclude_duplicate(t *testing.T) {
	fs1 := fstest.MapFS{"a.js": &fstest.MapFile{Data: []byte("same")}}
	fs2 := fstest.MapFS{"b.js": &fstest.MapFile{Data: []byte("same")}}

	_, err := Include(Options{}, fs1, fs2)
	require.Error(t, err)
	assert.Equal(t, DuplicateFileError{Path: "fs[1]:b.js", ExistingPath: "fs[0]:a.js"}, err)
	assert.Equal(t,
		"file fs[1]:b.js has exact same contents as fs[0]:a.js (possibly in different filesystems)",
		err.Error())
}

func TestInclude_lexErrors(t *testing.T) {
	fs := fstest.MapFS{
		"a.js": &fstest.MapFile{Data: []byte("x = 'open\n/* never closed")},
		"b.js": &fstest.MapFile{Data: []byte("ok\xff")},
	}

	_, err := Include(Options{}, fs)
	require.Error(t, err)
	var lexErrs LexErrors
	require.ErrorAs(t, err, &lexErrs)
	require.Len(t, lexErrs.Errors, 3)
	assert.Equal(t, "a.js:1:5 unterminated string literal", lexErrs.Errors[0].Error())
	assert.Equal(t, "a.js:2:1 unterminated block comment", lexErrs.Errors[1].Error())
	assert.Equal(t, "b.js:1:3 invalid UTF-8", lexErrs.Errors[2].Error())
	assert.Contains(t, err.Error(), "lex error:\n\na.js:1:5: unterminated string literal\n")

	c, err := Include(Options{PartialResults: true}, fs)
	require.NoError(t, err)
	assert.Len(t, c.Errors(), 3)
	assert.Equal(t, 1, c.Files[1].Tokens[lexer.NonUTF8ErrorToken])

	assert.Panics(t, func() { MustInclude(Options{}, fs) })
}

func TestInclude_unexpectedCharacter(t *testing.T) {
	c := MustInclude(Options{PartialResults: true}, fstest.MapFS{
		"a.js": &fstest.MapFile{Data: []byte("a → b")},
	})
	require.Len(t, c.Errors(), 1)
	assert.Equal(t, `a.js:1:3 unexpected character "→"`, c.Errors()[0].Error())
}
