package bytesearch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vippsas/bytesearch/search"
	"github.com/vippsas/bytesearch/source"
)

func offsets(matches []Match) []source.Position {
	var result []source.Position
	for _, m := range matches {
		result = append(result, m.Offset)
	}
	return result
}

func TestFindBytes(t *testing.T) {
	test := func(input, expr string, expected ...source.Position) func(*testing.T) {
		return func(t *testing.T) {
			matches, err := FindBytes("test.js", input, expr)
			require.NoError(t, err)
			assert.Equal(t, expected, offsets(matches))
		}
	}

	t.Run("", test("a b\tc", `\s,\t`, 1, 3))
	t.Run("", test("abc", "x"))
	t.Run("", test("aé b", "0x80-0xFF", 1))
	t.Run("", test("aé→b", "0xC0-0xFF", 1, 3))
	t.Run("", test(strings.Repeat("-", 40)+";"+strings.Repeat("-", 40)+";", "';'", 40, 81))

	// not boundary-safe, but fine on ASCII input
	t.Run("", test("abca", "a,0x80", 0, 3))
}

func TestFindBytes_match(t *testing.T) {
	matches, err := FindBytes("test.js", "x\ny", "y")
	require.NoError(t, err)
	assert.Equal(t, []Match{{Offset: 2, Pos: source.Pos{File: "test.js", Line: 2, Col: 1}, Byte: 'y'}}, matches)
}

func TestFindBytes_errors(t *testing.T) {
	_, err := FindBytes("test.js", "aé", "a,0xA9")
	var unsafeErr *search.UnsafePatternError
	require.ErrorAs(t, err, &unsafeErr)
	assert.Equal(t, byte(0xA9), unsafeErr.ContinuationByte)

	_, err = FindBytes("test.js", "abc", "z-a")
	assert.ErrorContains(t, err, "empty range")

	_, err = FindBytes("test.js", "a\xff", "a")
	var nonUTF8 *source.NonUTF8Error
	assert.ErrorAs(t, err, &nonUTF8)
}
