package search

import (
	"fmt"
	"strconv"
	"strings"
)

// ASCII matches bytes below 128.
func ASCII(b byte) bool {
	return b < continuationFirst
}

// NonASCII matches bytes from 128 up.
func NonASCII(b byte) bool {
	return b >= continuationFirst
}

// Bytes matches exactly the given bytes.
func Bytes(bs ...byte) Predicate {
	var set [256]bool
	for _, b := range bs {
		set[b] = true
	}
	return func(b byte) bool {
		return set[b]
	}
}

// ByteRange matches lo..hi inclusive.
func ByteRange(lo, hi byte) Predicate {
	return func(b byte) bool {
		return b >= lo && b <= hi
	}
}

func Not(p Predicate) Predicate {
	return func(b byte) bool {
		return !p(b)
	}
}

func Or(ps ...Predicate) Predicate {
	return func(b byte) bool {
		for _, p := range ps {
			if p(b) {
				return true
			}
		}
		return false
	}
}

func And(ps ...Predicate) Predicate {
	return func(b byte) bool {
		for _, p := range ps {
			if !p(b) {
				return false
			}
		}
		return true
	}
}

// ParseByteSet parses a comma separated list of byte set items into a
// Predicate. An item is a single byte or a range `lo-hi` of two of them.
// A byte is written as
//
//	a        a single ASCII character
//	'a'      a quoted character, also for ',' and '-'
//	0x7f     two hex digits
//	\t \n \r \s \\ \,   escapes; \s is a space
//
// Example: `\s,\t,a-z,0x80-0xBF`.
func ParseByteSet(expr string) (Predicate, error) {
	var set [256]bool
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("empty byte set")
	}
	for _, item := range splitItems(expr) {
		item = strings.TrimSpace(item)
		if item == "" {
			return nil, fmt.Errorf("byte set %q: empty item", expr)
		}
		lo, rest, err := parseByte(item)
		if err != nil {
			return nil, fmt.Errorf("byte set %q: %w", expr, err)
		}
		hi := lo
		if rest != "" {
			if rest[0] != '-' {
				return nil, fmt.Errorf("byte set %q: unexpected %q in item %q", expr, rest, item)
			}
			var tail string
			hi, tail, err = parseByte(rest[1:])
			if err != nil {
				return nil, fmt.Errorf("byte set %q: %w", expr, err)
			}
			if tail != "" {
				return nil, fmt.Errorf("byte set %q: unexpected %q in item %q", expr, tail, item)
			}
			if hi < lo {
				return nil, fmt.Errorf("byte set %q: empty range %q", expr, item)
			}
		}
		for b := int(lo); b <= int(hi); b++ {
			set[b] = true
		}
	}
	return func(b byte) bool {
		return set[b]
	}, nil
}

// splitItems splits on commas that are neither escaped nor quoted.
func splitItems(expr string) []string {
	var items []string
	start := 0
	for i := 0; i < len(expr); i++ {
		switch {
		case expr[i] == '\\':
			i++
		case expr[i] == '\'' && i+2 < len(expr) && expr[i+2] == '\'':
			i += 2
		case expr[i] == ',':
			items = append(items, expr[start:i])
			start = i + 1
		}
	}
	return append(items, expr[start:])
}

// parseByte parses one byte from the front of s and returns what is left.
func parseByte(s string) (byte, string, error) {
	switch {
	case s == "":
		return 0, "", fmt.Errorf("missing byte")
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		if len(s) < 4 {
			return 0, "", fmt.Errorf("bad hex byte %q", s)
		}
		v, err := strconv.ParseUint(s[2:4], 16, 8)
		if err != nil {
			return 0, "", fmt.Errorf("bad hex byte %q", s[:4])
		}
		return byte(v), s[4:], nil
	case s[0] == '\\':
		if len(s) < 2 {
			return 0, "", fmt.Errorf("dangling escape")
		}
		switch s[1] {
		case 't':
			return '\t', s[2:], nil
		case 'n':
			return '\n', s[2:], nil
		case 'r':
			return '\r', s[2:], nil
		case 's':
			return ' ', s[2:], nil
		case '\\', ',', '-', '\'':
			return s[1], s[2:], nil
		}
		return 0, "", fmt.Errorf("unknown escape %q", s[:2])
	case s[0] == '\'':
		if len(s) < 3 || s[2] != '\'' {
			return 0, "", fmt.Errorf("bad quoted byte %q", s)
		}
		return s[1], s[3:], nil
	case s[0] >= continuationFirst:
		return 0, "", fmt.Errorf("non-ASCII character in %q; use 0xNN", s)
	}
	return s[0], s[1:], nil
}
