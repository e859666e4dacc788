package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

var escapes = map[byte]byte{
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'0':  0,
}

// IsIntLiteral reports whether s starts like an integer: an optional sign
// followed by a digit.
func IsIntLiteral(s string) bool {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	return s != "" && isDigit(s[0])
}

// ParseInt decodes the leading integer of s the way atoi does: an optional
// sign, then digits; anything after the digits is ignored.
func ParseInt(s string) (int64, bool) {
	if !IsIntLiteral(s) {
		return 0, false
	}

	end := 0
	if s[0] == '-' || s[0] == '+' {
		end = 1
	}
	for end < len(s) && isDigit(s[end]) {
		end++
	}

	// out of range values saturate, which is all atoi promises
	n, _ := strconv.ParseInt(s[:end], 10, 64)
	return n, true
}

// ParseChar decodes a character literal: 'x' or '\x'. The empty literal ''
// is the NUL character.
func ParseChar(s string) (byte, error) {
	if len(s) < 2 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return 0, fmt.Errorf("malformed character literal %s", s)
	}

	body := s[1 : len(s)-1]
	switch {
	case len(body) == 0:
		return 0, nil
	case len(body) == 1 && body[0] != '\\':
		return body[0], nil
	case len(body) == 2 && body[0] == '\\':
		c, ok := escapes[body[1]]
		if !ok {
			return 0, fmt.Errorf("unknown escape sequence \\%c in %s", body[1], s)
		}
		return c, nil
	}

	return 0, fmt.Errorf("malformed character literal %s", s)
}

// ParseText decodes a double quoted text literal, resolving the same escapes
// as ParseChar.
func ParseText(s string) (string, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("malformed string literal %s", s)
	}

	body := s[1 : len(s)-1]
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] != '\\' {
			b.WriteByte(body[i])
			continue
		}
		if i+1 == len(body) {
			return "", fmt.Errorf("unterminated escape sequence in %s", s)
		}
		i++
		c, ok := escapes[body[i]]
		if !ok {
			return "", fmt.Errorf("unknown escape sequence \\%c in %s", body[i], s)
		}
		b.WriteByte(c)
	}

	return b.String(), nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
