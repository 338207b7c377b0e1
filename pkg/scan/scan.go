// Package scan advances through whitespace-delimited text in place.
//
// The scanners take a byte offset into existing text and return the offset
// after the skipped run. The end of the slice and a NUL byte both end the
// text, so buffers filled by package slurp can be scanned directly.
package scan

import "bytes"

// IsSpace matches the C locale whitespace set.
func IsSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// SkipWhitespace returns the offset of the first non-whitespace byte at or
// after pos.
func SkipWhitespace(b []byte, pos int) int {
	if pos < 0 {
		pos = 0
	}
	for pos < len(b) && IsSpace(b[pos]) {
		pos++
	}
	return pos
}

// SkipToken skips leading whitespace and then one token, returning the
// offset just past it.
func SkipToken(b []byte, pos int) int {
	pos = SkipWhitespace(b, pos)
	for pos < len(b) && b[pos] != 0 && !IsSpace(b[pos]) {
		pos++
	}
	return pos
}

// NextToken returns the token starting at or after pos and the offset past
// it. The token is nil at end of text.
func NextToken(b []byte, pos int) ([]byte, int) {
	start := SkipWhitespace(b, pos)
	end := SkipToken(b, start)
	if end == start {
		return nil, end
	}
	return b[start:end], end
}

// Fields splits b into tokens. The returned slices alias b.
func Fields(b []byte) [][]byte {
	var out [][]byte
	for pos := 0; ; {
		tok, next := NextToken(b, pos)
		if tok == nil {
			return out
		}
		out = append(out, tok)
		pos = next
	}
}

// Line returns line n (zero based) of b without its newline, stopping at a
// NUL terminator. ok is false when b has fewer lines.
func Line(b []byte, n int) (line []byte, ok bool) {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	start := 0
	for ; n > 0; n-- {
		i := bytes.IndexByte(b[start:], '\n')
		if i < 0 {
			return nil, false
		}
		start += i + 1
	}
	if start == len(b) && start > 0 {
		return nil, false
	}
	if end := bytes.IndexByte(b[start:], '\n'); end >= 0 {
		return b[start : start+end], true
	}
	return b[start:], true
}
