package lzhuff

import "fmt"

// A TextEncoder produces a human-readable rendering of an LZ77 parse, for
// inspecting what a MatchFinder did. Literal bytes are copied through, with
// '<', '\\' and bytes outside printable ASCII written as \xNN escapes.
// Matches are replaced with <Length,Distance> symbols.
type TextEncoder struct{}

func (t TextEncoder) Encode(dst []byte, src []byte, matches []Match) []byte {
	pos := 0
	for _, m := range matches {
		if m.Unmatched > 0 {
			dst = appendEscaped(dst, src[pos:pos+m.Unmatched])
			pos += m.Unmatched
		}
		if m.Length > 0 {
			dst = fmt.Appendf(dst, "<%d,%d>", m.Length, m.Distance)
			pos += m.Length
		}
	}
	if pos < len(src) {
		dst = appendEscaped(dst, src[pos:])
	}
	return dst
}

func appendEscaped(dst, lit []byte) []byte {
	const hex = "0123456789abcdef"
	for _, b := range lit {
		if b < ' ' || b > '~' || b == '<' || b == '\\' {
			dst = append(dst, '\\', 'x', hex[b>>4], hex[b&15])
			continue
		}
		dst = append(dst, b)
	}
	return dst
}
