package lzhuff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// A TokenEncoder writes matches in the token format: a 16-bit big-endian
// count of the literal bytes before the first match, those bytes, and then
// for each match an indicator followed by the literal bytes after it.
//
// An indicator is back-reference ‖ length ‖ literal count, right-aligned in
// Config.IndicatorSize() big-endian bytes.
type TokenEncoder struct {
	Config Config
}

var errMatchesMismatch = errors.New("lzhuff: matches do not describe the input")

// Encode appends the token format of src to dst, using the match
// information from matches. If any field does not fit its bit width, it
// returns an *OverflowError and no output.
func (e TokenEncoder) Encode(dst []byte, src []byte, matches []Match) ([]byte, error) {
	c := e.Config
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var tail int
	if n := len(matches); n > 0 && matches[n-1].Length == 0 {
		tail = matches[n-1].Unmatched
		matches = matches[:n-1]
	}
	first := tail
	if len(matches) > 0 {
		first = matches[0].Unmatched
	}
	if first < 0 || first > math.MaxUint16 {
		return nil, &OverflowError{Field: "first literal run", Value: first, Bits: 16}
	}

	dst = binary.BigEndian.AppendUint16(dst, uint16(first))
	if first > len(src) {
		return nil, fmt.Errorf("%w: literal run past the end", errMatchesMismatch)
	}
	dst = append(dst, src[:first]...)
	pos := first

	for i, m := range matches {
		next := tail
		if i+1 < len(matches) {
			next = matches[i+1].Unmatched
		}
		if next < 0 || m.Length < 0 || m.Length > 0 && (m.Distance <= 0 || m.Distance > pos) {
			return nil, fmt.Errorf("%w: match %+v at byte %d", errMatchesMismatch, m, pos)
		}
		var err error
		dst, err = c.appendIndicator(dst, m.Distance, m.Length, next)
		if err != nil {
			return nil, err
		}
		pos += m.Length
		if pos+next > len(src) {
			return nil, fmt.Errorf("%w: literal run past the end", errMatchesMismatch)
		}
		dst = append(dst, src[pos:pos+next]...)
		pos += next
	}

	if pos != len(src) {
		return nil, fmt.Errorf("%w: matches cover %d of %d bytes", errMatchesMismatch, pos, len(src))
	}
	return dst, nil
}

func (c Config) appendIndicator(dst []byte, backRef, length, unmatched int) ([]byte, error) {
	switch {
	case backRef < 0 || backRef > c.maxBackRef():
		return dst, &OverflowError{Field: "back-reference", Value: backRef, Bits: c.WindowBits}
	case length > c.maxLength():
		return dst, &OverflowError{Field: "match length", Value: length, Bits: c.LengthBits}
	case unmatched > c.maxUnmatched():
		return dst, &OverflowError{Field: "literal run", Value: unmatched, Bits: c.DistanceBits}
	}

	v := uint64(backRef)<<(c.LengthBits+c.DistanceBits) |
		uint64(length)<<c.DistanceBits |
		uint64(unmatched)
	for i := c.IndicatorSize() - 1; i >= 0; i-- {
		dst = append(dst, byte(v>>(8*i)))
	}
	return dst, nil
}

// parseIndicator unpacks an indicator. It reports false if the padding
// bits above the three fields are not zero.
func (c Config) parseIndicator(b []byte) (backRef, length, unmatched int, ok bool) {
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	width := c.WindowBits + c.LengthBits + c.DistanceBits
	if width < 64 && v>>width != 0 {
		return 0, 0, 0, false
	}
	unmatched = int(v & uint64(c.maxUnmatched()))
	length = int(v >> c.DistanceBits & uint64(c.maxLength()))
	backRef = int(v >> (c.LengthBits + c.DistanceBits) & uint64(c.maxBackRef()))
	return backRef, length, unmatched, true
}

// DecodeTokens appends the bytes described by the token stream src to dst.
// Back-references may not reach into the bytes dst held before the call.
func DecodeTokens(dst, src []byte, c Config) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if len(src) < 2 {
		return nil, corrupt("token stream shorter than its prefix")
	}
	base := len(dst)

	n := int(binary.BigEndian.Uint16(src))
	pos := 2
	if pos+n > len(src) {
		return nil, corrupt("first literal run of %d bytes overruns the input", n)
	}
	dst = append(dst, src[pos:pos+n]...)
	pos += n

	size := c.IndicatorSize()
	for pos < len(src) {
		if pos+size > len(src) {
			return nil, corrupt("truncated indicator at byte %d", pos)
		}
		backRef, length, unmatched, ok := c.parseIndicator(src[pos : pos+size])
		if !ok {
			return nil, corrupt("invalid indicator at byte %d", pos)
		}
		pos += size

		if length > 0 {
			if backRef == 0 || backRef > len(dst)-base {
				return nil, corrupt("back-reference %d with %d bytes of output", backRef, len(dst)-base)
			}
			// Copy one byte at a time; the source may overlap the bytes being
			// written when backRef < length.
			from := len(dst) - backRef
			for i := 0; i < length; i++ {
				dst = append(dst, dst[from+i])
			}
		}

		if pos+unmatched > len(src) {
			return nil, corrupt("literal run of %d bytes overruns the input", unmatched)
		}
		dst = append(dst, src[pos:pos+unmatched]...)
		pos += unmatched
	}
	return dst, nil
}
