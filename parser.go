package lzhuff

// An AbsoluteMatch is like a Match, but it stores indexes into the byte
// stream instead of lengths.
type AbsoluteMatch struct {
	// Start is the index of the first byte.
	Start int

	// End is the index of the byte after the last byte
	// (so that End - Start = Length).
	End int

	// Match is the index of the previous data that matches
	// (Start - Match = Distance).
	Match int
}

// A Searcher is the source of matches for a Parser. It is a lower-level
// interface than MatchFinder, only looking for matches at one position at a
// time.
type Searcher interface {
	// Search looks for matches starting at pos and appends them to dst.
	// In each match, Start is pos, End is at most max, and
	// Match < Start < End. Match may be >= min; the source of a match is
	// allowed to overlap the bytes it describes.
	Search(dst []AbsoluteMatch, pos, min, max int) []AbsoluteMatch
}

// A Parser chooses which matches to use to compress the data.
type Parser interface {
	// Parse gets matches from src, chooses which ones to use, and appends
	// them to dst. The matches cover the range of bytes from start to end.
	Parse(dst []Match, src Searcher, start, end int) []Match
}

// A GreedyParser implements the greedy matching strategy: it goes from start
// to end, using the longest match at each position if it is longer than
// Threshold.
//
// A literal run can't grow past MaxUnmatched bytes. When it gets there, the
// parser emits the match it has, even a short one, or a Match with a Length
// of 0, and starts a new run.
type GreedyParser struct {
	Threshold    int
	MaxUnmatched int

	// Progress, if non-nil, is called every 64 KiB, and once at the end,
	// with the number of bytes parsed so far.
	Progress func(done, total int)

	matchCache []AbsoluteMatch
}

const progressInterval = 1 << 16

// newGreedyParser returns a GreedyParser that follows the rules of c.
func newGreedyParser(c Config, progress func(done, total int)) *GreedyParser {
	return &GreedyParser{
		Threshold:    c.threshold(),
		MaxUnmatched: c.maxUnmatched(),
		Progress:     progress,
	}
}

func (p *GreedyParser) Parse(dst []Match, src Searcher, start, end int) []Match {
	matches := p.matchCache[:0]
	pos, nextEmit := start, start
	nextReport := start + progressInterval

	for pos < end {
		if p.Progress != nil && pos >= nextReport {
			p.Progress(pos-start, end-start)
			nextReport = pos + progressInterval
		}

		matches = src.Search(matches[:0], pos, nextEmit, end)
		m := longestMatch(matches)
		length := m.End - m.Start
		if length > p.Threshold || pos-nextEmit >= p.MaxUnmatched {
			dst = append(dst, Match{
				Unmatched: pos - nextEmit,
				Length:    length,
				Distance:  m.Start - m.Match,
			})
			nextEmit = pos
			if length > 0 {
				pos = m.End
				nextEmit = pos
				continue
			}
		}
		pos++
	}

	if nextEmit < end {
		dst = append(dst, Match{
			Unmatched: end - nextEmit,
		})
	}
	if p.Progress != nil {
		p.Progress(end-start, end-start)
	}
	p.matchCache = matches[:0]
	return dst
}

// longestMatch returns the longest of matches, or the first of the longest
// if there is a tie.
func longestMatch(matches []AbsoluteMatch) AbsoluteMatch {
	var longest AbsoluteMatch

	for _, m := range matches {
		if m.End-m.Start > longest.End-longest.Start {
			longest = m
		}
	}

	return longest
}
