package lzhuff

import "fmt"

// Config holds the bit budget of an indicator, and so the reach of the
// match finder. A wider window finds more matches but makes every indicator
// bigger and every search slower.
type Config struct {
	// WindowBits is the width of the back-reference field. Matches are
	// searched for up to 2^WindowBits-1 bytes back.
	WindowBits int

	// LengthBits is the width of the match length field. A match is at most
	// 2^LengthBits-1 bytes long.
	LengthBits int

	// DistanceBits is the width of the field that counts the literal bytes
	// following a match. A literal run is at most 2^DistanceBits-1 bytes
	// long. It may not exceed 16, since the first literal run is stored in
	// a 16-bit prefix.
	DistanceBits int

	// MatchThreshold is the length a match must exceed to be used.
	// The default (0) is IndicatorSize, so that a match always saves more
	// than the indicator that describes it costs.
	MatchThreshold int
}

// levels are the presets returned by Level. Level 5 is the widest budget,
// at 40 bits per indicator.
var levels = [...]Config{
	{WindowBits: 10, LengthBits: 6, DistanceBits: 6},
	{WindowBits: 12, LengthBits: 8, DistanceBits: 8},
	{WindowBits: 14, LengthBits: 8, DistanceBits: 10},
	{WindowBits: 16, LengthBits: 10, DistanceBits: 14},
	{WindowBits: 18, LengthBits: 12, DistanceBits: 10},
}

const (
	MinLevel     = 1
	MaxLevel     = len(levels)
	DefaultLevel = 3
)

// Level returns the preset Config for a compression level. Levels outside
// the range MinLevel–MaxLevel are replaced with the closest level available.
func Level(level int) Config {
	if level < MinLevel {
		level = MinLevel
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return levels[level-1]
}

func DefaultConfig() Config {
	return Level(DefaultLevel)
}

// Validate reports whether c describes a usable token format.
func (c Config) Validate() error {
	switch {
	case c.WindowBits < 1 || c.WindowBits > 30:
		return fmt.Errorf("%w: WindowBits %d not in [1, 30]", ErrInvalidConfig, c.WindowBits)
	case c.LengthBits < 1 || c.LengthBits > 30:
		return fmt.Errorf("%w: LengthBits %d not in [1, 30]", ErrInvalidConfig, c.LengthBits)
	case c.DistanceBits < 1 || c.DistanceBits > 16:
		return fmt.Errorf("%w: DistanceBits %d not in [1, 16]", ErrInvalidConfig, c.DistanceBits)
	case c.WindowBits+c.LengthBits+c.DistanceBits > 64:
		return fmt.Errorf("%w: indicator wider than 64 bits", ErrInvalidConfig)
	case c.MatchThreshold < 0:
		return fmt.Errorf("%w: negative MatchThreshold", ErrInvalidConfig)
	}
	return nil
}

// IndicatorSize returns the number of bytes in an indicator.
func (c Config) IndicatorSize() int {
	return (c.WindowBits + c.LengthBits + c.DistanceBits + 7) / 8
}

func (c Config) threshold() int {
	if c.MatchThreshold == 0 {
		return c.IndicatorSize()
	}
	return c.MatchThreshold
}

func (c Config) maxBackRef() int   { return 1<<c.WindowBits - 1 }
func (c Config) maxLength() int    { return 1<<c.LengthBits - 1 }
func (c Config) maxUnmatched() int { return 1<<c.DistanceBits - 1 }
