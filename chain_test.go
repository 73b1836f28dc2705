package lzhuff

import (
	"bytes"
	"testing"
)

func TestHashChainParse(t *testing.T) {
	src := []byte("abcabcabcabc")
	matches := (&HashChain{Config: small}).FindMatches(nil, src)
	if text := (TextEncoder{}).Encode(nil, src, matches); string(text) != "abc<9,3>" {
		t.Fatalf("text form = %q", text)
	}
}

func TestHashChainRoundTrip(t *testing.T) {
	q := new(HashChain)
	for _, src := range [][]byte{
		nil,
		[]byte("abc"),
		bytes.Repeat([]byte{'x'}, 70000),
		sampleText(),
		randomBytes(20000, 4),
		randomBytes(5000, 256),
	} {
		for _, level := range []int{1, 3, 5} {
			q.Config = Level(level)
			c := &Codec{Config: q.Config, MatchFinder: q}
			if _, err := c.Verify(src); err != nil {
				t.Fatalf("level %d, %d bytes: %v", level, len(src), err)
			}
		}
	}
}

func TestHashChainWindow(t *testing.T) {
	// The only repeat of "wxyz" is 8 bytes back, outside a 3-bit window.
	src := []byte("wxyz1234wxyz")
	q := &HashChain{Config: Config{WindowBits: 3, LengthBits: 4, DistanceBits: 4, MatchThreshold: 1}}
	for _, m := range q.FindMatches(nil, src) {
		if m.Length > 0 {
			t.Fatalf("found %+v outside the window", m)
		}
	}
	q.Config.WindowBits = 4
	matches := q.FindMatches(nil, src)
	want := []Match{{Unmatched: 8, Length: 4, Distance: 8}}
	if len(matches) != 1 || matches[0] != want[0] {
		t.Fatalf("got %+v, want %+v", matches, want)
	}
}

func TestHashChainComparable(t *testing.T) {
	src := sampleText()[:10000]
	cfg := Level(2)
	exhaustive, err := (&Codec{Config: cfg}).Compress(src)
	if err != nil {
		t.Fatal(err)
	}
	chained, err := (&Codec{Config: cfg, MatchFinder: &HashChain{Config: cfg, SearchLen: 256}}).Compress(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(chained) > len(exhaustive)*5/4 {
		t.Fatalf("hash chain output is %d bytes, exhaustive search %d", len(chained), len(exhaustive))
	}
}

func BenchmarkCompressHashChainLevel5(b *testing.B) {
	src := sampleText()
	c := &Codec{Config: Level(5), MatchFinder: &HashChain{Config: Level(5)}}
	compressed, err := c.Compress(src)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(src)))
	b.ReportMetric(float64(len(src))/float64(len(compressed)), "ratio")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Compress(src)
	}
}
