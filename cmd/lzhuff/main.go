// Command lzhuff compresses and decompresses files with package lzhuff.
//
//	lzhuff -c file        writes file.cpr
//	lzhuff -d file.cpr    writes file.cpr.dcpr
//	lzhuff -cdc file      compresses, decompresses, and checks the result
//	lzhuff -bench file    compares the ratio with other compressors
//	lzhuff -text file     prints the LZ77 parse
//
// -fast finds matches with hash chains, which is much quicker at the higher
// levels and compresses slightly worse. The output format is the same.
//
// Data must be decompressed with the -level it was compressed with.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/andybalholm/lzhuff"
	"github.com/andybalholm/lzhuff/baseline"
)

const (
	compressedSuffix   = ".cpr"
	decompressedSuffix = ".dcpr"
)

var (
	compress   = flag.Bool("c", false, "compress the input file")
	decompress = flag.Bool("d", false, "decompress the input file")
	check      = flag.Bool("cdc", false, "compress and decompress the input file, and check the result")
	bench      = flag.Bool("bench", false, "compare the compression ratio with other compressors")
	text       = flag.Bool("text", false, "print the LZ77 parse of the input file")
	level      = flag.Int("level", lzhuff.DefaultLevel, fmt.Sprintf("compression level (%d-%d)", lzhuff.MinLevel, lzhuff.MaxLevel))
	output     = flag.String("o", "", "output file (default: the input path plus "+compressedSuffix+" or "+decompressedSuffix+")")
	chartPath  = flag.String("chart", "", "with -bench, also write a PNG chart of the ratios to this file")
	verbose    = flag.Bool("v", false, "report match-finding progress")
	fast       = flag.Bool("fast", false, "find matches with hash chains instead of searching the whole window")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("lzhuff: ")
	flag.Parse()
	if err := run(); err != nil {
		log.Fatalln(err)
	}
}

var errUsage = errors.New("usage: lzhuff [-level n] [-fast] [-v] [-o output] [-chart file] (-c | -d | -cdc | -bench | -text) path")

func run() error {
	modes := 0
	for _, m := range []bool{*compress, *decompress, *check, *bench, *text} {
		if m {
			modes++
		}
	}
	if modes != 1 || flag.NArg() != 1 {
		return errUsage
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	codec := newCodec(*level, *fast, *verbose)

	switch {
	case *compress:
		return compressFile(codec, data, outputPath(path, compressedSuffix))
	case *decompress:
		return decompressFile(codec, data, outputPath(path, decompressedSuffix))
	case *check:
		return checkRoundTrip(codec, data)
	case *bench:
		return compare(codec, path, data)
	default:
		return printParse(os.Stdout, codec, data)
	}
}

func newCodec(level int, fast, verbose bool) *lzhuff.Codec {
	cfg := lzhuff.Level(level)
	var progress func(done, total int)
	if verbose {
		progress = func(done, total int) {
			if total > 0 {
				log.Printf("%.2f%%", float64(done)/float64(total)*100)
			}
		}
	}
	if fast {
		return &lzhuff.Codec{Config: cfg, MatchFinder: &lzhuff.HashChain{Config: cfg, Progress: progress}}
	}
	return &lzhuff.Codec{Config: cfg, MatchFinder: &lzhuff.WindowSearch{Config: cfg, Progress: progress}}
}

func outputPath(path, suffix string) string {
	if *output != "" {
		return *output
	}
	return path + suffix
}

func compressFile(codec *lzhuff.Codec, data []byte, out string) error {
	compressed, err := codec.Compress(data)
	if err != nil {
		return err
	}
	if err := writeFile(out, compressed); err != nil {
		return err
	}
	log.Printf("wrote %s: %d bytes, %.2f%% of the original", out, len(compressed), percent(len(compressed), len(data)))
	return nil
}

func decompressFile(codec *lzhuff.Codec, data []byte, out string) error {
	decompressed, err := codec.Decompress(data)
	if err != nil {
		return err
	}
	if err := writeFile(out, decompressed); err != nil {
		return err
	}
	log.Printf("wrote %s: %d bytes", out, len(decompressed))
	return nil
}

func checkRoundTrip(codec *lzhuff.Codec, data []byte) error {
	report, err := codec.Verify(data)
	if err != nil {
		return err
	}
	log.Printf("round trip ok: %d -> %d bytes (%.2f%% of the original), xxh32 %08x",
		report.OriginalSize, report.CompressedSize, report.Ratio()*100, report.Checksum)
	return nil
}

func compare(codec *lzhuff.Codec, path string, data []byte) error {
	compressors := append([]baseline.Compressor{{Name: "lzhuff", Compress: codec.Compress}}, baseline.Standard()...)
	results, err := baseline.Run(data, compressors)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Printf("%-8s %10d %10d %8.3f\n", r.Name, r.OriginalSize, r.CompressedSize, r.Ratio())
	}
	if *chartPath == "" {
		return nil
	}

	f, err := os.Create(*chartPath)
	if err != nil {
		return err
	}
	if err := baseline.RenderChart(f, filepath.Base(path), results); err != nil {
		f.Close()
		os.Remove(*chartPath)
		return err
	}
	return f.Close()
}

func printParse(w io.Writer, codec *lzhuff.Codec, data []byte) error {
	matches := codec.MatchFinder.FindMatches(nil, data)
	out := lzhuff.TextEncoder{}.Encode(nil, data, matches)
	out = append(out, '\n')
	_, err := w.Write(out)
	return err
}

func percent(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return float64(n) / float64(of) * 100
}

// writeFile writes data to a temporary file next to path and renames it
// into place, so a failure never leaves a partial output file.
func writeFile(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
