package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andybalholm/lzhuff"
)

func runArgs(t *testing.T, args ...string) error {
	t.Helper()
	*compress, *decompress, *check, *bench, *text = false, false, false, false, false
	*level, *output, *chartPath, *verbose, *fast = lzhuff.DefaultLevel, "", "", false, false
	if err := flag.CommandLine.Parse(args); err != nil {
		t.Fatal(err)
	}
	return run()
}

func TestCompressDecompressFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	data := []byte(strings.Repeat("To be, or not to be, that is the question:\n", 50))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := runArgs(t, "-level", "2", "-c", path); err != nil {
		t.Fatal(err)
	}
	compressed := path + compressedSuffix
	info, err := os.Stat(compressed)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() >= int64(len(data)) {
		t.Fatalf("compressed file is %d bytes for %d", info.Size(), len(data))
	}

	if err := runArgs(t, "-level", "2", "-d", compressed); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(compressed + decompressedSuffix)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("decompressed file doesn't match")
	}

	out := filepath.Join(dir, "named")
	if err := runArgs(t, "-level", "2", "-o", out, "-d", compressed); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatal(err)
	}
}

func TestCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input")
	if err := os.WriteFile(path, []byte("abcabcabcabc"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := runArgs(t, "-cdc", path); err != nil {
		t.Fatal(err)
	}
}

func TestFastAndBench(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input")
	data := []byte(strings.Repeat("the rain in spain stays mainly in the plain. ", 200))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := runArgs(t, "-fast", "-level", "5", "-v", "-cdc", path); err != nil {
		t.Fatal(err)
	}

	chart := filepath.Join(dir, "ratios.png")
	if err := runArgs(t, "-fast", "-bench", "-chart", chart, path); err != nil {
		t.Fatal(err)
	}
	png, err := os.ReadFile(chart)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatal("chart is not a PNG")
	}
}

func TestMissingInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing")
	err := runArgs(t, "-c", path)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("got %v, want os.ErrNotExist", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("output written for a missing input: %v", entries)
	}
}

func TestCorruptInputWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.cpr")
	if err := os.WriteFile(path, []byte{0, 1, 2}, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := runArgs(t, "-d", path); !errors.Is(err, lzhuff.ErrCorrupt) {
		t.Fatalf("got %v, want ErrCorrupt", err)
	}
	if _, err := os.Stat(path + decompressedSuffix); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("output written for corrupt input")
	}
}

func TestUsage(t *testing.T) {
	if err := runArgs(t, "somefile"); err != errUsage {
		t.Fatalf("no mode: got %v", err)
	}
	if err := runArgs(t, "-c", "-d", "somefile"); err != errUsage {
		t.Fatalf("two modes: got %v", err)
	}
	if err := runArgs(t, "-c"); err != errUsage {
		t.Fatalf("no path: got %v", err)
	}
}

func TestPrintParse(t *testing.T) {
	var buf bytes.Buffer
	if err := printParse(&buf, newCodec(lzhuff.DefaultLevel, false, false), []byte("abcabcabcabc")); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "abc<9,3>\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestWriteFileFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-dir", "out")
	if err := writeFile(path, []byte("data")); err == nil {
		t.Fatal("no error writing into a missing directory")
	}
}
