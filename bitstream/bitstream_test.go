package bitstream

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestTrailer(t *testing.T) {
	for _, tt := range []struct {
		name string
		bits []bool
		want []byte
	}{
		{"empty", nil, []byte{0, 0}},
		{"partial", []bool{true, false, true}, []byte{0xa0, 3}},
		{"full", []bool{true, true, true, true, false, false, false, true}, []byte{0xf1, 8}},
		{"nine", []bool{false, false, false, false, false, false, false, true, true}, []byte{0x01, 0x80, 1}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter()
			for _, b := range tt.bits {
				w.WriteBool(b)
			}
			got, err := w.Close()
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Fatalf("got %x, want %x", got, tt.want)
			}

			r, err := NewReader(got)
			if err != nil {
				t.Fatal(err)
			}
			if r.Remaining() != uint64(len(tt.bits)) {
				t.Fatalf("Remaining() = %d, want %d", r.Remaining(), len(tt.bits))
			}
			for i, want := range tt.bits {
				b, err := r.ReadBool()
				if err != nil {
					t.Fatalf("bit %d: %v", i, err)
				}
				if b != want {
					t.Fatalf("bit %d: got %v, want %v", i, b, want)
				}
			}
			if _, err := r.ReadBool(); err != io.EOF {
				t.Fatalf("read past end: got %v, want io.EOF", err)
			}
		})
	}
}

func TestMixedWidths(t *testing.T) {
	w := NewWriter()
	w.WriteByte(0x7f)
	w.WriteUint32(0xdeadbeef)
	w.WriteBits(0x5, 3)
	w.WriteBool(true)
	w.WriteBits(0x1234, 13)
	if w.Len() != 8+32+3+1+13 {
		t.Fatalf("Len() = %d", w.Len())
	}
	packed, err := w.Close()
	if err != nil {
		t.Fatal(err)
	}

	r, err := NewReader(packed)
	if err != nil {
		t.Fatal(err)
	}
	if b, err := r.ReadByte(); err != nil || b != 0x7f {
		t.Fatalf("ReadByte() = %#x, %v", b, err)
	}
	if v, err := r.ReadUint32(); err != nil || v != 0xdeadbeef {
		t.Fatalf("ReadUint32() = %#x, %v", v, err)
	}
	if v, err := r.ReadBits(3); err != nil || v != 0x5 {
		t.Fatalf("ReadBits(3) = %#x, %v", v, err)
	}
	if b, err := r.ReadBool(); err != nil || !b {
		t.Fatalf("ReadBool() = %v, %v", b, err)
	}
	if _, err := r.ReadBits(14); err != io.ErrUnexpectedEOF {
		t.Fatalf("over-long read: got %v, want io.ErrUnexpectedEOF", err)
	}
	if v, err := r.ReadBits(13); err != nil || v != 0x1234 {
		t.Fatalf("ReadBits(13) = %#x, %v", v, err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("Remaining() = %d after reading everything", r.Remaining())
	}
}

func TestBadTrailer(t *testing.T) {
	for _, src := range [][]byte{
		nil,
		{0},
		{0xff, 9},
		{0xff, 0xff, 0},
	} {
		if _, err := NewReader(src); !errors.Is(err, ErrCorrupt) {
			t.Errorf("NewReader(%x): got %v, want ErrCorrupt", src, err)
		}
	}
}
