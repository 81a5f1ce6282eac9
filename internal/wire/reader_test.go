package wire

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/cwbudde/go-qit/internal/qerrors"
)

func encodeInt(n int32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(n))
	return buf
}

func TestReadInt_RoundTrip(t *testing.T) {
	for _, want := range []int32{0, 1, -1, 42, -1000000, 1 << 30} {
		r := NewReader(bytes.NewReader(encodeInt(want)))
		got, err := r.ReadInt()
		if err != nil {
			t.Fatalf("ReadInt(%d): %v", want, err)
		}
		if got != want {
			t.Fatalf("ReadInt: got %d, want %d", got, want)
		}
	}
}

func TestReadBool_RoundTrip(t *testing.T) {
	for _, want := range []bool{true, false} {
		var b byte
		if want {
			b = 1
		}
		r := NewReader(bytes.NewReader([]byte{b}))
		got, err := r.ReadBool()
		if err != nil {
			t.Fatalf("ReadBool(%v): %v", want, err)
		}
		if got != want {
			t.Fatalf("ReadBool: got %v, want %v", got, want)
		}
	}
}

func TestReadLength_RoundTrip(t *testing.T) {
	r := NewReader(bytes.NewReader(encodeInt(3)))
	n, err := r.ReadLength()
	if err != nil {
		t.Fatalf("ReadLength: %v", err)
	}
	if n != 3 {
		t.Fatalf("got %d, want 3", n)
	}
}

func TestReadInt_CleanEOFAtElementBoundary(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	_, err := r.ReadInt()
	if err != io.EOF {
		t.Fatalf("got %v, want io.EOF", err)
	}
}

func TestReadBool_CleanEOFAtElementBoundary(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	_, err := r.ReadBool()
	if err != io.EOF {
		t.Fatalf("got %v, want io.EOF", err)
	}
}

func TestReadInt_ShortReadIsIncompleteRecord(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2})) // 2 of 4 bytes
	_, err := r.ReadInt()
	if !qerrors.Is(err, qerrors.IncompleteRecord) {
		t.Fatalf("got %v, want an IncompleteRecord error for a short read", err)
	}
	if err == io.EOF {
		t.Fatal("a short read must not be reported as a clean io.EOF")
	}
}

func TestReadLength_ShortReadIsIncompleteRecord(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1}))
	_, err := r.ReadLength()
	if !qerrors.Is(err, qerrors.IncompleteRecord) {
		t.Fatalf("got %v, want an IncompleteRecord error for a short length read", err)
	}
}

func TestReader_SequentialReadsAcrossMultipleValues(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(encodeInt(7))
	buf.WriteByte(1)
	buf.Write(encodeInt(-3))

	r := NewReader(&buf)
	n, err := r.ReadInt()
	if err != nil || n != 7 {
		t.Fatalf("first ReadInt: got (%d, %v)", n, err)
	}
	b, err := r.ReadBool()
	if err != nil || !b {
		t.Fatalf("ReadBool: got (%v, %v)", b, err)
	}
	n, err = r.ReadInt()
	if err != nil || n != -3 {
		t.Fatalf("second ReadInt: got (%d, %v)", n, err)
	}
	if _, err := r.ReadInt(); err != io.EOF {
		t.Fatalf("expected clean io.EOF after the last value, got %v", err)
	}
}

func TestAtEOF(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	atEOF, err := r.AtEOF()
	if err != nil {
		t.Fatalf("AtEOF: %v", err)
	}
	if !atEOF {
		t.Fatal("expected AtEOF on an empty reader")
	}

	r2 := NewReader(bytes.NewReader(encodeInt(1)))
	atEOF2, err := r2.AtEOF()
	if err != nil {
		t.Fatalf("AtEOF: %v", err)
	}
	if atEOF2 {
		t.Fatal("expected not-at-EOF when bytes remain")
	}
}
