// Package wire implements the host side of the binary wire format emitted
// by a generated qit program: little-endian 4-byte ints, one-byte bools,
// 4-byte length-prefixed sequences, and field-wise products/structs. See
// spec.md §6 "Wire format between generated binary and host".
package wire

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/cwbudde/go-qit/internal/qerrors"
)

// Reader wraps a generated program's output file and exposes the
// primitive reads every Type composes to deserialize its values.
type Reader struct {
	r *bufio.Reader
}

// NewReader wraps r for qit wire-format reading.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// AtEOF reports whether the next read would hit a clean element boundary
// EOF (zero bytes available). It does not consume input.
func (r *Reader) AtEOF() (bool, error) {
	_, err := r.r.Peek(1)
	if err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// ReadInt reads a little-endian signed 32-bit integer. Returns io.EOF only
// if zero bytes were available at the start of the read (a clean element
// boundary); a short read mid-value is reported as IncompleteRecord.
func (r *Reader) ReadInt() (int32, error) {
	var buf [4]byte
	n, err := io.ReadFull(r.r, buf[:])
	if n == 0 && err == io.EOF {
		return 0, io.EOF
	}
	if err != nil {
		return 0, qerrors.Wrap(qerrors.IncompleteRecord, err, "reading int32")
	}
	return int32(binary.LittleEndian.Uint32(buf[:])), nil
}

// ReadBool reads a single 0/1 byte.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.r.ReadByte()
	if err == io.EOF {
		return false, io.EOF
	}
	if err != nil {
		return false, qerrors.Wrap(qerrors.IncompleteRecord, err, "reading bool")
	}
	return b != 0, nil
}

// ReadLength reads the 4-byte little-endian length prefix of a Sequence.
// Like ReadInt, it returns io.EOF when zero bytes were available at the
// start of the read; callers composing this as a non-first child are
// responsible for turning that io.EOF into IncompleteRecord (see
// spec.md §4.1: "signalling clean EOF only when the first child returns
// EOF and raising IncompleteRecord otherwise").
func (r *Reader) ReadLength() (int, error) {
	var buf [4]byte
	n, err := io.ReadFull(r.r, buf[:])
	if n == 0 && err == io.EOF {
		return 0, io.EOF
	}
	if err != nil {
		return 0, qerrors.Wrap(qerrors.IncompleteRecord, err, "reading sequence length")
	}
	return int(binary.LittleEndian.Uint32(buf[:])), nil
}
