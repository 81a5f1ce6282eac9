package qast

import (
	"io"

	"github.com/cwbudde/go-qit/internal/qerrors"
	"github.com/cwbudde/go-qit/internal/wire"
)

// SequenceType is an ordered variable-length sequence of Elem, emitted as
// the native vector-of-T (spec.md §3).
type SequenceType struct {
	Elem Type
	name string
	k    Expr // generation count, set only by NewFixedSequence
}

// NewSequence builds a Sequence(Elem) type with no generation count; it
// can be read/written but not generated from directly (use NewFixedSequence
// for Sequence(T,k).generate()).
func NewSequence(elem Type) *SequenceType {
	return &SequenceType{Elem: elem}
}

// NewFixedSequence builds a Sequence(Elem, k) type as in spec.md §4.2's
// "Sequence(T,k).generate()": k is the vector length produced by
// Generate(), not part of the wire shape (the wire format always carries
// a length prefix regardless).
func NewFixedSequence(elem Type, k Expr) *SequenceType {
	return &SequenceType{Elem: elem, k: k}
}

func (t *SequenceType) DeclKey() string { return "Sequence(" + t.Elem.DeclKey() + ")" }
func (t *SequenceType) Name() string    { return t.name }

func (t *SequenceType) Equal(other Type) bool {
	o, ok := other.(*SequenceType)
	return ok && t.Elem.Equal(o.Elem)
}

func (t *SequenceType) CheckValue(v any) error {
	lst, ok := v.([]any)
	if !ok {
		return qerrors.New(qerrors.TypeMismatch, "Sequence expects a list, got %T", v)
	}
	for i, el := range lst {
		if err := t.Elem.CheckValue(el); err != nil {
			return qerrors.Wrap(qerrors.TypeMismatch, err, "element %d", i)
		}
	}
	return nil
}

func (t *SequenceType) Read(r *wire.Reader) (any, error) {
	n, err := r.ReadLength()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, n)
	for i := 0; i < n; i++ {
		v, err := t.Elem.Read(r)
		if err == io.EOF {
			return nil, qerrors.New(qerrors.IncompleteRecord, "sequence element %d/%d missing", i, n)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
