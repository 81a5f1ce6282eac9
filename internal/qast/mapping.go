package qast

// MappingType models Mapping(K,V) as Sequence(KeyValue(K,V)), per
// spec.md §3 and §9 "Mapping identity": keys are unique and ordered by
// convention of the producer, not enforced by the type; the reference
// behavior is to emit keys in insertion order and treat lookup as
// linear. MappingType is a thin wrapper so host code can still ask for
// the Key/Value element types without re-deriving them from the
// underlying sequence.
type MappingType struct {
	*SequenceType
	KV *KeyValueType
}

// NewMapping builds a Mapping(key, value) type.
func NewMapping(key, value Type) *MappingType {
	kv := NewKeyValue(key, value)
	return &MappingType{SequenceType: NewSequence(kv), KV: kv}
}

// Equal overrides the embedded SequenceType.Equal for the same reason as
// KeyValueType.Equal: a *MappingType's concrete type never satisfies a
// *SequenceType assertion.
func (t *MappingType) Equal(other Type) bool {
	o, ok := other.(*MappingType)
	return ok && t.KV.Equal(o.KV)
}
