package packstream

import "fmt"

// Kind identifies which variant of the value tree a Value is. Graph
// packages that hydrate structures into typed domain objects (see
// graph.Hydrator) report one of the Kind* constants from KindNode
// onward so the Packer can recognize and reject them as request
// parameters without importing the graph package (spec.md §4.1:
// "Node, Relationship, Path instances in user parameters... fail").
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindList
	KindMap
	KindStructure

	// Graph-hydrated kinds. Declared here, not in package graph, so the
	// Packer can reject them without an import cycle.
	KindNode
	KindRelationship
	KindUnboundRelationship
	KindPath
)

// IsGraphEntity reports whether k names one of the hydrated graph
// domain kinds (Node, Relationship, UnboundRelationship, Path).
func (k Kind) IsGraphEntity() bool {
	return k >= KindNode
}

// Value is any member of the PackStream value tree: the primitive
// variants below, plus the graph-hydrated variants produced by
// package graph's Unpacker hook.
type Value interface {
	// Kind reports which variant this value is.
	Kind() Kind
}

// Null is the PackStream null value.
type Null struct{}

// Kind implements Value.
func (Null) Kind() Kind { return KindNull }

// Bool is a PackStream boolean.
type Bool bool

// Kind implements Value.
func (Bool) Kind() Kind { return KindBool }

// Int is a PackStream integer, always 64-bit signed (spec.md §3).
type Int int64

// Kind implements Value.
func (Int) Kind() Kind { return KindInt }

// Float is a PackStream IEEE-754 double.
type Float float64

// Kind implements Value.
func (Float) Kind() Kind { return KindFloat }

// String is a PackStream UTF-8 string.
type String string

// Kind implements Value.
func (String) Kind() Kind { return KindString }

// Bytes is an opaque PackStream byte sequence.
type Bytes []byte

// Kind implements Value.
func (Bytes) Kind() Kind { return KindBytes }

// List is an ordered PackStream sequence; insertion order is
// preserved on both encode and decode.
type List []Value

// Kind implements Value.
func (List) Kind() Kind { return KindList }

// absent is the sentinel a Map value may hold to mean "omit this key
// on encode" (spec.md §4.1: "skip keys whose value is the absent
// sentinel").
type absent struct{}

// Kind implements Value.
func (absent) Kind() Kind { return KindNull }

// Absent is the sentinel value for Map.Set: a key set to Absent is
// skipped by the Packer and does not count toward the emitted header.
var Absent Value = absent{}

// pair is one Map entry, kept in a slice rather than a plain Go map so
// insertion order survives encode, mirroring amf0's property/objectBase
// pattern in the teacher package.
type pair struct {
	key   string
	value Value
}

// Map is a PackStream map from string keys to Values. Duplicate keys
// set during decode follow last-write-wins; duplicate keys are never
// produced during encode (spec.md §3).
type Map struct {
	pairs []pair
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{}
}

// Kind implements Value.
func (*Map) Kind() Kind { return KindMap }

// Set inserts or overwrites the value for key, preserving the original
// insertion position on overwrite.
func (m *Map) Set(key string, value Value) {
	for i := range m.pairs {
		if m.pairs[i].key == key {
			m.pairs[i].value = value
			return
		}
	}
	m.pairs = append(m.pairs, pair{key: key, value: value})
}

// Get returns the value for key and whether it was present.
func (m *Map) Get(key string) (Value, bool) {
	for _, p := range m.pairs {
		if p.key == key {
			return p.value, true
		}
	}
	return nil, false
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, len(m.pairs))
	for _, p := range m.pairs {
		keys = append(keys, p.key)
	}
	return keys
}

// Len returns the number of entries, including any set to Absent
// (callers checking the wire count should use EncodedLen).
func (m *Map) Len() int {
	return len(m.pairs)
}

// EncodedLen returns the number of entries that are not Absent, i.e.
// the count the Packer will emit in the map header.
func (m *Map) EncodedLen() int {
	n := 0
	for _, p := range m.pairs {
		if _, ok := p.value.(absent); !ok {
			n++
		}
	}
	return n
}

// Structure is a generic tagged record: a one-byte signature and a
// fixed field list. Protocol messages and unrecognized domain objects
// both travel as Structure on the wire (spec.md §3).
type Structure struct {
	Signature byte
	Fields    List
}

// Kind implements Value.
func (*Structure) Kind() Kind { return KindStructure }

func (s *Structure) String() string {
	return fmt.Sprintf("Structure{signature: 0x%02X, fields: %d}", s.Signature, len(s.Fields))
}
