package graph_test

import (
	"errors"
	"testing"

	"github.com/boltstream/packstream/packstream"
	"github.com/boltstream/packstream/packstream/bufchannel"
	"github.com/boltstream/packstream/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUnpacker() *packstream.Unpacker {
	u := packstream.NewUnpacker()
	u.Hydrator = graph.Hydrator{}
	return u
}

func packAndUnpack(t *testing.T, v packstream.Value) packstream.Value {
	t.Helper()
	p := packstream.NewPacker(true)
	buf := bufchannel.New()
	var encErr error
	p.Pack(v, buf, func(err error) { encErr = err })
	require.NoError(t, encErr)

	got, err := newUnpacker().Unpack(bufchannel.NewFromBytes(buf.Bytes()))
	require.NoError(t, err)
	return got
}

func structNode(identity int64, labels []string) *packstream.Structure {
	labelValues := make(packstream.List, len(labels))
	for i, l := range labels {
		labelValues[i] = packstream.String(l)
	}
	return &packstream.Structure{
		Signature: packstream.SignatureNode,
		Fields: packstream.List{
			packstream.Int(identity),
			labelValues,
			packstream.NewMap(),
		},
	}
}

func structUnboundRel(identity int64, relType string) *packstream.Structure {
	return &packstream.Structure{
		Signature: packstream.SignatureUnboundRelationship,
		Fields: packstream.List{
			packstream.Int(identity),
			packstream.String(relType),
			packstream.NewMap(),
		},
	}
}

func TestHydrateNode(t *testing.T) {
	got := packAndUnpack(t, structNode(42, []string{"Person"}))
	n, ok := got.(*graph.Node)
	require.True(t, ok)
	assert.Equal(t, int64(42), n.Identity)
	assert.Equal(t, []string{"Person"}, n.Labels)
	assert.Equal(t, packstream.KindNode, n.Kind())
}

func TestHydrateRelationship(t *testing.T) {
	s := &packstream.Structure{
		Signature: packstream.SignatureRelationship,
		Fields: packstream.List{
			packstream.Int(1),
			packstream.Int(10),
			packstream.Int(20),
			packstream.String("KNOWS"),
			packstream.NewMap(),
		},
	}
	got := packAndUnpack(t, s)
	r, ok := got.(*graph.Relationship)
	require.True(t, ok)
	assert.Equal(t, int64(1), r.Identity)
	assert.Equal(t, int64(10), r.StartNodeID)
	assert.Equal(t, int64(20), r.EndNodeID)
	assert.Equal(t, "KNOWS", r.Type)
}

func TestHydrateUnboundRelationshipBind(t *testing.T) {
	got := packAndUnpack(t, structUnboundRel(5, "LIKES"))
	u, ok := got.(*graph.UnboundRelationship)
	require.True(t, ok)

	bound := u.Bind(100, 200)
	assert.Equal(t, int64(5), bound.Identity)
	assert.Equal(t, int64(100), bound.StartNodeID)
	assert.Equal(t, int64(200), bound.EndNodeID)
	assert.Equal(t, "LIKES", bound.Type)
}

// TestHydratePathLiteralFixture is the literal path-hydration fixture
// from the unpacker's path-rehydration specification: nodes = [A, B,
// C], rels = [r1, r2] (both unbound), sequence = [1, 1, -2, 2]. The
// resulting path has segments (A—r1→B, B←r2—C), with r1 bound
// (A.id, B.id) and r2 bound (C.id, B.id), and both rels slots replaced
// in place by their bound forms.
func TestHydratePathLiteralFixture(t *testing.T) {
	pathStruct := &packstream.Structure{
		Signature: packstream.SignaturePath,
		Fields: packstream.List{
			packstream.List{structNode(1, []string{"A"}), structNode(2, []string{"B"}), structNode(3, []string{"C"})},
			packstream.List{structUnboundRel(10, "R1"), structUnboundRel(20, "R2")},
			packstream.List{packstream.Int(1), packstream.Int(1), packstream.Int(-2), packstream.Int(2)},
		},
	}

	got := packAndUnpack(t, pathStruct)
	p, ok := got.(*graph.Path)
	require.True(t, ok)

	require.Len(t, p.Segments, 2)

	seg0 := p.Segments[0]
	assert.Equal(t, int64(1), seg0.Start.Identity)
	assert.Equal(t, int64(2), seg0.End.Identity)
	assert.Equal(t, int64(1), seg0.Rel.StartNodeID)
	assert.Equal(t, int64(2), seg0.Rel.EndNodeID)
	assert.Equal(t, "R1", seg0.Rel.Type)

	seg1 := p.Segments[1]
	assert.Equal(t, int64(2), seg1.Start.Identity)
	assert.Equal(t, int64(3), seg1.End.Identity)
	assert.Equal(t, int64(3), seg1.Rel.StartNodeID, "r2 is bound reversed: (C.id, B.id)")
	assert.Equal(t, int64(2), seg1.Rel.EndNodeID)
	assert.Equal(t, "R2", seg1.Rel.Type)

	assert.Equal(t, int64(1), p.Start.Identity)
	assert.Equal(t, int64(3), p.End.Identity)
}

func TestHydratePathRepeatedRelResolvesToSameInstance(t *testing.T) {
	// nodes = [A, B, C]; sequence references rel 1 twice (A->B, then B->C
	// reusing the same relationship, forward both times).
	pathStruct := &packstream.Structure{
		Signature: packstream.SignaturePath,
		Fields: packstream.List{
			packstream.List{structNode(1, nil), structNode(2, nil), structNode(3, nil)},
			packstream.List{structUnboundRel(10, "LOOP")},
			packstream.List{packstream.Int(1), packstream.Int(1), packstream.Int(1), packstream.Int(2)},
		},
	}

	got := packAndUnpack(t, pathStruct)
	p, ok := got.(*graph.Path)
	require.True(t, ok)
	require.Len(t, p.Segments, 2)
	assert.Same(t, p.Segments[0].Rel, p.Segments[1].Rel)
}

// TestHydrateNodeWrongFieldCountIsProtocolError covers the field-count
// check spec.md §4.2 requires ("mismatch is a protocol error naming
// the structure and expected vs actual size"): a Node structure with
// the wrong number of fields must fail as a *packstream.ProtocolError,
// not a generic error, so a caller's errors.As can recognize it as
// fatal to the connection (spec.md §7).
func TestHydrateNodeWrongFieldCountIsProtocolError(t *testing.T) {
	s := &packstream.Structure{
		Signature: packstream.SignatureNode,
		Fields:    packstream.List{packstream.Int(1), packstream.List{}},
	}
	p := packstream.NewPacker(true)
	buf := bufchannel.New()
	var encErr error
	p.Pack(s, buf, func(err error) { encErr = err })
	require.NoError(t, encErr)

	_, err := newUnpacker().Unpack(bufchannel.NewFromBytes(buf.Bytes()))
	require.Error(t, err)

	var protocolErr *packstream.ProtocolError
	require.True(t, errors.As(err, &protocolErr))
	assert.Contains(t, protocolErr.Error(), "Node")
}

func TestUnhydratedStructureFallsBackToGeneric(t *testing.T) {
	s := &packstream.Structure{Signature: 0x99, Fields: packstream.List{packstream.Int(1)}}
	got := packAndUnpack(t, s)
	generic, ok := got.(*packstream.Structure)
	require.True(t, ok)
	assert.Equal(t, byte(0x99), generic.Signature)
}
