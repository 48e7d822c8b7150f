package graph

import (
	"fmt"

	"github.com/boltstream/packstream/packstream"
)

// Hydrator implements packstream.Hydrator, turning decoded structures
// signed 0x4E/0x52/0x72/0x50 into Node/Relationship/UnboundRelationship/Path
// values. Install it on an Unpacker via Unpacker.Hydrator.
type Hydrator struct{}

// Hydrate implements packstream.Hydrator.
func (Hydrator) Hydrate(signature byte, fields packstream.List) (packstream.Value, bool, error) {
	switch signature {
	case packstream.SignatureNode:
		v, err := hydrateNode(fields)
		return v, true, err
	case packstream.SignatureRelationship:
		v, err := hydrateRelationship(fields)
		return v, true, err
	case packstream.SignatureUnboundRelationship:
		v, err := hydrateUnboundRelationship(fields)
		return v, true, err
	case packstream.SignaturePath:
		v, err := hydratePath(fields)
		return v, true, err
	default:
		return nil, false, nil
	}
}

func hydrateNode(fields packstream.List) (*Node, error) {
	if len(fields) != 3 {
		return nil, packstream.NewStructSizeError("Node", 3, len(fields))
	}
	identity, err := asInt(fields[0])
	if err != nil {
		return nil, fmt.Errorf("graph: Node identity: %w", err)
	}
	labels, err := asStringList(fields[1])
	if err != nil {
		return nil, fmt.Errorf("graph: Node labels: %w", err)
	}
	properties, err := asMap(fields[2])
	if err != nil {
		return nil, fmt.Errorf("graph: Node properties: %w", err)
	}
	return &Node{Identity: identity, Labels: labels, Properties: properties}, nil
}

func hydrateRelationship(fields packstream.List) (*Relationship, error) {
	if len(fields) != 5 {
		return nil, packstream.NewStructSizeError("Relationship", 5, len(fields))
	}
	identity, err := asInt(fields[0])
	if err != nil {
		return nil, fmt.Errorf("graph: Relationship identity: %w", err)
	}
	startID, err := asInt(fields[1])
	if err != nil {
		return nil, fmt.Errorf("graph: Relationship startNodeId: %w", err)
	}
	endID, err := asInt(fields[2])
	if err != nil {
		return nil, fmt.Errorf("graph: Relationship endNodeId: %w", err)
	}
	relType, err := asString(fields[3])
	if err != nil {
		return nil, fmt.Errorf("graph: Relationship type: %w", err)
	}
	properties, err := asMap(fields[4])
	if err != nil {
		return nil, fmt.Errorf("graph: Relationship properties: %w", err)
	}
	return &Relationship{Identity: identity, StartNodeID: startID, EndNodeID: endID, Type: relType, Properties: properties}, nil
}

func hydrateUnboundRelationship(fields packstream.List) (*UnboundRelationship, error) {
	if len(fields) != 3 {
		return nil, packstream.NewStructSizeError("UnboundRelationship", 3, len(fields))
	}
	identity, err := asInt(fields[0])
	if err != nil {
		return nil, fmt.Errorf("graph: UnboundRelationship identity: %w", err)
	}
	relType, err := asString(fields[1])
	if err != nil {
		return nil, fmt.Errorf("graph: UnboundRelationship type: %w", err)
	}
	properties, err := asMap(fields[2])
	if err != nil {
		return nil, fmt.Errorf("graph: UnboundRelationship properties: %w", err)
	}
	return &UnboundRelationship{Identity: identity, Type: relType, Properties: properties}, nil
}

// hydratePath rehydrates nodes, rels, and sequence into a Path
// (spec.md §4.2). sequence is a flat list of signed integer pairs
// (relIndex, nodeIndex): nodeIndex indexes directly into nodes;
// relIndex is 1-based and signed, its sign giving the traversal
// direction of rels[abs(relIndex)-1]. Binding mutates the shared rels
// slot in place from UnboundRelationship to Relationship, so repeated
// references to the same rel resolve to the same bound instance.
func hydratePath(fields packstream.List) (*Path, error) {
	if len(fields) != 3 {
		return nil, packstream.NewStructSizeError("Path", 3, len(fields))
	}
	nodes, err := asNodeList(fields[0])
	if err != nil {
		return nil, fmt.Errorf("graph: Path nodes: %w", err)
	}
	rels, err := asUnboundRelationshipSlots(fields[1])
	if err != nil {
		return nil, fmt.Errorf("graph: Path rels: %w", err)
	}
	sequence, err := asIntList(fields[2])
	if err != nil {
		return nil, fmt.Errorf("graph: Path sequence: %w", err)
	}
	if len(sequence)%2 != 0 {
		return nil, fmt.Errorf("graph: Path sequence has odd length %d", len(sequence))
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("graph: Path has no nodes")
	}

	segments := make([]PathSegment, 0, len(sequence)/2)
	prev := nodes[0]
	for i := 0; i < len(sequence); i += 2 {
		relIndex := sequence[i]
		nodeIndex := sequence[i+1]
		if nodeIndex < 0 || int(nodeIndex) >= len(nodes) {
			return nil, fmt.Errorf("graph: Path node index %d out of range", nodeIndex)
		}
		next := nodes[nodeIndex]

		var rel *Relationship
		switch {
		case relIndex > 0:
			slot := int(relIndex) - 1
			if slot < 0 || slot >= len(rels) {
				return nil, fmt.Errorf("graph: Path rel index %d out of range", relIndex)
			}
			rel = bindSlot(rels, slot, prev.Identity, next.Identity)
		case relIndex < 0:
			slot := int(-relIndex) - 1
			if slot < 0 || slot >= len(rels) {
				return nil, fmt.Errorf("graph: Path rel index %d out of range", relIndex)
			}
			rel = bindSlot(rels, slot, next.Identity, prev.Identity)
		default:
			return nil, fmt.Errorf("graph: Path rel index must not be 0")
		}

		segments = append(segments, PathSegment{Start: prev, Rel: rel, End: next})
		prev = next
	}

	return &Path{Start: nodes[0], End: prev, Segments: segments}, nil
}

// bindSlot binds rels[slot] (an *UnboundRelationship the first time,
// an already-bound *Relationship on any subsequent reference) and
// writes the bound form back, so later references to the same slot
// observe and reuse that same *Relationship instance.
func bindSlot(rels []interface{}, slot int, startID, endID int64) *Relationship {
	switch r := rels[slot].(type) {
	case *UnboundRelationship:
		bound := r.Bind(startID, endID)
		rels[slot] = bound
		return bound
	case *Relationship:
		return r
	default:
		panic("graph: rels slot holds neither *UnboundRelationship nor *Relationship")
	}
}

func asInt(v packstream.Value) (int64, error) {
	i, ok := v.(packstream.Int)
	if !ok {
		return 0, fmt.Errorf("expected Int, got %T", v)
	}
	return int64(i), nil
}

func asString(v packstream.Value) (string, error) {
	s, ok := v.(packstream.String)
	if !ok {
		return "", fmt.Errorf("expected String, got %T", v)
	}
	return string(s), nil
}

func asMap(v packstream.Value) (*packstream.Map, error) {
	m, ok := v.(*packstream.Map)
	if !ok {
		return nil, fmt.Errorf("expected Map, got %T", v)
	}
	return m, nil
}

func asStringList(v packstream.Value) ([]string, error) {
	list, ok := v.(packstream.List)
	if !ok {
		return nil, fmt.Errorf("expected List, got %T", v)
	}
	out := make([]string, 0, len(list))
	for _, elem := range list {
		s, err := asString(elem)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func asIntList(v packstream.Value) ([]int64, error) {
	list, ok := v.(packstream.List)
	if !ok {
		return nil, fmt.Errorf("expected List, got %T", v)
	}
	out := make([]int64, 0, len(list))
	for _, elem := range list {
		i, err := asInt(elem)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, nil
}

func asNodeList(v packstream.Value) ([]*Node, error) {
	list, ok := v.(packstream.List)
	if !ok {
		return nil, fmt.Errorf("expected List, got %T", v)
	}
	out := make([]*Node, 0, len(list))
	for _, elem := range list {
		n, ok := elem.(*Node)
		if !ok {
			return nil, fmt.Errorf("expected Node, got %T", elem)
		}
		out = append(out, n)
	}
	return out, nil
}

func asUnboundRelationshipSlots(v packstream.Value) ([]interface{}, error) {
	list, ok := v.(packstream.List)
	if !ok {
		return nil, fmt.Errorf("expected List, got %T", v)
	}
	out := make([]interface{}, 0, len(list))
	for _, elem := range list {
		u, ok := elem.(*UnboundRelationship)
		if !ok {
			return nil, fmt.Errorf("expected UnboundRelationship, got %T", elem)
		}
		out = append(out, u)
	}
	return out, nil
}
