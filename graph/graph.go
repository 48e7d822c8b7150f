// Package graph holds the hydrated graph-domain value types that
// packstream.Unpacker produces for structures signed 0x4E, 0x52, 0x72,
// and 0x50 (Node, Relationship, UnboundRelationship, Path), plus the
// Hydrator that wires them into an Unpacker (spec.md §4.2).
//
// Each type implements packstream.Value so it can travel through the
// same value tree as any other decoded value; Kind reports one of the
// Kind* constants from KindNode onward, which is how the Packer
// recognizes and rejects a graph entity supplied as a request
// parameter without importing this package (see packstream.Kind).
package graph

import (
	"fmt"

	"github.com/boltstream/packstream/packstream"
)

// Node is a decoded graph node: an identity, zero or more labels, and
// a property map (spec.md §3: "Node { identity, labels, properties }").
type Node struct {
	Identity   int64
	Labels     []string
	Properties *packstream.Map
}

// Kind implements packstream.Value.
func (*Node) Kind() packstream.Kind { return packstream.KindNode }

func (n *Node) String() string {
	return fmt.Sprintf("Node{id: %d, labels: %v}", n.Identity, n.Labels)
}

// Relationship is a decoded, bound relationship between two node
// identities (spec.md §3).
type Relationship struct {
	Identity    int64
	StartNodeID int64
	EndNodeID   int64
	Type        string
	Properties  *packstream.Map
}

// Kind implements packstream.Value.
func (*Relationship) Kind() packstream.Kind { return packstream.KindRelationship }

func (r *Relationship) String() string {
	return fmt.Sprintf("Relationship{id: %d, (%d)-[%s]->(%d)}", r.Identity, r.StartNodeID, r.Type, r.EndNodeID)
}

// UnboundRelationship is a relationship decoded with no start/end node
// identities attached — its natural habitat is a Path's rels list,
// where the identities are implied by the path's own sequence rather
// than carried on the wire (spec.md §3, §4.2).
type UnboundRelationship struct {
	Identity   int64
	Type       string
	Properties *packstream.Map
}

// Kind implements packstream.Value.
func (*UnboundRelationship) Kind() packstream.Kind { return packstream.KindUnboundRelationship }

func (u *UnboundRelationship) String() string {
	return fmt.Sprintf("UnboundRelationship{id: %d, type: %s}", u.Identity, u.Type)
}

// Bind resolves u into a Relationship traversed from startID to endID.
func (u *UnboundRelationship) Bind(startID, endID int64) *Relationship {
	return &Relationship{
		Identity:    u.Identity,
		StartNodeID: startID,
		EndNodeID:   endID,
		Type:        u.Type,
		Properties:  u.Properties,
	}
}

// PathSegment is one hop of a Path: the relationship traversed from
// Start to End, which may be bound in reverse of its own
// StartNodeID/EndNodeID (spec.md §3, §4.2 worked example: "B←r2—C").
type PathSegment struct {
	Start *Node
	Rel   *Relationship
	End   *Node
}

// Path is a decoded graph path: its endpoints plus the ordered
// segments connecting them, with the invariant that consecutive
// segments share a node (segment[i].End == segment[i+1].Start;
// spec.md §3).
type Path struct {
	Start    *Node
	End      *Node
	Segments []PathSegment
}

// Kind implements packstream.Value.
func (*Path) Kind() packstream.Kind { return packstream.KindPath }

func (p *Path) String() string {
	return fmt.Sprintf("Path{start: %v, end: %v, segments: %d}", p.Start, p.End, len(p.Segments))
}
