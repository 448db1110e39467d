package view

import (
	"slices"

	"github.com/go-drift/loom/pkg/world"
)

type spanKind uint8

const (
	spanEmpty spanKind = iota
	spanNode
	spanFragment
)

// NodeSpan describes zero, one, or many display nodes produced by a view:
// it is Empty, a single node, or an ordered fragment of nested spans. The
// zero value is the empty span.
type NodeSpan struct {
	kind     spanKind
	node     world.Entity
	children []NodeSpan
}

// EmptySpan returns the span of no nodes.
func EmptySpan() NodeSpan {
	return NodeSpan{}
}

// SpanOf returns the span of a single display node.
func SpanOf(e world.Entity) NodeSpan {
	return NodeSpan{kind: spanNode, node: e}
}

// FragmentOf returns the ordered fragment of the given spans.
func FragmentOf(spans ...NodeSpan) NodeSpan {
	return NodeSpan{kind: spanFragment, children: spans}
}

// Count returns the number of display nodes in the span. It is additive
// over fragments: Count() == len(Flatten(nil)).
func (s NodeSpan) Count() int {
	switch s.kind {
	case spanNode:
		return 1
	case spanFragment:
		n := 0
		for _, c := range s.children {
			n += c.Count()
		}
		return n
	default:
		return 0
	}
}

// Flatten appends the span's display nodes to out in order and returns the
// extended slice.
func (s NodeSpan) Flatten(out []world.Entity) []world.Entity {
	switch s.kind {
	case spanNode:
		return append(out, s.node)
	case spanFragment:
		for _, c := range s.children {
			out = c.Flatten(out)
		}
		return out
	default:
		return out
	}
}

// SoleNode returns the span's display node when the span holds exactly
// one.
func (s NodeSpan) SoleNode() (world.Entity, bool) {
	nodes := s.Flatten(nil)
	if len(nodes) == 1 {
		return nodes[0], true
	}
	return world.NoEntity, false
}

// Eq reports whether two spans describe the same nodes in the same
// structure.
func (s NodeSpan) Eq(other NodeSpan) bool {
	if s.kind != other.kind {
		// A fragment of one node is still not the node itself.
		return false
	}
	switch s.kind {
	case spanNode:
		return s.node == other.node
	case spanFragment:
		return slices.EqualFunc(s.children, other.children, NodeSpan.Eq)
	default:
		return true
	}
}

// Despawn recursively destroys every display node in the span. Nodes
// already removed by the host are skipped.
func (s NodeSpan) Despawn(w *world.World) {
	switch s.kind {
	case spanNode:
		w.Despawn(s.node)
	case spanFragment:
		for _, c := range s.children {
			c.Despawn(w)
		}
	}
}
