// Package nodeidmap implements the hybrid parsed/context tree: the
// NodeIdMapCollection arena that lets a node be looked up, walked to its
// parent or children, or promoted from an in-progress ContextNode to a
// finished ast.TNode, all by NodeId rather than by pointer identity. This
// is what lets the parser keep a partially-built tree around after a parse
// error instead of discarding everything back to the last successful
// production.
package nodeidmap

import (
	"github.com/cybersorcerer/pqcore/ast"
	"github.com/cybersorcerer/pqcore/position"
)

// ContextState discriminates whether a ContextNode is still being built
// (Open) or has been closed (Closed). EndContext marks a context Closed as
// it promotes it to an ast.TNode and drops the ContextNode from the
// collection. A context never moves backward from Closed to Open.
type ContextState int

const (
	ContextStateOpen ContextState = iota
	ContextStateClosed
)

// ContextNode is the Context side of the XorNode sum type: a node the
// parser has started but that has not yet been
// promoted to a terminal ast.TNode, because at least one of its children
// may still be open or the node's own closing condition hasn't been
// reached. Every Ast(TNode) in the collection was once a ContextNode that
// reached ContextStateClosed and was promoted.
type ContextNode struct {
	Id              ast.NodeId
	Kind            ast.NodeKind
	AttributeIndex  int
	State           ContextState
	TokenIndexStart int
	PositionStart   position.TokenPosition
}

// XorNode is either a finished ast.TNode or an in-progress ContextNode,
// never both. Callers branch on which is non-nil rather than on a
// discriminant field, mirroring how the rest of this package keeps the Ast
// and Context maps genuinely disjoint (every id lives in exactly one of
// them).
type XorNode struct {
	Ast     *ast.TNode
	Context *ContextNode
}

// IsAst reports whether this XorNode wraps a finished ast.TNode.
func (x XorNode) IsAst() bool { return x.Ast != nil }

// Id returns the wrapped node's id regardless of which side is populated.
func (x XorNode) Id() ast.NodeId {
	if x.Ast != nil {
		return x.Ast.Id
	}
	return x.Context.Id
}

// Kind returns the wrapped node's kind regardless of which side is
// populated.
func (x XorNode) Kind() ast.NodeKind {
	if x.Ast != nil {
		return x.Ast.Kind
	}
	return x.Context.Kind
}

// AttributeIndex returns the wrapped node's position among its parent's
// children, the index the grammar assigned it, regardless of which side is
// populated.
func (x XorNode) AttributeIndex() int {
	if x.Ast != nil {
		return x.Ast.AttributeIndex
	}
	return x.Context.AttributeIndex
}

// PositionStart returns the wrapped node's first token's position,
// regardless of which side is populated — an open ContextNode still
// remembers where it began even though it has no end yet.
func (x XorNode) PositionStart() position.TokenPosition {
	if x.Ast != nil {
		return x.Ast.TokenRange.PositionStart
	}
	return x.Context.PositionStart
}
