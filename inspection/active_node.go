// Package inspection implements the cursor-position inspection engine:
// locating the node a cursor sits on or inside, the identifier scope
// visible from there, the enclosing InvokeExpression's argument the cursor
// occupies, and which keywords autocomplete should offer next.
package inspection

import (
	"github.com/cybersorcerer/pqcore/ast"
	"github.com/cybersorcerer/pqcore/nodeidmap"
	"github.com/cybersorcerer/pqcore/position"
)

// ActiveNode is the deepest XorNode enclosing a cursor, plus its full
// ancestor chain out to the root, the backbone every other inspection
// operation walks.
type ActiveNode struct {
	Position position.Position
	// Ancestry is [leaf, parent, ..., root].
	Ancestry []nodeidmap.XorNode
}

// Leaf returns the deepest node in the ancestry, or the zero XorNode if the
// ancestry is empty.
func (a *ActiveNode) Leaf() nodeidmap.XorNode {
	if len(a.Ancestry) == 0 {
		return nodeidmap.XorNode{}
	}
	return a.Ancestry[0]
}

// onRange reports whether cursor sits on the half-open token span
// [start, end), per spec.md's "on a token" position semantics.
func onRange(cursor position.TokenPosition, start, end position.TokenPosition) bool {
	return position.Compare(cursor, start) >= 0 && position.Compare(cursor, end) < 0
}

// FindActiveNode walks every registered leaf (closed ast.TNode or still-open
// ContextNode) looking for the one enclosing pos, falling back to the
// latest-started leaf at or before pos when none contains it outright —
// the case where the cursor sits past the last fully-parsed token. Returns
// ok=false if leafNodeIds is empty.
func FindActiveNode(collection *nodeidmap.Collection, leafNodeIds []ast.NodeId, pos position.Position) (*ActiveNode, bool) {
	if len(leafNodeIds) == 0 {
		return nil, false
	}

	cursor := pos.AsTokenPosition()

	var containing nodeidmap.XorNode
	foundContaining := false
	var latest nodeidmap.XorNode
	foundLatest := false

	for _, id := range leafNodeIds {
		node, ok := collection.XorNodeById(id)
		if !ok {
			continue
		}

		if node.IsAst() {
			tr := node.Ast.TokenRange
			if onRange(cursor, tr.PositionStart, tr.PositionEnd) {
				containing = node
				foundContaining = true
				break
			}
		}

		if position.Compare(cursor, node.PositionStart()) >= 0 {
			if !foundLatest || isLaterStart(node, latest) {
				latest, foundLatest = node, true
			}
		}
	}

	deepest, found := containing, foundContaining
	if !found {
		deepest, found = latest, foundLatest
	}
	if !found {
		return nil, false
	}

	ancestry := []nodeidmap.XorNode{deepest}
	current := deepest.Id()
	for {
		parentId, ok := collection.ParentId(current)
		if !ok {
			break
		}
		parentNode, ok := collection.XorNodeById(parentId)
		if !ok {
			break
		}
		ancestry = append(ancestry, parentNode)
		current = parentId
	}

	return &ActiveNode{Position: pos, Ancestry: ancestry}, true
}

func isLaterStart(candidate, current nodeidmap.XorNode) bool {
	c := position.Compare(candidate.PositionStart(), current.PositionStart())
	if c != 0 {
		return c > 0
	}
	return candidate.Id() > current.Id()
}
