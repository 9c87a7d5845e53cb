package inspection

import (
	"github.com/cybersorcerer/pqcore/ast"
	"github.com/cybersorcerer/pqcore/nodeidmap"
)

// ChildByAttributeIndex returns parent's attributeIndex'th child, filtered
// to allowedKinds if any are given.
func ChildByAttributeIndex(collection *nodeidmap.Collection, parentId ast.NodeId, attributeIndex int, allowedKinds ...ast.NodeKind) (nodeidmap.XorNode, bool) {
	childId, ok := collection.ChildByAttributeIndex(parentId, attributeIndex)
	if !ok {
		return nodeidmap.XorNode{}, false
	}
	node, ok := collection.XorNodeById(childId)
	if !ok {
		return nodeidmap.XorNode{}, false
	}
	if len(allowedKinds) > 0 && !kindAllowed(node.Kind(), allowedKinds) {
		return nodeidmap.XorNode{}, false
	}
	return node, true
}

// IterChildren returns parent's children in attribute order.
func IterChildren(collection *nodeidmap.Collection, parentId ast.NodeId) []nodeidmap.XorNode {
	childIds := collection.ChildIds(parentId)
	nodes := make([]nodeidmap.XorNode, 0, len(childIds))
	for _, id := range childIds {
		if node, ok := collection.XorNodeById(id); ok {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// DrilldownStep is one link of a multipleChildDrilldown chain: descend to
// the node at AttributeIndex, optionally restricted to AllowedKinds.
type DrilldownStep struct {
	AttributeIndex int
	AllowedKinds   []ast.NodeKind
}

// MultipleChildDrilldown walks a chain of childByAttributeIndex calls
// starting at root, stopping and returning false as soon as any step
// doesn't resolve or fails its kind filter.
func MultipleChildDrilldown(collection *nodeidmap.Collection, root ast.NodeId, steps []DrilldownStep) (nodeidmap.XorNode, bool) {
	current := root
	var node nodeidmap.XorNode
	var ok bool
	for _, step := range steps {
		node, ok = ChildByAttributeIndex(collection, current, step.AttributeIndex, step.AllowedKinds...)
		if !ok {
			return nodeidmap.XorNode{}, false
		}
		current = node.Id()
	}
	return node, ok
}

func kindAllowed(kind ast.NodeKind, allowed []ast.NodeKind) bool {
	for _, k := range allowed {
		if k == kind {
			return true
		}
	}
	return false
}
