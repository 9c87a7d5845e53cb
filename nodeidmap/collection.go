package nodeidmap

import (
	"sort"

	"github.com/cybersorcerer/pqcore/ast"
	"github.com/cybersorcerer/pqcore/common"
	"github.com/cybersorcerer/pqcore/localization"
	"github.com/cybersorcerer/pqcore/position"
)

// Collection is the Go name for spec.md's NodeIdMapCollection: the single
// source of truth the parser builds as it runs and the inspection engine
// reads from afterward. Every id appears in exactly one of astNodeById or
// contextNodeById, both are covered by parentIdById/childIdsById once
// they're linked in, and leafNodeIds tracks which ids have no children at
// all (AllLeafIds reports them for active-node walks).
type Collection struct {
	catalog localization.Catalog

	astNodeById     map[ast.NodeId]*ast.TNode
	contextNodeById map[ast.NodeId]*ContextNode

	parentIdById  map[ast.NodeId]ast.NodeId
	childIdsById  map[ast.NodeId][]ast.NodeId

	leafNodeIds map[ast.NodeId]bool

	nextId ast.NodeId
}

// New builds an empty Collection. catalog is used only for the
// InvariantError messages raised when a caller violates one of this
// package's structural invariants.
func New(catalog localization.Catalog) *Collection {
	return &Collection{
		catalog:         catalog,
		astNodeById:     make(map[ast.NodeId]*ast.TNode),
		contextNodeById: make(map[ast.NodeId]*ContextNode),
		parentIdById:    make(map[ast.NodeId]ast.NodeId),
		childIdsById:    make(map[ast.NodeId][]ast.NodeId),
		leafNodeIds:     make(map[ast.NodeId]bool),
	}
}

// StartContext allocates a new Open ContextNode as the attributeIndex'th
// child of parentId (or as a root if parentId is 0), and returns its id.
// tokenIndexStart/positionStart record where in the token stream this node
// began, so inspection.FindActiveNode can still anchor a cursor to a
// context that never finished closing (spec.md §4.6's ActiveNode fallback).
func (c *Collection) StartContext(kind ast.NodeKind, parentId ast.NodeId, attributeIndex int, tokenIndexStart int, positionStart position.TokenPosition) ast.NodeId {
	c.nextId++
	id := c.nextId

	c.contextNodeById[id] = &ContextNode{Id: id, Kind: kind, AttributeIndex: attributeIndex, State: ContextStateOpen, TokenIndexStart: tokenIndexStart, PositionStart: positionStart}
	c.leafNodeIds[id] = true

	if parentId != 0 {
		c.parentIdById[id] = parentId
		c.childIdsById[parentId] = append(c.childIdsById[parentId], id)
		delete(c.leafNodeIds, parentId)
	}

	return id
}

// EndContext closes id's context and promotes it to a finished ast.TNode,
// per spec.md's one-way Open->Closed state machine. The node's IsLeaf is
// taken from whether the parser ever attached a child to id.
func (c *Collection) EndContext(id ast.NodeId, tokenRange position.TokenRange, data string) (*ast.TNode, error) {
	ctx, ok := c.contextNodeById[id]
	if !ok {
		return nil, common.NewInvariantError(c.catalog, "endContext called on an id with no open context", map[string]any{"id": id})
	}
	if ctx.State == ContextStateClosed {
		return nil, common.NewInvariantError(c.catalog, "endContext called twice on the same context", map[string]any{"id": id})
	}

	ctx.State = ContextStateClosed

	node := &ast.TNode{
		Id:             id,
		Kind:           ctx.Kind,
		IsLeaf:         c.leafNodeIds[id],
		AttributeIndex: ctx.AttributeIndex,
		TokenRange:     tokenRange,
		Data:           data,
	}

	delete(c.contextNodeById, id)
	c.astNodeById[id] = node

	return node, nil
}

// DeleteContext removes id from the collection. If id is not a leaf, its
// children are promoted to become direct children of id's former parent
// (spec.md §3.6's non-leaf-delete promotion rule). The common case — a
// single surviving child — inherits id's own attributeIndex, so a
// precedence-level wrapper opened speculatively and then abandoned (no
// operator followed its operand) collapses away without disturbing where
// its operand sits in the grandparent's child list. Multiple surviving
// children keep their own attributeIndex values, since there is no single
// slot for them to inherit.
func (c *Collection) DeleteContext(id ast.NodeId) error {
	if !c.exists(id) {
		return common.NewInvariantError(c.catalog, "deleteContext called on an unknown id", map[string]any{"id": id})
	}

	parentId, hasParent := c.parentIdById[id]
	children := c.childIdsById[id]

	// A promoted only-child inherits the deleted node's attributeIndex: from
	// the grandparent's point of view, the child now occupies the slot the
	// deleted node used to occupy, not the slot it held under the deleted
	// node. This is what lets a precedence-level production that opened a
	// context speculatively (expecting an operator that never showed up)
	// collapse away without disturbing its single operand's position in the
	// tree.
	if len(children) == 1 {
		c.setAttributeIndex(children[0], c.attributeIndexOf(id))
	}

	if len(children) > 0 {
		for _, childId := range children {
			if hasParent {
				c.parentIdById[childId] = parentId
				c.childIdsById[parentId] = append(c.childIdsById[parentId], childId)
			} else {
				delete(c.parentIdById, childId)
			}
		}
	}

	if hasParent {
		c.childIdsById[parentId] = removeId(c.childIdsById[parentId], id)
		if len(c.childIdsById[parentId]) == 0 {
			delete(c.childIdsById, parentId)
			if c.exists(parentId) {
				c.leafNodeIds[parentId] = true
			}
		}
	}

	delete(c.astNodeById, id)
	delete(c.contextNodeById, id)
	delete(c.parentIdById, id)
	delete(c.childIdsById, id)
	delete(c.leafNodeIds, id)

	return nil
}

func removeId(ids []ast.NodeId, target ast.NodeId) []ast.NodeId {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

func (c *Collection) exists(id ast.NodeId) bool {
	_, isAst := c.astNodeById[id]
	_, isContext := c.contextNodeById[id]
	return isAst || isContext
}

// XorNodeById returns the node for id as a XorNode, or ok=false if id is
// unknown.
func (c *Collection) XorNodeById(id ast.NodeId) (XorNode, bool) {
	if node, ok := c.astNodeById[id]; ok {
		return XorNode{Ast: node}, true
	}
	if ctx, ok := c.contextNodeById[id]; ok {
		return XorNode{Context: ctx}, true
	}
	return XorNode{}, false
}

// ParentId returns id's parent, or ok=false if id is a root.
func (c *Collection) ParentId(id ast.NodeId) (ast.NodeId, bool) {
	parentId, ok := c.parentIdById[id]
	return parentId, ok
}

// ChildIds returns id's children in attributeIndex order.
func (c *Collection) ChildIds(id ast.NodeId) []ast.NodeId {
	ids := c.childIdsById[id]
	sorted := make([]ast.NodeId, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool {
		return c.attributeIndexOf(sorted[i]) < c.attributeIndexOf(sorted[j])
	})
	return sorted
}

func (c *Collection) attributeIndexOf(id ast.NodeId) int {
	if node, ok := c.XorNodeById(id); ok {
		return node.AttributeIndex()
	}
	return 0
}

// TokenIndexStartOf returns id's first token index, whether id is a finished
// ast.TNode or a still-open ContextNode.
func (c *Collection) TokenIndexStartOf(id ast.NodeId) (int, bool) {
	if node, ok := c.astNodeById[id]; ok {
		return node.TokenRange.TokenIndexStart, true
	}
	if ctx, ok := c.contextNodeById[id]; ok {
		return ctx.TokenIndexStart, true
	}
	return 0, false
}

// AllLeafIds returns every id currently registered as a leaf (closed
// ast.TNode or still-open ContextNode with no children), in id order. Used
// by inspection.FindActiveNode, which must work even against a Collection
// left behind by a failed parse — there is no guarantee of a single
// reachable root in that case.
func (c *Collection) AllLeafIds() []ast.NodeId {
	ids := make([]ast.NodeId, 0, len(c.leafNodeIds))
	for id := range c.leafNodeIds {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (c *Collection) setAttributeIndex(id ast.NodeId, attributeIndex int) {
	if node, ok := c.astNodeById[id]; ok {
		node.AttributeIndex = attributeIndex
		return
	}
	if ctx, ok := c.contextNodeById[id]; ok {
		ctx.AttributeIndex = attributeIndex
	}
}

// ChildByAttributeIndex returns the child of parentId with the given
// attributeIndex, or ok=false if no such child has been attached yet (a
// gap left by a sibling that failed to parse, per spec.md §3.6).
func (c *Collection) ChildByAttributeIndex(parentId ast.NodeId, attributeIndex int) (ast.NodeId, bool) {
	for _, childId := range c.childIdsById[parentId] {
		if c.attributeIndexOf(childId) == attributeIndex {
			return childId, true
		}
	}
	return 0, false
}

// IsLeaf reports whether id currently has no children.
func (c *Collection) IsLeaf(id ast.NodeId) bool {
	return c.leafNodeIds[id]
}

// RightMostLeaf walks id's right-most child chain down to a leaf.
func (c *Collection) RightMostLeaf(id ast.NodeId) (ast.NodeId, bool) {
	current := id
	if !c.exists(current) {
		return 0, false
	}
	for !c.leafNodeIds[current] {
		children := c.ChildIds(current)
		if len(children) == 0 {
			break
		}
		current = children[len(children)-1]
	}
	return current, true
}

// Ancestry returns id's ancestor chain starting at id itself and walking up
// to (and including) the root.
func (c *Collection) Ancestry(id ast.NodeId) []ast.NodeId {
	var chain []ast.NodeId
	current := id
	for {
		chain = append(chain, current)
		parentId, ok := c.parentIdById[current]
		if !ok {
			break
		}
		current = parentId
	}
	return chain
}
