package inspection

import (
	"github.com/cybersorcerer/pqcore/ast"
	"github.com/cybersorcerer/pqcore/nodeidmap"
	"github.com/cybersorcerer/pqcore/position"
)

// ScopeItemKind discriminates what bound a given Scope key.
type ScopeItemKind int

const (
	ScopeItemEach ScopeItemKind = iota
	ScopeItemParameter
	ScopeItemIdentifier
	ScopeItemSectionMember
)

// ScopeItem is what a Scope key is bound to: the node responsible for the
// binding, plus the Parameter-specific metadata spec.md §4.6.1 calls for.
type ScopeItem struct {
	Kind       ScopeItemKind
	Node       nodeidmap.XorNode
	IsOptional bool
	IsNullable bool
	MaybeType  string
}

// Scope is the insertion-ordered key -> ScopeItem mapping built by
// BuildScope: the first binding for a key wins, so inner (more local)
// bindings shadow outer ones as long as the ancestry walk visits them
// first.
type Scope struct {
	order []string
	items map[string]ScopeItem
}

func newScope() *Scope {
	return &Scope{items: make(map[string]ScopeItem)}
}

func (s *Scope) bind(key string, item ScopeItem) {
	if key == "" {
		return
	}
	if _, ok := s.items[key]; ok {
		return
	}
	s.order = append(s.order, key)
	s.items[key] = item
}

// Keys returns every bound key in the order it was first bound.
func (s *Scope) Keys() []string {
	return append([]string(nil), s.order...)
}

// Get returns the ScopeItem bound to key, if any.
func (s *Scope) Get(key string) (ScopeItem, bool) {
	item, ok := s.items[key]
	return item, ok
}

// Len reports how many keys are bound.
func (s *Scope) Len() int { return len(s.order) }

// BuildScope walks active's ancestry (leaf first, root last) binding
// identifiers per spec.md §4.6.1's per-node-kind table, and collects the
// enclosing list/record container nodes a cursor sits inside (excluding
// their closing delimiter) into Nodes.
func BuildScope(collection *nodeidmap.Collection, active *ActiveNode) (*Scope, []nodeidmap.XorNode) {
	scope := newScope()
	var nodes []nodeidmap.XorNode

	cursor := active.Position.AsTokenPosition()

	for _, node := range active.Ancestry {
		switch node.Kind() {
		case ast.NodeKindEachExpression:
			scope.bind("_", ScopeItem{Kind: ScopeItemEach, Node: node})

		case ast.NodeKindFunctionExpression:
			bindFunctionParameters(collection, node.Id(), scope)

		case ast.NodeKindIdentifierExpression:
			bindIdentifierExpression(collection, node, cursor, scope)

		case ast.NodeKindInvokeExpression:
			bindInvokeArguments(collection, node.Id(), cursor, scope)

		case ast.NodeKindListExpression, ast.NodeKindListType:
			if containsExcludingClose(collection, node, cursor) {
				nodes = append(nodes, node)
			}

		case ast.NodeKindRecordExpression, ast.NodeKindRecordLiteral:
			if containsExcludingClose(collection, node, cursor) {
				nodes = append(nodes, node)
			}
			bindRecordKeys(collection, node.Id(), cursor, scope)

		case ast.NodeKindRecursivePrimaryExpression:
			if head, ok := ChildByAttributeIndex(collection, node.Id(), 0, ast.NodeKindIdentifierExpression); ok {
				bindIdentifierExpression(collection, head, cursor, scope)
			}

		case ast.NodeKindSection:
			bindSectionMembers(collection, node.Id(), scope)
		}
	}

	return scope, nodes
}

// containsExcludingClose reports whether cursor sits strictly inside node's
// token range but not on its final (closing-delimiter) token.
func containsExcludingClose(collection *nodeidmap.Collection, node nodeidmap.XorNode, cursor position.TokenPosition) bool {
	if !node.IsAst() {
		return false
	}
	tr := node.Ast.TokenRange
	closeStart := tr.PositionEnd
	if closing, ok := lastChild(collection, node.Id()); ok && closing.IsAst() {
		closeStart = closing.Ast.TokenRange.PositionStart
	}
	return position.Compare(cursor, tr.PositionStart) > 0 && position.Compare(cursor, closeStart) < 0
}

func lastChild(collection *nodeidmap.Collection, parentId ast.NodeId) (nodeidmap.XorNode, bool) {
	children := IterChildren(collection, parentId)
	if len(children) == 0 {
		return nodeidmap.XorNode{}, false
	}
	return children[len(children)-1], true
}

func bindFunctionParameters(collection *nodeidmap.Collection, functionId ast.NodeId, scope *Scope) {
	paramListNode, ok := ChildByAttributeIndex(collection, functionId, 0, ast.NodeKindParameterList)
	if !ok {
		return
	}
	arrayNode, ok := ChildByAttributeIndex(collection, paramListNode.Id(), 1, ast.NodeKindArrayWrapper)
	if !ok {
		return
	}
	for _, csv := range IterChildren(collection, arrayNode.Id()) {
		if csv.Kind() != ast.NodeKindCsv {
			continue
		}
		paramNode, ok := ChildByAttributeIndex(collection, csv.Id(), 0, ast.NodeKindParameter)
		if !ok {
			continue
		}
		bindParameter(collection, paramNode, scope)
	}
}

func bindParameter(collection *nodeidmap.Collection, paramNode nodeidmap.XorNode, scope *Scope) {
	if !paramNode.IsAst() {
		return
	}

	// parseParameter (control.go) only ever puts the "optional" marker at
	// attribute 0; the "as" keyword's Constant lands at attribute 1 or 2
	// depending on whether "optional" is present, so matching any Constant
	// child (rather than attribute 0 specifically) would also catch "as".
	_, isOptional := ChildByAttributeIndex(collection, paramNode.Id(), 0, ast.NodeKindConstant)

	nameIndex := 0
	if isOptional {
		nameIndex = 1
	}
	nameNode, ok := ChildByAttributeIndex(collection, paramNode.Id(), nameIndex, ast.NodeKindIdentifier)
	if !ok || !nameNode.IsAst() {
		return
	}

	var typeNode nodeidmap.XorNode
	haveType := false
	for _, child := range IterChildren(collection, paramNode.Id()) {
		if child.Kind() == ast.NodeKindNullablePrimitiveType {
			typeNode, haveType = child, true
			break
		}
	}

	// An untyped parameter carries no "as" clause at all, so per spec.md's
	// end-to-end scenario table it defaults to nullable with no MaybeType;
	// only a typed parameter can narrow isNullable to false.
	maybeType := ""
	isNullable := true
	if haveType {
		maybeType = typeText(collection, typeNode)
		_, isNullable = ChildByAttributeIndex(collection, typeNode.Id(), 0, ast.NodeKindConstant)
	}

	scope.bind(nameNode.Ast.Data, ScopeItem{
		Kind:       ScopeItemParameter,
		Node:       paramNode,
		IsOptional: isOptional,
		IsNullable: isNullable,
		MaybeType:  maybeType,
	})
}

func typeText(collection *nodeidmap.Collection, typeNode nodeidmap.XorNode) string {
	for _, child := range IterChildren(collection, typeNode.Id()) {
		if child.Kind() == ast.NodeKindPrimitiveType && child.IsAst() {
			return child.Ast.Data
		}
	}
	return ""
}

// bindIdentifierExpression binds an IdentifierExpression's literal key,
// handling both the finished (Ast) and still-open (Context) shapes —
// reassembling the optional "@" prefix plus the identifier child either
// way — and only when the key's end is at or before cursor, per spec.md's
// "no forward references pollute completion" rule.
func bindIdentifierExpression(collection *nodeidmap.Collection, node nodeidmap.XorNode, cursor position.TokenPosition, scope *Scope) {
	key := identifierExpressionLiteral(collection, node)
	if key == "" {
		return
	}

	identIndex := 0
	if _, hasAt := ChildByAttributeIndex(collection, node.Id(), 0, ast.NodeKindConstant); hasAt {
		identIndex = 1
	}
	identNode, ok := ChildByAttributeIndex(collection, node.Id(), identIndex, ast.NodeKindIdentifier)
	if !ok || !identNode.IsAst() {
		return
	}

	endPos := identNode.Ast.TokenRange.PositionEnd
	if node.IsAst() {
		endPos = node.Ast.TokenRange.PositionEnd
	}
	if position.Compare(endPos, cursor) > 0 {
		return
	}

	scope.bind(key, ScopeItem{Kind: ScopeItemIdentifier, Node: node})
}

func bindInvokeArguments(collection *nodeidmap.Collection, invokeId ast.NodeId, cursor position.TokenPosition, scope *Scope) {
	arrayNode, ok := ChildByAttributeIndex(collection, invokeId, 1, ast.NodeKindArrayWrapper)
	if !ok {
		return
	}
	for _, csv := range IterChildren(collection, arrayNode.Id()) {
		if csv.Kind() != ast.NodeKindCsv {
			continue
		}
		argNode, ok := ChildByAttributeIndex(collection, csv.Id(), 0)
		if !ok {
			continue
		}
		if argNode.Kind() == ast.NodeKindIdentifierExpression {
			bindIdentifierExpression(collection, argNode, cursor, scope)
		}
	}
}

func bindRecordKeys(collection *nodeidmap.Collection, recordId ast.NodeId, cursor position.TokenPosition, scope *Scope) {
	arrayNode, ok := ChildByAttributeIndex(collection, recordId, 1, ast.NodeKindArrayWrapper)
	if !ok {
		return
	}
	for _, csv := range IterChildren(collection, arrayNode.Id()) {
		if csv.Kind() != ast.NodeKindCsv {
			continue
		}
		pairNode, ok := ChildByAttributeIndex(collection, csv.Id(), 0,
			ast.NodeKindGeneralizedIdentifierPairedExpression, ast.NodeKindFieldSpecification)
		if !ok {
			continue
		}
		keyNode, ok := ChildByAttributeIndex(collection, pairNode.Id(), 0, ast.NodeKindGeneralizedIdentifier)
		if !ok || !keyNode.IsAst() {
			continue
		}
		if position.Compare(keyNode.Ast.TokenRange.PositionEnd, cursor) > 0 {
			continue
		}
		scope.bind(keyNode.Ast.Data, ScopeItem{Kind: ScopeItemIdentifier, Node: pairNode})
	}
}

func bindSectionMembers(collection *nodeidmap.Collection, sectionId ast.NodeId, scope *Scope) {
	for _, member := range IterChildren(collection, sectionId) {
		if member.Kind() != ast.NodeKindSectionMember {
			continue
		}
		pairNode, ok := ChildByAttributeIndex(collection, member.Id(), 0, ast.NodeKindIdentifierPairedExpression)
		if !ok {
			pairNode, ok = ChildByAttributeIndex(collection, member.Id(), 1, ast.NodeKindIdentifierPairedExpression)
		}
		if !ok {
			continue
		}
		nameNode, ok := ChildByAttributeIndex(collection, pairNode.Id(), 0, ast.NodeKindIdentifier)
		if !ok || !nameNode.IsAst() {
			continue
		}
		scope.bind(nameNode.Ast.Data, ScopeItem{Kind: ScopeItemSectionMember, Node: member})
	}
}
