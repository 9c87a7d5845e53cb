package inspection

import (
	"github.com/cybersorcerer/pqcore/ast"
	"github.com/cybersorcerer/pqcore/nodeidmap"
	"github.com/cybersorcerer/pqcore/position"
)

// Inspected is the result of inspecting a parsed (or partially parsed)
// document at a cursor position: the identifier scope visible there, the
// container nodes the cursor sits inside, the node the cursor is on (if
// any), signature-help for an enclosing invocation, and keyword
// autocomplete.
type Inspected struct {
	Scope            *Scope
	Nodes            []nodeidmap.XorNode
	ActiveNode       *ActiveNode
	InvokeExpression *InvokeExpression
	Autocomplete     *Autocomplete
}

// Inspect runs every inspection operation against collection at pos, given
// the leaf set a parse (successful or not) left behind. A document with no
// leaves at all (empty input) yields an Inspected with a nil ActiveNode, an
// empty Scope, and the full expression-keyword set, per spec.md §6.1.
func Inspect(collection *nodeidmap.Collection, leafNodeIds []ast.NodeId, pos position.Position) *Inspected {
	active, ok := FindActiveNode(collection, leafNodeIds, pos)
	if !ok {
		return &Inspected{
			Scope:        newScope(),
			Autocomplete: &Autocomplete{AllowedKeywords: ExpressionKeywords},
		}
	}

	scope, nodes := BuildScope(collection, active)

	var invoke *InvokeExpression
	if found, ok := FindInvokeExpression(collection, active); ok {
		invoke = found
	}

	autocomplete := FindAutocomplete(collection, active)

	return &Inspected{
		Scope:            scope,
		Nodes:            nodes,
		ActiveNode:       active,
		InvokeExpression: invoke,
		Autocomplete:     autocomplete,
	}
}
