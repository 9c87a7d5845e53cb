package inspection

import (
	"github.com/cybersorcerer/pqcore/ast"
	"github.com/cybersorcerer/pqcore/nodeidmap"
)

// InvokeArguments reports how many arguments an InvokeExpression's CsvArray
// has and which one the cursor sits in.
type InvokeArguments struct {
	NumArguments    int
	ArgumentOrdinal int
}

// InvokeExpression is the signature-help inspection result for the nearest
// enclosing InvokeExpression in an ActiveNode's ancestry.
type InvokeExpression struct {
	Node          nodeidmap.XorNode
	MaybeName     string
	MaybeArgument *InvokeArguments
}

// FindInvokeExpression finds the nearest InvokeExpression in active's
// ancestry and resolves its callee name and which argument position holds
// the cursor, per spec.md §4.6.2.
func FindInvokeExpression(collection *nodeidmap.Collection, active *ActiveNode) (*InvokeExpression, bool) {
	var invokeNode nodeidmap.XorNode
	invokeIdx := -1
	for i, node := range active.Ancestry {
		if node.Kind() == ast.NodeKindInvokeExpression {
			invokeNode, invokeIdx = node, i
			break
		}
	}
	if invokeIdx == -1 {
		return nil, false
	}

	result := &InvokeExpression{Node: invokeNode}

	if invokeIdx+1 < len(active.Ancestry) {
		parent := active.Ancestry[invokeIdx+1]
		if parent.Kind() == ast.NodeKindRecursivePrimaryExpression {
			if head, ok := ChildByAttributeIndex(collection, parent.Id(), 0, ast.NodeKindIdentifierExpression); ok {
				result.MaybeName = identifierExpressionLiteral(collection, head)
			}
		}
	}

	if arrayNode, ok := ChildByAttributeIndex(collection, invokeNode.Id(), 1, ast.NodeKindArrayWrapper); ok {
		csvNodes := IterChildren(collection, arrayNode.Id())
		if len(csvNodes) > 0 {
			cursor := active.Position.AsTokenPosition()
			ordinal := len(csvNodes) - 1
			for i, csv := range csvNodes {
				if csv.IsAst() && onRange(cursor, csv.Ast.TokenRange.PositionStart, csv.Ast.TokenRange.PositionEnd) {
					ordinal = i
					break
				}
			}
			result.MaybeArgument = &InvokeArguments{NumArguments: len(csvNodes), ArgumentOrdinal: ordinal}
		}
	}

	return result, true
}

func identifierExpressionLiteral(collection *nodeidmap.Collection, node nodeidmap.XorNode) string {
	atChild, hasAt := ChildByAttributeIndex(collection, node.Id(), 0, ast.NodeKindConstant)
	identIndex := 0
	if hasAt {
		identIndex = 1
	}
	identNode, ok := ChildByAttributeIndex(collection, node.Id(), identIndex, ast.NodeKindIdentifier)
	if !ok || !identNode.IsAst() {
		return ""
	}
	prefix := ""
	if hasAt && atChild.IsAst() {
		prefix = atChild.Ast.Data
	}
	return prefix + identNode.Ast.Data
}
