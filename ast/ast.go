// Package ast defines the node-kind vocabulary of the hybrid parsed tree:
// the set of M-language constructs the parser can produce, each carrying
// enough shape (attribute index, leaf-ness, token range) for the context
// tree and inspection engine to walk it without a type switch on every
// concrete Go type.
package ast

import (
	"fmt"

	"github.com/cybersorcerer/pqcore/position"
)

// NodeKind enumerates every construct this module's parser can build. The
// full M grammar has far more than this; the set below is the
// representative core needed to drive every inspection operation and
// end-to-end scenario this module supports: literals and identifiers,
// unary/binary operators, the five control/function forms, the four
// structural container forms, paired/csv helpers, type expressions, and the
// two top-level section forms.
type NodeKind int

const (
	NodeKindLiteralExpression NodeKind = iota
	NodeKindIdentifier
	NodeKindGeneralizedIdentifier
	NodeKindIdentifierExpression
	NodeKindConstant

	NodeKindUnaryExpression
	NodeKindArithmeticExpression
	NodeKindEqualityExpression
	NodeKindRelationalExpression
	NodeKindLogicalExpression
	NodeKindNullCoalescingExpression
	NodeKindIsExpression
	NodeKindAsExpression
	NodeKindMetadataExpression

	NodeKindIfExpression
	NodeKindLetExpression
	NodeKindEachExpression
	NodeKindFunctionExpression
	NodeKindParameterList
	NodeKindParameter
	NodeKindInvokeExpression
	NodeKindErrorHandlingExpression
	NodeKindOtherwiseExpression
	NodeKindErrorRaisingExpression

	NodeKindRecordExpression
	NodeKindRecordLiteral
	NodeKindListExpression
	NodeKindListType
	NodeKindFieldSelector
	NodeKindFieldProjection
	NodeKindFieldSpecification
	NodeKindRecursivePrimaryExpression
	NodeKindParenthesizedExpression

	NodeKindCsv
	NodeKindArrayWrapper
	NodeKindIdentifierPairedExpression
	NodeKindGeneralizedIdentifierPairedExpression

	NodeKindTypePrimaryType
	NodeKindPrimitiveType
	NodeKindNullablePrimitiveType
	NodeKindFunctionType
	NodeKindTableType

	NodeKindSection
	NodeKindSectionMember
)

var nodeKindNames = map[NodeKind]string{
	NodeKindLiteralExpression:                     "LiteralExpression",
	NodeKindIdentifier:                             "Identifier",
	NodeKindGeneralizedIdentifier:                  "GeneralizedIdentifier",
	NodeKindIdentifierExpression:                   "IdentifierExpression",
	NodeKindConstant:                                "Constant",
	NodeKindUnaryExpression:                         "UnaryExpression",
	NodeKindArithmeticExpression:                    "ArithmeticExpression",
	NodeKindEqualityExpression:                      "EqualityExpression",
	NodeKindRelationalExpression:                    "RelationalExpression",
	NodeKindLogicalExpression:                       "LogicalExpression",
	NodeKindNullCoalescingExpression:                "NullCoalescingExpression",
	NodeKindIsExpression:                            "IsExpression",
	NodeKindAsExpression:                            "AsExpression",
	NodeKindMetadataExpression:                      "MetadataExpression",
	NodeKindIfExpression:                            "IfExpression",
	NodeKindLetExpression:                           "LetExpression",
	NodeKindEachExpression:                          "EachExpression",
	NodeKindFunctionExpression:                      "FunctionExpression",
	NodeKindParameterList:                           "ParameterList",
	NodeKindParameter:                               "Parameter",
	NodeKindInvokeExpression:                        "InvokeExpression",
	NodeKindErrorHandlingExpression:                 "ErrorHandlingExpression",
	NodeKindOtherwiseExpression:                     "OtherwiseExpression",
	NodeKindErrorRaisingExpression:                  "ErrorRaisingExpression",
	NodeKindRecordExpression:                        "RecordExpression",
	NodeKindRecordLiteral:                           "RecordLiteral",
	NodeKindListExpression:                          "ListExpression",
	NodeKindListType:                                "ListType",
	NodeKindFieldSelector:                           "FieldSelector",
	NodeKindFieldProjection:                         "FieldProjection",
	NodeKindFieldSpecification:                      "FieldSpecification",
	NodeKindRecursivePrimaryExpression:               "RecursivePrimaryExpression",
	NodeKindParenthesizedExpression:                  "ParenthesizedExpression",
	NodeKindCsv:                                      "Csv",
	NodeKindArrayWrapper:                             "ArrayWrapper",
	NodeKindIdentifierPairedExpression:               "IdentifierPairedExpression",
	NodeKindGeneralizedIdentifierPairedExpression:     "GeneralizedIdentifierPairedExpression",
	NodeKindTypePrimaryType:                          "TypePrimaryType",
	NodeKindPrimitiveType:                            "PrimitiveType",
	NodeKindNullablePrimitiveType:                    "NullablePrimitiveType",
	NodeKindFunctionType:                             "FunctionType",
	NodeKindTableType:                                "TableType",
	NodeKindSection:                                  "Section",
	NodeKindSectionMember:                            "SectionMember",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// NodeId identifies a node within a single parse's NodeIdMapCollection. Ids
// are assigned densely starting at 1 as the parser opens contexts; 0 is
// never a valid id.
type NodeId uint64

// TNode is a concrete, fully-parsed AST node: the Ast side of the XorNode
// sum type the context-tree package builds on. Every TNode carries its
// grammar-assigned attributeIndex among its parent's children, preserved
// even when a sibling failed to parse (spec.md §3.6's attribute-indexing
// contract).
type TNode struct {
	Id             NodeId
	Kind           NodeKind
	IsLeaf         bool
	AttributeIndex int
	TokenRange     position.TokenRange

	// Data carries kind-specific leaf content: an identifier's literal
	// text, a literal expression's literal kind and text, a constant's
	// fixed spelling. Non-leaf nodes leave it empty; their meaning is
	// entirely in their children.
	Data string
}

// String renders a compact, human-readable form used by debug tooling and
// test failure messages; it intentionally does not try to reconstruct
// source text.
func (n *TNode) String() string {
	if n.Data != "" {
		return fmt.Sprintf("%s(%q)", n.Kind, n.Data)
	}
	return n.Kind.String()
}
