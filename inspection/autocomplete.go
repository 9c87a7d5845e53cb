package inspection

import (
	"github.com/cybersorcerer/pqcore/ast"
	"github.com/cybersorcerer/pqcore/nodeidmap"
	"github.com/cybersorcerer/pqcore/position"
)

// Keyword is a spelling autocomplete may offer or require next. The core
// never ran a real lexer keyword table through this package, so these are
// the literal token spellings rather than lexer.TokenKind values.
type Keyword string

const (
	KeywordAnd       Keyword = "and"
	KeywordAs        Keyword = "as"
	KeywordEach      Keyword = "each"
	KeywordElse      Keyword = "else"
	KeywordError     Keyword = "error"
	KeywordFalse     Keyword = "false"
	KeywordIf        Keyword = "if"
	KeywordIn        Keyword = "in"
	KeywordIs        Keyword = "is"
	KeywordLet       Keyword = "let"
	KeywordMeta      Keyword = "meta"
	KeywordNot       Keyword = "not"
	KeywordNull      Keyword = "null"
	KeywordOr        Keyword = "or"
	KeywordOtherwise Keyword = "otherwise"
	KeywordThen      Keyword = "then"
	KeywordTrue      Keyword = "true"
	KeywordTry       Keyword = "try"
	KeywordType      Keyword = "type"
)

// ExpressionKeywords is TExpressionKeywords: every keyword that may itself
// begin an expression. The "#" keywords (#table, #date, ...) are not listed.
var ExpressionKeywords = []Keyword{
	KeywordEach, KeywordError, KeywordFalse, KeywordIf, KeywordLet, KeywordNot, KeywordNull, KeywordTrue, KeywordTry, KeywordType,
}

// Autocomplete is the result of autocompletion inspection: a single keyword
// the grammar requires next, if any, plus the full set of keywords that
// would keep the document parseable from here.
type Autocomplete struct {
	RequiredAutocomplete Keyword
	AllowedKeywords      []Keyword
}

type autocompleteRule struct {
	required Keyword
	useExpr  bool
}

// staticAutocompleteMap keys a completed child's own attributeIndex within
// its open parent to the rule governing what comes immediately after that
// child. (Node kinds handled by dedicated logic — ErrorHandlingExpression —
// are intentionally absent here.)
var staticAutocompleteMap = map[ast.NodeKind]map[int]autocompleteRule{
	ast.NodeKindIfExpression: {
		0: {useExpr: true},
		1: {required: KeywordThen},
		2: {useExpr: true},
		3: {required: KeywordElse},
		4: {useExpr: true},
	},
	ast.NodeKindLetExpression: {
		1: {required: KeywordIn},
		2: {useExpr: true},
	},
	ast.NodeKindEachExpression: {
		0: {useExpr: true},
	},
	ast.NodeKindErrorRaisingExpression: {
		0: {useExpr: true},
	},
	ast.NodeKindOtherwiseExpression: {
		0: {useExpr: true},
	},
}

// FindAutocomplete implements spec.md §4.6.3: with no ActiveNode every
// expression keyword is offered; otherwise the ancestry is walked
// child-then-parent looking for the first rule that applies.
func FindAutocomplete(collection *nodeidmap.Collection, active *ActiveNode) *Autocomplete {
	if active == nil || len(active.Ancestry) == 0 {
		return &Autocomplete{AllowedKeywords: ExpressionKeywords}
	}

	cursor := active.Position.AsTokenPosition()

	for i := 0; i+1 < len(active.Ancestry); i++ {
		child := active.Ancestry[i]
		parent := active.Ancestry[i+1]

		if !parent.IsAst() && position.Compare(cursor, parent.PositionStart()) == 0 {
			continue
		}

		if parent.Kind() == ast.NodeKindErrorHandlingExpression {
			if ac, ok := errorHandlingAutocomplete(child, cursor); ok {
				return ac
			}
			continue
		}

		rules, ok := staticAutocompleteMap[parent.Kind()]
		if !ok {
			continue
		}
		rule, ok := rules[child.AttributeIndex()]
		if !ok {
			continue
		}
		if rule.useExpr {
			return &Autocomplete{AllowedKeywords: ExpressionKeywords}
		}
		return &Autocomplete{RequiredAutocomplete: rule.required, AllowedKeywords: []Keyword{rule.required}}
	}

	return &Autocomplete{AllowedKeywords: ExpressionKeywords}
}

func errorHandlingAutocomplete(child nodeidmap.XorNode, cursor position.TokenPosition) (*Autocomplete, bool) {
	switch child.AttributeIndex() {
	case 0:
		return &Autocomplete{RequiredAutocomplete: KeywordTry, AllowedKeywords: []Keyword{KeywordTry}}, true
	case 1:
		if child.IsAst() && position.Compare(child.Ast.TokenRange.PositionEnd, cursor) <= 0 {
			return &Autocomplete{RequiredAutocomplete: KeywordOtherwise, AllowedKeywords: []Keyword{KeywordOtherwise}}, true
		}
		return &Autocomplete{AllowedKeywords: ExpressionKeywords}, true
	default:
		return nil, false
	}
}
