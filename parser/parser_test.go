package parser

import (
	"testing"

	"github.com/cybersorcerer/pqcore/ast"
	"github.com/cybersorcerer/pqcore/lexer"
	"github.com/cybersorcerer/pqcore/localization"
)

func mustSnapshot(t *testing.T, text string) *lexer.LexerSnapshot {
	t.Helper()
	state := lexer.From(text, "\n")
	snap, err := lexer.Snapshot(state)
	if err != nil {
		t.Fatalf("unexpected lex error for %q: %v", text, err)
	}
	return snap
}

func mustParse(t *testing.T, text string) *Result {
	t.Helper()
	snap := mustSnapshot(t, text)
	result, err := TryRead(localization.Default(), snap)
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", text, err)
	}
	return result
}

func TestParseArithmeticPrecedence(t *testing.T) {
	result := mustParse(t, "1 + 2 * 3")
	if result.Root.Kind != ast.NodeKindArithmeticExpression {
		t.Fatalf("expected root ArithmeticExpression, got %v", result.Root.Kind)
	}
	right, ok := result.Collection.ChildByAttributeIndex(result.Root.Id, 2)
	if !ok {
		t.Fatal("expected a right operand at attribute 2")
	}
	node, _ := result.Collection.XorNodeById(right)
	if node.Kind() != ast.NodeKindArithmeticExpression {
		t.Fatalf("expected '2 * 3' to bind tighter than '+', got %v", node.Kind())
	}
}

func TestParseBareLiteralCollapsesWrapperLevels(t *testing.T) {
	result := mustParse(t, "42")
	if result.Root.Kind != ast.NodeKindLiteralExpression {
		t.Fatalf("expected a bare literal to collapse every speculative binary wrapper, got %v", result.Root.Kind)
	}
}

func TestParseIfExpression(t *testing.T) {
	result := mustParse(t, "if true then 1 else 2")
	if result.Root.Kind != ast.NodeKindIfExpression {
		t.Fatalf("expected NodeKindIfExpression, got %v", result.Root.Kind)
	}
	if len(result.Collection.ChildIds(result.Root.Id)) != 6 {
		t.Fatalf("expected 6 children (if/cond/then/true/else/false), got %d", len(result.Collection.ChildIds(result.Root.Id)))
	}
}

func TestParseLetExpression(t *testing.T) {
	result := mustParse(t, "let x = 1, y = 2 in x + y")
	if result.Root.Kind != ast.NodeKindLetExpression {
		t.Fatalf("expected NodeKindLetExpression, got %v", result.Root.Kind)
	}
}

func TestParseFunctionExpression(t *testing.T) {
	result := mustParse(t, "(x as number, optional y as number) => x + y")
	if result.Root.Kind != ast.NodeKindFunctionExpression {
		t.Fatalf("expected NodeKindFunctionExpression, got %v", result.Root.Kind)
	}
}

func TestParseInvokeExpression(t *testing.T) {
	result := mustParse(t, "f(42)")
	if result.Root.Kind != ast.NodeKindRecursivePrimaryExpression {
		t.Fatalf("expected NodeKindRecursivePrimaryExpression, got %v", result.Root.Kind)
	}
}

func TestParseParenthesizedVsFunctionDisambiguation(t *testing.T) {
	paren := mustParse(t, "(1 + 2)")
	if paren.Root.Kind != ast.NodeKindParenthesizedExpression {
		t.Fatalf("expected NodeKindParenthesizedExpression for a bare grouped expression, got %v", paren.Root.Kind)
	}

	fn := mustParse(t, "(x) => x")
	if fn.Root.Kind != ast.NodeKindFunctionExpression {
		t.Fatalf("expected NodeKindFunctionExpression for a single-parameter lambda, got %v", fn.Root.Kind)
	}
}

func TestParseFieldSelectorVsProjectionDisambiguation(t *testing.T) {
	selector := mustParse(t, "x[Name]")
	selectorSuffix, ok := selector.Collection.ChildByAttributeIndex(selector.Root.Id, 1)
	if !ok {
		t.Fatal("expected a field-access suffix child")
	}
	node, _ := selector.Collection.XorNodeById(selectorSuffix)
	if node.Kind() != ast.NodeKindFieldSelector {
		t.Fatalf("expected NodeKindFieldSelector, got %v", node.Kind())
	}

	projection := mustParse(t, "x[[Name],[Value]]")
	projectionSuffix, ok := projection.Collection.ChildByAttributeIndex(projection.Root.Id, 1)
	if !ok {
		t.Fatal("expected a field-access suffix child")
	}
	node, _ = projection.Collection.XorNodeById(projectionSuffix)
	if node.Kind() != ast.NodeKindFieldProjection {
		t.Fatalf("expected NodeKindFieldProjection, got %v", node.Kind())
	}
}

func TestParseRecordExpression(t *testing.T) {
	result := mustParse(t, `[A = 1, B = "two"]`)
	if result.Root.Kind != ast.NodeKindRecordExpression {
		t.Fatalf("expected NodeKindRecordExpression, got %v", result.Root.Kind)
	}
}

func TestParseEachExpression(t *testing.T) {
	result := mustParse(t, "each _ + 1")
	if result.Root.Kind != ast.NodeKindEachExpression {
		t.Fatalf("expected NodeKindEachExpression, got %v", result.Root.Kind)
	}
}

func TestParseErrorHandlingExpression(t *testing.T) {
	result := mustParse(t, "try 1 / 0 otherwise 0")
	if result.Root.Kind != ast.NodeKindErrorHandlingExpression {
		t.Fatalf("expected NodeKindErrorHandlingExpression, got %v", result.Root.Kind)
	}
}

func TestParseSection(t *testing.T) {
	result := mustParse(t, "section Foo; shared X = 1;")
	if result.Root.Kind != ast.NodeKindSection {
		t.Fatalf("expected NodeKindSection, got %v", result.Root.Kind)
	}
}

func TestParseDanglingCommaInCsvIsAnError(t *testing.T) {
	snap := mustSnapshot(t, "{1, 2,}")
	if _, err := TryRead(localization.Default(), snap); err == nil {
		t.Fatal("expected a dangling trailing comma in a list literal to fail to parse")
	}
}

func TestParseRequiredParameterAfterOptionalIsAnError(t *testing.T) {
	snap := mustSnapshot(t, "(optional x, y) => x")
	if _, err := TryRead(localization.Default(), snap); err == nil {
		t.Fatal("expected a required parameter after an optional one to fail to parse")
	}
}

func TestParseUnusedTokensRemainIsAnError(t *testing.T) {
	snap := mustSnapshot(t, "1 2")
	if _, err := TryRead(localization.Default(), snap); err == nil {
		t.Fatal("expected trailing tokens after a complete expression to fail to parse")
	}
}

func TestParseFailurePreservesPartialCollection(t *testing.T) {
	snap := mustSnapshot(t, "let x = in x")
	_, err := TryRead(localization.Default(), snap)
	if err == nil {
		t.Fatal("expected a malformed let-expression to fail to parse")
	}
	parseErr, ok := err.(*Err)
	if !ok {
		t.Fatalf("expected *Err, got %T", err)
	}
	if len(parseErr.Collection.AllLeafIds()) == 0 {
		t.Fatal("expected the partial collection to still hold the already-opened let/identifier nodes")
	}
}
