package inspection

import (
	"testing"

	"github.com/cybersorcerer/pqcore/lexer"
	"github.com/cybersorcerer/pqcore/localization"
	"github.com/cybersorcerer/pqcore/parser"
	"github.com/cybersorcerer/pqcore/position"
)

func mustParse(t *testing.T, text string) *parser.Result {
	t.Helper()
	state := lexer.From(text, "\n")
	snap, err := lexer.Snapshot(state)
	if err != nil {
		t.Fatalf("unexpected lex error for %q: %v", text, err)
	}
	result, perr := parser.TryRead(localization.Default(), snap)
	if perr != nil {
		t.Fatalf("unexpected parse error for %q: %v", text, perr)
	}
	return result
}

func posAt(line, col uint32) position.Position {
	return position.Position{LineNumber: line, LineCodeUnit: col}
}

func TestFindActiveNodeReturnsFalseForEmptyLeafSet(t *testing.T) {
	result := mustParse(t, "1")
	if _, ok := FindActiveNode(result.Collection, nil, posAt(0, 0)); ok {
		t.Fatal("expected no active node when leafNodeIds is empty")
	}
}

func TestFindActiveNodeLocatesEnclosingLeaf(t *testing.T) {
	result := mustParse(t, "1 + 2")
	active, ok := FindActiveNode(result.Collection, result.LeafNodeIds, posAt(0, 4))
	if !ok {
		t.Fatal("expected an active node at the second operand")
	}
	if len(active.Ancestry) == 0 {
		t.Fatal("expected a non-empty ancestry")
	}
	if active.Leaf().Kind() != active.Ancestry[0].Kind() {
		t.Fatal("expected Leaf() to return the deepest ancestry entry")
	}
}

func TestFindActiveNodeFallsBackToLatestStartedLeaf(t *testing.T) {
	result := mustParse(t, "1 + 2")
	active, ok := FindActiveNode(result.Collection, result.LeafNodeIds, posAt(0, 100))
	if !ok {
		t.Fatal("expected a fallback active node past the end of the document")
	}
	if len(active.Ancestry) == 0 {
		t.Fatal("expected a non-empty ancestry for the fallback case")
	}
}

func TestBuildScopeBindsEachUnderscore(t *testing.T) {
	result := mustParse(t, "each _ + 1")
	active, ok := FindActiveNode(result.Collection, result.LeafNodeIds, posAt(0, 7))
	if !ok {
		t.Fatal("expected an active node inside the each body")
	}
	scope, _ := BuildScope(result.Collection, active)
	if _, ok := scope.Get("_"); !ok {
		t.Fatal("expected _ to be bound inside an each expression")
	}
}

func TestBuildScopeBindsFunctionParameters(t *testing.T) {
	result := mustParse(t, "(x as number, optional y as number) => x + y")
	active, ok := FindActiveNode(result.Collection, result.LeafNodeIds, posAt(0, 42))
	if !ok {
		t.Fatal("expected an active node inside the function body")
	}
	scope, _ := BuildScope(result.Collection, active)
	x, ok := scope.Get("x")
	if !ok {
		t.Fatal("expected x to be bound as a function parameter")
	}
	if x.IsOptional {
		t.Error("expected x to be a required parameter")
	}
	y, ok := scope.Get("y")
	if !ok {
		t.Fatal("expected y to be bound as a function parameter")
	}
	if !y.IsOptional {
		t.Error("expected y to be an optional parameter")
	}
}

func TestBuildScopeOmitsLetBindingsNotInScopeTable(t *testing.T) {
	// LetExpression has no entry in the scope binding table: a let binding's
	// name is a bare Identifier under IdentifierPairedExpression, not an
	// IdentifierExpression, so it is never picked up by the ancestry walk.
	result := mustParse(t, "let x = 1, y = 2 in x + y")
	active, ok := FindActiveNode(result.Collection, result.LeafNodeIds, posAt(0, 24))
	if !ok {
		t.Fatal("expected an active node inside the in-expression")
	}
	scope, _ := BuildScope(result.Collection, active)
	if _, ok := scope.Get("x"); ok {
		t.Fatal("expected x not to be bound: LetExpression has no scope table entry")
	}
}

func TestBuildScopeReportsEnclosingList(t *testing.T) {
	result := mustParse(t, "{1, 2, 3}")
	active, ok := FindActiveNode(result.Collection, result.LeafNodeIds, posAt(0, 4))
	if !ok {
		t.Fatal("expected an active node inside the list")
	}
	_, nodes := BuildScope(result.Collection, active)
	if len(nodes) != 1 {
		t.Fatalf("expected the cursor to be reported inside exactly one list, got %d", len(nodes))
	}
}

func TestFindInvokeExpressionReportsArgumentOrdinal(t *testing.T) {
	result := mustParse(t, "f(1, 2, 3)")
	active, ok := FindActiveNode(result.Collection, result.LeafNodeIds, posAt(0, 5))
	if !ok {
		t.Fatal("expected an active node inside the argument list")
	}
	invoke, ok := FindInvokeExpression(result.Collection, active)
	if !ok {
		t.Fatal("expected an enclosing invoke expression")
	}
	if invoke.MaybeName != "f" {
		t.Errorf("expected invoke name %q, got %q", "f", invoke.MaybeName)
	}
	if invoke.MaybeArgument == nil {
		t.Fatal("expected argument info to be populated")
	}
	if invoke.MaybeArgument.NumArguments != 3 {
		t.Errorf("expected 3 arguments, got %d", invoke.MaybeArgument.NumArguments)
	}
	if invoke.MaybeArgument.ArgumentOrdinal != 1 {
		t.Errorf("expected cursor on argument ordinal 1, got %d", invoke.MaybeArgument.ArgumentOrdinal)
	}
}

func TestFindAutocompleteRequiresThenAfterIfCondition(t *testing.T) {
	result := mustParse(t, "if true then 1 else 2")
	active, ok := FindActiveNode(result.Collection, result.LeafNodeIds, posAt(0, 4))
	if !ok {
		t.Fatal("expected an active node on the if-condition")
	}
	ac := FindAutocomplete(result.Collection, active)
	if ac.RequiredAutocomplete != KeywordThen {
		t.Errorf("expected required keyword %q, got %q", KeywordThen, ac.RequiredAutocomplete)
	}
}

func TestFindAutocompleteWithNoActiveNodeReturnsExpressionKeywords(t *testing.T) {
	ac := FindAutocomplete(nil, &ActiveNode{})
	if len(ac.AllowedKeywords) != len(ExpressionKeywords) {
		t.Fatalf("expected the full expression-keyword set, got %v", ac.AllowedKeywords)
	}
}

func TestInspectOnEmptyLeafSetReturnsExpressionKeywords(t *testing.T) {
	result := mustParse(t, "1")
	inspected := Inspect(result.Collection, nil, posAt(0, 0))
	if inspected.ActiveNode != nil {
		t.Fatal("expected a nil ActiveNode for an empty leaf set")
	}
	if inspected.Scope == nil || inspected.Scope.Len() != 0 {
		t.Fatal("expected an empty scope")
	}
	if len(inspected.Autocomplete.AllowedKeywords) != len(ExpressionKeywords) {
		t.Fatal("expected the full expression-keyword set")
	}
}

func TestFindAutocompleteRequiresOtherwiseAfterErrorHandlingArm(t *testing.T) {
	result := mustParse(t, "try 1")
	active, ok := FindActiveNode(result.Collection, result.LeafNodeIds, posAt(0, 5))
	if !ok {
		t.Fatal("expected an active node at the end of the try arm")
	}
	ac := FindAutocomplete(result.Collection, active)
	if ac.RequiredAutocomplete != KeywordOtherwise {
		t.Errorf("expected required keyword %q, got %q", KeywordOtherwise, ac.RequiredAutocomplete)
	}
}

func TestFindInvokeExpressionSurvivesDanglingCommaArgument(t *testing.T) {
	state := lexer.From("Foo(a,)", "\n")
	snap, err := lexer.Snapshot(state)
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	_, perr := parser.TryRead(localization.Default(), snap)
	if perr == nil {
		t.Fatal("expected a dangling trailing comma to be a parse error")
	}
	parseErr, ok := perr.(*parser.Err)
	if !ok {
		t.Fatalf("expected a *parser.Err, got %T", perr)
	}

	leaves := parseErr.Collection.AllLeafIds()
	active, ok := FindActiveNode(parseErr.Collection, leaves, posAt(0, 6))
	if !ok {
		t.Fatal("expected an active node on the dangling comma")
	}
	invoke, ok := FindInvokeExpression(parseErr.Collection, active)
	if !ok {
		t.Fatal("expected the InvokeExpression to survive the dangling-comma error")
	}
	if invoke.MaybeName != "Foo" {
		t.Errorf("expected invoke name %q, got %q", "Foo", invoke.MaybeName)
	}
	if invoke.MaybeArgument == nil {
		t.Fatal("expected argument info to be populated")
	}
	if invoke.MaybeArgument.NumArguments != 1 {
		t.Errorf("expected 1 finished argument, got %d", invoke.MaybeArgument.NumArguments)
	}
}

func TestInspectEndToEndOnFunctionBody(t *testing.T) {
	result := mustParse(t, "(x as number) => x + 1")
	inspected := Inspect(result.Collection, result.LeafNodeIds, posAt(0, 18))
	if inspected.ActiveNode == nil {
		t.Fatal("expected a populated active node")
	}
	if _, ok := inspected.Scope.Get("x"); !ok {
		t.Fatal("expected x to be in scope inside the function body")
	}
}
