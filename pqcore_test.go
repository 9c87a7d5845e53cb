package pqcore

import (
	"testing"

	"github.com/cybersorcerer/pqcore/ast"
	"github.com/cybersorcerer/pqcore/position"
)

func TestLexSnapshotParseInspectRoundTrip(t *testing.T) {
	state := Lex(LexSettings{}, "(x as number) => x + 1", "\n")
	snap, err := Snapshot(state)
	if err != nil {
		t.Fatalf("unexpected snapshot error: %v", err)
	}

	result := Parse(ParseSettings{}, snap)
	if result.Err != nil {
		t.Fatalf("unexpected parse error: %v", result.Err)
	}
	if result.Root.Kind != ast.NodeKindFunctionExpression {
		t.Fatalf("expected NodeKindFunctionExpression, got %v", result.Root.Kind)
	}

	inspected := Inspect(CommonSettings{}, position.Position{LineNumber: 0, LineCodeUnit: 17}, result)
	if inspected.ActiveNode == nil {
		t.Fatal("expected a populated active node")
	}
	if _, ok := inspected.Scope.Get("x"); !ok {
		t.Fatal("expected x to be bound in scope inside the function body")
	}
}

func TestParseFailureStillYieldsInspectableResult(t *testing.T) {
	state := Lex(LexSettings{}, "let x = in x", "\n")
	snap, err := Snapshot(state)
	if err != nil {
		t.Fatalf("unexpected snapshot error: %v", err)
	}

	result := Parse(ParseSettings{}, snap)
	if result.Err == nil {
		t.Fatal("expected a malformed let-expression to fail to parse")
	}
	if result.Collection == nil {
		t.Fatal("expected the partial collection to survive a parse failure")
	}

	inspected := Inspect(CommonSettings{}, position.Position{LineNumber: 0, LineCodeUnit: 4}, result)
	if inspected.Scope == nil {
		t.Fatal("expected Inspect to still return a scope against a broken parse")
	}
}

func TestInspectWithNilParseResultReturnsEmptyScope(t *testing.T) {
	inspected := Inspect(CommonSettings{}, position.Position{}, nil)
	if inspected.ActiveNode != nil {
		t.Fatal("expected a nil ActiveNode when there is no parse result")
	}
	if inspected.Scope == nil || inspected.Scope.Len() != 0 {
		t.Fatal("expected an empty scope when there is no parse result")
	}
}

func TestLexAppendLineAndUpdateLineRoundTrip(t *testing.T) {
	state := Lex(LexSettings{}, "1", "\n")
	state = LexAppendLine(state, "+ 2")
	state, badLine := LexUpdateLine(state, 0, "99")
	if badLine != nil {
		t.Fatalf("unexpected bad line number error: %v", badLine)
	}
	if len(state.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(state.Lines))
	}
	if state.Lines[0].Text() != "99" {
		t.Errorf("expected updated first line %q, got %q", "99", state.Lines[0].Text())
	}
}
