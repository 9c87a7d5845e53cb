package nodeidmap

import (
	"testing"

	"github.com/cybersorcerer/pqcore/ast"
	"github.com/cybersorcerer/pqcore/localization"
	"github.com/cybersorcerer/pqcore/position"
)

func newTestCollection() *Collection {
	return New(localization.Default())
}

func TestStartEndContextPromotesToAstNode(t *testing.T) {
	c := newTestCollection()

	rootId := c.StartContext(ast.NodeKindLetExpression, 0, 0, 0, position.TokenPosition{})
	node, err := c.EndContext(rootId, position.TokenRange{}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Kind != ast.NodeKindLetExpression {
		t.Errorf("expected NodeKindLetExpression, got %v", node.Kind)
	}
	if !node.IsLeaf {
		t.Error("expected a childless node to be a leaf")
	}
}

func TestEndContextTwiceIsInvariantError(t *testing.T) {
	c := newTestCollection()
	id := c.StartContext(ast.NodeKindIdentifier, 0, 0, 0, position.TokenPosition{})
	if _, err := c.EndContext(id, position.TokenRange{}, "x"); err != nil {
		t.Fatalf("unexpected error on first close: %v", err)
	}
	if _, err := c.EndContext(id, position.TokenRange{}, "x"); err == nil {
		t.Fatal("expected an error closing an already-closed context")
	}
}

func TestDeleteContextPromotesSingleChildWithParentAttributeIndex(t *testing.T) {
	c := newTestCollection()

	parentId := c.StartContext(ast.NodeKindArithmeticExpression, 0, 3, 0, position.TokenPosition{})
	childId := c.StartContext(ast.NodeKindLiteralExpression, parentId, 0, 0, position.TokenPosition{})
	if _, err := c.EndContext(childId, position.TokenRange{}, "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.DeleteContext(parentId); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.attributeIndexOf(childId) != 3 {
		t.Errorf("expected promoted child to inherit attributeIndex 3, got %d", c.attributeIndexOf(childId))
	}
	if !c.IsLeaf(childId) {
		t.Error("expected promoted child to remain a leaf")
	}
}

func TestChildIdsReturnsAttributeOrder(t *testing.T) {
	c := newTestCollection()

	parentId := c.StartContext(ast.NodeKindIfExpression, 0, 0, 0, position.TokenPosition{})
	var childIds []ast.NodeId
	for i := 0; i < 3; i++ {
		id := c.StartContext(ast.NodeKindConstant, parentId, i, i, position.TokenPosition{})
		if _, err := c.EndContext(id, position.TokenRange{}, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		childIds = append(childIds, id)
	}

	got := c.ChildIds(parentId)
	if len(got) != 3 {
		t.Fatalf("expected 3 children, got %d", len(got))
	}
	for i, id := range got {
		if id != childIds[i] {
			t.Errorf("expected child %d to be %v, got %v", i, childIds[i], id)
		}
	}
}

func TestAllLeafIdsSurvivesAnOpenContext(t *testing.T) {
	c := newTestCollection()

	rootId := c.StartContext(ast.NodeKindLetExpression, 0, 0, 0, position.TokenPosition{})
	leafId := c.StartContext(ast.NodeKindIdentifier, rootId, 0, 0, position.TokenPosition{})
	if _, err := c.EndContext(leafId, position.TokenRange{}, "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	leaves := c.AllLeafIds()
	if len(leaves) != 1 || leaves[0] != leafId {
		t.Fatalf("expected AllLeafIds to report only the closed leaf %v, got %v", leafId, leaves)
	}
}
