package parser

import (
	"github.com/cybersorcerer/pqcore/ast"
	"github.com/cybersorcerer/pqcore/lexer"
)

// parseExpression is the root of the precedence chain: the widest-scoped
// forms (each, let, if, try, error) are tried first since they are only
// valid as a whole expression, never as an operand partway through a
// binary chain; everything else falls through to the binary operator
// ladder.
func (p *Parser) parseExpression(attrIndex int) (*ast.TNode, *ParseError) {
	switch p.currentKind() {
	case lexer.TokenKeywordEach:
		return p.parseEachExpression(attrIndex)
	case lexer.TokenKeywordLet:
		return p.parseLetExpression(attrIndex)
	case lexer.TokenKeywordIf:
		return p.parseIfExpression(attrIndex)
	case lexer.TokenKeywordTry:
		return p.parseErrorHandlingExpression(attrIndex)
	case lexer.TokenKeywordError:
		return p.parseErrorRaisingExpression(attrIndex)
	default:
		return p.parseLogicalExpression(attrIndex)
	}
}

type binOpEntry struct {
	kind lexer.TokenKind
	node ast.NodeKind
}

func matchBinOp(entries []binOpEntry, kind lexer.TokenKind) (binOpEntry, bool) {
	for _, e := range entries {
		if e.kind == kind {
			return e, true
		}
	}
	return binOpEntry{}, false
}

// parseOperatorConstant wraps the operator token itself as a leaf Constant
// child at the given attribute index.
func (p *Parser) parseOperatorConstant(kind lexer.TokenKind, attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindConstant, attrIndex)
	tok, err := p.expect(kind)
	if err != nil {
		p.abandon(id)
		return nil, err
	}
	return p.close(id, start, tok.Data)
}

// parseBinaryLevel opens nodeKind as the attrIndex'th child of whatever is
// currently open, parses next(0) as its left operand, and either:
//   - finds no matching operator, in which case the speculative wrapper
//     context is deleted; DeleteContext promotes the lone left operand to
//     inherit attrIndex, so the caller's tree shape is exactly as if this
//     precedence tier had never been tried, or
//   - finds a matching operator, consumes it as a Constant child at index
//     1, parses next(2) as the right operand, and closes the wrapper.
func (p *Parser) parseBinaryLevel(attrIndex int, nodeKind ast.NodeKind, entries []binOpEntry, next func(int) (*ast.TNode, *ParseError)) (*ast.TNode, *ParseError) {
	id, start := p.open(nodeKind, attrIndex)

	if _, err := next(0); err != nil {
		p.abandon(id)
		return nil, err
	}

	entry, ok := matchBinOp(entries, p.currentKind())
	if !ok {
		children := p.collection.ChildIds(id)
		leftId := children[0]
		p.abandon(id)
		node, _ := p.collection.XorNodeById(leftId)
		return node.Ast, nil
	}

	if _, err := p.parseOperatorConstant(entry.kind, 1); err != nil {
		p.abandon(id)
		return nil, err
	}
	if _, err := next(2); err != nil {
		p.abandon(id)
		return nil, err
	}

	return p.close(id, start, "")
}

func (p *Parser) parseLogicalExpression(attrIndex int) (*ast.TNode, *ParseError) {
	entries := []binOpEntry{
		{lexer.TokenKeywordOr, ast.NodeKindLogicalExpression},
		{lexer.TokenKeywordAnd, ast.NodeKindLogicalExpression},
	}
	return p.parseBinaryLevel(attrIndex, ast.NodeKindLogicalExpression, entries, p.parseNullCoalescingExpression)
}

func (p *Parser) parseNullCoalescingExpression(attrIndex int) (*ast.TNode, *ParseError) {
	entries := []binOpEntry{{lexer.TokenNullCoalescingOperator, ast.NodeKindNullCoalescingExpression}}
	return p.parseBinaryLevel(attrIndex, ast.NodeKindNullCoalescingExpression, entries, p.parseIsAsExpression)
}

// parseIsAsExpression handles "X is type" / "X as type", which bind a
// nullable primitive type on the right rather than another expression, so
// it cannot reuse parseBinaryLevel's next(2)-is-an-expression shape
// directly. It parses a single is/as operator: a further is/as after the
// type (as in "x is number as text") is not consumed here.
func (p *Parser) parseIsAsExpression(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindIsExpression, attrIndex)

	if _, err := p.parseEqualityExpression(0); err != nil {
		p.abandon(id)
		return nil, err
	}

	if !p.currentIs(lexer.TokenKeywordIs) && !p.currentIs(lexer.TokenKeywordAs) {
		children := p.collection.ChildIds(id)
		leftId := children[0]
		p.abandon(id)
		node, _ := p.collection.XorNodeById(leftId)
		return node.Ast, nil
	}

	opKind := p.currentKind()
	if _, err := p.parseOperatorConstant(opKind, 1); err != nil {
		p.abandon(id)
		return nil, err
	}
	if _, err := p.parseNullablePrimitiveType(2); err != nil {
		p.abandon(id)
		return nil, err
	}

	node, closeErr := p.close(id, start, "")
	if closeErr != nil {
		return nil, closeErr
	}
	if node.Kind == ast.NodeKindIsExpression && opKind == lexer.TokenKeywordAs {
		node.Kind = ast.NodeKindAsExpression
	}
	return node, nil
}

func (p *Parser) parseEqualityExpression(attrIndex int) (*ast.TNode, *ParseError) {
	entries := []binOpEntry{
		{lexer.TokenEqual, ast.NodeKindEqualityExpression},
		{lexer.TokenNotEqual, ast.NodeKindEqualityExpression},
	}
	return p.parseBinaryLevel(attrIndex, ast.NodeKindEqualityExpression, entries, p.parseRelationalExpression)
}

func (p *Parser) parseRelationalExpression(attrIndex int) (*ast.TNode, *ParseError) {
	entries := []binOpEntry{
		{lexer.TokenLessThan, ast.NodeKindRelationalExpression},
		{lexer.TokenLessThanEqualTo, ast.NodeKindRelationalExpression},
		{lexer.TokenGreaterThan, ast.NodeKindRelationalExpression},
		{lexer.TokenGreaterThanEqualTo, ast.NodeKindRelationalExpression},
	}
	return p.parseBinaryLevel(attrIndex, ast.NodeKindRelationalExpression, entries, p.parseArithmeticExpression)
}

func (p *Parser) parseArithmeticExpression(attrIndex int) (*ast.TNode, *ParseError) {
	entries := []binOpEntry{
		{lexer.TokenPlus, ast.NodeKindArithmeticExpression},
		{lexer.TokenMinus, ast.NodeKindArithmeticExpression},
		{lexer.TokenAmpersand, ast.NodeKindArithmeticExpression},
	}
	return p.parseBinaryLevel(attrIndex, ast.NodeKindArithmeticExpression, entries, p.parseMultiplicativeExpression)
}

func (p *Parser) parseMultiplicativeExpression(attrIndex int) (*ast.TNode, *ParseError) {
	entries := []binOpEntry{
		{lexer.TokenAsterisk, ast.NodeKindArithmeticExpression},
		{lexer.TokenDivision, ast.NodeKindArithmeticExpression},
	}
	return p.parseBinaryLevel(attrIndex, ast.NodeKindArithmeticExpression, entries, p.parseMetadataExpression)
}

func (p *Parser) parseMetadataExpression(attrIndex int) (*ast.TNode, *ParseError) {
	entries := []binOpEntry{{lexer.TokenKeywordMeta, ast.NodeKindMetadataExpression}}
	return p.parseBinaryLevel(attrIndex, ast.NodeKindMetadataExpression, entries, p.parseUnaryExpression)
}

func (p *Parser) parseUnaryExpression(attrIndex int) (*ast.TNode, *ParseError) {
	if p.currentIs(lexer.TokenPlus) || p.currentIs(lexer.TokenMinus) || p.currentIs(lexer.TokenKeywordNot) {
		id, start := p.open(ast.NodeKindUnaryExpression, attrIndex)
		op := p.currentKind()
		if _, err := p.parseOperatorConstant(op, 0); err != nil {
			p.abandon(id)
			return nil, err
		}
		if _, err := p.parsePrimaryExpression(1); err != nil {
			p.abandon(id)
			return nil, err
		}
		return p.close(id, start, "")
	}
	return p.parsePrimaryExpression(attrIndex)
}
