package parser

import (
	"github.com/cybersorcerer/pqcore/ast"
	"github.com/cybersorcerer/pqcore/lexer"
)

// literalTokenKinds is every TokenKind that stands on its own as a
// LiteralExpression's leaf content.
var literalTokenKinds = []lexer.TokenKind{
	lexer.TokenNumericLiteral,
	lexer.TokenHexLiteral,
	lexer.TokenStringLiteral,
	lexer.TokenKeywordTrue,
	lexer.TokenKeywordFalse,
	lexer.TokenKeywordNull,
	lexer.TokenKeywordHashInfinity,
	lexer.TokenKeywordHashNan,
}

// hashIdentifierTokenKinds are the "#word" keywords the lexer tokenizes
// distinctly (spec.md's QuotedIdentifier-adjacent hash keywords) but which
// behave as ordinary invocable identifiers in expression position, e.g.
// "#table(...)", "#date(...)".
var hashIdentifierTokenKinds = []lexer.TokenKind{
	lexer.TokenKeywordHashBinary,
	lexer.TokenKeywordHashDate,
	lexer.TokenKeywordHashDateTime,
	lexer.TokenKeywordHashDateTimeZone,
	lexer.TokenKeywordHashDuration,
	lexer.TokenKeywordHashSections,
	lexer.TokenKeywordHashShared,
	lexer.TokenKeywordHashTable,
	lexer.TokenKeywordHashTime,
}

func isOneOf(kind lexer.TokenKind, kinds []lexer.TokenKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// parsePrimaryExpression is the recursive-primary entry point every other
// tier falls through to: a primary head followed by zero or more invoke /
// field-access suffixes.
func (p *Parser) parsePrimaryExpression(attrIndex int) (*ast.TNode, *ParseError) {
	return p.parseRecursivePrimaryExpression(attrIndex)
}

// parseRecursivePrimaryExpression parses a primary head as child 0, then
// folds in invoke/field-access suffixes as children 1, 2, .... If none
// follow, the wrapper is abandoned and DeleteContext's lone-child promotion
// returns the head directly — the same collapsing trick parseBinaryLevel
// uses for an absent operator.
func (p *Parser) parseRecursivePrimaryExpression(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindRecursivePrimaryExpression, attrIndex)

	if _, err := p.parsePrimaryExpressionHead(0); err != nil {
		p.abandon(id)
		return nil, err
	}

	index := 1
	for p.currentIs(lexer.TokenLeftParenthesis) || p.currentIs(lexer.TokenLeftBracket) {
		var err *ParseError
		if p.currentIs(lexer.TokenLeftParenthesis) {
			_, err = p.parseInvokeExpression(index)
		} else {
			_, err = p.parseFieldAccess(index)
		}
		if err != nil {
			if err.Kind == ParseErrorCsvContinuation && err.Csv == CsvContinuationDanglingComma {
				// Keep the head beside the surviving suffix so an invoke's
				// callee name stays reachable, as parseInvokeExpression does.
				p.close(id, start, "")
				return nil, err
			}
			p.abandon(id)
			return nil, err
		}
		index++
	}

	if index == 1 {
		children := p.collection.ChildIds(id)
		headId := children[0]
		p.abandon(id)
		node, _ := p.collection.XorNodeById(headId)
		return node.Ast, nil
	}

	return p.close(id, start, "")
}

// parsePrimaryExpressionHead dispatches on the current token to whichever
// primary form it starts. "(" is ambiguous between a parenthesized
// expression and a function expression's parameter list; under
// DisambiguationStrict the parser speculatively tries the function reading
// first and falls back to the parenthesized reading if that fails, using
// mark/reset to rewind the token cursor (the failed attempt abandons its own
// contexts on the way out, and the finished nodes that abandoning promotes
// into the parent are deleted here before the retry).
func (p *Parser) parsePrimaryExpressionHead(attrIndex int) (*ast.TNode, *ParseError) {
	tok := p.current()

	switch {
	case tok.Kind == lexer.TokenLeftParenthesis:
		mark := p.mark()
		if node, err := p.parseFunctionExpression(attrIndex); err == nil {
			return node, nil
		}
		// The head is the first child of a freshly opened parent, so every
		// child the parent has now was left behind by the failed attempt.
		parentId := p.parents[len(p.parents)-1]
		for children := p.collection.ChildIds(parentId); len(children) > 0; children = p.collection.ChildIds(parentId) {
			_ = p.collection.DeleteContext(children[0])
		}
		p.reset(mark)
		return p.parseParenthesizedExpression(attrIndex)
	case tok.Kind == lexer.TokenLeftBrace:
		return p.parseListExpression(attrIndex)
	case tok.Kind == lexer.TokenLeftBracket:
		return p.parseRecordExpression(attrIndex)
	case tok.Kind == lexer.TokenKeywordType:
		return p.parseTypeExpression(attrIndex)
	case tok.Kind == lexer.TokenAtSign || tok.Kind == lexer.TokenIdentifier || isOneOf(tok.Kind, hashIdentifierTokenKinds):
		return p.parseIdentifierExpression(attrIndex)
	case isOneOf(tok.Kind, literalTokenKinds):
		return p.parseLiteralExpression(attrIndex)
	default:
		return nil, newExpectedAnyTokenKindError(p.catalog, []lexer.TokenKind{
			lexer.TokenIdentifier, lexer.TokenNumericLiteral, lexer.TokenStringLiteral,
			lexer.TokenLeftParenthesis, lexer.TokenLeftBrace, lexer.TokenLeftBracket,
		}, tok.Kind, tok.PositionStart)
	}
}

func (p *Parser) parseLiteralExpression(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindLiteralExpression, attrIndex)

	tok := p.current()
	if !isOneOf(tok.Kind, literalTokenKinds) {
		p.abandon(id)
		return nil, newExpectedAnyTokenKindError(p.catalog, literalTokenKinds, tok.Kind, tok.PositionStart)
	}
	p.advance()

	return p.close(id, start, tok.Data)
}

// parseIdentifier consumes a plain or quoted identifier as a leaf.
func (p *Parser) parseIdentifier(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindIdentifier, attrIndex)

	tok := p.current()
	if tok.Kind != lexer.TokenIdentifier && tok.Kind != lexer.TokenQuotedIdentifier && !isOneOf(tok.Kind, hashIdentifierTokenKinds) {
		p.abandon(id)
		return nil, newExpectedAnyTokenKindError(p.catalog, []lexer.TokenKind{lexer.TokenIdentifier, lexer.TokenQuotedIdentifier}, tok.Kind, tok.PositionStart)
	}
	p.advance()

	return p.close(id, start, tok.Data)
}

// generalizedIdentifierTokenKinds is every keyword M allows as a field or
// section-member name despite it also being a reserved word elsewhere.
var generalizedIdentifierTokenKinds = []lexer.TokenKind{
	lexer.TokenKeywordAnd, lexer.TokenKeywordAs, lexer.TokenKeywordEach, lexer.TokenKeywordElse,
	lexer.TokenKeywordError, lexer.TokenKeywordFalse, lexer.TokenKeywordIf, lexer.TokenKeywordIn,
	lexer.TokenKeywordIs, lexer.TokenKeywordLet, lexer.TokenKeywordMeta, lexer.TokenKeywordNot,
	lexer.TokenKeywordNull, lexer.TokenKeywordOr, lexer.TokenKeywordOtherwise, lexer.TokenKeywordSection,
	lexer.TokenKeywordShared, lexer.TokenKeywordThen, lexer.TokenKeywordTrue, lexer.TokenKeywordTry,
	lexer.TokenKeywordType,
}

func (p *Parser) parseGeneralizedIdentifier(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindGeneralizedIdentifier, attrIndex)

	tok := p.current()
	if tok.Kind != lexer.TokenIdentifier && tok.Kind != lexer.TokenQuotedIdentifier && !isOneOf(tok.Kind, generalizedIdentifierTokenKinds) {
		p.abandon(id)
		return nil, newExpectedGeneralizedIdentifierError(p.catalog, tok.PositionStart)
	}
	p.advance()

	return p.close(id, start, tok.Data)
}

// parseIdentifierExpression parses an optional leading "@" (explicit
// recursive-identifier marker) followed by an identifier.
func (p *Parser) parseIdentifierExpression(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindIdentifierExpression, attrIndex)

	index := 0
	if p.currentIs(lexer.TokenAtSign) {
		if _, err := p.parseOperatorConstant(lexer.TokenAtSign, index); err != nil {
			p.abandon(id)
			return nil, err
		}
		index++
	}
	if _, err := p.parseIdentifier(index); err != nil {
		p.abandon(id)
		return nil, err
	}

	return p.close(id, start, "")
}

func (p *Parser) parseParenthesizedExpression(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindParenthesizedExpression, attrIndex)
	open := p.currentPosition()

	if _, err := p.parseOperatorConstant(lexer.TokenLeftParenthesis, 0); err != nil {
		p.abandon(id)
		return nil, err
	}
	if _, err := p.parseExpression(1); err != nil {
		p.abandon(id)
		return nil, err
	}
	if !p.currentIs(lexer.TokenRightParenthesis) {
		p.abandon(id)
		return nil, newUnterminatedParenthesisError(p.catalog, open)
	}
	if _, err := p.parseOperatorConstant(lexer.TokenRightParenthesis, 2); err != nil {
		p.abandon(id)
		return nil, err
	}

	return p.close(id, start, "")
}

func (p *Parser) parseListExpression(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindListExpression, attrIndex)

	if _, err := p.parseOperatorConstant(lexer.TokenLeftBrace, 0); err != nil {
		p.abandon(id)
		return nil, err
	}
	if !p.currentIs(lexer.TokenRightBrace) {
		if _, err := p.parseCsv(1, func() bool { return p.currentIs(lexer.TokenRightBrace) }, p.parseExpression, CsvContinuationDanglingComma); err != nil {
			p.abandon(id)
			return nil, err
		}
	}
	if _, err := p.parseOperatorConstant(lexer.TokenRightBrace, 2); err != nil {
		p.abandon(id)
		return nil, err
	}

	return p.close(id, start, "")
}

func (p *Parser) parseRecordExpression(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindRecordExpression, attrIndex)
	open := p.currentPosition()

	if _, err := p.parseOperatorConstant(lexer.TokenLeftBracket, 0); err != nil {
		p.abandon(id)
		return nil, err
	}
	if !p.currentIs(lexer.TokenRightBracket) {
		if _, err := p.parseCsv(1, func() bool { return p.currentIs(lexer.TokenRightBracket) }, p.parseGeneralizedIdentifierPairedExpression, CsvContinuationDanglingComma); err != nil {
			p.abandon(id)
			return nil, err
		}
	}
	if !p.currentIs(lexer.TokenRightBracket) {
		p.abandon(id)
		return nil, newUnterminatedBracketError(p.catalog, open)
	}
	if _, err := p.parseOperatorConstant(lexer.TokenRightBracket, 2); err != nil {
		p.abandon(id)
		return nil, err
	}

	return p.close(id, start, "")
}

// parseFieldAccess disambiguates "[" into a FieldSelector ("[name]") or a
// FieldProjection ("[[name1], [name2]]") by peeking one token past the
// opening bracket; both readings start the same way, so mark/reset is
// cheaper here than a full speculative parse.
func (p *Parser) parseFieldAccess(attrIndex int) (*ast.TNode, *ParseError) {
	mark := p.mark()
	p.advance()
	isProjection := p.currentIs(lexer.TokenLeftBracket)
	p.reset(mark)

	if isProjection {
		return p.parseFieldProjection(attrIndex)
	}
	return p.parseFieldSelector(attrIndex)
}

func (p *Parser) parseFieldSelector(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindFieldSelector, attrIndex)
	open := p.currentPosition()

	if _, err := p.parseOperatorConstant(lexer.TokenLeftBracket, 0); err != nil {
		p.abandon(id)
		return nil, err
	}
	if _, err := p.parseGeneralizedIdentifier(1); err != nil {
		p.abandon(id)
		return nil, err
	}
	if !p.currentIs(lexer.TokenRightBracket) {
		p.abandon(id)
		return nil, newUnterminatedBracketError(p.catalog, open)
	}
	if _, err := p.parseOperatorConstant(lexer.TokenRightBracket, 2); err != nil {
		p.abandon(id)
		return nil, err
	}
	if p.currentIs(lexer.TokenQuestionMark) {
		if _, err := p.parseOperatorConstant(lexer.TokenQuestionMark, 3); err != nil {
			p.abandon(id)
			return nil, err
		}
	}

	return p.close(id, start, "")
}

func (p *Parser) parseFieldProjection(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindFieldProjection, attrIndex)
	open := p.currentPosition()

	if _, err := p.parseOperatorConstant(lexer.TokenLeftBracket, 0); err != nil {
		p.abandon(id)
		return nil, err
	}
	if _, err := p.parseCsv(1, func() bool { return p.currentIs(lexer.TokenRightBracket) }, p.parseFieldSelector, CsvContinuationDanglingComma); err != nil {
		p.abandon(id)
		return nil, err
	}
	if !p.currentIs(lexer.TokenRightBracket) {
		p.abandon(id)
		return nil, newUnterminatedBracketError(p.catalog, open)
	}
	if _, err := p.parseOperatorConstant(lexer.TokenRightBracket, 2); err != nil {
		p.abandon(id)
		return nil, err
	}
	if p.currentIs(lexer.TokenQuestionMark) {
		if _, err := p.parseOperatorConstant(lexer.TokenQuestionMark, 3); err != nil {
			p.abandon(id)
			return nil, err
		}
	}

	return p.close(id, start, "")
}

func (p *Parser) parseInvokeExpression(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindInvokeExpression, attrIndex)
	open := p.currentPosition()

	if _, err := p.parseOperatorConstant(lexer.TokenLeftParenthesis, 0); err != nil {
		p.abandon(id)
		return nil, err
	}
	if !p.currentIs(lexer.TokenRightParenthesis) {
		if _, err := p.parseCsv(1, func() bool { return p.currentIs(lexer.TokenRightParenthesis) }, p.parseExpression, CsvContinuationDanglingComma); err != nil {
			if err.Kind == ParseErrorCsvContinuation && err.Csv == CsvContinuationDanglingComma {
				// The argument list itself survived (parseCsv already closed
				// its ArrayWrapper): keep this InvokeExpression as a real
				// node too, so its name and argument ordinal are still
				// recoverable with the cursor sitting on the dangling comma.
				p.close(id, start, "")
				return nil, err
			}
			p.abandon(id)
			return nil, err
		}
	}
	if !p.currentIs(lexer.TokenRightParenthesis) {
		p.abandon(id)
		return nil, newUnterminatedParenthesisError(p.catalog, open)
	}
	if _, err := p.parseOperatorConstant(lexer.TokenRightParenthesis, 2); err != nil {
		p.abandon(id)
		return nil, err
	}

	return p.close(id, start, "")
}

// parseTypeExpression parses "type" followed by a type-primary-type
// operand; reusing NodeKindTypePrimaryType for the wrapper keeps this
// grounded in the same node kind the bare PrimitiveType/ListType/etc. use
// for the operand position, rather than introducing a parallel kind for
// what is, structurally, the same thing with a leading keyword.
func (p *Parser) parseTypeExpression(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindTypePrimaryType, attrIndex)

	if _, err := p.parseOperatorConstant(lexer.TokenKeywordType, 0); err != nil {
		p.abandon(id)
		return nil, err
	}
	if _, err := p.parseTypePrimaryType(1); err != nil {
		p.abandon(id)
		return nil, err
	}

	return p.close(id, start, "")
}
