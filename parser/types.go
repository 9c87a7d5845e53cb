package parser

import (
	"github.com/cybersorcerer/pqcore/ast"
	"github.com/cybersorcerer/pqcore/lexer"
)

// primitiveTypeNames is the closed set of identifiers that name a
// PrimitiveType; anything else reaching parsePrimitiveType is an
// InvalidPrimitiveType error (spec.md §7).
var primitiveTypeNames = map[string]bool{
	"any": true, "anynonnull": true, "binary": true, "date": true,
	"datetime": true, "datetimezone": true, "duration": true, "function": true,
	"list": true, "logical": true, "none": true, "null": true, "number": true,
	"record": true, "table": true, "text": true, "time": true, "type": true,
}

// parseNullablePrimitiveType parses an optional leading "nullable" modifier
// (itself just an identifier in M, not a keyword) followed by a primitive
// type name.
func (p *Parser) parseNullablePrimitiveType(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindNullablePrimitiveType, attrIndex)

	childIdx := 0
	if p.currentIs(lexer.TokenIdentifier) && p.current().Data == "nullable" {
		if _, err := p.parseWordConstant("nullable", childIdx); err != nil {
			p.abandon(id)
			return nil, err
		}
		childIdx++
	}

	if _, err := p.parsePrimitiveType(childIdx); err != nil {
		p.abandon(id)
		return nil, err
	}

	return p.close(id, start, "")
}

func (p *Parser) parsePrimitiveType(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindPrimitiveType, attrIndex)

	tok := p.current()
	if tok.Kind != lexer.TokenIdentifier || !primitiveTypeNames[tok.Data] {
		p.abandon(id)
		return nil, newInvalidPrimitiveTypeError(p.catalog, tok.Data, tok.PositionStart)
	}
	p.advance()

	return p.close(id, start, tok.Data)
}

// parseTypePrimaryType parses the operand of a "type" prefix: a
// TableType/ListType/FunctionType/NullablePrimitiveType, dispatched on the
// current token.
func (p *Parser) parseTypePrimaryType(attrIndex int) (*ast.TNode, *ParseError) {
	switch {
	case p.currentIs(lexer.TokenKeywordHashTable):
		return p.parseTableType(attrIndex)
	case p.currentIs(lexer.TokenLeftBrace):
		return p.parseListType(attrIndex)
	case p.currentIs(lexer.TokenIdentifier) && p.current().Data == "function":
		return p.parseFunctionType(attrIndex)
	default:
		return p.parseNullablePrimitiveType(attrIndex)
	}
}

// parseWordConstant consumes the current token as a leaf Constant, but only
// if it is an identifier spelled exactly word — used for the M contextual
// keywords ("function", "nullable", "optional") that the lexer tokenizes as
// plain identifiers rather than reserved words.
func (p *Parser) parseWordConstant(word string, attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindConstant, attrIndex)
	tok := p.current()
	if tok.Kind != lexer.TokenIdentifier || tok.Data != word {
		p.abandon(id)
		return nil, newExpectedTokenKindError(p.catalog, lexer.TokenIdentifier, tok.Kind, tok.PositionStart)
	}
	p.advance()
	return p.close(id, start, tok.Data)
}

func (p *Parser) parseListType(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindListType, attrIndex)

	if _, err := p.parseOperatorConstant(lexer.TokenLeftBrace, 0); err != nil {
		p.abandon(id)
		return nil, err
	}
	if _, err := p.parseTypePrimaryType(1); err != nil {
		p.abandon(id)
		return nil, err
	}
	if _, err := p.parseOperatorConstant(lexer.TokenRightBrace, 2); err != nil {
		p.abandon(id)
		return nil, err
	}

	return p.close(id, start, "")
}

func (p *Parser) parseFunctionType(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindFunctionType, attrIndex)

	if _, err := p.parseWordConstant("function", 0); err != nil {
		p.abandon(id)
		return nil, err
	}
	if _, err := p.parseParameterList(1, true); err != nil {
		p.abandon(id)
		return nil, err
	}
	if _, err := p.parseOperatorConstant(lexer.TokenKeywordAs, 2); err != nil {
		p.abandon(id)
		return nil, err
	}
	if _, err := p.parseNullablePrimitiveType(3); err != nil {
		p.abandon(id)
		return nil, err
	}

	return p.close(id, start, "")
}

func (p *Parser) parseTableType(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindTableType, attrIndex)

	if _, err := p.parseOperatorConstant(lexer.TokenKeywordHashTable, 0); err != nil {
		p.abandon(id)
		return nil, err
	}
	if _, err := p.parseRecordLiteral(1); err != nil {
		p.abandon(id)
		return nil, err
	}

	return p.close(id, start, "")
}

// parseRecordLiteral parses a table type's column-spec block: "[" Csv<
// FieldSpecification> "]". Structurally identical to a RecordExpression's
// bracket syntax, but each field pairs a name with a type rather than a
// value, so it gets its own node kind and field parser.
func (p *Parser) parseRecordLiteral(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindRecordLiteral, attrIndex)
	open := p.currentPosition()

	if _, err := p.parseOperatorConstant(lexer.TokenLeftBracket, 0); err != nil {
		p.abandon(id)
		return nil, err
	}
	if !p.currentIs(lexer.TokenRightBracket) {
		if _, err := p.parseCsv(1, func() bool { return p.currentIs(lexer.TokenRightBracket) }, p.parseFieldSpecification, CsvContinuationDanglingComma); err != nil {
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

// parseFieldSpecification parses "[optional] name [= type]", the column
// entry inside a table type's record literal.
func (p *Parser) parseFieldSpecification(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindFieldSpecification, attrIndex)

	index := 0
	if p.currentIs(lexer.TokenIdentifier) && p.current().Data == "optional" {
		if _, err := p.parseWordConstant("optional", index); err != nil {
			p.abandon(id)
			return nil, err
		}
		index++
	}
	if _, err := p.parseGeneralizedIdentifier(index); err != nil {
		p.abandon(id)
		return nil, err
	}
	index++

	if p.currentIs(lexer.TokenEqual) {
		if _, err := p.parseOperatorConstant(lexer.TokenEqual, index); err != nil {
			p.abandon(id)
			return nil, err
		}
		index++
		if _, err := p.parseTypePrimaryType(index); err != nil {
			p.abandon(id)
			return nil, err
		}
	}

	return p.close(id, start, "")
}
