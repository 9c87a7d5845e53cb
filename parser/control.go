package parser

import (
	"github.com/cybersorcerer/pqcore/ast"
	"github.com/cybersorcerer/pqcore/lexer"
)

func (p *Parser) parseEachExpression(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindEachExpression, attrIndex)

	if _, err := p.parseOperatorConstant(lexer.TokenKeywordEach, 0); err != nil {
		p.abandon(id)
		return nil, err
	}
	if _, err := p.parseExpression(1); err != nil {
		p.abandon(id)
		return nil, err
	}

	return p.close(id, start, "")
}

func (p *Parser) parseLetExpression(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindLetExpression, attrIndex)

	if _, err := p.parseOperatorConstant(lexer.TokenKeywordLet, 0); err != nil {
		p.abandon(id)
		return nil, err
	}
	if _, err := p.parseCsv(1, func() bool { return p.currentIs(lexer.TokenKeywordIn) }, p.parseIdentifierPairedExpression, CsvContinuationLetExpression); err != nil {
		p.abandon(id)
		return nil, err
	}
	if _, err := p.parseOperatorConstant(lexer.TokenKeywordIn, 2); err != nil {
		p.abandon(id)
		return nil, err
	}
	if _, err := p.parseExpression(3); err != nil {
		p.abandon(id)
		return nil, err
	}

	return p.close(id, start, "")
}

func (p *Parser) parseIfExpression(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindIfExpression, attrIndex)

	steps := []struct {
		kind  lexer.TokenKind
		index int
		expr  bool
	}{
		{lexer.TokenKeywordIf, 0, false},
		{0, 1, true},
		{lexer.TokenKeywordThen, 2, false},
		{0, 3, true},
		{lexer.TokenKeywordElse, 4, false},
		{0, 5, true},
	}
	for _, step := range steps {
		var err *ParseError
		if step.expr {
			_, err = p.parseExpression(step.index)
		} else {
			_, err = p.parseOperatorConstant(step.kind, step.index)
		}
		if err != nil {
			p.abandon(id)
			return nil, err
		}
	}

	return p.close(id, start, "")
}

func (p *Parser) parseErrorHandlingExpression(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindErrorHandlingExpression, attrIndex)

	if _, err := p.parseOperatorConstant(lexer.TokenKeywordTry, 0); err != nil {
		p.abandon(id)
		return nil, err
	}
	if _, err := p.parseExpression(1); err != nil {
		p.abandon(id)
		return nil, err
	}

	if p.currentIs(lexer.TokenKeywordOtherwise) {
		otherwiseId, otherwiseStart := p.open(ast.NodeKindOtherwiseExpression, 2)
		if _, err := p.parseOperatorConstant(lexer.TokenKeywordOtherwise, 0); err != nil {
			p.abandon(otherwiseId)
			p.abandon(id)
			return nil, err
		}
		if _, err := p.parseExpression(1); err != nil {
			p.abandon(otherwiseId)
			p.abandon(id)
			return nil, err
		}
		if _, err := p.close(otherwiseId, otherwiseStart, ""); err != nil {
			p.abandon(id)
			return nil, err
		}
	}

	return p.close(id, start, "")
}

func (p *Parser) parseErrorRaisingExpression(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindErrorRaisingExpression, attrIndex)

	if _, err := p.parseOperatorConstant(lexer.TokenKeywordError, 0); err != nil {
		p.abandon(id)
		return nil, err
	}
	if _, err := p.parseExpression(1); err != nil {
		p.abandon(id)
		return nil, err
	}

	return p.close(id, start, "")
}

func (p *Parser) parseFunctionExpression(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindFunctionExpression, attrIndex)

	if _, err := p.parseParameterList(0, false); err != nil {
		p.abandon(id)
		return nil, err
	}

	if p.currentIs(lexer.TokenKeywordAs) {
		if _, err := p.parseOperatorConstant(lexer.TokenKeywordAs, 1); err != nil {
			p.abandon(id)
			return nil, err
		}
		if _, err := p.parseNullablePrimitiveType(2); err != nil {
			p.abandon(id)
			return nil, err
		}
	}

	if _, err := p.parseOperatorConstant(lexer.TokenFatArrow, 3); err != nil {
		p.abandon(id)
		return nil, err
	}
	if _, err := p.parseExpression(4); err != nil {
		p.abandon(id)
		return nil, err
	}

	return p.close(id, start, "")
}

// parseParameterList parses "(" Csv<Parameter> ")". requireTypeAnnotation is
// set when parsing a FunctionType, where every parameter must carry an "as
// type" annotation; it is false for a FunctionExpression's parameter list,
// where annotations are optional.
func (p *Parser) parseParameterList(attrIndex int, requireTypeAnnotation bool) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindParameterList, attrIndex)
	openParen := p.currentPosition()

	if _, err := p.parseOperatorConstant(lexer.TokenLeftParenthesis, 0); err != nil {
		p.abandon(id)
		return nil, err
	}

	sawOptional := false
	parseItem := func(itemAttrIndex int) (*ast.TNode, *ParseError) {
		param, isOptional, err := p.parseParameter(itemAttrIndex, requireTypeAnnotation)
		if err != nil {
			return nil, err
		}
		if sawOptional && !isOptional {
			return nil, newRequiredParameterAfterOptionalError(p.catalog, parameterName(param), p.currentPosition())
		}
		sawOptional = sawOptional || isOptional
		return param, nil
	}

	if !p.currentIs(lexer.TokenRightParenthesis) {
		if _, err := p.parseCsv(1, func() bool { return p.currentIs(lexer.TokenRightParenthesis) }, parseItem, CsvContinuationDanglingComma); err != nil {
			p.abandon(id)
			return nil, err
		}
	}

	if !p.currentIs(lexer.TokenRightParenthesis) {
		p.abandon(id)
		return nil, newUnterminatedParenthesisError(p.catalog, openParen)
	}
	if _, err := p.parseOperatorConstant(lexer.TokenRightParenthesis, 2); err != nil {
		p.abandon(id)
		return nil, err
	}

	return p.close(id, start, "")
}

func parameterName(param *ast.TNode) string {
	if param == nil {
		return ""
	}
	return param.Data
}

// parseParameter parses "[optional] name [as type]", reporting via its
// second return value whether the "optional" marker was present.
func (p *Parser) parseParameter(attrIndex int, requireTypeAnnotation bool) (*ast.TNode, bool, *ParseError) {
	id, start := p.open(ast.NodeKindParameter, attrIndex)

	index := 0
	isOptional := false
	if p.currentIs(lexer.TokenIdentifier) && p.current().Data == "optional" {
		if _, err := p.parseWordConstant("optional", index); err != nil {
			p.abandon(id)
			return nil, false, err
		}
		index++
		isOptional = true
	}

	nameTok := p.current()
	if _, err := p.parseIdentifier(index); err != nil {
		p.abandon(id)
		return nil, false, err
	}
	index++

	if requireTypeAnnotation || p.currentIs(lexer.TokenKeywordAs) {
		if _, err := p.parseOperatorConstant(lexer.TokenKeywordAs, index); err != nil {
			p.abandon(id)
			return nil, false, err
		}
		index++
		if _, err := p.parseNullablePrimitiveType(index); err != nil {
			p.abandon(id)
			return nil, false, err
		}
	}

	node, err := p.close(id, start, nameTok.Data)
	if err != nil {
		return nil, false, err
	}
	return node, isOptional, nil
}

func (p *Parser) parseIdentifierPairedExpression(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindIdentifierPairedExpression, attrIndex)

	if _, err := p.parseIdentifier(0); err != nil {
		p.abandon(id)
		return nil, err
	}
	if _, err := p.parseOperatorConstant(lexer.TokenEqual, 1); err != nil {
		p.abandon(id)
		return nil, err
	}
	if _, err := p.parseExpression(2); err != nil {
		p.abandon(id)
		return nil, err
	}

	return p.close(id, start, "")
}

func (p *Parser) parseGeneralizedIdentifierPairedExpression(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindGeneralizedIdentifierPairedExpression, attrIndex)

	if _, err := p.parseGeneralizedIdentifier(0); err != nil {
		p.abandon(id)
		return nil, err
	}
	if _, err := p.parseOperatorConstant(lexer.TokenEqual, 1); err != nil {
		p.abandon(id)
		return nil, err
	}
	if _, err := p.parseExpression(2); err != nil {
		p.abandon(id)
		return nil, err
	}

	return p.close(id, start, "")
}
