package parser

import (
	"github.com/cybersorcerer/pqcore/ast"
	"github.com/cybersorcerer/pqcore/lexer"
)

// parseSection parses "section" [name] ";" SectionMember*, spec.md's
// top-level document form alongside the bare-expression document.
func (p *Parser) parseSection() (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindSection, 0)

	if _, err := p.parseOperatorConstant(lexer.TokenKeywordSection, 0); err != nil {
		p.abandon(id)
		return nil, err
	}

	index := 1
	if p.currentIs(lexer.TokenIdentifier) {
		if _, err := p.parseIdentifier(index); err != nil {
			p.abandon(id)
			return nil, err
		}
		index++
	}

	if _, err := p.parseOperatorConstant(lexer.TokenSemicolon, index); err != nil {
		p.abandon(id)
		return nil, err
	}
	index++

	for p.currentIs(lexer.TokenKeywordShared) || p.currentIs(lexer.TokenIdentifier) {
		if _, err := p.parseSectionMember(index); err != nil {
			p.abandon(id)
			return nil, err
		}
		index++
	}

	return p.close(id, start, "")
}

// parseSectionMember parses ["shared"] IdentifierPairedExpression ";".
func (p *Parser) parseSectionMember(attrIndex int) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindSectionMember, attrIndex)

	index := 0
	if p.currentIs(lexer.TokenKeywordShared) {
		if _, err := p.parseOperatorConstant(lexer.TokenKeywordShared, index); err != nil {
			p.abandon(id)
			return nil, err
		}
		index++
	}

	if _, err := p.parseIdentifierPairedExpression(index); err != nil {
		p.abandon(id)
		return nil, err
	}
	index++

	if _, err := p.parseOperatorConstant(lexer.TokenSemicolon, index); err != nil {
		p.abandon(id)
		return nil, err
	}

	return p.close(id, start, "")
}
