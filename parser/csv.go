package parser

import (
	"github.com/cybersorcerer/pqcore/ast"
	"github.com/cybersorcerer/pqcore/lexer"
)

// parseCsv parses a comma-separated list as an ArrayWrapper of Csv nodes, the
// shape every M comma-separated construct shares (list items, record fields,
// parameter lists, invoke arguments, field projections). Each item is wrapped
// in its own Csv node alongside the trailing comma Constant, if one was
// present, so a caller walking the tree can tell a dangling trailing comma
// apart from a well-formed last item.
//
// isDone reports whether the current token marks the end of the list (the
// list's closing delimiter); it is consulted only right after a comma was
// consumed, to catch the dangling-comma case ("{1, 2, }") before trying
// (and failing on the delimiter) to parse another item.
func (p *Parser) parseCsv(attrIndex int, isDone func() bool, parseItem func(int) (*ast.TNode, *ParseError), danglingKind CsvContinuationKind) (*ast.TNode, *ParseError) {
	id, start := p.open(ast.NodeKindArrayWrapper, attrIndex)

	index := 0
	for {
		csvId, csvStart := p.open(ast.NodeKindCsv, index)

		if _, err := parseItem(0); err != nil {
			p.abandon(csvId)
			p.abandon(id)
			return nil, err
		}

		hasComma := p.currentIs(lexer.TokenComma)
		if hasComma {
			if _, err := p.parseOperatorConstant(lexer.TokenComma, 1); err != nil {
				p.abandon(csvId)
				p.abandon(id)
				return nil, err
			}
		}

		if _, err := p.close(csvId, csvStart, ""); err != nil {
			p.abandon(id)
			return nil, err
		}

		index++
		if !hasComma {
			break
		}
		if isDone() {
			err := newCsvContinuationError(p.catalog, danglingKind, p.currentPosition())
			// A dangling trailing comma still leaves every item parsed so far
			// as a genuine argument/element: close the wrapper so those Csv
			// children stay reachable for inspection instead of collapsing
			// away the way an abandoned speculative production would.
			p.close(id, start, "")
			return nil, err
		}
	}

	return p.close(id, start, "")
}
