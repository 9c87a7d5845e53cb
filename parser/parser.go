// Package parser implements the error-tolerant recursive-descent parser
// that turns a lexer.LexerSnapshot into the hybrid parsed/context tree
// described by the ast and nodeidmap packages. Every production opens a
// context before it starts consuming tokens and closes it (promoting it to
// a finished ast.TNode) only once it succeeds. When a production fails, the
// still-open contexts on the failing path are deleted as the error
// propagates (a dangling comma in a list closes the list, and for an invoke
// also the invoke and its primary expression, instead), and their finished
// children move up to the nearest surviving ancestor, so every node that
// finished before the failure stays in the collection for the caller to
// inspect.
package parser

import (
	"github.com/cybersorcerer/pqcore/ast"
	"github.com/cybersorcerer/pqcore/lexer"
	"github.com/cybersorcerer/pqcore/localization"
	"github.com/cybersorcerer/pqcore/nodeidmap"
	"github.com/cybersorcerer/pqcore/position"
)

// DisambiguationBehavior selects how the parser resolves [ ... ] and
// ( ... ) ambiguity (field selector vs. field projection, parenthesized
// expression vs. function parameter list), per spec.md §4.4.
type DisambiguationBehavior int

const (
	// DisambiguationStrict tries one reading at a time and, when a reading
	// fails, rewinds the token cursor and tries the next one (the "(" case
	// of parsePrimaryExpressionHead).
	DisambiguationStrict DisambiguationBehavior = iota
	// DisambiguationThorough is accepted and stored, but no production
	// branches on it, so a parse under it is identical to one under
	// DisambiguationStrict. It does not try every viable production or
	// compare how many tokens each one consumes.
	DisambiguationThorough
)

// Result is returned by TryRead on success: the finished root node plus the
// full collection and leaf set the inspection engine walks.
type Result struct {
	Root        *ast.TNode
	Collection  *nodeidmap.Collection
	LeafNodeIds []ast.NodeId
}

// Err is returned by TryRead on failure. Collection still holds every node
// that finished parsing before Err.Err was raised, so a caller can run
// inspection against a broken document.
type Err struct {
	Err        *ParseError
	Collection *nodeidmap.Collection
}

func (e *Err) Error() string { return e.Err.Error() }

// Parser is single-use: construct one with newParser per TryRead call.
type Parser struct {
	catalog        localization.Catalog
	collection     *nodeidmap.Collection
	disambiguation DisambiguationBehavior

	tokens []lexer.Token
	idx    int

	parents []ast.NodeId
}

func newParser(catalog localization.Catalog, tokens []lexer.Token, disambiguation DisambiguationBehavior) *Parser {
	return &Parser{
		catalog:        catalog,
		collection:     nodeidmap.New(catalog),
		disambiguation: disambiguation,
		tokens:         tokens,
	}
}

// TryRead parses snapshot's token stream under the Strict disambiguation
// behavior, spec.md §6.1's default entry point.
func TryRead(catalog localization.Catalog, snapshot *lexer.LexerSnapshot) (*Result, error) {
	return TryReadWith(catalog, snapshot, DisambiguationStrict)
}

// TryReadWith is TryRead with an explicit DisambiguationBehavior.
func TryReadWith(catalog localization.Catalog, snapshot *lexer.LexerSnapshot, disambiguation DisambiguationBehavior) (*Result, error) {
	p := newParser(catalog, snapshot.Tokens, disambiguation)

	root, err := p.parseDocument()
	if err != nil {
		return nil, &Err{Err: err, Collection: p.collection}
	}

	var leaves []ast.NodeId
	collectLeaves(p.collection, root.Id, &leaves)

	return &Result{Root: root, Collection: p.collection, LeafNodeIds: leaves}, nil
}

func collectLeaves(collection *nodeidmap.Collection, id ast.NodeId, out *[]ast.NodeId) {
	children := collection.ChildIds(id)
	if len(children) == 0 {
		*out = append(*out, id)
		return
	}
	for _, childId := range children {
		collectLeaves(collection, childId, out)
	}
}

// parseDocument parses the single top-level production this module
// supports: either a "section ... ;" document or a bare expression
// document, then requires every token to have been consumed.
func (p *Parser) parseDocument() (*ast.TNode, *ParseError) {
	var root *ast.TNode
	var err *ParseError

	if p.currentIs(lexer.TokenKeywordSection) {
		root, err = p.parseSection()
	} else {
		root, err = p.parseExpression(0)
	}
	if err != nil {
		return nil, err
	}

	if !p.currentIs(lexer.TokenEof) {
		return nil, newUnusedTokensRemainError(p.catalog, len(p.tokens)-p.idx-1)
	}

	return root, nil
}

func (p *Parser) current() lexer.Token {
	if p.idx < len(p.tokens) {
		return p.tokens[p.idx]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) currentKind() lexer.TokenKind {
	return p.current().Kind
}

func (p *Parser) currentIs(kind lexer.TokenKind) bool {
	return p.currentKind() == kind
}

func (p *Parser) currentPosition() position.TokenPosition {
	return p.current().PositionStart
}

func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.idx < len(p.tokens)-1 {
		p.idx++
	}
	return tok
}

// expect consumes the current token if it matches kind, else raises
// ExpectedTokenKind.
func (p *Parser) expect(kind lexer.TokenKind) (lexer.Token, *ParseError) {
	if !p.currentIs(kind) {
		return lexer.Token{}, newExpectedTokenKindError(p.catalog, kind, p.currentKind(), p.currentPosition())
	}
	return p.advance(), nil
}

func (p *Parser) expectAny(kinds ...lexer.TokenKind) (lexer.Token, *ParseError) {
	for _, k := range kinds {
		if p.currentIs(k) {
			return p.advance(), nil
		}
	}
	return lexer.Token{}, newExpectedAnyTokenKindError(p.catalog, kinds, p.currentKind(), p.currentPosition())
}

// open starts a new context node as the attributeIndex'th child of whatever
// context is currently on top of the parent stack (or a root, if the stack
// is empty), and pushes it so nested productions attach to it.
func (p *Parser) open(kind ast.NodeKind, attributeIndex int) (ast.NodeId, int) {
	var parentId ast.NodeId
	if n := len(p.parents); n > 0 {
		parentId = p.parents[n-1]
	}
	id := p.collection.StartContext(kind, parentId, attributeIndex, p.idx, p.currentPosition())
	p.parents = append(p.parents, id)
	return id, p.idx
}

// close finishes the context opened by open, consuming the token range
// [tokenIndexStart, current) and the given leaf data (empty for non-leaf
// nodes).
func (p *Parser) close(id ast.NodeId, tokenIndexStart int, data string) (*ast.TNode, *ParseError) {
	tokenRange := position.TokenRange{
		TokenIndexStart: tokenIndexStart,
		TokenIndexEnd:   p.idx,
		PositionStart:   p.tokens[tokenIndexStart].PositionStart,
		PositionEnd:     p.endPositionBefore(p.idx),
	}

	node, err := p.collection.EndContext(id, tokenRange, data)
	p.parents = p.parents[:len(p.parents)-1]
	if err != nil {
		return nil, newBadStateAsParseError(p.catalog, err)
	}
	return node, nil
}

// abandon deletes the context opened by open without promoting it, used
// when a production fails. DeleteContext moves any children the context
// already had up to its parent, so nodes that finished inside it stay in
// the collection.
func (p *Parser) abandon(id ast.NodeId) {
	_ = p.collection.DeleteContext(id)
	p.parents = p.parents[:len(p.parents)-1]
}

func (p *Parser) endPositionBefore(idx int) position.TokenPosition {
	if idx == 0 {
		return p.tokens[0].PositionStart
	}
	return p.tokens[idx-1].PositionEnd
}

func newBadStateAsParseError(catalog localization.Catalog, err error) *ParseError {
	return &ParseError{Kind: ParseErrorUnusedTokensRemain, Message: err.Error()}
}

// mark/reset capture and rewind the token cursor for the parser's lookahead
// points: the "(" function-or-parenthesized attempt in
// parsePrimaryExpressionHead and the "[" selector-or-projection peek in
// parseFieldAccess. They do not touch the collection; parsePrimaryExpressionHead
// removes the nodes a failed attempt left behind itself.
func (p *Parser) mark() int {
	return p.idx
}

func (p *Parser) reset(mark int) {
	p.idx = mark
}
