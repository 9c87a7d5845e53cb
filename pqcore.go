// Package pqcore wires position, lexer, ast, nodeidmap, parser, and
// inspection into the language-neutral API surface of spec.md §6.1: lex,
// the incremental-edit variants, snapshot, parse, and inspect. A host
// application (an LSP server, a linter, a REPL) is expected to hold a
// *lexer.State across edits and call these entry points directly rather
// than reach into the component packages itself.
package pqcore

import (
	"github.com/cybersorcerer/pqcore/ast"
	"github.com/cybersorcerer/pqcore/inspection"
	"github.com/cybersorcerer/pqcore/lexer"
	"github.com/cybersorcerer/pqcore/localization"
	"github.com/cybersorcerer/pqcore/nodeidmap"
	"github.com/cybersorcerer/pqcore/parser"
	"github.com/cybersorcerer/pqcore/position"
)

// CommonSettings is shared by every settings type: the locale used to
// render error messages and, where relevant, autocomplete labels.
type CommonSettings struct {
	Locale string
}

// LexSettings configures Lex and its incremental-edit variants.
type LexSettings struct {
	CommonSettings
}

// ParseSettings configures Parse. Disambiguation selects the strategy a
// pluggable parser implementation must honor per spec.md §6.3; this module
// ships only the recursive-descent parser in the parser package, so
// ParserFactory/NewParseStateFn described by the spec's
// ParseSettings<S> are represented here as the single Disambiguation knob
// that parser actually exposes.
type ParseSettings struct {
	CommonSettings
	Disambiguation parser.DisambiguationBehavior
}

// resolveCatalog loads the requested locale, falling back to the embedded
// en-US catalog when locale is empty or unknown — callers of this package
// never have to handle a missing-catalog error themselves.
func resolveCatalog(locale string) localization.Catalog {
	if locale == "" || locale == localization.DefaultLocale {
		return localization.Default()
	}
	catalog, err := localization.Load(locale)
	if err != nil {
		return localization.Default()
	}
	return catalog
}

// Lex lexes text as a brand-new document, splitting on separator
// ("\n" if empty), per spec.md's lex entry point.
func Lex(settings LexSettings, text, separator string) *lexer.State {
	return lexer.From(text, separator, lexer.WithCatalog(resolveCatalog(settings.Locale)))
}

// LexAppendLine lexes text as a new final line of state, continuing
// whatever multiline mode the previous last line left open.
func LexAppendLine(state *lexer.State, text string) *lexer.State {
	return lexer.AppendLine(state, text)
}

// LexUpdateLine relexes a single line in place, propagating any multiline
// mode change forward through subsequent lines.
func LexUpdateLine(state *lexer.State, lineNumber int, text string) (*lexer.State, *lexer.BadLineNumberError) {
	return lexer.UpdateLine(state, lineNumber, text)
}

// LexUpdateRange replaces the text spanning a document range with text,
// collapsing the span into a single line and relexing forward from there.
func LexUpdateRange(state *lexer.State, lineNumberStart, lineCodeUnitStart, lineNumberEnd, lineCodeUnitEnd int, text string) (*lexer.State, *lexer.BadRangeError) {
	return lexer.UpdateRange(state, lineNumberStart, lineCodeUnitStart, lineNumberEnd, lineCodeUnitEnd, text)
}

// LexerErrorLines returns every line currently carrying a lex error, keyed
// by line number.
func LexerErrorLines(state *lexer.State) map[int]*lexer.ErrorLine {
	return lexer.ErrorLines(state)
}

// Snapshot fuses state's per-line tokens into the flat LexerSnapshot the
// parser consumes.
func Snapshot(state *lexer.State) (*lexer.LexerSnapshot, error) {
	return lexer.Snapshot(state)
}

// ParseResult carries everything a caller needs whether or not parsing
// succeeded: on success Root/Collection/LeafNodeIds are populated and Err
// is nil; on failure Collection still holds every node that finished
// before the error, so Inspect can run against it regardless, matching
// spec.md §7's propagation policy for parse.
type ParseResult struct {
	Root        *ast.TNode
	Collection  *nodeidmap.Collection
	LeafNodeIds []ast.NodeId
	Err         *parser.ParseError
}

// Parse runs the parser over snapshot under settings.Disambiguation.
func Parse(settings ParseSettings, snapshot *lexer.LexerSnapshot) *ParseResult {
	catalog := resolveCatalog(settings.Locale)

	result, err := parser.TryReadWith(catalog, snapshot, settings.Disambiguation)
	if err != nil {
		parseErr, ok := err.(*parser.Err)
		if !ok {
			return &ParseResult{}
		}
		return &ParseResult{Collection: parseErr.Collection, Err: parseErr.Err}
	}

	return &ParseResult{Root: result.Root, Collection: result.Collection, LeafNodeIds: result.LeafNodeIds}
}

// Inspect runs every inspection operation in the inspection package against
// result at pos. A failed parse's result.Collection is walked via its
// root-independent leaf set rather than result.LeafNodeIds (which is only
// populated on success), so inspection still works against a broken
// document.
func Inspect(settings CommonSettings, pos position.Position, result *ParseResult) *inspection.Inspected {
	if result == nil || result.Collection == nil {
		return inspection.Inspect(nodeidmap.New(resolveCatalog(settings.Locale)), nil, pos)
	}

	leafNodeIds := result.LeafNodeIds
	if result.Err != nil {
		leafNodeIds = result.Collection.AllLeafIds()
	}
	return inspection.Inspect(result.Collection, leafNodeIds, pos)
}
