package lexer

import (
	"github.com/cybersorcerer/pqcore/position"
)

// MultilineKind is the lexer's cross-line state: what construct, if any,
// was still open when a line ended.
type MultilineKind int

const (
	MultilineKindDefault MultilineKind = iota
	MultilineKindMultilineComment
	MultilineKindString
	MultilineKindQuotedIdentifier
)

// LineKind discriminates the four ways a line can come out of lexing, per
// spec.md §3.7.
type LineKind int

const (
	LineKindUntouched LineKind = iota
	LineKindTouched
	LineKindTouchedWithError
	LineKindError
)

// Line is one line of the document together with everything the lexer
// knows about it. multilineKindEnd of line n equals multilineKindStart of
// line n+1 — the relex-propagation invariant of spec.md §3.7.
type Line struct {
	Kind LineKind

	LineString *position.LineString
	LineNumber int

	MultilineKindStart MultilineKind
	MultilineKindEnd   MultilineKind

	Tokens []LineToken

	// Position is where scanning stopped on this line: the end of the
	// line for a clean Touched line, or the offending code unit for a
	// TouchedWithError/Error line.
	Position position.LinePosition

	// Error holds the captured per-line error for TouchedWithError/Error
	// lines; nil otherwise.
	Error *LexError

	// NumberOfActions counts how many times this line has been relexed in
	// place (via updateLine/updateRange), for callers wanting simple
	// incremental-cost telemetry.
	NumberOfActions int
}

// ErrorLine is the view exposed by LexerErrorLines: a line number plus its
// captured error.
type ErrorLine struct {
	LineNumber int
	Kind       LineKind
	Error      *LexError
}

// Text returns the line's source text.
func (l *Line) Text() string {
	if l.LineString == nil {
		return ""
	}
	return l.LineString.Text
}
