package lexer

import (
	"strings"

	"github.com/cybersorcerer/pqcore/localization"
	"github.com/cybersorcerer/pqcore/position"
)

// State is the lexer's full incremental state: every line lexed so far,
// plus the separator used to split the original document into lines. It is
// the Go name for spec.md's LexerState.
type State struct {
	Lines     []*Line
	Separator string

	catalog localization.Catalog
}

// Option configures a lexer entry point.
type Option func(*State)

// WithCatalog overrides the localization.Catalog used to render errors.
// Callers that don't supply one get localization.Default().
func WithCatalog(catalog localization.Catalog) Option {
	return func(s *State) { s.catalog = catalog }
}

func newState(separator string, opts ...Option) *State {
	s := &State{Separator: separator, catalog: localization.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func splitLines(text, separator string) []string {
	if separator == "" {
		separator = "\n"
	}
	return strings.Split(text, separator)
}

// From lexes text as a brand-new document, splitting it into lines on
// separator (spec.md's "from" entry point).
func From(text, separator string, opts ...Option) *State {
	state := newState(separator, opts...)
	lines := splitLines(text, separator)
	state.Lines = make([]*Line, len(lines))

	mode := MultilineKindDefault
	for i, raw := range lines {
		line := lexLineText(state.catalog, i, position.NewLineString(raw), mode)
		state.Lines[i] = line
		mode = line.MultilineKindEnd
	}
	return state
}

// AppendLine lexes text as a new final line, continuing whatever multiline
// mode the previous last line left open.
func AppendLine(state *State, text string) *State {
	mode := MultilineKindDefault
	if n := len(state.Lines); n > 0 {
		mode = state.Lines[n-1].MultilineKindEnd
	}
	line := lexLineText(state.catalog, len(state.Lines), position.NewLineString(text), mode)
	state.Lines = append(state.Lines, line)
	return state
}

// UpdateLine relexes a single line in place and propagates any change in its
// multilineKindEnd forward through subsequent lines, per spec.md §4.2's
// relex-propagation rule. Returns a *BadLineNumberError if lineNumber is out
// of range.
func UpdateLine(state *State, lineNumber int, text string) (*State, *BadLineNumberError) {
	if err := validateLineNumber(state, lineNumber); err != nil {
		return state, err
	}

	startMode := MultilineKindDefault
	if lineNumber > 0 {
		startMode = state.Lines[lineNumber-1].MultilineKindEnd
	}

	state.Lines[lineNumber].NumberOfActions++
	actions := state.Lines[lineNumber].NumberOfActions
	newLine := lexLineText(state.catalog, lineNumber, position.NewLineString(text), startMode)
	newLine.NumberOfActions = actions
	state.Lines[lineNumber] = newLine

	relexFrom(state, lineNumber+1)
	return state, nil
}

// UpdateRange replaces the text spanning [lineNumberStart, lineCodeUnitStart)
// to [lineNumberEnd, lineCodeUnitEnd) with text, collapsing the span into a
// single line, and relexes forward from there. Returns a *BadRangeError if
// the span is malformed per spec.md §7's seven BadRangeKind cases.
func UpdateRange(state *State, lineNumberStart, lineCodeUnitStart, lineNumberEnd, lineCodeUnitEnd int, text string) (*State, *BadRangeError) {
	if err := validateRange(state, lineNumberStart, lineCodeUnitStart, lineNumberEnd, lineCodeUnitEnd); err != nil {
		return state, err
	}

	startLine := state.Lines[lineNumberStart].Text()
	endLine := state.Lines[lineNumberEnd].Text()

	prefix := startLine[:lineCodeUnitStart]
	suffix := endLine[lineCodeUnitEnd:]
	replacement := prefix + text + suffix

	startMode := MultilineKindDefault
	if lineNumberStart > 0 {
		startMode = state.Lines[lineNumberStart-1].MultilineKindEnd
	}

	newLine := lexLineText(state.catalog, lineNumberStart, position.NewLineString(replacement), startMode)
	newLine.NumberOfActions = state.Lines[lineNumberStart].NumberOfActions + 1

	tail := append([]*Line{}, state.Lines[lineNumberEnd+1:]...)
	state.Lines = append(state.Lines[:lineNumberStart], append([]*Line{newLine}, tail...)...)

	renumber(state, lineNumberStart)
	relexFrom(state, lineNumberStart+1)
	return state, nil
}

// relexFrom re-lexes every line from index onward whose multilineKindStart
// must change because the previous line's multilineKindEnd changed,
// stopping as soon as a line's mode is unaffected.
func relexFrom(state *State, index int) {
	for i := index; i < len(state.Lines); i++ {
		prevMode := MultilineKindDefault
		if i > 0 {
			prevMode = state.Lines[i-1].MultilineKindEnd
		}
		if state.Lines[i].MultilineKindStart == prevMode {
			return
		}
		relexed := lexLineText(state.catalog, i, state.Lines[i].LineString, prevMode)
		relexed.NumberOfActions = state.Lines[i].NumberOfActions
		state.Lines[i] = relexed
	}
}

func renumber(state *State, from int) {
	for i := from; i < len(state.Lines); i++ {
		state.Lines[i].LineNumber = i
	}
}

func validateLineNumber(state *State, lineNumber int) *BadLineNumberError {
	if lineNumber < 0 {
		return newBadLineNumberPublicError(state.catalog, BadLineNumberLessThanZero, lineNumber, len(state.Lines))
	}
	if lineNumber >= len(state.Lines) {
		return newBadLineNumberPublicError(state.catalog, BadLineNumberGreaterThanNumLines, lineNumber, len(state.Lines))
	}
	return nil
}

func validateRange(state *State, lineNumberStart, lineCodeUnitStart, lineNumberEnd, lineCodeUnitEnd int) *BadRangeError {
	numLines := len(state.Lines)
	if lineNumberStart < 0 {
		return newBadRangeError(state.catalog, BadRangeStartLineLessThanZero, lineNumberStart)
	}
	if lineNumberEnd >= numLines {
		return newBadRangeError(state.catalog, BadRangeEndLineGreaterThanNumLines, lineNumberEnd, numLines)
	}
	if lineNumberStart > lineNumberEnd {
		return newBadRangeError(state.catalog, BadRangeStartLineAfterEndLine, lineNumberStart, lineNumberEnd)
	}
	startLineLen := len(state.Lines[lineNumberStart].Text())
	if lineCodeUnitStart > startLineLen {
		return newBadRangeError(state.catalog, BadRangeStartCodeUnitGreaterThanLineLength, lineCodeUnitStart, startLineLen)
	}
	endLineLen := len(state.Lines[lineNumberEnd].Text())
	if lineCodeUnitEnd > endLineLen {
		return newBadRangeError(state.catalog, BadRangeEndCodeUnitGreaterThanLineLength, lineCodeUnitEnd, endLineLen)
	}
	if lineNumberStart == lineNumberEnd && lineCodeUnitStart > lineCodeUnitEnd {
		return newBadRangeError(state.catalog, BadRangeSameLineStartAfterEnd, lineCodeUnitStart, lineCodeUnitEnd)
	}
	return nil
}

// ErrorLines returns every line currently carrying a lex error, keyed by
// line number, implementing spec.md §6.1's errorLines entry point.
func ErrorLines(state *State) map[int]*ErrorLine {
	out := make(map[int]*ErrorLine)
	for _, line := range state.Lines {
		if line.Kind == LineKindTouchedWithError || line.Kind == LineKindError {
			out[line.LineNumber] = &ErrorLine{LineNumber: line.LineNumber, Kind: line.Kind, Error: line.Error}
		}
	}
	return out
}

// IsError reports whether any line currently carries an unresolved error.
func IsError(state *State) bool {
	for _, line := range state.Lines {
		if line.Kind == LineKindTouchedWithError || line.Kind == LineKindError {
			return true
		}
	}
	return false
}
