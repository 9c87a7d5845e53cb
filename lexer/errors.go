package lexer

import (
	"fmt"

	"github.com/cybersorcerer/pqcore/localization"
	"github.com/cybersorcerer/pqcore/position"
)

// LexErrorKind discriminates the LexError family of spec.md §7.
type LexErrorKind int

const (
	LexErrorBadLineNumber LexErrorKind = iota
	LexErrorBadRange
	LexErrorBadState
	LexErrorEndOfStream
	LexErrorLineMap
	LexErrorExpected
	LexErrorUnexpectedEof
	LexErrorUnexpectedRead
	LexErrorUnterminatedMultilineToken
)

// BadLineNumberKind distinguishes the two ways a line number can be out of
// range.
type BadLineNumberKind int

const (
	BadLineNumberLessThanZero BadLineNumberKind = iota
	BadLineNumberGreaterThanNumLines
)

// BadRangeKind enumerates the seven ways an updateRange span can be
// malformed, per spec.md §7.
type BadRangeKind int

const (
	BadRangeSameLineStartAfterEnd BadRangeKind = iota
	BadRangeStartLineAfterEndLine
	BadRangeStartLineLessThanZero
	BadRangeEndLineGreaterThanNumLines
	BadRangeStartCodeUnitGreaterThanLineLength
	BadRangeEndCodeUnitGreaterThanLineLength
	BadRangeInvertedWithinDocument
)

// ExpectedKind enumerates what the lexer expected but did not find.
type ExpectedKind int

const (
	ExpectedHex ExpectedKind = iota
	ExpectedKeywordOrIdentifier
	ExpectedNumeric
)

// UnterminatedMultilineKind enumerates which kind of multiline token never
// closed.
type UnterminatedMultilineKind int

const (
	UnterminatedComment UnterminatedMultilineKind = iota
	UnterminatedQuotedIdentifier
	UnterminatedString
)

// LexError is the sum type of spec.md §7's LexError family. Exactly one of
// the optional fields is meaningful, selected by Kind.
type LexError struct {
	Kind    LexErrorKind
	Message string

	BadLineNumberKind BadLineNumberKind
	BadRangeKind      BadRangeKind
	ExpectedKind      ExpectedKind
	MultilineKind     UnterminatedMultilineKind
	Position          position.TokenPosition
	LineNumber        int
	Inner             error
	ErrorLines        map[int]*ErrorLine
}

func (e *LexError) Error() string {
	return e.Message
}

func (e *LexError) Unwrap() error {
	return e.Inner
}

func render(catalog localization.Catalog, code string, args ...any) string {
	tmpl, ok := catalog.Lookup(code)
	if !ok {
		tmpl = code
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

func newBadLineNumberError(catalog localization.Catalog, kind BadLineNumberKind, lineNumber, numLines int) *LexError {
	var msg string
	switch kind {
	case BadLineNumberLessThanZero:
		msg = render(catalog, "error_lex_badLineNumber_lessThanZero", lineNumber)
	default:
		msg = render(catalog, "error_lex_badLineNumber_greaterThanNumLines", lineNumber, numLines)
	}
	return &LexError{Kind: LexErrorBadLineNumber, Message: msg, BadLineNumberKind: kind, LineNumber: lineNumber}
}

func newExpectedError(catalog localization.Catalog, kind ExpectedKind, pos position.TokenPosition) *LexError {
	var code string
	switch kind {
	case ExpectedHex:
		code = "error_lex_expected_hex"
	case ExpectedKeywordOrIdentifier:
		code = "error_lex_expected_keywordOrIdentifier"
	default:
		code = "error_lex_expected_numeric"
	}
	msg := render(catalog, code, pos.LineNumber, pos.LineCodeUnit)
	return &LexError{Kind: LexErrorExpected, Message: msg, ExpectedKind: kind, Position: pos}
}

func newUnexpectedEofError(catalog localization.Catalog) *LexError {
	return &LexError{Kind: LexErrorUnexpectedEof, Message: render(catalog, "error_lex_unexpectedEof")}
}

func newUnexpectedReadError(catalog localization.Catalog, ch rune, pos position.TokenPosition) *LexError {
	msg := render(catalog, "error_lex_unexpectedRead", ch, pos.LineNumber, pos.LineCodeUnit)
	return &LexError{Kind: LexErrorUnexpectedRead, Message: msg, Position: pos}
}

func newUnterminatedMultilineError(catalog localization.Catalog, kind UnterminatedMultilineKind) *LexError {
	var code string
	switch kind {
	case UnterminatedComment:
		code = "error_lex_unterminatedMultilineToken_comment"
	case UnterminatedQuotedIdentifier:
		code = "error_lex_unterminatedMultilineToken_quotedIdentifier"
	default:
		code = "error_lex_unterminatedMultilineToken_string"
	}
	return &LexError{Kind: LexErrorUnterminatedMultilineToken, Message: render(catalog, code), MultilineKind: kind}
}

func newBadStateError(catalog localization.Catalog, inner error) *LexError {
	return &LexError{Kind: LexErrorBadState, Message: render(catalog, "error_lex_badState", inner), Inner: inner}
}

func newErrorLineMapError(catalog localization.Catalog, lines map[int]*ErrorLine) *LexError {
	return &LexError{Kind: LexErrorLineMap, Message: render(catalog, "error_lex_errorLineMap", len(lines)), ErrorLines: lines}
}

// BadRangeError is returned by updateRange validation; it is a distinct
// exported type (rather than folded into LexError) because it is always a
// caller-input error raised before any lexing happens, mirroring spec.md's
// split of BadLineNumberError / BadRangeError as call-specific Result
// error types in the external interface (spec.md §6.1).
type BadRangeError struct {
	Kind    BadRangeKind
	Message string
}

func (e *BadRangeError) Error() string { return e.Message }

func newBadRangeError(catalog localization.Catalog, kind BadRangeKind, args ...any) *BadRangeError {
	var code string
	switch kind {
	case BadRangeSameLineStartAfterEnd:
		code = "error_lex_badRange_sameLine_lineCodeUnitStartGreaterThanLineCodeUnitEnd"
	case BadRangeStartLineAfterEndLine:
		code = "error_lex_badRange_lineNumberStart_greaterThan_lineNumberEnd"
	case BadRangeStartLineLessThanZero:
		code = "error_lex_badRange_lineNumberStart_lessThanZero"
	case BadRangeEndLineGreaterThanNumLines:
		code = "error_lex_badRange_lineNumberEnd_greaterThanNumLines"
	case BadRangeStartCodeUnitGreaterThanLineLength:
		code = "error_lex_badRange_lineCodeUnitStart_greaterThanLineLength"
	case BadRangeEndCodeUnitGreaterThanLineLength:
		code = "error_lex_badRange_lineCodeUnitEnd_greaterThanLineLength"
	default:
		code = "error_lex_badRange_lineNumberStart_greaterThan_lineNumberEnd"
	}
	return &BadRangeError{Kind: kind, Message: render(catalog, code, args...)}
}

// BadLineNumberError mirrors BadRangeError for the single-line-number
// validation path (lexUpdateLine).
type BadLineNumberError struct {
	Kind    BadLineNumberKind
	Message string
}

func (e *BadLineNumberError) Error() string { return e.Message }

func newBadLineNumberPublicError(catalog localization.Catalog, kind BadLineNumberKind, lineNumber, numLines int) *BadLineNumberError {
	inner := newBadLineNumberError(catalog, kind, lineNumber, numLines)
	return &BadLineNumberError{Kind: kind, Message: inner.Message}
}
