package parser

import (
	"fmt"

	"github.com/cybersorcerer/pqcore/lexer"
	"github.com/cybersorcerer/pqcore/localization"
	"github.com/cybersorcerer/pqcore/position"
)

// ParseErrorKind discriminates the ParseError family of spec.md §7.
type ParseErrorKind int

const (
	ParseErrorExpectedTokenKind ParseErrorKind = iota
	ParseErrorExpectedAnyTokenKind
	ParseErrorExpectedGeneralizedIdentifier
	ParseErrorInvalidPrimitiveType
	ParseErrorRequiredParameterAfterOptional
	ParseErrorUnterminatedBracket
	ParseErrorUnterminatedParenthesis
	ParseErrorUnusedTokensRemain
	ParseErrorCsvContinuation
)

// CsvContinuationKind distinguishes the two ways a comma-separated list can
// fail to continue.
type CsvContinuationKind int

const (
	CsvContinuationDanglingComma CsvContinuationKind = iota
	CsvContinuationLetExpression
)

// ParseError is the sum type of spec.md §7's ParseError family.
type ParseError struct {
	Kind    ParseErrorKind
	Message string

	Expected     lexer.TokenKind
	ExpectedAny  []lexer.TokenKind
	Got          lexer.TokenKind
	Position     position.TokenPosition
	Csv          CsvContinuationKind
	PrimitiveLit string
	ParameterName string
}

func (e *ParseError) Error() string {
	return e.Message
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

func newExpectedTokenKindError(catalog localization.Catalog, expected, got lexer.TokenKind, pos position.TokenPosition) *ParseError {
	msg := render(catalog, "error_parse_expectedTokenKind", tokenKindName(catalog, expected), tokenKindName(catalog, got), pos.LineNumber, pos.LineCodeUnit)
	return &ParseError{Kind: ParseErrorExpectedTokenKind, Message: msg, Expected: expected, Got: got, Position: pos}
}

func newExpectedAnyTokenKindError(catalog localization.Catalog, expected []lexer.TokenKind, got lexer.TokenKind, pos position.TokenPosition) *ParseError {
	names := make([]string, len(expected))
	for i, k := range expected {
		names[i] = tokenKindName(catalog, k)
	}
	msg := render(catalog, "error_parse_expectedAnyTokenKind", joinNames(names), tokenKindName(catalog, got), pos.LineNumber, pos.LineCodeUnit)
	return &ParseError{Kind: ParseErrorExpectedAnyTokenKind, Message: msg, ExpectedAny: expected, Got: got, Position: pos}
}

func newExpectedGeneralizedIdentifierError(catalog localization.Catalog, pos position.TokenPosition) *ParseError {
	msg := render(catalog, "error_parse_expectedGeneralizedIdentifier", pos.LineNumber, pos.LineCodeUnit)
	return &ParseError{Kind: ParseErrorExpectedGeneralizedIdentifier, Message: msg, Position: pos}
}

func newInvalidPrimitiveTypeError(catalog localization.Catalog, literal string, pos position.TokenPosition) *ParseError {
	msg := render(catalog, "error_parse_invalidPrimitiveType", literal)
	return &ParseError{Kind: ParseErrorInvalidPrimitiveType, Message: msg, PrimitiveLit: literal, Position: pos}
}

func newRequiredParameterAfterOptionalError(catalog localization.Catalog, name string, pos position.TokenPosition) *ParseError {
	msg := render(catalog, "error_parse_requiredParameterAfterOptional", name)
	return &ParseError{Kind: ParseErrorRequiredParameterAfterOptional, Message: msg, ParameterName: name, Position: pos}
}

func newUnterminatedBracketError(catalog localization.Catalog, pos position.TokenPosition) *ParseError {
	msg := render(catalog, "error_parse_unterminatedBracket", pos.LineNumber, pos.LineCodeUnit)
	return &ParseError{Kind: ParseErrorUnterminatedBracket, Message: msg, Position: pos}
}

func newUnterminatedParenthesisError(catalog localization.Catalog, pos position.TokenPosition) *ParseError {
	msg := render(catalog, "error_parse_unterminatedParenthesis", pos.LineNumber, pos.LineCodeUnit)
	return &ParseError{Kind: ParseErrorUnterminatedParenthesis, Message: msg, Position: pos}
}

func newUnusedTokensRemainError(catalog localization.Catalog, remaining int) *ParseError {
	msg := render(catalog, "error_parse_unusedTokensRemain", remaining)
	return &ParseError{Kind: ParseErrorUnusedTokensRemain, Message: msg}
}

func newCsvContinuationError(catalog localization.Catalog, kind CsvContinuationKind, pos position.TokenPosition) *ParseError {
	code := "error_parse_csvContinuation_danglingComma"
	if kind == CsvContinuationLetExpression {
		code = "error_parse_csvContinuation_letExpression"
	}
	msg := render(catalog, code)
	return &ParseError{Kind: ParseErrorCsvContinuation, Message: msg, Csv: kind, Position: pos}
}

func tokenKindName(catalog localization.Catalog, kind lexer.TokenKind) string {
	code := tokenKindCode(kind)
	if code == "" {
		return fmt.Sprintf("TokenKind(%d)", int(kind))
	}
	if name, ok := catalog.Lookup(code); ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(kind))
}

func tokenKindCode(kind lexer.TokenKind) string {
	switch kind {
	case lexer.TokenEof:
		return "tokenKind_eof"
	case lexer.TokenIdentifier:
		return "tokenKind_identifier"
	case lexer.TokenLeftParenthesis:
		return "tokenKind_leftParenthesis"
	case lexer.TokenRightParenthesis:
		return "tokenKind_rightParenthesis"
	case lexer.TokenLeftBracket:
		return "tokenKind_leftBracket"
	case lexer.TokenRightBracket:
		return "tokenKind_rightBracket"
	case lexer.TokenLeftBrace:
		return "tokenKind_leftBrace"
	case lexer.TokenRightBrace:
		return "tokenKind_rightBrace"
	case lexer.TokenComma:
		return "tokenKind_comma"
	case lexer.TokenEqual:
		return "tokenKind_equal"
	case lexer.TokenFatArrow:
		return "tokenKind_fatArrow"
	default:
		return ""
	}
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
