// Package lexer implements the line-oriented incremental lexer for the M
// formula language: LineString-backed per-line tokenizing with carried
// multiline state, flattened into a LexerSnapshot for the parser.
package lexer

import "fmt"

// LineTokenKind enumerates every token shape the per-line lexer can
// produce, including the multiline-fragment variants (*Start/*Content/*End)
// that LexerSnapshot later fuses into single snapshot-level tokens.
type LineTokenKind int

const (
	LineTokenAmpersand LineTokenKind = iota
	LineTokenAsterisk
	LineTokenAtSign
	LineTokenBang
	LineTokenComma
	LineTokenDivision
	LineTokenDotDot
	LineTokenDotDotDot
	LineTokenEllipsis
	LineTokenEqual
	LineTokenFatArrow
	LineTokenGreaterThan
	LineTokenGreaterThanEqualTo
	LineTokenLeftBrace
	LineTokenLeftBracket
	LineTokenLeftParenthesis
	LineTokenLessThan
	LineTokenLessThanEqualTo
	LineTokenNotEqual
	LineTokenNullCoalescingOperator
	LineTokenPlus
	LineTokenMinus
	LineTokenQuestionMark
	LineTokenRightBrace
	LineTokenRightBracket
	LineTokenRightParenthesis
	LineTokenSemicolon

	LineTokenHexLiteral
	LineTokenNumericLiteral
	LineTokenIdentifier

	LineTokenQuotedIdentifierStart
	LineTokenQuotedIdentifierContent
	LineTokenQuotedIdentifierEnd

	LineTokenStringLiteralStart
	LineTokenStringLiteralContent
	LineTokenStringLiteralEnd
	LineTokenTextLiteral // not emitted: a string that closes on its own line is still Start/Content/End

	LineTokenMultilineCommentStart
	LineTokenMultilineCommentContent
	LineTokenMultilineCommentEnd
	LineTokenLineComment

	// Keywords.
	LineTokenKeywordAnd
	LineTokenKeywordAs
	LineTokenKeywordEach
	LineTokenKeywordElse
	LineTokenKeywordError
	LineTokenKeywordFalse
	LineTokenKeywordIf
	LineTokenKeywordIn
	LineTokenKeywordIs
	LineTokenKeywordLet
	LineTokenKeywordMeta
	LineTokenKeywordNot
	LineTokenKeywordNull
	LineTokenKeywordOr
	LineTokenKeywordOtherwise
	LineTokenKeywordSection
	LineTokenKeywordShared
	LineTokenKeywordThen
	LineTokenKeywordTrue
	LineTokenKeywordTry
	LineTokenKeywordType
	LineTokenKeywordHashBinary
	LineTokenKeywordHashDate
	LineTokenKeywordHashDateTime
	LineTokenKeywordHashDateTimeZone
	LineTokenKeywordHashDuration
	LineTokenKeywordHashInfinity
	LineTokenKeywordHashNan
	LineTokenKeywordHashSections
	LineTokenKeywordHashShared
	LineTokenKeywordHashTable
	LineTokenKeywordHashTime

	LineTokenEof
)

var lineTokenNames = map[LineTokenKind]string{
	LineTokenAmpersand:                "Ampersand",
	LineTokenAsterisk:                 "Asterisk",
	LineTokenAtSign:                   "AtSign",
	LineTokenBang:                     "Bang",
	LineTokenComma:                    "Comma",
	LineTokenDivision:                 "Division",
	LineTokenDotDot:                   "DotDot",
	LineTokenDotDotDot:                "DotDotDot",
	LineTokenEllipsis:                 "Ellipsis",
	LineTokenEqual:                    "Equal",
	LineTokenFatArrow:                 "FatArrow",
	LineTokenGreaterThan:              "GreaterThan",
	LineTokenGreaterThanEqualTo:       "GreaterThanEqualTo",
	LineTokenLeftBrace:                "LeftBrace",
	LineTokenLeftBracket:              "LeftBracket",
	LineTokenLeftParenthesis:          "LeftParenthesis",
	LineTokenLessThan:                 "LessThan",
	LineTokenLessThanEqualTo:          "LessThanEqualTo",
	LineTokenNotEqual:                 "NotEqual",
	LineTokenNullCoalescingOperator:   "NullCoalescingOperator",
	LineTokenPlus:                     "Plus",
	LineTokenMinus:                    "Minus",
	LineTokenQuestionMark:             "QuestionMark",
	LineTokenRightBrace:               "RightBrace",
	LineTokenRightBracket:             "RightBracket",
	LineTokenRightParenthesis:         "RightParenthesis",
	LineTokenSemicolon:                "Semicolon",
	LineTokenHexLiteral:               "HexLiteral",
	LineTokenNumericLiteral:           "NumericLiteral",
	LineTokenIdentifier:               "Identifier",
	LineTokenQuotedIdentifierStart:    "QuotedIdentifierStart",
	LineTokenQuotedIdentifierContent:  "QuotedIdentifierContent",
	LineTokenQuotedIdentifierEnd:      "QuotedIdentifierEnd",
	LineTokenStringLiteralStart:       "StringLiteralStart",
	LineTokenStringLiteralContent:     "StringLiteralContent",
	LineTokenStringLiteralEnd:         "StringLiteralEnd",
	LineTokenTextLiteral:              "TextLiteral",
	LineTokenMultilineCommentStart:    "MultilineCommentStart",
	LineTokenMultilineCommentContent:  "MultilineCommentContent",
	LineTokenMultilineCommentEnd:      "MultilineCommentEnd",
	LineTokenLineComment:              "LineComment",
	LineTokenKeywordAnd:               "and",
	LineTokenKeywordAs:                "as",
	LineTokenKeywordEach:              "each",
	LineTokenKeywordElse:              "else",
	LineTokenKeywordError:             "error",
	LineTokenKeywordFalse:             "false",
	LineTokenKeywordIf:                "if",
	LineTokenKeywordIn:                "in",
	LineTokenKeywordIs:                "is",
	LineTokenKeywordLet:               "let",
	LineTokenKeywordMeta:              "meta",
	LineTokenKeywordNot:               "not",
	LineTokenKeywordNull:              "null",
	LineTokenKeywordOr:                "or",
	LineTokenKeywordOtherwise:         "otherwise",
	LineTokenKeywordSection:           "section",
	LineTokenKeywordShared:            "shared",
	LineTokenKeywordThen:              "then",
	LineTokenKeywordTrue:              "true",
	LineTokenKeywordTry:               "try",
	LineTokenKeywordType:              "type",
	LineTokenKeywordHashBinary:        "#binary",
	LineTokenKeywordHashDate:          "#date",
	LineTokenKeywordHashDateTime:      "#datetime",
	LineTokenKeywordHashDateTimeZone:  "#datetimezone",
	LineTokenKeywordHashDuration:      "#duration",
	LineTokenKeywordHashInfinity:      "#infinity",
	LineTokenKeywordHashNan:           "#nan",
	LineTokenKeywordHashSections:      "#sections",
	LineTokenKeywordHashShared:        "#shared",
	LineTokenKeywordHashTable:         "#table",
	LineTokenKeywordHashTime:          "#time",
	LineTokenEof:                      "Eof",
}

func (k LineTokenKind) String() string {
	if name, ok := lineTokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("LineTokenKind(%d)", int(k))
}

// keywords maps bare-word literals to their keyword LineTokenKind. Hash
// keywords (#binary, ...) are matched separately since they begin with '#'.
var keywords = map[string]LineTokenKind{
	"and":       LineTokenKeywordAnd,
	"as":        LineTokenKeywordAs,
	"each":      LineTokenKeywordEach,
	"else":      LineTokenKeywordElse,
	"error":     LineTokenKeywordError,
	"false":     LineTokenKeywordFalse,
	"if":        LineTokenKeywordIf,
	"in":        LineTokenKeywordIn,
	"is":        LineTokenKeywordIs,
	"let":       LineTokenKeywordLet,
	"meta":      LineTokenKeywordMeta,
	"not":       LineTokenKeywordNot,
	"null":      LineTokenKeywordNull,
	"or":        LineTokenKeywordOr,
	"otherwise": LineTokenKeywordOtherwise,
	"section":   LineTokenKeywordSection,
	"shared":    LineTokenKeywordShared,
	"then":      LineTokenKeywordThen,
	"true":      LineTokenKeywordTrue,
	"try":       LineTokenKeywordTry,
	"type":      LineTokenKeywordType,
}

var hashKeywords = map[string]LineTokenKind{
	"#binary":       LineTokenKeywordHashBinary,
	"#date":         LineTokenKeywordHashDate,
	"#datetime":     LineTokenKeywordHashDateTime,
	"#datetimezone": LineTokenKeywordHashDateTimeZone,
	"#duration":     LineTokenKeywordHashDuration,
	"#infinity":     LineTokenKeywordHashInfinity,
	"#nan":          LineTokenKeywordHashNan,
	"#sections":     LineTokenKeywordHashSections,
	"#shared":       LineTokenKeywordHashShared,
	"#table":        LineTokenKeywordHashTable,
	"#time":         LineTokenKeywordHashTime,
}

// LookupKeyword reports the keyword kind for ident, or ok=false if it is
// not a reserved word.
func LookupKeyword(ident string) (LineTokenKind, bool) {
	kind, ok := keywords[ident]
	return kind, ok
}

// LookupHashKeyword reports the keyword kind for a "#name" literal.
func LookupHashKeyword(ident string) (LineTokenKind, bool) {
	kind, ok := hashKeywords[ident]
	return kind, ok
}

// LineToken is a single token produced by the per-line lexer, positioned in
// line-local LinePosition coordinates.
type LineToken struct {
	Kind          LineTokenKind
	Data          string
	PositionStart uint32 // code unit, line-local
	PositionEnd   uint32 // code unit, line-local
}
