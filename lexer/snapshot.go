package lexer

import (
	"github.com/cybersorcerer/pqcore/common"
	"github.com/cybersorcerer/pqcore/localization"
	"github.com/cybersorcerer/pqcore/position"
)

// TokenKind is the document-level token vocabulary the parser consumes:
// LineTokenKind's *Start/*Content/*End fragments have been fused into a
// single token per spec.md §3.2's flattening step.
type TokenKind int

const (
	TokenAmpersand TokenKind = iota
	TokenAsterisk
	TokenAtSign
	TokenBang
	TokenComma
	TokenDivision
	TokenDotDot
	TokenEllipsis
	TokenEqual
	TokenFatArrow
	TokenGreaterThan
	TokenGreaterThanEqualTo
	TokenLeftBrace
	TokenLeftBracket
	TokenLeftParenthesis
	TokenLessThan
	TokenLessThanEqualTo
	TokenNotEqual
	TokenNullCoalescingOperator
	TokenPlus
	TokenMinus
	TokenQuestionMark
	TokenRightBrace
	TokenRightBracket
	TokenRightParenthesis
	TokenSemicolon

	TokenHexLiteral
	TokenNumericLiteral
	TokenIdentifier
	TokenQuotedIdentifier
	TokenStringLiteral

	TokenKeywordAnd
	TokenKeywordAs
	TokenKeywordEach
	TokenKeywordElse
	TokenKeywordError
	TokenKeywordFalse
	TokenKeywordIf
	TokenKeywordIn
	TokenKeywordIs
	TokenKeywordLet
	TokenKeywordMeta
	TokenKeywordNot
	TokenKeywordNull
	TokenKeywordOr
	TokenKeywordOtherwise
	TokenKeywordSection
	TokenKeywordShared
	TokenKeywordThen
	TokenKeywordTrue
	TokenKeywordTry
	TokenKeywordType
	TokenKeywordHashBinary
	TokenKeywordHashDate
	TokenKeywordHashDateTime
	TokenKeywordHashDateTimeZone
	TokenKeywordHashDuration
	TokenKeywordHashInfinity
	TokenKeywordHashNan
	TokenKeywordHashSections
	TokenKeywordHashShared
	TokenKeywordHashTable
	TokenKeywordHashTime

	TokenEof
)

// simpleTokenKinds maps the LineTokenKinds that pass through the flattening
// step unchanged (everything except the multiline fragment families, which
// fuse, and the comment families, which are routed to Comments instead).
var simpleTokenKinds = map[LineTokenKind]TokenKind{
	LineTokenAmpersand:              TokenAmpersand,
	LineTokenAsterisk:               TokenAsterisk,
	LineTokenAtSign:                 TokenAtSign,
	LineTokenBang:                   TokenBang,
	LineTokenComma:                  TokenComma,
	LineTokenDivision:                TokenDivision,
	LineTokenDotDot:                  TokenDotDot,
	LineTokenEllipsis:                TokenEllipsis,
	LineTokenEqual:                   TokenEqual,
	LineTokenFatArrow:                TokenFatArrow,
	LineTokenGreaterThan:             TokenGreaterThan,
	LineTokenGreaterThanEqualTo:      TokenGreaterThanEqualTo,
	LineTokenLeftBrace:               TokenLeftBrace,
	LineTokenLeftBracket:             TokenLeftBracket,
	LineTokenLeftParenthesis:         TokenLeftParenthesis,
	LineTokenLessThan:                TokenLessThan,
	LineTokenLessThanEqualTo:         TokenLessThanEqualTo,
	LineTokenNotEqual:                TokenNotEqual,
	LineTokenNullCoalescingOperator:  TokenNullCoalescingOperator,
	LineTokenPlus:                    TokenPlus,
	LineTokenMinus:                   TokenMinus,
	LineTokenQuestionMark:            TokenQuestionMark,
	LineTokenRightBrace:              TokenRightBrace,
	LineTokenRightBracket:            TokenRightBracket,
	LineTokenRightParenthesis:        TokenRightParenthesis,
	LineTokenSemicolon:               TokenSemicolon,
	LineTokenHexLiteral:              TokenHexLiteral,
	LineTokenNumericLiteral:          TokenNumericLiteral,
	LineTokenIdentifier:              TokenIdentifier,
	LineTokenTextLiteral:             TokenStringLiteral,
	LineTokenKeywordAnd:              TokenKeywordAnd,
	LineTokenKeywordAs:               TokenKeywordAs,
	LineTokenKeywordEach:             TokenKeywordEach,
	LineTokenKeywordElse:             TokenKeywordElse,
	LineTokenKeywordError:            TokenKeywordError,
	LineTokenKeywordFalse:            TokenKeywordFalse,
	LineTokenKeywordIf:               TokenKeywordIf,
	LineTokenKeywordIn:               TokenKeywordIn,
	LineTokenKeywordIs:               TokenKeywordIs,
	LineTokenKeywordLet:              TokenKeywordLet,
	LineTokenKeywordMeta:             TokenKeywordMeta,
	LineTokenKeywordNot:              TokenKeywordNot,
	LineTokenKeywordNull:             TokenKeywordNull,
	LineTokenKeywordOr:               TokenKeywordOr,
	LineTokenKeywordOtherwise:        TokenKeywordOtherwise,
	LineTokenKeywordSection:          TokenKeywordSection,
	LineTokenKeywordShared:           TokenKeywordShared,
	LineTokenKeywordThen:             TokenKeywordThen,
	LineTokenKeywordTrue:             TokenKeywordTrue,
	LineTokenKeywordTry:              TokenKeywordTry,
	LineTokenKeywordType:             TokenKeywordType,
	LineTokenKeywordHashBinary:       TokenKeywordHashBinary,
	LineTokenKeywordHashDate:         TokenKeywordHashDate,
	LineTokenKeywordHashDateTime:     TokenKeywordHashDateTime,
	LineTokenKeywordHashDateTimeZone: TokenKeywordHashDateTimeZone,
	LineTokenKeywordHashDuration:     TokenKeywordHashDuration,
	LineTokenKeywordHashInfinity:     TokenKeywordHashInfinity,
	LineTokenKeywordHashNan:          TokenKeywordHashNan,
	LineTokenKeywordHashSections:     TokenKeywordHashSections,
	LineTokenKeywordHashShared:       TokenKeywordHashShared,
	LineTokenKeywordHashTable:        TokenKeywordHashTable,
	LineTokenKeywordHashTime:         TokenKeywordHashTime,
}

// Token is a document-absolute token ready for the parser.
type Token struct {
	Kind          TokenKind
	Data          string
	PositionStart position.TokenPosition
	PositionEnd   position.TokenPosition
}

// CommentKind distinguishes line and multiline comments.
type CommentKind int

const (
	CommentLine CommentKind = iota
	CommentMultiline
)

// Comment is a document-absolute comment, kept out of the Token stream so
// the parser never has to skip them, per spec.md §3.2.
type Comment struct {
	Kind          CommentKind
	Data          string
	PositionStart position.TokenPosition
	PositionEnd   position.TokenPosition
}

// LexerSnapshot is the immutable, document-absolute view the parser
// consumes: every LineTokenKind fragment fused across line boundaries into
// a single Token or Comment, per spec.md §3.2/§4.2.
type LexerSnapshot struct {
	Text     string
	Tokens   []Token
	Comments []Comment
}

type flatLineToken struct {
	token      LineToken
	lineNumber int
	docStart   position.TokenPosition
	docEnd     position.TokenPosition
}

// Snapshot flattens state into a LexerSnapshot. It fails with a *LexError if
// any line still carries an unresolved error, and, while fusing multiline
// tokens, if a string, quoted identifier or multiline comment is still open
// at end of document (such a line is Touched, not an error line, so IsError
// does not catch it), mirroring spec.md §6.1's precondition that snapshot
// only succeeds against a fully clean state.
func Snapshot(state *State) (*LexerSnapshot, error) {
	if IsError(state) {
		return nil, newErrorLineMapError(state.catalog, ErrorLines(state))
	}

	var fullText []byte
	var flat []flatLineToken

	var codeUnit uint32
	for i, line := range state.Lines {
		lineStart := codeUnit
		for _, tok := range line.Tokens {
			flat = append(flat, flatLineToken{
				token:      tok,
				lineNumber: i,
				docStart:   position.TokenPosition{LineNumber: uint32(i), LineCodeUnit: tok.PositionStart, CodeUnit: lineStart + tok.PositionStart},
				docEnd:     position.TokenPosition{LineNumber: uint32(i), LineCodeUnit: tok.PositionEnd, CodeUnit: lineStart + tok.PositionEnd},
			})
		}
		fullText = append(fullText, line.Text()...)
		codeUnit += uint32(len(line.Text()))
		if i < len(state.Lines)-1 {
			fullText = append(fullText, state.Separator...)
			codeUnit += uint32(len(state.Separator))
		}
	}

	snapshot := &LexerSnapshot{Text: string(fullText)}

	i := 0
	for i < len(flat) {
		ft := flat[i]
		switch ft.token.Kind {
		case LineTokenQuotedIdentifierStart:
			fused, next, err := fuseMultiline(state.catalog, flat, i, LineTokenQuotedIdentifierStart, LineTokenQuotedIdentifierContent, LineTokenQuotedIdentifierEnd, UnterminatedQuotedIdentifier)
			if err != nil {
				return nil, err
			}
			snapshot.Tokens = append(snapshot.Tokens, Token{Kind: TokenQuotedIdentifier, Data: fused.data, PositionStart: fused.start, PositionEnd: fused.end})
			i = next

		case LineTokenStringLiteralStart:
			fused, next, err := fuseMultiline(state.catalog, flat, i, LineTokenStringLiteralStart, LineTokenStringLiteralContent, LineTokenStringLiteralEnd, UnterminatedString)
			if err != nil {
				return nil, err
			}
			snapshot.Tokens = append(snapshot.Tokens, Token{Kind: TokenStringLiteral, Data: fused.data, PositionStart: fused.start, PositionEnd: fused.end})
			i = next

		case LineTokenMultilineCommentStart:
			fused, next, err := fuseMultiline(state.catalog, flat, i, LineTokenMultilineCommentStart, LineTokenMultilineCommentContent, LineTokenMultilineCommentEnd, UnterminatedComment)
			if err != nil {
				return nil, err
			}
			snapshot.Comments = append(snapshot.Comments, Comment{Kind: CommentMultiline, Data: fused.data, PositionStart: fused.start, PositionEnd: fused.end})
			i = next

		case LineTokenLineComment:
			snapshot.Comments = append(snapshot.Comments, Comment{Kind: CommentLine, Data: ft.token.Data, PositionStart: ft.docStart, PositionEnd: ft.docEnd})
			i++

		default:
			kind, ok := simpleTokenKinds[ft.token.Kind]
			if !ok {
				return nil, common.NewInvariantError(state.catalog, "unmapped LineTokenKind reached snapshot flattening", map[string]any{"kind": ft.token.Kind.String()})
			}
			snapshot.Tokens = append(snapshot.Tokens, Token{Kind: kind, Data: ft.token.Data, PositionStart: ft.docStart, PositionEnd: ft.docEnd})
			i++
		}
	}

	snapshot.Tokens = append(snapshot.Tokens, Token{Kind: TokenEof, PositionStart: position.TokenPosition{CodeUnit: codeUnit}, PositionEnd: position.TokenPosition{CodeUnit: codeUnit}})

	return snapshot, nil
}

type fusedSpan struct {
	data  string
	start position.TokenPosition
	end   position.TokenPosition
}

// fuseMultiline collects a Start/Content*/End run beginning at flat[i] (whose
// kind must be startKind) into a single span, returning the index just past
// the End token. If the run never reaches an End token (the construct is
// still open at end of document, which IsError(state) does not flag), it
// reports an UnterminatedMultilineToken error.
func fuseMultiline(catalog localization.Catalog, flat []flatLineToken, i int, startKind, contentKind, endKind LineTokenKind, unterminated UnterminatedMultilineKind) (fusedSpan, int, error) {
	start := flat[i]
	var data string
	j := i + 1
	for j < len(flat) {
		switch flat[j].token.Kind {
		case contentKind:
			data += flat[j].token.Data
			j++
		case endKind:
			return fusedSpan{data: data, start: start.docStart, end: flat[j].docEnd}, j + 1, nil
		default:
			return fusedSpan{}, j, newUnterminatedMultilineError(catalog, unterminated)
		}
	}
	return fusedSpan{}, j, newUnterminatedMultilineError(catalog, unterminated)
}
