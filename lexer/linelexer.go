package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/cybersorcerer/pqcore/localization"
	"github.com/cybersorcerer/pqcore/position"
)

// lineScanner walks a single line's text byte-by-byte (code-unit-by-code-unit
// in spec.md terms), decoding one rune at a time.
type lineScanner struct {
	text string
	pos  uint32
}

func (s *lineScanner) atEnd() bool {
	return int(s.pos) >= len(s.text)
}

// peek returns the rune at the current position and its byte width, or
// (utf8.RuneError, 0) at end of line.
func (s *lineScanner) peek() (rune, int) {
	if s.atEnd() {
		return utf8.RuneError, 0
	}
	r, w := utf8.DecodeRuneInString(s.text[s.pos:])
	return r, w
}

func (s *lineScanner) peekAt(offset uint32) (rune, int) {
	start := s.pos + offset
	if int(start) >= len(s.text) {
		return utf8.RuneError, 0
	}
	r, w := utf8.DecodeRuneInString(s.text[start:])
	return r, w
}

func (s *lineScanner) hasPrefixAt(prefix string) bool {
	return strings.HasPrefix(s.text[s.pos:], prefix)
}

func (s *lineScanner) advance(width int) {
	s.pos += uint32(width)
}

func isWordStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isWordPart(r rune) bool {
	return isWordStart(r) || (r >= '0' && r <= '9')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// lexLineText tokenizes one line of source, resuming from startMode if the
// previous line left a multiline construct open, per spec.md §4.2.
func lexLineText(catalog localization.Catalog, lineNumber int, lineStr *position.LineString, startMode MultilineKind) *Line {
	text := lineStr.Text
	line := &Line{
		LineString:         lineStr,
		LineNumber:         lineNumber,
		MultilineKindStart: startMode,
		MultilineKindEnd:   MultilineKindDefault,
	}

	s := &lineScanner{text: text}
	mode := startMode

	switch mode {
	case MultilineKindMultilineComment:
		if !resumeMultilineComment(s, line) {
			line.MultilineKindEnd = MultilineKindMultilineComment
			finalizeLine(catalog, line, nil)
			return line
		}
		mode = MultilineKindDefault
	case MultilineKindString:
		if !resumeString(s, line) {
			line.MultilineKindEnd = MultilineKindString
			finalizeLine(catalog, line, nil)
			return line
		}
		mode = MultilineKindDefault
	case MultilineKindQuotedIdentifier:
		if !resumeQuotedIdentifier(s, line) {
			line.MultilineKindEnd = MultilineKindQuotedIdentifier
			finalizeLine(catalog, line, nil)
			return line
		}
		mode = MultilineKindDefault
	}

	for !s.atEnd() {
		if err := scanDefaultToken(catalog, s, line, lineNumber); err != nil {
			finalizeLine(catalog, line, err)
			return line
		}
	}

	finalizeLine(catalog, line, nil)
	return line
}

func finalizeLine(catalog localization.Catalog, line *Line, err *LexError) {
	end := uint32(len(line.Text()))
	if err != nil {
		end = err.Position.LineCodeUnit
	}
	pos := line.LineString.GraphemePosition(end)
	line.Position = pos
	if err != nil {
		line.Error = err
		if len(line.Tokens) > 0 {
			line.Kind = LineKindTouchedWithError
		} else {
			line.Kind = LineKindError
		}
		return
	}
	line.Kind = LineKindTouched
}

// resumeMultilineComment scans for "*/" starting at the beginning of a
// continuation line. Returns true if the comment closed on this line.
func resumeMultilineComment(s *lineScanner, line *Line) bool {
	start := s.pos
	idx := strings.Index(s.text[s.pos:], "*/")
	if idx < 0 {
		emitToken(line, LineTokenMultilineCommentContent, s.text[start:], start, uint32(len(s.text)))
		s.pos = uint32(len(s.text))
		return false
	}
	contentEnd := start + uint32(idx)
	if contentEnd > start {
		emitToken(line, LineTokenMultilineCommentContent, s.text[start:contentEnd], start, contentEnd)
	}
	emitToken(line, LineTokenMultilineCommentEnd, "*/", contentEnd, contentEnd+2)
	s.pos = contentEnd + 2
	return true
}

// resumeString scans for an unescaped closing quote, honoring the doubled
// "" escape, starting at the beginning of a continuation line.
func resumeString(s *lineScanner, line *Line) bool {
	start := s.pos
	end, closed := scanStringBody(s.text, s.pos)
	if !closed {
		emitToken(line, LineTokenStringLiteralContent, s.text[start:], start, uint32(len(s.text)))
		s.pos = uint32(len(s.text))
		return false
	}
	if end > start {
		emitToken(line, LineTokenStringLiteralContent, s.text[start:end], start, end)
	}
	emitToken(line, LineTokenStringLiteralEnd, `"`, end, end+1)
	s.pos = end + 1
	return true
}

func resumeQuotedIdentifier(s *lineScanner, line *Line) bool {
	start := s.pos
	end, closed := scanStringBody(s.text, s.pos)
	if !closed {
		emitToken(line, LineTokenQuotedIdentifierContent, s.text[start:], start, uint32(len(s.text)))
		s.pos = uint32(len(s.text))
		return false
	}
	if end > start {
		emitToken(line, LineTokenQuotedIdentifierContent, s.text[start:end], start, end)
	}
	emitToken(line, LineTokenQuotedIdentifierEnd, `"`, end, end+1)
	s.pos = end + 1
	return true
}

// scanStringBody finds the code unit of the closing, unescaped '"' starting
// the scan at from, honoring "" as a literal quote. Returns the offset of
// the closing quote and whether one was found.
func scanStringBody(text string, from uint32) (uint32, bool) {
	pos := from
	for int(pos) < len(text) {
		r, w := utf8.DecodeRuneInString(text[pos:])
		if r == '"' {
			next := pos + uint32(w)
			if int(next) < len(text) && text[next] == '"' {
				pos = next + 1
				continue
			}
			return pos, true
		}
		pos += uint32(w)
	}
	return pos, false
}

func emitToken(line *Line, kind LineTokenKind, data string, start, end uint32) {
	line.Tokens = append(line.Tokens, LineToken{Kind: kind, Data: data, PositionStart: start, PositionEnd: end})
}

// scanDefaultToken scans exactly one token (or switches the line into a
// multiline mode and stops) from Default mode. Returns a non-nil *LexError
// if the character at the cursor cannot start any valid token.
func scanDefaultToken(catalog localization.Catalog, s *lineScanner, line *Line, lineNumber int) *LexError {
	r, w := s.peek()

	switch {
	case r == ' ' || r == '\t':
		s.advance(w)
		return nil

	case s.hasPrefixAt("//"):
		start := s.pos
		s.pos = uint32(len(s.text))
		emitToken(line, LineTokenLineComment, s.text[start:], start, s.pos)
		return nil

	case s.hasPrefixAt("/*"):
		start := s.pos
		s.advance(2)
		emitToken(line, LineTokenMultilineCommentStart, "/*", start, s.pos)
		if !resumeMultilineComment(s, line) {
			line.MultilineKindEnd = MultilineKindMultilineComment
			s.pos = uint32(len(s.text))
		}
		return nil

	case r == '"':
		start := s.pos
		s.advance(w)
		emitToken(line, LineTokenStringLiteralStart, `"`, start, s.pos)
		bodyStart := s.pos
		end, closed := scanStringBody(s.text, s.pos)
		if !closed {
			if end > bodyStart {
				emitToken(line, LineTokenStringLiteralContent, s.text[bodyStart:end], bodyStart, end)
			}
			line.MultilineKindEnd = MultilineKindString
			s.pos = uint32(len(s.text))
			return nil
		}
		if end > bodyStart {
			emitToken(line, LineTokenStringLiteralContent, s.text[bodyStart:end], bodyStart, end)
		}
		emitToken(line, LineTokenStringLiteralEnd, `"`, end, end+1)
		s.pos = end + 1
		return nil

	case r == '#' && isSecondRune(s, w, '"'):
		start := s.pos
		s.advance(w)
		qw := runeWidthAt(s, 0)
		s.advance(qw)
		emitToken(line, LineTokenQuotedIdentifierStart, `#"`, start, s.pos)
		bodyStart := s.pos
		end, closed := scanStringBody(s.text, s.pos)
		if !closed {
			if end > bodyStart {
				emitToken(line, LineTokenQuotedIdentifierContent, s.text[bodyStart:end], bodyStart, end)
			}
			line.MultilineKindEnd = MultilineKindQuotedIdentifier
			s.pos = uint32(len(s.text))
			return nil
		}
		if end > bodyStart {
			emitToken(line, LineTokenQuotedIdentifierContent, s.text[bodyStart:end], bodyStart, end)
		}
		emitToken(line, LineTokenQuotedIdentifierEnd, `"`, end, end+1)
		s.pos = end + 1
		return nil

	case r == '#':
		start := s.pos
		end := s.pos + uint32(w)
		for {
			nr, nw := s.peekAt(end - s.pos)
			if nw == 0 || !isWordPart(nr) {
				break
			}
			end += uint32(nw)
		}
		word := s.text[start:end]
		kind, ok := LookupHashKeyword(word)
		if !ok {
			pos := tokenPosition(lineNumber, start, line)
			return newExpectedError(catalog, ExpectedKeywordOrIdentifier, pos)
		}
		s.pos = end
		emitToken(line, kind, word, start, end)
		return nil

	case s.hasPrefixAt("0x") || s.hasPrefixAt("0X"):
		start := s.pos
		end := s.pos + 2
		digitsStart := end
		for {
			nr, nw := s.peekAt(end - s.pos)
			if nw == 0 || !isHexDigit(nr) {
				break
			}
			end += uint32(nw)
		}
		if end == digitsStart {
			pos := tokenPosition(lineNumber, start, line)
			return newExpectedError(catalog, ExpectedHex, pos)
		}
		s.pos = end
		emitToken(line, LineTokenHexLiteral, s.text[start:end], start, end)
		return nil

	case isDigit(r):
		start := s.pos
		end := scanNumericLiteral(s.text, s.pos)
		s.pos = end
		emitToken(line, LineTokenNumericLiteral, s.text[start:end], start, end)
		return nil

	case isWordStart(r):
		start := s.pos
		end := start + uint32(w)
		for {
			nr, nw := s.peekAt(end - s.pos)
			if nw == 0 || !isWordPart(nr) {
				break
			}
			end += uint32(nw)
		}
		word := s.text[start:end]
		s.pos = end
		if kind, ok := LookupKeyword(word); ok {
			emitToken(line, kind, word, start, end)
		} else {
			emitToken(line, LineTokenIdentifier, word, start, end)
		}
		return nil

	default:
		return scanPunctuation(catalog, s, line, lineNumber)
	}
}

// isSecondRune reports whether the rune immediately after a leading rune of
// width w equals want. Used for the two-rune #" lookahead.
func isSecondRune(s *lineScanner, w int, want rune) bool {
	r, width := s.peekAt(uint32(w))
	return width > 0 && r == want
}

func runeWidthAt(s *lineScanner, offset uint32) int {
	_, w := s.peekAt(offset)
	return w
}

func tokenPosition(lineNumber int, lineCodeUnit uint32, line *Line) position.TokenPosition {
	return position.TokenPosition{LineNumber: uint32(lineNumber), LineCodeUnit: lineCodeUnit}
}

// scanNumericLiteral scans digits, an optional fractional part, and an
// optional e/E exponent, returning the end offset.
func scanNumericLiteral(text string, from uint32) uint32 {
	pos := from
	for int(pos) < len(text) && isDigit(rune(text[pos])) {
		pos++
	}
	if int(pos) < len(text) && text[pos] == '.' && int(pos+1) < len(text) && isDigit(rune(text[pos+1])) {
		pos++
		for int(pos) < len(text) && isDigit(rune(text[pos])) {
			pos++
		}
	}
	if int(pos) < len(text) && (text[pos] == 'e' || text[pos] == 'E') {
		look := pos + 1
		if int(look) < len(text) && (text[look] == '+' || text[look] == '-') {
			look++
		}
		if int(look) < len(text) && isDigit(rune(text[look])) {
			pos = look
			for int(pos) < len(text) && isDigit(rune(text[pos])) {
				pos++
			}
		}
	}
	return pos
}

// punctuationEntry pairs a literal with its token kind, used to try longest
// matches first.
type punctuationEntry struct {
	literal string
	kind    LineTokenKind
}

var punctuation3 = []punctuationEntry{
	{"...", LineTokenEllipsis},
}

var punctuation2 = []punctuationEntry{
	{"..", LineTokenDotDot},
	{"=>", LineTokenFatArrow},
	{"<>", LineTokenNotEqual},
	{"<=", LineTokenLessThanEqualTo},
	{">=", LineTokenGreaterThanEqualTo},
	{"??", LineTokenNullCoalescingOperator},
}

var punctuation1 = map[byte]LineTokenKind{
	'&': LineTokenAmpersand,
	'*': LineTokenAsterisk,
	'@': LineTokenAtSign,
	'!': LineTokenBang,
	',': LineTokenComma,
	'/': LineTokenDivision,
	'=': LineTokenEqual,
	'>': LineTokenGreaterThan,
	'{': LineTokenLeftBrace,
	'[': LineTokenLeftBracket,
	'(': LineTokenLeftParenthesis,
	'<': LineTokenLessThan,
	'+': LineTokenPlus,
	'-': LineTokenMinus,
	'?': LineTokenQuestionMark,
	'}': LineTokenRightBrace,
	']': LineTokenRightBracket,
	')': LineTokenRightParenthesis,
	';': LineTokenSemicolon,
}

func scanPunctuation(catalog localization.Catalog, s *lineScanner, line *Line, lineNumber int) *LexError {
	for _, entry := range punctuation3 {
		if s.hasPrefixAt(entry.literal) {
			start := s.pos
			s.advance(len(entry.literal))
			emitToken(line, entry.kind, entry.literal, start, s.pos)
			return nil
		}
	}
	for _, entry := range punctuation2 {
		if s.hasPrefixAt(entry.literal) {
			start := s.pos
			s.advance(len(entry.literal))
			emitToken(line, entry.kind, entry.literal, start, s.pos)
			return nil
		}
	}
	r, w := s.peek()
	if w == 1 {
		if kind, ok := punctuation1[s.text[s.pos]]; ok {
			start := s.pos
			s.advance(1)
			emitToken(line, kind, string(r), start, s.pos)
			return nil
		}
	}

	pos := tokenPosition(lineNumber, s.pos, line)
	return newUnexpectedReadError(catalog, r, pos)
}
