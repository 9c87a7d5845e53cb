// Package position implements the grapheme-aware line and document
// position types shared by the lexer, parser, and inspection engine.
package position

// LinePosition is a position within a single line, expressed both as a
// UTF-16-style code-unit offset and as a grapheme-cluster column.
type LinePosition struct {
	CodeUnit       uint32
	ColumnGrapheme uint32
}

// TokenPosition is an absolute position within the joined document.
type TokenPosition struct {
	LineNumber   uint32
	LineCodeUnit uint32
	CodeUnit     uint32
}

// Less reports whether p sorts strictly before other by absolute code unit.
func (p TokenPosition) Less(other TokenPosition) bool {
	return p.CodeUnit < other.CodeUnit
}

// LessEq reports whether p sorts at or before other by absolute code unit.
func (p TokenPosition) LessEq(other TokenPosition) bool {
	return p.CodeUnit <= other.CodeUnit
}

// TokenRange covers a half-open span of tokens and the document positions
// they occupy. PositionEnd is exclusive.
type TokenRange struct {
	TokenIndexStart int
	TokenIndexEnd   int
	PositionStart   TokenPosition
	PositionEnd     TokenPosition
}

// Contains reports whether pos falls within [PositionStart, PositionEnd).
func (r TokenRange) Contains(pos TokenPosition) bool {
	return r.PositionStart.LessEq(pos) && pos.Less(r.PositionEnd)
}

// ContainsOrAfter reports whether pos is at or after PositionStart, the
// test used to decide whether an otherwise-open context node has been
// reached by a cursor walking forward.
func (r TokenRange) ContainsOrAfter(pos TokenPosition) bool {
	return r.PositionStart.LessEq(pos)
}

// Position is an editor cursor, addressed the same way a caller's editor
// addresses it: a zero-based line number plus a code-unit offset on that
// line.
type Position struct {
	LineNumber   uint32
	LineCodeUnit uint32
}

// On reports whether the cursor sits on the token occupying [start, end).
func On(cursor TokenPosition, start, end TokenPosition) bool {
	return start.LessEq(cursor) && cursor.Less(end)
}

// After reports whether the cursor is at or past the given end position.
func After(cursor TokenPosition, end TokenPosition) bool {
	return end.LessEq(cursor)
}

// Before reports whether the cursor is strictly before the given start
// position.
func Before(cursor TokenPosition, start TokenPosition) bool {
	return cursor.Less(start)
}

// AsTokenPosition widens an editor cursor to a TokenPosition so inspection
// code can compare it against token/context positions with Compare. The
// absolute CodeUnit field is left zero — line/line-code-unit is always
// enough to order two positions within the same document, and it is all a
// bare cursor carries.
func (p Position) AsTokenPosition() TokenPosition {
	return TokenPosition{LineNumber: p.LineNumber, LineCodeUnit: p.LineCodeUnit}
}

// Compare orders two positions by (LineNumber, LineCodeUnit), returning -1,
// 0, or 1. Unlike Less/LessEq, it ignores the document-absolute CodeUnit
// field, so it is safe to call with one side built from AsTokenPosition.
func Compare(a, b TokenPosition) int {
	if a.LineNumber != b.LineNumber {
		if a.LineNumber < b.LineNumber {
			return -1
		}
		return 1
	}
	if a.LineCodeUnit != b.LineCodeUnit {
		if a.LineCodeUnit < b.LineCodeUnit {
			return -1
		}
		return 1
	}
	return 0
}
