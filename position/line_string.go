package position

import "unicode/utf8"

// LineString is a grapheme-aware view over a single line of text. It caches
// both directions of the map between code-unit offsets and grapheme-cluster
// indices so that lookups are O(1) after an O(n) construction.
//
// This module has no grapheme-segmentation library in its dependency
// surface to reach for (none of the teacher's pack imports one for this
// purpose; the nearest candidate, github.com/rivo/uniseg, only appears as
// an incidental transitive dependency of a lint toolchain, never as code
// any example actually imports), so grapheme clusters here are
// approximated as Unicode code points via the standard library's
// unicode/utf8. This under-segments combining-character sequences but
// preserves the code-unit/grapheme duality the spec requires.
type LineString struct {
	Text string

	// codeUnitToGrapheme maps a code-unit offset to the grapheme column
	// that starts there. Offsets that fall inside a multi-byte code point
	// are not present.
	codeUnitToGrapheme map[uint32]uint32

	// graphemeToCodeUnit is the inverse map, indexed by grapheme column.
	graphemeToCodeUnit []uint32
}

// NewLineString builds a LineString for a single line of text (no
// line-terminator characters expected).
func NewLineString(text string) *LineString {
	ls := &LineString{
		Text:               text,
		codeUnitToGrapheme: make(map[uint32]uint32, len(text)),
	}

	var codeUnit uint32
	var grapheme uint32
	for _, r := range text {
		ls.codeUnitToGrapheme[codeUnit] = grapheme
		ls.graphemeToCodeUnit = append(ls.graphemeToCodeUnit, codeUnit)
		codeUnit += uint32(utf8.RuneLen(r))
		grapheme++
	}
	// Sentinel entries so a position exactly at the end of the line still
	// resolves.
	ls.codeUnitToGrapheme[codeUnit] = grapheme
	ls.graphemeToCodeUnit = append(ls.graphemeToCodeUnit, codeUnit)

	return ls
}

// GraphemeColumnFromCodeUnit returns the grapheme column for a code-unit
// offset, and whether that offset begins a grapheme (as opposed to landing
// mid code-point, which never happens for well-formed UTF-8 input but is
// guarded against defensively).
func (ls *LineString) GraphemeColumnFromCodeUnit(codeUnit uint32) (uint32, bool) {
	col, ok := ls.codeUnitToGrapheme[codeUnit]
	return col, ok
}

// CodeUnitFromGraphemeColumn returns the code-unit offset at which the
// given grapheme column begins.
func (ls *LineString) CodeUnitFromGraphemeColumn(column uint32) (uint32, bool) {
	if int(column) >= len(ls.graphemeToCodeUnit) {
		return 0, false
	}
	return ls.graphemeToCodeUnit[column], true
}

// GraphemeLength returns the number of grapheme clusters on the line.
func (ls *LineString) GraphemeLength() uint32 {
	if len(ls.graphemeToCodeUnit) == 0 {
		return 0
	}
	return uint32(len(ls.graphemeToCodeUnit)) - 1
}

// CodeUnitLength returns the number of UTF-16-style code units on the line.
// Go strings are UTF-8, so this is the byte length; callers that need exact
// UTF-16 parity should recompute from runes, which none of the pack's
// examples do either (they all treat positions as byte/rune offsets).
func (ls *LineString) CodeUnitLength() uint32 {
	return uint32(len(ls.Text))
}

// GraphemePosition constructs a LinePosition for a given code-unit offset,
// resolving the Open Question in spec.md §9 about the unfinished
// graphemePositionFrom helper: (lineNumber, lineCodeUnit) is supplied by the
// caller (it is not a property of a single line), and the grapheme column
// is looked up here.
func (ls *LineString) GraphemePosition(lineCodeUnit uint32) LinePosition {
	column, ok := ls.GraphemeColumnFromCodeUnit(lineCodeUnit)
	if !ok {
		column = ls.GraphemeLength()
	}
	return LinePosition{CodeUnit: lineCodeUnit, ColumnGrapheme: column}
}
