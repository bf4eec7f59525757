package lsp

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

var (
	// ErrSplitCharacter is returned when an offset points into the middle of
	// a character that spans several code units.
	ErrSplitCharacter = errors.New("offset splits a character")

	// ErrLineOutOfRange is returned when a position names a line past the end
	// of the text.
	ErrLineOutOfRange = errors.New("line out of range")
)

// UnitLen returns the number of k code units r occupies. Runes that cannot be
// encoded are measured as U+FFFD.
func (k PositionEncodingKind) UnitLen(r rune) int {
	switch k {
	case UTF8:
		if n := utf8.RuneLen(r); n > 0 {
			return n
		}
		return utf8.RuneLen(utf8.RuneError)
	case UTF16:
		if n := utf16.RuneLen(r); n > 0 {
			return n
		}
		return 1
	case UTF32:
		return 1
	}
	return 0
}

// units measures a rune decoded from text. For UTF8 the source width is used
// so that offsets keep matching the bytes actually present.
func (k PositionEncodingKind) units(r rune, size int) uint32 {
	if k == UTF8 {
		return uint32(size)
	}
	return uint32(k.UnitLen(r))
}

// LineLength returns the length of line in k code units.
func LineLength(line string, k PositionEncodingKind) uint32 {
	var n uint32
	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		n += k.units(r, size)
		i += size
	}
	return n
}

func checkKinds(kinds ...PositionEncodingKind) error {
	for _, k := range kinds {
		if !k.IsValid() {
			return fmt.Errorf("%w: %d", ErrInvalidKind, uint8(k))
		}
	}
	return nil
}

// ConvertCharacter converts a character offset within a single line from one
// encoding to another. Offsets past the end of the line clamp to its length.
func ConvertCharacter(line string, char uint32, from, to PositionEncodingKind) (uint32, error) {
	if err := checkKinds(from, to); err != nil {
		return 0, err
	}

	var fromUnits, toUnits uint32
	for i := 0; i < len(line) && fromUnits < char; {
		r, size := utf8.DecodeRuneInString(line[i:])
		fu := from.units(r, size)
		if fromUnits+fu > char {
			return 0, fmt.Errorf("%w: %s offset %d", ErrSplitCharacter, from, char)
		}
		fromUnits += fu
		toUnits += to.units(r, size)
		i += size
	}
	return toUnits, nil
}

// lineAt returns line n of text without its terminator. Lines end at "\n",
// "\r\n" or "\r".
func lineAt(text string, n uint32) (string, error) {
	var line uint32
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '\n' && c != '\r' {
			continue
		}
		if line == n {
			return text[start:i], nil
		}
		if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
			i++
		}
		line++
		start = i + 1
	}
	if line == n {
		return text[start:], nil
	}
	return "", fmt.Errorf("%w: line %d, text has %d", ErrLineOutOfRange, n, line+1)
}

// ConvertPosition converts pos, expressed in from code units over text, into
// to code units.
func ConvertPosition(text string, pos Position, from, to PositionEncodingKind) (Position, error) {
	line, err := lineAt(text, pos.Line)
	if err != nil {
		return Position{}, err
	}
	char, err := ConvertCharacter(line, pos.Character, from, to)
	if err != nil {
		return Position{}, fmt.Errorf("line %d: %w", pos.Line, err)
	}
	return Position{Line: pos.Line, Character: char}, nil
}

// ConvertRange converts both ends of r.
func ConvertRange(text string, r Range, from, to PositionEncodingKind) (Range, error) {
	start, err := ConvertPosition(text, r.Start, from, to)
	if err != nil {
		return Range{}, fmt.Errorf("range start: %w", err)
	}
	end, err := ConvertPosition(text, r.End, from, to)
	if err != nil {
		return Range{}, fmt.Errorf("range end: %w", err)
	}
	return Range{Start: start, End: end}, nil
}

// EndPosition returns the position just past the last character of text.
func EndPosition(text string, k PositionEncodingKind) Position {
	var line uint32
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '\n' && c != '\r' {
			continue
		}
		if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
			i++
		}
		line++
		start = i + 1
	}
	return Position{Line: line, Character: LineLength(text[start:], k)}
}
