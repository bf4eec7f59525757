package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitLen(t *testing.T) {
	tests := []struct {
		name  string
		r     rune
		utf8  int
		utf16 int
		utf32 int
	}{
		{"ascii", 'a', 1, 1, 1},
		{"latin", 'é', 2, 1, 1},
		{"cjk", '世', 3, 1, 1},
		{"astral", '😀', 4, 2, 1},
		{"surrogate half", 0xD800, 3, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.utf8, UTF8.UnitLen(tt.r))
			assert.Equal(t, tt.utf16, UTF16.UnitLen(tt.r))
			assert.Equal(t, tt.utf32, UTF32.UnitLen(tt.r))
		})
	}
	assert.Equal(t, 0, PositionEncodingKind(0).UnitLen('a'))
}

func TestLineLength(t *testing.T) {
	line := "a😀b"
	assert.Equal(t, uint32(6), LineLength(line, UTF8))
	assert.Equal(t, uint32(4), LineLength(line, UTF16))
	assert.Equal(t, uint32(3), LineLength(line, UTF32))

	// A stray byte is one UTF-8 unit and one replacement character otherwise.
	assert.Equal(t, uint32(2), LineLength("a\xff", UTF8))
	assert.Equal(t, uint32(2), LineLength("a\xff", UTF16))
}

func TestConvertCharacter(t *testing.T) {
	const line = "a😀b"

	tests := []struct {
		name     string
		char     uint32
		from, to PositionEncodingKind
		want     uint32
		wantErr  error
	}{
		{"start", 0, UTF16, UTF8, 0, nil},
		{"after emoji utf-16 to utf-8", 3, UTF16, UTF8, 5, nil},
		{"after emoji utf-16 to utf-32", 3, UTF16, UTF32, 2, nil},
		{"after emoji utf-8 to utf-16", 5, UTF8, UTF16, 3, nil},
		{"end utf-32 to utf-8", 3, UTF32, UTF8, 6, nil},
		{"same kind", 4, UTF16, UTF16, 4, nil},
		{"clamps past end", 40, UTF16, UTF8, 6, nil},
		{"inside surrogate pair", 2, UTF16, UTF8, 0, ErrSplitCharacter},
		{"inside utf-8 sequence", 3, UTF8, UTF16, 0, ErrSplitCharacter},
		{"invalid kind", 1, PositionEncodingKind(0), UTF8, 0, ErrInvalidKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertCharacter(line, tt.char, tt.from, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertCharacterASCIIIdentity(t *testing.T) {
	line := "func main() {}"
	for _, from := range PositionEncodingKinds() {
		for _, to := range PositionEncodingKinds() {
			for char := uint32(0); char <= uint32(len(line)); char++ {
				got, err := ConvertCharacter(line, char, from, to)
				require.NoError(t, err)
				assert.Equal(t, char, got)
			}
		}
	}
}

func TestConvertPosition(t *testing.T) {
	text := "first\r\nsé😀x\rthird\nlast"

	got, err := ConvertPosition(text, Position{Line: 1, Character: 4}, UTF16, UTF8)
	require.NoError(t, err)
	assert.Equal(t, Position{Line: 1, Character: 7}, got)

	got, err = ConvertPosition(text, Position{Line: 3, Character: 4}, UTF8, UTF32)
	require.NoError(t, err)
	assert.Equal(t, Position{Line: 3, Character: 4}, got)

	got, err = ConvertPosition(text, Position{Line: 2, Character: 99}, UTF32, UTF16)
	require.NoError(t, err)
	assert.Equal(t, Position{Line: 2, Character: 5}, got)

	_, err = ConvertPosition(text, Position{Line: 4}, UTF16, UTF8)
	assert.ErrorIs(t, err, ErrLineOutOfRange)

	_, err = ConvertPosition(text, Position{Line: 1, Character: 3}, UTF16, UTF8)
	assert.ErrorIs(t, err, ErrSplitCharacter)
	assert.ErrorContains(t, err, "line 1")
}

func TestConvertPositionTrailingNewline(t *testing.T) {
	text := "abc\n"

	got, err := ConvertPosition(text, Position{Line: 1, Character: 0}, UTF16, UTF8)
	require.NoError(t, err)
	assert.Equal(t, Position{Line: 1, Character: 0}, got)

	_, err = ConvertPosition(text, Position{Line: 2}, UTF16, UTF8)
	assert.ErrorIs(t, err, ErrLineOutOfRange)
}

func TestConvertRange(t *testing.T) {
	text := "x😀y\n😀😀"

	got, err := ConvertRange(text, Range{
		Start: Position{Line: 0, Character: 1},
		End:   Position{Line: 1, Character: 4},
	}, UTF16, UTF32)
	require.NoError(t, err)
	assert.Equal(t, Range{
		Start: Position{Line: 0, Character: 1},
		End:   Position{Line: 1, Character: 2},
	}, got)

	_, err = ConvertRange(text, Range{End: Position{Line: 5}}, UTF16, UTF32)
	assert.ErrorIs(t, err, ErrLineOutOfRange)
	assert.ErrorContains(t, err, "range end")
}

func TestEndPosition(t *testing.T) {
	assert.Equal(t, Position{}, EndPosition("", UTF16))
	assert.Equal(t, Position{Line: 0, Character: 4}, EndPosition("a😀b", UTF16))
	assert.Equal(t, Position{Line: 2, Character: 0}, EndPosition("a\r\nb\n", UTF8))
	assert.Equal(t, Position{Line: 1, Character: 6}, EndPosition("x\na😀b", UTF8))
}
