package layout

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapTextEmptyParagraph(t *testing.T) {
	lines, err := WrapText("", 10, 6)
	require.NoError(t, err)
	assert.Empty(t, lines)

	c := &fakeCanvas{}
	next, err := PlaceParagraph(c, Paragraph{Width: 10, LineHeight: 34, MaxLines: 6}, Cursor{X: 5, Y: 7}, TextStyle{})
	require.NoError(t, err)
	assert.Empty(t, c.texts)
	assert.Equal(t, Cursor{X: 5, Y: 7}, next)
}

func TestWrapTextExactBudget(t *testing.T) {
	lines, err := WrapText("abcdefghij klmno", 10, 6)
	require.NoError(t, err)
	assert.Equal(t, []string{"abcdefghij", "klmno"}, lines)
}

func TestWrapTextTruncatesToMaxLines(t *testing.T) {
	all, err := WrapText("aaaa bbbb cccc dddd eeee", 4, 10)
	require.NoError(t, err)
	require.Len(t, all, 5)

	lines, err := WrapText("aaaa bbbb cccc dddd eeee", 4, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"aaaa", "bbbb"}, lines)

	lines, err = WrapText("aaaa bbbb", 4, 0)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestWrapTextLongWordStaysWhole(t *testing.T) {
	lines, err := WrapText("hi supercalifragilistic yo", 5, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"hi", "supercalifragilistic", "yo"}, lines)
}

func TestWrapTextCJK(t *testing.T) {
	lines, err := WrapText("肾小球疾病肾移植", 3, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"肾小球", "疾病肾", "移植"}, lines)

	lines, err = WrapText("AI 肾病", 3, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"AI", "肾病"}, lines)
}

func TestWrapTextCollapsesWhitespace(t *testing.T) {
	lines, err := WrapText("  a   b\n\n c  ", 10, 6)
	require.NoError(t, err)
	assert.Equal(t, []string{"a b c"}, lines)
}

func TestWrapTextInvalidArguments(t *testing.T) {
	_, err := WrapText("abc", 0, 6)
	assert.ErrorIs(t, err, ErrInvalidWrap)

	_, err = WrapText("abc", 10, -1)
	assert.ErrorIs(t, err, ErrInvalidWrap)

	_, err = Paragraph{Text: "abc", Width: 10, MaxLines: 1, Unit: "px"}.Lines()
	assert.ErrorIs(t, err, ErrInvalidWrap)
}

func TestWrapCellUnitCountsFullWidthAsTwo(t *testing.T) {
	lines, err := Paragraph{Text: "肾小球疾病", Width: 4, MaxLines: 10, Unit: UnitCell}.Lines()
	require.NoError(t, err)
	assert.Equal(t, []string{"肾小", "球疾", "病"}, lines)
}

func TestWrapLinesRespectWidth(t *testing.T) {
	text := DefaultConfig().Content.Intro
	for _, width := range []int{1, 5, 12, 28, 40} {
		lines, err := WrapText(text, width, 100)
		require.NoError(t, err)
		for _, ln := range lines {
			n := utf8.RuneCountInString(ln)
			// 只有不可拆分的单个单词才允许超出
			if n > width {
				assert.NotContains(t, ln, " ", "width=%d line=%q", width, ln)
			}
		}
	}
}

func TestDefaultIntroFillsSixLines(t *testing.T) {
	w := DefaultConfig().Wrap
	lines, err := Paragraph{Text: DefaultConfig().Content.Intro, Width: w.Width, MaxLines: w.MaxLines, Unit: w.Unit}.Lines()
	require.NoError(t, err)
	require.Len(t, lines, 6)
	for _, ln := range lines {
		assert.LessOrEqual(t, utf8.RuneCountInString(ln), w.Width)
	}
}

func TestPlaceParagraphAdvancesByLineHeight(t *testing.T) {
	c := &fakeCanvas{}
	style := TextStyle{Font: FontRef{Name: FontRegular, Size: 22}, Color: Color{51, 65, 85}}
	p := Paragraph{Text: "aaaa bbbb cccc", Width: 4, LineHeight: 34, MaxLines: 6}

	next, err := PlaceParagraph(c, p, Cursor{X: 100, Y: 428}, style)
	require.NoError(t, err)
	require.Len(t, c.texts, 3)
	for i, tb := range c.texts {
		assert.Equal(t, 100.0, tb.X)
		assert.Equal(t, 428+34*float64(i), tb.Y)
		assert.Equal(t, AnchorLeftAscender, tb.Anchor)
		assert.Equal(t, style.Font, tb.Font)
	}
	assert.Equal(t, Cursor{X: 100, Y: 428 + 3*34}, next)
}
