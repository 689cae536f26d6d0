package layout

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/muesli/reflow/ansi"
)

// ErrInvalidWrap 表示换行宽度或行数上限不合法。
var ErrInvalidWrap = errors.New("layout: 换行参数无效")

// WrapUnit 决定换行时如何计算“字符宽度”。
type WrapUnit string

const (
	// UnitRune 按字符（rune）计数，每个字符计 1。
	UnitRune WrapUnit = "rune"
	// UnitCell 按终端显示宽度计数，全角字符计 2。
	UnitCell WrapUnit = "cell"
)

// Paragraph 是一段待换行的文本。Width 为每行最大字符数，而非像素宽度；
// 比例字体下各行的实际像素宽度并不相等。
type Paragraph struct {
	Text       string   `json:"text" yaml:"text"`
	Width      int      `json:"width" yaml:"width"`
	LineHeight float64  `json:"lineHeight" yaml:"lineHeight"`
	MaxLines   int      `json:"maxLines" yaml:"maxLines"`
	Unit       WrapUnit `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// Lines 以贪心策略换行，超出 MaxLines 的行被直接丢弃（不加省略号）。
func (p Paragraph) Lines() ([]string, error) {
	if p.Width <= 0 || p.MaxLines < 0 {
		return nil, fmt.Errorf("%w: width=%d maxLines=%d", ErrInvalidWrap, p.Width, p.MaxLines)
	}
	measure := runeWidth
	switch p.Unit {
	case "", UnitRune:
	case UnitCell:
		measure = ansi.PrintableRuneWidth
	default:
		return nil, fmt.Errorf("%w: 未知的宽度单位 %q", ErrInvalidWrap, p.Unit)
	}

	lines := greedyWrap(tokenizeWords(p.Text), p.Width, measure)
	if len(lines) > p.MaxLines {
		lines = lines[:p.MaxLines]
	}
	return lines, nil
}

// WrapText 按字符数换行，最多返回 maxLines 行。
func WrapText(text string, width, maxLines int) ([]string, error) {
	return Paragraph{Text: text, Width: width, MaxLines: maxLines}.Lines()
}

// TextStyle 是绘制文本时使用的字体与颜色。
type TextStyle struct {
	Font  FontRef `json:"font" yaml:"font"`
	Color Color   `json:"color" yaml:"color"`
}

// PlaceParagraph 从 at 开始逐行绘制段落，行距固定为 LineHeight，返回最后一行之下的位置。
func PlaceParagraph(c Canvas, p Paragraph, at Cursor, style TextStyle) (Cursor, error) {
	lines, err := p.Lines()
	if err != nil {
		return at, err
	}
	for _, ln := range lines {
		c.DrawText(at, ln, style.Font, style.Color, AnchorLeftAscender)
		at.Y += p.LineHeight
	}
	return at, nil
}

// wrapToken 是换行的最小单位：一个西文单词或一个 CJK 字符。
type wrapToken struct {
	text        string
	spaceBefore bool
}

func greedyWrap(tokens []wrapToken, width int, measure func(string) int) []string {
	var lines []string
	var builder strings.Builder
	current := 0

	for _, tok := range tokens {
		w := measure(tok.text)
		sep := 0
		if current > 0 && tok.spaceBefore {
			sep = 1
		}
		// 超长单词独占一行，不做拆分
		if current > 0 && current+sep+w > width {
			lines = append(lines, builder.String())
			builder.Reset()
			current = 0
			sep = 0
		}
		if sep > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(tok.text)
		current += sep + w
	}
	if current > 0 {
		lines = append(lines, builder.String())
	}
	return lines
}

// tokenizeWords 把文本拆成单词与 CJK 单字，连续空白折叠为一个分隔标记。
func tokenizeWords(s string) []wrapToken {
	var tokens []wrapToken
	var builder strings.Builder
	pendingSpace := false
	flush := func() {
		if builder.Len() == 0 {
			return
		}
		tokens = append(tokens, wrapToken{text: builder.String(), spaceBefore: pendingSpace})
		builder.Reset()
		pendingSpace = false
	}

	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			flush()
			if len(tokens) > 0 {
				pendingSpace = true
			}
		case isCJK(r):
			flush()
			tokens = append(tokens, wrapToken{text: string(r), spaceBefore: pendingSpace})
			pendingSpace = false
		default:
			builder.WriteRune(r)
		}
	}
	flush()
	return tokens
}

func isCJK(r rune) bool {
	switch {
	case unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul):
		return true
	case r >= 0x3000 && r <= 0x303F: // CJK 符号与标点
		return true
	case r >= 0xFF00 && r <= 0xFFEF: // 全角字符
		return true
	}
	return false
}

func runeWidth(s string) int { return utf8.RuneCountInString(s) }
