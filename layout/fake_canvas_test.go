package layout

import (
	"fmt"
	"unicode/utf8"
)

// fakeCanvas 记录绘制调用，文本宽度由 measure 决定（默认每个字符 10 像素）。
type fakeCanvas struct {
	measure func(content string, font FontRef) (float64, error)

	rects   []Shape
	rounded []Shape
	texts   []TextBox
	images  []ImageBox
}

var _ Canvas = (*fakeCanvas)(nil)

func (f *fakeCanvas) DrawRectangle(region Region, fill, outline *Color, strokeWidth float64) {
	f.rects = append(f.rects, Shape{Region: region, Fill: fill, Stroke: outline, StrokeWidth: strokeWidth})
}

func (f *fakeCanvas) DrawRoundedRectangle(region Region, radius float64, fill, outline *Color, strokeWidth float64) {
	f.rounded = append(f.rounded, Shape{Region: region, Radius: radius, Fill: fill, Stroke: outline, StrokeWidth: strokeWidth})
}

func (f *fakeCanvas) DrawText(at Cursor, content string, font FontRef, fill Color, anchor Anchor) {
	f.texts = append(f.texts, TextBox{Content: content, X: at.X, Y: at.Y, Font: font, Color: fill, Anchor: anchor})
}

func (f *fakeCanvas) DrawImage(img ImageBox) { f.images = append(f.images, img) }

func (f *fakeCanvas) MeasureTextWidth(content string, font FontRef) (float64, error) {
	if f.measure != nil {
		return f.measure(content, font)
	}
	return float64(utf8.RuneCountInString(content)) * 10, nil
}

// fixedWidth 让每个标签测得相同宽度，"huge" 除外。
func fixedWidth(w, huge float64) func(string, FontRef) (float64, error) {
	return func(content string, _ FontRef) (float64, error) {
		if content == "huge" {
			return huge, nil
		}
		return w, nil
	}
}

// halfEm 是供 Build 使用的测量后端：每个字符宽半个字号。
type halfEm struct{}

func (halfEm) TextWidth(content string, font FontResource, size float64) (float64, error) {
	if font.Src == "" {
		return 0, fmt.Errorf("字体 %s 缺少来源", font.Name)
	}
	return float64(utf8.RuneCountInString(content)) * size / 2, nil
}

func testFonts() map[string]FontResource {
	return map[string]FontResource{
		FontRegular: {Name: FontRegular, Src: "builtin:goregular"},
		FontBold:    {Name: FontBold, Src: "builtin:gobold"},
	}
}
