package layout

import "fmt"

// Canvas 是排版所依赖的绘图能力：绘制矩形、圆角矩形、文本与位图，并测量文本宽度。
type Canvas interface {
	DrawRectangle(region Region, fill, outline *Color, strokeWidth float64)
	DrawRoundedRectangle(region Region, radius float64, fill, outline *Color, strokeWidth float64)
	DrawText(at Cursor, content string, font FontRef, fill Color, anchor Anchor)
	DrawImage(img ImageBox)
	MeasureTextWidth(content string, font FontRef) (float64, error)
}

// Recorder 把绘制调用按顺序记录到 Result 中，测量委托给 Measurer。
type Recorder struct {
	result   *Result
	measurer Measurer
}

var _ Canvas = (*Recorder)(nil)

// NewRecorder 创建一个指定尺寸与背景色的记录画布。
func NewRecorder(width, height float64, background Color, fonts map[string]FontResource, m Measurer) *Recorder {
	if fonts == nil {
		fonts = map[string]FontResource{}
	}
	return &Recorder{
		result: &Result{
			Page: Page{
				Width:      width,
				Height:     height,
				Background: background,
			},
			Resources: ResourceSet{Fonts: fonts},
		},
		measurer: m,
	}
}

// Result 返回记录至今的布局结果。
func (r *Recorder) Result() *Result { return r.result }

func (r *Recorder) DrawRectangle(region Region, fill, outline *Color, strokeWidth float64) {
	r.push(Op{Kind: OpShape, Shape: &Shape{
		Region:      region,
		Fill:        fill,
		Stroke:      outline,
		StrokeWidth: strokeWidth,
	}})
}

func (r *Recorder) DrawRoundedRectangle(region Region, radius float64, fill, outline *Color, strokeWidth float64) {
	r.push(Op{Kind: OpShape, Shape: &Shape{
		Region:      region,
		Radius:      radius,
		Fill:        fill,
		Stroke:      outline,
		StrokeWidth: strokeWidth,
	}})
}

func (r *Recorder) DrawText(at Cursor, content string, font FontRef, fill Color, anchor Anchor) {
	if anchor == "" {
		anchor = AnchorLeftAscender
	}
	r.push(Op{Kind: OpText, Text: &TextBox{
		Content: content,
		X:       at.X,
		Y:       at.Y,
		Font:    font,
		Color:   fill,
		Anchor:  anchor,
	}})
}

func (r *Recorder) DrawImage(img ImageBox) {
	r.push(Op{Kind: OpImage, Image: &img})
}

func (r *Recorder) push(op Op) {
	r.result.Page.Ops = append(r.result.Page.Ops, op)
}

// MeasureTextWidth 查找字体资源并交给 Measurer 测量。
func (r *Recorder) MeasureTextWidth(content string, font FontRef) (float64, error) {
	if r.measurer == nil {
		return 0, fmt.Errorf("layout: 缺少测量后端 Measurer")
	}
	res, ok := r.result.Resources.Fonts[font.Name]
	if !ok {
		return 0, fmt.Errorf("未声明的字体 %s", font.Name)
	}
	return r.measurer.TextWidth(content, res, font.Size)
}
