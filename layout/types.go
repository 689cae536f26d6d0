package layout

import "image"

// 该文件定义布局结果与资源描述，供排版、渲染与调试输出共用。
// 所有坐标均以像素为单位，原点位于画布左上角，y 轴向下。

// Result 保存单页海报的布局结果。
type Result struct {
	Page        Page         `json:"page" yaml:"page"`
	Resources   ResourceSet  `json:"resources" yaml:"resources"`
	Meta        DocumentMeta `json:"meta" yaml:"meta"`
	Composition *Composition `json:"composition,omitempty" yaml:"composition,omitempty"`
}

// ResourceSet 记录排版时引用的字体。
type ResourceSet struct {
	Fonts map[string]FontResource `json:"fonts" yaml:"fonts"`
}

// FontResource 描述一个已解析的字体来源。Src 可以是文件路径或 builtin:* 形式。
type FontResource struct {
	Name         string `json:"name" yaml:"name"`
	Src          string `json:"src" yaml:"src"`
	Index        int    `json:"index,omitempty" yaml:"index,omitempty"` // 字体集合（.ttc）中的序号
	UsedFallback bool   `json:"usedFallback,omitempty" yaml:"usedFallback,omitempty"`
}

// FontRef 引用 ResourceSet 中的字体，并给出字号（像素，等同于 em 高度）。
type FontRef struct {
	Name string  `json:"name" yaml:"name"`
	Size float64 `json:"size" yaml:"size"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r" yaml:"r"`
	G int `json:"g" yaml:"g"`
	B int `json:"b" yaml:"b"`
}

// Cursor 是顺序排版时的写入位置。每个放置函数接收一个 Cursor 并返回下一个 Cursor。
type Cursor struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Region 是一个只读的矩形区域，用于约束换行边界。
type Region struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Right 返回区域右边界。
func (r Region) Right() float64 { return r.X + r.Width }

// Bottom 返回区域下边界。
func (r Region) Bottom() float64 { return r.Y + r.Height }

// Origin 返回区域左上角。
func (r Region) Origin() Cursor { return Cursor{X: r.X, Y: r.Y} }

// Page 记录画布尺寸与按绘制顺序排列的元素。
type Page struct {
	Width      float64    `json:"width" yaml:"width"`
	Height     float64    `json:"height" yaml:"height"`
	Background Color      `json:"background" yaml:"background"`
	Ops        []Op       `json:"ops" yaml:"ops"`
}

// OpKind 标识一次绘制调用的类型。
type OpKind string

const (
	OpShape OpKind = "shape"
	OpImage OpKind = "image"
	OpText  OpKind = "text"
)

// Op 是一次绘制调用，按 Kind 只设置对应的一个字段。后绘制的元素覆盖先绘制的元素。
type Op struct {
	Kind  OpKind    `json:"kind" yaml:"kind"`
	Shape *Shape    `json:"shape,omitempty" yaml:"shape,omitempty"`
	Image *ImageBox `json:"image,omitempty" yaml:"image,omitempty"`
	Text  *TextBox  `json:"text,omitempty" yaml:"text,omitempty"`
}

// Shapes 按绘制顺序返回页面中的形状。
func (p Page) Shapes() []Shape {
	var out []Shape
	for _, op := range p.Ops {
		if op.Kind == OpShape && op.Shape != nil {
			out = append(out, *op.Shape)
		}
	}
	return out
}

// Images 按绘制顺序返回页面中的位图。
func (p Page) Images() []ImageBox {
	var out []ImageBox
	for _, op := range p.Ops {
		if op.Kind == OpImage && op.Image != nil {
			out = append(out, *op.Image)
		}
	}
	return out
}

// Texts 按绘制顺序返回页面中的文本。
func (p Page) Texts() []TextBox {
	var out []TextBox
	for _, op := range p.Ops {
		if op.Kind == OpText && op.Text != nil {
			out = append(out, *op.Text)
		}
	}
	return out
}

// Shape 表示矩形或圆角矩形（Radius > 0）。
type Shape struct {
	Region      `yaml:",inline"`
	Radius      float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
	Fill        *Color  `json:"fill,omitempty" yaml:"fill,omitempty"`   // 为空表示不填充
	Stroke      *Color  `json:"stroke,omitempty" yaml:"stroke,omitempty"` // 为空表示无描边
	StrokeWidth float64 `json:"strokeWidth,omitempty" yaml:"strokeWidth,omitempty"`
}

// Anchor 决定文本坐标指向文本的哪个位置。
type Anchor string

const (
	// AnchorLeftAscender：坐标为文本左侧、上升部顶端（默认）。
	AnchorLeftAscender Anchor = "la"
	// AnchorMiddle：坐标为文本水平中点与上升部/下降部的垂直中点。
	AnchorMiddle Anchor = "mm"
)

// TextBox 表示单行文本。
type TextBox struct {
	Content string  `json:"content" yaml:"content"`
	X       float64 `json:"x" yaml:"x"`
	Y       float64 `json:"y" yaml:"y"`
	Font    FontRef `json:"font" yaml:"font"`
	Color   Color   `json:"color" yaml:"color"`
	Anchor  Anchor  `json:"anchor,omitempty" yaml:"anchor,omitempty"`
}

// ImageBox 描述一张已解码的位图及其位置与尺寸。
type ImageBox struct {
	Name   string      `json:"name" yaml:"name"`
	X      float64     `json:"x" yaml:"x"`
	Y      float64     `json:"y" yaml:"y"`
	Width  float64     `json:"width" yaml:"width"`
	Height float64     `json:"height" yaml:"height"`
	Image  image.Image `json:"-" yaml:"-"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title" yaml:"title"`
	Author   string   `json:"author" yaml:"author"`
	Subject  string   `json:"subject" yaml:"subject"`
	Creator  string   `json:"creator" yaml:"creator"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}
