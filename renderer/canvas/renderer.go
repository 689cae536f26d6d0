package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/poster/fonts"
	"github.com/ByLCY/poster/layout"
	"github.com/ByLCY/poster/renderer"
)

// Renderer 使用 github.com/tdewolff/canvas 绘制布局结果并栅格化为 PNG。
// 1 像素对应 canvas 的 1 毫米，栅格化分辨率固定为 1 像素/毫米。
type Renderer struct {
	provider fonts.Provider

	fontMu       sync.Mutex
	fontFamilies map[string]*canvas.FontFamily
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Measurer   = (*Renderer)(nil)
)

// NewRenderer 创建渲染器，字体数据由 provider 提供。
func NewRenderer(provider fonts.Provider) *Renderer {
	return &Renderer{
		provider:     provider,
		fontFamilies: map[string]*canvas.FontFamily{},
	}
}

// TextWidth 实现 layout.Measurer，返回文本在给定字号（像素）下的宽度（像素）。
func (r *Renderer) TextWidth(content string, font layout.FontResource, size float64) (float64, error) {
	face, err := r.fontFace(font, size, layout.Color{})
	if err != nil {
		return 0, err
	}
	return face.TextWidth(content), nil
}

// Render 绘制页面并返回 PNG 数据。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	img, err := r.Rasterize(result)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// Rasterize 绘制页面并返回位图。
func (r *Renderer) Rasterize(result *layout.Result) (*image.RGBA, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	page := result.Page
	if page.Width <= 0 || page.Height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %gx%g", page.Width, page.Height)
	}

	c := canvas.New(page.Width, page.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	if err := r.drawPage(ctx, page, result.Resources); err != nil {
		return nil, err
	}
	return rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace), nil
}

func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page, resources layout.ResourceSet) error {
	ctx.SetFillColor(colorFromLayout(page.Background))
	ctx.SetStrokeColor(canvas.Transparent)
	ctx.DrawPath(0, 0, canvas.Rectangle(page.Width, page.Height))

	// 严格按记录顺序回放，后绘制的元素覆盖先绘制的元素
	for i, op := range page.Ops {
		switch {
		case op.Kind == layout.OpShape && op.Shape != nil:
			drawShape(ctx, *op.Shape)
		case op.Kind == layout.OpImage && op.Image != nil:
			drawImage(ctx, *op.Image)
		case op.Kind == layout.OpText && op.Text != nil:
			tb := *op.Text
			font, ok := resources.Fonts[tb.Font.Name]
			if !ok {
				return fmt.Errorf("文本 %q 引用了未声明的字体 %s", tb.Content, tb.Font.Name)
			}
			if err := r.drawTextBox(ctx, tb, font); err != nil {
				return err
			}
		default:
			return fmt.Errorf("第 %d 个绘制操作无效: kind=%q", i, op.Kind)
		}
	}
	return nil
}

// drawShape 先填充整个区域，再沿内缩半个线宽的路径描边，使描边落在区域之内。
func drawShape(ctx *canvas.Context, s layout.Shape) {
	if s.Fill != nil {
		ctx.SetFillColor(colorFromLayout(*s.Fill))
		ctx.SetStrokeColor(canvas.Transparent)
		ctx.DrawPath(s.X, s.Y, shapePath(s.Width, s.Height, s.Radius))
	}
	if s.Stroke == nil || s.StrokeWidth <= 0 {
		return
	}
	half := s.StrokeWidth / 2
	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(colorFromLayout(*s.Stroke))
	ctx.SetStrokeWidth(s.StrokeWidth)
	ctx.DrawPath(s.X+half, s.Y+half, shapePath(s.Width-s.StrokeWidth, s.Height-s.StrokeWidth, math.Max(s.Radius-half, 0)))
}

func shapePath(w, h, radius float64) *canvas.Path {
	if radius > 0 {
		return canvas.RoundedRectangle(w, h, radius)
	}
	return canvas.Rectangle(w, h)
}

func drawImage(ctx *canvas.Context, img layout.ImageBox) {
	if img.Image == nil {
		return
	}
	width := img.Width
	if width <= 0 {
		width = float64(img.Image.Bounds().Dx())
	}
	dpmm := float64(img.Image.Bounds().Dx()) / width
	if dpmm <= 0 {
		dpmm = 1
	}
	ctx.DrawImage(img.X, img.Y, img.Image, canvas.DPMM(dpmm))
}

func (r *Renderer) drawTextBox(ctx *canvas.Context, tb layout.TextBox, font layout.FontResource) error {
	face, err := r.fontFace(font, tb.Font.Size, tb.Color)
	if err != nil {
		return err
	}
	metrics := face.Metrics()
	ascent, descent := metrics.Ascent, math.Abs(metrics.Descent)

	// 基线位置：la 为行顶部加上升部；mm 为上升部与下降部的中点
	var line *canvas.Text
	var baseline float64
	switch tb.Anchor {
	case layout.AnchorMiddle:
		line = canvas.NewTextLine(face, tb.Content, canvas.Center)
		baseline = tb.Y + (ascent-descent)/2
	default:
		line = canvas.NewTextLine(face, tb.Content, canvas.Left)
		baseline = tb.Y + ascent
	}
	ctx.DrawText(tb.X, baseline, line)
	return nil
}

// fontFace 以像素字号创建字体面。canvas 的字号单位为 pt，这里做一次 px→pt。
func (r *Renderer) fontFace(font layout.FontResource, sizePx float64, col layout.Color) (*canvas.FontFace, error) {
	family, err := r.ensureFontFamily(font)
	if err != nil {
		return nil, err
	}
	return family.Face(layout.PxToPt(sizePx), colorFromLayout(col), canvas.FontRegular, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(font layout.FontResource) (*canvas.FontFamily, error) {
	key := fontCacheKey(font)
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.fontFamilies[key]; ok {
		return family, nil
	}
	if r.provider == nil {
		return nil, fmt.Errorf("渲染器缺少字体提供者")
	}
	data, err := r.provider.Load(font.Src)
	if err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", font.Name, err)
	}
	family := canvas.NewFontFamily(font.Name)
	if err := family.LoadFont(data, font.Index, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("解析字体 %s (%s) 失败: %w", font.Name, font.Src, err)
	}
	r.fontFamilies[key] = family
	return family, nil
}

func fontCacheKey(font layout.FontResource) string {
	return fmt.Sprintf("%s|%d", font.Src, font.Index)
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
