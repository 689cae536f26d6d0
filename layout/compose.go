package layout

import (
	"fmt"
	"math"
)

// Composition 汇总 Compose 过程中各个区块的位置，便于调试与测试。
type Composition struct {
	TitleX     float64  `json:"titleX" yaml:"titleX"`
	Cards      []Region `json:"cards" yaml:"cards"`
	IntroLines []string `json:"introLines" yaml:"introLines"`
	Chips      ChipFlow `json:"chips" yaml:"chips"`
	Badge      Region   `json:"badge" yaml:"badge"`
	QR         Region   `json:"qr" yaml:"qr"`
}

// Build 在记录画布上完成整张海报的排版并返回布局结果。
func Build(cfg Config, opts BuildOptions) (*Result, error) {
	if opts.Measurer == nil {
		return nil, fmt.Errorf("layout: 缺少测量后端 Measurer")
	}
	rec := NewRecorder(cfg.Width, cfg.Height, cfg.Theme.Background, opts.Fonts, opts.Measurer)
	comp, err := Compose(rec, cfg, opts.Compose)
	if err != nil {
		return nil, err
	}
	res := rec.Result()
	res.Meta = cfg.Meta
	res.Composition = comp
	return res, nil
}

// Compose 按固定几何依次绘制页眉、三张卡片与页脚。卡片自上而下累加：
// 每张卡片的 y 等于上一张的 y 加其高度再加固定间距。
func Compose(c Canvas, cfg Config, opts ComposeOptions) (*Composition, error) {
	comp := &Composition{}
	composeHeader(c, cfg, opts, comp)

	at := Cursor{X: cfg.Geometry.Margin, Y: cfg.Geometry.HeaderHeight + cfg.Geometry.FirstCardGap}
	steps := []func(Canvas, Config, Region, *Composition) error{
		composeIntro,
		composeTopics,
		composeRegistration,
	}
	for i, step := range steps {
		var card Region
		card, at = placeCard(c, cfg, at, cfg.Geometry.CardHeights[i])
		comp.Cards = append(comp.Cards, card)
		if err := step(c, cfg, card, comp); err != nil {
			return nil, err
		}
	}

	composeFooter(c, cfg)
	return comp, nil
}

func composeHeader(c Canvas, cfg Config, opts ComposeOptions, comp *Composition) {
	g, th, sz := cfg.Geometry, cfg.Theme, cfg.Sizes
	navy, teal := th.Navy, th.Teal
	c.DrawRectangle(Region{Width: cfg.Width, Height: g.HeaderHeight}, &navy, nil, 0)
	c.DrawRectangle(Region{Y: g.HeaderHeight - g.StripeHeight, Width: cfg.Width, Height: g.StripeHeight}, &teal, nil, 0)

	titleX := g.Margin
	if opts.Logo != nil {
		c.DrawImage(ImageBox{
			Name:   "logo",
			X:      g.Margin,
			Y:      g.LogoY,
			Width:  g.LogoSize,
			Height: g.LogoSize,
			Image:  opts.Logo,
		})
		titleX = g.Margin + g.LogoSize + g.LogoGap
	}
	comp.TitleX = titleX

	ct := cfg.Content
	c.DrawText(Cursor{X: titleX, Y: g.TitleY}, ct.Title, FontRef{Name: FontBold, Size: sz.Title}, th.White, AnchorLeftAscender)
	c.DrawText(Cursor{X: g.Margin, Y: g.SubtitleY}, ct.Subtitle, FontRef{Name: FontRegular, Size: sz.Sub}, th.White, AnchorLeftAscender)
	c.DrawText(Cursor{X: g.Margin, Y: g.TaglineY}, ct.Tagline, FontRef{Name: FontRegular, Size: sz.Tag}, th.Tagline, AnchorLeftAscender)
}

// placeCard 绘制一张圆角卡片，返回卡片区域与下一张卡片的起点。
func placeCard(c Canvas, cfg Config, at Cursor, height float64) (Region, Cursor) {
	g := cfg.Geometry
	card := Region{X: at.X, Y: at.Y, Width: cfg.ContentRegion().Width, Height: height}
	white, line := cfg.Theme.White, cfg.Theme.Line
	c.DrawRoundedRectangle(card, g.CardRadius, &white, &line, g.CardStroke)
	return card, Cursor{X: at.X, Y: card.Bottom() + g.CardGap}
}

// cardInner 返回卡片左右内边距之内的区域。
func cardInner(cfg Config, card Region) Region {
	pad := cfg.Geometry.CardPadX
	return Region{X: card.X + pad, Y: card.Y, Width: card.Width - 2*pad, Height: card.Height}
}

func drawHeading(c Canvas, cfg Config, card Region, title string) {
	inner := cardInner(cfg, card)
	c.DrawText(Cursor{X: inner.X, Y: card.Y + cfg.Geometry.HeadingY}, title,
		FontRef{Name: FontBold, Size: cfg.Sizes.Heading}, cfg.Theme.Ink, AnchorLeftAscender)
}

func composeIntro(c Canvas, cfg Config, card Region, comp *Composition) error {
	drawHeading(c, cfg, card, cfg.Content.IntroHeading)
	inner := cardInner(cfg, card)
	p := Paragraph{
		Text:       cfg.Content.Intro,
		Width:      cfg.Wrap.Width,
		LineHeight: cfg.Wrap.LineHeight,
		MaxLines:   cfg.Wrap.MaxLines,
		Unit:       cfg.Wrap.Unit,
	}
	lines, err := p.Lines()
	if err != nil {
		return fmt.Errorf("简介换行失败: %w", err)
	}
	comp.IntroLines = lines
	style := TextStyle{Font: FontRef{Name: FontRegular, Size: cfg.Sizes.Body}, Color: cfg.Theme.Muted}
	_, err = PlaceParagraph(c, p, Cursor{X: inner.X, Y: card.Y + cfg.Geometry.IntroTextY}, style)
	return err
}

func composeTopics(c Canvas, cfg Config, card Region, comp *Composition) error {
	drawHeading(c, cfg, card, cfg.Content.TopicsHeading)
	inner := cardInner(cfg, card)
	ch := cfg.Chips
	style := ChipStyle{
		Font:        FontRef{Name: FontRegular, Size: cfg.Sizes.Chip},
		PadX:        ch.PadX,
		PadY:        ch.PadY,
		GapX:        ch.GapX,
		GapY:        ch.GapY,
		Radius:      ch.Radius,
		Fill:        cfg.Theme.ChipBg,
		Border:      cfg.Theme.ChipBorder,
		StrokeWidth: cfg.Geometry.CardStroke,
		TextColor:   cfg.Theme.Navy,
		TextNudgeY:  ch.TextNudgeY,
	}
	flow, err := FlowChips(c, cfg.Content.Topics, style, inner, Cursor{X: inner.X, Y: card.Y + cfg.Geometry.ChipsY})
	if err != nil {
		return err
	}
	comp.Chips = flow

	c.DrawText(Cursor{X: inner.X, Y: card.Bottom() - cfg.Geometry.FormatBottom}, cfg.Content.Format,
		FontRef{Name: FontRegular, Size: cfg.Sizes.Body}, cfg.Theme.Muted, AnchorLeftAscender)
	return nil
}

func composeRegistration(c Canvas, cfg Config, card Region, comp *Composition) error {
	g, th, sz, ct := cfg.Geometry, cfg.Theme, cfg.Sizes, cfg.Content
	drawHeading(c, cfg, card, ct.RegHeading)
	inner := cardInner(cfg, card)

	// 徽标宽度与单个胶囊同理：文字宽度加两侧内边距，右对齐到卡片内边界。
	badgeFont := FontRef{Name: FontRegular, Size: sz.Badge}
	tw, err := c.MeasureTextWidth(ct.Badge, badgeFont)
	if err != nil {
		return fmt.Errorf("测量徽标文字失败: %w", err)
	}
	bw := math.Floor(tw + g.BadgePadX*2)
	badge := Region{X: inner.Right() - bw, Y: card.Y + g.BadgeY, Width: bw, Height: g.BadgeHeight}
	amberBg, amberBorder := th.AmberBg, th.AmberBorder
	c.DrawRoundedRectangle(badge, g.BadgeRadius, &amberBg, &amberBorder, g.CardStroke)
	c.DrawText(Cursor{X: badge.X + g.BadgePadX, Y: badge.Y + g.BadgeTextY}, ct.Badge, badgeFont, th.AmberText, AnchorLeftAscender)
	comp.Badge = badge

	c.DrawText(Cursor{X: inner.X, Y: card.Y + g.LeadY}, ct.RegLead, FontRef{Name: FontBold, Size: sz.Lead}, th.Ink, AnchorLeftAscender)
	c.DrawText(Cursor{X: inner.X, Y: card.Y + g.NoteY}, ct.RegNote, FontRef{Name: FontRegular, Size: sz.Body}, th.Muted, AnchorLeftAscender)

	qr := Region{
		X:      inner.Right() - g.QRSize,
		Y:      card.Bottom() - g.QRInset - g.QRSize,
		Width:  g.QRSize,
		Height: g.QRSize,
	}
	white, line := th.White, th.Line
	c.DrawRectangle(qr, &white, &line, g.CardStroke)
	center := Cursor{X: qr.X + math.Floor(g.QRSize/2), Y: qr.Y + math.Floor(g.QRSize/2)}
	c.DrawText(Cursor{X: center.X, Y: center.Y - g.QRCaptionShift}, ct.QRCaption[0], FontRef{Name: FontRegular, Size: sz.Small}, th.Caption, AnchorMiddle)
	c.DrawText(Cursor{X: center.X, Y: center.Y + g.QRCaptionShift}, ct.QRCaption[1], FontRef{Name: FontRegular, Size: sz.Caption}, th.Caption, AnchorMiddle)
	comp.QR = qr
	return nil
}

func composeFooter(c Canvas, cfg Config) {
	g, th, sz, ct := cfg.Geometry, cfg.Theme, cfg.Sizes, cfg.Content
	y := cfg.Height - g.FooterBottom
	c.DrawText(Cursor{X: g.Margin, Y: y}, ct.Footer, FontRef{Name: FontRegular, Size: sz.Small}, th.Footer, AnchorLeftAscender)
	c.DrawText(Cursor{X: g.Margin, Y: y + g.FooterGap}, ct.Disclaimer, FontRef{Name: FontRegular, Size: sz.Fine}, th.Caption, AnchorLeftAscender)
}
