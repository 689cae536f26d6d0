package layout

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStacksCardsAdditively(t *testing.T) {
	cfg := DefaultConfig()
	res, err := Build(cfg, BuildOptions{Measurer: halfEm{}, Fonts: testFonts()})
	require.NoError(t, err)
	comp := res.Composition
	require.NotNil(t, comp)
	require.Len(t, comp.Cards, 3)

	g := cfg.Geometry
	assert.Equal(t, g.HeaderHeight+g.FirstCardGap, comp.Cards[0].Y)
	for i, card := range comp.Cards {
		assert.Equal(t, g.Margin, card.X)
		assert.Equal(t, cfg.Width-2*g.Margin, card.Width)
		assert.Equal(t, g.CardHeights[i], card.Height)
		if i > 0 {
			assert.Equal(t, comp.Cards[i-1].Bottom()+g.CardGap, card.Y)
		}
	}
	assert.Equal(t, []float64{338, 658, 938}, []float64{comp.Cards[0].Y, comp.Cards[1].Y, comp.Cards[2].Y})

	assert.Equal(t, cfg.Meta, res.Meta)
	assert.Equal(t, 1080.0, res.Page.Width)
	assert.Equal(t, 1350.0, res.Page.Height)
	assert.Equal(t, cfg.Theme.Background, res.Page.Background)
}

func TestBuildRegistrationCard(t *testing.T) {
	cfg := DefaultConfig()
	res, err := Build(cfg, BuildOptions{Measurer: halfEm{}, Fonts: testFonts()})
	require.NoError(t, err)
	comp := res.Composition
	card := comp.Cards[2]
	innerRight := card.Right() - cfg.Geometry.CardPadX

	// 徽标宽度 = floor(6 个字 × 10px + 2 × 28)
	assert.Equal(t, Region{X: innerRight - 116, Y: card.Y + 30, Width: 116, Height: 42}, comp.Badge)
	assert.Equal(t, Region{X: 810, Y: 1070, Width: 170, Height: 170}, comp.QR)

	var captions []TextBox
	for _, tb := range res.Page.Texts() {
		if tb.Anchor == AnchorMiddle {
			captions = append(captions, tb)
		}
	}
	require.Len(t, captions, 2)
	assert.Equal(t, Cursor{X: 895, Y: 1141}, Cursor{X: captions[0].X, Y: captions[0].Y})
	assert.Equal(t, Cursor{X: 895, Y: 1169}, Cursor{X: captions[1].X, Y: captions[1].Y})
	assert.Equal(t, cfg.Content.QRCaption[0], captions[0].Content)
}

func TestBuildIntroAndChips(t *testing.T) {
	cfg := DefaultConfig()
	res, err := Build(cfg, BuildOptions{Measurer: halfEm{}, Fonts: testFonts()})
	require.NoError(t, err)
	comp := res.Composition

	assert.Len(t, comp.IntroLines, cfg.Wrap.MaxLines)
	require.Len(t, comp.Chips.Chips, len(cfg.Content.Topics))
	first := comp.Chips.Chips[0].Box
	assert.Equal(t, 100.0, first.X)
	assert.Equal(t, comp.Cards[1].Y+cfg.Geometry.ChipsY, first.Y)
	// 胶囊高度 = floor(22 + 2 × 12)
	assert.Equal(t, 46.0, first.Height)
	for _, chip := range comp.Chips.Chips {
		assert.LessOrEqual(t, chip.Box.Right(), comp.Cards[1].Right()-cfg.Geometry.CardPadX)
	}
}

func TestBuildHeaderAndFooter(t *testing.T) {
	cfg := DefaultConfig()
	res, err := Build(cfg, BuildOptions{Measurer: halfEm{}, Fonts: testFonts()})
	require.NoError(t, err)

	assert.Equal(t, cfg.Geometry.Margin, res.Composition.TitleX)
	assert.Empty(t, res.Page.Images())

	header := res.Page.Shapes()[0]
	assert.Equal(t, Region{Width: 1080, Height: 310}, header.Region)
	assert.Equal(t, cfg.Theme.Navy, *header.Fill)
	stripe := res.Page.Shapes()[1]
	assert.Equal(t, Region{Y: 300, Width: 1080, Height: 10}, stripe.Region)

	title := res.Page.Texts()[0]
	assert.Equal(t, cfg.Content.Title, title.Content)
	assert.Equal(t, FontBold, title.Font.Name)
	assert.Equal(t, Cursor{X: 72, Y: 44}, Cursor{X: title.X, Y: title.Y})

	texts := res.Page.Texts()
	footer, disclaimer := texts[len(texts)-2], texts[len(texts)-1]
	assert.Equal(t, 1298.0, footer.Y)
	assert.Equal(t, 1320.0, disclaimer.Y)
	assert.Equal(t, cfg.Content.Disclaimer, disclaimer.Content)
}

func TestBuildLogoShiftsTitle(t *testing.T) {
	cfg := DefaultConfig()
	logo := image.NewRGBA(image.Rect(0, 0, 64, 64))
	res, err := Build(cfg, BuildOptions{
		Measurer: halfEm{},
		Fonts:    testFonts(),
		Compose:  ComposeOptions{Logo: logo},
	})
	require.NoError(t, err)

	require.Len(t, res.Page.Images(), 1)
	img := res.Page.Images()[0]
	assert.Equal(t, ImageBox{Name: "logo", X: 72, Y: 32, Width: 64, Height: 64, Image: logo}, img)
	assert.Equal(t, 154.0, res.Composition.TitleX)
	assert.Equal(t, 154.0, res.Page.Texts()[0].X)
	assert.Equal(t, 72.0, res.Page.Texts()[1].X, "subtitle stays at the margin")
}

func TestRecorderKeepsCallOrder(t *testing.T) {
	white := Color{R: 255, G: 255, B: 255}
	rec := NewRecorder(100, 100, white, nil, nil)
	rec.DrawText(Cursor{X: 1, Y: 1}, "under", FontRef{Name: FontRegular, Size: 10}, Color{}, "")
	rec.DrawRectangle(Region{Width: 50, Height: 50}, &white, nil, 0)
	rec.DrawImage(ImageBox{Name: "logo"})
	rec.DrawText(Cursor{X: 2, Y: 2}, "over", FontRef{Name: FontRegular, Size: 10}, Color{}, AnchorMiddle)

	var kinds []OpKind
	for _, op := range rec.Result().Page.Ops {
		kinds = append(kinds, op.Kind)
	}
	assert.Equal(t, []OpKind{OpText, OpShape, OpImage, OpText}, kinds)
	texts := rec.Result().Page.Texts()
	require.Len(t, texts, 2)
	assert.Equal(t, AnchorLeftAscender, texts[0].Anchor)
	assert.Equal(t, "over", texts[1].Content)
}

func TestBuildQRBoxPaintedAfterRegistrationNote(t *testing.T) {
	cfg := DefaultConfig()
	res, err := Build(cfg, BuildOptions{Measurer: halfEm{}, Fonts: testFonts()})
	require.NoError(t, err)

	noteAt, qrAt := -1, -1
	for i, op := range res.Page.Ops {
		switch {
		case op.Kind == OpText && op.Text.Content == cfg.Content.RegNote:
			noteAt = i
		case op.Kind == OpShape && op.Shape.Region == res.Composition.QR:
			qrAt = i
		}
	}
	require.NotEqual(t, -1, noteAt)
	require.NotEqual(t, -1, qrAt)
	assert.Greater(t, qrAt, noteAt, "QR box must cover an overlong registration note")
}

func TestBuildParameterizedCanvas(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 800, 1000
	cfg.Geometry.Margin = 40

	res, err := Build(cfg, BuildOptions{Measurer: halfEm{}, Fonts: testFonts()})
	require.NoError(t, err)
	for _, card := range res.Composition.Cards {
		assert.Equal(t, 720.0, card.Width)
		assert.Equal(t, 40.0, card.X)
	}
	assert.Equal(t, 800-40-28.0, res.Composition.Badge.Right())
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(DefaultConfig(), BuildOptions{Fonts: testFonts()})
	assert.Error(t, err, "missing measurer")

	fonts := testFonts()
	delete(fonts, FontRegular)
	_, err = Build(DefaultConfig(), BuildOptions{Measurer: halfEm{}, Fonts: fonts})
	assert.Error(t, err, "undeclared regular font")

	cfg := DefaultConfig()
	cfg.Wrap.Width = 0
	_, err = Build(cfg, BuildOptions{Measurer: halfEm{}, Fonts: testFonts()})
	assert.ErrorIs(t, err, ErrInvalidWrap)
}
