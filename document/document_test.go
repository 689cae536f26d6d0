package document

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/poster/layout"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 11, G: 31, B: 59, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestWrapPNGSinglePageMatchesPixelSize(t *testing.T) {
	data := encodePNG(t, 108, 135)

	out, err := WrapPNG(data, Options{
		Meta: layout.DocumentMeta{
			Title:    "GlomCon 中国广州会议",
			Author:   "GlomCon",
			Keywords: []string{"GlomCon", "肾脏病"},
		},
		CreationDate: time.Date(2026, 6, 5, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	ctx, err := api.ReadContext(bytes.NewReader(out), model.NewDefaultConfiguration())
	require.NoError(t, err)
	require.NoError(t, ctx.EnsurePageCount())
	assert.Equal(t, 1, ctx.PageCount)

	_, _, inh, err := ctx.PageDict(1, false)
	require.NoError(t, err)
	require.NotNil(t, inh.MediaBox)
	assert.InDelta(t, 108, inh.MediaBox.Width(), 0.01)
	assert.InDelta(t, 135, inh.MediaBox.Height(), 0.01)
}

func TestWrapPNGRejectsNonPNG(t *testing.T) {
	_, err := WrapPNG([]byte("not a png"), Options{})
	assert.Error(t, err)
}
