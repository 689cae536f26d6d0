package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/poster/content"
	"github.com/ByLCY/poster/dsl"
)

func parseConfig(t *testing.T, src string, data any) (Config, error) {
	t.Helper()
	doc, err := dsl.ParseString(src)
	require.NoError(t, err)
	return ConfigFromDocument(doc, data)
}

func TestEmbeddedDocumentMatchesDefaults(t *testing.T) {
	cfg, err := parseConfig(t, content.Default, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Empty(t, cfg.Placeholders())
}

func TestConfigFromDocumentRejectsNonObjectData(t *testing.T) {
	src := `poster T v1 { content { title: "${city}" } }`
	for _, data := range []any{[]any{1.0, 2.0}, "x", 3.0, true} {
		_, err := parseConfig(t, src, data)
		assert.Error(t, err, "data %#v", data)
	}
}

func TestConfigFromDocumentOverrides(t *testing.T) {
	cfg, err := parseConfig(t, `
poster Test v1 {
  canvas { width: 800; height: 1000; margin: 40 }
  theme { navy: #000; chip-bg: #112233 }
  sizes { title: 48.5 }
  wrap { width: 20; max-lines: 3; unit: cell }
  chips { gap-x: 8; text-nudge-y: -1 }
  fonts { bold: "builtin:gobold" }
  content {
    topics: ["甲", "乙"]
    qr-caption: ["一", "二"]
  }
  meta { keywords: ["a", "b"] }
}`, nil)
	require.NoError(t, err)

	assert.Equal(t, 800.0, cfg.Width)
	assert.Equal(t, 1000.0, cfg.Height)
	assert.Equal(t, 40.0, cfg.Geometry.Margin)
	assert.Equal(t, Color{0, 0, 0}, cfg.Theme.Navy)
	assert.Equal(t, Color{0x11, 0x22, 0x33}, cfg.Theme.ChipBg)
	assert.Equal(t, 48.5, cfg.Sizes.Title)
	assert.Equal(t, WrapConfig{Width: 20, LineHeight: 34, MaxLines: 3, Unit: UnitCell}, cfg.Wrap)
	assert.Equal(t, 8.0, cfg.Chips.GapX)
	assert.Equal(t, -1.0, cfg.Chips.TextNudgeY)
	assert.Equal(t, "builtin:gobold", cfg.Fonts.Bold)
	assert.Equal(t, []string{"甲", "乙"}, cfg.Content.Topics)
	assert.Equal(t, [2]string{"一", "二"}, cfg.Content.QRCaption)
	assert.Equal(t, []string{"a", "b"}, cfg.Meta.Keywords)

	// 未覆盖的字段保持默认值
	def := DefaultConfig()
	assert.Equal(t, def.Content.Title, cfg.Content.Title)
	assert.Equal(t, def.Theme.Teal, cfg.Theme.Teal)
}

func TestConfigFromDocumentBinding(t *testing.T) {
	src := `
poster Test v1 {
  vars { city: "广州"; year: 2026 }
  meta { title: "GlomCon ${city}" }
  content { title: "${city} ${year} ${venue}" }
}`
	cfg, err := parseConfig(t, src, nil)
	require.NoError(t, err)
	assert.Equal(t, "广州 2026 ${venue}", cfg.Content.Title)
	assert.Equal(t, "GlomCon 广州", cfg.Meta.Title)
	assert.Equal(t, []string{"venue"}, cfg.Placeholders())

	cfg, err = parseConfig(t, src, map[string]any{"city": "北京", "venue": "会展中心"})
	require.NoError(t, err)
	assert.Equal(t, "北京 2026 会展中心", cfg.Content.Title)
	assert.Empty(t, cfg.Placeholders())
}

func TestConfigFromDocumentErrors(t *testing.T) {
	cases := map[string]string{
		"unknown section": `poster T v1 { layers { a: 1 } }`,
		"unknown key":     `poster T v1 { canvas { depth: 3 } }`,
		"wrong type":      `poster T v1 { canvas { width: "wide" } }`,
		"bad color":       `poster T v1 { theme { navy: "navy" } }`,
		"bad unit":        `poster T v1 { wrap { unit: px } }`,
		"float as int":    `poster T v1 { wrap { width: 2.5 } }`,
		"caption count":   `poster T v1 { content { qr-caption: ["only one"] } }`,
		"string as list":  `poster T v1 { content { topics: "a" } }`,
		"list as string":  `poster T v1 { content { title: ["a"] } }`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseConfig(t, src, nil)
			assert.Error(t, err)
		})
	}

	_, err := ConfigFromDocument(nil, nil)
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#0B1F3B")
	require.NoError(t, err)
	assert.Equal(t, Color{11, 31, 59}, c)

	c, err = ParseColor("#fff")
	require.NoError(t, err)
	assert.Equal(t, Color{255, 255, 255}, c)

	_, err = ParseColor("#12345")
	assert.Error(t, err)
	_, err = ParseColor("#zzzzzz")
	assert.Error(t, err)
}
