package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/ByLCY/poster/binding"
	"github.com/ByLCY/poster/dsl"
)

// 该文件把海报描述文件（dsl.Document）叠加到 DefaultConfig 之上。

type fieldSetter func(val *dsl.Value) error

// ConfigFromDocument 以 DefaultConfig 为基础应用文档中的各段落，
// 并用 vars 段与 data 合并后的数据替换文案中的 ${...} 占位符（data 优先）。
func ConfigFromDocument(doc *dsl.Document, data any) (Config, error) {
	cfg := DefaultConfig()
	if doc == nil {
		return cfg, fmt.Errorf("文档为空")
	}

	vars := map[string]any{}
	for _, section := range doc.Sections {
		if section.Name != "vars" {
			continue
		}
		for _, a := range section.Block.Assignments {
			vars[a.Key] = a.Value.Raw()
		}
	}
	scope := vars
	switch d := data.(type) {
	case nil:
	case map[string]any:
		scope = binding.Merge(vars, d)
	default:
		return cfg, fmt.Errorf("绑定数据必须是 JSON 对象，实际为 %T", data)
	}

	for _, section := range doc.Sections {
		var fields map[string]fieldSetter
		switch section.Name {
		case "vars":
			continue
		case "meta":
			fields = metaFields(&cfg.Meta)
		case "canvas":
			fields = canvasFields(&cfg)
		case "theme":
			fields = themeFields(&cfg.Theme)
		case "fonts":
			fields = fontFields(&cfg.Fonts)
		case "sizes":
			fields = sizeFields(&cfg.Sizes)
		case "wrap":
			fields = wrapFields(&cfg.Wrap)
		case "chips":
			fields = chipFields(&cfg.Chips)
		case "content":
			fields = contentFields(&cfg.Content)
		default:
			return cfg, fmt.Errorf("第 %d 行：未知段落 %s", section.Pos.Line, section.Name)
		}
		if err := applyAssignments(section, fields); err != nil {
			return cfg, err
		}
	}

	cfg.interpolate(scope)
	return cfg, nil
}

// Placeholders 返回文案中仍未被替换的 ${...} 占位符。
func (c Config) Placeholders() []string {
	var out []string
	for _, s := range c.Content.strings() {
		out = append(out, binding.Unresolved(s, nil)...)
	}
	return lo.Uniq(out)
}

func (c *Config) interpolate(scope map[string]any) {
	ct := &c.Content
	for _, p := range ct.fields() {
		*p = binding.Interpolate(*p, scope)
	}
	for i := range ct.Topics {
		ct.Topics[i] = binding.Interpolate(ct.Topics[i], scope)
	}
	c.Meta.Title = binding.Interpolate(c.Meta.Title, scope)
	c.Meta.Subject = binding.Interpolate(c.Meta.Subject, scope)
}

func (ct *Content) fields() []*string {
	return []*string{
		&ct.Title, &ct.Subtitle, &ct.Tagline, &ct.IntroHeading, &ct.Intro,
		&ct.TopicsHeading, &ct.Format, &ct.RegHeading, &ct.Badge, &ct.RegLead,
		&ct.RegNote, &ct.QRCaption[0], &ct.QRCaption[1], &ct.Footer, &ct.Disclaimer,
	}
}

func (ct Content) strings() []string {
	out := lo.Map(ct.fields(), func(p *string, _ int) string { return *p })
	return append(out, ct.Topics...)
}

func applyAssignments(section *dsl.Section, fields map[string]fieldSetter) error {
	for _, a := range section.Block.Assignments {
		set, ok := fields[a.Key]
		if !ok {
			return fmt.Errorf("第 %d 行：%s 段落中未知字段 %s", a.Pos.Line, section.Name, a.Key)
		}
		if err := set(a.Value); err != nil {
			return fmt.Errorf("第 %d 行：%s.%s 取值无效: %w", a.Pos.Line, section.Name, a.Key, err)
		}
	}
	return nil
}

func metaFields(m *DocumentMeta) map[string]fieldSetter {
	return map[string]fieldSetter{
		"title":    stringField(&m.Title),
		"author":   stringField(&m.Author),
		"subject":  stringField(&m.Subject),
		"creator":  stringField(&m.Creator),
		"keywords": listField(&m.Keywords),
	}
}

func canvasFields(c *Config) map[string]fieldSetter {
	return map[string]fieldSetter{
		"width":  numberField(&c.Width),
		"height": numberField(&c.Height),
		"margin": numberField(&c.Geometry.Margin),
	}
}

func themeFields(t *Theme) map[string]fieldSetter {
	return map[string]fieldSetter{
		"navy":         colorField(&t.Navy),
		"teal":         colorField(&t.Teal),
		"background":   colorField(&t.Background),
		"white":        colorField(&t.White),
		"ink":          colorField(&t.Ink),
		"muted":        colorField(&t.Muted),
		"line":         colorField(&t.Line),
		"chip-bg":      colorField(&t.ChipBg),
		"chip-border":  colorField(&t.ChipBorder),
		"amber-bg":     colorField(&t.AmberBg),
		"amber-border": colorField(&t.AmberBorder),
		"amber-text":   colorField(&t.AmberText),
		"tagline":      colorField(&t.Tagline),
		"caption":      colorField(&t.Caption),
		"footer":       colorField(&t.Footer),
	}
}

func fontFields(f *FontSet) map[string]fieldSetter {
	return map[string]fieldSetter{
		"regular":       stringField(&f.Regular),
		"bold":          stringField(&f.Bold),
		"bold-fallback": stringField(&f.BoldFallback),
	}
}

func sizeFields(s *TypeScale) map[string]fieldSetter {
	return map[string]fieldSetter{
		"title":   numberField(&s.Title),
		"sub":     numberField(&s.Sub),
		"tag":     numberField(&s.Tag),
		"heading": numberField(&s.Heading),
		"body":    numberField(&s.Body),
		"small":   numberField(&s.Small),
		"chip":    numberField(&s.Chip),
		"badge":   numberField(&s.Badge),
		"lead":    numberField(&s.Lead),
		"caption": numberField(&s.Caption),
		"fine":    numberField(&s.Fine),
	}
}

func wrapFields(w *WrapConfig) map[string]fieldSetter {
	return map[string]fieldSetter{
		"width":       intField(&w.Width),
		"line-height": numberField(&w.LineHeight),
		"max-lines":   intField(&w.MaxLines),
		"unit": func(val *dsl.Value) error {
			switch u := WrapUnit(val.Raw()); u {
			case UnitRune, UnitCell:
				w.Unit = u
				return nil
			default:
				return fmt.Errorf("未知的宽度单位 %q（可选 rune/cell）", val.Raw())
			}
		},
	}
}

func chipFields(c *ChipConfig) map[string]fieldSetter {
	return map[string]fieldSetter{
		"pad-x":        numberField(&c.PadX),
		"pad-y":        numberField(&c.PadY),
		"gap-x":        numberField(&c.GapX),
		"gap-y":        numberField(&c.GapY),
		"radius":       numberField(&c.Radius),
		"text-nudge-y": numberField(&c.TextNudgeY),
	}
}

func contentFields(ct *Content) map[string]fieldSetter {
	return map[string]fieldSetter{
		"title":          stringField(&ct.Title),
		"subtitle":       stringField(&ct.Subtitle),
		"tagline":        stringField(&ct.Tagline),
		"intro-heading":  stringField(&ct.IntroHeading),
		"intro":          stringField(&ct.Intro),
		"topics-heading": stringField(&ct.TopicsHeading),
		"topics":         listField(&ct.Topics),
		"format":         stringField(&ct.Format),
		"reg-heading":    stringField(&ct.RegHeading),
		"badge":          stringField(&ct.Badge),
		"reg-lead":       stringField(&ct.RegLead),
		"reg-note":       stringField(&ct.RegNote),
		"qr-caption": func(val *dsl.Value) error {
			items, err := valueToStringSlice(val)
			if err != nil {
				return err
			}
			if len(items) != 2 {
				return fmt.Errorf("需要 2 行说明文字，实际 %d 行", len(items))
			}
			ct.QRCaption = [2]string{items[0], items[1]}
			return nil
		},
		"footer":     stringField(&ct.Footer),
		"disclaimer": stringField(&ct.Disclaimer),
	}
}

func stringField(dst *string) fieldSetter {
	return func(val *dsl.Value) error {
		if val.Array != nil {
			return fmt.Errorf("需要字符串，实际为数组")
		}
		*dst = val.Raw()
		return nil
	}
}

func listField(dst *[]string) fieldSetter {
	return func(val *dsl.Value) error {
		items, err := valueToStringSlice(val)
		if err != nil {
			return err
		}
		*dst = items
		return nil
	}
}

func numberField(dst *float64) fieldSetter {
	return func(val *dsl.Value) error {
		if val.Number == nil {
			return fmt.Errorf("需要数字，实际为 %q", val.Raw())
		}
		f, err := strconv.ParseFloat(*val.Number, 64)
		if err != nil {
			return err
		}
		*dst = f
		return nil
	}
}

func intField(dst *int) fieldSetter {
	return func(val *dsl.Value) error {
		if val.Number == nil {
			return fmt.Errorf("需要整数，实际为 %q", val.Raw())
		}
		n, err := strconv.Atoi(*val.Number)
		if err != nil {
			return err
		}
		*dst = n
		return nil
	}
}

func colorField(dst *Color) fieldSetter {
	return func(val *dsl.Value) error {
		if val.Color == nil {
			return fmt.Errorf("需要颜色（#RRGGBB），实际为 %q", val.Raw())
		}
		c, err := ParseColor(*val.Color)
		if err != nil {
			return err
		}
		*dst = c
		return nil
	}
}

func valueToStringSlice(val *dsl.Value) ([]string, error) {
	if val.Array == nil {
		return nil, fmt.Errorf("需要数组，实际为 %q", val.Raw())
	}
	items := lo.Map(val.Array.Values, func(v *dsl.Value, _ int) string { return v.Raw() })
	return lo.Filter(items, func(s string, _ int) bool { return s != "" }), nil
}

// ParseColor 解析 #RGB 或 #RRGGBB 形式的颜色。
func ParseColor(value string) (Color, error) {
	hex := strings.TrimPrefix(value, "#")
	if len(hex) == 3 {
		hex = strings.Repeat(hex[0:1], 2) + strings.Repeat(hex[1:2], 2) + strings.Repeat(hex[2:3], 2)
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("颜色值 %s 无法解析: %w", value, err)
	}
	return Color{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, nil
}
