package layout

import (
	"fmt"
	"math"
)

// ChipStyle 描述标签胶囊的尺寸与配色。
type ChipStyle struct {
	Font        FontRef `json:"font" yaml:"font"`
	PadX        float64 `json:"padX" yaml:"padX"`
	PadY        float64 `json:"padY" yaml:"padY"`
	GapX        float64 `json:"gapX" yaml:"gapX"`
	GapY        float64 `json:"gapY" yaml:"gapY"`
	Radius      float64 `json:"radius" yaml:"radius"`
	Fill        Color   `json:"fill" yaml:"fill"`
	Border      Color   `json:"border" yaml:"border"`
	StrokeWidth float64 `json:"strokeWidth" yaml:"strokeWidth"`
	TextColor   Color   `json:"textColor" yaml:"textColor"`
	// TextNudgeY 为文字相对 PadY 的垂直微调（负数上移）。
	TextNudgeY float64 `json:"textNudgeY" yaml:"textNudgeY"`
}

// ChipPlacement 记录单个胶囊的最终位置。
type ChipPlacement struct {
	Label string `json:"label" yaml:"label"`
	Box   Region `json:"box" yaml:"box"`
	Row   int    `json:"row" yaml:"row"`
}

// ChipFlow 是 FlowChips 的结果：各胶囊位置、下一个写入位置与整体包围盒。
type ChipFlow struct {
	Chips  []ChipPlacement `json:"chips" yaml:"chips"`
	Next   Cursor          `json:"next" yaml:"next"`
	Bounds Region          `json:"bounds" yaml:"bounds"`
}

// Rows 返回每一行的胶囊数量。
func (f ChipFlow) Rows() []int {
	var rows []int
	for _, chip := range f.Chips {
		for len(rows) <= chip.Row {
			rows = append(rows, 0)
		}
		rows[chip.Row]++
	}
	return rows
}

// FlowChips 从 start 开始自左向右排列胶囊，当前行放不下时换到 region.X 开始的新行，
// 行距为上一行高度加 GapY。比整个区域还宽的胶囊仍放在行首，允许溢出。
func FlowChips(c Canvas, labels []string, style ChipStyle, region Region, start Cursor) (ChipFlow, error) {
	flow := ChipFlow{Next: start, Bounds: Region{X: start.X, Y: start.Y}}
	if len(labels) == 0 {
		return flow, nil
	}

	x, y := start.X, start.Y
	row, inRow := 0, 0
	rowHeight := 0.0
	minX, maxRight, bottom := start.X, start.X, start.Y
	fill, border := style.Fill, style.Border

	for _, label := range labels {
		tw, err := c.MeasureTextWidth(label, style.Font)
		if err != nil {
			return flow, fmt.Errorf("测量标签 %q 失败: %w", label, err)
		}
		w := math.Floor(tw + style.PadX*2)
		h := math.Floor(style.Font.Size + style.PadY*2)

		if inRow > 0 && x+w > region.Right() {
			x = region.X
			minX = math.Min(minX, region.X)
			y += rowHeight + style.GapY
			row++
			inRow = 0
			rowHeight = 0
		}

		box := Region{X: x, Y: y, Width: w, Height: h}
		c.DrawRoundedRectangle(box, style.Radius, &fill, &border, style.StrokeWidth)
		c.DrawText(Cursor{X: x + style.PadX, Y: y + style.PadY + style.TextNudgeY}, label, style.Font, style.TextColor, AnchorLeftAscender)
		flow.Chips = append(flow.Chips, ChipPlacement{Label: label, Box: box, Row: row})

		x += w + style.GapX
		inRow++
		rowHeight = math.Max(rowHeight, h)
		maxRight = math.Max(maxRight, box.Right())
		bottom = math.Max(bottom, box.Bottom())
	}

	flow.Next = Cursor{X: x, Y: y}
	flow.Bounds = Region{
		X:      minX,
		Y:      start.Y,
		Width:  maxRight - minX,
		Height: bottom - start.Y,
	}
	return flow, nil
}
