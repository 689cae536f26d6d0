package layout

// 布局坐标以像素为单位。渲染后端以毫米为长度单位、以 pt 为字号单位，
// 约定 1 像素对应 1 毫米，光栅化时按每毫米 1 个像素输出。

// Conversion constants between pt and mm.
const (
	PtToMm = 25.4 / 72
	MmToPt = 1.0 / PtToMm
)

// PxToPt 将像素字号换算为渲染后端使用的 pt。
func PxToPt(px float64) float64 { return px * MmToPt }
