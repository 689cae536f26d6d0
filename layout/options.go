package layout

import "image"

// BuildOptions 配置布局阶段所需的依赖，例如测量后端与字体资源。
type BuildOptions struct {
	Measurer Measurer
	Fonts    map[string]FontResource
	Compose  ComposeOptions
}

// ComposeOptions 携带可选的外部素材。
type ComposeOptions struct {
	Logo image.Image // 已缩放好的标志图，为空时跳过
}

// Measurer 负责根据字体资源测量文本宽度（像素）。渲染后端实现该接口。
type Measurer interface {
	TextWidth(content string, font FontResource, size float64) (float64, error)
}
