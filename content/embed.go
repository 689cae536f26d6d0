package content

import _ "embed"

// Default 是内置的 GlomCon 广州会议海报描述文件。
//
//go:embed glomcon.poster
var Default string

// DefaultName 是内置描述文件的名称，用于日志与错误信息。
const DefaultName = "embed:glomcon.poster"
