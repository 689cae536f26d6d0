package layout

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// WriteDebug 将布局结果输出为 JSON（或按扩展名 .yaml/.yml 输出 YAML），便于调试或可视化。
func WriteDebug(res *Result, path string) error {
	if res == nil {
		return nil
	}
	data, err := MarshalDebug(res, filepath.Ext(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// MarshalDebug 按扩展名序列化布局结果。
func MarshalDebug(res *Result, ext string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Marshal(res)
	default:
		return json.MarshalIndent(res, "", "  ")
	}
}
