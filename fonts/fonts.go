package fonts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// BuiltinPrefix 标识内置字体来源，例如 "builtin:goregular"。
const BuiltinPrefix = "builtin:"

// ErrFontUnavailable 表示字体文件不存在或无法解析。
var ErrFontUnavailable = errors.New("fonts: 字体不可用")

var builtins = map[string][]byte{
	"goregular": goregular.TTF,
	"gobold":    gobold.TTF,
}

// Provider 提供字体数据，并能在加载前探测字体是否可用。
type Provider interface {
	Probe(src string) error
	Load(src string) ([]byte, error)
}

// FSProvider 从文件系统或内置字体读取字体，已读取的数据会被缓存。
type FSProvider struct {
	baseDir string

	mu    sync.Mutex
	cache map[string][]byte
}

var _ Provider = (*FSProvider)(nil)

// NewFSProvider 创建以 baseDir 解析相对路径的字体提供者。
func NewFSProvider(baseDir string) *FSProvider {
	return &FSProvider{baseDir: baseDir, cache: map[string][]byte{}}
}

// Load 返回字体数据。src 可以是文件路径或 builtin:<name>。
func (p *FSProvider) Load(src string) ([]byte, error) {
	if src == "" {
		return nil, fmt.Errorf("%w: 字体来源为空", ErrFontUnavailable)
	}
	if name, ok := strings.CutPrefix(src, BuiltinPrefix); ok {
		data, ok := builtins[name]
		if !ok {
			return nil, fmt.Errorf("%w: 找不到内置字体 %s", ErrFontUnavailable, src)
		}
		return data, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if data, ok := p.cache[src]; ok {
		return data, nil
	}
	path := src
	if !filepath.IsAbs(path) && p.baseDir != "" {
		path = filepath.Join(p.baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: 读取字体 %s 失败: %v", ErrFontUnavailable, src, err)
	}
	p.cache[src] = data
	return data, nil
}

// Probe 检查字体能否读取并解析。
func (p *FSProvider) Probe(src string) error {
	data, err := p.Load(src)
	if err != nil {
		return err
	}
	return Validate(data)
}

// Validate 检查数据能否解析为字体或字体集合（.ttc/.otc）。
func Validate(data []byte) error {
	c, err := sfnt.ParseCollection(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFontUnavailable, err)
	}
	if c.NumFonts() == 0 {
		return fmt.Errorf("%w: 字体集合为空", ErrFontUnavailable)
	}
	return nil
}

// Resolution 是字体解析结果。UsedFallback 表示首选字体不可用而改用了备用字体。
type Resolution struct {
	Requested    string
	Src          string
	UsedFallback bool
	// PrimaryErr 记录首选字体不可用的原因，仅在 UsedFallback 时非空。
	PrimaryErr error
}

// Resolve 探测 primary，不可用时改用 fallback。两者都不可用时返回 ErrFontUnavailable。
func Resolve(p Provider, primary, fallback string) (Resolution, error) {
	primaryErr := p.Probe(primary)
	if primaryErr == nil {
		return Resolution{Requested: primary, Src: primary}, nil
	}
	if fallback == "" || fallback == primary {
		return Resolution{Requested: primary}, fmt.Errorf("字体 %s 不可用且未配置备用字体: %w", primary, primaryErr)
	}
	if err := p.Probe(fallback); err != nil {
		return Resolution{Requested: primary}, fmt.Errorf("字体 %s 与备用字体 %s 均不可用: %w", primary, fallback, err)
	}
	return Resolution{
		Requested:    primary,
		Src:          fallback,
		UsedFallback: true,
		PrimaryErr:   primaryErr,
	}, nil
}
