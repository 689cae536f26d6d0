package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/flanksource/commons/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ByLCY/poster/content"
	"github.com/ByLCY/poster/document"
	"github.com/ByLCY/poster/dsl"
	"github.com/ByLCY/poster/fonts"
	"github.com/ByLCY/poster/images"
	"github.com/ByLCY/poster/layout"
	canvasrenderer "github.com/ByLCY/poster/renderer/canvas"
)

const outputBase = "glomcon_guangzhou_poster"

// options 汇总命令行参数。全部使用默认值时与固定路径的生成方式一致。
type options struct {
	Input  string
	Data   string
	Assets string
	Logo   string
	Debug  string

	logger.Flags
}

func defaultOptions() options {
	return options{
		Input:  content.DefaultName,
		Assets: "assets",
		Logo:   filepath.Join("assets", "logo.png"),
		Flags: logger.Flags{
			Level:       "info",
			LogToStderr: true,
		},
	}
}

func bindFlags(flags *pflag.FlagSet, opts *options) {
	flags.StringVar(&opts.Input, "in", opts.Input, "海报描述文件路径（默认使用内置文件）")
	flags.StringVar(&opts.Data, "data", opts.Data, "绑定到 ${...} 占位符的 JSON 数据")
	flags.StringVar(&opts.Assets, "assets", opts.Assets, "PNG/PDF 输出目录")
	flags.StringVar(&opts.Logo, "logo", opts.Logo, "标志图路径，读取失败时跳过")
	flags.StringVar(&opts.Debug, "debug", opts.Debug, "布局调试输出路径（.json 或 .yaml）")

	flags.CountVarP(&opts.Flags.LevelCount, "loglevel", "v", "Increase logging level")
	flags.StringVar(&opts.Flags.Level, "log-level", opts.Flags.Level, "Set the default log level")
	flags.BoolVar(&opts.Flags.JsonLogs, "json-logs", false, "Print logs in json format to stderr")
	flags.BoolVar(&opts.Flags.ReportCaller, "report-caller", false, "Report log caller info")
	flags.BoolVar(&opts.Flags.LogToStderr, "log-to-stderr", opts.Flags.LogToStderr, "Log to stderr instead of stdout")
}

func newRootCommand() *cobra.Command {
	opts := defaultOptions()
	cmd := &cobra.Command{
		Use:           "poster",
		Short:         "生成 GlomCon 会议海报（PNG 与单页 PDF）",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Configure(opts.Flags)
			_, err := run(opts)
			return err
		},
	}
	bindFlags(cmd.Flags(), &opts)
	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logger.Fatalf("生成海报失败: %v", err)
	}
}

// outputs 是 run 写出的文件路径。
type outputs struct {
	PNG   string
	PDF   string
	Debug string
}

// run 串联解析、字体解析、排版、渲染与 PDF 封装。
func run(opts options) (outputs, error) {
	var out outputs

	doc, baseDir, err := loadDocument(opts.Input)
	if err != nil {
		return out, err
	}
	var data any
	if opts.Data != "" {
		if err := json.Unmarshal([]byte(opts.Data), &data); err != nil {
			return out, fmt.Errorf("解析 data JSON 失败: %w", err)
		}
	}
	cfg, err := layout.ConfigFromDocument(doc, data)
	if err != nil {
		return out, fmt.Errorf("读取海报配置失败: %w", err)
	}
	if missing := cfg.Placeholders(); len(missing) > 0 {
		logger.Warnf("文案中仍有未替换的占位符: %s", strings.Join(missing, ", "))
	}

	provider := fonts.NewFSProvider(baseDir)
	resources, err := resolveFonts(provider, cfg.Fonts)
	if err != nil {
		return out, err
	}

	r := canvasrenderer.NewRenderer(provider)
	result, err := layout.Build(cfg, layout.BuildOptions{
		Measurer: r,
		Fonts:    resources,
		Compose:  layout.ComposeOptions{Logo: loadLogo(opts.Logo, int(cfg.Geometry.LogoSize))},
	})
	if err != nil {
		return out, fmt.Errorf("布局计算失败: %w", err)
	}

	if err := os.MkdirAll(opts.Assets, 0o755); err != nil {
		return out, fmt.Errorf("创建输出目录失败: %w", err)
	}
	pngBytes, err := r.Render(result)
	if err != nil {
		return out, fmt.Errorf("渲染 PNG 失败: %w", err)
	}
	out.PNG = filepath.Join(opts.Assets, outputBase+".png")
	if err := os.WriteFile(out.PNG, pngBytes, 0o644); err != nil {
		return out, fmt.Errorf("写入 PNG 文件失败: %w", err)
	}
	logger.Infof("已生成 PNG：%s", out.PNG)

	pdfBytes, err := document.WrapPNG(pngBytes, document.Options{Meta: result.Meta})
	if err != nil {
		return out, fmt.Errorf("生成 PDF 失败: %w", err)
	}
	out.PDF = filepath.Join(opts.Assets, outputBase+".pdf")
	if err := os.WriteFile(out.PDF, pdfBytes, 0o644); err != nil {
		return out, fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	logger.Infof("已生成 PDF：%s", out.PDF)

	if opts.Debug != "" {
		if err := writeDebug(result, opts.Debug); err != nil {
			return out, err
		}
		out.Debug = opts.Debug
	}
	return out, nil
}

// loadDocument 解析描述文件，返回文档与解析相对字体路径所用的目录。
func loadDocument(input string) (*dsl.Document, string, error) {
	if input == "" || input == content.DefaultName {
		doc, err := dsl.ParseString(content.Default)
		if err != nil {
			return nil, "", fmt.Errorf("解析内置描述文件失败: %w", err)
		}
		return doc, "", nil
	}
	file, err := os.Open(input)
	if err != nil {
		return nil, "", fmt.Errorf("无法打开描述文件 %s: %w", input, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return nil, "", fmt.Errorf("解析描述文件 %s 失败: %w", input, err)
	}
	return doc, filepath.Dir(input), nil
}

// resolveFonts 探测常规与粗体字体。粗体不可用时改用备用字体并给出警告。
func resolveFonts(p fonts.Provider, set layout.FontSet) (map[string]layout.FontResource, error) {
	regular, err := fonts.Resolve(p, set.Regular, "")
	if err != nil {
		return nil, fmt.Errorf("常规字体不可用: %w", err)
	}
	bold, err := fonts.Resolve(p, set.Bold, set.BoldFallback)
	if err != nil {
		return nil, fmt.Errorf("粗体字体不可用: %w", err)
	}
	if bold.UsedFallback {
		logger.Warnf("粗体字体 %s 不可用，改用 %s: %v", bold.Requested, bold.Src, bold.PrimaryErr)
	}
	logger.Debugf("字体：常规 %s，粗体 %s", regular.Src, bold.Src)

	return map[string]layout.FontResource{
		layout.FontRegular: {Name: layout.FontRegular, Src: regular.Src},
		layout.FontBold:    {Name: layout.FontBold, Src: bold.Src, UsedFallback: bold.UsedFallback},
	}, nil
}

// loadLogo 读取并缩放标志图。任何失败都只记录日志并返回 nil。
func loadLogo(path string, size int) image.Image {
	if path == "" {
		return nil
	}
	img, err := images.LoadResized(path, size)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debugf("未找到标志图 %s，跳过", path)
		} else {
			logger.Infof("跳过标志图: %v", err)
		}
		return nil
	}
	return img
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebug(result, debugPath); err != nil {
		return fmt.Errorf("输出布局调试文件失败: %w", err)
	}
	return nil
}
