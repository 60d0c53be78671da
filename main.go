package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/figui/assets"
	"github.com/ByLCY/figui/config"
	"github.com/ByLCY/figui/convert"
	"github.com/ByLCY/figui/dsl"
	"github.com/ByLCY/figui/figma"
	"github.com/ByLCY/figui/renderer"
	canvasrenderer "github.com/ByLCY/figui/renderer/canvas"
)

// previewMargin 是预览页面四周的留白（设计像素）。
const previewMargin = 16

func main() {
	input := flag.String("in", "examples/demo.figui", "设计文件路径（.json 为 REST 导出，其余按 DSL 解析）")
	output := flag.String("out", "output/ui.json", "UI 层级 JSON 输出路径")
	settingsPath := flag.String("config", "", "导入设置 YAML 路径")
	debug := flag.String("debug", "", "调试 JSON 输出路径（覆盖设置文件）")
	preview := flag.String("preview", "", "PDF 预览输出路径（覆盖设置文件）")
	strict := flag.Bool("strict", false, "遇到第一条警告即终止导入")
	rootID := flag.String("root", "", "只转换指定节点 ID 的子树")
	verbose := flag.Bool("v", false, "输出调试日志")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	settings := &config.Settings{}
	if *settingsPath != "" {
		s, err := config.Load(*settingsPath)
		if err != nil {
			log.Fatalf("读取设置失败: %v", err)
		}
		settings = s
	}
	if *strict {
		settings.Strict = true
	}
	if *rootID != "" {
		settings.RootID = *rootID
	}
	if *debug != "" {
		settings.Debug = *debug
	}
	if *preview != "" {
		settings.Preview = *preview
	}

	if err := run(context.Background(), *input, *output, settings, logger); err != nil {
		log.Fatalf("导入失败: %v", err)
	}
	fmt.Printf("已生成 UI 层级：%s\n", *output)
}

// run 串联加载、转换与输出。
func run(ctx context.Context, inputPath, outputPath string, settings *config.Settings, logger *slog.Logger) error {
	doc, err := loadDocument(inputPath)
	if err != nil {
		return err
	}

	fonts, graphics, err := assets.Load(ctx, settings.Assets)
	if err != nil {
		return fmt.Errorf("加载资源失败: %w", err)
	}
	if missing := fonts.Missing(doc.UsedFonts()); len(missing) > 0 {
		logger.Warn("文档引用的字体未提供", "fonts", strings.Join(missing, ", "))
	}

	opts, err := settings.Options(fonts, graphics, logger)
	if err != nil {
		return err
	}
	res, err := convert.Convert(doc, opts)
	if err != nil {
		return fmt.Errorf("转换失败: %w", err)
	}
	logger.Info("转换完成",
		"elements", res.Root.Count(),
		"issues", len(res.Issues()),
		"materials", len(res.Context.Materials),
		"sprites", len(res.Context.Sprites),
	)

	if settings.Debug != "" {
		if err := mkdirFor(settings.Debug); err != nil {
			return err
		}
		if err := convert.WriteDebugJSON(res, settings.Debug); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}

	data, err := json.MarshalIndent(res.Root, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化 UI 层级失败: %w", err)
	}
	if err := writeFile(outputPath, data); err != nil {
		return err
	}

	if settings.Preview != "" {
		var r renderer.Renderer = canvasrenderer.NewRenderer(canvasrenderer.Options{
			Margin:   previewMargin,
			Fallback: fonts.Fallback(),
		})
		pdfBytes, err := r.Render(res.Root)
		if err != nil {
			return fmt.Errorf("渲染预览失败: %w", err)
		}
		if err := writeFile(settings.Preview, pdfBytes); err != nil {
			return err
		}
	}
	return nil
}

// loadDocument 按扩展名选择 REST JSON 解码或 DSL 解析。
func loadDocument(path string) (*figma.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开设计文件 %s: %w", path, err)
	}
	defer file.Close()
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return figma.Decode(file)
	}
	return dsl.Load(file)
}

func mkdirFor(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := mkdirFor(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	return nil
}
