package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/canvas"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"github.com/ByLCY/figui/ui"
)

// FontFile 是一条字体声明。Name 为空时取文件名（不含扩展名），例如 Inter-Bold.ttf → "Inter-Bold"。
type FontFile struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// GraphicFile 是一条图形声明。ID 为空时取文件名。
type GraphicFile struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// Manifest 描述导入前需要加载的字体与图形。相对路径相对于 BaseDir。
type Manifest struct {
	BaseDir         string        `yaml:"-"`
	FontDir         string        `yaml:"fontDir"`
	Fonts           []FontFile    `yaml:"fonts"`
	FallbackFont    string        `yaml:"fallbackFont"`
	GraphicDir      string        `yaml:"graphicDir"`
	Graphics        []GraphicFile `yaml:"graphics"`
	FallbackGraphic string        `yaml:"fallbackGraphic"`
	Concurrency     int           `yaml:"concurrency"`
}

var (
	fontExts    = map[string]bool{".ttf": true, ".otf": true, ".woff": true, ".woff2": true}
	graphicExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".webp": true, ".svg": true}
)

// Load 并发读取并校验清单中的字体与图形，返回填充好的资源表。
// 这一步在转换之前完成，转换过程只读这些表。
func Load(ctx context.Context, m Manifest) (*FontTable, *GraphicTable, error) {
	fontFiles, err := m.fontFiles()
	if err != nil {
		return nil, nil, err
	}
	graphicFiles, err := m.graphicFiles()
	if err != nil {
		return nil, nil, err
	}

	fonts := make([]*ui.FontAsset, len(fontFiles))
	graphics := make([]*ui.Graphic, len(graphicFiles))

	g, gctx := errgroup.WithContext(ctx)
	limit := m.Concurrency
	if limit <= 0 {
		limit = 4
	}
	g.SetLimit(limit)
	for i, f := range fontFiles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			asset, err := loadFont(f)
			if err != nil {
				return err
			}
			fonts[i] = asset
			return nil
		})
	}
	for i, f := range graphicFiles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			graphic, err := loadGraphic(f)
			if err != nil {
				return err
			}
			graphics[i] = graphic
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	fontTable := NewFontTable()
	for _, f := range fonts {
		fontTable.Add(f)
	}
	if m.FallbackFont != "" && !fontTable.SetFallback(m.FallbackFont) {
		return nil, nil, fmt.Errorf("回退字体 %s 不在字体列表中", m.FallbackFont)
	}
	graphicTable := NewGraphicTable()
	for _, gr := range graphics {
		graphicTable.Add(gr)
	}
	if m.FallbackGraphic != "" && !graphicTable.SetFallback(m.FallbackGraphic) {
		return nil, nil, fmt.Errorf("回退图形 %s 不在图形列表中", m.FallbackGraphic)
	}
	return fontTable, graphicTable, nil
}

func (m Manifest) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || m.BaseDir == "" {
		return path
	}
	return filepath.Join(m.BaseDir, path)
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// scanDir 列出目录中扩展名在 exts 内的文件（按文件名排序）。
func scanDir(dir string, exts map[string]bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("读取目录 %s 失败: %w", dir, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !exts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	return out, nil
}

func (m Manifest) fontFiles() ([]FontFile, error) {
	var out []FontFile
	if m.FontDir != "" {
		paths, err := scanDir(m.resolve(m.FontDir), fontExts)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			out = append(out, FontFile{Name: baseName(p), Path: p})
		}
	}
	for _, f := range m.Fonts {
		if f.Path == "" {
			return nil, fmt.Errorf("字体 %s 缺少 path", f.Name)
		}
		if f.Name == "" {
			f.Name = baseName(f.Path)
		}
		f.Path = m.resolve(f.Path)
		out = append(out, f)
	}
	return out, nil
}

func (m Manifest) graphicFiles() ([]GraphicFile, error) {
	var out []GraphicFile
	if m.GraphicDir != "" {
		paths, err := scanDir(m.resolve(m.GraphicDir), graphicExts)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			out = append(out, GraphicFile{ID: baseName(p), Path: p})
		}
	}
	for _, f := range m.Graphics {
		if f.Path == "" {
			return nil, fmt.Errorf("图形 %s 缺少 path", f.ID)
		}
		if f.ID == "" {
			f.ID = baseName(f.Path)
		}
		f.Path = m.resolve(f.Path)
		out = append(out, f)
	}
	return out, nil
}

// loadFont 读取字体并用 canvas 解析一次，确保渲染阶段可用。
func loadFont(f FontFile) (*ui.FontAsset, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", f.Path, err)
	}
	family, _, _ := strings.Cut(f.Name, "-")
	if err := canvas.NewFontFamily(family).LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("解析字体 %s 失败: %w", f.Path, err)
	}
	return &ui.FontAsset{Name: f.Name, Family: family, Path: f.Path, Data: data}, nil
}

func loadGraphic(f GraphicFile) (*ui.Graphic, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("读取图形 %s 失败: %w", f.Path, err)
	}
	g := &ui.Graphic{ID: f.ID, Path: f.Path, Data: data}
	if strings.EqualFold(filepath.Ext(f.Path), ".svg") {
		g.Format = "svg"
		return g, nil
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("解析图片 %s 失败: %w", f.Path, err)
	}
	g.Format = format
	g.Width, g.Height = cfg.Width, cfg.Height
	return g, nil
}
