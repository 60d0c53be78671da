package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/figui/assets"
	"github.com/ByLCY/figui/convert"
)

// Settings 是导入设置文件（YAML）的内容。
//
//	strict: true
//	typePrefix: "@"
//	precision: 2
//	assets:
//	  fontDir: fonts
//	  fallbackFont: Inter-Regular
//	patterns:
//	  - name: card
//	    contains: Card
//	    converter: frame
type Settings struct {
	Strict     bool            `yaml:"strict"`
	RootID     string          `yaml:"rootId"`
	TypePrefix string          `yaml:"typePrefix"`
	Precision  int             `yaml:"precision"`
	Assets     assets.Manifest `yaml:"assets"`
	Patterns   []Pattern       `yaml:"patterns"`
	Debug      string          `yaml:"debug"`
	Preview    string          `yaml:"preview"`
}

// Pattern 把名称匹配规则绑定到一个内置转换器上。
// Contains 与 Component 二选一：Component 使用 typePrefix + 类型名的复合组件标记。
type Pattern struct {
	Name      string `yaml:"name"`
	Contains  string `yaml:"contains"`
	Component string `yaml:"component"`
	Converter string `yaml:"converter"`
	Priority  int    `yaml:"priority"`
}

var builtinConverters = map[string]convert.NodeConverter{
	"page":     convert.PageConverter{},
	"frame":    convert.FrameConverter{},
	"instance": convert.InstanceConverter{},
	"group":    convert.GroupConverter{},
	"vector":   convert.VectorConverter{},
	"text":     convert.TextConverter{},
	"button":   convert.ButtonConverter{},
}

// Load 读取设置文件。资源清单中的相对路径相对于设置文件所在目录。
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取设置文件 %s 失败: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("解析设置文件 %s 失败: %w", path, err)
	}
	s.Assets.BaseDir = filepath.Dir(path)
	return s, nil
}

// Parse 解析 YAML 内容并校验模式规则。
func Parse(data []byte) (*Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if _, err := s.Registrations(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) typePrefix() string {
	if s.TypePrefix == "" {
		return convert.DefaultTypePrefix
	}
	return s.TypePrefix
}

// Registrations 把 patterns 转成转换器注册项。
func (s *Settings) Registrations() ([]convert.Registration, error) {
	prefix := s.typePrefix()
	regs := make([]convert.Registration, 0, len(s.Patterns))
	for i, p := range s.Patterns {
		conv, ok := builtinConverters[strings.ToLower(p.Converter)]
		if !ok {
			return nil, fmt.Errorf("patterns[%d]: 未知转换器 %q", i, p.Converter)
		}
		var rule convert.MatchRule
		switch {
		case p.Contains != "" && p.Component != "":
			return nil, fmt.Errorf("patterns[%d]: contains 与 component 不能同时设置", i)
		case p.Contains != "":
			rule = convert.NameContains(p.Contains)
		case p.Component != "":
			rule = convert.ComponentType(prefix, p.Component)
		default:
			return nil, fmt.Errorf("patterns[%d]: 缺少 contains 或 component", i)
		}
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("pattern-%d", i)
		}
		regs = append(regs, convert.Registration{Name: name, Rule: rule, Converter: conv, Priority: p.Priority})
	}
	return regs, nil
}

// Options 生成转换选项。fonts/graphics 由 assets.Load 预先加载。
func (s *Settings) Options(fonts *assets.FontTable, graphics *assets.GraphicTable, logger *slog.Logger) (convert.Options, error) {
	regs, err := s.Registrations()
	if err != nil {
		return convert.Options{}, err
	}
	registry := convert.DefaultRegistry(s.typePrefix())
	registry.Logger = logger
	registry.Apply(regs...)
	return convert.Options{
		Strict:     s.Strict,
		RootID:     s.RootID,
		TypePrefix: s.TypePrefix,
		Precision:  s.Precision,
		Registry:   registry,
		Fonts:      fonts,
		Graphics:   graphics,
		Logger:     logger,
	}, nil
}
