package convert

import (
	"log/slog"

	"github.com/ByLCY/figui/ui"
)

// DefaultTypePrefix 是复合组件名称中的类型标记前缀，例如 "@Button"。
const DefaultTypePrefix = "@"

// Options 配置一次导入。零值可用：宽松模式、两位精度、静默日志、内置转换器。
type Options struct {
	// Strict 为 true 时，第一条警告级问题即终止导入。
	Strict bool
	// RootID 指定只转换某个节点的子树；为空时从文档根开始。
	RootID string
	// TypePrefix 是复合组件的名称标记前缀，为空时使用 DefaultTypePrefix。
	TypePrefix string
	// Precision 是 Scale 约束锚点的小数位数，0 表示默认两位，负数表示不舍入。
	Precision int
	// Registry 为 nil 时使用 DefaultRegistry。
	Registry *Registry
	// Fonts/Graphics 是预先加载好的资源表，可以为 nil。
	Fonts    FontSource
	Graphics GraphicSource
	Logger   *slog.Logger
}

func (o Options) typePrefix() string {
	if o.TypePrefix == "" {
		return DefaultTypePrefix
	}
	return o.TypePrefix
}

// FontSource 是字体表协作者：按名称查找，查不到时由调用方决定是否使用 Fallback。
type FontSource interface {
	TryResolve(name string) (*ui.FontAsset, bool)
	Fallback() *ui.FontAsset
}

// GraphicSource 是图形表协作者，按节点 ID 或图片引用查找预先导出的图形。
type GraphicSource interface {
	TryResolve(id string) (*ui.Graphic, bool)
	Fallback() *ui.Graphic
}
