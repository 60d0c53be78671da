package assets

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/ByLCY/figui/ui"
)

// FontTable 按名称查找字体。查找不区分大小写，并忽略空格与下划线，
// "Open Sans-Bold" 与 "opensans-bold" 视为同一个键。
type FontTable struct {
	fonts    map[string]*ui.FontAsset
	fallback *ui.FontAsset
}

// NewFontTable 返回空字体表。
func NewFontTable() *FontTable {
	return &FontTable{fonts: map[string]*ui.FontAsset{}}
}

// foldName 生成查找键。cases.Caser 有状态，每次调用新建。
func foldName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.NewReplacer(" ", "", "_", "").Replace(name)
	return cases.Fold().String(name)
}

// Add 加入字体；同名字体后加入者覆盖前者。
func (t *FontTable) Add(f *ui.FontAsset) {
	if f == nil || f.Name == "" {
		return
	}
	t.fonts[foldName(f.Name)] = f
}

// SetFallback 设置回退字体，name 必须已在表中。
func (t *FontTable) SetFallback(name string) bool {
	f, ok := t.TryResolve(name)
	if ok {
		t.fallback = f
	}
	return ok
}

// TryResolve 查找字体。nil 表始终查不到。
func (t *FontTable) TryResolve(name string) (*ui.FontAsset, bool) {
	if t == nil {
		return nil, false
	}
	f, ok := t.fonts[foldName(name)]
	return f, ok
}

// Fallback 返回回退字体，未设置时为 nil。
func (t *FontTable) Fallback() *ui.FontAsset {
	if t == nil {
		return nil
	}
	return t.fallback
}

// Len 返回字体数量。
func (t *FontTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.fonts)
}

// Names 返回所有字体名（排序后）。
func (t *FontTable) Names() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.fonts))
	for _, f := range t.fonts {
		out = append(out, f.Name)
	}
	sort.Strings(out)
	return out
}

// Missing 返回 names 中表里没有的字体名，用于导入前提示。
func (t *FontTable) Missing(names []string) []string {
	var out []string
	for _, n := range names {
		if _, ok := t.TryResolve(n); !ok {
			out = append(out, n)
		}
	}
	return out
}
