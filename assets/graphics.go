package assets

import (
	"sort"

	"github.com/ByLCY/figui/ui"
)

// GraphicTable 以节点 ID 或图片引用为键保存预先导出的图形。
type GraphicTable struct {
	graphics map[string]*ui.Graphic
	fallback *ui.Graphic
}

// NewGraphicTable 返回空图形表。
func NewGraphicTable() *GraphicTable {
	return &GraphicTable{graphics: map[string]*ui.Graphic{}}
}

// Add 加入图形；同 ID 后加入者覆盖前者。
func (t *GraphicTable) Add(g *ui.Graphic) {
	if g == nil || g.ID == "" {
		return
	}
	t.graphics[g.ID] = g
}

// SetFallback 设置回退图形，id 必须已在表中。
func (t *GraphicTable) SetFallback(id string) bool {
	g, ok := t.TryResolve(id)
	if ok {
		t.fallback = g
	}
	return ok
}

// TryResolve 精确匹配 ID。nil 表始终查不到。
func (t *GraphicTable) TryResolve(id string) (*ui.Graphic, bool) {
	if t == nil {
		return nil, false
	}
	g, ok := t.graphics[id]
	return g, ok
}

func (t *GraphicTable) Fallback() *ui.Graphic {
	if t == nil {
		return nil
	}
	return t.fallback
}

func (t *GraphicTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.graphics)
}

// IDs 返回所有图形 ID（排序后）。
func (t *GraphicTable) IDs() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.graphics))
	for id := range t.graphics {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
