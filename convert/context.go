package convert

import (
	"github.com/ByLCY/figui/figma"
	"github.com/ByLCY/figui/ui"
)

// AssetKind 区分缺失的资源类型。
type AssetKind string

const (
	AssetFont    AssetKind = "font"
	AssetGraphic AssetKind = "graphic"
)

// AssetMiss 记录一次资源查找失败，供宿主侧展示。
type AssetMiss struct {
	Kind     AssetKind `json:"kind"`
	Name     string    `json:"name"`
	NodeID   string    `json:"nodeId"`
	NodeName string    `json:"nodeName"`
	Fallback bool      `json:"fallback"`
}

// Context 是一次导入的共享状态：注册表、组件属性赋值，以及去重后的材质、精灵和字体。
// 同一 Context 不能被多个导入并发使用。
type Context struct {
	Document *figma.Document
	Registry *Registry
	Options  Options

	// ComponentPropertyAssignments 以实例节点 ID 为键，记录该实例上的组件属性赋值。
	ComponentPropertyAssignments map[string]map[string]figma.ComponentProperty

	// Materials 按生成顺序排列；Sprites 以来源 ID 为键。
	Materials []*ui.Material
	Sprites   map[string]*ui.Sprite
	// FontRequests 是实际消费过的字体名，按首次请求顺序去重。
	FontRequests []string
	Misses       []AssetMiss
	Issues       []*Issue

	materials map[string]*ui.Material
	fonts     map[string]fontEntry
	graphics  map[string]graphicEntry
}

type fontEntry struct {
	asset *ui.FontAsset
	found bool
}

type graphicEntry struct {
	graphic *ui.Graphic
	found   bool
}

// NewContext 创建一次导入的上下文。opts.Registry 为 nil 时使用内置注册表。
func NewContext(doc *figma.Document, opts Options) *Context {
	reg := opts.Registry
	if reg == nil {
		reg = DefaultRegistry(opts.typePrefix())
	}
	return &Context{
		Document:                     doc,
		Registry:                     reg,
		Options:                      opts,
		ComponentPropertyAssignments: map[string]map[string]figma.ComponentProperty{},
		Sprites:                      map[string]*ui.Sprite{},
		materials:                    map[string]*ui.Material{},
		fonts:                        map[string]fontEntry{},
		graphics:                     map[string]graphicEntry{},
	}
}

// Material 返回 key 对应的材质；首次请求时调用 build 生成并追加到 Materials。
func (c *Context) Material(key string, build func() *ui.Material) *ui.Material {
	if m, ok := c.materials[key]; ok {
		return m
	}
	m := build()
	if m == nil {
		return nil
	}
	m.Key = key
	c.materials[key] = m
	c.Materials = append(c.Materials, m)
	return m
}

// Sprite 返回来源 id 对应的精灵；首次请求时调用 build 生成。
func (c *Context) Sprite(id string, build func() *ui.Sprite) *ui.Sprite {
	if s, ok := c.Sprites[id]; ok {
		return s
	}
	s := build()
	if s == nil {
		return nil
	}
	s.ID = id
	c.Sprites[id] = s
	return s
}

// Font 解析字体名。found 为 false 表示字体表中没有该字体，此时返回值可能是回退字体或 nil。
// 同名请求总是得到同一个指针。
func (c *Context) Font(name string) (asset *ui.FontAsset, found bool) {
	if e, ok := c.fonts[name]; ok {
		return e.asset, e.found
	}
	c.FontRequests = append(c.FontRequests, name)
	var e fontEntry
	if src := c.Options.Fonts; src != nil {
		e.asset, e.found = src.TryResolve(name)
		if !e.found {
			e.asset = src.Fallback()
		}
	}
	c.fonts[name] = e
	return e.asset, e.found
}

// Graphic 按 id 查找预先导出的图形，语义同 Font。
func (c *Context) Graphic(id string) (*ui.Graphic, bool) {
	if e, ok := c.graphics[id]; ok {
		return e.graphic, e.found
	}
	var e graphicEntry
	if src := c.Options.Graphics; src != nil {
		e.graphic, e.found = src.TryResolve(id)
		if !e.found {
			e.graphic = src.Fallback()
		}
	}
	c.graphics[id] = e
	return e.graphic, e.found
}

// AssignProperties 记录实例节点上的组件属性赋值。
func (c *Context) AssignProperties(instance *figma.Node) {
	if len(instance.ComponentProperties) == 0 {
		return
	}
	props := make(map[string]figma.ComponentProperty, len(instance.ComponentProperties))
	for k, v := range instance.ComponentProperties {
		props[k] = v
	}
	c.ComponentPropertyAssignments[instance.ID] = props
}

// Property 沿 path（从根到当前节点的祖先链）自内向外查找最近一个赋值了 name 的实例。
func (c *Context) Property(path []*figma.Node, name string) (figma.ComponentProperty, bool) {
	for i := len(path) - 1; i >= 0; i-- {
		props, ok := c.ComponentPropertyAssignments[path[i].ID]
		if !ok {
			continue
		}
		if v, ok := props[name]; ok {
			return v, true
		}
	}
	return figma.ComponentProperty{}, false
}

// Properties 汇总祖先链上所有实例的属性赋值，内层实例覆盖外层。
func (c *Context) Properties(path []*figma.Node) map[string]any {
	out := map[string]any{}
	for _, n := range path {
		for k, v := range c.ComponentPropertyAssignments[n.ID] {
			out[k] = v.Value
		}
	}
	return out
}

func (c *Context) recordMiss(kind AssetKind, name string, n *figma.Node, fallback bool) {
	m := AssetMiss{Kind: kind, Name: name, Fallback: fallback}
	if n != nil {
		m.NodeID = n.ID
		m.NodeName = n.Name
	}
	c.Misses = append(c.Misses, m)
}
