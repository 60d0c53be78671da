package ui

// 该文件定义输出的 UI 元素树：每个元素持有一个锚点矩形（RectTransform）、
// 子元素（独占所有权）以及若干附加组件。

// Vec2 是二维向量。锚点分量取值 0..1，y 轴 0 表示底边。
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect 是轴对齐矩形，(X, Y) 为左上角，Y 向下。
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// RectTransform 用锚点 + 像素偏移描述元素在父矩形中的位置。
// Authored 记录设计稿中的原始矩形（父坐标系，左上角原点），锚点重算时用它保持视觉位置不变。
type RectTransform struct {
	AnchorMin Vec2    `json:"anchorMin"`
	AnchorMax Vec2    `json:"anchorMax"`
	OffsetMin Vec2    `json:"offsetMin"`
	OffsetMax Vec2    `json:"offsetMax"`
	Pivot     Vec2    `json:"pivot"`
	Rotation  float64 `json:"rotation,omitempty"`
	Authored  Rect    `json:"authored"`
}

// Element 是输出层级中的一个节点。
type Element struct {
	Name       string        `json:"name"`
	NodeID     string        `json:"nodeId,omitempty"`
	NodeType   string        `json:"nodeType,omitempty"`
	Rect       RectTransform `json:"rect"`
	Components []Component   `json:"-"`

	parent    *Element
	children  []*Element
	destroyed bool
}

// NewElement 创建元素，并以左上角点锚定的方式初始化矩形，使其在锚点解析前就处于设计稿位置。
func NewElement(name string, authored Rect) *Element {
	el := &Element{Name: name}
	el.Rect.Pivot = Vec2{X: 0.5, Y: 0.5}
	el.Rect.Authored = authored
	el.Rect.AnchorMin = Vec2{X: 0, Y: 1}
	el.Rect.AnchorMax = Vec2{X: 0, Y: 1}
	el.Rect.OffsetMin = Vec2{X: authored.X, Y: -(authored.Y + authored.H)}
	el.Rect.OffsetMax = Vec2{X: authored.X + authored.W, Y: -authored.Y}
	return el
}

// Parent 返回父元素。
func (e *Element) Parent() *Element { return e.parent }

// Children 返回子元素（按绘制顺序）。返回的切片不应被修改。
func (e *Element) Children() []*Element { return e.children }

// SetParent 将元素挂到 parent 下（追加到末尾）；parent 为 nil 时仅从原父元素脱离。
func (e *Element) SetParent(parent *Element) {
	if e.parent == parent {
		return
	}
	if e.parent != nil {
		e.parent.removeChild(e)
	}
	e.parent = parent
	if parent != nil {
		parent.children = append(parent.children, e)
	}
}

func (e *Element) removeChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i:i], e.children[i+1:]...)
			return
		}
	}
}

// Destroy 从父元素脱离并销毁整棵子树。
func (e *Element) Destroy() {
	if e.parent != nil {
		e.parent.removeChild(e)
		e.parent = nil
	}
	e.Walk(func(el *Element) bool {
		el.destroyed = true
		return true
	})
	e.children = nil
}

// Destroyed 报告元素是否已被销毁。
func (e *Element) Destroyed() bool { return e.destroyed }

// Walk 先序遍历子树；fn 返回 false 时跳过该元素的子树。
func (e *Element) Walk(fn func(*Element) bool) {
	if e == nil || !fn(e) {
		return
	}
	for _, c := range e.children {
		c.Walk(fn)
	}
}

// Count 返回子树中的元素数（含自身）。
func (e *Element) Count() int {
	n := 0
	e.Walk(func(*Element) bool { n++; return true })
	return n
}

// Find 按名称在子树中查找第一个元素。
func (e *Element) Find(name string) *Element {
	var found *Element
	e.Walk(func(el *Element) bool {
		if found != nil {
			return false
		}
		if el.Name == name {
			found = el
			return false
		}
		return true
	})
	return found
}

// Stretch 让元素铺满父矩形：锚点 (0,0)-(1,1)，偏移为 0。
func (e *Element) Stretch() {
	e.Rect.AnchorMin = Vec2{X: 0, Y: 0}
	e.Rect.AnchorMax = Vec2{X: 1, Y: 1}
	e.Rect.OffsetMin = Vec2{}
	e.Rect.OffsetMax = Vec2{}
}

// SetAnchors 设置锚点，并根据父尺寸重算偏移，使元素仍处于 Authored 矩形的位置。
// 父坐标系 Y 向下，而锚点空间 Y 向上，这里做一次翻转。
func (e *Element) SetAnchors(min, max Vec2, parentW, parentH float64) {
	a := e.Rect.Authored
	left := a.X
	right := a.X + a.W
	bottom := parentH - (a.Y + a.H)
	top := parentH - a.Y

	e.Rect.AnchorMin = min
	e.Rect.AnchorMax = max
	e.Rect.OffsetMin = Vec2{X: left - min.X*parentW, Y: bottom - min.Y*parentH}
	e.Rect.OffsetMax = Vec2{X: right - max.X*parentW, Y: top - max.Y*parentH}
}
