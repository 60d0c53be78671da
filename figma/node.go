package figma

// Node 是设计文档中的一个节点。所有节点种类共用一个结构体，通过 Type 区分；
// 几何与布局信息以能力视图（HasTransform/IsContainer/IsGroup）的方式暴露。
// 加载完成后节点视为只读快照，转换过程不会修改它。
type Node struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     NodeType `json:"type"`
	Visible  *bool    `json:"visible,omitempty"`
	Children []*Node  `json:"children,omitempty"`

	RelativeTransform Transform    `json:"relativeTransform"`
	Size              Vector       `json:"size"`
	Constraints       *Constraints `json:"constraints,omitempty"`

	// 自动布局（仅容器类节点）
	LayoutMode            LayoutMode     `json:"layoutMode,omitempty"`
	PrimaryAxisAlignItems AxisAlign      `json:"primaryAxisAlignItems,omitempty"`
	CounterAxisAlignItems AxisAlign      `json:"counterAxisAlignItems,omitempty"`
	PrimaryAxisSizingMode AxisSizingMode `json:"primaryAxisSizingMode,omitempty"`
	CounterAxisSizingMode AxisSizingMode `json:"counterAxisSizingMode,omitempty"`
	PaddingLeft           float64        `json:"paddingLeft,omitempty"`
	PaddingRight          float64        `json:"paddingRight,omitempty"`
	PaddingTop            float64        `json:"paddingTop,omitempty"`
	PaddingBottom         float64        `json:"paddingBottom,omitempty"`
	ItemSpacing           float64        `json:"itemSpacing,omitempty"`

	// 子节点在自动布局中的参与方式
	LayoutAlign LayoutAlign `json:"layoutAlign,omitempty"`
	LayoutGrow  *float64    `json:"layoutGrow,omitempty"`

	// 外观
	Opacity      *float64 `json:"opacity,omitempty"`
	IsMask       bool     `json:"isMask,omitempty"`
	ClipsContent bool     `json:"clipsContent,omitempty"`
	Fills        []Paint  `json:"fills,omitempty"`
	FillGeometry []Path   `json:"fillGeometry,omitempty"`

	// 文本
	Characters string     `json:"characters,omitempty"`
	Style      *TypeStyle `json:"style,omitempty"`

	// 组件实例
	ComponentID                 string                       `json:"componentId,omitempty"`
	ComponentProperties         map[string]ComponentProperty `json:"componentProperties,omitempty"`
	ComponentPropertyReferences map[string]string            `json:"componentPropertyReferences,omitempty"`

	parent *Node
}

// Constraints 是节点的水平/垂直约束对。
type Constraints struct {
	Horizontal ConstraintType `json:"horizontal"`
	Vertical   ConstraintType `json:"vertical"`
}

// ComponentProperty 是实例上某个组件属性的赋值。
type ComponentProperty struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// Parent 返回 Link 之后的父节点。
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// IsVisible 默认为 true。
func (n *Node) IsVisible() bool {
	return n.Visible == nil || *n.Visible
}

// HasTransform 表示节点携带 relativeTransform/size（除 DOCUMENT、CANVAS 外都有）。
func (n *Node) HasTransform() bool {
	switch n.Type {
	case NodeTypeDocument, NodeTypeCanvas:
		return false
	default:
		return true
	}
}

// IsFrame 表示真正拥有独立坐标系与尺寸的容器。
func (n *Node) IsFrame() bool {
	switch n.Type {
	case NodeTypeFrame, NodeTypeComponent, NodeTypeComponentSet, NodeTypeInstance, NodeTypeSection:
		return true
	default:
		return false
	}
}

// IsGroup 表示纯组织用途、不参与尺寸计算的编组。
func (n *Node) IsGroup() bool {
	return n.Type == NodeTypeGroup
}

// IsContainer 表示可以承载自动布局的节点。
func (n *Node) IsContainer() bool {
	return n.IsFrame()
}

// HasAutoLayout 判断节点是否启用了自动布局。
func (n *Node) HasAutoLayout() bool {
	return n.IsContainer() && n.LayoutMode != LayoutModeNone
}

// Padding 汇总四边内边距。
func (n *Node) Padding() Padding {
	return Padding{Left: n.PaddingLeft, Right: n.PaddingRight, Top: n.PaddingTop, Bottom: n.PaddingBottom}
}

// Grow 返回 layoutGrow，缺省为 0。
func (n *Node) Grow() float64 {
	if n.LayoutGrow == nil {
		return 0
	}
	return *n.LayoutGrow
}

// ConstraintsOrDefault 在缺省时返回 左/上 约束（设计工具的默认值）。
func (n *Node) ConstraintsOrDefault() Constraints {
	if n.Constraints == nil {
		return Constraints{Horizontal: ConstraintMin, Vertical: ConstraintMin}
	}
	return *n.Constraints
}

// Alpha 返回节点不透明度，缺省为 1。
func (n *Node) Alpha() float64 {
	if n.Opacity == nil {
		return 1
	}
	return *n.Opacity
}

// Position 是节点左上角在父坐标系中的位置。
func (n *Node) Position() Vector {
	return n.RelativeTransform.Position()
}
