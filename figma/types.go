package figma

import (
	"fmt"
	"strings"
)

// 该文件定义文档模型中的枚举：节点类型、约束、自动布局相关取值。
// 所有枚举都实现 encoding.TextMarshaler/TextUnmarshaler，直接兼容设计工具 REST JSON 的大写 token。

// NodeType 是节点的类型标签。
type NodeType string

const (
	NodeTypeDocument         NodeType = "DOCUMENT"
	NodeTypeCanvas           NodeType = "CANVAS"
	NodeTypeFrame            NodeType = "FRAME"
	NodeTypeGroup            NodeType = "GROUP"
	NodeTypeSection          NodeType = "SECTION"
	NodeTypeComponent        NodeType = "COMPONENT"
	NodeTypeComponentSet     NodeType = "COMPONENT_SET"
	NodeTypeInstance         NodeType = "INSTANCE"
	NodeTypeVector           NodeType = "VECTOR"
	NodeTypeBooleanOperation NodeType = "BOOLEAN_OPERATION"
	NodeTypeRectangle        NodeType = "RECTANGLE"
	NodeTypeEllipse          NodeType = "ELLIPSE"
	NodeTypeLine             NodeType = "LINE"
	NodeTypeStar             NodeType = "STAR"
	NodeTypeRegularPolygon   NodeType = "REGULAR_POLYGON"
	NodeTypeText             NodeType = "TEXT"
	NodeTypeSlice            NodeType = "SLICE"
)

// ConstraintType 是单轴约束，水平与垂直共用同一组取值：
// Min = 左/上，Max = 右/下，Stretch = 左右/上下。
type ConstraintType int

const (
	ConstraintMin ConstraintType = iota
	ConstraintMax
	ConstraintCenter
	ConstraintStretch
	ConstraintScale
)

var constraintNames = [...]string{"MIN", "MAX", "CENTER", "STRETCH", "SCALE"}

func (c ConstraintType) String() string {
	if int(c) < 0 || int(c) >= len(constraintNames) {
		return fmt.Sprintf("ConstraintType(%d)", int(c))
	}
	return constraintNames[c]
}

func (c ConstraintType) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *ConstraintType) UnmarshalText(text []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(text))) {
	case "MIN", "LEFT", "TOP":
		*c = ConstraintMin
	case "MAX", "RIGHT", "BOTTOM":
		*c = ConstraintMax
	case "CENTER":
		*c = ConstraintCenter
	case "STRETCH", "LEFT_RIGHT", "TOP_BOTTOM":
		*c = ConstraintStretch
	case "SCALE":
		*c = ConstraintScale
	default:
		return fmt.Errorf("未知约束类型 %q", string(text))
	}
	return nil
}

// AllConstraints 按声明顺序返回 5 种约束，便于遍历完整的约束表。
func AllConstraints() []ConstraintType {
	return []ConstraintType{ConstraintMin, ConstraintMax, ConstraintCenter, ConstraintStretch, ConstraintScale}
}

// LayoutMode 是容器的自动布局方向。
type LayoutMode int

const (
	LayoutModeNone LayoutMode = iota
	LayoutModeHorizontal
	LayoutModeVertical
)

func (m LayoutMode) String() string {
	switch m {
	case LayoutModeNone:
		return "NONE"
	case LayoutModeHorizontal:
		return "HORIZONTAL"
	case LayoutModeVertical:
		return "VERTICAL"
	default:
		return fmt.Sprintf("LayoutMode(%d)", int(m))
	}
}

func (m LayoutMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *LayoutMode) UnmarshalText(text []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(text))) {
	case "", "NONE":
		*m = LayoutModeNone
	case "HORIZONTAL", "ROW":
		*m = LayoutModeHorizontal
	case "VERTICAL", "COLUMN":
		*m = LayoutModeVertical
	default:
		return fmt.Errorf("未知布局模式 %q", string(text))
	}
	return nil
}

// AxisAlign 描述主轴/交叉轴的对齐方式。
// SpaceBetween 仅出现在主轴，Baseline 仅出现在交叉轴。
type AxisAlign int

const (
	AlignMin AxisAlign = iota
	AlignCenter
	AlignMax
	AlignSpaceBetween
	AlignBaseline
)

func (a AxisAlign) String() string {
	switch a {
	case AlignMin:
		return "MIN"
	case AlignCenter:
		return "CENTER"
	case AlignMax:
		return "MAX"
	case AlignSpaceBetween:
		return "SPACE_BETWEEN"
	case AlignBaseline:
		return "BASELINE"
	default:
		return fmt.Sprintf("AxisAlign(%d)", int(a))
	}
}

func (a AxisAlign) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *AxisAlign) UnmarshalText(text []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(text))) {
	case "", "MIN", "START":
		*a = AlignMin
	case "CENTER":
		*a = AlignCenter
	case "MAX", "END":
		*a = AlignMax
	case "SPACE_BETWEEN":
		*a = AlignSpaceBetween
	case "BASELINE":
		*a = AlignBaseline
	default:
		return fmt.Errorf("未知对齐方式 %q", string(text))
	}
	return nil
}

// AxisSizingMode 描述容器在某一轴上是固定尺寸还是包裹内容（hug）。
type AxisSizingMode int

const (
	SizingFixed AxisSizingMode = iota
	SizingAuto
)

func (s AxisSizingMode) String() string {
	if s == SizingAuto {
		return "AUTO"
	}
	return "FIXED"
}

func (s AxisSizingMode) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *AxisSizingMode) UnmarshalText(text []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(text))) {
	case "", "FIXED":
		*s = SizingFixed
	case "AUTO", "HUG":
		*s = SizingAuto
	default:
		return fmt.Errorf("未知尺寸模式 %q", string(text))
	}
	return nil
}

// LayoutAlign 是子节点在自动布局容器交叉轴上的参与方式。
type LayoutAlign int

const (
	LayoutAlignInherit LayoutAlign = iota
	LayoutAlignStretch
	LayoutAlignMin
	LayoutAlignCenter
	LayoutAlignMax
)

func (l LayoutAlign) String() string {
	switch l {
	case LayoutAlignInherit:
		return "INHERIT"
	case LayoutAlignStretch:
		return "STRETCH"
	case LayoutAlignMin:
		return "MIN"
	case LayoutAlignCenter:
		return "CENTER"
	case LayoutAlignMax:
		return "MAX"
	default:
		return fmt.Sprintf("LayoutAlign(%d)", int(l))
	}
}

func (l LayoutAlign) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *LayoutAlign) UnmarshalText(text []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(text))) {
	case "", "INHERIT":
		*l = LayoutAlignInherit
	case "STRETCH":
		*l = LayoutAlignStretch
	case "MIN":
		*l = LayoutAlignMin
	case "CENTER":
		*l = LayoutAlignCenter
	case "MAX":
		*l = LayoutAlignMax
	default:
		return fmt.Errorf("未知 layoutAlign %q", string(text))
	}
	return nil
}

// PaintType 是填充类型。
type PaintType string

const (
	PaintSolid           PaintType = "SOLID"
	PaintGradientLinear  PaintType = "GRADIENT_LINEAR"
	PaintGradientRadial  PaintType = "GRADIENT_RADIAL"
	PaintGradientAngular PaintType = "GRADIENT_ANGULAR"
	PaintGradientDiamond PaintType = "GRADIENT_DIAMOND"
	PaintImage           PaintType = "IMAGE"
)

// IsGradient 判断是否为任一渐变填充。
func (p PaintType) IsGradient() bool {
	return strings.HasPrefix(string(p), "GRADIENT_")
}
