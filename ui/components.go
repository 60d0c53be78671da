package ui

import "fmt"

// Component 是挂在元素上的行为/样式组件。
type Component interface {
	ComponentName() string
}

// AddComponent 附加组件并返回它，方便链式初始化。
func AddComponent[T Component](e *Element, c T) T {
	e.Components = append(e.Components, c)
	return c
}

// Get 返回元素上第一个类型为 T 的组件。
func Get[T Component](e *Element) (T, bool) {
	for _, c := range e.Components {
		if v, ok := c.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Axis 是布局组的排列方向。
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

func (a Axis) String() string {
	if a == AxisVertical {
		return "vertical"
	}
	return "horizontal"
}

func (a Axis) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// TextAnchor 是布局组在 3×3 网格中的子元素对齐点。
type TextAnchor int

const (
	UpperLeft TextAnchor = iota
	UpperCenter
	UpperRight
	MiddleLeft
	MiddleCenter
	MiddleRight
	LowerLeft
	LowerCenter
	LowerRight
)

var textAnchorNames = [...]string{
	"UpperLeft", "UpperCenter", "UpperRight",
	"MiddleLeft", "MiddleCenter", "MiddleRight",
	"LowerLeft", "LowerCenter", "LowerRight",
}

func (t TextAnchor) String() string {
	if int(t) < 0 || int(t) >= len(textAnchorNames) {
		return fmt.Sprintf("TextAnchor(%d)", int(t))
	}
	return textAnchorNames[t]
}

func (t TextAnchor) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Horizontal 返回对齐点的水平分量：0 左，1 中，2 右。
func (t TextAnchor) Horizontal() int { return int(t) % 3 }

// Vertical 返回对齐点的垂直分量：0 上，1 中，2 下。
func (t TextAnchor) Vertical() int { return int(t) / 3 }

// RectOffset 是四边内边距（像素）。
type RectOffset struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// LayoutGroup 是水平/垂直流式容器。ChildControl* 为 true 时，容器接管子元素在该轴上的尺寸。
type LayoutGroup struct {
	Axis                   Axis       `json:"axis"`
	ChildAlignment         TextAnchor `json:"childAlignment"`
	Padding                RectOffset `json:"padding"`
	Spacing                float64    `json:"spacing"`
	ChildControlWidth      bool       `json:"childControlWidth"`
	ChildControlHeight     bool       `json:"childControlHeight"`
	ChildScaleWidth        bool       `json:"childScaleWidth"`
	ChildScaleHeight       bool       `json:"childScaleHeight"`
	ChildForceExpandWidth  bool       `json:"childForceExpandWidth"`
	ChildForceExpandHeight bool       `json:"childForceExpandHeight"`
}

func (*LayoutGroup) ComponentName() string { return "LayoutGroup" }

// FitMode 是 ContentSizeFitter 在某一轴上的策略。
type FitMode int

const (
	FitUnconstrained FitMode = iota
	FitMinSize
	FitPreferredSize
)

func (f FitMode) String() string {
	switch f {
	case FitMinSize:
		return "min"
	case FitPreferredSize:
		return "preferred"
	default:
		return "unconstrained"
	}
}

func (f FitMode) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// ContentSizeFitter 让元素尺寸跟随子元素累计的首选尺寸。
type ContentSizeFitter struct {
	HorizontalFit FitMode `json:"horizontalFit"`
	VerticalFit   FitMode `json:"verticalFit"`
}

func (*ContentSizeFitter) ComponentName() string { return "ContentSizeFitter" }

// Unset 表示 LayoutElement 中未设置的尺寸字段。
const Unset = -1.0

// LayoutElement 是子元素在布局组中的尺寸偏好。
type LayoutElement struct {
	PreferredWidth  float64 `json:"preferredWidth"`
	PreferredHeight float64 `json:"preferredHeight"`
	FlexibleWidth   float64 `json:"flexibleWidth"`
	FlexibleHeight  float64 `json:"flexibleHeight"`
}

// NewLayoutElement 返回所有字段均未设置的 LayoutElement。
func NewLayoutElement() *LayoutElement {
	return &LayoutElement{PreferredWidth: Unset, PreferredHeight: Unset, FlexibleWidth: Unset, FlexibleHeight: Unset}
}

func (*LayoutElement) ComponentName() string { return "LayoutElement" }

// Color 使用 0..1 浮点分量。
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// White 是默认着色。
var White = Color{R: 1, G: 1, B: 1, A: 1}

// Text 是文本渲染组件。Font 为 nil 表示字体缺失。
type Text struct {
	Content          string     `json:"content"`
	FontName         string     `json:"fontName"`
	Font             *FontAsset `json:"-"`
	FontSize         float64    `json:"fontSize"`
	Bold             bool       `json:"bold,omitempty"`
	Italic           bool       `json:"italic,omitempty"`
	ParagraphSpacing float64    `json:"paragraphSpacing,omitempty"`
	Align            string     `json:"align,omitempty"`
	Color            Color      `json:"color"`
}

func (*Text) ComponentName() string { return "Text" }

// Image 是图形渲染组件。
type Image struct {
	Sprite   *Sprite   `json:"-"`
	Material *Material `json:"-"`
	Color    Color     `json:"color"`
}

func (*Image) ComponentName() string { return "Image" }

// ButtonState 是按钮实例所处的交互状态。
type ButtonState string

const (
	ButtonDefault  ButtonState = "Default"
	ButtonHover    ButtonState = "Hover"
	ButtonPress    ButtonState = "Press"
	ButtonDisabled ButtonState = "Disabled"
)

// Button 是复合组件转换器生成的交互组件。
type Button struct {
	TargetGraphic *Element    `json:"-"`
	State         ButtonState `json:"state"`
	Interactable  bool        `json:"interactable"`
}

func (*Button) ComponentName() string { return "Button" }

// Mask 让子元素按自身图形裁剪。
type Mask struct {
	ShowGraphic bool `json:"showGraphic"`
}

func (*Mask) ComponentName() string { return "Mask" }
