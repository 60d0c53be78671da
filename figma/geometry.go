package figma

import "math"

// Vector 是二维向量，单位为设计工具像素。
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Transform 是 2×3 仿射矩阵 [[a, c, tx], [b, d, ty]]，
// 表示节点在父节点局部坐标系中的摆放（Y 轴向下）。
type Transform [2][3]float64

// Identity 返回单位矩阵。
func Identity() Transform {
	return Transform{{1, 0, 0}, {0, 1, 0}}
}

// Translate 返回只包含平移的矩阵。
func Translate(x, y float64) Transform {
	return Transform{{1, 0, x}, {0, 1, y}}
}

// Position 返回平移分量。
func (t Transform) Position() Vector {
	return Vector{X: t[0][2], Y: t[1][2]}
}

// Rotation 返回旋转角（角度制，逆时针为正）；零矩阵视为无旋转。
func (t Transform) Rotation() float64 {
	a, b := t[0][0], t[1][0]
	if a == 0 && b == 0 {
		return 0
	}
	deg := math.Atan2(-b, a) * 180 / math.Pi
	if deg == 0 {
		return 0 // 避免 -0
	}
	return deg
}

// Padding 是容器四边内边距。
type Padding struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Color 使用 0..1 的浮点分量，与 REST JSON 保持一致。
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// ColorStop 是渐变中的一个色标。
type ColorStop struct {
	Position float64 `json:"position"`
	Color    Color   `json:"color"`
}

// Paint 描述一次填充。
type Paint struct {
	Type          PaintType   `json:"type"`
	Visible       *bool       `json:"visible,omitempty"`
	Opacity       *float64    `json:"opacity,omitempty"`
	Color         *Color      `json:"color,omitempty"`
	GradientStops []ColorStop `json:"gradientStops,omitempty"`
	ImageRef      string      `json:"imageRef,omitempty"`
	ScaleMode     string      `json:"scaleMode,omitempty"`
}

// IsVisible 默认为 true。
func (p Paint) IsVisible() bool { return p.Visible == nil || *p.Visible }

// Path 是矢量几何的一段 SVG path data。
type Path struct {
	Path        string `json:"path"`
	WindingRule string `json:"windingRule,omitempty"`
}

// TypeStyle 是文本节点的排版样式。
type TypeStyle struct {
	FontFamily          string  `json:"fontFamily"`
	FontPostScriptName  string  `json:"fontPostScriptName,omitempty"`
	FontWeight          int     `json:"fontWeight"`
	Italic              bool    `json:"italic,omitempty"`
	FontSize            float64 `json:"fontSize"`
	ParagraphSpacing    float64 `json:"paragraphSpacing,omitempty"`
	TextAlignHorizontal string  `json:"textAlignHorizontal,omitempty"`
	TextAlignVertical   string  `json:"textAlignVertical,omitempty"`
	LineHeightPx        float64 `json:"lineHeightPx,omitempty"`
}
