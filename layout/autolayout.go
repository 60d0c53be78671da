package layout

import (
	"fmt"

	"github.com/ByLCY/figui/figma"
	"github.com/ByLCY/figui/ui"
)

// 自动布局 → 布局组 + ContentSizeFitter + LayoutElement 的映射。

type alignKey struct {
	primary figma.AxisAlign
	counter figma.AxisAlign
}

// 水平容器：主轴为 X（左/中/右），交叉轴为 Y（上/中/下）。
var horizontalAlignment = map[alignKey]ui.TextAnchor{
	{figma.AlignMin, figma.AlignMin}:       ui.UpperLeft,
	{figma.AlignMin, figma.AlignCenter}:    ui.MiddleLeft,
	{figma.AlignMin, figma.AlignMax}:       ui.LowerLeft,
	{figma.AlignCenter, figma.AlignMin}:    ui.UpperCenter,
	{figma.AlignCenter, figma.AlignCenter}: ui.MiddleCenter,
	{figma.AlignCenter, figma.AlignMax}:    ui.LowerCenter,
	{figma.AlignMax, figma.AlignMin}:       ui.UpperRight,
	{figma.AlignMax, figma.AlignCenter}:    ui.MiddleRight,
	{figma.AlignMax, figma.AlignMax}:       ui.LowerRight,
}

// 垂直容器：主轴为 Y（上/中/下），交叉轴为 X（左/中/右）。
var verticalAlignment = map[alignKey]ui.TextAnchor{
	{figma.AlignMin, figma.AlignMin}:       ui.UpperLeft,
	{figma.AlignMin, figma.AlignCenter}:    ui.UpperCenter,
	{figma.AlignMin, figma.AlignMax}:       ui.UpperRight,
	{figma.AlignCenter, figma.AlignMin}:    ui.MiddleLeft,
	{figma.AlignCenter, figma.AlignCenter}: ui.MiddleCenter,
	{figma.AlignCenter, figma.AlignMax}:    ui.MiddleRight,
	{figma.AlignMax, figma.AlignMin}:       ui.LowerLeft,
	{figma.AlignMax, figma.AlignCenter}:    ui.LowerCenter,
	{figma.AlignMax, figma.AlignMax}:       ui.LowerRight,
}

// Alignment 查表得到 (主轴, 交叉轴) 对齐组合对应的子元素对齐点。
// 表外组合（SpaceBetween、Baseline、无布局模式）返回错误，不做静默兜底。
func Alignment(mode figma.LayoutMode, primary, counter figma.AxisAlign) (ui.TextAnchor, error) {
	var table map[alignKey]ui.TextAnchor
	switch mode {
	case figma.LayoutModeHorizontal:
		table = horizontalAlignment
	case figma.LayoutModeVertical:
		table = verticalAlignment
	default:
		return ui.UpperLeft, fmt.Errorf("布局模式 %v 没有对齐表", mode)
	}
	anchor, ok := table[alignKey{primary, counter}]
	if !ok {
		return ui.UpperLeft, fmt.Errorf("%v 容器不支持对齐组合 (%v, %v)", mode, primary, counter)
	}
	return anchor, nil
}

// ContainerConfig 是容器的布局组配置与可选的 ContentSizeFitter。
type ContainerConfig struct {
	Mode   figma.LayoutMode
	Group  *ui.LayoutGroup
	Fitter *ui.ContentSizeFitter
}

// ConfigureContainer 为启用自动布局的容器生成配置。子元素尺寸控制标志初始均为 false，
// 由 ConfigureChild 按子节点的 stretch/grow 逐个打开。
func ConfigureContainer(n *figma.Node) (*ContainerConfig, []Problem) {
	if n.LayoutMode == figma.LayoutModeNone {
		return nil, nil
	}
	var problems []Problem
	cfg := &ContainerConfig{Mode: n.LayoutMode}

	axis := ui.AxisHorizontal
	if n.LayoutMode == figma.LayoutModeVertical {
		axis = ui.AxisVertical
	}

	primary := n.PrimaryAxisAlignItems
	if primary == figma.AlignSpaceBetween || primary == figma.AlignBaseline {
		problems = append(problems, Problem{
			Kind:    ProblemUnsupportedFeature,
			Axis:    "primary",
			Message: fmt.Sprintf("主轴对齐 %v 无法用布局组表达，按 MIN 处理", primary),
		})
		primary = figma.AlignMin
	}
	counter := n.CounterAxisAlignItems
	if counter == figma.AlignSpaceBetween || counter == figma.AlignBaseline {
		problems = append(problems, Problem{
			Kind:    ProblemUnsupportedFeature,
			Axis:    "counter",
			Message: fmt.Sprintf("交叉轴对齐 %v 无法用布局组表达，按 MIN 处理", counter),
		})
		counter = figma.AlignMin
	}
	anchor, err := Alignment(n.LayoutMode, primary, counter)
	if err != nil {
		problems = append(problems, Problem{Kind: ProblemUnsupportedFeature, Message: err.Error()})
	}

	pad := n.Padding()
	cfg.Group = &ui.LayoutGroup{
		Axis:           axis,
		ChildAlignment: anchor,
		Padding:        ui.RectOffset{Left: pad.Left, Right: pad.Right, Top: pad.Top, Bottom: pad.Bottom},
		Spacing:        n.ItemSpacing,
	}

	primaryAuto := n.PrimaryAxisSizingMode == figma.SizingAuto
	counterAuto := n.CounterAxisSizingMode == figma.SizingAuto
	if primaryAuto || counterAuto {
		cfg.Fitter = &ui.ContentSizeFitter{}
		// 主轴/交叉轴到水平/垂直的映射取决于方向
		horizontalAuto, verticalAuto := primaryAuto, counterAuto
		if axis == ui.AxisVertical {
			horizontalAuto, verticalAuto = counterAuto, primaryAuto
		}
		if horizontalAuto {
			cfg.Fitter.HorizontalFit = ui.FitPreferredSize
		}
		if verticalAuto {
			cfg.Fitter.VerticalFit = ui.FitPreferredSize
		}
	}
	return cfg, problems
}

// ConfigureChild 计算子元素在布局组中的尺寸偏好，并在需要时打开容器对应轴的控制标志。
// size 是子节点的设计稿尺寸。
//   - layoutAlign == STRETCH：交叉轴由容器控制，flexible = 1；
//   - layoutGrow > 0：主轴由容器控制，flexible = 1；
//   - 其余轴：preferred = 设计稿尺寸。
func ConfigureChild(cfg *ContainerConfig, child *figma.Node, size figma.Vector) *ui.LayoutElement {
	le := ui.NewLayoutElement()
	if cfg == nil || cfg.Group == nil {
		return le
	}
	horizontal := cfg.Group.Axis == ui.AxisHorizontal

	if child.LayoutAlign == figma.LayoutAlignStretch {
		if horizontal {
			cfg.Group.ChildControlHeight = true
			le.FlexibleHeight = 1
		} else {
			cfg.Group.ChildControlWidth = true
			le.FlexibleWidth = 1
		}
	} else if horizontal {
		le.PreferredHeight = size.Y
	} else {
		le.PreferredWidth = size.X
	}

	if child.Grow() > 0 {
		if horizontal {
			cfg.Group.ChildControlWidth = true
			le.FlexibleWidth = 1
		} else {
			cfg.Group.ChildControlHeight = true
			le.FlexibleHeight = 1
		}
	} else if horizontal {
		le.PreferredWidth = size.X
	} else {
		le.PreferredHeight = size.Y
	}
	return le
}
