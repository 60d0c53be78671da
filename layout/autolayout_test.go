package layout

import (
	"testing"

	"github.com/ByLCY/figui/figma"
	"github.com/ByLCY/figui/ui"
)

// TestAlignmentTableComplete 覆盖两种方向下全部 9 种 (主轴, 交叉轴) 组合。
func TestAlignmentTableComplete(t *testing.T) {
	aligns := []figma.AxisAlign{figma.AlignMin, figma.AlignCenter, figma.AlignMax}
	cases := []struct {
		mode figma.LayoutMode
		want [3][3]ui.TextAnchor // [primary][counter]
	}{
		{figma.LayoutModeHorizontal, [3][3]ui.TextAnchor{
			{ui.UpperLeft, ui.MiddleLeft, ui.LowerLeft},
			{ui.UpperCenter, ui.MiddleCenter, ui.LowerCenter},
			{ui.UpperRight, ui.MiddleRight, ui.LowerRight},
		}},
		{figma.LayoutModeVertical, [3][3]ui.TextAnchor{
			{ui.UpperLeft, ui.UpperCenter, ui.UpperRight},
			{ui.MiddleLeft, ui.MiddleCenter, ui.MiddleRight},
			{ui.LowerLeft, ui.LowerCenter, ui.LowerRight},
		}},
	}
	count := 0
	for _, tc := range cases {
		for i, p := range aligns {
			for j, c := range aligns {
				got, err := Alignment(tc.mode, p, c)
				if err != nil {
					t.Fatalf("%v (%v,%v) 不应报错: %v", tc.mode, p, c, err)
				}
				if got != tc.want[i][j] {
					t.Fatalf("%v (%v,%v) = %v, want %v", tc.mode, p, c, got, tc.want[i][j])
				}
				count++
			}
		}
	}
	if count != 18 {
		t.Fatalf("组合数 = %d", count)
	}
}

// TestAlignmentRejectsUnmapped 表外组合必须报错而不是静默兜底。
func TestAlignmentRejectsUnmapped(t *testing.T) {
	if _, err := Alignment(figma.LayoutModeHorizontal, figma.AlignSpaceBetween, figma.AlignMin); err == nil {
		t.Fatalf("SpaceBetween 应报错")
	}
	if _, err := Alignment(figma.LayoutModeNone, figma.AlignMin, figma.AlignMin); err == nil {
		t.Fatalf("无布局模式应报错")
	}
}

// TestConfigureContainerDegradesSpaceBetween 验证 SpaceBetween 降级为 Min 并报告问题。
func TestConfigureContainerDegradesSpaceBetween(t *testing.T) {
	n := &figma.Node{
		Type:                  figma.NodeTypeFrame,
		LayoutMode:            figma.LayoutModeHorizontal,
		PrimaryAxisAlignItems: figma.AlignSpaceBetween,
		CounterAxisAlignItems: figma.AlignCenter,
	}
	cfg, problems := ConfigureContainer(n)
	if len(problems) != 1 || problems[0].Kind != ProblemUnsupportedFeature {
		t.Fatalf("problems = %v", problems)
	}
	if cfg.Group.ChildAlignment != ui.MiddleLeft {
		t.Fatalf("alignment = %v", cfg.Group.ChildAlignment)
	}
}

// TestConfigureContainerNoneMode 未启用自动布局时不生成配置。
func TestConfigureContainerNoneMode(t *testing.T) {
	cfg, problems := ConfigureContainer(&figma.Node{Type: figma.NodeTypeFrame})
	if cfg != nil || problems != nil {
		t.Fatalf("cfg = %+v problems = %v", cfg, problems)
	}
}

// TestFitterMappingDependsOnDirection 主轴/交叉轴到水平/垂直的映射随方向交换。
func TestFitterMappingDependsOnDirection(t *testing.T) {
	cases := []struct {
		mode             figma.LayoutMode
		primary, counter figma.AxisSizingMode
		wantH, wantV     ui.FitMode
	}{
		{figma.LayoutModeHorizontal, figma.SizingAuto, figma.SizingFixed, ui.FitPreferredSize, ui.FitUnconstrained},
		{figma.LayoutModeHorizontal, figma.SizingFixed, figma.SizingAuto, ui.FitUnconstrained, ui.FitPreferredSize},
		{figma.LayoutModeVertical, figma.SizingAuto, figma.SizingFixed, ui.FitUnconstrained, ui.FitPreferredSize},
		{figma.LayoutModeVertical, figma.SizingFixed, figma.SizingAuto, ui.FitPreferredSize, ui.FitUnconstrained},
		{figma.LayoutModeVertical, figma.SizingAuto, figma.SizingAuto, ui.FitPreferredSize, ui.FitPreferredSize},
	}
	for _, tc := range cases {
		cfg, _ := ConfigureContainer(&figma.Node{
			Type:                  figma.NodeTypeFrame,
			LayoutMode:            tc.mode,
			PrimaryAxisSizingMode: tc.primary,
			CounterAxisSizingMode: tc.counter,
		})
		if cfg.Fitter == nil {
			t.Fatalf("%v %v/%v 应生成 fitter", tc.mode, tc.primary, tc.counter)
		}
		if cfg.Fitter.HorizontalFit != tc.wantH || cfg.Fitter.VerticalFit != tc.wantV {
			t.Fatalf("%v %v/%v => %+v", tc.mode, tc.primary, tc.counter, *cfg.Fitter)
		}
	}

	cfg, _ := ConfigureContainer(&figma.Node{Type: figma.NodeTypeFrame, LayoutMode: figma.LayoutModeHorizontal})
	if cfg.Fitter != nil {
		t.Fatalf("固定尺寸不应生成 fitter")
	}
}

// TestVerticalContainerScenario 垂直容器：padding 10、间距 8，第一个子节点 grow，第二个 stretch。
func TestVerticalContainerScenario(t *testing.T) {
	grow := 1.0
	first := &figma.Node{Type: figma.NodeTypeFrame, Size: figma.Vector{X: 40, Y: 30}, LayoutGrow: &grow}
	second := &figma.Node{Type: figma.NodeTypeFrame, Size: figma.Vector{X: 60, Y: 50}, LayoutAlign: figma.LayoutAlignStretch}
	root := &figma.Node{
		Type:          figma.NodeTypeFrame,
		LayoutMode:    figma.LayoutModeVertical,
		PaddingLeft:   10,
		PaddingRight:  10,
		PaddingTop:    10,
		PaddingBottom: 10,
		ItemSpacing:   8,
		Children:      []*figma.Node{first, second},
	}

	cfg, problems := ConfigureContainer(root)
	if len(problems) != 0 {
		t.Fatalf("problems = %v", problems)
	}
	g := cfg.Group
	if g.Axis != ui.AxisVertical || g.Spacing != 8 || g.Padding != (ui.RectOffset{Left: 10, Right: 10, Top: 10, Bottom: 10}) {
		t.Fatalf("group = %+v", *g)
	}
	if g.ChildControlWidth || g.ChildControlHeight {
		t.Fatalf("控制标志初始应为 false")
	}

	a := ConfigureChild(cfg, first, first.Size)
	if a.FlexibleHeight != 1 || a.PreferredWidth != 40 || a.FlexibleWidth != ui.Unset || a.PreferredHeight != ui.Unset {
		t.Fatalf("first = %+v", *a)
	}
	b := ConfigureChild(cfg, second, second.Size)
	if b.FlexibleWidth != 1 || b.PreferredHeight != 50 || b.FlexibleHeight != ui.Unset || b.PreferredWidth != ui.Unset {
		t.Fatalf("second = %+v", *b)
	}
	if !g.ChildControlWidth || !g.ChildControlHeight {
		t.Fatalf("grow/stretch 应分别打开主轴/交叉轴控制: %+v", *g)
	}
}

// TestConfigureChildHorizontalDefaults 未参与 grow/stretch 的子节点两轴都使用设计稿尺寸。
func TestConfigureChildHorizontalDefaults(t *testing.T) {
	cfg, _ := ConfigureContainer(&figma.Node{Type: figma.NodeTypeFrame, LayoutMode: figma.LayoutModeHorizontal})
	le := ConfigureChild(cfg, &figma.Node{}, figma.Vector{X: 12, Y: 34})
	if le.PreferredWidth != 12 || le.PreferredHeight != 34 {
		t.Fatalf("le = %+v", *le)
	}
	if cfg.Group.ChildControlWidth || cfg.Group.ChildControlHeight {
		t.Fatalf("不应打开控制标志")
	}
}
