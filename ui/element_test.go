package ui

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func rectNear(a, b Rect) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.W, b.W) && near(a.H, b.H)
}

func TestNewElementKeepsAuthoredRect(t *testing.T) {
	parent := Rect{X: 0, Y: 0, W: 200, H: 100}
	el := NewElement("child", Rect{X: 20, Y: 10, W: 50, H: 30})
	got := AnchoredRect(el, parent)
	if !rectNear(got, Rect{X: 20, Y: 10, W: 50, H: 30}) {
		t.Fatalf("rect = %+v", got)
	}
}

func TestSetAnchorsPreservesRect(t *testing.T) {
	parent := Rect{X: 5, Y: 7, W: 200, H: 100}
	anchors := [][2]Vec2{
		{{0.5, 0.5}, {0.5, 0.5}},
		{{0, 0}, {1, 1}},
		{{1, 0}, {1, 0}},
		{{0.1, 0.3}, {0.6, 0.9}},
	}
	for _, a := range anchors {
		el := NewElement("c", Rect{X: 20, Y: 10, W: 50, H: 30})
		el.SetAnchors(a[0], a[1], parent.W, parent.H)
		got := AnchoredRect(el, parent)
		want := Rect{X: 25, Y: 17, W: 50, H: 30}
		if !rectNear(got, want) {
			t.Fatalf("anchors %v: rect = %+v, want %+v", a, got, want)
		}
	}
}

func TestStretchFillsParent(t *testing.T) {
	el := NewElement("g", Rect{X: 3, Y: 3, W: 1, H: 1})
	el.Stretch()
	got := AnchoredRect(el, Rect{X: 1, Y: 2, W: 30, H: 40})
	if !rectNear(got, Rect{X: 1, Y: 2, W: 30, H: 40}) {
		t.Fatalf("rect = %+v", got)
	}
}

func TestSetParentKeepsOrderAndDestroy(t *testing.T) {
	root := NewElement("root", Rect{W: 10, H: 10})
	a := NewElement("a", Rect{})
	b := NewElement("b", Rect{})
	c := NewElement("c", Rect{})
	a.SetParent(root)
	b.SetParent(root)
	c.SetParent(b)
	if names := childNames(root); names != "a,b" {
		t.Fatalf("children = %s", names)
	}
	if root.Count() != 4 {
		t.Fatalf("count = %d", root.Count())
	}
	b.Destroy()
	if names := childNames(root); names != "a" {
		t.Fatalf("children after destroy = %s", names)
	}
	if !c.Destroyed() || !b.Destroyed() || b.Parent() != nil {
		t.Fatalf("子树应被销毁")
	}
	a.SetParent(b)
	a.SetParent(root)
	if root.Find("a") != a {
		t.Fatalf("Find 失败")
	}
}

func childNames(e *Element) string {
	names := make([]string, 0, len(e.Children()))
	for _, c := range e.Children() {
		names = append(names, c.Name)
	}
	return strings.Join(names, ",")
}

func TestVerticalFlowWithFlexibleChildren(t *testing.T) {
	root := NewElement("col", Rect{W: 100, H: 200})
	AddComponent(root, &LayoutGroup{
		Axis:               AxisVertical,
		ChildAlignment:     UpperLeft,
		Padding:            RectOffset{Left: 10, Right: 10, Top: 10, Bottom: 10},
		Spacing:            8,
		ChildControlWidth:  true,
		ChildControlHeight: true,
	})
	grow := NewElement("grow", Rect{W: 40, H: 20})
	grow.SetParent(root)
	le := AddComponent(grow, NewLayoutElement())
	le.FlexibleHeight = 1
	le.PreferredWidth = 40

	stretch := NewElement("stretch", Rect{W: 30, H: 50})
	stretch.SetParent(root)
	le2 := AddComponent(stretch, NewLayoutElement())
	le2.FlexibleWidth = 1
	le2.PreferredHeight = 50

	rects := ResolveRects(root, Rect{W: 100, H: 200})
	// 可用高度 180，首选合计 20+8+50=78，剩余 102 全部分给 grow
	if got := rects[grow]; !rectNear(got, Rect{X: 10, Y: 10, W: 40, H: 122}) {
		t.Fatalf("grow = %+v", got)
	}
	if got := rects[stretch]; !rectNear(got, Rect{X: 10, Y: 140, W: 80, H: 50}) {
		t.Fatalf("stretch = %+v", got)
	}
}

func TestContentSizeFitterUsesPreferredSize(t *testing.T) {
	root := NewElement("row", Rect{W: 500, H: 500})
	AddComponent(root, &LayoutGroup{Axis: AxisHorizontal, Spacing: 5, Padding: RectOffset{Left: 1, Right: 1, Top: 2, Bottom: 2}})
	AddComponent(root, &ContentSizeFitter{HorizontalFit: FitPreferredSize, VerticalFit: FitPreferredSize})
	NewElement("a", Rect{W: 10, H: 20}).SetParent(root)
	NewElement("b", Rect{W: 30, H: 5}).SetParent(root)

	rects := ResolveRects(root, Rect{W: 500, H: 500})
	if got := rects[root]; !near(got.W, 47) || !near(got.H, 24) {
		t.Fatalf("root = %+v", got)
	}
	if got := rects[root.Find("b")]; !near(got.X, 16) {
		t.Fatalf("b.x = %v", got.X)
	}
}

func TestMarshalJSONIncludesComponentsAndChildren(t *testing.T) {
	root := NewElement("root", Rect{W: 10, H: 10})
	AddComponent(root, &Mask{ShowGraphic: true})
	NewElement("leaf", Rect{}).SetParent(root)
	data, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"type":"Mask"`, `"name":"leaf"`, `"anchorMin"`} {
		if !strings.Contains(s, want) {
			t.Fatalf("JSON 缺少 %s: %s", want, s)
		}
	}
}

func TestTextAnchorComponents(t *testing.T) {
	if LowerRight.Horizontal() != 2 || LowerRight.Vertical() != 2 {
		t.Fatalf("LowerRight 分量错误")
	}
	if MiddleCenter.String() != "MiddleCenter" {
		t.Fatalf("String = %s", MiddleCenter)
	}
}
