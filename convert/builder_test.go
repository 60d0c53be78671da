package convert

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/ByLCY/figui/figma"
	"github.com/ByLCY/figui/ui"
)

// 测试辅助：构造节点。

func frame(id string, x, y, w, h float64, children ...*figma.Node) *figma.Node {
	return &figma.Node{
		ID:                id,
		Name:              id,
		Type:              figma.NodeTypeFrame,
		RelativeTransform: figma.Translate(x, y),
		Size:              figma.Vector{X: w, Y: h},
		Children:          children,
	}
}

func group(id string, x, y, w, h float64, children ...*figma.Node) *figma.Node {
	n := frame(id, x, y, w, h, children...)
	n.Type = figma.NodeTypeGroup
	return n
}

func text(id, chars string, family string, weight int) *figma.Node {
	return &figma.Node{
		ID:                id,
		Name:              id,
		Type:              figma.NodeTypeText,
		RelativeTransform: figma.Translate(0, 0),
		Size:              figma.Vector{X: 80, Y: 20},
		Characters:        chars,
		Style:             &figma.TypeStyle{FontFamily: family, FontWeight: weight, FontSize: 14},
	}
}

func scale() *figma.Constraints {
	return &figma.Constraints{Horizontal: figma.ConstraintScale, Vertical: figma.ConstraintScale}
}

func mustConvert(t *testing.T, root *figma.Node, opts Options) *Result {
	t.Helper()
	res, err := Convert(&figma.Document{Name: "test", Root: root}, opts)
	if err != nil {
		t.Fatalf("转换失败: %v", err)
	}
	return res
}

type fontTable struct {
	fonts    map[string]*ui.FontAsset
	fallback *ui.FontAsset
}

func (t fontTable) TryResolve(name string) (*ui.FontAsset, bool) {
	f, ok := t.fonts[name]
	return f, ok
}

func (t fontTable) Fallback() *ui.FontAsset { return t.fallback }

type graphicTable map[string]*ui.Graphic

func (t graphicTable) TryResolve(id string) (*ui.Graphic, bool) {
	g, ok := t[id]
	return g, ok
}

func (graphicTable) Fallback() *ui.Graphic { return nil }

const tolerance = 1e-4

func near(a, b float64) bool { return math.Abs(a-b) <= tolerance }

func anchorsNear(a, b ui.RectTransform) bool {
	return near(a.AnchorMin.X, b.AnchorMin.X) && near(a.AnchorMin.Y, b.AnchorMin.Y) &&
		near(a.AnchorMax.X, b.AnchorMax.X) && near(a.AnchorMax.Y, b.AnchorMax.Y)
}

func sampleDocument() *figma.Node {
	child := frame("card", 25, 25, 50, 50)
	child.Constraints = scale()
	centered := frame("badge", 150, 10, 20, 20)
	centered.Constraints = &figma.Constraints{Horizontal: figma.ConstraintCenter, Vertical: figma.ConstraintMax}
	stretched := frame("bar", -10, 180, 220, 40)
	stretched.Constraints = &figma.Constraints{Horizontal: figma.ConstraintStretch, Vertical: figma.ConstraintScale}
	oversized := frame("huge", -30, -30, 400, 400)
	oversized.Constraints = scale()
	return frame("root", 0, 0, 200, 200,
		child, centered, stretched, oversized,
		group("g", 0, 0, 10, 10, text("label", "hi", "Inter", 400)),
	)
}

// TestConvertIsIdempotent 同一文档用新上下文转换两次，结构与锚点一致。
func TestConvertIsIdempotent(t *testing.T) {
	doc := sampleDocument()
	first := mustConvert(t, doc, Options{})
	second := mustConvert(t, doc, Options{})

	var a, b []*ui.Element
	first.Root.Walk(func(e *ui.Element) bool { a = append(a, e); return true })
	second.Root.Walk(func(e *ui.Element) bool { b = append(b, e); return true })
	if len(a) != len(b) || len(a) != 7 {
		t.Fatalf("元素数不一致: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Name != b[i].Name || !anchorsNear(a[i].Rect, b[i].Rect) {
			t.Fatalf("第 %d 个元素不一致: %+v vs %+v", i, a[i].Rect, b[i].Rect)
		}
	}
}

// TestAnchorsStayInRange 所有输出元素满足 0 ≤ anchorMin ≤ anchorMax ≤ 1。
func TestAnchorsStayInRange(t *testing.T) {
	res := mustConvert(t, sampleDocument(), Options{})
	res.Root.Walk(func(e *ui.Element) bool {
		r := e.Rect
		for _, pair := range [][2]float64{{r.AnchorMin.X, r.AnchorMax.X}, {r.AnchorMin.Y, r.AnchorMax.Y}} {
			if pair[0] < 0 || pair[1] > 1 || pair[0] > pair[1] || math.IsNaN(pair[0]) || math.IsNaN(pair[1]) {
				t.Fatalf("%s 锚点越界: %+v", e.Name, r)
			}
		}
		return true
	})
	malformed := 0
	for _, is := range res.Issues() {
		switch {
		case errors.Is(is, ErrMalformedGeometry):
			malformed++
		case errors.Is(is, ErrMissingAsset):
			// 未配置字体表
		default:
			t.Fatalf("意外的问题: %v", is)
		}
	}
	if malformed == 0 {
		t.Fatalf("超出父级的节点应产生 MalformedGeometry 警告")
	}
}

// TestScaleAnchorsUseParentSize 验证 Scale 约束按父节点尺寸计算。
func TestScaleAnchorsUseParentSize(t *testing.T) {
	res := mustConvert(t, sampleDocument(), Options{})
	card := res.Root.Find("card")
	want := ui.RectTransform{AnchorMin: ui.Vec2{X: 0.13, Y: 0.63}, AnchorMax: ui.Vec2{X: 0.37, Y: 0.87}}
	if !anchorsNear(card.Rect, want) {
		t.Fatalf("card = %+v", card.Rect)
	}
	badge := res.Root.Find("badge")
	if badge.Rect.AnchorMin != (ui.Vec2{X: 0.5, Y: 0}) || badge.Rect.AnchorMax != (ui.Vec2{X: 0.5, Y: 0}) {
		t.Fatalf("badge = %+v", badge.Rect)
	}
	rects := ui.ResolveRects(res.Root, ui.Rect{W: 200, H: 200})
	got := rects[card]
	if !near(got.X, 25) || !near(got.Y, 25) || !near(got.W, 50) || !near(got.H, 50) {
		t.Fatalf("card rect = %+v", got)
	}
}

// TestDedupSharesAssets 相同来源的字体、图片、渐变得到同一个对象。
func TestDedupSharesAssets(t *testing.T) {
	inter := &ui.FontAsset{Name: "Inter-Bold", Family: "Inter"}
	photo := &ui.Graphic{ID: "ref-1", Path: "images/ref-1.png", Format: "png"}
	gradient := []figma.Paint{{
		Type: figma.PaintGradientLinear,
		GradientStops: []figma.ColorStop{
			{Position: 0, Color: figma.Color{R: 1, A: 1}},
			{Position: 1, Color: figma.Color{B: 1, A: 1}},
		},
	}}
	image := []figma.Paint{{Type: figma.PaintImage, ImageRef: "ref-1"}}

	v1 := &figma.Node{ID: "v1", Name: "v1", Type: figma.NodeTypeRectangle, Size: figma.Vector{X: 10, Y: 10}, Fills: image}
	v2 := &figma.Node{ID: "v2", Name: "v2", Type: figma.NodeTypeRectangle, Size: figma.Vector{X: 20, Y: 20}, Fills: image}
	g1 := &figma.Node{ID: "g1", Name: "g1", Type: figma.NodeTypeEllipse, Size: figma.Vector{X: 10, Y: 10}, Fills: gradient}
	g2 := &figma.Node{ID: "g2", Name: "g2", Type: figma.NodeTypeEllipse, Size: figma.Vector{X: 10, Y: 10}, Fills: gradient}
	p1 := &figma.Node{ID: "p1", Name: "p1", Type: figma.NodeTypeVector, Size: figma.Vector{X: 10, Y: 10},
		FillGeometry: []figma.Path{{Path: "M0 0L10 0L10 10Z"}}}
	p2 := &figma.Node{ID: "p2", Name: "p2", Type: figma.NodeTypeVector, Size: figma.Vector{X: 10, Y: 10},
		FillGeometry: []figma.Path{{Path: "M0 0L10 0L10 10Z"}}}

	root := frame("root", 0, 0, 100, 100,
		text("t1", "a", "Inter", 700), text("t2", "b", "Inter", 700),
		v1, v2, g1, g2, p1, p2,
	)
	res := mustConvert(t, root, Options{
		Fonts:    fontTable{fonts: map[string]*ui.FontAsset{"Inter-Bold": inter}},
		Graphics: graphicTable{"ref-1": photo},
	})

	textOf := func(name string) *ui.Text {
		c, ok := ui.Get[*ui.Text](res.Root.Find(name))
		if !ok {
			t.Fatalf("%s 缺少 Text", name)
		}
		return c
	}
	imageOf := func(name string) *ui.Image {
		c, ok := ui.Get[*ui.Image](res.Root.Find(name))
		if !ok {
			t.Fatalf("%s 缺少 Image", name)
		}
		return c
	}
	if textOf("t1").Font != inter || textOf("t2").Font != inter {
		t.Fatalf("字体未共享")
	}
	if s := imageOf("v1").Sprite; s == nil || s != imageOf("v2").Sprite || s.Graphic != photo {
		t.Fatalf("图片精灵未共享: %+v", s)
	}
	if m := imageOf("g1").Material; m == nil || m != imageOf("g2").Material {
		t.Fatalf("渐变材质未共享")
	}
	if s := imageOf("p1").Sprite; s == nil || s != imageOf("p2").Sprite {
		t.Fatalf("几何精灵未共享")
	}
	ctx := res.Context
	if len(ctx.Materials) != 1 || len(ctx.Sprites) != 2 {
		t.Fatalf("materials=%d sprites=%d", len(ctx.Materials), len(ctx.Sprites))
	}
	if len(ctx.FontRequests) != 1 || ctx.FontRequests[0] != "Inter-Bold" {
		t.Fatalf("font requests = %v", ctx.FontRequests)
	}
}

// TestGroupFlatteningIsTransparent 三层编组包裹的 frame 与直接挂在根下时锚点一致。
func TestGroupFlatteningIsTransparent(t *testing.T) {
	direct := frame("target", 25, 25, 50, 50)
	direct.Constraints = scale()
	plain := mustConvert(t, frame("root", 0, 0, 200, 200, direct), Options{})

	nested := frame("target", 25, 25, 50, 50)
	nested.Constraints = scale()
	tree := frame("root", 0, 0, 200, 200,
		group("g1", 5, 5, 100, 100,
			group("g2", 7, 7, 80, 80,
				group("g3", 3, 3, 60, 60, nested))))
	flat := mustConvert(t, tree, Options{})

	a, b := plain.Root.Find("target"), flat.Root.Find("target")
	if !anchorsNear(a.Rect, b.Rect) {
		t.Fatalf("anchors: %+v vs %+v", a.Rect, b.Rect)
	}
	for _, name := range []string{"g1", "g2", "g3"} {
		g := flat.Root.Find(name)
		if g.Rect.AnchorMin != (ui.Vec2{}) || g.Rect.AnchorMax != (ui.Vec2{X: 1, Y: 1}) || g.Rect.OffsetMin != (ui.Vec2{}) {
			t.Fatalf("%s 应铺满父级: %+v", name, g.Rect)
		}
	}
	frameRect := ui.Rect{W: 200, H: 200}
	ra := ui.ResolveRects(plain.Root, frameRect)[a]
	rb := ui.ResolveRects(flat.Root, frameRect)[b]
	if !near(ra.X, rb.X) || !near(ra.Y, rb.Y) || !near(ra.W, rb.W) || !near(ra.H, rb.H) {
		t.Fatalf("rect: %+v vs %+v", ra, rb)
	}
	if tree.Children[0].Size != (figma.Vector{X: 100, Y: 100}) {
		t.Fatalf("编组展平不应修改文档模型")
	}
}

// TestGroupMaskWarns 编组上的遮罩只产生警告。
func TestGroupMaskWarns(t *testing.T) {
	g := group("g", 0, 0, 10, 10, frame("inner", 0, 0, 5, 5))
	g.IsMask = true
	res := mustConvert(t, frame("root", 0, 0, 100, 100, g), Options{})
	if res.Root.Find("inner") == nil {
		t.Fatalf("编组子节点应保留")
	}
	if len(res.Issues()) != 1 || !errors.Is(res.Issues()[0], ErrUnsupportedFeature) {
		t.Fatalf("issues = %v", res.Issues())
	}
}

// TestUnsupportedNodeIsSkipped 未注册类型的节点被跳过，兄弟节点保留，并记录警告日志。
func TestUnsupportedNodeIsSkipped(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	slice := &figma.Node{ID: "s1", Name: "slice", Type: figma.NodeTypeSlice, Children: []*figma.Node{frame("lost", 0, 0, 1, 1)}}
	root := frame("root", 0, 0, 100, 100, frame("a", 0, 0, 10, 10), slice, frame("b", 10, 0, 10, 10))
	res := mustConvert(t, root, Options{Logger: logger})

	if res.Root.Find("a") == nil || res.Root.Find("b") == nil {
		t.Fatalf("兄弟节点应保留")
	}
	if res.Root.Find("lost") != nil || res.Root.Count() != 3 {
		t.Fatalf("不支持的节点子树应被跳过, count=%d", res.Root.Count())
	}
	names := []string{}
	for _, c := range res.Root.Children() {
		names = append(names, c.Name)
	}
	if strings.Join(names, ",") != "a,b" {
		t.Fatalf("子元素顺序 = %v", names)
	}
	issues := res.Issues()
	if len(issues) != 1 || !errors.Is(issues[0], ErrUnsupportedNodeType) || issues[0].NodeID != "s1" {
		t.Fatalf("issues = %v", issues)
	}
	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "node.id=s1") {
		t.Fatalf("缺少警告日志: %s", out)
	}
}

// TestStrictModeFailsOnFirstWarning 严格模式下第一条警告即终止导入。
func TestStrictModeFailsOnFirstWarning(t *testing.T) {
	slice := &figma.Node{ID: "s1", Name: "slice", Type: figma.NodeTypeSlice}
	root := frame("root", 0, 0, 100, 100, frame("a", 0, 0, 10, 10), slice)
	_, err := Convert(&figma.Document{Root: root}, Options{Strict: true})
	if err == nil {
		t.Fatalf("严格模式应失败")
	}
	if !errors.Is(err, ErrUnsupportedNodeType) || !errors.Is(err, ErrFatalImport) {
		t.Fatalf("err = %v", err)
	}
	var is *Issue
	if !errors.As(err, &is) || is.NodeID != "s1" {
		t.Fatalf("应能取出 Issue: %v", err)
	}
}

// TestCyclicDocumentIsFatal 节点环是唯一会终止默认模式导入的问题。
func TestCyclicDocumentIsFatal(t *testing.T) {
	a := frame("a", 0, 0, 10, 10)
	b := frame("b", 0, 0, 10, 10, a)
	a.Children = []*figma.Node{b}
	_, err := Convert(&figma.Document{Root: a}, Options{})
	if !errors.Is(err, ErrFatalImport) || !errors.Is(err, figma.ErrCyclicDocument) {
		t.Fatalf("err = %v", err)
	}
}

// TestConverterPanicIsIsolated 转换器 panic 只影响该节点。
func TestConverterPanicIsIsolated(t *testing.T) {
	reg := DefaultRegistry(DefaultTypePrefix)
	reg.Register(figma.NodeTypeText, ConverterFunc(func(*ui.Element, *figma.Node, *Builder) (*ui.Element, error) {
		panic("boom")
	}))
	root := frame("root", 0, 0, 100, 100, text("t", "x", "Inter", 400), frame("ok", 0, 0, 10, 10))
	res := mustConvert(t, root, Options{Registry: reg})
	if res.Root.Find("ok") == nil || res.Root.Find("t") != nil {
		t.Fatalf("panic 节点应被跳过，兄弟保留")
	}
	if len(res.Issues()) != 1 || !errors.Is(res.Issues()[0], ErrConversionFailed) {
		t.Fatalf("issues = %v", res.Issues())
	}
}

// TestVerticalAutoLayoutEndToEnd 垂直自动布局容器：padding 10、间距 8，grow 与 stretch 子节点。
func TestVerticalAutoLayoutEndToEnd(t *testing.T) {
	grow := 1.0
	first := frame("first", 10, 10, 40, 30)
	first.LayoutGrow = &grow
	second := frame("second", 10, 48, 60, 50)
	second.LayoutAlign = figma.LayoutAlignStretch
	root := frame("root", 0, 0, 100, 200, first, second)
	root.LayoutMode = figma.LayoutModeVertical
	root.PaddingLeft, root.PaddingRight, root.PaddingTop, root.PaddingBottom = 10, 10, 10, 10
	root.ItemSpacing = 8

	res := mustConvert(t, root, Options{})
	lg, ok := ui.Get[*ui.LayoutGroup](res.Root)
	if !ok {
		t.Fatalf("根元素缺少 LayoutGroup")
	}
	if lg.Axis != ui.AxisVertical || lg.Spacing != 8 || lg.Padding != (ui.RectOffset{Left: 10, Right: 10, Top: 10, Bottom: 10}) {
		t.Fatalf("layout group = %+v", *lg)
	}
	if lg.ChildAlignment != ui.UpperLeft || !lg.ChildControlWidth || !lg.ChildControlHeight {
		t.Fatalf("layout group = %+v", *lg)
	}
	if _, ok := ui.Get[*ui.ContentSizeFitter](res.Root); ok {
		t.Fatalf("固定尺寸容器不应有 ContentSizeFitter")
	}

	a, _ := ui.Get[*ui.LayoutElement](res.Root.Find("first"))
	if a == nil || a.FlexibleHeight != 1 || a.PreferredWidth != 40 || a.FlexibleWidth != ui.Unset {
		t.Fatalf("first = %+v", a)
	}
	b, _ := ui.Get[*ui.LayoutElement](res.Root.Find("second"))
	if b == nil || b.FlexibleWidth != 1 || b.PreferredHeight != 50 || b.FlexibleHeight != ui.Unset {
		t.Fatalf("second = %+v", b)
	}
}

// TestTextBindsComponentProperties 文本引用实例上的组件属性。
func TestTextBindsComponentProperties(t *testing.T) {
	label := text("label", "Button", "Inter", 400)
	label.ComponentPropertyReferences = map[string]string{"characters": "Label#1:2"}
	greeting := text("greeting", "Hello ${Name}", "Inter", 400)
	inst := frame("inst", 0, 0, 100, 40, label, greeting)
	inst.Type = figma.NodeTypeInstance
	inst.ComponentProperties = map[string]figma.ComponentProperty{
		"Label#1:2": {Type: "TEXT", Value: "提交"},
		"Name":      {Type: "TEXT", Value: "figui"},
	}
	res := mustConvert(t, frame("root", 0, 0, 200, 200, inst), Options{})

	lt, _ := ui.Get[*ui.Text](res.Root.Find("label"))
	if lt.Content != "提交" {
		t.Fatalf("label = %q", lt.Content)
	}
	gt, _ := ui.Get[*ui.Text](res.Root.Find("greeting"))
	if gt.Content != "Hello figui" {
		t.Fatalf("greeting = %q", gt.Content)
	}
	if _, ok := res.Context.ComponentPropertyAssignments["inst"]["Name"]; !ok {
		t.Fatalf("实例属性未记录")
	}
}

// TestMissingFontFallback 有回退字体时使用回退并记录缺失；没有回退时报告 ErrMissingAsset。
func TestMissingFontFallback(t *testing.T) {
	fallback := &ui.FontAsset{Name: "Fallback-Regular"}
	root := frame("root", 0, 0, 100, 100, text("t", "x", "Roboto", 500))

	res := mustConvert(t, root, Options{Fonts: fontTable{fallback: fallback}})
	txt, _ := ui.Get[*ui.Text](res.Root.Find("t"))
	if txt.Font != fallback || txt.FontName != "Roboto-Medium" {
		t.Fatalf("text = %+v", txt)
	}
	if len(res.Issues()) != 0 || len(res.Context.Misses) != 1 || !res.Context.Misses[0].Fallback {
		t.Fatalf("issues=%v misses=%v", res.Issues(), res.Context.Misses)
	}

	res = mustConvert(t, root, Options{})
	txt, _ = ui.Get[*ui.Text](res.Root.Find("t"))
	if txt == nil || txt.Font != nil {
		t.Fatalf("缺失字体时仍应生成文本且不挂字体")
	}
	if len(res.Issues()) != 1 || !errors.Is(res.Issues()[0], ErrMissingAsset) {
		t.Fatalf("issues = %v", res.Issues())
	}
	if m := res.Context.Misses; len(m) != 1 || m[0].Kind != AssetFont || m[0].NodeID != "t" {
		t.Fatalf("misses = %v", m)
	}
}

// TestDebugJSON 调试输出包含元素树与问题列表。
func TestDebugJSON(t *testing.T) {
	res := mustConvert(t, sampleDocument(), Options{})
	data, err := MarshalDebug(res)
	if err != nil {
		t.Fatalf("MarshalDebug: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"root"`, `"card"`, `"issues"`, `"kind": "几何数据异常"`} {
		if !strings.Contains(s, want) {
			t.Fatalf("调试 JSON 缺少 %s", want)
		}
	}
}

func childNames(e *ui.Element) string {
	names := make([]string, 0, len(e.Children()))
	for _, c := range e.Children() {
		names = append(names, c.Name)
	}
	return strings.Join(names, ",")
}

// TestHiddenAndNilChildrenAreSkipped 隐藏与空子节点不生成元素，也不算问题；其余保持源顺序。
func TestHiddenAndNilChildrenAreSkipped(t *testing.T) {
	hidden := frame("hidden", 0, 0, 10, 10, frame("inside", 0, 0, 1, 1))
	visible := false
	hidden.Visible = &visible
	root := frame("root", 0, 0, 100, 100, frame("a", 0, 0, 10, 10), nil, hidden, frame("b", 20, 0, 10, 10))

	res := mustConvert(t, root, Options{})
	if got := childNames(res.Root); got != "a,b" {
		t.Fatalf("children = %s", got)
	}
	if res.Root.Count() != 3 || res.Root.Find("inside") != nil {
		t.Fatalf("隐藏节点的子树不应转换, count=%d", res.Root.Count())
	}
	if len(res.Issues()) != 0 {
		t.Fatalf("不应产生问题: %v", res.Issues())
	}
}

// TestBooleanOperationOwnsChildren 布尔运算节点整体生成一个图形元素，不展开子节点。
func TestBooleanOperationOwnsChildren(t *testing.T) {
	vector := func(id string) *figma.Node {
		return &figma.Node{
			ID:                id,
			Name:              id,
			Type:              figma.NodeTypeVector,
			RelativeTransform: figma.Translate(0, 0),
			Size:              figma.Vector{X: 10, Y: 10},
		}
	}
	union := &figma.Node{
		ID:                "union",
		Name:              "union",
		Type:              figma.NodeTypeBooleanOperation,
		RelativeTransform: figma.Translate(5, 5),
		Size:              figma.Vector{X: 20, Y: 20},
		Children:          []*figma.Node{vector("v1"), vector("v2")},
	}
	res := mustConvert(t, frame("root", 0, 0, 100, 100, union), Options{})

	el := res.Root.Find("union")
	if el == nil || len(el.Children()) != 0 {
		t.Fatalf("union = %+v", el)
	}
	if res.Root.Count() != 2 || res.Root.Find("v1") != nil {
		t.Fatalf("布尔运算的子节点不应单独转换, count=%d", res.Root.Count())
	}
	if _, ok := ui.Get[*ui.Image](el); !ok {
		t.Fatalf("布尔运算应生成图形组件")
	}
}

// TestRootIDConvertsSubtree RootID 只转换指定子树，找不到时导入失败。
func TestRootIDConvertsSubtree(t *testing.T) {
	doc := &figma.Document{Root: frame("root", 0, 0, 200, 200,
		frame("panel", 10, 10, 100, 100, frame("inner", 0, 0, 10, 10)),
		frame("other", 0, 150, 50, 50),
	)}

	res, err := Convert(doc, Options{RootID: "panel"})
	if err != nil {
		t.Fatalf("转换失败: %v", err)
	}
	if res.Root.Name != "panel" || childNames(res.Root) != "inner" {
		t.Fatalf("root = %s children = %s", res.Root.Name, childNames(res.Root))
	}
	if res.Root.Find("other") != nil || res.Root.Count() != 2 {
		t.Fatalf("不应转换子树以外的节点, count=%d", res.Root.Count())
	}
	if r := res.Root.Rect; r.AnchorMin != (ui.Vec2{}) || r.AnchorMax != (ui.Vec2{X: 1, Y: 1}) {
		t.Fatalf("子树根应铺满: %+v", r)
	}

	if _, err := Convert(doc, Options{RootID: "missing"}); !errors.Is(err, ErrFatalImport) {
		t.Fatalf("未知根节点应失败, got %v", err)
	}
}
