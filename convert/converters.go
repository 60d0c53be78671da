package convert

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/figui/binding"
	"github.com/ByLCY/figui/figma"
	"github.com/ByLCY/figui/ui"
)

// PageConverter 处理 DOCUMENT/CANVAS：没有几何，只作为铺满父级的容器。
type PageConverter struct{}

func (PageConverter) Convert(_ *ui.Element, node *figma.Node, b *Builder) (*ui.Element, error) {
	el := ui.NewElement(node.Name, ui.Rect{})
	el.NodeID = node.ID
	el.NodeType = string(node.Type)
	el.Stretch()
	return el, nil
}

// FrameConverter 处理 frame 类节点：背景填充、裁剪。自动布局由 Builder 统一配置。
type FrameConverter struct{}

func (FrameConverter) Convert(_ *ui.Element, node *figma.Node, b *Builder) (*ui.Element, error) {
	el := b.NewElement(node)
	img, err := fillImage(node, b)
	if err != nil {
		return nil, err
	}
	if img != nil {
		ui.AddComponent(el, img)
	}
	if node.ClipsContent {
		ui.AddComponent(el, &ui.Mask{ShowGraphic: img != nil})
	}
	return el, nil
}

// InstanceConverter 先记录实例上的组件属性赋值，再按 frame 处理。
type InstanceConverter struct{}

func (InstanceConverter) Convert(parent *ui.Element, node *figma.Node, b *Builder) (*ui.Element, error) {
	b.ctx.AssignProperties(node)
	if c, ok := b.ctx.Document.Components[node.ComponentID]; ok {
		b.log.Debug("组件实例", nodeAttrs(node), "component", c.Name)
	}
	return FrameConverter{}.Convert(parent, node, b)
}

// GroupConverter 生成铺满父级的透明容器，子节点按最近非编组祖先的坐标系放置。
type GroupConverter struct{}

func (GroupConverter) Convert(_ *ui.Element, node *figma.Node, b *Builder) (*ui.Element, error) {
	el := b.NewElement(node)
	g := b.Geometry(node)
	el.Rect.Authored = ui.Rect{W: g.Size.X, H: g.Size.Y}
	el.Rect.Rotation = 0
	el.Stretch()
	if node.IsMask {
		if err := b.Warn(node, ErrUnsupportedFeature, "编组上的遮罩不受支持，按普通编组处理"); err != nil {
			return nil, err
		}
	}
	return el, nil
}

// VectorConverter 处理矢量类节点：几何生成精灵，填充生成颜色/渐变材质/图片精灵。
type VectorConverter struct{}

func (VectorConverter) SkipChildren(node *figma.Node) bool {
	return node.Type == figma.NodeTypeBooleanOperation
}

func (VectorConverter) Convert(_ *ui.Element, node *figma.Node, b *Builder) (*ui.Element, error) {
	el := b.NewElement(node)
	img, err := fillImage(node, b)
	if err != nil {
		return nil, err
	}
	if img == nil {
		img = &ui.Image{Color: ui.Color{R: 1, G: 1, B: 1, A: node.Alpha()}}
	}
	if img.Sprite == nil {
		sprite, err := geometrySprite(node, b)
		if err != nil {
			return nil, err
		}
		img.Sprite = sprite
	}
	ui.AddComponent(el, img)
	if node.IsMask {
		ui.AddComponent(el, &ui.Mask{})
	}
	return el, nil
}

// geometrySprite 优先使用预先导出的图形，其次使用 fillGeometry。
// 相同几何得到同一个精灵。
func geometrySprite(node *figma.Node, b *Builder) (*ui.Sprite, error) {
	if g, found := b.ctx.Graphic(node.ID); found {
		return b.ctx.Sprite("graphic:"+node.ID, func() *ui.Sprite {
			return &ui.Sprite{Source: g.Path, Width: node.Size.X, Height: node.Size.Y, Graphic: g}
		}), nil
	}
	if len(node.FillGeometry) == 0 {
		return nil, nil
	}
	paths := make([]string, 0, len(node.FillGeometry))
	for i, p := range node.FillGeometry {
		if _, err := canvas.ParseSVGPath(p.Path); err != nil {
			if werr := b.Warn(node, ErrMalformedGeometry, "第 %d 段路径无法解析: %v", i, err); werr != nil {
				return nil, werr
			}
			continue
		}
		paths = append(paths, p.Path)
	}
	if len(paths) == 0 {
		return nil, nil
	}
	key := fmt.Sprintf("geometry:%gx%g:%s", node.Size.X, node.Size.Y, strings.Join(paths, "|"))
	return b.ctx.Sprite(key, func() *ui.Sprite {
		return &ui.Sprite{Paths: paths, Width: node.Size.X, Height: node.Size.Y}
	}), nil
}

// topFill 返回最上层的可见填充（数组末尾在最上层）。
func topFill(fills []figma.Paint) (figma.Paint, bool) {
	for i := len(fills) - 1; i >= 0; i-- {
		if fills[i].IsVisible() {
			return fills[i], true
		}
	}
	return figma.Paint{}, false
}

// fillImage 把最上层填充转换为 Image 组件；没有可见填充时返回 nil。
func fillImage(node *figma.Node, b *Builder) (*ui.Image, error) {
	p, ok := topFill(node.Fills)
	if !ok {
		return nil, nil
	}
	alpha := node.Alpha()
	if p.Opacity != nil {
		alpha *= *p.Opacity
	}
	img := &ui.Image{Color: ui.Color{R: 1, G: 1, B: 1, A: alpha}}
	switch {
	case p.Type == figma.PaintSolid:
		img.Color = solidColor(p, alpha)
	case p.Type.IsGradient():
		img.Material = b.ctx.Material(gradientKey(p), func() *ui.Material {
			m := &ui.Material{Shader: shaderFor(p.Type)}
			for _, s := range p.GradientStops {
				m.Stops = append(m.Stops, ui.GradientStop{Position: s.Position, Color: ui.Color(s.Color)})
			}
			return m
		})
	case p.Type == figma.PaintImage:
		if p.ImageRef == "" {
			return img, b.Warn(node, ErrMalformedGeometry, "图片填充缺少 imageRef")
		}
		g, err := b.Graphic(node, p.ImageRef)
		if err != nil {
			return nil, err
		}
		if g != nil {
			img.Sprite = b.ctx.Sprite("image:"+p.ImageRef, func() *ui.Sprite {
				return &ui.Sprite{ImageRef: p.ImageRef, Source: g.Path, Width: node.Size.X, Height: node.Size.Y, Graphic: g}
			})
		}
	default:
		if err := b.Warn(node, ErrUnsupportedFeature, "填充类型 %s 不受支持", p.Type); err != nil {
			return nil, err
		}
	}
	return img, nil
}

func solidColor(p figma.Paint, alpha float64) ui.Color {
	if p.Color == nil {
		return ui.Color{A: alpha}
	}
	return ui.Color{R: p.Color.R, G: p.Color.G, B: p.Color.B, A: p.Color.A * alpha}
}

func shaderFor(t figma.PaintType) string {
	switch t {
	case figma.PaintGradientRadial:
		return "Gradient/Radial"
	case figma.PaintGradientAngular:
		return "Gradient/Angular"
	case figma.PaintGradientDiamond:
		return "Gradient/Diamond"
	default:
		return "Gradient/Linear"
	}
}

// gradientKey 由渐变类型与色标生成确定性的去重键。
func gradientKey(p figma.Paint) string {
	var sb strings.Builder
	sb.WriteString(string(p.Type))
	for _, s := range p.GradientStops {
		fmt.Fprintf(&sb, ";%.4f:%.4f,%.4f,%.4f,%.4f", s.Position, s.Color.R, s.Color.G, s.Color.B, s.Color.A)
	}
	return sb.String()
}

// TextConverter 生成文本组件：字体名为 Family-Weight[-Italic]，文本可绑定组件属性。
type TextConverter struct{}

func (TextConverter) Convert(_ *ui.Element, node *figma.Node, b *Builder) (*ui.Element, error) {
	el := b.NewElement(node)
	style := node.Style
	if style == nil {
		style = &figma.TypeStyle{}
	}

	content := node.Characters
	if ref, ok := node.ComponentPropertyReferences["characters"]; ok {
		if prop, ok := b.ctx.Property(b.Path(), ref); ok {
			content = fmt.Sprint(prop.Value)
		}
	}
	if props := b.ctx.Properties(b.Path()); len(props) > 0 {
		content = binding.Interpolate(content, props)
	}
	for _, p := range binding.Placeholders(content) {
		b.log.Debug("占位符没有对应的组件属性", nodeAttrs(node), slog.String("placeholder", p))
	}

	name := figma.FontName(style.FontFamily, style.FontWeight, style.Italic)
	font, err := b.Font(node, name)
	if err != nil {
		return nil, err
	}

	color := ui.Color{A: node.Alpha()}
	if p, ok := topFill(node.Fills); ok && p.Type == figma.PaintSolid {
		color = solidColor(p, node.Alpha())
	}
	ui.AddComponent(el, &ui.Text{
		Content:          content,
		FontName:         name,
		Font:             font,
		FontSize:         style.FontSize,
		Bold:             style.FontWeight >= int(figma.WeightBold),
		Italic:           style.Italic,
		ParagraphSpacing: style.ParagraphSpacing,
		Align:            strings.ToLower(style.TextAlignHorizontal),
		Color:            color,
	})
	return el, nil
}

// ButtonConverter 是内置的复合组件：名称带 "<prefix>Button" 标记的节点生成按钮。
type ButtonConverter struct{}

func (ButtonConverter) Convert(parent *ui.Element, node *figma.Node, b *Builder) (*ui.Element, error) {
	var (
		el  *ui.Element
		err error
	)
	if node.Type == figma.NodeTypeInstance {
		el, err = InstanceConverter{}.Convert(parent, node, b)
	} else {
		el, err = FrameConverter{}.Convert(parent, node, b)
	}
	if err != nil {
		return nil, err
	}
	if _, ok := ui.Get[*ui.Image](el); !ok {
		// 按钮需要一个可点击的图形，透明即可
		ui.AddComponent(el, &ui.Image{Color: ui.Color{R: 1, G: 1, B: 1, A: 0}})
	}
	state, err := buttonState(node, b)
	if err != nil {
		el.Destroy()
		return nil, err
	}
	ui.AddComponent(el, &ui.Button{
		TargetGraphic: el,
		State:         state,
		Interactable:  state != ui.ButtonDisabled,
	})
	return el, nil
}

// buttonState 读取实例上 State 变体的赋值（名称不区分大小写，可带 #id 后缀）。
// 未赋值时为 Default；无法识别的值报告 ErrUnsupportedFeature 并按 Default 处理。
func buttonState(node *figma.Node, b *Builder) (ui.ButtonState, error) {
	props := b.ctx.ComponentPropertyAssignments[node.ID]
	for name, p := range props {
		if base, _, _ := strings.Cut(name, "#"); !strings.EqualFold(base, "state") {
			continue
		}
		value, _ := p.Value.(string)
		for _, s := range []ui.ButtonState{ui.ButtonDefault, ui.ButtonHover, ui.ButtonPress, ui.ButtonDisabled} {
			if strings.EqualFold(value, string(s)) {
				return s, nil
			}
		}
		return ui.ButtonDefault, b.Warn(node, ErrUnsupportedFeature, "未知的按钮状态 %q，按 Default 处理", value)
	}
	return ui.ButtonDefault, nil
}
