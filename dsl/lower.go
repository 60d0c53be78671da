package dsl

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ByLCY/figui/figma"
	"github.com/ByLCY/figui/layout"
)

// nodeKinds 把命令名映射到节点类型。
var nodeKinds = map[string]figma.NodeType{
	"page":          figma.NodeTypeCanvas,
	"frame":         figma.NodeTypeFrame,
	"group":         figma.NodeTypeGroup,
	"section":       figma.NodeTypeSection,
	"component":     figma.NodeTypeComponent,
	"component-set": figma.NodeTypeComponentSet,
	"instance":      figma.NodeTypeInstance,
	"vector":        figma.NodeTypeVector,
	"boolean":       figma.NodeTypeBooleanOperation,
	"rect":          figma.NodeTypeRectangle,
	"rectangle":     figma.NodeTypeRectangle,
	"ellipse":       figma.NodeTypeEllipse,
	"line":          figma.NodeTypeLine,
	"star":          figma.NodeTypeStar,
	"polygon":       figma.NodeTypeRegularPolygon,
	"text":          figma.NodeTypeText,
	"slice":         figma.NodeTypeSlice,
}

// Load 解析源文件并转换为设计文档。
func Load(r io.Reader) (*figma.Document, error) {
	ast, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("解析 DSL 失败: %w", err)
	}
	return Lower(ast)
}

// LoadString 同 Load。
func LoadString(input string) (*figma.Document, error) {
	return Load(strings.NewReader(input))
}

type lowerer struct {
	seq int
	ids map[string]*Command
}

// Lower 把语法树转换为设计文档并完成父子链接。
// 页面外的顶层节点会放进自动创建的 "Page 1"；未声明 id 的节点按出现顺序编号为 "1:N"。
func Lower(ast *Document) (*figma.Document, error) {
	if ast == nil || ast.Body == nil {
		return nil, fmt.Errorf("文档为空")
	}
	l := &lowerer{ids: map[string]*Command{}}
	root := &figma.Node{ID: "0:0", Name: ast.Name, Type: figma.NodeTypeDocument}
	doc := &figma.Document{Name: ast.Name, Version: ast.Version, Root: root}

	var loose *figma.Node
	for _, st := range ast.Body.Statements {
		switch {
		case st.Assignment != nil:
			a := st.Assignment
			switch a.Key {
			case "name":
				doc.Name = valueToString(a.Value)
			case "version":
				doc.Version = valueToString(a.Value)
			default:
				return nil, fmt.Errorf("%s: 文档不支持属性 %s", a.Pos, a.Key)
			}
		case st.Command != nil:
			n, err := l.node(st.Command)
			if err != nil {
				return nil, err
			}
			if n.Type == figma.NodeTypeCanvas {
				root.Children = append(root.Children, n)
				continue
			}
			if loose == nil {
				loose = &figma.Node{ID: "0:1", Name: "Page 1", Type: figma.NodeTypeCanvas}
				root.Children = append(root.Children, loose)
			}
			loose.Children = append(loose.Children, n)
		case st.Text != nil:
			return nil, fmt.Errorf("文档顶层不能包含文本")
		}
	}

	figma.TraverseDFS(root, func(n *figma.Node) bool {
		if n.Type == figma.NodeTypeComponent {
			if doc.Components == nil {
				doc.Components = map[string]figma.Component{}
			}
			doc.Components[n.ID] = figma.Component{Name: n.Name}
		}
		return true
	})
	if err := doc.Link(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (l *lowerer) node(cmd *Command) (*figma.Node, error) {
	kind, ok := nodeKinds[cmd.Name]
	if !ok {
		return nil, fmt.Errorf("%s: 未知节点类型 %q", cmd.Pos, cmd.Name)
	}
	n := &figma.Node{Type: kind, Name: cmd.Name}
	l.seq++
	autoID := fmt.Sprintf("1:%d", l.seq)

	args := cmd.Args
	if len(args) > 0 && (args[0].Ident != nil || args[0].String != nil) {
		n.Name = args[0].Text()
		args = args[1:]
	}
	nums := make([]float64, 0, len(args))
	for _, a := range args {
		if a.Number == nil {
			return nil, fmt.Errorf("%s: %s 的几何参数必须是数字，得到 %q", a.Pos, cmd.Name, a.Text())
		}
		nums = append(nums, lengthPX(*a.Number))
	}
	var x, y float64
	switch len(nums) {
	case 0:
	case 2:
		n.Size = figma.Vector{X: nums[0], Y: nums[1]}
	case 4:
		x, y = nums[0], nums[1]
		n.Size = figma.Vector{X: nums[2], Y: nums[3]}
	default:
		return nil, fmt.Errorf("%s: %s 需要 0、2 (w h) 或 4 (x y w h) 个几何参数", cmd.Pos, cmd.Name)
	}
	if kind == figma.NodeTypeCanvas && len(nums) > 0 {
		return nil, fmt.Errorf("%s: page 不接受几何参数", cmd.Pos)
	}

	var rotation float64
	if cmd.Block != nil {
		for _, st := range cmd.Block.Statements {
			switch {
			case st.Assignment != nil:
				if st.Assignment.Key == "rotation" {
					v, err := number(st.Assignment)
					if err != nil {
						return nil, fmt.Errorf("%s: rotation: %w", st.Assignment.Pos, err)
					}
					rotation = v
					continue
				}
				if err := applyProperty(n, st.Assignment); err != nil {
					return nil, err
				}
			case st.Command != nil && st.Command.Name == "prop":
				if err := applyProp(n, st.Command); err != nil {
					return nil, err
				}
			case st.Command != nil:
				child, err := l.node(st.Command)
				if err != nil {
					return nil, err
				}
				n.Children = append(n.Children, child)
			case st.Text != nil:
				if kind != figma.NodeTypeText {
					return nil, fmt.Errorf("%s: 只有 text 节点可以包含文本", cmd.Pos)
				}
				n.Characters += string(st.Text.Value)
			}
		}
	}
	if kind != figma.NodeTypeCanvas {
		n.RelativeTransform = transform(x, y, rotation)
	}

	if n.ID == "" {
		n.ID = autoID
	}
	if prev, dup := l.ids[n.ID]; dup {
		return nil, fmt.Errorf("%s: 节点 ID %s 与 %s 处的声明重复", cmd.Pos, n.ID, prev.Pos)
	}
	l.ids[n.ID] = cmd
	return n, nil
}

// transform 生成平移加旋转（角度制，逆时针为正）的矩阵。
func transform(x, y, deg float64) figma.Transform {
	if deg == 0 {
		return figma.Translate(x, y)
	}
	rad := deg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	return figma.Transform{{cos, sin, x}, {-sin, cos, y}}
}

func applyProperty(n *figma.Node, a *Assignment) error {
	var err error
	switch a.Key {
	case "id":
		n.ID = valueToString(a.Value)
	case "visible":
		var v bool
		if v, err = boolean(a); err == nil {
			n.Visible = &v
		}
	case "opacity":
		var v float64
		if v, err = number(a); err == nil {
			n.Opacity = &v
		}
	case "constraints":
		parts := valueToStringSlice(a.Value)
		if len(parts) != 2 {
			return fmt.Errorf("%s: constraints 需要 [水平, 垂直] 两个值", a.Pos)
		}
		var c figma.Constraints
		if err = c.Horizontal.UnmarshalText([]byte(parts[0])); err == nil {
			err = c.Vertical.UnmarshalText([]byte(parts[1]))
		}
		n.Constraints = &c
	case "layout":
		err = n.LayoutMode.UnmarshalText([]byte(valueToString(a.Value)))
	case "align":
		parts := valueToStringSlice(a.Value)
		if len(parts) == 0 || len(parts) > 2 {
			return fmt.Errorf("%s: align 需要 [主轴, 交叉轴]", a.Pos)
		}
		err = n.PrimaryAxisAlignItems.UnmarshalText([]byte(parts[0]))
		if err == nil && len(parts) == 2 {
			err = n.CounterAxisAlignItems.UnmarshalText([]byte(parts[1]))
		}
	case "sizing":
		parts := valueToStringSlice(a.Value)
		if len(parts) == 0 || len(parts) > 2 {
			return fmt.Errorf("%s: sizing 需要 [主轴, 交叉轴]", a.Pos)
		}
		err = n.PrimaryAxisSizingMode.UnmarshalText([]byte(parts[0]))
		if err == nil && len(parts) == 2 {
			err = n.CounterAxisSizingMode.UnmarshalText([]byte(parts[1]))
		}
	case "padding":
		err = applyPadding(n, a)
	case "spacing":
		n.ItemSpacing, err = number(a)
	case "layoutAlign":
		err = n.LayoutAlign.UnmarshalText([]byte(valueToString(a.Value)))
	case "grow":
		var v float64
		if v, err = number(a); err == nil {
			n.LayoutGrow = &v
		}
	case "fill":
		var p figma.Paint
		if p, err = fillPaint(a); err == nil {
			n.Fills = append(n.Fills, p)
		}
	case "gradient":
		var p figma.Paint
		if p, err = gradientPaint(a); err == nil {
			n.Fills = append(n.Fills, p)
		}
	case "path":
		n.FillGeometry = append(n.FillGeometry, figma.Path{Path: valueToString(a.Value), WindingRule: "NONZERO"})
	case "mask":
		n.IsMask, err = boolean(a)
	case "clip":
		n.ClipsContent, err = boolean(a)
	case "component":
		n.ComponentID = valueToString(a.Value)
	case "ref":
		if n.ComponentPropertyReferences == nil {
			n.ComponentPropertyReferences = map[string]string{}
		}
		n.ComponentPropertyReferences["characters"] = valueToString(a.Value)
	case "font", "weight", "italic", "size", "textAlign", "textAlignVertical", "lineHeight", "paragraphSpacing":
		err = applyTextStyle(n, a)
	default:
		return fmt.Errorf("%s: 未知属性 %s", a.Pos, a.Key)
	}
	if err != nil {
		return fmt.Errorf("%s: %s: %w", a.Pos, a.Key, err)
	}
	return nil
}

func applyTextStyle(n *figma.Node, a *Assignment) error {
	if n.Type != figma.NodeTypeText {
		return fmt.Errorf("只有 text 节点支持该属性")
	}
	if n.Style == nil {
		n.Style = &figma.TypeStyle{FontWeight: int(figma.WeightRegular)}
	}
	var err error
	switch a.Key {
	case "font":
		n.Style.FontFamily = valueToString(a.Value)
	case "weight":
		var w float64
		w, err = number(a)
		n.Style.FontWeight = int(w)
	case "italic":
		n.Style.Italic, err = boolean(a)
	case "size":
		n.Style.FontSize, err = number(a)
	case "textAlign":
		n.Style.TextAlignHorizontal = strings.ToUpper(valueToString(a.Value))
	case "textAlignVertical":
		n.Style.TextAlignVertical = strings.ToUpper(valueToString(a.Value))
	case "lineHeight":
		n.Style.LineHeightPx, err = number(a)
	case "paragraphSpacing":
		n.Style.ParagraphSpacing, err = number(a)
	}
	return err
}

// applyPadding 按 CSS 简写解析：1 个值四边相同，2 个值为 [上下, 左右]，4 个值为 [上, 右, 下, 左]。
func applyPadding(n *figma.Node, a *Assignment) error {
	vals, err := numbers(a.Value)
	if err != nil {
		return err
	}
	switch len(vals) {
	case 1:
		n.PaddingTop, n.PaddingRight, n.PaddingBottom, n.PaddingLeft = vals[0], vals[0], vals[0], vals[0]
	case 2:
		n.PaddingTop, n.PaddingBottom = vals[0], vals[0]
		n.PaddingLeft, n.PaddingRight = vals[1], vals[1]
	case 4:
		n.PaddingTop, n.PaddingRight, n.PaddingBottom, n.PaddingLeft = vals[0], vals[1], vals[2], vals[3]
	default:
		return fmt.Errorf("需要 1、2 或 4 个值")
	}
	return nil
}

// fillPaint 接受颜色（纯色填充）或字符串（图片引用）。
func fillPaint(a *Assignment) (figma.Paint, error) {
	v := a.Value
	switch {
	case v.Color != nil:
		c, err := parseColor(*v.Color)
		if err != nil {
			return figma.Paint{}, err
		}
		return figma.Paint{Type: figma.PaintSolid, Color: &c}, nil
	case v.String != nil:
		return figma.Paint{Type: figma.PaintImage, ImageRef: string(*v.String), ScaleMode: "FILL"}, nil
	default:
		return figma.Paint{}, fmt.Errorf("需要颜色或图片引用")
	}
}

// gradientPaint 把颜色数组转成均匀分布色标的线性渐变。
func gradientPaint(a *Assignment) (figma.Paint, error) {
	parts := valueToStringSlice(a.Value)
	if len(parts) < 2 {
		return figma.Paint{}, fmt.Errorf("渐变至少需要两个颜色")
	}
	p := figma.Paint{Type: figma.PaintGradientLinear}
	for i, s := range parts {
		c, err := parseColor(s)
		if err != nil {
			return figma.Paint{}, err
		}
		p.GradientStops = append(p.GradientStops, figma.ColorStop{
			Position: float64(i) / float64(len(parts)-1),
			Color:    c,
		})
	}
	return p, nil
}

// applyProp 处理实例上的组件属性赋值：prop "Label#1:2" "提交"。
func applyProp(n *figma.Node, cmd *Command) error {
	if n.Type != figma.NodeTypeInstance {
		return fmt.Errorf("%s: 只有 instance 节点可以声明 prop", cmd.Pos)
	}
	if len(cmd.Args) != 2 {
		return fmt.Errorf("%s: prop 需要名称和值两个参数", cmd.Pos)
	}
	name, val := cmd.Args[0].Text(), cmd.Args[1]
	prop := figma.ComponentProperty{Type: "TEXT", Value: val.Text()}
	switch {
	case val.Ident != nil && (*val.Ident == "true" || *val.Ident == "false"):
		prop = figma.ComponentProperty{Type: "BOOLEAN", Value: *val.Ident == "true"}
	case val.Ident != nil:
		prop.Type = "VARIANT"
	}
	if n.ComponentProperties == nil {
		n.ComponentProperties = map[string]figma.ComponentProperty{}
	}
	n.ComponentProperties[name] = prop
	return nil
}

func number(a *Assignment) (float64, error) {
	if a.Value == nil || a.Value.Number == nil {
		return 0, fmt.Errorf("需要数字")
	}
	return lengthPX(*a.Value.Number), nil
}

// numbers 读取单个数字或数字数组。
func numbers(val *Value) ([]float64, error) {
	items := []*Value{val}
	if val != nil && val.Array != nil {
		items = val.Array.Values
	}
	out := make([]float64, 0, len(items))
	for _, it := range items {
		if it == nil || it.Number == nil {
			return nil, fmt.Errorf("需要数字")
		}
		out = append(out, lengthPX(*it.Number))
	}
	return out, nil
}

// lengthPX 把带单位的数字换算为设计像素，token 已由词法器校验。
func lengthPX(raw string) float64 {
	return layout.ParseLength(raw).ToPX()
}

func boolean(a *Assignment) (bool, error) {
	switch valueToString(a.Value) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("需要 true 或 false")
	}
}

// parseColor 解析 #RGB、#RRGGBB、#RRGGBBAA，分量归一化到 0..1。
func parseColor(value string) (figma.Color, error) {
	value = strings.TrimPrefix(value, "#")
	if len(value) == 3 {
		value = string([]byte{value[0], value[0], value[1], value[1], value[2], value[2]})
	}
	if len(value) != 6 && len(value) != 8 {
		return figma.Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	c := figma.Color{R: mustHex(value[0:2]), G: mustHex(value[2:4]), B: mustHex(value[4:6]), A: 1}
	if len(value) == 8 {
		c.A = mustHex(value[6:8])
	}
	return c, nil
}

func mustHex(s string) float64 {
	v, _ := strconv.ParseUint(s, 16, 8)
	return float64(v) / 255
}

func valueToString(val *Value) string {
	if val == nil {
		return ""
	}
	switch {
	case val.String != nil:
		return string(*val.String)
	case val.Number != nil:
		return *val.Number
	case val.Color != nil:
		return *val.Color
	case val.Ident != nil:
		return *val.Ident
	default:
		return ""
	}
}

func valueToStringSlice(val *Value) []string {
	if val == nil {
		return nil
	}
	if val.Array != nil {
		out := make([]string, 0, len(val.Array.Values))
		for _, item := range val.Array.Values {
			if s := valueToString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if s := valueToString(val); s != "" {
		return []string{s}
	}
	return nil
}
