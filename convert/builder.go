package convert

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ByLCY/figui/figma"
	"github.com/ByLCY/figui/layout"
	"github.com/ByLCY/figui/ui"
)

// Result 是一次导入的产物：输出根元素与填充后的上下文。
type Result struct {
	Root    *ui.Element
	Context *Context
}

// Issues 返回导入过程中记录的问题。
func (r *Result) Issues() []*Issue { return r.Context.Issues }

// Convert 把文档转换为 UI 元素树。非致命问题记录在 Result.Context.Issues 中，
// 只有致命错误（或严格模式下的第一条警告）会返回 error。
func Convert(doc *figma.Document, opts Options) (*Result, error) {
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("%w: 文档为空", ErrFatalImport)
	}
	ctx := NewContext(doc, opts)
	root, err := NewBuilder(ctx).Build()
	if err != nil {
		return nil, err
	}
	return &Result{Root: root, Context: ctx}, nil
}

// Builder 深度优先、先序地遍历文档并生成元素。
// 编组展平通过 overrides 实现：只在本次遍历内替换编组的几何，不修改文档模型。
type Builder struct {
	ctx       *Context
	log       *slog.Logger
	anchors   layout.AnchorOptions
	overrides map[*figma.Node]layout.Geometry
	path      []*figma.Node
	onPath    map[*figma.Node]bool
}

// NewBuilder 为 ctx 创建遍历器。
func NewBuilder(ctx *Context) *Builder {
	return &Builder{
		ctx:       ctx,
		log:       loggerOrNop(ctx.Options.Logger),
		anchors:   layout.AnchorOptions{Precision: ctx.Options.Precision},
		overrides: map[*figma.Node]layout.Geometry{},
		onPath:    map[*figma.Node]bool{},
	}
}

// Context 返回本次导入的共享上下文。
func (b *Builder) Context() *Context { return b.ctx }

// Logger 返回注入的日志器。
func (b *Builder) Logger() *slog.Logger { return b.log }

// Path 返回从根到当前节点（含）的祖先链。返回的切片不应被修改。
func (b *Builder) Path() []*figma.Node { return b.path }

// Build 从文档根（或 Options.RootID 指定的节点）开始转换。
func (b *Builder) Build() (*ui.Element, error) {
	doc := b.ctx.Document
	root := doc.Root
	if id := b.ctx.Options.RootID; id != "" {
		root = doc.FindByID(id)
		if root == nil {
			return nil, fmt.Errorf("%w: 找不到根节点 %s", ErrFatalImport, id)
		}
	}
	b.log.Info("开始转换", slog.String("document", doc.Name), nodeAttrs(root))

	el, err := b.buildNode(nil, root)
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, fmt.Errorf("%w: 根节点 %s (%s) 没有生成元素", ErrFatalImport, root.ID, root.Type)
	}
	el.Stretch()

	b.log.Info("转换完成",
		slog.Int("elements", el.Count()),
		slog.Int("issues", len(b.ctx.Issues)),
		slog.Int("misses", len(b.ctx.Misses)),
	)
	return el, nil
}

// Geometry 返回节点在本次遍历中的有效几何（编组展平后为其最近非编组祖先的几何）。
func (b *Builder) Geometry(n *figma.Node) layout.Geometry {
	if g, ok := b.overrides[n]; ok {
		return g
	}
	return layout.NodeGeometry(n)
}

// NewElement 按节点的有效几何创建元素，锚点尚未解析。
func (b *Builder) NewElement(n *figma.Node) *ui.Element {
	g := b.Geometry(n)
	el := ui.NewElement(n.Name, ui.Rect{X: g.Position.X, Y: g.Position.Y, W: g.Size.X, H: g.Size.Y})
	el.NodeID = n.ID
	el.NodeType = string(n.Type)
	if n.HasTransform() {
		el.Rect.Rotation = n.RelativeTransform.Rotation()
	}
	return el
}

func (b *Builder) buildNode(parent *ui.Element, node *figma.Node) (*ui.Element, error) {
	if b.onPath[node] {
		return nil, b.fatal(node, figma.ErrCyclicDocument, "节点出现在自身的祖先链上")
	}

	conv, err := b.ctx.Registry.Resolve(node)
	if err != nil {
		return nil, b.report(node, ErrUnsupportedNodeType, "跳过该节点及其子树", err)
	}

	if node.IsGroup() {
		b.flattenGroup(node)
	}

	b.onPath[node] = true
	b.path = append(b.path, node)
	defer func() {
		b.path = b.path[:len(b.path)-1]
		delete(b.onPath, node)
	}()

	el, err := b.convertSafely(conv, parent, node)
	if err != nil {
		if errors.Is(err, ErrFatalImport) {
			return nil, err
		}
		return nil, b.report(node, kindOf(err), "跳过该节点及其子树", err)
	}
	if el == nil {
		return nil, nil
	}
	if p, ok := conv.(ChildPolicy); ok && p.SkipChildren(node) {
		return el, nil
	}
	if err := b.buildChildren(el, node); err != nil {
		el.Destroy()
		return nil, err
	}
	return el, nil
}

// flattenGroup 让编组采用最近非编组祖先的 relativeTransform 与 size。
func (b *Builder) flattenGroup(group *figma.Node) {
	for i := len(b.path) - 1; i >= 0; i-- {
		anc := b.path[i]
		if anc.IsGroup() {
			continue
		}
		if anc.HasTransform() {
			b.overrides[group] = b.Geometry(anc)
		}
		return
	}
}

func (b *Builder) convertSafely(conv NodeConverter, parent *ui.Element, node *figma.Node) (el *ui.Element, err error) {
	defer func() {
		if r := recover(); r != nil {
			if el != nil {
				el.Destroy()
			}
			el = nil
			err = fmt.Errorf("%w: 转换器 panic: %v", ErrConversionFailed, r)
		}
	}()
	el, err = conv.Convert(parent, node, b)
	if err != nil && el != nil {
		el.Destroy()
		el = nil
	}
	return el, err
}

// buildChildren 先配置自动布局容器，再按源顺序构建、挂接子元素并解析锚点。
func (b *Builder) buildChildren(el *ui.Element, node *figma.Node) error {
	var cfg *layout.ContainerConfig
	if node.HasAutoLayout() {
		var problems []layout.Problem
		cfg, problems = layout.ConfigureContainer(node)
		if err := b.problems(node, problems); err != nil {
			return err
		}
		if cfg != nil {
			ui.AddComponent(el, cfg.Group)
			if cfg.Fitter != nil {
				ui.AddComponent(el, cfg.Fitter)
			}
		}
	}

	parentSize := b.Geometry(node).Size
	for _, child := range node.Children {
		if child == nil || !child.IsVisible() {
			continue
		}
		childEl, err := b.buildNode(el, child)
		if err != nil {
			return err
		}
		if childEl == nil {
			continue
		}
		childEl.SetParent(el)
		if cfg != nil {
			ui.AddComponent(childEl, layout.ConfigureChild(cfg, child, child.Size))
		}
		if err := b.place(childEl, child, node, parentSize); err != nil {
			return err
		}
	}
	return nil
}

// place 在挂接之后解析子元素的锚点，参考系是父节点的有效尺寸。
func (b *Builder) place(el *ui.Element, child, parent *figma.Node, parentSize figma.Vector) error {
	if child.IsGroup() {
		el.Stretch()
		return nil
	}
	if !parent.HasTransform() {
		// 页面/文档没有尺寸，顶层节点保持设计稿位置的点锚定
		return nil
	}
	a, problems := layout.ResolveNodeAnchors(child, b.Geometry(child), parentSize, b.anchors)
	if err := b.problems(child, problems); err != nil {
		return err
	}
	el.SetAnchors(a.Min, a.Max, parentSize.X, parentSize.Y)
	return nil
}

func (b *Builder) problems(node *figma.Node, problems []layout.Problem) error {
	for _, p := range problems {
		kind := ErrMalformedGeometry
		if p.Kind == layout.ProblemUnsupportedFeature {
			kind = ErrUnsupportedFeature
		}
		if err := b.report(node, kind, p.String(), nil); err != nil {
			return err
		}
	}
	return nil
}

// Warn 供转换器报告警告级问题。返回非 nil（严格模式）时转换器应原样返回该错误。
func (b *Builder) Warn(node *figma.Node, kind error, format string, args ...any) error {
	return b.report(node, kind, fmt.Sprintf(format, args...), nil)
}

func (b *Builder) report(node *figma.Node, kind error, msg string, cause error) error {
	is := newIssue(kind, node, msg)
	is.Err = cause
	is.Fatal = b.ctx.Options.Strict
	b.ctx.Issues = append(b.ctx.Issues, is)

	attrs := []any{nodeAttrs(node), slog.String("kind", kind.Error())}
	if cause != nil {
		attrs = append(attrs, slog.Any("err", cause))
	}
	if is.Fatal {
		b.log.Error(msg, attrs...)
		return is
	}
	b.log.Warn(msg, attrs...)
	return nil
}

func (b *Builder) fatal(node *figma.Node, kind error, msg string) error {
	is := newIssue(kind, node, msg)
	is.Fatal = true
	b.ctx.Issues = append(b.ctx.Issues, is)
	b.log.Error(msg, nodeAttrs(node), slog.String("kind", kind.Error()))
	return is
}

// Font 解析字体。找不到时使用回退字体；连回退也没有时记录缺失并报告 ErrMissingAsset。
func (b *Builder) Font(node *figma.Node, name string) (*ui.FontAsset, error) {
	asset, found := b.ctx.Font(name)
	if found {
		return asset, nil
	}
	b.ctx.recordMiss(AssetFont, name, node, asset != nil)
	if asset != nil {
		b.log.Debug("字体缺失，使用回退字体", nodeAttrs(node), slog.String("font", name), slog.String("fallback", asset.Name))
		return asset, nil
	}
	return nil, b.report(node, ErrMissingAsset, fmt.Sprintf("字体 %s 缺失且没有回退字体", name), nil)
}

// Graphic 解析预先导出的图形，语义同 Font。
func (b *Builder) Graphic(node *figma.Node, id string) (*ui.Graphic, error) {
	g, found := b.ctx.Graphic(id)
	if found {
		return g, nil
	}
	b.ctx.recordMiss(AssetGraphic, id, node, g != nil)
	if g != nil {
		b.log.Debug("图形缺失，使用回退图形", nodeAttrs(node), slog.String("graphic", id))
		return g, nil
	}
	return nil, b.report(node, ErrMissingAsset, fmt.Sprintf("图形 %s 缺失且没有回退图形", id), nil)
}
