package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	_ "golang.org/x/image/webp"

	"github.com/ByLCY/figui/layout"
	"github.com/ByLCY/figui/renderer"
	"github.com/ByLCY/figui/ui"
)

// lineSpacing 是未指定行高时的行距倍数。
const lineSpacing = 1.2

// Renderer 通过 github.com/tdewolff/canvas 把元素树绘制为 PDF 预览。
// 每个 CANVAS 页面输出为一页；没有页面元素时整棵树输出为一页。
type Renderer struct {
	opts Options

	fontMu   sync.Mutex
	families map[fontKey]*canvas.FontFamily

	imageMu sync.Mutex
	images  map[*ui.Graphic]image.Image
}

var _ renderer.Renderer = (*Renderer)(nil)

type fontKey struct {
	font  *ui.FontAsset
	style canvas.FontStyle
}

// Options 配置预览渲染。
type Options struct {
	// Scale 是设计像素到毫米的换算系数，0 时使用 layout.PxToMm。
	Scale float64
	// Margin 是页面四周的留白，单位为设计像素。
	Margin float64
	// Fallback 用于没有字体资源的文本；为 nil 时跳过这些文本。
	Fallback *ui.FontAsset
}

// NewRenderer 创建渲染器。
func NewRenderer(opts Options) *Renderer {
	return &Renderer{
		opts:     opts,
		families: map[fontKey]*canvas.FontFamily{},
		images:   map[*ui.Graphic]image.Image{},
	}
}

func (r *Renderer) scale() float64 {
	if r.opts.Scale > 0 {
		return r.opts.Scale
	}
	return layout.PxToMm
}

// page 是一页的绘制范围。
type page struct {
	root   *ui.Element
	bounds ui.Rect
}

// Render 把元素树渲染为 PDF 字节切片。
func (r *Renderer) Render(root *ui.Element) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	rects := ui.ResolveRects(root, ui.Rect{})
	pages := collectPages(root, rects)
	if len(pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的元素")
	}

	scale := r.scale()
	margin := r.opts.Margin
	size := func(p page) (float64, float64) {
		return (p.bounds.W + 2*margin) * scale, (p.bounds.H + 2*margin) * scale
	}

	var buf bytes.Buffer
	w, h := size(pages[0])
	writer := pdf.New(&buf, w, h, nil)
	for i, p := range pages {
		w, h := size(p)
		if i > 0 {
			writer.NewPage(w, h)
		}
		c := canvas.New(w, h)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与设计稿保持左上角为原点

		pt := &painter{
			r:      r,
			ctx:    ctx,
			rects:  rects,
			origin: ui.Vec2{X: p.bounds.X - margin, Y: p.bounds.Y - margin},
			scale:  scale,
		}
		if err := pt.draw(p.root); err != nil {
			return nil, err
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// collectPages 以 CANVAS 元素划分页面，跳过没有可见内容的页面。
func collectPages(root *ui.Element, rects map[*ui.Element]ui.Rect) []page {
	var roots []*ui.Element
	root.Walk(func(e *ui.Element) bool {
		if e.NodeType == "CANVAS" {
			roots = append(roots, e)
			return false
		}
		return true
	})
	if len(roots) == 0 {
		roots = []*ui.Element{root}
	}
	var out []page
	for _, pr := range roots {
		if b, ok := contentBounds(pr, rects); ok {
			out = append(out, page{root: pr, bounds: b})
		}
	}
	return out
}

// contentBounds 返回子孙元素矩形的并集（不含 e 自身）。
func contentBounds(e *ui.Element, rects map[*ui.Element]ui.Rect) (ui.Rect, bool) {
	var minX, minY, maxX, maxY float64
	found := false
	e.Walk(func(el *ui.Element) bool {
		if el == e {
			return true
		}
		rc := rects[el]
		if rc.W <= 0 || rc.H <= 0 {
			return true
		}
		if !found {
			minX, minY, maxX, maxY = rc.X, rc.Y, rc.X+rc.W, rc.Y+rc.H
			found = true
			return true
		}
		minX = min(minX, rc.X)
		minY = min(minY, rc.Y)
		maxX = max(maxX, rc.X+rc.W)
		maxY = max(maxY, rc.Y+rc.H)
		return true
	})
	return ui.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, found
}

// painter 绘制一页。坐标换算：mm = (px - origin) * scale。
type painter struct {
	r      *Renderer
	ctx    *canvas.Context
	rects  map[*ui.Element]ui.Rect
	origin ui.Vec2
	scale  float64
}

func (p *painter) box(e *ui.Element) (x, y, w, h float64) {
	rc := p.rects[e]
	return (rc.X - p.origin.X) * p.scale, (rc.Y - p.origin.Y) * p.scale, rc.W * p.scale, rc.H * p.scale
}

// draw 按先序绘制：父元素在子元素之下。
func (p *painter) draw(e *ui.Element) error {
	if img, ok := ui.Get[*ui.Image](e); ok {
		if err := p.drawImage(e, img); err != nil {
			return err
		}
	}
	if txt, ok := ui.Get[*ui.Text](e); ok {
		if err := p.drawText(e, txt); err != nil {
			return err
		}
	}
	for _, child := range e.Children() {
		if err := p.draw(child); err != nil {
			return err
		}
	}
	return nil
}

func (p *painter) drawImage(e *ui.Element, img *ui.Image) error {
	x, y, w, h := p.box(e)
	if w <= 0 || h <= 0 {
		return nil
	}
	fill := img.Color
	if img.Material != nil && len(img.Material.Stops) > 0 {
		// 预览中渐变以首个色标近似
		fill = img.Material.Stops[0].Color
	}

	sprite := img.Sprite
	switch {
	case sprite != nil && sprite.Graphic != nil && sprite.Graphic.Format != "svg":
		decoded, err := p.r.decode(sprite.Graphic)
		if err != nil {
			return err
		}
		dpmm := float64(decoded.Bounds().Dx()) / w
		if dpmm <= 0 {
			dpmm = 1
		}
		p.ctx.DrawImage(x, y, decoded, canvas.DPMM(dpmm))
	case sprite != nil && len(sprite.Paths) > 0:
		sx, sy := p.scale, p.scale
		if sprite.Width > 0 && sprite.Height > 0 {
			sx, sy = w/sprite.Width, h/sprite.Height
		}
		p.setFill(fill)
		for _, d := range sprite.Paths {
			path, err := canvas.ParseSVGPath(d)
			if err != nil {
				return fmt.Errorf("解析精灵 %s 的路径失败: %w", sprite.ID, err)
			}
			p.ctx.DrawPath(x, y, path.Scale(sx, sy))
		}
	default:
		p.setFill(fill)
		p.ctx.DrawPath(x, y, canvas.Rectangle(w, h))
	}
	return nil
}

func (p *painter) setFill(c ui.Color) {
	p.ctx.SetFillColor(colorFromUI(c))
	p.ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	p.ctx.SetStrokeWidth(0)
}

func (p *painter) drawText(e *ui.Element, txt *ui.Text) error {
	font := txt.Font
	if font == nil {
		font = p.r.opts.Fallback
	}
	if font == nil || txt.Content == "" {
		return nil
	}
	x, y, w, _ := p.box(e)
	sizeMM := txt.FontSize * p.scale
	if sizeMM <= 0 {
		return nil
	}
	face, err := p.r.fontFace(font, textStyle(txt), sizeMM*layout.MmToPt, txt.Color)
	if err != nil {
		return err
	}

	var textAlign canvas.TextAlign
	anchorX := x
	switch txt.Align {
	case "center":
		textAlign = canvas.Center
		anchorX = x + w/2
	case "right":
		textAlign = canvas.Right
		anchorX = x + w
	default:
		textAlign = canvas.Left
	}

	metrics := face.Metrics()
	cursorY := y
	for _, line := range greedyWrap(txt.Content, w, face.TextWidth) {
		// 基线位置：行顶加上字体上升部
		p.ctx.DrawText(anchorX, cursorY+metrics.Ascent, canvas.NewTextLine(face, line.Content, textAlign))
		cursorY += sizeMM * lineSpacing
	}
	return nil
}

func textStyle(txt *ui.Text) canvas.FontStyle {
	style := canvas.FontRegular
	if txt.Bold {
		style = canvas.FontBold
	}
	if txt.Italic {
		style |= canvas.FontItalic
	}
	return style
}

func (r *Renderer) fontFace(font *ui.FontAsset, style canvas.FontStyle, sizePt float64, col ui.Color) (*canvas.FontFace, error) {
	family, err := r.fontFamily(font, style)
	if err != nil {
		return nil, err
	}
	return family.Face(sizePt, colorFromUI(col), style, canvas.FontNormal), nil
}

// fontFamily 按字体资源与样式缓存字体族；同一份字体数据按请求的样式注册。
func (r *Renderer) fontFamily(font *ui.FontAsset, style canvas.FontStyle) (*canvas.FontFamily, error) {
	key := fontKey{font: font, style: style}
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if family, ok := r.families[key]; ok {
		return family, nil
	}
	if len(font.Data) == 0 {
		return nil, fmt.Errorf("字体 %s 缺少数据", font.Name)
	}
	name := font.Family
	if name == "" {
		name = font.Name
	}
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(font.Data, 0, style); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", font.Name, err)
	}
	r.families[key] = family
	return family, nil
}

func (r *Renderer) decode(g *ui.Graphic) (image.Image, error) {
	r.imageMu.Lock()
	defer r.imageMu.Unlock()
	if img, ok := r.images[g]; ok {
		return img, nil
	}
	img, _, err := image.Decode(bytes.NewReader(g.Data))
	if err != nil {
		return nil, fmt.Errorf("解码图片 %s 失败: %w", g.ID, err)
	}
	r.images[g] = img
	return img, nil
}

func colorFromUI(c ui.Color) color.Color {
	return canvas.RGBA(c.R, c.G, c.B, c.A)
}
