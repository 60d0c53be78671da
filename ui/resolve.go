package ui

// 该文件把锚点矩形解析为绝对矩形（左上角原点，Y 向下），供预览渲染与测试使用。
// 布局组采用简化的流式算法：首选尺寸 + 按权重分配剩余空间。

// ResolveRects 以 frame 作为根元素的矩形，计算整棵树每个元素的绝对矩形。
func ResolveRects(root *Element, frame Rect) map[*Element]Rect {
	out := map[*Element]Rect{}
	if root == nil {
		return out
	}
	place(root, frame, out)
	return out
}

// AnchoredRect 根据父矩形计算元素的绝对矩形。
func AnchoredRect(e *Element, parent Rect) Rect {
	rt := e.Rect
	minX := parent.W*rt.AnchorMin.X + rt.OffsetMin.X
	maxX := parent.W*rt.AnchorMax.X + rt.OffsetMax.X
	minY := parent.H*rt.AnchorMin.Y + rt.OffsetMin.Y
	maxY := parent.H*rt.AnchorMax.Y + rt.OffsetMax.Y
	return Rect{
		X: parent.X + minX,
		Y: parent.Y + (parent.H - maxY),
		W: maxX - minX,
		H: maxY - minY,
	}
}

func place(e *Element, rect Rect, out map[*Element]Rect) {
	if fitter, ok := Get[*ContentSizeFitter](e); ok {
		pref := PreferredSize(e)
		if fitter.HorizontalFit == FitPreferredSize {
			rect.W = pref.X
		}
		if fitter.VerticalFit == FitPreferredSize {
			rect.H = pref.Y
		}
	}
	out[e] = rect
	if lg, ok := Get[*LayoutGroup](e); ok {
		flow(e, lg, rect, out)
		return
	}
	for _, child := range e.children {
		place(child, AnchoredRect(child, rect), out)
	}
}

func axisOf(v Vec2, axis Axis) float64 {
	if axis == AxisVertical {
		return v.Y
	}
	return v.X
}

func counterOf(axis Axis) Axis {
	if axis == AxisVertical {
		return AxisHorizontal
	}
	return AxisVertical
}

// childPreferred 返回子元素在布局组中的首选尺寸：LayoutElement 优先，否则取内容或设计稿尺寸。
func childPreferred(c *Element) Vec2 {
	pref := PreferredSize(c)
	if le, ok := Get[*LayoutElement](c); ok {
		if le.PreferredWidth >= 0 {
			pref.X = le.PreferredWidth
		}
		if le.PreferredHeight >= 0 {
			pref.Y = le.PreferredHeight
		}
	}
	return pref
}

func childFlexible(c *Element, axis Axis) float64 {
	le, ok := Get[*LayoutElement](c)
	if !ok {
		return 0
	}
	f := le.FlexibleWidth
	if axis == AxisVertical {
		f = le.FlexibleHeight
	}
	if f < 0 {
		return 0
	}
	return f
}

func controls(lg *LayoutGroup, axis Axis) bool {
	if axis == AxisVertical {
		return lg.ChildControlHeight
	}
	return lg.ChildControlWidth
}

// PreferredSize 返回元素的首选尺寸：布局组为子元素累计值加内边距，其余为设计稿尺寸。
func PreferredSize(e *Element) Vec2 {
	lg, ok := Get[*LayoutGroup](e)
	if !ok {
		return Vec2{X: e.Rect.Authored.W, Y: e.Rect.Authored.H}
	}
	primary, counter := 0.0, 0.0
	for i, c := range e.children {
		p := childPreferred(c)
		primary += axisOf(p, lg.Axis)
		if i > 0 {
			primary += lg.Spacing
		}
		if v := axisOf(p, counterOf(lg.Axis)); v > counter {
			counter = v
		}
	}
	pad := lg.Padding
	if lg.Axis == AxisVertical {
		return Vec2{X: counter + pad.Left + pad.Right, Y: primary + pad.Top + pad.Bottom}
	}
	return Vec2{X: primary + pad.Left + pad.Right, Y: counter + pad.Top + pad.Bottom}
}

func flow(e *Element, lg *LayoutGroup, rect Rect, out map[*Element]Rect) {
	inner := Rect{
		X: rect.X + lg.Padding.Left,
		Y: rect.Y + lg.Padding.Top,
		W: rect.W - lg.Padding.Left - lg.Padding.Right,
		H: rect.H - lg.Padding.Top - lg.Padding.Bottom,
	}
	primaryAxis := lg.Axis
	counterAxis := counterOf(primaryAxis)
	available := inner.W
	counterAvailable := inner.H
	if primaryAxis == AxisVertical {
		available, counterAvailable = inner.H, inner.W
	}

	n := len(e.children)
	sizes := make([]Vec2, n)
	total := 0.0
	totalFlex := 0.0
	for i, c := range e.children {
		pref := childPreferred(c)
		if controls(lg, counterAxis) && childFlexible(c, counterAxis) > 0 {
			if counterAxis == AxisVertical {
				pref.Y = counterAvailable
			} else {
				pref.X = counterAvailable
			}
		}
		sizes[i] = pref
		total += axisOf(pref, primaryAxis)
		if i > 0 {
			total += lg.Spacing
		}
		if controls(lg, primaryAxis) {
			totalFlex += childFlexible(c, primaryAxis)
		}
	}

	leftover := available - total
	if leftover > 0 && totalFlex > 0 {
		for i, c := range e.children {
			if !controls(lg, primaryAxis) {
				break
			}
			f := childFlexible(c, primaryAxis)
			if f <= 0 {
				continue
			}
			extra := leftover * f / totalFlex
			if primaryAxis == AxisVertical {
				sizes[i].Y += extra
			} else {
				sizes[i].X += extra
			}
		}
		leftover = 0
	}

	// 主轴对齐：仅在有剩余空间时生效
	start := 0.0
	if leftover > 0 {
		start = leftover * alignFactor(lg.ChildAlignment, primaryAxis)
	}
	cursor := start
	for i, c := range e.children {
		sz := sizes[i]
		var r Rect
		if primaryAxis == AxisVertical {
			r = Rect{X: inner.X + (counterAvailable-sz.X)*alignFactor(lg.ChildAlignment, counterAxis), Y: inner.Y + cursor, W: sz.X, H: sz.Y}
			cursor += sz.Y + lg.Spacing
		} else {
			r = Rect{X: inner.X + cursor, Y: inner.Y + (counterAvailable-sz.Y)*alignFactor(lg.ChildAlignment, counterAxis), W: sz.X, H: sz.Y}
			cursor += sz.X + lg.Spacing
		}
		place(c, r, out)
	}
}

// alignFactor 把 3×3 对齐点映射为某一轴上的 0 / 0.5 / 1 系数。
func alignFactor(a TextAnchor, axis Axis) float64 {
	idx := a.Horizontal()
	if axis == AxisVertical {
		idx = a.Vertical()
	}
	return float64(idx) / 2
}
