package layout

import (
	"fmt"
	"math"

	"github.com/ByLCY/figui/figma"
	"github.com/ByLCY/figui/ui"
)

// 约束 → 锚点的解析。锚点空间 Y 轴向上（0 为底边），设计稿坐标 Y 轴向下，
// 因此垂直方向的 Min（上）映射到锚点 1，Max（下）映射到锚点 0。

// DefaultPrecision 是 Scale 约束百分比保留的小数位数。
const DefaultPrecision = 2

// Anchors 是解析后的锚点对。
type Anchors struct {
	Min ui.Vec2 `json:"min"`
	Max ui.Vec2 `json:"max"`
}

// AnchorOptions 控制锚点解析的数值策略。
// Precision 为 0 时使用 DefaultPrecision，为负数时不做舍入。
type AnchorOptions struct {
	Precision int
}

func (o AnchorOptions) precision() int {
	if o.Precision == 0 {
		return DefaultPrecision
	}
	return o.Precision
}

// Geometry 是参与解析的节点几何：位置为父坐标系中的左上角。
type Geometry struct {
	Position figma.Vector
	Size     figma.Vector
}

// NodeGeometry 取节点自身的 relativeTransform 与 size。
func NodeGeometry(n *figma.Node) Geometry {
	return Geometry{Position: n.Position(), Size: n.Size}
}

// ResolveNodeAnchors 解析节点的锚点。编组（非 frame）没有独立的约束数据，
// 一律按 Scale/Scale 从几何计算。
// convert.Builder 在展平编组时直接拉伸编组元素，不会走到编组分支；
// 该分支供单独计算编组锚点的调用方使用。
func ResolveNodeAnchors(n *figma.Node, geom Geometry, parentSize figma.Vector, opts AnchorOptions) (Anchors, []Problem) {
	c := n.ConstraintsOrDefault()
	if n.IsGroup() && !n.IsFrame() {
		c = figma.Constraints{Horizontal: figma.ConstraintScale, Vertical: figma.ConstraintScale}
	}
	return ResolveAnchors(c, geom.Position, geom.Size, parentSize, opts)
}

// ResolveAnchors 是纯函数：根据约束对、子节点位置/尺寸与父尺寸计算锚点。
// 结果始终满足 0 ≤ Min ≤ Max ≤ 1；无法满足时以 Problem 报告并退化为点锚定。
func ResolveAnchors(c figma.Constraints, pos, size, parentSize figma.Vector, opts AnchorOptions) (Anchors, []Problem) {
	var problems []Problem
	minX, maxX, p := resolveAxis(c.Horizontal, pos.X, size.X, parentSize.X, false, opts.precision())
	problems = append(problems, p...)
	minY, maxY, p := resolveAxis(c.Vertical, pos.Y, size.Y, parentSize.Y, true, opts.precision())
	problems = append(problems, p...)

	a := Anchors{Min: ui.Vec2{X: minX, Y: minY}, Max: ui.Vec2{X: maxX, Y: maxY}}
	return a, problems
}

// resolveAxis 解析单轴。flip 为 true 时表示垂直轴（设计稿 Y 向下，锚点 Y 向上）。
func resolveAxis(c figma.ConstraintType, pos, size, parent float64, flip bool, precision int) (float64, float64, []Problem) {
	axis := "x"
	if flip {
		axis = "y"
	}
	switch c {
	case figma.ConstraintCenter:
		return 0.5, 0.5, nil
	case figma.ConstraintMin:
		if flip {
			return 1, 1, nil
		}
		return 0, 0, nil
	case figma.ConstraintMax:
		if flip {
			return 0, 0, nil
		}
		return 1, 1, nil
	case figma.ConstraintStretch:
		return 0, 1, nil
	case figma.ConstraintScale:
		return scaleAxis(pos, size, parent, flip, precision, axis)
	default:
		return 0, 0, []Problem{{
			Kind:    ProblemUnsupportedFeature,
			Axis:    axis,
			Message: fmt.Sprintf("未知约束 %v，按 Min 处理", c),
		}}
	}
}

// scaleAxis 计算 Scale 约束：锚点为子节点到父节点两边距离占父尺寸的比例。
// 距离一律取绝对值，负坐标不会翻转符号。
func scaleAxis(pos, size, parent float64, flip bool, precision int, axis string) (float64, float64, []Problem) {
	if parent <= 0 || !finite(parent) || !finite(pos) || !finite(size) {
		// 无法做除法：近端比例钳到 0，远端比例钳到 0，即整轴拉伸
		return 0, 1, []Problem{{
			Kind:    ProblemMalformedGeometry,
			Axis:    axis,
			Message: fmt.Sprintf("父尺寸 %g 或子节点几何 (%g, %g) 无效，无法计算比例锚点", parent, pos, size),
		}}
	}
	near := math.Abs(pos)
	far := math.Abs(parent - (near + size))
	nearFrac := roundTo(near/parent, precision)
	farFrac := roundTo(far/parent, precision)

	var lo, hi float64
	if flip {
		// near 是上边距：max = 1 - top%，min = bottom%
		lo, hi = farFrac, 1-nearFrac
	} else {
		lo, hi = nearFrac, 1-farFrac
	}
	return normalize(lo, hi, axis)
}

// normalize 把锚点钳到 [0,1]，并保证 lo ≤ hi。
func normalize(lo, hi float64, axis string) (float64, float64, []Problem) {
	var problems []Problem
	clo, chi := clamp01(lo), clamp01(hi)
	if clo != lo || chi != hi {
		problems = append(problems, Problem{
			Kind:    ProblemMalformedGeometry,
			Axis:    axis,
			Message: fmt.Sprintf("比例锚点 (%g, %g) 超出 [0,1]，已钳制", lo, hi),
		})
	}
	if clo > chi {
		problems = append(problems, Problem{
			Kind:    ProblemMalformedGeometry,
			Axis:    axis,
			Message: fmt.Sprintf("比例锚点 min %g > max %g，退化为点锚定", clo, chi),
		})
		chi = clo
	}
	return clo, chi, problems
}

func roundTo(v float64, precision int) float64 {
	if precision < 0 {
		return v
	}
	scale := math.Pow(10, float64(precision))
	return math.Round(v*scale) / scale
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
