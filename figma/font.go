package figma

import "fmt"

// FontWeight 对应 CSS 数值字重。
type FontWeight int

const (
	WeightThin       FontWeight = 100
	WeightExtraLight FontWeight = 200
	WeightLight      FontWeight = 300
	WeightRegular    FontWeight = 400
	WeightMedium     FontWeight = 500
	WeightSemiBold   FontWeight = 600
	WeightBold       FontWeight = 700
	WeightExtraBold  FontWeight = 800
	WeightBlack      FontWeight = 900
)

func (w FontWeight) String() string {
	switch w {
	case WeightThin:
		return "Thin"
	case WeightExtraLight:
		return "ExtraLight"
	case WeightLight:
		return "Light"
	case WeightRegular:
		return "Regular"
	case WeightMedium:
		return "Medium"
	case WeightSemiBold:
		return "SemiBold"
	case WeightBold:
		return "Bold"
	case WeightExtraBold:
		return "ExtraBold"
	case WeightBlack:
		return "Black"
	default:
		return fmt.Sprintf("%d", int(w))
	}
}

// FontName 生成字体表使用的键：Family-Weight[-Italic]，例如 "Inter-Bold-Italic"。
// 字重 0 视为 Regular。
func FontName(family string, weight int, italic bool) string {
	if weight == 0 {
		weight = int(WeightRegular)
	}
	name := family + "-" + FontWeight(weight).String()
	if italic {
		name += "-Italic"
	}
	return name
}
