package layout

import (
	"strconv"
	"strings"
)

// This file defines unit-safe lengths used when a converted hierarchy is placed on a physical page
// (preview rendering) or when sizes come from settings files.

// Unit represents the original unit of a length value.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers, treated as design pixels
	UnitPX               // design-tool pixels (CSS px, 96 per inch)
	UnitPT               // points
	UnitMM               // millimeters
	UnitIN               // inches
)

// Conversion constants between px, pt and mm.
const (
	PxPerInch = 96.0
	PtPerInch = 72.0
	MmPerInch = 25.4
	PxToMm    = MmPerInch / PxPerInch
	MmToPx    = PxPerInch / MmPerInch
	PtToMm    = MmPerInch / PtPerInch
	MmToPt    = PtPerInch / MmPerInch
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPX:
		return "px"
	case UnitPT:
		return "pt"
	case UnitMM:
		return "mm"
	case UnitIN:
		return "in"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value" yaml:"value"`
	Unit  Unit    `json:"unit" yaml:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

func (l Length) mm() float64 {
	switch l.Unit {
	case UnitMM:
		return l.Value
	case UnitIN:
		return l.Value * MmPerInch
	case UnitPT:
		return l.Value * PtToMm
	default:
		// px and unit-less values are design pixels
		return l.Value * PxToMm
	}
}

// To converts this length to the target unit.
func (l Length) To(target Unit) float64 {
	if l.Unit == target || (l.Unit == UnitNone && target == UnitPX) {
		return l.Value
	}
	mm := l.mm()
	switch target {
	case UnitMM:
		return mm
	case UnitIN:
		return mm / MmPerInch
	case UnitPT:
		return mm * MmToPt
	default:
		return mm * MmToPx
	}
}

func (l Length) ToMM() float64 { return l.To(UnitMM) }
func (l Length) ToPX() float64 { return l.To(UnitPX) }

// ParseLength parses a length string like "12px", "210mm" or "8.5in", preserving its unit.
// Invalid input yields a zero length.
func ParseLength(value string) Length {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"pt", UnitPT}, {"mm", UnitMM}, {"in", UnitIN}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}
	}
	return Length{Value: f, Unit: unit}
}
