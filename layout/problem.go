package layout

// ProblemKind 区分解析过程中发现的非致命问题。
type ProblemKind int

const (
	// ProblemMalformedGeometry 表示尺寸为零/负数或结果越界，已钳制。
	ProblemMalformedGeometry ProblemKind = iota
	// ProblemUnsupportedFeature 表示目标布局体系无法表达，已降级处理。
	ProblemUnsupportedFeature
)

func (k ProblemKind) String() string {
	if k == ProblemUnsupportedFeature {
		return "UnsupportedFeature"
	}
	return "MalformedGeometry"
}

// Problem 是一条解析警告。
type Problem struct {
	Kind    ProblemKind
	Axis    string
	Message string
}

func (p Problem) String() string {
	if p.Axis == "" {
		return p.Kind.String() + ": " + p.Message
	}
	return p.Kind.String() + "(" + p.Axis + "): " + p.Message
}
