package convert

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/ByLCY/figui/figma"
	"github.com/ByLCY/figui/ui"
)

// NodeConverter 把一个设计节点转换为 UI 元素。parent 是已创建的父元素（根节点为 nil），
// 返回的元素由 Builder 负责挂接和锚点解析；返回 nil 元素表示跳过该节点。
type NodeConverter interface {
	Convert(parent *ui.Element, node *figma.Node, b *Builder) (*ui.Element, error)
}

// ConverterFunc 让普通函数实现 NodeConverter。
type ConverterFunc func(parent *ui.Element, node *figma.Node, b *Builder) (*ui.Element, error)

func (f ConverterFunc) Convert(parent *ui.Element, node *figma.Node, b *Builder) (*ui.Element, error) {
	return f(parent, node, b)
}

// ChildPolicy 可由转换器选择实现：返回 true 时 Builder 不再遍历该节点的子节点
// （例如布尔运算的几何已经合并在自身的 fillGeometry 里）。
type ChildPolicy interface {
	SkipChildren(node *figma.Node) bool
}

// MatchRule 是模式层的匹配条件。
type MatchRule func(*figma.Node) bool

// NameContains 匹配名称中包含 token 的节点。
func NameContains(token string) MatchRule {
	return func(n *figma.Node) bool {
		return token != "" && strings.Contains(n.Name, token)
	}
}

// ComponentType 匹配名称中带有 prefix+typeID 类型标记的复合组件，例如 "@Button"。
func ComponentType(prefix, typeID string) MatchRule {
	return NameContains(prefix + typeID)
}

type patternEntry struct {
	name     string
	rule     MatchRule
	conv     NodeConverter
	priority int
	seq      int
}

// Registry 把节点映射到转换器，分两层：
//   - 模式层：按规则匹配（名称标记、能力标签），优先级高者胜，同优先级后注册者胜；
//   - 类型层：按节点类型精确匹配，重复注册时后注册者覆盖前者。
//
// 一次导入期间注册表只读。
type Registry struct {
	Logger *slog.Logger

	kinds    map[figma.NodeType]NodeConverter
	patterns []patternEntry
	seq      int
}

// NewRegistry 返回空注册表。
func NewRegistry() *Registry {
	return &Registry{kinds: map[figma.NodeType]NodeConverter{}}
}

func (r *Registry) log() *slog.Logger { return loggerOrNop(r.Logger) }

// Register 在类型层注册转换器。
func (r *Registry) Register(kind figma.NodeType, c NodeConverter) {
	if c == nil {
		r.log().Warn("忽略空转换器", slog.String("kind", string(kind)))
		return
	}
	if _, exists := r.kinds[kind]; exists {
		r.log().Debug("覆盖已注册的转换器", slog.String("kind", string(kind)))
	}
	r.kinds[kind] = c
}

// RegisterPattern 在模式层注册转换器。name 用于标识该规则，同名规则会被替换。
func (r *Registry) RegisterPattern(name string, rule MatchRule, c NodeConverter, priority int) {
	if rule == nil || c == nil {
		r.log().Warn("忽略无效的模式转换器", slog.String("pattern", name))
		return
	}
	r.seq++
	entry := patternEntry{name: name, rule: rule, conv: c, priority: priority, seq: r.seq}
	for i, p := range r.patterns {
		if name != "" && p.name == name {
			r.log().Debug("覆盖已注册的模式转换器", slog.String("pattern", name))
			r.patterns[i] = entry
			r.sortPatterns()
			return
		}
	}
	r.patterns = append(r.patterns, entry)
	r.sortPatterns()
}

func (r *Registry) sortPatterns() {
	sort.SliceStable(r.patterns, func(i, j int) bool {
		if r.patterns[i].priority != r.patterns[j].priority {
			return r.patterns[i].priority > r.patterns[j].priority
		}
		return r.patterns[i].seq > r.patterns[j].seq
	})
}

// Resolve 先尝试模式层，再回落到类型层；都不匹配时返回 ErrUnsupportedNodeType。
func (r *Registry) Resolve(n *figma.Node) (NodeConverter, error) {
	for _, p := range r.patterns {
		if p.rule(n) {
			return p.conv, nil
		}
	}
	if c, ok := r.kinds[n.Type]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedNodeType, n.Type)
}

// Kinds 返回类型层已注册的节点类型（排序后）。
func (r *Registry) Kinds() []figma.NodeType {
	out := make([]figma.NodeType, 0, len(r.kinds))
	for k := range r.kinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Registration 是宿主侧发现机制产出的一条注册项。Rule 非空时注册到模式层，否则按 Kind 注册到类型层。
type Registration struct {
	Kind      figma.NodeType
	Name      string
	Rule      MatchRule
	Converter NodeConverter
	Priority  int
}

// Apply 按顺序应用注册项。
func (r *Registry) Apply(regs ...Registration) {
	for _, reg := range regs {
		if reg.Rule != nil {
			r.RegisterPattern(reg.Name, reg.Rule, reg.Converter, reg.Priority)
			continue
		}
		r.Register(reg.Kind, reg.Converter)
	}
}

// DefaultRegistry 返回安装了内置转换器的注册表，复合组件标记使用 typePrefix。
func DefaultRegistry(typePrefix string) *Registry {
	r := NewRegistry()
	r.Apply(BuiltinRegistrations(typePrefix)...)
	return r
}

// BuiltinRegistrations 列出内置转换器。
func BuiltinRegistrations(typePrefix string) []Registration {
	frame := FrameConverter{}
	vector := VectorConverter{}
	regs := []Registration{
		{Kind: figma.NodeTypeDocument, Converter: PageConverter{}},
		{Kind: figma.NodeTypeCanvas, Converter: PageConverter{}},
		{Kind: figma.NodeTypeFrame, Converter: frame},
		{Kind: figma.NodeTypeComponent, Converter: frame},
		{Kind: figma.NodeTypeComponentSet, Converter: frame},
		{Kind: figma.NodeTypeSection, Converter: frame},
		{Kind: figma.NodeTypeInstance, Converter: InstanceConverter{}},
		{Kind: figma.NodeTypeGroup, Converter: GroupConverter{}},
		{Kind: figma.NodeTypeText, Converter: TextConverter{}},
	}
	for _, kind := range []figma.NodeType{
		figma.NodeTypeVector, figma.NodeTypeRectangle, figma.NodeTypeEllipse, figma.NodeTypeLine,
		figma.NodeTypeStar, figma.NodeTypeRegularPolygon, figma.NodeTypeBooleanOperation,
	} {
		regs = append(regs, Registration{Kind: kind, Converter: vector})
	}
	regs = append(regs, Registration{
		Name:      "Button",
		Rule:      ComponentType(typePrefix, "Button"),
		Converter: ButtonConverter{},
	})
	return regs
}
