package figma

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

// ErrCyclicDocument 表示节点树中存在环（同一节点在自身祖先链上再次出现）。
var ErrCyclicDocument = errors.New("figma: 节点树存在环")

// Document 是已解析的设计文件。
type Document struct {
	Name       string               `json:"name"`
	Version    string               `json:"version,omitempty"`
	Root       *Node                `json:"document"`
	Components map[string]Component `json:"components,omitempty"`
}

// Component 是文件级组件元数据。
type Component struct {
	Key         string `json:"key,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Decode 读取设计工具 REST 接口返回的文件 JSON，并完成父子链接。
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("解析设计文件 JSON 失败: %w", err)
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("设计文件缺少 document 节点")
	}
	if err := doc.Link(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Link 为每个节点设置父指针。遇到环时返回 ErrCyclicDocument。
func (d *Document) Link() error {
	if d == nil || d.Root == nil {
		return nil
	}
	d.Root.parent = nil
	onPath := map[*Node]bool{}
	var link func(n *Node) error
	link = func(n *Node) error {
		if onPath[n] {
			return fmt.Errorf("%w：%s (%s)", ErrCyclicDocument, n.ID, n.Name)
		}
		onPath[n] = true
		for _, child := range n.Children {
			if child == nil {
				continue
			}
			child.parent = n
			if err := link(child); err != nil {
				return err
			}
		}
		delete(onPath, n)
		return nil
	}
	return link(d.Root)
}

// TraverseDFS 以先序深度优先遍历节点；visit 返回 false 时不再进入该节点的子树。
func TraverseDFS(n *Node, visit func(*Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, child := range n.Children {
		TraverseDFS(child, visit)
	}
}

// TraverseUp 从父节点开始向上遍历；visit 返回 false 时停止。
func TraverseUp(n *Node, visit func(*Node) bool) {
	if n == nil {
		return
	}
	for p := n.parent; p != nil; p = p.parent {
		if !visit(p) {
			return
		}
	}
}

// FindByID 在文档中查找节点。
func (d *Document) FindByID(id string) *Node {
	if d == nil {
		return nil
	}
	var found *Node
	TraverseDFS(d.Root, func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// UsedFonts 列出文档中文本节点引用的字体名（FontName 形式），按字典序去重。
func (d *Document) UsedFonts() []string {
	if d == nil {
		return nil
	}
	seen := map[string]bool{}
	TraverseDFS(d.Root, func(n *Node) bool {
		if n.Type == NodeTypeText && n.Style != nil && n.Style.FontFamily != "" {
			seen[FontName(n.Style.FontFamily, n.Style.FontWeight, n.Style.Italic)] = true
		}
		return true
	})
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
