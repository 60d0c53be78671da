package convert

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/ByLCY/figui/ui"
)

type debugIssue struct {
	Kind     string `json:"kind"`
	NodeID   string `json:"nodeId,omitempty"`
	NodeName string `json:"nodeName,omitempty"`
	NodeType string `json:"nodeType,omitempty"`
	Message  string `json:"message"`
	Err      string `json:"err,omitempty"`
	Fatal    bool   `json:"fatal,omitempty"`
}

func (i *Issue) MarshalJSON() ([]byte, error) {
	d := debugIssue{
		NodeID:   i.NodeID,
		NodeName: i.NodeName,
		NodeType: string(i.NodeType),
		Message:  i.Message,
		Fatal:    i.Fatal,
	}
	if i.Kind != nil {
		d.Kind = i.Kind.Error()
	}
	if i.Err != nil {
		d.Err = i.Err.Error()
	}
	return json.Marshal(d)
}

// debugReport 是调试 JSON 的顶层结构。
type debugReport struct {
	Root      *ui.Element    `json:"root"`
	Materials []*ui.Material `json:"materials"`
	Sprites   []*ui.Sprite   `json:"sprites"`
	Fonts     []string       `json:"fonts"`
	Misses    []AssetMiss    `json:"misses"`
	Issues    []*Issue       `json:"issues"`
}

// WriteDebugJSON 将转换结果输出为 JSON，便于调试或比对。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	data, err := MarshalDebug(res)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// MarshalDebug 生成与 WriteDebugJSON 相同的内容。精灵按 ID 排序，输出稳定。
func MarshalDebug(res *Result) ([]byte, error) {
	ctx := res.Context
	sprites := make([]*ui.Sprite, 0, len(ctx.Sprites))
	for _, s := range ctx.Sprites {
		sprites = append(sprites, s)
	}
	sort.Slice(sprites, func(i, j int) bool { return sprites[i].ID < sprites[j].ID })
	return json.MarshalIndent(debugReport{
		Root:      res.Root,
		Materials: ctx.Materials,
		Sprites:   sprites,
		Fonts:     ctx.FontRequests,
		Misses:    ctx.Misses,
		Issues:    ctx.Issues,
	}, "", "  ")
}
