package ui

import "encoding/json"

type componentJSON struct {
	Type string    `json:"type"`
	Data Component `json:"data"`
}

// MarshalJSON 输出元素、组件与子元素，用于调试 JSON。
func (e *Element) MarshalJSON() ([]byte, error) {
	type plain Element
	comps := make([]componentJSON, 0, len(e.Components))
	for _, c := range e.Components {
		comps = append(comps, componentJSON{Type: c.ComponentName(), Data: c})
	}
	return json.Marshal(struct {
		*plain
		Components []componentJSON `json:"components,omitempty"`
		Children   []*Element      `json:"children,omitempty"`
	}{
		plain:      (*plain)(e),
		Components: comps,
		Children:   e.children,
	})
}
