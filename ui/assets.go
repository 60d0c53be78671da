package ui

// FontAsset 是已解析的字体资源，按指针身份共享。
type FontAsset struct {
	Name   string `json:"name"`
	Family string `json:"family"`
	Path   string `json:"path,omitempty"`
	Data   []byte `json:"-"`
}

// Sprite 是由矢量几何、外部图形或图片填充生成的精灵。
// 同一来源 ID 在一次导入中只对应一个 Sprite。
type Sprite struct {
	ID       string   `json:"id"`
	Paths    []string `json:"paths,omitempty"`
	ImageRef string   `json:"imageRef,omitempty"`
	Source   string   `json:"source,omitempty"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Graphic  *Graphic `json:"-"`
}

// Graphic 是外部预先渲染/下载好的图形（矢量导出或图片填充）。
type Graphic struct {
	ID     string `json:"id"`
	Path   string `json:"path"`
	Format string `json:"format"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Data   []byte `json:"-"`
}

// GradientStop 是材质中的渐变色标。
type GradientStop struct {
	Position float64 `json:"position"`
	Color    Color   `json:"color"`
}

// Material 描述生成的材质（目前用于渐变填充）。Key 是确定性的去重键。
type Material struct {
	Key    string         `json:"key"`
	Shader string         `json:"shader"`
	Stops  []GradientStop `json:"stops,omitempty"`
}
