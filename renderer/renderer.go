package renderer

import "github.com/ByLCY/figui/ui"

// Renderer 将转换后的元素树输出为预览文件，例如 PDF 或图像。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(root *ui.Element) ([]byte, error)
}
