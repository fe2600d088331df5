package renderer

import "github.com/ByLCY/typeset/layout"

// Renderer 将 Sheet 输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(sheet *layout.Sheet) ([]byte, error)
}
