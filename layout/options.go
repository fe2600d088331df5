package layout

// Surface 是绘图后端：负责文本测量、字体单元度量与最终绘制。
// Measure 必须是纯测量，不产生任何绘制副作用；Draw 的绘制基线为 (x, y)。
type Surface interface {
	Measure(text string, font FontRef) (float64, error)
	Cell(font FontRef) (FontCell, error)
	Draw(text string, font FontRef, paint Color, x, y float64) error
}
