package layout

// Formatter 将一组样式化文本段排入矩形并通过 Surface 绘制。
// 一次调用在单线程内同步完成分词、换行、对齐与绘制，没有挂起点；
// 对齐通过 Format 按调用传入，同一实例可安全地被多次调用复用。
type Formatter struct {
	surface Surface
	align   Alignment // DrawString 便捷入口使用的默认对齐
}

// NewFormatter 创建绑定到给定绘图后端的 Formatter。
func NewFormatter(s Surface) (*Formatter, error) {
	if s == nil {
		return nil, ErrInvalidConfiguration
	}
	return &Formatter{surface: s}, nil
}

// SetAlignment 设置 DrawString 使用的默认段落对齐。
func (f *Formatter) SetAlignment(a Alignment) { f.align = a }

// DrawString 是单 run 便捷入口：默认对齐、左上角锚点。
func (f *Formatter) DrawString(text string, font *FontRef, paint *Color, rect Rect) (Result, error) {
	runs := []StyledRun{{Text: text, Font: font, Paint: paint}}
	return f.DrawRuns(runs, rect, Format{Align: f.align})
}

// DrawRuns 布局并绘制多个 run。校验失败时在任何布局或绘制动作之前
// 整体返回错误；纵向溢出不是错误，通过 Result.Truncated 报告。
func (f *Formatter) DrawRuns(runs []StyledRun, rect Rect, format Format) (Result, error) {
	tokens, res, err := f.layout(runs, rect, format)
	if err != nil {
		return Result{}, err
	}
	err = dispatch(tokens, rect, func(t *token, x, y float64) error {
		return f.surface.Draw(t.text, t.env.Font, t.env.Paint, x, y)
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// Layout 只计算不绘制，返回每个词的最终落点（页面坐标），供调试输出使用。
func (f *Formatter) Layout(runs []StyledRun, rect Rect, format Format) ([]Placement, Result, error) {
	tokens, res, err := f.layout(runs, rect, format)
	if err != nil {
		return nil, Result{}, err
	}
	var words []Placement
	_ = dispatch(tokens, rect, func(t *token, x, y float64) error {
		words = append(words, Placement{Text: t.text, X: x, Y: y, Font: t.env.Font, Paint: t.env.Paint})
		return nil
	})
	return words, res, nil
}

func (f *Formatter) layout(runs []StyledRun, rect Rect, format Format) ([]*token, Result, error) {
	if format.Anchor != AnchorTopLeft {
		return nil, Result{}, ErrUnsupportedFormat
	}
	for _, run := range runs {
		if run.Font == nil || run.Paint == nil {
			return nil, Result{}, ErrMissingStyle
		}
	}
	tokens, err := tokenize(runs, f.surface)
	if err != nil {
		return nil, Result{}, err
	}
	res := flow(tokens, rect, format.Align)
	return tokens, res, nil
}
