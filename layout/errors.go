package layout

import "errors"

// 校验错误在任何布局或绘制动作之前整体返回：一次调用要么完整失败于校验，
// 要么完整执行（可能截断）。
var (
	// ErrInvalidConfiguration 表示构造 Formatter 时缺少绘图后端。
	ErrInvalidConfiguration = errors.New("layout: 缺少绘图后端 Surface")
	// ErrMissingStyle 表示某个 run 缺少字体或颜色。
	ErrMissingStyle = errors.New("layout: run 缺少字体或颜色")
	// ErrMissingFont 表示在计算行度量时字体缺失。
	ErrMissingFont = errors.New("layout: 字体缺失，无法计算行度量")
	// ErrUnsupportedFormat 表示请求了左上角以外的锚点。
	ErrUnsupportedFormat = errors.New("layout: 仅支持左上角锚点")
)
