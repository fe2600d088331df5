package layout

// dispatch 将定位完成的词元转换为绘制回调。每个 line unit 的基线偏移
// 取其内部词元的最大上升部；回调收到的 (x, y) 为页面坐标下的基线位置。
// 遇到第一个 stop 标记立即停止——按构造，其后的词元未被定位。
func dispatch(tokens []*token, rect Rect, emit func(t *token, x, y float64) error) error {
	for _, unit := range splitUnits(tokens) {
		baseline := 0.0
		for _, t := range unit {
			if t.env.Ascent > baseline {
				baseline = t.env.Ascent
			}
		}
		for _, t := range unit {
			if t.stop {
				return nil
			}
			if t.kind == breakToken {
				continue
			}
			if err := emit(t, rect.X+t.x, rect.Y+t.y+baseline); err != nil {
				return err
			}
		}
	}
	return nil
}
