package layout

import (
	"encoding/json"
	"os"
)

// BoxTrace 记录单个 box 的布局结果，便于调试或可视化。
type BoxTrace struct {
	Rect   Rect        `json:"rect"`
	Format Format      `json:"format"`
	Result Result      `json:"result"`
	Words  []Placement `json:"words"`
}

// TraceSheet 对 Sheet 中的每个 box 只布局不绘制，收集最终落点。
func TraceSheet(sheet *Sheet, s Surface) ([]BoxTrace, error) {
	f, err := NewFormatter(s)
	if err != nil {
		return nil, err
	}
	traces := make([]BoxTrace, 0, len(sheet.Boxes))
	for _, box := range sheet.Boxes {
		words, res, err := f.Layout(box.Runs, box.Rect, box.Format)
		if err != nil {
			return nil, err
		}
		traces = append(traces, BoxTrace{Rect: box.Rect, Format: box.Format, Result: res, Words: words})
	}
	return traces, nil
}

// WriteDebugJSON 将布局轨迹输出为 JSON 文件。
func WriteDebugJSON(traces []BoxTrace, path string) error {
	data, err := json.MarshalIndent(traces, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
