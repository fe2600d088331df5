package layout

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestTraceSheetCollectsPlacements(t *testing.T) {
	sheet := &Sheet{
		Width:  100,
		Height: 100,
		Boxes: []Box{
			{Rect: Rect{W: 200, H: 50}, Runs: []StyledRun{{Text: "aa bb", Font: font12(), Paint: ink()}}},
			{Rect: Rect{X: 10, Y: 60, W: 80, H: 30}, Runs: []StyledRun{{Text: "cc", Font: font12(), Paint: ink()}}},
		},
	}
	traces, err := TraceSheet(sheet, &stubSurface{})
	if err != nil {
		t.Fatalf("TraceSheet 失败: %v", err)
	}
	if len(traces) != 2 {
		t.Fatalf("期望 2 条轨迹，实际 %d", len(traces))
	}
	if len(traces[0].Words) != 2 || traces[0].Result.Placed != 2 {
		t.Fatalf("第一个 box 轨迹错误: %+v", traces[0])
	}
	// 落点为页面坐标：第二个 box 的词叠加了矩形原点
	if w := traces[1].Words[0]; !almost(w.X, 10) || !almost(w.Y, 60+9) {
		t.Fatalf("页面坐标错误: %+v", w)
	}
}

func TestWriteDebugJSON(t *testing.T) {
	sheet := &Sheet{
		Width:  100,
		Height: 100,
		Boxes:  []Box{{Rect: Rect{W: 100, H: 50}, Runs: []StyledRun{{Text: "hi", Font: font12(), Paint: ink()}}}},
	}
	traces, err := TraceSheet(sheet, &stubSurface{})
	if err != nil {
		t.Fatalf("TraceSheet 失败: %v", err)
	}

	path := filepath.Join(t.TempDir(), "trace.json")
	if err := WriteDebugJSON(traces, path); err != nil {
		t.Fatalf("写入 JSON 失败: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取 JSON 失败: %v", err)
	}
	var decoded []BoxTrace
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("JSON 解码失败: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Words[0].Text != "hi" {
		t.Fatalf("JSON 内容错误: %+v", decoded)
	}
}
