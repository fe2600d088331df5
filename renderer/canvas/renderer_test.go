package canvasrenderer

import (
	"bytes"
	"testing"

	"github.com/ByLCY/typeset/fonts"
	"github.com/ByLCY/typeset/layout"
)

// 注入字体测试复用内置字体字节，不读外部文件。
func loadTestFont() ([]byte, error) { return fonts.Load("bold") }

func fallbackFont(size float64) layout.FontRef {
	return layout.FontRef{Name: "Body", Src: "fallback:regular", Size: size}
}

func TestSurfaceMeasure(t *testing.T) {
	s := NewRenderer("").Surface(nil)
	font := fallbackFont(12 * layout.PtToMm)

	w, err := s.Measure("Hello", font)
	if err != nil {
		t.Fatalf("测量失败: %v", err)
	}
	if w <= 0 {
		t.Fatalf("宽度应为正: %g", w)
	}

	// 空格应占有宽度："x x" 必须比 "xx" 宽
	pair, _ := s.Measure("xx", font)
	spaced, _ := s.Measure("x x", font)
	if spaced <= pair {
		t.Fatalf("空格宽度异常: %g vs %g", spaced, pair)
	}
}

func TestSurfaceCellMetrics(t *testing.T) {
	s := NewRenderer("").Surface(nil)
	cell, err := s.Cell(fallbackFont(12 * layout.PtToMm))
	if err != nil {
		t.Fatalf("获取字体单元失败: %v", err)
	}
	if cell.Height <= 0 || cell.CellAscent <= 0 || cell.CellDescent <= 0 {
		t.Fatalf("字体单元度量应为正: %+v", cell)
	}
	if cell.CellSpace != cell.CellAscent+cell.CellDescent {
		t.Fatalf("单元总高应为上升部加下降部: %+v", cell)
	}
}

func TestSurfaceDrawRequiresContext(t *testing.T) {
	s := NewRenderer("").Surface(nil)
	if err := s.Draw("x", fallbackFont(4), layout.Color{}, 0, 0); err == nil {
		t.Fatalf("无上下文的 Draw 应报错")
	}
}

// 资源字体加载失败时回退内置字体，测量仍可用。
func TestFontFallbackOnBadSource(t *testing.T) {
	s := NewRenderer("").Surface(nil)
	font := layout.FontRef{Name: "Ghost", Src: "font:missing", Size: 4}
	w, err := s.Measure("abc", font)
	if err != nil {
		t.Fatalf("回退后测量不应报错: %v", err)
	}
	if w <= 0 {
		t.Fatalf("回退字体宽度应为正: %g", w)
	}
}

func TestRenderSheetProducesPDF(t *testing.T) {
	paint := layout.Color{R: 20, G: 20, B: 20}
	font := fallbackFont(12 * layout.PtToMm)
	sheet := &layout.Sheet{
		Width:  100,
		Height: 80,
		Boxes: []layout.Box{{
			Rect: layout.Rect{X: 10, Y: 10, W: 80, H: 60},
			Runs: []layout.StyledRun{{Text: "Hello PDF", Font: &font, Paint: &paint}},
		}},
	}

	data, err := NewRenderer("").Render(sheet)
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("输出不是 PDF 文件头: %q", data[:min(len(data), 8)])
	}
}

func TestRenderRejectsBadSheet(t *testing.T) {
	r := NewRenderer("")
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("空 sheet 应报错")
	}
	if _, err := r.Render(&layout.Sheet{Width: 0, Height: 10}); err == nil {
		t.Fatalf("非法页面尺寸应报错")
	}
}

func TestInjectedFontBytes(t *testing.T) {
	blob, err := loadTestFont()
	if err != nil {
		t.Fatalf("准备测试字体失败: %v", err)
	}
	r := NewRendererWithOptions(Options{Fonts: map[string]Resource{"mono": {Bytes: blob}}})
	font := layout.FontRef{Name: "Mono", Src: "font:mono", Size: 4}
	w, err := r.Surface(nil).Measure("abc", font)
	if err != nil {
		t.Fatalf("注入字体测量失败: %v", err)
	}
	if w <= 0 {
		t.Fatalf("注入字体宽度应为正: %g", w)
	}
}
