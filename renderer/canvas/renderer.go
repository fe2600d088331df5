package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/typeset/fonts"
	"github.com/ByLCY/typeset/layout"
	"github.com/ByLCY/typeset/renderer"
)

// Renderer draws sheets via github.com/tdewolff/canvas.
type Renderer struct {
	baseDir string

	// injected font resources, by unique name
	fontBlobs map[string][]byte

	fontMu         sync.Mutex
	fontFamilies   map[string]*fontFamilyEntry
	fallbackFamily *canvas.FontFamily
}

var _ renderer.Renderer = (*Renderer)(nil)
var _ layout.Surface = (*Surface)(nil)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// Options configures the canvas renderer.
type Options struct {
	BaseDir string
	Fonts   map[string]Resource // fonts accessible via font:<name> sources
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a canvas-based renderer rooted at baseDir for resolving font files.
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions creates a renderer with injected font resources.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		baseDir:      opts.BaseDir,
		fontBlobs:    map[string][]byte{},
		fontFamilies: map[string]*fontFamilyEntry{},
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, _ := os.ReadFile(res.Path) // 读取失败留待实际使用时报错
			if len(data) > 0 {
				r.fontBlobs[name] = data
			}
		}
	}
	return r
}

// Render 将 Sheet 渲染为单页 PDF：为每个 box 调用核心排版器，
// 排版过程中的测量与绘制都经由同一个画布 Surface。
func (r *Renderer) Render(sheet *layout.Sheet) ([]byte, error) {
	if sheet == nil {
		return nil, fmt.Errorf("canvas: 渲染目标为空")
	}
	if sheet.Width <= 0 || sheet.Height <= 0 {
		return nil, fmt.Errorf("canvas: 页面尺寸非法")
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, sheet.Width, sheet.Height, nil)

	c := canvas.New(sheet.Width, sheet.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	formatter, err := layout.NewFormatter(r.Surface(ctx))
	if err != nil {
		return nil, err
	}
	for _, box := range sheet.Boxes {
		// 纵向溢出是正常截断路径，Result 在此被有意忽略
		if _, err := formatter.DrawRuns(box.Runs, box.Rect, box.Format); err != nil {
			return nil, err
		}
	}
	c.RenderTo(writer)

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("canvas: 写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// Surface 将画布上下文与渲染器的字体缓存组合成 layout.Surface。
// ctx 可以为 nil：此时只能测量，Draw 会报错（供调试布局使用）。
func (r *Renderer) Surface(ctx *canvas.Context) *Surface {
	return &Surface{r: r, ctx: ctx}
}

// Surface implements layout.Surface on top of a canvas context.
type Surface struct {
	r   *Renderer
	ctx *canvas.Context
}

// Measure 返回文本在给定字体下的宽度（mm），纯测量，无绘制副作用。
func (s *Surface) Measure(text string, font layout.FontRef) (float64, error) {
	face, err := s.r.fontFace(font, layout.Color{})
	if err != nil {
		return 0, err
	}
	return face.TextWidth(text), nil
}

// Cell 返回字体单元度量。canvas 的 Ascent/Descent 与 LineHeight 已按
// 字号换算成 mm，这里以 Ascent+Descent 充当单元总高。
func (s *Surface) Cell(font layout.FontRef) (layout.FontCell, error) {
	face, err := s.r.fontFace(font, layout.Color{})
	if err != nil {
		return layout.FontCell{}, err
	}
	m := face.Metrics()
	return layout.FontCell{
		Height:      m.LineHeight,
		CellAscent:  m.Ascent,
		CellDescent: m.Descent,
		CellSpace:   m.Ascent + m.Descent,
	}, nil
}

// Draw 在 (x, y) 基线处绘制一个词。
func (s *Surface) Draw(text string, font layout.FontRef, paint layout.Color, x, y float64) error {
	if s.ctx == nil {
		return fmt.Errorf("canvas: 缺少绘制上下文")
	}
	face, err := s.r.fontFace(font, paint)
	if err != nil {
		return err
	}
	line := canvas.NewTextLine(face, text, canvas.Left)
	s.ctx.DrawText(x, y, line)
	return nil
}

// fontFace 以 FontRef 的字号（mm→pt）与给定颜色构造字体面。
func (r *Renderer) fontFace(font layout.FontRef, col layout.Color) (*canvas.FontFace, error) {
	family, style, err := r.ensureFontFamily(font)
	if err != nil {
		return nil, err
	}
	return family.Face(font.Size*layout.MmToPt, colorFromLayout(col), style, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(font layout.FontRef) (*canvas.FontFamily, canvas.FontStyle, error) {
	key := fontCacheKey(font)
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.fontFamilies[key]; ok {
		return entry.family, entry.style, nil
	}

	style := parseFontStyle(font.Style)
	familyName := font.Name
	if familyName == "" {
		familyName = "Body"
	}
	family := canvas.NewFontFamily(familyName)

	if err := r.loadFontIntoFamily(family, font, style); err != nil {
		// 资源字体加载失败时回退内置字体，保持渲染可用
		fallback, fbStyle, fbErr := r.fallback()
		if fbErr != nil {
			return nil, canvas.FontRegular, err
		}
		r.fontFamilies[key] = &fontFamilyEntry{family: fallback, style: fbStyle}
		return fallback, fbStyle, nil
	}

	entry := &fontFamilyEntry{family: family, style: style}
	r.fontFamilies[key] = entry
	return family, style, nil
}

func (r *Renderer) loadFontIntoFamily(family *canvas.FontFamily, font layout.FontRef, style canvas.FontStyle) error {
	data, err := r.loadFontBytes(font)
	if err != nil {
		return err
	}
	return family.LoadFont(data, 0, style)
}

func (r *Renderer) loadFontBytes(font layout.FontRef) ([]byte, error) {
	src := font.Src
	if src == "" || strings.HasPrefix(src, "fallback:") {
		return fonts.Load(src)
	}
	if strings.HasPrefix(src, "font:") {
		name := strings.TrimPrefix(src, "font:")
		if blob, ok := r.fontBlobs[name]; ok {
			return blob, nil
		}
		return nil, fmt.Errorf("canvas: 找不到注入的字体资源 font:%s", name)
	}
	// path based
	path := src
	if r.baseDir == "" && !filepath.IsAbs(path) {
		return nil, fmt.Errorf("canvas: 未指定资源目录时不允许直接使用字体路径：%s", src)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.baseDir, path)
	}
	return os.ReadFile(path)
}

func (r *Renderer) fallback() (*canvas.FontFamily, canvas.FontStyle, error) {
	if r.fallbackFamily != nil {
		return r.fallbackFamily, canvas.FontRegular, nil
	}
	data, err := fonts.Load("regular")
	if err != nil {
		return nil, canvas.FontRegular, err
	}
	family := canvas.NewFontFamily("typeset-fallback")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, canvas.FontRegular, err
	}
	r.fallbackFamily = family
	return family, canvas.FontRegular, nil
}

func parseFontStyle(style string) canvas.FontStyle {
	if style == "" {
		return canvas.FontRegular
	}
	s := strings.ToLower(style)
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

func fontCacheKey(font layout.FontRef) string {
	return fmt.Sprintf("%s|%s|%s", font.Name, font.Src, font.Style)
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
