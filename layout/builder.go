package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/typeset/binding"
	"github.com/ByLCY/typeset/dsl"
)

// 默认字号 12pt（转为 mm 保存）。
const defaultFontSizeMM = 12 * PtToMm

// Build 根据脚本 AST 生成 Sheet：收集资源、解析样式继承，
// 并把每个 box 下的 run 解析为带字体与颜色的 StyledRun。
// data 用于 run 文本中的 ${path} 插值，可以为 nil。
func Build(doc *dsl.Document, data any) (*Sheet, error) {
	if doc == nil {
		return nil, fmt.Errorf("layout: 文档为空")
	}

	res, err := collectResources(doc)
	if err != nil {
		return nil, err
	}

	width, height, err := resolveSheetSize(doc)
	if err != nil {
		return nil, err
	}

	sheet := &Sheet{Width: width, Height: height, Resources: res}
	for _, section := range doc.Sections {
		if section.Box == nil {
			continue
		}
		box, err := buildBox(section.Box, res, data)
		if err != nil {
			return nil, err
		}
		sheet.Boxes = append(sheet.Boxes, box)
	}
	if len(sheet.Boxes) == 0 {
		return nil, fmt.Errorf("layout: 文档中缺少 box 段落")
	}
	return sheet, nil
}

var sheetPresets = map[string][2]float64{
	"A4":     {210, 297},
	"A5":     {148, 210},
	"LETTER": {215.9, 279.4},
}

// resolveSheetSize 解析 sheet 段落（预设纸张或显式宽高），缺省 A4 纵向。
func resolveSheetSize(doc *dsl.Document) (float64, float64, error) {
	var params []*dsl.Lexeme
	for _, section := range doc.Sections {
		if section.Sheet != nil {
			params = section.Sheet.Params
			break
		}
	}
	if len(params) == 0 {
		base := sheetPresets["A4"]
		return base[0], base[1], nil
	}

	if base, ok := sheetPresets[strings.ToUpper(params[0].Value)]; ok {
		width, height := base[0], base[1]
		for _, tok := range params[1:] {
			if tok.Value == "landscape" {
				width, height = height, width
			}
		}
		return width, height, nil
	}

	if len(params) >= 2 {
		w := ParseLength(params[0].Value).ToMM()
		h := ParseLength(params[1].Value).ToMM()
		if w > 0 && h > 0 {
			return w, h, nil
		}
	}
	return 0, 0, fmt.Errorf("layout: 无法解析 sheet 尺寸 %q", params[0].Value)
}

func buildBox(section *dsl.BoxSection, res ResourceSet, data any) (Box, error) {
	if len(section.Params) < 4 {
		return Box{}, fmt.Errorf("layout: box 需要 x y w h 四个长度参数")
	}
	rect := Rect{
		X: ParseLength(section.Params[0].Value).ToMM(),
		Y: ParseLength(section.Params[1].Value).ToMM(),
		W: ParseLength(section.Params[2].Value).ToMM(),
		H: ParseLength(section.Params[3].Value).ToMM(),
	}
	if rect.W <= 0 || rect.H <= 0 {
		return Box{}, fmt.Errorf("layout: box 的宽高必须为正")
	}

	_, attrs := parseArgs(section.Params[4:], false)
	format := Format{Align: ParseAlignment(attrs["align"])}
	if v := attrs["anchor"]; v != "" {
		anchor, err := ParseAnchor(v)
		if err != nil {
			return Box{}, err
		}
		format.Anchor = anchor
	}

	box := Box{Rect: rect, Format: format}
	if section.Block == nil {
		return Box{}, fmt.Errorf("layout: box 段落缺少内容")
	}
	for _, stmt := range section.Block.Statements {
		if stmt.Command == nil || stmt.Command.Name != "run" {
			continue
		}
		run, err := buildRun(stmt.Command, res, data)
		if err != nil {
			return Box{}, err
		}
		box.Runs = append(box.Runs, run)
	}
	if len(box.Runs) == 0 {
		return Box{}, fmt.Errorf("layout: box 中至少需要一个 run")
	}
	return box, nil
}

func buildRun(cmd *dsl.Command, res ResourceSet, data any) (StyledRun, error) {
	styleName, attrs := parseArgs(cmd.Args, true)
	attrs = mergeStyleAttributes(styleName, attrs, res.Styles)

	content := extractText(cmd.Block)
	if content == "" {
		return StyledRun{}, fmt.Errorf("layout: run 语句缺少文本内容")
	}
	if data != nil {
		content = binding.Interpolate(content, data)
	}

	fontName := attrs["font"]
	if fontName == "" {
		fontName = styleName
	}
	if fontName == "" {
		fontName = "Body"
	}
	fontRes, err := resolveFontResource(fontName, res)
	if err != nil {
		return StyledRun{}, err
	}

	size := ParseLength(attrs["size"]).ToMM()
	if size <= 0 {
		size = defaultFontSizeMM
	}

	font := &FontRef{Name: fontRes.Name, Src: fontRes.Src, Style: fontRes.Style, Size: size}
	paint := resolveColor(attrs["color"], res)
	return StyledRun{Text: content, Font: font, Paint: &paint}, nil
}

func collectResources(doc *dsl.Document) (ResourceSet, error) {
	res := ResourceSet{
		Fonts:  map[string]FontResource{},
		Colors: map[string]Color{},
		Styles: map[string]Style{},
	}
	rawStyles := map[string]Style{}

	for _, section := range doc.Sections {
		if section.Resources == nil || section.Resources.Block == nil {
			continue
		}
		for _, stmt := range section.Resources.Block.Statements {
			if stmt.Command == nil {
				continue
			}
			switch stmt.Command.Name {
			case "font":
				font := parseFontResource(stmt.Command)
				if font.Name != "" {
					res.Fonts[font.Name] = font
				}
			case "color":
				name, value := parseColorResource(stmt.Command)
				if name == "" || value == "" {
					continue
				}
				if c, err := parseColor(value); err == nil {
					res.Colors[name] = c
				}
			case "style":
				style := parseStyleResource(stmt.Command)
				if style.Name != "" {
					rawStyles[style.Name] = style
				}
			}
		}
	}

	if len(res.Fonts) == 0 {
		res.Fonts["Body"] = FontResource{Name: "Body", Src: "fallback:regular"}
	}

	resolved, err := resolveStyles(rawStyles)
	if err != nil {
		return res, err
	}
	res.Styles = resolved
	return res, nil
}

func parseFontResource(cmd *dsl.Command) FontResource {
	if len(cmd.Args) == 0 {
		return FontResource{}
	}
	font := FontResource{Name: cmd.Args[0].Value}
	if cmd.Block == nil {
		return font
	}
	for _, stmt := range cmd.Block.Statements {
		if stmt.Assignment == nil || stmt.Assignment.Value.String == nil {
			continue
		}
		val := string(*stmt.Assignment.Value.String)
		switch stmt.Assignment.Key {
		case "src":
			font.Src = val
		case "style":
			font.Style = val
		}
	}
	return font
}

func parseColorResource(cmd *dsl.Command) (string, string) {
	if len(cmd.Args) == 0 {
		return "", ""
	}
	name := cmd.Args[0].Value
	value := ""
	if len(cmd.Args) > 1 {
		value = cmd.Args[len(cmd.Args)-1].Value
	}
	return name, value
}

func parseStyleResource(cmd *dsl.Command) Style {
	if len(cmd.Args) == 0 {
		return Style{}
	}
	style := Style{Name: cmd.Args[0].Value, Props: map[string]string{}}
	if len(cmd.Args) >= 3 && strings.EqualFold(cmd.Args[1].Value, "extends") {
		style.Extends = cmd.Args[2].Value
	}
	if cmd.Block == nil {
		return style
	}
	for _, stmt := range cmd.Block.Statements {
		if stmt.Assignment == nil {
			continue
		}
		if val := valueToString(stmt.Assignment.Value); val != "" {
			style.Props[stmt.Assignment.Key] = val
		}
	}
	return style
}

// resolveStyles 展开样式继承，检测循环。
func resolveStyles(styles map[string]Style) (map[string]Style, error) {
	resolved := map[string]Style{}
	visiting := map[string]bool{}

	var dfs func(name string) (Style, error)
	dfs = func(name string) (Style, error) {
		if style, ok := resolved[name]; ok {
			return style, nil
		}
		style, ok := styles[name]
		if !ok {
			return Style{}, fmt.Errorf("layout: style %s 未定义", name)
		}
		if visiting[name] {
			return Style{}, fmt.Errorf("layout: style 继承存在循环：%s", name)
		}
		visiting[name] = true

		props := map[string]string{}
		if style.Extends != "" {
			parent, err := dfs(style.Extends)
			if err != nil {
				return Style{}, err
			}
			for k, v := range parent.Props {
				props[k] = v
			}
		}
		for k, v := range style.Props {
			props[k] = v
		}
		style.Props = props
		resolved[name] = style
		delete(visiting, name)
		return style, nil
	}

	for name := range styles {
		if _, err := dfs(name); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

func resolveFontResource(name string, res ResourceSet) (FontResource, error) {
	if font, ok := res.Fonts[name]; ok {
		return font, nil
	}
	if font, ok := res.Fonts["Body"]; ok {
		return font, nil
	}
	for _, font := range res.Fonts {
		return font, nil
	}
	return FontResource{}, fmt.Errorf("layout: 字体 %s 未定义，且没有可用的默认字体", name)
}

func resolveColor(value string, res ResourceSet) Color {
	if value == "" {
		return Color{R: 30, G: 30, B: 30}
	}
	if c, ok := res.Colors[value]; ok {
		return c
	}
	if strings.HasPrefix(value, "#") {
		if c, err := parseColor(value); err == nil {
			return c
		}
	}
	return Color{R: 30, G: 30, B: 30}
}

func parseColor(value string) (Color, error) {
	value = strings.TrimPrefix(value, "#")
	switch len(value) {
	case 3:
		return Color{
			R: mustHex(strings.Repeat(string(value[0]), 2)),
			G: mustHex(strings.Repeat(string(value[1]), 2)),
			B: mustHex(strings.Repeat(string(value[2]), 2)),
		}, nil
	case 6, 8:
		return Color{
			R: mustHex(value[0:2]),
			G: mustHex(value[2:4]),
			B: mustHex(value[4:6]),
		}, nil
	default:
		return Color{}, fmt.Errorf("layout: 颜色值 %s 无法解析", value)
	}
}

func mustHex(s string) int {
	v, _ := strconv.ParseInt(s, 16, 64)
	return int(v)
}

// parseArgs 把命令参数拆为可选的样式名与 key/value 属性表。
func parseArgs(args []*dsl.Lexeme, allowStyle bool) (string, map[string]string) {
	result := map[string]string{}
	if len(args) == 0 {
		return "", result
	}

	cursor := 0
	var style string
	if allowStyle && args[0].Type == "Ident" && len(args)%2 == 1 {
		style = args[0].Value
		cursor = 1
	}
	for cursor < len(args)-1 {
		result[args[cursor].Value] = args[cursor+1].Value
		cursor += 2
	}
	return style, result
}

func mergeStyleAttributes(style string, inline map[string]string, styles map[string]Style) map[string]string {
	out := make(map[string]string)
	if style != "" {
		if s, ok := styles[style]; ok {
			for k, v := range s.Props {
				out[k] = v
			}
		}
	}
	for k, v := range inline {
		out[k] = v
	}
	return out
}

func extractText(block *dsl.Block) string {
	if block == nil {
		return ""
	}
	var builder strings.Builder
	for i, stmt := range block.Statements {
		if stmt.Text == nil {
			continue
		}
		if i > 0 && builder.Len() > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(string(stmt.Text.Value))
	}
	return builder.String()
}

func valueToString(val *dsl.Value) string {
	if val == nil {
		return ""
	}
	switch {
	case val.String != nil:
		return string(*val.String)
	case val.Number != nil:
		return *val.Number
	case val.Color != nil:
		return *val.Color
	case val.Expr != nil:
		var builder strings.Builder
		for _, part := range val.Expr.Parts {
			builder.WriteString(part.Value)
		}
		return builder.String()
	default:
		return ""
	}
}
