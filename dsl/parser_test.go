package dsl

import (
	"strings"
	"testing"
)

const sample = `doc invoice v2 {
  // 行注释应被忽略
  resources {
    font Mono {
      src: "fonts/mono.ttf"
    }
    color ink #222222
    style Body {
      size: 12pt
      color: ink
    }
  }

  sheet A4 landscape

  /* 块注释
     跨越多行 */
  box 10mm 10mm 190mm 60mm align center {
    run Body {
      "Total: ${total}"
    }
  }
}`

func TestParseDocumentStructure(t *testing.T) {
	doc, err := ParseString(sample)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if doc.Name != "invoice" || doc.Version != "v2" {
		t.Fatalf("文档头错误: %s %s", doc.Name, doc.Version)
	}

	var resources *ResourcesSection
	var sheet *SheetSection
	var box *BoxSection
	for _, s := range doc.Sections {
		switch {
		case s.Resources != nil:
			resources = s.Resources
		case s.Sheet != nil:
			sheet = s.Sheet
		case s.Box != nil:
			box = s.Box
		}
	}
	if resources == nil || sheet == nil || box == nil {
		t.Fatalf("缺少段落: resources=%v sheet=%v box=%v", resources != nil, sheet != nil, box != nil)
	}

	if len(sheet.Params) != 2 || sheet.Params[0].Value != "A4" || sheet.Params[1].Value != "landscape" {
		t.Fatalf("sheet 参数错误: %+v", sheet.Params)
	}
	if len(box.Params) != 6 {
		t.Fatalf("box 参数数量错误: %d", len(box.Params))
	}
	if box.Params[0].Value != "10mm" || box.Params[4].Value != "align" || box.Params[5].Value != "center" {
		t.Fatalf("box 参数错误: %+v", box.Params)
	}
}

func TestParseResourceCommands(t *testing.T) {
	doc, err := ParseString(sample)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	var commands []*Command
	for _, s := range doc.Sections {
		if s.Resources == nil {
			continue
		}
		for _, stmt := range s.Resources.Block.Statements {
			if stmt.Command != nil {
				commands = append(commands, stmt.Command)
			}
		}
	}
	if len(commands) != 3 {
		t.Fatalf("期望 3 条资源命令，实际 %d", len(commands))
	}

	font := commands[0]
	if font.Name != "font" || font.Args[0].Value != "Mono" {
		t.Fatalf("font 命令错误: %s %+v", font.Name, font.Args)
	}
	src := font.Block.Statements[0].Assignment
	if src.Key != "src" || src.Value.String == nil || string(*src.Value.String) != "fonts/mono.ttf" {
		t.Fatalf("src 赋值错误: %+v", src)
	}

	color := commands[1]
	if color.Name != "color" || color.Args[1].Value != "#222222" || color.Args[1].Type != "Color" {
		t.Fatalf("color 命令错误: %+v", color.Args)
	}

	style := commands[2]
	if style.Name != "style" || len(style.Block.Statements) != 2 {
		t.Fatalf("style 命令错误: %+v", style)
	}
	size := style.Block.Statements[0].Assignment
	if size.Value.Number == nil || *size.Value.Number != "12pt" {
		t.Fatalf("数值赋值错误: %+v", size.Value)
	}
	ink := style.Block.Statements[1].Assignment
	if ink.Value.Expr == nil || len(ink.Value.Expr.Parts) != 1 || ink.Value.Expr.Parts[0].Value != "ink" {
		t.Fatalf("裸标识符应落入 Expr: %+v", ink.Value)
	}
}

func TestParseRunTextLiteral(t *testing.T) {
	doc, err := ParseString(sample)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	for _, s := range doc.Sections {
		if s.Box == nil {
			continue
		}
		run := s.Box.Block.Statements[0].Command
		if run.Name != "run" || run.Args[0].Value != "Body" {
			t.Fatalf("run 命令错误: %+v", run)
		}
		text := run.Block.Statements[0].Text
		if text == nil || string(text.Value) != "Total: ${total}" {
			t.Fatalf("文本字面量错误: %+v", text)
		}
		return
	}
	t.Fatalf("缺少 box 段落")
}

func TestParseFromReader(t *testing.T) {
	doc, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Reader 解析失败: %v", err)
	}
	if doc.Name != "invoice" {
		t.Fatalf("文档名错误: %s", doc.Name)
	}
}

func TestParseRejectsMalformedHeader(t *testing.T) {
	if _, err := ParseString(`sheet A4`); err == nil {
		t.Fatalf("缺少 doc 头的脚本应报错")
	}
}

func TestStringLiteralUnquotesEscapes(t *testing.T) {
	doc, err := ParseString(`doc q v1 {
  box 0 0 10mm 10mm {
    run {
      "say \"hi\"\nbye"
    }
  }
}`)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	for _, s := range doc.Sections {
		if s.Box == nil {
			continue
		}
		text := s.Box.Block.Statements[0].Command.Block.Statements[0].Text
		if string(text.Value) != "say \"hi\"\nbye" {
			t.Fatalf("转义解码错误: %q", string(text.Value))
		}
		return
	}
	t.Fatalf("缺少 box 段落")
}
