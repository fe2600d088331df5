package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ByLCY/typeset/dsl"
	"github.com/ByLCY/typeset/layout"
	"github.com/ByLCY/typeset/renderer"
	canvasrenderer "github.com/ByLCY/typeset/renderer/canvas"
)

func main() {
	input := flag.String("in", "examples/demo.typeset", "脚本文件路径")
	output := flag.String("out", "output/demo.pdf", "PDF 输出路径")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到脚本的 JSON 数据")
	flag.Parse()

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	r := canvasrenderer.NewRenderer(filepath.Dir(*input))
	if err := run(*input, *output, *debug, inputData, r, r.Surface(nil)); err != nil {
		log.Fatalf("生成 PDF 失败: %v", err)
	}
	fmt.Printf("已生成 PDF：%s\n", *output)
}

// run 串联解析、构建、布局与渲染。measure 是仅用于调试输出的测量后端。
func run(inputPath, outputPath, debugPath string, data any, r renderer.Renderer, measure layout.Surface) error {
	if r == nil {
		return fmt.Errorf("renderer 不能为空")
	}
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("无法打开脚本文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("解析脚本失败: %w", err)
	}

	sheet, err := layout.Build(doc, data)
	if err != nil {
		return fmt.Errorf("构建布局失败: %w", err)
	}

	if debugPath != "" {
		if err := writeDebug(sheet, measure, debugPath); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	pdfBytes, err := r.Render(sheet)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return nil
}

// writeDebug 只布局不绘制，把每个 box 的词落点导出为 JSON。
func writeDebug(sheet *layout.Sheet, measure layout.Surface, debugPath string) error {
	traces, err := layout.TraceSheet(sheet, measure)
	if err != nil {
		return fmt.Errorf("计算调试布局失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(traces, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
