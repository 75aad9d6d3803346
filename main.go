package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"

	"quire/layout"
	"quire/markup"
	"quire/renderer"
	canvasrenderer "quire/renderer/canvas"
	"quire/style"
)

func main() {
	input := flag.String("in", "examples/demo.md", "Markdown 文件路径")
	output := flag.String("out", "output/demo.pdf", "PDF 输出路径")
	theme := flag.String("theme", "light", "主题：light/dark/sepia/slate")
	size := flag.String("size", "medium", "字号档位：small/medium/large")
	fontFamily := flag.String("font", "", "字体族（接受但不参与布局，输出字体面固定）")
	title := flag.String("title", "", "写入 PDF 信息字典的标题")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	flag.Parse()

	if err := run(*input, *output, *debug, *theme, *size, *fontFamily, *title); err != nil {
		log.Fatalf("生成 PDF 失败: %v", err)
	}
	fmt.Printf("已生成 PDF：%s\n", *output)
}

// run 串联解析、扁平化、分页、终止化与渲染。
func run(inputPath, outputPath, debugPath, theme, size, fontFamily, title string) error {
	// 配置错误在任何布局工作开始前返回，不产生部分输出。
	profile, err := style.Resolve(style.Theme(theme), style.SizeTier(size), fontFamily)
	if err != nil {
		return err
	}

	source, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("无法读取 Markdown 文件 %s: %w", inputPath, err)
	}

	// Markdown → HTML → 标记树。这两步是引擎外部的输入阶段。
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var htmlBuf bytes.Buffer
	if err := md.Convert(source, &htmlBuf); err != nil {
		return fmt.Errorf("渲染 Markdown 失败: %w", err)
	}
	tree, err := html.Parse(&htmlBuf)
	if err != nil {
		return fmt.Errorf("解析标记树失败: %w", err)
	}

	blocks := markup.Flatten(tree)

	r, err := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Title: title})
	if err != nil {
		return err
	}

	opts := layout.Options{Typesetter: r}
	pages := layout.Paginate(blocks, profile, opts)
	pages = layout.Finalize(pages, profile, time.Now(), opts)

	if debugPath != "" {
		if err := writeDebug(pages, debugPath); err != nil {
			return err
		}
	}

	var sink renderer.Renderer = r
	pdfBytes, err := sink.Render(pages)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return nil
}

func writeDebug(pages []layout.Page, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(pages, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
