package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strings"
	"unicode"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"quire/fonts"
	"quire/layout"
	"quire/renderer"
	"quire/style"
)

// Renderer 通过 github.com/tdewolff/canvas 绘制命令页并序列化为 PDF 字节。
// 同时实现 layout.Typesetter：布局阶段用同一套字体度量做折行测量，
// 保证测量与最终绘制一致。
type Renderer struct {
	opts     Options
	families map[layout.Font]*faceEntry
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

type faceEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// Options 配置渲染器。
type Options struct {
	Geometry layout.Geometry
	Title    string // 写入 PDF 信息字典的标题，可为空
}

// NewRenderer 创建使用默认 A4 几何的渲染器。
func NewRenderer() (*Renderer, error) { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions 创建渲染器并加载全部内嵌字体面。
func NewRendererWithOptions(opts Options) (*Renderer, error) {
	if opts.Geometry == (layout.Geometry{}) {
		opts.Geometry = layout.A4()
	}
	r := &Renderer{opts: opts, families: map[layout.Font]*faceEntry{}}

	defs := []struct {
		font  layout.Font
		name  string
		style canvas.FontStyle
	}{
		{layout.FontBody, "regular", canvas.FontRegular},
		{layout.FontBold, "bold", canvas.FontBold},
		{layout.FontItalic, "italic", canvas.FontItalic},
		{layout.FontMono, "mono", canvas.FontRegular},
	}
	for _, def := range defs {
		data, err := fonts.Load(def.name)
		if err != nil {
			return nil, err
		}
		family := canvas.NewFontFamily("quire-" + def.name)
		if err := family.LoadFont(data, 0, def.style); err != nil {
			return nil, fmt.Errorf("加载字体面 %s 失败: %w", def.name, err)
		}
		r.families[def.font] = &faceEntry{family: family, style: def.style}
	}
	return r, nil
}

// Render 将页面序列渲染为一份 PDF 的字节切片。
func (r *Renderer) Render(pages []layout.Page) ([]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}
	geom := r.opts.Geometry

	var buf bytes.Buffer
	writer := pdf.New(&buf, geom.PageWidth, geom.PageHeight, nil)
	if r.opts.Title != "" {
		writer.SetInfo(r.opts.Title, "", "", "", "Quire")
	}
	for i, page := range pages {
		if i > 0 {
			writer.NewPage(geom.PageWidth, geom.PageHeight)
		}
		c := canvas.New(geom.PageWidth, geom.PageHeight)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

		r.drawPage(ctx, page)
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// LayoutLines 实现 layout.Typesetter 接口，使用贪心换行算法。
// 约定：width 为 mm，fontSize 为 pt；返回的行宽为 mm。
func (r *Renderer) LayoutLines(content string, width float64, font layout.Font, fontSize float64) ([]layout.TextLine, error) {
	face := r.face(font, fontSize, style.Color{R: 30, G: 30, B: 30})
	lines := greedyWrapTokens(content, width, face)
	if len(lines) == 0 {
		lines = []layout.TextLine{{Content: "", Width: 0}}
	}
	return lines, nil
}

// drawPage 按命令顺序绘制一页；命令序列即绘制顺序，不做重排。
func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page) {
	for _, cmd := range page.Commands {
		switch c := cmd.(type) {
		case layout.Text:
			face := r.face(c.Font, c.FontSize, c.Color)
			textLine := canvas.NewTextLine(face, c.Content, canvas.Left)
			// 基线位置：行框顶部加字体上升部
			baseline := c.Y + face.Metrics().Ascent
			ctx.DrawText(c.X, baseline, textLine)
		case layout.FilledRect:
			ctx.SetFillColor(colorFromStyle(c.Color))
			ctx.SetStrokeColor(color.RGBA{})
			ctx.DrawPath(c.X, c.Y, canvas.Rectangle(c.W, c.H))
		case layout.StrokedRect:
			ctx.SetFillColor(color.RGBA{})
			ctx.SetStrokeColor(colorFromStyle(c.Color))
			ctx.SetStrokeWidth(strokeWidth(c.StrokeWidth))
			ctx.DrawPath(c.X, c.Y, canvas.Rectangle(c.W, c.H))
		case layout.Line:
			ctx.SetStrokeColor(colorFromStyle(c.Color))
			ctx.SetStrokeWidth(strokeWidth(c.Width))
			p := &canvas.Path{}
			p.MoveTo(0, 0)
			p.LineTo(c.X2-c.X1, c.Y2-c.Y1)
			ctx.DrawPath(c.X1, c.Y1, p)
		}
	}
}

func (r *Renderer) face(f layout.Font, sizePt float64, col style.Color) *canvas.FontFace {
	entry, ok := r.families[f]
	if !ok {
		entry = r.families[layout.FontBody]
	}
	return entry.family.Face(sizePt, colorFromStyle(col), entry.style, canvas.FontNormal)
}

const defaultStrokeWidth = 0.2

func strokeWidth(w float64) float64 {
	if w <= 0 {
		return defaultStrokeWidth
	}
	return w
}

func colorFromStyle(c style.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// greedyWrapTokens 优先在空白处分割，单词超出宽度限制时在词内拆分。
func greedyWrapTokens(content string, width float64, face *canvas.FontFace) []layout.TextLine {
	limit := width
	if limit <= 0 {
		limit = math.MaxFloat64
	}

	tokens := tokenizeContent(content)
	var lines []layout.TextLine
	var builder strings.Builder
	currentWidth := 0.0

	emit := func(force bool) {
		if builder.Len() == 0 {
			if force {
				lines = append(lines, layout.TextLine{Content: "", Width: 0})
			}
			return
		}
		lines = append(lines, layout.TextLine{Content: builder.String(), Width: currentWidth})
		builder.Reset()
		currentWidth = 0
	}

	appendToken := func(token string) {
		builder.WriteString(token)
		currentWidth += face.TextWidth(token)
	}

	for _, token := range tokens {
		if token == "\n" {
			emit(true)
			continue
		}

		tokenWidth := face.TextWidth(token)
		if currentWidth > 0 && currentWidth+tokenWidth > limit {
			emit(false)
		}
		if tokenWidth <= limit {
			appendToken(token)
			if currentWidth > limit {
				emit(false)
			}
			continue
		}

		for _, chunk := range splitTokenByWidth(token, limit, face) {
			chunkWidth := face.TextWidth(chunk)
			if currentWidth > 0 && currentWidth+chunkWidth > limit {
				emit(false)
			}
			appendToken(chunk)
			if currentWidth > limit {
				emit(false)
			}
		}
	}

	emit(true)
	return lines
}

func tokenizeContent(s string) []string {
	var tokens []string
	var builder strings.Builder
	lastWasSpace := false
	flush := func() {
		if builder.Len() == 0 {
			return
		}
		tokens = append(tokens, builder.String())
		builder.Reset()
	}

	for _, r := range s {
		if r == '\r' {
			continue
		}
		if r == '\n' {
			flush()
			tokens = append(tokens, "\n")
			lastWasSpace = false
			continue
		}
		isSpace := unicode.IsSpace(r)
		if builder.Len() == 0 {
			lastWasSpace = isSpace
		} else if lastWasSpace != isSpace {
			flush()
			lastWasSpace = isSpace
		}
		builder.WriteRune(r)
	}
	flush()
	return tokens
}

func splitTokenByWidth(token string, limit float64, face *canvas.FontFace) []string {
	if limit <= 0 || limit == math.MaxFloat64 {
		return []string{token}
	}
	var parts []string
	var builder strings.Builder
	for _, r := range token {
		builder.WriteRune(r)
		if face.TextWidth(builder.String()) > limit && builder.Len() > 1 {
			runes := []rune(builder.String())
			parts = append(parts, string(runes[:len(runes)-1]))
			builder.Reset()
			builder.WriteRune(r)
		}
	}
	if builder.Len() > 0 {
		parts = append(parts, builder.String())
	}
	return parts
}
