package layout

// 该文件实现分页引擎：单次正向扫描 Block 序列，驱动页/纵向偏移游标，
// 在每次放置前测量文本并判定分页，产出按绘制顺序排列的命令页。
// 引擎不做任何 I/O；除自身游标外没有可变状态，每次调用相互独立。

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"quire/markup"
	"quire/style"
)

const (
	blockSpacing     = 3.0  // 每个 Block 之后的固定间距，只在下一个 Block 放置时参与判定
	listIndentStep   = 6.0  // 每层列表缩进
	markerGap        = 2.0  // 列表标记与文本的间距
	codePadding      = 2.0  // 代码块/引用块内边距
	quoteBarWidth    = 1.2  // 引用块左侧强调条宽度
	quoteTextInset   = 4.0  // 引用文本相对块左缘的偏移
	cellPadding      = 1.8  // 表格单元格内边距
	ruleSpacing      = 2.0  // 分隔线前后的间距
	headingRuleGap   = 1.5  // 标题下划线与后续内容的间距
	tableBorderWidth = 0.2
)

// Paginate 消费 Block 序列与样式，返回有序的命令页。
// 引擎总是正常终止：内容再多也只是分配更多页面，不存在超长错误。
func Paginate(blocks []markup.Block, profile style.Profile, opts Options) []Page {
	e := &engine{
		profile: profile,
		geom:    opts.geometry(),
		ts:      opts.Typesetter,
	}
	e.newPage()

	for _, b := range blocks {
		switch blk := b.(type) {
		case markup.Heading:
			e.placeHeading(blk)
		case markup.Paragraph:
			e.placeParagraph(blk)
		case markup.ListItem:
			e.placeListItem(blk)
		case markup.CodeBlock:
			e.placeCode(blk)
		case markup.Blockquote:
			e.placeQuote(blk)
		case markup.Table:
			e.placeTable(blk)
		case markup.Rule:
			e.placeRule()
		}
		e.cursorY += blockSpacing
	}
	return e.result()
}

// engine 持有一次导出的全部可变状态：页面集合与游标。
// 游标不变式：任何放置发生前，cursorY ∈ [margin, MaxContentY]；越界先换页。
type engine struct {
	profile style.Profile
	geom    Geometry
	ts      Typesetter

	pages   []*Page
	cursorY float64
}

func (e *engine) newPage() {
	e.pages = append(e.pages, &Page{Index: len(e.pages)})
	e.cursorY = e.geom.Margin
}

func (e *engine) curr() *Page {
	return e.pages[len(e.pages)-1]
}

func (e *engine) append(cmd DrawCommand) {
	e.curr().append(cmd)
}

// ensureSpace 在放置高度为 h 的内容前检查剩余空间，不足则换页。
// 只换一次：原子块高于整页时允许向下溢出，保证引擎终止。
func (e *engine) ensureSpace(h float64) {
	if e.cursorY+h > e.geom.MaxContentY() {
		e.newPage()
	}
}

// lineHeight 由字号（pt）与档位行高倍数算出行框高度（mm）。
func (e *engine) lineHeight(sizePt float64) float64 {
	return sizePt * PtToMm * e.profile.LineHeight
}

func (e *engine) measure(content string, width float64, font Font, sizePt float64) []TextLine {
	return measureLines(e.ts, content, width, font, sizePt)
}

// placeHeading 原子放置标题：加粗文本加全宽下划线。
// 1~2 级比 3 级多留空、线更粗。
func (e *engine) placeHeading(h markup.Heading) {
	size := e.profile.HeadingSize(h.Level)
	col := e.profile.HeadingColor(h.Level)
	lh := e.lineHeight(size)
	lines := e.measure(h.Text, e.geom.ContentWidth(), FontBold, size)

	extraLeading := 1.0
	ruleWidth := 0.25
	if h.Level <= 2 {
		extraLeading = 2.0
		ruleWidth = 0.5
	}
	e.ensureSpace(float64(len(lines))*lh + extraLeading + headingRuleGap)

	x := e.geom.Margin
	for _, ln := range lines {
		e.append(Text{X: x, Y: e.cursorY, Content: ln.Content, FontSize: size, Font: FontBold, Color: col})
		e.cursorY += lh
	}
	e.cursorY += extraLeading
	e.append(Line{X1: x, Y1: e.cursorY, X2: x + e.geom.ContentWidth(), Y2: e.cursorY, Color: col, Width: ruleWidth})
	e.cursorY += headingRuleGap
}

// placeParagraph 逐行放置段落，允许在行间换页；单行永不被页界切断。
func (e *engine) placeParagraph(p markup.Paragraph) {
	size := e.profile.Body
	lh := e.lineHeight(size)
	for _, ln := range e.measure(p.Text, e.geom.ContentWidth(), FontBody, size) {
		e.ensureSpace(lh)
		e.append(Text{X: e.geom.Margin, Y: e.cursorY, Content: ln.Content, FontSize: size, Font: FontBody, Color: e.profile.Text})
		e.cursorY += lh
	}
}

// placeListItem 原子放置列表项：标记在左，折行的续行与首行文本左缘对齐（不与标记对齐）。
func (e *engine) placeListItem(item markup.ListItem) {
	size := e.profile.Body
	lh := e.lineHeight(size)

	marker := "•"
	if item.Ordered {
		marker = fmt.Sprintf("%d.", item.Ordinal)
	}
	indentX := e.geom.Margin + float64(item.Indent)*listIndentStep
	markerW := measureWidth(e.ts, marker, FontBody, size)
	textX := indentX + markerW + markerGap
	textWidth := e.geom.Margin + e.geom.ContentWidth() - textX
	if textWidth < listIndentStep {
		// 嵌套过深时保底一个缩进步长的文本宽度
		textWidth = listIndentStep
	}

	lines := e.measure(item.Text, textWidth, FontBody, size)
	e.ensureSpace(float64(len(lines)) * lh)

	e.append(Text{X: indentX, Y: e.cursorY, Content: marker, FontSize: size, Font: FontBody, Color: e.profile.Text})
	for _, ln := range lines {
		e.append(Text{X: textX, Y: e.cursorY, Content: ln.Content, FontSize: size, Font: FontBody, Color: e.profile.Text})
		e.cursorY += lh
	}
}

// placeCode 放置代码块。允许在源码行之间换页；每页为落在本页的行子集
// 重新绘制一块背景矩形，等宽文本带固定内边距，不做折行。
func (e *engine) placeCode(cb markup.CodeBlock) {
	size := e.profile.Code
	lh := e.lineHeight(size)

	i := 0
	for i < len(cb.Lines) {
		// 最小首块高度：一行代码加上下内边距
		if e.cursorY+lh+2*codePadding > e.geom.MaxContentY() {
			e.newPage()
		}
		avail := e.geom.MaxContentY() - e.cursorY
		fit := int((avail - 2*codePadding) / lh)
		if fit < 1 {
			fit = 1
		}
		n := len(cb.Lines) - i
		if n > fit {
			n = fit
		}

		h := float64(n)*lh + 2*codePadding
		e.append(FilledRect{X: e.geom.Margin, Y: e.cursorY, W: e.geom.ContentWidth(), H: h, Color: e.profile.CodeBackground})
		y := e.cursorY + codePadding
		for _, line := range cb.Lines[i : i+n] {
			e.append(Text{X: e.geom.Margin + codePadding, Y: y, Content: line, FontSize: size, Font: FontMono, Color: e.profile.Text})
			y += lh
		}
		e.cursorY += h
		i += n
	}
}

// placeQuote 原子放置引用块：左侧强调条 + 着色背景，斜体文本相对强调条偏移。
func (e *engine) placeQuote(q markup.Blockquote) {
	size := e.profile.Body
	lh := e.lineHeight(size)
	textWidth := e.geom.ContentWidth() - quoteTextInset - codePadding
	lines := e.measure(q.Text, textWidth, FontItalic, size)

	h := float64(len(lines))*lh + 2*codePadding
	e.ensureSpace(h)

	x := e.geom.Margin
	e.append(FilledRect{X: x, Y: e.cursorY, W: e.geom.ContentWidth(), H: h, Color: e.profile.QuoteBackground})
	e.append(FilledRect{X: x, Y: e.cursorY, W: quoteBarWidth, H: h, Color: e.profile.Secondary})
	y := e.cursorY + codePadding
	for _, ln := range lines {
		e.append(Text{X: x + quoteTextInset, Y: y, Content: ln.Content, FontSize: size, Font: FontItalic, Color: e.profile.Secondary})
		y += lh
	}
	e.cursorY += h
}

// placeTable 原子放置表格：列数取各行单元格数的最大值，列宽均分（不按内容分配）。
// 行高固定为一行文本加内边距；单元格只画一行文本，超宽由相邻边框裁切。
// 表头行（若标记）加填充背景与加粗文本；所有单元格都有描边边框。
func (e *engine) placeTable(t markup.Table) {
	cols := 0
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return
	}

	size := e.profile.Body
	colWidth := e.geom.ContentWidth() / float64(cols)
	rowH := e.lineHeight(size) + 2*cellPadding
	e.ensureSpace(float64(len(t.Rows)) * rowH)

	for ri, row := range t.Rows {
		y := e.cursorY
		header := t.HasHeaderRow && ri == 0
		for ci := 0; ci < cols; ci++ {
			x := e.geom.Margin + float64(ci)*colWidth
			if header {
				e.append(FilledRect{X: x, Y: y, W: colWidth, H: rowH, Color: e.profile.TableHeaderFill})
			}
			e.append(StrokedRect{X: x, Y: y, W: colWidth, H: rowH, Color: e.profile.Border, StrokeWidth: tableBorderWidth})
			if ci < len(row) && row[ci] != "" {
				font := FontBody
				if header {
					font = FontBold
				}
				e.append(Text{X: x + cellPadding, Y: y + cellPadding, Content: row[ci], FontSize: size, Font: font, Color: e.profile.Text})
			}
		}
		e.cursorY += rowH
	}
}

// placeRule 放置全宽分隔线，前后留固定间距。
func (e *engine) placeRule() {
	e.ensureSpace(2 * ruleSpacing)
	e.cursorY += ruleSpacing
	x := e.geom.Margin
	e.append(Line{X1: x, Y1: e.cursorY, X2: x + e.geom.ContentWidth(), Y2: e.cursorY, Color: e.profile.Border, Width: 0.3})
	e.cursorY += ruleSpacing
}

func (e *engine) result() []Page {
	out := make([]Page, len(e.pages))
	for i, p := range e.pages {
		out[i] = *p
	}
	return out
}

// measureLines 通过排版后端把文本折成行；后端缺失或出错时退回粗略估算，
// 保证分页对任何输入都能完成。
func measureLines(ts Typesetter, content string, width float64, font Font, sizePt float64) []TextLine {
	if ts != nil {
		lines, err := ts.LayoutLines(content, width, font, sizePt)
		if err == nil {
			if len(lines) == 0 {
				lines = []TextLine{{Content: ""}}
			}
			return lines
		}
	}
	return estimateLines(content, width, sizePt)
}

// measureWidth 测量单行文本宽度：用极大宽度约束避免折行，取行宽最大值。
func measureWidth(ts Typesetter, content string, font Font, sizePt float64) float64 {
	maxW := 0.0
	for _, ln := range measureLines(ts, content, math.MaxFloat64, font, sizePt) {
		if ln.Width > maxW {
			maxW = ln.Width
		}
	}
	if maxW <= 0 {
		maxW = estimateTextWidth(content, sizePt)
	}
	return maxW
}

// estimateLines 是无后端时的贪心估算折行：按平均字符宽推断每行容量，在空白处分割。
func estimateLines(content string, width float64, sizePt float64) []TextLine {
	charW := sizePt * PtToMm * 0.55
	if charW <= 0 {
		charW = 1
	}
	maxChars := math.MaxInt32
	if width > 0 && width < math.MaxFloat64 {
		maxChars = int(width / charW)
		if maxChars < 1 {
			maxChars = 1
		}
	}

	words := strings.Fields(content)
	if len(words) == 0 {
		return []TextLine{{Content: ""}}
	}

	var lines []TextLine
	cur := words[0]
	for _, w := range words[1:] {
		if utf8.RuneCountInString(cur)+1+utf8.RuneCountInString(w) <= maxChars {
			cur += " " + w
			continue
		}
		lines = append(lines, TextLine{Content: cur, Width: float64(utf8.RuneCountInString(cur)) * charW})
		cur = w
	}
	lines = append(lines, TextLine{Content: cur, Width: float64(utf8.RuneCountInString(cur)) * charW})
	return lines
}

func estimateTextWidth(content string, sizePt float64) float64 {
	if sizePt <= 0 {
		sizePt = 12
	}
	return sizePt * PtToMm * 0.55 * float64(utf8.RuneCountInString(content)+1)
}
