package markup

// 该文件实现树扁平化：把标记树（标签 + 子节点 + 文本）按阅读顺序压成 Block 序列。
// 输入树由外部的 Markdown → HTML 阶段产生；未识别的标签一律视为透明容器。
// 行内样式（加粗、斜体等）在此处丢弃，每个 Block 只保留纯文本。

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Flatten 遍历标记树并返回有序的 Block 序列。
// 空树或无法识别的输入不是错误，返回空序列即可。
// 前置条件：输入树有限且无环（不做运行时检查）。
func Flatten(root *html.Node) []Block {
	f := &flattener{}
	if root != nil {
		f.walk(root)
	}
	return f.blocks
}

type flattener struct {
	blocks []Block
}

func (f *flattener) emit(b Block) {
	f.blocks = append(f.blocks, b)
}

func (f *flattener) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		// 容器层级出现的非空白文本节点按段落处理；空白文本直接丢弃。
		if text := collapseSpace(n.Data); text != "" {
			f.emit(Paragraph{Text: text})
		}
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.H1:
			f.emitHeading(1, n)
		case atom.H2:
			f.emitHeading(2, n)
		case atom.H3, atom.H4, atom.H5, atom.H6:
			// 更深层级折叠为 3 级，细分信息有意丢弃。
			f.emitHeading(3, n)
		case atom.P:
			if text := inlineText(n); text != "" {
				f.emit(Paragraph{Text: text})
			}
		case atom.Ul:
			f.walkList(n, 0, false)
		case atom.Ol:
			f.walkList(n, 0, true)
		case atom.Pre:
			f.emitCode(n)
		case atom.Blockquote:
			if text := inlineText(n); text != "" {
				f.emit(Blockquote{Text: text})
			}
		case atom.Table:
			f.emitTable(n)
		case atom.Hr:
			f.emit(Rule{})
		default:
			// 未分类容器透明递归，不产生 Block。
			f.walkChildren(n)
		}
		return
	}
	f.walkChildren(n)
}

func (f *flattener) walkChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		f.walk(c)
	}
}

func (f *flattener) emitHeading(level int, n *html.Node) {
	if text := inlineText(n); text != "" {
		f.emit(Heading{Level: level, Text: text})
	}
}

// walkList 递归展开列表。缩进与序号按值传递，兄弟列表互不影响；
// 每个有序列表的序号从 1 重新计数。嵌套列表紧跟在所属列表项之后展开，保持视觉顺序。
func (f *flattener) walkList(list *html.Node, indent int, ordered bool) {
	ordinal := 0
	for c := list.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.Li {
			continue
		}
		item := ListItem{Indent: indent, Ordered: ordered}
		if ordered {
			ordinal++
			item.Ordinal = ordinal
		}
		if text := itemText(c); text != "" {
			item.Text = text
			f.emit(item)
		}
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			if gc.Type != html.ElementNode {
				continue
			}
			switch gc.DataAtom {
			case atom.Ul:
				f.walkList(gc, indent+1, false)
			case atom.Ol:
				f.walkList(gc, indent+1, true)
			}
		}
	}
}

// emitCode 取第一个 code 类型后代的逐字文本（没有则取 pre 自身文本），按换行拆分。
// 不在此处做任何折行。
func (f *flattener) emitCode(pre *html.Node) {
	src := pre
	if code := findCode(pre); code != nil {
		src = code
	}
	text := strings.TrimRight(verbatimText(src), "\n")
	f.emit(CodeBlock{Lines: strings.Split(text, "\n")})
}

func findCode(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Code {
			return c
		}
		if found := findCode(c); found != nil {
			return found
		}
	}
	return nil
}

// emitTable 按文档顺序先收集表头行，再收集其余行；抽不出任何行则不产生 Block。
func (f *flattener) emitTable(table *html.Node) {
	var trs []*html.Node
	collectRows(table, &trs)

	var rows [][]string
	hasHeader := false
	for _, tr := range trs {
		if isHeaderRow(tr) {
			if cells := cellTexts(tr); len(cells) > 0 {
				rows = append(rows, cells)
				hasHeader = true
			}
		}
	}
	for _, tr := range trs {
		if isHeaderRow(tr) {
			continue
		}
		if cells := cellTexts(tr); len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	if len(rows) == 0 {
		return
	}
	f.emit(Table{Rows: rows, HasHeaderRow: hasHeader})
}

func collectRows(n *html.Node, out *[]*html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Tr {
			*out = append(*out, c)
			continue
		}
		collectRows(c, out)
	}
}

// isHeaderRow 认定两类表头行：位于 thead 中的行，或单元格全部为 th 的行。
func isHeaderRow(tr *html.Node) bool {
	for p := tr.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		if p.DataAtom == atom.Thead {
			return true
		}
		if p.DataAtom == atom.Table {
			break
		}
	}
	sawCell := false
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Th:
			sawCell = true
		case atom.Td:
			return false
		}
	}
	return sawCell
}

func cellTexts(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom == atom.Td || c.DataAtom == atom.Th {
			cells = append(cells, inlineText(c))
		}
	}
	return cells
}

// itemText 收集列表项的行内文本，跳过嵌套列表子树。
func itemText(li *html.Node) string {
	var b strings.Builder
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.DataAtom == atom.Ul || n.DataAtom == atom.Ol) {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		visit(c)
	}
	return collapseSpace(b.String())
}

// inlineText 把子树中的全部文本折叠为一行纯文本，行内标签只贡献文本。
func inlineText(n *html.Node) string {
	var b strings.Builder
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return collapseSpace(b.String())
}

// verbatimText 原样拼接子树文本，保留换行与缩进，供代码块使用。
func verbatimText(n *html.Node) string {
	var b strings.Builder
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
