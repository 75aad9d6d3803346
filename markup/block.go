package markup

// Block 是扁平化后的语义内容单元，顺序即阅读顺序。
// 变体集合封闭：分页引擎按类型穷举分派，新增类型必须同步扩展引擎。
type Block interface {
	isBlock()
}

// Heading 表示 1~3 级标题。更深层级的标题标签在扁平化时折叠为 3 级。
type Heading struct {
	Level int
	Text  string
}

// Paragraph 表示一段普通正文。
type Paragraph struct {
	Text string
}

// ListItem 表示一个列表项。
// Indent 为嵌套深度（0 起），Ordinal 仅在 Ordered 为真时有意义，且每个列表从 1 重新计数。
type ListItem struct {
	Text    string
	Indent  int
	Ordered bool
	Ordinal int
}

// CodeBlock 保存逐行的源码文本，扁平化阶段不做任何折行。
type CodeBlock struct {
	Lines []string
}

// Blockquote 表示引用块，内容已折叠为纯文本。
type Blockquote struct {
	Text string
}

// Table 保存单元格文本矩阵。表头行（若存在）排在 Rows 最前。
type Table struct {
	Rows         [][]string
	HasHeaderRow bool
}

// Rule 表示水平分隔线。
type Rule struct{}

func (Heading) isBlock()    {}
func (Paragraph) isBlock()  {}
func (ListItem) isBlock()   {}
func (CodeBlock) isBlock()  {}
func (Blockquote) isBlock() {}
func (Table) isBlock()      {}
func (Rule) isBlock()       {}
