package layout

// 该文件定义分页结果的数据模型：页面与四种绘制原语。
// 坐标与尺寸单位为 mm，原点在页面左上角；字号单位为 pt，mm↔pt 换算发生在测量与渲染边界。

import "quire/style"

// Font 标识文本命令使用的固定字体面。
type Font int

const (
	FontBody   Font = iota // 正文，常规
	FontBold               // 标题与表头，加粗
	FontItalic             // 引用，斜体
	FontMono               // 代码，等宽
)

// String 返回字体面的短名称，用于调试输出。
func (f Font) String() string {
	switch f {
	case FontBody:
		return "body"
	case FontBold:
		return "bold"
	case FontItalic:
		return "italic"
	case FontMono:
		return "mono"
	default:
		return "body"
	}
}

// DrawCommand 是页面内的绘制原语，变体集合封闭：
// 放置文本、填充矩形、描边矩形、画线。命令顺序即绘制顺序。
type DrawCommand interface {
	isCommand()
}

// Text 在 (X, Y) 放置一行文本。Y 为行框顶部，渲染器负责换算基线。
type Text struct {
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Content  string      `json:"content"`
	FontSize float64     `json:"fontSize"` // pt
	Font     Font        `json:"font"`
	Color    style.Color `json:"color"`
}

// FilledRect 填充一个矩形区域。
type FilledRect struct {
	X     float64     `json:"x"`
	Y     float64     `json:"y"`
	W     float64     `json:"w"`
	H     float64     `json:"h"`
	Color style.Color `json:"color"`
}

// StrokedRect 描边一个矩形区域，不填充。
type StrokedRect struct {
	X           float64     `json:"x"`
	Y           float64     `json:"y"`
	W           float64     `json:"w"`
	H           float64     `json:"h"`
	Color       style.Color `json:"color"`
	StrokeWidth float64     `json:"strokeWidth"`
}

// Line 画一条线段。
type Line struct {
	X1    float64     `json:"x1"`
	Y1    float64     `json:"y1"`
	X2    float64     `json:"x2"`
	Y2    float64     `json:"y2"`
	Color style.Color `json:"color"`
	Width float64     `json:"width"`
}

func (Text) isCommand()        {}
func (FilledRect) isCommand()  {}
func (StrokedRect) isCommand() {}
func (Line) isCommand()        {}

// Page 保存一页的命令序列。布局阶段只追加；终止化阶段在末尾追加页脚命令，
// 不会重排或删除既有命令。
type Page struct {
	Index    int
	Commands []DrawCommand
}

func (p *Page) append(cmd DrawCommand) {
	p.Commands = append(p.Commands, cmd)
}

// Geometry 描述页面几何：固定竖版页面尺寸、四边等宽边距与底部页脚保留带。
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64
	FooterBand float64
}

// A4 返回默认几何：A4 竖版，20mm 边距，12mm 页脚保留带。
func A4() Geometry {
	return Geometry{PageWidth: 210, PageHeight: 297, Margin: 20, FooterBand: 12}
}

// ContentWidth 返回正文可用宽度。
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - 2*g.Margin
}

// MaxContentY 返回正文区域底界：页面高度减去边距与页脚保留带。
func (g Geometry) MaxContentY() float64 {
	return g.PageHeight - g.Margin - g.FooterBand
}
