package layout

// Options 配置分页与终止化阶段的依赖，例如排版测量后端与页面几何。
// 零值可用：几何回退到 A4()，测量回退到内置估算。
type Options struct {
	Typesetter Typesetter
	Geometry   Geometry
}

func (o Options) geometry() Geometry {
	if o.Geometry == (Geometry{}) {
		return A4()
	}
	return o.Geometry
}

// Typesetter 负责在给定宽度约束下把文本拆成可绘制的行。
// width 单位 mm，fontSize 单位 pt；返回行宽单位 mm。
// 每次放置决策前都会通过它测量，实现必须是确定性的。
type Typesetter interface {
	LayoutLines(content string, width float64, font Font, fontSize float64) ([]TextLine, error)
}

// TextLine 表示测量后的一行文本及其宽度（mm）。
type TextLine struct {
	Content string  `json:"content"`
	Width   float64 `json:"width"`
}
