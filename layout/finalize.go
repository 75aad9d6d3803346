package layout

// 该文件实现页面终止化：总页数只有在整个第一遍分页结束后才可知，
// 因此页脚加盖必须是独立的第二遍，不能与分页交织。

import (
	"fmt"
	"time"

	"quire/style"
)

// 页脚文本相对底边距上抬的高度（mm），落在页脚保留带内。
const footerRise = 6.0

// Finalize 为每一页在命令序列末尾追加两条文本命令：
// 左侧导出日期，右侧 “Page i of N”。只追加，不重排、不删除。
// 对同一组页面只应执行一次；重复执行会叠加页脚。
func Finalize(pages []Page, profile style.Profile, exportedAt time.Time, opts Options) []Page {
	geom := opts.geometry()
	total := len(pages)
	size := profile.Body - 2
	date := exportedAt.Format("2006-01-02")
	y := geom.PageHeight - geom.Margin - footerRise

	out := make([]Page, total)
	for i, p := range pages {
		cmds := make([]DrawCommand, len(p.Commands), len(p.Commands)+2)
		copy(cmds, p.Commands)

		label := fmt.Sprintf("Page %d of %d", i+1, total)
		labelW := measureWidth(opts.Typesetter, label, FontBody, size)

		cmds = append(cmds, Text{
			X: geom.Margin, Y: y, Content: date,
			FontSize: size, Font: FontBody, Color: profile.Secondary,
		})
		cmds = append(cmds, Text{
			X: geom.PageWidth - geom.Margin - labelW, Y: y, Content: label,
			FontSize: size, Font: FontBody, Color: profile.Secondary,
		})
		out[i] = Page{Index: p.Index, Commands: cmds}
	}
	return out
}
