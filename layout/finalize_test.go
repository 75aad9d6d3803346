package layout

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"quire/markup"
)

func TestFinalizeEmptyDocument(t *testing.T) {
	profile := mediumProfile(t)
	opts := testOptions()
	pages := Paginate(nil, profile, opts)
	out := Finalize(pages, profile, time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), opts)

	if len(out) != 1 {
		t.Fatalf("空文档应为一页, got %d", len(out))
	}
	cmds := out[0].Commands
	if len(cmds) != 2 {
		t.Fatalf("空页终止化后只应有两条页脚命令: %#v", cmds)
	}
	date, ok := cmds[0].(Text)
	if !ok || date.Content != "2024-03-01" {
		t.Fatalf("左侧应为导出日期: %#v", cmds[0])
	}
	label, ok := cmds[1].(Text)
	if !ok || label.Content != "Page 1 of 1" {
		t.Fatalf("右侧应为页码: %#v", cmds[1])
	}
}

// TestFinalizeStampsEveryPage 多页文档每页末尾恰好追加日期与 “Page i of N”。
func TestFinalizeStampsEveryPage(t *testing.T) {
	profile := mediumProfile(t)
	opts := testOptions()

	lines := make([]string, 400)
	for i := range lines {
		lines[i] = fmt.Sprintf("l%d", i)
	}
	pages := Paginate([]markup.Block{markup.CodeBlock{Lines: lines}}, profile, opts)
	if len(pages) < 2 {
		t.Fatalf("测试前提：应跨多页, got %d", len(pages))
	}

	out := Finalize(pages, profile, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), opts)
	total := len(out)
	for i, p := range out {
		n := len(p.Commands)
		if n < 2 {
			t.Fatalf("第 %d 页缺少页脚命令", i)
		}
		date, ok := p.Commands[n-2].(Text)
		if !ok || date.Content != "2024-03-01" {
			t.Fatalf("第 %d 页倒数第二条应为日期: %#v", i, p.Commands[n-2])
		}
		label, ok := p.Commands[n-1].(Text)
		if !ok || label.Content != fmt.Sprintf("Page %d of %d", i+1, total) {
			t.Fatalf("第 %d 页页码错误: %#v", i, p.Commands[n-1])
		}
	}
}

// TestFinalizeFooterGeometry 日期左对齐边距，页码右缘不越过右边距，
// 两者都落在页脚保留带内。
func TestFinalizeFooterGeometry(t *testing.T) {
	profile := mediumProfile(t)
	opts := testOptions()
	geom := opts.geometry()

	pages := Paginate([]markup.Block{markup.Paragraph{Text: "hello"}}, profile, opts)
	out := Finalize(pages, profile, time.Now(), opts)

	cmds := out[0].Commands
	date := cmds[len(cmds)-2].(Text)
	label := cmds[len(cmds)-1].(Text)

	if date.X != geom.Margin {
		t.Fatalf("日期应贴左边距: x=%g", date.X)
	}
	if label.X < geom.Margin {
		t.Fatalf("页码起点不应越过左边距: x=%g", label.X)
	}
	rightEdge := label.X + float64(len(label.Content))*stubCharWidth
	if rightEdge > geom.PageWidth-geom.Margin+1e-6 {
		t.Fatalf("页码右缘应落在右边距内: %g", rightEdge)
	}
	wantY := geom.PageHeight - geom.Margin - footerRise
	if date.Y != wantY || label.Y != wantY {
		t.Fatalf("页脚应位于保留带内固定高度: %g/%g want %g", date.Y, label.Y, wantY)
	}
	if date.Y <= geom.MaxContentY() {
		t.Fatalf("页脚不应与内容区域重叠: y=%g max=%g", date.Y, geom.MaxContentY())
	}
	wantSize := profile.Body - 2
	if date.FontSize != wantSize || label.FontSize != wantSize {
		t.Fatalf("页脚字号应比正文小两号: %g/%g", date.FontSize, label.FontSize)
	}
	if date.Color != profile.Secondary || label.Color != profile.Secondary {
		t.Fatalf("页脚应使用次要文本色")
	}
}

// TestFinalizeDoesNotMutateInput 终止化返回新页面，输入的命令切片保持原样。
func TestFinalizeDoesNotMutateInput(t *testing.T) {
	profile := mediumProfile(t)
	opts := testOptions()

	blocks := []markup.Block{
		markup.Heading{Level: 1, Text: "Title"},
		markup.Paragraph{Text: strings.Repeat("word ", 50)},
	}
	pages := Paginate(blocks, profile, opts)
	snapshot := make([][]DrawCommand, len(pages))
	for i, p := range pages {
		snapshot[i] = append([]DrawCommand(nil), p.Commands...)
	}

	out := Finalize(pages, profile, time.Now(), opts)
	for i, p := range pages {
		if !reflect.DeepEqual(p.Commands, snapshot[i]) {
			t.Fatalf("第 %d 页输入被修改", i)
		}
		if len(out[i].Commands) != len(p.Commands)+2 {
			t.Fatalf("第 %d 页应恰好新增两条命令", i)
		}
		if !reflect.DeepEqual(out[i].Commands[:len(p.Commands)], p.Commands) {
			t.Fatalf("第 %d 页原有命令应原样保留", i)
		}
	}
}
