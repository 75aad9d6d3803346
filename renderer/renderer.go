package renderer

import "quire/layout"

// Renderer 将终止化后的页面序列化为最终文件字节（例如 PDF）。
// 序列化在布局完全结束后一次性进行，不做流式输出。
type Renderer interface {
	Render(pages []layout.Page) ([]byte, error)
}
