package fonts

// 输出字体面固定为 Go 字体家族的四个面：常规、加粗、斜体、等宽。
// 字节数据由 golang.org/x/image/font/gofont 内嵌提供，无需外部文件。

import (
	"fmt"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Load 返回指定字体面的 TTF 字节数据。
// name 取值：regular、bold、italic、mono。
func Load(name string) ([]byte, error) {
	switch name {
	case "regular":
		return goregular.TTF, nil
	case "bold":
		return gobold.TTF, nil
	case "italic":
		return goitalic.TTF, nil
	case "mono":
		return gomono.TTF, nil
	default:
		return nil, fmt.Errorf("未知的字体面 %q", name)
	}
}
