package style

// 该文件定义导出样式的解析：主题 + 字号档位 → 一次导出所用的全部数值与颜色。
// Resolve 是纯函数，同样的输入永远得到同样的 Profile。

import "fmt"

// Theme 是封闭的主题集合，仅允许下列四个取值。
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeSepia Theme = "sepia"
	ThemeSlate Theme = "slate"
)

// SizeTier 是封闭的字号档位集合。
type SizeTier string

const (
	SizeSmall  SizeTier = "small"
	SizeMedium SizeTier = "medium"
	SizeLarge  SizeTier = "large"
)

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Profile 保存一次导出固定的字号（pt）、行高倍数与各角色颜色。
type Profile struct {
	Body float64 `json:"body"`
	H1   float64 `json:"h1"`
	H2   float64 `json:"h2"`
	H3   float64 `json:"h3"`
	Code float64 `json:"code"`

	// LineHeight 是行高相对字号的倍数。
	LineHeight float64 `json:"lineHeight"`

	Text      Color `json:"text"`
	Secondary Color `json:"secondary"`
	Border    Color `json:"border"`
	Heading1  Color `json:"heading1"`
	Heading2  Color `json:"heading2"`
	Heading3  Color `json:"heading3"`

	// 背景色：代码块、引用块与表头填充。
	CodeBackground  Color `json:"codeBackground"`
	QuoteBackground Color `json:"quoteBackground"`
	TableHeaderFill Color `json:"tableHeaderFill"`
}

// ConfigurationError 表示主题或字号档位取值不在封闭集合内。
// 配置错误在任何布局工作开始前返回，不产生部分输出。
type ConfigurationError struct {
	Field string
	Value string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("配置无效：%s=%q", e.Field, e.Value)
}

// 字号表（pt）与行高倍数，按档位固定。
var tierTable = map[SizeTier]struct {
	body, h1, h2, h3, code float64
	lineHeight             float64
}{
	SizeSmall:  {10, 20, 16, 12, 9, 1.4},
	SizeMedium: {11, 22, 18, 14, 10, 1.5},
	SizeLarge:  {12, 24, 20, 16, 11, 1.6},
}

// 主题颜色表。每个主题的取值固定，不做运行时推导。
var themeTable = map[Theme]Profile{
	ThemeLight: {
		Text:      Color{R: 30, G: 30, B: 30},
		Secondary: Color{R: 110, G: 110, B: 110},
		Border:    Color{R: 200, G: 200, B: 200},
		Heading1:  Color{R: 20, G: 20, B: 20},
		Heading2:  Color{R: 40, G: 40, B: 40},
		Heading3:  Color{R: 60, G: 60, B: 60},

		CodeBackground:  Color{R: 245, G: 245, B: 245},
		QuoteBackground: Color{R: 248, G: 248, B: 248},
		TableHeaderFill: Color{R: 240, G: 240, B: 240},
	},
	ThemeDark: {
		Text:      Color{R: 224, G: 224, B: 224},
		Secondary: Color{R: 150, G: 150, B: 150},
		Border:    Color{R: 90, G: 90, B: 90},
		Heading1:  Color{R: 240, G: 240, B: 240},
		Heading2:  Color{R: 225, G: 225, B: 225},
		Heading3:  Color{R: 210, G: 210, B: 210},

		CodeBackground:  Color{R: 45, G: 45, B: 48},
		QuoteBackground: Color{R: 40, G: 40, B: 44},
		TableHeaderFill: Color{R: 55, G: 55, B: 58},
	},
	ThemeSepia: {
		Text:      Color{R: 66, G: 52, B: 38},
		Secondary: Color{R: 130, G: 112, B: 92},
		Border:    Color{R: 205, G: 188, B: 160},
		Heading1:  Color{R: 56, G: 42, B: 28},
		Heading2:  Color{R: 74, G: 58, B: 42},
		Heading3:  Color{R: 92, G: 74, B: 56},

		CodeBackground:  Color{R: 243, G: 234, B: 216},
		QuoteBackground: Color{R: 246, G: 238, B: 223},
		TableHeaderFill: Color{R: 238, G: 227, B: 205},
	},
	ThemeSlate: {
		Text:      Color{R: 46, G: 54, B: 64},
		Secondary: Color{R: 104, G: 118, B: 132},
		Border:    Color{R: 176, G: 188, B: 200},
		Heading1:  Color{R: 32, G: 40, B: 52},
		Heading2:  Color{R: 48, G: 58, B: 70},
		Heading3:  Color{R: 64, G: 76, B: 90},

		CodeBackground:  Color{R: 236, G: 240, B: 244},
		QuoteBackground: Color{R: 240, G: 244, B: 247},
		TableHeaderFill: Color{R: 228, G: 234, B: 240},
	},
}

// Resolve 根据主题与字号档位返回 Profile。
// fontFamily 仅为兼容调用方签名而保留：输出字体面固定，族名不参与解析。
func Resolve(theme Theme, tier SizeTier, fontFamily string) (Profile, error) {
	_ = fontFamily

	profile, ok := themeTable[theme]
	if !ok {
		return Profile{}, &ConfigurationError{Field: "theme", Value: string(theme)}
	}
	sizes, ok := tierTable[tier]
	if !ok {
		return Profile{}, &ConfigurationError{Field: "size", Value: string(tier)}
	}

	profile.Body = sizes.body
	profile.H1 = sizes.h1
	profile.H2 = sizes.h2
	profile.H3 = sizes.h3
	profile.Code = sizes.code
	profile.LineHeight = sizes.lineHeight
	return profile, nil
}

// HeadingColor 返回指定级别标题的颜色，级别范围外回退到正文色。
func (p Profile) HeadingColor(level int) Color {
	switch level {
	case 1:
		return p.Heading1
	case 2:
		return p.Heading2
	case 3:
		return p.Heading3
	default:
		return p.Text
	}
}

// HeadingSize 返回指定级别标题的字号（pt）。
func (p Profile) HeadingSize(level int) float64 {
	switch level {
	case 1:
		return p.H1
	case 2:
		return p.H2
	case 3:
		return p.H3
	default:
		return p.Body
	}
}
