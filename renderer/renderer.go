package renderer

import (
	"fmt"
	"strings"

	"github.com/ByLCY/gostsheet/layout"
)

// Format 是导出格式。
type Format string

const (
	PDF Format = "pdf"
	SVG Format = "svg"
	PNG Format = "png"
)

// Formats 列出全部支持的格式。
var Formats = []Format{PDF, SVG, PNG}

// Ext 返回带点的文件扩展名。
func (f Format) Ext() string { return "." + string(f) }

// ParseFormat 解析格式名称（大小写不敏感）。
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("不支持的导出格式 %q", s)
}

// ParseFormats 解析逗号分隔的格式列表，去重并保持顺序。
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	seen := map[Format]bool{}
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, err := ParseFormat(part)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("至少需要一种导出格式")
	}
	return out, nil
}

// Renderer 将合成好的页面导出为指定格式，返回生成的二进制数据。
// 实现不得保留跨调用的输出缓冲，每次调用返回独立的结果。
type Renderer interface {
	Render(page *layout.Page, format Format) ([]byte, error)
}
