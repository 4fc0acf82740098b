package sheet

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// DecodeText 把文本文件内容解码为字符串：合法 UTF-8 原样返回（去掉 BOM），
// 否则按 Windows-1251 解码。
func DecodeText(data []byte) string {
	if utf8.Valid(data) {
		return strings.TrimPrefix(string(data), "\ufeff")
	}
	out, _, err := transform.Bytes(charmap.Windows1251.NewDecoder(), data)
	if err != nil {
		// Windows-1251 覆盖全部字节值
		return strings.ToValidUTF8(string(data), "\ufffd")
	}
	return string(out)
}

// SplitLines 按换行拆分文本，去掉首尾空白并丢弃空行。
func SplitLines(text string) []string {
	var lines []string
	for _, raw := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' }) {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// FromText 用纯文本构造描述，配置取默认值。
func FromText(data []byte) *Sheet {
	s := New()
	s.Lines = SplitLines(DecodeText(data))
	return s
}
