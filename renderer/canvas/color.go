package canvasrenderer

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/colornames"
)

// ParseColor 支持三种写法：
//   - "#rgb"、"#rgba"、"#rrggbb"、"#rrggbbaa"
//   - CSS 颜色名，例如 "lightgray"
//   - 0 到 1 之间的灰度值，例如 "0.6"（0 为黑，1 为白）
func ParseColor(s string) (color.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return nil, fmt.Errorf("颜色为空")
	}
	if strings.HasPrefix(v, "#") {
		digits := v[1:]
		switch len(digits) {
		case 3, 4, 6, 8:
		default:
			return nil, fmt.Errorf("无效的颜色 %q", s)
		}
		if _, err := strconv.ParseUint(digits, 16, 32); err != nil {
			return nil, fmt.Errorf("无效的颜色 %q", s)
		}
		return canvas.Hex(v), nil
	}
	if c, ok := colornames.Map[v]; ok {
		return c, nil
	}
	if g, err := strconv.ParseFloat(v, 64); err == nil {
		if g < 0 || g > 1 || math.IsNaN(g) {
			return nil, fmt.Errorf("灰度值 %q 超出 0~1 范围", s)
		}
		y := uint8(math.Round(g * 255))
		return color.RGBA{R: y, G: y, B: y, A: 0xff}, nil
	}
	return nil, fmt.Errorf("无法识别的颜色 %q", s)
}
