package layout

import (
	"errors"

	"github.com/tdewolff/canvas"
)

// stubTypeface 是一个最小实现，仅用于测试，避免依赖真实字体文件。
// 每个字符画成一个矩形：横向占 [0.1s, 0.6s]，前进 0.7s，高 0.7s（s 为字号）。
type stubTypeface struct{}

func (stubTypeface) Outline(text string, size float64) (*canvas.Path, error) {
	p := &canvas.Path{}
	for i := range []rune(text) {
		x := float64(i)*0.7*size + 0.1*size
		w, h := 0.5*size, 0.7*size
		p.MoveTo(x, 0)
		p.LineTo(x+w, 0)
		p.LineTo(x+w, h)
		p.LineTo(x, h)
		p.Close()
	}
	return p, nil
}

// stubWordWidth 返回 n 个字符的单词在 scale 下的物理宽度。
func stubWordWidth(n int, scale float64) float64 {
	return (float64(n-1)*0.7 + 0.5) * ReferenceSize * scale
}

// stubScale 是 stubTypeface 在给定字高下的缩放系数。
func stubScale(capHeight float64) float64 {
	return capHeight / (0.7 * ReferenceSize)
}

// emptyTypeface 对所有文本返回空轮廓。
type emptyTypeface struct{}

func (emptyTypeface) Outline(string, float64) (*canvas.Path, error) { return &canvas.Path{}, nil }

// brokenTypeface 总是失败。
type brokenTypeface struct{}

var errBroken = errors.New("broken font")

func (brokenTypeface) Outline(string, float64) (*canvas.Path, error) { return nil, errBroken }

// cachingTypeface 记住最后一次返回的轮廓，用于检查调用方是否原地修改。
type cachingTypeface struct {
	last *canvas.Path
}

func (c *cachingTypeface) Outline(text string, size float64) (*canvas.Path, error) {
	p, err := stubTypeface{}.Outline(text, size)
	c.last = p
	return p, err
}
