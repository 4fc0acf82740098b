package layout

import (
	"errors"
	"fmt"

	"github.com/tdewolff/canvas"
)

// ErrEmptyWord 表示试图对空单词做字形计算；调用方应先按空白分词。
var ErrEmptyWord = errors.New("layout: 空单词")

// DeriveScale 计算字体参考单位到毫米的缩放系数，使 "A" 的轮廓高度等于 capHeight。
// 参考字形高度非正（空字形等退化情况）时返回 1.0，不视为错误。
func DeriveScale(capHeight float64, tf Typeface) (float64, error) {
	if tf == nil {
		return 0, fmt.Errorf("layout: 缺少字体 Typeface")
	}
	ref, err := tf.Outline("A", ReferenceSize)
	if err != nil {
		return 0, fmt.Errorf("测量参考字形失败: %w", err)
	}
	if ref == nil || ref.Empty() {
		return 1.0, nil
	}
	b := ref.Bounds()
	h := b.Y1 - b.Y0
	if h <= 0 {
		return 1.0, nil
	}
	return capHeight / h, nil
}

// ShapeWord 返回单词缩放后并左对齐到 x=0 的轮廓、物理宽度与对齐前的最左偏移。
func ShapeWord(word string, scale float64, tf Typeface) (WordShape, error) {
	if word == "" {
		return WordShape{}, ErrEmptyWord
	}
	if tf == nil {
		return WordShape{}, fmt.Errorf("layout: 缺少字体 Typeface")
	}
	outline, err := tf.Outline(word, ReferenceSize)
	if err != nil {
		return WordShape{}, fmt.Errorf("生成单词 %q 的轮廓失败: %w", word, err)
	}
	if outline == nil || outline.Empty() {
		// 字体中没有可见字形，按零宽处理
		return WordShape{Word: word, Path: &canvas.Path{}}, nil
	}

	b := outline.Bounds()
	minX := b.X0 * scale
	shaped := outline.Copy().
		Transform(canvas.Identity.Scale(scale, scale)).
		Transform(canvas.Identity.Translate(-minX, 0))
	return WordShape{
		Word:   word,
		Path:   shaped,
		Width:  (b.X1 - b.X0) * scale,
		Offset: minX,
	}, nil
}
