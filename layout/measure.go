package layout

import "strings"

// SplitWords 按连续空白分词并丢弃空片段。
func SplitWords(text string) []string {
	return strings.Fields(text)
}

// CorrectedSpacing 返回实际插入相邻单词之间的间距。
func CorrectedSpacing(spacing float64) float64 {
	return spacing * CorrectionK
}

// MeasureLine 逐词生成字形并累加总宽度：N 个单词之间插入 N-1 个修正词距。
// 该宽度是居中的唯一依据，轮廓、圆点与文本框都由它推导，保证彼此同心。
func MeasureLine(text string, scale float64, tf Typeface, spacing float64) (LineLayout, error) {
	words := SplitWords(text)
	line := LineLayout{Text: text}
	if len(words) == 0 {
		return line, nil
	}
	line.Words = make([]WordShape, 0, len(words))
	for _, w := range words {
		shape, err := ShapeWord(w, scale, tf)
		if err != nil {
			return LineLayout{}, err
		}
		line.Words = append(line.Words, shape)
		line.Width += shape.Width
	}
	line.Width += CorrectedSpacing(spacing) * float64(len(words)-1)
	return line, nil
}
