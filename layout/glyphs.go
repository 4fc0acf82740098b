package layout

// RenderLine 生成一行文本的轮廓绘制指令：光标从 centerX - W/2 开始，
// 逐词放置并前进单词宽度，非末词之后再前进修正词距。
// 这是 Compose 中轮廓绘制的单行独立形式。
func RenderLine(text string, centerX, y, scale float64, tf Typeface, spacing, capHeight, strokeWidth float64, color string) ([]GlyphOutline, error) {
	line, err := MeasureLine(text, scale, tf, spacing)
	if err != nil {
		return nil, err
	}
	return placeOutlines(line, 0, centerX, y, spacing, EffectiveStrokeWidth(strokeWidth, capHeight), color), nil
}

// RenderDots 与 RenderLine 使用相同的光标走法，但在每个单词真实的起笔点
// （cursor + Offset, y）放置一个半径为 capHeight/14/2 的实心圆点。
// 这是 Compose 中圆点绘制的单行独立形式。
func RenderDots(text string, centerX, y, scale float64, tf Typeface, spacing, capHeight float64, color string) ([]Dot, error) {
	line, err := MeasureLine(text, scale, tf, spacing)
	if err != nil {
		return nil, err
	}
	return placeDots(line, 0, centerX, y, spacing, capHeight, color), nil
}

// walkWords 依次回调每个单词的起始光标位置。
func walkWords(line LineLayout, centerX, spacing float64, fn func(i int, cursor float64)) {
	cursor := centerX - line.Width/2
	gap := CorrectedSpacing(spacing)
	for i, w := range line.Words {
		fn(i, cursor)
		cursor += w.Width
		if i < len(line.Words)-1 {
			cursor += gap
		}
	}
}

func placeOutlines(line LineLayout, index int, centerX, y, spacing, strokeWidth float64, color string) []GlyphOutline {
	out := make([]GlyphOutline, 0, len(line.Words))
	walkWords(line, centerX, spacing, func(i int, cursor float64) {
		w := line.Words[i]
		out = append(out, GlyphOutline{
			Line:        index,
			Word:        w.Word,
			Path:        w.Path,
			X:           cursor,
			Y:           y,
			Width:       w.Width,
			StrokeWidth: strokeWidth,
			Color:       color,
		})
	})
	return out
}

func placeDots(line LineLayout, index int, centerX, y, spacing, capHeight float64, color string) []Dot {
	r := DefaultStrokeWidth(capHeight) / 2
	out := make([]Dot, 0, len(line.Words))
	walkWords(line, centerX, spacing, func(i int, cursor float64) {
		out = append(out, Dot{
			Line:  index,
			CX:    cursor + line.Words[i].Offset,
			CY:    y,
			R:     r,
			Color: color,
		})
	})
	return out
}
