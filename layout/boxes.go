package layout

// ComputeBoxes 为每一行计算带内边距、水平居中的文本框，自 baseY 起逐行向下排列。
// Compose 复用每行的测量结果得到同样的文本框，本函数是其独立形式。
func ComputeBoxes(lines []string, centerX, baseY, pitch, scale float64, tf Typeface, spacing, capHeight, padding float64) ([]TextBox, error) {
	boxes := make([]TextBox, 0, len(lines))
	for i, text := range lines {
		line, err := MeasureLine(text, scale, tf, spacing)
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, boxFor(line.Width, centerX, lineY(baseY, pitch, i), capHeight, padding))
	}
	return boxes, nil
}

func boxFor(width, centerX, y, capHeight, padding float64) TextBox {
	return TextBox{
		X:      centerX - width/2 - padding,
		Y:      y - padding,
		Width:  width + 2*padding,
		Height: capHeight + 2*padding,
	}
}

// lineY 返回第 i 行（自上而下）的基线位置。
func lineY(baseY, pitch float64, i int) float64 {
	return baseY - float64(i)*pitch
}
