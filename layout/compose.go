package layout

import (
	"fmt"
	"math"
	"strings"
)

// DefaultMargin 返回标准页边距：左 20mm，其余 5mm。
func DefaultMargin() Margin {
	return Margin{Top: MarginTop, Right: MarginRight, Bottom: MarginBottom, Left: MarginLeft}
}

// FrameFor 返回按页边距内缩后的可绘制区域。
func FrameFor(width, height float64, m Margin) PageFrame {
	return PageFrame{X0: m.Left, Y0: m.Bottom, X1: width - m.Right, Y1: height - m.Top}
}

// BaseY 返回首行基线：从区域 65% 高度处向下对齐到行距的整数倍。
func BaseY(frame PageFrame) float64 {
	start := frame.Y0 + frame.Height()*startFraction
	return start - math.Mod(start, LineStep)
}

// Compose 把文本行排成一页：页框 → 格线（可选）→ 每行轮廓或圆点。
// 每次调用都返回新的 Page，调用之间不共享任何可变状态。
func Compose(lines []string, tf Typeface, opts Options) (*Page, error) {
	if tf == nil {
		return nil, fmt.Errorf("layout: 缺少字体 Typeface")
	}
	opts = opts.Normalize()
	page := &Page{
		Width:  PageWidth,
		Height: PageHeight,
		Margin: DefaultMargin(),
		Mode:   opts.ResolveMode(),
		DPI:    opts.DPI,
		Meta:   opts.Meta,
		Stage:  StageEmpty,
	}

	// 页框
	page.Frame = FrameFor(page.Width, page.Height, page.Margin)
	page.FrameColor = opts.FrameColor
	page.FrameWidth = FrameStrokeWidth
	page.Stage = StageFrame

	scale, err := DeriveScale(opts.CapHeight, tf)
	if err != nil {
		return nil, err
	}
	centerX := (page.Frame.X0 + page.Frame.X1) / 2
	baseY := BaseY(page.Frame)

	// 每行只测量一次，文本框与绘制共用同一宽度。
	texts := cleanLines(lines)
	page.Lines = make([]LineLayout, 0, len(texts))
	page.Boxes = make([]TextBox, 0, len(texts))
	for i, text := range texts {
		line, err := MeasureLine(text, scale, tf, opts.Spacing)
		if err != nil {
			return nil, fmt.Errorf("第 %d 行排版失败: %w", i+1, err)
		}
		page.Lines = append(page.Lines, line)
		page.Boxes = append(page.Boxes, boxFor(line.Width, centerX, lineY(baseY, LineStep, i), opts.CapHeight, opts.Padding))
	}

	if opts.GridEnabled() {
		page.Grid = DrawGrid(page.Frame, page.Boxes, GridSpec{
			StepH:   opts.StepH,
			StepV:   opts.StepV,
			Angle:   opts.Angle,
			Classic: opts.ClassicGrid,
			Color:   opts.GridColor,
			Width:   GridStrokeWidth,
		})
		page.Stage = StageGrid
	}

	stroke := EffectiveStrokeWidth(opts.StrokeWidth, opts.CapHeight)
	for i, line := range page.Lines {
		y := lineY(baseY, LineStep, i)
		switch page.Mode {
		case ModeOutline:
			page.Glyphs = append(page.Glyphs, placeOutlines(line, i, centerX, y, opts.Spacing, stroke, opts.GlyphColor)...)
		case ModeDots:
			page.Dots = append(page.Dots, placeDots(line, i, centerX, y, opts.Spacing, opts.CapHeight, opts.GlyphColor)...)
		}
	}
	page.Stage = StageLines

	// 此后页面只读，可交给任意渲染器导出。
	page.Stage = StageFinal
	return page, nil
}

// cleanLines 去掉首尾空白并丢弃空行。
func cleanLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		if s := strings.TrimSpace(ln); s != "" {
			out = append(out, s)
		}
	}
	return out
}
