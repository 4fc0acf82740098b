package layout

import (
	"math"
	"sort"
)

// GridSpec 描述细格线的步长、角度与样式。
type GridSpec struct {
	StepH   float64 // 横线步长（mm）
	StepV   float64 // 竖/斜线步长（mm）
	Angle   float64 // 斜线角度（度），标准值为 -15
	Classic bool    // true 时绘制真正的竖线
	Color   string
	Width   float64 // 线宽（mm），<=0 时取 GridStrokeWidth
}

// DrawGrid 在 frame 内生成横线与竖/斜线，并把每条线裁剪到 boxes 的并集。
// 没有可见部分的线仍然保留（Segments 为空），方便按条数核对。
func DrawGrid(frame PageFrame, boxes []TextBox, spec GridSpec) []GridLine {
	width := spec.Width
	if width <= 0 {
		width = GridStrokeWidth
	}
	var lines []GridLine
	add := func(kind GridKind, x1, y1, x2, y2 float64) {
		lines = append(lines, GridLine{
			Kind:     kind,
			X1:       x1,
			Y1:       y1,
			X2:       x2,
			Y2:       y2,
			Segments: clipToBoxes(x1, y1, x2, y2, boxes),
			Color:    spec.Color,
			Width:    width,
		})
	}

	if spec.StepH > 0 {
		for i := 0; ; i++ {
			y := frame.Y0 + float64(i)*spec.StepH
			if y > frame.Y1+gridTolerance {
				break
			}
			add(GridHorizontal, frame.X0, y, frame.X1, y)
		}
	}

	if spec.StepV > 0 {
		height := frame.Height()
		start, stop := frame.X0-height, frame.X1+height
		n := int(math.Ceil((stop - start) / spec.StepV))
		kind, dx := GridVertical, 0.0
		if !spec.Classic {
			kind, dx = GridSlanted, SlantOffset(height, spec.Angle)
		}
		for i := 0; i < n; i++ {
			xv := start + float64(i)*spec.StepV
			add(kind, xv, frame.Y0, xv+dx, frame.Y1)
		}
	}
	return lines
}

// SlantOffset 返回高度为 height 的斜线在顶端相对底端的水平位移。
func SlantOffset(height, angle float64) float64 {
	return height * math.Tan(-angle*math.Pi/180)
}

type interval struct{ t0, t1 float64 }

// clipToBoxes 返回线段落在各矩形并集内的部分，按线段方向排序，重叠部分只保留一次。
func clipToBoxes(x1, y1, x2, y2 float64, boxes []TextBox) []Segment {
	var spans []interval
	for _, b := range boxes {
		if t0, t1, ok := clipSegment(x1, y1, x2, y2, b); ok {
			spans = append(spans, interval{t0, t1})
		}
	}
	if len(spans) == 0 {
		return nil
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].t0 < spans[j].t0 })
	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.t0 <= last.t1 {
			last.t1 = math.Max(last.t1, s.t1)
			continue
		}
		merged = append(merged, s)
	}

	dx, dy := x2-x1, y2-y1
	segs := make([]Segment, 0, len(merged))
	for _, s := range merged {
		segs = append(segs, Segment{
			X1: x1 + s.t0*dx,
			Y1: y1 + s.t0*dy,
			X2: x1 + s.t1*dx,
			Y2: y1 + s.t1*dy,
		})
	}
	return segs
}

// clipSegment 是 Liang–Barsky 裁剪，返回线段参数区间 [t0, t1]。
// 仅与矩形相切于一点的情况不算可见。
func clipSegment(x1, y1, x2, y2 float64, b TextBox) (float64, float64, bool) {
	dx, dy := x2-x1, y2-y1
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x1 - b.X, b.X + b.Width - x1, y1 - b.Y, b.Y + b.Height - y1}
	t0, t1 := 0.0, 1.0
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, false
			}
			continue
		}
		r := q[i] / p[i]
		if p[i] < 0 {
			t0 = math.Max(t0, r)
		} else {
			t1 = math.Min(t1, r)
		}
	}
	if t1-t0 <= gridTolerance*gridTolerance {
		return 0, 0, false
	}
	return t0, t1, true
}
