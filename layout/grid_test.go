package layout

import (
	"math"
	"testing"
)

func countKind(lines []GridLine, kind GridKind) int {
	n := 0
	for _, ln := range lines {
		if ln.Kind == kind {
			n++
		}
	}
	return n
}

func TestDrawGridHorizontalCount(t *testing.T) {
	frame := FrameFor(PageWidth, PageHeight, DefaultMargin())
	for _, step := range []float64{1.4, 0.5, 0.7, 3} {
		lines := DrawGrid(frame, nil, GridSpec{StepH: step})
		want := int(math.Floor(frame.Height()/step+1e-9)) + 1
		if got := countKind(lines, GridHorizontal); got != want {
			t.Fatalf("step %g: horizontal lines got=%d want=%d", step, got, want)
		}
		for _, ln := range lines {
			if ln.X1 != frame.X0 || ln.X2 != frame.X1 || ln.Y1 != ln.Y2 {
				t.Fatalf("horizontal line must span the frame: %+v", ln)
			}
			if len(ln.Segments) != 0 {
				t.Fatalf("no boxes means nothing visible, got %+v", ln.Segments)
			}
		}
	}
}

// 上下边界恰好落在步长整数倍上时两端都要包含。
func TestDrawGridHorizontalInclusiveEnds(t *testing.T) {
	frame := PageFrame{X0: 0, Y0: 0, X1: 10, Y1: 7}
	lines := DrawGrid(frame, nil, GridSpec{StepH: 0.5})
	if got := countKind(lines, GridHorizontal); got != 15 {
		t.Fatalf("expected 15 lines, got %d", got)
	}
	last := lines[len(lines)-1]
	if math.Abs(last.Y1-7) > 1e-9 {
		t.Fatalf("last line should sit on y1, got %g", last.Y1)
	}
}

func TestDrawGridVerticalCoverage(t *testing.T) {
	frame := PageFrame{X0: 20, Y0: 5, X1: 204.9, Y1: 291.7}
	h := frame.Height()
	lines := DrawGrid(frame, nil, GridSpec{StepV: 1.4, Classic: true})
	want := int(math.Ceil((frame.Width() + 2*h) / 1.4))
	if got := countKind(lines, GridVertical); got != want {
		t.Fatalf("vertical lines got=%d want=%d", got, want)
	}
	first, last := lines[0], lines[len(lines)-1]
	if math.Abs(first.X1-(frame.X0-h)) > 1e-9 {
		t.Fatalf("first vertical should start at x0-H, got %g", first.X1)
	}
	if last.X1 >= frame.X1+h {
		t.Fatalf("last vertical must stay below x1+H, got %g", last.X1)
	}
}

func TestDrawGridClassicAndZeroAngleAreVertical(t *testing.T) {
	frame := PageFrame{X0: 0, Y0: 0, X1: 30, Y1: 20}
	specs := []GridSpec{
		{StepV: 2, Classic: true, Angle: -15},
		{StepV: 2, Angle: 0},
	}
	for _, spec := range specs {
		for _, ln := range DrawGrid(frame, nil, spec) {
			if ln.X1 != ln.X2 {
				t.Fatalf("spec %+v: expected vertical line, got %+v", spec, ln)
			}
			if ln.Y1 != frame.Y0 || ln.Y2 != frame.Y1 {
				t.Fatalf("vertical line must span frame height: %+v", ln)
			}
		}
	}
}

func TestDrawGridSlantOffset(t *testing.T) {
	frame := PageFrame{X0: 0, Y0: 0, X1: 30, Y1: 20}
	want := 20 * math.Tan(15*math.Pi/180)
	lines := DrawGrid(frame, nil, GridSpec{StepV: 2, Angle: -15})
	if len(lines) == 0 {
		t.Fatalf("expected slanted lines")
	}
	for _, ln := range lines {
		if ln.Kind != GridSlanted {
			t.Fatalf("expected slanted kind, got %v", ln.Kind)
		}
		if dx := ln.X2 - ln.X1; math.Abs(dx-want) > 1e-9 {
			t.Fatalf("dx got=%g want=%g", dx, want)
		}
	}
	if got := SlantOffset(20, -15); math.Abs(got-want) > 1e-12 {
		t.Fatalf("SlantOffset got=%g want=%g", got, want)
	}
}

func TestDrawGridClipsHorizontalToBox(t *testing.T) {
	frame := PageFrame{X0: 0, Y0: 0, X1: 100, Y1: 50}
	box := TextBox{X: 10, Y: 10, Width: 20, Height: 5}
	lines := DrawGrid(frame, []TextBox{box}, GridSpec{StepH: 1})
	visible := 0
	for _, ln := range lines {
		if len(ln.Segments) == 0 {
			continue
		}
		visible++
		if len(ln.Segments) != 1 {
			t.Fatalf("expected a single segment, got %+v", ln.Segments)
		}
		s := ln.Segments[0]
		if math.Abs(s.X1-10) > 1e-9 || math.Abs(s.X2-30) > 1e-9 {
			t.Fatalf("segment not clipped to box: %+v", s)
		}
	}
	if visible != 6 {
		t.Fatalf("expected 6 visible horizontal lines (y=10..15), got %d", visible)
	}
}

func TestDrawGridClipsSlantedInsideBoxes(t *testing.T) {
	frame := FrameFor(PageWidth, PageHeight, DefaultMargin())
	boxes := []TextBox{
		{X: 60, Y: 150, Width: 90, Height: 14},
		{X: 80, Y: 134.5, Width: 50, Height: 14},
	}
	lines := DrawGrid(frame, boxes, GridSpec{StepV: 1.4, Angle: -15})
	const tol = 1e-6
	inAny := func(x, y float64) bool {
		for _, b := range boxes {
			if b.X-tol <= x && x <= b.X+b.Width+tol && b.Y-tol <= y && y <= b.Y+b.Height+tol {
				return true
			}
		}
		return false
	}
	visible := 0
	for _, ln := range lines {
		for _, s := range ln.Segments {
			visible++
			if !inAny(s.X1, s.Y1) || !inAny(s.X2, s.Y2) {
				t.Fatalf("segment leaves the boxes: %+v", s)
			}
			// 可见部分仍在原始直线上
			cross := (ln.X2-ln.X1)*(s.Y2-ln.Y1) - (ln.Y2-ln.Y1)*(s.X2-ln.X1)
			if math.Abs(cross) > 1e-6 {
				t.Fatalf("segment is off the ruling line: %+v vs %+v", s, ln)
			}
			if s.Y2 <= s.Y1 {
				t.Fatalf("segment must follow the line direction: %+v", s)
			}
		}
	}
	if visible == 0 {
		t.Fatalf("expected slanted segments inside the boxes")
	}
}

func TestDrawGridMergesOverlappingBoxes(t *testing.T) {
	frame := PageFrame{X0: 0, Y0: 0, X1: 100, Y1: 50}
	boxes := []TextBox{
		{X: 20, Y: 10, Width: 20, Height: 5},
		{X: 10, Y: 10, Width: 20, Height: 5},
		{X: 70, Y: 10, Width: 5, Height: 5},
	}
	lines := DrawGrid(frame, boxes, GridSpec{StepH: 12})
	// y=12 穿过三个框：前两个重叠合并为一段
	ln := lines[1]
	if len(ln.Segments) != 2 {
		t.Fatalf("expected 2 merged segments, got %+v", ln.Segments)
	}
	if s := ln.Segments[0]; math.Abs(s.X1-10) > 1e-9 || math.Abs(s.X2-40) > 1e-9 {
		t.Fatalf("unexpected merged segment %+v", s)
	}
	if s := ln.Segments[1]; math.Abs(s.X1-70) > 1e-9 || math.Abs(s.X2-75) > 1e-9 {
		t.Fatalf("unexpected second segment %+v", s)
	}
}

func TestDrawGridNonPositiveStepsDrawNothing(t *testing.T) {
	frame := PageFrame{X0: 0, Y0: 0, X1: 10, Y1: 10}
	if lines := DrawGrid(frame, nil, GridSpec{}); len(lines) != 0 {
		t.Fatalf("expected no lines, got %d", len(lines))
	}
}

func TestDrawGridDefaultsStrokeWidth(t *testing.T) {
	frame := PageFrame{X0: 0, Y0: 0, X1: 10, Y1: 10}
	for _, ln := range DrawGrid(frame, nil, GridSpec{StepH: 5, Color: "#81D4FA"}) {
		if ln.Width != GridStrokeWidth || ln.Color != "#81D4FA" {
			t.Fatalf("unexpected stroke style: %+v", ln)
		}
	}
}
