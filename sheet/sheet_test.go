package sheet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ByLCY/gostsheet/dsl"
	"github.com/ByLCY/gostsheet/layout"
	"github.com/ByLCY/gostsheet/typeface"
)

const sample = `
sheet "Лист ${user}" {
  font: "builtin:gomono"
  engine: sfnt
  capHeight: 1cm
  spacing: 3
  stroke: 0.5mm
  padding: 1.5
  dpi: 150
  grid: classic
  steps: [2, 3mm]
  angle: -20
  mode: dots

  colors {
    frame: #B3E5FC
    grid: "0.4"
    glyph: black
  }

  meta {
    author: "${user}"
    subject: "ГОСТ 2.304"
    keywords: ["gost", "${date}"]
  }

  text {
    "  ПЕРВАЯ СТРОКА  "
    ""
    "Студент ${user}\nвторая"
  }
  "хвост"
}
`

func parse(t *testing.T, src string, data any) (*Sheet, error) {
	t.Helper()
	doc, err := dsl.ParseString(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return FromDocument(doc, data)
}

func TestFromDocument(t *testing.T) {
	data := map[string]any{"user": "ivanov", "date": "2024-03-05"}
	s, err := parse(t, sample, data)
	if err != nil {
		t.Fatalf("FromDocument error: %v", err)
	}

	want := layout.DefaultOptions()
	want.CapHeight = 10
	want.Spacing = 3
	want.StrokeWidth = 0.5
	want.Padding = 1.5
	want.DPI = 150
	want.ShowGrid = true
	want.ClassicGrid = true
	want.StepH, want.StepV = 2, 3
	want.Angle = -20
	want.Mode = layout.ModeDots
	want.FrameColor = "#B3E5FC"
	want.GridColor = "0.4"
	want.GlyphColor = "black"
	want.Meta = layout.DocumentMeta{
		Title:    "Лист ivanov",
		Author:   "ivanov",
		Subject:  "ГОСТ 2.304",
		Keywords: []string{"gost", "2024-03-05"},
	}
	if diff := cmp.Diff(want, s.Options, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	if s.Title != "Лист ivanov" || s.Font != "builtin:gomono" || s.Engine != typeface.EngineSFNT {
		t.Fatalf("unexpected sheet header: %+v", s)
	}
	wantLines := []string{"ПЕРВАЯ СТРОКА", "Студент ivanov", "вторая", "хвост"}
	if diff := cmp.Diff(wantLines, s.Lines); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestFromDocumentDefaults(t *testing.T) {
	s, err := parse(t, `sheet { "A" }`, nil)
	if err != nil {
		t.Fatalf("FromDocument error: %v", err)
	}
	if s.Font != DefaultFont || s.Engine != typeface.EngineCanvas {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if diff := cmp.Diff(layout.DefaultOptions(), s.Options); diff != "" {
		t.Fatalf("options should stay default (-want +got):\n%s", diff)
	}
}

func TestSettingsApplyInOrder(t *testing.T) {
	s, err := parse(t, `sheet {
  palette: gray
  colors { glyph: "#000" }
  steps: 1.2
  grid: off
  stroke: auto
  showFont: false
}`, nil)
	if err != nil {
		t.Fatalf("FromDocument error: %v", err)
	}
	o := s.Options
	if o.FrameColor != layout.GrayFrameColor || o.GridColor != layout.GrayGridColor || o.GlyphColor != "#000" {
		t.Fatalf("palette then colours should combine, got %q %q %q", o.FrameColor, o.GridColor, o.GlyphColor)
	}
	if o.StepH != 1.2 || o.StepV != 1.2 {
		t.Fatalf("scalar steps should set both, got %v %v", o.StepH, o.StepV)
	}
	if o.ShowGrid || o.StrokeWidth != 0 {
		t.Fatalf("grid off / stroke auto not applied: %+v", o)
	}
	if got := o.ResolveMode(); got != layout.ModeDots {
		t.Fatalf("showFont=false should resolve to dots, got %v", got)
	}
}

func TestFromDocumentErrorsCarryPosition(t *testing.T) {
	cases := map[string]string{
		"sheet {\n  colour: red\n}":             "2:3",
		"sheet {\n\n  capHeight: -1\n}":         "3:3",
		"sheet {\n  grid: dotted\n}":            "2:3",
		"sheet {\n  steps: [1, 2, 3]\n}":        "2:3",
		"sheet {\n  dpi: 300mm\n}":              "2:3",
		"sheet {\n  mode: sketch\n}":            "2:3",
		"sheet {\n  engine: freetype\n}":        "2:3",
		"sheet {\n  colors { paper: white }\n}": "2:12",
		"sheet {\n  meta { date: \"x\" }\n}":    "2:10",
		"sheet {\n  layers { }\n}":              "2:3",
		"sheet {\n  text { title: \"x\" }\n}":   "2:3",
		"sheet {\n  spacing: [1, 2]\n}":         "2:3",
	}
	for src, pos := range cases {
		_, err := parse(t, src, nil)
		if err == nil {
			t.Fatalf("expected error for %q", src)
		}
		if !strings.Contains(err.Error(), pos) {
			t.Fatalf("error for %q should mention %s: %v", src, pos, err)
		}
	}
}

func TestLoadResolvesFontRelativeToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.sheet")
	if err := os.WriteFile(path, []byte("sheet {\n  font: \"fonts/missing.ttf\"\n  \"x\"\n}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if s.BaseDir != dir {
		t.Fatalf("BaseDir = %q, want %q", s.BaseDir, dir)
	}
	if _, err := s.Typeface(); err == nil {
		t.Fatalf("expected missing font error")
	}

	s.Font = DefaultFont
	tf, err := s.Typeface()
	if err != nil || tf == nil {
		t.Fatalf("builtin font should load: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.sheet"), nil); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestCapHeightDrivesDefaultSteps(t *testing.T) {
	s, err := parse(t, "sheet { capHeight: 14mm }", nil)
	if err != nil {
		t.Fatalf("FromDocument error: %v", err)
	}
	o := s.Options.Normalize()
	if o.StepH != 1.0 || o.StepV != 1.0 {
		t.Fatalf("steps not derived from cap height: got %g/%g want 1", o.StepH, o.StepV)
	}

	// 显式步长优先；steps: auto 恢复按字高推导
	s, err = parse(t, "sheet {\n  capHeight: 14mm\n  steps: 2\n}", nil)
	if err != nil {
		t.Fatalf("FromDocument error: %v", err)
	}
	if o := s.Options.Normalize(); o.StepH != 2 || o.StepV != 2 {
		t.Fatalf("explicit steps overridden: %g/%g", o.StepH, o.StepV)
	}
	s, err = parse(t, "sheet {\n  steps: 2\n  capHeight: 7mm\n  steps: auto\n}", nil)
	if err != nil {
		t.Fatalf("FromDocument error: %v", err)
	}
	if o := s.Options.Normalize(); o.StepH != 0.5 || o.StepV != 0.5 {
		t.Fatalf("steps: auto should derive from cap height: %g/%g", o.StepH, o.StepV)
	}
}
