// Package sheet 把 .sheet 描述文件转换为排版配置与文本行。
package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ByLCY/gostsheet/binding"
	"github.com/ByLCY/gostsheet/dsl"
	"github.com/ByLCY/gostsheet/fonts"
	"github.com/ByLCY/gostsheet/layout"
	"github.com/ByLCY/gostsheet/typeface"
)

// DefaultFont 是未指定字体时使用的内置字体。
const DefaultFont = fonts.Prefix + fonts.Default

// Sheet 是一份解析完成的练习页描述。
type Sheet struct {
	Title   string
	Font    string
	Engine  typeface.Engine
	BaseDir string // 相对字体路径的基准目录
	Options layout.Options
	Lines   []string
}

// New 返回带默认配置的空白描述。
func New() *Sheet {
	return &Sheet{
		Font:    DefaultFont,
		Engine:  typeface.EngineCanvas,
		Options: layout.DefaultOptions(),
	}
}

// Typeface 按描述中的字体与引擎加载字形来源。
func (s *Sheet) Typeface() (layout.Typeface, error) {
	return typeface.Load(s.Font, s.BaseDir, s.Engine)
}

// Load 读取并解析 .sheet 文件，字体路径相对该文件所在目录。
func Load(path string, data any) (*Sheet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开描述文件 %s: %w", path, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(path, file)
	if err != nil {
		return nil, fmt.Errorf("解析描述文件失败: %w", err)
	}
	s, err := FromDocument(doc, data)
	if err != nil {
		return nil, err
	}
	s.BaseDir = filepath.Dir(path)
	return s, nil
}

// FromDocument 将语法树转换为 Sheet；文本与元信息中的占位符用 data 替换。
// 设置按出现顺序生效，后出现的覆盖先出现的。
func FromDocument(doc *dsl.Document, data any) (*Sheet, error) {
	if doc == nil || doc.Block == nil {
		return nil, fmt.Errorf("描述文件为空")
	}
	s := New()
	if doc.Title != nil {
		s.Title = binding.Interpolate(string(*doc.Title), data)
	}

	for _, stmt := range doc.Block.Statements {
		switch {
		case stmt.Assignment != nil:
			if err := s.apply(stmt.Assignment, data); err != nil {
				return nil, err
			}
		case stmt.Section != nil:
			if err := s.section(stmt.Section, data); err != nil {
				return nil, err
			}
		case stmt.Text != nil:
			s.addText(string(stmt.Text.Value), data)
		}
	}

	if s.Options.Meta.Title == "" {
		s.Options.Meta.Title = s.Title
	}
	return s, nil
}

func (s *Sheet) addText(text string, data any) {
	s.Lines = append(s.Lines, SplitLines(binding.Interpolate(text, data))...)
}

func (s *Sheet) apply(a *dsl.Assignment, data any) error {
	opts := &s.Options
	v := a.Value
	var err error
	switch a.Key {
	case "font":
		var src string
		if src, err = scalar(v); err == nil {
			s.Font = binding.Interpolate(src, data)
		}
	case "engine":
		var name string
		if name, err = scalar(v); err == nil {
			s.Engine, err = typeface.ParseEngine(name)
		}
	case "capHeight":
		opts.CapHeight, err = positiveLength(v)
	case "spacing":
		opts.Spacing, err = nonNegativeLength(v)
	case "padding":
		opts.Padding, err = nonNegativeLength(v)
	case "stroke":
		if ident(v) == "auto" {
			opts.StrokeWidth = 0
		} else {
			opts.StrokeWidth, err = positiveLength(v)
		}
	case "dpi":
		var dpi float64
		if dpi, err = number(v); err == nil && dpi <= 0 {
			err = fmt.Errorf("dpi 必须大于 0")
		}
		opts.DPI = dpi
	case "grid":
		switch ident(v) {
		case "slanted", "on":
			opts.ShowGrid, opts.ClassicGrid = true, false
		case "classic":
			opts.ShowGrid, opts.ClassicGrid = true, true
		case "off", "none":
			opts.ShowGrid = false
		default:
			err = fmt.Errorf("grid 只能是 slanted、classic 或 off")
		}
	case "steps":
		err = s.steps(v)
	case "stepH":
		opts.StepH, err = positiveLength(v)
	case "stepV":
		opts.StepV, err = positiveLength(v)
	case "angle":
		opts.Angle, err = number(v)
	case "mode":
		opts.Mode, err = parseMode(ident(v))
	case "showFont":
		opts.ShowFont, err = boolean(v)
	case "dotsOnly":
		opts.DotsOnly, err = boolean(v)
	case "showGrid":
		opts.ShowGrid, err = boolean(v)
	case "palette":
		switch ident(v) {
		case "gray", "grey":
			*opts = opts.GrayPalette()
		case "default":
			opts.FrameColor = layout.DefaultFrameColor
			opts.GridColor = layout.DefaultGridColor
			opts.GlyphColor = layout.DefaultGlyphColor
		default:
			err = fmt.Errorf("palette 只能是 gray 或 default")
		}
	default:
		return fmt.Errorf("%s: 未知的设置 %q", a.Pos, a.Key)
	}
	if err != nil {
		return fmt.Errorf("%s: 设置 %s 无效: %w", a.Pos, a.Key, err)
	}
	return nil
}

func (s *Sheet) steps(v *dsl.Value) error {
	if ident(v) == "auto" {
		s.Options.StepH, s.Options.StepV = 0, 0
		return nil
	}
	if v.Array == nil {
		step, err := positiveLength(v)
		if err != nil {
			return err
		}
		s.Options.StepH, s.Options.StepV = step, step
		return nil
	}
	vals := v.Array.Values
	if len(vals) < 1 || len(vals) > 2 {
		return fmt.Errorf("steps 需要 1 到 2 个长度，得到 %d 个", len(vals))
	}
	h, err := positiveLength(vals[0])
	if err != nil {
		return err
	}
	vStep := h
	if len(vals) == 2 {
		if vStep, err = positiveLength(vals[1]); err != nil {
			return err
		}
	}
	s.Options.StepH, s.Options.StepV = h, vStep
	return nil
}

func (s *Sheet) section(sec *dsl.Section, data any) error {
	switch sec.Name {
	case "text":
		for _, stmt := range sec.Block.Statements {
			if stmt.Text == nil {
				return fmt.Errorf("%s: text 中只能包含字符串", sec.Pos)
			}
			s.addText(string(stmt.Text.Value), data)
		}
		return nil
	case "colors":
		return eachAssignment(sec, func(a *dsl.Assignment) error {
			col, err := scalar(a.Value)
			if err != nil {
				return err
			}
			switch a.Key {
			case "frame":
				s.Options.FrameColor = col
			case "grid":
				s.Options.GridColor = col
			case "glyph", "text":
				s.Options.GlyphColor = col
			default:
				return fmt.Errorf("未知的颜色 %q", a.Key)
			}
			return nil
		})
	case "meta":
		meta := &s.Options.Meta
		return eachAssignment(sec, func(a *dsl.Assignment) error {
			if a.Key == "keywords" {
				kw, err := list(a.Value)
				if err != nil {
					return err
				}
				meta.Keywords = meta.Keywords[:0]
				for _, k := range kw {
					meta.Keywords = append(meta.Keywords, binding.Interpolate(k, data))
				}
				return nil
			}
			val, err := scalar(a.Value)
			if err != nil {
				return err
			}
			val = binding.Interpolate(val, data)
			switch a.Key {
			case "title":
				meta.Title = val
			case "author":
				meta.Author = val
			case "subject":
				meta.Subject = val
			case "creator":
				meta.Creator = val
			default:
				return fmt.Errorf("未知的元信息 %q", a.Key)
			}
			return nil
		})
	default:
		return fmt.Errorf("%s: 未知的段落 %q", sec.Pos, sec.Name)
	}
}

func eachAssignment(sec *dsl.Section, fn func(*dsl.Assignment) error) error {
	for _, stmt := range sec.Block.Statements {
		a := stmt.Assignment
		if a == nil {
			return fmt.Errorf("%s: %s 中只能包含 key: value", sec.Pos, sec.Name)
		}
		if err := fn(a); err != nil {
			return fmt.Errorf("%s: %s.%s: %w", a.Pos, sec.Name, a.Key, err)
		}
	}
	return nil
}

func parseMode(s string) (layout.LineMode, error) {
	switch s {
	case "auto":
		return layout.ModeAuto, nil
	case "outline", "font":
		return layout.ModeOutline, nil
	case "dots":
		return layout.ModeDots, nil
	case "none":
		return layout.ModeNone, nil
	default:
		return layout.ModeAuto, fmt.Errorf("mode 只能是 outline、dots、none 或 auto")
	}
}

func scalar(v *dsl.Value) (string, error) {
	if v == nil || v.Array != nil {
		return "", fmt.Errorf("需要单个值")
	}
	return v.Raw(), nil
}

func ident(v *dsl.Value) string {
	if v == nil || v.Ident == nil {
		return ""
	}
	return strings.ToLower(*v.Ident)
}

func list(v *dsl.Value) ([]string, error) {
	if v == nil {
		return nil, fmt.Errorf("需要值")
	}
	if v.Array == nil {
		return []string{v.Raw()}, nil
	}
	out := make([]string, 0, len(v.Array.Values))
	for _, item := range v.Array.Values {
		s, err := scalar(item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func number(v *dsl.Value) (float64, error) {
	if v == nil || v.Number == nil {
		return 0, fmt.Errorf("需要数字")
	}
	f, err := strconv.ParseFloat(*v.Number, 64)
	if err != nil {
		return 0, fmt.Errorf("无法解析数字 %q", *v.Number)
	}
	return f, nil
}

func length(v *dsl.Value) (float64, error) {
	if v == nil || (v.Number == nil && v.String == nil) {
		return 0, fmt.Errorf("需要长度")
	}
	l, err := layout.ParseLength(v.Raw())
	if err != nil {
		return 0, err
	}
	return l.ToMM(), nil
}

func positiveLength(v *dsl.Value) (float64, error) {
	mm, err := length(v)
	if err == nil && mm <= 0 {
		err = fmt.Errorf("长度必须大于 0")
	}
	return mm, err
}

func nonNegativeLength(v *dsl.Value) (float64, error) {
	mm, err := length(v)
	if err == nil && mm < 0 {
		err = fmt.Errorf("长度不能为负")
	}
	return mm, err
}

func boolean(v *dsl.Value) (bool, error) {
	switch ident(v) {
	case "true", "yes", "on":
		return true, nil
	case "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("需要 true 或 false")
	}
}
