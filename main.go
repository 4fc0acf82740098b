package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ByLCY/gostsheet/binding"
	"github.com/ByLCY/gostsheet/layout"
	"github.com/ByLCY/gostsheet/renderer"
	canvasrenderer "github.com/ByLCY/gostsheet/renderer/canvas"
	"github.com/ByLCY/gostsheet/sheet"
	"github.com/ByLCY/gostsheet/typeface"
)

// config 汇总命令行参数；overrides 只包含用户显式给出的开关。
type config struct {
	input     string
	textPath  string
	output    string
	formats   []renderer.Format
	debugPath string
	data      any
	font      string
	engine    string
	overrides func(*layout.Options)
}

func main() {
	input := flag.String("in", "", "sheet 描述文件路径")
	textPath := flag.String("text", "", "纯文本文件路径（每行一行文字，UTF-8 或 Windows-1251）")
	output := flag.String("out", "output/sheet", "输出文件路径（不含扩展名）")
	formats := flag.String("formats", "pdf", "导出格式，逗号分隔：pdf,svg,png")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到文本占位符的 JSON 数据")
	font := flag.String("font", "", "字体：builtin:<name> 或字体文件路径")
	engine := flag.String("engine", "", "字形引擎：canvas 或 sfnt")

	grid := flag.Bool("grid", true, "绘制格线")
	showFont := flag.Bool("show-font", true, "绘制文字轮廓")
	dots := flag.Bool("dots", false, "只绘制起笔圆点")
	classic := flag.Bool("classic", false, "使用竖直格线代替斜线")
	gray := flag.Bool("gray", false, "使用灰度配色")
	capHeight := flag.Float64("cap", layout.DefaultCapHeight, "大写字母高度（mm）")
	spacing := flag.Float64("spacing", layout.DefaultSpacing, "词距（mm）")
	steps := flag.Float64("steps", 0, "细格线步长（mm），0 表示按字高推导")
	stroke := flag.Float64("stroke", 0, "笔画宽度（mm），0 表示按字高推导")
	dpi := flag.Float64("dpi", layout.DefaultDPI, "PNG 分辨率")
	flag.Parse()

	fs, err := renderer.ParseFormats(*formats)
	if err != nil {
		log.Fatalf("解析导出格式失败: %v", err)
	}

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	// 只覆盖命令行上出现过的开关，其余保持描述文件中的设置
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	overrides := func(o *layout.Options) {
		if set["grid"] {
			o.ShowGrid = *grid
		}
		if set["show-font"] {
			o.ShowFont = *showFont
		}
		if set["dots"] {
			o.DotsOnly = *dots
		}
		if set["classic"] {
			o.ClassicGrid = *classic
		}
		if set["gray"] && *gray {
			*o = o.GrayPalette()
		}
		if set["cap"] {
			o.CapHeight = *capHeight
		}
		if set["spacing"] {
			o.Spacing = *spacing
		}
		if set["steps"] {
			o.StepH, o.StepV = *steps, *steps
		}
		if set["stroke"] {
			o.StrokeWidth = *stroke
		}
		if set["dpi"] {
			o.DPI = *dpi
		}
	}

	cfg := config{
		input:     *input,
		textPath:  *textPath,
		output:    *output,
		formats:   fs,
		debugPath: *debug,
		data:      binding.Merge(binding.Defaults(time.Now()), inputData),
		font:      *font,
		engine:    *engine,
		overrides: overrides,
	}
	written, err := run(cfg, canvasrenderer.NewRenderer())
	if err != nil {
		log.Fatalf("生成练习页失败: %v", err)
	}
	for _, path := range written {
		fmt.Printf("已生成：%s\n", path)
	}
}

// run 串联读取、排版与导出，返回写出的文件路径。
func run(cfg config, r renderer.Renderer) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("renderer 不能为空")
	}
	s, err := loadSheet(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.font != "" {
		s.Font, s.BaseDir = cfg.font, ""
	}
	if cfg.engine != "" {
		if s.Engine, err = typeface.ParseEngine(cfg.engine); err != nil {
			return nil, err
		}
	}
	if cfg.overrides != nil {
		cfg.overrides(&s.Options)
	}

	tf, err := s.Typeface()
	if err != nil {
		return nil, fmt.Errorf("加载字体失败: %w", err)
	}
	page, err := layout.Compose(s.Lines, tf, s.Options)
	if err != nil {
		return nil, fmt.Errorf("排版失败: %w", err)
	}

	if cfg.debugPath != "" {
		if err := writeDebug(page, cfg.debugPath); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.output), 0o755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}
	var written []string
	for _, f := range cfg.formats {
		data, err := r.Render(page, f)
		if err != nil {
			return written, fmt.Errorf("导出 %s 失败: %w", f, err)
		}
		path := cfg.output + f.Ext()
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("写入 %s 失败: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func loadSheet(cfg config) (*sheet.Sheet, error) {
	switch {
	case cfg.input != "" && cfg.textPath != "":
		return nil, fmt.Errorf("-in 与 -text 只能二选一")
	case cfg.input != "":
		return sheet.Load(cfg.input, cfg.data)
	case cfg.textPath != "":
		raw, err := os.ReadFile(cfg.textPath)
		if err != nil {
			return nil, fmt.Errorf("无法读取文本文件 %s: %w", cfg.textPath, err)
		}
		s := sheet.FromText(raw)
		for i, line := range s.Lines {
			s.Lines[i] = binding.Interpolate(line, cfg.data)
		}
		return s, nil
	default:
		// 没有输入时没有文本框，格线全部被裁掉，只剩页框
		return sheet.New(), nil
	}
}

func writeDebug(page *layout.Page, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(page, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
