package layout

import "math"

// 版面与字体网格的固定常量（单位 mm，另有注明者除外）。
const (
	PageWidth  = 209.9
	PageHeight = 296.7

	MarginLeft   = 20.0
	MarginRight  = 5.0
	MarginTop    = 5.0
	MarginBottom = 5.0

	LineStep      = 15.5  // 行距
	DefaultAngle  = -15.0 // 斜线角度（度）
	CorrectionK   = 0.7   // 词距修正系数
	StrokeRatio   = 14.0  // 字高与笔画宽度之比
	ReferenceSize = 100.0 // 测量轮廓时使用的参考字号

	DefaultSpacing   = 4.2
	DefaultCapHeight = 10.0
	DefaultPadding   = 2.0
	DefaultDPI       = 300.0

	GridStrokeWidth  = 0.1
	FrameStrokeWidth = 1.4 * PtToMm

	// 文本起始位置占可绘制区域高度的比例（自下而上）。
	startFraction = 0.65
	gridTolerance = 1e-6
)

const (
	DefaultFrameColor = "#B3E5FC"
	DefaultGridColor  = "#81D4FA"
	DefaultGlyphColor = "lightgray"

	// 灰度配色（0 为黑，1 为白）
	GrayFrameColor = "0.6"
	GrayGridColor  = "0.4"
	GrayGlyphColor = "0.6"
)

// LineMode 决定一行文本的绘制方式，每次请求只选择一次。
type LineMode int

const (
	ModeAuto    LineMode = iota // 由 ShowFont/DotsOnly 推导
	ModeOutline                 // 描边轮廓
	ModeDots                    // 每个单词起笔处一个圆点
	ModeNone                    // 不绘制文本
)

func (m LineMode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeOutline:
		return "outline"
	case ModeDots:
		return "dots"
	case ModeNone:
		return "none"
	default:
		return "unknown"
	}
}

func (m LineMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// ModeFor 按标志位推导绘制方式：
//
//	showFont dotsOnly  结果
//	true     false     outline
//	true     true      dots
//	false    false     dots
//	false    true      dots
func ModeFor(showFont, dotsOnly bool) LineMode {
	if dotsOnly || !showFont {
		return ModeDots
	}
	return ModeOutline
}

// Options 汇总一次合成所需的样式配置。
type Options struct {
	Spacing     float64 // 词距（mm），实际插入 Spacing*CorrectionK
	CapHeight   float64 // 大写字母高度（mm）
	StrokeWidth float64 // 笔画宽度（mm），<=0 时取 CapHeight/14
	Padding     float64 // 文本框内边距（mm）

	FrameColor string
	GridColor  string
	GlyphColor string
	DPI        float64

	ShowGrid    bool
	ShowFont    bool
	DotsOnly    bool
	ClassicGrid bool
	StepH       float64 // 横向细线步长（mm），<=0 时按字高推导
	StepV       float64 // 竖/斜线步长（mm），<=0 时按字高推导
	Angle       float64 // 斜线角度（度）

	// Mode 非 ModeAuto 时覆盖 ShowFont/DotsOnly 的推导结果。
	Mode LineMode
	Meta DocumentMeta
}

// DefaultOptions 返回与标准模板一致的默认配置。
func DefaultOptions() Options {
	return Options{
		Spacing:    DefaultSpacing,
		CapHeight:  DefaultCapHeight,
		Padding:    DefaultPadding,
		FrameColor: DefaultFrameColor,
		GridColor:  DefaultGridColor,
		GlyphColor: DefaultGlyphColor,
		DPI:        DefaultDPI,
		ShowGrid:   true,
		ShowFont:   true,
		Angle:      DefaultAngle,
	}
}

// Normalize 为零值字段补上默认值。Angle 为 0 是合法值，不做替换。
func (o Options) Normalize() Options {
	if o.CapHeight <= 0 {
		o.CapHeight = DefaultCapHeight
	}
	if o.Spacing < 0 {
		o.Spacing = 0
	}
	if o.Padding < 0 {
		o.Padding = 0
	}
	if o.StepH <= 0 {
		o.StepH = DefaultStep(o.CapHeight)
	}
	if o.StepV <= 0 {
		o.StepV = DefaultStep(o.CapHeight)
	}
	if o.DPI <= 0 {
		o.DPI = DefaultDPI
	}
	if o.FrameColor == "" {
		o.FrameColor = DefaultFrameColor
	}
	if o.GridColor == "" {
		o.GridColor = DefaultGridColor
	}
	if o.GlyphColor == "" {
		o.GlyphColor = DefaultGlyphColor
	}
	return o
}

// GrayPalette 把三种颜色换成灰度配色。
func (o Options) GrayPalette() Options {
	o.FrameColor = GrayFrameColor
	o.GridColor = GrayGridColor
	o.GlyphColor = GrayGlyphColor
	return o
}

// ResolveMode 返回本次请求实际使用的绘制方式。
func (o Options) ResolveMode() LineMode {
	if o.Mode != ModeAuto {
		return o.Mode
	}
	return ModeFor(o.ShowFont, o.DotsOnly)
}

// GridEnabled 报告是否绘制格线：仅点模式下从不绘制。
func (o Options) GridEnabled() bool {
	return o.ShowGrid && !o.DotsOnly
}

// DefaultStep 按字高推导细线步长：round(capHeight/14, 1)。
// 字高过小时不低于 0.1mm。
func DefaultStep(capHeight float64) float64 {
	return math.Max(math.Round(capHeight/StrokeRatio*10)/10, 0.1)
}

// DefaultStrokeWidth 返回字高对应的标准笔画宽度。
func DefaultStrokeWidth(capHeight float64) float64 {
	return capHeight / StrokeRatio
}

// EffectiveStrokeWidth 返回显式指定或按字高推导的笔画宽度。
func EffectiveStrokeWidth(strokeWidth, capHeight float64) float64 {
	if strokeWidth > 0 {
		return strokeWidth
	}
	return DefaultStrokeWidth(capHeight)
}
