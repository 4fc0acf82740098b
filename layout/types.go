package layout

import "github.com/tdewolff/canvas"

// 该文件定义排版结果（显示列表），供排版计算、渲染与调试 JSON 共用。
// 坐标系：原点位于页面左下角，y 轴向上，单位均为毫米（mm）。

// Typeface 是排版引擎所需的字形轮廓能力。
// Outline 返回 text 在参考字号 size 下的轮廓，基线位于 y=0，y 轴向上。
// 实现必须在构造后只读，以便同一进程内的多次渲染复用。
type Typeface interface {
	Outline(text string, size float64) (*canvas.Path, error)
}

// WordShape 是单个单词缩放并左对齐到 x=0 之后的轮廓。
type WordShape struct {
	Word   string       `json:"word"`
	Path   *canvas.Path `json:"-"`
	Width  float64      `json:"width"`
	Offset float64      `json:"offset"` // 对齐前最左端的位置（min_x*scale），用于定位落笔点
}

// LineLayout 记录一行文本的单词形状与总宽度（含修正后的词距）。
type LineLayout struct {
	Text  string      `json:"text"`
	Words []WordShape `json:"words"`
	Width float64     `json:"width"`
}

// TextBox 是覆盖一行文本、带内边距的轴对齐矩形，(X, Y) 为左下角。
type TextBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PageFrame 是从页面边缘按页边距内缩得到的可绘制区域。
type PageFrame struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

func (f PageFrame) Width() float64  { return f.X1 - f.X0 }
func (f PageFrame) Height() float64 { return f.Y1 - f.Y0 }

// Margin 以毫米为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// GridKind 区分横线、竖线与斜线。
type GridKind int

const (
	GridHorizontal GridKind = iota
	GridVertical
	GridSlanted
)

func (k GridKind) String() string {
	switch k {
	case GridHorizontal:
		return "horizontal"
	case GridVertical:
		return "vertical"
	case GridSlanted:
		return "slanted"
	default:
		return "unknown"
	}
}

// MarshalText 让调试 JSON 输出可读的名称。
func (k GridKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Segment 是一条线段。
type Segment struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// GridLine 是一条未裁剪的格线，Segments 为其落在文本框内的可见部分。
type GridLine struct {
	Kind     GridKind  `json:"kind"`
	X1       float64   `json:"x1"`
	Y1       float64   `json:"y1"`
	X2       float64   `json:"x2"`
	Y2       float64   `json:"y2"`
	Segments []Segment `json:"segments"`
	Color    string    `json:"color"`
	Width    float64   `json:"width"`
}

// GlyphOutline 是一个已定位的单词轮廓，只描边不填充。
type GlyphOutline struct {
	Line        int          `json:"line"`
	Word        string       `json:"word"`
	Path        *canvas.Path `json:"-"`
	X           float64      `json:"x"`
	Y           float64      `json:"y"`
	Width       float64      `json:"width"`
	StrokeWidth float64      `json:"strokeWidth"`
	Color       string       `json:"color"`
}

// Dot 标记单词的落笔点，实心圆。
type Dot struct {
	Line  int     `json:"line"`
	CX    float64 `json:"cx"`
	CY    float64 `json:"cy"`
	R     float64 `json:"r"`
	Color string  `json:"color"`
}

// Stage 记录页面合成进行到的阶段。
type Stage int

const (
	StageEmpty Stage = iota
	StageFrame
	StageGrid
	StageLines
	StageFinal
)

func (s Stage) String() string {
	switch s {
	case StageEmpty:
		return "empty"
	case StageFrame:
		return "frame"
	case StageGrid:
		return "grid"
	case StageLines:
		return "lines"
	case StageFinal:
		return "final"
	default:
		return "unknown"
	}
}

func (s Stage) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Page 是一次合成的完整结果，渲染器只读取它，不再做排版计算。
type Page struct {
	Width      float64        `json:"width"`
	Height     float64        `json:"height"`
	Margin     Margin         `json:"margin"`
	Frame      PageFrame      `json:"frame"`
	FrameColor string         `json:"frameColor"`
	FrameWidth float64        `json:"frameWidth"`
	Lines      []LineLayout   `json:"lines"`
	Boxes      []TextBox      `json:"boxes"`
	Grid       []GridLine     `json:"grid,omitempty"`
	Glyphs     []GlyphOutline `json:"glyphs,omitempty"`
	Dots       []Dot          `json:"dots,omitempty"`
	Mode       LineMode       `json:"mode"`
	Stage      Stage          `json:"stage"`
	DPI        float64        `json:"dpi"`
	Meta       DocumentMeta   `json:"meta"`
}

// DocumentMeta 保存导出文件的元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
