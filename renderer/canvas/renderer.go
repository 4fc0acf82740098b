package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/gostsheet/layout"
	"github.com/ByLCY/gostsheet/renderer"
)

var transparent = color.RGBA{0, 0, 0, 0}

// Renderer draws composed pages via github.com/tdewolff/canvas.
// It holds no per-request state, so one value may serve concurrent requests.
type Renderer struct {
	// Background fills the page before anything else; empty leaves it transparent.
	Background string
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer with a white page background.
func NewRenderer() *Renderer { return &Renderer{Background: "white"} }

// Render 将页面导出为 PDF、SVG 或 PNG 字节。
func (r *Renderer) Render(page *layout.Page, format renderer.Format) ([]byte, error) {
	if page == nil {
		return nil, fmt.Errorf("渲染页面为空")
	}
	c, err := r.Draw(page)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch format {
	case renderer.PDF:
		writer := pdf.New(&buf, page.Width, page.Height, nil)
		applyMeta(writer, page.Meta)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	case renderer.SVG:
		writer := svg.New(&buf, page.Width, page.Height, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 SVG 失败: %w", err)
		}
	case renderer.PNG:
		dpi := page.DPI
		if dpi <= 0 {
			dpi = layout.DefaultDPI
		}
		if err := renderers.PNG(canvas.DPI(dpi))(&buf, c); err != nil {
			return nil, fmt.Errorf("写入 PNG 失败: %w", err)
		}
	default:
		return nil, fmt.Errorf("不支持的导出格式 %q", format)
	}
	return buf.Bytes(), nil
}

// Draw 把页面绘制到新的画布上；颜色无法解析时返回错误。
// 绘制顺序：背景、页框、格线、文字轮廓或圆点。
func (r *Renderer) Draw(page *layout.Page) (*canvas.Canvas, error) {
	c := canvas.New(page.Width, page.Height)
	ctx := canvas.NewContext(c) // 默认坐标系：左下角为原点，y 轴向上，与排版一致

	if r.Background != "" {
		bg, err := ParseColor(r.Background)
		if err != nil {
			return nil, fmt.Errorf("背景色: %w", err)
		}
		ctx.SetFillColor(bg)
		ctx.SetStrokeColor(transparent)
		ctx.DrawPath(0, 0, canvas.Rectangle(page.Width, page.Height))
	}
	if err := drawFrame(ctx, page); err != nil {
		return nil, err
	}
	if err := drawGrid(ctx, page.Grid); err != nil {
		return nil, err
	}
	if err := drawGlyphs(ctx, page.Glyphs); err != nil {
		return nil, err
	}
	if err := drawDots(ctx, page.Dots); err != nil {
		return nil, err
	}
	return c, nil
}

func applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

func drawFrame(ctx *canvas.Context, page *layout.Page) error {
	col, err := ParseColor(page.FrameColor)
	if err != nil {
		return fmt.Errorf("页框颜色: %w", err)
	}
	f := page.Frame
	ctx.SetFillColor(transparent)
	ctx.SetStrokeColor(col)
	ctx.SetStrokeWidth(page.FrameWidth)
	ctx.DrawPath(f.X0, f.Y0, canvas.Rectangle(f.Width(), f.Height()))
	return nil
}

// drawGrid 只绘制裁剪后的可见线段；相邻同样式的线合并为一条路径。
func drawGrid(ctx *canvas.Context, lines []layout.GridLine) error {
	var (
		p          *canvas.Path
		curColor   string
		curWidth   float64
		parsedCols = map[string]color.Color{}
	)
	flush := func() error {
		if p == nil || p.Empty() {
			return nil
		}
		col, ok := parsedCols[curColor]
		if !ok {
			var err error
			if col, err = ParseColor(curColor); err != nil {
				return fmt.Errorf("格线颜色: %w", err)
			}
			parsedCols[curColor] = col
		}
		ctx.SetFillColor(transparent)
		ctx.SetStrokeColor(col)
		ctx.SetStrokeWidth(curWidth)
		ctx.DrawPath(0, 0, p)
		return nil
	}

	for _, ln := range lines {
		if len(ln.Segments) == 0 {
			continue
		}
		if p == nil || ln.Color != curColor || ln.Width != curWidth {
			if err := flush(); err != nil {
				return err
			}
			p, curColor, curWidth = &canvas.Path{}, ln.Color, ln.Width
		}
		for _, s := range ln.Segments {
			p.MoveTo(s.X1, s.Y1)
			p.LineTo(s.X2, s.Y2)
		}
	}
	return flush()
}

func drawGlyphs(ctx *canvas.Context, glyphs []layout.GlyphOutline) error {
	for _, g := range glyphs {
		if g.Path == nil || g.Path.Empty() {
			continue
		}
		col, err := ParseColor(g.Color)
		if err != nil {
			return fmt.Errorf("文字颜色: %w", err)
		}
		ctx.SetFillColor(transparent)
		ctx.SetStrokeColor(col)
		ctx.SetStrokeWidth(g.StrokeWidth)
		ctx.DrawPath(g.X, g.Y, g.Path.Copy())
	}
	return nil
}

func drawDots(ctx *canvas.Context, dots []layout.Dot) error {
	for _, d := range dots {
		col, err := ParseColor(d.Color)
		if err != nil {
			return fmt.Errorf("圆点颜色: %w", err)
		}
		circle := canvas.Circle(d.R)
		// 按包围盒求圆心，不依赖 Circle 的原点约定
		b := circle.Bounds()
		ctx.SetFillColor(col)
		ctx.SetStrokeColor(transparent)
		ctx.DrawPath(d.CX-(b.X0+b.X1)/2, d.CY-(b.Y0+b.Y1)/2, circle)
	}
	return nil
}
