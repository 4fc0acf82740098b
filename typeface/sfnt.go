package typeface

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/gostsheet/layout"
)

// SFNT reads glyph contours directly with golang.org/x/image/font/sfnt.
// Outlines are in reference units where one em equals size.
type SFNT struct {
	font *sfnt.Font

	// sfnt.Buffer is not safe for concurrent use.
	mu  sync.Mutex
	buf sfnt.Buffer
}

var _ layout.Typeface = (*SFNT)(nil)

// NewSFNT 解析 TrueType/OpenType 字体数据。
func NewSFNT(data []byte) (*SFNT, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("解析字体失败: %w", err)
	}
	return &SFNT{font: f}, nil
}

// Outline implements layout.Typeface.
func (s *SFNT) Outline(text string, size float64) (*canvas.Path, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ppem := fixed.Int26_6(math.Round(size * 64))
	p := &canvas.Path{}
	x := 0.0
	var prev sfnt.GlyphIndex
	for i, r := range []rune(text) {
		gi, err := s.font.GlyphIndex(&s.buf, r)
		if err != nil {
			return nil, fmt.Errorf("查找字符 %q 失败: %w", r, err)
		}
		if i > 0 {
			kern, err := s.font.Kern(&s.buf, prev, gi, ppem, font.HintingNone)
			switch {
			case err == nil:
				x += fromFixed(kern)
			case !errors.Is(err, sfnt.ErrNotFound):
				return nil, fmt.Errorf("读取字距失败: %w", err)
			}
		}
		segs, err := s.font.LoadGlyph(&s.buf, gi, ppem, nil)
		if err != nil {
			return nil, fmt.Errorf("读取字符 %q 的轮廓失败: %w", r, err)
		}
		appendSegments(p, segs, x)

		adv, err := s.font.GlyphAdvance(&s.buf, gi, ppem, font.HintingNone)
		if err != nil {
			return nil, fmt.Errorf("读取字符 %q 的步进失败: %w", r, err)
		}
		x += fromFixed(adv)
		prev = gi
	}
	return p, nil
}

// appendSegments converts y-down sfnt segments to a y-up canvas path shifted by dx.
func appendSegments(p *canvas.Path, segs sfnt.Segments, dx float64) {
	pt := func(a fixed.Point26_6) (float64, float64) {
		return dx + fromFixed(a.X), -fromFixed(a.Y)
	}
	open := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.Close()
			}
			x, y := pt(seg.Args[0])
			p.MoveTo(x, y)
			open = true
		case sfnt.SegmentOpLineTo:
			x, y := pt(seg.Args[0])
			p.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(seg.Args[0])
			x, y := pt(seg.Args[1])
			p.QuadTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(seg.Args[0])
			c2x, c2y := pt(seg.Args[1])
			x, y := pt(seg.Args[2])
			p.CubeTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	if open {
		p.Close()
	}
}

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }
