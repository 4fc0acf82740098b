package typeface

import (
	"fmt"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/gostsheet/layout"
)

// facePath 生成字形轮廓，测试中可替换以模拟损坏的字形。
var facePath = (*canvas.FontFace).ToPath

// Canvas draws outlines through a github.com/tdewolff/canvas font family.
type Canvas struct {
	name   string
	family *canvas.FontFamily

	faceMu sync.Mutex
	faces  map[float64]*canvas.FontFace
}

var _ layout.Typeface = (*Canvas)(nil)

// NewCanvas 解析字体数据；解析失败直接返回错误，不做回退。
func NewCanvas(name string, data []byte) (*Canvas, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("字体 %s 数据为空", name)
	}
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", name, err)
	}
	return &Canvas{
		name:   name,
		family: family,
		faces:  map[float64]*canvas.FontFace{},
	}, nil
}

// Name returns the family name the font was loaded under.
func (c *Canvas) Name() string { return c.name }

// Outline implements layout.Typeface. size is in points; the path is in mm.
func (c *Canvas) Outline(text string, size float64) (*canvas.Path, error) {
	face := c.face(size)
	p, _, err := facePath(face, text)
	if err != nil {
		return nil, fmt.Errorf("字体 %s 生成轮廓失败: %w", c.name, err)
	}
	if p == nil {
		p = &canvas.Path{}
	}
	return p, nil
}

// face caches one face per size; the layout engine only ever asks for the reference size.
func (c *Canvas) face(size float64) *canvas.FontFace {
	c.faceMu.Lock()
	defer c.faceMu.Unlock()
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := c.family.Face(size, canvas.Black, canvas.FontRegular, canvas.FontNormal)
	c.faces[size] = f
	return f
}
