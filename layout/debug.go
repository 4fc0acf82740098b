package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DebugCounts 汇总页面上各类元素的数量。
type DebugCounts struct {
	Lines    int `json:"lines"`
	Boxes    int `json:"boxes"`
	Grid     int `json:"grid"`
	Segments int `json:"segments"` // 裁剪后实际可见的格线段
	Glyphs   int `json:"glyphs"`
	Dots     int `json:"dots"`
}

type debugDump struct {
	*Page
	Counts DebugCounts `json:"counts"`
}

// Counts 统计页面元素数量。
func (p *Page) Counts() DebugCounts {
	c := DebugCounts{
		Lines:  len(p.Lines),
		Boxes:  len(p.Boxes),
		Grid:   len(p.Grid),
		Glyphs: len(p.Glyphs),
		Dots:   len(p.Dots),
	}
	for _, ln := range p.Grid {
		c.Segments += len(ln.Segments)
	}
	return c
}

// WriteDebugJSON 将合成结果连同元素计数输出为 JSON，便于核对文本框与格线坐标。
// 轮廓路径不参与输出。
func WriteDebugJSON(page *Page, path string) error {
	if page == nil {
		return nil
	}
	data, err := json.MarshalIndent(debugDump{Page: page, Counts: page.Counts()}, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化调试数据失败: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
