// Package typeface 提供 layout.Typeface 的实现：基于 tdewolff/canvas 字体族，
// 或直接用 golang.org/x/image/font/sfnt 读取字形轮廓。
package typeface

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/gostsheet/fonts"
	"github.com/ByLCY/gostsheet/layout"
)

// Engine 选择轮廓来源。
type Engine string

const (
	EngineCanvas Engine = "canvas"
	EngineSFNT   Engine = "sfnt"
)

// ParseEngine 解析引擎名称，空字符串取 canvas。
func ParseEngine(s string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(EngineCanvas):
		return EngineCanvas, nil
	case string(EngineSFNT):
		return EngineSFNT, nil
	default:
		return "", fmt.Errorf("未知的字体引擎 %q（可选 canvas/sfnt）", s)
	}
}

// Load 按 src 读取字体并构造 Typeface。src 可以是 "builtin:<name>"、绝对路径，
// 或相对 baseDir 的路径。字体缺失或损坏时返回错误。
func Load(src, baseDir string, engine Engine) (layout.Typeface, error) {
	data, err := loadBytes(src, baseDir)
	if err != nil {
		return nil, err
	}
	return FromBytes(displayName(src), data, engine)
}

// FromBytes 用已读入的字体数据构造 Typeface。
func FromBytes(name string, data []byte, engine Engine) (layout.Typeface, error) {
	switch engine {
	case EngineCanvas, "":
		return NewCanvas(name, data)
	case EngineSFNT:
		tf, err := NewSFNT(data)
		if err != nil {
			return nil, fmt.Errorf("加载字体 %s 失败: %w", name, err)
		}
		return tf, nil
	default:
		return nil, fmt.Errorf("未知的字体引擎 %q", engine)
	}
}

func loadBytes(src, baseDir string) ([]byte, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("字体缺少 src")
	}
	if fonts.IsBuiltin(src) {
		return fonts.Load(src)
	}
	path := src
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", src, err)
	}
	return data, nil
}

func displayName(src string) string {
	if fonts.IsBuiltin(src) {
		return strings.TrimPrefix(strings.TrimSpace(src), fonts.Prefix)
	}
	return strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
}
