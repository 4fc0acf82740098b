package fonts

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-fonts/latin-modern/lmroman10regular"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Prefix 标记内置字体资源，例如 "builtin:goregular"。
const Prefix = "builtin:"

// Default 是未指定字体时使用的内置字体。
const Default = "goregular"

// ErrUnknown 表示引用了不存在的内置字体。
var ErrUnknown = errors.New("未知的内置字体")

var builtin = map[string][]byte{
	"goregular": goregular.TTF,
	"gomono":    gomono.TTF,
	"lmroman":   lmroman10regular.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "builtin:goregular" 或直接 "goregular"。
func Load(name string) ([]byte, error) {
	key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), Prefix))
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("%w %s（可用：%s）", ErrUnknown, name, strings.Join(Names(), ", "))
	}
	return data, nil
}

// IsBuiltin 判断 src 是否引用内置字体。
func IsBuiltin(src string) bool {
	return strings.HasPrefix(strings.TrimSpace(src), Prefix)
}

// Names 返回排序后的内置字体名称。
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
