// Package fonts 暴露内置的回退字体（Latin Modern 系列），
// 避免在仓库中携带二进制字体文件。
package fonts

import (
	"fmt"
	"strings"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10bolditalic"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
)

// Load 返回内置回退字体的字节数据。
// name 可写作 "fallback:bold" 或直接 "bold"；空串等价于 regular。
func Load(name string) ([]byte, error) {
	key := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "fallback:")
	switch key {
	case "", "regular", "roman":
		return lmroman10regular.TTF, nil
	case "bold":
		return lmroman10bold.TTF, nil
	case "italic":
		return lmroman10italic.TTF, nil
	case "bold-italic", "bolditalic":
		return lmroman10bolditalic.TTF, nil
	default:
		return nil, fmt.Errorf("fonts: 未知的内置字体 %q", name)
	}
}
