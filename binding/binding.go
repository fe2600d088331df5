// Package binding 提供 run 文本中 ${path.to.value} 占位符的数据插值。
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var placeholder = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path} 替换为 data 中对应的值。
// 路径支持 . 分段与 [n] 下标，例如 ${items[0].name}。
// data 为 nil 或路径无法解析时保留原占位符。
func Interpolate(text string, data any) string {
	if data == nil {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if path == "" {
			return match
		}
		if val, ok := lookup(data, path); ok {
			return fmt.Sprint(val)
		}
		return match
	})
}

// lookup 沿路径在 map[string]any / []any 嵌套结构中逐段下降。
func lookup(data any, path string) (any, bool) {
	current := data
	for _, step := range splitPath(path) {
		var ok bool
		if step.index >= 0 {
			current, ok = atIndex(current, step.index)
		} else {
			current, ok = atKey(current, step.key)
		}
		if !ok {
			return nil, false
		}
	}
	return current, true
}

type pathStep struct {
	key   string
	index int // -1 表示按键名访问
}

// splitPath 把 "a.b[2].c" 拆成键与下标的访问序列。
func splitPath(path string) []pathStep {
	var steps []pathStep
	for _, segment := range strings.Split(path, ".") {
		rest := segment
		if i := strings.IndexByte(rest, '['); i >= 0 {
			if name := rest[:i]; name != "" {
				steps = append(steps, pathStep{key: name, index: -1})
			}
			rest = rest[i:]
			for strings.HasPrefix(rest, "[") {
				end := strings.IndexByte(rest, ']')
				if end < 0 {
					break
				}
				idx, err := strconv.Atoi(rest[1:end])
				if err != nil {
					idx = -1
				}
				steps = append(steps, pathStep{index: idx})
				rest = rest[end+1:]
			}
			continue
		}
		if rest != "" {
			steps = append(steps, pathStep{key: rest, index: -1})
		}
	}
	return steps
}

func atKey(data any, key string) (any, bool) {
	m, ok := data.(map[string]any)
	if !ok {
		return nil, false
	}
	val, ok := m[key]
	return val, ok
}

func atIndex(data any, idx int) (any, bool) {
	s, ok := data.([]any)
	if !ok || idx < 0 || idx >= len(s) {
		return nil, false
	}
	return s[idx], true
}
