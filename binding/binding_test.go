package binding

import "testing"

func TestInterpolateNestedPaths(t *testing.T) {
	data := map[string]any{
		"user": map[string]any{"name": "Ada"},
		"items": []any{
			map[string]any{"title": "first"},
			map[string]any{"title": "second"},
		},
		"total": 42,
	}

	cases := []struct {
		in, want string
	}{
		{"Hello ${user.name}", "Hello Ada"},
		{"${items[1].title} of two", "second of two"},
		{"sum=${total}", "sum=42"},
		{"${user.name}/${total}", "Ada/42"},
	}
	for _, tc := range cases {
		if got := Interpolate(tc.in, data); got != tc.want {
			t.Fatalf("Interpolate(%q) = %q，期望 %q", tc.in, got, tc.want)
		}
	}
}

// 无法解析的路径保留原占位符，避免吞掉用户内容。
func TestInterpolateKeepsUnresolved(t *testing.T) {
	data := map[string]any{"known": "v", "list": []any{"a"}}
	cases := []string{
		"${missing}",
		"${known.deeper}",
		"${list[5]}",
		"${list[x]}",
		"${}",
	}
	for _, in := range cases {
		if got := Interpolate(in, data); got != in {
			t.Fatalf("未解析占位符被改写: %q -> %q", in, got)
		}
	}
}

func TestInterpolateNilData(t *testing.T) {
	if got := Interpolate("${anything}", nil); got != "${anything}" {
		t.Fatalf("nil 数据不应插值: %q", got)
	}
}
