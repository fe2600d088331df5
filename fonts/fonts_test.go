package fonts

import "testing"

func TestLoadVariants(t *testing.T) {
	for _, name := range []string{"", "regular", "fallback:regular", "bold", "italic", "bold-italic", "Fallback:Bold"} {
		data, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q) 失败: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("Load(%q) 返回空数据", name)
		}
	}
}

func TestLoadUnknown(t *testing.T) {
	if _, err := Load("comic-sans"); err == nil {
		t.Fatalf("未知字体名应报错")
	}
}
