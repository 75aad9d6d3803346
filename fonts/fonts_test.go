package fonts

import "testing"

func TestLoadKnownFaces(t *testing.T) {
	for _, name := range []string{"regular", "bold", "italic", "mono"} {
		data, err := Load(name)
		if err != nil {
			t.Fatalf("字体面 %s 应可加载: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("字体面 %s 数据为空", name)
		}
	}
}

func TestLoadUnknownFace(t *testing.T) {
	if _, err := Load("wingdings"); err == nil {
		t.Fatalf("未知字体面应报错")
	}
}
