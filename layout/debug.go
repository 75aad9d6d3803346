package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将分页结果输出为 JSON，便于调试或可视化。
// 每条命令带 kind 标签以区分变体。
func WriteDebugJSON(pages []Page, path string) error {
	type commandJSON struct {
		Kind    string      `json:"kind"`
		Command DrawCommand `json:"command"`
	}
	type pageJSON struct {
		Index    int           `json:"index"`
		Commands []commandJSON `json:"commands"`
	}

	out := make([]pageJSON, len(pages))
	for i, p := range pages {
		pj := pageJSON{Index: p.Index, Commands: make([]commandJSON, 0, len(p.Commands))}
		for _, cmd := range p.Commands {
			var kind string
			switch cmd.(type) {
			case Text:
				kind = "text"
			case FilledRect:
				kind = "filledRect"
			case StrokedRect:
				kind = "strokedRect"
			case Line:
				kind = "line"
			}
			pj.Commands = append(pj.Commands, commandJSON{Kind: kind, Command: cmd})
		}
		out[i] = pj
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
