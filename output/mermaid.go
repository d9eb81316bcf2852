package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/CodMac/reflect-solver/model"
)

func safeID(id string) string {
	r := strings.NewReplacer(".", "_", "$", "_", "/", "_", "\\", "_", "-", "_", "(", "_", ")", "_", "[", "_", "]", "_", " ", "_", "@", "at")
	return "n_" + r.Replace(id)
}

func getNodeShape(kind model.ElementKind, name string) string {
	switch kind {
	case model.Interface, model.KAnnotation:
		return fmt.Sprintf("([\"%s <small>(%s)</small>\"])", name, kind)
	case model.Enum, model.Record:
		return fmt.Sprintf("[/\"%s <small>(%s)</small>\"/]", name, kind)
	case model.Unknown, "":
		return fmt.Sprintf("{{\"%s <small>(unsolved)</small>\"}}", name)
	default:
		return fmt.Sprintf("[\"%s <small>(%s)</small>\"]", name, kind)
	}
}

// writeMermaidGraph 按文件分组输出引用方，已解析的边为实线，未解析的边为虚线。
// 返回 (节点数, 边数)
func writeMermaidGraph(w io.Writer, resolutions []*model.Resolution) (int, int) {
	byFile := make(map[string][]*model.Resolution)
	for _, res := range resolutions {
		if res == nil || res.Reference == nil {
			continue
		}
		byFile[res.Reference.FilePath] = append(byFile[res.Reference.FilePath], res)
	}
	files := make([]string, 0, len(byFile))
	for f := range byFile {
		files = append(files, f)
	}
	sort.Strings(files)

	fmt.Fprintln(w, "graph LR")

	// 1. 每个文件一个子图
	for _, file := range files {
		fileID := safeID(file)
		fmt.Fprintf(w, "  subgraph %s_g [📄 %s]\n", fileID, file)
		fmt.Fprintf(w, "    %s[\"%s\"]\n", fileID, file)
		fmt.Fprintln(w, "  end")
	}

	// 2. 目标节点去重
	nodeCount := 0
	declared := make(map[string]bool)
	targetOf := func(res *model.Resolution) (string, string, model.ElementKind) {
		if res.Solved {
			return safeID(res.QualifiedName), res.QualifiedName, res.Kind
		}
		return safeID("unsolved." + res.Reference.Name), res.Reference.Name, model.Unknown
	}

	// 3. 边，同一文件到同一目标只画一次
	edgeCount := 0
	drawn := make(map[string]bool)
	for _, file := range files {
		srcID := safeID(file)
		for _, res := range byFile[file] {
			tgtID, label, kind := targetOf(res)
			if !declared[tgtID] {
				declared[tgtID] = true
				fmt.Fprintf(w, "  %s%s\n", tgtID, getNodeShape(kind, label))
				nodeCount++
			}
			key := srcID + "->" + tgtID
			if drawn[key] {
				continue
			}
			drawn[key] = true
			if res.Solved {
				fmt.Fprintf(w, "  %s -- %s --> %s\n", srcID, res.Solver, tgtID)
			} else {
				fmt.Fprintf(w, "  %s -.-> %s\n", srcID, tgtID)
			}
			edgeCount++
		}
	}
	return nodeCount + len(files), edgeCount
}
