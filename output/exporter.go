package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/CodMac/reflect-solver/model"
	"github.com/pkg/errors"
)

type OutType string

const (
	JsonL   OutType = "jsonl"
	Mermaid OutType = "mermaid"
)

const (
	ResolutionFile    = "resolution.jsonl"
	VisualizationFile = "visualization.html"
)

type Exporter struct {
	outputDir  string
	outputType OutType
}

func NewExporter(outputDir string, outputType OutType) *Exporter {
	return &Exporter{outputDir: outputDir, outputType: outputType}
}

// Export 按构造时指定的格式导出，返回输出文件路径
func (p *Exporter) Export(resolutions []*model.Resolution) (string, int, int, error) {
	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return "", 0, 0, errors.Wrapf(err, "create output dir %s", p.outputDir)
	}
	switch p.outputType {
	case JsonL:
		n, err := p.ExportJsonL(resolutions)
		return filepath.Join(p.outputDir, ResolutionFile), n, 0, err
	case Mermaid:
		nodes, edges, err := p.ExportMermaidHTML(resolutions)
		return filepath.Join(p.outputDir, VisualizationFile), nodes, edges, err
	}
	return "", 0, 0, errors.Errorf("unsupported output type %q", p.outputType)
}

func (p *Exporter) ExportJsonL(resolutions []*model.Resolution) (int, error) {
	path := filepath.Join(p.outputDir, ResolutionFile)
	f, err := os.Create(path)
	if err != nil {
		return 0, errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	n, err := WriteResolutions(f, resolutions)
	if err != nil {
		return n, errors.Wrapf(err, "write %s", path)
	}
	return n, nil
}

func (p *Exporter) ExportMermaidHTML(resolutions []*model.Resolution) (int, int, error) {
	path := filepath.Join(p.outputDir, VisualizationFile)
	f, err := os.Create(path)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	fmt.Fprintln(f, `<!DOCTYPE html><html><head><meta charset="UTF-8"><script src="https://cdn.jsdelivr.net/npm/mermaid/dist/mermaid.min.js"></script></head>
<body><div class="mermaid">`)
	nodes, edges := writeMermaidGraph(f, resolutions)
	fmt.Fprintln(f, `</div><script>mermaid.initialize({startOnLoad:true, maxTextSize:1000000});</script></body></html>`)

	return nodes, edges, nil
}
