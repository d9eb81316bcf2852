package output

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CodMac/reflect-solver/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResolutions() []*model.Resolution {
	ref := func(name, file string) *model.TypeReference {
		return &model.TypeReference{Name: name, FilePath: file, Location: &model.Location{FilePath: file, StartLine: 3}}
	}
	return []*model.Resolution{
		{Reference: ref("String", "a/Foo.java"), Solved: true, QualifiedName: "java.lang.String", BinaryName: "java.lang.String", Kind: model.Class, Solver: "jre"},
		{Reference: ref("Map.Entry", "a/Foo.java"), Solved: true, QualifiedName: "java.util.Map.Entry", BinaryName: "java.util.Map$Entry", Kind: model.Interface, Solver: "jre"},
		{Reference: ref("String", "a/Foo.java"), Solved: true, QualifiedName: "java.lang.String", BinaryName: "java.lang.String", Kind: model.Class, Solver: "jre"},
		{Reference: ref("Missing", "b/Bar.java"), Candidates: []string{"b.Missing", "java.lang.Missing"}},
		nil,
	}
}

func TestWriteResolutions(t *testing.T) {
	var buf bytes.Buffer
	n, err := WriteResolutions(&buf, sampleResolutions())
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	scanner := bufio.NewScanner(&buf)
	var decoded []model.Resolution
	for scanner.Scan() {
		var res model.Resolution
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &res))
		decoded = append(decoded, res)
	}
	require.Len(t, decoded, 4)
	assert.Equal(t, "java.util.Map$Entry", decoded[1].BinaryName)
	assert.False(t, decoded[3].Solved)
	assert.Equal(t, []string{"b.Missing", "java.lang.Missing"}, decoded[3].Candidates)
}

func TestMermaidGraph(t *testing.T) {
	var buf bytes.Buffer
	nodes, edges := writeMermaidGraph(&buf, sampleResolutions())
	out := buf.String()

	// 2 个文件节点 + 3 个目标节点；重复的 String 边只画一次
	assert.Equal(t, 5, nodes)
	assert.Equal(t, 3, edges)

	assert.True(t, strings.HasPrefix(out, "graph LR\n"))
	assert.Contains(t, out, "subgraph n_a_Foo_java_g")
	assert.Contains(t, out, "n_a_Foo_java -- jre --> n_java_lang_String")
	assert.Contains(t, out, "n_b_Bar_java -.-> n_unsolved_Missing")
	assert.Contains(t, out, "(unsolved)")
	assert.Equal(t, 1, strings.Count(out, "--> n_java_lang_String"))
}

func TestExporter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	path, n, _, err := NewExporter(dir, JsonL).Export(sampleResolutions())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ResolutionFile), path)
	assert.Equal(t, 4, n)

	path, nodes, edges, err := NewExporter(dir, Mermaid).Export(sampleResolutions())
	require.NoError(t, err)
	assert.Equal(t, 5, nodes)
	assert.Equal(t, 3, edges)
	html, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(html), "mermaid.initialize")

	_, _, _, err = NewExporter(dir, OutType("dot")).Export(nil)
	assert.Error(t, err)
}
