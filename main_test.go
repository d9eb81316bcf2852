package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/CodMac/reflect-solver/classpath"
	"github.com/CodMac/reflect-solver/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI 以给定参数执行根命令，返回 stdout 与 stderr
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestResolveCommand_Default(t *testing.T) {
	stdout, _, err := runCLI(t, "resolve", "java.util.Map.Entry", "com.example.Foo", "java.lang.String")
	require.NoError(t, err)
	assert.Equal(t,
		"SOLVED java.util.Map.Entry (INTERFACE) via jre\n"+
			"UNSOLVED com.example.Foo\n"+
			"SOLVED java.lang.String (CLASS) via jre\n",
		stdout)

	_, _, err = runCLI(t, "resolve")
	assert.Error(t, err)
}

func TestResolveCommand_BadgerIndex(t *testing.T) {
	_, indexPath := writeProject(t)
	dbDir := filepath.Join(t.TempDir(), "index")

	// 1. 导入 JSONL 类索引
	_, stderr, err := runCLI(t, "index", "import", "--from", indexPath, "--db", dbDir)
	require.NoError(t, err)
	assert.Contains(t, stderr, "导入 1 个类")

	// 2. 通过 badger 索引解析
	cfgPath := filepath.Join(t.TempDir(), "solver.yaml")
	cfg := fmt.Sprintf(`solvers:
  - name: jre
    jreOnly: true
    loader: platform
  - name: index
    loader: badger
    path: %s
    caseInsensitive: true
`, dbDir)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	stdout, _, err := runCLI(t, "--config", cfgPath, "resolve", "com.acme.Widget", "com.acme.widget", "java.util.List")
	require.NoError(t, err)
	assert.Equal(t,
		"SOLVED com.acme.Widget (CLASS) via index\n"+
			"UNSOLVED com.acme.widget\n"+
			"SOLVED java.util.List (INTERFACE) via jre\n",
		stdout)
}

func TestResolveCommand_BadConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "solver.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("solvers:\n  - name: a\n    loader: jsonl\n"), 0o644))

	_, _, err := runCLI(t, "--config", cfgPath, "resolve", "java.lang.String")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a path")
}

func TestScanCommand(t *testing.T) {
	srcDir, indexPath := writeProject(t)
	outDir := filepath.Join(t.TempDir(), "out")

	cfgPath := filepath.Join(t.TempDir(), "solver.yaml")
	cfg := fmt.Sprintf(`solvers:
  - name: jre
    jreOnly: true
    loader: platform
  - name: app
    loader: jsonl
    path: %s
scan:
  level: 2
`, indexPath)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	// 命令行的 --level 覆盖配置文件
	_, stderr, err := runCLI(t, "--config", cfgPath, "scan", "--path", srcDir, "--out-dir", outDir, "--level", "0", "--jobs", "2")
	require.NoError(t, err)
	assert.Contains(t, stderr, "[1/4]")
	assert.Contains(t, stderr, "找到 1 个候选文件")
	assert.Contains(t, stderr, "[4/4]")

	f, err := os.Open(filepath.Join(outDir, output.ResolutionFile))
	require.NoError(t, err)
	defer f.Close()
	lines := 0
	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(f)
	require.NoError(t, err)
	for _, b := range buf.Bytes() {
		if b == '\n' {
			lines++
		}
	}
	assert.Equal(t, 5, lines)
}

func TestScanCommand_Mermaid(t *testing.T) {
	srcDir, _ := writeProject(t)
	outDir := t.TempDir()

	_, _, err := runCLI(t, "scan", "--path", srcDir, "--out-dir", outDir, "--format", "mermaid")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, output.VisualizationFile))
}

func TestIndexImport_MissingFlags(t *testing.T) {
	_, _, err := runCLI(t, "index", "import", "--from", "x.jsonl")
	assert.Error(t, err)
}

func TestImportIndex_Counts(t *testing.T) {
	_, indexPath := writeProject(t)
	dbDir := t.TempDir()

	var progress bytes.Buffer
	require.NoError(t, importIndex(&progress, testLogger(), indexPath, dbDir))
	require.NoError(t, importIndex(&progress, testLogger(), indexPath, dbDir))

	store, err := classpath.Open(dbDir, testLogger())
	require.NoError(t, err)
	defer store.Close()
	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
