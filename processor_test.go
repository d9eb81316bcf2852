package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/CodMac/reflect-solver/classpath"
	"github.com/CodMac/reflect-solver/config"
	"github.com/CodMac/reflect-solver/core"
	"github.com/CodMac/reflect-solver/model"
	"github.com/CodMac/reflect-solver/x/java"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serviceSource = `package com.acme;

import java.util.List;
import java.util.Map;

public class Service {
    private Map.Entry<String, Widget> entry;
    private List<Gadget> gadgets;
}
`

// writeProject 准备一个源码目录和一个只包含 com.acme.Widget 的类索引
func writeProject(t *testing.T) (srcDir, indexPath string) {
	t.Helper()
	dir := t.TempDir()
	srcDir = filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(filepath.Join(srcDir, "com", "acme"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "com", "acme", "Service.java"), []byte(serviceSource), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "README.md"), []byte("not java"), 0o644))

	indexPath = filepath.Join(dir, "classes.jsonl")
	f, err := os.Create(indexPath)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, classpath.WriteJSONL(f, []*model.ClassInfo{
		{BinaryName: "com.acme.Widget", Kind: model.Class},
	}))
	return srcDir, indexPath
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func appConfig(indexPath string) *config.Config {
	cfg := config.Default()
	cfg.Solvers = append(cfg.Solvers, config.SolverConfig{
		Name: "app", Type: config.SolverTypeReflection, Loader: classpath.LoaderJSONL, Path: indexPath,
	})
	return cfg
}

func process(t *testing.T, level core.FilterLevel) map[string]*model.Resolution {
	t.Helper()
	srcDir, indexPath := writeProject(t)

	chain, closeChain, err := buildChain(appConfig(indexPath), testLogger())
	require.NoError(t, err)
	defer closeChain()

	files, err := scanFiles(srcDir, "", "java")
	require.NoError(t, err)
	require.Len(t, files, 1)

	proc := NewFileProcessor(core.LangJava, 2, level, chain, testLogger())
	results, err := proc.ProcessFiles(context.Background(), srcDir, files)
	require.NoError(t, err)

	byName := make(map[string]*model.Resolution, len(results))
	for _, res := range results {
		byName[res.Reference.Name] = res
	}
	return byName
}

func TestFileProcessor_Raw(t *testing.T) {
	results := process(t, core.LevelRaw)
	require.Len(t, results, 5)

	entry := results["Map.Entry"]
	require.True(t, entry.Solved)
	assert.Equal(t, "java.util.Map.Entry", entry.QualifiedName)
	assert.Equal(t, "java.util.Map$Entry", entry.BinaryName)
	assert.Equal(t, model.Interface, entry.Kind)
	assert.Equal(t, "jre", entry.Solver)
	assert.Equal(t, filepath.Join("com", "acme", "Service.java"), entry.Reference.FilePath)

	str := results["String"]
	require.True(t, str.Solved)
	assert.Equal(t, "java.lang.String", str.QualifiedName)
	assert.Equal(t, []string{"com.acme.String", "java.lang.String"}, str.Candidates)
	assert.Equal(t, []string{java.ClassIsPublic, java.ClassIsFinal}, str.Modifiers)
	assert.Equal(t, []string{java.ClassIsPublic, java.ClassIsStatic}, entry.Modifiers)

	widget := results["Widget"]
	require.True(t, widget.Solved)
	assert.Equal(t, "com.acme.Widget", widget.QualifiedName)
	assert.Equal(t, "app", widget.Solver)

	gadget := results["Gadget"]
	assert.False(t, gadget.Solved)
	assert.Empty(t, gadget.Solver)
}

func TestFileProcessor_NoiseLevels(t *testing.T) {
	balanced := process(t, core.LevelBalanced)
	assert.Len(t, balanced, 2)
	assert.Contains(t, balanced, "Widget")
	assert.Contains(t, balanced, "Gadget")

	pure := process(t, core.LevelPure)
	assert.Len(t, pure, 1)
	assert.Contains(t, pure, "Gadget")
}

func TestFileProcessor_FatalLoaderError(t *testing.T) {
	srcDir, indexPath := writeProject(t)
	chain, closeChain, err := buildChain(appConfig(indexPath), testLogger())
	require.NoError(t, err)

	// 关闭加载器后，扫描必须失败而不是把所有引用报告为未解析
	require.NoError(t, closeChain())

	files, err := scanFiles(srcDir, "", "java")
	require.NoError(t, err)
	_, err = NewFileProcessor(core.LangJava, 1, core.LevelRaw, chain, testLogger()).
		ProcessFiles(context.Background(), srcDir, files)
	assert.ErrorIs(t, err, core.ErrLoaderUnavailable)
}

func TestFileProcessor_Errors(t *testing.T) {
	proc := NewFileProcessor(core.LangJava, 0, core.LevelRaw, nil, nil)
	assert.Equal(t, 4, proc.Concurrency)
	_, err := proc.ProcessFiles(context.Background(), ".", nil)
	assert.ErrorIs(t, err, core.ErrNilSolver)

	chain, closeChain, err := buildChain(config.Default(), testLogger())
	require.NoError(t, err)
	defer closeChain()

	_, err = NewFileProcessor(core.Language("cobol"), 1, core.LevelRaw, chain, nil).
		ProcessFiles(context.Background(), ".", nil)
	assert.Error(t, err)

	_, err = NewFileProcessor(core.LangJava, 1, core.LevelRaw, chain, nil).
		ProcessFiles(context.Background(), ".", []string{filepath.Join(t.TempDir(), "Missing.java")})
	assert.Error(t, err)
}

func TestBuildChain(t *testing.T) {
	_, indexPath := writeProject(t)

	chain, closeChain, err := buildChain(appConfig(indexPath), testLogger())
	require.NoError(t, err)
	defer closeChain()

	elements := chain.Elements()
	require.Len(t, elements, 2)
	assert.Equal(t, "jre", core.SolverName(elements[0]))
	assert.Equal(t, "app", core.SolverName(elements[1]))
	for _, e := range elements {
		assert.Same(t, chain, e.Parent())
	}

	bad := config.Default()
	bad.Solvers[0].Loader = "jar"
	_, _, err = buildChain(bad, testLogger())
	assert.Error(t, err)
}
