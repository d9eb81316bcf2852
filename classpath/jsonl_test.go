package classpath_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CodMac/reflect-solver/classpath"
	"github.com/CodMac/reflect-solver/core"
	"github.com/CodMac/reflect-solver/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJSONL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, classpath.WriteJSONL(&buf, sampleClasses()))
	buf.WriteString("\n   \n")

	classes, err := classpath.LoadJSONL(&buf)
	require.NoError(t, err)
	require.Len(t, classes, 3)
	assert.Equal(t, "com.acme.Widget", classes[0].BinaryName)
	assert.Equal(t, model.Record, classes[1].Kind)
}

func TestLoadJSONL_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"bad json", `{"BinaryName":"a.B"}` + "\n{oops\n", "line 2"},
		{"missing name", `{"Kind":"Class"}`, "missing BinaryName"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := classpath.LoadJSONL(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func writeIndex(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "classes.jsonl")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, classpath.WriteJSONL(f, sampleClasses()))
	return path
}

func TestJSONLLoader(t *testing.T) {
	path := writeIndex(t)

	loader, err := classpath.NewJSONLLoader(path, true)
	require.NoError(t, err)
	assert.Equal(t, 3, loader.Len())
	assert.Equal(t, core.LoadOK, loader.Load("com.acme.Widget$Part").Status)
	assert.Equal(t, core.LoadLinkageMismatch, loader.Load("com.acme.widget").Status)

	_, err = classpath.NewJSONLLoader(filepath.Join(t.TempDir(), "missing.jsonl"), false)
	assert.Error(t, err)
}

func TestJSONLLoaderFactory(t *testing.T) {
	path := writeIndex(t)

	loader, err := core.NewLoader(classpath.LoaderJSONL, core.LoaderSpec{Path: path}, nil)
	require.NoError(t, err)
	assert.Equal(t, core.LoadNotFound, loader.Load("com.acme.widget").Status)

	_, err = core.NewLoader(classpath.LoaderJSONL, core.LoaderSpec{}, nil)
	assert.Error(t, err)
}
