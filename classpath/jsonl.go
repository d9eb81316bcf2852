package classpath

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/CodMac/reflect-solver/model"
	"github.com/CodMac/reflect-solver/x/java"
	"github.com/pkg/errors"
)

// maxRecordSize 单条 JSONL 记录的上限
const maxRecordSize = 4 * 1024 * 1024

// LoadJSONL 读取类索引：每行一个 model.ClassInfo，空行被忽略
func LoadJSONL(r io.Reader) ([]*model.ClassInfo, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)

	var classes []*model.ClassInfo
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(bytes.TrimSpace(raw)) == 0 {
			continue
		}
		info := &model.ClassInfo{}
		if err := json.Unmarshal(raw, info); err != nil {
			return nil, errors.Wrapf(err, "class index line %d", line)
		}
		if info.BinaryName == "" {
			return nil, errors.Errorf("class index line %d: missing BinaryName", line)
		}
		classes = append(classes, info)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read class index")
	}
	return classes, nil
}

// LoadJSONLFile 读取类索引文件
func LoadJSONLFile(path string) ([]*model.ClassInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open class index %s", path)
	}
	defer f.Close()
	return LoadJSONL(f)
}

// WriteJSONL 以 JSONL 格式写出类索引
func WriteJSONL(w io.Writer, classes []*model.ClassInfo) error {
	encoder := json.NewEncoder(w)
	for _, c := range classes {
		if err := encoder.Encode(c); err != nil {
			return errors.Wrapf(err, "encode %s", c.BinaryName)
		}
	}
	return nil
}

// NewJSONLLoader 从类索引文件构建内存类加载器
func NewJSONLLoader(path string, caseInsensitive bool) (*java.RuntimeClassLoader, error) {
	classes, err := LoadJSONLFile(path)
	if err != nil {
		return nil, err
	}
	loader := java.NewRuntimeClassLoader(caseInsensitive)
	if err := loader.DefineAll(classes...); err != nil {
		return nil, errors.Wrapf(err, "define classes from %s", path)
	}
	return loader, nil
}
