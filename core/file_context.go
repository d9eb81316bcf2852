package core

import (
	"sync"

	"github.com/CodMac/reflect-solver/model"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

type ImportEntry struct {
	RawImportPath string          `json:"RawImportPath"`
	IsWildcard    bool            `json:"IsWildcard"`
	IsStatic      bool            `json:"IsStatic"`
	Location      *model.Location `json:"Location,omitempty"`
}

type FileContext struct {
	FilePath       string
	PackageName    string
	RootNode       *sitter.Node
	SourceBytes    *[]byte
	Imports        map[string][]*ImportEntry // 短名称 -> 导入；通配符导入的键为 "*"
	References     []*model.TypeReference
	mutex          sync.RWMutex
	typeParameters map[string]struct{}
}

func NewFileContext(filePath string, rootNode *sitter.Node, sourceBytes *[]byte) *FileContext {
	return &FileContext{
		FilePath:       filePath,
		RootNode:       rootNode,
		SourceBytes:    sourceBytes,
		Imports:        make(map[string][]*ImportEntry),
		References:     []*model.TypeReference{},
		typeParameters: make(map[string]struct{}),
	}
}

func (fc *FileContext) AddImport(alias string, imp *ImportEntry) {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()
	fc.Imports[alias] = append(fc.Imports[alias], imp)
}

func (fc *FileContext) AddReference(ref *model.TypeReference) {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()
	fc.References = append(fc.References, ref)
}

// AddTypeParameter 记录文件中声明的泛型形参 (如 <T>)，它们不是可解析的类型
func (fc *FileContext) AddTypeParameter(name string) {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()
	fc.typeParameters[name] = struct{}{}
}

func (fc *FileContext) IsTypeParameter(name string) bool {
	fc.mutex.RLock()
	defer fc.mutex.RUnlock()
	_, ok := fc.typeParameters[name]
	return ok
}

func (fc *FileContext) FindImports(alias string) ([]*ImportEntry, bool) {
	fc.mutex.RLock()
	defer fc.mutex.RUnlock()
	imps, ok := fc.Imports[alias]
	return imps, ok
}

func (fc *FileContext) WildcardImports() []*ImportEntry {
	fc.mutex.RLock()
	defer fc.mutex.RUnlock()
	return append([]*ImportEntry(nil), fc.Imports["*"]...)
}
