package parser

import (
	"fmt"
	"os"

	"github.com/CodMac/reflect-solver/core"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// GetLanguage 返回语言对应的 tree-sitter 语法
func GetLanguage(lang core.Language) (*sitter.Language, error) {
	switch lang {
	case core.LangJava:
		return sitter.NewLanguage(tree_sitter_java.Language()), nil
	}
	return nil, fmt.Errorf("no tree-sitter grammar for language: %s", lang)
}

// TreeSitterParser 包装了单个 tree-sitter 解析器，不可并发使用；每个 goroutine 各持有一个
type TreeSitterParser struct {
	lang   core.Language
	parser *sitter.Parser
	trees  []*sitter.Tree
}

func NewParser(lang core.Language) (*TreeSitterParser, error) {
	tsLang, err := GetLanguage(lang)
	if err != nil {
		return nil, err
	}
	p := sitter.NewParser()
	if err := p.SetLanguage(tsLang); err != nil {
		p.Close()
		return nil, fmt.Errorf("set language %s: %w", lang, err)
	}
	return &TreeSitterParser{lang: lang, parser: p}, nil
}

// ParseFile 读取并解析文件，返回 AST 根节点与源码内容。
// 语法树的生命周期与解析器一致，在 Close 时释放。
func (p *TreeSitterParser) ParseFile(path string) (*sitter.Node, *[]byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	root, err := p.ParseSource(src)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return root, &src, nil
}

func (p *TreeSitterParser) ParseSource(src []byte) (*sitter.Node, error) {
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned no tree for %s source", p.lang)
	}
	p.trees = append(p.trees, tree)
	return tree.RootNode(), nil
}

func (p *TreeSitterParser) Close() {
	for _, t := range p.trees {
		t.Close()
	}
	p.trees = nil
	p.parser.Close()
}
