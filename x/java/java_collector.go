package java

import (
	"fmt"
	"strings"

	"github.com/CodMac/reflect-solver/core"
	"github.com/CodMac/reflect-solver/model"
	"github.com/CodMac/reflect-solver/parser"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

type Collector struct{}

func NewJavaCollector() *Collector {
	return &Collector{}
}

// ==========================================
// 1. 核心生命周期 (Core Workflow)
// ==========================================

func (c *Collector) CollectReferences(rootNode *sitter.Node, filePath string, sourceBytes *[]byte) (*core.FileContext, error) {
	fCtx := core.NewFileContext(filePath, rootNode, sourceBytes)

	// 第一步：提取包名与导入 (Top-level)
	c.processTopLevelDeclarations(fCtx)

	// 第二步：收集泛型形参，避免把 T/K/V 当作类型引用
	if err := c.collectTypeParameters(fCtx); err != nil {
		return nil, err
	}

	// 第三步：深度优先遍历收集类型引用
	c.collectTypeReferences(fCtx.RootNode, fCtx)

	return fCtx, nil
}

func (c *Collector) processTopLevelDeclarations(fCtx *core.FileContext) {
	for i := 0; i < int(fCtx.RootNode.ChildCount()); i++ {
		child := fCtx.RootNode.Child(uint(i))
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "package_declaration":
			if ident := c.findNamedChildOfType(child, "scoped_identifier"); ident != nil {
				fCtx.PackageName = c.getNodeContent(ident, *fCtx.SourceBytes)
			} else if ident := c.findNamedChildOfType(child, "identifier"); ident != nil {
				fCtx.PackageName = c.getNodeContent(ident, *fCtx.SourceBytes)
			}
		case "import_declaration":
			c.handleImport(child, fCtx)
		}
	}
}

func (c *Collector) collectTypeParameters(fCtx *core.FileContext) error {
	tsLang, err := parser.GetLanguage(core.LangJava)
	if err != nil {
		return err
	}
	q, qErr := sitter.NewQuery(tsLang, JavaTypeParameterQuery)
	if qErr != nil {
		return fmt.Errorf("Query init error: %w", qErr)
	}
	defer q.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	matches := qc.Matches(q, fCtx.RootNode, *fCtx.SourceBytes)
	for {
		match := matches.Next()
		if match == nil {
			break
		}
		for _, capture := range match.Captures {
			fCtx.AddTypeParameter(capture.Node.Utf8Text(*fCtx.SourceBytes))
		}
	}
	return nil
}

// collectTypeReferences 收集 type_identifier / scoped_type_identifier 以及注解名
func (c *Collector) collectTypeReferences(node *sitter.Node, fCtx *core.FileContext) {
	src := *fCtx.SourceBytes

	switch node.Kind() {
	case "package_declaration", "import_declaration":
		return

	case "type_parameter":
		// 形参声明本身不是引用，上界 (<T extends Comparable<T>>) 仍需收集
		for i := 0; i < int(node.NamedChildCount()); i++ {
			if child := node.NamedChild(uint(i)); child != nil && child.Kind() != "type_identifier" {
				c.collectTypeReferences(child, fCtx)
			}
		}
		return

	case "scoped_type_identifier":
		c.addReference(fCtx, node, stripTypeArguments(c.getNodeContent(node, src)))
		// 外层的泛型实参 (Outer<String>.Inner) 仍需收集
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(uint(i))
			if child != nil && child.Kind() == "generic_type" {
				if args := c.findNamedChildOfType(child, "type_arguments"); args != nil {
					c.collectTypeReferences(args, fCtx)
				}
			}
		}
		return

	case "type_identifier":
		c.addReference(fCtx, node, c.getNodeContent(node, src))
		return

	case "marker_annotation", "annotation":
		if nameNode := node.ChildByFieldName("name"); nameNode != nil {
			c.addReference(fCtx, nameNode, c.getNodeContent(nameNode, src))
		}
		if args := node.ChildByFieldName("arguments"); args != nil {
			c.collectTypeReferences(args, fCtx)
		}
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(uint(i)); child != nil {
			c.collectTypeReferences(child, fCtx)
		}
	}
}

func (c *Collector) addReference(fCtx *core.FileContext, node *sitter.Node, name string) {
	if name == "" || name == "var" {
		return
	}
	if !strings.Contains(name, ".") && fCtx.IsTypeParameter(name) {
		return
	}
	fCtx.AddReference(&model.TypeReference{
		Name:     name,
		FilePath: fCtx.FilePath,
		Location: c.extractLocation(node, fCtx.FilePath),
	})
}

// ==========================================
// 2. 导入处理 (Imports)
// ==========================================

func (c *Collector) handleImport(node *sitter.Node, fCtx *core.FileContext) {
	isStatic := false
	var pathParts []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		kind := child.Kind()
		if kind == "static" {
			isStatic = true
			continue
		}
		if kind == "scoped_identifier" || kind == "identifier" || kind == "asterisk" {
			pathParts = append(pathParts, c.getNodeContent(child, *fCtx.SourceBytes))
		}
	}
	if len(pathParts) == 0 {
		return
	}
	fullPath := strings.Join(pathParts, ".")
	isWildcard := strings.HasSuffix(fullPath, ".*") || pathParts[len(pathParts)-1] == "*"
	entry := &core.ImportEntry{
		RawImportPath: fullPath,
		IsWildcard:    isWildcard,
		IsStatic:      isStatic,
		Location:      c.extractLocation(node, fCtx.FilePath),
	}
	alias := "*"
	if !isWildcard {
		parts := strings.Split(fullPath, ".")
		alias = parts[len(parts)-1]
	}
	fCtx.AddImport(alias, entry)
}

// ==========================================
// 3. 底层工具 (Utilities)
// ==========================================

func (c *Collector) getNodeContent(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(src)
}

func (c *Collector) findNamedChildOfType(n *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(uint(i))
		if child != nil && child.Kind() == nodeType {
			return child
		}
	}
	return nil
}

func (c *Collector) extractLocation(n *sitter.Node, filePath string) *model.Location {
	return &model.Location{
		FilePath:    filePath,
		StartLine:   int(n.StartPosition().Row) + 1,
		EndLine:     int(n.EndPosition().Row) + 1,
		StartColumn: int(n.StartPosition().Column),
		EndColumn:   int(n.EndPosition().Column),
	}
}

// stripTypeArguments 去掉泛型实参与空白 (Outer<String>.Inner -> Outer.Inner)
func stripTypeArguments(text string) string {
	var sb strings.Builder
	depth := 0
	for _, r := range text {
		switch {
		case r == '<':
			depth++
		case r == '>':
			if depth > 0 {
				depth--
			}
		case depth == 0 && r != ' ' && r != '\t' && r != '\n' && r != '\r':
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
