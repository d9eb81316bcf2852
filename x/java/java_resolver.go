package java

import (
	"strings"

	"github.com/CodMac/reflect-solver/core"
	"github.com/CodMac/reflect-solver/model"
)

type SymbolResolver struct{}

func NewJavaSymbolResolver() *SymbolResolver {
	return &SymbolResolver{}
}

func (j *SymbolResolver) BuildQualifiedName(parentQN, name string) string {
	if parentQN == "" || parentQN == "." {
		return name
	}
	return parentQN + "." + name
}

// CandidateNames 按 Java 的名称遮蔽顺序生成候选全限定名：
//  1. 首段命中单类型导入 (Map.Entry + import java.util.Map -> java.util.Map.Entry)
//  2. 同包 (含同包外部类的内部类)
//  3. 已经是全限定名的原样写法
//  4. 通配符导入
//  5. java.lang 隐式导入
func (j *SymbolResolver) CandidateNames(fc *core.FileContext, ref *model.TypeReference) []string {
	name := stripTypeArguments(ref.Name)
	if name == "" {
		return nil
	}

	var candidates []string
	seen := make(map[string]struct{})
	add := func(qn string) {
		if _, ok := seen[qn]; ok {
			return
		}
		seen[qn] = struct{}{}
		candidates = append(candidates, qn)
	}

	first, rest, scoped := strings.Cut(name, ".")

	// 1. 单类型导入
	if imps, ok := fc.FindImports(first); ok {
		for _, imp := range imps {
			if scoped {
				add(j.BuildQualifiedName(imp.RawImportPath, rest))
			} else {
				add(imp.RawImportPath)
			}
		}
	}

	// 2. 同包
	add(j.BuildQualifiedName(fc.PackageName, name))

	// 3. 原样写法
	if scoped {
		add(name)
	}

	// 4. 通配符导入
	for _, imp := range fc.WildcardImports() {
		base := strings.TrimSuffix(strings.TrimSuffix(imp.RawImportPath, "*"), ".")
		add(j.BuildQualifiedName(base, name))
	}

	// 5. java.lang
	add(j.BuildQualifiedName(ImplicitImportPackage, name))

	return candidates
}
