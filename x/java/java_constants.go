package java

import "strings"

// 平台命名空间：restricted-domain (jreOnly) 模式下只尝试这些前缀下的类型
var PlatformPrefixes = []string{"java.", "javax."}

// 默认隐式导入的包
const ImplicitImportPackage = "java.lang"

// IsPlatformName 判断全限定名是否位于平台命名空间
func IsPlatformName(name string) bool {
	for _, prefix := range PlatformPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// 类型修饰符，与 ClassInfo.Modifiers 中的取值一致
const (
	ClassIsStatic   = "static"
	ClassIsAbstract = "abstract"
	ClassIsFinal    = "final"
	ClassIsPublic   = "public"
)
