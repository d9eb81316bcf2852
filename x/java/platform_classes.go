package java

import (
	"strings"

	"github.com/CodMac/reflect-solver/model"
)

// --- Java 平台类型表 (模拟运行中 JRE 已加载的类) ---

type platformClass struct {
	BinaryName string
	Kind       model.ElementKind
	Super      string
	Interfaces []string
	Modifiers  []string
}

var publicMods = []string{ClassIsPublic}
var publicStaticMods = []string{ClassIsPublic, ClassIsStatic}

var platformTable = []platformClass{
	// === java.lang 核心类 (默认隐式导入) ===
	{"java.lang.Object", model.Class, "", nil, publicMods},
	{"java.lang.String", model.Class, "java.lang.Object", []string{"java.io.Serializable", "java.lang.Comparable", "java.lang.CharSequence"}, []string{ClassIsPublic, ClassIsFinal}},
	{"java.lang.System", model.Class, "java.lang.Object", nil, []string{ClassIsPublic, ClassIsFinal}},
	{"java.lang.Number", model.Class, "java.lang.Object", []string{"java.io.Serializable"}, []string{ClassIsPublic, ClassIsAbstract}},
	{"java.lang.Integer", model.Class, "java.lang.Number", []string{"java.lang.Comparable"}, []string{ClassIsPublic, ClassIsFinal}},
	{"java.lang.Long", model.Class, "java.lang.Number", []string{"java.lang.Comparable"}, []string{ClassIsPublic, ClassIsFinal}},
	{"java.lang.Double", model.Class, "java.lang.Number", []string{"java.lang.Comparable"}, []string{ClassIsPublic, ClassIsFinal}},
	{"java.lang.Float", model.Class, "java.lang.Number", []string{"java.lang.Comparable"}, []string{ClassIsPublic, ClassIsFinal}},
	{"java.lang.Short", model.Class, "java.lang.Number", []string{"java.lang.Comparable"}, []string{ClassIsPublic, ClassIsFinal}},
	{"java.lang.Byte", model.Class, "java.lang.Number", []string{"java.lang.Comparable"}, []string{ClassIsPublic, ClassIsFinal}},
	{"java.lang.Boolean", model.Class, "java.lang.Object", []string{"java.io.Serializable", "java.lang.Comparable"}, []string{ClassIsPublic, ClassIsFinal}},
	{"java.lang.Character", model.Class, "java.lang.Object", []string{"java.io.Serializable", "java.lang.Comparable"}, []string{ClassIsPublic, ClassIsFinal}},
	{"java.lang.Character$UnicodeBlock", model.Class, "java.lang.Character$Subset", nil, []string{ClassIsPublic, ClassIsStatic, ClassIsFinal}},
	{"java.lang.Character$Subset", model.Class, "java.lang.Object", nil, publicStaticMods},
	{"java.lang.Void", model.Class, "java.lang.Object", nil, []string{ClassIsPublic, ClassIsFinal}},
	{"java.lang.Math", model.Class, "java.lang.Object", nil, []string{ClassIsPublic, ClassIsFinal}},
	{"java.lang.Class", model.Class, "java.lang.Object", []string{"java.io.Serializable"}, []string{ClassIsPublic, ClassIsFinal}},
	{"java.lang.ClassLoader", model.Class, "java.lang.Object", nil, []string{ClassIsPublic, ClassIsAbstract}},
	{"java.lang.Thread", model.Class, "java.lang.Object", []string{"java.lang.Runnable"}, publicMods},
	{"java.lang.Thread$State", model.Enum, "java.lang.Enum", nil, publicStaticMods},
	{"java.lang.Thread$UncaughtExceptionHandler", model.Interface, "", nil, publicStaticMods},
	{"java.lang.ThreadLocal", model.Class, "java.lang.Object", nil, publicMods},
	{"java.lang.StringBuilder", model.Class, "java.lang.Object", []string{"java.io.Serializable", "java.lang.CharSequence"}, []string{ClassIsPublic, ClassIsFinal}},
	{"java.lang.StringBuffer", model.Class, "java.lang.Object", []string{"java.io.Serializable", "java.lang.CharSequence"}, []string{ClassIsPublic, ClassIsFinal}},
	{"java.lang.Enum", model.Class, "java.lang.Object", []string{"java.lang.Comparable", "java.io.Serializable"}, []string{ClassIsPublic, ClassIsAbstract}},
	{"java.lang.Record", model.Class, "java.lang.Object", nil, []string{ClassIsPublic, ClassIsAbstract}},
	{"java.lang.Iterable", model.Interface, "", nil, publicMods},
	{"java.lang.AutoCloseable", model.Interface, "", nil, publicMods},
	{"java.lang.Runnable", model.Interface, "", nil, publicMods},
	{"java.lang.Comparable", model.Interface, "", nil, publicMods},
	{"java.lang.CharSequence", model.Interface, "", nil, publicMods},
	{"java.lang.Override", model.KAnnotation, "", nil, publicMods},
	{"java.lang.Deprecated", model.KAnnotation, "", nil, publicMods},
	{"java.lang.SuppressWarnings", model.KAnnotation, "", nil, publicMods},
	{"java.lang.SafeVarargs", model.KAnnotation, "", nil, publicMods},
	{"java.lang.FunctionalInterface", model.KAnnotation, "", nil, publicMods},

	// === java.lang 异常体系 ===
	{"java.lang.Throwable", model.Class, "java.lang.Object", []string{"java.io.Serializable"}, publicMods},
	{"java.lang.Exception", model.Class, "java.lang.Throwable", nil, publicMods},
	{"java.lang.RuntimeException", model.Class, "java.lang.Exception", nil, publicMods},
	{"java.lang.Error", model.Class, "java.lang.Throwable", nil, publicMods},
	{"java.lang.NullPointerException", model.Class, "java.lang.RuntimeException", nil, publicMods},
	{"java.lang.IllegalArgumentException", model.Class, "java.lang.RuntimeException", nil, publicMods},
	{"java.lang.IllegalStateException", model.Class, "java.lang.RuntimeException", nil, publicMods},
	{"java.lang.IndexOutOfBoundsException", model.Class, "java.lang.RuntimeException", nil, publicMods},
	{"java.lang.UnsupportedOperationException", model.Class, "java.lang.RuntimeException", nil, publicMods},
	{"java.lang.ClassNotFoundException", model.Class, "java.lang.ReflectiveOperationException", nil, publicMods},
	{"java.lang.ReflectiveOperationException", model.Class, "java.lang.Exception", nil, publicMods},
	{"java.lang.NoClassDefFoundError", model.Class, "java.lang.LinkageError", nil, publicMods},
	{"java.lang.LinkageError", model.Class, "java.lang.Error", nil, publicMods},

	// === java.lang.annotation 核心元注解与枚举 ===
	{"java.lang.annotation.Retention", model.KAnnotation, "", nil, publicMods},
	{"java.lang.annotation.Target", model.KAnnotation, "", nil, publicMods},
	{"java.lang.annotation.Documented", model.KAnnotation, "", nil, publicMods},
	{"java.lang.annotation.Inherited", model.KAnnotation, "", nil, publicMods},
	{"java.lang.annotation.Native", model.KAnnotation, "", nil, publicMods},
	{"java.lang.annotation.Repeatable", model.KAnnotation, "", nil, publicMods},
	{"java.lang.annotation.RetentionPolicy", model.Enum, "java.lang.Enum", nil, publicMods},
	{"java.lang.annotation.ElementType", model.Enum, "java.lang.Enum", nil, publicMods},
	{"javax.annotation.Resource", model.KAnnotation, "", nil, publicMods},
	{"javax.annotation.PostConstruct", model.KAnnotation, "", nil, publicMods},
	{"javax.annotation.PreDestroy", model.KAnnotation, "", nil, publicMods},
	{"javax.annotation.Generated", model.KAnnotation, "", nil, publicMods},

	// === java.util 集合框架 ===
	{"java.util.Collection", model.Interface, "", []string{"java.lang.Iterable"}, publicMods},
	{"java.util.List", model.Interface, "", []string{"java.util.Collection"}, publicMods},
	{"java.util.AbstractCollection", model.Class, "java.lang.Object", []string{"java.util.Collection"}, []string{ClassIsPublic, ClassIsAbstract}},
	{"java.util.AbstractList", model.Class, "java.util.AbstractCollection", []string{"java.util.List"}, []string{ClassIsPublic, ClassIsAbstract}},
	{"java.util.ArrayList", model.Class, "java.util.AbstractList", []string{"java.util.List", "java.io.Serializable"}, publicMods},
	{"java.util.LinkedList", model.Class, "java.util.AbstractList", []string{"java.util.List", "java.io.Serializable"}, publicMods},
	{"java.util.Set", model.Interface, "", []string{"java.util.Collection"}, publicMods},
	{"java.util.HashSet", model.Class, "java.util.AbstractCollection", []string{"java.util.Set", "java.io.Serializable"}, publicMods},
	{"java.util.TreeSet", model.Class, "java.util.AbstractCollection", []string{"java.util.Set", "java.io.Serializable"}, publicMods},
	{"java.util.Map", model.Interface, "", nil, publicMods},
	{"java.util.Map$Entry", model.Interface, "", nil, publicStaticMods},
	{"java.util.AbstractMap", model.Class, "java.lang.Object", []string{"java.util.Map"}, []string{ClassIsPublic, ClassIsAbstract}},
	{"java.util.AbstractMap$SimpleEntry", model.Class, "java.lang.Object", []string{"java.util.Map$Entry", "java.io.Serializable"}, publicStaticMods},
	{"java.util.AbstractMap$SimpleImmutableEntry", model.Class, "java.lang.Object", []string{"java.util.Map$Entry", "java.io.Serializable"}, publicStaticMods},
	{"java.util.HashMap", model.Class, "java.util.AbstractMap", []string{"java.util.Map", "java.io.Serializable"}, publicMods},
	{"java.util.TreeMap", model.Class, "java.util.AbstractMap", []string{"java.util.Map", "java.io.Serializable"}, publicMods},
	{"java.util.LinkedHashMap", model.Class, "java.util.HashMap", []string{"java.util.Map"}, publicMods},
	{"java.util.Iterator", model.Interface, "", nil, publicMods},
	{"java.util.Optional", model.Class, "java.lang.Object", nil, []string{ClassIsPublic, ClassIsFinal}},
	{"java.util.Arrays", model.Class, "java.lang.Object", nil, publicMods},
	{"java.util.Collections", model.Class, "java.lang.Object", nil, publicMods},
	{"java.util.UUID", model.Class, "java.lang.Object", []string{"java.io.Serializable", "java.lang.Comparable"}, []string{ClassIsPublic, ClassIsFinal}},
	{"java.util.Date", model.Class, "java.lang.Object", []string{"java.io.Serializable", "java.lang.Comparable"}, publicMods},
	{"java.util.Objects", model.Class, "java.lang.Object", nil, []string{ClassIsPublic, ClassIsFinal}},
	{"java.util.Scanner", model.Class, "java.lang.Object", []string{"java.util.Iterator", "java.io.Closeable"}, []string{ClassIsPublic, ClassIsFinal}},
	{"java.util.Properties", model.Class, "java.lang.Object", []string{"java.util.Map"}, publicMods},
	{"java.util.Locale", model.Class, "java.lang.Object", []string{"java.io.Serializable"}, []string{ClassIsPublic, ClassIsFinal}},
	{"java.util.Locale$Category", model.Enum, "java.lang.Enum", nil, publicStaticMods},
	{"java.util.Locale$Builder", model.Class, "java.lang.Object", nil, []string{ClassIsPublic, ClassIsStatic, ClassIsFinal}},

	// === java.util.stream & function ===
	{"java.util.stream.Stream", model.Interface, "", nil, publicMods},
	{"java.util.stream.Stream$Builder", model.Interface, "", nil, publicStaticMods},
	{"java.util.stream.Collectors", model.Class, "java.lang.Object", nil, []string{ClassIsPublic, ClassIsFinal}},
	{"java.util.function.Function", model.Interface, "", nil, publicMods},
	{"java.util.function.BiFunction", model.Interface, "", nil, publicMods},
	{"java.util.function.Consumer", model.Interface, "", nil, publicMods},
	{"java.util.function.Predicate", model.Interface, "", nil, publicMods},
	{"java.util.function.Supplier", model.Interface, "", nil, publicMods},

	// === java.time ===
	{"java.time.LocalDate", model.Class, "java.lang.Object", []string{"java.io.Serializable"}, []string{ClassIsPublic, ClassIsFinal}},
	{"java.time.LocalTime", model.Class, "java.lang.Object", []string{"java.io.Serializable"}, []string{ClassIsPublic, ClassIsFinal}},
	{"java.time.LocalDateTime", model.Class, "java.lang.Object", []string{"java.io.Serializable"}, []string{ClassIsPublic, ClassIsFinal}},
	{"java.time.ZonedDateTime", model.Class, "java.lang.Object", []string{"java.io.Serializable"}, []string{ClassIsPublic, ClassIsFinal}},
	{"java.time.Duration", model.Class, "java.lang.Object", []string{"java.io.Serializable"}, []string{ClassIsPublic, ClassIsFinal}},
	{"java.time.Instant", model.Class, "java.lang.Object", []string{"java.io.Serializable"}, []string{ClassIsPublic, ClassIsFinal}},

	// === java.io & java.nio ===
	{"java.io.Serializable", model.Interface, "", nil, publicMods},
	{"java.io.Closeable", model.Interface, "", []string{"java.lang.AutoCloseable"}, publicMods},
	{"java.io.InputStream", model.Class, "java.lang.Object", []string{"java.io.Closeable"}, []string{ClassIsPublic, ClassIsAbstract}},
	{"java.io.OutputStream", model.Class, "java.lang.Object", []string{"java.io.Closeable"}, []string{ClassIsPublic, ClassIsAbstract}},
	{"java.io.File", model.Class, "java.lang.Object", []string{"java.io.Serializable", "java.lang.Comparable"}, publicMods},
	{"java.io.IOException", model.Class, "java.lang.Exception", nil, publicMods},
	{"java.nio.file.Path", model.Interface, "", []string{"java.lang.Comparable", "java.lang.Iterable"}, publicMods},
	{"java.nio.file.Paths", model.Class, "java.lang.Object", nil, []string{ClassIsPublic, ClassIsFinal}},
	{"java.nio.file.Files", model.Class, "java.lang.Object", nil, []string{ClassIsPublic, ClassIsFinal}},

	// === java.util.concurrent ===
	{"java.util.concurrent.Executor", model.Interface, "", nil, publicMods},
	{"java.util.concurrent.ExecutorService", model.Interface, "", []string{"java.util.concurrent.Executor"}, publicMods},
	{"java.util.concurrent.Executors", model.Class, "java.lang.Object", nil, publicMods},
	{"java.util.concurrent.Future", model.Interface, "", nil, publicMods},
	{"java.util.concurrent.CompletableFuture", model.Class, "java.lang.Object", []string{"java.util.concurrent.Future"}, publicMods},
	{"java.util.concurrent.ConcurrentHashMap", model.Class, "java.util.AbstractMap", []string{"java.util.Map", "java.io.Serializable"}, publicMods},
	{"java.util.concurrent.TimeUnit", model.Enum, "java.lang.Enum", nil, publicMods},
}

// PlatformClasses 返回平台类型表的 ClassInfo 副本；内部类自动挂到外部类的 DeclaredTypes 上
func PlatformClasses() []*model.ClassInfo {
	classes := make([]*model.ClassInfo, 0, len(platformTable))
	byName := make(map[string]*model.ClassInfo, len(platformTable))
	for _, pc := range platformTable {
		info := &model.ClassInfo{
			BinaryName:     pc.BinaryName,
			Kind:           pc.Kind,
			Modifiers:      append([]string(nil), pc.Modifiers...),
			SuperClass:     pc.Super,
			Interfaces:     append([]string(nil), pc.Interfaces...),
			ArtifactSource: "jrt:/java.base",
		}
		classes = append(classes, info)
		byName[info.BinaryName] = info
	}
	for _, info := range classes {
		if !info.IsNested() {
			continue
		}
		outer := info.BinaryName[:strings.LastIndex(info.BinaryName, model.NestedSeparator)]
		if parent, ok := byName[outer]; ok {
			parent.DeclaredTypes = append(parent.DeclaredTypes, info.BinaryName)
		}
	}
	return classes
}

// PlatformClassLoader 返回一个预装了平台类型的类加载器 (大小写敏感)
func PlatformClassLoader() *RuntimeClassLoader {
	loader := NewRuntimeClassLoader(false)
	_ = loader.DefineAll(PlatformClasses()...)
	return loader
}
