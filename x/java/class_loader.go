package java

import (
	"fmt"
	"strings"
	"sync"

	"github.com/CodMac/reflect-solver/core"
	"github.com/CodMac/reflect-solver/model"
)

// RuntimeClassLoader 是内存中的类加载器，按二进制名保存已定义的类，可并发使用。
//
// caseInsensitive 模拟大小写不敏感的文件系统：请求名与已定义类只有大小写不同时，
// 返回 LoadLinkageMismatch (对应 JVM 的 "wrong name" NoClassDefFoundError)。
type RuntimeClassLoader struct {
	mu              sync.RWMutex
	classes         map[string]*model.ClassInfo
	folded          map[string]string // 小写二进制名 -> 二进制名
	caseInsensitive bool
	closed          bool
}

func NewRuntimeClassLoader(caseInsensitive bool) *RuntimeClassLoader {
	return &RuntimeClassLoader{
		classes:         make(map[string]*model.ClassInfo),
		folded:          make(map[string]string),
		caseInsensitive: caseInsensitive,
	}
}

// Define 定义一个类，同名定义会覆盖旧值
func (l *RuntimeClassLoader) Define(class *model.ClassInfo) error {
	if class == nil || class.BinaryName == "" {
		return fmt.Errorf("class info without binary name")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.classes[class.BinaryName] = class
	l.folded[strings.ToLower(class.BinaryName)] = class.BinaryName
	return nil
}

func (l *RuntimeClassLoader) DefineAll(classes ...*model.ClassInfo) error {
	for _, c := range classes {
		if err := l.Define(c); err != nil {
			return err
		}
	}
	return nil
}

func (l *RuntimeClassLoader) Load(name string) core.LoadResult {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return core.Unavailable("class loader closed")
	}
	if class, ok := l.classes[name]; ok {
		return core.Loaded(class)
	}
	if l.caseInsensitive {
		if actual, ok := l.folded[strings.ToLower(name)]; ok && actual != name {
			return core.LinkageMismatch(internalName(name), internalName(actual))
		}
	}
	return core.NotFound(name)
}

func (l *RuntimeClassLoader) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.classes)
}

// Close 之后所有 Load 返回 LoadUnavailable
func (l *RuntimeClassLoader) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}

// internalName 转换为 JVM 内部形式 (java.util.Map$Entry -> java/util/Map$Entry)
func internalName(binaryName string) string {
	return strings.ReplaceAll(binaryName, ".", "/")
}
