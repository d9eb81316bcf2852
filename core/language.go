package core

// Language 标识一种源码语言，各类插件 (Collector / SymbolResolver / NoiseFilter) 以它为键注册
type Language string

const (
	LangJava Language = "java"
)
