package core

import "github.com/CodMac/reflect-solver/model"

// FilterLevel 定义过滤的严苛程度
type FilterLevel int

const (
	LevelRaw      FilterLevel = iota // 不进行任何过滤，保留所有解析结果
	LevelBalanced                    // 过滤掉已解析的平台类型（如 java.lang.String）
	LevelPure                        // 只保留未解析的引用
)

// NoiseFilter 接口定义
type NoiseFilter interface {
	IsNoise(res model.Resolution) bool
	SetLevel(level FilterLevel)
}

var noiseFilterMap = make(map[Language]NoiseFilter)

// RegisterNoiseFilter 注册一个语言与其对应的 NoiseFilter
func RegisterNoiseFilter(lang Language, noiseFilter NoiseFilter) {
	noiseFilterMap[lang] = noiseFilter
}

// GetNoiseFilter 根据语言类型获取对应的 NoiseFilter 实例。
func GetNoiseFilter(lang Language) NoiseFilter {
	noiseFilter, ok := noiseFilterMap[lang]
	if !ok {
		// 如果没注册，返回一个默认不进行过滤的过滤器，防止程序奔溃
		return &DefaultNoiseFilter{}
	}

	return noiseFilter
}

// DefaultNoiseFilter 提供基础的等级管理，供各语言 Filter 嵌入
type DefaultNoiseFilter struct {
	Level FilterLevel
}

func (d *DefaultNoiseFilter) SetLevel(level FilterLevel) {
	d.Level = level
}

func (d *DefaultNoiseFilter) IsNoise(res model.Resolution) bool { return false }
