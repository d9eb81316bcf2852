package java

import (
	"github.com/CodMac/reflect-solver/core"
	"github.com/CodMac/reflect-solver/model"
)

type NoiseFilter struct {
	core.DefaultNoiseFilter
}

func NewJavaNoiseFilter(level core.FilterLevel) *NoiseFilter {
	return &NoiseFilter{
		DefaultNoiseFilter: core.DefaultNoiseFilter{Level: level},
	}
}

func (f *NoiseFilter) IsNoise(res model.Resolution) bool {
	if f.Level == core.LevelRaw {
		return false
	}

	// LevelPure: 只关心解析失败的引用
	if f.Level == core.LevelPure {
		return res.Solved
	}

	// LevelBalanced: 已解析的平台类型 (String, List...) 属于背景噪音
	return res.Solved && IsPlatformName(res.QualifiedName)
}

func (f *NoiseFilter) SetLevel(level core.FilterLevel) {
	f.Level = level
}
