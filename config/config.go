package config

import (
	"os"

	"github.com/CodMac/reflect-solver/classpath"
	"github.com/CodMac/reflect-solver/core"
	"github.com/CodMac/reflect-solver/x/java"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	SolverTypeReflection = "reflection"

	FormatJSONL   = "jsonl"
	FormatMermaid = "mermaid"

	// DefaultLevel 对应 core.LevelBalanced
	DefaultLevel = 1
)

// SolverConfig 描述解析链中的一个节点，链按列表顺序查询
type SolverConfig struct {
	Name            string `yaml:"name"`
	Type            string `yaml:"type"`
	JreOnly         bool   `yaml:"jreOnly"`
	Loader          string `yaml:"loader"`
	Path            string `yaml:"path,omitempty"`
	CaseInsensitive bool   `yaml:"caseInsensitive,omitempty"`
}

type ScanConfig struct {
	Lang   string `yaml:"lang"`
	Jobs   int    `yaml:"jobs"`
	Level  int    `yaml:"level"`
	Format string `yaml:"format"`
	OutDir string `yaml:"outDir"`
	Filter string `yaml:"filter,omitempty"`
}

type Config struct {
	Solvers []SolverConfig `yaml:"solvers"`
	Scan    ScanConfig     `yaml:"scan"`
}

// Default 只包含一个平台解析器 (jreOnly)
func Default() *Config {
	cfg := &Config{
		Solvers: []SolverConfig{
			{Name: "jre", Type: SolverTypeReflection, JreOnly: true, Loader: java.LoaderPlatform},
		},
		Scan: ScanConfig{Level: DefaultLevel},
	}
	cfg.applyDefaults()
	return cfg
}

// Load 读取 YAML 配置文件，补全默认值并校验
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Config, error) {
	cfg := &Config{Scan: ScanConfig{Level: DefaultLevel}}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if len(cfg.Solvers) == 0 {
		cfg.Solvers = Default().Solvers
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	for i := range c.Solvers {
		s := &c.Solvers[i]
		if s.Type == "" {
			s.Type = SolverTypeReflection
		}
		if s.Loader == "" {
			s.Loader = java.LoaderPlatform
		}
		if s.Name == "" {
			s.Name = s.Loader
		}
	}
	if c.Scan.Lang == "" {
		c.Scan.Lang = "java"
	}
	if c.Scan.Jobs <= 0 {
		c.Scan.Jobs = 4
	}
	if c.Scan.Format == "" {
		c.Scan.Format = FormatJSONL
	}
	if c.Scan.OutDir == "" {
		c.Scan.OutDir = "./output"
	}
}

// Validate 校验配置；loader 种类以 core 中的注册表为准
func (c *Config) Validate() error {
	names := make(map[string]struct{}, len(c.Solvers))
	for i, s := range c.Solvers {
		if s.Type != SolverTypeReflection {
			return errors.Errorf("solvers[%d] %q: unknown solver type %q", i, s.Name, s.Type)
		}
		if _, dup := names[s.Name]; dup {
			return errors.Errorf("solvers[%d]: duplicate solver name %q", i, s.Name)
		}
		names[s.Name] = struct{}{}
		if !core.HasLoaderFactory(s.Loader) {
			return errors.Errorf("solvers[%d] %q: unknown loader %q", i, s.Name, s.Loader)
		}
		switch s.Loader {
		case classpath.LoaderJSONL, classpath.LoaderBadger:
			if s.Path == "" {
				return errors.Errorf("solvers[%d] %q: loader %s requires a path", i, s.Name, s.Loader)
			}
		}
	}
	if c.Scan.Level < 0 || c.Scan.Level > 2 {
		return errors.Errorf("scan.level must be 0, 1 or 2, got %d", c.Scan.Level)
	}
	if c.Scan.Format != FormatJSONL && c.Scan.Format != FormatMermaid {
		return errors.Errorf("scan.format must be %s or %s, got %q", FormatJSONL, FormatMermaid, c.Scan.Format)
	}
	return nil
}
