package config

import (
	"github.com/arthur-debert/modpick/pkg/paths"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the effective modpick configuration.
type Config struct {
	GameDir        string   `koanf:"game_dir" toml:"game_dir"`
	RulesFile      string   `koanf:"rules_file" toml:"rules_file"`
	ChoicesFile    string   `koanf:"choices_file" toml:"choices_file"`
	ExclusionsFile string   `koanf:"exclusions_file" toml:"exclusions_file"`
	Language       string   `koanf:"language" toml:"language"`
	LangDirs       []string `koanf:"lang_dirs" toml:"lang_dirs"`
	Output         Output   `koanf:"output" toml:"output"`
	Logging        Logging  `koanf:"logging" toml:"logging"`
}

// Output controls how results are printed.
type Output struct {
	Format  string `koanf:"format" toml:"format"`
	NoColor bool   `koanf:"no_color" toml:"no_color"`
}

// Logging holds logging settings
type Logging struct {
	Verbosity int `koanf:"verbosity" toml:"verbosity"`
}

// Resolved holds the configured files resolved against a game directory.
type Resolved struct {
	RulesFile      string
	ChoicesFile    string
	ExclusionsFile string
	LangDirs       []string
}

// Resolve resolves the configured files against p's game directory.
func (c *Config) Resolve(p paths.Paths) Resolved {
	r := Resolved{
		RulesFile:      p.Resolve(c.RulesFile),
		ChoicesFile:    p.Resolve(c.ChoicesFile),
		ExclusionsFile: p.Resolve(c.ExclusionsFile),
	}
	for _, dir := range c.LangDirs {
		r.LangDirs = append(r.LangDirs, p.Resolve(dir))
	}
	return r
}
