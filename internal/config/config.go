// Package config loads the rerview settings: where the save lives, how the
// statistics files are laid out inside it, the sampled level range and which
// renderer draws the probability charts.
package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Renderer names accepted by the renderer field.
const (
	RendererTerminal = "terminal"
	RendererText     = "text"
)

// Config is the full set of options. The zero value is not usable; start from
// Default or Load.
type Config struct {
	SaveDir          string       `yaml:"save_dir"`
	StatsFile        string       `yaml:"stats_file"`
	DataDir          string       `yaml:"data_dir"`
	DimensionsDir    string       `yaml:"dimensions_dir"`
	BasicWorlds      []BasicWorld `yaml:"basic_worlds"`
	MinLevel         int          `yaml:"min_level"`
	MaxLevel         int          `yaml:"max_level"`
	DefaultNamespace string       `yaml:"default_namespace"`
	Tags             Tags         `yaml:"tags"`
	Renderer         string       `yaml:"renderer"`
}

// BasicWorld is a world whose id is fixed rather than derived from its path.
// Dir is relative to the save directory.
type BasicWorld struct {
	ID  string `yaml:"id"`
	Dir string `yaml:"dir"`
}

// Tags names the NBT entries read from a statistics file.
type Tags struct {
	Data   string `yaml:"data"`
	Totals string `yaml:"totals"`
	Blocks string `yaml:"blocks"`
}

// Default returns the layout written by the worldgen statistics mod for a
// vanilla 1.18+ save.
func Default() Config {
	return Config{
		SaveDir:       ".",
		StatsFile:     "rer_worldgen.dat",
		DataDir:       "data",
		DimensionsDir: "dimensions",
		BasicWorlds: []BasicWorld{
			{ID: "minecraft:overworld", Dir: "."},
			{ID: "minecraft:the_nether", Dir: "DIM-1"},
			{ID: "minecraft:the_end", Dir: "DIM1"},
		},
		MinLevel:         -64,
		MaxLevel:         319,
		DefaultNamespace: "minecraft",
		Tags: Tags{
			Data:   "data",
			Totals: "total_counts_at_level",
			Blocks: "level_counts_for_block",
		},
		Renderer: RendererTerminal,
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(file string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(file) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", file, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", file, err)
	}
	return cfg, nil
}

// Normalize trims whitespace and fills blank fields from the defaults.
func (c *Config) Normalize() {
	d := Default()
	fill := func(v *string, def string) {
		*v = strings.TrimSpace(*v)
		if *v == "" {
			*v = def
		}
	}
	fill(&c.SaveDir, d.SaveDir)
	fill(&c.StatsFile, d.StatsFile)
	fill(&c.DataDir, d.DataDir)
	fill(&c.DimensionsDir, d.DimensionsDir)
	fill(&c.DefaultNamespace, d.DefaultNamespace)
	fill(&c.Tags.Data, d.Tags.Data)
	fill(&c.Tags.Totals, d.Tags.Totals)
	fill(&c.Tags.Blocks, d.Tags.Blocks)
	fill(&c.Renderer, d.Renderer)
	c.Renderer = strings.ToLower(c.Renderer)
	for i := range c.BasicWorlds {
		c.BasicWorlds[i].ID = strings.TrimSpace(c.BasicWorlds[i].ID)
		c.BasicWorlds[i].Dir = path.Clean(strings.TrimSpace(c.BasicWorlds[i].Dir))
	}
}

// Validate reports the first inconsistency in c.
func (c Config) Validate() error {
	if c.MinLevel > c.MaxLevel {
		return fmt.Errorf("min_level %d is above max_level %d", c.MinLevel, c.MaxLevel)
	}
	if strings.ContainsAny(c.StatsFile, `/\`) {
		return fmt.Errorf("stats_file %q must be a bare file name", c.StatsFile)
	}
	if strings.Contains(c.DefaultNamespace, ":") {
		return fmt.Errorf("default_namespace %q must not contain ':'", c.DefaultNamespace)
	}
	switch c.Renderer {
	case RendererTerminal, RendererText:
	default:
		return fmt.Errorf("unknown renderer %q", c.Renderer)
	}
	seen := make(map[string]bool, len(c.BasicWorlds))
	for _, w := range c.BasicWorlds {
		if w.ID == "" {
			return errors.New("basic_worlds: missing id")
		}
		if seen[w.ID] {
			return fmt.Errorf("basic_worlds: duplicate id %q", w.ID)
		}
		seen[w.ID] = true
	}
	return nil
}

// Levels is the number of sampled vertical levels.
func (c Config) Levels() int { return c.MaxLevel - c.MinLevel + 1 }
