// Package config loads the treesvg configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/treesvg/config.toml
// (~/.config/treesvg/config.toml when XDG_CONFIG_HOME is unset):
//
//	[canvas]
//	width = 600
//	height = 400
//	layout = "weighted"
//
//	[render]
//	gradient = true
//	border = false
//	formats = ["svg", "json"]
//
//	[random]
//	max_depth = 4
//	children = [0, 2, 3]
//	colors = ["red", "#00f"]
//
//	[cache]
//	enabled = true
//	ttl = "72h"
//
//	[server]
//	addr = ":8080"
//	redis_addr = "localhost:6379"
//
// A missing file yields [Default]. Keys left out of the file keep their
// default values.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/treesvg/pkg/cache"
	"github.com/matzehuels/treesvg/pkg/errors"
	"github.com/matzehuels/treesvg/pkg/layout"
	"github.com/matzehuels/treesvg/pkg/style"
	"github.com/matzehuels/treesvg/pkg/tree"
)

const appName = "treesvg"

// Config is the decoded configuration file.
type Config struct {
	Canvas Canvas `toml:"canvas"`
	Render Render `toml:"render"`
	Random Random `toml:"random"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Canvas holds layout defaults.
type Canvas struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Layout string  `toml:"layout"`
}

// Render holds output defaults.
type Render struct {
	Gradient bool     `toml:"gradient"`
	Border   bool     `toml:"border"`
	Angled   bool     `toml:"angled"`
	Formats  []string `toml:"formats"`
}

// Random holds defaults for generated trees.
type Random struct {
	MaxDepth int       `toml:"max_depth"`
	Children []int     `toml:"children"`
	Sizes    []float64 `toml:"sizes"`
	Colors   []string  `toml:"colors"`
	Seed     uint64    `toml:"seed"`
}

// Cache configures the CLI artifact cache.
type Cache struct {
	Enabled bool     `toml:"enabled"`
	TTL     Duration `toml:"ttl"`
}

// Server configures the HTTP service.
type Server struct {
	Addr      string `toml:"addr"`
	RedisAddr string `toml:"redis_addr"`
}

// Duration is a time.Duration written as a Go duration string ("72h").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	r := tree.DefaultRandomOptions()
	return Config{
		Canvas: Canvas{Width: 400, Height: 400, Layout: "equal"},
		Render: Render{Gradient: true, Border: true, Formats: []string{"svg"}},
		Random: Random{MaxDepth: r.MaxDepth, Children: r.Children, Sizes: r.Sizes},
		Cache:  Cache{Enabled: true, TTL: Duration{cache.TTLArtifact}},
		Server: Server{Addr: ":8080"},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "locate config directory")
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at path on top of [Default]. An empty path
// means [Path]. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Default(), errors.New(errors.ErrCodeInvalidInput, "unknown config key %q in %s", undecoded[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks the values that would otherwise fail late, at render time.
func (c Config) Validate() error {
	if err := layout.ValidateCanvas(c.Canvas.Width, c.Canvas.Height); err != nil {
		return err
	}
	if _, err := layout.ByName(c.Canvas.Layout); err != nil {
		return err
	}
	for _, sz := range c.Random.Sizes {
		if _, err := style.New("black", sz); err != nil {
			return err
		}
	}
	for _, col := range c.Random.Colors {
		if _, err := style.ParseColor(col); err != nil {
			return err
		}
	}
	for _, n := range c.Random.Children {
		if n < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "negative child count %d", n)
		}
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "negative cache ttl %s", c.Cache.TTL)
	}
	return nil
}

// RandomOptions converts the [random] section for tree generation.
func (c Config) RandomOptions() tree.RandomOptions {
	return tree.RandomOptions{
		MaxDepth: c.Random.MaxDepth,
		Children: c.Random.Children,
		Sizes:    c.Random.Sizes,
		Colors:   c.Random.Colors,
	}
}
