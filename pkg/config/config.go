// Package config loads fnr's layered configuration: embedded defaults,
// then an optional .fnr.toml / fnr.toml / .fnr.yaml in the base directory.
// Command-line flags are resolved on top by the CLI layer and always win.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	ktoml "github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/fnr/pkg/errors"
)

//go:embed default.toml
var defaultConfig []byte

// Settings are the configurable defaults for fnr's boolean mode flags.
type Settings struct {
	CaseSensitive    bool `koanf:"case-sensitive"`
	Hidden           bool `koanf:"hidden"`
	FollowSymlinks   bool `koanf:"follow-symlinks"`
	RespectGitignore bool `koanf:"respect-gitignore"`
	Recursive        bool `koanf:"recursive"`
	Interactive      bool `koanf:"interactive"`
	Color            bool `koanf:"color"`
}

// Defaults returns the built-in settings with no file layered on top.
func Defaults() (Settings, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, ktoml.Parser()); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to load built-in defaults")
	}
	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigParse, "failed to decode built-in defaults")
	}
	return s, nil
}

// Load returns the effective settings for a run rooted at baseDir. The
// first config file found wins; toml is tried before yaml.
func Load(baseDir string) (Settings, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, ktoml.Parser()); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to load built-in defaults")
	}

	candidates := []struct {
		name   string
		parser koanf.Parser
	}{
		{".fnr.toml", ktoml.Parser()},
		{"fnr.toml", ktoml.Parser()},
		{".fnr.yaml", kyaml.Parser()},
	}
	for _, c := range candidates {
		path := filepath.Join(baseDir, c.name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), c.parser); err != nil {
			return Settings{}, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path)
		}
		break
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}
	return s, nil
}

// rawBytesProvider feeds embedded bytes to koanf
type rawBytesProvider struct {
	bytes []byte
}

func (r *rawBytesProvider) ReadBytes() ([]byte, error) {
	return r.bytes, nil
}

func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, fmt.Errorf("rawbytes provider does not support Read")
}
