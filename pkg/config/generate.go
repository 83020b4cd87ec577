package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/fnr/pkg/errors"
)

const generatedHeader = `# fnr configuration. Values here become the defaults for the matching
# command-line flags; flags given on the command line still win.

`

// generated mirrors Settings with toml tags for marshalling.
type generated struct {
	CaseSensitive    bool `toml:"case-sensitive"`
	Hidden           bool `toml:"hidden"`
	FollowSymlinks   bool `toml:"follow-symlinks"`
	RespectGitignore bool `toml:"respect-gitignore"`
	Recursive        bool `toml:"recursive"`
	Interactive      bool `toml:"interactive"`
	Color            bool `toml:"color"`
}

// GenerateDefault renders a starter .fnr.toml with the built-in defaults.
func GenerateDefault() ([]byte, error) {
	defaults, err := Defaults()
	if err != nil {
		return nil, err
	}
	out, err := toml.Marshal(generated(defaults))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to render default config")
	}
	return append([]byte(generatedHeader), out...), nil
}

// WriteDefault writes the starter config to path, refusing to overwrite an
// existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.Newf(errors.ErrConfigLoad, "%s already exists, use --force to overwrite", path)
		}
	}
	content, err := GenerateDefault()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "cannot write %s", path)
	}
	return nil
}
