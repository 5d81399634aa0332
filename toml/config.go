// Package toml loads and saves the diffcore config file.
package toml

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/diffcore"
)

// LoadConfig reads the config file at path on top of the defaults. A missing
// file yields the defaults. Unknown keys are an error.
func LoadConfig(path string) (diffcore.Config, error) {
	cfg := diffcore.DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return diffcore.DefaultConfig(), nil
	}
	if err != nil {
		return diffcore.Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return diffcore.Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return diffcore.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// WriteConfig encodes cfg as TOML.
func WriteConfig(w io.Writer, cfg diffcore.Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// SaveConfig writes cfg to path, creating or truncating it.
func SaveConfig(path string, cfg diffcore.Config) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := WriteConfig(f, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
