// Package buildcfg handles pyrite.toml build configuration.
//
// The build configuration is fixed once loaded: it selects codegen
// aggressiveness for the inline policy and is never consulted by
// object-model code at run time.
package buildcfg

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Profile selects codegen aggressiveness.
type Profile string

const (
	// ProfileDebug enables conservative codegen and stricter runtime
	// assertions.
	ProfileDebug Profile = "debug"

	// ProfileRelease enables aggressive optimization.
	ProfileRelease Profile = "release"
)

// Build is the build-time configuration read from pyrite.toml.
type Build struct {
	Profile Profile `toml:"profile"`

	// CrossUnit stands in for link-time plus profile-guided optimization
	// availability. When false, inlining candidates cannot cross
	// compilation-unit boundaries.
	CrossUnit bool `toml:"cross-unit-optimization"`

	// Dir is the directory containing the pyrite.toml file (set at load
	// time; empty for Default).
	Dir string `toml:"-"`
}

// File is the on-disk layout of pyrite.toml.
type File struct {
	Build Build `toml:"build"`
}

// Default returns the configuration used when no pyrite.toml exists:
// release profile with cross-unit optimization available.
func Default() Build {
	return Build{Profile: ProfileRelease, CrossUnit: true}
}

// Validate checks that the profile is a recognized option.
func (b Build) Validate() error {
	switch b.Profile {
	case ProfileDebug, ProfileRelease:
		return nil
	case "":
		return fmt.Errorf("buildcfg: profile not set")
	default:
		return fmt.Errorf("buildcfg: unknown profile %q (want debug or release)", b.Profile)
	}
}

// Load parses a pyrite.toml file from the given directory.
func Load(dir string) (Build, error) {
	path := filepath.Join(dir, "pyrite.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return Build{}, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return Build{}, fmt.Errorf("parse error in %s: %w", path, err)
	}

	b := f.Build
	if b.Profile == "" {
		b.Profile = ProfileRelease
	}
	if err := b.Validate(); err != nil {
		return Build{}, fmt.Errorf("%s: %w", path, err)
	}

	b.Dir, err = filepath.Abs(dir)
	if err != nil {
		return Build{}, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	return b, nil
}

// FindAndLoad walks up from startDir to find a pyrite.toml file, then
// loads and returns the configuration. Returns Default() if no file is
// found before the filesystem root.
func FindAndLoad(startDir string) (Build, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return Build{}, fmt.Errorf("cannot resolve path %s: %w", startDir, err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "pyrite.toml")); err == nil {
			return Load(dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}
