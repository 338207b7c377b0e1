// Copyright 2026 Timely Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/timely-toolkit/timelyfile/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix is the prefix for all environment variables.
	EnvPrefix = "TIMELYFILE"
	// EnvConfigPath overrides config file discovery.
	EnvConfigPath = "TIMELYFILE_CONFIG"
	// UserConfigDir is the user config directory, relative to $HOME.
	UserConfigDir = ".config/timelyfile"
	// UserConfigFile is the user config file name.
	UserConfigFile = "config.yaml"
)

// ProjectConfigFiles are the project-level config file names, in search order.
var ProjectConfigFiles = []string{
	".timelyfile.yaml",
	".timelyfile.yml",
	"timelyfile.yaml",
	"timelyfile.yml",
}

// Loader loads configuration from files and environment.
type Loader struct {
	path        string
	projectRoot string
	skipUser    bool
	getenv      func(string) string
}

// NewLoader creates a new config loader.
func NewLoader() *Loader {
	return &Loader{getenv: os.Getenv}
}

// WithPath loads from an explicit file instead of searching.
func (l *Loader) WithPath(path string) *Loader {
	l.path = path
	return l
}

// WithProjectRoot sets the directory the search starts from.
func (l *Loader) WithProjectRoot(root string) *Loader {
	l.projectRoot = root
	return l
}

// SkipUser skips the user config in $HOME.
func (l *Loader) SkipUser() *Loader {
	l.skipUser = true
	return l
}

// WithEnv replaces the environment lookup.
func (l *Loader) WithEnv(getenv func(string) string) *Loader {
	l.getenv = getenv
	return l
}

// Load loads configuration with full precedence order:
// 1. Defaults
// 2. Config file (explicit, $TIMELYFILE_CONFIG, project search, user)
// 3. Environment Variables (TIMELYFILE_*)
// The result is validated.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	path := l.path
	if path == "" {
		path = l.getenv(EnvConfigPath)
	}
	if path == "" {
		path = l.discover()
	}

	if path != "" {
		fileCfg, err := l.LoadFromPath(path)
		if err != nil {
			return nil, err
		}
		mergeConfig(cfg, fileCfg)
	}

	if err := l.applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := NewValidator().Validate(cfg); err != nil {
		return nil, errors.ConfigError("config validation failed", err)
	}
	return cfg, nil
}

// LoadFromPath parses a single config file without defaults or validation.
func (l *Loader) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to read config file: %s", path), err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to parse config file: %s", path), err).
			WithContext("path", path)
	}
	return &cfg, nil
}

// discover returns the first config file found, or "".
func (l *Loader) discover() string {
	root := l.projectRoot
	if root == "" {
		root = "."
	}
	if path, ok := findInParents(root); ok {
		return path
	}

	if !l.skipUser {
		if userPath := GetDefaultConfigPath(); userPath != "" {
			if _, err := os.Stat(userPath); err == nil {
				return userPath
			}
		}
	}
	return ""
}

// findInParents searches startDir and its parents for a project config file.
func findInParents(startDir string) (string, bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}

	for {
		for _, name := range ProjectConfigFiles {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// applyEnvOverrides applies environment variable overrides.
// Format: TIMELYFILE_SECTION__KEY=value
func (l *Loader) applyEnvOverrides(cfg *Config) error {
	if v := l.getenv("TIMELYFILE_GLOBAL__LOG_LEVEL"); v != "" {
		cfg.Global.LogLevel = v
	}
	if v := l.getenv("TIMELYFILE_GLOBAL__LOG_FORMAT"); v != "" {
		cfg.Global.LogFormat = v
	}
	if v := l.getenv("TIMELYFILE_DEFAULTS__SIZE_HINT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.ConfigError("invalid TIMELYFILE_DEFAULTS__SIZE_HINT", err).
				WithContext("field", "defaults.size_hint")
		}
		cfg.Defaults.SizeHint = n
	}
	if v := l.getenv("TIMELYFILE_DEFAULTS__THRESHOLD"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.ConfigError("invalid TIMELYFILE_DEFAULTS__THRESHOLD", err).
				WithContext("field", "defaults.threshold")
		}
		cfg.Defaults.Threshold = d
	}
	return nil
}

// mergeConfig merges src into dst (src overrides dst).
func mergeConfig(dst, src *Config) {
	if src.Global.LogLevel != "" {
		dst.Global.LogLevel = src.Global.LogLevel
	}
	if src.Global.LogFormat != "" {
		dst.Global.LogFormat = src.Global.LogFormat
	}

	if src.Defaults.SizeHint != 0 {
		dst.Defaults.SizeHint = src.Defaults.SizeHint
	}
	if src.Defaults.Threshold != 0 {
		dst.Defaults.Threshold = src.Defaults.Threshold
	}

	if len(src.Files) > 0 {
		dst.Files = src.Files
	}
}

// GetEnvConfig returns all environment variables that start with TIMELYFILE_.
func GetEnvConfig() map[string]string {
	result := make(map[string]string)

	for _, env := range os.Environ() {
		if strings.HasPrefix(env, EnvPrefix+"_") {
			kv := strings.SplitN(env, "=", 2)
			if len(kv) == 2 {
				result[kv[0]] = kv[1]
			}
		}
	}

	return result
}
