// Copyright 2026 Timely Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package config provides configuration management for timelyfile.
//
// Configuration Loading Order (later overrides earlier):
// 1. Defaults (hardcoded)
// 2. Config file: explicit path, $TIMELYFILE_CONFIG, or the first of
//    ./.timelyfile.yaml, ./timelyfile.yaml (searching parent directories),
//    $HOME/.config/timelyfile/config.yaml
// 3. Environment Variables: TIMELYFILE_*
package config

import (
	"time"
)

// Config represents the complete application configuration.
type Config struct {
	Global   GlobalConfig   `yaml:"global"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Files    []FileConfig   `yaml:"files"`
}

// GlobalConfig contains global application settings.
type GlobalConfig struct {
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text, json
}

// DefaultsConfig holds values applied to files that leave them unset.
type DefaultsConfig struct {
	SizeHint  int           `yaml:"size_hint"`
	Threshold time.Duration `yaml:"threshold"`
}

// FileConfig describes one cached file. Threshold is a pointer because a
// zero threshold is a valid setting distinct from "use the default".
type FileConfig struct {
	Name      string         `yaml:"name"`
	Path      string         `yaml:"path"`
	SizeHint  int            `yaml:"size_hint,omitempty"`
	Threshold *time.Duration `yaml:"threshold,omitempty"`
}

// Every returns d as a threshold setting.
func Every(d time.Duration) *time.Duration {
	return &d
}

// ThresholdValue returns the threshold, or 0 when unset.
func (f FileConfig) ThresholdValue() time.Duration {
	if f.Threshold == nil {
		return 0
	}
	return *f.Threshold
}

// File returns the named file entry.
func (c *Config) File(name string) (FileConfig, bool) {
	for _, f := range c.Files {
		if f.Name == name {
			return f, true
		}
	}
	return FileConfig{}, false
}

// Resolved returns the file entries with defaults filled in.
func (c *Config) Resolved() []FileConfig {
	out := make([]FileConfig, len(c.Files))
	for i, f := range c.Files {
		out[i] = c.resolve(f)
	}
	return out
}

func (c *Config) resolve(f FileConfig) FileConfig {
	if f.SizeHint == 0 {
		f.SizeHint = c.Defaults.SizeHint
	}
	if f.Threshold == nil {
		f.Threshold = Every(c.Defaults.Threshold)
	}
	return f
}
