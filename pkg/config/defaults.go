// Copyright 2026 Timely Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultSizeHint is the initial buffer size for a cached file.
	DefaultSizeHint = 4096
	// DefaultThreshold is the minimum interval between refreshes.
	DefaultThreshold = time.Second
)

// DefaultConfig returns the default configuration.
// These values are used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		Global:   DefaultGlobalConfig(),
		Defaults: DefaultDefaultsConfig(),
	}
}

// DefaultGlobalConfig returns default global configuration.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// DefaultDefaultsConfig returns the default per-file settings.
func DefaultDefaultsConfig() DefaultsConfig {
	return DefaultsConfig{
		SizeHint:  DefaultSizeHint,
		Threshold: DefaultThreshold,
	}
}

// GetDefaultConfigPath returns the default user config file path, or ""
// if the home directory is unknown.
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, UserConfigDir, UserConfigFile)
}
