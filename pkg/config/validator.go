// Copyright 2026 Timely Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"fmt"
	"strings"
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// Validator validates configuration.
type Validator struct{}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates a configuration and reports every problem found.
func (v *Validator) Validate(cfg *Config) error {
	var errs ValidationErrors
	errs = append(errs, v.ValidateGlobal(&cfg.Global)...)
	errs = append(errs, v.ValidateDefaults(&cfg.Defaults)...)
	errs = append(errs, v.ValidateFiles(cfg)...)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateGlobal validates global configuration.
func (v *Validator) ValidateGlobal(cfg *GlobalConfig) ValidationErrors {
	var errs ValidationErrors
	if cfg.LogLevel != "" && !oneOf(cfg.LogLevel, validLogLevels) {
		errs = append(errs, &ValidationError{
			Field:   "global.log_level",
			Value:   cfg.LogLevel,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(validLogLevels, ", ")),
		})
	}
	if cfg.LogFormat != "" && !oneOf(cfg.LogFormat, validLogFormats) {
		errs = append(errs, &ValidationError{
			Field:   "global.log_format",
			Value:   cfg.LogFormat,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(validLogFormats, ", ")),
		})
	}
	return errs
}

// ValidateDefaults validates the per-file defaults.
func (v *Validator) ValidateDefaults(cfg *DefaultsConfig) ValidationErrors {
	var errs ValidationErrors
	if cfg.SizeHint <= 0 {
		errs = append(errs, &ValidationError{
			Field:   "defaults.size_hint",
			Value:   cfg.SizeHint,
			Message: "must be positive",
		})
	}
	if cfg.Threshold < 0 {
		errs = append(errs, &ValidationError{
			Field:   "defaults.threshold",
			Value:   cfg.Threshold,
			Message: "must be non-negative",
		})
	}
	return errs
}

// ValidateFiles validates file entries after defaults are applied.
func (v *Validator) ValidateFiles(cfg *Config) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]bool, len(cfg.Files))

	for i, f := range cfg.Resolved() {
		field := fmt.Sprintf("files[%d]", i)
		if f.Name == "" {
			errs = append(errs, &ValidationError{Field: field + ".name", Message: "is required"})
		} else if seen[f.Name] {
			errs = append(errs, &ValidationError{Field: field + ".name", Value: f.Name, Message: "must be unique"})
		}
		seen[f.Name] = true

		if f.Path == "" {
			errs = append(errs, &ValidationError{Field: field + ".path", Message: "is required"})
		}
		if f.SizeHint <= 0 {
			errs = append(errs, &ValidationError{Field: field + ".size_hint", Value: f.SizeHint, Message: "must be positive"})
		}
		if f.ThresholdValue() < 0 {
			errs = append(errs, &ValidationError{Field: field + ".threshold", Value: f.ThresholdValue(), Message: "must be non-negative"})
		}
	}
	return errs
}

func oneOf(value string, options []string) bool {
	for _, o := range options {
		if strings.EqualFold(value, o) {
			return true
		}
	}
	return false
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation error for %s: %s (got: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// ValidationErrors collects every validation failure in a config.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual errors to errors.As.
func (e ValidationErrors) Unwrap() []error {
	out := make([]error, len(e))
	for i, err := range e {
		out[i] = err
	}
	return out
}
