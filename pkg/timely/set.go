// Copyright 2026 Timely Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package timely

import (
	"fmt"

	"github.com/timely-toolkit/timelyfile/pkg/config"
	terrors "github.com/timely-toolkit/timelyfile/pkg/errors"
)

// Set holds a group of named Files that share a logger, clock and reader.
// Like File, a Set is not safe for concurrent use.
type Set struct {
	files map[string]*File
	order []string
}

// NewSet builds one File per entry. Entries must already have their
// defaults resolved (see config.Config.Resolved).
func NewSet(entries []config.FileConfig, opts ...Option) (*Set, error) {
	o := buildOptions(opts)
	shared := []Option{WithLogger(o.log), WithClock(o.clock), WithReader(o.reader)}

	s := &Set{files: make(map[string]*File, len(entries))}
	for _, e := range entries {
		if _, dup := s.files[e.Name]; dup {
			return nil, terrors.ValidationError(fmt.Sprintf("duplicate file name %q", e.Name), nil)
		}
		f, err := New(e.Path, e.SizeHint, e.ThresholdValue(), shared...)
		if err != nil {
			return nil, err
		}
		s.files[e.Name] = f
		s.order = append(s.order, e.Name)
	}
	return s, nil
}

// Get returns the named File.
func (s *Set) Get(name string) (*File, bool) {
	f, ok := s.files[name]
	return f, ok
}

// Refresh refreshes the named File if due and returns its content.
// ok is false if no File has that name.
func (s *Set) Refresh(name string) (content []byte, ok bool) {
	f, ok := s.files[name]
	if !ok {
		return nil, false
	}
	return f.Refresh(), true
}

// RefreshAll refreshes every File that is due, in configuration order.
func (s *Set) RefreshAll() map[string][]byte {
	out := make(map[string][]byte, len(s.files))
	for _, name := range s.order {
		out[name] = s.files[name].Refresh()
	}
	return out
}

// Names returns the File names in configuration order.
func (s *Set) Names() []string {
	return append([]string(nil), s.order...)
}

// Stats returns the counters of every File keyed by name.
func (s *Set) Stats() map[string]Stats {
	out := make(map[string]Stats, len(s.files))
	for name, f := range s.files {
		out[name] = f.Stats()
	}
	return out
}

// Len returns the number of Files.
func (s *Set) Len() int { return len(s.files) }

// Close releases every File's buffers.
func (s *Set) Close() {
	for _, f := range s.files {
		f.Close()
	}
}
