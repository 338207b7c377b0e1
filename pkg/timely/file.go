// Copyright 2026 Timely Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package timely

import (
	"time"

	terrors "github.com/timely-toolkit/timelyfile/pkg/errors"
	"github.com/timely-toolkit/timelyfile/pkg/observability"
	"github.com/timely-toolkit/timelyfile/pkg/slurp"
)

// File keeps the content of one file in memory and re-reads it at most once
// per threshold. A File is not safe for concurrent use.
type File struct {
	path      string
	hint      int
	threshold time.Duration

	buf    []byte // len(buf) is the capacity; buf[length] == 0
	spare  []byte
	length int

	lastRefresh time.Time
	refreshed   bool

	reader *slurp.Reader
	log    observability.Logger
	clock  Clock
	stats  Stats
}

// Stats counts what a File has done since creation.
type Stats struct {
	Refreshes int // successful reads
	Failures  int // failed refresh attempts
	Skipped   int // calls that served cached content without reading
	Overflows int // reads truncated by a full buffer
}

// Option configures a File or Set.
type Option func(*options)

type options struct {
	log    observability.Logger
	clock  Clock
	reader *slurp.Reader
}

// WithLogger sets the logger for refresh failures and overflow warnings.
func WithLogger(log observability.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithReader replaces the whole-file reader.
func WithReader(r *slurp.Reader) Option {
	return func(o *options) {
		o.reader = r
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = observability.NewNop()
	}
	if o.clock == nil {
		o.clock = RealClock()
	}
	if o.reader == nil {
		o.reader = slurp.New(o.log)
	}
	return o
}

// New creates a File for path. hint is the initial buffer size and the
// growth step; threshold is the minimum time between refreshes. Nothing is
// read until the first Refresh.
func New(path string, hint int, threshold time.Duration, opts ...Option) (*File, error) {
	if path == "" {
		return nil, terrors.ValidationError("path is required", nil)
	}
	if hint <= 0 {
		return nil, terrors.ValidationError("size hint must be positive", nil).
			WithContext("path", path).
			WithContext("hint", hint)
	}
	if threshold < 0 {
		return nil, terrors.ValidationError("threshold must be non-negative", nil).
			WithContext("path", path).
			WithContext("threshold", threshold)
	}

	o := buildOptions(opts)
	return &File{
		path:      path,
		hint:      hint,
		threshold: threshold,
		reader:    o.reader,
		log:       o.log.With(observability.String("path", path)),
		clock:     o.clock,
	}, nil
}

// Refresh is RefreshAt with the current clock time.
func (f *File) Refresh() []byte {
	return f.RefreshAt(f.clock.Now())
}

// RefreshAt re-reads the file if more than the threshold has passed since
// the last successful read, then returns the cached content.
//
// It never fails. A failed read is logged and the previous content is
// returned unchanged, or nil if nothing has been read yet. The returned
// slice is only valid until the next refresh.
func (f *File) RefreshAt(now time.Time) []byte {
	if f.Due(now) {
		f.refresh(now)
	} else {
		f.stats.Skipped++
	}
	return f.Bytes()
}

// Due reports whether a refresh at now would read the file.
func (f *File) Due(now time.Time) bool {
	if !f.refreshed {
		return true
	}
	return now.Sub(f.lastRefresh) > f.threshold
}

func (f *File) refresh(now time.Time) {
	if f.buf == nil {
		f.first(now)
		return
	}

	capacity := len(f.buf)
	if len(f.spare) != capacity {
		f.spare = make([]byte, capacity)
	}

	// read into the spare so a failure leaves served content intact
	n, overflow, err := f.reader.ReadInto(f.path, f.spare, capacity)
	if err != nil {
		f.fail(err)
		return
	}
	if overflow {
		f.stats.Overflows++
	}

	f.buf, f.spare = f.spare, f.buf
	f.length = n
	f.lastRefresh = now
	f.stats.Refreshes++
}

// first performs the initial read into self-owned storage and sizes the
// buffer from it. Later reads reuse that size and never grow.
func (f *File) first(now time.Time) {
	buf, n, err := f.reader.ReadAll(f.path, f.hint)
	if err != nil {
		f.fail(err)
		return
	}

	capacity := f.hint
	if n > capacity {
		capacity = ((n / capacity) + 1) * capacity
	}
	// a file of exactly hint bytes keeps capacity at hint even though the
	// allocation grew; its terminator sits just past len(f.buf)
	f.buf = buf[:capacity]
	f.length = n
	f.lastRefresh = now
	f.refreshed = true
	f.stats.Refreshes++
}

func (f *File) fail(err error) {
	f.stats.Failures++
	f.log.Error("refresh failed, serving cached content",
		observability.String("op", "refresh"),
		observability.Int("cached_bytes", f.length),
		observability.Bool("retryable", terrors.IsRetryable(err)),
		observability.Err(err))
}

// Bytes returns the cached content without refreshing. It is nil until
// the first successful read.
func (f *File) Bytes() []byte {
	if f.buf == nil {
		return nil
	}
	return f.buf[:f.length]
}

// String returns the cached content as a string.
func (f *File) String() string {
	return string(f.Bytes())
}

// Terminated returns the cached content including its NUL terminator.
func (f *File) Terminated() []byte {
	if f.buf == nil {
		return nil
	}
	return f.buf[:f.length+1]
}

// Len returns the length of the cached content.
func (f *File) Len() int { return f.length }

// Cap returns the current buffer capacity.
func (f *File) Cap() int {
	if f.buf == nil {
		return f.hint
	}
	return len(f.buf)
}

// Path returns the file path.
func (f *File) Path() string { return f.path }

// Threshold returns the minimum interval between refreshes.
func (f *File) Threshold() time.Duration { return f.threshold }

// LastRefresh returns the time of the last successful read. ok is false
// if the file has never been read.
func (f *File) LastRefresh() (t time.Time, ok bool) {
	return f.lastRefresh, f.refreshed
}

// Stats returns a snapshot of the refresh counters.
func (f *File) Stats() Stats { return f.stats }

// Close releases the buffers. The File reads afresh if refreshed again.
func (f *File) Close() {
	f.buf = nil
	f.spare = nil
	f.length = 0
	f.refreshed = false
	f.lastRefresh = time.Time{}
}
