// Copyright 2026 Timely Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package slurp reads whole files into memory in fixed-size chunks.
//
// Every successful read leaves a NUL terminator immediately after the last
// data byte, so the buffer can be handed to text scanners that stop at NUL.
package slurp

import (
	"io"

	terrors "github.com/timely-toolkit/timelyfile/pkg/errors"
	"github.com/timely-toolkit/timelyfile/pkg/fdio"
	"github.com/timely-toolkit/timelyfile/pkg/observability"
)

// Opener opens a file for reading.
type Opener func(path string) (io.ReadCloser, error)

// Reader reads whole files.
type Reader struct {
	log  observability.Logger
	open Opener
}

// Option configures a Reader.
type Option func(*Reader)

// WithOpener replaces the default read-only descriptor opener.
func WithOpener(open Opener) Option {
	return func(r *Reader) {
		r.open = open
	}
}

// New creates a Reader that reports overflow warnings to log.
func New(log observability.Logger, opts ...Option) *Reader {
	if log == nil {
		log = observability.NewNop()
	}
	r := &Reader{
		log:  log,
		open: openFD,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func openFD(path string) (io.ReadCloser, error) {
	fd, err := fdio.Open(path)
	if err != nil {
		return nil, err
	}
	return fd, nil
}

// ReadAll reads the whole file into a newly allocated buffer that grows in
// steps of hint bytes. It returns the full allocation, whose length is a
// multiple of hint, and the number of data bytes. buf[n] is always 0.
func (r *Reader) ReadAll(path string, hint int) ([]byte, int, error) {
	if hint <= 0 {
		return nil, 0, terrors.ValidationError("size hint must be positive", nil).
			WithContext("hint", hint)
	}

	f, err := r.open(path)
	if err != nil {
		return nil, 0, asIOError("open", path, err)
	}
	defer f.Close()

	buf := make([]byte, hint)
	total := 0
	for {
		n, err := fdio.ReadExactly(f, buf[total:total+hint])
		if err != nil {
			return nil, 0, asIOError("read", path, err)
		}
		total += n
		if n < hint {
			break
		}
		// a full chunk means there may be more; extend by another hint
		buf = grow(buf, hint)
	}

	buf[total] = 0
	return buf, total, nil
}

// ReadInto reads the file into caller storage with a single chunk of hint
// bytes. len(buf) must be at least hint.
//
// When the chunk comes back full the file may not fit: the last byte is
// given up for the terminator, a warning is logged, and hint-1 is returned
// with overflow set. This is not an error.
func (r *Reader) ReadInto(path string, buf []byte, hint int) (n int, overflow bool, err error) {
	if hint <= 0 {
		return 0, false, terrors.ValidationError("size hint must be positive", nil).
			WithContext("hint", hint)
	}
	if len(buf) < hint {
		return 0, false, terrors.ValidationError("buffer smaller than size hint", nil).
			WithContext("hint", hint).
			WithContext("len", len(buf))
	}

	f, err := r.open(path)
	if err != nil {
		return 0, false, asIOError("open", path, err)
	}
	defer f.Close()

	n, err = fdio.ReadExactly(f, buf[:hint])
	if err != nil {
		return 0, false, asIOError("read", path, err)
	}

	if n == hint {
		n--
		overflow = true
		r.log.Warn("buffer overflow, content truncated",
			observability.String("path", path),
			observability.String("op", "read"),
			observability.Int("capacity", hint),
			observability.Err(terrors.OverflowError(path, hint)))
	}
	buf[n] = 0
	return n, overflow, nil
}

// grow extends buf by step bytes, preserving content.
func grow(buf []byte, step int) []byte {
	if cap(buf)-len(buf) >= step {
		return buf[:len(buf)+step]
	}
	next := make([]byte, len(buf)+step, 2*len(buf)+step)
	copy(next, buf)
	return next
}

func asIOError(op, path string, err error) error {
	if terrors.IsType(err, terrors.ErrIO) {
		return err
	}
	return terrors.IOError(op, path, err)
}
