// Copyright 2026 Timely Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

//go:build unix

package fdio

import (
	"errors"

	terrors "github.com/timely-toolkit/timelyfile/pkg/errors"
	"golang.org/x/sys/unix"
)

// FD is a raw file descriptor. Read and Write pass straight through to the
// system calls, so interruption and end-of-stream surface exactly as the
// kernel reports them: EINTR as an error, EOF as (0, nil).
type FD struct {
	fd   int
	path string
}

// Open opens path read-only.
func Open(path string) (*FD, error) {
	for {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
		if err == nil {
			return &FD{fd: fd, path: path}, nil
		}
		if !IsInterrupted(err) {
			return nil, terrors.IOError("open", path, err)
		}
	}
}

// NewFD wraps an already open descriptor. The FD takes ownership of it.
func NewFD(fd int, name string) *FD {
	return &FD{fd: fd, path: name}
}

// Name returns the path the descriptor was opened with.
func (f *FD) Name() string { return f.path }

// Fd returns the underlying descriptor number.
func (f *FD) Fd() int { return f.fd }

func (f *FD) Read(p []byte) (int, error) {
	n, err := unix.Read(f.fd, p)
	if n < 0 {
		n = 0
	}
	return n, err
}

func (f *FD) Write(p []byte) (int, error) {
	n, err := unix.Write(f.fd, p)
	if n < 0 {
		n = 0
	}
	return n, err
}

// Close releases the descriptor. Closing twice is a no-op.
func (f *FD) Close() error {
	if f.fd < 0 {
		return nil
	}
	err := unix.Close(f.fd)
	f.fd = -1
	if err != nil {
		return terrors.IOError("close", f.path, err)
	}
	return nil
}

// IsInterrupted reports whether err is a signal interruption (EINTR).
func IsInterrupted(err error) bool {
	return errors.Is(err, unix.EINTR)
}
