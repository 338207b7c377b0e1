// Copyright 2026 Timely Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

//go:build !unix

package fdio

import (
	"os"

	terrors "github.com/timely-toolkit/timelyfile/pkg/errors"
)

// FD wraps an *os.File on platforms without raw unix descriptors.
type FD struct {
	*os.File
}

// Open opens path read-only.
func Open(path string) (*FD, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, terrors.IOError("open", path, err)
	}
	return &FD{File: f}, nil
}

// IsInterrupted is always false here; the runtime retries interrupted
// calls on these platforms.
func IsInterrupted(err error) bool {
	return false
}
