// Copyright 2026 Timely Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package fdio provides read-exactly and write-exactly primitives over
// file descriptors that survive signal interruption and partial transfers.
package fdio

import (
	"errors"
	"io"

	terrors "github.com/timely-toolkit/timelyfile/pkg/errors"
)

// ReadExactly reads until buf is full or the source reaches end-of-stream.
//
// Interrupted reads are retried. A clean end-of-stream is reported as a
// short count, not an error. Any other failure returns 0 and an IO error;
// bytes read before the failure are not reported.
func ReadExactly(r io.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		nr, err := r.Read(buf[n:])
		if nr > 0 {
			n += nr
		}
		if err != nil {
			if IsInterrupted(err) {
				continue
			}
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, terrors.IOError("read", name(r), err)
		}
		// raw descriptors report end-of-stream as (0, nil)
		if nr <= 0 {
			break
		}
	}
	return n, nil
}

// WriteExactly writes all of buf, retrying interrupted and partial writes.
// It reports success only once every byte has been written.
func WriteExactly(w io.Writer, buf []byte) error {
	n := 0
	for n < len(buf) {
		nw, err := w.Write(buf[n:])
		if nw > 0 {
			n += nw
		}
		if err != nil {
			if IsInterrupted(err) {
				continue
			}
			return terrors.IOError("write", name(w), err)
		}
		if nw <= 0 {
			return terrors.IOError("write", name(w), io.ErrShortWrite)
		}
	}
	return nil
}

type named interface {
	Name() string
}

func name(v any) string {
	if n, ok := v.(named); ok {
		return n.Name()
	}
	return "descriptor"
}
