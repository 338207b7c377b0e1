// Copyright 2026 Timely Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package timely

import (
	"context"
	"sync"
)

// RefreshConcurrent refreshes every due File with at most workers reads in
// flight. Each File is touched by one goroutine only, so this is safe even
// though a File is not; the Set itself must not be used concurrently.
//
// Files not started before ctx is cancelled are left out of the result.
// Content slices alias each File's buffer as with Refresh.
func (s *Set) RefreshConcurrent(ctx context.Context, workers int) (map[string][]byte, error) {
	if workers <= 0 {
		workers = 1
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out = make(map[string][]byte, len(s.files))
		sem = make(chan struct{}, workers)
	)

	for _, name := range s.order {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return out, err
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return out, ctx.Err()
		}

		wg.Add(1)
		go func(name string, f *File) {
			defer wg.Done()
			defer func() { <-sem }()

			content := f.Refresh()
			mu.Lock()
			out[name] = content
			mu.Unlock()
		}(name, s.files[name])
	}

	wg.Wait()
	return out, nil
}
