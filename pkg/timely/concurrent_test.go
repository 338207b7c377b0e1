package timely

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timely-toolkit/timelyfile/pkg/config"
)

func TestRefreshConcurrent(t *testing.T) {
	dir := t.TempDir()
	var entries []config.FileConfig
	for i := 0; i < 10; i++ {
		path := filepath.Join(dir, fmt.Sprintf("f%d", i))
		write(t, path, fmt.Sprintf("value %d\n", i))
		entries = append(entries, config.FileConfig{
			Name: fmt.Sprintf("f%d", i), Path: path, SizeHint: 8, Threshold: config.Every(time.Minute),
		})
	}
	entries = append(entries, config.FileConfig{
		Name: "gone", Path: filepath.Join(dir, "gone"), SizeHint: 8, Threshold: config.Every(time.Minute),
	})

	now := at(0)
	set, err := NewSet(entries, WithClock(ClockFunc(func() time.Time { return now })))
	require.NoError(t, err)
	defer set.Close()

	out, err := set.RefreshConcurrent(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, out, 11)
	for i := 0; i < 10; i++ {
		assert.Equal(t, fmt.Sprintf("value %d\n", i), string(out[fmt.Sprintf("f%d", i)]))
	}
	assert.Nil(t, out["gone"])

	stats := set.Stats()
	assert.Equal(t, 1, stats["f0"].Refreshes)
	assert.Equal(t, 1, stats["gone"].Failures)

	// within threshold every file is served from cache
	_, err = set.RefreshConcurrent(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, set.Stats()["f9"].Skipped)
}

func TestRefreshConcurrentCancelled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a")
	write(t, path, "a\n")

	set, err := NewSet([]config.FileConfig{
		{Name: "a", Path: path, SizeHint: 8},
		{Name: "b", Path: path, SizeHint: 8},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := set.RefreshConcurrent(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out)
	assert.Equal(t, 0, set.Stats()["a"].Refreshes)
}
