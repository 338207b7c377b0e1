package slurp

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	terrors "github.com/timely-toolkit/timelyfile/pkg/errors"
	"github.com/timely-toolkit/timelyfile/pkg/observability"
)

type logEntry struct {
	level  string
	msg    string
	fields map[string]any
}

// recorder captures log calls for assertions.
type recorder struct {
	entries *[]logEntry
}

func newRecorder() recorder {
	return recorder{entries: &[]logEntry{}}
}

func (r recorder) add(level, msg string, fields []observability.Field) {
	m := make(map[string]any, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	*r.entries = append(*r.entries, logEntry{level: level, msg: msg, fields: m})
}

func (r recorder) Debug(msg string, f ...observability.Field) { r.add("debug", msg, f) }
func (r recorder) Info(msg string, f ...observability.Field)  { r.add("info", msg, f) }
func (r recorder) Warn(msg string, f ...observability.Field)  { r.add("warn", msg, f) }
func (r recorder) Error(msg string, f ...observability.Field) { r.add("error", msg, f) }
func (r recorder) With(...observability.Field) observability.Logger {
	return r
}

func writeFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "content")
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestReadAllSmallerThanHint(t *testing.T) {
	path := writeFile(t, []byte("hello\nworld"))

	buf, n, err := New(nil).ReadAll(path, 64)

	require.NoError(t, err)
	assert.Equal(t, 11, n)
	assert.Len(t, buf, 64)
	assert.Equal(t, "hello\nworld", string(buf[:n]))
	assert.Equal(t, byte(0), buf[n])
}

func TestReadAllGrowsOnExactMultiple(t *testing.T) {
	for _, size := range []int{16, 32, 48, 50} {
		content := bytes.Repeat([]byte{'x'}, size)
		for i := range content {
			content[i] = byte('a' + i%26)
		}
		path := writeFile(t, content)

		buf, n, err := New(nil).ReadAll(path, 16)

		require.NoError(t, err)
		assert.Equal(t, size, n)
		assert.Equal(t, content, buf[:n])
		assert.Equal(t, byte(0), buf[n])
		assert.Zero(t, len(buf)%16, "allocation must be a multiple of the hint")
		assert.Equal(t, (size/16+1)*16, len(buf))
	}
}

func TestReadAllEmptyFile(t *testing.T) {
	path := writeFile(t, nil)

	buf, n, err := New(nil).ReadAll(path, 8)

	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, byte(0), buf[0])
}

func TestReadAllMissingFile(t *testing.T) {
	_, _, err := New(nil).ReadAll(filepath.Join(t.TempDir(), "gone"), 8)

	require.Error(t, err)
	assert.True(t, terrors.IsType(err, terrors.ErrIO))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadAllInvalidHint(t *testing.T) {
	_, _, err := New(nil).ReadAll("whatever", 0)
	assert.True(t, terrors.IsType(err, terrors.ErrValidation))
}

func TestReadIntoFits(t *testing.T) {
	path := writeFile(t, []byte("bye\n"))
	log := newRecorder()
	buf := bytes.Repeat([]byte{0xff}, 32)

	n, overflow, err := New(log).ReadInto(path, buf, 32)

	require.NoError(t, err)
	assert.False(t, overflow)
	assert.Equal(t, 4, n)
	assert.Equal(t, "bye\n", string(buf[:n]))
	assert.Equal(t, byte(0), buf[n])
	assert.Empty(t, *log.entries)
}

func TestReadIntoOverflowTruncates(t *testing.T) {
	path := writeFile(t, []byte("0123456789abcdef"))
	log := newRecorder()
	buf := make([]byte, 8)

	n, overflow, err := New(log).ReadInto(path, buf, 8)

	require.NoError(t, err)
	assert.True(t, overflow)
	assert.Equal(t, 7, n)
	assert.Equal(t, "0123456", string(buf[:n]))
	assert.Equal(t, byte(0), buf[7])

	require.Len(t, *log.entries, 1)
	entry := (*log.entries)[0]
	assert.Equal(t, "warn", entry.level)
	assert.Equal(t, path, entry.fields["path"])
}

func TestReadIntoExactSizeSacrificesLastByte(t *testing.T) {
	path := writeFile(t, []byte("12345678"))
	buf := make([]byte, 8)

	n, overflow, err := New(nil).ReadInto(path, buf, 8)

	require.NoError(t, err)
	assert.True(t, overflow)
	assert.Equal(t, "1234567", string(buf[:n]))
}

func TestReadIntoValidation(t *testing.T) {
	r := New(nil)

	_, _, err := r.ReadInto("x", make([]byte, 4), 8)
	assert.True(t, terrors.IsType(err, terrors.ErrValidation))

	_, _, err = r.ReadInto("x", make([]byte, 4), -1)
	assert.True(t, terrors.IsType(err, terrors.ErrValidation))
}

// failingFile fails after handing out good bytes and records Close.
type failingFile struct {
	data   []byte
	closed bool
}

func (f *failingFile) Read(p []byte) (int, error) {
	if len(f.data) == 0 {
		return 0, errors.New("device went away")
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func (f *failingFile) Close() error {
	f.closed = true
	return nil
}

func TestReadFailureClosesDescriptor(t *testing.T) {
	f := &failingFile{data: []byte("partial")}
	r := New(nil, WithOpener(func(string) (io.ReadCloser, error) { return f, nil }))

	_, _, err := r.ReadAll("/dev/sensor", 64)

	require.Error(t, err)
	assert.True(t, terrors.IsType(err, terrors.ErrIO))
	assert.True(t, f.closed)

	f = &failingFile{data: []byte("partial")}
	_, _, err = r.ReadInto("/dev/sensor", make([]byte, 64), 64)
	require.Error(t, err)
	assert.True(t, f.closed)
}

func TestOpenerErrorIsIOError(t *testing.T) {
	r := New(nil, WithOpener(func(string) (io.ReadCloser, error) {
		return nil, os.ErrPermission
	}))

	_, _, err := r.ReadAll("/root/secret", 8)

	require.Error(t, err)
	assert.True(t, terrors.IsType(err, terrors.ErrIO))
	assert.True(t, errors.Is(err, os.ErrPermission))
}
