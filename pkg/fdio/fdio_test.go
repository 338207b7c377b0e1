//go:build unix

package fdio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	terrors "github.com/timely-toolkit/timelyfile/pkg/errors"
	"golang.org/x/sys/unix"
)

// chunkedReader yields at most chunk bytes per call and returns EINTR on
// every interruptEvery-th call.
type chunkedReader struct {
	data           []byte
	chunk          int
	interruptEvery int
	calls          int
	rawEOF         bool
	failAfter      int
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	r.calls++
	if r.interruptEvery > 0 && r.calls%r.interruptEvery == 0 {
		return -1, unix.EINTR
	}
	if r.failAfter > 0 && r.calls > r.failAfter {
		return -1, unix.EIO
	}
	if len(r.data) == 0 {
		if r.rawEOF {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := min(r.chunk, len(p), len(r.data))
	copy(p, r.data[:n])
	r.data = r.data[n:]
	return n, nil
}

func TestReadExactlyChunkedWithInterrupts(t *testing.T) {
	payload := []byte("the quick brown fox jumps over the lazy dog")

	for _, n := range []int{0, 1, 7, 16, len(payload), len(payload) + 10} {
		for _, rawEOF := range []bool{false, true} {
			t.Run(fmt.Sprintf("n=%d/raw=%v", n, rawEOF), func(t *testing.T) {
				r := &chunkedReader{data: bytes.Clone(payload), chunk: 3, interruptEvery: 2, rawEOF: rawEOF}
				buf := make([]byte, n)

				got, err := ReadExactly(r, buf)
				require.NoError(t, err)

				want := min(n, len(payload))
				assert.Equal(t, want, got)
				assert.LessOrEqual(t, got, n)
				assert.Equal(t, payload[:want], buf[:got])
			})
		}
	}
}

func TestReadExactlyFailureDiscardsPrefix(t *testing.T) {
	r := &chunkedReader{data: []byte("0123456789"), chunk: 2, failAfter: 2}
	buf := make([]byte, 10)

	n, err := ReadExactly(r, buf)

	require.Error(t, err)
	assert.Equal(t, 0, n)
	assert.True(t, terrors.IsType(err, terrors.ErrIO))
	assert.True(t, errors.Is(err, unix.EIO))
}

// trickleWriter accepts one byte per call and interrupts every other call.
type trickleWriter struct {
	out   bytes.Buffer
	calls int
}

func (w *trickleWriter) Write(p []byte) (int, error) {
	w.calls++
	if w.calls%2 == 0 {
		return -1, unix.EINTR
	}
	if len(p) == 0 {
		return 0, nil
	}
	w.out.WriteByte(p[0])
	return 1, nil
}

func TestWriteExactlyOneBytePerCall(t *testing.T) {
	payload := []byte("hello\nworld")
	w := &trickleWriter{}

	require.NoError(t, WriteExactly(w, payload))
	assert.Equal(t, payload, w.out.Bytes())
	assert.Equal(t, 2*len(payload)-1, w.calls)
}

type stuckWriter struct{ err error }

func (w stuckWriter) Write(p []byte) (int, error) { return 0, w.err }

func TestWriteExactlyNonPositiveIsError(t *testing.T) {
	err := WriteExactly(stuckWriter{}, []byte("abc"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, io.ErrShortWrite))

	err = WriteExactly(stuckWriter{err: unix.ENOSPC}, []byte("abc"))
	require.Error(t, err)
	assert.True(t, terrors.IsType(err, terrors.ErrIO))
	assert.True(t, errors.Is(err, unix.ENOSPC))
}

func TestWriteExactlyEmpty(t *testing.T) {
	assert.NoError(t, WriteExactly(stuckWriter{err: unix.EIO}, nil))
}

func TestFDRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	payload := bytes.Repeat([]byte("sensor=42\n"), 50)
	require.NoError(t, os.WriteFile(path, payload, 0644))

	fd, err := Open(path)
	require.NoError(t, err)
	defer fd.Close()
	assert.Equal(t, path, fd.Name())

	buf := make([]byte, len(payload)+16)
	n, err := ReadExactly(fd, buf)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
	assert.Equal(t, payload, buf[:n])

	require.NoError(t, fd.Close())
	require.NoError(t, fd.Close())
}

func TestFDWriteThroughPipe(t *testing.T) {
	var p [2]int
	require.NoError(t, unix.Pipe(p[:]))
	rd := NewFD(p[0], "pipe-r")
	wr := NewFD(p[1], "pipe-w")
	defer rd.Close()

	require.NoError(t, WriteExactly(wr, []byte("ping")))
	require.NoError(t, wr.Close())

	buf := make([]byte, 16)
	n, err := ReadExactly(rd, buf)
	require.NoError(t, err)
	assert.Equal(t, "ping", string(buf[:n]))
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, terrors.IsType(err, terrors.ErrIO))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestIsInterrupted(t *testing.T) {
	assert.True(t, IsInterrupted(unix.EINTR))
	assert.True(t, IsInterrupted(fmt.Errorf("wrapped: %w", unix.EINTR)))
	assert.False(t, IsInterrupted(unix.EAGAIN))
	assert.False(t, IsInterrupted(nil))
}
