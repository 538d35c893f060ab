package mio

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenReadOnly(t *testing.T) {
	data := testPattern(0x4000 - 250)
	path := writeTestFile(t, "view.dat", data)

	r, err := OpenReadOnly(path, 0, WholeFile)
	require.NoError(t, err)
	defer r.Unmap()

	require.True(t, r.IsOpen())
	require.True(t, r.IsMapped())
	require.False(t, r.Empty())
	require.Equal(t, int64(len(data)), r.Len())
	require.Equal(t, data, r.Bytes())
	require.Equal(t, int64(0), r.Offset())
}

func TestOpenReadOnlyErrors(t *testing.T) {
	r, err := OpenReadOnly("", 0, WholeFile)
	require.ErrorIs(t, err, ErrEmptyPath)
	require.Nil(t, r)

	r, err = OpenReadOnly("garbage-that-hopefully-doesnt-exist", 0, WholeFile)
	require.Error(t, err)
	require.Nil(t, r)

	r, err = OpenReadOnlyHandle(InvalidHandle, 0, WholeFile)
	require.ErrorIs(t, err, ErrInvalidHandle)
	require.Nil(t, r)

	path := writeTestFile(t, "small.dat", testPattern(100))
	r, err = OpenReadOnly(path, 10000, 100)
	require.ErrorIs(t, err, ErrOutOfRange)
	require.Nil(t, r)
}

func TestOpenHandleViews(t *testing.T) {
	data := testPattern(2048)
	path := writeTestFile(t, "view.dat", data)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r, err := OpenReadOnlyHandle(Handle(f.Fd()), 100, 200)
	require.NoError(t, err)
	require.Equal(t, data[100:300], r.Bytes())
	r.Unmap()

	// The handle stays open and owned by us.
	_, err = f.Stat()
	require.NoError(t, err)
}

func TestMustOpen(t *testing.T) {
	data := testPattern(512)
	path := writeTestFile(t, "view.dat", data)

	r := MustOpenReadOnly(path, 0, WholeFile)
	require.Equal(t, data, r.Bytes())
	r.Unmap()

	require.Panics(t, func() {
		MustOpenReadOnly("", 0, WholeFile)
	})
	require.Panics(t, func() {
		MustOpenReadWrite("garbage-that-hopefully-doesnt-exist", 0, WholeFile)
	})
}

func TestReadWriteRoundTrip(t *testing.T) {
	const n = 8192
	path := writeTestFile(t, "rw.dat", make([]byte, n))
	pattern := testPattern(n)

	w, err := OpenReadWrite(path, 0, WholeFile)
	require.NoError(t, err)
	copy(w.Bytes(), pattern)
	require.NoError(t, w.Sync())
	w.Unmap()

	r, err := OpenReadOnly(path, 0, WholeFile)
	require.NoError(t, err)
	defer r.Unmap()
	require.Equal(t, pattern, r.Bytes())
}

func TestViewReaderWriterAt(t *testing.T) {
	data := testPattern(1024)
	path := writeTestFile(t, "rw.dat", data)

	w, err := OpenReadWrite(path, 0, WholeFile)
	require.NoError(t, err)
	defer w.Unmap()

	var _ io.ReaderAt = w
	var _ io.WriterAt = w

	buf := make([]byte, 10)
	n, err := w.ReadAt(buf, w.Len()-5)
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, 5, n)

	n, err = w.WriteAt([]byte("hello"), 0)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, []byte("hello"), w.Bytes()[:5])

	r, err := OpenReadOnly(path, 0, 100)
	require.NoError(t, err)
	defer r.Unmap()
	var _ io.ReaderAt = r
}

func TestViewSwap(t *testing.T) {
	data := testPattern(1024)
	path := writeTestFile(t, "view.dat", data)

	src, err := OpenReadOnly(path, 0, WholeFile)
	require.NoError(t, err)

	var dst ReadOnly
	dst.Swap(src)
	defer dst.Unmap()

	require.False(t, src.IsOpen())
	require.True(t, src.Empty())
	require.True(t, dst.IsOpen())
	require.Equal(t, data, dst.Bytes())

	src.Unmap() // moved-from view: safe no-op
}

func TestViewEqual(t *testing.T) {
	content := testPattern(300)
	pathA := writeTestFile(t, "a.dat", content)
	pathB := writeTestFile(t, "b.dat", content)

	a, err := OpenReadOnly(pathA, 0, WholeFile)
	require.NoError(t, err)
	defer a.Unmap()
	b, err := OpenReadOnly(pathB, 0, WholeFile)
	require.NoError(t, err)
	defer b.Unmap()

	require.True(t, a.Equal(b))
}

func TestViewRemapGrow(t *testing.T) {
	data := testPattern(4 * PageSize())
	path := writeTestFile(t, "rw.dat", data)

	w, err := OpenReadWrite(path, 0, int64(PageSize()))
	require.NoError(t, err)
	defer w.Unmap()

	require.NoError(t, w.Remap(int64(3*PageSize())))
	require.Equal(t, int64(3*PageSize()), w.Len())
	require.Equal(t, data[:3*PageSize()], w.Bytes())
}
