package mio

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShareConsumesExclusive(t *testing.T) {
	data := testPattern(1024)
	path := writeTestFile(t, "shared.dat", data)

	r, err := OpenReadOnly(path, 0, WholeFile)
	require.NoError(t, err)

	s := ShareReadOnly(r)
	defer s.Close()

	// The exclusive view is left unestablished, like after a move.
	require.False(t, r.IsOpen())
	require.True(t, r.Empty())
	r.Unmap() // safe no-op

	require.True(t, s.IsOpen())
	require.False(t, s.Writable())
	require.Equal(t, data, s.Bytes())
}

func TestSharedRefCounting(t *testing.T) {
	data := testPattern(512)
	path := writeTestFile(t, "shared.dat", data)

	r, err := OpenReadOnly(path, 0, WholeFile)
	require.NoError(t, err)
	s1 := ShareReadOnly(r)
	s2 := s1.Clone()
	s3 := s2.Clone()

	s1.Close()
	s1.Close() // idempotent per holder
	require.False(t, s1.IsOpen())

	// The mapping lives as long as any holder does.
	require.Equal(t, data, s2.Bytes())
	s2.Close()
	require.Equal(t, data, s3.Bytes())

	s3.Close()
	require.False(t, s3.IsOpen())
	require.Nil(t, s3.Bytes())

	clone := s3.Clone() // cloning a closed holder yields a closed holder
	require.False(t, clone.IsOpen())
}

func TestSharedReadWrite(t *testing.T) {
	const n = 4096
	path := writeTestFile(t, "shared.dat", make([]byte, n))
	pattern := testPattern(n)

	w, err := OpenReadWrite(path, 0, WholeFile)
	require.NoError(t, err)
	s := ShareReadWrite(w)
	defer s.Close()

	require.True(t, s.Writable())
	copy(s.Bytes(), pattern)
	require.NoError(t, s.Sync())

	r, err := OpenReadOnly(path, 0, WholeFile)
	require.NoError(t, err)
	defer r.Unmap()
	require.Equal(t, pattern, r.Bytes())
}

func TestSharedConcurrentHolders(t *testing.T) {
	data := testPattern(2048)
	path := writeTestFile(t, "shared.dat", data)

	r, err := OpenReadOnly(path, 0, WholeFile)
	require.NoError(t, err)
	s := ShareReadOnly(r)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		c := s.Clone()
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer c.Close()
			buf := make([]byte, 64)
			n, err := c.ReadAt(buf, 128)
			require.NoError(t, err)
			require.Equal(t, 64, n)
			require.Equal(t, data[128:192], buf)
		}()
	}
	wg.Wait()

	require.Equal(t, data, s.Bytes())
	s.Close()
}

func TestSharedClosedErrors(t *testing.T) {
	var s Shared
	require.False(t, s.IsOpen())
	require.True(t, s.Empty())
	require.ErrorIs(t, s.Sync(), ErrNotMapped)
	_, err := s.ReadAt(make([]byte, 1), 0)
	require.ErrorIs(t, err, ErrNotMapped)
}
