package mio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	xmmap "golang.org/x/exp/mmap"

	"github.com/vimpunk/mio"
)

// Cross-checks our mapping against golang.org/x/exp/mmap reading the same
// file, as an independent oracle for byte fidelity.
func TestAgainstExpMmap(t *testing.T) {
	data := make([]byte, 16134)
	for i := range data {
		data[i] = byte(i * 131)
	}
	path := filepath.Join(t.TempDir(), "oracle.dat")
	require.NoError(t, os.WriteFile(path, data, 0644))

	m, err := mio.OpenReadOnly(path, 0, mio.WholeFile)
	require.NoError(t, err)
	defer m.Unmap()

	oracle, err := xmmap.Open(path)
	require.NoError(t, err)
	defer oracle.Close()

	require.Equal(t, int64(oracle.Len()), m.Len())

	buf := make([]byte, oracle.Len())
	n, err := oracle.ReadAt(buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	require.Equal(t, buf, m.Bytes())

	// Same comparison at an unaligned offset.
	offset := int64(mio.PageSize()) + 3
	if offset >= m.Len() {
		t.Skipf("allocation granularity %d too large for this scenario", mio.PageSize())
	}
	sub, err := mio.OpenReadOnly(path, offset, mio.WholeFile)
	require.NoError(t, err)
	defer sub.Unmap()

	buf = make([]byte, sub.Len())
	n, err = oracle.ReadAt(buf, offset)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	require.Equal(t, buf, sub.Bytes())
}
