package mio

import (
	"bytes"
	"io"
)

// WholeFile may be passed as the length argument to Map and the Open
// functions to request a mapping that extends from the given offset to the
// end of the file.
const WholeFile int64 = 0

// Mapping is the low-level memory mapping engine underlying ReadOnly,
// ReadWrite and Shared. It holds the mapped region, the file handle and, on
// Windows, the file-mapping handle.
//
// The zero value is an unestablished mapping ready for Map or MapHandle.
// A Mapping must not be copied while open; ownership is transferred with
// Swap. Concurrent calls to Map, Unmap, Remap or Sync on the same instance
// must be serialized by the caller.
type Mapping struct {
	raw  []byte // full OS-level mapping, starts page-aligned
	data []byte // caller-visible window into raw

	// File offset of raw[0]. Always a multiple of PageSize.
	off int64

	fd Handle

	// Windows file-mapping object handle. Zero on POSIX, where the file
	// handle alone is sufficient for every mapping operation.
	mapping uintptr

	writable bool

	// Set when the file handle was opened from a path by Map. A handle
	// supplied by the caller through MapHandle is never closed here.
	ownsFd bool
}

// Bytes returns the mapped byte range, beginning at the exact offset the
// caller requested. It returns nil if no mapping is established. The slice
// is only valid until Unmap; for a read-only mapping, writing through it
// faults.
func (m *Mapping) Bytes() []byte {
	return m.data
}

// Len returns the number of bytes the caller requested to map.
func (m *Mapping) Len() int64 {
	return int64(len(m.data))
}

// MappedLen returns the length of the underlying OS-level mapping, which is
// Len plus the alignment adjustment and therefore may exceed Len by up to
// one page of allocation granularity.
func (m *Mapping) MappedLen() int64 {
	return int64(len(m.raw))
}

// MappingOffset returns the position of the first requested byte relative
// to the start of the OS-level mapping. It is always less than PageSize.
func (m *Mapping) MappingOffset() int64 {
	return int64(len(m.raw) - len(m.data))
}

// Offset returns the file offset of the first mapped byte, as requested by
// the caller.
func (m *Mapping) Offset() int64 {
	return m.off + m.MappingOffset()
}

// IsOpen reports whether a mapping is established.
func (m *Mapping) IsOpen() bool {
	return m.data != nil
}

// IsMapped is an alias for IsOpen. The distinction matters in some mapping
// APIs where a file may be open without being mapped; here the two states
// always coincide.
func (m *Mapping) IsMapped() bool {
	return m.IsOpen()
}

// Empty reports whether the mapping's visible length is zero.
func (m *Mapping) Empty() bool {
	return len(m.data) == 0
}

// Writable reports whether the mapping permits writes.
func (m *Mapping) Writable() bool {
	return m.writable
}

// FileHandle returns the OS handle of the mapped file, or InvalidHandle if
// no mapping is established.
func (m *Mapping) FileHandle() Handle {
	if !m.IsOpen() {
		return InvalidHandle
	}
	return m.fd
}

// Map establishes a mapping of length bytes of the file at path, starting
// at the given byte offset. The file is opened internally and its handle is
// closed again by Unmap. Pass WholeFile as length to map everything from
// offset to the end of the file.
//
// The offset need not be page-aligned; it is aligned down internally and
// Bytes is adjusted so its first byte is the byte at offset.
//
// On success any previously established mapping is released first. On
// failure the Mapping is left exactly as it was before the call.
//
// Mapping a region of length zero (an empty file, or offset at EOF with
// WholeFile) succeeds and leaves the Mapping unestablished.
func (m *Mapping) Map(path string, offset, length int64, writable bool) error {
	if path == "" {
		return ErrEmptyPath
	}
	fd, err := openFile(path, writable)
	if err != nil {
		return err
	}
	if err := m.mapHandle(fd, offset, length, writable, true); err != nil {
		closeHandle(fd)
		return err
	}
	return nil
}

// MapHandle is like Map but uses an already-open file handle. The handle
// remains owned by the caller and is never closed by Unmap.
func (m *Mapping) MapHandle(fd Handle, offset, length int64, writable bool) error {
	return m.mapHandle(fd, offset, length, writable, false)
}

func (m *Mapping) mapHandle(fd Handle, offset, length int64, writable, owned bool) error {
	if fd == InvalidHandle {
		return ErrInvalidHandle
	}
	if offset < 0 {
		return ErrInvalidOffset
	}
	if length < 0 {
		return ErrInvalidLength
	}

	size, err := fileSize(fd)
	if err != nil {
		return err
	}
	if length == WholeFile {
		if offset > size {
			return ErrOutOfRange
		}
		length = size - offset
	} else if offset+length > size {
		return ErrOutOfRange
	}

	if length == 0 {
		if owned {
			closeHandle(fd)
		}
		m.Unmap()
		return nil
	}

	aligned := AlignDown(offset)
	delta := offset - aligned
	mapLen := delta + length
	if int64(int(mapLen)) != mapLen {
		return ErrInvalidLength
	}

	raw, mapping, err := mapRegion(fd, aligned, int(mapLen), writable)
	if err != nil {
		return err
	}

	// The new region is fully established; only now tear down the old one.
	m.Unmap()
	m.raw = raw
	m.data = raw[delta:]
	m.off = aligned
	m.fd = fd
	m.mapping = mapping
	m.writable = writable
	m.ownsFd = owned
	return nil
}

// Unmap releases the mapping and, if the file was opened from a path by
// Map, closes the file handle. It is a no-op on an unestablished Mapping
// and never fails: teardown errors from the OS are discarded, an accepted
// limitation since Unmap runs on cleanup paths. Unmap does not flush; call
// Sync first if durability is required.
func (m *Mapping) Unmap() {
	if m.raw != nil {
		_ = unmapRegion(m.raw, m.mapping)
	}
	if m.ownsFd {
		_ = closeHandle(m.fd)
	}
	*m = Mapping{}
}

// Sync flushes modified pages of the mapped region to the backing file,
// blocking until the write-back completes. On a read-only mapping it is a
// no-op. It returns ErrNotMapped if no mapping is established.
func (m *Mapping) Sync() error {
	if !m.IsOpen() {
		return ErrNotMapped
	}
	if !m.writable {
		return nil
	}
	return flushRegion(m.raw, m.fd)
}

// SyncAsync schedules a flush of modified pages without waiting for the
// write-back to complete. On Windows it behaves like Sync.
func (m *Mapping) SyncAsync() error {
	if !m.IsOpen() {
		return ErrNotMapped
	}
	if !m.writable {
		return nil
	}
	return flushRegionAsync(m.raw, m.fd)
}

// SyncRange flushes the given subrange of the mapped bytes. Offset and
// length are relative to Bytes; the flushed region is extended down to the
// preceding page boundary internally.
func (m *Mapping) SyncRange(offset, length int64) error {
	if !m.IsOpen() {
		return ErrNotMapped
	}
	if offset < 0 || length < 0 || offset+length > m.Len() {
		return ErrOutOfRange
	}
	if !m.writable || length == 0 {
		return nil
	}
	delta := m.MappingOffset()
	start := AlignDown(delta + offset)
	return flushRegion(m.raw[start:delta+offset+length], m.fd)
}

// Swap exchanges the complete state of two Mappings in constant time. It is
// the ownership-transfer primitive: swapping with a zero Mapping moves the
// mapping out, leaving the source unestablished so that a later Unmap of
// the source is a safe no-op.
func (m *Mapping) Swap(other *Mapping) {
	*m, *other = *other, *m
}

// Remap changes the length of the mapping while keeping its file offset.
// The new length must be positive and lie within the file. On Linux this
// uses mremap where possible; elsewhere a new mapping is established before
// the old one is released, so on failure the existing mapping is unchanged.
func (m *Mapping) Remap(length int64) error {
	if !m.IsOpen() {
		return ErrNotMapped
	}
	if length <= 0 {
		return ErrInvalidLength
	}
	if length == m.Len() {
		return nil
	}

	delta := m.MappingOffset()
	mapLen := delta + length
	if int64(int(mapLen)) != mapLen {
		return ErrInvalidLength
	}

	size, err := fileSize(m.fd)
	if err != nil {
		return err
	}
	if m.Offset()+length > size {
		return ErrOutOfRange
	}

	if raw, err := m.tryMremap(int(mapLen)); err == nil {
		m.raw = raw
		m.data = raw[delta:]
		return nil
	}

	// Portable path: map the larger region on the same handle first, then
	// release the old one.
	var next Mapping
	if err := next.mapHandle(m.fd, m.Offset(), length, m.writable, false); err != nil {
		return err
	}
	next.ownsFd = m.ownsFd
	m.ownsFd = false
	m.Unmap()
	m.Swap(&next)
	return nil
}

// Equal reports whether the visible byte ranges of two mappings are
// identical in length and content. Note that this is a content comparison,
// not an identity comparison: two mappings of different files compare equal
// if the mapped bytes match.
func (m *Mapping) Equal(other *Mapping) bool {
	return bytes.Equal(m.data, other.data)
}

// Compare orders two mappings bytewise over their visible ranges, using the
// same content rule as Equal. It returns -1, 0 or +1 like bytes.Compare.
func (m *Mapping) Compare(other *Mapping) int {
	return bytes.Compare(m.data, other.data)
}

// ReadAt implements io.ReaderAt over the mapped bytes.
func (m *Mapping) ReadAt(p []byte, off int64) (int, error) {
	if !m.IsOpen() {
		return 0, ErrNotMapped
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= m.Len() {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt implements io.WriterAt over the mapped bytes. Writes cannot
// extend the mapping; a write reaching past Len stops there and returns
// io.ErrShortWrite.
func (m *Mapping) WriteAt(p []byte, off int64) (int, error) {
	if !m.IsOpen() {
		return 0, ErrNotMapped
	}
	if !m.writable {
		return 0, ErrReadOnly
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= m.Len() {
		return 0, ErrOutOfRange
	}
	n := copy(m.data[off:], p)
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}
