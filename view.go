package mio

// ReadOnly is an exclusive-ownership read-only view of a mapped file
// region. It exposes no write surface: the mapping is created with
// read-only protection and there is no Sync, since a read-only mapping has
// nothing to flush.
//
// A ReadOnly must not be copied while open; transfer ownership with Swap.
type ReadOnly struct {
	m Mapping
}

// OpenReadOnly maps length bytes of the file at path starting at offset,
// read-only. Pass WholeFile as length to map to the end of the file.
func OpenReadOnly(path string, offset, length int64) (*ReadOnly, error) {
	r := new(ReadOnly)
	if err := r.m.Map(path, offset, length, false); err != nil {
		return nil, err
	}
	return r, nil
}

// OpenReadOnlyHandle is like OpenReadOnly but maps an already-open file
// handle, which remains owned by the caller.
func OpenReadOnlyHandle(fd Handle, offset, length int64) (*ReadOnly, error) {
	r := new(ReadOnly)
	if err := r.m.MapHandle(fd, offset, length, false); err != nil {
		return nil, err
	}
	return r, nil
}

// MustOpenReadOnly is like OpenReadOnly but panics on error.
func MustOpenReadOnly(path string, offset, length int64) *ReadOnly {
	r, err := OpenReadOnly(path, offset, length)
	if err != nil {
		panic(err)
	}
	return r
}

// Map replaces the view's mapping with a new read-only mapping of the file
// at path. See Mapping.Map for the semantics.
func (r *ReadOnly) Map(path string, offset, length int64) error {
	return r.m.Map(path, offset, length, false)
}

// MapHandle is like Map but uses an already-open file handle.
func (r *ReadOnly) MapHandle(fd Handle, offset, length int64) error {
	return r.m.MapHandle(fd, offset, length, false)
}

// Bytes returns the mapped bytes. The slice must be treated as read-only;
// writing through it faults.
func (r *ReadOnly) Bytes() []byte { return r.m.Bytes() }

// Len returns the number of mapped bytes.
func (r *ReadOnly) Len() int64 { return r.m.Len() }

// MappedLen returns the length of the underlying OS-level mapping.
func (r *ReadOnly) MappedLen() int64 { return r.m.MappedLen() }

// MappingOffset returns the position of the first visible byte within the
// OS-level mapping.
func (r *ReadOnly) MappingOffset() int64 { return r.m.MappingOffset() }

// Offset returns the file offset of the first mapped byte.
func (r *ReadOnly) Offset() int64 { return r.m.Offset() }

// IsOpen reports whether a mapping is established.
func (r *ReadOnly) IsOpen() bool { return r.m.IsOpen() }

// IsMapped is an alias for IsOpen.
func (r *ReadOnly) IsMapped() bool { return r.m.IsMapped() }

// Empty reports whether the view's length is zero.
func (r *ReadOnly) Empty() bool { return r.m.Empty() }

// FileHandle returns the OS handle of the mapped file, or InvalidHandle.
func (r *ReadOnly) FileHandle() Handle { return r.m.FileHandle() }

// MappingHandle returns the OS handle of the mapping object.
func (r *ReadOnly) MappingHandle() Handle { return r.m.MappingHandle() }

// ReadAt implements io.ReaderAt over the mapped bytes.
func (r *ReadOnly) ReadAt(p []byte, off int64) (int, error) { return r.m.ReadAt(p, off) }

// Unmap releases the mapping. See Mapping.Unmap.
func (r *ReadOnly) Unmap() { r.m.Unmap() }

// Swap exchanges the state of two views in constant time. Swapping with a
// zero view transfers ownership, leaving the source unestablished.
func (r *ReadOnly) Swap(other *ReadOnly) { r.m.Swap(&other.m) }

// Equal reports whether the two views' byte contents are identical. This
// is a content comparison, not an identity comparison.
func (r *ReadOnly) Equal(other *ReadOnly) bool { return r.m.Equal(&other.m) }

// ReadWrite is an exclusive-ownership writable view of a mapped file
// region. Modified bytes reach the file only after an explicit Sync;
// Unmap deliberately does not flush.
//
// A ReadWrite must not be copied while open; transfer ownership with Swap.
type ReadWrite struct {
	m Mapping
}

// OpenReadWrite maps length bytes of the file at path starting at offset,
// read-write. Pass WholeFile as length to map to the end of the file.
func OpenReadWrite(path string, offset, length int64) (*ReadWrite, error) {
	w := new(ReadWrite)
	if err := w.m.Map(path, offset, length, true); err != nil {
		return nil, err
	}
	return w, nil
}

// OpenReadWriteHandle is like OpenReadWrite but maps an already-open file
// handle, which remains owned by the caller.
func OpenReadWriteHandle(fd Handle, offset, length int64) (*ReadWrite, error) {
	w := new(ReadWrite)
	if err := w.m.MapHandle(fd, offset, length, true); err != nil {
		return nil, err
	}
	return w, nil
}

// MustOpenReadWrite is like OpenReadWrite but panics on error.
func MustOpenReadWrite(path string, offset, length int64) *ReadWrite {
	w, err := OpenReadWrite(path, offset, length)
	if err != nil {
		panic(err)
	}
	return w
}

// Map replaces the view's mapping with a new read-write mapping of the
// file at path. See Mapping.Map for the semantics.
func (w *ReadWrite) Map(path string, offset, length int64) error {
	return w.m.Map(path, offset, length, true)
}

// MapHandle is like Map but uses an already-open file handle.
func (w *ReadWrite) MapHandle(fd Handle, offset, length int64) error {
	return w.m.MapHandle(fd, offset, length, true)
}

// Bytes returns the mapped bytes. Writes through the slice modify the
// page cache directly and become durable only after Sync.
func (w *ReadWrite) Bytes() []byte { return w.m.Bytes() }

// Len returns the number of mapped bytes.
func (w *ReadWrite) Len() int64 { return w.m.Len() }

// MappedLen returns the length of the underlying OS-level mapping.
func (w *ReadWrite) MappedLen() int64 { return w.m.MappedLen() }

// MappingOffset returns the position of the first visible byte within the
// OS-level mapping.
func (w *ReadWrite) MappingOffset() int64 { return w.m.MappingOffset() }

// Offset returns the file offset of the first mapped byte.
func (w *ReadWrite) Offset() int64 { return w.m.Offset() }

// IsOpen reports whether a mapping is established.
func (w *ReadWrite) IsOpen() bool { return w.m.IsOpen() }

// IsMapped is an alias for IsOpen.
func (w *ReadWrite) IsMapped() bool { return w.m.IsMapped() }

// Empty reports whether the view's length is zero.
func (w *ReadWrite) Empty() bool { return w.m.Empty() }

// FileHandle returns the OS handle of the mapped file, or InvalidHandle.
func (w *ReadWrite) FileHandle() Handle { return w.m.FileHandle() }

// MappingHandle returns the OS handle of the mapping object.
func (w *ReadWrite) MappingHandle() Handle { return w.m.MappingHandle() }

// ReadAt implements io.ReaderAt over the mapped bytes.
func (w *ReadWrite) ReadAt(p []byte, off int64) (int, error) { return w.m.ReadAt(p, off) }

// WriteAt implements io.WriterAt over the mapped bytes.
func (w *ReadWrite) WriteAt(p []byte, off int64) (int, error) { return w.m.WriteAt(p, off) }

// Sync flushes modified pages to the backing file. See Mapping.Sync.
func (w *ReadWrite) Sync() error { return w.m.Sync() }

// SyncAsync schedules a flush without waiting for completion.
func (w *ReadWrite) SyncAsync() error { return w.m.SyncAsync() }

// SyncRange flushes a subrange of the mapped bytes.
func (w *ReadWrite) SyncRange(offset, length int64) error { return w.m.SyncRange(offset, length) }

// Remap changes the length of the mapping. See Mapping.Remap.
func (w *ReadWrite) Remap(length int64) error { return w.m.Remap(length) }

// Unmap releases the mapping without flushing. See Mapping.Unmap.
func (w *ReadWrite) Unmap() { w.m.Unmap() }

// Swap exchanges the state of two views in constant time. Swapping with a
// zero view transfers ownership, leaving the source unestablished.
func (w *ReadWrite) Swap(other *ReadWrite) { w.m.Swap(&other.m) }

// Equal reports whether the two views' byte contents are identical. This
// is a content comparison, not an identity comparison.
func (w *ReadWrite) Equal(other *ReadWrite) bool { return w.m.Equal(&other.m) }
