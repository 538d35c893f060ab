// Package mio provides cross-platform memory-mapped file I/O.
//
// A mapping exposes a region of a file as an ordinary byte slice backed
// directly by the operating system's page cache, with no buffered read or
// write calls. Mappings may start at any byte offset; the requested offset
// is aligned down to the platform's page allocation granularity internally,
// so callers never need to worry about page boundaries.
//
// Key features:
//   - Map by file path or by an already-open file handle
//   - Arbitrary byte offsets and lengths, or WholeFile to map to EOF
//   - Read-only and read-write views with single-ownership semantics
//   - Optional reference-counted shared views
//   - Explicit Sync control; unmapping never flushes implicitly
//
// Basic usage:
//
//	m, err := mio.OpenReadOnly("/path/to/file", 0, mio.WholeFile)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer m.Unmap()
//
//	process(m.Bytes())
//
// Writable mappings must be flushed explicitly before the data can be
// relied upon to have reached the file:
//
//	w, err := mio.OpenReadWrite("/path/to/file", 0, mio.WholeFile)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Unmap()
//
//	copy(w.Bytes(), payload)
//	if err := w.Sync(); err != nil {
//	    log.Fatal(err)
//	}
//
// The lower-level Mapping type underlies both views and is available for
// callers who need direct control over the mapping lifecycle.
package mio
