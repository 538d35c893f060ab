package mio

import "sync/atomic"

// Shared is a reference-counted view of one underlying Mapping. Clone
// creates additional holders; the mapping is released when the last holder
// calls Close. Reference-count updates are atomic, so holders may be
// created and closed from different goroutines, but access to the mapped
// bytes themselves follows ordinary shared-memory rules.
type Shared struct {
	state *sharedMapping
}

type sharedMapping struct {
	refs atomic.Int32
	m    Mapping
}

// ShareReadOnly converts an exclusive read-only view into a shared one.
// The exclusive view is consumed: it is left unestablished, exactly as
// after a Swap with a zero view.
func ShareReadOnly(src *ReadOnly) *Shared {
	return newShared(&src.m)
}

// ShareReadWrite converts an exclusive read-write view into a shared one,
// consuming it. See ShareReadOnly.
func ShareReadWrite(src *ReadWrite) *Shared {
	return newShared(&src.m)
}

func newShared(m *Mapping) *Shared {
	s := &sharedMapping{}
	s.m.Swap(m)
	s.refs.Store(1)
	return &Shared{state: s}
}

// Clone returns a new holder of the same mapping, incrementing the
// reference count.
func (s *Shared) Clone() *Shared {
	if s.state == nil {
		return &Shared{}
	}
	s.state.refs.Add(1)
	return &Shared{state: s.state}
}

// Close drops this holder's reference. The mapping is released when the
// last holder closes. Close is idempotent per holder.
func (s *Shared) Close() {
	if s.state == nil {
		return
	}
	state := s.state
	s.state = nil
	if state.refs.Add(-1) == 0 {
		state.m.Unmap()
	}
}

// Bytes returns the mapped bytes. For a mapping shared from a read-only
// view the slice must be treated as read-only.
func (s *Shared) Bytes() []byte {
	if s.state == nil {
		return nil
	}
	return s.state.m.Bytes()
}

// Len returns the number of mapped bytes.
func (s *Shared) Len() int64 {
	if s.state == nil {
		return 0
	}
	return s.state.m.Len()
}

// IsOpen reports whether this holder still references an established
// mapping.
func (s *Shared) IsOpen() bool {
	return s.state != nil && s.state.m.IsOpen()
}

// Empty reports whether the visible length is zero.
func (s *Shared) Empty() bool {
	return s.Len() == 0
}

// Writable reports whether the shared mapping permits writes.
func (s *Shared) Writable() bool {
	return s.state != nil && s.state.m.Writable()
}

// Offset returns the file offset of the first mapped byte.
func (s *Shared) Offset() int64 {
	if s.state == nil {
		return 0
	}
	return s.state.m.Offset()
}

// ReadAt implements io.ReaderAt over the mapped bytes.
func (s *Shared) ReadAt(p []byte, off int64) (int, error) {
	if s.state == nil {
		return 0, ErrNotMapped
	}
	return s.state.m.ReadAt(p, off)
}

// Sync flushes modified pages to the backing file. It is a no-op for a
// mapping shared from a read-only view.
func (s *Shared) Sync() error {
	if s.state == nil {
		return ErrNotMapped
	}
	return s.state.m.Sync()
}
