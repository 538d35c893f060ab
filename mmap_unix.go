//go:build unix

package mio

import (
	"os"

	"golang.org/x/sys/unix"
)

// Handle is the platform's file handle type: a file descriptor.
type Handle = int

// InvalidHandle is the sentinel value of an invalid file handle.
const InvalidHandle Handle = -1

// MappingHandle returns the OS handle of the mapping object itself. On
// POSIX it is the file handle; Windows mappings have a handle of their own.
func (m *Mapping) MappingHandle() Handle {
	return m.FileHandle()
}

func openFile(path string, writable bool) (Handle, error) {
	flags := unix.O_RDONLY
	if writable {
		flags = unix.O_RDWR
	}
	fd, err := unix.Open(path, flags|unix.O_CLOEXEC, 0)
	if err != nil {
		return InvalidHandle, &Error{Op: "open", Err: err}
	}
	return fd, nil
}

func closeHandle(fd Handle) error {
	return unix.Close(fd)
}

func fileSize(fd Handle) (int64, error) {
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return 0, &Error{Op: "fstat", Err: err}
	}
	return st.Size, nil
}

// mapRegion creates a shared mapping of length bytes of fd starting at
// offset, which must be page-aligned. The second return value is the
// Windows file-mapping handle and is always zero here.
func mapRegion(fd Handle, offset int64, length int, writable bool) ([]byte, uintptr, error) {
	prot := unix.PROT_READ
	if writable {
		prot |= unix.PROT_WRITE
	}
	data, err := unix.Mmap(fd, offset, length, prot, unix.MAP_SHARED)
	if err != nil {
		return nil, 0, &Error{Op: "mmap", Err: err}
	}
	return data, 0, nil
}

func unmapRegion(raw []byte, _ uintptr) error {
	if err := unix.Munmap(raw); err != nil {
		return &Error{Op: "munmap", Err: err}
	}
	return nil
}

func flushRegion(raw []byte, _ Handle) error {
	if err := unix.Msync(raw, unix.MS_SYNC); err != nil {
		return &Error{Op: "msync", Err: err}
	}
	return nil
}

func flushRegionAsync(raw []byte, _ Handle) error {
	if err := unix.Msync(raw, unix.MS_ASYNC); err != nil {
		return &Error{Op: "msync", Err: err}
	}
	return nil
}

func allocationGranularity() int {
	return os.Getpagesize()
}

// Lock pins the mapped pages in physical memory, preventing them from
// being swapped out.
func (m *Mapping) Lock() error {
	if !m.IsOpen() {
		return ErrNotMapped
	}
	if err := unix.Mlock(m.raw); err != nil {
		return &Error{Op: "mlock", Err: err}
	}
	return nil
}

// Unlock releases pages pinned by Lock.
func (m *Mapping) Unlock() error {
	if !m.IsOpen() {
		return ErrNotMapped
	}
	if err := unix.Munlock(m.raw); err != nil {
		return &Error{Op: "munlock", Err: err}
	}
	return nil
}

// Advise passes an access-pattern hint for the mapped region to the
// kernel. The advice value is one of the unix.MADV_* constants. It is a
// no-op on Windows.
func (m *Mapping) Advise(advice int) error {
	if !m.IsOpen() {
		return ErrNotMapped
	}
	if err := unix.Madvise(m.raw, advice); err != nil {
		return &Error{Op: "madvise", Err: err}
	}
	return nil
}

// AdviseSequential hints that pages will be accessed sequentially.
func (m *Mapping) AdviseSequential() error {
	return m.Advise(unix.MADV_SEQUENTIAL)
}

// AdviseRandom hints that pages will be accessed in random order.
func (m *Mapping) AdviseRandom() error {
	return m.Advise(unix.MADV_RANDOM)
}

// AdviseWillNeed hints that pages will be needed soon.
func (m *Mapping) AdviseWillNeed() error {
	return m.Advise(unix.MADV_WILLNEED)
}

// AdviseDontNeed hints that pages won't be needed soon.
func (m *Mapping) AdviseDontNeed() error {
	return m.Advise(unix.MADV_DONTNEED)
}
