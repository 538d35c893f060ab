//go:build windows

package mio

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// Handle is the platform's file handle type.
type Handle = windows.Handle

// InvalidHandle is the sentinel value of an invalid file handle.
const InvalidHandle Handle = windows.InvalidHandle

// MappingHandle returns the OS handle of the file-mapping object backing
// this mapping, or InvalidHandle if no mapping is established. On Windows
// the mapping object is a separate handle from the file handle.
func (m *Mapping) MappingHandle() Handle {
	if !m.IsOpen() {
		return InvalidHandle
	}
	return Handle(m.mapping)
}

func openFile(path string, writable bool) (Handle, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return InvalidHandle, &Error{Op: "open", Err: err}
	}
	access := uint32(windows.GENERIC_READ)
	if writable {
		access |= windows.GENERIC_WRITE
	}
	h, err := windows.CreateFile(p, access,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE, nil,
		windows.OPEN_EXISTING, windows.FILE_ATTRIBUTE_NORMAL, 0)
	if err != nil {
		return InvalidHandle, &Error{Op: "CreateFile", Err: err}
	}
	return h, nil
}

func closeHandle(fd Handle) error {
	return windows.CloseHandle(fd)
}

func fileSize(fd Handle) (int64, error) {
	var size int64
	if err := windows.GetFileSizeEx(fd, &size); err != nil {
		return 0, &Error{Op: "GetFileSizeEx", Err: err}
	}
	return size, nil
}

// mapRegion creates a shared mapping of length bytes of fd starting at
// offset, which must be a multiple of the allocation granularity. Windows
// needs two calls: create a file-mapping object large enough to cover the
// region, then map a view of it. If the second call fails the mapping
// object is closed again so the failure leaks nothing.
func mapRegion(fd Handle, offset int64, length int, writable bool) ([]byte, uintptr, error) {
	prot := uint32(windows.PAGE_READONLY)
	access := uint32(windows.FILE_MAP_READ)
	if writable {
		prot = windows.PAGE_READWRITE
		access = windows.FILE_MAP_WRITE
	}

	maxSize := uint64(offset) + uint64(length)
	mapping, err := windows.CreateFileMapping(fd, nil, prot,
		uint32(maxSize>>32), uint32(maxSize), nil)
	if err != nil {
		return nil, 0, &Error{Op: "CreateFileMapping", Err: err}
	}

	addr, err := windows.MapViewOfFile(mapping, access,
		uint32(uint64(offset)>>32), uint32(offset), uintptr(length))
	if err != nil {
		windows.CloseHandle(mapping)
		return nil, 0, &Error{Op: "MapViewOfFile", Err: err}
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), length), uintptr(mapping), nil
}

// unmapRegion tears down in the required order: unmap the view, then close
// the file-mapping object. The file handle, if owned, is closed by the
// caller afterwards.
func unmapRegion(raw []byte, mapping uintptr) error {
	err := windows.UnmapViewOfFile(uintptr(unsafe.Pointer(&raw[0])))
	if cerr := windows.CloseHandle(windows.Handle(mapping)); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return &Error{Op: "UnmapViewOfFile", Err: err}
	}
	return nil
}

// flushRegion flushes the view and then the OS file buffers; the second
// step is needed on Windows for the data to actually reach the disk rather
// than just the file system cache.
func flushRegion(raw []byte, fd Handle) error {
	if err := windows.FlushViewOfFile(uintptr(unsafe.Pointer(&raw[0])), uintptr(len(raw))); err != nil {
		return &Error{Op: "FlushViewOfFile", Err: err}
	}
	if err := windows.FlushFileBuffers(fd); err != nil {
		return &Error{Op: "FlushFileBuffers", Err: err}
	}
	return nil
}

// flushRegionAsync behaves like flushRegion; Windows has no asynchronous
// flush primitive for mapped views.
func flushRegionAsync(raw []byte, fd Handle) error {
	return flushRegion(raw, fd)
}

type systemInfo struct {
	ProcessorArchitecture     uint16
	Reserved                  uint16
	PageSize                  uint32
	MinimumApplicationAddress uintptr
	MaximumApplicationAddress uintptr
	ActiveProcessorMask       uintptr
	NumberOfProcessors        uint32
	ProcessorType             uint32
	AllocationGranularity     uint32
	ProcessorLevel            uint16
	ProcessorRevision         uint16
}

var procGetSystemInfo = windows.NewLazySystemDLL("kernel32.dll").NewProc("GetSystemInfo")

func allocationGranularity() int {
	var si systemInfo
	procGetSystemInfo.Call(uintptr(unsafe.Pointer(&si)))
	return int(si.AllocationGranularity)
}

// Lock pins the mapped pages in physical memory, preventing them from
// being swapped out.
func (m *Mapping) Lock() error {
	if !m.IsOpen() {
		return ErrNotMapped
	}
	if err := windows.VirtualLock(uintptr(unsafe.Pointer(&m.raw[0])), uintptr(len(m.raw))); err != nil {
		return &Error{Op: "VirtualLock", Err: err}
	}
	return nil
}

// Unlock releases pages pinned by Lock.
func (m *Mapping) Unlock() error {
	if !m.IsOpen() {
		return ErrNotMapped
	}
	if err := windows.VirtualUnlock(uintptr(unsafe.Pointer(&m.raw[0])), uintptr(len(m.raw))); err != nil {
		return &Error{Op: "VirtualUnlock", Err: err}
	}
	return nil
}

// Advise is a no-op on Windows, which has no madvise equivalent.
func (m *Mapping) Advise(advice int) error {
	if !m.IsOpen() {
		return ErrNotMapped
	}
	return nil
}

// AdviseSequential hints that pages will be accessed sequentially.
func (m *Mapping) AdviseSequential() error {
	return m.Advise(0)
}

// AdviseRandom hints that pages will be accessed in random order.
func (m *Mapping) AdviseRandom() error {
	return m.Advise(0)
}

// AdviseWillNeed hints that pages will be needed soon.
func (m *Mapping) AdviseWillNeed() error {
	return m.Advise(0)
}

// AdviseDontNeed hints that pages won't be needed soon.
func (m *Mapping) AdviseDontNeed() error {
	return m.Advise(0)
}
