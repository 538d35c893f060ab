//go:build linux

package mio

import (
	"syscall"
	"unsafe"
)

// tryMremap resizes the OS-level mapping in place with the Linux mremap
// syscall, moving it if the address space after it is occupied. newMapLen
// is the new length of the full mapping, including the alignment window.
func (m *Mapping) tryMremap(newMapLen int) ([]byte, error) {
	const mremapMaymove = 1

	addr, _, errno := syscall.Syscall6(
		syscall.SYS_MREMAP,
		uintptr(unsafe.Pointer(&m.raw[0])),
		uintptr(len(m.raw)),
		uintptr(newMapLen),
		mremapMaymove,
		0, 0)
	if errno != 0 {
		return nil, &Error{Op: "mremap", Err: errno}
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), newMapLen), nil
}
