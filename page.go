package mio

import "sync"

// The granularity is queried from the OS once and cached for the lifetime of
// the process; it cannot change while the process is running.
var pageSize = sync.OnceValue(allocationGranularity)

// PageSize returns the operating system's page allocation granularity, the
// minimum boundary a mapping may start at. On most POSIX systems this is the
// page size (typically 4 KiB); on Windows it is the allocation granularity,
// which may be larger (typically 64 KiB).
func PageSize() int {
	return pageSize()
}

// AlignDown rounds offset down to the nearest multiple of the page
// allocation granularity. An already-aligned offset is returned unchanged.
// Callers normally do not need this: Map accepts arbitrary offsets and
// aligns them internally.
func AlignDown(offset int64) int64 {
	granularity := int64(PageSize())
	return offset / granularity * granularity
}
