//go:build !linux

package mio

// tryMremap is only available on Linux. Returning an error makes Remap fall
// back to establishing a fresh mapping.
func (m *Mapping) tryMremap(newMapLen int) ([]byte, error) {
	return nil, &Error{Op: "mremap not available"}
}
