//go:build linux

package pwnedlist

import "golang.org/x/sys/unix"

// adviseRandom hints to the kernel that the mapping will be accessed in
// random order, disabling readahead. Best-effort: errors are ignored.
func adviseRandom(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, unix.MADV_RANDOM)
}

// adviseSequential re-enables aggressive readahead for a full scan.
// Best-effort: errors are ignored.
func adviseSequential(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)
}
