//go:build !linux

package pwnedlist

// adviseRandom is a no-op on non-Linux platforms.
func adviseRandom(data []byte) {}

// adviseSequential is a no-op on non-Linux platforms.
func adviseSequential(data []byte) {}
