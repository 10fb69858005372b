package pwnedlist

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync/atomic"

	"github.com/edsrzf/mmap-go"

	pwerrors "github.com/tamirms/pwnedlist/errors"
)

// Index is a read-only view over a sorted, fixed-width hash list.
//
// The list is memory-mapped, never loaded: each lookup touches only the
// O(log n) records a binary search visits.
//
// The file must hold one record per line, every line the same byte width,
// sorted ascending by the raw bytes of the hash field, in a single letter
// case. None of this is checked by Open or Contains; a list that breaks these
// rules produces wrong answers, not errors. Use Verify to check a list once.
//
// Thread Safety:
// - Contains, Probe, ProbeContext, Record and other read methods are safe for concurrent use
// - Close is NOT safe to call concurrently with queries
// - After Close returns, Contains and Probe report no match, ProbeContext returns
//   ErrIndexClosed, and Record must not be called
type Index struct {
	// Memory map (no file handle needed after mmap)
	mmap mmap.MMap
	data []byte

	layout Layout
	n      int // record count

	maxLetters   int
	adviseRandom bool

	closed atomic.Bool
}

// Stats holds index statistics.
type Stats struct {
	Records       int
	RecordWidth   int
	TrailingBytes int // bytes after the last whole record, ignored by lookups
	Size          int64
	Algorithm     Algorithm
	Uppercase     bool
}

// Open opens a hash list for querying.
// It opens the file, memory-maps it, and closes the file descriptor.
//
// Failures to open, stat or map the file wrap ErrIO. Failures to infer the
// record layout from the first line wrap ErrFormat.
func Open(path string, opts ...OpenOption) (*Index, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pwerrors.ErrIO, err)
	}
	defer file.Close()
	return OpenFile(file, opts...)
}

// OpenFile opens a hash list by memory-mapping the given file.
// The caller is responsible for closing f. Per POSIX mmap(2), f may be
// closed immediately after OpenFile returns.
func OpenFile(f *os.File, opts ...OpenOption) (*Index, error) {
	cfg := defaultOpenConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat hash list: %w", pwerrors.ErrIO, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", pwerrors.ErrIO, f.Name())
	}
	if stat.Size() == 0 {
		return nil, pwerrors.ErrEmptyFile
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap hash list: %w", pwerrors.ErrIO, err)
	}

	idx := &Index{
		mmap: mm,
		data: []byte(mm),
	}
	if err := idx.init(cfg); err != nil {
		return nil, errors.Join(err, idx.Close())
	}
	if cfg.adviseRandom {
		adviseRandom(idx.data)
	}
	return idx, nil
}

// OpenBytes creates an index over an in-memory hash list.
// No file is opened or memory-mapped; Close is a no-op.
// The caller must ensure data is not modified while the Index is in use.
func OpenBytes(data []byte, opts ...OpenOption) (*Index, error) {
	cfg := defaultOpenConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if len(data) == 0 {
		return nil, pwerrors.ErrEmptyFile
	}
	idx := &Index{
		data: data,
	}
	if err := idx.init(cfg); err != nil {
		return nil, err
	}
	return idx, nil
}

// init infers the layout from the first line of idx.data.
func (idx *Index) init(cfg *openConfig) error {
	layout, err := InferLayout(firstLine(idx.data), cfg.algorithm)
	if err != nil {
		return err
	}
	idx.layout = layout
	idx.n = len(idx.data) / layout.RecordWidth()
	idx.maxLetters = cfg.maxLetters
	idx.adviseRandom = cfg.adviseRandom && idx.mmap != nil
	return nil
}

// firstLine returns data up to and including the first '\n', or all of data
// if it has no line terminator.
func firstLine(data []byte) []byte {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return data[:i+1]
	}
	return data
}

// Close closes the index and releases resources.
func (idx *Index) Close() error {
	if idx.closed.Swap(true) {
		return nil // Already closed
	}

	if idx.mmap != nil {
		return idx.mmap.Unmap()
	}
	return nil
}

// Layout returns the record layout inferred at open time.
func (idx *Index) Layout() Layout {
	return idx.layout
}

// Len returns the number of whole records in the list. Trailing bytes that
// do not fill a record are ignored.
func (idx *Index) Len() int {
	return idx.n
}

// Record returns the hash field of record i. The slice aliases the mapping
// and is valid until Close; callers must not modify it.
// Panics if i is outside [0, Len()).
func (idx *Index) Record(i int) []byte {
	if uint(i) >= uint(idx.n) {
		panic(fmt.Sprintf("pwnedlist: record index %d out of range [0, %d)", i, idx.n))
	}
	return idx.record(i)
}

func (idx *Index) record(i int) []byte {
	off := i * idx.layout.RecordWidth()
	end := off + idx.layout.HashWidth
	return idx.data[off:end:end]
}

// Contains reports whether digest equals the hash field of some record.
// digest is compared byte-wise, so it must use the list's letter case; see
// Layout.AppendDigest.
func (idx *Index) Contains(digest []byte) bool {
	if idx.closed.Load() {
		return false
	}
	i := idx.search(digest)
	return i < idx.n && bytes.Equal(idx.record(i), digest)
}

// search returns the leftmost record index whose hash is >= digest, or Len()
// if every record is smaller.
func (idx *Index) search(digest []byte) int {
	return sort.Search(idx.n, func(i int) bool {
		return bytes.Compare(idx.record(i), digest) >= 0
	})
}

// Stats returns statistics for the index.
func (idx *Index) Stats() *Stats {
	rw := idx.layout.RecordWidth()
	return &Stats{
		Records:       idx.n,
		RecordWidth:   rw,
		TrailingBytes: len(idx.data) - idx.n*rw,
		Size:          int64(len(idx.data)),
		Algorithm:     idx.layout.Algorithm,
		Uppercase:     idx.layout.Uppercase,
	}
}

// GetStats returns statistics for a hash list file.
func GetStats(path string, opts ...OpenOption) (*Stats, error) {
	idx, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}

	return idx.Stats(), idx.Close()
}
