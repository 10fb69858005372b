package pwnedlist

import (
	"bytes"
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	pwerrors "github.com/tamirms/pwnedlist/errors"
)

// Verify scans the whole list and checks the properties lookups rely on:
// records ascend by hash bytes, every hash field is hex in the inferred letter
// case, and every record ends with the same byte as the first one. It returns
// an error wrapping ErrUnsorted or ErrMalformedRecord for the first violation
// found in each chunk, or ctx.Err() if cancelled.
//
// Verify reads every page of the file. Open never calls it; run it once when
// a list is installed, not on every start.
//
// The list is split into workers contiguous chunks scanned in parallel;
// workers <= 0 means one.
func (idx *Index) Verify(ctx context.Context, workers int) error {
	if idx.closed.Load() {
		return pwerrors.ErrIndexClosed
	}
	if idx.n == 0 {
		return nil
	}

	if idx.mmap != nil {
		adviseSequential(idx.data)
		if idx.adviseRandom {
			defer adviseRandom(idx.data)
		}
	}

	workers = min(max(workers, 1), idx.n)
	chunk := (idx.n + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < idx.n; lo += chunk {
		hi := min(lo+chunk, idx.n)
		g.Go(func() error {
			return idx.verifyRange(gctx, lo, hi)
		})
	}
	return g.Wait()
}

// verifyRange checks records [lo, hi), comparing record lo against lo-1 so
// that chunk boundaries are covered.
func (idx *Index) verifyRange(ctx context.Context, lo, hi int) error {
	rw := idx.layout.RecordWidth()
	sw := idx.layout.SeparatorWidth
	var eol byte
	if sw > 0 {
		eol = idx.data[rw-1]
	}

	var prev []byte
	if lo > 0 {
		prev = idx.record(lo - 1)
	}
	for i := lo; i < hi; i++ {
		if (i-lo)%contextCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		rec := idx.record(i)
		if j := idx.badHexByte(rec); j >= 0 {
			return fmt.Errorf("%w: record %d: byte %q at column %d is not %s hex",
				pwerrors.ErrMalformedRecord, i, rec[j], j, idx.caseName())
		}
		if sw > 0 && idx.data[(i+1)*rw-1] != eol {
			return fmt.Errorf("%w: record %d: ends with %q, first record ends with %q",
				pwerrors.ErrMalformedRecord, i, idx.data[(i+1)*rw-1], eol)
		}
		if prev != nil && bytes.Compare(prev, rec) > 0 {
			return fmt.Errorf("%w: record %d (%s) sorts before record %d (%s)",
				pwerrors.ErrUnsorted, i, rec, i-1, prev)
		}
		prev = rec
	}
	return nil
}

// badHexByte returns the index of the first byte of rec that is not a hex
// digit in the list's letter case, or -1.
func (idx *Index) badHexByte(rec []byte) int {
	lo, hi := byte('a'), byte('f')
	if idx.layout.Uppercase {
		lo, hi = 'A', 'F'
	}
	for j, c := range rec {
		if ('0' <= c && c <= '9') || (lo <= c && c <= hi) {
			continue
		}
		return j
	}
	return -1
}

func (idx *Index) caseName() string {
	if idx.layout.Uppercase {
		return "uppercase"
	}
	return "lowercase"
}
