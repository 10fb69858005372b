package pwnedlist

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	pwerrors "github.com/tamirms/pwnedlist/errors"
	"github.com/tamirms/pwnedlist/internal/casevariant"
)

// contextCheckInterval is how often ProbeContext checks for cancellation
// while walking case variants.
const contextCheckInterval = 1024

// Probe reports whether the digest of password appears in the list.
//
// If caseSensitive is false, every combination of lowercase and uppercase
// letters in password is tried until one matches. That is 2^n lookups for a
// password with n cased letters, with no upper bound and no way to stop
// early; use ProbeContext for untrusted input.
func (idx *Index) Probe(password string, caseSensitive bool) bool {
	if idx.closed.Load() {
		return false
	}
	if caseSensitive {
		return idx.Contains(idx.layout.Digest(password))
	}
	found, _ := idx.probeVariants(context.Background(), password)
	return found
}

// ProbeContext is Probe with cancellation and a length bound.
//
// For case-insensitive probes it returns ErrPasswordTooLong, without hashing
// anything, if password has more cased letters than WithMaxVariantLetters
// allows. It returns ctx.Err() if ctx is cancelled before a match is found.
func (idx *Index) ProbeContext(ctx context.Context, password string, caseSensitive bool) (bool, error) {
	if idx.closed.Load() {
		return false, pwerrors.ErrIndexClosed
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if caseSensitive {
		return idx.Contains(idx.layout.Digest(password)), nil
	}
	if n := casevariant.Letters(password); idx.maxLetters > 0 && n > idx.maxLetters {
		return false, fmt.Errorf("%w: %d > %d", pwerrors.ErrPasswordTooLong, n, idx.maxLetters)
	}

	return idx.probeVariants(ctx, password)
}

// probeVariants looks up every case variant of password until one matches.
// ctx is polled every contextCheckInterval variants.
func (idx *Index) probeVariants(ctx context.Context, password string) (bool, error) {
	buf := make([]byte, 0, idx.layout.HashWidth)
	tried := 0
	for v := range casevariant.Variants(password) {
		tried++
		if tried >= contextCheckInterval {
			tried = 0
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			default:
			}
		}
		buf = idx.layout.AppendDigest(buf[:0], v)
		if idx.Contains(buf) {
			return true, nil
		}
	}
	return false, nil
}

// CheckAll probes every password concurrently and returns the verdicts in
// input order. At most workers probes run at once; workers <= 0 means one.
// The first error (cancellation or ErrPasswordTooLong) stops the remaining
// probes and is returned.
func (idx *Index) CheckAll(ctx context.Context, passwords []string, caseSensitive bool, workers int) ([]bool, error) {
	found := make([]bool, len(passwords))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, pw := range passwords {
		g.Go(func() error {
			ok, err := idx.ProbeContext(gctx, pw, caseSensitive)
			if err != nil {
				return fmt.Errorf("password %d: %w", i, err)
			}
			found[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return found, nil
}
