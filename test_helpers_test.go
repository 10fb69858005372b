package pwnedlist

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	randv2 "math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// Fixed seeds for reproducible tests. Mixed with the test name in newTestRNG.
const (
	testSeed1 = 0x5eed0001
	testSeed2 = 0x5eed0002
)

// newTestRNG returns a deterministic RNG unique to the calling test.
func newTestRNG(t testing.TB) *randv2.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return randv2.New(randv2.NewPCG(testSeed1^s1, testSeed2^s2))
}

// hexDigest returns the hex digest of s in the requested case.
func hexDigest(algo Algorithm, s string, upper bool) string {
	d := hex.EncodeToString(algo.Sum(nil, []byte(s)))
	if upper {
		d = strings.ToUpper(d)
	}
	return d
}

// buildList returns a sorted hash list holding the digests of passwords.
// Every record is followed by sep, which should end in a line terminator.
func buildList(algo Algorithm, upper bool, sep string, passwords ...string) []byte {
	digests := make([]string, len(passwords))
	for i, pw := range passwords {
		digests[i] = hexDigest(algo, pw, upper)
	}
	return joinRecords(digests, sep)
}

// joinRecords sorts hashes and joins them into a list, each followed by sep.
func joinRecords(hashes []string, sep string) []byte {
	sorted := slices.Clone(hashes)
	slices.Sort(sorted)
	var buf bytes.Buffer
	for _, h := range sorted {
		buf.WriteString(h)
		buf.WriteString(sep)
	}
	return buf.Bytes()
}

// numberedRecords returns n zero-padded hex records of the given width with
// values step, 2*step, ..., n*step. Gaps between them are free for negative
// lookups.
func numberedRecords(n, width, step int) []string {
	recs := make([]string, n)
	for i := range recs {
		recs[i] = padHex(uint64((i+1)*step), width)
	}
	return recs
}

func padHex(v uint64, width int) string {
	return fmt.Sprintf("%0*x", width, v)
}

// writeList writes data to a file in a temp dir and returns its path.
func writeList(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hashes.txt")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

// openList writes data to disk and opens it.
func openList(t *testing.T, data []byte, opts ...OpenOption) *Index {
	t.Helper()
	idx, err := Open(writeList(t, data), opts...)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

// randomPasswords returns n distinct printable passwords.
func randomPasswords(rng *randv2.Rand, n int) []string {
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%"
	seen := make(map[string]bool, n)
	out := make([]string, 0, n)
	for len(out) < n {
		b := make([]byte, 4+rng.IntN(12))
		for i := range b {
			b[i] = alphabet[rng.IntN(len(alphabet))]
		}
		if s := string(b); !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
