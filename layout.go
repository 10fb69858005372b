package pwnedlist

import (
	"encoding/hex"
	"fmt"

	pwerrors "github.com/tamirms/pwnedlist/errors"
)

// Layout is the fixed record geometry shared by every record in a hash list.
//
// A record is HashWidth bytes of hex digest followed by SeparatorWidth bytes
// of separator, metadata and line terminator. Records are addressed by
// multiplying an index by RecordWidth; lines are never scanned.
type Layout struct {
	// HashWidth is the hex length of Algorithm's digest. It is derived from
	// the algorithm, not measured from the sample line.
	HashWidth int

	// SeparatorWidth counts every byte between the end of the hash field and
	// the start of the next record, including the line terminator.
	SeparatorWidth int

	// Uppercase is true when the sample hash field contains no lowercase letter.
	Uppercase bool

	Algorithm Algorithm
}

// InferLayout derives the record layout from the first line of a hash list.
//
// line must hold the first record, including its line terminator if the file
// has one. The hash field is the longest leading run of ASCII letters and
// digits; everything after it is the separator. InferLayout only inspects
// line: it assumes every other record has the same width, case and separator.
//
// Errors wrap ErrFormat, except for ErrUnknownAlgorithm.
func InferLayout(line []byte, algo Algorithm) (Layout, error) {
	if !algo.valid() {
		return Layout{}, fmt.Errorf("%w: %d", pwerrors.ErrUnknownAlgorithm, uint16(algo))
	}
	if len(trimEOL(line)) == 0 {
		return Layout{}, pwerrors.ErrEmptyFirstLine
	}

	hashEnd := 0
	lower := false
	for i, c := range line {
		if c >= 0x80 {
			return Layout{}, fmt.Errorf("%w: byte 0x%02x at offset %d", pwerrors.ErrNonASCII, c, i)
		}
		if hashEnd == i && isAlnum(c) {
			hashEnd++
			lower = lower || ('a' <= c && c <= 'z')
		}
	}
	if hashEnd == 0 {
		return Layout{}, pwerrors.ErrNoHashField
	}

	hashWidth := algo.HexLen()
	if n := len(trimEOL(line)); n < hashWidth {
		return Layout{}, fmt.Errorf("%w: %d < %d bytes for %s", pwerrors.ErrShortRecord, n, hashWidth, algo)
	}

	return Layout{
		HashWidth:      hashWidth,
		SeparatorWidth: len(line) - hashEnd,
		Uppercase:      !lower,
		Algorithm:      algo,
	}, nil
}

// RecordWidth returns the distance in bytes between consecutive records.
func (l Layout) RecordWidth() int {
	return l.HashWidth + l.SeparatorWidth
}

// AppendDigest appends the hex digest of s, in the list's letter case, to dst.
func (l Layout) AppendDigest(dst []byte, s string) []byte {
	var sum [sha512Size]byte
	raw := l.Algorithm.Sum(sum[:0], []byte(s))
	start := len(dst)
	dst = hex.AppendEncode(dst, raw)
	if l.Uppercase {
		for i := start; i < len(dst); i++ {
			if c := dst[i]; 'a' <= c && c <= 'f' {
				dst[i] = c - ('a' - 'A')
			}
		}
	}
	return dst
}

// Digest returns the hex digest of s in the list's letter case.
func (l Layout) Digest(s string) []byte {
	return l.AppendDigest(make([]byte, 0, l.HashWidth), s)
}

// sha512Size is the largest raw digest any Algorithm produces.
const sha512Size = 64

func isAlnum(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func trimEOL(line []byte) []byte {
	n := len(line)
	if n > 0 && line[n-1] == '\n' {
		n--
		if n > 0 && line[n-1] == '\r' {
			n--
		}
	}
	return line[:n]
}
