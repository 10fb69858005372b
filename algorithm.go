package pwnedlist

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/md4"

	pwerrors "github.com/tamirms/pwnedlist/errors"
)

// Algorithm identifies the digest function that produced a hash list.
// The zero value is SHA1, the format of the Pwned Passwords SHA-1 list.
type Algorithm uint16

const (
	// SHA1 is the 160-bit SHA-1 digest (40 hex characters).
	SHA1 Algorithm = iota

	// SHA256 is the 256-bit SHA-256 digest (64 hex characters).
	SHA256

	// SHA512 is the 512-bit SHA-512 digest (128 hex characters).
	SHA512

	// MD5 is the 128-bit MD5 digest (32 hex characters).
	MD5

	// NTLM is MD4 over the UTF-16LE encoding of the password, as used by the
	// Pwned Passwords NTLM list (32 hex characters).
	NTLM

	// BLAKE2b256 is the 256-bit BLAKE2b digest (64 hex characters).
	BLAKE2b256

	// XXH64 is the 64-bit xxHash digest, big-endian (16 hex characters).
	XXH64

	// XXH3 is the 128-bit xxHash3 digest, high word first (32 hex characters).
	XXH3

	// Murmur3 is the 128-bit x64 MurmurHash3 digest, h1 first (32 hex characters).
	Murmur3

	numAlgorithms
)

var algorithmNames = [numAlgorithms]string{
	SHA1:       "sha1",
	SHA256:     "sha256",
	SHA512:     "sha512",
	MD5:        "md5",
	NTLM:       "ntlm",
	BLAKE2b256: "blake2b-256",
	XXH64:      "xxh64",
	XXH3:       "xxh3-128",
	Murmur3:    "murmur3-128",
}

// String returns the algorithm name.
func (a Algorithm) String() string {
	if a < numAlgorithms {
		return algorithmNames[a]
	}
	return "unknown"
}

// Algorithms returns every supported algorithm in declaration order.
func Algorithms() []Algorithm {
	algos := make([]Algorithm, 0, numAlgorithms)
	for a := range numAlgorithms {
		algos = append(algos, a)
	}
	return algos
}

// ParseAlgorithm returns the algorithm with the given name. Matching is
// case-insensitive. Returns ErrUnknownAlgorithm for unrecognized names.
func ParseAlgorithm(name string) (Algorithm, error) {
	for a, n := range algorithmNames {
		if strings.EqualFold(n, name) {
			return Algorithm(a), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", pwerrors.ErrUnknownAlgorithm, name)
}

// Sum appends the raw digest of data to dst and returns the extended slice.
// Panics if a is not a supported algorithm.
func (a Algorithm) Sum(dst, data []byte) []byte {
	switch a {
	case SHA1:
		sum := sha1.Sum(data)
		return append(dst, sum[:]...)
	case SHA256:
		sum := sha256.Sum256(data)
		return append(dst, sum[:]...)
	case SHA512:
		sum := sha512.Sum512(data)
		return append(dst, sum[:]...)
	case MD5:
		sum := md5.Sum(data)
		return append(dst, sum[:]...)
	case NTLM:
		h := md4.New()
		h.Write(utf16LE(data))
		return h.Sum(dst)
	case BLAKE2b256:
		sum := blake2b.Sum256(data)
		return append(dst, sum[:]...)
	case XXH64:
		return binary.BigEndian.AppendUint64(dst, xxhash.Sum64(data))
	case XXH3:
		h := xxh3.Hash128(data)
		dst = binary.BigEndian.AppendUint64(dst, h.Hi)
		return binary.BigEndian.AppendUint64(dst, h.Lo)
	case Murmur3:
		h1, h2 := murmur3.Sum128(data)
		dst = binary.BigEndian.AppendUint64(dst, h1)
		return binary.BigEndian.AppendUint64(dst, h2)
	}
	panic(fmt.Sprintf("pwnedlist: Sum called with unsupported algorithm %d", a))
}

// HexLen returns the length of the hex-encoded digest of the empty string.
// Every record's hash field in a list produced by a is exactly this wide.
func (a Algorithm) HexLen() int {
	return 2 * len(a.Sum(nil, nil))
}

func (a Algorithm) valid() bool {
	return a < numAlgorithms
}

// utf16LE re-encodes UTF-8 input as UTF-16 little-endian. Invalid UTF-8
// sequences become U+FFFD.
func utf16LE(data []byte) []byte {
	units := utf16.Encode([]rune(string(data)))
	out := make([]byte, 0, 2*len(units))
	for _, u := range units {
		out = binary.LittleEndian.AppendUint16(out, u)
	}
	return out
}
