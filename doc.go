// Package pwnedlist checks passwords against large sorted hash lists, such as
// the Pwned Passwords SHA-1 and NTLM downloads, without loading them into
// memory.
//
// A hash list is a text file with one fixed-width record per line: a hex
// digest followed by separator bytes (for example ":12345\r\n"). The record
// geometry is inferred from the first line when the list is opened, after
// which lookups binary-search the memory-mapped file by record index.
//
// # Basic Usage
//
//	idx, err := pwnedlist.Open("pwned-passwords-sha1-ordered-by-hash.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer idx.Close()
//
//	if idx.Probe("hunter2", true) {
//	    fmt.Println("Found!")
//	}
//
// Lists built with another digest are opened with WithAlgorithm:
//
//	idx, err := pwnedlist.Open(path, pwnedlist.WithAlgorithm(pwnedlist.NTLM))
//
// # Requirements on the list
//
// Records must be sorted ascending by the raw bytes of the hex digest, all
// lines must have the same byte width, and the hex digits must be in a
// single letter case. The width of the digest field is the algorithm's hex
// digest length. Open does not check any of this; Verify does.
//
// A final line without a line terminator is one byte short of a record and
// is ignored.
//
// # Case-insensitive probes
//
// Probe(password, false) tries every upper/lowercase combination of the
// password's letters: 2^n lookups for n cased letters. Use ProbeContext and
// WithMaxVariantLetters to bound the cost for untrusted input.
//
// # Package Structure
//
//   - Public API: index.go (Open, Contains, Record), probe.go (Probe, ProbeContext, CheckAll)
//   - Record geometry: layout.go (InferLayout, Layout)
//   - Digests: algorithm.go (Algorithm, ParseAlgorithm)
//   - Configuration: options.go (OpenOption, With* functions)
//   - Integrity: verify.go (Verify)
//   - Case variants: internal/casevariant/
//   - Platform: advise_*.go (OS-specific page-access hints)
package pwnedlist
