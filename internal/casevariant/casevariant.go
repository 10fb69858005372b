// Package casevariant enumerates the letter-case variants of a string.
package casevariant

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Letters returns the number of runes in s whose lowercase and uppercase
// forms differ. s has exactly 2^Letters(s) distinct case variants.
func Letters(s string) int {
	n := 0
	for _, r := range s {
		if unicode.ToLower(r) != unicode.ToUpper(r) {
			n++
		}
	}
	return n
}

// Variants returns a lazy sequence over every way of choosing lowercase or
// uppercase for each rune of s.
//
// Order matches a Cartesian product over the runes: the first rune varies
// slowest and lowercase precedes uppercase, so the all-lowercase variant comes
// first and the all-uppercase variant last. Runes without distinct case forms
// contribute a single choice, so no variant is produced twice. Uncased runes
// and bytes that are not valid UTF-8 are copied through unchanged. The
// sequence can be ranged over repeatedly; each pass starts from the beginning.
func Variants(s string) iter.Seq[string] {
	return func(yield func(string) bool) {
		var cased []position
		for i := 0; i < len(s); {
			r, size := utf8.DecodeRuneInString(s[i:])
			if lo, up := unicode.ToLower(r), unicode.ToUpper(r); lo != up {
				cased = append(cased, position{
					start: i,
					end:   i + size,
					lower: string(lo),
					upper: string(up),
				})
			}
			i += size
		}
		upper := make([]bool, len(cased))

		var b strings.Builder
		for {
			b.Reset()
			b.Grow(len(s))
			prev := 0
			for j, c := range cased {
				b.WriteString(s[prev:c.start])
				if upper[j] {
					b.WriteString(c.upper)
				} else {
					b.WriteString(c.lower)
				}
				prev = c.end
			}
			b.WriteString(s[prev:])
			if !yield(b.String()) {
				return
			}

			// Odometer step: flip the rightmost lowercase position to
			// uppercase and reset everything to its right.
			j := len(cased) - 1
			for ; j >= 0 && upper[j]; j-- {
				upper[j] = false
			}
			if j < 0 {
				return
			}
			upper[j] = true
		}
	}
}

// position is the byte range of one cased rune in the input.
type position struct {
	start, end   int
	lower, upper string
}
