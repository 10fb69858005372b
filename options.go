package pwnedlist

// OpenOption is a functional option for configuring Open.
type OpenOption func(*openConfig)

type openConfig struct {
	algorithm    Algorithm
	maxLetters   int  // 0 = unbounded
	adviseRandom bool // madvise(MADV_RANDOM) the mapping
}

func defaultOpenConfig() *openConfig {
	return &openConfig{
		algorithm:    SHA1,
		adviseRandom: true,
	}
}

// WithAlgorithm sets the digest function the hash list was produced with.
// Default is SHA1.
func WithAlgorithm(algo Algorithm) OpenOption {
	return func(c *openConfig) {
		c.algorithm = algo
	}
}

// WithMaxVariantLetters bounds how many cased letters a case-insensitive
// ProbeContext will permute. A password with n cased letters costs 2^n
// lookups, so a bound of 20 caps a single probe at about a million lookups.
// Zero (the default) means unbounded. Probe itself ignores the bound.
func WithMaxVariantLetters(n int) OpenOption {
	return func(c *openConfig) {
		c.maxLetters = max(n, 0)
	}
}

// WithAccessAdvice controls whether the mapping is advised for random access.
// Binary search touches O(log n) scattered pages per lookup, so readahead is
// wasted I/O. Default is true. Only has an effect on Linux.
func WithAccessAdvice(random bool) OpenOption {
	return func(c *openConfig) {
		c.adviseRandom = random
	}
}
