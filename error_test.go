package pwnedlist

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pwerrors "github.com/tamirms/pwnedlist/errors"
)

// ---------------------------------------------------------------------------
// Open: I/O errors
// ---------------------------------------------------------------------------

func TestOpenNonExistentFilePath(t *testing.T) {
	_, err := Open("/nonexistent/path/to/hashes.txt")
	if !errors.Is(err, pwerrors.ErrIO) {
		t.Errorf("Expected ErrIO, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected fs.ErrNotExist to be wrapped, got %v", err)
	}
}

func TestOpenDirectory(t *testing.T) {
	_, err := Open(t.TempDir())
	if !errors.Is(err, pwerrors.ErrIO) {
		t.Errorf("Expected ErrIO when opening a directory, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Open: format errors
// ---------------------------------------------------------------------------

func TestOpenEmptyFile(t *testing.T) {
	emptyFile := filepath.Join(t.TempDir(), "empty.txt")
	f, err := os.Create(emptyFile)
	if err != nil {
		t.Fatal(err)
	}
	f.Close()

	_, err = Open(emptyFile)
	if !errors.Is(err, pwerrors.ErrEmptyFile) {
		t.Errorf("Expected ErrEmptyFile, got %v", err)
	}
	if !errors.Is(err, pwerrors.ErrFormat) {
		t.Errorf("Expected ErrFormat, got %v", err)
	}
	if _, err := OpenBytes(nil); !errors.Is(err, pwerrors.ErrEmptyFile) {
		t.Errorf("OpenBytes(nil): expected ErrEmptyFile, got %v", err)
	}
}

func TestOpenFormatErrors(t *testing.T) {
	sha := strings.Repeat("a", 40)
	tests := []struct {
		name string
		data string
		want error
	}{
		{"blank first line", "\n" + sha + "\n", pwerrors.ErrEmptyFirstLine},
		{"separator first", ":" + sha + "\n", pwerrors.ErrNoHashField},
		{"binary", sha + "\xff\n", pwerrors.ErrNonASCII},
		{"short", "abc:1\n", pwerrors.ErrShortRecord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(writeList(t, []byte(tt.data)))
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
			if !errors.Is(err, pwerrors.ErrFormat) {
				t.Errorf("Expected ErrFormat, got %v", err)
			}
			if errors.Is(err, pwerrors.ErrIO) {
				t.Errorf("format error also reports ErrIO: %v", err)
			}
		})
	}
}

// TestOpenSHA256ListAsSHA1 checks that opening a list with the wrong
// algorithm is not detected: the first 40 bytes are taken as the hash.
func TestOpenSHA256ListAsSHA1(t *testing.T) {
	idx := openList(t, buildList(SHA256, false, "\n", "password"))
	if idx.Layout().HashWidth != 40 {
		t.Errorf("HashWidth = %d, want 40", idx.Layout().HashWidth)
	}
	if idx.Probe("password", true) {
		t.Error("SHA-1 probe matched a SHA-256 list")
	}
}

func TestOpenUnknownAlgorithm(t *testing.T) {
	_, err := Open(writeList(t, buildList(SHA1, false, "\n", "x")), WithAlgorithm(Algorithm(42)))
	if !errors.Is(err, pwerrors.ErrUnknownAlgorithm) {
		t.Errorf("Expected ErrUnknownAlgorithm, got %v", err)
	}
}
