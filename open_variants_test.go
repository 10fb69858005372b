package pwnedlist

import (
	"os"
	"testing"
)

// TestOpenFile verifies that OpenFile produces an index that agrees with Open,
// and that the file may be closed as soon as OpenFile returns.
func TestOpenFile(t *testing.T) {
	rng := newTestRNG(t)
	pws := randomPasswords(rng, 300)
	path := writeList(t, buildList(SHA1, true, ":9\n", pws...))

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("os.Open: %v", err)
	}
	idxFile, err := OpenFile(f)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer idxFile.Close()
	f.Close()

	idxPath, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer idxPath.Close()

	if idxFile.Layout() != idxPath.Layout() {
		t.Fatalf("layouts differ: %+v vs %+v", idxFile.Layout(), idxPath.Layout())
	}
	for _, pw := range pws {
		if !idxFile.Probe(pw, true) {
			t.Fatalf("OpenFile index missing %q", pw)
		}
	}
}

// TestOpenBytesMatchesOpen verifies that OpenBytes and Open return the same
// records and answers.
func TestOpenBytesMatchesOpen(t *testing.T) {
	rng := newTestRNG(t)
	pws := randomPasswords(rng, 300)
	data := buildList(NTLM, false, ":1\n", pws[:200]...)

	idxBytes, err := OpenBytes(data, WithAlgorithm(NTLM))
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	defer idxBytes.Close()
	idxPath := openList(t, data, WithAlgorithm(NTLM))

	if idxBytes.Len() != idxPath.Len() {
		t.Fatalf("Len: %d vs %d", idxBytes.Len(), idxPath.Len())
	}
	for i := range idxBytes.Len() {
		if string(idxBytes.Record(i)) != string(idxPath.Record(i)) {
			t.Fatalf("Record(%d) differs", i)
		}
	}
	for _, pw := range pws {
		if idxBytes.Probe(pw, true) != idxPath.Probe(pw, true) {
			t.Fatalf("Probe(%q) differs", pw)
		}
	}
}

func TestOpenBytesCloseIsNoop(t *testing.T) {
	data := buildList(SHA1, false, "\n", "a")
	idx, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	if err := idx.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if len(data) != 41 {
		t.Errorf("data modified by Close")
	}
}
