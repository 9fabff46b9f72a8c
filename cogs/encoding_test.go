package cogs

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestEncodedOutput(t *testing.T) {
	options := NewOptions()
	options.Encoding = "latin-1"
	c := newTestCog(t, options)

	path := filepath.Join(t.TempDir(), "out.txt")
	w, err := c.openOutput(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("héllo\n")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{'h', 0xE9, 'l', 'l', 'o', '\n'}
	if !bytes.Equal(content, want) {
		t.Fatalf("got %v", content)
	}
	// the file itself must be closed, not just the encoder flushed
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
}

func TestEncodedRoundTrip(t *testing.T) {
	options := NewOptions()
	options.Encoding = "iso-8859-1"
	c := newTestCog(t, options)

	path := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(path, []byte{'c', 0xE9, '\n'}, 0o644); err != nil {
		t.Fatal(err)
	}
	content, err := c.readFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if content != "cé\n" {
		t.Fatalf("got %q", content)
	}
}

func TestLookupEncodingUnknown(t *testing.T) {
	options := NewOptions()
	options.Encoding = "no-such-codec"
	c := newTestCog(t, options)
	if _, err := c.lookupEncoding(); err == nil {
		t.Fatal("expected error")
	}
}
