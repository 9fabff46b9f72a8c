package sums

import (
	"strings"
	"testing"
)

func TestDigestRenderings(t *testing.T) {
	d := SumString("hello\n")
	if len(d.Hex()) != 32 {
		t.Fatalf("got %q", d.Hex())
	}
	if len(d.Short()) != 10 {
		t.Fatalf("got %q", d.Short())
	}
	if SumLines([]string{"hel", "lo\n"}) != d {
		t.Fatal()
	}
	if Sum([]byte("hello\n")) != d {
		t.Fatal()
	}
}

func TestExtract(t *testing.T) {
	h := NewHandler("[[[end]]]")

	kind, value := h.Extract("//[[[end]]]")
	if kind != KindNone || value != "" {
		t.Fatalf("got %v %q", kind, value)
	}

	kind, value = h.Extract("//[[[end]]] (checksum: a8540982e5ad6b95c9e9a184b26f4346)")
	if kind != KindHex || value != "a8540982e5ad6b95c9e9a184b26f4346" {
		t.Fatalf("got %v %q", kind, value)
	}

	kind, value = h.Extract("//[[[end]]] (sum: qFQJguWta5)")
	if kind != KindShort || value != "qFQJguWta5" {
		t.Fatalf("got %v %q", kind, value)
	}
}

func TestValidate(t *testing.T) {
	h := NewHandler("[[[end]]]")
	d := SumString("hello\n")

	// no annotation always passes
	if err := h.Validate("//[[[end]]]", d); err != nil {
		t.Fatal(err)
	}

	if err := h.Validate("//[[[end]]] (checksum: "+d.Hex()+")", d); err != nil {
		t.Fatal(err)
	}
	if err := h.Validate("//[[[end]]] (sum: "+d.Short()+")", d); err != nil {
		t.Fatal(err)
	}

	other := SumString("tampered\n")
	if err := h.Validate("//[[[end]]] (checksum: "+other.Hex()+")", d); err == nil {
		t.Fatal("should error")
	}
	if err := h.Validate("//[[[end]]] (sum: "+other.Short()+")", d); err == nil {
		t.Fatal("should error")
	}
}

func TestFormatEndLine(t *testing.T) {
	h := NewHandler("[[[end]]]")
	d := SumString("hello\n")

	// insert after the token
	line := h.FormatEndLine("//[[[end]]] trailing", d, true, false)
	if line != "//[[[end]]] (sum: "+d.Short()+") trailing" {
		t.Fatalf("got %q", line)
	}

	// replace an existing annotation exactly once
	old := SumString("old\n")
	line = h.FormatEndLine("//[[[end]]] (sum: "+old.Short()+")", d, true, false)
	if line != "//[[[end]]] (sum: "+d.Short()+")" {
		t.Fatalf("got %q", line)
	}

	// legacy annotations upgrade to the current format by default
	line = h.FormatEndLine("//[[[end]]] (checksum: "+old.Hex()+")", d, true, false)
	if line != "//[[[end]]] (sum: "+d.Short()+")" {
		t.Fatalf("got %q", line)
	}

	// preserve re-emits the existing format
	line = h.FormatEndLine("//[[[end]]] (checksum: "+old.Hex()+")", d, true, true)
	if line != "//[[[end]]] (checksum: "+d.Hex()+")" {
		t.Fatalf("got %q", line)
	}
	line = h.FormatEndLine("//[[[end]]] (sum: "+old.Short()+")", d, true, true)
	if line != "//[[[end]]] (sum: "+d.Short()+")" {
		t.Fatalf("got %q", line)
	}

	// preserve without an existing annotation writes the current format
	line = h.FormatEndLine("//[[[end]]]", d, true, true)
	if line != "//[[[end]]] (sum: "+d.Short()+")" {
		t.Fatalf("got %q", line)
	}

	// strip
	line = h.FormatEndLine("//[[[end]]] (checksum: "+old.Hex()+")\n", d, false, false)
	if line != "//[[[end]]]\n" {
		t.Fatalf("got %q", line)
	}
	line = h.FormatEndLine("//[[[end]]]\n", d, false, false)
	if line != "//[[[end]]]\n" {
		t.Fatalf("got %q", line)
	}

	if strings.Contains(h.FormatEndLine("//[[[end]]]", d, false, false), "sum") {
		t.Fatal()
	}
}

func TestCustomMarker(t *testing.T) {
	h := NewHandler("<<done>>")
	d := SumString("x")
	line := h.FormatEndLine("# <<done>>", d, true, false)
	if line != "# <<done>> (sum: "+d.Short()+")" {
		t.Fatalf("got %q", line)
	}
	if err := h.Validate(line, d); err != nil {
		t.Fatal(err)
	}
}
