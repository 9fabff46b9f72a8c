package starlarks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reusee/starcog/snippets"
)

func run(t *testing.T, ns snippets.Namespace, code string, ch *snippets.Channel) error {
	t.Helper()
	return ns.Run(context.Background(), snippets.Unit{
		Name:      "<cog test.txt:1>",
		Code:      code,
		File:      "test.txt",
		FirstLine: 1,
	}, ch)
}

func TestEmit(t *testing.T) {
	ev := New(snippets.Config{})
	ns := ev.NewNamespace(nil)
	ch := &snippets.Channel{}
	if err := run(t, ns, `cog.emit_line("hello")`, ch); err != nil {
		t.Fatal(err)
	}
	if ch.Output() != "hello\n" {
		t.Fatalf("got %q", ch.Output())
	}
}

func TestFlatAliases(t *testing.T) {
	ev := New(snippets.Config{})
	ns := ev.NewNamespace(nil)
	ch := &snippets.Channel{}
	if err := run(t, ns, `cog_emit_line("hello")`, ch); err != nil {
		t.Fatal(err)
	}
	if ch.Output() != "hello\n" {
		t.Fatalf("got %q", ch.Output())
	}
}

func TestEmitKwargs(t *testing.T) {
	ev := New(snippets.Config{})
	ns := ev.NewNamespace(nil)
	ch := &snippets.Channel{}
	err := run(t, ns, `cog.emit("""
  a
  b
""", dedent=True, trim_blank_lines=True)`, ch)
	if err != nil {
		t.Fatal(err)
	}
	if ch.Output() != "a\nb\n" {
		t.Fatalf("got %q", ch.Output())
	}
}

func TestGlobalsPersistAcrossRegions(t *testing.T) {
	ev := New(snippets.Config{})
	ns := ev.NewNamespace(nil)
	if err := run(t, ns, `x = 42`, &snippets.Channel{}); err != nil {
		t.Fatal(err)
	}
	ch := &snippets.Channel{}
	if err := run(t, ns, `cog.emit_line(str(x))`, ch); err != nil {
		t.Fatal(err)
	}
	if ch.Output() != "42\n" {
		t.Fatalf("got %q", ch.Output())
	}
}

func TestNamespacesIsolated(t *testing.T) {
	ev := New(snippets.Config{})
	ns1 := ev.NewNamespace(nil)
	if err := run(t, ns1, `x = 42`, &snippets.Channel{}); err != nil {
		t.Fatal(err)
	}
	ns2 := ev.NewNamespace(nil)
	err := run(t, ns2, `cog.emit_line(str(x))`, &snippets.Channel{})
	if err == nil {
		t.Fatal("should error")
	}
	var snipErr *snippets.SnippetError
	if !errors.As(err, &snipErr) {
		t.Fatalf("got %v", err)
	}
}

func TestDefines(t *testing.T) {
	ev := New(snippets.Config{})
	ns := ev.NewNamespace(map[string]any{
		"name":  "world",
		"count": 3,
		"tags":  []string{"a", "b"},
	})
	ch := &snippets.Channel{}
	if err := run(t, ns, `cog.emit_line(name + str(count) + tags[1])`, ch); err != nil {
		t.Fatal(err)
	}
	if ch.Output() != "world3b\n" {
		t.Fatalf("got %q", ch.Output())
	}
}

func TestPythonisms(t *testing.T) {
	// while loops, sets, top-level control flow, global reassignment
	ev := New(snippets.Config{})
	ns := ev.NewNamespace(nil)
	ch := &snippets.Channel{}
	err := run(t, ns, `
i = 0
while i < 3:
    cog.emit(str(i))
    i += 1
if True:
    cog.emit_line("")
seen = set([1, 2])
`, ch)
	if err != nil {
		t.Fatal(err)
	}
	if ch.Output() != "012\n" {
		t.Fatalf("got %q", ch.Output())
	}
}

func TestGeneratorError(t *testing.T) {
	ev := New(snippets.Config{})
	ns := ev.NewNamespace(nil)
	err := run(t, ns, `cog.error("bad input")`, &snippets.Channel{})
	var genErr *snippets.GeneratedError
	if !errors.As(err, &genErr) {
		t.Fatalf("got %v", err)
	}
	if genErr.Msg != "bad input" {
		t.Fatalf("got %q", genErr.Msg)
	}
}

func TestGeneratorErrorDefaultMessage(t *testing.T) {
	ev := New(snippets.Config{})
	ns := ev.NewNamespace(nil)
	err := run(t, ns, `cog.error()`, &snippets.Channel{})
	var genErr *snippets.GeneratedError
	if !errors.As(err, &genErr) {
		t.Fatalf("got %v", err)
	}
	if genErr.Msg != "error raised by generator" {
		t.Fatalf("got %q", genErr.Msg)
	}
}

func TestSnippetErrorRemapped(t *testing.T) {
	ev := New(snippets.Config{})
	ns := ev.NewNamespace(nil)
	err := ns.Run(context.Background(), snippets.Unit{
		Name:      "<cog f.c:10>",
		Prologue:  "p = 1",
		Code:      "a = 1\nb = 1 // 0",
		File:      "f.c",
		FirstLine: 10,
	}, &snippets.Channel{})
	var snipErr *snippets.SnippetError
	if !errors.As(err, &snipErr) {
		t.Fatalf("got %v", err)
	}
	found := false
	for _, f := range snipErr.Frames {
		// code line 2, prologue length 1: file line 10 + 3 - 1 = 12
		if f.File == "f.c" && f.Line == 12 && f.Source == "b = 1 // 0" {
			found = true
		}
	}
	if !found {
		t.Fatalf("got %+v", snipErr.Frames)
	}
	if !strings.Contains(snipErr.Traceback(), `File "f.c", line 12`) {
		t.Fatalf("got %q", snipErr.Traceback())
	}
}

func TestResolveErrorRemapped(t *testing.T) {
	ev := New(snippets.Config{})
	ns := ev.NewNamespace(nil)
	err := ns.Run(context.Background(), snippets.Unit{
		Name:      "<cog f.c:10>",
		Prologue:  "p = 1",
		Code:      "a = 1\nno_such_name()",
		File:      "f.c",
		FirstLine: 10,
	}, &snippets.Channel{})
	var snipErr *snippets.SnippetError
	if !errors.As(err, &snipErr) {
		t.Fatalf("got %v", err)
	}
	if len(snipErr.Frames) == 0 {
		t.Fatalf("got %+v", snipErr)
	}
	f := snipErr.Frames[0]
	if f.File != "f.c" || f.Line != 12 || f.Source != "no_such_name()" {
		t.Fatalf("got %+v", f)
	}
	if !strings.Contains(snipErr.Error(), "undefined: no_such_name") {
		t.Fatalf("got %q", snipErr.Error())
	}
}

func TestSyntaxError(t *testing.T) {
	ev := New(snippets.Config{})
	ns := ev.NewNamespace(nil)
	err := run(t, ns, `def broken(:`, &snippets.Channel{})
	var snipErr *snippets.SnippetError
	if !errors.As(err, &snipErr) {
		t.Fatalf("got %v", err)
	}
}

func TestPrintCapture(t *testing.T) {
	ev := New(snippets.Config{PrintCapture: true})
	ns := ev.NewNamespace(nil)
	ch := &snippets.Channel{}
	if err := run(t, ns, `print("captured")`, ch); err != nil {
		t.Fatal(err)
	}
	if ch.Output() != "captured\n" {
		t.Fatalf("got %q", ch.Output())
	}
}

func TestPrintGoesToMessagesOtherwise(t *testing.T) {
	var msgs strings.Builder
	ev := New(snippets.Config{})
	ns := ev.NewNamespace(nil)
	ch := &snippets.Channel{Messages: &msgs}
	if err := run(t, ns, `print("aside")`, ch); err != nil {
		t.Fatal(err)
	}
	if ch.Output() != "" {
		t.Fatalf("got %q", ch.Output())
	}
	if msgs.String() != "aside\n" {
		t.Fatalf("got %q", msgs.String())
	}
}

func TestRegionState(t *testing.T) {
	ev := New(snippets.Config{})
	ns := ev.NewNamespace(nil)
	ch := &snippets.Channel{
		PreviousOutput:  "old text\n",
		FirstLineNumber: 7,
		InFile:          "in.c",
		OutFile:         "out.c",
	}
	err := run(t, ns, `cog.emit_line(cog.previous_output + str(cog.first_line_number) + cog.in_file + cog.out_file)`, ch)
	if err != nil {
		t.Fatal(err)
	}
	if ch.Output() != "old text\n7in.cout.c\n" {
		t.Fatalf("got %q", ch.Output())
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lib.star"), []byte("def double(x):\n    return x * 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ev := New(snippets.Config{IncludePath: []string{dir}})
	ns := ev.NewNamespace(nil)
	ch := &snippets.Channel{}
	err := run(t, ns, `
load("lib.star", "double")
cog.emit_line(str(double(21)))
`, ch)
	if err != nil {
		t.Fatal(err)
	}
	if ch.Output() != "42\n" {
		t.Fatalf("got %q", ch.Output())
	}
}

func TestLoadCycle(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.star"), []byte(`load("b.star", "b")`+"\na = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.star"), []byte(`load("a.star", "a")`+"\nb = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ev := New(snippets.Config{IncludePath: []string{dir}})
	ns := ev.NewNamespace(nil)
	err := run(t, ns, `load("a.star", "a")`, &snippets.Channel{})
	if err == nil {
		t.Fatal("should error")
	}
	if !strings.Contains(err.Error(), "cycle") {
		t.Fatalf("got %v", err)
	}
}

func TestLoadNotFound(t *testing.T) {
	ev := New(snippets.Config{})
	ns := ev.NewNamespace(nil)
	err := run(t, ns, `load("missing.star", "x")`, &snippets.Channel{})
	if err == nil {
		t.Fatal("should error")
	}
}

func TestCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ev := New(snippets.Config{})
	ns := ev.NewNamespace(nil)
	err := ns.Run(ctx, snippets.Unit{
		Name:      "<cog t:1>",
		Code:      "while True:\n    pass",
		File:      "t",
		FirstLine: 1,
	}, &snippets.Channel{})
	if err == nil {
		t.Fatal("should error")
	}
}
