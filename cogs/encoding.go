package cogs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/term"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

func (c *Cog) lookupEncoding() (encoding.Encoding, error) {
	name := c.Options.Encoding
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return nil, nil
	}
	enc, _ := charset.Lookup(name)
	if enc == nil {
		// python codec names use hyphens and underscores freely,
		// e.g. latin-1 for the latin1 label
		squashed := strings.Map(func(r rune) rune {
			if r == '-' || r == '_' {
				return -1
			}
			return r
		}, name)
		enc, _ = charset.Lookup(squashed)
	}
	if enc == nil {
		return nil, &UsageError{
			Msg: fmt.Sprintf("unknown encoding %q", name),
		}
	}
	return enc, nil
}

// openInput opens a named input, "-" meaning stdin, decoding from the
// configured encoding.
func (c *Cog) openInput(name string) (io.ReadCloser, error) {
	if name == "-" {
		if term.IsTerminal(int(os.Stdin.Fd())) && c.Options.Verbosity >= 2 {
			fmt.Fprintln(c.Stderr, "reading from terminal stdin, use -h for help")
		}
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	enc, err := c.lookupEncoding()
	if err != nil {
		f.Close()
		return nil, err
	}
	if enc == nil {
		return f, nil
	}
	return &readCloser{
		Reader: transform.NewReader(f, enc.NewDecoder()),
		close:  f.Close,
	}, nil
}

func (c *Cog) readFile(name string) (string, error) {
	f, err := c.openInput(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// openOutput creates a named output file, making parent directories,
// encoding into the configured encoding with the configured newlines.
func (c *Cog) openOutput(name string) (io.WriteCloser, error) {
	if dir := filepath.Dir(name); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	enc, err := c.lookupEncoding()
	if err != nil {
		return nil, err
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}

	var w io.Writer = f
	closers := []func() error{f.Close}
	if enc != nil {
		tw := transform.NewWriter(f, enc.NewEncoder())
		w = tw
		// tw.Close flushes but does not close f
		closers = []func() error{tw.Close, f.Close}
	}
	if !c.Options.UnixNewlines && runtime.GOOS == "windows" {
		w = &crlfWriter{w: w}
	}
	return &writeCloser{
		Writer:  w,
		closers: closers,
	}, nil
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r *readCloser) Close() error {
	return r.close()
}

type writeCloser struct {
	io.Writer
	closers []func() error
}

func (w *writeCloser) Close() error {
	var firstErr error
	for _, close := range w.closers {
		if err := close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type crlfWriter struct {
	w io.Writer
}

func (w *crlfWriter) Write(p []byte) (int, error) {
	out := make([]byte, 0, len(p)+16)
	for _, b := range p {
		if b == '\n' {
			out = append(out, '\r')
		}
		out = append(out, b)
	}
	if _, err := w.w.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}
