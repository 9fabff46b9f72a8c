package cogs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/reusee/starcog/cmds"
	"github.com/reusee/starcog/filelists"
	"github.com/reusee/starcog/syncs"
)

// Run processes the positional arguments of one invocation: input files,
// "@list" and "&list" expansions, and glob patterns. Check-mode failures
// are aggregated and raised once at the end.
func (c *Cog) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return &UsageError{Msg: "no files to process"}
	}
	for _, arg := range args {
		if err := c.processArguments(ctx, []string{arg}); err != nil {
			return err
		}
	}
	if n := c.checkFailed.Load(); n > 0 {
		return &CheckFailedError{Count: int(n)}
	}
	return nil
}

// processArguments handles one target plus its trailing option overrides,
// on a clone of the current options so the baseline stays untouched.
func (c *Cog) processArguments(ctx context.Context, args []string) error {
	saved := c.Options
	defer func() {
		c.Options = saved
	}()
	c.Options = saved.Clone()

	executor := cmds.NewExecutor()
	c.Options.DefineFlags(executor)
	if _, err := ParseArgs(executor, args[1:]); err != nil {
		return err
	}
	if err := c.Options.Validate(); err != nil {
		return err
	}

	target := args[0]
	switch {

	case strings.HasPrefix(target, "@"):
		if c.Options.OutputName != "" {
			return &UsageError{Msg: "can't use -out with @file"}
		}
		// paths in the list are relative to the working directory
		return c.processFileList(ctx, target[1:], "")

	case strings.HasPrefix(target, "&"):
		if c.Options.OutputName != "" {
			return &UsageError{Msg: "can't use -out with &file"}
		}
		// paths in the list are relative to the list file's location
		return c.processFileList(ctx, target[1:], filepath.Dir(target[1:]))

	default:
		return c.processWildcards(ctx, target)
	}
}

func (c *Cog) processFileList(ctx context.Context, listPath string, baseDir string) error {
	content, err := c.readFile(listPath)
	if err != nil {
		return err
	}
	for args, err := range filelists.Lines(content) {
		if err != nil {
			return &UsageError{
				Msg: fmt.Sprintf("%s: %s", listPath, err),
			}
		}
		if baseDir != "" {
			args[0] = rebase(args[0], baseDir)
		}
		if err := c.processArguments(ctx, args); err != nil {
			return err
		}
	}
	return nil
}

// rebase prefixes a relative target with dir, keeping any @ or & sigil.
func rebase(target string, dir string) string {
	sigil := ""
	if strings.HasPrefix(target, "@") || strings.HasPrefix(target, "&") {
		sigil, target = target[:1], target[1:]
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	return sigil + target
}

func (c *Cog) processWildcards(ctx context.Context, pattern string) error {
	files, err := filepath.Glob(pattern)
	if err != nil || len(files) == 0 {
		// no match: process the literal path and let it error naturally
		return c.processOneFile(ctx, pattern)
	}

	expanded := strings.ContainsAny(pattern, "*?[")
	var selected []string
	for _, file := range files {
		if expanded && !isTextFile(file) {
			if c.Options.Verbosity >= 1 {
				fmt.Fprintf(c.Stdout, "Warning: skipping non-text file %s\n", file)
			}
			continue
		}
		selected = append(selected, file)
	}

	if c.Options.Jobs > 1 && (c.Options.Replace || c.Options.Check) && len(selected) > 1 {
		return c.processConcurrently(ctx, selected)
	}

	for _, file := range selected {
		if err := c.processOneFile(ctx, file); err != nil {
			return err
		}
	}
	return nil
}

// processConcurrently fans independent files out over -jobs workers. Each
// file gets its own Cog copy (own options, own namespace) and a private
// stdout buffer flushed whole, so progress lines never interleave.
func (c *Cog) processConcurrently(ctx context.Context, files []string) error {
	semaphore := syncs.NewSemaphore(c.Options.Jobs)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, file := range files {
		wg.Add(1)
		semaphore.Acquire()
		go func() {
			defer wg.Done()
			defer semaphore.Release()

			buf := new(bytes.Buffer)
			worker := c.forFile()
			worker.Stdout = buf

			err := worker.processOneFile(ctx, file)

			mu.Lock()
			defer mu.Unlock()
			io.Copy(c.Stdout, buf)
			if err != nil && firstErr == nil {
				firstErr = err
			}
		}()
	}
	wg.Wait()
	return firstErr
}

// isTextFile reports whether the file's sniffed mimetype descends from
// text/plain.
func isTextFile(path string) bool {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return false
	}
	for t := mtype; t != nil; t = t.Parent() {
		if t.Is("text/plain") {
			return true
		}
	}
	return false
}
