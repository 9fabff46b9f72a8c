package cogs

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// processOneFile runs one input file through the state machine, routing the
// result per the output options: a named output file, in-place replace,
// check-only, or stdout.
func (c *Cog) processOneFile(ctx context.Context, file string) error {
	o := c.Options

	ctx, _ = c.newSpan(ctx, "")
	c.logger.InfoContext(ctx, "process file",
		"path", file,
	)

	ns := c.newNamespace(file)

	switch {

	case o.OutputName != "":
		in, err := c.openInput(file)
		if err != nil {
			return err
		}
		defer in.Close()
		out, err := c.openOutput(o.OutputName)
		if err != nil {
			return err
		}
		if err := c.processFile(ctx, in, out, file, o.OutputName, ns); err != nil {
			out.Close()
			return err
		}
		return out.Close()

	case o.Replace || o.Check:
		verb := "Cogging"
		if o.Check {
			verb = "Checking"
		}
		needNewline := false
		// print a partial line with the file name so "(changed)" can land
		// on the same line; break the line before any error shows
		defer func() {
			if needNewline {
				fmt.Fprintln(c.Stdout)
			}
		}()
		if o.Verbosity >= 2 {
			fmt.Fprintf(c.Stdout, "%s %s", verb, file)
			needNewline = true
		}

		oldText, err := c.readFile(file)
		if err != nil {
			return err
		}
		newText, err := c.processString(ctx, oldText, file, ns)
		if err != nil {
			return err
		}
		if oldText != newText {
			if o.Verbosity >= 1 {
				if o.Verbosity < 2 {
					fmt.Fprintf(c.Stdout, "%s %s", verb, file)
				}
				fmt.Fprintln(c.Stdout, "  (changed)")
				needNewline = false
			}
			if o.Replace {
				return c.replaceFile(ctx, file, newText)
			}
			c.checkFailed.Add(1)
		}
		return nil

	default:
		in, err := c.openInput(file)
		if err != nil {
			return err
		}
		defer in.Close()
		return c.processFile(ctx, in, c.Stdout, file, file, ns)
	}
}

// replaceFile rewrites path with newText, invoking the configured
// make-writable command first when the file is read-only.
func (c *Cog) replaceFile(ctx context.Context, path string, newText string) error {
	if !writable(path) {
		if c.Options.MakeWritableCmd == "" {
			return fmt.Errorf("can't overwrite %s", path)
		}
		cmdLine := strings.ReplaceAll(c.Options.MakeWritableCmd, "%s", path)
		cmd := exec.CommandContext(ctx, "/bin/sh", "-c", cmdLine)
		cmd.Stdout = c.Stdout
		cmd.Stderr = c.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("make writable %s: %w", path, err)
		}
		if !writable(path) {
			return fmt.Errorf("couldn't make %s writable", path)
		}
	}
	out, err := c.openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write([]byte(newText)); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
