package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/starcog/cmds"
	"github.com/reusee/starcog/cogs"
	"github.com/reusee/starcog/logs"
	"github.com/reusee/starcog/modes"
	"github.com/reusee/starcog/snippets"
	"github.com/reusee/starcog/starlarks"
)

const version = "0.1.0"

func main() {
	ctx := context.Background()

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	scope.Call(func(
		logger logs.Logger,
		options *cogs.Options,
		newCog cogs.New,
		runREPL starlarks.RunREPL,
	) {

		doVersion := false
		doRepl := false

		executor := cmds.NewExecutor()
		options.DefineFlags(executor)
		executor.Define("-version", cmds.Func(func() {
			doVersion = true
		}).Desc("print the version"))
		executor.Define("-repl", cmds.Func(func() {
			doRepl = true
		}).Desc("start an interactive session"))

		files, err := cogs.ParseArgs(executor, os.Args[1:])
		exitOn(err)

		if doVersion {
			fmt.Println("starcog", version)
			return
		}
		if doRepl {
			runREPL(options.Defines)
			return
		}

		exitOn(options.Validate())

		if options.Safe {
			ce(cogs.EnterSandbox())
			logger.InfoContext(ctx, "sandbox entered")
		}

		exitOn(newCog(options).Run(ctx, files))

	})

}

// exitOn reports err on stderr and exits with a code telling apart usage
// errors, error() raised by generators, other generator failures, and
// check-mode failures.
func exitOn(err error) {
	if err == nil {
		return
	}

	var usageErr *cogs.UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(os.Stderr, usageErr.Msg)
		fmt.Fprintln(os.Stderr, "(for help use -h)")
		os.Exit(2)
	}

	var generatedErr *snippets.GeneratedError
	if errors.As(err, &generatedErr) {
		fmt.Fprintln(os.Stderr, "Error:", generatedErr.Msg)
		os.Exit(3)
	}

	var snippetErr *snippets.SnippetError
	if errors.As(err, &snippetErr) {
		fmt.Fprintln(os.Stderr, "Traceback (most recent call last):")
		fmt.Fprint(os.Stderr, snippetErr.Traceback())
		os.Exit(4)
	}

	var checkErr *cogs.CheckFailedError
	if errors.As(err, &checkErr) {
		fmt.Fprintln(os.Stderr, checkErr.Error())
		os.Exit(5)
	}

	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
