package cogs

import (
	"path/filepath"
	"strings"

	"github.com/reusee/starcog/cmds"
)

// DefineFlags binds this Options instance to an executor, so a repeated
// parse on a clone (one file-list line, say) refines the clone only.
func (o *Options) DefineFlags(executor *cmds.Executor) {

	executor.Define("-checksum", cmds.Func(func() {
		o.HashOutput = true
	}).Desc("checksum the output to protect it against accidental change").Alias("-c"))

	executor.Define("-delete", cmds.Func(func() {
		o.DeleteCode = true
	}).Desc("delete the generator code from the output file").Alias("-d"))

	executor.Define("-define", cmds.Func(func(nameValue string) error {
		name, value, ok := strings.Cut(nameValue, "=")
		if !ok {
			return &UsageError{Msg: "-define takes a name=value argument"}
		}
		o.Defines[name] = value
		return nil
	}).Desc("define a global available to generator code, as name=value").Alias("-D"))

	executor.Define("-warn-empty", cmds.Func(func() {
		o.WarnEmpty = true
	}).Desc("warn if a file has no generator code in it").Alias("-e"))

	executor.Define("-include", cmds.Func(func(path string) {
		for _, dir := range filepath.SplitList(path) {
			if abs, err := filepath.Abs(dir); err == nil {
				dir = abs
			}
			o.IncludePath = append(o.IncludePath, dir)
		}
	}).Desc("add a directory to the include path for loadable modules").Alias("-I"))

	executor.Define("-encoding", cmds.Func(func(name string) {
		o.Encoding = name
	}).Desc("use this encoding when reading and writing files").Alias("-n"))

	executor.Define("-out", cmds.Func(func(path string) {
		o.OutputName = path
	}).Desc("write the output to this path").Alias("-o"))

	executor.Define("-prologue", cmds.Func(func(text string) {
		o.Prologue = text
	}).Desc("prepend the generator source with this text").Alias("-p"))

	executor.Define("-print", cmds.Func(func() {
		o.PrintCapture = true
	}).Desc("use print() instead of cog.emit_line() for code output").Alias("-P"))

	executor.Define("-replace", cmds.Func(func() {
		o.Replace = true
	}).Desc("replace the input file with the output").Alias("-r"))

	executor.Define("-suffix", cmds.Func(func(text string) {
		o.Suffix = text
	}).Desc("suffix all generated output lines with this text").Alias("-s"))

	executor.Define("-unix-newlines", cmds.Func(func() {
		o.UnixNewlines = true
	}).Desc("write the output with only LF line endings").Alias("-U"))

	executor.Define("-writable-cmd", cmds.Func(func(cmd string) {
		o.MakeWritableCmd = cmd
	}).Desc("run this command if the output file needs to be made writable, %s is the filename").Alias("-w"))

	executor.Define("-no-generate", cmds.Func(func() {
		o.NoGenerate = true
	}).Desc("excise all generated output without running the generators").Alias("-x"))

	executor.Define("-eof-end", cmds.Func(func() {
		o.EofCanBeEnd = true
	}).Desc("the end-output marker can be omitted and is assumed at eof").Alias("-z"))

	executor.Define("-check", cmds.Func(func() {
		o.Check = true
	}).Desc("check that the files would not change if run again"))

	executor.Define("-markers", cmds.Func(func(spec string) error {
		markers, err := ParseMarkers(spec)
		if err != nil {
			return err
		}
		o.Markers = markers
		return nil
	}).Desc("the three marker tokens, as 'START END END-OUTPUT'"))

	executor.Define("-verbosity", cmds.Func(func(n int) {
		o.Verbosity = n
	}).Desc("2 lists all files, 1 only changed files, 0 none"))

	executor.Define("-jobs", cmds.Func(func(n int) {
		o.Jobs = max(n, 1)
	}).Desc("process this many files concurrently in replace or check mode"))

	executor.Define("-safe", cmds.Func(func() {
		o.Safe = true
	}).Desc("restrict filesystem writes to the working directory (linux)"))

}

// ParseArgs dispatches flags through the executor and collects positional
// arguments. Unknown dashed arguments are usage errors; a bare "-" is a
// positional (stdin).
func ParseArgs(executor *cmds.Executor, args []string) (positional []string, err error) {
	for len(args) > 0 {
		arg := args[0]
		if executor.Has(arg) {
			args, err = executor.Consume(args)
			if err != nil {
				if _, ok := err.(*UsageError); ok {
					return nil, err
				}
				return nil, &UsageError{Msg: err.Error()}
			}
			continue
		}
		if strings.HasPrefix(arg, "-") && arg != "-" {
			return nil, &UsageError{Msg: "unknown option: " + arg}
		}
		positional = append(positional, arg)
		args = args[1:]
	}
	return positional, nil
}
