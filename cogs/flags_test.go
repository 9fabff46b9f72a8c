package cogs

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/reusee/starcog/cmds"
)

func TestDefineFlags(t *testing.T) {
	o := NewOptions()
	executor := cmds.NewExecutor()
	o.DefineFlags(executor)

	positional, err := ParseArgs(executor, []string{
		"-c",
		"-D", "name=val",
		"a.txt",
		"-s", " //x",
		"-markers", "<a >b <c>",
		"-verbosity", "0",
		"-jobs", "8",
		"b.txt",
		"-",
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(positional) != 3 || positional[0] != "a.txt" || positional[1] != "b.txt" || positional[2] != "-" {
		t.Fatalf("got %v", positional)
	}
	if !o.HashOutput {
		t.Fatal("expected HashOutput")
	}
	if o.Defines["name"] != "val" {
		t.Fatalf("got %v", o.Defines)
	}
	if o.Suffix != " //x" {
		t.Fatalf("got %q", o.Suffix)
	}
	if o.Markers.Begin != "<a" {
		t.Fatalf("got %+v", o.Markers)
	}
	if o.Verbosity != 0 {
		t.Fatalf("got %v", o.Verbosity)
	}
	if o.Jobs != 8 {
		t.Fatalf("got %v", o.Jobs)
	}
}

func TestParseArgsUnknownOption(t *testing.T) {
	o := NewOptions()
	executor := cmds.NewExecutor()
	o.DefineFlags(executor)

	_, err := ParseArgs(executor, []string{"-nope"})
	var usageErr *UsageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("got %v", err)
	}
}

func TestParseArgsBadDefine(t *testing.T) {
	o := NewOptions()
	executor := cmds.NewExecutor()
	o.DefineFlags(executor)

	_, err := ParseArgs(executor, []string{"-D", "noequals"})
	var usageErr *UsageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("got %v", err)
	}
}

func TestParseArgsBadMarkers(t *testing.T) {
	o := NewOptions()
	executor := cmds.NewExecutor()
	o.DefineFlags(executor)

	_, err := ParseArgs(executor, []string{"-markers", "onlyone"})
	var usageErr *UsageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("got %v", err)
	}
}

func TestIncludeFlag(t *testing.T) {
	o := NewOptions()
	executor := cmds.NewExecutor()
	o.DefineFlags(executor)

	if _, err := ParseArgs(executor, []string{"-I", "sub"}); err != nil {
		t.Fatal(err)
	}
	if len(o.IncludePath) != 1 {
		t.Fatalf("got %v", o.IncludePath)
	}
	if !filepath.IsAbs(o.IncludePath[0]) {
		t.Fatalf("got %v", o.IncludePath)
	}
}
