package cogconfigs

import (
	"github.com/reusee/starcog/cogs"
	"github.com/reusee/starcog/configs"
)

// Options builds the baseline run options from the config files. Flags
// parsed later refine a clone of this record, so config values act as
// defaults only.
func (Module) Options(
	loader configs.Loader,
) *cogs.Options {
	options := cogs.NewOptions()

	if spec := configs.First[string](loader, "markers"); spec != "" {
		markers, err := cogs.ParseMarkers(spec)
		if err != nil {
			panic(err)
		}
		options.Markers = markers
	}

	options.Suffix = configs.First[string](loader, "suffix")
	options.Prologue = configs.First[string](loader, "prologue")
	options.Encoding = configs.FirstOr(loader, "encoding", options.Encoding)
	options.HashOutput = configs.First[bool](loader, "checksum")
	options.UnixNewlines = configs.First[bool](loader, "unix_newlines")
	options.Verbosity = configs.FirstOr(loader, "verbosity", options.Verbosity)
	options.Jobs = configs.FirstOr(loader, "jobs", options.Jobs)
	options.IncludePath = configs.First[[]string](loader, "include")

	for name, value := range configs.First[map[string]any](loader, "defines") {
		options.Defines[name] = value
	}

	return options
}
