package starlarks

import (
	"fmt"
	"os"
	"path/filepath"

	"go.starlark.net/starlark"
)

type loadEntry struct {
	globals starlark.StringDict
	err     error
	loading bool
}

// load resolves load() statements against the include path. Modules are
// cached per file; loaded modules do not see the cog value or the defines.
func (n *Namespace) load(thread *starlark.Thread, module string) (starlark.StringDict, error) {
	path, err := n.resolve(module)
	if err != nil {
		return nil, err
	}

	if entry, ok := n.modules[path]; ok {
		if entry.loading {
			return nil, fmt.Errorf("cycle in load of %q", module)
		}
		return entry.globals, entry.err
	}

	entry := &loadEntry{
		loading: true,
	}
	n.modules[path] = entry
	defer func() {
		entry.loading = false
	}()

	source, err := os.ReadFile(path)
	if err != nil {
		entry.err = err
		return nil, err
	}
	loadThread := &starlark.Thread{
		Name: "load " + module,
		Load: n.load,
	}
	entry.globals, entry.err = starlark.ExecFileOptions(n.ev.opts, loadThread, path, source, nil)
	return entry.globals, entry.err
}

func (n *Namespace) resolve(module string) (string, error) {
	if filepath.IsAbs(module) {
		return module, nil
	}
	for _, dir := range n.ev.config.IncludePath {
		path := filepath.Join(dir, module)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("module %q not found in include path", module)
}
