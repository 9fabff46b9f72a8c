package cmds

// GlobalExecutor backs the package-level helpers. Fresh Executors do not
// see its commands, so globally registered names cannot shadow local ones.
var GlobalExecutor = &Executor{
	commands: make(map[string]*Command),
}

func Define(name string, command *Command) {
	GlobalExecutor.Define(name, command)
}
