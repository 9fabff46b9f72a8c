package cmds

import (
	"fmt"
	"reflect"
)

func (p *Executor) Has(name string) bool {
	_, ok := p.commands[name]
	return ok
}

// Consume executes the leading command in args and returns the remaining
// arguments, letting callers interleave commands with positional arguments.
func (p *Executor) Consume(args []string) (rest []string, err error) {
	name := args[0]
	args = args[1:]

	command, ok := p.commands[name]
	if !ok {
		return args, fmt.Errorf("unknown command: %s", name)
	}
	if !command.Func.IsValid() {
		return args, fmt.Errorf("not a callable command: %s", name)
	}

	var callArgs []reflect.Value
	for i, max := 0, command.Func.Type().NumIn(); i < max; i++ {
		value, err := getArg(command.Func.Type().In(i), args)
		if err != nil {
			return args, err
		}
		if len(args) > 0 {
			args = args[1:]
		}
		callArgs = append(callArgs, value)
	}
	rets := command.Func.Call(callArgs)
	if len(rets) > 0 {
		if err := rets[0].Interface(); err != nil {
			return args, err.(error)
		}
	}

	return args, nil
}
