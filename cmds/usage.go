package cmds

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	printCommands(os.Stderr, p.commands, "")
}

func printCommands(w *os.File, commands map[string]*Command, indent string) {
	// aliases point at the same command; show each once under all its names
	byCommand := make(map[*Command][]string)
	for name, command := range commands {
		byCommand[command] = append(byCommand[command], name)
	}

	type entry struct {
		names   []string
		command *Command
	}
	var entries []entry
	for command, names := range byCommand {
		slices.Sort(names)
		entries = append(entries, entry{
			names:   names,
			command: command,
		})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return strings.Compare(a.names[0], b.names[0])
	})

	for _, e := range entries {
		fmt.Fprintf(w, "%s%s", indent, strings.Join(e.names, " | "))
		if e.command.Description != "" {
			fmt.Fprintf(w, "\n%s    %s", indent, e.command.Description)
		}
		fmt.Fprintln(w)
		if len(e.command.Subs) > 0 {
			printCommands(w, e.command.Subs, indent+"    ")
		}
	}
}
