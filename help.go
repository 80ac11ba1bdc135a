package main

import (
	"fmt"
)

func executeHelp() {

	fmt.Fprintln(g.stdout, "bye    - exit from the interpreter")
	fmt.Fprintln(g.stdout, "clear  - erase all variables")
	fmt.Fprintln(g.stdout, "dump   - toggle parse tree dumping")
	fmt.Fprintln(g.stdout, "help   - print this text")
	fmt.Fprintln(g.stdout, "list   - list the current program")
	fmt.Fprintln(g.stdout, "load   - load a program, e.g. load \"demo\"")
	fmt.Fprintln(g.stdout, "run    - execute the current program")
	fmt.Fprintln(g.stdout, "save   - save the current program, e.g. save \"demo\"")
	fmt.Fprintln(g.stdout, "stats  - toggle printing execution statistics")
	fmt.Fprintln(g.stdout, "trace  - toggle tracing of statement execution")
}
