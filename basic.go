package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goforj/godump"
)

func init() {

	initMaps()

	initFunctions()

	initEnv()
}

func main() {

	//
	// We need to close the Liner instances in reverse order, to make
	// sure we end up back in normal (cooked) terminal mode
	//

	defer func() {
		cleanupLiners()
	}()

	if g.interactive = checkTerminal(); g.interactive {
		setupLiners()
	}

	switch len(os.Args) {
	default:
		crash("Usage: tinybasic [program]")

	case 1:
		// nothing to do

	case 2:
		if err := loadProgram(os.Args[1]); err != nil {
			crash(err.Error())
		}
	}

	printVersionInfo()

	fmt.Fprintln(g.stdout, "Ready.")

	//
	// Run the signal handling code in a goroutine
	//

	go sigHdlr()

	//
	// Loop forever, or until we quit
	//

	for !g.exiting {
		g.running = false

		line, eof, err := readCommandLine(myPrompt)
		if eof {
			break
		}

		if err == nil {
			processLine(line)
		} else {
			fmt.Fprintln(g.stdout, err)
		}
	}
}

//
// Handle one input line.  A line starting with a number updates the
// program store; anything else is parsed and executed immediately
//

func processLine(line string) {

	line = trimWhitespace(line)
	if line == "" {
		return
	}

	stmtNo, rest, numbered := parseLineNumber(line)

	if numbered {
		if stmtNo == 0 {
			fmt.Fprintln(g.stdout, syntaxError("Invalid line number"))
			return
		}

		stmt, err := buildStatement(rest)
		if err == nil {
			dumpStmt(stmt)
			err = storeLine(stmt, stmtNo)
		}

		if err != nil {
			fmt.Fprintln(g.stdout, errorInLine(err, stmtNo))
		}

		return
	}

	stmt, err := buildStatement(line)
	if err == nil {
		dumpStmt(stmt)
		err = executeImmediate(stmt)
	}

	if err != nil {
		fmt.Fprintln(g.stdout, err)
	}
}

func dumpStmt(stmt *stmtNode) {

	if g.traceDump {
		godump.Dump(stmt)
	}
}

func initEnv() {

	g.stdout = os.Stdout
	g.stdin = bufio.NewReader(os.Stdin)

	initVariables()

	initAvl()
}

func initVariables() {

	g.variables = make(map[byte]value)
}

func initAvl() {

	// an empty tree is a nil root

	g.program = nil
}

func initMaps() {

	keywordMap = map[string]int{
		"rem":    REM,
		"print":  PRINT,
		"let":    LET,
		"goto":   GOTO,
		"if":     IF,
		"then":   THEN,
		"input":  INPUT,
		"gosub":  GOSUB,
		"return": RETURN,
		"for":    FOR,
		"to":     TO,
		"step":   STEP,
		"next":   NEXT,
		"list":   LIST,
		"run":    RUN,
		"load":   LOAD,
		"save":   SAVE,
		"clear":  CLEAR,
		"end":    END,
		"bye":    BYE,
		"help":   HELP,
		"stats":  STATS,
		"trace":  TRACE,
		"dump":   DUMP,
	}

	keywordNameMap = make(map[int]string)
	for name, token := range keywordMap {
		keywordNameMap[token] = name
	}

	relopNameMap = map[int]string{
		EQ: "=",
		NE: "<>",
		LT: "<",
		LE: "<=",
		GT: ">",
		GE: ">=",
	}
}

func sigHdlr() {

	ch := make(chan os.Signal, 1)

	signal.Ignore(syscall.SIGTSTP)

	signal.Notify(ch, syscall.SIGINT)

	for {
		<-ch

		g.interrupted = true
	}
}

func printVersionInfo() {

	fmt.Fprintf(g.stdout, "TinyBASIC version %s\n", VERSION)
}
