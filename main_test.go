package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

//
// Reset the interpreter to a fresh state with captured output and
// scripted input, the way a piped (non-terminal) session behaves
//

func resetInterp(t *testing.T, input string) *bytes.Buffer {

	t.Helper()

	out := &bytes.Buffer{}

	g.stdout = out
	g.stdin = bufio.NewReader(strings.NewReader(input))
	g.parserLiner = nil
	g.inputLiner = nil
	g.interactive = false
	g.exiting = false
	g.interrupted = false
	g.running = false
	g.printStats = false
	g.traceExec = false
	g.traceDump = false
	g.programFilename = ""

	initVariables()
	initAvl()

	r = run{}

	return out
}

//
// Feed a session line by line, as if typed at the prompt, and return
// everything the interpreter printed
//

func runSession(t *testing.T, input string, lines ...string) string {

	t.Helper()

	out := resetInterp(t, input)

	for _, line := range lines {
		processLine(line)
	}

	return out.String()
}
