package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/danswartzendruber/liner"
	"github.com/tklauser/go-sysconf"
	"golang.org/x/term"
)

//
// Line input is interactive only when all of the standard streams
// are terminals.  Otherwise (a piped program, a test) the prompt
// machinery is skipped and lines come straight from standard input
//

func checkTerminal() bool {

	return term.IsTerminal(0) && term.IsTerminal(1) && term.IsTerminal(2)
}

//
// We create two Liner instances.  One for the command prompt, and one
// for any INPUT statements.  We do this because we want a scrollback
// history for the command prompt, but not for user input.  We need to
// create and destroy them in LIFO order, as the Close method is
// documented as 'restoring the terminal to its previous state'
//

func setupLiners() {

	g.parserLiner = setupLiner(false)
	g.inputLiner = setupLiner(true)
}

func setupLiner(allowCtrlC bool) *liner.State {

	l := liner.NewLiner()

	l.SetMultiLineMode(allowCtrlC)

	return l
}

func cleanupLiners() {

	cleanupLiner(&g.inputLiner)
	cleanupLiner(&g.parserLiner)
}

func cleanupLiner(linerState **liner.State) {

	if *linerState != nil {
		(*linerState).Close()
		*linerState = nil
	}
}

//
// Read a line from the terminal, with editing and history.  ^D at the
// start of a line reads as EOF.  ^C at the command prompt reads as a
// blank line; ^C during an INPUT statement interrupts the program
//

func readLine(l *liner.State, prompt string, history bool) (string, bool, error) {

	str, err := l.Prompt(prompt)

	if err != nil {
		if err == io.EOF {
			return "", true, nil
		}

		if err == liner.ErrPromptAborted {
			if l == g.inputLiner {
				return "", false, runtimeError(EINTERRUPTED)
			}
			return "", false, nil
		}

		crash(fmt.Sprintf("readLine error: %q", err))
	}

	if history {
		l.AppendHistory(str)
	}

	return str, false, nil
}

func readCommandLine(prompt string) (string, bool, error) {

	if g.parserLiner != nil {
		return readLine(g.parserLiner, prompt, true)
	}

	line, err := g.stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", true, nil
	}

	return strings.TrimRight(line, "\r\n"), false, nil
}

func readInputLine(prompt string) (string, error) {

	if g.inputLiner != nil {
		line, eof, err := readLine(g.inputLiner, prompt, false)
		if eof {
			return "", runtimeError("End of input")
		}
		return line, err
	}

	fmt.Fprint(g.stdout, prompt)

	line, err := g.stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", runtimeError("End of input")
	}

	return strings.TrimRight(line, "\r\n"), nil
}

//
// Prettify the input string.  Eliminate leading and trailing
// whitespace, and replace multiple whitespace characters elsewhere
// with a single space character if not inside a quoted string
//

func trimWhitespace(str string) string {

	src := []byte(str)
	var dst []byte
	var lastWasBlank bool
	var quoting bool

	for _, ch := range src {
		if ch == '"' {
			quoting = !quoting
			dst = append(dst, ch)
			lastWasBlank = false
			continue
		}

		if quoting {
			dst = append(dst, ch)
			continue
		}

		if unicode.IsSpace(rune(ch)) {
			if !lastWasBlank {
				lastWasBlank = true
				dst = append(dst, byte(' '))
			}
		} else {
			lastWasBlank = false
			dst = append(dst, ch)
		}
	}

	dst = bytes.TrimLeft(dst, " \t")
	dst = bytes.TrimRight(dst, " \t")

	return string(dst)
}

//
// Take a filename for a source program and sanity check any possible
// suffix.  If no suffix, append ".bas" and return the new filename
//

func validateProgramFilename(filename string) (string, bool) {

	suffix, ok := getFilenameSuffix(filename)
	if !ok || (suffix != "" && suffix != basFileSuffix) {
		return "", false
	} else if suffix == "" {
		return filename + basFileSuffix, true
	} else {
		return filename, true
	}
}

func getFilenameSuffix(filename string) (string, bool) {

	strs := strings.Split(filename, ".")

	switch len(strs) {
	default:
		return "", false

	case 1:
		return "", true

	case 2:
		return "." + strs[1], true
	}
}

func switchSetting(b bool) string {

	if b {
		return "ON"
	} else {
		return "OFF"
	}
}

func pluralize(str string, num int64) string {

	// 0 is considered plural

	if num != 1 {
		str += "s"
	}

	return str
}

//
// Print a fatal message and abort the process.  Make sure to call
// cleanupLiners, so the terminal state is sane
//

func crash(msg string) {

	cleanupLiners()

	if msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}

	os.Exit(1)
}

//
// Runtime statistics.  CPU times come from /proc/self/stat, scaled by
// the clock tick rate
//

func initClock() {

	s.elapsed = time.Now()
	s.utime, s.stime = getCPUInfo()
}

func resetStatistics() {

	s.utime = 0
	s.stime = 0
	s.numStatements = 0
}

func printStatistics() {

	if g.printStats {
		printCpuUsage()
		fmt.Fprintf(g.stdout, "%d %s executed\n", s.numStatements,
			pluralize("statement", s.numStatements))
	}
}

func printCpuUsage() {

	elapsed := time.Since(s.elapsed)
	utime, stime := getCPUInfo()

	fmt.Fprintf(g.stdout,
		"CPU Usage: elapsed = %s / user = %s / system = %s\n",
		formatCPUTime(int64(elapsed.Seconds())),
		formatCPUTime(utime-s.utime), formatCPUTime(stime-s.stime))
}

func formatCPUTime(t int64) string {

	var h, m int64

	if t >= 3600 {
		h = t / 3600
		t = t % 3600
	}

	if t >= 60 {
		m = t / 60
		t = t % 60
	}

	return fmt.Sprintf("%02d:%02d:%02d", h, m, t)
}

func getCPUInfo() (int64, int64) {

	clktck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil {
		panic(err)
	}

	contents, err := os.ReadFile("/proc/self/stat")
	if err != nil {
		panic(err)
	}

	fields := strings.Fields(string(contents))

	utime, err := strconv.ParseInt(fields[13], 10, 64)
	if err != nil {
		panic(err)
	}

	stime, err := strconv.ParseInt(fields[14], 10, 64)
	if err != nil {
		panic(err)
	}

	return utime / clktck, stime / clktck
}
