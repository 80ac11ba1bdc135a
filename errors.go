package main

import "fmt"

//
// Fixed error message texts.  Parameterized messages are built with
// syntaxError/runtimeError format arguments at the point of use
//

const (
	EBADNUMBER        = "Error reading number"
	EDIVISIONBYZERO   = "Division by 0"
	EEXPECTEDEQUALS   = "Expected = after variable name"
	EEXPECTEDRELOP    = "Expected relational operator"
	EEXPECTEDSTRING   = "Expected quoted string"
	EEXPECTEDVARIABLE = "Expected variable name"
	EFORINTEGER       = "Values in for statement must be integers"
	EFOROVERFLOW      = "FOR stack overflow"
	EGOSUBOVERFLOW    = "GOSUB stack overflow"
	EINTERRUPTED      = "Interrupted"
	EINVALIDEXPR      = "Invalid expression"
	ENEXTWITHOUTFOR   = "Next without for"
	EPARSEERROR       = "Parse error"
	ERETURNNOGOSUB    = "Return without gosub"
	ESTRINGASSIGN     = "Can't assign strings to variables"
	ESTRINGCOMPARE    = "Can't compare strings"
	ESTRINGEXPR       = "Can't use a string value here"
	ETRAILINGTEXT     = "Unexpected text after statement"
	EUNBALANCEDPARENS = "Unbalanced parentheses"
	EUNKNOWNKEYWORD   = "Unknown keyword"
	EUNKNOWNLINE      = "Unknown line number"
	EUNTERMINATED     = "Unterminated string"
	EZEROSTEP         = "Step can't be zero"
)

//
// All parse and execution failures are reported as a basicError.  The
// kind picks the report label, and the line is filled in exactly once,
// by whoever knows the statement number of the failing statement.
// Immediate statements have no line, so the suffix is omitted
//

const (
	syntaxErrorKind = iota
	runtimeErrorKind
)

type basicError struct {
	kind int
	msg  string
	line int
}

func (e *basicError) Error() string {

	label := "Syntax error"
	if e.kind == runtimeErrorKind {
		label = "Runtime error"
	}

	if e.line != 0 {
		return fmt.Sprintf("%s: %s in line %d", label, e.msg, e.line)
	}

	return fmt.Sprintf("%s: %s", label, e.msg)
}

func syntaxError(f string, args ...any) error {

	return &basicError{kind: syntaxErrorKind, msg: fmt.Sprintf(f, args...)}
}

func runtimeError(f string, args ...any) error {

	return &basicError{kind: runtimeErrorKind, msg: fmt.Sprintf(f, args...)}
}

//
// Attach a statement number to an error that does not already carry
// one.  Errors from outside the interpreter (file I/O and the like)
// are folded into a runtime error first
//

func errorInLine(err error, line int) error {

	be, ok := err.(*basicError)
	if !ok {
		be = &basicError{kind: runtimeErrorKind, msg: err.Error()}
	}

	if be.line == 0 {
		be.line = line
	}

	return be
}

func isSyntaxError(err error) bool {

	be, ok := err.(*basicError)

	return ok && be.kind == syntaxErrorKind
}
