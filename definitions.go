package main

import (
	"bufio"
	"io"
	"time"

	"github.com/danswartzendruber/avl"
	"github.com/danswartzendruber/liner"
)

//
// Constants
//

const VERSION = "1.0.0"

const basFileSuffix = ".bas"

const forStackMax = 10
const gosubStackMax = 10

const myPrompt = "> "

const executePrompt = "? "

//
// Keyword tokens.  The values double as the statement type of a
// stmtNode.  EMPTY is not a keyword; it is the statement type of a
// blank line
//

const (
	REM = iota + 1
	PRINT
	LET
	GOTO
	IF
	THEN
	INPUT
	GOSUB
	RETURN
	FOR
	TO
	STEP
	NEXT
	LIST
	RUN
	LOAD
	SAVE
	CLEAR
	END
	BYE
	HELP
	STATS
	TRACE
	DUMP
	EMPTY
)

//
// Relational operators
//

const (
	EQ = iota + 1
	NE
	LT
	LE
	GT
	GE
)

//
// Expression node types
//

const (
	EXSTRING = iota + 1
	EXNUMBER
	EXVAR
	EXBINOP
	EXCALL
)

//
// Control signal types returned by statement execution.  The engine
// (or the immediate-mode dispatcher) interprets these; the statement
// execution routines never touch the PC or the stacks themselves
//

const (
	sigJump = iota + 1
	sigCall
	sigReturn
	sigStartLoop
	sigEndLoop
	sigList
	sigLoad
	sigSave
	sigRun
	sigClear
	sigEnd
	sigBye
	sigHelp
	sigStats
	sigTrace
	sigDump
)

//
// Type definitions
//

type exprNode struct {
	kind    int
	str     string // EXSTRING literal, EXCALL function name
	num     value  // EXNUMBER
	varName byte   // EXVAR
	op      byte   // EXBINOP: one of + - * /
	left    *exprNode
	right   *exprNode
	args    []*exprNode // EXCALL
}

type condNode struct {
	left  *exprNode
	relop int
	right *exprNode
}

//
// The avl node must be the first field, as its address is handed to
// the AVL package
//

type stmtNode struct {
	avl    avl.AvlNode
	token  int
	stmtNo int

	// operand fields, usage varies with token
	varName byte        // let/input/for/next
	expr    *exprNode   // let
	args    []*exprNode // print
	cond    *condNode   // if
	then    *stmtNode   // if consequent
	target  int         // goto/gosub
	start   *exprNode   // for
	limit   *exprNode   // for
	step    *exprNode   // for, nil when omitted
	text    string      // rem text, load/save path
}

type controlSignal struct {
	kind    int
	target  int    // sigJump, sigCall
	path    string // sigLoad, sigSave
	varName byte   // sigStartLoop
	start   int
	limit   int
	step    int
	hasStep bool
}

type forStackNode struct {
	varName byte
	limit   int
	step    int
	forPC   int
}

type basicFunction struct {
	nargs int
	fn    func(args []value) (value, error)
}

//
// Global variables
//

//
// This structure contains the non-persistent state of a program run
//

type run struct {
	prog       []*stmtNode
	pc         int
	running    bool
	gosubStack []int
	forStack   []*forStackNode
}

var r run

//
// This structure contains persistent data
//

var g struct {
	program         *avl.AvlNode
	variables       map[byte]value
	stdout          io.Writer
	stdin           *bufio.Reader
	parserLiner     *liner.State
	inputLiner      *liner.State
	programFilename string
	interactive     bool
	exiting         bool
	interrupted     bool
	running         bool
	printStats      bool
	traceExec       bool
	traceDump       bool
}

//
// Runtime statistics for executing program
//

var s struct {
	elapsed       time.Time
	utime         int64
	stime         int64
	numStatements int64
}

//
// Keyword and rendering maps, built by initMaps
//

var keywordMap map[string]int
var keywordNameMap map[int]string
var relopNameMap map[int]string
var functionMap map[string]basicFunction
