package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/danswartzendruber/avl"
)

//
// A set of wrapper routines to the AVL package.  We do this to hide
// the AVL interface from the interpreter code.  The program store is
// an AVL tree keyed by statement number, walked in order for list,
// save and run
//

func cmpIntKey(key any, node any) int {

	return cmpIntItems(key.(int), node.(*stmtNode).stmtNo)
}

func cmpIntSnode(node1, node2 any) int {

	return cmpIntItems(node1.(*stmtNode).stmtNo, node2.(*stmtNode).stmtNo)
}

func cmpIntItems(item1, item2 int) int {

	if item1 < item2 {
		return -1
	} else if item1 > item2 {
		return 1
	} else {
		return 0
	}
}

func stmtAvlTreeFirstInOrder() *stmtNode {

	p := avl.AvlTreeFirstInOrder(g.program)
	if p != nil {
		return p.(*stmtNode)
	} else {
		return nil
	}
}

func stmtAvlTreeNextInOrder(stmt *stmtNode) *stmtNode {

	p := avl.AvlTreeNextInOrder(&stmt.avl)
	if p != nil {
		return p.(*stmtNode)
	} else {
		return nil
	}
}

func stmtAvlTreeLookup(stmtNo int) *stmtNode {

	p := avl.AvlTreeLookup(g.program, stmtNo, cmpIntKey)
	if p != nil {
		return p.(*stmtNode)
	} else {
		return nil
	}
}

func stmtAvlTreeInsert(stmt *stmtNode) {

	p := avl.AvlTreeInsert(&g.program, &stmt.avl, stmt, cmpIntSnode)
	if p != nil {
		crash(fmt.Sprintf("Stmt %d already in tree???", stmt.stmtNo))
	}
}

func stmtAvlTreeRemove(stmt *stmtNode) {

	avl.AvlTreeRemove(&g.program, &stmt.avl)
}

//
// Insert a parsed statement at its line number, replacing any
// statement already stored there.  An empty statement deletes the
// line
//

func insertStmtNode(stmt *stmtNode, stmtNo int) {

	old := stmtAvlTreeLookup(stmtNo)
	if old != nil {
		stmtAvlTreeRemove(old)
	}

	if stmt.token == EMPTY {
		return
	}

	stmt.stmtNo = stmtNo

	stmtAvlTreeInsert(stmt)
}

//
// Host-level commands make no sense inside a stored program, so they
// are rejected at insertion time.  The if consequent chain has to be
// walked, as the offender can hide behind one or more then keywords
//

func immediateOnlyToken(stmt *stmtNode) (int, bool) {

	for sp := stmt; sp != nil; sp = sp.then {
		switch sp.token {
		case BYE, HELP, STATS, TRACE, DUMP:
			return sp.token, true
		}
	}

	return 0, false
}

func storeLine(stmt *stmtNode, stmtNo int) error {

	if token, bad := immediateOnlyToken(stmt); bad {
		return syntaxError("%q is only valid in immediate mode",
			keywordNameMap[token])
	}

	insertStmtNode(stmt, stmtNo)

	return nil
}

//
// Snapshot the program in statement number order.  The engine runs
// over the snapshot, so the PC and the jump targets are plain slice
// indices
//

func programSnapshot() []*stmtNode {

	var prog []*stmtNode

	for stmt := stmtAvlTreeFirstInOrder(); stmt != nil; {
		prog = append(prog, stmt)
		stmt = stmtAvlTreeNextInOrder(stmt)
	}

	return prog
}

func findLineIndex(prog []*stmtNode, stmtNo int) (int, bool) {

	for i, stmt := range prog {
		if stmt.stmtNo == stmtNo {
			return i, true
		}
	}

	return 0, false
}

func listProgram() {

	for stmt := stmtAvlTreeFirstInOrder(); stmt != nil; {
		fmt.Fprintf(g.stdout, "%d %s\n", stmt.stmtNo, renderStmt(stmt))
		stmt = stmtAvlTreeNextInOrder(stmt)
	}
}

func saveProgram(path string) error {

	fname, ok := validateProgramFilename(path)
	if !ok {
		return runtimeError("Invalid filename %q", path)
	}

	f, err := os.Create(fname)
	if err != nil {
		return runtimeError("Unable to save %q (%v)", fname, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	for stmt := stmtAvlTreeFirstInOrder(); stmt != nil; {
		line := fmt.Sprintf("%d %s\n", stmt.stmtNo, renderStmt(stmt))
		if _, err = w.WriteString(line); err != nil {
			return runtimeError("Unable to save %q (%v)", fname, err)
		}

		stmt = stmtAvlTreeNextInOrder(stmt)
	}

	if err = w.Flush(); err != nil {
		return runtimeError("Unable to save %q (%v)", fname, err)
	}

	g.programFilename = fname

	return nil
}

//
// Load merges the file into the current program store, line by line,
// through the same upsert path the keyboard uses
//

func loadProgram(path string) error {

	fname, ok := validateProgramFilename(path)
	if !ok {
		return runtimeError("Invalid filename %q", path)
	}

	f, err := os.Open(fname)
	if err != nil {
		return runtimeError("Unable to load %q (%v)", fname, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := trimWhitespace(scanner.Text())
		if line == "" {
			continue
		}

		stmtNo, rest, numbered := parseLineNumber(line)
		if !numbered || stmtNo == 0 {
			return runtimeError("Missing line number in %q", fname)
		}

		stmt, err := buildStatement(rest)
		if err != nil {
			return errorInLine(err, stmtNo)
		}

		if err = storeLine(stmt, stmtNo); err != nil {
			return errorInLine(err, stmtNo)
		}
	}

	if err = scanner.Err(); err != nil {
		return runtimeError("Unable to load %q (%v)", fname, err)
	}

	g.programFilename = fname

	return nil
}

//
// Render a statement back to its canonical source form.  The output
// reparses to a semantically identical statement, which is what list
// and save emit
//

func renderStmt(stmt *stmtNode) string {

	switch stmt.token {
	case EMPTY:
		return ""

	case REM:
		if stmt.text == "" {
			return "rem"
		}
		return "rem " + stmt.text

	case PRINT:
		if len(stmt.args) == 0 {
			return "print"
		}
		args := make([]string, 0, len(stmt.args))
		for _, arg := range stmt.args {
			args = append(args, renderExpr(arg))
		}
		return "print " + strings.Join(args, ",")

	case LET:
		return "let " + string(stmt.varName) + "=" + renderExpr(stmt.expr)

	case GOTO, GOSUB:
		return fmt.Sprintf("%s %d", keywordNameMap[stmt.token], stmt.target)

	case IF:
		return "if " + renderCondition(stmt.cond) + " then " +
			renderStmt(stmt.then)

	case INPUT:
		return "input " + string(stmt.varName)

	case NEXT:
		if stmt.varName == 0 {
			return "next"
		}
		return "next " + string(stmt.varName)

	case FOR:
		out := "for " + string(stmt.varName) + "=" + renderExpr(stmt.start) +
			" to " + renderExpr(stmt.limit)
		if stmt.step != nil {
			out += " step " + renderExpr(stmt.step)
		}
		return out

	case LOAD, SAVE:
		return keywordNameMap[stmt.token] + " \"" + stmt.text + "\""
	}

	return keywordNameMap[stmt.token]
}
