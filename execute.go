package main

import (
	"fmt"
	"strings"
)

//
// Statement execution.  Statements that only touch the environment
// (print, let, input, a false if) return a nil signal.  Everything
// that affects control flow or the program store returns a signal for
// the caller to interpret: the run engine owns the PC and the stacks,
// and the immediate-mode dispatcher owns the host-level commands
//

func executeStmt(stmt *stmtNode) (*controlSignal, error) {

	switch stmt.token {
	case EMPTY, REM:
		return nil, nil

	case PRINT:
		return nil, executePrint(stmt)

	case LET:
		return nil, executeLet(stmt)

	case INPUT:
		return nil, executeInput(stmt)

	case IF:
		taken, err := evaluateCondition(stmt.cond)
		if err != nil || !taken {
			return nil, err
		}
		return executeStmt(stmt.then)

	case GOTO:
		return &controlSignal{kind: sigJump, target: stmt.target}, nil

	case GOSUB:
		return &controlSignal{kind: sigCall, target: stmt.target}, nil

	case RETURN:
		return &controlSignal{kind: sigReturn}, nil

	case FOR:
		return executeFor(stmt)

	case NEXT:
		return &controlSignal{kind: sigEndLoop, varName: stmt.varName}, nil

	case LIST:
		return &controlSignal{kind: sigList}, nil

	case LOAD:
		return &controlSignal{kind: sigLoad, path: stmt.text}, nil

	case SAVE:
		return &controlSignal{kind: sigSave, path: stmt.text}, nil

	case RUN:
		return &controlSignal{kind: sigRun}, nil

	case CLEAR:
		return &controlSignal{kind: sigClear}, nil

	case END:
		return &controlSignal{kind: sigEnd}, nil

	case BYE:
		return &controlSignal{kind: sigBye}, nil

	case HELP:
		return &controlSignal{kind: sigHelp}, nil

	case STATS:
		return &controlSignal{kind: sigStats}, nil

	case TRACE:
		return &controlSignal{kind: sigTrace}, nil

	case DUMP:
		return &controlSignal{kind: sigDump}, nil
	}

	crash(fmt.Sprintf("Unknown statement token %d", stmt.token))

	panic(nil) // not reached
}

//
// Print arguments are concatenated with no separator, followed by a
// newline.  String literals go out as-is, everything else is
// evaluated and formatted
//

func executePrint(stmt *stmtNode) error {

	var line strings.Builder

	for _, arg := range stmt.args {
		if arg.kind == EXSTRING {
			line.WriteString(arg.str)
			continue
		}

		v, err := evaluateExpr(arg)
		if err != nil {
			return err
		}

		line.WriteString(v.String())
	}

	fmt.Fprintln(g.stdout, line.String())

	return nil
}

func executeLet(stmt *stmtNode) error {

	if stmt.expr.kind == EXSTRING {
		return runtimeError(ESTRINGASSIGN)
	}

	v, err := evaluateExpr(stmt.expr)
	if err != nil {
		return err
	}

	g.variables[stmt.varName] = v

	return nil
}

//
// Prompt for a value and assign it.  The reply must parse as an
// integer or a float
//

func executeInput(stmt *stmtNode) error {

	line, err := readInputLine(executePrompt)
	if err != nil {
		return err
	}

	v, ok := parseValue(line)
	if !ok {
		return runtimeError(EPARSEERROR)
	}

	g.variables[stmt.varName] = v

	return nil
}

//
// The for statement evaluates its operands, which must all be
// integers, and hands them to the engine as a start-loop signal.
// Loop bookkeeping happens there
//

func executeFor(stmt *stmtNode) (*controlSignal, error) {

	sig := &controlSignal{kind: sigStartLoop, varName: stmt.varName}

	var err error

	if sig.start, err = evalForOperand(stmt.start); err != nil {
		return nil, err
	}

	if sig.limit, err = evalForOperand(stmt.limit); err != nil {
		return nil, err
	}

	if stmt.step != nil {
		if sig.step, err = evalForOperand(stmt.step); err != nil {
			return nil, err
		}
		sig.hasStep = true
	}

	return sig, nil
}

func evalForOperand(ep *exprNode) (int, error) {

	v, err := evaluateExpr(ep)
	if err != nil {
		return 0, err
	}

	if !v.isInt {
		return 0, runtimeError(EFORINTEGER)
	}

	return v.ival, nil
}

//
// Immediate-mode signal dispatch.  Host commands and store operations
// are serviced right here; control-flow signals have no meaning
// without a running program and are rejected
//

func executeImmediate(stmt *stmtNode) error {

	sig, err := executeStmt(stmt)
	if err != nil || sig == nil {
		return err
	}

	switch sig.kind {
	case sigList:
		listProgram()
		return nil

	case sigLoad:
		return loadProgram(sig.path)

	case sigSave:
		return saveProgram(sig.path)

	case sigRun:
		return executeRun()

	case sigClear:
		initVariables()
		return nil

	case sigBye:
		g.exiting = true
		return nil

	case sigHelp:
		executeHelp()
		return nil

	case sigStats:
		g.printStats = !g.printStats
		fmt.Fprintf(g.stdout, "stats %s\n", switchSetting(g.printStats))
		return nil

	case sigTrace:
		g.traceExec = !g.traceExec
		fmt.Fprintf(g.stdout, "trace %s\n", switchSetting(g.traceExec))
		return nil

	case sigDump:
		g.traceDump = !g.traceDump
		fmt.Fprintf(g.stdout, "dump %s\n", switchSetting(g.traceDump))
		return nil
	}

	return runtimeError("%q is not valid in immediate mode",
		signalKeyword(sig.kind))
}

func signalKeyword(kind int) string {

	switch kind {
	case sigJump:
		return keywordNameMap[GOTO]

	case sigCall:
		return keywordNameMap[GOSUB]

	case sigReturn:
		return keywordNameMap[RETURN]

	case sigStartLoop:
		return keywordNameMap[FOR]

	case sigEndLoop:
		return keywordNameMap[NEXT]

	case sigEnd:
		return keywordNameMap[END]
	}

	crash(fmt.Sprintf("Unexpected control signal %d", kind))

	panic(nil) // not reached
}

//
// The run engine.  It executes over a snapshot of the program store,
// so the PC and the gosub return addresses are plain slice indices.
// Any error is annotated with the number of the statement that was
// executing, which for a bad jump is the source line, not the missing
// target
//

func executeRun() error {

	if g.running {
		return runtimeError("%q is not valid while a program is running",
			keywordNameMap[RUN])
	}

	r = run{prog: programSnapshot(), running: true}
	g.running = true
	defer func() { g.running = false }()

	resetStatistics()
	initClock()

	for r.pc < len(r.prog) && r.running {
		stmt := r.prog[r.pc]

		if g.interrupted {
			g.interrupted = false
			return errorInLine(runtimeError(EINTERRUPTED), stmt.stmtNo)
		}

		if g.traceExec {
			fmt.Fprintf(g.stdout, "trace: %d %s\n", stmt.stmtNo,
				renderStmt(stmt))
		}

		s.numStatements++

		sig, err := executeStmt(stmt)
		if err != nil {
			return errorInLine(err, stmt.stmtNo)
		}

		if sig == nil {
			r.pc++
			continue
		}

		if err = applySignal(sig); err != nil {
			return errorInLine(err, stmt.stmtNo)
		}
	}

	printStatistics()

	return nil
}

func applySignal(sig *controlSignal) error {

	switch sig.kind {
	case sigJump:
		idx, ok := findLineIndex(r.prog, sig.target)
		if !ok {
			return runtimeError("%s %d", EUNKNOWNLINE, sig.target)
		}
		r.pc = idx
		return nil

	case sigCall:
		if len(r.gosubStack) == gosubStackMax {
			return runtimeError(EGOSUBOVERFLOW)
		}
		idx, ok := findLineIndex(r.prog, sig.target)
		if !ok {
			return runtimeError("%s %d", EUNKNOWNLINE, sig.target)
		}
		r.gosubStack = append(r.gosubStack, r.pc)
		r.pc = idx
		return nil

	case sigReturn:
		if len(r.gosubStack) == 0 {
			return runtimeError(ERETURNNOGOSUB)
		}
		top := r.gosubStack[len(r.gosubStack)-1]
		r.gosubStack = r.gosubStack[:len(r.gosubStack)-1]
		r.pc = top + 1
		return nil

	case sigStartLoop:
		return startLoop(sig)

	case sigEndLoop:
		return endLoop(sig)

	//
	// list, save and clear are harmless while running: they never
	// touch the snapshot, the PC or the stacks.  run and load would,
	// so they are refused
	//

	case sigList:
		listProgram()
		r.pc++
		return nil

	case sigSave:
		if err := saveProgram(sig.path); err != nil {
			return err
		}
		r.pc++
		return nil

	case sigClear:
		initVariables()
		r.pc++
		return nil

	case sigRun, sigLoad:
		kw := keywordNameMap[RUN]
		if sig.kind == sigLoad {
			kw = keywordNameMap[LOAD]
		}
		return runtimeError("%q is not valid while a program is running", kw)

	case sigEnd:
		r.running = false
		return nil
	}

	// host commands are rejected when the line is stored

	crash(fmt.Sprintf("Unexpected control signal %d", sig.kind))

	panic(nil) // not reached
}

//
// Loop bookkeeping.  Frames are keyed by the PC of their for
// statement: jumping back to an active for must not push a second
// frame, while a different for statement always opens a new loop.
// An omitted step is inferred from the direction of travel
//

func startLoop(sig *controlSignal) error {

	step := sig.step

	if !sig.hasStep {
		if sig.limit < sig.start {
			step = -1
		} else {
			step = 1
		}
	}

	if step == 0 {
		return runtimeError(EZEROSTEP)
	}

	if top := topForFrame(); top == nil || top.forPC != r.pc {
		if len(r.forStack) == forStackMax {
			return runtimeError(EFOROVERFLOW)
		}

		g.variables[sig.varName] = intValue(sig.start)

		r.forStack = append(r.forStack, &forStackNode{
			varName: sig.varName,
			limit:   sig.limit,
			step:    step,
			forPC:   r.pc,
		})
	}

	r.pc++

	return nil
}

func endLoop(sig *controlSignal) error {

	top := topForFrame()
	if top == nil || (sig.varName != 0 && top.varName != sig.varName) {
		return runtimeError(ENEXTWITHOUTFOR)
	}

	v, ok := g.variables[top.varName]
	if !ok || !v.isInt {
		return runtimeError(EFORINTEGER)
	}

	next := v.ival + top.step
	g.variables[top.varName] = intValue(next)

	finished := (top.step < 0 && next < top.limit) ||
		(top.step >= 0 && next > top.limit)

	if finished {
		r.forStack = r.forStack[:len(r.forStack)-1]
		r.pc++
	} else {
		r.pc = top.forPC
	}

	return nil
}

func topForFrame() *forStackNode {

	if len(r.forStack) == 0 {
		return nil
	}

	return r.forStack[len(r.forStack)-1]
}
