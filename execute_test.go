package main

import (
	"testing"
)

func TestRunSimpleProgram(t *testing.T) {

	got := runSession(t, "",
		"10 let a=1",
		"20 print \"a=\",a",
		"run")

	if got != "a=1\n" {
		t.Errorf("got %q", got)
	}
}

func TestRunPrecedence(t *testing.T) {

	got := runSession(t, "",
		"10 print 3+4*2",
		"20 print (3+4)*2",
		"run")

	if got != "11\n14\n" {
		t.Errorf("got %q", got)
	}
}

func TestGotoSkipsStatements(t *testing.T) {

	got := runSession(t, "",
		"10 let a=3",
		"20 goto 40",
		"30 let a=99",
		"40 print a",
		"run")

	if got != "3\n" {
		t.Errorf("got %q", got)
	}
}

//
// A jump to a missing line reports the line the goto is on, not the
// missing target
//

func TestGotoUnknownLine(t *testing.T) {

	got := runSession(t, "",
		"10 goto 99",
		"run")

	if got != "Runtime error: Unknown line number 99 in line 10\n" {
		t.Errorf("got %q", got)
	}
}

func TestReturnWithoutGosub(t *testing.T) {

	got := runSession(t, "",
		"10 return",
		"run")

	if got != "Runtime error: Return without gosub in line 10\n" {
		t.Errorf("got %q", got)
	}
}

func TestForLoopCountsUp(t *testing.T) {

	got := runSession(t, "",
		"10 for i=1 to 3",
		"20 print i",
		"30 next i",
		"run")

	if got != "1\n2\n3\n" {
		t.Errorf("got %q", got)
	}

	// the loop variable is left one step past the limit

	if v := g.variables['i']; !v.isInt || v.ival != 4 {
		t.Errorf("i = %+v after loop", v)
	}
}

//
// A descending range with no step clause infers a step of -1
//

func TestForLoopInfersDownwardStep(t *testing.T) {

	got := runSession(t, "",
		"10 for i=3 to 1",
		"20 print i",
		"30 next i",
		"run")

	if got != "3\n2\n1\n" {
		t.Errorf("got %q", got)
	}
}

func TestForLoopExplicitStep(t *testing.T) {

	got := runSession(t, "",
		"10 for i=1 to 7 step 3",
		"20 print i",
		"30 next i",
		"run")

	if got != "1\n4\n7\n" {
		t.Errorf("got %q", got)
	}
}

func TestForLoopZeroStep(t *testing.T) {

	got := runSession(t, "",
		"10 for i=1 to 3 step 0",
		"run")

	if got != "Runtime error: Step can't be zero in line 10\n" {
		t.Errorf("got %q", got)
	}
}

func TestForLoopNonIntegerOperand(t *testing.T) {

	got := runSession(t, "",
		"10 for i=1 to 2.5",
		"run")

	if got != "Runtime error: Values in for statement must be integers"+
		" in line 10\n" {
		t.Errorf("got %q", got)
	}
}

func TestNestedForLoops(t *testing.T) {

	got := runSession(t, "",
		"10 for i=1 to 2",
		"20 for j=1 to 2",
		"30 print i,j",
		"40 next j",
		"50 next i",
		"run")

	if got != "11\n12\n21\n22\n" {
		t.Errorf("got %q", got)
	}
}

//
// A bare next closes the innermost loop
//

func TestBareNextUsesTopFrame(t *testing.T) {

	got := runSession(t, "",
		"10 for i=1 to 3",
		"20 gosub 100",
		"30 next",
		"40 end",
		"100 let n=n+1",
		"110 return",
		"n=0",
		"run",
		"print n")

	if got != "3\n" {
		t.Errorf("got %q", got)
	}
}

func TestBareNextNested(t *testing.T) {

	got := runSession(t, "",
		"10 for i=1 to 2",
		"20 for j=1 to 2",
		"30 print i,j",
		"40 next",
		"50 next",
		"run")

	if got != "11\n12\n21\n22\n" {
		t.Errorf("got %q", got)
	}
}

func TestBareNextWithoutFor(t *testing.T) {

	got := runSession(t, "",
		"10 next",
		"run")

	if got != "Runtime error: Next without for in line 10\n" {
		t.Errorf("got %q", got)
	}
}

func TestNextVariableMismatch(t *testing.T) {

	got := runSession(t, "",
		"10 for i=1 to 2",
		"20 next j",
		"run")

	if got != "Runtime error: Next without for in line 20\n" {
		t.Errorf("got %q", got)
	}
}

//
// The loop variable may be reassigned in the body; next steps from
// the assigned value.  Assigning a float makes the next fail, as all
// loop values must stay integers
//

func TestLoopVariableReassignedInteger(t *testing.T) {

	got := runSession(t, "",
		"10 for i=1 to 10",
		"20 let i=i+4",
		"30 print i",
		"40 next i",
		"run")

	if got != "5\n10\n" {
		t.Errorf("got %q", got)
	}
}

func TestLoopVariableRetypedToFloat(t *testing.T) {

	got := runSession(t, "",
		"10 for i=1 to 3",
		"20 let i=1.5",
		"30 next i",
		"run")

	if got != "Runtime error: Values in for statement must be integers"+
		" in line 30\n" {
		t.Errorf("got %q", got)
	}
}

func TestGotoWithinLoopBody(t *testing.T) {

	got := runSession(t, "",
		"10 for i=1 to 2",
		"20 print i",
		"30 goto 50",
		"40 print \"skipped\"",
		"50 next i",
		"60 end",
		"run")

	if got != "1\n2\n" {
		t.Errorf("got %q", got)
	}
}

func TestGosubInsideForLoop(t *testing.T) {

	got := runSession(t, "",
		"10 for i=1 to 3",
		"20 print \"i=\",i",
		"30 gosub 100",
		"40 next i",
		"50 end",
		"100 print \"sub\"",
		"110 return",
		"run")

	if got != "i=1\nsub\ni=2\nsub\ni=3\nsub\n" {
		t.Errorf("got %q", got)
	}
}

func TestGosubSetsVariableForCaller(t *testing.T) {

	got := runSession(t, "",
		"10 let v=5",
		"20 gosub 100",
		"30 print n",
		"40 end",
		"100 let n=v-3",
		"110 return",
		"run")

	if got != "2\n" {
		t.Errorf("got %q", got)
	}
}

func TestEndStopsExecution(t *testing.T) {

	got := runSession(t, "",
		"10 print 1",
		"20 end",
		"30 print 2",
		"run")

	if got != "1\n" {
		t.Errorf("got %q", got)
	}
}

func TestRunTwiceKeepsEnvironment(t *testing.T) {

	got := runSession(t, "",
		"10 let a=a+1",
		"20 print a",
		"a=0",
		"run",
		"run")

	if got != "1\n2\n" {
		t.Errorf("got %q", got)
	}
}

func TestIfComparisons(t *testing.T) {

	got := runSession(t, "",
		"10 let a=1",
		"20 if a<2 then print \"lt\"",
		"30 if a>2 then print \"gt\"",
		"40 if a<=1 then print \"le\"",
		"50 if a<>1 then print \"ne\"",
		"run")

	if got != "lt\nle\n" {
		t.Errorf("got %q", got)
	}
}

func TestInputStatement(t *testing.T) {

	got := runSession(t, "21\n",
		"10 input x",
		"20 print x*2",
		"run")

	if got != "? 42\n" {
		t.Errorf("got %q", got)
	}
}

func TestInputFloat(t *testing.T) {

	got := runSession(t, "1.5\n",
		"10 input x",
		"20 print x+1",
		"run")

	if got != "? 2.5\n" {
		t.Errorf("got %q", got)
	}
}

func TestInputParseError(t *testing.T) {

	got := runSession(t, "abc\n",
		"10 input x",
		"run")

	if got != "? Runtime error: Parse error in line 10\n" {
		t.Errorf("got %q", got)
	}
}

//
// Immediate mode shares the environment with stored programs
//

func TestImmediateSharedEnvironment(t *testing.T) {

	got := runSession(t, "",
		"a=2",
		"print a+1")

	if got != "3\n" {
		t.Errorf("got %q", got)
	}
}

func TestImmediateControlFlowRejected(t *testing.T) {

	tests := []struct {
		line string
		want string
	}{
		{"goto 10", "Runtime error: \"goto\" is not valid in immediate mode\n"},
		{"gosub 10", "Runtime error: \"gosub\" is not valid in immediate mode\n"},
		{"return", "Runtime error: \"return\" is not valid in immediate mode\n"},
		{"for i=1 to 3", "Runtime error: \"for\" is not valid in immediate mode\n"},
		{"next i", "Runtime error: \"next\" is not valid in immediate mode\n"},
		{"end", "Runtime error: \"end\" is not valid in immediate mode\n"},
	}

	for _, tc := range tests {
		if got := runSession(t, "", tc.line); got != tc.want {
			t.Errorf("%q: got %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestStoredHostCommandRejected(t *testing.T) {

	got := runSession(t, "", "10 bye")

	if got != "Syntax error: \"bye\" is only valid in immediate mode"+
		" in line 10\n" {
		t.Errorf("got %q", got)
	}
}

func TestClearErasesVariables(t *testing.T) {

	got := runSession(t, "",
		"a=5",
		"clear",
		"print a")

	if got != "Runtime error: Unknown variable a\n" {
		t.Errorf("got %q", got)
	}
}

func TestImmediateDivisionByZero(t *testing.T) {

	got := runSession(t, "", "print 1/0")

	if got != "Runtime error: Division by 0\n" {
		t.Errorf("got %q", got)
	}
}

func TestIntegerDivisionTruncates(t *testing.T) {

	got := runSession(t, "",
		"print 7/2",
		"print 7/2.0")

	if got != "3\n3.5\n" {
		t.Errorf("got %q", got)
	}
}

func TestUnknownFunction(t *testing.T) {

	got := runSession(t, "", "print foo(1)")

	if got != "Runtime error: Unknown function \"foo\"\n" {
		t.Errorf("got %q", got)
	}
}

func TestWrongArgumentCount(t *testing.T) {

	got := runSession(t, "", "print int()")

	if got != "Runtime error: Wrong number of arguments to \"int\"\n" {
		t.Errorf("got %q", got)
	}
}

func TestRunEmptyProgram(t *testing.T) {

	if got := runSession(t, "", "run"); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestListAfterEdits(t *testing.T) {

	got := runSession(t, "",
		"20 print 2",
		"10 print 1",
		"20 print \"two\"",
		"list")

	if got != "10 print 1\n20 print \"two\"\n" {
		t.Errorf("got %q", got)
	}
}

func TestTraceToggle(t *testing.T) {

	got := runSession(t, "",
		"trace",
		"10 print 7",
		"run",
		"trace")

	want := "trace ON\ntrace: 10 print 7\n7\ntrace OFF\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStatsToggleReports(t *testing.T) {

	got := runSession(t, "",
		"stats",
		"stats")

	if got != "stats ON\nstats OFF\n" {
		t.Errorf("got %q", got)
	}
}

func TestGosubStackOverflow(t *testing.T) {

	got := runSession(t, "",
		"10 gosub 10",
		"run")

	if got != "Runtime error: GOSUB stack overflow in line 10\n" {
		t.Errorf("got %q", got)
	}
}
