package main

import (
	"testing"
)

//
// Parse a statement and render it back.  The rendered form is the
// canonical one that list and save emit, so it must reparse cleanly
// as well
//

func TestRenderRoundTrip(t *testing.T) {

	tests := []struct {
		in  string
		out string
	}{
		{"rem", "rem"},
		{"rem this is a comment", "rem this is a comment"},
		{"print", "print"},
		{"print \"hello\"", "print \"hello\""},
		{"print \"x=\" , x + 1 , 2", "print \"x=\",x+1,2"},
		{"let a = 3 + 4 * 2", "let a=3+4*2"},
		{"a=1", "let a=1"},
		{"A=1", "let A=1"},
		{"let a = ( 3 + 4 ) * 2", "let a=(3+4)*2"},
		{"let a = 3 - ( 4 - 2 )", "let a=3-(4-2)"},
		{"let a = 3 + 4 - 2", "let a=3+4-2"},
		{"let a = 0.0000001", "let a=0.0000001"},
		{"let a = int ( 3.5 )", "let a=int(3.5)"},
		{"let a = rnd ( )", "let a=rnd()"},
		{"goto 100", "goto 100"},
		{"gosub 100", "gosub 100"},
		{"return", "return"},
		{"if a <> 2 then goto 10", "if a<>2 then goto 10"},
		{"if a >= 1 then print \"yes\"", "if a>=1 then print \"yes\""},
		{"input x", "input x"},
		{"for i = 1 to 10", "for i=1 to 10"},
		{"for i = 10 to 1 step -2", "for i=10 to 1 step -2"},
		{"next i", "next i"},
		{"next", "next"},
		{"next  ", "next"},
		{"list", "list"},
		{"run", "run"},
		{"load \"demo\"", "load \"demo\""},
		{"save \"demo\"", "save \"demo\""},
		{"clear", "clear"},
		{"end", "end"},
	}

	for _, tc := range tests {
		stmt, err := buildStatement(tc.in)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tc.in, err)
			continue
		}

		got := renderStmt(stmt)
		if got != tc.out {
			t.Errorf("%q rendered as %q, want %q", tc.in, got, tc.out)
			continue
		}

		// the canonical form must parse back to the same rendering

		again, err := buildStatement(got)
		if err != nil {
			t.Errorf("%q: reparse failed: %v", got, err)
		} else if renderStmt(again) != got {
			t.Errorf("%q: reparse rendered as %q", got, renderStmt(again))
		}
	}
}

func TestParseErrors(t *testing.T) {

	tests := []struct {
		in  string
		msg string
	}{
		{"foo", "Syntax error: Unknown keyword \"foo\""},
		{"print \"abc", "Syntax error: Unterminated string"},
		{"print (1+2", "Syntax error: Unbalanced parentheses"},
		{"print 1)", "Syntax error: Unexpected text after statement"},
		{"print 1 2", "Syntax error: Unexpected text after statement"},
		{"if a=1 print \"x\"", "Syntax error: Expected \"then\""},
		{"for i=1 3", "Syntax error: Expected \"to\""},
		{"goto abc", "Syntax error: Error reading number"},
		{"let 5=3", "Syntax error: Expected variable name"},
		{"input", "Syntax error: Expected variable name"},
		{"a 1", "Syntax error: Expected = after variable name"},
		{"if a 1 then end", "Syntax error: Expected relational operator"},
		{"print ,", "Syntax error: Invalid expression"},
		{"load demo", "Syntax error: Expected quoted string"},
		{"then", "Syntax error: Unexpected keyword \"then\""},
	}

	for _, tc := range tests {
		_, err := buildStatement(tc.in)
		if err == nil {
			t.Errorf("%q: expected error", tc.in)
			continue
		}
		if !isSyntaxError(err) {
			t.Errorf("%q: expected a syntax error, got %v", tc.in, err)
		}
		if err.Error() != tc.msg {
			t.Errorf("%q: got %q, want %q", tc.in, err.Error(), tc.msg)
		}
	}
}

func TestEmptyStatement(t *testing.T) {

	stmt, err := buildStatement("")
	if err != nil {
		t.Fatal(err)
	}
	if stmt.token != EMPTY {
		t.Errorf("blank line parsed as token %d", stmt.token)
	}
}

//
// Expression precedence, checked through evaluation
//

func TestExpressionPrecedence(t *testing.T) {

	resetInterp(t, "")

	tests := []struct {
		in   string
		want string
	}{
		{"3+4*2", "11"},
		{"(3+4)*2", "14"},
		{"2*3+4", "10"},
		{"10-2-3", "5"},
		{"20/2/5", "2"},
		{"-3+5", "2"},
		{"1+2.5", "3.5"},
		{"int(3.9)", "3"},
		{"int(7)", "7"},
		{"int(-2.5)", "-2"},
	}

	for _, tc := range tests {
		sr := &sourceReader{line: []byte(tc.in)}

		ep, err := sr.getExpression()
		if err != nil {
			t.Errorf("%q: parse error %v", tc.in, err)
			continue
		}

		v, err := evaluateExpr(ep)
		if err != nil {
			t.Errorf("%q: eval error %v", tc.in, err)
			continue
		}

		if v.String() != tc.want {
			t.Errorf("%q = %q, want %q", tc.in, v.String(), tc.want)
		}
	}
}

func TestUnknownVariable(t *testing.T) {

	resetInterp(t, "")

	sr := &sourceReader{line: []byte("q+1")}

	ep, err := sr.getExpression()
	if err != nil {
		t.Fatal(err)
	}

	if _, err = evaluateExpr(ep); err == nil {
		t.Error("expected unknown variable error")
	} else if err.Error() != "Runtime error: Unknown variable q" {
		t.Errorf("got %q", err.Error())
	}
}

func TestRndRange(t *testing.T) {

	resetInterp(t, "")

	sr := &sourceReader{line: []byte("rnd()")}

	ep, err := sr.getExpression()
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 100; i++ {
		v, err := evaluateExpr(ep)
		if err != nil {
			t.Fatal(err)
		}
		if v.isInt || v.fval < 0 || v.fval >= 1 {
			t.Fatalf("rnd() = %+v, want float in [0,1)", v)
		}
	}
}

func TestParseLineNumber(t *testing.T) {

	stmtNo, rest, numbered := parseLineNumber("10 print a")
	if !numbered || stmtNo != 10 || rest != "print a" {
		t.Errorf("got %d %q %v", stmtNo, rest, numbered)
	}

	stmtNo, rest, numbered = parseLineNumber("20")
	if !numbered || stmtNo != 20 || rest != "" {
		t.Errorf("got %d %q %v", stmtNo, rest, numbered)
	}

	if _, _, numbered = parseLineNumber("print a"); numbered {
		t.Error("unnumbered line reported as numbered")
	}
}
