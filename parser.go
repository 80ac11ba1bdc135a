package main

import (
	"strconv"
	"strings"
)

//
// Recursive descent parser.  A sourceReader carries the cursor over a
// single statement line, plus the parenthesis nesting depth, which
// must return to zero by the time the statement has been consumed
//

type sourceReader struct {
	line     []byte
	idx      int
	expDepth int
}

func (sr *sourceReader) ch() byte {

	if sr.idx == len(sr.line) {
		return 0
	}

	return sr.line[sr.idx]
}

func (sr *sourceReader) next() {

	if sr.idx < len(sr.line) {
		sr.idx++
	}
}

func (sr *sourceReader) atEnd() bool {

	return sr.idx == len(sr.line)
}

func (sr *sourceReader) skipWhitespace() {

	for sr.ch() == ' ' || sr.ch() == '\t' {
		sr.next()
	}
}

func isDigitCh(ch byte) bool {

	return ch >= '0' && ch <= '9'
}

func isAlphaCh(ch byte) bool {

	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

//
// Parse one statement line (with any line number already stripped
// off).  The whole line must be consumed, and every open parenthesis
// closed, or the statement is rejected
//

func buildStatement(src string) (*stmtNode, error) {

	sr := &sourceReader{line: []byte(src)}

	stmt, err := sr.getStatement()
	if err != nil {
		return nil, err
	}

	sr.skipWhitespace()

	if sr.expDepth != 0 {
		return nil, syntaxError(EUNBALANCEDPARENS)
	}

	if !sr.atEnd() {
		return nil, syntaxError(ETRAILINGTEXT)
	}

	return stmt, nil
}

func (sr *sourceReader) getStatement() (*stmtNode, error) {

	kw := sr.getKeyword()

	if kw == "" {
		sr.skipWhitespace()
		if sr.atEnd() {
			return &stmtNode{token: EMPTY}, nil
		}
		return nil, syntaxError(EUNKNOWNKEYWORD)
	}

	token, ok := keywordMap[kw]
	if !ok {
		//
		// A lone letter is sugar for an assignment without the
		// let keyword
		//
		if len(kw) == 1 {
			return sr.getAssignment(kw[0])
		}
		return nil, syntaxError("%s %q", EUNKNOWNKEYWORD, kw)
	}

	switch token {
	case REM:
		sr.skipWhitespace()
		text := string(sr.line[sr.idx:])
		sr.idx = len(sr.line)
		return &stmtNode{token: REM, text: text}, nil

	case PRINT:
		return sr.getPrintStatement()

	case LET:
		varName, err := sr.getVariable()
		if err != nil {
			return nil, err
		}
		return sr.getAssignment(varName)

	case GOTO, GOSUB:
		target, err := sr.getInteger()
		if err != nil {
			return nil, err
		}
		return &stmtNode{token: token, target: target}, nil

	case IF:
		return sr.getIfStatement()

	case INPUT:
		varName, err := sr.getVariable()
		if err != nil {
			return nil, err
		}
		return &stmtNode{token: INPUT, varName: varName}, nil

	case NEXT:
		return sr.getNextStatement()

	case FOR:
		return sr.getForStatement()

	case LOAD, SAVE:
		path, err := sr.getString()
		if err != nil {
			return nil, err
		}
		return &stmtNode{token: token, text: path}, nil

	case RETURN, LIST, RUN, CLEAR, END,
		BYE, HELP, STATS, TRACE, DUMP:
		return &stmtNode{token: token}, nil
	}

	// then/to/step cannot start a statement

	return nil, syntaxError("Unexpected keyword %q", kw)
}

func (sr *sourceReader) getAssignment(varName byte) (*stmtNode, error) {

	sr.skipWhitespace()

	if sr.ch() != '=' {
		return nil, syntaxError(EEXPECTEDEQUALS)
	}
	sr.next()

	expr, err := sr.getExpression()
	if err != nil {
		return nil, err
	}

	return &stmtNode{token: LET, varName: varName, expr: expr}, nil
}

func (sr *sourceReader) getPrintStatement() (*stmtNode, error) {

	stmt := &stmtNode{token: PRINT}

	for {
		sr.skipWhitespace()
		if sr.atEnd() {
			break
		}

		var arg *exprNode

		if sr.ch() == '"' {
			str, err := sr.getString()
			if err != nil {
				return nil, err
			}
			arg = &exprNode{kind: EXSTRING, str: str}
		} else {
			var err error
			if arg, err = sr.getExpression(); err != nil {
				return nil, err
			}
		}

		stmt.args = append(stmt.args, arg)

		sr.skipWhitespace()
		if sr.ch() != ',' {
			break
		}
		sr.next()
	}

	return stmt, nil
}

func (sr *sourceReader) getIfStatement() (*stmtNode, error) {

	cond, err := sr.getCondition()
	if err != nil {
		return nil, err
	}

	if err = sr.skipToken(THEN); err != nil {
		return nil, err
	}

	then, err := sr.getStatement()
	if err != nil {
		return nil, err
	}

	return &stmtNode{token: IF, cond: cond, then: then}, nil
}

func (sr *sourceReader) getForStatement() (*stmtNode, error) {

	varName, err := sr.getVariable()
	if err != nil {
		return nil, err
	}

	sr.skipWhitespace()
	if sr.ch() != '=' {
		return nil, syntaxError(EEXPECTEDEQUALS)
	}
	sr.next()

	start, err := sr.getExpression()
	if err != nil {
		return nil, err
	}

	if err = sr.skipToken(TO); err != nil {
		return nil, err
	}

	limit, err := sr.getExpression()
	if err != nil {
		return nil, err
	}

	stmt := &stmtNode{token: FOR, varName: varName, start: start, limit: limit}

	sr.skipWhitespace()
	if sr.atEnd() {
		return stmt, nil
	}

	if err = sr.skipToken(STEP); err != nil {
		return nil, err
	}

	if stmt.step, err = sr.getExpression(); err != nil {
		return nil, err
	}

	return stmt, nil
}

//
// The loop variable on next is optional.  A bare next closes the
// innermost loop; a named next must match it
//

func (sr *sourceReader) getNextStatement() (*stmtNode, error) {

	sr.skipWhitespace()

	if sr.atEnd() {
		return &stmtNode{token: NEXT}, nil
	}

	varName, err := sr.getVariable()
	if err != nil {
		return nil, err
	}

	return &stmtNode{token: NEXT, varName: varName}, nil
}

func (sr *sourceReader) getCondition() (*condNode, error) {

	left, err := sr.getExpression()
	if err != nil {
		return nil, err
	}

	relop, err := sr.getRelop()
	if err != nil {
		return nil, err
	}

	right, err := sr.getExpression()
	if err != nil {
		return nil, err
	}

	return &condNode{left: left, relop: relop, right: right}, nil
}

//
// Expression grammar: expression handles + and -, term handles * and /,
// factor handles literals, variables, function calls, unary minus and
// parenthesized subexpressions.  A closing parenthesis is consumed by
// the expression level when a subexpression is open
//

func (sr *sourceReader) getExpression() (*exprNode, error) {

	left, err := sr.getTerm()
	if err != nil {
		return nil, err
	}

	for {
		sr.skipWhitespace()
		ch := sr.ch()

		switch {
		case ch == '+' || ch == '-':
			sr.next()
			right, err := sr.getTerm()
			if err != nil {
				return nil, err
			}
			left = &exprNode{kind: EXBINOP, op: ch, left: left, right: right}

		case ch == ')' && sr.expDepth > 0:
			sr.expDepth--
			sr.next()
			return left, nil

		default:
			return left, nil
		}
	}
}

func (sr *sourceReader) getTerm() (*exprNode, error) {

	left, err := sr.getFactor()
	if err != nil {
		return nil, err
	}

	for {
		sr.skipWhitespace()
		ch := sr.ch()

		if ch != '*' && ch != '/' {
			return left, nil
		}
		sr.next()

		right, err := sr.getFactor()
		if err != nil {
			return nil, err
		}

		left = &exprNode{kind: EXBINOP, op: ch, left: left, right: right}
	}
}

func (sr *sourceReader) getFactor() (*exprNode, error) {

	sr.skipWhitespace()
	ch := sr.ch()

	switch {
	case ch == '(':
		sr.expDepth++
		sr.next()
		return sr.getExpression()

	case ch == '-' || isDigitCh(ch):
		return sr.getNumber()

	case isAlphaCh(ch):
		name := sr.getKeyword()
		if len(name) == 1 {
			return &exprNode{kind: EXVAR, varName: name[0]}, nil
		}
		return sr.getCallArgs(name)
	}

	return nil, syntaxError(EINVALIDEXPR)
}

//
// Parse the parenthesized argument list of a function call.  The
// closing parenthesis of the list is consumed by the last argument's
// expression parser, which is detected by the depth dropping back to
// its value before the opening parenthesis
//

func (sr *sourceReader) getCallArgs(name string) (*exprNode, error) {

	sr.skipWhitespace()
	if sr.ch() != '(' {
		return nil, syntaxError("%s %q", EUNKNOWNKEYWORD, name)
	}

	baseDepth := sr.expDepth
	sr.expDepth++
	sr.next()

	node := &exprNode{kind: EXCALL, str: name}

	sr.skipWhitespace()
	if sr.ch() == ')' {
		sr.expDepth--
		sr.next()
		return node, nil
	}

	for {
		arg, err := sr.getExpression()
		if err != nil {
			return nil, err
		}
		node.args = append(node.args, arg)

		if sr.expDepth == baseDepth {
			return node, nil
		}

		sr.skipWhitespace()
		if sr.ch() != ',' {
			return nil, syntaxError(EINVALIDEXPR)
		}
		sr.next()
	}
}

//
// Token-level helpers
//

func (sr *sourceReader) getKeyword() string {

	sr.skipWhitespace()

	start := sr.idx
	for isAlphaCh(sr.ch()) {
		sr.next()
	}

	return string(sr.line[start:sr.idx])
}

func (sr *sourceReader) skipToken(token int) error {

	kw := sr.getKeyword()

	if tok, ok := keywordMap[kw]; !ok || tok != token {
		return syntaxError("Expected %q", keywordNameMap[token])
	}

	return nil
}

func (sr *sourceReader) getVariable() (byte, error) {

	name := sr.getKeyword()

	if len(name) != 1 {
		return 0, syntaxError(EEXPECTEDVARIABLE)
	}

	return name[0], nil
}

func (sr *sourceReader) getInteger() (int, error) {

	sr.skipWhitespace()

	start := sr.idx
	for isDigitCh(sr.ch()) {
		sr.next()
	}

	n, err := strconv.Atoi(string(sr.line[start:sr.idx]))
	if err != nil {
		return 0, syntaxError(EBADNUMBER)
	}

	return n, nil
}

//
// A number is a run of digits and dots, with an optional leading
// minus sign.  Integer conversion is tried before float, so a literal
// without a dot stays in the integer domain
//

func (sr *sourceReader) getNumber() (*exprNode, error) {

	sr.skipWhitespace()

	start := sr.idx
	if sr.ch() == '-' {
		sr.next()
	}

	for isDigitCh(sr.ch()) || sr.ch() == '.' {
		sr.next()
	}

	v, ok := parseValue(string(sr.line[start:sr.idx]))
	if !ok {
		return nil, syntaxError(EBADNUMBER)
	}

	return &exprNode{kind: EXNUMBER, num: v}, nil
}

func (sr *sourceReader) getString() (string, error) {

	sr.skipWhitespace()

	if sr.ch() != '"' {
		return "", syntaxError(EEXPECTEDSTRING)
	}
	sr.next()

	start := sr.idx
	for sr.ch() != '"' {
		if sr.atEnd() {
			return "", syntaxError(EUNTERMINATED)
		}
		sr.next()
	}

	str := string(sr.line[start:sr.idx])
	sr.next()

	return str, nil
}

func (sr *sourceReader) getRelop() (int, error) {

	sr.skipWhitespace()

	switch sr.ch() {
	case '=':
		sr.next()
		return EQ, nil

	case '<':
		sr.next()
		if sr.ch() == '=' {
			sr.next()
			return LE, nil
		}
		if sr.ch() == '>' {
			sr.next()
			return NE, nil
		}
		return LT, nil

	case '>':
		sr.next()
		if sr.ch() == '=' {
			sr.next()
			return GE, nil
		}
		return GT, nil
	}

	return 0, syntaxError(EEXPECTEDRELOP)
}

//
// Split a leading line number off of an input line.  Returns the
// number, the remainder of the line, and whether a number was present
//

func parseLineNumber(line string) (int, string, bool) {

	i := 0
	for i < len(line) && isDigitCh(line[i]) {
		i++
	}

	if i == 0 {
		return 0, line, false
	}

	stmtNo, err := strconv.Atoi(line[:i])
	if err != nil {
		return 0, line, false
	}

	return stmtNo, strings.TrimLeft(line[i:], " \t"), true
}
