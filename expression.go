package main

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

//
// Expression evaluation.  String literals are only legal as print
// arguments and file names, so hitting one here is a runtime error,
// not an internal botch
//

func evaluateExpr(ep *exprNode) (value, error) {

	switch ep.kind {
	case EXNUMBER:
		return ep.num, nil

	case EXSTRING:
		return value{}, runtimeError(ESTRINGEXPR)

	case EXVAR:
		v, ok := g.variables[ep.varName]
		if !ok {
			return value{}, runtimeError("Unknown variable %c", ep.varName)
		}
		return v, nil

	case EXBINOP:
		lhs, err := evaluateExpr(ep.left)
		if err != nil {
			return value{}, err
		}

		rhs, err := evaluateExpr(ep.right)
		if err != nil {
			return value{}, err
		}

		return arith(ep.op, lhs, rhs)

	case EXCALL:
		return evaluateCall(ep)
	}

	crash(fmt.Sprintf("Unknown expression node type %d", ep.kind))

	panic(nil) // not reached
}

func evaluateCall(ep *exprNode) (value, error) {

	bif, ok := functionMap[ep.str]
	if !ok {
		return value{}, runtimeError("Unknown function %q", ep.str)
	}

	if len(ep.args) != bif.nargs {
		return value{}, runtimeError("Wrong number of arguments to %q", ep.str)
	}

	args := make([]value, 0, len(ep.args))

	for _, argExpr := range ep.args {
		arg, err := evaluateExpr(argExpr)
		if err != nil {
			return value{}, err
		}
		args = append(args, arg)
	}

	return bif.fn(args)
}

func evaluateCondition(cp *condNode) (bool, error) {

	if cp.left.kind == EXSTRING || cp.right.kind == EXSTRING {
		return false, runtimeError(ESTRINGCOMPARE)
	}

	lhs, err := evaluateExpr(cp.left)
	if err != nil {
		return false, err
	}

	rhs, err := evaluateExpr(cp.right)
	if err != nil {
		return false, err
	}

	return compareValues(cp.relop, lhs, rhs), nil
}

//
// Builtin functions
//

func initFunctions() {

	functionMap = map[string]basicFunction{
		"rnd": {nargs: 0, fn: builtinRnd},
		"int": {nargs: 1, fn: builtinInt},
	}
}

func builtinRnd(args []value) (value, error) {

	return floatValue(rand.Float64()), nil
}

//
// int() truncates toward zero.  Integers pass through unchanged
//

func builtinInt(args []value) (value, error) {

	if args[0].isInt {
		return args[0], nil
	}

	return intValue(int(math.Trunc(args[0].fval))), nil
}

//
// Rendering back to source form.  The output must reparse to a
// semantically identical tree, so a right-hand operand of the same
// precedence gets parenthesized ("a-(b-c)" must not come back as
// "a-b-c"), and any operand of lower precedence does too
//

func opPrecedence(op byte) int {

	if op == '*' || op == '/' {
		return 2
	}

	return 1
}

func renderExpr(ep *exprNode) string {

	switch ep.kind {
	case EXNUMBER:
		return ep.num.String()

	case EXSTRING:
		return "\"" + ep.str + "\""

	case EXVAR:
		return string(ep.varName)

	case EXCALL:
		args := make([]string, 0, len(ep.args))
		for _, arg := range ep.args {
			args = append(args, renderExpr(arg))
		}
		return ep.str + "(" + strings.Join(args, ",") + ")"

	case EXBINOP:
		prec := opPrecedence(ep.op)

		lhs := renderExpr(ep.left)
		if ep.left.kind == EXBINOP && opPrecedence(ep.left.op) < prec {
			lhs = "(" + lhs + ")"
		}

		rhs := renderExpr(ep.right)
		if ep.right.kind == EXBINOP && opPrecedence(ep.right.op) <= prec {
			rhs = "(" + rhs + ")"
		}

		return lhs + string(ep.op) + rhs
	}

	crash(fmt.Sprintf("Unknown expression node type %d", ep.kind))

	panic(nil) // not reached
}

func renderCondition(cp *condNode) string {

	return renderExpr(cp.left) + relopNameMap[cp.relop] + renderExpr(cp.right)
}
