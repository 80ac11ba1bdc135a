package main

import (
	"fmt"
	"strconv"
	"strings"
)

//
// Numeric values are either integers or floats.  Arithmetic stays in
// the integer domain until a float operand shows up, at which point
// both sides are promoted to float.  Integer division truncates
// toward zero
//

type value struct {
	ival  int
	fval  float64
	isInt bool
}

func intValue(i int) value {

	return value{ival: i, isInt: true}
}

func floatValue(f float64) value {

	return value{fval: f}
}

func (v value) toFloat() float64 {

	if v.isInt {
		return float64(v.ival)
	}

	return v.fval
}

func (v value) String() string {

	if v.isInt {
		return strconv.Itoa(v.ival)
	}

	str := strconv.FormatFloat(v.fval, 'g', -1, 64)

	//
	// The number grammar reads digits and dots only, so exponent
	// form would not reparse
	//

	if strings.ContainsAny(str, "eE") {
		str = strconv.FormatFloat(v.fval, 'f', -1, 64)
	}

	return str
}

//
// Parse a numeric literal, trying the integer form first so that
// "42" stays an integer and "42.5" becomes a float
//

func parseValue(str string) (value, bool) {

	str = strings.TrimSpace(str)

	if i, err := strconv.Atoi(str); err == nil {
		return intValue(i), true
	}

	if f, err := strconv.ParseFloat(str, 64); err == nil {
		return floatValue(f), true
	}

	return value{}, false
}

func arith(op byte, lhs, rhs value) (value, error) {

	if lhs.isInt && rhs.isInt {
		switch op {
		case '+':
			return intValue(lhs.ival + rhs.ival), nil

		case '-':
			return intValue(lhs.ival - rhs.ival), nil

		case '*':
			return intValue(lhs.ival * rhs.ival), nil

		case '/':
			if rhs.ival == 0 {
				return value{}, runtimeError(EDIVISIONBYZERO)
			}
			return intValue(lhs.ival / rhs.ival), nil
		}

		crash(fmt.Sprintf("Unknown arithmetic operator %q", op))
	}

	lf := lhs.toFloat()
	rf := rhs.toFloat()

	switch op {
	case '+':
		return floatValue(lf + rf), nil

	case '-':
		return floatValue(lf - rf), nil

	case '*':
		return floatValue(lf * rf), nil

	case '/':
		if rf == 0 {
			return value{}, runtimeError(EDIVISIONBYZERO)
		}
		return floatValue(lf / rf), nil
	}

	crash(fmt.Sprintf("Unknown arithmetic operator %q", op))

	panic(nil) // not reached
}

func compareValues(relop int, lhs, rhs value) bool {

	if lhs.isInt && rhs.isInt {
		return compareInts(relop, lhs.ival, rhs.ival)
	}

	return compareFloats(relop, lhs.toFloat(), rhs.toFloat())
}

func compareInts(relop int, lhs, rhs int) bool {

	switch relop {
	case EQ:
		return lhs == rhs

	case NE:
		return lhs != rhs

	case LT:
		return lhs < rhs

	case LE:
		return lhs <= rhs

	case GT:
		return lhs > rhs

	case GE:
		return lhs >= rhs
	}

	crash(fmt.Sprintf("Unknown relational operator %d", relop))

	panic(nil) // not reached
}

func compareFloats(relop int, lhs, rhs float64) bool {

	switch relop {
	case EQ:
		return lhs == rhs

	case NE:
		return lhs != rhs

	case LT:
		return lhs < rhs

	case LE:
		return lhs <= rhs

	case GT:
		return lhs > rhs

	case GE:
		return lhs >= rhs
	}

	crash(fmt.Sprintf("Unknown relational operator %d", relop))

	panic(nil) // not reached
}
