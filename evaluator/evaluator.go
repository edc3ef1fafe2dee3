package evaluator

import (
	"math"
	"strconv"
	"strings"

	"mapscript/ast"
	"mapscript/object"
	"mapscript/token"
)

// VariableStore is everything the evaluator knows about variables.
// All state lives on the caller's side of this interface; the
// evaluator keeps none of its own.
type VariableStore interface {
	GetVariable(name string) (object.Object, bool)
	DefineVariable(name string, value object.Object)
	DefineHashMapEntry(mapName, key string, value object.Object) *object.Error
}

// Eval walks an expression tree and produces a value. Errors are
// values too, of the error kind, and abort the walk as soon as they
// appear.
func Eval(node ast.Node, reg *Registry, vars VariableStore) object.Object {
	switch node := node.(type) {
	case *ast.Expression:
		return Eval(node.Node, reg, vars)
	case *ast.NumberLiteral:
		return object.MakeNumber(node.Value)
	case *ast.StringLiteral:
		return &object.String{Value: node.Value}
	case *ast.Identifier:
		value, ok := vars.GetVariable(node.Value)
		if !ok {
			return object.EMPTY_STRING
		}
		return value
	case *ast.PrefixExpression:
		return evalPrefix(node, reg, vars)
	case *ast.PostfixExpression:
		return evalPostfix(node, reg, vars)
	case *ast.InfixExpression:
		return evalInfix(node, reg, vars)
	case *ast.AssignmentExpression:
		return evalAssignment(node, reg, vars)
	case *ast.ConditionalExpression:
		return evalConditional(node, reg, vars)
	case *ast.IndexExpression:
		return evalIndex(node, reg, vars)
	case *ast.ArrayLiteral:
		return evalArrayLiteral(node, reg, vars)
	case *ast.HashLiteral:
		return evalHashLiteral(node, reg, vars)
	case *ast.FunctionCall:
		return evalFunctionCall(node, reg, vars)
	}
	return object.CreateErr("parse/prefix", node.GetToken())
}

func isError(o object.Object) bool {
	return o != nil && o.Type() == object.ERROR_OBJ
}

// number coerces a value for arithmetic; hashmaps and geometry have
// no numeric form.
func number(o object.Object, tok token.Token) (float64, *object.Error) {
	v, ok := object.AsNumber(o)
	if !ok {
		return 0, object.CreateErr("eval/number", tok, string(o.Type()))
	}
	return v, nil
}

// checkedNumber enforces the overflow policy: an infinite or NaN
// result, division by zero included, raises rather than flowing on
// through the script.
func checkedNumber(v float64, tok token.Token) object.Object {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return object.CreateErr("eval/overflow", tok)
	}
	return object.MakeNumber(v)
}

func evalPrefix(node *ast.PrefixExpression, reg *Registry, vars VariableStore) object.Object {
	if node.Operator == "++" || node.Operator == "--" {
		return evalIncrement(node.Right, node.Operator, node.GetToken(), false, reg, vars)
	}
	right := Eval(node.Right, reg, vars)
	if isError(right) {
		return right
	}
	switch node.Operator {
	case "-":
		v, err := number(right, node.GetToken())
		if err != nil {
			return err
		}
		return object.MakeNumber(-v)
	case "+":
		v, err := number(right, node.GetToken())
		if err != nil {
			return err
		}
		return object.MakeNumber(v)
	case "not":
		// A string is truthy when non-empty, so 'not "0"' is 0; a
		// number is truthy when non-zero.
		if s, ok := right.(*object.String); ok {
			if s.Value == "" {
				return object.NUMBER_ONE
			}
			return object.NUMBER_ZERO
		}
		v, err := number(right, node.GetToken())
		if err != nil {
			return err
		}
		if v == 0 {
			return object.NUMBER_ONE
		}
		return object.NUMBER_ZERO
	}
	return object.CreateErr("parse/prefix", node.GetToken())
}

func evalPostfix(node *ast.PostfixExpression, reg *Registry, vars VariableStore) object.Object {
	return evalIncrement(node.Left, node.Operator, node.GetToken(), true, reg, vars)
}

// evalIncrement handles all four of ++a, --a, a++ and a--. The parser
// guarantees the operand is a variable or a subscript of one. The
// postfix forms return the value before the step, an unset variable
// counting as 0; the prefix forms return the new value.
func evalIncrement(target ast.Node, op string, tok token.Token, postfix bool, reg *Registry, vars VariableStore) object.Object {
	current := Eval(target, reg, vars)
	if isError(current) {
		return current
	}
	before, err := number(current, tok)
	if err != nil {
		return err
	}
	step := 1.0
	if op == "--" {
		step = -1
	}
	after := object.MakeNumber(before + step)
	if written := writeTarget(target, after, tok, reg, vars); written != nil {
		return written
	}
	if postfix {
		return object.MakeNumber(before)
	}
	return after
}

// writeTarget stores a value into a variable or one hashmap entry.
// It returns nil on success and the error value otherwise.
func writeTarget(target ast.Node, value object.Object, tok token.Token, reg *Registry, vars VariableStore) object.Object {
	switch target := target.(type) {
	case *ast.Identifier:
		vars.DefineVariable(target.Value, value)
		return nil
	case *ast.IndexExpression:
		name := target.Left.(*ast.Identifier).Value
		key := Eval(target.Index, reg, vars)
		if isError(key) {
			return key
		}
		keyText, keyErr := hashKey(key, tok)
		if keyErr != nil {
			return keyErr
		}
		if value.Type() == object.HASH_OBJ {
			return object.CreateErr("eval/nested", tok)
		}
		if err := vars.DefineHashMapEntry(name, keyText, value); err != nil {
			return err
		}
		return nil
	}
	return object.CreateErr("parse/variable", tok, target.String())
}

// hashKey turns a value into a hashmap key; only numbers and strings
// qualify.
func hashKey(o object.Object, tok token.Token) (string, *object.Error) {
	switch o.Type() {
	case object.NUMBER_OBJ, object.STRING_OBJ:
		return o.Inspect(object.ViewStdOut), nil
	}
	return "", object.CreateErr("eval/key", tok, string(o.Type()))
}

func evalAssignment(node *ast.AssignmentExpression, reg *Registry, vars VariableStore) object.Object {
	value := Eval(node.Right, reg, vars)
	if isError(value) {
		return value
	}
	if written := writeTarget(node.Left, value, node.GetToken(), reg, vars); written != nil {
		return written
	}
	return value
}

func evalConditional(node *ast.ConditionalExpression, reg *Registry, vars VariableStore) object.Object {
	cond := Eval(node.Condition, reg, vars)
	if isError(cond) {
		return cond
	}
	v, err := number(cond, node.GetToken())
	if err != nil {
		return err
	}
	// Exactly one branch runs; the untaken branch's side effects
	// never happen.
	if v != 0 {
		return Eval(node.Consequence, reg, vars)
	}
	return Eval(node.Alternative, reg, vars)
}

func evalIndex(node *ast.IndexExpression, reg *Registry, vars VariableStore) object.Object {
	left := Eval(node.Left, reg, vars)
	if isError(left) {
		return left
	}
	key := Eval(node.Index, reg, vars)
	if isError(key) {
		return key
	}
	keyText, keyErr := hashKey(key, node.GetToken())
	if keyErr != nil {
		return keyErr
	}
	// Subscripting anything that isn't a hashmap, an unset variable
	// included, reads as the empty string rather than erroring.
	h, ok := left.(*object.Hash)
	if !ok {
		return object.EMPTY_STRING
	}
	return h.Get(keyText)
}

func evalArrayLiteral(node *ast.ArrayLiteral, reg *Registry, vars VariableStore) object.Object {
	h := object.NewHash()
	for i, el := range node.Elements {
		value := Eval(el, reg, vars)
		if isError(value) {
			return value
		}
		if value.Type() == object.HASH_OBJ {
			return object.CreateErr("eval/nested", el.GetToken())
		}
		h.Set(strconv.Itoa(i+1), value)
	}
	return h
}

func evalHashLiteral(node *ast.HashLiteral, reg *Registry, vars VariableStore) object.Object {
	h := object.NewHash()
	for i, keyNode := range node.Keys {
		key := Eval(keyNode, reg, vars)
		if isError(key) {
			return key
		}
		keyText, keyErr := hashKey(key, keyNode.GetToken())
		if keyErr != nil {
			return keyErr
		}
		value := Eval(node.Values[i], reg, vars)
		if isError(value) {
			return value
		}
		if value.Type() == object.HASH_OBJ {
			return object.CreateErr("eval/nested", node.Values[i].GetToken())
		}
		h.Set(keyText, value)
	}
	return h
}

func evalFunctionCall(node *ast.FunctionCall, reg *Registry, vars VariableStore) object.Object {
	fn, ok := reg.Get(node.Name)
	if !ok {
		return object.CreateErr("parse/found", node.GetToken(), node.Name)
	}
	args := make([]object.Object, 0, len(node.Arguments))
	for _, a := range node.Arguments {
		value := Eval(a, reg, vars)
		if isError(value) {
			return value
		}
		args = append(args, value)
	}
	result := fn.Fn(args, node.GetToken())
	if err, failed := result.(*object.Error); failed {
		// The function's name goes on the front of the message so the
		// script author can see which call blew up.
		return object.CreateErr("eval/func", node.GetToken(), node.Name, err.Message)
	}
	return result
}

func evalInfix(node *ast.InfixExpression, reg *Registry, vars VariableStore) object.Object {
	// Both sides always evaluate, 'and' and 'or' included: there is
	// no short-circuiting in this language, and scripts rely on both
	// sides' side effects happening.
	left := Eval(node.Left, reg, vars)
	if isError(left) {
		return left
	}
	right := Eval(node.Right, reg, vars)
	if isError(right) {
		return right
	}
	tok := node.GetToken()

	switch node.Operator {
	case ".":
		return &object.String{
			Value: left.Inspect(object.ViewStdOut) + right.Inspect(object.ViewStdOut),
		}
	case "x":
		return evalRepeat(left, right, tok)
	case "lt", "gt", "le", "ge", "eq", "ne":
		return evalLexicalComparison(node.Operator, left, right)
	}

	l, err := number(left, tok)
	if err != nil {
		return err
	}
	r, err := number(right, tok)
	if err != nil {
		return err
	}

	switch node.Operator {
	case "+":
		return checkedNumber(l+r, tok)
	case "-":
		return checkedNumber(l-r, tok)
	case "*":
		return checkedNumber(l*r, tok)
	case "/":
		return checkedNumber(l/r, tok)
	case "%":
		// C-style fmod: the sign follows the dividend.
		return checkedNumber(math.Mod(l, r), tok)
	case "and":
		return boolNumber(l != 0 && r != 0)
	case "or":
		return boolNumber(l != 0 || r != 0)
	case "==":
		return boolNumber(l == r)
	case "!=":
		return boolNumber(l != r)
	case "<":
		return boolNumber(l < r)
	case ">":
		return boolNumber(l > r)
	case "<=":
		return boolNumber(l <= r)
	case ">=":
		return boolNumber(l >= r)
	}
	return object.CreateErr("parse/prefix", tok)
}

func boolNumber(b bool) object.Object {
	if b {
		return object.NUMBER_ONE
	}
	return object.NUMBER_ZERO
}

func evalRepeat(left, right object.Object, tok token.Token) object.Object {
	count, err := number(right, tok)
	if err != nil {
		return err
	}
	n := int(math.Floor(count))
	if n <= 0 {
		return object.EMPTY_STRING
	}
	return &object.String{Value: strings.Repeat(left.Inspect(object.ViewStdOut), n)}
}

func evalLexicalComparison(op string, left, right object.Object) object.Object {
	c := strings.Compare(left.Inspect(object.ViewStdOut), right.Inspect(object.ViewStdOut))
	switch op {
	case "lt":
		return boolNumber(c < 0)
	case "gt":
		return boolNumber(c > 0)
	case "le":
		return boolNumber(c <= 0)
	case "ge":
		return boolNumber(c >= 0)
	case "eq":
		return boolNumber(c == 0)
	}
	return boolNumber(c != 0) // ne
}
