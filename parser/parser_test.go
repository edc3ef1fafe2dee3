package parser

import (
	"testing"

	"mapscript/ast"
)

type fakeFunctions map[string][2]int

func (f fakeFunctions) Arity(name string) (int, int, bool) {
	a, ok := f[name]
	return a[0], a[1], ok
}

func parseOne(t *testing.T, input string) *ast.Expression {
	t.Helper()
	p := New(nil)
	exp := p.ParseExpressionLine("test", input)
	if p.ErrorsExist() {
		t.Fatalf("parsing %q: %s", input, p.ReturnErrors())
	}
	return exp
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"3 + 4 * 2", "(3 + (4 * 2))"},
		{"(3 + 4) * 2", "((3 + 4) * 2)"},
		{"a = b = 1", "(a = (b = 1))"},
		{"a = 1 + 2", "(a = (1 + 2))"},
		{"not a == b", "(not (a == b))"},
		{"a and b or c", "((a and b) or c)"},
		{"a or b ? c : d", "(a or (b ? c : d))"},
		{"a ? b : c ? d : e", "(a ? b : (c ? d : e))"},
		{"1 + 2 . 'm'", "((1 + 2) . \"m\")"},
		{"1 + 2 * 3 x 4", "(1 + ((2 * 3) x 4))"},
		{"-a * b", "((- a) * b)"},
		{"-a - b", "((- a) - b)"},
		{"a[1][2]", "((a[1])[2])"},
		{"a[1] = 2", "((a[1]) = 2)"},
		{"++a", "(++ a)"},
		{"a++ + 1", "((a ++) + 1)"},
		{"1 < 2 == 3", "((1 < 2) == 3)"},
		{"'a' lt 'b'", "(\"a\" lt \"b\")"},
		{"2 x 3", "(2 x 3)"},
		{"a = b[1] + 1", "(a = ((b[1]) + 1))"},
	}
	for _, tt := range tests {
		exp := parseOne(t, tt.input)
		if got := exp.String(); got != tt.expected {
			t.Errorf("%q parsed as %s, expected %s", tt.input, got, tt.expected)
		}
	}
}

func TestLiterals(t *testing.T) {
	exp := parseOne(t, "[1, 'two', f]")
	if got := exp.String(); got != "[1, \"two\", f]" {
		t.Errorf("list literal parsed as %s", got)
	}
	exp = parseOne(t, "{'a': 1, 2: 'b'}")
	if got := exp.String(); got != "{\"a\": 1, 2: \"b\"}" {
		t.Errorf("hashmap literal parsed as %s", got)
	}
	exp = parseOne(t, "[]")
	if got := exp.String(); got != "[]" {
		t.Errorf("empty list literal parsed as %s", got)
	}
}

func TestVariableName(t *testing.T) {
	if name := parseOne(t, "radius").VariableName(); name != "radius" {
		t.Errorf("VariableName of a bare variable = %q", name)
	}
	if name := parseOne(t, "radius + 1").VariableName(); name != "" {
		t.Errorf("VariableName of a compound expression = %q", name)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input   string
		errorId string
	}{
		{"1 = 2", "parse/variable"},
		{"a + b = 2", "parse/variable"},
		{"++3", "parse/variable"},
		{"++a++", "parse/variable"},
		{"(1 + 2", "parse/close"},
		{"a[1", "parse/close"},
		{"1 ? 2", "parse/colon"},
		{"[[1], 2]", "parse/nested"},
		{"{'a': [1]}", "parse/nested"},
		{"1 +", "parse/eof"},
		{"* 2", "parse/prefix"},
		{"@", "lex/ill"},
		{"'abc", "lex/quote"},
	}
	for _, tt := range tests {
		p := New(nil)
		p.ParseExpressionLine("test", tt.input)
		if !p.ErrorsExist() {
			t.Errorf("parsing %q should have failed", tt.input)
			continue
		}
		if p.Errors[0].ErrorId != tt.errorId {
			t.Errorf("parsing %q raised %s (%s), expected %s",
				tt.input, p.Errors[0].ErrorId, p.Errors[0].Message, tt.errorId)
		}
	}
}

func TestFunctionCallChecking(t *testing.T) {
	functions := fakeFunctions{"f": {1, 2}}

	p := New(functions)
	exp := p.ParseExpressionLine("test", "f(1, 2)")
	if p.ErrorsExist() {
		t.Fatalf("f(1, 2): %s", p.ReturnErrors())
	}
	call, ok := exp.Node.(*ast.FunctionCall)
	if !ok || call.Name != "f" || len(call.Arguments) != 2 {
		t.Errorf("f(1, 2) parsed as %s", exp.String())
	}

	p = New(functions)
	p.ParseExpressionLine("test", "f(1, 2, 3)")
	if !p.ErrorsExist() || p.Errors[0].ErrorId != "parse/arity" {
		t.Error("f(1, 2, 3) should fail the arity check")
	}

	p = New(functions)
	p.ParseExpressionLine("test", "zork(1)")
	if !p.ErrorsExist() || p.Errors[0].ErrorId != "parse/found" {
		t.Error("a call of an unknown function should fail")
	}
}
