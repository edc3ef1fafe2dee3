package lexer

import (
	"testing"

	"mapscript/token"
)

func TestNextToken(t *testing.T) {
	input := `radius = 5 + 4.5 * 2
name = "foo" . 'bar'
i++ ; --j
a[1] == b and not c or d lt 'e'
x <= 1e3 ? 2 : 3 # trailing comment
{k: 1} % 7 != 8
`

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.IDENT, "radius"},
		{token.ASSIGN, "="},
		{token.NUMBER, "5"},
		{token.PLUS, "+"},
		{token.NUMBER, "4.5"},
		{token.ASTERISK, "*"},
		{token.NUMBER, "2"},
		{token.NEWLINE, ";"},
		{token.IDENT, "name"},
		{token.ASSIGN, "="},
		{token.STRING, "foo"},
		{token.CONCAT, "."},
		{token.STRING, "bar"},
		{token.NEWLINE, ";"},
		{token.IDENT, "i"},
		{token.INCREMENT, "++"},
		{token.SEMICOLON, ";"},
		{token.DECREMENT, "--"},
		{token.IDENT, "j"},
		{token.NEWLINE, ";"},
		{token.IDENT, "a"},
		{token.LBRACK, "["},
		{token.NUMBER, "1"},
		{token.RBRACK, "]"},
		{token.EQ, "=="},
		{token.IDENT, "b"},
		{token.AND, "and"},
		{token.NOT, "not"},
		{token.IDENT, "c"},
		{token.OR, "or"},
		{token.IDENT, "d"},
		{token.LEX_LT, "lt"},
		{token.STRING, "e"},
		{token.NEWLINE, ";"},
		{token.IDENT, "x"},
		{token.LE, "<="},
		{token.NUMBER, "1e3"},
		{token.QUESTION, "?"},
		{token.NUMBER, "2"},
		{token.COLON, ":"},
		{token.NUMBER, "3"},
		{token.NEWLINE, ";"},
		{token.LBRACE, "{"},
		{token.IDENT, "k"},
		{token.COLON, ":"},
		{token.NUMBER, "1"},
		{token.RBRACE, "}"},
		{token.PERCENT, "%"},
		{token.NUMBER, "7"},
		{token.NOT_EQ, "!="},
		{token.NUMBER, "8"},
		{token.NEWLINE, ";"},
		{token.EOF, "EOF"},
	}

	l := New("test", input)
	for i, tt := range tests {
		tok := l.NextNonCommentToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - wrong token type, expected %q, got %q (literal %q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - wrong literal, expected %q, got %q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
	if len(l.Ers) != 0 {
		t.Errorf("lexer reported errors: %v", l.Ers)
	}
}

func TestKeywords(t *testing.T) {
	input := "print if then elif else endif while for in do done begin end let"
	expected := []token.TokenType{
		token.PRINT, token.IF, token.THEN, token.ELIF, token.ELSE, token.ENDIF,
		token.WHILE, token.FOR, token.IN, token.DO, token.DONE,
		token.BEGIN, token.END, token.LET,
	}
	l := New("test", input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Errorf("keyword %d lexed as %q, expected %q", i, tok.Type, want)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"a\nb"`, "a\nb"},
		{`"a\tb"`, "a\tb"},
		{`"a\\b"`, `a\b`},
		{`"a\"b"`, `a"b`},
		{`'a\'b'`, "a'b"},
		{`"A"`, "A"},
		{`"\101"`, "A"},
		{`"\7"`, "\x07"},
		{"\"a\rb\"", "ab"}, // carriage returns are dropped
		{`"a\rb"`, "ab"},
	}
	for _, tt := range tests {
		l := New("test", tt.input)
		tok := l.NextToken()
		if tok.Type != token.STRING {
			t.Errorf("%q lexed as %q", tt.input, tok.Type)
			continue
		}
		if tok.Literal != tt.expected {
			t.Errorf("%q lexed as %q, expected %q", tt.input, tok.Literal, tt.expected)
		}
		if len(l.Ers) != 0 {
			t.Errorf("%q: lexer reported errors: %v", tt.input, l.Ers)
		}
	}
}

func TestConcatAgainstDecimal(t *testing.T) {
	// A dot before a digit opens a number; any other dot is the
	// concatenation operator.
	l := New("test", "2 . 'm'")
	if tok := l.NextToken(); tok.Type != token.NUMBER {
		t.Errorf("got %q", tok.Type)
	}
	if tok := l.NextToken(); tok.Type != token.CONCAT {
		t.Errorf("got %q", tok.Type)
	}
	l = New("test", ".5")
	if tok := l.NextToken(); tok.Type != token.NUMBER || tok.Literal != ".5" {
		t.Errorf(".5 lexed as %q %q", tok.Type, tok.Literal)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		input   string
		errorId string
	}{
		{"@", "lex/ill"},
		{"!", "lex/ill"},
		{"'unclosed", "lex/quote"},
		{`"\uZZZZ"`, "lex/escape/unicode"},
	}
	for _, tt := range tests {
		l := New("test", tt.input)
		for tok := l.NextToken(); tok.Type != token.EOF; tok = l.NextToken() {
		}
		if len(l.Ers) == 0 {
			t.Errorf("lexing %q should have failed", tt.input)
			continue
		}
		if l.Ers[0].ErrorId != tt.errorId {
			t.Errorf("lexing %q raised %s, expected %s", tt.input, l.Ers[0].ErrorId, tt.errorId)
		}
	}
}

func TestPositions(t *testing.T) {
	l := New("myfile", "a\nbb")
	tok := l.NextToken()
	if tok.Line != 1 || tok.Source != "myfile" {
		t.Errorf("first token at line %d of %q", tok.Line, tok.Source)
	}
	l.NextToken() // the newline
	tok = l.NextToken()
	if tok.Line != 2 {
		t.Errorf("second identifier at line %d, expected 2", tok.Line)
	}
}
