package lexer

import (
	"strconv"
	"strings"

	"mapscript/object"
	"mapscript/token"
)

type Lexer struct {
	reader strings.Reader
	input  string
	ch     rune // current rune under examination
	line   int  // the line number
	char   int  // the character number
	tstart int  // the value of char at the start of a token
	Ers    object.Errors
	source string
}

func New(source, input string) *Lexer {
	r := *strings.NewReader(input)
	l := &Lexer{reader: r,
		input:  input,
		line:   1,
		char:   -1,
		Ers:    []*object.Error{},
		source: source,
	}
	l.readChar()
	return l
}

func (l *Lexer) NextNonCommentToken() token.Token {
	for tok := l.NextToken(); ; tok = l.NextToken() {
		if tok.Type != token.COMMENT {
			return tok
		}
	}
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	l.tstart = l.char

	switch l.ch {
	case '\n':
		tok = l.NewToken(token.NEWLINE, ";")
	case ';':
		tok = l.NewToken(token.SEMICOLON, ";")
	case '#':
		tok = l.NewToken(token.COMMENT, l.readComment())
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.NewToken(token.EQ, "==")
		} else {
			tok = l.NewToken(token.ASSIGN, "=")
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.NewToken(token.NOT_EQ, "!=")
		} else {
			tok = l.NewToken(token.ILLEGAL, "lex/ill")
			l.Throw("lex/ill", tok, "!")
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.NewToken(token.LE, "<=")
		} else {
			tok = l.NewToken(token.LT, "<")
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.NewToken(token.GE, ">=")
		} else {
			tok = l.NewToken(token.GT, ">")
		}
	case '+':
		if l.peekChar() == '+' {
			l.readChar()
			tok = l.NewToken(token.INCREMENT, "++")
		} else {
			tok = l.NewToken(token.PLUS, "+")
		}
	case '-':
		if l.peekChar() == '-' {
			l.readChar()
			tok = l.NewToken(token.DECREMENT, "--")
		} else {
			tok = l.NewToken(token.MINUS, "-")
		}
	case '*':
		tok = l.NewToken(token.ASTERISK, "*")
	case '/':
		tok = l.NewToken(token.SLASH, "/")
	case '%':
		tok = l.NewToken(token.PERCENT, "%")
	case '?':
		tok = l.NewToken(token.QUESTION, "?")
	case ':':
		tok = l.NewToken(token.COLON, ":")
	case ',':
		tok = l.NewToken(token.COMMA, ",")
	case '{':
		tok = l.NewToken(token.LBRACE, "{")
	case '}':
		tok = l.NewToken(token.RBRACE, "}")
	case '[':
		tok = l.NewToken(token.LBRACK, "[")
	case ']':
		tok = l.NewToken(token.RBRACK, "]")
	case '(':
		tok = l.NewToken(token.LPAREN, "(")
	case ')':
		tok = l.NewToken(token.RPAREN, ")")
	case '"', '\'':
		tok = l.NewToken(token.STRING, "")
		s, ok := l.readString(l.ch)
		tok.Literal = s
		if !ok {
			l.Throw("lex/quote", tok)
		}
	case '.':
		// A dot opening a number ('.5') belongs to the number; any
		// other dot is the concatenation operator.
		if isDigit(l.peekChar()) {
			return l.lexNumber()
		}
		tok = l.NewToken(token.CONCAT, ".")
	case 0:
		tok = l.NewToken(token.EOF, "EOF")
	default:
		if isLetter(l.ch) {
			literal := l.readIdentifier()
			tok = l.NewToken(token.LookupIdent(literal), literal)
			return tok
		} else if isDigit(l.ch) {
			return l.lexNumber()
		} else {
			tok = l.NewToken(token.ILLEGAL, "lex/ill")
			l.Throw("lex/ill", tok, string(l.ch))
		}
	}
	tok.Line = l.line
	tok.ChStart = l.tstart
	tok.ChEnd = l.char
	l.readChar()
	return tok
}

func (l *Lexer) lexNumber() token.Token {
	numString := l.readNumber()
	if _, err := strconv.ParseFloat(numString, 64); err == nil {
		return l.NewToken(token.NUMBER, numString)
	}
	tok := l.NewToken(token.ILLEGAL, "lex/num")
	l.Throw("lex/num", tok, numString)
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readChar() {
	l.char++
	if l.ch == '\n' {
		l.line++
		l.char = 0
		l.tstart = 0
	}
	if l.reader.Len() == 0 {
		l.ch = 0
	} else {
		l.ch, _, _ = l.reader.ReadRune()
	}
}

func (l *Lexer) peekChar() rune {
	if l.reader.Len() == 0 {
		return 0
	}
	ru, _, _ := l.reader.ReadRune()
	l.reader.UnreadRune()
	return ru
}

// readNumber accepts integer, decimal and exponent forms. A trailing
// dot not followed by a digit is left alone: it is the concatenation
// operator, as in '2 . "m"' written without spaces.
func (l *Lexer) readNumber() string {
	result := ""
	for isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())) {
		result = result + string(l.ch)
		l.readChar()
	}
	if l.ch == 'e' || l.ch == 'E' {
		exponent := string(l.ch)
		if isDigit(l.peekChar()) {
			l.readChar()
		} else if l.peekChar() == '+' || l.peekChar() == '-' {
			l.readChar()
			exponent = exponent + string(l.ch)
			l.readChar()
		} else {
			return result
		}
		for isDigit(l.ch) {
			exponent = exponent + string(l.ch)
			l.readChar()
		}
		result = result + exponent
	}
	return result
}

func (l *Lexer) readComment() string {
	result := ""
	for !(l.peekChar() == '\n' || l.peekChar() == 0) {
		result = result + string(l.peekChar())
		l.readChar()
	}
	return result
}

// readString reads to the matching quote, interpreting backslash
// escapes: the usual single characters, octal '\nnn' and Unicode
// '\uXXXX'. A carriage return in the text is dropped.
func (l *Lexer) readString(quote rune) (string, bool) {
	result := ""
	for {
		l.readChar()
		if l.ch == quote || l.ch == 0 {
			break
		}
		if l.ch == '\r' {
			continue
		}
		if l.ch != '\\' {
			result = result + string(l.ch)
			continue
		}
		l.readChar()
		switch {
		case l.ch == 'n':
			result = result + "\n"
		case l.ch == 't':
			result = result + "\t"
		case l.ch == 'r':
			// An escaped carriage return is dropped too, so that DOS
			// and Unix script files behave alike.
		case l.ch == 'u':
			hex := ""
			for i := 0; i < 4; i++ {
				l.readChar()
				hex = hex + string(l.ch)
			}
			n, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				l.Throw("lex/escape/unicode", l.NewToken(token.ILLEGAL, "lex/escape/unicode"), hex)
				return result, false
			}
			result = result + string(rune(n))
		case isOctalDigit(l.ch):
			oct := string(l.ch)
			for len(oct) < 3 && isOctalDigit(l.peekChar()) {
				l.readChar()
				oct = oct + string(l.ch)
			}
			n, err := strconv.ParseUint(oct, 8, 32)
			if err != nil {
				l.Throw("lex/escape/octal", l.NewToken(token.ILLEGAL, "lex/escape/octal"), oct)
				return result, false
			}
			result = result + string(rune(n))
		case l.ch == 0:
			return result, false
		default:
			// '\\', '\"', '\'' and anything else stand for themselves.
			result = result + string(l.ch)
		}
	}
	if l.ch == 0 {
		return result, false
	}
	return result, true
}

func (l *Lexer) readIdentifier() string {
	result := ""
	for isLetter(l.ch) || isDigit(l.ch) {
		result = result + string(l.ch)
		l.readChar()
	}
	return result
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isOctalDigit(ch rune) bool {
	return '0' <= ch && ch <= '7'
}

func (l *Lexer) NewToken(tokenType token.TokenType, st string) token.Token {
	return token.Token{Type: tokenType, Literal: st, Source: l.source, Line: l.line, ChStart: l.tstart, ChEnd: l.char}
}

func (l *Lexer) Throw(errorID string, tok token.Token, args ...any) {
	l.Ers = object.Throw(errorID, l.Ers, tok, args...)
}
