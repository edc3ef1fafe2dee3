package token

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + literals
	IDENT  = "IDENT"  // radius, name.part, x, y, ...
	NUMBER = "NUMBER" // 42, 3.7, 1e6
	STRING = "STRING" // "foo", 'bar'

	COMMENT = "COMMENT" // # foo bar zort troz

	// Operators
	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"
	PERCENT  = "%"
	CONCAT   = "."

	INCREMENT = "++"
	DECREMENT = "--"

	EQ     = "=="
	NOT_EQ = "!="
	LT     = "<"
	GT     = ">"
	LE     = "<="
	GE     = ">="

	QUESTION = "?"
	COLON    = ":"

	COMMA     = ","
	NEWLINE   = "\n"
	SEMICOLON = ";"

	LPAREN = "("
	RPAREN = ")"
	LBRACE = "{"
	RBRACE = "}"
	LBRACK = "["
	RBRACK = "]"

	// Word operators. 'x' (string repeat) stays an IDENT and is picked
	// out by the parser, since 'x' is also a perfectly good variable name.
	AND = "and"
	OR  = "or"
	NOT = "not"

	LEX_LT = "lt"
	LEX_GT = "gt"
	LEX_LE = "le"
	LEX_GE = "ge"
	LEX_EQ = "eq"
	LEX_NE = "ne"

	// Statement keywords
	PRINT = "print"
	LET   = "let"
	IF    = "if"
	THEN  = "then"
	ELIF  = "elif"
	ELSE  = "else"
	ENDIF = "endif"
	WHILE = "while"
	FOR   = "for"
	IN    = "in"
	DO    = "do"
	DONE  = "done"
	BEGIN = "begin"
	END   = "end"
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	ChStart int
	ChEnd   int
	Source  string
}

var keywords = map[string]TokenType{
	"and": AND,
	"or":  OR,
	"not": NOT,

	"lt": LEX_LT,
	"gt": LEX_GT,
	"le": LEX_LE,
	"ge": LEX_GE,
	"eq": LEX_EQ,
	"ne": LEX_NE,

	"print": PRINT,
	"let":   LET,
	"if":    IF,
	"then":  THEN,
	"elif":  ELIF,
	"else":  ELSE,
	"endif": ENDIF,
	"while": WHILE,
	"for":   FOR,
	"in":    IN,
	"do":    DO,
	"done":  DONE,
	"begin": BEGIN,
	"end":   END,
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
