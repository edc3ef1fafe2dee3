package object

import (
	"fmt"
	"strconv"

	"mapscript/token"
)

// A map from error identifiers to functions that supply the
// corresponding error messages and explanations.
//
// Errors in the map are in alphabetical order of their identifiers.
//
// Major categories are dataset, eval, interp, lex, parse, and wkt.
//
// Two otherwise identical errors thrown in different places in the Go
// code must be assigned different identifiers, if only by suffixing
// /a, /b, etc to the identifier.

var ErrorCreatorMap = map[string]ErrorCreator{

	"dataset/driver": {
		Message: func(tok token.Token, args ...any) string {
			return "unknown database driver '" + args[0].(string) + "'"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The 'driver' parameter of a dataset must name one of the supported databases: " +
				"'mysql', 'postgres', 'firebird', 'oracle' or 'sqlite'."
		},
	},

	"dataset/fetch": {
		Message: func(tok token.Token, args ...any) string {
			return "there is no dataset to fetch from"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The 'fetch' statement reads the next row of the dataset opened by the most " +
				"recent 'dataset' statement, and no dataset has been opened."
		},
	},

	"dataset/fields": {
		Message: func(tok token.Token, args ...any) string {
			return fmt.Sprintf("row has %v fields where the dataset promised %v", args[0], args[1])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Every row read from a dataset has to have a value for each of the dataset's fields. " +
				"This one doesn't, which suggests the file is damaged or is not in the format you think it is."
		},
	},

	"dataset/file": {
		Message: func(tok token.Token, args ...any) string {
			return "os returns '" + args[0].(string) + "'"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The main body of the error message was generated by the os of your computer when " +
				"the interpreter tried to open the dataset's file. If you don't know what it means, you " +
				"should consult the documentation of your os."
		},
	},

	"dataset/open": {
		Message: func(tok token.Token, args ...any) string {
			return "database returns '" + args[0].(string) + "'"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "This is what the database said when the interpreter tried to connect to it. " +
				"Check the connection string, and that the database is actually running."
		},
	},

	"dataset/query": {
		Message: func(tok token.Token, args ...any) string {
			return "database returns '" + args[0].(string) + "'"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "This is what the database said when the interpreter ran the dataset's query. " +
				"The query is passed to the database as written, so the database's own documentation " +
				"is the place to look."
		},
	},

	"dataset/type": {
		Message: func(tok token.Token, args ...any) string {
			return "unknown dataset type '" + args[0].(string) + "'"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The first parameter of a 'dataset' statement says where the data comes " +
				"from, and must be 'textfile' or 'sql'."
		},
	},

	"eval/func": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + ": " + args[1].(string)
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Something went wrong inside a function call. The function's name is prefixed " +
				"to the message so you can see which call is to blame."
		},
	},

	"eval/geometry": {
		Message: func(tok token.Token, args ...any) string {
			return "a value of type " + args[0].(string) + " cannot be used as a geometry"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The geometry functions take a geometry value, or a string holding the " +
				"well-known text of one, e.g. 'POINT (10 20)'."
		},
	},

	"eval/key": {
		Message: func(tok token.Token, args ...any) string {
			return "a value of type " + args[0].(string) + " cannot be used as a hashmap key"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The keys of a hashmap are strings, and so anything used as a key must be a " +
				"string or a number. A hashmap or a geometry can't be turned into a key."
		},
	},

	"eval/nested": {
		Message: func(tok token.Token, args ...any) string {
			return "a hashmap cannot be stored inside another hashmap"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The hashmaps of this language are flat: their values must be numbers, strings " +
				"or geometry. If you need nesting, encode your keys, e.g. a[\"1,2\"]."
		},
	},

	"eval/number": {
		Message: func(tok token.Token, args ...any) string {
			return "a value of type " + args[0].(string) + " cannot be used as a number"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Arithmetic works on numbers and on strings, which count as the number they " +
				"spell, or as zero. A hashmap or a geometry has no numeric form at all."
		},
	},

	"eval/overflow": {
		Message: func(tok token.Token, args ...any) string {
			return "numeric overflow"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The result of the arithmetic is too big to represent, or is not a number at " +
				"all, as when you divide by zero. Rather than quietly carrying infinity through the " +
				"rest of your script, the interpreter stops here."
		},
	},

	"eval/regex": {
		Message: func(tok token.Token, args ...any) string {
			return "bad regular expression: " + args[0].(string)
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The pattern arguments of 'match', 'replace' and 'split' are regular " +
				"expressions, and this one doesn't compile."
		},
	},

	"eval/target": {
		Message: func(tok token.Token, args ...any) string {
			return "variable '" + args[0].(string) + "' already exists and is not a hashmap"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Subscripting a variable, as in 'a[1] = 2', makes it a hashmap if it doesn't " +
				"exist yet. But this variable does exist, as a plain value, and the interpreter " +
				"won't silently throw that value away."
		},
	},

	"interp/args": {
		Message: func(tok token.Token, args ...any) string {
			return fmt.Sprintf("procedure '%v' takes %v parameters but was given %v", args[0], args[1], args[2])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A procedure must be called with exactly as many arguments as the parameters " +
				"declared in its 'begin' line."
		},
	},

	"interp/for": {
		Message: func(tok token.Token, args ...any) string {
			return "'for' can only loop over a hashmap, not a " + args[0].(string)
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The 'for <variable> in <value> do ... done' statement walks the keys of a " +
				"hashmap, and the value after 'in' isn't one."
		},
	},

	"interp/halt": {
		Message: func(tok token.Token, args ...any) string {
			return "script interrupted"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The script was stopped from outside, between two statements, by whoever is " +
				"running it, most likely because it exceeded a time budget or because you pressed ^C."
		},
	},

	"interp/proc": {
		Message: func(tok token.Token, args ...any) string {
			return "there is no procedure or statement called '" + args[0].(string) + "'"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A line beginning with a bare word is taken to be a call to a procedure " +
				"defined with 'begin <name> ... end', and no procedure of this name exists."
		},
	},

	"lex/escape/octal": {
		Message: func(tok token.Token, args ...any) string {
			return "'\\" + args[0].(string) + "' is not a valid octal escape"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A backslash followed by digits in a string stands for a character given by " +
				"one to three octal digits, e.g. '\\101' for 'A'."
		},
	},

	"lex/escape/unicode": {
		Message: func(tok token.Token, args ...any) string {
			return "'\\u" + args[0].(string) + "' is not a valid unicode escape"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A '\\u' in a string must be followed by exactly four hexadecimal digits " +
				"giving a character's codepoint, e.g. '\\u00e9' for 'é'."
		},
	},

	"lex/ill": {
		Message: func(tok token.Token, args ...any) string {
			return "illegal character '" + args[0].(string) + "'"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "This character can't begin any operator, number, string or name of the " +
				"language, so the lexer doesn't know what to do with it."
		},
	},

	"lex/num": {
		Message: func(tok token.Token, args ...any) string {
			return "'" + args[0].(string) + "' is not a well-formed number"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Numbers are written as integers, decimals, or in exponent form: '42', " +
				"'3.7', '1e6', '2.5e-3'."
		},
	},

	"lex/quote": {
		Message: func(tok token.Token, args ...any) string {
			return "string has no closing quote"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A string starting with ' or \" must be closed with the same quote mark " +
				"before the end of the file."
		},
	},

	"parse/arity": {
		Message: func(tok token.Token, args ...any) string {
			return fmt.Sprintf("function '%v' cannot take %v arguments", args[0], args[1])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Each function takes a fixed range of arguments, and this call is outside " +
				"that range."
		},
	},

	"parse/close": {
		Message: func(tok token.Token, args ...any) string {
			return "expected '" + args[0].(string) + "', found '" + tok.Literal + "'"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Some bracket or parenthesis opened earlier in the expression has not been " +
				"closed by the matching character."
		},
	},

	"parse/colon": {
		Message: func(tok token.Token, args ...any) string {
			return "expected ':' in conditional expression, found '" + tok.Literal + "'"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A conditional expression has the form 'condition ? value-if-true : " +
				"value-if-false', and the ':' part is missing."
		},
	},

	"parse/eof": {
		Message: func(tok token.Token, args ...any) string {
			return "unexpected end of expression"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The expression stops short where an operand or a closing delimiter was " +
				"still expected."
		},
	},

	"parse/found": {
		Message: func(tok token.Token, args ...any) string {
			return "there is no function called '" + args[0].(string) + "'"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A name followed by '(' is a function call, and this name is neither a " +
				"built-in function nor a procedure defined with 'begin ... end'."
		},
	},

	"parse/nested": {
		Message: func(tok token.Token, args ...any) string {
			return "hashmap and list literals cannot be nested"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The elements of a '[...]' or '{...}' literal must be plain values, because " +
				"the hashmaps of this language are flat and cannot contain other hashmaps."
		},
	},

	"parse/prefix": {
		Message: func(tok token.Token, args ...any) string {
			return "unexpected '" + tok.Literal + "' at the start of an expression"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The parser was expecting a value, a variable, a function call or a " +
				"parenthesized expression here, and this token can't begin any of those."
		},
	},

	"parse/statement": {
		Message: func(tok token.Token, args ...any) string {
			return "expected '" + args[0].(string) + "', found '" + tok.Literal + "'"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Control statements have a fixed shape: 'if ... then ... endif', 'while ... " +
				"do ... done', 'for ... in ... do ... done', 'begin <name> ... end'. Some keyword " +
				"of that shape is missing here."
		},
	},

	"parse/variable": {
		Message: func(tok token.Token, args ...any) string {
			return "'" + args[0].(string) + "' cannot be assigned to"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The left side of an assignment, and the operand of '++' and '--', must be " +
				"a variable or a single subscript of a variable, e.g. 'a' or 'a[1]'."
		},
	},

	"wkt/array": {
		Message: func(tok token.Token, args ...any) string {
			return "geometry array is corrupt"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The packed array holding a geometry value doesn't follow the geometry " +
				"layout. This shouldn't be possible from script code, so if you see this error, " +
				"please report it as a bug in the interpreter."
		},
	},

	"wkt/parse": {
		Message: func(tok token.Token, args ...any) string {
			return "invalid geometry in well-known text at '" + args[0].(string) + "'"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A geometry is written in OGC well-known text, e.g. 'POINT (10 20)' or " +
				"'POLYGON ((0 0, 10 0, 10 10, 0 0))', and this text isn't."
		},
	},
}

type ErrorCreator struct {
	Message     func(tok token.Token, args ...any) string
	Explanation func(errors Errors, pos int, tok token.Token, args ...any) string
}

type Errors = []*Error

func CreateErr(ident string, tok token.Token, args ...any) *Error {
	creator, ok := ErrorCreatorMap[ident]
	if !ok {
		return &Error{ErrorId: ident, Message: "unknown error identifier " + ident, Token: tok}
	}
	return &Error{ErrorId: ident, Message: creator.Message(tok, args...), Info: args, Token: tok}
}

func Throw(errorID string, errs Errors, tok token.Token, args ...any) Errors {
	return append(errs, CreateErr(errorID, tok, args...))
}

func GetList(errs Errors) string {
	result := "\n"
	for i, e := range errs {
		result = result + "[" + strconv.Itoa(i) + "] " + e.Inspect(ViewStdOut) + "\n"
	}
	return result
}
