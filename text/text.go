package text

import (
	"strconv"

	"mapscript/token"
)

const (
	VERSION = "0.1"
	BULLET  = " ▪ "
	PROMPT  = "→ "

	// The source name given to lines typed at the REPL, which
	// DescribePos leaves out of error positions.
	REPL_SOURCE = "REPL input"
)

const (
	RESET  = "\033[0m"
	RED    = "\033[31m"
	GREEN  = "\033[32m"
	YELLOW = "\033[33m"
	CYAN   = "\033[36m"
)

var (
	ERROR    = Red("error") + ": "
	RT_ERROR = Red("runtime error") + ": "
	OK       = Green("ok")
)

func Red(s string) string {
	return RED + s + RESET
}

func Green(s string) string {
	return GREEN + s + RESET
}

func Yellow(s string) string {
	return YELLOW + s + RESET
}

func Cyan(s string) string {
	return CYAN + s + RESET
}

func Emph(s string) string {
	return CYAN + "'" + s + "'" + RESET
}

// DescribePos turns a token into the position tail of an error
// message, e.g. " at line 3 of 'foo.ms'".
func DescribePos(tok token.Token) string {
	if tok.Line <= 0 {
		return ""
	}
	result := " at line " + Yellow(strconv.Itoa(tok.Line))
	if tok.Source != "" && tok.Source != REPL_SOURCE {
		result = result + " of " + Emph(tok.Source)
	}
	return result
}

func ToEscapedText(s string) string {
	result := "\""
	for _, ch := range s {
		switch ch {
		case '\n':
			result = result + "\\n"
		case '\r':
			result = result + "\\r"
		case '\t':
			result = result + "\\t"
		default:
			result = result + string(ch)
		}
	}
	return result + "\""
}
