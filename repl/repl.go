// Package repl runs an interactive session: one statement per line,
// against an interpretation context whose variables, procedures and
// open dataset persist from line to line.
package repl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/lmorg/readline"

	"mapscript/interp"
	"mapscript/object"
	"mapscript/text"
)

func Start(ip *interp.Interpreter, out io.Writer) {
	rline := readline.NewInstance()
	for {
		rline.SetPrompt(text.PROMPT)
		line, err := rline.Readline()
		if err != nil {
			// ^C or ^D; either way the session is over.
			fmt.Fprintln(out)
			return
		}

		line = strings.TrimSpace(line)

		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}

		// A connection parameter written as 'password=?' is asked for
		// here, masked, so that database passwords needn't be typed
		// into the session in clear.
		if strings.Contains(line, "password=?") {
			rline.SetPrompt("password: ")
			rline.PasswordMask = '▪'
			password, err := rline.Readline()
			rline.PasswordMask = 0
			if err != nil {
				fmt.Fprintln(out)
				return
			}
			line = strings.Replace(line, "password=?", "password="+password, 1)
		}

		if runErr := ip.RunScript(context.Background(), text.REPL_SOURCE, line); runErr != nil {
			fmt.Fprintln(out, runErr.Inspect(object.ViewStdOut))
		}
	}
}
