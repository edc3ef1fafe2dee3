package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"mapscript/interp"
	"mapscript/object"
	"mapscript/repl"
	"mapscript/text"
)

func main() {
	ip := interp.New(os.Stdout)
	defer ip.CloseDataset()

	if len(os.Args) > 1 {
		os.Exit(runFile(ip, os.Args[1]))
	}

	fmt.Println("mapscript " + text.VERSION)
	repl.Start(ip, os.Stdout)
}

// runFile runs one script file; ^C stops it between statements.
func runFile(ip *interp.Interpreter, path string) int {
	script, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, text.ERROR+err.Error())
		return 1
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if runErr := ip.RunScript(ctx, path, string(script)); runErr != nil {
		fmt.Fprintln(os.Stderr, runErr.Inspect(object.ViewStdOut))
		return 1
	}
	return 0
}
