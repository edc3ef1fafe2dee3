// Package interp is the statement layer of the interpreter: it owns
// the variable store, runs the control statements, and drives
// expressions through the evaluator.
package interp

import (
	"context"
	"io"
	"strings"

	"mapscript/ast"
	"mapscript/dataset"
	"mapscript/evaluator"
	"mapscript/object"
	"mapscript/parser"
	"mapscript/token"
)

// Interpreter is one interpretation context: parser, function
// registry, variable store and procedure table, with an output writer
// for 'print'. It is not safe for concurrent use; run one script at a
// time on it.
type Interpreter struct {
	parser     *parser.Parser
	registry   *evaluator.Registry
	vars       *Store
	procedures map[string]*ast.ProcedureStatement
	out        io.Writer
	data       dataset.Dataset

	// The context of the running script, polled between statements.
	// Cancellation never interrupts a statement midway.
	ctx context.Context
}

func New(out io.Writer) *Interpreter {
	registry := evaluator.NewRegistry()
	return &Interpreter{
		parser:     parser.New(registry),
		registry:   registry,
		vars:       NewStore(),
		procedures: map[string]*ast.ProcedureStatement{},
		out:        out,
	}
}

func (ip *Interpreter) Registry() *evaluator.Registry { return ip.registry }
func (ip *Interpreter) Store() *Store                 { return ip.vars }

// RunScript parses and runs a whole script, or one line of one. The
// variable store and the procedure table persist across calls, which
// is what makes the REPL work.
func (ip *Interpreter) RunScript(ctx context.Context, source, input string) *object.Error {
	stmts := ip.parser.ParseProgram(source, input)
	if ip.parser.ErrorsExist() {
		err := ip.parser.Errors[0]
		ip.parser.ClearErrors()
		return err
	}
	ip.ctx = ctx
	return ip.runStatements(stmts)
}

func (ip *Interpreter) runStatements(stmts []ast.Statement) *object.Error {
	for _, s := range stmts {
		if ip.ctx != nil && ip.ctx.Err() != nil {
			return object.CreateErr("interp/halt", s.GetToken())
		}
		if err := ip.runStatement(s); err != nil {
			return err
		}
	}
	return nil
}

func (ip *Interpreter) eval(exp *ast.Expression) (object.Object, *object.Error) {
	result := evaluator.Eval(exp, ip.registry, ip.vars)
	if err, failed := result.(*object.Error); failed {
		return nil, err
	}
	return result, nil
}

func (ip *Interpreter) truth(exp *ast.Expression) (bool, *object.Error) {
	value, err := ip.eval(exp)
	if err != nil {
		return false, err
	}
	v, ok := object.AsNumber(value)
	if !ok {
		return false, object.CreateErr("eval/number", exp.GetToken(), string(value.Type()))
	}
	return v != 0, nil
}

func (ip *Interpreter) runStatement(stmt ast.Statement) *object.Error {
	switch stmt := stmt.(type) {
	case *ast.ExpressionStatement:
		_, err := ip.eval(stmt.Expression)
		return err
	case *ast.PrintStatement:
		return ip.runPrint(stmt)
	case *ast.IfStatement:
		return ip.runIf(stmt)
	case *ast.WhileStatement:
		return ip.runWhile(stmt)
	case *ast.ForStatement:
		return ip.runFor(stmt)
	case *ast.ProcedureStatement:
		ip.defineProcedure(stmt)
		return nil
	case *ast.CallStatement:
		return ip.runCall(stmt)
	}
	return nil
}

func (ip *Interpreter) runPrint(stmt *ast.PrintStatement) *object.Error {
	parts := make([]string, 0, len(stmt.Args))
	for _, arg := range stmt.Args {
		value, err := ip.eval(arg)
		if err != nil {
			return err
		}
		parts = append(parts, value.Inspect(object.ViewStdOut))
	}
	io.WriteString(ip.out, strings.Join(parts, " ")+"\n")
	return nil
}

func (ip *Interpreter) runIf(stmt *ast.IfStatement) *object.Error {
	for i, cond := range stmt.Conditions {
		taken, err := ip.truth(cond)
		if err != nil {
			return err
		}
		if taken {
			return ip.runStatements(stmt.Consequences[i])
		}
	}
	if stmt.Alternative != nil {
		return ip.runStatements(stmt.Alternative)
	}
	return nil
}

func (ip *Interpreter) runWhile(stmt *ast.WhileStatement) *object.Error {
	for {
		if ip.ctx != nil && ip.ctx.Err() != nil {
			return object.CreateErr("interp/halt", stmt.GetToken())
		}
		taken, err := ip.truth(stmt.Condition)
		if err != nil {
			return err
		}
		if !taken {
			return nil
		}
		if err := ip.runStatements(stmt.Body); err != nil {
			return err
		}
	}
}

// runFor walks a hashmap's keys in the language's key order, binding
// each key in turn to the loop variable.
func (ip *Interpreter) runFor(stmt *ast.ForStatement) *object.Error {
	over, err := ip.eval(stmt.Over)
	if err != nil {
		return err
	}
	h, ok := over.(*object.Hash)
	if !ok {
		return object.CreateErr("interp/for", stmt.GetToken(), string(over.Type()))
	}
	for _, key := range h.Keys() {
		if ip.ctx != nil && ip.ctx.Err() != nil {
			return object.CreateErr("interp/halt", stmt.GetToken())
		}
		ip.vars.DefineVariable(stmt.Variable, &object.String{Value: key})
		if err := ip.runStatements(stmt.Body); err != nil {
			return err
		}
	}
	return nil
}

// defineProcedure records a procedure and makes it callable as a
// function too, 'r = circle(10)' as well as 'circle 10'. Built-ins
// keep priority over procedures of the same name.
func (ip *Interpreter) defineProcedure(stmt *ast.ProcedureStatement) {
	name := stmt.Name
	ip.procedures[name] = stmt
	ip.registry.Register(&evaluator.Function{
		Name:    name,
		MinArgs: len(stmt.Parameters),
		MaxArgs: len(stmt.Parameters),
		Fn: func(args []object.Object, tok token.Token) object.Object {
			// Looked up afresh so a redefinition takes effect for
			// function-position calls too.
			proc := ip.procedures[name]
			if len(args) != len(proc.Parameters) {
				return object.CreateErr("interp/args", tok, name, len(proc.Parameters), len(args))
			}
			if err := ip.invokeProcedure(proc, args); err != nil {
				return err
			}
			return object.EMPTY_STRING
		},
	})
}

func (ip *Interpreter) invokeProcedure(proc *ast.ProcedureStatement, args []object.Object) *object.Error {
	for i, param := range proc.Parameters {
		ip.vars.DefineVariable(param, args[i])
	}
	return ip.runStatements(proc.Body)
}

func (ip *Interpreter) runCall(stmt *ast.CallStatement) *object.Error {
	switch stmt.Name {
	case "dataset":
		return ip.runDataset(stmt)
	case "fetch":
		return ip.runFetch(stmt)
	}
	proc, ok := ip.procedures[stmt.Name]
	if !ok {
		return object.CreateErr("interp/proc", stmt.GetToken(), stmt.Name)
	}
	if len(stmt.Args) != len(proc.Parameters) {
		return object.CreateErr("interp/args", stmt.GetToken(),
			stmt.Name, len(proc.Parameters), len(stmt.Args))
	}
	args := make([]object.Object, 0, len(stmt.Args))
	for _, argExp := range stmt.Args {
		value, err := ip.eval(argExp)
		if err != nil {
			return err
		}
		args = append(args, value)
	}
	return ip.invokeProcedure(proc, args)
}
