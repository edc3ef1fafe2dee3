package interp

import (
	"strings"

	"mapscript/ast"
	"mapscript/dataset"
	"mapscript/object"
)

// The 'dataset' and 'fetch' statements, which parse as ordinary
// procedure calls and are picked off by name before the procedure
// table is consulted.
//
//	dataset 'textfile', 'towns.dat', 'delimiter=, header=yes'
//	dataset 'sql', 'SELECT name, centre FROM towns', 'driver=sqlite dbname=towns.db'
//	fetch row
//
// One dataset is open at a time; opening another closes it.

func (ip *Interpreter) runDataset(stmt *ast.CallStatement) *object.Error {
	if len(stmt.Args) != 3 {
		return object.CreateErr("interp/args", stmt.GetToken(), "dataset", 3, len(stmt.Args))
	}
	params := make([]string, 3)
	for i, argExp := range stmt.Args {
		value, err := ip.eval(argExp)
		if err != nil {
			return err
		}
		params[i] = value.Inspect(object.ViewStdOut)
	}
	kind, source, extras := params[0], params[1], parseExtras(params[2])

	var d dataset.Dataset
	var err *object.Error
	switch kind {
	case "textfile", "text":
		d, err = dataset.OpenText(dataset.TextOptions{
			Path:      source,
			Delimiter: extras["delimiter"],
			Comment:   extras["comment"],
			Header:    extras["header"] == "yes",
		}, stmt.GetToken())
	case "sql":
		d, err = dataset.OpenSQL(dataset.Connection{
			Driver:   extras["driver"],
			Host:     extras["host"],
			Port:     extras["port"],
			Name:     extras["dbname"],
			User:     extras["user"],
			Password: extras["password"],
		}, source, stmt.GetToken())
	default:
		return object.CreateErr("dataset/type", stmt.GetToken(), kind)
	}
	if err != nil {
		return err
	}
	ip.CloseDataset()
	ip.data = d
	return nil
}

// runFetch reads the next row into the named variable as a hashmap,
// or into the empty string when the rows run out, so that
// 'while length(row) do ... fetch row ... done' walks a whole dataset.
func (ip *Interpreter) runFetch(stmt *ast.CallStatement) *object.Error {
	if len(stmt.Args) != 1 {
		return object.CreateErr("interp/args", stmt.GetToken(), "fetch", 1, len(stmt.Args))
	}
	name := stmt.Args[0].VariableName()
	if name == "" {
		return object.CreateErr("parse/variable", stmt.GetToken(), stmt.Args[0].String())
	}
	if ip.data == nil {
		return object.CreateErr("dataset/fetch", stmt.GetToken())
	}
	row, err := ip.data.Fetch()
	if err != nil {
		return err
	}
	if row == nil {
		ip.vars.DefineVariable(name, object.EMPTY_STRING)
		return nil
	}
	ip.vars.DefineVariable(name, row)
	return nil
}

// CloseDataset closes whatever dataset is open, if one is. The REPL
// and the script runner call it when the interpretation context is
// done with.
func (ip *Interpreter) CloseDataset() {
	if ip.data != nil {
		ip.data.Close()
		ip.data = nil
	}
}

// parseExtras splits a 'key=value key=value' parameter string. A bare
// word with no '=' is taken as a key with an empty value.
func parseExtras(s string) map[string]string {
	extras := map[string]string{}
	for _, part := range strings.Fields(s) {
		key, value, _ := strings.Cut(part, "=")
		extras[key] = value
	}
	return extras
}
