package interp

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, script string) string {
	t.Helper()
	var out bytes.Buffer
	ip := New(&out)
	if err := ip.RunScript(context.Background(), "test", script); err != nil {
		t.Fatalf("running %q: %s", script, err.Message)
	}
	return out.String()
}

func runForError(t *testing.T, script string) string {
	t.Helper()
	ip := New(&bytes.Buffer{})
	err := ip.RunScript(context.Background(), "test", script)
	if err == nil {
		t.Fatalf("running %q should have failed", script)
	}
	return err.ErrorId
}

func TestAssignmentAndPrint(t *testing.T) {
	got := run(t, "a = 2 + 3\nprint 'a is', a\n")
	if got != "a is 5\n" {
		t.Errorf("got %q", got)
	}
}

func TestPrintJoinsWithSpaces(t *testing.T) {
	got := run(t, "print 1, 'two', 3\nprint\n")
	if got != "1 two 3\n\n" {
		t.Errorf("got %q", got)
	}
}

func TestIfElifElse(t *testing.T) {
	script := `a = %d
if a < 1 then
	print 'small'
elif a < 10 then
	print 'medium'
else
	print 'big'
endif
`
	tests := []struct {
		script   string
		expected string
	}{
		{strings.Replace(script, "%d", "0", 1), "small\n"},
		{strings.Replace(script, "%d", "5", 1), "medium\n"},
		{strings.Replace(script, "%d", "50", 1), "big\n"},
	}
	for _, tt := range tests {
		if got := run(t, tt.script); got != tt.expected {
			t.Errorf("got %q, expected %q", got, tt.expected)
		}
	}
}

func TestWhileLoop(t *testing.T) {
	got := run(t, "i = 0\nwhile i < 3 do\n\tprint i\n\ti = i + 1\ndone\n")
	if got != "0\n1\n2\n" {
		t.Errorf("got %q", got)
	}
}

func TestForLoopKeyOrder(t *testing.T) {
	// Keys come out in numeric-then-lexical order, not insertion order.
	script := `m[10] = 'c'
m[2] = 'b'
m[1] = 'a'
for k in m do
	print k, m[k]
done
`
	got := run(t, script)
	if got != "1 a\n2 b\n10 c\n" {
		t.Errorf("got %q", got)
	}
}

func TestForOverNonHash(t *testing.T) {
	if id := runForError(t, "for k in 5 do\nprint k\ndone\n"); id != "interp/for" {
		t.Errorf("got %s", id)
	}
}

func TestProcedureCall(t *testing.T) {
	script := `begin greet name, mark
	print 'hello', name, mark
end
greet 'world', '!'
`
	if got := run(t, script); got != "hello world !\n" {
		t.Errorf("got %q", got)
	}
}

func TestProcedureCallableAsFunction(t *testing.T) {
	script := `begin stash v
	seen = v
end
r = stash(7)
print seen, "'" . r . "'"
`
	if got := run(t, script); got != "7 ''\n" {
		t.Errorf("got %q", got)
	}
}

func TestCallErrors(t *testing.T) {
	if id := runForError(t, "nosuch 1\n"); id != "interp/proc" {
		t.Errorf("unknown procedure raised %s", id)
	}
	script := "begin two a, b\nprint a\nend\ntwo 1\n"
	if id := runForError(t, script); id != "interp/args" {
		t.Errorf("wrong arity raised %s", id)
	}
}

func TestStatePersistsAcrossRuns(t *testing.T) {
	var out bytes.Buffer
	ip := New(&out)
	ctx := context.Background()
	if err := ip.RunScript(ctx, "line 1", "a = 41\n"); err != nil {
		t.Fatal(err.Message)
	}
	if err := ip.RunScript(ctx, "line 2", "print a + 1\n"); err != nil {
		t.Fatal(err.Message)
	}
	if out.String() != "42\n" {
		t.Errorf("got %q", out.String())
	}
}

func TestParseErrorReported(t *testing.T) {
	ip := New(&bytes.Buffer{})
	err := ip.RunScript(context.Background(), "test", "a = (1\n")
	if err == nil {
		t.Fatal("should have failed")
	}
	if err.ErrorId != "parse/close" && err.ErrorId != "parse/eof" {
		t.Errorf("raised %s", err.ErrorId)
	}
	// A parse error doesn't poison the next run.
	if err := ip.RunScript(context.Background(), "test", "a = 1\n"); err != nil {
		t.Errorf("clean script after a parse error raised %s", err.ErrorId)
	}
}

func TestCancellationHaltsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ip := New(&bytes.Buffer{})
	err := ip.RunScript(ctx, "test", "while 1 do\n\tx = 1\ndone\n")
	if err == nil || err.ErrorId != "interp/halt" {
		t.Fatalf("cancelled script raised %v", err)
	}
}

func TestDatasetStatement(t *testing.T) {
	path := filepath.Join(t.TempDir(), "towns.dat")
	contents := "# town and population\nTruro 18766\nSt.Ives 11226\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	script := `dataset 'textfile', '` + path + `', ''
fetch row
while length(row) do
	print row[1], row[2]
	fetch row
done
`
	got := run(t, script)
	if got != "Truro 18766\nSt.Ives 11226\n" {
		t.Errorf("got %q", got)
	}
}

func TestFetchWithoutDataset(t *testing.T) {
	if id := runForError(t, "fetch row\n"); id != "dataset/fetch" {
		t.Errorf("got %s", id)
	}
}

func TestDatasetErrors(t *testing.T) {
	tests := []struct {
		script  string
		errorId string
	}{
		{"dataset 'carrierpigeon', 'x', ''\n", "dataset/type"},
		{"dataset 'textfile', '/no/such/file', ''\n", "dataset/file"},
		{"dataset 'sql', 'SELECT 1', 'driver=dbase'\n", "dataset/driver"},
		{"dataset 'textfile', 'x'\n", "interp/args"},
		{"fetch 1 + 1\n", "parse/variable"},
	}
	for _, tt := range tests {
		if id := runForError(t, tt.script); id != tt.errorId {
			t.Errorf("%q raised %s, expected %s", tt.script, id, tt.errorId)
		}
	}
}

func TestRuntimeErrorPropagates(t *testing.T) {
	if id := runForError(t, "print 1 / 0\n"); id != "eval/overflow" {
		t.Errorf("got %s", id)
	}
}
