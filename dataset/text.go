package dataset

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"mapscript/object"
	"mapscript/token"
)

// TextOptions configures a delimited text file dataset. An empty
// Delimiter splits on runs of whitespace, awk-style. Lines starting
// with Comment are skipped; an empty Comment skips nothing. With
// Header set, the first data line names the fields; otherwise the
// fields are named "1" to "n" from the first data line's width.
type TextOptions struct {
	Path      string
	Delimiter string
	Comment   string
	Header    bool
}

// TextDataset reads one delimited row per Fetch. Each row hashmap has
// a value for every field, plus the whole unsplit line under "0".
type TextDataset struct {
	opts   TextOptions
	file   *os.File
	lines  *bufio.Scanner
	fields []string
	tok    token.Token

	// The first line, read early to learn the field count, waiting to
	// be fetched as the first row.
	pushback     string
	havePushback bool
}

func OpenText(opts TextOptions, tok token.Token) (*TextDataset, *object.Error) {
	if opts.Comment == "" {
		opts.Comment = "#"
	}
	file, err := os.Open(opts.Path)
	if err != nil {
		return nil, object.CreateErr("dataset/file", tok, err.Error())
	}
	d := &TextDataset{opts: opts, file: file, lines: bufio.NewScanner(file), tok: tok}
	first, ok := d.nextDataLine()
	if !ok {
		// An empty file is a dataset with no fields and no rows.
		return d, nil
	}
	parts := d.split(first)
	if opts.Header {
		d.fields = parts
		return d, nil
	}
	for i := range parts {
		d.fields = append(d.fields, strconv.Itoa(i+1))
	}
	d.pushback, d.havePushback = first, true
	return d, nil
}

func (d *TextDataset) takeLine() (string, bool) {
	if d.havePushback {
		d.havePushback = false
		return d.pushback, true
	}
	return d.nextDataLine()
}

func (d *TextDataset) split(line string) []string {
	if d.opts.Delimiter == "" {
		return strings.Fields(line)
	}
	return strings.Split(line, d.opts.Delimiter)
}

// nextDataLine skips comments and, when splitting on whitespace,
// blank lines.
func (d *TextDataset) nextDataLine() (string, bool) {
	for d.lines.Scan() {
		line := d.lines.Text()
		if strings.HasPrefix(line, d.opts.Comment) {
			continue
		}
		if d.opts.Delimiter == "" && strings.TrimSpace(line) == "" {
			continue
		}
		return line, true
	}
	return "", false
}

func (d *TextDataset) FieldNames() []string { return d.fields }

func (d *TextDataset) Fetch() (*object.Hash, *object.Error) {
	line, ok := d.takeLine()
	if !ok {
		return nil, nil
	}
	parts := d.split(line)
	if len(parts) != len(d.fields) {
		return nil, object.CreateErr("dataset/fields", d.tok, len(parts), len(d.fields))
	}
	row := object.NewHash()
	row.Set("0", fieldValue(line))
	for i, field := range d.fields {
		row.Set(field, fieldValue(parts[i]))
	}
	return row, nil
}

func (d *TextDataset) Close() error { return d.file.Close() }
