package geometry

import (
	"strconv"
	"strings"
)

// SyntaxError is the single error kind for malformed well-known text;
// it carries the substring the parser choked on.
type SyntaxError struct {
	Text string
}

func (e *SyntaxError) Error() string {
	return "invalid geometry in well-known text at '" + e.Text + "'"
}

const endOfText = "<end>"

type wktParser struct {
	tokens []string
	pos    int
	out    []float64
}

// ParseWKT parses OGC well-known text into a packed geometry array.
func ParseWKT(s string) ([]float64, error) {
	p := &wktParser{tokens: tokenizeWKT(s)}
	if len(p.tokens) == 0 {
		return nil, &SyntaxError{Text: s}
	}
	// One emission per token plus the leading type tag is a safe
	// over-estimate of the array size.
	p.out = make([]float64, 0, len(p.tokens)+1)
	if err := p.geometry(); err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, &SyntaxError{Text: p.tokens[p.pos]}
	}
	return p.out, nil
}

// tokenizeWKT splits on spaces but keeps each comma and parenthesis as
// its own token, so that whitespace runs collapse while structure
// survives.
func tokenizeWKT(s string) []string {
	tokens := []string{}
	word := ""
	flush := func() {
		if word != "" {
			tokens = append(tokens, word)
			word = ""
		}
	}
	for _, ch := range s {
		switch ch {
		case ' ', '\t', '\n', '\r':
			flush()
		case ',', '(', ')':
			flush()
			tokens = append(tokens, string(ch))
		default:
			word = word + string(ch)
		}
	}
	flush()
	return tokens
}

func (p *wktParser) next() string {
	if p.pos >= len(p.tokens) {
		return endOfText
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

func (p *wktParser) emit(v float64) int {
	p.out = append(p.out, v)
	return len(p.out) - 1
}

func (p *wktParser) fail(tok string) error {
	return &SyntaxError{Text: tok}
}

// geometry dispatches on the type keyword and writes one complete
// packed geometry.
func (p *wktParser) geometry() error {
	kw := strings.ToUpper(p.next())
	switch kw {
	case "POINT":
		p.emit(float64(Point))
		return p.coordinateList()
	case "LINESTRING":
		p.emit(float64(LineString))
		return p.coordinateList()
	case "MULTIPOINT":
		p.emit(float64(MultiPoint))
		return p.multiPoint()
	case "POLYGON":
		p.emit(float64(Polygon))
		return p.rings(Polygon)
	case "MULTILINESTRING":
		p.emit(float64(MultiLineString))
		return p.rings(MultiLineString)
	case "MULTIPOLYGON":
		p.emit(float64(MultiPolygon))
		return p.multiPolygon()
	case "GEOMETRYCOLLECTION":
		return p.collection()
	}
	return p.fail(kw)
}

// pair reads the Y of a coordinate pair whose X is already in hand.
func (p *wktParser) pair(xTok string) (float64, float64, error) {
	x, err := strconv.ParseFloat(xTok, 64)
	if err != nil {
		return 0, 0, p.fail(xTok)
	}
	yTok := p.next()
	if !startsNumber(yTok) {
		return 0, 0, p.fail(yTok)
	}
	y, err := strconv.ParseFloat(yTok, 64)
	if err != nil {
		return 0, 0, p.fail(yTok)
	}
	return x, y, nil
}

// coordinateList parses 'EMPTY' or '(x y, x y, ...)' into the simple
// layout: the count, then (op, x, y) per vertex, MoveTo first and
// LineTo thereafter.
func (p *wktParser) coordinateList() error {
	countSlot := p.emit(0)
	tok := p.next()
	if strings.ToUpper(tok) == "EMPTY" {
		return nil
	}
	if tok != "(" {
		return p.fail(tok)
	}
	count := 0
	op := MoveTo
	for {
		tok = p.next()
		switch {
		case tok == ")":
			if count == 0 {
				return p.fail(tok)
			}
			p.out[countSlot] = float64(count)
			return nil
		case tok == ",":
			// next pair follows
		case startsNumber(tok):
			x, y, err := p.pair(tok)
			if err != nil {
				return err
			}
			p.emit(op)
			p.emit(x)
			p.emit(y)
			op = LineTo
			count++
		default:
			return p.fail(tok)
		}
	}
}

// multiPoint accepts both 'MULTIPOINT (10 20, 30 40)' and
// 'MULTIPOINT ((10 20), (30 40))'; a single flag records whether a
// nested opening parenthesis has been seen, in which case each pair
// carries its own closer.
func (p *wktParser) multiPoint() error {
	countSlot := p.emit(0)
	tok := p.next()
	if strings.ToUpper(tok) == "EMPTY" {
		return nil
	}
	if tok != "(" {
		return p.fail(tok)
	}
	nested := false
	n := 0
	for {
		tok = p.next()
		switch {
		case tok == "(":
			nested = true
		case tok == ",":
		case tok == ")":
			if n == 0 {
				return p.fail(tok)
			}
			p.out[countSlot] = float64(n)
			return nil
		case startsNumber(tok):
			x, y, err := p.pair(tok)
			if err != nil {
				return err
			}
			p.emit(float64(Point))
			p.emit(1)
			p.emit(MoveTo)
			p.emit(x)
			p.emit(y)
			n++
			if nested {
				if closer := p.next(); closer != ")" {
					return p.fail(closer)
				}
			}
		default:
			return p.fail(tok)
		}
	}
}

// rings parses '(( ... ), ( ... ))'. For a polygon the rings
// accumulate into one vertex list, a MoveTo starting each ring; for a
// multilinestring each ring becomes a sub-geometry tagged LINESTRING.
func (p *wktParser) rings(container Type) error {
	countSlot := p.emit(0)
	tok := p.next()
	if strings.ToUpper(tok) == "EMPTY" {
		return nil
	}
	if tok != "(" {
		return p.fail(tok)
	}
	total := 0
	subs := 0
	for {
		tok = p.next()
		if tok != "(" {
			return p.fail(tok)
		}
		ringSlot := -1
		if container == MultiLineString {
			p.emit(float64(LineString))
			ringSlot = p.emit(0)
		}
		op := MoveTo
		cnt := 0
	ring:
		for {
			tok = p.next()
			switch {
			case tok == ")":
				break ring
			case tok == ",":
			case startsNumber(tok):
				x, y, err := p.pair(tok)
				if err != nil {
					return err
				}
				p.emit(op)
				p.emit(x)
				p.emit(y)
				op = LineTo
				cnt++
			default:
				return p.fail(tok)
			}
		}
		if cnt == 0 {
			return p.fail(tok)
		}
		if container == MultiLineString {
			p.out[ringSlot] = float64(cnt)
		}
		total += cnt
		subs++
		tok = p.next()
		if tok == ")" {
			break
		}
		if tok != "," {
			return p.fail(tok)
		}
	}
	if container == MultiLineString {
		p.out[countSlot] = float64(subs)
	} else {
		p.out[countSlot] = float64(total)
	}
	return nil
}

func (p *wktParser) multiPolygon() error {
	countSlot := p.emit(0)
	tok := p.next()
	if strings.ToUpper(tok) == "EMPTY" {
		return nil
	}
	if tok != "(" {
		return p.fail(tok)
	}
	n := 0
	for {
		p.emit(float64(Polygon))
		if err := p.rings(Polygon); err != nil {
			return err
		}
		n++
		tok = p.next()
		if tok == ")" {
			break
		}
		if tok != "," {
			return p.fail(tok)
		}
	}
	p.out[countSlot] = float64(n)
	return nil
}

func (p *wktParser) collection() error {
	p.emit(float64(Collection))
	countSlot := p.emit(0)
	tok := p.next()
	if strings.ToUpper(tok) == "EMPTY" {
		return nil
	}
	if tok != "(" {
		return p.fail(tok)
	}
	n := 0
	for {
		if err := p.geometry(); err != nil {
			return err
		}
		n++
		tok = p.next()
		if tok == ")" {
			break
		}
		if tok != "," {
			return p.fail(tok)
		}
	}
	p.out[countSlot] = float64(n)
	return nil
}

// startsNumber classifies a token by its first character, the way the
// coordinate grammar distinguishes numbers from structure.
func startsNumber(tok string) bool {
	if tok == "" || tok == endOfText {
		return false
	}
	ch := tok[0]
	return (ch >= '0' && ch <= '9') || ch == '-' || ch == '.'
}
