package object

import (
	"math"
	"strconv"
	"strings"

	"mapscript/geometry"
	"mapscript/text"
	"mapscript/token"
)

// View selects between plain output, as 'print' shows a value, and the
// literal form the REPL echoes back.
type View int

const (
	ViewStdOut = iota
	ViewLiteral
)

type ObjectType string

const (
	ERROR_OBJ = "error"

	NUMBER_OBJ   = "number"
	STRING_OBJ   = "string"
	VARREF_OBJ   = "variable"
	HASH_OBJ     = "hashmap"
	GEOMETRY_OBJ = "geometry"
)

type Object interface {
	Type() ObjectType
	Inspect(view View) string
}

func EmphType(o Object) string {
	return "<" + string(o.Type()) + ">"
}

// The shared values. Code must never rely on getting these particular
// pointers back: equal values compare equal whether or not they are
// the singletons.
var (
	NUMBER_ZERO      = &Number{Value: 0}
	NUMBER_ONE       = &Number{Value: 1}
	NUMBER_MINUS_ONE = &Number{Value: -1}
	EMPTY_STRING     = &String{}
	EMPTY_GEOMETRY   = &Geometry{Value: []float64{float64(geometry.Collection), 0}}
)

// MakeNumber returns the shared value for 0, 1 and -1 and a fresh one
// otherwise.
func MakeNumber(v float64) *Number {
	switch v {
	case 0:
		return NUMBER_ZERO
	case 1:
		return NUMBER_ONE
	case -1:
		return NUMBER_MINUS_ONE
	}
	return &Number{Value: v}
}

type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType         { return NUMBER_OBJ }
func (n *Number) Inspect(view View) string { return FormatNumber(n.Value) }

// FormatNumber is the canonical text form of a number: no trailing
// '.0' when the value is integral.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// String caches its numeric coercion: the first AsNumber call parses
// the text, an unparseable text counting as 0, and the kind of the
// value never changes.
type String struct {
	Value       string
	numeric     float64
	haveNumeric bool
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect(view View) string {
	if view == ViewStdOut {
		return s.Value
	}
	return text.ToEscapedText(s.Value)
}

func (s *String) AsNumber() float64 {
	if !s.haveNumeric {
		v, err := strconv.ParseFloat(strings.TrimSpace(s.Value), 64)
		if err == nil {
			s.numeric = v
		}
		s.haveNumeric = true
	}
	return s.numeric
}

// VarRef holds a variable's name, not its value; the evaluator and the
// statement executor resolve it against the variable store.
type VarRef struct {
	Name string
}

func (vr *VarRef) Type() ObjectType         { return VARREF_OBJ }
func (vr *VarRef) Inspect(view View) string { return vr.Name }

// Geometry wraps one packed geometry array. The bounding box is
// computed on first request and cached, except for a Point, which is
// cheaper to recompute than to cache.
type Geometry struct {
	Value       []float64
	bounds      geometry.Rect
	hasExtent   bool
	boundsKnown bool
}

func (g *Geometry) Type() ObjectType { return GEOMETRY_OBJ }
func (g *Geometry) Inspect(view View) string {
	s, err := geometry.WKT(g.Value)
	if err != nil {
		return "GEOMETRY"
	}
	if view == ViewStdOut {
		return s
	}
	return "\"" + s + "\""
}

func (g *Geometry) GeometryType() (geometry.Type, error) {
	return geometry.TypeOf(g.Value)
}

func (g *Geometry) Bounds() (geometry.Rect, bool, error) {
	if t, err := geometry.TypeOf(g.Value); err == nil && t == geometry.Point {
		return geometry.Bounds(g.Value)
	}
	if !g.boundsKnown {
		r, some, err := geometry.Bounds(g.Value)
		if err != nil {
			return geometry.Rect{}, false, err
		}
		g.bounds, g.hasExtent, g.boundsKnown = r, some, true
	}
	return g.bounds, g.hasExtent, nil
}

type Error struct {
	ErrorId string
	Message string
	Info    []any
	Trace   []token.Token
	Token   token.Token
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect(view View) string {
	if view == ViewStdOut {
		if len(e.Trace) == 0 {
			return text.ERROR + e.Message + text.DescribePos(e.Token) + "."
		}
		return text.RT_ERROR + e.Message + text.DescribePos(e.Token) + "."
	}
	return "error " + text.ToEscapedText(e.Message)
}

// AsNumber coerces a value to a number. A string parses-or-counts-as-
// zero; a hashmap, geometry or variable reference has no numeric form
// and the second return is false.
func AsNumber(o Object) (float64, bool) {
	switch o := o.(type) {
	case *Number:
		return o.Value, true
	case *String:
		return o.AsNumber(), true
	}
	return 0, false
}

// Compare orders two values: numerically when both sides are numbers,
// by canonical text otherwise.
func Compare(a, b Object) int {
	if a.Type() == NUMBER_OBJ && b.Type() == NUMBER_OBJ {
		x := a.(*Number).Value
		y := b.(*Number).Value
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	return strings.Compare(a.Inspect(ViewStdOut), b.Inspect(ViewStdOut))
}

func Equals(a, b Object) bool {
	return Compare(a, b) == 0
}
