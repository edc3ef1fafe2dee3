package evaluator

import (
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"mapscript/geometry"
	"mapscript/object"
	"mapscript/token"
)

// Function is one callable entry of the registry: the arity bounds
// the parser checks against, and the Go function the evaluator
// invokes.
type Function struct {
	Name    string
	MinArgs int
	MaxArgs int
	Fn      func(args []object.Object, tok token.Token) object.Object
}

// Registry resolves function names for the parser and the evaluator.
// It is a plain value handed to both, not a process-wide table, so
// tests can build small fake ones. Built-ins are installed by
// NewRegistry; user-defined procedures are added as they are parsed
// and resolve after the built-ins.
type Registry struct {
	functions map[string]*Function
}

func (r *Registry) Get(name string) (*Function, bool) {
	f, ok := r.functions[name]
	return f, ok
}

func (r *Registry) Register(f *Function) {
	if _, exists := r.functions[f.Name]; exists {
		return // built-ins win over procedures of the same name
	}
	r.functions[f.Name] = f
}

// Arity satisfies the parser's FunctionChecker.
func (r *Registry) Arity(name string) (int, int, bool) {
	f, ok := r.functions[name]
	if !ok {
		return 0, 0, false
	}
	return f.MinArgs, f.MaxArgs, true
}

func NewRegistry() *Registry {
	r := &Registry{functions: map[string]*Function{}}
	for _, f := range builtins {
		r.functions[f.Name] = f
	}
	return r
}

// toGeometry coerces an argument for the geometry functions: a
// geometry passes through, a string is parsed as well-known text.
func toGeometry(o object.Object, tok token.Token) (*object.Geometry, *object.Error) {
	switch o := o.(type) {
	case *object.Geometry:
		return o, nil
	case *object.String:
		g, err := geometry.ParseWKT(o.Value)
		if err != nil {
			if se, ok := err.(*geometry.SyntaxError); ok {
				return nil, object.CreateErr("wkt/parse", tok, se.Text)
			}
			return nil, object.CreateErr("wkt/parse", tok, o.Value)
		}
		return &object.Geometry{Value: g}, nil
	}
	return nil, object.CreateErr("eval/geometry", tok, string(o.Type()))
}

// oneNumber is the common shape of the single-argument math
// functions.
func oneNumber(f func(float64) float64) func(args []object.Object, tok token.Token) object.Object {
	return func(args []object.Object, tok token.Token) object.Object {
		v, err := number(args[0], tok)
		if err != nil {
			return err
		}
		return checkedNumber(f(v), tok)
	}
}

func boundsPart(pick func(r geometry.Rect) float64) func(args []object.Object, tok token.Token) object.Object {
	return func(args []object.Object, tok token.Token) object.Object {
		g, err := toGeometry(args[0], tok)
		if err != nil {
			return err
		}
		r, some, berr := g.Bounds()
		if berr != nil {
			return object.CreateErr("wkt/array", tok)
		}
		if !some {
			return object.NUMBER_ZERO
		}
		return object.MakeNumber(pick(r))
	}
}

func applyTransform(g *object.Geometry, af geometry.Affine, tok token.Token) object.Object {
	out, err := af.Apply(g.Value)
	if err != nil {
		return object.CreateErr("wkt/array", tok)
	}
	return &object.Geometry{Value: out}
}

var builtins = []*Function{

	// Strings.

	{Name: "length", MinArgs: 1, MaxArgs: 1,
		Fn: func(args []object.Object, tok token.Token) object.Object {
			if h, ok := args[0].(*object.Hash); ok {
				return object.MakeNumber(float64(h.Len()))
			}
			return object.MakeNumber(float64(utf8.RuneCountInString(args[0].Inspect(object.ViewStdOut))))
		}},

	{Name: "substr", MinArgs: 2, MaxArgs: 3,
		Fn: func(args []object.Object, tok token.Token) object.Object {
			runes := []rune(args[0].Inspect(object.ViewStdOut))
			start, err := number(args[1], tok)
			if err != nil {
				return err
			}
			// Offsets are 1-based, as in awk.
			from := int(start) - 1
			if from < 0 {
				from = 0
			}
			if from >= len(runes) {
				return object.EMPTY_STRING
			}
			to := len(runes)
			if len(args) == 3 {
				count, err := number(args[2], tok)
				if err != nil {
					return err
				}
				if int(count) <= 0 {
					return object.EMPTY_STRING
				}
				if from+int(count) < to {
					to = from + int(count)
				}
			}
			return &object.String{Value: string(runes[from:to])}
		}},

	{Name: "upper", MinArgs: 1, MaxArgs: 1,
		Fn: func(args []object.Object, tok token.Token) object.Object {
			return &object.String{Value: strings.ToUpper(args[0].Inspect(object.ViewStdOut))}
		}},

	{Name: "lower", MinArgs: 1, MaxArgs: 1,
		Fn: func(args []object.Object, tok token.Token) object.Object {
			return &object.String{Value: strings.ToLower(args[0].Inspect(object.ViewStdOut))}
		}},

	{Name: "replace", MinArgs: 3, MaxArgs: 3,
		Fn: func(args []object.Object, tok token.Token) object.Object {
			re, err := regexp.Compile(args[1].Inspect(object.ViewStdOut))
			if err != nil {
				return object.CreateErr("eval/regex", tok, err.Error())
			}
			return &object.String{
				Value: re.ReplaceAllString(args[0].Inspect(object.ViewStdOut), args[2].Inspect(object.ViewStdOut)),
			}
		}},

	{Name: "split", MinArgs: 1, MaxArgs: 2,
		Fn: func(args []object.Object, tok token.Token) object.Object {
			var parts []string
			if len(args) == 1 {
				parts = strings.Fields(args[0].Inspect(object.ViewStdOut))
			} else {
				re, err := regexp.Compile(args[1].Inspect(object.ViewStdOut))
				if err != nil {
					return object.CreateErr("eval/regex", tok, err.Error())
				}
				parts = re.Split(args[0].Inspect(object.ViewStdOut), -1)
			}
			h := object.NewHash()
			for i, part := range parts {
				h.Set(strconv.Itoa(i+1), &object.String{Value: part})
			}
			return h
		}},

	{Name: "match", MinArgs: 2, MaxArgs: 2,
		Fn: func(args []object.Object, tok token.Token) object.Object {
			re, err := regexp.Compile(args[1].Inspect(object.ViewStdOut))
			if err != nil {
				return object.CreateErr("eval/regex", tok, err.Error())
			}
			loc := re.FindStringIndex(args[0].Inspect(object.ViewStdOut))
			if loc == nil {
				return object.NUMBER_ZERO
			}
			return object.MakeNumber(float64(loc[0] + 1))
		}},

	// Numbers.

	{Name: "abs", MinArgs: 1, MaxArgs: 1, Fn: oneNumber(math.Abs)},
	{Name: "ceil", MinArgs: 1, MaxArgs: 1, Fn: oneNumber(math.Ceil)},
	{Name: "floor", MinArgs: 1, MaxArgs: 1, Fn: oneNumber(math.Floor)},
	{Name: "round", MinArgs: 1, MaxArgs: 1, Fn: oneNumber(math.Round)},
	{Name: "sqrt", MinArgs: 1, MaxArgs: 1, Fn: oneNumber(math.Sqrt)},

	{Name: "pow", MinArgs: 2, MaxArgs: 2,
		Fn: func(args []object.Object, tok token.Token) object.Object {
			base, err := number(args[0], tok)
			if err != nil {
				return err
			}
			exp, err := number(args[1], tok)
			if err != nil {
				return err
			}
			return checkedNumber(math.Pow(base, exp), tok)
		}},

	{Name: "min", MinArgs: 2, MaxArgs: 2,
		Fn: func(args []object.Object, tok token.Token) object.Object {
			a, err := number(args[0], tok)
			if err != nil {
				return err
			}
			b, err := number(args[1], tok)
			if err != nil {
				return err
			}
			return object.MakeNumber(math.Min(a, b))
		}},

	{Name: "max", MinArgs: 2, MaxArgs: 2,
		Fn: func(args []object.Object, tok token.Token) object.Object {
			a, err := number(args[0], tok)
			if err != nil {
				return err
			}
			b, err := number(args[1], tok)
			if err != nil {
				return err
			}
			return object.MakeNumber(math.Max(a, b))
		}},

	{Name: "random", MinArgs: 1, MaxArgs: 1,
		Fn: func(args []object.Object, tok token.Token) object.Object {
			limit, err := number(args[0], tok)
			if err != nil {
				return err
			}
			return object.MakeNumber(rand.Float64() * limit)
		}},

	{Name: "parsenumber", MinArgs: 1, MaxArgs: 1,
		Fn: func(args []object.Object, tok token.Token) object.Object {
			v, err := number(args[0], tok)
			if err != nil {
				return err
			}
			return object.MakeNumber(v)
		}},

	// Geometry. These only read, serialize and transform; geometric
	// algorithms like buffering and intersection are a different
	// program's business.

	{Name: "wkt", MinArgs: 1, MaxArgs: 1,
		Fn: func(args []object.Object, tok token.Token) object.Object {
			g, err := toGeometry(args[0], tok)
			if err != nil {
				return err
			}
			s, werr := geometry.WKT(g.Value)
			if werr != nil {
				return object.CreateErr("wkt/array", tok)
			}
			return &object.String{Value: s}
		}},

	{Name: "geojson", MinArgs: 1, MaxArgs: 1,
		Fn: func(args []object.Object, tok token.Token) object.Object {
			g, err := toGeometry(args[0], tok)
			if err != nil {
				return err
			}
			s, gerr := geometry.GeoJSON(g.Value)
			if gerr != nil {
				return object.CreateErr("wkt/array", tok)
			}
			return &object.String{Value: s}
		}},

	{Name: "xmin", MinArgs: 1, MaxArgs: 1, Fn: boundsPart(func(r geometry.Rect) float64 { return r.XMin })},
	{Name: "ymin", MinArgs: 1, MaxArgs: 1, Fn: boundsPart(func(r geometry.Rect) float64 { return r.YMin })},
	{Name: "xmax", MinArgs: 1, MaxArgs: 1, Fn: boundsPart(func(r geometry.Rect) float64 { return r.XMax })},
	{Name: "ymax", MinArgs: 1, MaxArgs: 1, Fn: boundsPart(func(r geometry.Rect) float64 { return r.YMax })},

	{Name: "shiftgeom", MinArgs: 3, MaxArgs: 3,
		Fn: func(args []object.Object, tok token.Token) object.Object {
			g, err := toGeometry(args[0], tok)
			if err != nil {
				return err
			}
			dx, nerr := number(args[1], tok)
			if nerr != nil {
				return nerr
			}
			dy, nerr := number(args[2], tok)
			if nerr != nil {
				return nerr
			}
			return applyTransform(g, geometry.Translation(dx, dy), tok)
		}},

	{Name: "scalegeom", MinArgs: 2, MaxArgs: 3,
		Fn: func(args []object.Object, tok token.Token) object.Object {
			g, err := toGeometry(args[0], tok)
			if err != nil {
				return err
			}
			sx, nerr := number(args[1], tok)
			if nerr != nil {
				return nerr
			}
			sy := sx
			if len(args) == 3 {
				if sy, nerr = number(args[2], tok); nerr != nil {
					return nerr
				}
			}
			return applyTransform(g, geometry.Scaling(sx, sy), tok)
		}},

	{Name: "rotategeom", MinArgs: 2, MaxArgs: 2,
		Fn: func(args []object.Object, tok token.Token) object.Object {
			g, err := toGeometry(args[0], tok)
			if err != nil {
				return err
			}
			degrees, nerr := number(args[1], tok)
			if nerr != nil {
				return nerr
			}
			return applyTransform(g, geometry.Rotation(degrees*math.Pi/180), tok)
		}},
}
