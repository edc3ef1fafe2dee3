// Package geometry implements the packed-array geometry representation
// used by the interpreter's geometry values, together with its
// well-known-text codec, GeoJSON output, bounding boxes and affine
// transforms.
//
// A geometry is one flat []float64. A simple geometry is laid out as
//
//	[type, count, (op, x, y) * count]
//
// where op is MoveTo or LineTo and count == 0 denotes an empty
// geometry. A polygon uses the same layout with count totalled across
// rings; a MoveTo op starts a new ring. A multi-geometry or collection
// is laid out as
//
//	[type, n, sub1, sub2, ... subN]
//
// with each sub-geometry recursively in the same format, including its
// own type tag. Every traversal in this package consumes the array
// exactly: trailing or missing elements are an error.
package geometry

import (
	"errors"
	"math"
)

// Type tags a geometry; the tag is stored as the first element of the
// packed array.
type Type int

const (
	Point Type = iota + 1
	LineString
	Polygon
	MultiPoint
	MultiLineString
	MultiPolygon
	Collection
)

// Segment operations within a simple geometry.
const (
	MoveTo float64 = 0
	LineTo float64 = 1
)

// ErrCorrupt is returned when a packed array does not follow the
// layout above.
var ErrCorrupt = errors.New("corrupt geometry array")

var wktNames = map[Type]string{
	Point:           "POINT",
	LineString:      "LINESTRING",
	Polygon:         "POLYGON",
	MultiPoint:      "MULTIPOINT",
	MultiLineString: "MULTILINESTRING",
	MultiPolygon:    "MULTIPOLYGON",
	Collection:      "GEOMETRYCOLLECTION",
}

var geoJSONNames = map[Type]string{
	Point:           "Point",
	LineString:      "LineString",
	Polygon:         "Polygon",
	MultiPoint:      "MultiPoint",
	MultiLineString: "MultiLineString",
	MultiPolygon:    "MultiPolygon",
	Collection:      "GeometryCollection",
}

func (t Type) String() string {
	if name, ok := wktNames[t]; ok {
		return name
	}
	return "GEOMETRY"
}

// IsMulti reports whether the type contains sub-geometries rather than
// coordinates.
func (t Type) IsMulti() bool {
	return t == MultiPoint || t == MultiLineString || t == MultiPolygon || t == Collection
}

// TypeOf returns the type tag of a packed geometry.
func TypeOf(g []float64) (Type, error) {
	if len(g) < 2 {
		return 0, ErrCorrupt
	}
	t := Type(g[0])
	if t < Point || t > Collection {
		return 0, ErrCorrupt
	}
	return t, nil
}

// IsEmpty reports whether the geometry has no coordinates at all.
func IsEmpty(g []float64) bool {
	return len(g) >= 2 && g[1] == 0
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	XMin, YMin, XMax, YMax float64
}

func (r *Rect) expand(x, y float64) {
	if x < r.XMin {
		r.XMin = x
	}
	if x > r.XMax {
		r.XMax = x
	}
	if y < r.YMin {
		r.YMin = y
	}
	if y > r.YMax {
		r.YMax = y
	}
}

// Bounds computes the bounding box of a packed geometry. The second
// return value is false when the geometry is empty and contributes no
// extent.
func Bounds(g []float64) (Rect, bool, error) {
	r := Rect{XMin: math.Inf(1), YMin: math.Inf(1), XMax: math.Inf(-1), YMax: math.Inf(-1)}
	some := false
	pos := 0
	if err := bounds(g, &pos, &r, &some); err != nil {
		return Rect{}, false, err
	}
	if pos != len(g) {
		return Rect{}, false, ErrCorrupt
	}
	if !some {
		return Rect{}, false, nil
	}
	return r, true, nil
}

// bounds accumulates extents recursively. The cursor is shared by
// sibling sub-geometries so that each starts reading exactly where the
// previous one stopped.
func bounds(g []float64, pos *int, r *Rect, some *bool) error {
	if *pos+2 > len(g) {
		return ErrCorrupt
	}
	t := Type(g[*pos])
	n := int(g[*pos+1])
	*pos += 2
	if t.IsMulti() {
		for i := 0; i < n; i++ {
			if err := bounds(g, pos, r, some); err != nil {
				return err
			}
		}
		return nil
	}
	if t < Point || t > Polygon {
		return ErrCorrupt
	}
	if *pos+3*n > len(g) {
		return ErrCorrupt
	}
	for i := 0; i < n; i++ {
		r.expand(g[*pos+1], g[*pos+2])
		*some = true
		*pos += 3
	}
	return nil
}

// Affine maps (x, y) to (A*x + C*y + E, B*x + D*y + F).
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity is the do-nothing transform.
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Translation moves by (dx, dy).
func Translation(dx, dy float64) Affine {
	return Affine{A: 1, D: 1, E: dx, F: dy}
}

// Scaling scales about the origin.
func Scaling(sx, sy float64) Affine {
	return Affine{A: sx, D: sy}
}

// Rotation rotates anticlockwise about the origin by an angle in
// radians.
func Rotation(rad float64) Affine {
	sin, cos := math.Sincos(rad)
	return Affine{A: cos, B: sin, C: -sin, D: cos}
}

// Apply transforms every coordinate pair of a packed geometry,
// producing a brand-new array of identical shape. Type and count tags
// are copied untouched; the source is never modified.
func (af Affine) Apply(g []float64) ([]float64, error) {
	dst := make([]float64, len(g))
	next, err := af.apply(g, dst, 0)
	if err != nil {
		return nil, err
	}
	if next != len(g) {
		return nil, ErrCorrupt
	}
	return dst, nil
}

// apply walks the same recursive shape as bounds, returning the next
// unread index so a caller can continue past a consumed sub-geometry.
func (af Affine) apply(g, dst []float64, pos int) (int, error) {
	if pos+2 > len(g) {
		return 0, ErrCorrupt
	}
	t := Type(g[pos])
	n := int(g[pos+1])
	dst[pos] = g[pos]
	dst[pos+1] = g[pos+1]
	pos += 2
	if t.IsMulti() {
		for i := 0; i < n; i++ {
			var err error
			pos, err = af.apply(g, dst, pos)
			if err != nil {
				return 0, err
			}
		}
		return pos, nil
	}
	if t < Point || t > Polygon {
		return 0, ErrCorrupt
	}
	if pos+3*n > len(g) {
		return 0, ErrCorrupt
	}
	for i := 0; i < n; i++ {
		x, y := g[pos+1], g[pos+2]
		dst[pos] = g[pos]
		dst[pos+1] = af.A*x + af.C*y + af.E
		dst[pos+2] = af.B*x + af.D*y + af.F
		pos += 3
	}
	return pos, nil
}
