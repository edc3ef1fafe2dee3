package geometry

import (
	"strconv"
	"strings"
)

// formatNum prints a coordinate without a trailing '.0' when it is
// integral, matching the interpreter's canonical number form.
func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WKT serializes a packed geometry to OGC well-known text.
func WKT(g []float64) (string, error) {
	var sb strings.Builder
	next, err := appendWKT(&sb, g, 0, true)
	if err != nil {
		return "", err
	}
	if next != len(g) {
		return "", ErrCorrupt
	}
	return sb.String(), nil
}

// appendWKT writes one geometry starting at pos and returns the next
// unread index. The type keyword is omitted inside multi-geometries,
// where WKT's nested form leaves the sub-geometries bare; a collection
// names each of its members.
func appendWKT(sb *strings.Builder, g []float64, pos int, withName bool) (int, error) {
	if pos+2 > len(g) {
		return 0, ErrCorrupt
	}
	t := Type(g[pos])
	n := int(g[pos+1])
	name, ok := wktNames[t]
	if !ok {
		return 0, ErrCorrupt
	}
	if withName {
		sb.WriteString(name)
		sb.WriteString(" ")
	}
	pos += 2
	if n == 0 {
		sb.WriteString("EMPTY")
		return pos, nil
	}
	switch t {
	case Point, LineString:
		if pos+3*n > len(g) {
			return 0, ErrCorrupt
		}
		sb.WriteByte('(')
		for i := 0; i < n; i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(formatNum(g[pos+1]))
			sb.WriteByte(' ')
			sb.WriteString(formatNum(g[pos+2]))
			pos += 3
		}
		sb.WriteByte(')')
	case Polygon:
		if pos+3*n > len(g) {
			return 0, ErrCorrupt
		}
		sb.WriteString("((")
		for i := 0; i < n; i++ {
			if i > 0 {
				if g[pos] == MoveTo {
					sb.WriteString("), (")
				} else {
					sb.WriteString(", ")
				}
			}
			sb.WriteString(formatNum(g[pos+1]))
			sb.WriteByte(' ')
			sb.WriteString(formatNum(g[pos+2]))
			pos += 3
		}
		sb.WriteString("))")
	default:
		sb.WriteByte('(')
		for i := 0; i < n; i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			var err error
			pos, err = appendWKT(sb, g, pos, t == Collection)
			if err != nil {
				return 0, err
			}
		}
		sb.WriteByte(')')
	}
	return pos, nil
}

// GeoJSON serializes a packed geometry to a GeoJSON geometry object.
// An empty geometry gets null coordinates.
func GeoJSON(g []float64) (string, error) {
	var sb strings.Builder
	next, err := appendGeoJSON(&sb, g, 0)
	if err != nil {
		return "", err
	}
	if next != len(g) {
		return "", ErrCorrupt
	}
	return sb.String(), nil
}

func appendGeoJSON(sb *strings.Builder, g []float64, pos int) (int, error) {
	if pos+2 > len(g) {
		return 0, ErrCorrupt
	}
	t := Type(g[pos])
	name, ok := geoJSONNames[t]
	if !ok {
		return 0, ErrCorrupt
	}
	if t == Collection {
		n := int(g[pos+1])
		pos += 2
		sb.WriteString(`{"type": "GeometryCollection", "geometries": [`)
		for i := 0; i < n; i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			var err error
			pos, err = appendGeoJSON(sb, g, pos)
			if err != nil {
				return 0, err
			}
		}
		sb.WriteString("]}")
		return pos, nil
	}
	sb.WriteString(`{"type": "`)
	sb.WriteString(name)
	sb.WriteString(`", "coordinates": `)
	pos, err := appendGeoJSONCoords(sb, g, pos)
	if err != nil {
		return 0, err
	}
	sb.WriteString("}")
	return pos, nil
}

// appendGeoJSONCoords consumes one geometry, header included, and
// writes only its coordinates value; the enclosing object supplies the
// type.
func appendGeoJSONCoords(sb *strings.Builder, g []float64, pos int) (int, error) {
	if pos+2 > len(g) {
		return 0, ErrCorrupt
	}
	t := Type(g[pos])
	n := int(g[pos+1])
	pos += 2
	if n == 0 {
		sb.WriteString("null")
		return pos, nil
	}
	switch t {
	case Point:
		if pos+3*n > len(g) {
			return 0, ErrCorrupt
		}
		writePosition(sb, g[pos+1], g[pos+2])
		pos += 3 * n
	case LineString:
		if pos+3*n > len(g) {
			return 0, ErrCorrupt
		}
		sb.WriteByte('[')
		for i := 0; i < n; i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			writePosition(sb, g[pos+1], g[pos+2])
			pos += 3
		}
		sb.WriteByte(']')
	case Polygon:
		if pos+3*n > len(g) {
			return 0, ErrCorrupt
		}
		sb.WriteString("[[")
		for i := 0; i < n; i++ {
			if i > 0 {
				if g[pos] == MoveTo {
					sb.WriteString("], [")
				} else {
					sb.WriteString(", ")
				}
			}
			writePosition(sb, g[pos+1], g[pos+2])
			pos += 3
		}
		sb.WriteString("]]")
	case MultiPoint, MultiLineString, MultiPolygon:
		sb.WriteByte('[')
		for i := 0; i < n; i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			var err error
			pos, err = appendGeoJSONCoords(sb, g, pos)
			if err != nil {
				return 0, err
			}
		}
		sb.WriteByte(']')
	default:
		return 0, ErrCorrupt
	}
	return pos, nil
}

func writePosition(sb *strings.Builder, x, y float64) {
	sb.WriteByte('[')
	sb.WriteString(formatNum(x))
	sb.WriteString(", ")
	sb.WriteString(formatNum(y))
	sb.WriteByte(']')
}
