// Package dataset reads rows of data for a script to iterate over,
// either from an SQL database or from a delimited text file. A row is
// a hashmap from field name to value, so that fetched data flows into
// the variable store like any other value.
package dataset

import (
	"strings"

	"mapscript/geometry"
	"mapscript/object"
)

// Dataset is one open source of rows. Fetch returns nil with no error
// when the rows run out; Close may be called more than once.
type Dataset interface {
	FieldNames() []string
	Fetch() (*object.Hash, *object.Error)
	Close() error
}

// The WKT keywords, longest first so that MULTIPOINT isn't taken for
// POINT with trailing junk.
var wktKeywords = []string{
	"GEOMETRYCOLLECTION", "MULTILINESTRING", "MULTIPOLYGON", "MULTIPOINT",
	"LINESTRING", "POLYGON", "POINT",
}

func looksLikeWKT(s string) bool {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, kw := range wktKeywords {
		if strings.HasPrefix(s, kw) {
			rest := s[len(kw):]
			return strings.HasPrefix(strings.TrimSpace(rest), "(") ||
				strings.HasPrefix(strings.TrimSpace(rest), "EMPTY")
		}
	}
	return false
}

// fieldValue converts one field's text into a runtime value. Geometry
// columns arrive from databases and files alike as well-known text, so
// anything that reads as WKT becomes a geometry; anything that
// doesn't quite parse stays a string and the script can decide.
func fieldValue(s string) object.Object {
	if looksLikeWKT(s) {
		if g, err := geometry.ParseWKT(s); err == nil {
			return &object.Geometry{Value: g}
		}
	}
	return &object.String{Value: s}
}
