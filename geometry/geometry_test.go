package geometry

import (
	"math"
	"testing"
)

func sameFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParseWKT(t *testing.T) {
	tests := []struct {
		input    string
		expected []float64
	}{
		{"POINT (10 20)", []float64{1, 1, 0, 10, 20}},
		{"POINT EMPTY", []float64{1, 0}},
		{"LINESTRING (0 0, 10 10, 20 0)",
			[]float64{2, 3, 0, 0, 0, 1, 10, 10, 1, 20, 0}},
		{"LINESTRING EMPTY", []float64{2, 0}},
		{"POLYGON ((0 0, 10 0, 10 10, 0 0))",
			[]float64{3, 4, 0, 0, 0, 1, 10, 0, 1, 10, 10, 1, 0, 0}},
		{"POLYGON ((0 0, 10 0, 10 10, 0 0), (2 2, 3 2, 2 3, 2 2))",
			[]float64{3, 8,
				0, 0, 0, 1, 10, 0, 1, 10, 10, 1, 0, 0,
				0, 2, 2, 1, 3, 2, 1, 2, 3, 1, 2, 2}},
		{"MULTIPOINT (10 20, 30 40)",
			[]float64{4, 2, 1, 1, 0, 10, 20, 1, 1, 0, 30, 40}},
		{"MULTIPOINT ((10 20), (30 40))",
			[]float64{4, 2, 1, 1, 0, 10, 20, 1, 1, 0, 30, 40}},
		{"MULTILINESTRING ((0 0, 1 1), (2 2, 3 3))",
			[]float64{5, 2,
				2, 2, 0, 0, 0, 1, 1, 1,
				2, 2, 0, 2, 2, 1, 3, 3}},
		{"MULTIPOLYGON (((0 0, 1 0, 1 1, 0 0)), ((5 5, 6 5, 6 6, 5 5)))",
			[]float64{6, 2,
				3, 4, 0, 0, 0, 1, 1, 0, 1, 1, 1, 1, 0, 0,
				3, 4, 0, 5, 5, 1, 6, 5, 1, 6, 6, 1, 5, 5}},
		{"GEOMETRYCOLLECTION (POINT (1 2), LINESTRING (3 4, 5 6))",
			[]float64{7, 2, 1, 1, 0, 1, 2, 2, 2, 0, 3, 4, 1, 5, 6}},
		{"GEOMETRYCOLLECTION EMPTY", []float64{7, 0}},
		{"point(1.5 -2.5)", []float64{1, 1, 0, 1.5, -2.5}},
		{"  POINT\t( 10\n20 )  ", []float64{1, 1, 0, 10, 20}},
	}
	for _, tt := range tests {
		got, err := ParseWKT(tt.input)
		if err != nil {
			t.Errorf("ParseWKT(%q) returned error %v", tt.input, err)
			continue
		}
		if !sameFloats(got, tt.expected) {
			t.Errorf("ParseWKT(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestParseWKTErrors(t *testing.T) {
	tests := []struct {
		input string
	}{
		{""},
		{"POINT"},
		{"POINT ()"},
		{"POINT (10)"},
		{"POINT (10 20"},
		{"POINT (10 20) zort"},
		{"BLOB (1 2)"},
		{"LINESTRING (1 2, troz)"},
		{"POLYGON (1 2, 3 4)"},
		{"MULTIPOINT ((10 20, 30 40)"},
		{"GEOMETRYCOLLECTION (POINT (1 2)"},
	}
	for _, tt := range tests {
		if _, err := ParseWKT(tt.input); err == nil {
			t.Errorf("ParseWKT(%q) should have failed", tt.input)
		} else if _, ok := err.(*SyntaxError); !ok {
			t.Errorf("ParseWKT(%q) returned %T, expected *SyntaxError", tt.input, err)
		}
	}
}

func TestWKTRoundTrip(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"POINT (10 20)", "POINT (10 20)"},
		{"POINT EMPTY", "POINT EMPTY"},
		{"LINESTRING(0 0,10 10,20 0)", "LINESTRING (0 0, 10 10, 20 0)"},
		{"POLYGON ((0 0, 10 0, 10 10, 0 0), (2 2, 3 2, 2 3, 2 2))",
			"POLYGON ((0 0, 10 0, 10 10, 0 0), (2 2, 3 2, 2 3, 2 2))"},
		{"MULTIPOINT (10 20, 30 40)", "MULTIPOINT ((10 20), (30 40))"},
		{"MULTILINESTRING ((0 0, 1 1), (2 2, 3 3))",
			"MULTILINESTRING ((0 0, 1 1), (2 2, 3 3))"},
		{"MULTIPOLYGON (((0 0, 1 0, 1 1, 0 0)))",
			"MULTIPOLYGON (((0 0, 1 0, 1 1, 0 0)))"},
		{"GEOMETRYCOLLECTION (POINT (1 2), LINESTRING (3 4, 5 6))",
			"GEOMETRYCOLLECTION (POINT (1 2), LINESTRING (3 4, 5 6))"},
		{"GEOMETRYCOLLECTION EMPTY", "GEOMETRYCOLLECTION EMPTY"},
	}
	for _, tt := range tests {
		g, err := ParseWKT(tt.input)
		if err != nil {
			t.Fatalf("ParseWKT(%q) returned error %v", tt.input, err)
		}
		got, err := WKT(g)
		if err != nil {
			t.Fatalf("WKT of %q returned error %v", tt.input, err)
		}
		if got != tt.expected {
			t.Errorf("WKT of %q = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestGeoJSON(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"POINT (10 20)",
			`{"type": "Point", "coordinates": [10, 20]}`},
		{"POINT EMPTY",
			`{"type": "Point", "coordinates": null}`},
		{"POLYGON EMPTY",
			`{"type": "Polygon", "coordinates": null}`},
		{"LINESTRING (0 0, 10 10)",
			`{"type": "LineString", "coordinates": [[0, 0], [10, 10]]}`},
		{"POLYGON ((0 0, 10 0, 10 10, 0 0), (2 2, 3 2, 2 3, 2 2))",
			`{"type": "Polygon", "coordinates": [[[0, 0], [10, 0], [10, 10], [0, 0]], [[2, 2], [3, 2], [2, 3], [2, 2]]]}`},
		{"MULTIPOINT (10 20, 30 40)",
			`{"type": "MultiPoint", "coordinates": [[10, 20], [30, 40]]}`},
		{"MULTILINESTRING ((0 0, 1 1), (2 2, 3 3))",
			`{"type": "MultiLineString", "coordinates": [[[0, 0], [1, 1]], [[2, 2], [3, 3]]]}`},
		{"MULTIPOLYGON (((0 0, 1 0, 1 1, 0 0)))",
			`{"type": "MultiPolygon", "coordinates": [[[[0, 0], [1, 0], [1, 1], [0, 0]]]]}`},
		{"GEOMETRYCOLLECTION (POINT (1 2), LINESTRING (3 4, 5 6))",
			`{"type": "GeometryCollection", "geometries": [{"type": "Point", "coordinates": [1, 2]}, {"type": "LineString", "coordinates": [[3, 4], [5, 6]]}]}`},
		{"GEOMETRYCOLLECTION EMPTY",
			`{"type": "GeometryCollection", "geometries": []}`},
	}
	for _, tt := range tests {
		g, err := ParseWKT(tt.input)
		if err != nil {
			t.Fatalf("ParseWKT(%q) returned error %v", tt.input, err)
		}
		got, err := GeoJSON(g)
		if err != nil {
			t.Fatalf("GeoJSON of %q returned error %v", tt.input, err)
		}
		if got != tt.expected {
			t.Errorf("GeoJSON of %q = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		input    string
		expected Rect
	}{
		{"POINT (10 20)", Rect{10, 20, 10, 20}},
		{"LINESTRING (0 5, 10 -10, 20 0)", Rect{0, -10, 20, 5}},
		{"GEOMETRYCOLLECTION (POINT (1 2), MULTIPOINT (100 200, -5 -6))",
			Rect{-5, -6, 100, 200}},
	}
	for _, tt := range tests {
		g, err := ParseWKT(tt.input)
		if err != nil {
			t.Fatalf("ParseWKT(%q) returned error %v", tt.input, err)
		}
		r, some, err := Bounds(g)
		if err != nil {
			t.Fatalf("Bounds of %q returned error %v", tt.input, err)
		}
		if !some {
			t.Fatalf("Bounds of %q reported an empty geometry", tt.input)
		}
		if r != tt.expected {
			t.Errorf("Bounds of %q = %v, expected %v", tt.input, r, tt.expected)
		}
	}
}

func TestBoundsEmpty(t *testing.T) {
	g, err := ParseWKT("GEOMETRYCOLLECTION (POINT EMPTY, LINESTRING EMPTY)")
	if err != nil {
		t.Fatal(err)
	}
	_, some, err := Bounds(g)
	if err != nil {
		t.Fatal(err)
	}
	if some {
		t.Error("a collection of empty geometries should have no extent")
	}
}

func TestBoundsCorrupt(t *testing.T) {
	tests := [][]float64{
		{},
		{1},
		{1, 2, 0, 10, 20},       // count overruns the array
		{9, 1, 0, 10, 20},       // no such type tag
		{1, 1, 0, 10, 20, 30},   // trailing element
		{7, 2, 1, 1, 0, 10, 20}, // collection promises two members
	}
	for _, g := range tests {
		if _, _, err := Bounds(g); err == nil {
			t.Errorf("Bounds(%v) should have failed", g)
		}
	}
}

func TestAffineApply(t *testing.T) {
	g, err := ParseWKT("MULTIPOINT (10 20, 30 40)")
	if err != nil {
		t.Fatal(err)
	}
	shifted, err := Translation(5, -5).Apply(g)
	if err != nil {
		t.Fatal(err)
	}
	expected := []float64{4, 2, 1, 1, 0, 15, 15, 1, 1, 0, 35, 35}
	if !sameFloats(shifted, expected) {
		t.Errorf("translated geometry = %v, expected %v", shifted, expected)
	}
	if !sameFloats(g, []float64{4, 2, 1, 1, 0, 10, 20, 1, 1, 0, 30, 40}) {
		t.Errorf("Apply modified its input: %v", g)
	}

	scaled, err := Scaling(2, 3).Apply(g)
	if err != nil {
		t.Fatal(err)
	}
	expected = []float64{4, 2, 1, 1, 0, 20, 60, 1, 1, 0, 60, 120}
	if !sameFloats(scaled, expected) {
		t.Errorf("scaled geometry = %v, expected %v", scaled, expected)
	}
}

func TestAffineRotation(t *testing.T) {
	g := []float64{1, 1, 0, 10, 0}
	rotated, err := Rotation(math.Pi / 2).Apply(g)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(rotated[3]-0) > 1e-9 || math.Abs(rotated[4]-10) > 1e-9 {
		t.Errorf("rotating (10, 0) by a quarter turn gave (%v, %v)", rotated[3], rotated[4])
	}
}

func TestIdentity(t *testing.T) {
	g := []float64{2, 2, 0, 1, 2, 1, 3, 4}
	out, err := Identity().Apply(g)
	if err != nil {
		t.Fatal(err)
	}
	if !sameFloats(out, g) {
		t.Errorf("identity transform changed %v to %v", g, out)
	}
}
