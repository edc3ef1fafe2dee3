package object

import (
	"testing"

	"mapscript/geometry"
	"mapscript/token"
)

func TestStringCoercion(t *testing.T) {
	tests := []struct {
		text     string
		expected float64
	}{
		{"42", 42},
		{"3.7", 3.7},
		{"1e3", 1000},
		{"  2.5 ", 2.5},
		{"zort", 0},
		{"", 0},
		{"12abc", 0},
	}
	for _, tt := range tests {
		s := &String{Value: tt.text}
		if got := s.AsNumber(); got != tt.expected {
			t.Errorf("AsNumber(%q) = %v, expected %v", tt.text, got, tt.expected)
		}
		// A second call answers from the cache and must agree, and
		// coercion never changes the value's kind.
		if got := s.AsNumber(); got != tt.expected {
			t.Errorf("second AsNumber(%q) = %v, expected %v", tt.text, got, tt.expected)
		}
		if s.Type() != STRING_OBJ {
			t.Errorf("AsNumber changed the kind of %q to %v", tt.text, s.Type())
		}
	}
}

func TestMakeNumber(t *testing.T) {
	if MakeNumber(0) != NUMBER_ZERO || MakeNumber(1) != NUMBER_ONE || MakeNumber(-1) != NUMBER_MINUS_ONE {
		t.Error("MakeNumber should return the shared values for 0, 1 and -1")
	}
	if MakeNumber(2) == MakeNumber(2) {
		t.Error("MakeNumber(2) should allocate")
	}
	// Equality is by value, not by identity.
	if !Equals(&Number{Value: 1}, NUMBER_ONE) {
		t.Error("a fresh 1 should equal the shared 1")
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{0, "0"},
		{11, "11"},
		{-5, "-5"},
		{3.7, "3.7"},
		{2.5e-3, "0.0025"},
		{1000000, "1000000"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.value); got != tt.expected {
			t.Errorf("FormatNumber(%v) = %q, expected %q", tt.value, got, tt.expected)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		left     Object
		right    Object
		expected int
	}{
		{MakeNumber(1), MakeNumber(2), -1},
		{MakeNumber(2), MakeNumber(2), 0},
		{MakeNumber(10), MakeNumber(2), 1},
		{&String{Value: "10"}, &String{Value: "2"}, -1}, // lexical
		{&String{Value: "abc"}, &String{Value: "abd"}, -1},
		{&String{Value: "5"}, MakeNumber(5), 0}, // mixed kinds compare as text
	}
	for _, tt := range tests {
		got := Compare(tt.left, tt.right)
		if got != tt.expected {
			t.Errorf("Compare(%v, %v) = %v, expected %v",
				tt.left.Inspect(ViewStdOut), tt.right.Inspect(ViewStdOut), got, tt.expected)
		}
	}
}

func TestHashAbsentKey(t *testing.T) {
	h := NewHash()
	if got := h.Get("nope"); got.Type() != STRING_OBJ || got.Inspect(ViewStdOut) != "" {
		t.Errorf("reading an absent key gave %v", got)
	}
}

func TestHashKeyOrdering(t *testing.T) {
	h := NewHash()
	for _, k := range []string{"10", "2", "1"} {
		h.Set(k, NUMBER_ONE)
	}
	keys := h.Keys()
	if len(keys) != 3 || keys[0] != "1" || keys[1] != "2" || keys[2] != "10" {
		t.Errorf("numeric keys sorted as %v", keys)
	}

	h = NewHash()
	for _, k := range []string{"b", "10a", "a"} {
		h.Set(k, NUMBER_ONE)
	}
	keys = h.Keys()
	if len(keys) != 3 || keys[0] != "10a" || keys[1] != "a" || keys[2] != "b" {
		t.Errorf("non-numeric keys sorted as %v", keys)
	}
}

func TestKeysSortedByValue(t *testing.T) {
	h := NewHash()
	h.Set("a", MakeNumber(3))
	h.Set("b", MakeNumber(1))
	h.Set("c", MakeNumber(2))
	h.Set("d", MakeNumber(1))
	keys := h.KeysSortedByValue()
	if keys[0] != "b" || keys[1] != "d" || keys[2] != "c" || keys[3] != "a" {
		t.Errorf("keys sorted by value as %v, expected [b d c a] (stable)", keys)
	}
}

func TestHashInspect(t *testing.T) {
	h := NewHash()
	h.Set("1", &String{Value: "x"})
	h.Set("2", MakeNumber(5))
	h.Set("3", &String{Value: "z"})
	if got := h.Inspect(ViewStdOut); got != "[x, 5, z]" {
		t.Errorf("sequential hashmap stringified as %q", got)
	}

	// A gap in the key sequence forces the braced form.
	h = NewHash()
	h.Set("1", &String{Value: "x"})
	h.Set("3", &String{Value: "z"})
	if got := h.Inspect(ViewStdOut); got != `{"1": x, "3": z}` {
		t.Errorf("gappy hashmap stringified as %q", got)
	}

	// Geometry values are quoted inside a hashmap; numbers and strings
	// are not.
	g, err := geometry.ParseWKT("POINT (10 20)")
	if err != nil {
		t.Fatal(err)
	}
	h = NewHash()
	h.Set("1", &Geometry{Value: g})
	if got := h.Inspect(ViewStdOut); got != `["POINT (10 20)"]` {
		t.Errorf("hashmap holding a geometry stringified as %q", got)
	}
}

func TestGeometryBounds(t *testing.T) {
	g, err := geometry.ParseWKT("LINESTRING (0 5, 10 -10)")
	if err != nil {
		t.Fatal(err)
	}
	v := &Geometry{Value: g}
	r, some, err := v.Bounds()
	if err != nil || !some {
		t.Fatalf("Bounds returned %v, %v, %v", r, some, err)
	}
	expected := geometry.Rect{XMin: 0, YMin: -10, XMax: 10, YMax: 5}
	if r != expected {
		t.Errorf("Bounds = %v, expected %v", r, expected)
	}
	// Second call comes from the cache.
	r2, some2, err := v.Bounds()
	if err != nil || !some2 || r2 != expected {
		t.Errorf("cached Bounds = %v, %v, %v", r2, some2, err)
	}
}

func TestErrorCreation(t *testing.T) {
	e := CreateErr("eval/overflow", token.Token{Line: 3, Source: "test"})
	if e.ErrorId != "eval/overflow" || e.Message != "numeric overflow" {
		t.Errorf("CreateErr gave %v: %v", e.ErrorId, e.Message)
	}
	e = CreateErr("no/such/error", token.Token{})
	if e.Message == "" {
		t.Error("an unknown identifier should still produce a message")
	}
}
