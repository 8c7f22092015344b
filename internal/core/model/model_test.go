package model

import (
	"strings"
	"testing"
)

func TestParseRect_Valid(t *testing.T) {
	r, err := ParseRect("12.5,-45,13.25,-44")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := Rect{W: 12.5, S: -45, E: 13.25, N: -44}
	if r != want {
		t.Fatalf("got %v want %v", r, want)
	}
	if r.CrossesAntimeridian() {
		t.Fatalf("rect does not cross the antimeridian")
	}
}

func TestParseRect_AntimeridianCrossing(t *testing.T) {
	r, err := ParseRect("170,-10,-170,10")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !r.CrossesAntimeridian() {
		t.Fatalf("w > e must mean antimeridian crossing")
	}
}

func TestParseRect_Whitespace(t *testing.T) {
	r, err := ParseRect(" 1 , 2 , 3 , 4 ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if r != (Rect{W: 1, S: 2, E: 3, N: 4}) {
		t.Fatalf("unexpected rect %v", r)
	}
}

func TestParseRect_Rejects(t *testing.T) {
	cases := map[string]string{
		"1,2,3":      "expected 4",
		"1,2,3,4,5":  "expected 4",
		"a,2,3,4":    "parse value 1",
		"1,-91,3,4":  "latitude",
		"1,10,3,-10": "greater than north",
		"181,2,3,4":  "longitude",
		"1,2,-181,4": "longitude",
		"":           "expected 4",
		"1,2,3,":     "parse value 4",
		"1,2,3,NaN":  "non-finite",
	}
	for spec, frag := range cases {
		_, err := ParseRect(spec)
		if err == nil {
			t.Fatalf("spec %q must be rejected", spec)
		}
		if !strings.Contains(err.Error(), frag) {
			t.Fatalf("spec %q: error %q does not mention %q", spec, err, frag)
		}
	}
}
