package models

import (
	"encoding/json"
	"testing"
)

func TestYear_AcceptsStringOrNumber(t *testing.T) {
	cases := []struct {
		in   string
		want Year
	}{
		{`{"year":"2015"}`, "2015"},
		{`{"year":" 2015 "}`, "2015"},
		{`{"year":2015}`, "2015"},
		{`{"year":2015.0}`, "2015"},
		{`{"year":2.015e3}`, "2015"},
		{`{"year":2015.5}`, "2015.5"},
		{`{"year":0}`, ""},
		{`{"year":0.0}`, ""},
		{`{"year":"0"}`, "0"},
		{`{"year":null}`, ""},
		{`{}`, ""},
	}
	for _, tc := range cases {
		var req GuideRequest
		if err := json.Unmarshal([]byte(tc.in), &req); err != nil {
			t.Fatalf("%s: unexpected error %v", tc.in, err)
		}
		if req.Year != tc.want {
			t.Fatalf("%s: expected %q got %q", tc.in, tc.want, req.Year)
		}
	}
}

func TestYear_RejectsObjects(t *testing.T) {
	var req GuideRequest
	if err := json.Unmarshal([]byte(`{"year":{"v":1}}`), &req); err == nil {
		t.Fatalf("expected error for object year")
	}
}

func TestVehicle_TrimmedAndString(t *testing.T) {
	v := Vehicle{Make: " Honda ", Model: "Civic  ", Year: " 2015"}.Trimmed()
	if v.String() != "2015 Honda Civic" {
		t.Fatalf("unexpected %q", v.String())
	}
}
