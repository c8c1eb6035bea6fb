package document

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	doc := map[string]interface{}{
		"title": "hello",
		"meta": map[string]interface{}{
			"price": 12.5,
			"tags":  []interface{}{"a", "b"},
			"inner": Document{"depth": "deep"},
		},
		"empty": nil,
	}

	tests := []struct {
		name      string
		path      string
		want      interface{}
		wantFound bool
	}{
		{name: "top level", path: "title", want: "hello", wantFound: true},
		{name: "nested", path: "meta.price", want: 12.5, wantFound: true},
		{name: "nested document type", path: "meta.inner.depth", want: "deep", wantFound: true},
		{name: "empty segments ignored", path: ".meta..price.", want: 12.5, wantFound: true},
		{name: "explicit nil is present", path: "empty", want: nil, wantFound: true},
		{name: "empty path", path: "", wantFound: false},
		{name: "only dots", path: "...", wantFound: false},
		{name: "missing key", path: "missing", wantFound: false},
		{name: "walk through scalar", path: "title.length", wantFound: false},
		{name: "walk through array", path: "meta.tags.0", wantFound: false},
		{name: "walk through nil", path: "empty.value", wantFound: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, found := Lookup(doc, tc.path)
			require.Equal(t, tc.wantFound, found)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestLookup_NilDocument(t *testing.T) {
	got, found := Lookup(nil, "a.b")
	require.False(t, found)
	require.Nil(t, got)
	require.Nil(t, Value(nil, "a"))
}

func TestToNumber(t *testing.T) {
	tests := []struct {
		name   string
		input  interface{}
		want   float64
		wantOK bool
	}{
		{name: "float64", input: 12.5, want: 12.5, wantOK: true},
		{name: "int", input: 7, want: 7, wantOK: true},
		{name: "int64", input: int64(-3), want: -3, wantOK: true},
		{name: "json number", input: json.Number("42"), want: 42, wantOK: true},
		{name: "numeric string", input: "10", want: 10, wantOK: true},
		{name: "padded string", input: "  2.5\n", want: 2.5, wantOK: true},
		{name: "exponent string", input: "1e3", want: 1000, wantOK: true},
		{name: "leading dot", input: ".5", want: 0.5, wantOK: true},
		{name: "hex string", input: "0x10", want: 16, wantOK: true},
		{name: "binary string", input: "0b101", want: 5, wantOK: true},
		{name: "empty string", input: "", wantOK: false},
		{name: "blank string", input: "   ", wantOK: false},
		{name: "word", input: "abc", wantOK: false},
		{name: "trailing garbage", input: "10px", wantOK: false},
		{name: "underscore separated", input: "1_000", wantOK: false},
		{name: "infinity string", input: "Infinity", wantOK: false},
		{name: "nan string", input: "NaN", wantOK: false},
		{name: "overflow string", input: "1e400", wantOK: false},
		{name: "nan", input: math.NaN(), wantOK: false},
		{name: "inf", input: math.Inf(1), wantOK: false},
		{name: "nil", input: nil, wantOK: false},
		{name: "bool", input: true, wantOK: false},
		{name: "map", input: map[string]interface{}{"v": 1}, wantOK: false},
		{name: "slice", input: []interface{}{1}, wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ToNumber(tc.input)
			require.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				require.Equal(t, tc.want, got)
			}
		})
	}
}

func TestNormalizeTime(t *testing.T) {
	ts := time.Date(2024, 3, 5, 10, 30, 0, 0, time.FixedZone("CET", 3600))

	tests := []struct {
		name  string
		input interface{}
		want  string
	}{
		{name: "time value", input: ts, want: "2024-03-05T09:30:00.000Z"},
		{name: "rfc3339", input: "2024-03-05T10:30:00+01:00", want: "2024-03-05T09:30:00.000Z"},
		{name: "rfc3339 with millis", input: "2024-03-05T09:30:00.123Z", want: "2024-03-05T09:30:00.123Z"},
		{name: "date only", input: "2024-03-05", want: "2024-03-05T00:00:00.000Z"},
		{name: "no zone", input: "2024-03-05T09:30:00", want: "2024-03-05T09:30:00.000Z"},
		{name: "space separated", input: "2024-03-05 09:30:00", want: "2024-03-05T09:30:00.000Z"},
		{name: "rfc1123", input: "Tue, 05 Mar 2024 09:30:00 GMT", want: "2024-03-05T09:30:00.000Z"},
		{name: "js date string", input: "Tue Mar 05 2024 10:30:00 GMT+0100 (Central European Standard Time)", want: "2024-03-05T09:30:00.000Z"},
		{name: "bare year", input: "2024", want: "2024-01-01T00:00:00.000Z"},
		{name: "epoch millis", input: float64(1709631000000), want: "2024-03-05T09:30:00.000Z"},
		{name: "epoch millis int", input: int64(0), want: "1970-01-01T00:00:00.000Z"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeTime(tc.input)
			require.NotNil(t, got)
			require.Equal(t, tc.want, *got)
		})
	}
}

func TestNormalizeTime_Invalid(t *testing.T) {
	inputs := []interface{}{
		nil,
		"",
		"not a date",
		"2024-13-45",
		"1700000000000",
		true,
		map[string]interface{}{"date": "2024-01-01"},
		math.NaN(),
		9e15,
	}

	for _, input := range inputs {
		require.Nil(t, NormalizeTime(input), "input %#v", input)
	}
}
