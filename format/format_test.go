package format

import (
	"testing"
	"time"

	"github.com/midbel/xlgrid/value"
)

func TestClean(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"General", "General"},
		{"[Red]0.00;[Blue]-0.00", "0.00"},
		{"\"$\"#,##0.00", "$#,##0.00"},
		{"0.0\\%", "0.0%"},
		{"_-#,##0_-", "#,##0"},
		{"* #,##0", "#,##0"},
		{"[$-409]yyyy-mm-dd", "yyyy-mm-dd"},
	}
	for _, tt := range tests {
		if got := Clean(tt.code); got != tt.want {
			t.Errorf("%q: got %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestForCode(t *testing.T) {
	tests := []struct {
		code string
		in   value.Value
		want string
	}{
		{"", value.Float(1234.5), "1234.5"},
		{"General", value.Float(1234.5), "1234.5"},
		{"@", value.Text("hello"), "hello"},
		{"0", value.Float(1234.5), "1235"},
		{"0.00", value.Float(1234.5), "1234.50"},
		{"#,##0", value.Float(1234567), "1,234,567"},
		{"#,##0.00", value.Float(1234.5), "1,234.50"},
		{"0.00%", value.Float(0.125), "12.50%"},
		{"\"$\"#,##0.00", value.Float(9.9), "$9.90"},
		{"0.##", value.Float(1.5), "1.5"},
		{"0.##", value.Float(2), "2"},
		{"00000", value.Float(42), "00042"},
		{"0.0", value.Float(-3.25), "-3.3"},
		{"yyyy-mm-dd", value.Float(45000), "2023-03-15"},
		{"dd/mm/yyyy", value.Float(45000), "15/03/2023"},
		{"h:mm:ss", value.Float(0.5), "12:00:00"},
		{"hh:mm AM/PM", value.Float(0.75), "06:00 PM"},
		{"mmm d, yyyy", value.Float(45000), "Mar 15, 2023"},
		{"mm:ss", value.Float(0.25), "00:00"},
		{"0.00E+00", value.Float(1234.5), "1234.5"},
		{"General", value.CachedResult(value.Float(30)), "30"},
	}
	for _, tt := range tests {
		got, err := ForCode(tt.code).Format(tt.in)
		if err != nil {
			t.Errorf("%q: unexpected error: %s", tt.code, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: got %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestParseNumberInvalid(t *testing.T) {
	codes := []string{"abc", "0.00E+00", "# ??/??"}
	for _, code := range codes {
		if _, err := ParseNumber(code); err == nil {
			t.Errorf("%q: expected error", code)
		}
	}
}

func TestSerialTime(t *testing.T) {
	tests := []struct {
		serial float64
		want   time.Time
	}{
		{1, time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)},
		{59, time.Date(1900, 2, 28, 0, 0, 0, 0, time.UTC)},
		{61, time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC)},
		{2.5, time.Date(1900, 1, 2, 12, 0, 0, 0, time.UTC)},
		{45000, time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)},
		{45000.75, time.Date(2023, 3, 15, 18, 0, 0, 0, time.UTC)},
		{0.5, time.Date(1899, 12, 31, 12, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := SerialTime(tt.serial)
		if err != nil {
			t.Errorf("%g: unexpected error: %s", tt.serial, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("%g: got %s, want %s", tt.serial, got, tt.want)
		}
	}
}

func TestSerialTimeInvalid(t *testing.T) {
	for _, serial := range []float64{-1, 3000000} {
		if _, err := SerialTime(serial); err == nil {
			t.Errorf("%g: expected error", serial)
		}
	}
}
