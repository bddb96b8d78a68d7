package core

import "testing"

func TestToRaw(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"$1,234.50", "1234.50"},
		{"1234.50", "1234.50"},
		{"KSh2000", "2000"},
		{"1.2.3", "1.2"},
		{"1.2.3.4", "1.2"},
		{"abc", ""},
		{"", ""},
		{".", "."},
		{"€0.99", "0.99"},
	}
	for _, tc := range cases {
		if got := ToRaw(tc.in); got != tc.out {
			t.Fatalf("ToRaw(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		raw    string
		symbol string
		out    string
	}{
		{"1234567.8", "$", "$1,234,567.8"},
		{"1000", "€", "€1,000"},
		{"999", "$", "$999"},
		{"0.5", "£", "£0.5"},
		{"", "$", "$"},
		{".", "$", "$."},
		{"12.", "₦", "₦12."},
		{"1234567890", "KSh", "KSh1,234,567,890"},
	}
	for _, tc := range cases {
		if got := Format(tc.raw, tc.symbol); got != tc.out {
			t.Fatalf("Format(%q, %q) = %q, want %q", tc.raw, tc.symbol, got, tc.out)
		}
	}
}

// The numeric payload must survive a format/strip round trip for any raw
// string made of digits and at most one decimal point.
func TestFormatToRawRoundTrip(t *testing.T) {
	raws := []string{"0", "1", "12", "123", "1234", "12345.67", "1234567.8", "0.01", "999999999"}
	for _, raw := range raws {
		for _, cur := range Currencies {
			if got := ToRaw(Format(raw, cur.Symbol)); got != raw {
				t.Fatalf("ToRaw(Format(%q, %q)) = %q, want %q", raw, cur.Symbol, got, raw)
			}
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"2000", 2000, true},
		{"-4.50", -4.50, true},
		{" 12.5 ", 12.5, true},
		{"0", 0, true},
		{"", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("ParseAmount(%q) = %v (err=%v), want %v", tc.in, got, err, tc.out)
			}
		} else if err == nil {
			t.Fatalf("ParseAmount(%q) expected error", tc.in)
		}
	}
}
