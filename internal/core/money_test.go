package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"12.34", "12.34", false},
		{"12,34", "12.34", false},
		{"12.345", "12.35", false}, // half-up on the third digit
		{"12.344", "12.34", false},
		{"0", "0.00", false},
		{"", "0.00", false},
		{"  7 ", "7.00", false},
		{"1000", "1000.00", false},
		{"-5", "", true},
		{"abc", "", true},
		{"1.2.3", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseAmount(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if FormatAmount(got) != tc.want {
				t.Fatalf("got %s, want %s", FormatAmount(got), tc.want)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(amt("3.5")); got != "3.50" {
		t.Fatalf("got %s, want 3.50", got)
	}
	if got := FormatAmount(amt("-120.7")); got != "-120.70" {
		t.Fatalf("got %s, want -120.70", got)
	}
}
