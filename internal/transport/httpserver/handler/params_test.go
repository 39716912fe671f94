package handler

import (
	"encoding/json"
	"testing"
)

func TestParsePoints(t *testing.T) {
	cases := []struct {
		raw     string
		want    *int
		wantErr bool
	}{
		{raw: ``},
		{raw: `null`},
		{raw: `10`, want: intPtr(10)},
		{raw: `"25"`, want: intPtr(25)},
		{raw: `" 7 "`, want: intPtr(7)},
		{raw: `-3`, want: intPtr(-3)},
		{raw: `0`, want: intPtr(0)},
		{raw: `3000000000`, want: intPtr(3000000000)},
		{raw: `"99999999999999999999"`, wantErr: true},
		{raw: `1e3`, wantErr: true},
		{raw: `1.5`, wantErr: true},
		{raw: `"ten"`, wantErr: true},
		{raw: `true`, wantErr: true},
		{raw: `[1]`, wantErr: true},
	}

	for _, tc := range cases {
		got, err := parsePoints(json.RawMessage(tc.raw))
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.raw, err)
		}
		switch {
		case tc.want == nil && got != nil:
			t.Fatalf("%s: expected nil, got %d", tc.raw, *got)
		case tc.want != nil && (got == nil || *got != *tc.want):
			t.Fatalf("%s: expected %d, got %v", tc.raw, *tc.want, got)
		}
	}
}

func TestParseDateParam(t *testing.T) {
	got, err := parseDateParam(" ")
	if err != nil || got != nil {
		t.Fatalf("expected empty value to be nil, got %v %v", got, err)
	}

	got, err = parseDateParam("2024-02-29")
	if err != nil || got == nil || got.Day() != 29 {
		t.Fatalf("expected leap day, got %v %v", got, err)
	}

	if _, err := parseDateParam("2023-02-29"); err == nil {
		t.Fatalf("expected invalid date error")
	}
}

func intPtr(v int) *int {
	return &v
}
