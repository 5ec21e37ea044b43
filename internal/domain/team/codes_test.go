package team

import "testing"

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "canonical passes through", in: "SF", want: "SF"},
		{name: "pfr spelling", in: "SFO", want: "SF"},
		{name: "lowercase alias", in: "gnb", want: "GB"},
		{name: "relocated raiders", in: "OAK", want: "LV"},
		{name: "relocated rams", in: "STL", want: "LAR"},
		{name: "relocated chargers", in: "SD", want: "LAC"},
		{name: "washington variant", in: "WSH", want: "WAS"},
		{name: "unknown passes through", in: "XFL", want: "XFL"},
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Canonicalize(tt.in); got != tt.want {
				t.Fatalf("Canonicalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	inputs := []string{"SFO", "OAK", "lar", "KAN", "XFL", "", "TBB"}
	for _, in := range inputs {
		once := Canonicalize(in)
		twice := Canonicalize(once)
		if once != twice {
			t.Fatalf("Canonicalize not idempotent for %q: first=%q second=%q", in, once, twice)
		}
	}
}

func TestAllCodesAreCovered(t *testing.T) {
	if len(AllCodes) != 32 {
		t.Fatalf("expected 32 franchise codes, got %d", len(AllCodes))
	}

	seen := make(map[string]struct{}, len(AllCodes))
	for _, code := range AllCodes {
		if _, dup := seen[code]; dup {
			t.Fatalf("duplicate franchise code %q", code)
		}
		seen[code] = struct{}{}

		if Canonicalize(code) != code {
			t.Fatalf("canonical code %q does not map to itself", code)
		}
		if FullNames[code] == "" {
			t.Fatalf("missing full name for %q", code)
		}
		if ByeWeeks[code] == 0 {
			t.Fatalf("missing bye week for %q", code)
		}
	}
}

func TestFullNameResolvesAliases(t *testing.T) {
	if got := FullName("SFO"); got != "San Francisco 49ers" {
		t.Fatalf("FullName(SFO) = %q", got)
	}
	if got := FullName("nope"); got != "" {
		t.Fatalf("FullName(nope) = %q, want empty", got)
	}
}
