package roster

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercases and trims", in: "  Jane Doe ", want: "jane doe"},
		{name: "strips periods", in: "A.J. Brown", want: "aj brown"},
		{name: "strips jr suffix", in: "Mike Williams Jr.", want: "mike williams"},
		{name: "strips iii suffix", in: "Will Fuller III", want: "will fuller"},
		{name: "keeps suffix-like infix", in: "Junior Seau", want: "junior seau"},
		{name: "collapses whitespace", in: "Jane   Ann\tDoe", want: "jane ann doe"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.in); got != tt.want {
				t.Fatalf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeNameSuffixEquivalence(t *testing.T) {
	if NormalizeName("Mike Williams Jr.") != NormalizeName("mike williams") {
		t.Fatalf("suffix variant should normalize to the same key")
	}
}

func TestPrimaryPosition(t *testing.T) {
	p := DirectoryPlayer{RawPositions: []Position{PositionWideReceiver, PositionRunningBack}}
	if got := p.PrimaryPosition(); got != PositionWideReceiver {
		t.Fatalf("PrimaryPosition = %q, want WR", got)
	}

	empty := DirectoryPlayer{}
	if got := empty.PrimaryPosition(); got != PositionUnknown {
		t.Fatalf("PrimaryPosition on empty = %q, want Unknown", got)
	}
}

func TestSynthesizeDefenses(t *testing.T) {
	defenses := SynthesizeDefenses()
	if len(defenses) != 32 {
		t.Fatalf("expected 32 synthesized defenses, got %d", len(defenses))
	}

	seen := make(map[string]struct{}, len(defenses))
	for _, d := range defenses {
		if !d.IsActive {
			t.Fatalf("synthesized defense %s must be active", d.ID)
		}
		if !d.IsDefense() {
			t.Fatalf("synthesized defense %s must carry DEF position", d.ID)
		}
		if d.FullName == "" {
			t.Fatalf("synthesized defense %s has no name", d.ID)
		}
		if _, dup := seen[d.ID]; dup {
			t.Fatalf("duplicate synthesized defense id %s", d.ID)
		}
		seen[d.ID] = struct{}{}
	}
}
