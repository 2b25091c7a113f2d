package challenges

import (
	"errors"
	"strings"
	"testing"
)

func TestLookup_Exists(t *testing.T) {
	ch, err := Lookup("welcome")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch.Title != "The First Message" {
		t.Errorf("got title %q, want %q", ch.Title, "The First Message")
	}
	if ch.Level != 0 {
		t.Errorf("got level %d, want 0", ch.Level)
	}
	if ch.Concept != "welcome" {
		t.Errorf("got concept %q, want %q", ch.Concept, "welcome")
	}
	if ch.Difficulty != DifficultyStandard {
		t.Errorf("got difficulty %q, want standard", ch.Difficulty)
	}
}

func TestLookup_NotFound(t *testing.T) {
	_, err := Lookup("nonexistent")
	if err == nil {
		t.Fatal("expected error for nonexistent challenge, got nil")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLookup_Variant(t *testing.T) {
	ch, err := Lookup("welcome_speed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch.Concept != "welcome" {
		t.Errorf("got concept %q, want welcome", ch.Concept)
	}
	if !ch.IsVariant() {
		t.Error("expected variant")
	}
	if ch.Difficulty != DifficultyAdvanced {
		t.Errorf("got difficulty %q, want advanced", ch.Difficulty)
	}
	if ch.XPReward != 75 {
		t.Errorf("got xp %d, want 75", ch.XPReward)
	}
	if ch.SanityCost != 6 {
		t.Errorf("got sanity cost %d, want 6", ch.SanityCost)
	}
	if ch.TimeLimit == 0 {
		t.Error("expected a time limit on the speed variant")
	}
	if !strings.HasSuffix(ch.Title, "(Speed Mode)") {
		t.Errorf("got title %q, want speed suffix", ch.Title)
	}
}

func TestLookup_ReturnsCopy(t *testing.T) {
	ch, _ := Lookup("welcome")
	ch.Hints[0] = "mutated"
	again, _ := Lookup("welcome")
	if again.Hints[0] == "mutated" {
		t.Error("Lookup leaked internal hint slice")
	}
}

func TestCount(t *testing.T) {
	if got := Count(); got != 51 {
		t.Errorf("got %d challenges, want 51", got)
	}
}

func TestByLevel(t *testing.T) {
	tests := []struct {
		level Level
		want  int
	}{
		{0, 8},
		{1, 8},
		{2, 22},
		{3, 12},
		{4, 1},
		{5, 0},
	}
	for _, tt := range tests {
		n := 0
		for ch := range ByLevel(tt.level) {
			if ch.Level != tt.level {
				t.Errorf("ByLevel(%d) yielded %q at level %d", tt.level, ch.ID, ch.Level)
			}
			n++
		}
		if n != tt.want {
			t.Errorf("ByLevel(%d): got %d challenges, want %d", tt.level, n, tt.want)
		}
	}
}

func TestList_NilIsAll(t *testing.T) {
	n := 0
	for range List(nil) {
		n++
	}
	if n != Count() {
		t.Errorf("List(nil) yielded %d, want %d", n, Count())
	}

	lvl := Level(4)
	var ids []string
	for ch := range List(&lvl) {
		ids = append(ids, ch.ID)
	}
	if len(ids) != 1 || ids[0] != "final_protocol" {
		t.Errorf("List(4) = %v, want [final_protocol]", ids)
	}
}

func TestAll_Restartable(t *testing.T) {
	seq := All()
	first, second := 0, 0
	for range seq {
		first++
	}
	for range seq {
		second++
	}
	if first != second {
		t.Errorf("second iteration yielded %d, first %d", second, first)
	}
}

func TestAll_EarlyBreak(t *testing.T) {
	n := 0
	for range All() {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("got %d, want 3", n)
	}
}

func TestLevels(t *testing.T) {
	got := Levels()
	want := []Level{0, 1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Levels()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestByCategory(t *testing.T) {
	total := 0
	for _, c := range AllCategories() {
		for _, ch := range ByCategory(c) {
			if ch.Category != c {
				t.Errorf("ByCategory(%q) returned %q in %q", c, ch.ID, ch.Category)
			}
			total++
		}
	}
	if total != Count() {
		t.Errorf("categories cover %d challenges, want %d", total, Count())
	}
}

func TestHints(t *testing.T) {
	hints, err := Hints("caesar_cipher_guided")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hints) != 3 || !strings.Contains(hints[0], "F becomes C") {
		t.Errorf("unexpected guided hints: %v", hints)
	}
	if _, err := Hints("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalog_Invariants(t *testing.T) {
	for ch := range All() {
		if ch.XPReward <= 0 {
			t.Errorf("%s: xp reward %d", ch.ID, ch.XPReward)
		}
		if ch.SanityCost < 0 || ch.SanityCost > 100 {
			t.Errorf("%s: sanity cost %d", ch.ID, ch.SanityCost)
		}
		if len(ch.Hints) == 0 {
			t.Errorf("%s: no hints", ch.ID)
		}
		for _, d := range ch.Difficulties() {
			v, ok := ch.Variant(d)
			if !ok {
				t.Errorf("%s: Variant(%q) missing", ch.ID, d)
				continue
			}
			if v.Concept != ch.ID {
				t.Errorf("%s/%s: concept %q", ch.ID, d, v.Concept)
			}
			if v.XPReward < 1 {
				t.Errorf("%s/%s: xp %d", ch.ID, d, v.XPReward)
			}
			looked, err := Lookup(v.ID)
			if err != nil {
				t.Errorf("%s: variant id %q not indexed: %v", ch.ID, v.ID, err)
			} else if looked.XPReward != v.XPReward {
				t.Errorf("%s: indexed xp %d, materialized %d", v.ID, looked.XPReward, v.XPReward)
			}
		}
	}
}

func TestVariant_Unavailable(t *testing.T) {
	ch, _ := Lookup("port_scan")
	if _, ok := ch.Variant(DifficultyExpert); ok {
		t.Error("port_scan should have no expert variant")
	}
	if got := ch.Difficulties(); len(got) != 1 || got[0] != DifficultyStandard {
		t.Errorf("Difficulties() = %v, want [standard]", got)
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, d := range []Difficulty{DifficultyBeginner, DifficultyStandard, DifficultyAdvanced, DifficultyExpert} {
		got, ok := ParseDifficulty(string(d))
		if !ok || got != d {
			t.Errorf("ParseDifficulty(%q) = %q, %v", d, got, ok)
		}
	}
	if _, ok := ParseDifficulty("nightmare"); ok {
		t.Error("ParseDifficulty accepted unknown difficulty")
	}
}

func TestDifficulty_Rank(t *testing.T) {
	if !(DifficultyBeginner.Rank() < DifficultyStandard.Rank() &&
		DifficultyStandard.Rank() < DifficultyAdvanced.Rank() &&
		DifficultyAdvanced.Rank() < DifficultyExpert.Rank()) {
		t.Error("difficulty ranks are not ordered")
	}
}

func TestCategoryDisplayName(t *testing.T) {
	for _, c := range AllCategories() {
		if CategoryDisplayName(c) == "" {
			t.Errorf("empty display name for %q", c)
		}
	}
	if got := CategoryDisplayName("custom"); got != "custom" {
		t.Errorf("got %q, want passthrough", got)
	}
}
