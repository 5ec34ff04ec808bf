package persist

import (
	"testing"

	"github.com/l1jgo/groundzero/internal/groundzero"
)

func TestRunCountsSkipsZero(t *testing.T) {
	rep := groundzero.Report{TreesBroken: 4, OreUnits: 12, PawnsNeutralized: 2}
	got := runCounts(rep)
	want := []groundzero.Count{
		{Name: "trees_broken", Value: 4},
		{Name: "ore_units", Value: 12},
		{Name: "pawns_neutralized", Value: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("counts = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("counts = %v, want %v", got, want)
		}
	}
	if runCounts(groundzero.Report{}) != nil {
		t.Fatalf("empty report should have no rows")
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatalf("no migrations embedded")
	}
}
