package mock

import (
	"reflect"
	"strings"
	"testing"
)

func TestGeneratorIsDeterministicPerSeed(t *testing.T) {
	a := NewGenerator(42)
	b := NewGenerator(42)

	for i := 0; i < 50; i++ {
		pa, _ := a.ListPlayers()
		pb, _ := b.ListPlayers()
		if !reflect.DeepEqual(pa, pb) {
			t.Fatalf("step %d: rosters diverged: %v vs %v", i, pa, pb)
		}
		if !reflect.DeepEqual(a.Collect(), b.Collect()) {
			t.Fatalf("step %d: queued events diverged", i)
		}
	}
}

func TestGeneratorNeverFails(t *testing.T) {
	g := NewGenerator(1)
	for i := 0; i < 200; i++ {
		if _, err := g.ListPlayers(); err != nil {
			t.Fatalf("step %d: ListPlayers returned %v", i, err)
		}
	}
}

func TestGeneratorCollectDrains(t *testing.T) {
	g := NewGenerator(7)

	var produced int
	for i := 0; i < 100; i++ {
		g.ListPlayers()
		recs := g.Collect()
		produced += len(recs)
		for _, rec := range recs {
			if strings.TrimSpace(rec.Text) == "" {
				t.Fatalf("step %d: empty event text", i)
			}
		}
		if again := g.Collect(); len(again) != 0 {
			t.Fatalf("step %d: second Collect returned %d records, want 0", i, len(again))
		}
	}
	if produced == 0 {
		t.Error("no death events produced in 100 steps")
	}
}

func TestGeneratorRosterStaysWithinNamePool(t *testing.T) {
	pool := make(map[string]bool, len(playerNames))
	for _, name := range playerNames {
		pool[name] = true
	}

	g := NewGenerator(3)
	for i := 0; i < 100; i++ {
		players, _ := g.ListPlayers()
		for name := range players {
			if !pool[name] {
				t.Fatalf("step %d: unknown player %q", i, name)
			}
		}
	}
}
