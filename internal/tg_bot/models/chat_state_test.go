package models

import (
	"reflect"
	"testing"
)

func TestChatStateCloneIsIndependent(t *testing.T) {
	state := NewChatState(42)
	state.Warnings[1] = 2
	state.Locks["media"] = struct{}{}
	state.Notes[1] = map[string]string{"todo": "buy milk"}

	clone := state.Clone()
	clone.Warnings[1] = 0
	clone.Locks["links"] = struct{}{}
	clone.Notes[1]["todo"] = "changed"

	if state.Warnings[1] != 2 {
		t.Fatalf("Warnings[1] = %d, want 2", state.Warnings[1])
	}
	if len(state.Locks) != 1 {
		t.Fatalf("len(Locks) = %d, want 1", len(state.Locks))
	}
	if state.Notes[1]["todo"] != "buy milk" {
		t.Fatalf("note = %q, want %q", state.Notes[1]["todo"], "buy milk")
	}
}

func TestSortedLocks(t *testing.T) {
	state := NewChatState(1)
	for _, l := range []string{"links", "gifs", "media"} {
		state.Locks[l] = struct{}{}
	}
	got := state.SortedLocks()
	want := []string{"gifs", "links", "media"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SortedLocks() = %v, want %v", got, want)
	}
}

func TestXPRanking(t *testing.T) {
	state := NewChatState(1)
	state.XP[30] = 5
	state.XP[10] = 50
	state.XP[20] = 5

	got := state.XPRanking()
	want := []XPEntry{{UserID: 10, XP: 50}, {UserID: 20, XP: 5}, {UserID: 30, XP: 5}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("XPRanking() = %v, want %v", got, want)
	}
}

func TestCapabilitySetMissing(t *testing.T) {
	set := NewCapabilitySet(CapabilityGenerative, CapabilityWeather)
	if !set.Has(CapabilityWeather) {
		t.Fatal("expected weather capability")
	}
	missing := set.Missing([]Capability{CapabilityGenerative, CapabilityDictionary})
	if !reflect.DeepEqual(missing, []Capability{CapabilityDictionary}) {
		t.Fatalf("Missing() = %v, want [dictionary]", missing)
	}
}
