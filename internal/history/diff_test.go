package history_test

import (
	"context"
	"testing"

	"github.com/calder-r/veriscan/internal/kvstore"
	"github.com/calder-r/veriscan/internal/model"
)

func TestBioChanges(t *testing.T) {
	store := newStore(t, kvstore.NewMemoryStore())
	ctx := context.Background()

	first := testResult("https://instagram.com/acct", 90)
	first.ProfileData = &model.ProfileData{Bio: "travel and coffee"}
	second := testResult("https://instagram.com/acct", 85)
	second.ProfileData = &model.ProfileData{Bio: "travel and crypto signals"}

	if err := store.Record(ctx, first); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Record(ctx, second); err != nil {
		t.Fatalf("Record: %v", err)
	}

	change, ok := store.BioChanges("https://instagram.com/acct")
	if !ok {
		t.Fatalf("expected a bio change record")
	}
	if !change.Changed {
		t.Fatalf("bios differ but Changed is false")
	}
	if change.Previous != "travel and coffee" || change.Current != "travel and crypto signals" {
		t.Fatalf("wrong before/after: %q -> %q", change.Previous, change.Current)
	}

	var hasInsert, hasDelete bool
	for _, seg := range change.Segments {
		switch seg.Op {
		case "insert":
			hasInsert = true
		case "delete":
			hasDelete = true
		}
	}
	if !hasInsert || !hasDelete {
		t.Fatalf("expected insert and delete segments, got %+v", change.Segments)
	}
}

func TestBioChanges_IdenticalBios(t *testing.T) {
	store := newStore(t, kvstore.NewMemoryStore())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		r := testResult("https://instagram.com/same", 90)
		r.ProfileData = &model.ProfileData{Bio: "unchanged"}
		if err := store.Record(ctx, r); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	change, ok := store.BioChanges("https://instagram.com/same")
	if !ok {
		t.Fatalf("expected a record for a repeated URL")
	}
	if change.Changed {
		t.Fatalf("identical bios flagged as changed")
	}
}

func TestBioChanges_SingleScan(t *testing.T) {
	store := newStore(t, kvstore.NewMemoryStore())
	r := testResult("https://instagram.com/once", 90)
	r.ProfileData = &model.ProfileData{Bio: "only scan"}
	if err := store.Record(context.Background(), r); err != nil {
		t.Fatalf("Record: %v", err)
	}

	if _, ok := store.BioChanges("https://instagram.com/once"); ok {
		t.Fatalf("one scan should not produce a change record")
	}
}

func TestBioChanges_IgnoresEntriesWithoutProfileData(t *testing.T) {
	store := newStore(t, kvstore.NewMemoryStore())
	ctx := context.Background()

	bare := testResult("https://instagram.com/mixed", 90)
	if err := store.Record(ctx, bare); err != nil {
		t.Fatalf("Record: %v", err)
	}
	with := testResult("https://instagram.com/mixed", 85)
	with.ProfileData = &model.ProfileData{Bio: "has data"}
	if err := store.Record(ctx, with); err != nil {
		t.Fatalf("Record: %v", err)
	}

	if _, ok := store.BioChanges("https://instagram.com/mixed"); ok {
		t.Fatalf("entries without profile data should not count")
	}
}
