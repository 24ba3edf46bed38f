package history_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/calder-r/veriscan/internal/history"
	"github.com/calder-r/veriscan/internal/interfaces"
	"github.com/calder-r/veriscan/internal/kvstore"
	"github.com/calder-r/veriscan/internal/model"
)

func testResult(url string, confidence int) *model.ScanResult {
	return &model.ScanResult{
		ID:         url + "-id",
		Platform:   model.PlatformInstagram,
		URL:        url,
		IsFake:     false,
		Confidence: confidence,
		Details: model.Details{
			AccountAge:      "2 years",
			FollowerRatio:   "1.10",
			BioSentiment:    "Genuine",
			ProfilePicture:  "Original Image",
			PostingActivity: "Consistent",
		},
		Timestamp: time.Now().UTC(),
	}
}

func newStore(t *testing.T, kv interfaces.KVStore) *history.Store {
	t.Helper()
	return history.NewStore(context.Background(), kv, interfaces.NewTestLogger(false))
}

func TestRecord_NewestFirstAndBounded(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	store := newStore(t, kv)
	ctx := context.Background()

	for i := 0; i < history.Capacity+5; i++ {
		if err := store.Record(ctx, testResult(fmt.Sprintf("u%d", i), 80+i%20)); err != nil {
			t.Fatalf("Record: %v", err)
		}
		if store.Len() > history.Capacity {
			t.Fatalf("log grew past capacity: %d", store.Len())
		}
	}

	entries := store.List()
	if len(entries) != history.Capacity {
		t.Fatalf("expected %d entries, got %d", history.Capacity, len(entries))
	}
	// Newest at index 0, prior order preserved behind it.
	for i, e := range entries {
		want := fmt.Sprintf("u%d", history.Capacity+4-i)
		if e.URL != want {
			t.Fatalf("entry %d = %s, want %s", i, e.URL, want)
		}
	}
}

func TestRecord_RoundTripThroughStorage(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	store := newStore(t, kv)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := store.Record(ctx, testResult(fmt.Sprintf("user%d", i), 90)); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	// A fresh store over the same KV sees the identical ordered sequence.
	reloaded := newStore(t, kv)
	a, b := store.List(), reloaded.List()
	if len(a) != len(b) {
		t.Fatalf("reload length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].URL != b[i].URL || a[i].Confidence != b[i].Confidence {
			t.Fatalf("reload mismatch at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestLoad_CorruptDataYieldsEmptyLog(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	if err := kv.Set(context.Background(), "scan_history", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	store := newStore(t, kv)
	if store.Len() != 0 {
		t.Fatalf("corrupt history should load empty, got %d entries", store.Len())
	}
}

func TestLoad_OversizedStoredLogIsTrimmed(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	seed := newStore(t, kv)
	ctx := context.Background()
	for i := 0; i < history.Capacity; i++ {
		if err := seed.Record(ctx, testResult(fmt.Sprintf("u%d", i), 85)); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	store := newStore(t, kv)
	if store.Len() != history.Capacity {
		t.Fatalf("expected %d entries after reload, got %d", history.Capacity, store.Len())
	}
}

func TestRecord_PersistFailureLeavesLogUntouched(t *testing.T) {
	kv := &failingKV{KVStore: kvstore.NewMemoryStore()}
	store := history.NewStore(context.Background(), kv, interfaces.NewTestLogger(false))
	ctx := context.Background()

	if err := store.Record(ctx, testResult("ok", 90)); err != nil {
		t.Fatalf("Record: %v", err)
	}

	kv.fail = true
	if err := store.Record(ctx, testResult("broken", 50)); err == nil {
		t.Fatalf("expected persist error")
	}
	entries := store.List()
	if len(entries) != 1 || entries[0].URL != "ok" {
		t.Fatalf("failed persist mutated the log: %+v", entries)
	}
}

type failingKV struct {
	interfaces.KVStore
	fail bool
}

func (f *failingKV) Set(ctx context.Context, key, value string) error {
	if f.fail {
		return fmt.Errorf("disk full")
	}
	return f.KVStore.Set(ctx, key, value)
}

func TestChartSeries(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	store := newStore(t, kv)
	ctx := context.Background()

	// Oldest first as recorded; the log itself keeps newest-first.
	confidences := []int{55, 100, 40, 95, 60, 85, 70, 90}
	for i, c := range confidences {
		if err := store.Record(ctx, testResult(fmt.Sprintf("u%d", i), c)); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	points := store.ChartSeries()
	if len(points) != 7 {
		t.Fatalf("expected 7 chart points, got %d", len(points))
	}
	// The 7 most recent in chronological order: confidences[1:] in record order.
	want := confidences[1:]
	for i, p := range points {
		if p.Confidence != want[i] {
			t.Fatalf("point %d confidence = %d, want %d", i, p.Confidence, want[i])
		}
		if p.Label != fmt.Sprintf("Scan %d", i+1) {
			t.Fatalf("point %d label = %q", i, p.Label)
		}
	}
}

func TestChartSeries_ShortLog(t *testing.T) {
	store := newStore(t, kvstore.NewMemoryStore())
	ctx := context.Background()
	if err := store.Record(ctx, testResult("only", 97)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	points := store.ChartSeries()
	if len(points) != 1 || points[0].Confidence != 97 || points[0].Label != "Scan 1" {
		t.Fatalf("unexpected series: %+v", points)
	}
}

func TestChartSeries_Empty(t *testing.T) {
	store := newStore(t, kvstore.NewMemoryStore())
	if points := store.ChartSeries(); len(points) != 0 {
		t.Fatalf("expected empty series, got %+v", points)
	}
}
