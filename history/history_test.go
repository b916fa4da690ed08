package history_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/chrismwendt/lsif-node/history"
)

func TestStore(t *testing.T) {
	t.Run("RecordAndList", func(t *testing.T) {
		store, err := history.Open(":memory:")
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}
		defer store.Close()
		ctx := context.Background()

		first := history.Run{
			ID:          uuid.New().String(),
			Input:       "dump-a.lsif",
			StartedAt:   time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
			DurationMS:  42,
			Vertices:    10,
			Edges:       7,
			IssueCount:  0,
			Passed:      true,
			SchemaCheck: true,
		}
		second := history.Run{
			ID:         uuid.New().String(),
			Input:      "dump-b.lsif",
			StartedAt:  time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC),
			DurationMS: 7,
			Vertices:   3,
			Edges:      1,
			IssueCount: 2,
		}

		if err := store.Record(ctx, first); err != nil {
			t.Fatalf("record failed: %v", err)
		}
		if err := store.Record(ctx, second); err != nil {
			t.Fatalf("record failed: %v", err)
		}

		runs, err := store.Runs(ctx, 0)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(runs) != 2 {
			t.Fatalf("expected 2 runs, got %d", len(runs))
		}

		// Newest first.
		if runs[0].ID != second.ID {
			t.Errorf("expected newest run first, got %s", runs[0].Input)
		}
		got := runs[1]
		if got.Input != first.Input || got.DurationMS != first.DurationMS ||
			got.Vertices != first.Vertices || got.Edges != first.Edges ||
			got.IssueCount != first.IssueCount {
			t.Errorf("run fields lost in round trip: %+v", got)
		}
		if !got.Passed || !got.SchemaCheck {
			t.Errorf("boolean fields lost in round trip: %+v", got)
		}
		if !got.StartedAt.Equal(first.StartedAt) {
			t.Errorf("expected started_at %v, got %v", first.StartedAt, got.StartedAt)
		}
	})

	t.Run("Limit", func(t *testing.T) {
		store, err := history.Open(":memory:")
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}
		defer store.Close()
		ctx := context.Background()

		base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 5; i++ {
			run := history.Run{
				ID:        uuid.New().String(),
				Input:     "dump.lsif",
				StartedAt: base.Add(time.Duration(i) * time.Hour),
			}
			if err := store.Record(ctx, run); err != nil {
				t.Fatalf("record failed: %v", err)
			}
		}

		runs, err := store.Runs(ctx, 3)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(runs) != 3 {
			t.Errorf("expected 3 runs, got %d", len(runs))
		}
	})

	t.Run("Empty", func(t *testing.T) {
		store, err := history.Open(":memory:")
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}
		defer store.Close()

		runs, err := store.Runs(context.Background(), 10)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(runs) != 0 {
			t.Errorf("expected no runs, got %d", len(runs))
		}
	})
}
