package stubs

import (
	"context"
	"errors"
	"testing"

	"partybot/internal/models"
	"partybot/internal/storage"
)

func TestSettings_EmptyThenSet(t *testing.T) {
	s := NewSettings()
	ctx := context.Background()

	if _, err := s.Get(ctx); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	if err := s.Set(ctx, map[string]string{"event_date": "01.03"}); err != nil {
		t.Fatalf("Failed to set settings: %v", err)
	}

	values, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("Failed to get settings: %v", err)
	}
	if values["event_date"] != "01.03" {
		t.Errorf("Expected event_date 01.03, got %q", values["event_date"])
	}
}

func TestRegistry_AddIsIdempotent(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	added, _ := r.Add(ctx, 7)
	if !added {
		t.Error("Expected first add to report added")
	}
	added, _ = r.Add(ctx, 7)
	if added {
		t.Error("Expected second add to report not added")
	}

	ids, _ := r.List(ctx)
	if len(ids) != 1 {
		t.Errorf("Expected 1 id, got %d", len(ids))
	}
}

func TestRecorder_HeaderOncePerPartition(t *testing.T) {
	r := NewRecorder()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := r.Append(ctx, "18.02", models.Registration{Name: "Olena"}); err != nil {
			t.Fatalf("Failed to append: %v", err)
		}
	}

	rows := r.Rows("18.02")
	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != models.RegistrationHeader[0] {
		t.Errorf("Expected header row first, got %v", rows[0])
	}
}
