package memory

import (
	"context"
	"errors"
	"testing"

	"trivia-engine/internal/domain"
)

func TestStateStoreLoadDefaults(t *testing.T) {
	store := NewStateStore()

	st, err := store.Load(context.Background(), "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.CurrentOrdinal != 1 || st.Version != 0 || st.AttemptedCount != 0 {
		t.Fatalf("expected fresh default state, got %+v", st)
	}
}

func TestStateStoreVersionedSave(t *testing.T) {
	ctx := context.Background()
	store := NewStateStore()

	st, _ := store.Load(ctx, "u1")
	st.AttemptedCount = 1
	if err := store.Save(ctx, st); err != nil {
		t.Fatalf("first save: %v", err)
	}

	saved, _ := store.Load(ctx, "u1")
	if saved.Version != 1 || saved.AttemptedCount != 1 {
		t.Fatalf("expected version bump, got %+v", saved)
	}

	// stale writer loses
	st.AttemptedCount = 99
	if err := store.Save(ctx, st); !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}
	unchanged, _ := store.Load(ctx, "u1")
	if unchanged.AttemptedCount != 1 {
		t.Fatalf("conflicting save must not apply, got %+v", unchanged)
	}
}

func TestStateStoreRejectsCreateWithStaleVersion(t *testing.T) {
	ctx := context.Background()
	store := NewStateStore()

	st := domain.NewUserTriviaState("u1")
	st.Version = 3
	if err := store.Save(ctx, st); !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("expected version conflict for unseen user, got %v", err)
	}
}
