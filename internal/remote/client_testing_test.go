package remote

import (
	"context"
	"testing"

	apperrors "github.com/triplogapp/triplog-server/internal/errors"
)

func TestFakeClientSetListDelete(t *testing.T) {
	f := NewFakeClient()
	ctx := context.Background()

	if err := f.Set(ctx, "users/U/trips/7", map[string]any{"tripName": "Hanoi"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := f.Set(ctx, "users/U/trips/7/expenses/3", map[string]any{"amount": 12.5}); err != nil {
		t.Fatalf("Set child: %v", err)
	}

	// Listing the trip collection must not surface nested child documents.
	docs, err := f.List(ctx, "users/U/trips")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "7" {
		t.Fatalf("List trips: got %v", docs)
	}
	if docs[0].Data["tripName"] != "Hanoi" {
		t.Errorf("tripName: got %v", docs[0].Data["tripName"])
	}

	docs, err = f.List(ctx, "users/U/trips/7/expenses")
	if err != nil {
		t.Fatalf("List expenses: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "3" {
		t.Fatalf("List expenses: got %v", docs)
	}

	if err := f.Delete(ctx, "users/U/trips/7"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if f.Doc("users/U/trips/7") != nil {
		t.Error("document still present after delete")
	}
	// Deleting a missing document succeeds.
	if err := f.Delete(ctx, "users/U/trips/7"); err != nil {
		t.Errorf("Delete missing: %v", err)
	}
}

func TestFakeClientListCopiesDocuments(t *testing.T) {
	f := NewFakeClient()
	ctx := context.Background()
	f.SeedDoc("users/U/trips/7", map[string]any{"tripName": "Hanoi"})

	docs, err := f.List(ctx, "users/U/trips")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	docs[0].Data["tripName"] = "mutated"

	if got := f.Doc("users/U/trips/7")["tripName"]; got != "Hanoi" {
		t.Errorf("stored document changed through a listed copy: got %v", got)
	}
}

func TestFakeClientFailNextIsTransient(t *testing.T) {
	f := NewFakeClient()
	ctx := context.Background()
	path := "users/U/trips/1"

	f.FailNext(path, 1)

	err := f.Set(ctx, path, map[string]any{"tripName": "x"})
	if !apperrors.Is(err, apperrors.ErrUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	if err := f.Set(ctx, path, map[string]any{"tripName": "x"}); err != nil {
		t.Fatalf("second attempt should succeed: %v", err)
	}
	if f.SetCalls != 2 {
		t.Errorf("SetCalls: got %d, want 2", f.SetCalls)
	}
}

func TestFakeClientDenyAll(t *testing.T) {
	f := NewFakeClient()
	f.DenyAll()

	err := f.Set(context.Background(), "users/U/trips/1", nil)
	if !apperrors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
	_, err = f.List(context.Background(), "users/U/trips")
	if !apperrors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied on list, got %v", err)
	}
}
