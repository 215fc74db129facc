package vehicle

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	repo, err := NewFileRepo(filepath.Join(t.TempDir(), "vehicles.txt"))
	if err != nil {
		t.Fatalf("NewFileRepo: %v", err)
	}
	return NewService(repo)
}

func TestServiceDeleteBlockedWhileRented(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	v := &Vehicle{Category: CategorySedan, Brand: "本田", Model: "思域", DailyRate: 220}
	if err := svc.Add(ctx, v); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.MarkRented(ctx, v.ID); err != nil {
		t.Fatalf("MarkRented: %v", err)
	}

	if err := svc.Delete(ctx, v.ID); !errors.Is(err, ErrRented) {
		t.Fatalf("expected ErrRented, got %v", err)
	}

	if err := svc.MarkAvailable(ctx, v.ID); err != nil {
		t.Fatalf("MarkAvailable: %v", err)
	}
	if err := svc.Delete(ctx, v.ID); err != nil {
		t.Fatalf("Delete after return: %v", err)
	}
	if _, err := svc.ByID(ctx, v.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestServiceAvailableByCategory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sedan := &Vehicle{Category: CategorySedan, Brand: "丰田", Model: "卡罗拉", DailyRate: 200}
	bus := &Vehicle{Category: CategoryBus, Brand: "宇通", Model: "ZK6122HQ", DailyRate: 500, Seats: 45}
	sedan2 := &Vehicle{Category: CategorySedan, Brand: "大众", Model: "帕萨特", DailyRate: 260}
	for _, v := range []*Vehicle{sedan, bus, sedan2} {
		if err := svc.Add(ctx, v); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if err := svc.MarkRented(ctx, sedan.ID); err != nil {
		t.Fatalf("MarkRented: %v", err)
	}

	got, err := svc.AvailableByCategory(ctx, CategorySedan)
	if err != nil {
		t.Fatalf("AvailableByCategory: %v", err)
	}
	// 可租 且 类别匹配：只剩 sedan2
	if len(got) != 1 || got[0].ID != sedan2.ID {
		t.Fatalf("expected only vehicle %d, got %+v", sedan2.ID, got)
	}

	byCat, err := svc.ByCategory(ctx, CategorySedan)
	if err != nil {
		t.Fatalf("ByCategory: %v", err)
	}
	if len(byCat) != 2 {
		t.Fatalf("expected 2 sedans regardless of state, got %d", len(byCat))
	}
}

func TestServiceAddRejectsBadInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.Add(ctx, &Vehicle{Category: "spaceship", Brand: "x", Model: "y", DailyRate: 1}); err == nil {
		t.Fatalf("expected unknown category to fail")
	}
	if err := svc.Add(ctx, &Vehicle{Category: CategorySedan, Brand: "x", Model: "y", DailyRate: -1}); err == nil {
		t.Fatalf("expected negative rate to fail")
	}
}

func TestSeedSampleFleetOnlyWhenEmpty(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	n, err := svc.SeedSampleFleet(ctx)
	if err != nil {
		t.Fatalf("SeedSampleFleet: %v", err)
	}
	if n == 0 {
		t.Fatalf("expected seed on empty store")
	}

	again, err := svc.SeedSampleFleet(ctx)
	if err != nil {
		t.Fatalf("SeedSampleFleet: %v", err)
	}
	if again != 0 {
		t.Fatalf("seed must be a no-op on non-empty store, inserted %d", again)
	}
}
