package repository

import (
	"context"
	"testing"

	"delivery-tracking/internal/db"
)

func TestDriverRepository_CreateAndGet(t *testing.T) {
	d, err := db.Open("file:driverrepo?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewDriverRepository(d)
	ctx := context.Background()

	drv, err := repo.Create(ctx, "dana@example.com", "hash", "Dana", "Reed")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if drv.ID == 0 || drv.Email != "dana@example.com" {
		t.Fatalf("unexpected created driver: %+v", drv)
	}

	g, err := repo.GetByID(ctx, drv.ID)
	if err != nil || g == nil || g.FirstName != "Dana" {
		t.Fatalf("get by id: %v %+v", err, g)
	}

	g2, err := repo.GetByEmail(ctx, "dana@example.com")
	if err != nil || g2 == nil || g2.ID != drv.ID {
		t.Fatalf("get by email: %v %+v", err, g2)
	}

	// Duplicate email violates the unique constraint.
	if _, err := repo.Create(ctx, "dana@example.com", "hash2", "", ""); err == nil {
		t.Fatal("expected unique constraint violation")
	}

	// Missing driver yields nil, nil.
	gone, err := repo.GetByEmail(ctx, "nobody@example.com")
	if err != nil || gone != nil {
		t.Fatalf("expected nil for missing driver, got %+v err=%v", gone, err)
	}
}
