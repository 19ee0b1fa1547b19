package repository

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"estateClientManagement/internal/apperr"
	"estateClientManagement/internal/db"
	"estateClientManagement/models"
)

func strptr(s string) *string { return &s }

func TestClientRepository_CRUD(t *testing.T) {
	d, err := db.Open("file:clientrepo?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewClientRepository(d)
	ctx := context.Background()

	c, err := repo.Create(ctx, &models.Client{ID: "c-1", Name: "Acme", Block: "B"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID != "c-1" || c.CreatedAt.IsZero() {
		t.Fatalf("unexpected created client: %+v", c)
	}

	got, err := repo.GetByID(ctx, "c-1")
	if err != nil || got == nil || got.Name != "Acme" || got.Block != "B" {
		t.Fatalf("get: %v %+v", err, got)
	}

	// Duplicate id is a validation failure
	if _, err := repo.Create(ctx, &models.Client{ID: "c-1"}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ErrValidation for duplicate id, got %v", err)
	}

	// Partial update: supplied fields overwrite, omitted fields stay
	upd, err := repo.Update(ctx, "c-1", &models.ClientPatch{Price: strptr("500"), Name: strptr("")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if upd.Price != "500" || upd.Name != "" || upd.Block != "B" {
		t.Fatalf("patch semantics broken: %+v", upd)
	}

	// Empty patch leaves the record identical
	before, _ := repo.GetByID(ctx, "c-1")
	after, err := repo.Update(ctx, "c-1", &models.ClientPatch{})
	if err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if *after != *before {
		t.Fatalf("empty patch changed the record: %+v != %+v", after, before)
	}

	if _, err := repo.Update(ctx, "missing", &models.ClientPatch{}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := repo.Delete(ctx, "c-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "c-1"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestClientRepository_DerivedIDs(t *testing.T) {
	d, err := db.Open("file:clientrepo_ids?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewClientRepository(d)
	ctx := context.Background()

	var prev int64
	for i := 0; i < 10; i++ {
		c, err := repo.Create(ctx, &models.Client{})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		n, err := strconv.ParseInt(c.ID, 10, 64)
		if err != nil {
			t.Fatalf("derived id %q is not a decimal integer: %v", c.ID, err)
		}
		if n <= prev {
			t.Fatalf("derived ids must strictly increase: %d after %d", n, prev)
		}
		prev = n
	}
}

func TestClientRepository_ListNewestFirst(t *testing.T) {
	d, err := db.Open("file:clientrepo_order?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewClientRepository(d)
	ctx := context.Background()

	for _, id := range []string{"first", "second", "third"} {
		if _, err := repo.Create(ctx, &models.Client{ID: id}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].ID != "third" || list[2].ID != "first" {
		t.Fatalf("unexpected order: %+v", list)
	}

	recent, err := repo.Recent(ctx, 2)
	if err != nil || len(recent) != 2 || recent[0].ID != "third" {
		t.Fatalf("recent: %v %+v", err, recent)
	}
}

func TestClientRepository_ReplaceAll(t *testing.T) {
	d, err := db.Open("file:clientrepo_import?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewClientRepository(d)
	ctx := context.Background()

	if _, err := repo.Create(ctx, &models.Client{ID: "old-1"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := repo.Create(ctx, &models.Client{ID: "old-2"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	n, err := repo.ReplaceAll(ctx, []*models.Client{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B"},
		{Name: "derived"},
	})
	if err != nil || n != 3 {
		t.Fatalf("replace all: %v n=%d", err, n)
	}

	list, err := repo.List(ctx)
	if err != nil || len(list) != 3 {
		t.Fatalf("list after import: %v len=%d", err, len(list))
	}
	ids := map[string]bool{}
	for _, c := range list {
		ids[c.ID] = true
	}
	if ids["old-1"] || ids["old-2"] || !ids["a"] || !ids["b"] {
		t.Fatalf("import did not replace the table: %v", ids)
	}

	// A failing import must leave the table untouched
	if _, err := repo.ReplaceAll(ctx, []*models.Client{{ID: "x"}, {ID: "x"}}); err == nil {
		t.Fatalf("expected duplicate-id import to fail")
	}
	list, err = repo.List(ctx)
	if err != nil || len(list) != 3 {
		t.Fatalf("failed import must roll back: %v len=%d", err, len(list))
	}
}
