package cache

import (
	"context"
	"path/filepath"
	"testing"

	"issuedeck-cli/internal/model"
	"issuedeck-cli/internal/query"

	"github.com/google/go-cmp/cmp"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(context.Background(), filepath.Join(t.TempDir(), "snapshot.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestTaxonomySnapshotRoundTrip(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	want := []model.TaxonomyEntity{{ID: 1, Name: "ui", Color: "#aaa"}, {ID: 2, Name: "bug", Color: "#bbb"}}
	if err := c.SaveTaxonomy(ctx, "tags", want); err != nil {
		t.Fatalf("SaveTaxonomy: %v", err)
	}
	got, err := c.LoadTaxonomy(ctx, "tags")
	if err != nil {
		t.Fatalf("LoadTaxonomy: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("taxonomy mismatch (-want +got):\n%s", diff)
	}

	// Replace-all: a second save drops stale rows.
	if err := c.SaveTaxonomy(ctx, "tags", want[:1]); err != nil {
		t.Fatalf("SaveTaxonomy: %v", err)
	}
	got, err = c.LoadTaxonomy(ctx, "tags")
	if err != nil {
		t.Fatalf("LoadTaxonomy: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("stale taxonomy rows survived: %+v", got)
	}

	// Kinds are isolated.
	if got, err := c.LoadTaxonomy(ctx, "statuses"); err != nil || len(got) != 0 {
		t.Fatalf("statuses = %+v, %v", got, err)
	}
}

func TestPageSnapshotRoundTrip(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	q := query.Default(5).WithFilter(query.KeyStatus, "2")
	want := model.Page[model.Issue]{
		Data:       []model.Issue{{ID: 1, Title: "Bug A"}},
		TotalCount: 12,
		Skip:       0,
		Limit:      5,
	}
	if err := SavePage(ctx, c, "issues", q, want); err != nil {
		t.Fatalf("SavePage: %v", err)
	}

	got, ok, err := LoadPage[model.Issue](ctx, c, "issues", q)
	if err != nil || !ok {
		t.Fatalf("LoadPage: ok=%v err=%v", ok, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("page mismatch (-want +got):\n%s", diff)
	}

	// A different query state is a different snapshot key.
	if _, ok, err := LoadPage[model.Issue](ctx, c, "issues", q.Next()); err != nil || ok {
		t.Fatalf("unexpected hit for different query: ok=%v err=%v", ok, err)
	}
}
