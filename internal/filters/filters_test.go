package filters

import (
	"testing"

	"issuedeck-cli/internal/model"
	"issuedeck-cli/internal/query"
)

func lookups() Lookups {
	return Lookups{
		Statuses:   []model.TaxonomyEntity{{ID: 2, Name: "Open"}, {ID: 3, Name: "Closed"}},
		Priorities: []model.TaxonomyEntity{{ID: 1, Name: "High"}},
		Tags:       []model.TaxonomyEntity{{ID: 4, Name: "ui"}, {ID: 5, Name: "bug"}},
		Users:      []model.Principal{{ID: 7, Name: "ada"}},
	}
}

func TestPresentResolvesNames(t *testing.T) {
	q := query.Default(5).
		WithFilter(query.KeyStatus, "3").
		WithFilter(query.KeyTags, "4,5").
		WithFilter(query.KeyAuthorID, "7")

	chips := Present(q, lookups())
	if len(chips) != 3 {
		t.Fatalf("chips = %+v", chips)
	}
	byKey := map[string]Chip{}
	for _, c := range chips {
		byKey[c.Key] = c
	}
	if byKey[query.KeyStatus].Display != "Closed" {
		t.Fatalf("status chip = %+v", byKey[query.KeyStatus])
	}
	if byKey[query.KeyTags].Display != "ui, bug" {
		t.Fatalf("tags chip = %+v", byKey[query.KeyTags])
	}
	if byKey[query.KeyAuthorID].Display != "ada" {
		t.Fatalf("author chip = %+v", byKey[query.KeyAuthorID])
	}
}

func TestUnresolvableFiltersAreDropped(t *testing.T) {
	q := query.Default(5).
		WithFilter(query.KeyStatus, "99").
		WithFilter(query.KeyPriority, "99").
		WithFilter(query.KeyTags, "99")

	if chips := Present(q, lookups()); len(chips) != 0 {
		t.Fatalf("dangling ids must not render: %+v", chips)
	}

	// Partially resolvable tag list keeps only resolved names.
	q2 := query.Default(5).WithFilter(query.KeyTags, "4,99")
	chips := Present(q2, lookups())
	if len(chips) != 1 || chips[0].Display != "ui" {
		t.Fatalf("chips = %+v", chips)
	}
}

func TestVerbatimFilters(t *testing.T) {
	q := query.Default(5).
		WithFilter(query.KeyAuthorName, "grace").
		WithFilter(query.KeyStart, "2026-01-01").
		WithFilter(query.KeyEnd, "2026-02-01")
	chips := Present(q, Lookups{})
	if len(chips) != 3 {
		t.Fatalf("chips = %+v", chips)
	}
}

func TestRemoveResetsSkip(t *testing.T) {
	q := query.Default(5).WithFilter(query.KeyStatus, "2").WithSkip(10)
	got := Remove(q, query.KeyStatus)
	if got.Skip != 0 {
		t.Fatalf("skip = %d; want 0", got.Skip)
	}
	if _, ok := got.Filters[query.KeyStatus]; ok {
		t.Fatalf("filter must be removed")
	}
}

func TestClearAllYieldsCleanURL(t *testing.T) {
	got := ClearAll(5)
	if s := got.QueryString(5); s != "" {
		t.Fatalf("clear-all must be representable as no query string; got %q", s)
	}
}
