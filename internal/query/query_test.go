package query

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	raw := url.Values{}
	raw.Set("status_id", "3")
	raw.Set("priority_id", "1")
	raw.Set("tags", "2,5,9")
	raw.Set("author_name", "ada")
	raw.Set("start", "2026-01-01T00:00:00Z")
	raw.Set("skip", "10")
	raw.Set("limit", "20")
	// Unknown key must survive the round trip untouched.
	raw.Set("milestone_id", "7")

	q := Decode(raw, 5)
	again := Decode(q.Encode(), 5)
	if diff := cmp.Diff(q, again); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if got := again.Filters["milestone_id"]; got != "7" {
		t.Fatalf("unknown key dropped; got %q", got)
	}
}

func TestDecodeDefaults(t *testing.T) {
	cases := []struct {
		name      string
		raw       string
		wantSkip  int
		wantLimit int
	}{
		{"empty", "", 0, 5},
		{"garbage", "skip=abc&limit=xyz", 0, 5},
		{"negative skip", "skip=-3&limit=0", 0, 5},
		{"valid", "skip=15&limit=10", 15, 10},
	}
	for _, tc := range cases {
		values, err := url.ParseQuery(tc.raw)
		if err != nil {
			t.Fatalf("%s: parse: %v", tc.name, err)
		}
		q := Decode(values, 5)
		if q.Skip != tc.wantSkip || q.Limit != tc.wantLimit {
			t.Fatalf("%s: got skip=%d limit=%d; want skip=%d limit=%d",
				tc.name, q.Skip, q.Limit, tc.wantSkip, tc.wantLimit)
		}
	}
}

func TestFilterChangeResetsSkip(t *testing.T) {
	q := Default(5).WithSkip(10)

	if got := q.WithFilter(KeyStatus, "2").Skip; got != 0 {
		t.Fatalf("WithFilter: skip=%d; want 0", got)
	}
	if got := q.WithFilter(KeyStatus, "2").WithoutFilter(KeyStatus).Skip; got != 0 {
		t.Fatalf("WithoutFilter: skip=%d; want 0", got)
	}
	if got := q.Merge(map[string]string{KeyTags: "1,2"}).Skip; got != 0 {
		t.Fatalf("Merge filter: skip=%d; want 0", got)
	}
	// Pagination-only merges keep the filter state and move only the window.
	withFilter := q.WithFilter(KeyStatus, "2")
	paged := withFilter.Merge(map[string]string{KeySkip: "5"})
	if paged.Skip != 5 {
		t.Fatalf("Merge skip: skip=%d; want 5", paged.Skip)
	}
	if paged.Filters[KeyStatus] != "2" {
		t.Fatalf("Merge skip dropped filter: %v", paged.Filters)
	}
}

func TestImmutability(t *testing.T) {
	q := Default(5).WithFilter(KeyStatus, "2")
	_ = q.WithFilter(KeyStatus, "9")
	_ = q.WithSkip(25)
	if q.Filters[KeyStatus] != "2" || q.Skip != 0 {
		t.Fatalf("state mutated in place: %+v", q)
	}
}

func TestQueryStringScenario(t *testing.T) {
	q := State{Skip: 0, Limit: 5, Filters: map[string]string{KeyStatus: "2"}}
	if got := q.QueryString(5); got != "status_id=2&skip=0&limit=5" {
		t.Fatalf("QueryString = %q", got)
	}
	values, err := url.ParseQuery(q.QueryString(5))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(q, Decode(values, 5)); diff != "" {
		t.Fatalf("decode(encode(q)) mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultStateHasEmptyQueryString(t *testing.T) {
	if got := Default(5).QueryString(5); got != "" {
		t.Fatalf("default query string = %q; want empty", got)
	}
	if got := Default(5).WithSkip(5).QueryString(5); got == "" {
		t.Fatalf("paged state must not collapse to empty query string")
	}
}

func TestPaginationScenario(t *testing.T) {
	// total_count=12, limit=5: pages at skip 0, 5, 10, then Next disabled.
	const total = 12
	q := Default(5)
	if !q.HasNext(total) {
		t.Fatalf("expected next from skip=0")
	}
	q = q.Next()
	if q.Skip != 5 {
		t.Fatalf("skip=%d; want 5", q.Skip)
	}
	q = q.Next()
	if q.Skip != 10 {
		t.Fatalf("skip=%d; want 10", q.Skip)
	}
	if q.HasNext(total) {
		t.Fatalf("next must be disabled once skip+limit >= total")
	}
	if !q.HasPrev() {
		t.Fatalf("expected prev from skip=10")
	}
	if got := q.Prev().Prev().Prev().Skip; got != 0 {
		t.Fatalf("prev clamps at 0; got %d", got)
	}
}

func TestTagIDs(t *testing.T) {
	q := Default(5).WithFilter(KeyTags, "2, 5,x,9")
	if diff := cmp.Diff([]int{2, 5, 9}, q.TagIDs()); diff != "" {
		t.Fatalf("TagIDs mismatch (-want +got):\n%s", diff)
	}
	if got := Default(5).TagIDs(); got != nil {
		t.Fatalf("TagIDs on empty state = %v; want nil", got)
	}
}
