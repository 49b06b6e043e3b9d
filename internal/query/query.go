package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Recognized query keys. Everything else round-trips untouched so older
// clients keep newer servers' filter params intact in shared URLs.
const (
	KeySkip       = "skip"
	KeyLimit      = "limit"
	KeyStatus     = "status_id"
	KeyPriority   = "priority_id"
	KeyTags       = "tags"
	KeyAuthorID   = "author_id"
	KeyAuthorName = "author_name"
	KeyStart      = "start"
	KeyEnd        = "end"
)

// FilterKeys lists the recognized filter keys in presentation order.
var FilterKeys = []string{
	KeyStatus,
	KeyPriority,
	KeyTags,
	KeyAuthorID,
	KeyAuthorName,
	KeyStart,
	KeyEnd,
}

// State is the canonical, URL-serializable description of a collection view:
// pagination window plus filters. It is the single source of truth for what
// is displayed; values are never mutated in place, every change produces a
// new State.
type State struct {
	Skip  int
	Limit int

	// Filters holds filter keys (recognized or not). Never contains
	// skip/limit.
	Filters map[string]string
}

// Default is the empty view: no filters, first page.
func Default(limit int) State {
	return State{Skip: 0, Limit: limit, Filters: map[string]string{}}
}

// Decode parses URL query values into a State. Missing or non-numeric
// skip/limit fall back to 0 and defaultLimit rather than failing, so a
// mangled shared URL still renders the first page.
func Decode(values url.Values, defaultLimit int) State {
	s := Default(defaultLimit)
	for key, vs := range values {
		if len(vs) == 0 {
			continue
		}
		v := vs[0]
		switch key {
		case KeySkip:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= 0 {
				s.Skip = n
			}
		case KeyLimit:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
				s.Limit = n
			}
		default:
			if v != "" {
				s.Filters[key] = v
			}
		}
	}
	return s
}

// Encode is the inverse of Decode for every recognized field.
func (s State) Encode() url.Values {
	values := url.Values{}
	for k, v := range s.Filters {
		if v != "" {
			values.Set(k, v)
		}
	}
	values.Set(KeySkip, strconv.Itoa(s.Skip))
	values.Set(KeyLimit, strconv.Itoa(s.Limit))
	return values
}

// QueryString renders the state for a shareable URL: filters in sorted key
// order, then skip and limit. The default state renders as "" so clearing
// all filters yields a clean URL.
func (s State) QueryString(defaultLimit int) string {
	if s.IsDefault(defaultLimit) {
		return ""
	}
	keys := make([]string, 0, len(s.Filters))
	for k, v := range s.Filters {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(s.Filters[k]))
	}
	if b.Len() > 0 {
		b.WriteByte('&')
	}
	b.WriteString(KeySkip + "=" + strconv.Itoa(s.Skip))
	b.WriteString("&" + KeyLimit + "=" + strconv.Itoa(s.Limit))
	return b.String()
}

func (s State) IsDefault(defaultLimit int) bool {
	if s.Skip != 0 || s.Limit != defaultLimit {
		return false
	}
	for _, v := range s.Filters {
		if v != "" {
			return false
		}
	}
	return true
}

func (s State) clone() State {
	out := State{Skip: s.Skip, Limit: s.Limit, Filters: make(map[string]string, len(s.Filters))}
	for k, v := range s.Filters {
		out.Filters[k] = v
	}
	return out
}

// WithFilter sets (or, for an empty value, removes) a filter and resets skip
// to 0. A narrowed result set must never leave the view on an out-of-range
// page.
func (s State) WithFilter(key, value string) State {
	out := s.clone()
	out.Skip = 0
	if value == "" {
		delete(out.Filters, key)
	} else {
		out.Filters[key] = value
	}
	return out
}

// WithoutFilter removes a filter and resets skip to 0.
func (s State) WithoutFilter(key string) State {
	return s.WithFilter(key, "")
}

// WithSkip is a pagination action: it changes only the window offset.
func (s State) WithSkip(skip int) State {
	out := s.clone()
	if skip < 0 {
		skip = 0
	}
	out.Skip = skip
	return out
}

// WithLimit changes the page size. The offset is reset: an old skip is
// meaningless against a new window size.
func (s State) WithLimit(limit int) State {
	out := s.clone()
	if limit > 0 {
		out.Limit = limit
	}
	out.Skip = 0
	return out
}

// Merge applies a partial update. skip/limit entries adjust pagination; any
// other entry is a filter change and resets skip.
func (s State) Merge(partial map[string]string) State {
	out := s.clone()
	for key, value := range partial {
		switch key {
		case KeySkip:
			if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n >= 0 {
				out.Skip = n
			}
		case KeyLimit:
			if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n > 0 {
				out.Limit = n
			}
		default:
			out = out.WithFilter(key, value)
		}
	}
	return out
}

func (s State) Next() State {
	return s.WithSkip(s.Skip + s.Limit)
}

func (s State) Prev() State {
	return s.WithSkip(s.Skip - s.Limit)
}

func (s State) HasPrev() bool {
	return s.Skip > 0
}

func (s State) HasNext(totalCount int) bool {
	return s.Skip+s.Limit < totalCount
}

func (s State) filterInt(key string) (int, bool) {
	v, ok := s.Filters[key]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (s State) StatusID() (int, bool)   { return s.filterInt(KeyStatus) }
func (s State) PriorityID() (int, bool) { return s.filterInt(KeyPriority) }
func (s State) AuthorID() (int, bool)   { return s.filterInt(KeyAuthorID) }

func (s State) AuthorName() string { return s.Filters[KeyAuthorName] }
func (s State) Start() string      { return s.Filters[KeyStart] }
func (s State) End() string        { return s.Filters[KeyEnd] }

// TagIDs parses the comma-joined tag id list. Non-numeric entries are
// skipped.
func (s State) TagIDs() []int {
	v, ok := s.Filters[KeyTags]
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	var out []int
	for _, part := range strings.Split(v, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil && n > 0 {
			out = append(out, n)
		}
	}
	return out
}
