package filters

import (
	"strconv"
	"strings"

	"issuedeck-cli/internal/model"
	"issuedeck-cli/internal/query"
)

// Chip is one active filter rendered for humans: the query key it came from
// and a resolved display value.
type Chip struct {
	Key     string
	Label   string
	Value   string
	Display string
}

// Lookups resolves filter ids to names. Stale entries (an id whose entity
// was deleted concurrently) simply fail to resolve.
type Lookups struct {
	Statuses   []model.TaxonomyEntity
	Priorities []model.TaxonomyEntity
	Tags       []model.TaxonomyEntity
	Users      []model.Principal
}

func findEntity(list []model.TaxonomyEntity, id int) (model.TaxonomyEntity, bool) {
	for _, e := range list {
		if e.ID == id {
			return e, true
		}
	}
	return model.TaxonomyEntity{}, false
}

// Present derives the chip list from the query state. Pure: same inputs,
// same chips. A filter whose referenced entity cannot be resolved is dropped
// rather than shown as a dangling id.
func Present(q query.State, lk Lookups) []Chip {
	var chips []Chip

	if id, ok := q.StatusID(); ok {
		if e, ok := findEntity(lk.Statuses, id); ok {
			chips = append(chips, Chip{Key: query.KeyStatus, Label: "Status", Value: strconv.Itoa(id), Display: e.Name})
		}
	}
	if id, ok := q.PriorityID(); ok {
		if e, ok := findEntity(lk.Priorities, id); ok {
			chips = append(chips, Chip{Key: query.KeyPriority, Label: "Priority", Value: strconv.Itoa(id), Display: e.Name})
		}
	}
	if ids := q.TagIDs(); len(ids) > 0 {
		var names []string
		for _, id := range ids {
			if e, ok := findEntity(lk.Tags, id); ok {
				names = append(names, e.Name)
			}
		}
		if len(names) > 0 {
			chips = append(chips, Chip{Key: query.KeyTags, Label: "Tags", Value: q.Filters[query.KeyTags], Display: strings.Join(names, ", ")})
		}
	}
	if id, ok := q.AuthorID(); ok {
		for _, u := range lk.Users {
			if u.ID == id {
				chips = append(chips, Chip{Key: query.KeyAuthorID, Label: "Author", Value: strconv.Itoa(id), Display: u.Name})
				break
			}
		}
	}
	if name := q.AuthorName(); name != "" {
		chips = append(chips, Chip{Key: query.KeyAuthorName, Label: "Author", Value: name, Display: name})
	}
	if v := q.Start(); v != "" {
		chips = append(chips, Chip{Key: query.KeyStart, Label: "From", Value: v, Display: v})
	}
	if v := q.End(); v != "" {
		chips = append(chips, Chip{Key: query.KeyEnd, Label: "Until", Value: v, Display: v})
	}
	return chips
}

// Remove drops one filter. Skip resets with it so a narrowed result set
// never leaves the view out of range.
func Remove(q query.State, key string) query.State {
	return q.WithoutFilter(key)
}

// ClearAll resets to the default query state, which renders as a clean URL
// with no query string.
func ClearAll(defaultLimit int) query.State {
	return query.Default(defaultLimit)
}
