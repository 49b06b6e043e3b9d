package api

import (
	"context"
	"fmt"
	"net/http"

	"issuedeck-cli/internal/model"
)

// TaxonomyKind selects one of the shared reference collections.
type TaxonomyKind string

const (
	KindTags       TaxonomyKind = "tags"
	KindStatuses   TaxonomyKind = "statuses"
	KindPriorities TaxonomyKind = "priorities"
)

// TaxonomyInput is the create/update payload for a taxonomy entity.
type TaxonomyInput struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// TaxonomyClient is the CRUD surface over one taxonomy kind. Delete returns
// a *ConflictError while issues still reference the entity.
type TaxonomyClient interface {
	Kind() TaxonomyKind
	List(ctx context.Context) ([]model.TaxonomyEntity, error)
	Create(ctx context.Context, in TaxonomyInput) (model.TaxonomyEntity, error)
	Update(ctx context.Context, id int, in TaxonomyInput) (model.TaxonomyEntity, error)
	Delete(ctx context.Context, id int) error
}

// Taxonomy returns the client for one taxonomy kind.
func (c *Client) Taxonomy(kind TaxonomyKind) TaxonomyClient {
	return taxonomyClient{c: c, kind: kind}
}

type taxonomyClient struct {
	c    *Client
	kind TaxonomyKind
}

func (t taxonomyClient) Kind() TaxonomyKind { return t.kind }

func (t taxonomyClient) path() string { return "/api/" + string(t.kind) }

func (t taxonomyClient) List(ctx context.Context) ([]model.TaxonomyEntity, error) {
	var out []model.TaxonomyEntity
	err := t.c.do(ctx, http.MethodGet, t.path(), nil, nil, &out)
	return out, err
}

func (t taxonomyClient) Create(ctx context.Context, in TaxonomyInput) (model.TaxonomyEntity, error) {
	var out model.TaxonomyEntity
	err := t.c.do(ctx, http.MethodPost, t.path(), nil, in, &out)
	return out, err
}

func (t taxonomyClient) Update(ctx context.Context, id int, in TaxonomyInput) (model.TaxonomyEntity, error) {
	var out model.TaxonomyEntity
	err := t.c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", t.path(), id), nil, in, &out)
	return out, err
}

func (t taxonomyClient) Delete(ctx context.Context, id int) error {
	return t.c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", t.path(), id), nil, nil, nil)
}
