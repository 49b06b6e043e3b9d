package taxonomy

import (
	"context"
	"errors"
	"strings"
	"sync"

	"issuedeck-cli/internal/api"
	"issuedeck-cli/internal/model"
	"issuedeck-cli/internal/perm"
	"issuedeck-cli/internal/session"
)

var (
	ErrAdminOnly     = errors.New("admin role required")
	ErrNameRequired  = errors.New("name is required")
	ErrColorRequired = errors.New("color is required")
	ErrNotFound      = errors.New("entity not found")
	ErrNoPendingDel  = errors.New("no delete pending")
)

// Conflict is a refused delete: the entity stayed, and these issues still
// reference it.
type Conflict struct {
	Entity   model.TaxonomyEntity
	Message  string
	Affected []model.AffectedIssue
}

// Admin manages one shared taxonomy (tags, statuses or priorities). Deletes
// run a two-step protocol: RequestDelete captures the target, ConfirmDelete
// performs the call. A conflict keeps the target armed so the user can
// resolve the references elsewhere and retry the same delete.
//
// The server is the authority on permissions; the local gate only stops
// requests that are certain to be refused.
type Admin struct {
	mu       sync.Mutex
	session  *session.Store
	client   api.TaxonomyClient
	entities []model.TaxonomyEntity
	pending  *model.TaxonomyEntity
	conflict *Conflict
}

func NewAdmin(sess *session.Store, client api.TaxonomyClient) *Admin {
	return &Admin{session: sess, client: client}
}

func (a *Admin) Kind() api.TaxonomyKind { return a.client.Kind() }

func (a *Admin) Entities() []model.TaxonomyEntity {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]model.TaxonomyEntity, len(a.entities))
	copy(out, a.entities)
	return out
}

// Pending returns the delete target awaiting confirmation, if any.
func (a *Admin) Pending() *model.TaxonomyEntity {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending == nil {
		return nil
	}
	e := *a.pending
	return &e
}

// Conflict returns the last refused delete, if any.
func (a *Admin) Conflict() *Conflict {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.conflict == nil {
		return nil
	}
	c := *a.conflict
	return &c
}

func (a *Admin) gate() error {
	if !perm.CanAdminister(a.session.Principal()) {
		return ErrAdminOnly
	}
	return nil
}

// validate rejects empty submissions before they reach the gateway. The
// server's own rejection is still authoritative if it disagrees.
func (a *Admin) validate(in api.TaxonomyInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrNameRequired
	}
	if a.client.Kind() == api.KindTags && strings.TrimSpace(in.Color) == "" {
		return ErrColorRequired
	}
	return nil
}

// Refresh replaces the local list from the server.
func (a *Admin) Refresh(ctx context.Context) error {
	entities, err := a.client.List(ctx)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.entities = entities
	a.mu.Unlock()
	return nil
}

func (a *Admin) Create(ctx context.Context, in api.TaxonomyInput) (model.TaxonomyEntity, error) {
	if err := a.gate(); err != nil {
		return model.TaxonomyEntity{}, err
	}
	if err := a.validate(in); err != nil {
		return model.TaxonomyEntity{}, err
	}
	created, err := a.client.Create(ctx, in)
	if err != nil {
		return model.TaxonomyEntity{}, err
	}
	a.mu.Lock()
	a.entities = append(a.entities, created)
	a.mu.Unlock()
	return created, nil
}

func (a *Admin) Update(ctx context.Context, id int, in api.TaxonomyInput) (model.TaxonomyEntity, error) {
	if err := a.gate(); err != nil {
		return model.TaxonomyEntity{}, err
	}
	if err := a.validate(in); err != nil {
		return model.TaxonomyEntity{}, err
	}
	updated, err := a.client.Update(ctx, id, in)
	if err != nil {
		return model.TaxonomyEntity{}, err
	}
	a.mu.Lock()
	for i, e := range a.entities {
		if e.ID == id {
			a.entities[i] = updated
			break
		}
	}
	a.mu.Unlock()
	return updated, nil
}

// RequestDelete arms the two-step delete for an entity on the local list.
func (a *Admin) RequestDelete(id int) error {
	if err := a.gate(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, e := range a.entities {
		if e.ID == id {
			target := e
			a.pending = &target
			a.conflict = nil
			return nil
		}
	}
	return ErrNotFound
}

// CancelDelete disarms a pending delete and clears any conflict.
func (a *Admin) CancelDelete() {
	a.mu.Lock()
	a.pending = nil
	a.conflict = nil
	a.mu.Unlock()
}

// ConfirmDelete performs the armed delete.
//
// Success removes the entity locally. A conflict keeps the entity AND the
// pending target: the references may be resolved externally before the user
// retries, so the same confirmation can simply run again. A 404 means some
// other session already deleted it; the local list heals and the delete
// counts as done.
func (a *Admin) ConfirmDelete(ctx context.Context) error {
	if err := a.gate(); err != nil {
		return err
	}
	a.mu.Lock()
	pending := a.pending
	a.mu.Unlock()
	if pending == nil {
		return ErrNoPendingDel
	}

	err := a.client.Delete(ctx, pending.ID)
	if err == nil || api.IsNotFound(err) {
		a.mu.Lock()
		kept := a.entities[:0]
		for _, e := range a.entities {
			if e.ID != pending.ID {
				kept = append(kept, e)
			}
		}
		a.entities = kept
		a.pending = nil
		a.conflict = nil
		a.mu.Unlock()
		return nil
	}

	if ce, ok := api.AsConflict(err); ok {
		a.mu.Lock()
		a.conflict = &Conflict{
			Entity:   *pending,
			Message:  ce.Message,
			Affected: ce.AffectedIssues,
		}
		// pending stays armed for retry.
		a.mu.Unlock()
	}
	return err
}
