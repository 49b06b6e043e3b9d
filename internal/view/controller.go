package view

import (
	"context"
	"errors"
	"sync"

	"issuedeck-cli/internal/api"
	"issuedeck-cli/internal/model"
	"issuedeck-cli/internal/perm"
	"issuedeck-cli/internal/query"
	"issuedeck-cli/internal/session"
)

// Phase is the controller's fetch lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseError
)

var (
	ErrNotAuthenticated = errors.New("log in to perform this action")
	ErrForbidden        = errors.New("only the author or an admin may do this")
	ErrNotDisplayed     = errors.New("item is not on the current page")
)

// Resource is any server-owned entity the controller can page over.
type Resource interface {
	ResourceID() int
	ResourceAuthorID() int
}

// Ops wires a controller to the gateway endpoints for one resource type.
// P is the create/update payload type.
type Ops[T Resource, P any] struct {
	Fetch  func(ctx context.Context, q query.State) (model.Page[T], error)
	Create func(ctx context.Context, payload P) (T, error)
	Update func(ctx context.Context, id int, payload P) (T, error)
	Delete func(ctx context.Context, id int) error
}

// Controller owns one paginated, filtered view of a server collection: the
// current query state, the fetched page window, and the fetch lifecycle.
// It works for any resource type (issues, comments, and whatever comes next).
//
// Every query change arms a new fetch version; a response is applied only if
// its version is still current, so a slow stale response can never clobber a
// fresher one. While a fetch is in flight the previous page stays visible.
type Controller[T Resource, P any] struct {
	mu      sync.Mutex
	session *session.Store
	ops     Ops[T, P]

	q       query.State
	version uint64
	phase   Phase
	page    model.Page[T]
	err     error

	// optimisticAppend enables the local append-then-reload shortcut on
	// create. Only sub-resources (comments) opt in; top-level collections
	// reload so server ordering and totals stay authoritative.
	optimisticAppend bool
}

func New[T Resource, P any](sess *session.Store, ops Ops[T, P], initial query.State) *Controller[T, P] {
	return &Controller[T, P]{session: sess, ops: ops, q: initial}
}

// WithOptimisticAppend enables local append on create (comment threads).
func (c *Controller[T, P]) WithOptimisticAppend() *Controller[T, P] {
	c.optimisticAppend = true
	return c
}

func (c *Controller[T, P]) Query() query.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q
}

func (c *Controller[T, P]) Page() model.Page[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

func (c *Controller[T, P]) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Controller[T, P]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// SetQuery merges a partial update into the query state and arms a new
// fetch version. It performs no I/O itself: the query change is what drives
// the fetch, keeping the query state the single source of truth. The caller
// runs Load (directly or as a tea.Cmd) with the returned snapshot.
func (c *Controller[T, P]) SetQuery(partial map[string]string) (query.State, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.q = c.q.Merge(partial)
	return c.armLocked()
}

// Navigate replaces the query state wholesale (URL-driven navigation).
func (c *Controller[T, P]) Navigate(q query.State) (query.State, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.q = q
	return c.armLocked()
}

// Reload arms a new fetch for the current query state.
func (c *Controller[T, P]) Reload() (query.State, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.armLocked()
}

func (c *Controller[T, P]) armLocked() (query.State, uint64) {
	c.version++
	c.phase = PhaseLoading
	c.err = nil
	// c.page intentionally kept: the previous result stays visible while
	// loading.
	return c.q, c.version
}

// Load runs the fetch for an armed version and applies the result. It
// reports whether the result was applied (false when a newer version
// superseded it while the fetch was in flight).
func (c *Controller[T, P]) Load(ctx context.Context, q query.State, version uint64) bool {
	page, err := c.ops.Fetch(ctx, q)
	return c.Apply(version, page, err)
}

// Apply installs a fetch result if its version is still current. Stale
// results are discarded. A failed fetch keeps the previous page visible and
// records the error alongside it.
func (c *Controller[T, P]) Apply(version uint64, page model.Page[T], err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if version != c.version {
		return false
	}
	if err != nil {
		c.phase = PhaseError
		c.err = err
		return true
	}
	c.phase = PhaseReady
	c.err = nil
	c.page = page
	return true
}

// Refresh is Reload+Load in one call (the synchronous CLI path).
func (c *Controller[T, P]) Refresh(ctx context.Context) error {
	q, v := c.Reload()
	c.Load(ctx, q, v)
	if c.Err() != nil {
		return c.Err()
	}
	return nil
}

func (c *Controller[T, P]) find(id int) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.page.Data {
		if item.ResourceID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (c *Controller[T, P]) removeLocked(id int) {
	kept := c.page.Data[:0]
	removed := 0
	for _, item := range c.page.Data {
		if item.ResourceID() == id {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	c.page.Data = kept
	if c.page.TotalCount >= removed {
		c.page.TotalCount -= removed
	}
}

// Create posts a new resource. It requires an authenticated principal and,
// on success, reloads the current page rather than guessing where the server
// ordered the new item; a reload is needed anyway to keep the total count
// honest. With optimistic append enabled the item is shown immediately and
// the reload still follows.
func (c *Controller[T, P]) Create(ctx context.Context, payload P) (T, error) {
	var zero T
	if c.session.Principal() == nil {
		return zero, ErrNotAuthenticated
	}
	created, err := c.ops.Create(ctx, payload)
	if err != nil {
		return zero, err
	}
	if c.optimisticAppend {
		c.mu.Lock()
		c.page.Data = append(c.page.Data, created)
		c.page.TotalCount++
		c.mu.Unlock()
	}
	q, v := c.Reload()
	c.Load(ctx, q, v)
	return created, nil
}

// Update patches a resource on the current page. The author-or-admin gate
// runs before any network call; on success the local copy is replaced with
// the server's response (never a client-side merge, so derived fields like
// updated_at can't drift). A 404 heals the page: the item is gone upstream,
// so it is removed locally and the error still returned for surfacing.
func (c *Controller[T, P]) Update(ctx context.Context, id int, payload P) (T, error) {
	var zero T
	item, ok := c.find(id)
	if !ok {
		return zero, ErrNotDisplayed
	}
	if c.session.Principal() == nil {
		return zero, ErrNotAuthenticated
	}
	if !perm.CanMutate(c.session.Principal(), item.ResourceAuthorID()) {
		return zero, ErrForbidden
	}

	updated, err := c.ops.Update(ctx, id, payload)
	if err != nil {
		if api.IsNotFound(err) {
			c.mu.Lock()
			c.removeLocked(id)
			c.mu.Unlock()
		}
		return zero, err
	}

	c.mu.Lock()
	for i, existing := range c.page.Data {
		if existing.ResourceID() == id {
			c.page.Data[i] = updated
			break
		}
	}
	c.mu.Unlock()
	return updated, nil
}

// Delete removes a resource. The item leaves the local page only after the
// server confirms; a 404 counts as confirmation from another session
// (stale-read healing) and is not an error for the caller.
func (c *Controller[T, P]) Delete(ctx context.Context, id int) error {
	item, ok := c.find(id)
	if !ok {
		return ErrNotDisplayed
	}
	if c.session.Principal() == nil {
		return ErrNotAuthenticated
	}
	if !perm.CanMutate(c.session.Principal(), item.ResourceAuthorID()) {
		return ErrForbidden
	}

	if err := c.ops.Delete(ctx, id); err != nil && !api.IsNotFound(err) {
		return err
	}
	c.mu.Lock()
	c.removeLocked(id)
	c.mu.Unlock()
	return nil
}
