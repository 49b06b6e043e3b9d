package taxonomy

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"issuedeck-cli/internal/api"
	"issuedeck-cli/internal/model"
	"issuedeck-cli/internal/session"
)

type fakeTaxonomy struct {
	kind      api.TaxonomyKind
	entities  []model.TaxonomyEntity
	deleteErr map[int]error
	deletes   int
	creates   int
}

func (f *fakeTaxonomy) Kind() api.TaxonomyKind { return f.kind }

func (f *fakeTaxonomy) List(ctx context.Context) ([]model.TaxonomyEntity, error) {
	return f.entities, nil
}

func (f *fakeTaxonomy) Create(ctx context.Context, in api.TaxonomyInput) (model.TaxonomyEntity, error) {
	f.creates++
	return model.TaxonomyEntity{ID: 100, Name: in.Name, Color: in.Color}, nil
}

func (f *fakeTaxonomy) Update(ctx context.Context, id int, in api.TaxonomyInput) (model.TaxonomyEntity, error) {
	return model.TaxonomyEntity{ID: id, Name: in.Name, Color: in.Color}, nil
}

func (f *fakeTaxonomy) Delete(ctx context.Context, id int) error {
	f.deletes++
	if err, ok := f.deleteErr[id]; ok {
		return err
	}
	return nil
}

func adminSession(t *testing.T) *session.Store {
	t.Helper()
	s, err := session.OpenDir(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDir: %v", err)
	}
	if err := s.Login(model.Principal{ID: 1, Name: "root", Role: model.RoleAdmin}, "tok"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	return s
}

func memberSession(t *testing.T) *session.Store {
	t.Helper()
	s, err := session.OpenDir(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDir: %v", err)
	}
	if err := s.Login(model.Principal{ID: 2, Name: "ada", Role: model.RoleMember}, "tok"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	return s
}

func TestDeleteConflictKeepsEntityAndListsAffected(t *testing.T) {
	conflict := &api.ConflictError{
		StatusError: api.StatusError{
			StatusCode: http.StatusConflict,
			ErrText:    "Cannot delete, in use",
			Message:    "status is referenced",
		},
		AffectedIssues: []model.AffectedIssue{{ID: 7, Title: "Bug A"}, {ID: 9, Title: "Bug B"}},
	}
	f := &fakeTaxonomy{
		kind:      api.KindStatuses,
		entities:  []model.TaxonomyEntity{{ID: 3, Name: "Closed"}},
		deleteErr: map[int]error{3: conflict},
	}
	a := NewAdmin(adminSession(t), f)
	if err := a.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if err := a.RequestDelete(3); err != nil {
		t.Fatalf("RequestDelete: %v", err)
	}
	err := a.ConfirmDelete(context.Background())
	if _, ok := api.AsConflict(err); !ok {
		t.Fatalf("expected conflict; got %v", err)
	}

	if len(a.Entities()) != 1 {
		t.Fatalf("conflicted entity must stay in the list")
	}
	c := a.Conflict()
	if c == nil || len(c.Affected) != 2 {
		t.Fatalf("conflict = %+v; want both affected issues", c)
	}
	if c.Affected[0].Title != "Bug A" || c.Affected[1].Title != "Bug B" {
		t.Fatalf("affected issues must carry titles: %+v", c.Affected)
	}
	if a.Pending() == nil {
		t.Fatalf("delete must stay armed for retry after a conflict")
	}

	// References resolved externally; the same confirmation now succeeds.
	delete(f.deleteErr, 3)
	if err := a.ConfirmDelete(context.Background()); err != nil {
		t.Fatalf("retry after un-referencing: %v", err)
	}
	if len(a.Entities()) != 0 {
		t.Fatalf("successful retry must remove the entity")
	}
	if a.Pending() != nil || a.Conflict() != nil {
		t.Fatalf("successful delete must clear pending state and conflict")
	}
}

func TestDeleteUnreferencedEntity(t *testing.T) {
	f := &fakeTaxonomy{
		kind:     api.KindTags,
		entities: []model.TaxonomyEntity{{ID: 1, Name: "ui", Color: "#aaa"}, {ID: 2, Name: "bug", Color: "#bbb"}},
	}
	a := NewAdmin(adminSession(t), f)
	if err := a.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if err := a.RequestDelete(1); err != nil {
		t.Fatalf("RequestDelete: %v", err)
	}
	if err := a.ConfirmDelete(context.Background()); err != nil {
		t.Fatalf("ConfirmDelete: %v", err)
	}
	got := a.Entities()
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("entities after delete = %+v", got)
	}
	if a.Conflict() != nil {
		t.Fatalf("clean delete must produce zero affected entries")
	}
}

func TestDelete404HealsList(t *testing.T) {
	f := &fakeTaxonomy{
		kind:      api.KindPriorities,
		entities:  []model.TaxonomyEntity{{ID: 5, Name: "High"}},
		deleteErr: map[int]error{5: &api.StatusError{StatusCode: http.StatusNotFound}},
	}
	a := NewAdmin(adminSession(t), f)
	if err := a.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if err := a.RequestDelete(5); err != nil {
		t.Fatalf("RequestDelete: %v", err)
	}
	if err := a.ConfirmDelete(context.Background()); err != nil {
		t.Fatalf("already-deleted entity must heal silently; got %v", err)
	}
	if len(a.Entities()) != 0 {
		t.Fatalf("healed list must drop the entity")
	}
}

func TestAdminGateBlocksMembersWithoutNetworkCall(t *testing.T) {
	f := &fakeTaxonomy{kind: api.KindTags, entities: []model.TaxonomyEntity{{ID: 1, Name: "ui"}}}
	a := NewAdmin(memberSession(t), f)
	if err := a.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if _, err := a.Create(context.Background(), api.TaxonomyInput{Name: "x", Color: "#fff"}); !errors.Is(err, ErrAdminOnly) {
		t.Fatalf("Create gate: %v", err)
	}
	if err := a.RequestDelete(1); !errors.Is(err, ErrAdminOnly) {
		t.Fatalf("RequestDelete gate: %v", err)
	}
	if f.creates != 0 || f.deletes != 0 {
		t.Fatalf("gated admin ops must not reach the network")
	}
}

func TestValidationRejectsEmptySubmissions(t *testing.T) {
	f := &fakeTaxonomy{kind: api.KindTags}
	a := NewAdmin(adminSession(t), f)

	if _, err := a.Create(context.Background(), api.TaxonomyInput{Name: "  ", Color: "#fff"}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("empty name: %v", err)
	}
	if _, err := a.Create(context.Background(), api.TaxonomyInput{Name: "ui"}); !errors.Is(err, ErrColorRequired) {
		t.Fatalf("tags need a color: %v", err)
	}
	if f.creates != 0 {
		t.Fatalf("invalid submissions must not reach the network")
	}

	// Statuses have no color field; only the name is required.
	fs := &fakeTaxonomy{kind: api.KindStatuses}
	as := NewAdmin(adminSession(t), fs)
	if _, err := as.Create(context.Background(), api.TaxonomyInput{Name: "Open"}); err != nil {
		t.Fatalf("status create: %v", err)
	}
}

func TestConfirmWithoutRequestFails(t *testing.T) {
	a := NewAdmin(adminSession(t), &fakeTaxonomy{kind: api.KindTags})
	if err := a.ConfirmDelete(context.Background()); !errors.Is(err, ErrNoPendingDel) {
		t.Fatalf("err = %v; want ErrNoPendingDel", err)
	}
}
