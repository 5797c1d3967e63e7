package governingbody

import (
	"context"
	"testing"

	"github.com/devesh457/nea-website/pkg/db/models"
	pkgerrors "github.com/devesh457/nea-website/pkg/errors"
	"github.com/google/uuid"
)

type stubRosterRepo struct {
	roster  []models.GoverningBodyMember
	updates map[uuid.UUID]map[string]any
}

func newStubRosterRepo() *stubRosterRepo {
	return &stubRosterRepo{updates: map[uuid.UUID]map[string]any{}}
}

func (s *stubRosterRepo) ListActive(ctx context.Context) ([]models.GoverningBodyMember, error) {
	var active []models.GoverningBodyMember
	for _, m := range s.roster {
		if m.IsActive {
			active = append(active, m)
		}
	}
	return active, nil
}

func (s *stubRosterRepo) ListAll(ctx context.Context) ([]models.GoverningBodyMember, error) {
	return s.roster, nil
}

func (s *stubRosterRepo) Create(ctx context.Context, member *models.GoverningBodyMember) (*models.GoverningBodyMember, error) {
	member.ID = uuid.New()
	s.roster = append(s.roster, *member)
	return member, nil
}

func (s *stubRosterRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates[id] = updates
	return nil
}

func TestUpsertCreatesMember(t *testing.T) {
	repo := newStubRosterRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	order := 2
	view, err := svc.Upsert(context.Background(), UpsertInput{
		Name:         "A. Sharma",
		Position:     "President",
		DisplayOrder: &order,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if view.ID == uuid.Nil {
		t.Fatal("expected new member to get an id")
	}
	if !view.IsActive {
		t.Fatal("expected new member to be active by default")
	}
	if view.DisplayOrder != 2 {
		t.Fatalf("expected display order 2 got %d", view.DisplayOrder)
	}
}

func TestUpsertPatchesExistingMember(t *testing.T) {
	repo := newStubRosterRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	id := uuid.New()
	inactive := false
	if _, err := svc.Upsert(context.Background(), UpsertInput{
		ID:       &id,
		Name:     "B. Verma",
		Position: "Secretary",
		IsActive: &inactive,
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	updates := repo.updates[id]
	if updates == nil {
		t.Fatal("expected an update for the member")
	}
	if updates["is_active"] != false {
		t.Fatalf("expected is_active=false update got %v", updates["is_active"])
	}
	if len(repo.roster) != 0 {
		t.Fatal("expected no new row when patching")
	}
}

func TestUpsertRequiresNameAndPosition(t *testing.T) {
	svc, err := NewService(newStubRosterRepo())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Upsert(context.Background(), UpsertInput{Name: "C. Rao"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestListActiveFiltersHiddenMembers(t *testing.T) {
	repo := newStubRosterRepo()
	repo.roster = []models.GoverningBodyMember{
		{ID: uuid.New(), Name: "Active", Position: "President", IsActive: true},
		{ID: uuid.New(), Name: "Hidden", Position: "Treasurer", IsActive: false},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	active, err := svc.ListActive(context.Background())
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].Name != "Active" {
		t.Fatalf("expected only the active member got %+v", active)
	}

	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected full roster got %d", len(all))
	}
}
