package availability

import (
	"context"
	"testing"

	"github.com/devesh457/nea-website/pkg/db/models"
	pkgerrors "github.com/devesh457/nea-website/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubAvailabilityRepo struct {
	records map[uuid.UUID]*models.GuestHouseAvailability
	updates map[string]any
}

func newStubAvailabilityRepo(records ...*models.GuestHouseAvailability) *stubAvailabilityRepo {
	repo := &stubAvailabilityRepo{records: make(map[uuid.UUID]*models.GuestHouseAvailability)}
	for _, record := range records {
		repo.records[record.ID] = record
	}
	return repo
}

func (s *stubAvailabilityRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubAvailabilityRepo) ListActive(ctx context.Context, filter ListFilter) ([]models.GuestHouseAvailability, error) {
	out := make([]models.GuestHouseAvailability, 0)
	for _, record := range s.records {
		if !record.IsActive {
			continue
		}
		if filter.GuestHouse != "" && record.GuestHouse != filter.GuestHouse {
			continue
		}
		out = append(out, *record)
	}
	return out, nil
}

func (s *stubAvailabilityRepo) ListAll(ctx context.Context) ([]models.GuestHouseAvailability, error) {
	out := make([]models.GuestHouseAvailability, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, *record)
	}
	return out, nil
}

func (s *stubAvailabilityRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.GuestHouseAvailability, error) {
	record, ok := s.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return record, nil
}

func (s *stubAvailabilityRepo) FindByRoom(ctx context.Context, guestHouse, roomType string) (*models.GuestHouseAvailability, error) {
	for _, record := range s.records {
		if record.GuestHouse == guestHouse && record.RoomType == roomType {
			return record, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAvailabilityRepo) Create(ctx context.Context, record *models.GuestHouseAvailability) (*models.GuestHouseAvailability, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	s.records[record.ID] = record
	return record, nil
}

func (s *stubAvailabilityRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	record, ok := s.records[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.updates = updates
	for key, value := range updates {
		switch key {
		case "total_rooms":
			if v, ok := value.(int); ok {
				record.TotalRooms = v
			}
		case "available_rooms":
			if v, ok := value.(int); ok {
				record.AvailableRooms = v
			}
		case "is_active":
			if v, ok := value.(bool); ok {
				record.IsActive = v
			}
		case "price_per_night":
			if v, ok := value.(decimal.Decimal); ok {
				record.PricePerNight = v
			}
		}
	}
	return nil
}

func (s *stubAvailabilityRepo) AdjustAvailable(ctx context.Context, guestHouse, roomType string, delta int) error {
	return nil
}

func TestUpsertCreatesWithDefaultAvailable(t *testing.T) {
	repo := newStubAvailabilityRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}

	view, err := svc.Upsert(context.Background(), UpsertInput{
		GuestHouse:    "Dehradun House",
		RoomType:      "Standard",
		Location:      "Dehradun",
		TotalRooms:    5,
		PricePerNight: decimal.NewFromInt(1200),
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if view.AvailableRooms != 5 {
		t.Fatalf("available rooms should default to total, got %d", view.AvailableRooms)
	}
	if !view.IsActive {
		t.Fatal("new records should default to active")
	}
}

func TestUpsertUpdatesExisting(t *testing.T) {
	existing := &models.GuestHouseAvailability{
		ID:             uuid.New(),
		GuestHouse:     "Dehradun House",
		RoomType:       "Standard",
		Location:       "Dehradun",
		TotalRooms:     5,
		AvailableRooms: 5,
		PricePerNight:  decimal.NewFromInt(1200),
		IsActive:       true,
	}
	repo := newStubAvailabilityRepo(existing)
	svc, _ := NewService(repo)

	available := 2
	inactive := false
	view, err := svc.Upsert(context.Background(), UpsertInput{
		GuestHouse:     "Dehradun House",
		RoomType:       "Standard",
		TotalRooms:     6,
		AvailableRooms: &available,
		PricePerNight:  decimal.NewFromInt(1500),
		IsActive:       &inactive,
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if view.TotalRooms != 6 || view.AvailableRooms != 2 {
		t.Fatalf("unexpected counts %d/%d", view.AvailableRooms, view.TotalRooms)
	}
	if view.IsActive {
		t.Fatal("expected record deactivated")
	}
	if len(repo.records) != 1 {
		t.Fatalf("upsert must not create a second row, got %d", len(repo.records))
	}
}

func TestUpsertRejectsOutOfRangeAvailable(t *testing.T) {
	repo := newStubAvailabilityRepo()
	svc, _ := NewService(repo)

	over := 6
	_, err := svc.Upsert(context.Background(), UpsertInput{
		GuestHouse:     "Dehradun House",
		RoomType:       "Standard",
		TotalRooms:     5,
		AvailableRooms: &over,
		PricePerNight:  decimal.NewFromInt(1200),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestUpdateByIDClampsAvailableToTotal(t *testing.T) {
	existing := &models.GuestHouseAvailability{
		ID:             uuid.New(),
		GuestHouse:     "Dehradun House",
		RoomType:       "Standard",
		TotalRooms:     5,
		AvailableRooms: 5,
		PricePerNight:  decimal.NewFromInt(1200),
		IsActive:       true,
	}
	repo := newStubAvailabilityRepo(existing)
	svc, _ := NewService(repo)

	total := 3
	view, err := svc.UpdateByID(context.Background(), UpdateInput{
		ID:         existing.ID,
		TotalRooms: &total,
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if view.AvailableRooms != 3 {
		t.Fatalf("expected available clamped to 3 got %d", view.AvailableRooms)
	}
}

func TestUpdateByIDNotFound(t *testing.T) {
	repo := newStubAvailabilityRepo()
	svc, _ := NewService(repo)

	_, err := svc.UpdateByID(context.Background(), UpdateInput{ID: uuid.New()})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found got %v", err)
	}
}
