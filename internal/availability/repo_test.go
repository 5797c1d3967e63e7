package availability

import (
	"context"
	"testing"

	"github.com/devesh457/nea-website/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAvailabilityTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS guest_house_availabilities (
  id TEXT PRIMARY KEY,
  guest_house TEXT NOT NULL,
  room_type TEXT NOT NULL,
  location TEXT NOT NULL,
  total_rooms INTEGER NOT NULL DEFAULT 0,
  available_rooms INTEGER NOT NULL DEFAULT 0,
  price_per_night TEXT NOT NULL DEFAULT '0',
  amenities TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (guest_house, room_type)
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedRoom(t *testing.T, db *gorm.DB, guestHouse, roomType string, total, available int, active bool) models.GuestHouseAvailability {
	t.Helper()
	record := models.GuestHouseAvailability{
		ID:             uuid.New(),
		GuestHouse:     guestHouse,
		RoomType:       roomType,
		Location:       "Dehradun",
		TotalRooms:     total,
		AvailableRooms: available,
		PricePerNight:  decimal.NewFromInt(1200),
		IsActive:       active,
	}
	require.NoError(t, db.Create(&record).Error)
	return record
}

func TestListActiveFiltersInactive(t *testing.T) {
	db := setupAvailabilityTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedRoom(t, db, "Dehradun House", "Standard", 3, 3, true)
	seedRoom(t, db, "Dehradun House", "Deluxe", 2, 2, false)
	seedRoom(t, db, "Nainital House", "Standard", 4, 1, true)

	records, err := repo.ListActive(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, records, 2)

	records, err = repo.ListActive(ctx, ListFilter{GuestHouse: "Nainital House"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Nainital House", records[0].GuestHouse)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListActiveOmitsSoldOutRooms(t *testing.T) {
	db := setupAvailabilityTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedRoom(t, db, "Mussoorie House", "Deluxe", 2, 0, true)
	seedRoom(t, db, "Mussoorie House", "Standard", 3, 1, true)

	records, err := repo.ListActive(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Standard", records[0].RoomType)

	// the sold-out row still shows on the admin surface
	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAdjustAvailableDecrement(t *testing.T) {
	db := setupAvailabilityTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	room := seedRoom(t, db, "Dehradun House", "Standard", 3, 2, true)

	require.NoError(t, repo.AdjustAvailable(ctx, "Dehradun House", "Standard", -1))

	reloaded, err := repo.FindByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.AvailableRooms)
}

func TestAdjustAvailableGuardsLowerBound(t *testing.T) {
	db := setupAvailabilityTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	room := seedRoom(t, db, "Dehradun House", "Standard", 3, 0, true)

	require.NoError(t, repo.AdjustAvailable(ctx, "Dehradun House", "Standard", -1))

	reloaded, err := repo.FindByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.AvailableRooms, "decrement below zero must be skipped")
}

func TestAdjustAvailableGuardsUpperBound(t *testing.T) {
	db := setupAvailabilityTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	room := seedRoom(t, db, "Dehradun House", "Standard", 3, 3, true)

	require.NoError(t, repo.AdjustAvailable(ctx, "Dehradun House", "Standard", 1))

	reloaded, err := repo.FindByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.AvailableRooms, "increment above total must be skipped")
}

func TestAdjustAvailableMissingRecordIsNoop(t *testing.T) {
	db := setupAvailabilityTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.AdjustAvailable(ctx, "Nowhere House", "Standard", -1))
}

func TestUpdateByID(t *testing.T) {
	db := setupAvailabilityTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	room := seedRoom(t, db, "Dehradun House", "Standard", 3, 3, true)

	require.NoError(t, repo.Update(ctx, room.ID, map[string]any{
		"total_rooms":     5,
		"available_rooms": 4,
		"is_active":       false,
	}))

	reloaded, err := repo.FindByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, reloaded.TotalRooms)
	assert.Equal(t, 4, reloaded.AvailableRooms)
	assert.False(t, reloaded.IsActive)
}
