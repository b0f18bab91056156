package app

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/luxedir/internal/auth"
	"github.com/mesh-intelligence/luxedir/pkg/types"
)

// memStore is an in-memory types.Store that records every patch.
type memStore struct {
	snap    types.Snapshot
	patches []types.Patch
	failing bool
}

var errDiskFull = errors.New("disk full")

func (s *memStore) Attach(types.Config) error { return nil }
func (s *memStore) Detach() error             { return nil }
func (s *memStore) Load() (types.Snapshot, error) {
	return s.snap, nil
}

func (s *memStore) Save(p types.Patch) error {
	s.patches = append(s.patches, p)
	if s.failing {
		return errDiskFull
	}
	if p.Parts.Has(types.PartSchema) {
		s.snap.Schema = p.Schema
	}
	if p.Parts.Has(types.PartRecords) {
		s.snap.Records = p.Records
	}
	if p.Parts.Has(types.PartConfig) {
		s.snap.Config = p.Config
	}
	if p.Parts.Has(types.PartUsers) {
		s.snap.Users = p.Users
	}
	if p.Parts.Has(types.PartSession) {
		s.snap.CurrentUserID = p.CurrentUserID
	}
	return nil
}

func (s *memStore) lastParts() types.Part {
	if len(s.patches) == 0 {
		return 0
	}
	return s.patches[len(s.patches)-1].Parts
}

func demoSchema() []types.Field {
	return []types.Field{
		{ID: "State_01", Name: "State", Type: types.FieldChoiceCheckbox, Navigable: true, Filterable: true,
			Options: []string{"Gujarat", "Maharashtra", "Rajasthan"}, Group: "Location Details"},
		{ID: "Rating_01", Name: "Rating", Type: types.FieldNumber, Sortable: true, Group: "Performance"},
		{ID: "Amenities_01", Name: "Amenities", Type: types.FieldChoiceCheckbox, Filterable: true,
			Options: []string{"Wifi", "Parking", "Pool", "Gym", "Valet"}, Group: "Features"},
	}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := auth.HashPassword(password)
	require.NoError(t, err)
	return h
}

func demoSnapshot(t *testing.T) types.Snapshot {
	t.Helper()
	return types.Snapshot{
		Schema: demoSchema(),
		Records: []types.Record{
			{ID: "record-1", OwnerID: "admin-1", Category: types.CategoryPremium, Name: "Premium Listing 1",
				Data: types.Data{"State_01": types.List("Gujarat"), "Rating_01": types.Number(4.5)}},
			{ID: "record-2", OwnerID: "owner-1", Category: types.CategoryPremium, Name: "Premium Listing 2",
				Data: types.Data{"State_01": types.List("Maharashtra"), "Rating_01": types.Number(4.1)}},
			{ID: "record-3", OwnerID: "owner-1", Category: types.CategoryExecutive, Name: "Executive Listing 3",
				Data: types.Data{"State_01": types.List("Gujarat", "Maharashtra"), "Rating_01": types.Number(4.9)}},
		},
		Config: types.DefaultSystemConfig(),
		Users: []types.User{
			{ID: "admin-1", Email: "admin@luxedir.com", Name: "Super Admin", Role: types.RoleAdmin, IsActive: true,
				PasswordHash: mustHash(t, "Admin@Luxe2026")},
			{ID: "owner-1", Email: "owner@luxedir.com", Name: "John Luxury", Role: types.RoleOwner, IsActive: true,
				PasswordHash: mustHash(t, "Owner@Luxe2026")},
			{ID: "user-1", Email: "guest@luxedir.com", Name: "Guest User", Role: types.RoleUser, IsActive: true,
				PasswordHash: mustHash(t, "User@Luxe2026")},
		},
	}
}

// newDirectory returns a Directory over a memStore seeded with snap, with a
// fixed clock and sequential ids.
func newDirectory(t *testing.T, snap types.Snapshot) (*Directory, *memStore) {
	t.Helper()
	store := &memStore{snap: snap}
	n := 0
	d, err := New(store, nil,
		WithClock(func() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC) }),
		WithIDGenerator(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
	require.NoError(t, err)
	return d, store
}

func recordIDs(records []types.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
