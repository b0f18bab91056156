package sqlite

import (
	"fmt"
	"math"

	"github.com/mesh-intelligence/luxedir/internal/auth"
	"github.com/mesh-intelligence/luxedir/pkg/types"
)

// demoRecordCount is the number of listings in the demo directory.
const demoRecordCount = 100

// demoUser describes an account seeded on first startup.
type demoUser struct {
	user     types.User
	password string
}

var demoUsers = []demoUser{
	{types.User{ID: "admin-1", Email: "admin@luxedir.com", Name: "Super Admin", Role: types.RoleAdmin, IsActive: true,
		Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Admin"}, "Admin@Luxe2026"},
	{types.User{ID: "owner-1", Email: "owner@luxedir.com", Name: "John Luxury", Role: types.RoleOwner, IsActive: true,
		Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Owner"}, "Owner@Luxe2026"},
	{types.User{ID: "user-1", Email: "guest@luxedir.com", Name: "Guest User", Role: types.RoleUser, IsActive: true,
		Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Guest"}, "User@Luxe2026"},
}

// DemoSchema returns the field schema of the demo directory.
func DemoSchema() []types.Field {
	return []types.Field{
		{ID: "State_01", Name: "State", Type: types.FieldChoiceCheckbox, Navigable: true, Filterable: true,
			Options: []string{"Gujarat", "Maharashtra", "Rajasthan"}, Group: "Location Details"},
		{ID: "Rating_01", Name: "Rating", Type: types.FieldNumber, Sortable: true, Group: "Performance"},
		{ID: "Amenities_01", Name: "Amenities", Type: types.FieldChoiceCheckbox, Filterable: true,
			Options: []string{"Wifi", "Parking", "Pool", "Gym", "Valet"}, Group: "Features"},
	}
}

// DemoRecords returns the deterministic demo listings record-1..record-100.
// Even records belong to owner-1, odd ones to admin-1.
func DemoRecords() []types.Record {
	states := []string{"Gujarat", "Maharashtra", "Rajasthan"}
	amenities := []string{"Valet", "Wifi", "Pool", "Gym", "Parking"}

	records := make([]types.Record, 0, demoRecordCount)
	for i := 1; i <= demoRecordCount; i++ {
		category := types.CategoryBoutique
		switch {
		case i <= 40:
			category = types.CategoryPremium
		case i <= 80:
			category = types.CategoryExecutive
		}

		owner := "admin-1"
		if i%2 == 0 {
			owner = "owner-1"
		}

		state := states[i%len(states)]
		var picked []string
		for j, a := range amenities {
			if (i+j)%3 == 0 {
				picked = append(picked, a)
			}
		}
		rating := math.Round((4.0+float64(i%10)/10)*10) / 10

		records = append(records, types.Record{
			ID:       fmt.Sprintf("record-%d", i),
			OwnerID:  owner,
			Category: category,
			Name:     fmt.Sprintf("%s Listing %d", category, i),
			Address:  fmt.Sprintf("%d Luxury Blvd, %s", 100+i, state),
			Image:    fmt.Sprintf("https://placehold.co/600x400/1a1a1a/D4AF37?text=%s+%d", category, i),
			Data: types.Data{
				"State_01":     types.List(state),
				"Rating_01":    types.Number(rating),
				"Amenities_01": types.List(picked...),
			},
		})
	}
	return records
}

// seedDemoLocked writes the demo directory when every table is empty, so a
// directory that was ever written to is never reseeded. The caller must
// hold b.mu.
func (b *Backend) seedDemoLocked() error {
	var rows int
	err := b.db.QueryRow(
		"SELECT (SELECT COUNT(*) FROM fields) + (SELECT COUNT(*) FROM records) + (SELECT COUNT(*) FROM users) + (SELECT COUNT(*) FROM settings)",
	).Scan(&rows)
	if err != nil {
		return fmt.Errorf("counting rows: %w", err)
	}
	if rows > 0 {
		return nil
	}

	users := make([]types.User, 0, len(demoUsers))
	for _, du := range demoUsers {
		hash, err := auth.HashPassword(du.password)
		if err != nil {
			return fmt.Errorf("hashing password for %s: %w", du.user.Email, err)
		}
		u := du.user
		u.PasswordHash = hash
		users = append(users, u)
	}

	b.log.Infow("seeding demo directory", "records", demoRecordCount, "users", len(users))
	return b.saveLocked(types.Patch{
		Parts:         types.PartAll,
		Schema:        DemoSchema(),
		Records:       DemoRecords(),
		Config:        types.DefaultSystemConfig(),
		Users:         users,
		CurrentUserID: "",
	})
}
