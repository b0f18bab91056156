package auth

import "github.com/mesh-intelligence/luxedir/pkg/types"

// Area gates. A nil user means nobody is signed in.

// CanBrowse reports whether the listing may be shown: either anonymous
// access is enabled or somebody is signed in.
func CanBrowse(cfg types.SystemConfig, user *types.User) bool {
	return cfg.AnonymousAccess || user != nil
}

// CanAdminister reports whether user may open the admin area at all.
// Admins and owners can; owners only see their own listings there.
func CanAdminister(user *types.User) bool {
	return user != nil && (user.Role == types.RoleAdmin || user.Role == types.RoleOwner)
}

// CanManageRecord reports whether user may edit or delete r.
func CanManageRecord(user *types.User, r types.Record) bool {
	if user == nil {
		return false
	}
	switch user.Role {
	case types.RoleAdmin:
		return true
	case types.RoleOwner:
		return r.OwnerID == user.ID
	}
	return false
}

// CanManageUsers reports whether user may add, edit or remove accounts.
func CanManageUsers(user *types.User) bool { return isAdmin(user) }

// CanManageSchema reports whether user may change the field schema.
func CanManageSchema(user *types.User) bool { return isAdmin(user) }

// CanEditSettings reports whether user may change the system settings.
func CanEditSettings(user *types.User) bool { return isAdmin(user) }

func isAdmin(user *types.User) bool {
	return user != nil && user.Role == types.RoleAdmin
}
