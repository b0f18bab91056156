package app

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/luxedir/internal/auth"
	"github.com/mesh-intelligence/luxedir/pkg/types"
)

// Users returns every account without credentials.
func (d *Directory) Users() []types.User {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]types.User, len(d.state.Users))
	for i, u := range d.state.Users {
		out[i] = u.Public()
	}
	return out
}

// CurrentUser returns the signed-in user without credentials, or nil when
// nobody is signed in.
func (d *Directory) CurrentUser() *types.User {
	d.mu.RLock()
	defer d.mu.RUnlock()

	u := d.currentUser()
	if u == nil {
		return nil
	}
	pub := u.Public()
	return &pub
}

// currentUser returns the stored signed-in user. A session pointing at a
// removed or inactive account counts as signed out. The caller must hold d.mu.
func (d *Directory) currentUser() *types.User {
	if d.state.CurrentUserID == "" {
		return nil
	}
	i := userIndex(d.state.Users, d.state.CurrentUserID)
	if i < 0 || !d.state.Users[i].IsActive {
		return nil
	}
	return &d.state.Users[i]
}

// Login signs in the active account with the given email and password.
func (d *Directory) Login(email, password string) (types.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.state.Users {
		if !strings.EqualFold(u.Email, strings.TrimSpace(email)) || !u.IsActive {
			continue
		}
		ok, err := auth.VerifyPassword(u.PasswordHash, password)
		if err != nil {
			d.log.Warnw("unreadable password hash", "user", u.ID, "error", err)
		}
		if !ok {
			break
		}
		d.state.CurrentUserID = u.ID
		d.save(types.PartSession)
		d.log.Infow("signed in", "user", u.ID, "role", u.Role)
		return u.Public(), nil
	}
	return types.User{}, types.ErrInvalidCredentials
}

// Logout ends the session.
func (d *Directory) Logout() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state.CurrentUserID = ""
	d.save(types.PartSession)
}

// SwitchRole signs in as the first active account holding role. It is the
// demo shortcut for trying each area without passwords.
func (d *Directory) SwitchRole(role types.Role) (types.User, error) {
	if !role.Valid() {
		return types.User{}, fmt.Errorf("%w %q", types.ErrRoleUnknown, role)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.state.Users {
		if u.Role == role && u.IsActive {
			d.state.CurrentUserID = u.ID
			d.save(types.PartSession)
			return u.Public(), nil
		}
	}
	return types.User{}, fmt.Errorf("no active %s account: %w", role, types.ErrUserNotFound)
}

// AddUser registers a new account with the given password.
func (d *Directory) AddUser(u types.User, password string) (types.User, error) {
	u.Email = strings.TrimSpace(u.Email)
	u.Name = strings.TrimSpace(u.Name)
	if err := u.Validate(); err != nil {
		return types.User{}, fmt.Errorf("adding user: %w", err)
	}
	if password == "" {
		return types.User{}, fmt.Errorf("adding user: %w: password must not be empty", types.ErrValidation)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return types.User{}, fmt.Errorf("adding user: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if emailTaken(d.state.Users, u.Email, "") {
		return types.User{}, fmt.Errorf("adding user %s: %w", u.Email, types.ErrDuplicateEmail)
	}
	u.ID = d.newID()
	u.PasswordHash = hash
	d.state.Users = append(append([]types.User{}, d.state.Users...), u)
	d.save(types.PartUsers)
	d.log.Infow("user added", "user", u.ID, "role", u.Role)
	return u.Public(), nil
}

// UpdateUser replaces the profile of the account with u.ID. An empty
// password keeps the current one.
func (d *Directory) UpdateUser(u types.User, password string) (types.User, error) {
	u.Email = strings.TrimSpace(u.Email)
	u.Name = strings.TrimSpace(u.Name)
	if err := u.Validate(); err != nil {
		return types.User{}, fmt.Errorf("updating user: %w", err)
	}
	var hash string
	if password != "" {
		var err error
		if hash, err = auth.HashPassword(password); err != nil {
			return types.User{}, fmt.Errorf("updating user: %w", err)
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	i := userIndex(d.state.Users, u.ID)
	if i < 0 {
		return types.User{}, fmt.Errorf("updating user %s: %w", u.ID, types.ErrUserNotFound)
	}
	if emailTaken(d.state.Users, u.Email, u.ID) {
		return types.User{}, fmt.Errorf("updating user %s: %w", u.Email, types.ErrDuplicateEmail)
	}
	if hash == "" {
		hash = d.state.Users[i].PasswordHash
	}
	u.PasswordHash = hash

	users := append([]types.User{}, d.state.Users...)
	users[i] = u
	d.state.Users = users
	d.save(types.PartUsers)
	return u.Public(), nil
}

// RequestDeleteUser describes the confirmation removing an account needs.
func (d *Directory) RequestDeleteUser(id string) (Decision, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	i := userIndex(d.state.Users, id)
	if i < 0 {
		return Decision{}, fmt.Errorf("user %s: %w", id, types.ErrUserNotFound)
	}
	if id == d.state.CurrentUserID {
		return Decision{}, types.ErrDeleteSelf
	}
	return Decision{
		RequiresConfirmation: true,
		Danger:               DangerHigh,
		Title:                "Remove user",
		Message:              fmt.Sprintf("Remove %s (%s)? They will no longer be able to sign in.", d.state.Users[i].Name, d.state.Users[i].Email),
		ConfirmText:          "Remove",
	}, nil
}

// DeleteUser removes an account. The signed-in account cannot remove
// itself. Records owned by the account are kept.
func (d *Directory) DeleteUser(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := userIndex(d.state.Users, id)
	if i < 0 {
		return fmt.Errorf("deleting user %s: %w", id, types.ErrUserNotFound)
	}
	if id == d.state.CurrentUserID {
		return types.ErrDeleteSelf
	}
	users := append([]types.User{}, d.state.Users[:i]...)
	d.state.Users = append(users, d.state.Users[i+1:]...)
	d.save(types.PartUsers)
	d.log.Infow("user deleted", "user", id)
	return nil
}

func userIndex(users []types.User, id string) int {
	for i, u := range users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func emailTaken(users []types.User, email, exceptID string) bool {
	for _, u := range users {
		if u.ID != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}
