package repository

import (
	"context"
	"errors"

	"quiz-hub/internal/domain"
	"quiz-hub/internal/util"

	"go.uber.org/zap"
)

// CreateUser inserts a user after checking the role/tenant rule, the tenant
// reference and global email uniqueness. Emails are compared exactly.
func (s *LocalStore) CreateUser(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	digest, err := util.HashPassword(in.Password, s.opts.BcryptCost)
	if err != nil {
		return nil, domain.NewInternalError("failed to hash password", err)
	}

	now := s.opts.Now()
	u := &domain.User{
		ID:           util.NewULID(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: digest,
		Role:         in.Role,
		TenantID:     in.TenantID,
		Status:       in.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if u.Status == "" {
		u.Status = domain.UserActive
	}

	err = s.mutate(ctx, "create_user", func(db *domain.Snapshot) error {
		if findUserByEmail(db, u.Email) != nil {
			return domain.NewDuplicateEmailError(u.Email)
		}
		if u.TenantID != "" {
			if _, ok := db.Tenants[u.TenantID]; !ok {
				return domain.NewTenantNotFoundError(u.TenantID)
			}
		}
		db.Users[u.ID] = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("User created",
		zap.String("user_id", u.ID),
		zap.String("role", string(u.Role)),
		zap.String("tenant_id", u.TenantID))
	return cloneUser(u), nil
}

func findUserByEmail(db *domain.Snapshot, email string) *domain.User {
	for _, u := range db.Users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

// GetUserByID returns nil when the user does not exist.
func (s *LocalStore) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.data.Users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

// GetUserByEmail returns nil when no user has exactly this email.
func (s *LocalStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u := findUserByEmail(s.data, email)
	if u == nil {
		return nil, nil
	}
	return cloneUser(u), nil
}

// GetAllUsers returns every user, or only the users of tenantID when it is
// not empty.
func (s *LocalStore) GetAllUsers(ctx context.Context, tenantID string) ([]*domain.User, error) {
	return s.listUsers(func(u *domain.User) bool {
		return tenantID == "" || u.TenantID == tenantID
	}), nil
}

// GetUsersByTenant returns the users referencing tenantID.
func (s *LocalStore) GetUsersByTenant(ctx context.Context, tenantID string) ([]*domain.User, error) {
	return s.listUsers(func(u *domain.User) bool { return u.TenantID == tenantID }), nil
}

func (s *LocalStore) listUsers(keep func(*domain.User) bool) []*domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.User, 0)
	for _, u := range s.data.Users {
		if keep(u) {
			out = append(out, cloneUser(u))
		}
	}
	sortUsers(out)
	return out
}

// UpdateUser applies a partial update. It returns nil when the user does not
// exist.
func (s *LocalStore) UpdateUser(ctx context.Context, id string, upd domain.UserUpdate) (*domain.User, error) {
	if upd.Name != nil && *upd.Name == "" {
		return nil, domain.NewInvalidInputError("name is required")
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, domain.NewInvalidInputError("unknown user status: " + string(*upd.Status))
	}
	var digest string
	if upd.Password != nil {
		if *upd.Password == "" {
			return nil, domain.NewInvalidInputError("password is required")
		}
		var err error
		if digest, err = util.HashPassword(*upd.Password, s.opts.BcryptCost); err != nil {
			return nil, domain.NewInternalError("failed to hash password", err)
		}
	}

	var updated *domain.User
	err := s.mutate(ctx, "update_user", func(db *domain.Snapshot) error {
		u, ok := db.Users[id]
		if !ok {
			return errNoRow
		}
		if upd.Name != nil {
			u.Name = *upd.Name
		}
		if digest != "" {
			u.PasswordHash = digest
		}
		if upd.Status != nil {
			u.Status = *upd.Status
		}
		u.UpdatedAt = s.opts.Now()
		updated = cloneUser(u)
		return nil
	})
	if errors.Is(err, errNoRow) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteUser removes the user together with their attempts, the answers of
// those attempts and their session.
func (s *LocalStore) DeleteUser(ctx context.Context, id string) (bool, error) {
	err := s.mutate(ctx, "delete_user", func(db *domain.Snapshot) error {
		if _, ok := db.Users[id]; !ok {
			return errNoRow
		}
		for attemptID, a := range db.UserAttempts {
			if a.UserID == id {
				deleteAttemptLocked(db, attemptID)
			}
		}
		for sid, sess := range db.UserSessions {
			if sess.UserID == id {
				delete(db.UserSessions, sid)
			}
		}
		delete(db.Users, id)
		return nil
	})
	if errors.Is(err, errNoRow) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// LoginUser verifies the credentials of an active user and makes that user
// the single session. Unknown emails, wrong passwords and inactive accounts
// all return nil without an error.
func (s *LocalStore) LoginUser(ctx context.Context, email, password string) (*domain.User, error) {
	s.mu.RLock()
	u := findUserByEmail(s.data, email)
	var candidate *domain.User
	if u != nil {
		candidate = cloneUser(u)
	}
	s.mu.RUnlock()

	// bcrypt runs outside the lock.
	if candidate == nil || candidate.Status != domain.UserActive ||
		!util.CheckPassword(candidate.PasswordHash, password) {
		return nil, nil
	}

	var current *domain.User
	err := s.mutate(ctx, "login", func(db *domain.Snapshot) error {
		u, ok := db.Users[candidate.ID]
		if !ok || u.Status != domain.UserActive || u.PasswordHash != candidate.PasswordHash {
			return errNoRow
		}
		for sid := range db.UserSessions {
			delete(db.UserSessions, sid)
		}
		sess := &domain.UserSession{ID: util.NewULID(), UserID: u.ID, CreatedAt: s.opts.Now()}
		db.UserSessions[sess.ID] = sess
		current = cloneUser(u)
		return nil
	})
	if errors.Is(err, errNoRow) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return current, nil
}

// LogoutUser clears the session.
func (s *LocalStore) LogoutUser(ctx context.Context) error {
	return s.mutate(ctx, "logout", func(db *domain.Snapshot) error {
		for sid := range db.UserSessions {
			delete(db.UserSessions, sid)
		}
		return nil
	})
}

// GetCurrentUser returns the user of the live session, or nil.
func (s *LocalStore) GetCurrentUser(ctx context.Context) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sess := range s.data.UserSessions {
		if u, ok := s.data.Users[sess.UserID]; ok {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}
