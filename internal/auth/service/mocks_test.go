package service_test

import (
	"context"
	"sync"
	"time"

	authdomain "github.com/WooodHead/everpost-backend/internal/auth/domain"
	authrepo "github.com/WooodHead/everpost-backend/internal/auth/repository"
	userdomain "github.com/WooodHead/everpost-backend/internal/user/domain"
	userrepo "github.com/WooodHead/everpost-backend/internal/user/repository"
)

// memStore is an in-memory users + credentials store. WithTx snapshots both
// tables and restores them when fn fails, like a database rollback.
type memStore struct {
	mu          sync.Mutex
	users       map[int64]userdomain.User
	credentials map[int64]authdomain.Credential
	nextUserID  int64
	nextCredID  int64

	createCredentialErr error
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[int64]userdomain.User),
		credentials: make(map[int64]authdomain.Credential),
	}
}

func (s *memStore) WithTx(ctx context.Context, fn func(context.Context, authrepo.AccountTx) error) error {
	s.mu.Lock()
	users := make(map[int64]userdomain.User, len(s.users))
	for k, v := range s.users {
		users[k] = v
	}
	creds := make(map[int64]authdomain.Credential, len(s.credentials))
	for k, v := range s.credentials {
		creds[k] = v
	}
	s.mu.Unlock()

	if err := fn(ctx, s); err != nil {
		s.mu.Lock()
		s.users = users
		s.credentials = creds
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) Users() userrepo.Repository {
	return s
}

func (s *memStore) Credentials() authrepo.CredentialRepository {
	return &memCredentials{s: s}
}

func (s *memStore) Create(ctx context.Context, email, username string) (userdomain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return userdomain.User{}, userrepo.ErrEmailAlreadyExists
		}
	}
	s.nextUserID++
	now := time.Now()
	u := userdomain.User{
		ID:        s.nextUserID,
		Email:     email,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *memStore) FindByID(ctx context.Context, id int64) (userdomain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return userdomain.User{}, userrepo.ErrUserNotFound
	}
	return u, nil
}

func (s *memStore) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (s *memStore) Update(ctx context.Context, id int64, update userdomain.ProfileUpdate) (userdomain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return userdomain.User{}, userrepo.ErrUserNotFound
	}
	if update.Username != nil {
		u.Username = *update.Username
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.ProfileImage != nil {
		u.ProfileImage = update.ProfileImage
	}
	s.users[id] = u
	return u, nil
}

func (s *memStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return userrepo.ErrUserNotFound
	}
	delete(s.users, id)
	delete(s.credentials, id)
	return nil
}

func (s *memStore) DeleteOrphans(ctx context.Context, createdBefore time.Time) (int64, error) {
	return 0, nil
}

func (s *memStore) userCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *memStore) credentialCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.credentials)
}

type memCredentials struct {
	s *memStore
}

func (c *memCredentials) Create(ctx context.Context, userID int64, passwordHash string) (authdomain.CredentialID, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if c.s.createCredentialErr != nil {
		return 0, c.s.createCredentialErr
	}
	if _, ok := c.s.credentials[userID]; ok {
		return 0, authrepo.ErrCredentialExists
	}
	c.s.nextCredID++
	c.s.credentials[userID] = authdomain.Credential{
		ID:           authdomain.CredentialID(c.s.nextCredID),
		UserID:       userID,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	return authdomain.CredentialID(c.s.nextCredID), nil
}

func (c *memCredentials) FindByUserID(ctx context.Context, userID int64) (authdomain.Credential, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	cred, ok := c.s.credentials[userID]
	if !ok {
		return authdomain.Credential{}, authrepo.ErrCredentialNotFound
	}
	return cred, nil
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockHasher) Compare(hash, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	return nil
}
