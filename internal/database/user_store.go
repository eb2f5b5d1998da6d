// file: internal/database/user_store.go
// version: 1.0.0
// guid: 5b7e1d2c-9a4f-4c6e-8d3b-2f1a0c9e7d64

package database

import (
	"errors"
	"sync"

	"github.com/jdfalk/user-service/internal/models"
)

// ErrUserNotFound is returned when an id does not resolve to a stored user
var ErrUserNotFound = errors.New("user not found")

// UserStore defines the operations on the user collection
type UserStore interface {
	List() []models.User
	GetByID(id int) (models.User, error)
	Insert(user models.User) models.User
	Update(id int, user models.User) (models.User, error)
	Delete(id int) error
	Count() int
}

// MemoryStore is an in-process UserStore. Records are kept in insertion
// order and live only as long as the process.
type MemoryStore struct {
	mu     sync.RWMutex
	users  []models.User
	lastID int
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: []models.User{}}
}

// List returns a copy of all users in insertion order
func (s *MemoryStore) List() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

// GetByID returns the user with the given id
func (s *MemoryStore) GetByID(id int) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.User{}, ErrUserNotFound
	}
	return s.users[idx], nil
}

// Insert assigns the next id and appends the user. Any id on the argument
// is ignored.
func (s *MemoryStore) Insert(user models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = s.nextID()
	s.lastID = user.ID
	s.users = append(s.users, user)
	return user
}

// Update overwrites name and email of an existing user, keeping its id
func (s *MemoryStore) Update(id int, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.User{}, ErrUserNotFound
	}
	s.users[idx].Name = user.Name
	s.users[idx].Email = user.Email
	return s.users[idx], nil
}

// Delete removes the user with the given id
func (s *MemoryStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return ErrUserNotFound
	}
	s.users = append(s.users[:idx], s.users[idx+1:]...)
	return nil
}

// Count returns the number of stored users
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// indexOf must be called with the lock held
func (s *MemoryStore) indexOf(id int) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}

// nextID is max(existing ids)+1, but never lower than the last issued id+1,
// so ids of deleted users are not handed out again.
func (s *MemoryStore) nextID() int {
	highest := s.lastID
	for _, u := range s.users {
		if u.ID > highest {
			highest = u.ID
		}
	}
	return highest + 1
}
