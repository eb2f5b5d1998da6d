// file: internal/database/mock_store.go
// version: 2.0.0
// guid: b2c3d4e5-f6a7-8b9c-0d1e-2f3a4b5c6d7e

package database

import "github.com/jdfalk/user-service/internal/models"

// MockStore is a simple mock implementation for testing services.
// Unset funcs fall back to zero values (or ErrUserNotFound for lookups).
type MockStore struct {
	ListFunc    func() []models.User
	GetByIDFunc func(id int) (models.User, error)
	InsertFunc  func(user models.User) models.User
	UpdateFunc  func(id int, user models.User) (models.User, error)
	DeleteFunc  func(id int) error
	CountFunc   func() int

	ListCalls int
}

func (m *MockStore) List() []models.User {
	m.ListCalls++
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return []models.User{}
}

func (m *MockStore) GetByID(id int) (models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(id)
	}
	return models.User{}, ErrUserNotFound
}

func (m *MockStore) Insert(user models.User) models.User {
	if m.InsertFunc != nil {
		return m.InsertFunc(user)
	}
	return user
}

func (m *MockStore) Update(id int, user models.User) (models.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(id, user)
	}
	return models.User{}, ErrUserNotFound
}

func (m *MockStore) Delete(id int) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return ErrUserNotFound
}

func (m *MockStore) Count() int {
	if m.CountFunc != nil {
		return m.CountFunc()
	}
	return 0
}

var _ UserStore = (*MockStore)(nil)
var _ UserStore = (*MemoryStore)(nil)
