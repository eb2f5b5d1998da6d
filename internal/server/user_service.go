// file: internal/server/user_service.go
// version: 1.0.0
// guid: c4e2a9f1-3b7d-4d8e-a6c1-5f0b9e2d7a38

package server

import (
	"errors"
	"fmt"

	"github.com/jdfalk/user-service/internal/cache"
	"github.com/jdfalk/user-service/internal/database"
	"github.com/jdfalk/user-service/internal/metrics"
	"github.com/jdfalk/user-service/internal/models"
)

const usersCacheKey = "users"

// UserService composes the store, the list cache and the validation gate.
// Every successful mutation invalidates the list cache before returning.
type UserService struct {
	store     database.UserStore
	cache     *cache.Snapshot[models.User]
	validator *UserValidator
	logger    *Logger
}

// NewUserService creates a new user service
func NewUserService(store database.UserStore, listCache *cache.Snapshot[models.User], validator *UserValidator, logger *Logger) *UserService {
	return &UserService{
		store:     store,
		cache:     listCache,
		validator: validator,
		logger:    logger,
	}
}

// List returns all users, serving from the cache when it holds a snapshot
func (s *UserService) List() []models.User {
	if users, ok := s.cache.Get(); ok {
		metrics.IncCacheHit()
		s.logger.LogCacheHit(usersCacheKey)
		return users
	}

	metrics.IncCacheMiss()
	s.logger.LogCacheMiss(usersCacheKey)

	gen := s.cache.Generation()
	users := s.store.List()
	if !s.cache.Fill(gen, users) {
		s.logger.Debugf("list cache fill skipped: invalidated while loading")
	}
	return users
}

// Get returns the user with the given id
func (s *UserService) Get(id int) (models.User, error) {
	user, err := s.store.GetByID(id)
	if err != nil {
		return models.User{}, lookupError(id, err)
	}
	return user, nil
}

// Create validates the payload and stores a new user
func (s *UserService) Create(in models.UserInput) (models.User, error) {
	if err := s.validator.Check(in); err != nil {
		return models.User{}, err
	}

	user := s.store.Insert(in.ToUser(0))
	s.afterMutation("create")
	s.logger.Infof("created user %d", user.ID)
	return user, nil
}

// Update replaces name and email of an existing user. An unknown id is
// reported before any validation failure.
func (s *UserService) Update(id int, in models.UserInput) error {
	if _, err := s.store.GetByID(id); err != nil {
		return lookupError(id, err)
	}
	if err := s.validator.Check(in); err != nil {
		return err
	}

	if _, err := s.store.Update(id, in.ToUser(id)); err != nil {
		return lookupError(id, err)
	}
	s.afterMutation("update")
	s.logger.Infof("updated user %d", id)
	return nil
}

// Delete removes an existing user
func (s *UserService) Delete(id int) error {
	if _, err := s.store.GetByID(id); err != nil {
		return lookupError(id, err)
	}
	if err := s.store.Delete(id); err != nil {
		return lookupError(id, err)
	}
	s.afterMutation("delete")
	s.logger.Infof("deleted user %d", id)
	return nil
}

// Count returns the number of stored users
func (s *UserService) Count() int {
	return s.store.Count()
}

func (s *UserService) afterMutation(operation string) {
	s.cache.Invalidate()
	metrics.IncCacheInvalidation()
	metrics.IncMutation(operation)
	metrics.SetUsers(s.store.Count())
}

// lookupError keeps ErrUserNotFound recognisable and wraps anything else
func lookupError(id int, err error) error {
	if errors.Is(err, database.ErrUserNotFound) {
		return err
	}
	return fmt.Errorf("failed to access user %d: %w", id, err)
}
