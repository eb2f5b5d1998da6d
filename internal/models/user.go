// file: internal/models/user.go
// version: 1.0.0
// guid: 3f9c2a71-5d4e-4b8a-9c1f-7e2d6a0b4c58

package models

// User represents a user record managed by the service
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserInput is the request payload for creating or updating a user.
// Any id supplied by the client is ignored; ids are assigned by the store.
type UserInput struct {
	Name  string `json:"name" validate:"notblank,min=1,max=100"`
	Email string `json:"email" validate:"required,email"`
}

// ToUser converts the payload into a User carrying the given id
func (in UserInput) ToUser(id int) User {
	return User{
		ID:    id,
		Name:  in.Name,
		Email: in.Email,
	}
}
