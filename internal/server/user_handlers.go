// file: internal/server/user_handlers.go
// version: 1.0.0
// guid: e7a3c5d1-9f2b-4a6e-8c4d-3b1f0e9a2c57

package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jdfalk/user-service/internal/models"
)

func (s *Server) listUsers(c *gin.Context) {
	c.JSON(http.StatusOK, s.users.List())
}

func (s *Server) getUser(c *gin.Context) {
	id, ok := ParseIDParam(c, s.logger, "id")
	if !ok {
		return
	}

	user, err := s.users.Get(id)
	if err != nil {
		RespondWithServiceError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) createUser(c *gin.Context) {
	in, ok := s.bindUserInput(c)
	if !ok {
		return
	}

	user, err := s.users.Create(in)
	if err != nil {
		RespondWithServiceError(c, s.logger, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/users/%d", user.ID))
	c.JSON(http.StatusCreated, user)
}

func (s *Server) updateUser(c *gin.Context) {
	id, ok := ParseIDParam(c, s.logger, "id")
	if !ok {
		return
	}
	in, ok := s.bindUserInput(c)
	if !ok {
		return
	}

	if err := s.users.Update(id, in); err != nil {
		RespondWithServiceError(c, s.logger, err)
		return
	}
	RespondWithNoContent(c)
}

func (s *Server) deleteUser(c *gin.Context) {
	id, ok := ParseIDParam(c, s.logger, "id")
	if !ok {
		return
	}

	if err := s.users.Delete(id); err != nil {
		RespondWithServiceError(c, s.logger, err)
		return
	}
	RespondWithNoContent(c)
}

// bindUserInput decodes the JSON body; undecodable bodies are a 400
func (s *Server) bindUserInput(c *gin.Context) (models.UserInput, bool) {
	var in models.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondWithViolations(c, s.logger, []Violation{{
			Field: "body",
			Error: "invalid request body: " + err.Error(),
		}})
		return models.UserInput{}, false
	}
	return in, true
}
