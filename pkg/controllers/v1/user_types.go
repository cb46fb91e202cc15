package v1

import (
	"fmt"
	"strings"
	"time"

	"github.com/contract-ledger/backend/pkg/models"
	"github.com/gin-gonic/gin"
)

type UserEditable struct {
	Name   string `json:"nome" example:"Maria Souza"`              // Name of the user
	Email  string `json:"email" example:"maria.souza@example.com"` // Email address, unique across all users
	Role   string `json:"cargo" example:"Engenheira fiscal"`       // Role of the user
	Active *bool  `json:"ativo" example:"true" default:"true"`     // Is the user active?
}

func (editable UserEditable) model() models.User {
	active := true
	if editable.Active != nil {
		active = *editable.Active
	}

	return models.User{
		Name:   editable.Name,
		Email:  editable.Email,
		Role:   editable.Role,
		Active: active,
	}
}

// UserCreate is used to create users and to change their password.
type UserCreate struct {
	UserEditable
	Password string `json:"senha" example:"correct horse battery staple"` // Password, only ever stored as hash
}

type UserLinks struct {
	Self   string `json:"self" example:"https://example.com/api/v1/users/3"`         // The user itself
	Alerts string `json:"alerts" example:"https://example.com/api/v1/alerts?user=3"` // Alerts assigned to the user
}

// User is the API v1 representation of a User. The password is never
// returned.
type User struct {
	models.DefaultModel
	UserEditable
	LastLogin *time.Time `json:"ultimoLogin" example:"2024-06-03T12:00:00Z"` // Time of the last login
	Links     UserLinks  `json:"links"`
}

func newUser(c *gin.Context, model models.User) User {
	url := c.GetString(string(models.ContextURL))
	active := model.Active

	return User{
		DefaultModel: model.DefaultModel,
		UserEditable: UserEditable{
			Name:   model.Name,
			Email:  model.Email,
			Role:   model.Role,
			Active: &active,
		},
		LastLogin: model.LastLogin,
		Links: UserLinks{
			Self:   fmt.Sprintf("%s/v1/users/%d", url, model.ID),
			Alerts: fmt.Sprintf("%s/v1/alerts?user=%d", url, model.ID),
		},
	}
}

type UserListResponse struct {
	Data       []User      `json:"data"`                                                                // List of users
	Error      *string     `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                          // Pagination information
}

type UserCreateResponse struct {
	Error *string        `json:"error" example:"a user with this email address already exists"` // The error, if any occurred
	Data  []UserResponse `json:"data"`                                                          // List of created users
}

func (a *UserCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, UserResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type UserResponse struct {
	Data  *User   `json:"data"`                                                 // Data for the user
	Error *string `json:"error" example:"there is no user matching your query"` // The error, if any occurred
}

type UserQueryFilter struct {
	Name   string `form:"nome" filterField:"false"`   // Fuzzy filter for the name
	Email  string `form:"email"`                      // By email address
	Active bool   `form:"ativo"`                      // Is the user active?
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first user returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of users to return. Defaults to 50.
}

func (f UserQueryFilter) model() models.User {
	return models.User{
		Email:  strings.ToLower(strings.TrimSpace(f.Email)),
		Active: f.Active,
	}
}
